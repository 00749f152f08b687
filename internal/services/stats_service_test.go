package services

import (
	"context"
	"errors"
	"testing"
)

func TestStatsOverviewAggregatesRange(t *testing.T) {
	t.Parallel()

	reader := exportTestRecords()
	service := NewStatsService(reader)
	dateRange := exportTestRange()

	overview, err := service.Overview(context.Background(), dateRange)
	if err != nil {
		t.Fatalf("Overview() unexpected error: %v", err)
	}

	if len(reader.ranges) != 1 || !reader.ranges[0][0].Equal(dateRange.From) || !reader.ranges[0][1].Equal(dateRange.To) {
		t.Fatalf("expected the requested range to reach the reader, got %v", reader.ranges)
	}
	if overview.Stats.DaySpan != 8 {
		t.Fatalf("expected 8 day span, got %d", overview.Stats.DaySpan)
	}
	if overview.Stats.Diet.TotalCalories != 420 || overview.Stats.Exercise.TotalDurationMinutes != 40 {
		t.Fatalf("unexpected totals: %+v", overview.Stats)
	}
	if overview.Stats.Period != PeriodWeek {
		t.Fatalf("expected period %q, got %q", PeriodWeek, overview.Stats.Period)
	}
	if overview.Advisory.Sleep.Label != AdviceAdequate {
		t.Fatalf("expected 6.5h average to be adequate, got %q", overview.Advisory.Sleep.Label)
	}
	if overview.Advisory.Diet.Label != DietTooLow {
		t.Fatalf("expected low intake label, got %q", overview.Advisory.Diet.Label)
	}
	if overview.Advisory.SleepQuality != QualityVeryPoor {
		t.Fatalf("expected unrated sleep to read very poor, got %q", overview.Advisory.SleepQuality)
	}
}

func TestStatsOverviewPropagatesReaderErrors(t *testing.T) {
	t.Parallel()

	readErr := errors.New("disk unplugged")
	service := NewStatsService(&stubExportRecordReader{err: readErr})

	if _, err := service.Overview(context.Background(), exportTestRange()); !errors.Is(err, readErr) {
		t.Fatalf("expected reader error, got %v", err)
	}
}
