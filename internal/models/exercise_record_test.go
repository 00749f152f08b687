package models

import (
	"testing"
	"time"
)

func TestExerciseRecordDurationPrefersTimestamps(t *testing.T) {
	start := time.Date(2026, time.March, 3, 18, 0, 0, 0, time.UTC)
	end := start.Add(47*time.Minute + 30*time.Second)
	record := ExerciseRecord{StartTime: &start, DurationMinutes: 5}

	if got := record.Duration(); got != 5 {
		t.Fatalf("expected caller-supplied duration without end time, got %d", got)
	}

	record.SetEndTime(&end)
	if record.DurationMinutes != 47 {
		t.Fatalf("expected derived whole minutes 47, got %d", record.DurationMinutes)
	}

	later := start.Add(90 * time.Minute)
	record.SetEndTime(&later)
	if record.Duration() != 90 || record.DurationMinutes != 90 {
		t.Fatalf("expected recomputed duration 90, got %d/%d", record.Duration(), record.DurationMinutes)
	}
}

func TestExerciseRecordTypeLabelUsesCustomNameForOther(t *testing.T) {
	record := ExerciseRecord{ExerciseType: ExerciseOther, CustomTypeName: " Climbing "}
	if got := record.TypeLabel(); got != "Climbing" {
		t.Fatalf("expected custom label, got %q", got)
	}

	record.CustomTypeName = ""
	if got := record.TypeLabel(); got != "Other" {
		t.Fatalf("expected fallback label Other, got %q", got)
	}
}

func TestIntensityLevelOrdering(t *testing.T) {
	ordered := []IntensityLevel{IntensityLow, IntensityMedium, IntensityHigh, IntensityVeryHigh}
	for index := 1; index < len(ordered); index++ {
		if ordered[index-1].Level() >= ordered[index].Level() {
			t.Fatalf("expected %s < %s", ordered[index-1], ordered[index])
		}
	}
	if IntensityLevel("EXTREME").Valid() {
		t.Fatalf("expected unknown intensity to be invalid")
	}
}
