package models

import (
	"testing"
	"time"
)

func TestSleepRecordDurationCrossesMidnight(t *testing.T) {
	sleep := time.Date(2026, time.March, 3, 23, 30, 0, 0, time.UTC)
	wake := time.Date(2026, time.March, 4, 6, 0, 0, 0, time.UTC)
	record := SleepRecord{SleepTime: &sleep, WakeTime: &wake}

	if got := record.Duration(); got != 390 {
		t.Fatalf("expected 390 minutes, got %d", got)
	}
	if got := record.DurationHours(); got != 6.5 {
		t.Fatalf("expected 6.5 hours, got %v", got)
	}
}

func TestSleepRecordDurationWrapsClockTimes(t *testing.T) {
	// wake stored on the same calendar day as sleep: 23:30 -> 06:00
	sleep := time.Date(2026, time.March, 3, 23, 30, 0, 0, time.UTC)
	wake := time.Date(2026, time.March, 3, 6, 0, 0, 0, time.UTC)
	record := SleepRecord{SleepTime: &sleep, WakeTime: &wake}

	if got := record.Duration(); got != 390 {
		t.Fatalf("expected wrapped duration 390, got %d", got)
	}
}

func TestSleepRecordDurationNeverNegative(t *testing.T) {
	sleep := time.Date(2026, time.March, 5, 23, 0, 0, 0, time.UTC)
	wake := time.Date(2026, time.March, 1, 6, 0, 0, 0, time.UTC)
	record := SleepRecord{SleepTime: &sleep, WakeTime: &wake}

	if got := record.Duration(); got != 0 {
		t.Fatalf("expected clamped duration 0, got %d", got)
	}
}

func TestSleepRecordSetWakeTimeOverridesStoredDuration(t *testing.T) {
	sleep := time.Date(2026, time.March, 3, 22, 0, 0, 0, time.UTC)
	wake := time.Date(2026, time.March, 4, 7, 15, 0, 0, time.UTC)
	record := SleepRecord{SleepTime: &sleep, DurationMinutes: 12}

	record.SetWakeTime(&wake)
	if record.DurationMinutes != 555 {
		t.Fatalf("expected recomputed duration 555, got %d", record.DurationMinutes)
	}
}

func TestSleepQualityScores(t *testing.T) {
	cases := map[SleepQuality]int{
		SleepExcellent: 5,
		SleepGood:      4,
		SleepFair:      3,
		SleepPoor:      2,
		SleepVeryPoor:  1,
		"":             0,
		"AMAZING":      0,
	}
	for quality, want := range cases {
		if got := quality.Score(); got != want {
			t.Fatalf("%q score = %d, want %d", quality, got, want)
		}
	}
}
