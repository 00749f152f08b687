package services

import (
	"testing"
	"time"
)

func TestDateAtLocationUsesLocalCalendarDay(t *testing.T) {
	location := time.FixedZone("UTC+3", 3*60*60)
	value := time.Date(2026, time.March, 1, 22, 30, 0, 0, time.UTC)

	day := DateAtLocation(value, location)
	if got := day.Format("2006-01-02 15:04"); got != "2026-03-02 00:00" {
		t.Fatalf("expected local midnight 2026-03-02 00:00, got %s", got)
	}
}

func TestDateAtLocationDefaultsToUTC(t *testing.T) {
	value := time.Date(2026, time.March, 1, 22, 30, 0, 0, time.UTC)
	if got := DateAtLocation(value, nil); !got.Equal(time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("expected UTC midnight, got %s", got)
	}
}

func TestEndOfDayIsLastInstant(t *testing.T) {
	value := time.Date(2026, time.March, 1, 8, 0, 0, 0, time.UTC)
	end := EndOfDay(value, time.UTC)

	if end.Day() != 1 || end.Hour() != 23 || end.Minute() != 59 || end.Second() != 59 {
		t.Fatalf("expected 2026-03-01 23:59:59.999999999, got %s", end)
	}
	if !end.Add(time.Nanosecond).Equal(time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("expected next instant to be next midnight, got %s", end.Add(time.Nanosecond))
	}
}
