package services

import "time"

func DateAtLocation(value time.Time, location *time.Location) time.Time {
	if location == nil {
		location = time.UTC
	}
	localized := value.In(location)
	year, month, day := localized.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, location)
}

// EndOfDay is the last representable instant of the calendar day holding value.
func EndOfDay(value time.Time, location *time.Location) time.Time {
	return DateAtLocation(value, location).AddDate(0, 0, 1).Add(-time.Nanosecond)
}
