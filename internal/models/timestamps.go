package models

import "time"

// Stored timestamps are kept in UTC so text-encoded sqlite columns compare in order.
func utcPointer(value *time.Time) *time.Time {
	if value == nil {
		return nil
	}
	normalized := value.UTC()
	return &normalized
}
