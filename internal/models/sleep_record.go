package models

import (
	"time"

	"gorm.io/gorm"
)

type SleepQuality string

const (
	SleepExcellent SleepQuality = "EXCELLENT"
	SleepGood      SleepQuality = "GOOD"
	SleepFair      SleepQuality = "FAIR"
	SleepPoor      SleepQuality = "POOR"
	SleepVeryPoor  SleepQuality = "VERY_POOR"
)

// Score maps quality to 1..5; unknown or empty quality scores 0.
func (quality SleepQuality) Score() int {
	switch quality {
	case SleepExcellent:
		return 5
	case SleepGood:
		return 4
	case SleepFair:
		return 3
	case SleepPoor:
		return 2
	case SleepVeryPoor:
		return 1
	default:
		return 0
	}
}

func (quality SleepQuality) Valid() bool {
	return quality.Score() > 0
}

func (quality SleepQuality) Label() string {
	switch quality {
	case SleepExcellent:
		return "Excellent"
	case SleepGood:
		return "Good"
	case SleepFair:
		return "Fair"
	case SleepPoor:
		return "Poor"
	case SleepVeryPoor:
		return "Very poor"
	default:
		return ""
	}
}

type SleepRecord struct {
	ID                  uint `gorm:"primaryKey"`
	SleepTime           *time.Time
	WakeTime            *time.Time
	DurationMinutes     int64        `gorm:"not null;default:0"`
	Quality             SleepQuality `gorm:"type:text;not null;default:''"`
	WakeUpCount         int          `gorm:"not null;default:0"`
	SleepLatencyMinutes int          `gorm:"not null;default:0"`
	HasDream            bool         `gorm:"not null;default:false"`
	DreamDescription    string
	Note                string
	RecordDate          time.Time `gorm:"not null;index"`
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// Duration is wake minus sleep in whole minutes. A wake time before the sleep
// time wraps around midnight; the result is never negative.
func (record SleepRecord) Duration() int64 {
	if record.SleepTime == nil || record.WakeTime == nil {
		return record.DurationMinutes
	}
	diff := record.WakeTime.Sub(*record.SleepTime)
	if diff < 0 {
		diff += 24 * time.Hour
	}
	if diff < 0 {
		return 0
	}
	return int64(diff / time.Minute)
}

func (record SleepRecord) DurationHours() float64 {
	return float64(record.Duration()) / 60.0
}

func (record *SleepRecord) SetWakeTime(wake *time.Time) {
	record.WakeTime = wake
	record.DurationMinutes = record.Duration()
}

func (record *SleepRecord) BeforeSave(*gorm.DB) error {
	record.SleepTime = utcPointer(record.SleepTime)
	record.WakeTime = utcPointer(record.WakeTime)
	record.RecordDate = record.RecordDate.UTC()
	record.DurationMinutes = record.Duration()
	return nil
}
