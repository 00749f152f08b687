package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

type ExerciseType string

const (
	ExerciseRunning    ExerciseType = "RUNNING"
	ExerciseWalking    ExerciseType = "WALKING"
	ExerciseCycling    ExerciseType = "CYCLING"
	ExerciseSwimming   ExerciseType = "SWIMMING"
	ExerciseYoga       ExerciseType = "YOGA"
	ExerciseGym        ExerciseType = "GYM"
	ExerciseBasketball ExerciseType = "BASKETBALL"
	ExerciseFootball   ExerciseType = "FOOTBALL"
	ExerciseBadminton  ExerciseType = "BADMINTON"
	ExerciseTennis     ExerciseType = "TENNIS"
	ExerciseHiking     ExerciseType = "HIKING"
	ExerciseDancing    ExerciseType = "DANCING"
	ExerciseOther      ExerciseType = "OTHER"
)

var exerciseTypeLabels = map[ExerciseType]string{
	ExerciseRunning:    "Running",
	ExerciseWalking:    "Walking",
	ExerciseCycling:    "Cycling",
	ExerciseSwimming:   "Swimming",
	ExerciseYoga:       "Yoga",
	ExerciseGym:        "Gym",
	ExerciseBasketball: "Basketball",
	ExerciseFootball:   "Football",
	ExerciseBadminton:  "Badminton",
	ExerciseTennis:     "Tennis",
	ExerciseHiking:     "Hiking",
	ExerciseDancing:    "Dancing",
	ExerciseOther:      "Other",
}

func (exercise ExerciseType) Valid() bool {
	_, ok := exerciseTypeLabels[exercise]
	return ok
}

func (exercise ExerciseType) Label() string {
	return exerciseTypeLabels[exercise]
}

// IntensityLevel is ordered: Level() grows from LOW to VERY_HIGH.
type IntensityLevel string

const (
	IntensityLow      IntensityLevel = "LOW"
	IntensityMedium   IntensityLevel = "MEDIUM"
	IntensityHigh     IntensityLevel = "HIGH"
	IntensityVeryHigh IntensityLevel = "VERY_HIGH"
)

func (intensity IntensityLevel) Level() int {
	switch intensity {
	case IntensityLow:
		return 1
	case IntensityMedium:
		return 2
	case IntensityHigh:
		return 3
	case IntensityVeryHigh:
		return 4
	default:
		return 0
	}
}

func (intensity IntensityLevel) Valid() bool {
	return intensity.Level() > 0
}

func (intensity IntensityLevel) Label() string {
	switch intensity {
	case IntensityLow:
		return "Low"
	case IntensityMedium:
		return "Medium"
	case IntensityHigh:
		return "High"
	case IntensityVeryHigh:
		return "Very high"
	default:
		return ""
	}
}

type ExerciseRecord struct {
	ID              uint         `gorm:"primaryKey"`
	ExerciseType    ExerciseType `gorm:"type:text;not null;default:''"`
	CustomTypeName  string
	StartTime       *time.Time `gorm:"index"`
	EndTime         *time.Time
	DurationMinutes int64          `gorm:"not null;default:0"`
	Intensity       IntensityLevel `gorm:"type:text;not null;default:''"`
	CaloriesBurned  float64        `gorm:"not null;default:0"`
	Distance        float64        `gorm:"not null;default:0"`
	Steps           int            `gorm:"not null;default:0"`
	Note            string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Duration is derived from the start and end times whenever both are set;
// otherwise the caller-supplied DurationMinutes is used.
func (record ExerciseRecord) Duration() int64 {
	if record.StartTime == nil || record.EndTime == nil {
		return record.DurationMinutes
	}
	return int64(record.EndTime.Sub(*record.StartTime) / time.Minute)
}

func (record *ExerciseRecord) SetEndTime(end *time.Time) {
	record.EndTime = end
	record.DurationMinutes = record.Duration()
}

func (record ExerciseRecord) TypeLabel() string {
	if record.ExerciseType == ExerciseOther {
		if custom := strings.TrimSpace(record.CustomTypeName); custom != "" {
			return custom
		}
	}
	return record.ExerciseType.Label()
}

func (record *ExerciseRecord) BeforeSave(*gorm.DB) error {
	record.StartTime = utcPointer(record.StartTime)
	record.EndTime = utcPointer(record.EndTime)
	record.DurationMinutes = record.Duration()
	return nil
}
