package services

import (
	"math"
	"time"

	"github.com/terraincognita07/healthlog/internal/models"
)

// MaxAverageDays caps the divisor of every per-day average. Ranges longer
// than a month still average over 31 days.
const MaxAverageDays = 31

const (
	PeriodWeek   = "week"
	PeriodMonth  = "month"
	PeriodCustom = "custom"
)

type DietStats struct {
	RecordCount       int     `json:"record_count"`
	TotalCalories     float64 `json:"total_calories"`
	AvgCaloriesPerDay float64 `json:"avg_calories_per_day"`
	TotalProtein      float64 `json:"total_protein"`
	TotalCarbs        float64 `json:"total_carbs"`
	TotalFat          float64 `json:"total_fat"`
}

type ExerciseStats struct {
	RecordCount          int     `json:"record_count"`
	TotalCaloriesBurned  float64 `json:"total_calories_burned"`
	AvgCaloriesPerDay    float64 `json:"avg_calories_per_day"`
	TotalDurationMinutes int64   `json:"total_duration_minutes"`
	AvgDurationPerDay    float64 `json:"avg_duration_per_day"`
}

type SleepStats struct {
	RecordCount      int     `json:"record_count"`
	AvgDurationHours float64 `json:"avg_duration_hours"`
	AvgQualityScore  float64 `json:"avg_quality_score"`
	TotalWakeUpCount int     `json:"total_wake_up_count"`
	AvgWakeUpCount   float64 `json:"avg_wake_up_count"`
}

type ComprehensiveStats struct {
	Diet      DietStats     `json:"diet"`
	Exercise  ExerciseStats `json:"exercise"`
	Sleep     SleepStats    `json:"sleep"`
	StartDate time.Time     `json:"start_date"`
	EndDate   time.Time     `json:"end_date"`
	Period    string        `json:"period"`
	DaySpan   int           `json:"day_span"`
}

// DaySpan is floor((end - start) / 24h) + 1, clamped to [1, MaxAverageDays].
func DaySpan(start time.Time, end time.Time) int {
	days := math.Floor(end.Sub(start).Hours()/24) + 1
	if days > MaxAverageDays {
		return MaxAverageDays
	}
	if days <= 0 {
		return 1
	}
	return int(days)
}

func ComputeDietStats(records []models.DietRecord, start time.Time, end time.Time) DietStats {
	stats := DietStats{RecordCount: len(records)}
	for _, record := range records {
		stats.TotalCalories += record.Calories
		stats.TotalProtein += record.Protein
		stats.TotalCarbs += record.Carbs
		stats.TotalFat += record.Fat
	}

	stats.TotalCalories = finite(stats.TotalCalories)
	stats.TotalProtein = finite(stats.TotalProtein)
	stats.TotalCarbs = finite(stats.TotalCarbs)
	stats.TotalFat = finite(stats.TotalFat)
	stats.AvgCaloriesPerDay = perDay(stats.TotalCalories, DaySpan(start, end))
	return stats
}

func ComputeExerciseStats(records []models.ExerciseRecord, start time.Time, end time.Time) ExerciseStats {
	stats := ExerciseStats{RecordCount: len(records)}
	for _, record := range records {
		stats.TotalCaloriesBurned += record.CaloriesBurned
		stats.TotalDurationMinutes += record.Duration()
	}

	days := DaySpan(start, end)
	stats.TotalCaloriesBurned = finite(stats.TotalCaloriesBurned)
	stats.AvgCaloriesPerDay = perDay(stats.TotalCaloriesBurned, days)
	stats.AvgDurationPerDay = perDay(float64(stats.TotalDurationMinutes), days)
	return stats
}

// ComputeSleepStats averages over records rather than days. A record with no
// quality contributes a score of 0.
func ComputeSleepStats(records []models.SleepRecord, start time.Time, end time.Time) SleepStats {
	stats := SleepStats{RecordCount: len(records)}
	if len(records) == 0 {
		return stats
	}

	var totalHours float64
	var totalScore int
	for _, record := range records {
		totalHours += record.DurationHours()
		totalScore += record.Quality.Score()
		stats.TotalWakeUpCount += record.WakeUpCount
	}

	count := float64(len(records))
	stats.AvgDurationHours = finite(totalHours / count)
	stats.AvgQualityScore = finite(float64(totalScore) / count)
	stats.AvgWakeUpCount = finite(float64(stats.TotalWakeUpCount) / count)
	return stats
}

func ComputeComprehensive(diet []models.DietRecord, exercise []models.ExerciseRecord, sleep []models.SleepRecord, start time.Time, end time.Time, period string) ComprehensiveStats {
	return ComprehensiveStats{
		Diet:      ComputeDietStats(diet, start, end),
		Exercise:  ComputeExerciseStats(exercise, start, end),
		Sleep:     ComputeSleepStats(sleep, start, end),
		StartDate: start,
		EndDate:   end,
		Period:    period,
		DaySpan:   DaySpan(start, end),
	}
}

func perDay(total float64, days int) float64 {
	if days <= 0 {
		return 0
	}
	return finite(total / float64(days))
}

func finite(value float64) float64 {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0
	}
	return value
}
