package api

import (
	"time"

	"github.com/terraincognita07/healthlog/internal/models"
)

type dietView struct {
	ID         uint       `json:"id"`
	FoodName   string     `json:"food_name"`
	MealType   string     `json:"meal_type"`
	IntakeTime *time.Time `json:"intake_time"`
	Calories   float64    `json:"calories"`
	Protein    float64    `json:"protein"`
	Carbs      float64    `json:"carbs"`
	Fat        float64    `json:"fat"`
	Amount     float64    `json:"amount"`
	Unit       string     `json:"unit"`
	Note       string     `json:"note"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

type exerciseView struct {
	ID              uint       `json:"id"`
	ExerciseType    string     `json:"exercise_type"`
	TypeLabel       string     `json:"type_label"`
	CustomTypeName  string     `json:"custom_type_name"`
	StartTime       *time.Time `json:"start_time"`
	EndTime         *time.Time `json:"end_time"`
	DurationMinutes int64      `json:"duration_minutes"`
	Intensity       string     `json:"intensity"`
	CaloriesBurned  float64    `json:"calories_burned"`
	Distance        float64    `json:"distance"`
	Steps           int        `json:"steps"`
	Note            string     `json:"note"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

type sleepView struct {
	ID                  uint       `json:"id"`
	SleepTime           *time.Time `json:"sleep_time"`
	WakeTime            *time.Time `json:"wake_time"`
	DurationMinutes     int64      `json:"duration_minutes"`
	DurationHours       float64    `json:"duration_hours"`
	Quality             string     `json:"quality"`
	WakeUpCount         int        `json:"wake_up_count"`
	SleepLatencyMinutes int        `json:"sleep_latency_minutes"`
	HasDream            bool       `json:"has_dream"`
	DreamDescription    string     `json:"dream_description"`
	Note                string     `json:"note"`
	RecordDate          string     `json:"record_date"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

func newDietView(record models.DietRecord) dietView {
	return dietView{
		ID:         record.ID,
		FoodName:   record.FoodName,
		MealType:   string(record.MealType),
		IntakeTime: record.IntakeTime,
		Calories:   record.Calories,
		Protein:    record.Protein,
		Carbs:      record.Carbs,
		Fat:        record.Fat,
		Amount:     record.Amount,
		Unit:       record.Unit,
		Note:       record.Note,
		CreatedAt:  record.CreatedAt,
		UpdatedAt:  record.UpdatedAt,
	}
}

func newExerciseView(record models.ExerciseRecord) exerciseView {
	return exerciseView{
		ID:              record.ID,
		ExerciseType:    string(record.ExerciseType),
		TypeLabel:       record.TypeLabel(),
		CustomTypeName:  record.CustomTypeName,
		StartTime:       record.StartTime,
		EndTime:         record.EndTime,
		DurationMinutes: record.Duration(),
		Intensity:       string(record.Intensity),
		CaloriesBurned:  record.CaloriesBurned,
		Distance:        record.Distance,
		Steps:           record.Steps,
		Note:            record.Note,
		CreatedAt:       record.CreatedAt,
		UpdatedAt:       record.UpdatedAt,
	}
}

func newSleepView(record models.SleepRecord, location *time.Location) sleepView {
	return sleepView{
		ID:                  record.ID,
		SleepTime:           record.SleepTime,
		WakeTime:            record.WakeTime,
		DurationMinutes:     record.Duration(),
		DurationHours:       record.DurationHours(),
		Quality:             string(record.Quality),
		WakeUpCount:         record.WakeUpCount,
		SleepLatencyMinutes: record.SleepLatencyMinutes,
		HasDream:            record.HasDream,
		DreamDescription:    record.DreamDescription,
		Note:                record.Note,
		RecordDate:          record.RecordDate.In(location).Format("2006-01-02"),
		CreatedAt:           record.CreatedAt,
		UpdatedAt:           record.UpdatedAt,
	}
}

func mapViews[T any, V any](records []T, view func(T) V) []V {
	views := make([]V, 0, len(records))
	for _, record := range records {
		views = append(views, view(record))
	}
	return views
}
