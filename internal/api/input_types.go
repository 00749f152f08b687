package api

import (
	"fmt"
	"strings"
	"time"

	"github.com/terraincognita07/healthlog/internal/models"
	"github.com/terraincognita07/healthlog/internal/services"
)

type sessionInput struct {
	Password string `json:"password" form:"password"`
}

type passwordInput struct {
	CurrentPassword string `json:"current_password" form:"current_password"`
	Password        string `json:"password" form:"password"`
	ConfirmPassword string `json:"confirm_password" form:"confirm_password"`
}

type reportInput struct {
	From     string `json:"from" form:"from"`
	To       string `json:"to" form:"to"`
	Period   string `json:"period" form:"period"`
	Password string `json:"password" form:"password"`
}

type dietPayload struct {
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
}

func (payload dietPayload) record() models.DietRecord {
	return models.DietRecord{
		FoodName:   payload.FoodName,
		MealType:   models.MealType(normalizeEnum(payload.MealType)),
		IntakeTime: payload.IntakeTime,
		Calories:   payload.Calories,
		Protein:    payload.Protein,
		Carbs:      payload.Carbs,
		Fat:        payload.Fat,
		Amount:     payload.Amount,
		Unit:       strings.TrimSpace(payload.Unit),
		Note:       payload.Note,
	}
}

type exercisePayload struct {
	ExerciseType    string     `json:"exercise_type"`
	CustomTypeName  string     `json:"custom_type_name"`
	StartTime       *time.Time `json:"start_time"`
	EndTime         *time.Time `json:"end_time"`
	DurationMinutes int64      `json:"duration_minutes"`
	Intensity       string     `json:"intensity"`
	CaloriesBurned  float64    `json:"calories_burned"`
	Distance        float64    `json:"distance"`
	Steps           int        `json:"steps"`
	Note            string     `json:"note"`
}

func (payload exercisePayload) record() models.ExerciseRecord {
	return models.ExerciseRecord{
		ExerciseType:    models.ExerciseType(normalizeEnum(payload.ExerciseType)),
		CustomTypeName:  strings.TrimSpace(payload.CustomTypeName),
		StartTime:       payload.StartTime,
		EndTime:         payload.EndTime,
		DurationMinutes: payload.DurationMinutes,
		Intensity:       models.IntensityLevel(normalizeEnum(payload.Intensity)),
		CaloriesBurned:  payload.CaloriesBurned,
		Distance:        payload.Distance,
		Steps:           payload.Steps,
		Note:            payload.Note,
	}
}

type sleepPayload struct {
	SleepTime           *time.Time `json:"sleep_time"`
	WakeTime            *time.Time `json:"wake_time"`
	Quality             string     `json:"quality"`
	WakeUpCount         int        `json:"wake_up_count"`
	SleepLatencyMinutes int        `json:"sleep_latency_minutes"`
	HasDream            bool       `json:"has_dream"`
	DreamDescription    string     `json:"dream_description"`
	Note                string     `json:"note"`
	RecordDate          string     `json:"record_date"`
}

func (payload sleepPayload) record(location *time.Location) (models.SleepRecord, error) {
	record := models.SleepRecord{
		SleepTime:           payload.SleepTime,
		WakeTime:            payload.WakeTime,
		Quality:             models.SleepQuality(normalizeEnum(payload.Quality)),
		WakeUpCount:         payload.WakeUpCount,
		SleepLatencyMinutes: payload.SleepLatencyMinutes,
		HasDream:            payload.HasDream,
		DreamDescription:    payload.DreamDescription,
		Note:                payload.Note,
	}

	if raw := strings.TrimSpace(payload.RecordDate); raw != "" {
		day, err := time.ParseInLocation("2006-01-02", raw, location)
		if err != nil {
			return models.SleepRecord{}, fmt.Errorf("%w: record_date must be YYYY-MM-DD", services.ErrRecordInvalid)
		}
		record.RecordDate = day
	}
	return record, nil
}

// normalizeEnum accepts "very high" or "very-high" for VERY_HIGH.
func normalizeEnum(raw string) string {
	normalized := strings.ToUpper(strings.TrimSpace(raw))
	return strings.NewReplacer(" ", "_", "-", "_").Replace(normalized)
}
