package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/terraincognita07/healthlog/internal/models"
	"gorm.io/gorm"
)

var (
	ErrRecordInvalid  = errors.New("record invalid")
	ErrRecordNotFound = errors.New("record not found")
)

type DietStore interface {
	ListBetween(ctx context.Context, from time.Time, to time.Time) ([]models.DietRecord, error)
	FindByID(ctx context.Context, id uint) (models.DietRecord, error)
	Create(ctx context.Context, record *models.DietRecord) error
	Save(ctx context.Context, record *models.DietRecord) error
	Delete(ctx context.Context, id uint) (bool, error)
}

type ExerciseStore interface {
	ListBetween(ctx context.Context, from time.Time, to time.Time) ([]models.ExerciseRecord, error)
	FindByID(ctx context.Context, id uint) (models.ExerciseRecord, error)
	Create(ctx context.Context, record *models.ExerciseRecord) error
	Save(ctx context.Context, record *models.ExerciseRecord) error
	Delete(ctx context.Context, id uint) (bool, error)
}

type SleepStore interface {
	ListBetween(ctx context.Context, from time.Time, to time.Time) ([]models.SleepRecord, error)
	FindByID(ctx context.Context, id uint) (models.SleepRecord, error)
	Create(ctx context.Context, record *models.SleepRecord) error
	Save(ctx context.Context, record *models.SleepRecord) error
	Delete(ctx context.Context, id uint) (bool, error)
}

// RecordService validates records before they reach the store.
type RecordService struct {
	diet     DietStore
	exercise ExerciseStore
	sleep    SleepStore
	location *time.Location
}

func NewRecordService(diet DietStore, exercise ExerciseStore, sleep SleepStore, location *time.Location) *RecordService {
	if location == nil {
		location = time.UTC
	}
	return &RecordService{diet: diet, exercise: exercise, sleep: sleep, location: location}
}

func invalidRecord(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrRecordInvalid, fmt.Sprintf(format, args...))
}

func nonNegative(name string, value float64) error {
	if math.IsNaN(value) || math.IsInf(value, 0) || value < 0 {
		return invalidRecord("%s must be a non-negative number", name)
	}
	return nil
}

func ValidateDietRecord(record *models.DietRecord) error {
	record.FoodName = strings.TrimSpace(record.FoodName)
	if record.FoodName == "" {
		return invalidRecord("food name is required")
	}
	if !record.MealType.Valid() {
		return invalidRecord("unknown meal type %q", record.MealType)
	}
	if record.IntakeTime == nil || record.IntakeTime.IsZero() {
		return invalidRecord("intake time is required")
	}
	for _, field := range []struct {
		name  string
		value float64
	}{
		{"calories", record.Calories},
		{"protein", record.Protein},
		{"carbs", record.Carbs},
		{"fat", record.Fat},
		{"amount", record.Amount},
	} {
		if err := nonNegative(field.name, field.value); err != nil {
			return err
		}
	}
	return nil
}

func ValidateExerciseRecord(record *models.ExerciseRecord) error {
	if !record.ExerciseType.Valid() {
		return invalidRecord("unknown exercise type %q", record.ExerciseType)
	}
	if !record.Intensity.Valid() {
		return invalidRecord("unknown intensity %q", record.Intensity)
	}
	if record.StartTime == nil || record.StartTime.IsZero() {
		return invalidRecord("start time is required")
	}
	if record.EndTime != nil && record.EndTime.Before(*record.StartTime) {
		return invalidRecord("end time is before start time")
	}
	if err := nonNegative("calories burned", record.CaloriesBurned); err != nil {
		return err
	}
	if err := nonNegative("distance", record.Distance); err != nil {
		return err
	}
	if record.Steps < 0 {
		return invalidRecord("steps must be non-negative")
	}
	if record.EndTime == nil && record.DurationMinutes < 0 {
		return invalidRecord("duration must be non-negative")
	}
	record.SetEndTime(record.EndTime)
	return nil
}

func (service *RecordService) ValidateSleepRecord(record *models.SleepRecord) error {
	if record.SleepTime == nil || record.WakeTime == nil {
		return invalidRecord("sleep and wake time are required")
	}
	if record.Quality != "" && !record.Quality.Valid() {
		return invalidRecord("unknown sleep quality %q", record.Quality)
	}
	if record.WakeUpCount < 0 || record.SleepLatencyMinutes < 0 {
		return invalidRecord("counts must be non-negative")
	}
	if record.RecordDate.IsZero() {
		record.RecordDate = DateAtLocation(*record.SleepTime, service.location)
	}
	record.SetWakeTime(record.WakeTime)
	return nil
}

func notFoundOr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrRecordNotFound
	}
	return err
}

func deleted(found bool, err error) error {
	if err != nil {
		return err
	}
	if !found {
		return ErrRecordNotFound
	}
	return nil
}

func (service *RecordService) ListDiet(ctx context.Context, dateRange DateRange) ([]models.DietRecord, error) {
	return service.diet.ListBetween(ctx, dateRange.From, dateRange.To)
}

func (service *RecordService) GetDiet(ctx context.Context, id uint) (models.DietRecord, error) {
	record, err := service.diet.FindByID(ctx, id)
	return record, notFoundOr(err)
}

func (service *RecordService) CreateDiet(ctx context.Context, record *models.DietRecord) error {
	if err := ValidateDietRecord(record); err != nil {
		return err
	}
	record.ID = 0
	return service.diet.Create(ctx, record)
}

func (service *RecordService) UpdateDiet(ctx context.Context, id uint, record *models.DietRecord) error {
	existing, err := service.GetDiet(ctx, id)
	if err != nil {
		return err
	}
	if err := ValidateDietRecord(record); err != nil {
		return err
	}
	record.ID = existing.ID
	record.CreatedAt = existing.CreatedAt
	return service.diet.Save(ctx, record)
}

func (service *RecordService) DeleteDiet(ctx context.Context, id uint) error {
	return deleted(service.diet.Delete(ctx, id))
}

func (service *RecordService) ListExercise(ctx context.Context, dateRange DateRange) ([]models.ExerciseRecord, error) {
	return service.exercise.ListBetween(ctx, dateRange.From, dateRange.To)
}

func (service *RecordService) GetExercise(ctx context.Context, id uint) (models.ExerciseRecord, error) {
	record, err := service.exercise.FindByID(ctx, id)
	return record, notFoundOr(err)
}

func (service *RecordService) CreateExercise(ctx context.Context, record *models.ExerciseRecord) error {
	if err := ValidateExerciseRecord(record); err != nil {
		return err
	}
	record.ID = 0
	return service.exercise.Create(ctx, record)
}

func (service *RecordService) UpdateExercise(ctx context.Context, id uint, record *models.ExerciseRecord) error {
	existing, err := service.GetExercise(ctx, id)
	if err != nil {
		return err
	}
	if err := ValidateExerciseRecord(record); err != nil {
		return err
	}
	record.ID = existing.ID
	record.CreatedAt = existing.CreatedAt
	return service.exercise.Save(ctx, record)
}

func (service *RecordService) DeleteExercise(ctx context.Context, id uint) error {
	return deleted(service.exercise.Delete(ctx, id))
}

func (service *RecordService) ListSleep(ctx context.Context, dateRange DateRange) ([]models.SleepRecord, error) {
	return service.sleep.ListBetween(ctx, dateRange.From, dateRange.To)
}

func (service *RecordService) GetSleep(ctx context.Context, id uint) (models.SleepRecord, error) {
	record, err := service.sleep.FindByID(ctx, id)
	return record, notFoundOr(err)
}

func (service *RecordService) CreateSleep(ctx context.Context, record *models.SleepRecord) error {
	if err := service.ValidateSleepRecord(record); err != nil {
		return err
	}
	record.ID = 0
	return service.sleep.Create(ctx, record)
}

func (service *RecordService) UpdateSleep(ctx context.Context, id uint, record *models.SleepRecord) error {
	existing, err := service.GetSleep(ctx, id)
	if err != nil {
		return err
	}
	if err := service.ValidateSleepRecord(record); err != nil {
		return err
	}
	record.ID = existing.ID
	record.CreatedAt = existing.CreatedAt
	return service.sleep.Save(ctx, record)
}

func (service *RecordService) DeleteSleep(ctx context.Context, id uint) error {
	return deleted(service.sleep.Delete(ctx, id))
}
