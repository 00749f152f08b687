package db

import (
	"context"
	"time"

	"github.com/terraincognita07/healthlog/internal/models"
	"gorm.io/gorm"
)

type Repositories struct {
	Diet     *DietRepository
	Exercise *ExerciseRepository
	Sleep    *SleepRepository
	Settings *SettingRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		Diet:     NewDietRepository(database),
		Exercise: NewExerciseRepository(database),
		Sleep:    NewSleepRepository(database),
		Settings: NewSettingRepository(database),
	}
}

func (repos *Repositories) QueryDiet(ctx context.Context, from time.Time, to time.Time) ([]models.DietRecord, error) {
	return repos.Diet.ListBetween(ctx, from, to)
}

func (repos *Repositories) QueryExercise(ctx context.Context, from time.Time, to time.Time) ([]models.ExerciseRecord, error) {
	return repos.Exercise.ListBetween(ctx, from, to)
}

func (repos *Repositories) QuerySleep(ctx context.Context, from time.Time, to time.Time) ([]models.SleepRecord, error) {
	return repos.Sleep.ListBetween(ctx, from, to)
}
