package db

import (
	"context"
	"time"

	"github.com/terraincognita07/healthlog/internal/models"
	"gorm.io/gorm"
)

type ExerciseRepository struct {
	database *gorm.DB
}

func NewExerciseRepository(database *gorm.DB) *ExerciseRepository {
	return &ExerciseRepository{database: database}
}

func (repo *ExerciseRepository) ListBetween(ctx context.Context, from time.Time, to time.Time) ([]models.ExerciseRecord, error) {
	records := make([]models.ExerciseRecord, 0)
	if err := repo.database.WithContext(ctx).
		Where("start_time IS NOT NULL AND start_time >= ? AND start_time <= ?", from.UTC(), to.UTC()).
		Order("start_time DESC, id DESC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (repo *ExerciseRepository) FindByID(ctx context.Context, id uint) (models.ExerciseRecord, error) {
	var record models.ExerciseRecord
	if err := repo.database.WithContext(ctx).First(&record, id).Error; err != nil {
		return models.ExerciseRecord{}, err
	}
	return record, nil
}

func (repo *ExerciseRepository) Create(ctx context.Context, record *models.ExerciseRecord) error {
	return repo.database.WithContext(ctx).Create(record).Error
}

func (repo *ExerciseRepository) Save(ctx context.Context, record *models.ExerciseRecord) error {
	return repo.database.WithContext(ctx).Save(record).Error
}

func (repo *ExerciseRepository) Delete(ctx context.Context, id uint) (bool, error) {
	result := repo.database.WithContext(ctx).Delete(&models.ExerciseRecord{}, id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
