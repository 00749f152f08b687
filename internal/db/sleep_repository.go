package db

import (
	"context"
	"time"

	"github.com/terraincognita07/healthlog/internal/models"
	"gorm.io/gorm"
)

type SleepRepository struct {
	database *gorm.DB
}

func NewSleepRepository(database *gorm.DB) *SleepRepository {
	return &SleepRepository{database: database}
}

// ListBetween buckets by record date rather than by sleep time.
func (repo *SleepRepository) ListBetween(ctx context.Context, from time.Time, to time.Time) ([]models.SleepRecord, error) {
	records := make([]models.SleepRecord, 0)
	if err := repo.database.WithContext(ctx).
		Where("record_date >= ? AND record_date <= ?", from.UTC(), to.UTC()).
		Order("record_date DESC, id DESC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (repo *SleepRepository) FindByID(ctx context.Context, id uint) (models.SleepRecord, error) {
	var record models.SleepRecord
	if err := repo.database.WithContext(ctx).First(&record, id).Error; err != nil {
		return models.SleepRecord{}, err
	}
	return record, nil
}

func (repo *SleepRepository) Create(ctx context.Context, record *models.SleepRecord) error {
	return repo.database.WithContext(ctx).Create(record).Error
}

func (repo *SleepRepository) Save(ctx context.Context, record *models.SleepRecord) error {
	return repo.database.WithContext(ctx).Save(record).Error
}

func (repo *SleepRepository) Delete(ctx context.Context, id uint) (bool, error) {
	result := repo.database.WithContext(ctx).Delete(&models.SleepRecord{}, id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
