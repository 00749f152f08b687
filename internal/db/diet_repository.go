package db

import (
	"context"
	"time"

	"github.com/terraincognita07/healthlog/internal/models"
	"gorm.io/gorm"
)

type DietRepository struct {
	database *gorm.DB
}

func NewDietRepository(database *gorm.DB) *DietRepository {
	return &DietRepository{database: database}
}

// ListBetween returns records whose intake time lies in [from, to], newest first.
func (repo *DietRepository) ListBetween(ctx context.Context, from time.Time, to time.Time) ([]models.DietRecord, error) {
	records := make([]models.DietRecord, 0)
	if err := repo.database.WithContext(ctx).
		Where("intake_time IS NOT NULL AND intake_time >= ? AND intake_time <= ?", from.UTC(), to.UTC()).
		Order("intake_time DESC, id DESC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (repo *DietRepository) FindByID(ctx context.Context, id uint) (models.DietRecord, error) {
	var record models.DietRecord
	if err := repo.database.WithContext(ctx).First(&record, id).Error; err != nil {
		return models.DietRecord{}, err
	}
	return record, nil
}

func (repo *DietRepository) Create(ctx context.Context, record *models.DietRecord) error {
	return repo.database.WithContext(ctx).Create(record).Error
}

func (repo *DietRepository) Save(ctx context.Context, record *models.DietRecord) error {
	return repo.database.WithContext(ctx).Save(record).Error
}

func (repo *DietRepository) Delete(ctx context.Context, id uint) (bool, error) {
	result := repo.database.WithContext(ctx).Delete(&models.DietRecord{}, id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
