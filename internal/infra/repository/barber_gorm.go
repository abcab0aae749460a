package repository

import (
	"context"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barber-booking/internal/infra/dberr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type BarberGormRepository struct {
	db *gorm.DB
}

func NewBarberGormRepository(db *gorm.DB) *BarberGormRepository {
	return &BarberGormRepository{db: db}
}

func (r *BarberGormRepository) List(ctx context.Context) ([]models.Barber, error) {
	barbers := []models.Barber{}
	if err := r.db.WithContext(ctx).
		Order("id ASC").
		Find(&barbers).Error; err != nil {
		return nil, dberr.Classify(err)
	}
	return barbers, nil
}

func (r *BarberGormRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Barber{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return false, dberr.Classify(err)
	}
	return count > 0, nil
}

var _ domain.BarberStore = (*BarberGormRepository)(nil)
