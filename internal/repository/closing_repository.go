package repository

import (
	"burger_pos/internal/models"
	"time"

	"gorm.io/gorm"
)

type ClosingRepository interface {
	Create(closing *models.DailyClosing) error
	GetByID(id uint) (*models.DailyClosing, error)
	GetByDateRange(startDate, endDate time.Time) ([]models.DailyClosing, error)
	GetAll() ([]models.DailyClosing, error)
}

type closingRepository struct {
	db *gorm.DB
}

func NewClosingRepository(db *gorm.DB) ClosingRepository {
	return &closingRepository{db: db}
}

// Create stores the closing together with its entries.
func (r *closingRepository) Create(closing *models.DailyClosing) error {
	return r.db.Create(closing).Error
}

func (r *closingRepository) GetByID(id uint) (*models.DailyClosing, error) {
	var closing models.DailyClosing
	err := r.db.Preload("Entries", func(db *gorm.DB) *gorm.DB {
		return db.Order("order_number ASC")
	}).First(&closing, id).Error
	if err != nil {
		return nil, err
	}
	return &closing, nil
}

func (r *closingRepository) GetByDateRange(startDate, endDate time.Time) ([]models.DailyClosing, error) {
	var closings []models.DailyClosing
	err := r.db.Where("closed_at BETWEEN ? AND ?", startDate, endDate).
		Order("closed_at DESC").
		Find(&closings).Error
	return closings, err
}

func (r *closingRepository) GetAll() ([]models.DailyClosing, error) {
	var closings []models.DailyClosing
	err := r.db.Order("closed_at DESC").Find(&closings).Error
	return closings, err
}
