package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"payledger/internal/models/db_models"
)

type MerchantRepository interface {
	Insert(ctx context.Context, merchant *db_models.Merchant) error
	FindById(ctx context.Context, id uuid.UUID) (*db_models.Merchant, error)
	FindAll(ctx context.Context, page, pageSize int) ([]db_models.Merchant, int64, error)
}

type merchantRepository struct {
	db *gorm.DB
}

func NewMerchantRepository(db *gorm.DB) MerchantRepository {
	return &merchantRepository{db: db}
}

func (m *merchantRepository) Insert(ctx context.Context, merchant *db_models.Merchant) error {
	return m.db.WithContext(ctx).Create(merchant).Error
}

func (m *merchantRepository) FindById(ctx context.Context, id uuid.UUID) (*db_models.Merchant, error) {
	var merchant db_models.Merchant
	err := m.db.WithContext(ctx).First(&merchant, "id = ?", id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &merchant, nil
}

func (m *merchantRepository) FindAll(ctx context.Context, page, pageSize int) ([]db_models.Merchant, int64, error) {
	var (
		merchants []db_models.Merchant
		total     int64
	)

	if err := m.db.WithContext(ctx).Model(&db_models.Merchant{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := m.db.WithContext(ctx).
		Order("name ASC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&merchants).Error
	if err != nil {
		return nil, 0, err
	}

	return merchants, total, nil
}
