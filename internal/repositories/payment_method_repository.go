package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"payledger/internal/models/db_models"
)

type PaymentMethodRepository interface {
	Insert(ctx context.Context, method *db_models.PaymentMethod) error
	FindById(ctx context.Context, id uuid.UUID) (*db_models.PaymentMethod, error)
	FindAll(ctx context.Context) ([]db_models.PaymentMethod, error)
}

type paymentMethodRepository struct {
	db *gorm.DB
}

func NewPaymentMethodRepository(db *gorm.DB) PaymentMethodRepository {
	return &paymentMethodRepository{db: db}
}

func (p *paymentMethodRepository) Insert(ctx context.Context, method *db_models.PaymentMethod) error {
	return p.db.WithContext(ctx).Create(method).Error
}

func (p *paymentMethodRepository) FindById(ctx context.Context, id uuid.UUID) (*db_models.PaymentMethod, error) {
	var method db_models.PaymentMethod
	err := p.db.WithContext(ctx).First(&method, "id = ?", id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &method, nil
}

func (p *paymentMethodRepository) FindAll(ctx context.Context) ([]db_models.PaymentMethod, error) {
	var methods []db_models.PaymentMethod
	err := p.db.WithContext(ctx).Order("method_name ASC").Find(&methods).Error
	return methods, err
}
