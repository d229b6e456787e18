package services

import (
	"context"

	"github.com/google/uuid"

	"payledger/internal/models/db_models"
)

// MerchantLookup resolves merchants by id; (nil, nil) means not found.
type MerchantLookup interface {
	FindById(ctx context.Context, id uuid.UUID) (*db_models.Merchant, error)
}

// PaymentMethodLookup resolves payment methods by id; (nil, nil) means not found.
type PaymentMethodLookup interface {
	FindById(ctx context.Context, id uuid.UUID) (*db_models.PaymentMethod, error)
}
