package services

import (
	"context"
	"fmt"

	"payledger/internal/models/response_models"
	"payledger/internal/repositories"
)

type PaymentMethodServiceInterface interface {
	GetPaymentMethods(ctx context.Context) ([]response_models.PaymentMethodResponse, error)
}

type PaymentMethodService struct {
	repo repositories.PaymentMethodRepository
}

func NewPaymentMethodService(repo repositories.PaymentMethodRepository) PaymentMethodServiceInterface {
	return &PaymentMethodService{repo: repo}
}

func (p *PaymentMethodService) GetPaymentMethods(ctx context.Context) ([]response_models.PaymentMethodResponse, error) {
	methods, err := p.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list payment methods: %w", err)
	}

	out := make([]response_models.PaymentMethodResponse, 0, len(methods))
	for _, m := range methods {
		out = append(out, response_models.PaymentMethodResponse{
			ID:         m.ID,
			MethodName: m.MethodName,
			Provider:   m.Provider,
		})
	}
	return out, nil
}
