package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"payledger/internal/models/db_models"
	"payledger/internal/models/request_models"
	"payledger/internal/models/response_models"
	"payledger/internal/repositories"
	"payledger/pkg/utils"
)

type MerchantServiceInterface interface {
	CreateMerchant(ctx context.Context, request request_models.CreateMerchantRequest) (*response_models.MerchantResponse, error)
	GetMerchantById(ctx context.Context, id uuid.UUID) (*response_models.MerchantResponse, error)
	GetAllMerchants(ctx context.Context, page, pageSize int) (*response_models.PagedResult[response_models.MerchantResponse], error)
}

type MerchantService struct {
	merchantRepo repositories.MerchantRepository
	log          *zap.Logger
}

func NewMerchantService(merchantRepo repositories.MerchantRepository, log *zap.Logger) MerchantServiceInterface {
	return &MerchantService{
		merchantRepo: merchantRepo,
		log:          log.Named("merchants"),
	}
}

func (m *MerchantService) CreateMerchant(ctx context.Context, request request_models.CreateMerchantRequest) (*response_models.MerchantResponse, error) {
	merchant := &db_models.Merchant{
		Name:  strings.TrimSpace(request.Name),
		Email: strings.ToLower(strings.TrimSpace(request.Email)),
	}

	if err := m.merchantRepo.Insert(ctx, merchant); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, utils.Conflict("Merchant email already exists")
		}
		return nil, fmt.Errorf("insert merchant: %w", err)
	}

	m.log.Info("merchant created", zap.Stringer("merchant_id", merchant.ID), zap.String("name", merchant.Name))
	return toMerchantResponse(merchant), nil
}

func (m *MerchantService) GetMerchantById(ctx context.Context, id uuid.UUID) (*response_models.MerchantResponse, error) {
	merchant, err := m.merchantRepo.FindById(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find merchant: %w", err)
	}
	if merchant == nil {
		return nil, utils.NotFound("Merchant not found")
	}
	return toMerchantResponse(merchant), nil
}

func (m *MerchantService) GetAllMerchants(ctx context.Context, page, pageSize int) (*response_models.PagedResult[response_models.MerchantResponse], error) {
	page, pageSize, err := normalizePage(page, pageSize)
	if err != nil {
		return nil, err
	}

	merchants, total, err := m.merchantRepo.FindAll(ctx, page, pageSize)
	if err != nil {
		return nil, fmt.Errorf("list merchants: %w", err)
	}

	items := make([]response_models.MerchantResponse, 0, len(merchants))
	for i := range merchants {
		items = append(items, *toMerchantResponse(&merchants[i]))
	}

	result := response_models.NewPagedResult(items, page, pageSize, total)
	return &result, nil
}
