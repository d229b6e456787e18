package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"payledger/internal/models/db_models"
	"payledger/internal/models/request_models"
	"payledger/internal/models/response_models"
	"payledger/internal/repositories"
	"payledger/pkg/utils"
)

type AccountServiceInterface interface {
	CreateAccount(ctx context.Context, request request_models.CreateAccountRequest) (*response_models.AccountResponse, error)
	GetAccountById(ctx context.Context, id uuid.UUID) (*response_models.AccountResponse, error)
	GetAccountsByMerchantId(ctx context.Context, merchantID uuid.UUID, query request_models.PageQuery) (*response_models.PagedResult[response_models.AccountResponse], error)
}

type AccountService struct {
	accountRepo repositories.AccountRepository
	merchants   MerchantLookup
	log         *zap.Logger
}

func NewAccountService(accountRepo repositories.AccountRepository, merchants MerchantLookup, log *zap.Logger) AccountServiceInterface {
	return &AccountService{
		accountRepo: accountRepo,
		merchants:   merchants,
		log:         log.Named("accounts"),
	}
}

// CreateAccount opens an account for a merchant. The opening balance is
// recorded separately so reconciliation can tell it apart from ledger activity.
func (a *AccountService) CreateAccount(ctx context.Context, request request_models.CreateAccountRequest) (*response_models.AccountResponse, error) {
	merchant, err := a.merchants.FindById(ctx, request.MerchantID)
	if err != nil {
		return nil, fmt.Errorf("find merchant: %w", err)
	}
	if merchant == nil {
		return nil, utils.NotFound("Merchant not found")
	}

	opening := decimal.Zero
	if request.OpeningBalance != nil {
		opening = *request.OpeningBalance
		if opening.IsNegative() {
			return nil, utils.Invalid("Opening balance must not be negative")
		}
		if !opening.Equal(opening.Round(2)) {
			return nil, utils.Invalid("Opening balance must have at most two decimal places")
		}
	}

	account := &db_models.Account{
		HolderName:     strings.TrimSpace(request.HolderName),
		Balance:        opening,
		OpeningBalance: opening,
		MerchantID:     merchant.ID,
	}

	if err := a.accountRepo.Insert(ctx, account); err != nil {
		return nil, fmt.Errorf("insert account: %w", err)
	}

	a.log.Info("account created",
		zap.Stringer("account_id", account.ID),
		zap.Stringer("merchant_id", merchant.ID),
		zap.String("opening_balance", opening.StringFixed(2)))

	return toAccountResponse(account), nil
}

func (a *AccountService) GetAccountById(ctx context.Context, id uuid.UUID) (*response_models.AccountResponse, error) {
	account, err := a.accountRepo.FindById(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find account: %w", err)
	}
	if account == nil {
		return nil, utils.NotFound("Account not found")
	}
	return toAccountResponse(account), nil
}

func (a *AccountService) GetAccountsByMerchantId(ctx context.Context, merchantID uuid.UUID, query request_models.PageQuery) (*response_models.PagedResult[response_models.AccountResponse], error) {
	page, pageSize, err := normalizePage(query.Page, query.PageSize)
	if err != nil {
		return nil, err
	}

	merchant, err := a.merchants.FindById(ctx, merchantID)
	if err != nil {
		return nil, fmt.Errorf("find merchant: %w", err)
	}
	if merchant == nil {
		return nil, utils.NotFound("Merchant not found")
	}

	accounts, total, err := a.accountRepo.FindByMerchant(ctx, merchantID, strings.TrimSpace(query.Search), page, pageSize)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}

	items := make([]response_models.AccountResponse, 0, len(accounts))
	for i := range accounts {
		items = append(items, *toAccountResponse(&accounts[i]))
	}

	result := response_models.NewPagedResult(items, page, pageSize, total)
	return &result, nil
}
