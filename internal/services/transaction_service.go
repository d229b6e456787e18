package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	dbm "payledger/internal/models/db_models"
	"payledger/internal/models/request_models"
	"payledger/internal/models/response_models"
	"payledger/internal/repositories"
	"payledger/pkg/utils"
)

type TransactionServiceInterface interface {
	GetAccountTransactions(ctx context.Context, accountID uuid.UUID, query request_models.TransactionQuery) (*response_models.PagedResult[response_models.TransactionResponse], error)
	GetMerchantTransactions(ctx context.Context, merchantID uuid.UUID) ([]response_models.TransactionResponse, error)
}

type TransactionService struct {
	accountRepo repositories.AccountRepository
	merchants   MerchantLookup
	txnRepo     repositories.TransactionRepository
}

func NewTransactionService(accountRepo repositories.AccountRepository, merchants MerchantLookup, txnRepo repositories.TransactionRepository) TransactionServiceInterface {
	return &TransactionService{
		accountRepo: accountRepo,
		merchants:   merchants,
		txnRepo:     txnRepo,
	}
}

// GetAccountTransactions pages through an account's history, newest first.
func (t *TransactionService) GetAccountTransactions(ctx context.Context, accountID uuid.UUID, query request_models.TransactionQuery) (*response_models.PagedResult[response_models.TransactionResponse], error) {
	page, pageSize, err := normalizePage(query.Page, query.PageSize)
	if err != nil {
		return nil, err
	}

	filter, err := transactionFilterFrom(query)
	if err != nil {
		return nil, err
	}

	account, err := t.accountRepo.FindById(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("find account: %w", err)
	}
	if account == nil {
		return nil, utils.NotFound("Account not found")
	}

	txns, total, err := t.txnRepo.FindByAccount(ctx, accountID, filter, page, pageSize)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}

	items := make([]response_models.TransactionResponse, 0, len(txns))
	for i := range txns {
		items = append(items, *toTransactionResponse(&txns[i]))
	}

	result := response_models.NewPagedResult(items, page, pageSize, total)
	return &result, nil
}

// GetMerchantTransactions returns every transaction across the merchant's
// accounts, newest first.
func (t *TransactionService) GetMerchantTransactions(ctx context.Context, merchantID uuid.UUID) ([]response_models.TransactionResponse, error) {
	merchant, err := t.merchants.FindById(ctx, merchantID)
	if err != nil {
		return nil, fmt.Errorf("find merchant: %w", err)
	}
	if merchant == nil {
		return nil, utils.NotFound("Merchant not found")
	}

	txns, err := t.txnRepo.FindByMerchant(ctx, merchantID)
	if err != nil {
		return nil, fmt.Errorf("list merchant transactions: %w", err)
	}

	items := make([]response_models.TransactionResponse, 0, len(txns))
	for i := range txns {
		items = append(items, *toTransactionResponse(&txns[i]))
	}
	return items, nil
}

func transactionFilterFrom(query request_models.TransactionQuery) (repositories.TransactionFilter, error) {
	var filter repositories.TransactionFilter

	switch dbm.TransactionType(query.Type) {
	case "":
	case dbm.TxnTypePayment, dbm.TxnTypeRefund:
		txnType := dbm.TransactionType(query.Type)
		filter.Type = &txnType
	default:
		return filter, utils.Invalid("Type must be Payment or Refund")
	}

	switch dbm.TransactionStatus(query.Status) {
	case "":
	case dbm.TxnStatusPending, dbm.TxnStatusCompleted, dbm.TxnStatusFailed:
		status := dbm.TransactionStatus(query.Status)
		filter.Status = &status
	default:
		return filter, utils.Invalid("Status must be Pending, Completed or Failed")
	}

	if query.StartDate != nil && query.EndDate != nil && query.StartDate.After(*query.EndDate) {
		return filter, utils.Invalid("Start date must not be after end date")
	}
	filter.StartDate = query.StartDate
	filter.EndDate = query.EndDate

	return filter, nil
}
