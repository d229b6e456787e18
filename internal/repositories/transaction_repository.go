package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	dbm "payledger/internal/models/db_models"
)

// ErrDuplicateReference is returned by Insert when the reference number is
// already taken, whichever writer got there first.
var ErrDuplicateReference = errors.New("duplicate transaction reference")

type TransactionFilter struct {
	Type      *dbm.TransactionType
	Status    *dbm.TransactionStatus
	StartDate *time.Time
	EndDate   *time.Time
}

type TypeCount struct {
	Type  dbm.TransactionType `gorm:"column:txn_type"`
	Count int64               `gorm:"column:txn_count"`
}

type TransactionRepository interface {
	WithTx(tx *gorm.DB) TransactionRepository
	Insert(ctx context.Context, txn *dbm.Transaction) error
	FindById(ctx context.Context, id uuid.UUID) (*dbm.Transaction, error)
	FindByReference(ctx context.Context, reference string) (*dbm.Transaction, error)
	FindByAccount(ctx context.Context, accountID uuid.UUID, filter TransactionFilter, page, pageSize int) ([]dbm.Transaction, int64, error)
	FindByMerchant(ctx context.Context, merchantID uuid.UUID) ([]dbm.Transaction, error)
	CountByTypeForMerchant(ctx context.Context, merchantID uuid.UUID) ([]TypeCount, error)
}

type transactionRepository struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) TransactionRepository {
	return &transactionRepository{db: db}
}

func (r *transactionRepository) WithTx(tx *gorm.DB) TransactionRepository {
	return &transactionRepository{db: tx}
}

func (r *transactionRepository) Insert(ctx context.Context, txn *dbm.Transaction) error {
	err := r.db.WithContext(ctx).Create(txn).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateReference
	}
	return err
}

func (r *transactionRepository) FindById(ctx context.Context, id uuid.UUID) (*dbm.Transaction, error) {
	var txn dbm.Transaction
	err := r.db.WithContext(ctx).First(&txn, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &txn, nil
}

func (r *transactionRepository) FindByReference(ctx context.Context, reference string) (*dbm.Transaction, error) {
	var txn dbm.Transaction
	err := r.db.WithContext(ctx).First(&txn, "reference_number = ?", reference).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &txn, nil
}

func (r *transactionRepository) FindByAccount(ctx context.Context, accountID uuid.UUID, filter TransactionFilter, page, pageSize int) ([]dbm.Transaction, int64, error) {
	var (
		txns  []dbm.Transaction
		total int64
	)

	scope := func(db *gorm.DB) *gorm.DB {
		db = db.Where("account_id = ?", accountID)
		if filter.Type != nil {
			db = db.Where("type = ?", *filter.Type)
		}
		if filter.Status != nil {
			db = db.Where("status = ?", *filter.Status)
		}
		if filter.StartDate != nil {
			db = db.Where("date >= ?", filter.StartDate.UTC())
		}
		if filter.EndDate != nil {
			db = db.Where("date <= ?", filter.EndDate.UTC())
		}
		return db
	}

	err := r.db.WithContext(ctx).
		Model(&dbm.Transaction{}).
		Scopes(scope).
		Count(&total).Error
	if err != nil {
		return nil, 0, err
	}

	err = r.db.WithContext(ctx).
		Scopes(scope).
		Order("date DESC").
		Order("id DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&txns).Error
	if err != nil {
		return nil, 0, err
	}

	return txns, total, nil
}

func (r *transactionRepository) FindByMerchant(ctx context.Context, merchantID uuid.UUID) ([]dbm.Transaction, error) {
	var txns []dbm.Transaction
	err := r.db.WithContext(ctx).
		Model(&dbm.Transaction{}).
		Select("transactions.*").
		Joins("JOIN accounts ON accounts.id = transactions.account_id").
		Where("accounts.merchant_id = ?", merchantID).
		Order("transactions.date DESC").
		Find(&txns).Error
	return txns, err
}

func (r *transactionRepository) CountByTypeForMerchant(ctx context.Context, merchantID uuid.UUID) ([]TypeCount, error) {
	var rows []TypeCount
	err := r.db.WithContext(ctx).
		Model(&dbm.Transaction{}).
		Select("transactions.type AS txn_type, COUNT(*) AS txn_count").
		Joins("JOIN accounts ON accounts.id = transactions.account_id").
		Where("accounts.merchant_id = ?", merchantID).
		Group("transactions.type").
		Scan(&rows).Error
	return rows, err
}
