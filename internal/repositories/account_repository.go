package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"payledger/internal/models/db_models"
)

// ErrStaleAccount is returned when the version guard on a balance update
// matched no row after the account had already been read under lock.
var ErrStaleAccount = errors.New("account was modified concurrently")

type AccountRepository interface {
	WithTx(tx *gorm.DB) AccountRepository
	Insert(ctx context.Context, account *db_models.Account) error
	FindById(ctx context.Context, id uuid.UUID) (*db_models.Account, error)
	FindByMerchant(ctx context.Context, merchantID uuid.UUID, search string, page, pageSize int) ([]db_models.Account, int64, error)
	AdjustBalance(ctx context.Context, id uuid.UUID, delta decimal.Decimal) (*db_models.Account, error)
	MerchantRollup(ctx context.Context, merchantID uuid.UUID) (*AccountRollup, error)
	LedgerPositions(ctx context.Context) ([]LedgerPosition, error)
}

// AccountRollup is the per-merchant aggregate over accounts.
type AccountRollup struct {
	Holders      int64           `gorm:"column:holders"`
	TotalBalance decimal.Decimal `gorm:"column:total_balance"`
}

// LedgerPosition pairs an account's stored balance with the balance implied
// by its completed transactions.
type LedgerPosition struct {
	AccountID      uuid.UUID       `gorm:"column:account_id"`
	MerchantID     uuid.UUID       `gorm:"column:merchant_id"`
	Balance        decimal.Decimal `gorm:"column:balance"`
	OpeningBalance decimal.Decimal `gorm:"column:opening_balance"`
	LedgerTotal    decimal.Decimal `gorm:"column:ledger_total"`
}

// Expected is the balance the transaction history says the account should hold.
func (p LedgerPosition) Expected() decimal.Decimal {
	return p.OpeningBalance.Add(p.LedgerTotal)
}

type accountRepository struct {
	db *gorm.DB
}

func NewAccountRepository(db *gorm.DB) AccountRepository {
	return &accountRepository{
		db: db,
	}
}

func (a *accountRepository) WithTx(tx *gorm.DB) AccountRepository {
	return &accountRepository{db: tx}
}

func (a *accountRepository) Insert(ctx context.Context, account *db_models.Account) error {
	return a.db.WithContext(ctx).Create(account).Error
}

func (a *accountRepository) FindById(ctx context.Context, id uuid.UUID) (*db_models.Account, error) {
	var account db_models.Account
	err := a.db.WithContext(ctx).First(&account, "id = ?", id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &account, nil
}

func (a *accountRepository) FindByMerchant(ctx context.Context, merchantID uuid.UUID, search string, page, pageSize int) ([]db_models.Account, int64, error) {
	var (
		accounts []db_models.Account
		total    int64
	)

	scope := func(db *gorm.DB) *gorm.DB {
		db = db.Where("merchant_id = ?", merchantID)
		if search != "" {
			db = db.Where("LOWER(holder_name) LIKE LOWER(?)", "%"+search+"%")
		}
		return db
	}

	err := a.db.WithContext(ctx).
		Model(&db_models.Account{}).
		Scopes(scope).
		Count(&total).Error
	if err != nil {
		return nil, 0, err
	}

	err = a.db.WithContext(ctx).
		Scopes(scope).
		Order("holder_name ASC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&accounts).Error
	if err != nil {
		return nil, 0, err
	}

	return accounts, total, nil
}

// AdjustBalance applies delta to the stored balance in place and returns the
// account as it stands afterwards. The row is locked for the rest of the
// enclosing transaction, so it must be called on a repository bound with WithTx.
// Returns (nil, nil) when the account does not exist.
func (a *accountRepository) AdjustBalance(ctx context.Context, id uuid.UUID, delta decimal.Decimal) (*db_models.Account, error) {
	db := a.db.WithContext(ctx)

	var account db_models.Account
	err := db.Clauses(clause.Locking{Strength: "UPDATE"}).First(&account, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	result := db.Model(&db_models.Account{}).
		Where("id = ? AND version = ?", id, account.Version).
		UpdateColumns(map[string]interface{}{
			"balance":    gorm.Expr("balance + ?", delta),
			"version":    gorm.Expr("version + 1"),
			"updated_at": time.Now().Unix(),
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrStaleAccount
	}

	if err := db.First(&account, "id = ?", id).Error; err != nil {
		return nil, err
	}

	return &account, nil
}

func (a *accountRepository) MerchantRollup(ctx context.Context, merchantID uuid.UUID) (*AccountRollup, error) {
	var rollup AccountRollup
	err := a.db.WithContext(ctx).
		Model(&db_models.Account{}).
		Select("COUNT(*) AS holders, COALESCE(SUM(balance), 0) AS total_balance").
		Where("merchant_id = ?", merchantID).
		Scan(&rollup).Error
	if err != nil {
		return nil, err
	}
	return &rollup, nil
}

func (a *accountRepository) LedgerPositions(ctx context.Context) ([]LedgerPosition, error) {
	var rows []LedgerPosition
	err := a.db.WithContext(ctx).
		Table("accounts").
		Select(`accounts.id AS account_id,
			accounts.merchant_id AS merchant_id,
			accounts.balance AS balance,
			accounts.opening_balance AS opening_balance,
			COALESCE(SUM(CASE
				WHEN transactions.type = ? THEN transactions.amount
				WHEN transactions.type = ? THEN -transactions.amount
				ELSE 0 END), 0) AS ledger_total`,
			db_models.TxnTypePayment, db_models.TxnTypeRefund).
		Joins("LEFT JOIN transactions ON transactions.account_id = accounts.id AND transactions.status = ?", db_models.TxnStatusCompleted).
		Group("accounts.id, accounts.merchant_id, accounts.balance, accounts.opening_balance").
		Order("accounts.id").
		Scan(&rows).Error
	return rows, err
}
