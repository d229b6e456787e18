package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	dbm "payledger/internal/models/db_models"
)

// ErrPendingRefundExists is returned by Insert when another pending request
// already holds the original payment reference.
var ErrPendingRefundExists = errors.New("pending refund request already exists for reference")

// RefundReview is the set of fields written by the single terminal transition.
type RefundReview struct {
	Status     dbm.RefundStatus
	ReviewedAt time.Time
	ReviewerID uuid.UUID
	Comments   *string
}

type RefundRequestRepository interface {
	WithTx(tx *gorm.DB) RefundRequestRepository
	Insert(ctx context.Context, request *dbm.RefundRequest) error
	FindById(ctx context.Context, id uuid.UUID) (*dbm.RefundRequest, error)
	FindPendingByReference(ctx context.Context, reference string) (*dbm.RefundRequest, error)
	FindPending(ctx context.Context) ([]dbm.RefundRequest, error)
	FindByAccount(ctx context.Context, accountID uuid.UUID) ([]dbm.RefundRequest, error)
	ClaimPending(ctx context.Context, id uuid.UUID, review RefundReview) (bool, error)
	SetRefundTransaction(ctx context.Context, id uuid.UUID, transactionID uuid.UUID) error
}

type refundRequestRepository struct {
	db *gorm.DB
}

func NewRefundRequestRepository(db *gorm.DB) RefundRequestRepository {
	return &refundRequestRepository{db: db}
}

func (r *refundRequestRepository) WithTx(tx *gorm.DB) RefundRequestRepository {
	return &refundRequestRepository{db: tx}
}

func (r *refundRequestRepository) Insert(ctx context.Context, request *dbm.RefundRequest) error {
	err := r.db.WithContext(ctx).Create(request).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrPendingRefundExists
	}
	return err
}

func (r *refundRequestRepository) FindById(ctx context.Context, id uuid.UUID) (*dbm.RefundRequest, error) {
	var request dbm.RefundRequest
	err := r.db.WithContext(ctx).First(&request, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &request, nil
}

func (r *refundRequestRepository) FindPendingByReference(ctx context.Context, reference string) (*dbm.RefundRequest, error) {
	var request dbm.RefundRequest
	err := r.db.WithContext(ctx).
		Where("original_payment_reference = ? AND status = ?", reference, dbm.RefundStatusPending).
		First(&request).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &request, nil
}

// FindPending returns every pending request, oldest first.
func (r *refundRequestRepository) FindPending(ctx context.Context) ([]dbm.RefundRequest, error) {
	var requests []dbm.RefundRequest
	err := r.db.WithContext(ctx).
		Where("status = ?", dbm.RefundStatusPending).
		Order("request_date ASC").
		Find(&requests).Error
	return requests, err
}

// FindByAccount returns the account's requests, newest first.
func (r *refundRequestRepository) FindByAccount(ctx context.Context, accountID uuid.UUID) ([]dbm.RefundRequest, error) {
	var requests []dbm.RefundRequest
	err := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("request_date DESC").
		Find(&requests).Error
	return requests, err
}

// ClaimPending moves the request out of Pending. It reports false when the
// request was no longer pending, i.e. another reviewer won the race.
func (r *refundRequestRepository) ClaimPending(ctx context.Context, id uuid.UUID, review RefundReview) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&dbm.RefundRequest{}).
		Where("id = ? AND status = ?", id, dbm.RefundStatusPending).
		UpdateColumns(map[string]interface{}{
			"status":              review.Status,
			"review_date":         review.ReviewedAt,
			"reviewed_by_user_id": review.ReviewerID,
			"admin_comments":      review.Comments,
			"updated_at":          time.Now().Unix(),
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

func (r *refundRequestRepository) SetRefundTransaction(ctx context.Context, id uuid.UUID, transactionID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&dbm.RefundRequest{}).
		Where("id = ?", id).
		UpdateColumn("refund_transaction_id", transactionID).Error
}
