package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	dbm "payledger/internal/models/db_models"
	"payledger/internal/models/request_models"
	"payledger/internal/models/response_models"
	"payledger/internal/repositories"
	"payledger/pkg/utils"
)

// RefundServiceInterface drives a refund request from Pending to exactly one
// of Approved or Rejected. Only approval touches the ledger.
type RefundServiceInterface interface {
	RequestRefund(ctx context.Context, request request_models.RefundRequest) (*response_models.RefundRequestResponse, error)
	ApproveRefund(ctx context.Context, requestID uuid.UUID, adminUserID uuid.UUID, comments *string) (*response_models.TransactionResponse, error)
	RejectRefund(ctx context.Context, requestID uuid.UUID, adminUserID uuid.UUID, reason string) (*response_models.RefundRequestResponse, error)
	GetPendingRefundRequests(ctx context.Context) ([]response_models.RefundRequestResponse, error)
	GetRefundRequestsByAccount(ctx context.Context, accountID uuid.UUID) ([]response_models.RefundRequestResponse, error)
}

type RefundService struct {
	db          *gorm.DB
	accountRepo repositories.AccountRepository
	txnRepo     repositories.TransactionRepository
	refundRepo  repositories.RefundRequestRepository
	ledger      AccountLedger
	log         *zap.Logger
	now         func() time.Time
}

func NewRefundService(
	db *gorm.DB,
	accountRepo repositories.AccountRepository,
	txnRepo repositories.TransactionRepository,
	refundRepo repositories.RefundRequestRepository,
	ledger AccountLedger,
	log *zap.Logger,
) RefundServiceInterface {
	return &RefundService{
		db:          db,
		accountRepo: accountRepo,
		txnRepo:     txnRepo,
		refundRepo:  refundRepo,
		ledger:      ledger,
		log:         log.Named("refunds"),
		now:         utils.NowUTC,
	}
}

// RequestRefund files a pending refund request against a completed payment.
// Nothing is written to the ledger until an admin approves it.
func (r *RefundService) RequestRefund(ctx context.Context, request request_models.RefundRequest) (*response_models.RefundRequestResponse, error) {
	r.log.Info("refund requested",
		zap.Stringer("account_id", request.AccountID),
		zap.String("original_reference", request.OriginalReferenceNo),
		zap.String("amount", request.Amount.String()))

	if err := validateAmount(request.Amount); err != nil {
		return nil, err
	}

	account, err := r.accountRepo.FindById(ctx, request.AccountID)
	if err != nil {
		return nil, fmt.Errorf("find account: %w", err)
	}
	if account == nil {
		return nil, utils.NotFound("Account not found")
	}

	original, err := r.txnRepo.FindByReference(ctx, request.OriginalReferenceNo)
	if err != nil {
		return nil, fmt.Errorf("find original payment: %w", err)
	}
	if original == nil || original.Type != dbm.TxnTypePayment {
		r.log.Warn("refund rejected: original payment not found", zap.String("original_reference", request.OriginalReferenceNo))
		return nil, utils.Invalid("Original payment not found")
	}

	if request.Amount.GreaterThan(original.Amount) {
		r.log.Warn("refund rejected: amount exceeds original",
			zap.String("amount", request.Amount.String()),
			zap.String("original_amount", original.Amount.String()))
		return nil, utils.Invalid("Refund amount exceeds original payment amount")
	}

	processed, err := r.txnRepo.FindByReference(ctx, dbm.RefundReferenceFor(original.ReferenceNumber))
	if err != nil {
		return nil, fmt.Errorf("find refund transaction: %w", err)
	}
	if processed != nil && processed.Status == dbm.TxnStatusCompleted {
		r.log.Warn("refund rejected: already processed", zap.String("original_reference", original.ReferenceNumber))
		return nil, utils.Conflict("Refund already processed")
	}

	pending, err := r.refundRepo.FindPendingByReference(ctx, original.ReferenceNumber)
	if err != nil {
		return nil, fmt.Errorf("find pending refund request: %w", err)
	}
	if pending != nil {
		r.log.Warn("refund rejected: pending request exists",
			zap.String("original_reference", original.ReferenceNumber),
			zap.Stringer("pending_request_id", pending.ID))
		return nil, utils.Conflict("Pending refund request already exists")
	}

	if original.AccountID != request.AccountID {
		r.log.Warn("refund rejected: reference belongs to another account",
			zap.Stringer("account_id", request.AccountID),
			zap.String("original_reference", original.ReferenceNumber))
		return nil, utils.Invalid("Reference does not belong to this account")
	}

	refundRequest := &dbm.RefundRequest{
		Amount:                   request.Amount,
		AccountID:                request.AccountID,
		OriginalPaymentReference: original.ReferenceNumber,
		Reason:                   request.Reason,
		Status:                   dbm.RefundStatusPending,
		RequestDate:              r.now(),
	}

	if err := r.refundRepo.Insert(ctx, refundRequest); err != nil {
		if errors.Is(err, repositories.ErrPendingRefundExists) {
			return nil, utils.Conflict("Pending refund request already exists")
		}
		return nil, fmt.Errorf("insert refund request: %w", err)
	}

	r.log.Info("refund request created",
		zap.Stringer("request_id", refundRequest.ID),
		zap.String("original_reference", original.ReferenceNumber))

	return toRefundRequestResponse(refundRequest), nil
}

// ApproveRefund claims the pending request, writes the refund transaction and
// debits the account as one unit. Whoever loses a concurrent claim gets a
// Conflict and leaves no trace.
func (r *RefundService) ApproveRefund(ctx context.Context, requestID uuid.UUID, adminUserID uuid.UUID, comments *string) (*response_models.TransactionResponse, error) {
	r.log.Info("approving refund request",
		zap.Stringer("request_id", requestID),
		zap.Stringer("admin_user_id", adminUserID))

	request, err := r.pendingRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}

	account, err := r.accountRepo.FindById(ctx, request.AccountID)
	if err != nil {
		return nil, fmt.Errorf("find account: %w", err)
	}
	if account == nil {
		return nil, utils.NotFound("Account not found")
	}

	original, err := r.txnRepo.FindByReference(ctx, request.OriginalPaymentReference)
	if err != nil {
		return nil, fmt.Errorf("find original payment: %w", err)
	}
	if original == nil {
		return nil, utils.NotFound("Original payment not found")
	}

	now := r.now()
	refundTxn := &dbm.Transaction{
		Amount:          request.Amount,
		Type:            dbm.TxnTypeRefund,
		Status:          dbm.TxnStatusCompleted,
		ReferenceNumber: dbm.RefundReferenceFor(original.ReferenceNumber),
		AccountID:       request.AccountID,
		PaymentMethodID: original.PaymentMethodID,
		Date:            now,
	}

	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		refunds := r.refundRepo.WithTx(tx)

		claimed, err := refunds.ClaimPending(ctx, request.ID, repositories.RefundReview{
			Status:     dbm.RefundStatusApproved,
			ReviewedAt: now,
			ReviewerID: adminUserID,
			Comments:   comments,
		})
		if err != nil {
			return fmt.Errorf("claim refund request: %w", err)
		}
		if !claimed {
			return alreadyReviewed(ctx, refunds, request.ID)
		}

		if err := r.txnRepo.WithTx(tx).Insert(ctx, refundTxn); err != nil {
			if errors.Is(err, repositories.ErrDuplicateReference) {
				return utils.Conflict("Refund already processed")
			}
			return fmt.Errorf("insert refund transaction: %w", err)
		}

		if _, err := r.ledger.Debit(ctx, tx, request.AccountID, request.Amount); err != nil {
			return err
		}

		if err := refunds.SetRefundTransaction(ctx, request.ID, refundTxn.ID); err != nil {
			return fmt.Errorf("link refund transaction: %w", err)
		}
		return nil
	})
	if err != nil {
		r.log.Warn("refund approval failed",
			zap.Stringer("request_id", requestID),
			zap.Error(err))
		return nil, err
	}

	r.log.Info("refund approved",
		zap.Stringer("request_id", requestID),
		zap.Stringer("transaction_id", refundTxn.ID),
		zap.String("reference", refundTxn.ReferenceNumber))

	return toTransactionResponse(refundTxn), nil
}

// RejectRefund closes a pending request without any ledger effect.
func (r *RefundService) RejectRefund(ctx context.Context, requestID uuid.UUID, adminUserID uuid.UUID, reason string) (*response_models.RefundRequestResponse, error) {
	r.log.Info("rejecting refund request",
		zap.Stringer("request_id", requestID),
		zap.Stringer("admin_user_id", adminUserID))

	request, err := r.pendingRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}

	now := r.now()
	claimed, err := r.refundRepo.ClaimPending(ctx, request.ID, repositories.RefundReview{
		Status:     dbm.RefundStatusRejected,
		ReviewedAt: now,
		ReviewerID: adminUserID,
		Comments:   &reason,
	})
	if err != nil {
		return nil, fmt.Errorf("claim refund request: %w", err)
	}
	if !claimed {
		return nil, alreadyReviewed(ctx, r.refundRepo, request.ID)
	}

	request.Status = dbm.RefundStatusRejected
	request.ReviewDate = &now
	request.ReviewedByUserID = &adminUserID
	request.AdminComments = &reason

	r.log.Info("refund rejected", zap.Stringer("request_id", requestID))

	return toRefundRequestResponse(request), nil
}

func (r *RefundService) GetPendingRefundRequests(ctx context.Context) ([]response_models.RefundRequestResponse, error) {
	requests, err := r.refundRepo.FindPending(ctx)
	if err != nil {
		return nil, fmt.Errorf("list pending refund requests: %w", err)
	}
	return toRefundRequestResponses(requests), nil
}

func (r *RefundService) GetRefundRequestsByAccount(ctx context.Context, accountID uuid.UUID) ([]response_models.RefundRequestResponse, error) {
	account, err := r.accountRepo.FindById(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("find account: %w", err)
	}
	if account == nil {
		return nil, utils.NotFound("Account not found")
	}

	requests, err := r.refundRepo.FindByAccount(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("list refund requests: %w", err)
	}
	return toRefundRequestResponses(requests), nil
}

func (r *RefundService) pendingRequest(ctx context.Context, requestID uuid.UUID) (*dbm.RefundRequest, error) {
	request, err := r.refundRepo.FindById(ctx, requestID)
	if err != nil {
		return nil, fmt.Errorf("find refund request: %w", err)
	}
	if request == nil {
		return nil, utils.NotFound("Refund request not found")
	}
	if request.Status != dbm.RefundStatusPending {
		return nil, reviewedConflict(request.Status)
	}
	return request, nil
}

// alreadyReviewed builds the Conflict for a request that left Pending between
// the read and the conditional update.
func alreadyReviewed(ctx context.Context, refunds repositories.RefundRequestRepository, id uuid.UUID) error {
	current, err := refunds.FindById(ctx, id)
	if err != nil || current == nil {
		return utils.Conflict("Refund request already processed")
	}
	return reviewedConflict(current.Status)
}

func reviewedConflict(status dbm.RefundStatus) error {
	return utils.Conflict(fmt.Sprintf("Refund request already %s", strings.ToLower(string(status))))
}
