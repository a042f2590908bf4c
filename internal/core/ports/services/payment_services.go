package services

import (
	"context"

	"github.com/staffbook/staff_ledger_app/internal/core/domain"
	"github.com/staffbook/staff_ledger_app/internal/dto"
)

// PaymentSvcFacade defines the payment reconciliation operations.
type PaymentSvcFacade interface {
	// CreatePayment bundles the selected pending entries into a new payment
	// and marks them paid, all-or-nothing.
	CreatePayment(ctx context.Context, collaboratorID string, req dto.CreatePaymentRequest, creatorUserID string) (*domain.Payment, error)

	// DeletePayment undoes a payment: every consumed entry reverts to pending
	// and the payment record is removed. Returns the reverted entry IDs.
	DeletePayment(ctx context.Context, paymentID string, userID string) ([]string, error)

	// PreviewSelection resolves a whole-day selection over the collaborator's
	// pending entries. Empty days selects every day with pending entries.
	PreviewSelection(ctx context.Context, collaboratorID string, days []string) (*domain.SelectionPreview, error)

	// GetPaymentByID retrieves a payment with its day breakdown.
	GetPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error)

	// ListPayments retrieves a paginated list of a collaborator's payments,
	// returning the payments and a token for the next page.
	ListPayments(ctx context.Context, collaboratorID string, params dto.ListPaymentsParams) ([]domain.Payment, *string, error)
}
