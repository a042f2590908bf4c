package repositories

import (
	"context"

	"github.com/staffbook/staff_ledger_app/internal/core/domain"
)

// PaymentReader defines read operations for payment data
type PaymentReader interface {
	// FindPaymentByID retrieves a payment with its entry IDs and day breakdown.
	FindPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error)

	// ListPaymentsByCollaborator retrieves a paginated list of a collaborator's
	// payments using token-based pagination.
	ListPaymentsByCollaborator(ctx context.Context, collaboratorID string, limit int, nextToken *string) ([]domain.Payment, *string, error)
}

// PaymentWriter defines the state-changing reconciliation operations.
// Both operations are atomic: either the payment record and every referenced
// entry change together, or nothing changes.
type PaymentWriter interface {
	// CreatePaymentWithEntries persists the payment, its day breakdown, and
	// flips every referenced entry to PAID in one database transaction.
	// Returns ErrConflict if any entry was concurrently consumed.
	CreatePaymentWithEntries(ctx context.Context, payment domain.Payment) error

	// RevertPayment deletes the payment and flips every referenced entry back
	// to PENDING in one database transaction, returning the reverted entry
	// IDs. Returns ErrNotFound if the payment no longer exists.
	RevertPayment(ctx context.Context, paymentID string, userID string) ([]string, error)
}

// PaymentRepositoryFacade combines all payment-related repository interfaces
type PaymentRepositoryFacade interface {
	PaymentReader
	PaymentWriter
}
