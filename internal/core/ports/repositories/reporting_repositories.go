package repositories

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/staffbook/staff_ledger_app/internal/core/domain"
)

// CompensationSums is one grouped row of per-collaborator amount sums,
// split by entry payment state.
type CompensationSums struct {
	CollaboratorID string
	State          domain.PaymentState
	Pay            decimal.Decimal
	Bonus          decimal.Decimal
	Advance        decimal.Decimal
	Shortage       decimal.Decimal
	Expense        decimal.Decimal
}

// KindSums is one grouped row of a collaborator's shortage and expense
// amounts for a single entry kind.
type KindSums struct {
	CollaboratorID string
	Kind           domain.EntryKind
	Shortage       decimal.Decimal
	Expense        decimal.Decimal
}

// ReportingRepository defines bulk read operations for stats projections.
type ReportingRepository interface {
	// GetCompensationSums retrieves amount sums grouped by collaborator and
	// payment state. Collaborators with no entries produce no rows.
	GetCompensationSums(ctx context.Context, collaboratorIDs []string) ([]CompensationSums, error)

	// GetKindSums retrieves shortage/expense sums grouped by collaborator
	// and entry kind. Which kinds feed the automatic breakdown is decided
	// by the caller.
	GetKindSums(ctx context.Context, collaboratorIDs []string) ([]KindSums, error)
}
