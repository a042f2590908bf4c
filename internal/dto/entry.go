package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/staffbook/staff_ledger_app/internal/core/domain"
)

// CreateEntryRequest defines the data needed to create a new ledger entry.
// Amount fields default to zero; only the fields relevant to the kind are
// expected to be set. An empty kind is the legacy daily-pay alias.
type CreateEntryRequest struct {
	Kind           domain.EntryKind   `json:"kind" binding:"omitempty,oneof=DAILY_PAY BONUS_MANUAL BONUS_GOAL ADVANCE_MANUAL ADJUSTMENT_MANUAL SHORTAGE_AUTOMATIC SHORTAGE_MANUAL EXPENSE_AUTOMATIC LATE_PENALTY"`
	Date           time.Time          `json:"date" binding:"required"`
	Origin         domain.EntryOrigin `json:"origin" binding:"omitempty,oneof=MANUAL AUTOMATIC_FROM_COLLECTION"`
	PayAmount      decimal.Decimal    `json:"payAmount" binding:"gte=0"`
	BonusAmount    decimal.Decimal    `json:"bonusAmount" binding:"gte=0"`
	AdvanceAmount  decimal.Decimal    `json:"advanceAmount" binding:"gte=0"`
	ShortageAmount decimal.Decimal    `json:"shortageAmount" binding:"gte=0"`
	ExpenseAmount  decimal.Decimal    `json:"expenseAmount" binding:"gte=0"`
	Notes          string             `json:"notes"` // Optional
}

// EntryResponse defines the data returned for a ledger entry.
type EntryResponse struct {
	EntryID        string          `json:"entryID"`
	CollaboratorID string          `json:"collaboratorID"`
	Date           time.Time       `json:"date"`
	Kind           string          `json:"kind"`
	Origin         string          `json:"origin"`
	PaymentState   string          `json:"paymentState"`
	PaymentID      *string         `json:"paymentID,omitempty"`
	PayAmount      decimal.Decimal `json:"payAmount"`
	BonusAmount    decimal.Decimal `json:"bonusAmount"`
	AdvanceAmount  decimal.Decimal `json:"advanceAmount"`
	ShortageAmount decimal.Decimal `json:"shortageAmount"`
	ExpenseAmount  decimal.Decimal `json:"expenseAmount"`
	Contribution   decimal.Decimal `json:"contribution"`
	Notes          string          `json:"notes"`
	CreatedAt      time.Time       `json:"createdAt"`
	CreatedBy      string          `json:"createdBy"`
}

// ListEntriesParams holds filters for listing a collaborator's entries.
type ListEntriesParams struct {
	State     *domain.PaymentState
	From      *time.Time
	To        *time.Time
	Limit     int
	NextToken *string
}

// ListEntriesResponse is the paginated entry listing.
type ListEntriesResponse struct {
	Entries   []EntryResponse `json:"entries"`
	NextToken *string         `json:"nextToken,omitempty"`
}

// ToEntryResponse converts a domain.LedgerEntry to an EntryResponse.
// Contribution is computed by the caller so the formula stays in one place.
func ToEntryResponse(e *domain.LedgerEntry, contribution decimal.Decimal) EntryResponse {
	return EntryResponse{
		EntryID:        e.EntryID,
		CollaboratorID: e.CollaboratorID,
		Date:           e.EntryDate,
		Kind:           string(e.Kind),
		Origin:         string(e.Origin),
		PaymentState:   string(e.PaymentState),
		PaymentID:      e.PaymentID,
		PayAmount:      e.Amounts.Pay,
		BonusAmount:    e.Amounts.Bonus,
		AdvanceAmount:  e.Amounts.Advance,
		ShortageAmount: e.Amounts.Shortage,
		ExpenseAmount:  e.Amounts.Expense,
		Contribution:   contribution,
		Notes:          e.Notes,
		CreatedAt:      e.CreatedAt,
		CreatedBy:      e.CreatedBy,
	}
}
