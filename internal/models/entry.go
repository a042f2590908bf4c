package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryKind discriminates what a ledger entry represents.
type EntryKind string

// EntryOrigin records how an entry came to exist.
type EntryOrigin string

// PaymentState tracks whether an entry has been consumed by a payment.
type PaymentState string

// LedgerEntry is the persistence shape of a collaborator's ledger entry.
// Amount columns are NOT NULL with zero defaults so aggregation stays total.
type LedgerEntry struct {
	EntryID        string          `json:"entryID"`
	CollaboratorID string          `json:"collaboratorID"`
	EntryDate      time.Time       `json:"entryDate"`
	Kind           EntryKind       `json:"kind"`
	Origin         EntryOrigin     `json:"origin"`
	PaymentState   PaymentState    `json:"paymentState"`
	PaymentID      *string         `json:"paymentID"` // Nullable FK -> payments.payment_id
	PayAmount      decimal.Decimal `json:"payAmount"`
	BonusAmount    decimal.Decimal `json:"bonusAmount"`
	AdvanceAmount  decimal.Decimal `json:"advanceAmount"`
	ShortageAmount decimal.Decimal `json:"shortageAmount"`
	ExpenseAmount  decimal.Decimal `json:"expenseAmount"`
	Notes          string          `json:"notes"`
	AuditFields
}
