package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryKind discriminates what a ledger entry represents for a collaborator.
type EntryKind string

const (
	KindDailyPay          EntryKind = "DAILY_PAY"
	KindBonusManual       EntryKind = "BONUS_MANUAL"
	KindBonusGoal         EntryKind = "BONUS_GOAL"
	KindAdvanceManual     EntryKind = "ADVANCE_MANUAL"
	KindAdjustmentManual  EntryKind = "ADJUSTMENT_MANUAL"
	KindShortageAutomatic EntryKind = "SHORTAGE_AUTOMATIC"
	KindShortageManual    EntryKind = "SHORTAGE_MANUAL"
	KindExpenseAutomatic  EntryKind = "EXPENSE_AUTOMATIC"
	KindLatePenalty       EntryKind = "LATE_PENALTY"
)

// EntryOrigin records how an entry came to exist. It is informational and
// never changes the arithmetic applied to the entry.
type EntryOrigin string

const (
	OriginManual              EntryOrigin = "MANUAL"
	OriginAutomaticCollection EntryOrigin = "AUTOMATIC_FROM_COLLECTION"
)

// PaymentState tracks whether an entry has been consumed by a payment.
type PaymentState string

const (
	StatePending PaymentState = "PENDING"
	StatePaid    PaymentState = "PAID"
)

// EntryAmounts holds every kind-dependent amount field. Fields that do not
// apply to the entry's kind are zero, never null, so aggregation stays total.
type EntryAmounts struct {
	Pay      decimal.Decimal `json:"payAmount"`
	Bonus    decimal.Decimal `json:"bonusAmount"`
	Advance  decimal.Decimal `json:"advanceAmount"`
	Shortage decimal.Decimal `json:"shortageAmount"`
	Expense  decimal.Decimal `json:"expenseAmount"`
}

// LedgerEntry is a single dated, typed record contributing to a collaborator's
// balance. CollaboratorID never changes after creation; PaymentState and
// PaymentID are mutated exclusively by the payment reconciliation flow.
type LedgerEntry struct {
	EntryID        string       `json:"entryID"`        // Primary Key (UUID)
	CollaboratorID string       `json:"collaboratorID"` // Owning collaborator (Not Null)
	EntryDate      time.Time    `json:"entryDate"`      // Management date the amount is attributed to
	Kind           EntryKind    `json:"kind"`
	Amounts        EntryAmounts `json:"amounts"`
	Origin         EntryOrigin  `json:"origin"`
	PaymentState   PaymentState `json:"paymentState"`
	PaymentID      *string      `json:"paymentID"` // Back-reference to the consuming Payment, nil while pending
	Notes          string       `json:"notes"`     // Nullable
	AuditFields
}
