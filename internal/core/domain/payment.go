package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatus is the administrative status of a payment record. It is
// independent of entry reconciliation state.
type PaymentStatus string

const (
	PaymentPaid    PaymentStatus = "PAID"
	PaymentPartial PaymentStatus = "PARTIAL"
	PaymentPending PaymentStatus = "PENDING"
)

// PaymentDay is one line of a payment's per-day breakdown: the sum the payment
// covers for a single calendar day. The breakdown is display/audit data and is
// always reconstructable from the referenced entries.
type PaymentDay struct {
	Day    string          `json:"day"` // Calendar day key, YYYY-MM-DD in the reference zone
	Amount decimal.Decimal `json:"amount"`
}

// SelectionPreview describes a whole-day selection over a collaborator's
// pending entries before any payment is created: the days covered, the entry
// IDs the selection resolves to, and the total a payment over them would
// settle.
type SelectionPreview struct {
	Days     []string        `json:"days"`
	EntryIDs []string        `json:"entryIDs"`
	Total    decimal.Decimal `json:"total"`
}

// Payment bundles a set of pending ledger entries into one settlement.
// EntryIDs is frozen at creation; no entry is ever referenced by two payments.
type Payment struct {
	PaymentID      string          `json:"paymentID"` // Primary Key (UUID)
	CollaboratorID string          `json:"collaboratorID"`
	PaymentDate    time.Time       `json:"paymentDate"`
	Method         string          `json:"method"` // Free text (cash, transfer, ...)
	Notes          string          `json:"notes"`  // Nullable
	Status         PaymentStatus   `json:"status"`
	EntryIDs       []string        `json:"entryIDs"`
	DaysPaid       []PaymentDay    `json:"daysPaid"`
	TotalAmount    decimal.Decimal `json:"totalAmount"` // Cached sum of entry contributions at creation time
	AuditFields
}
