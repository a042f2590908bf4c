package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatus is the administrative status of a payment record.
type PaymentStatus string

// Payment is the persistence shape of a payment record. Entry linkage lives
// on the entries themselves (payment_id); DaysPaid rows are stored as
// payment_days child rows.
type Payment struct {
	PaymentID      string          `json:"paymentID"`
	CollaboratorID string          `json:"collaboratorID"`
	PaymentDate    time.Time       `json:"paymentDate"`
	Method         string          `json:"method"`
	Notes          string          `json:"notes"`
	Status         PaymentStatus   `json:"status"`
	TotalAmount    decimal.Decimal `json:"totalAmount"`
	AuditFields
}

// PaymentDay is one audit row of a payment's per-day breakdown.
type PaymentDay struct {
	PaymentID string          `json:"paymentID"`
	Day       string          `json:"day"` // YYYY-MM-DD in the reference zone
	Amount    decimal.Decimal `json:"amount"`
}
