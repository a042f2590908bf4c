package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/staffbook/staff_ledger_app/internal/core/domain"
)

// CreatePaymentRequest defines the data needed to settle a selection of
// pending entries into one payment.
type CreatePaymentRequest struct {
	EntryIDs    []string  `json:"entryIDs" binding:"required,min=1"`
	Method      string    `json:"method" binding:"required"`
	Notes       string    `json:"notes"` // Optional
	PaymentDate time.Time `json:"paymentDate" binding:"required"`
}

// PaymentDayResponse is one line of a payment's per-day breakdown.
type PaymentDayResponse struct {
	Day    string          `json:"day"`
	Amount decimal.Decimal `json:"amount"`
}

// PaymentResponse defines the data returned for a payment.
type PaymentResponse struct {
	PaymentID      string               `json:"paymentID"`
	CollaboratorID string               `json:"collaboratorID"`
	PaymentDate    time.Time            `json:"paymentDate"`
	Method         string               `json:"method"`
	Notes          string               `json:"notes"`
	Status         string               `json:"status"`
	EntryIDs       []string             `json:"entryIDs"`
	DaysPaid       []PaymentDayResponse `json:"daysPaid"`
	TotalAmount    decimal.Decimal      `json:"totalAmount"`
	CreatedAt      time.Time            `json:"createdAt"`
	CreatedBy      string               `json:"createdBy"`
}

// SelectionPreviewResponse describes a whole-day selection before payment.
type SelectionPreviewResponse struct {
	Days     []string        `json:"days"`
	EntryIDs []string        `json:"entryIDs"`
	Total    decimal.Decimal `json:"total"`
}

// ToSelectionPreviewResponse converts a domain selection preview.
func ToSelectionPreviewResponse(p *domain.SelectionPreview) SelectionPreviewResponse {
	return SelectionPreviewResponse{
		Days:     p.Days,
		EntryIDs: p.EntryIDs,
		Total:    p.Total,
	}
}

// DeletePaymentResponse returns the entries reverted to pending by an undo.
type DeletePaymentResponse struct {
	RevertedEntryIDs []string `json:"revertedEntryIDs"`
}

// ListPaymentsParams holds pagination parameters for listing payments.
type ListPaymentsParams struct {
	Limit     int
	NextToken *string
}

// ListPaymentsResponse is the paginated payment listing.
type ListPaymentsResponse struct {
	Payments  []PaymentResponse `json:"payments"`
	NextToken *string           `json:"nextToken,omitempty"`
}

// ToPaymentResponse converts a domain.Payment to a PaymentResponse.
func ToPaymentResponse(p *domain.Payment) PaymentResponse {
	days := make([]PaymentDayResponse, len(p.DaysPaid))
	for i, d := range p.DaysPaid {
		days[i] = PaymentDayResponse{Day: d.Day, Amount: d.Amount}
	}
	return PaymentResponse{
		PaymentID:      p.PaymentID,
		CollaboratorID: p.CollaboratorID,
		PaymentDate:    p.PaymentDate,
		Method:         p.Method,
		Notes:          p.Notes,
		Status:         string(p.Status),
		EntryIDs:       p.EntryIDs,
		DaysPaid:       days,
		TotalAmount:    p.TotalAmount,
		CreatedAt:      p.CreatedAt,
		CreatedBy:      p.CreatedBy,
	}
}

// ToPaymentResponses converts a slice of domain payments.
func ToPaymentResponses(payments []domain.Payment) []PaymentResponse {
	responses := make([]PaymentResponse, len(payments))
	for i := range payments {
		responses[i] = ToPaymentResponse(&payments[i])
	}
	return responses
}
