package mapping

import (
	"github.com/staffbook/staff_ledger_app/internal/core/domain"
	"github.com/staffbook/staff_ledger_app/internal/models"
)

// ToModelPayment converts a domain Payment to a model Payment. Entry linkage
// and the day breakdown are persisted separately.
func ToModelPayment(d domain.Payment) models.Payment {
	return models.Payment{
		PaymentID:      d.PaymentID,
		CollaboratorID: d.CollaboratorID,
		PaymentDate:    d.PaymentDate,
		Method:         d.Method,
		Notes:          d.Notes,
		Status:         models.PaymentStatus(d.Status),
		TotalAmount:    d.TotalAmount,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainPayment converts a model Payment plus its child rows to a domain Payment.
func ToDomainPayment(m models.Payment, entryIDs []string, days []models.PaymentDay) domain.Payment {
	daysPaid := make([]domain.PaymentDay, len(days))
	for i, day := range days {
		daysPaid[i] = domain.PaymentDay{Day: day.Day, Amount: day.Amount}
	}
	return domain.Payment{
		PaymentID:      m.PaymentID,
		CollaboratorID: m.CollaboratorID,
		PaymentDate:    m.PaymentDate,
		Method:         m.Method,
		Notes:          m.Notes,
		Status:         domain.PaymentStatus(m.Status),
		EntryIDs:       entryIDs,
		DaysPaid:       daysPaid,
		TotalAmount:    m.TotalAmount,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}
