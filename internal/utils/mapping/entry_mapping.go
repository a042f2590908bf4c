package mapping

import (
	"github.com/staffbook/staff_ledger_app/internal/core/domain"
	"github.com/staffbook/staff_ledger_app/internal/models"
)

// ToModelLedgerEntry converts a domain LedgerEntry to a model LedgerEntry.
func ToModelLedgerEntry(d domain.LedgerEntry) models.LedgerEntry {
	return models.LedgerEntry{
		EntryID:        d.EntryID,
		CollaboratorID: d.CollaboratorID,
		EntryDate:      d.EntryDate,
		Kind:           models.EntryKind(d.Kind),
		Origin:         models.EntryOrigin(d.Origin),
		PaymentState:   models.PaymentState(d.PaymentState),
		PaymentID:      d.PaymentID,
		PayAmount:      d.Amounts.Pay,
		BonusAmount:    d.Amounts.Bonus,
		AdvanceAmount:  d.Amounts.Advance,
		ShortageAmount: d.Amounts.Shortage,
		ExpenseAmount:  d.Amounts.Expense,
		Notes:          d.Notes,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainLedgerEntry converts a model LedgerEntry to a domain LedgerEntry.
func ToDomainLedgerEntry(m models.LedgerEntry) domain.LedgerEntry {
	return domain.LedgerEntry{
		EntryID:        m.EntryID,
		CollaboratorID: m.CollaboratorID,
		EntryDate:      m.EntryDate,
		Kind:           domain.EntryKind(m.Kind),
		Origin:         domain.EntryOrigin(m.Origin),
		PaymentState:   domain.PaymentState(m.PaymentState),
		PaymentID:      m.PaymentID,
		Amounts: domain.EntryAmounts{
			Pay:      m.PayAmount,
			Bonus:    m.BonusAmount,
			Advance:  m.AdvanceAmount,
			Shortage: m.ShortageAmount,
			Expense:  m.ExpenseAmount,
		},
		Notes:       m.Notes,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainLedgerEntrySlice converts a slice of model entries.
func ToDomainLedgerEntrySlice(ms []models.LedgerEntry) []domain.LedgerEntry {
	out := make([]domain.LedgerEntry, len(ms))
	for i, m := range ms {
		out[i] = ToDomainLedgerEntry(m)
	}
	return out
}
