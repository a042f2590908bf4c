package domain

import (
	"github.com/shopspring/decimal"
)

// DayTotal aggregates every entry attributed to one calendar day for a single
// collaborator. Expense is carried for visibility only and never feeds Payable.
type DayTotal struct {
	Day      string          `json:"day"` // YYYY-MM-DD in the reference zone
	Pay      decimal.Decimal `json:"payAmount"`
	Bonus    decimal.Decimal `json:"bonusAmount"`
	Advance  decimal.Decimal `json:"advanceAmount"`
	Shortage decimal.Decimal `json:"shortageAmount"`
	Expense  decimal.Decimal `json:"expenseAmount"`
	Payable  decimal.Decimal `json:"payable"` // pay + bonus - shortage - advance
}

// GlobalTotal is the sum of DayTotal.Payable across all aggregated days.
type GlobalTotal struct {
	Payable decimal.Decimal `json:"payable"`
	Days    int             `json:"days"`
	Entries int             `json:"entries"`
}

// AutomaticBreakdown isolates the amounts produced by the upstream
// collections-reconciliation process, for audit visibility.
type AutomaticBreakdown struct {
	Shortage decimal.Decimal `json:"shortageAmount"`
	Expense  decimal.Decimal `json:"expenseAmount"`
}

// CollaboratorSummary is the read-only per-collaborator projection returned in
// bulk by the stats endpoint. A collaborator with no entries yields all zeros.
type CollaboratorSummary struct {
	CollaboratorID      string             `json:"collaboratorID"`
	TotalPending        decimal.Decimal    `json:"totalPending"`
	TotalPaidHistorical decimal.Decimal    `json:"totalPaidHistorical"`
	Automatic           AutomaticBreakdown `json:"automaticBreakdown"`
}
