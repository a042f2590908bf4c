package dto

import (
	"github.com/shopspring/decimal"

	"github.com/staffbook/staff_ledger_app/internal/core/domain"
)

// DayTotalResponse represents one calendar day's totals in an aggregation.
type DayTotalResponse struct {
	Day            string          `json:"day"`
	PayAmount      decimal.Decimal `json:"payAmount"`
	BonusAmount    decimal.Decimal `json:"bonusAmount"`
	AdvanceAmount  decimal.Decimal `json:"advanceAmount"`
	ShortageAmount decimal.Decimal `json:"shortageAmount"`
	ExpenseAmount  decimal.Decimal `json:"expenseAmount"`
	Payable        decimal.Decimal `json:"payable"`
}

// AggregateResponse is the per-day breakdown plus the pending payable total.
type AggregateResponse struct {
	Days  []DayTotalResponse `json:"days"`
	Total struct {
		Payable decimal.Decimal `json:"payable"`
		Days    int             `json:"days"`
		Entries int             `json:"entries"`
	} `json:"total"`
}

// CollaboratorSummaryResponse is one collaborator's stats projection.
type CollaboratorSummaryResponse struct {
	CollaboratorID      string          `json:"collaboratorID"`
	TotalPending        decimal.Decimal `json:"totalPending"`
	TotalPaidHistorical decimal.Decimal `json:"totalPaidHistorical"`
	AutomaticShortage   decimal.Decimal `json:"automaticShortage"`
	AutomaticExpense    decimal.Decimal `json:"automaticExpense"`
}

// StatsResponse is the bulk stats projection.
type StatsResponse struct {
	Collaborators []CollaboratorSummaryResponse `json:"collaborators"`
}

// ToAggregateResponse converts domain aggregation results.
func ToAggregateResponse(days []domain.DayTotal, total *domain.GlobalTotal) AggregateResponse {
	resp := AggregateResponse{Days: make([]DayTotalResponse, len(days))}
	for i, d := range days {
		resp.Days[i] = DayTotalResponse{
			Day:            d.Day,
			PayAmount:      d.Pay,
			BonusAmount:    d.Bonus,
			AdvanceAmount:  d.Advance,
			ShortageAmount: d.Shortage,
			ExpenseAmount:  d.Expense,
			Payable:        d.Payable,
		}
	}
	resp.Total.Payable = total.Payable
	resp.Total.Days = total.Days
	resp.Total.Entries = total.Entries
	return resp
}

// ToStatsResponse converts domain collaborator summaries.
func ToStatsResponse(summaries []domain.CollaboratorSummary) StatsResponse {
	resp := StatsResponse{Collaborators: make([]CollaboratorSummaryResponse, len(summaries))}
	for i, s := range summaries {
		resp.Collaborators[i] = CollaboratorSummaryResponse{
			CollaboratorID:      s.CollaboratorID,
			TotalPending:        s.TotalPending,
			TotalPaidHistorical: s.TotalPaidHistorical,
			AutomaticShortage:   s.Automatic.Shortage,
			AutomaticExpense:    s.Automatic.Expense,
		}
	}
	return resp
}
