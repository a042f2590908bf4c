package services

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/staffbook/staff_ledger_app/internal/core/domain"
	portsrepo "github.com/staffbook/staff_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/staffbook/staff_ledger_app/internal/core/ports/services"
	"github.com/staffbook/staff_ledger_app/internal/utils/compensation"
)

type reportingService struct {
	BaseService
	entryRepo     portsrepo.EntryReader
	reportingRepo portsrepo.ReportingRepository
	loc           *time.Location
}

var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

// NewReportingService creates a new reporting service.
func NewReportingService(entryRepo portsrepo.EntryReader, reportingRepo portsrepo.ReportingRepository, loc *time.Location) *reportingService {
	return &reportingService{
		entryRepo:     entryRepo,
		reportingRepo: reportingRepo,
		loc:           loc,
	}
}

// Aggregate buckets a collaborator's entries into per-day totals and a
// global rollup. Day rows cover every entry in range, paid or pending, so
// history stays visible; the global payable total counts pending entries
// only.
func (s *reportingService) Aggregate(ctx context.Context, collaboratorID string, from, to *time.Time) ([]domain.DayTotal, *domain.GlobalTotal, error) {
	entries, err := s.entryRepo.ListEntriesForAggregation(ctx, collaboratorID, from, to)
	if err != nil {
		s.LogError(ctx, "failed to load entries for aggregation", "error", err, "collaboratorID", collaboratorID)
		return nil, nil, fmt.Errorf("failed to load entries for aggregation: %w", err)
	}

	days := compensation.AggregateByDay(entries, s.loc)
	total := &domain.GlobalTotal{
		Payable: compensation.SumContributions(compensation.FilterPending(entries)),
		Days:    len(days),
		Entries: len(entries),
	}
	return days, total, nil
}

// Stats returns pending, historical and automatic-origin totals per
// collaborator in one pass over grouped sums. Collaborators with no entries
// come back with zero totals rather than being dropped.
func (s *reportingService) Stats(ctx context.Context, collaboratorIDs []string) ([]domain.CollaboratorSummary, error) {
	collaboratorIDs = dedupeIDs(collaboratorIDs)
	if len(collaboratorIDs) == 0 {
		return []domain.CollaboratorSummary{}, nil
	}

	compSums, err := s.reportingRepo.GetCompensationSums(ctx, collaboratorIDs)
	if err != nil {
		s.LogError(ctx, "failed to load compensation sums", "error", err)
		return nil, fmt.Errorf("failed to load compensation sums: %w", err)
	}
	kindSums, err := s.reportingRepo.GetKindSums(ctx, collaboratorIDs)
	if err != nil {
		s.LogError(ctx, "failed to load kind sums", "error", err)
		return nil, fmt.Errorf("failed to load kind sums: %w", err)
	}

	byCollaborator := make(map[string]*domain.CollaboratorSummary, len(collaboratorIDs))
	order := make([]string, 0, len(collaboratorIDs))
	for _, id := range collaboratorIDs {
		byCollaborator[id] = &domain.CollaboratorSummary{
			CollaboratorID:      id,
			TotalPending:        decimal.Zero,
			TotalPaidHistorical: decimal.Zero,
			Automatic: domain.AutomaticBreakdown{
				Shortage: decimal.Zero,
				Expense:  decimal.Zero,
			},
		}
		order = append(order, id)
	}

	for _, sum := range compSums {
		summary, ok := byCollaborator[sum.CollaboratorID]
		if !ok {
			continue
		}
		contribution := sum.Pay.Add(sum.Bonus).Sub(sum.Shortage).Sub(sum.Advance)
		switch sum.State {
		case domain.StatePending:
			summary.TotalPending = summary.TotalPending.Add(contribution)
		case domain.StatePaid:
			summary.TotalPaidHistorical = summary.TotalPaidHistorical.Add(contribution)
		}
	}

	// Only the automatic kinds feed the breakdown; manual shortages and
	// expenses stay out regardless of the origin the entry was created with.
	for _, sum := range kindSums {
		summary, ok := byCollaborator[sum.CollaboratorID]
		if !ok {
			continue
		}
		switch sum.Kind {
		case domain.KindShortageAutomatic:
			summary.Automatic.Shortage = summary.Automatic.Shortage.Add(sum.Shortage)
		case domain.KindExpenseAutomatic:
			summary.Automatic.Expense = summary.Automatic.Expense.Add(sum.Expense)
		}
	}

	summaries := make([]domain.CollaboratorSummary, 0, len(order))
	for _, id := range order {
		summaries = append(summaries, *byCollaborator[id])
	}
	return summaries, nil
}
