package services

import (
	"context"
	"time"

	"github.com/staffbook/staff_ledger_app/internal/core/domain"
)

// ReportingSvcFacade defines read-only aggregation and stats projections.
type ReportingSvcFacade interface {
	// Aggregate buckets a collaborator's entries by calendar day in the
	// reference zone and returns per-day totals plus the pending payable
	// total. Nil range bounds are open-ended.
	Aggregate(ctx context.Context, collaboratorID string, from, to *time.Time) ([]domain.DayTotal, *domain.GlobalTotal, error)

	// Stats returns per-collaborator summaries. Collaborators without entries
	// yield all-zero records.
	Stats(ctx context.Context, collaboratorIDs []string) ([]domain.CollaboratorSummary, error)
}
