package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/staffbook/staff_ledger_app/internal/apperrors"
	"github.com/staffbook/staff_ledger_app/internal/core/domain"
	portsrepo "github.com/staffbook/staff_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/staffbook/staff_ledger_app/internal/core/ports/services"
	"github.com/staffbook/staff_ledger_app/internal/dto"
	"github.com/staffbook/staff_ledger_app/internal/platform/metrics"
	"github.com/staffbook/staff_ledger_app/internal/utils/compensation"
)

type entryService struct {
	BaseService
	entryRepo portsrepo.EntryRepositoryFacade
}

var _ portssvc.EntrySvcFacade = (*entryService)(nil)

// NewEntryService creates a new entry service.
func NewEntryService(entryRepo portsrepo.EntryRepositoryFacade) *entryService {
	return &entryService{
		entryRepo: entryRepo,
	}
}

// CreateEntry validates and persists a new ledger entry for the collaborator.
// New entries always start pending and unlinked from any payment.
func (s *entryService) CreateEntry(ctx context.Context, collaboratorID string, req dto.CreateEntryRequest, creatorUserID string) (*domain.LedgerEntry, error) {
	logger := s.GetLogger(ctx)

	kind := compensation.NormalizeKind(domain.EntryKind(req.Kind))
	if !compensation.KnownKind(kind) {
		return nil, fmt.Errorf("%w: unknown entry kind %q", apperrors.ErrValidation, req.Kind)
	}

	amounts := domain.EntryAmounts{
		Pay:      req.PayAmount,
		Bonus:    req.BonusAmount,
		Advance:  req.AdvanceAmount,
		Shortage: req.ShortageAmount,
		Expense:  req.ExpenseAmount,
	}
	if err := validateAmounts(amounts); err != nil {
		return nil, err
	}

	origin := domain.EntryOrigin(req.Origin)
	if origin == "" {
		origin = defaultOrigin(kind)
	}

	now := time.Now()
	entry := domain.LedgerEntry{
		EntryID:        uuid.NewString(),
		CollaboratorID: collaboratorID,
		EntryDate:      req.Date,
		Kind:           kind,
		Amounts:        amounts,
		Origin:         origin,
		PaymentState:   domain.StatePending,
		Notes:          req.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.entryRepo.SaveEntry(ctx, entry); err != nil {
		s.LogError(ctx, "failed to save ledger entry", "error", err, "collaboratorID", collaboratorID)
		return nil, fmt.Errorf("failed to save ledger entry: %w", err)
	}

	metrics.EntriesCreated.WithLabelValues(string(kind)).Inc()
	logger.Info("ledger entry created", "entryID", entry.EntryID, "collaboratorID", collaboratorID, "kind", kind)
	return &entry, nil
}

// GetEntryByID fetches a single entry, scoped to the collaborator. An entry
// belonging to another collaborator is reported as not found rather than
// forbidden, so ids cannot be probed across collaborators.
func (s *entryService) GetEntryByID(ctx context.Context, collaboratorID string, entryID string) (*domain.LedgerEntry, error) {
	entry, err := s.entryRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if entry.CollaboratorID != collaboratorID {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("entry with ID %s not found", entryID))
	}
	return entry, nil
}

// ListEntries returns a page of the collaborator's entries, newest first,
// with an opaque token for the next page.
func (s *entryService) ListEntries(ctx context.Context, collaboratorID string, params dto.ListEntriesParams) ([]domain.LedgerEntry, *string, error) {
	limit := params.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	filters := portsrepo.EntryFilters{
		From: params.From,
		To:   params.To,
	}
	if params.State != nil {
		st := domain.PaymentState(*params.State)
		if st != domain.StatePending && st != domain.StatePaid {
			return nil, nil, fmt.Errorf("%w: invalid payment state %q", apperrors.ErrValidation, *params.State)
		}
		filters.State = &st
	}

	entries, nextToken, err := s.entryRepo.ListEntriesByCollaborator(ctx, collaboratorID, filters, limit, params.NextToken)
	if err != nil {
		s.LogError(ctx, "failed to list ledger entries", "error", err, "collaboratorID", collaboratorID)
		return nil, nil, fmt.Errorf("failed to list ledger entries: %w", err)
	}
	return entries, nextToken, nil
}

func validateAmounts(a domain.EntryAmounts) error {
	for _, f := range []struct {
		name  string
		value decimal.Decimal
	}{
		{"pay", a.Pay},
		{"bonus", a.Bonus},
		{"advance", a.Advance},
		{"shortage", a.Shortage},
		{"expense", a.Expense},
	} {
		if f.value.IsNegative() {
			return fmt.Errorf("%w: %s amount cannot be negative", apperrors.ErrValidation, f.name)
		}
	}
	return nil
}

func defaultOrigin(kind domain.EntryKind) domain.EntryOrigin {
	switch kind {
	case domain.KindShortageAutomatic, domain.KindExpenseAutomatic:
		return domain.OriginAutomaticCollection
	default:
		return domain.OriginManual
	}
}
