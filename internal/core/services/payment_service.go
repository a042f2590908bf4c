package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/staffbook/staff_ledger_app/internal/apperrors"
	"github.com/staffbook/staff_ledger_app/internal/core/domain"
	portsrepo "github.com/staffbook/staff_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/staffbook/staff_ledger_app/internal/core/ports/services"
	"github.com/staffbook/staff_ledger_app/internal/dto"
	"github.com/staffbook/staff_ledger_app/internal/platform/events"
	"github.com/staffbook/staff_ledger_app/internal/platform/metrics"
	"github.com/staffbook/staff_ledger_app/internal/utils/compensation"
)

var (
	// ErrInvalidSelection signals that the requested entry set cannot be
	// paid: an entry is missing, belongs to another collaborator, or is
	// already linked to a payment.
	ErrInvalidSelection = errors.New("selection contains entries that are not payable")
	// ErrNonPositiveAmount signals that the selection's payable total is
	// zero or negative and therefore cannot be settled.
	ErrNonPositiveAmount = errors.New("selection total must be positive")
)

type paymentService struct {
	BaseService
	entryRepo   portsrepo.EntryRepositoryFacade
	paymentRepo portsrepo.PaymentRepositoryFacade
	publisher   events.Publisher
	loc         *time.Location
}

var _ portssvc.PaymentSvcFacade = (*paymentService)(nil)

// NewPaymentService creates a new payment service.
func NewPaymentService(entryRepo portsrepo.EntryRepositoryFacade, paymentRepo portsrepo.PaymentRepositoryFacade, publisher events.Publisher, loc *time.Location) *paymentService {
	return &paymentService{
		entryRepo:   entryRepo,
		paymentRepo: paymentRepo,
		publisher:   publisher,
		loc:         loc,
	}
}

// CreatePayment settles the requested pending entries into a single payment.
// The whole transition is atomic: either every entry flips to paid and the
// payment exists, or nothing changes. A concurrent payment over any of the
// same entries makes one of the two requests fail with a conflict.
func (s *paymentService) CreatePayment(ctx context.Context, collaboratorID string, req dto.CreatePaymentRequest, creatorUserID string) (*domain.Payment, error) {
	logger := s.GetLogger(ctx)

	entryIDs := dedupeIDs(req.EntryIDs)
	if len(entryIDs) == 0 {
		return nil, fmt.Errorf("%w: no entries selected", ErrInvalidSelection)
	}

	found, err := s.entryRepo.FindEntriesByIDs(ctx, entryIDs)
	if err != nil {
		s.LogError(ctx, "failed to load entries for payment", "error", err, "collaboratorID", collaboratorID)
		return nil, fmt.Errorf("failed to load entries for payment: %w", err)
	}

	entries := make([]domain.LedgerEntry, 0, len(entryIDs))
	for _, id := range entryIDs {
		entry, ok := found[id]
		if !ok {
			return nil, fmt.Errorf("%w: entry %s does not exist", ErrInvalidSelection, id)
		}
		if entry.CollaboratorID != collaboratorID {
			return nil, fmt.Errorf("%w: entry %s does not belong to the collaborator", ErrInvalidSelection, id)
		}
		if entry.PaymentState != domain.StatePending {
			return nil, fmt.Errorf("%w: entry %s is already paid", ErrInvalidSelection, id)
		}
		entries = append(entries, entry)
	}

	total := compensation.SumContributions(entries)
	if !total.IsPositive() {
		return nil, fmt.Errorf("%w: selection totals %s", ErrNonPositiveAmount, total.String())
	}

	now := time.Now()
	payment := domain.Payment{
		PaymentID:      uuid.NewString(),
		CollaboratorID: collaboratorID,
		PaymentDate:    req.PaymentDate,
		Method:         req.Method,
		Notes:          req.Notes,
		Status:         domain.PaymentPaid,
		EntryIDs:       entryIDs,
		DaysPaid:       compensation.DaysPaidBreakdown(entries, s.loc),
		TotalAmount:    total,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.paymentRepo.CreatePaymentWithEntries(ctx, payment); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			metrics.PaymentConflicts.Inc()
			logger.Warn("payment creation lost a race over its entries", "collaboratorID", collaboratorID)
			return nil, err
		}
		s.LogError(ctx, "failed to create payment", "error", err, "collaboratorID", collaboratorID)
		return nil, fmt.Errorf("failed to create payment: %w", err)
	}

	metrics.PaymentsCreated.Inc()
	s.publisher.PublishPaymentCreated(ctx, &payment)
	logger.Info("payment created", "paymentID", payment.PaymentID, "collaboratorID", collaboratorID, "entries", len(entryIDs), "total", total.String())
	return &payment, nil
}

// DeletePayment undoes a payment: the payment record is removed and every
// entry it covered returns to pending in the same transaction. Undoing a
// payment that no longer exists reports not found, so a double undo cannot
// revert entries twice.
func (s *paymentService) DeletePayment(ctx context.Context, paymentID string, userID string) ([]string, error) {
	logger := s.GetLogger(ctx)

	payment, err := s.paymentRepo.FindPaymentByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}

	revertedIDs, err := s.paymentRepo.RevertPayment(ctx, paymentID, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		s.LogError(ctx, "failed to revert payment", "error", err, "paymentID", paymentID)
		return nil, fmt.Errorf("failed to revert payment: %w", err)
	}

	metrics.PaymentsReverted.Inc()
	s.publisher.PublishPaymentReverted(ctx, payment, revertedIDs)
	logger.Info("payment reverted", "paymentID", paymentID, "revertedEntries", len(revertedIDs))
	return revertedIDs, nil
}

// PreviewSelection resolves a whole-day selection over the collaborator's
// pending entries: which entries the requested days cover and what total a
// payment over them would settle. Selection granularity is the calendar day;
// asking for a day means asking for every pending entry on it. Empty days
// selects everything pending.
func (s *paymentService) PreviewSelection(ctx context.Context, collaboratorID string, days []string) (*domain.SelectionPreview, error) {
	entries, err := s.entryRepo.ListEntriesForAggregation(ctx, collaboratorID, nil, nil)
	if err != nil {
		s.LogError(ctx, "failed to load entries for selection preview", "error", err, "collaboratorID", collaboratorID)
		return nil, fmt.Errorf("failed to load entries for selection preview: %w", err)
	}

	selection := NewSelection(entries, s.loc)
	if len(days) == 0 {
		selection.SelectAll()
	} else {
		// Dedupe first: a repeated day is one request to select it, not a
		// toggle back off.
		for _, day := range dedupeIDs(days) {
			if !selection.ToggleDay(day) {
				return nil, fmt.Errorf("%w: no pending entries on day %s", ErrInvalidSelection, day)
			}
		}
	}

	selectedDays := make([]string, 0, len(selection.Days()))
	for _, day := range selection.Days() {
		if selection.IsSelected(day) {
			selectedDays = append(selectedDays, day)
		}
	}

	return &domain.SelectionPreview{
		Days:     selectedDays,
		EntryIDs: selection.SelectedEntryIDs(),
		Total:    selection.PreviewTotal(),
	}, nil
}

// GetPaymentByID fetches a single payment with its entry ids and per-day
// breakdown.
func (s *paymentService) GetPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error) {
	return s.paymentRepo.FindPaymentByID(ctx, paymentID)
}

// ListPayments returns a page of the collaborator's payments, newest first.
func (s *paymentService) ListPayments(ctx context.Context, collaboratorID string, params dto.ListPaymentsParams) ([]domain.Payment, *string, error) {
	limit := params.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	payments, nextToken, err := s.paymentRepo.ListPaymentsByCollaborator(ctx, collaboratorID, limit, params.NextToken)
	if err != nil {
		s.LogError(ctx, "failed to list payments", "error", err, "collaboratorID", collaboratorID)
		return nil, nil, fmt.Errorf("failed to list payments: %w", err)
	}
	return payments, nextToken, nil
}

func dedupeIDs(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
