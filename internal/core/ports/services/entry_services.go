package services

import (
	"context"

	"github.com/staffbook/staff_ledger_app/internal/core/domain"
	"github.com/staffbook/staff_ledger_app/internal/dto"
)

// EntrySvcFacade defines operations for creating and reading ledger entries.
type EntrySvcFacade interface {
	// CreateEntry validates and persists a new ledger entry for the
	// collaborator. Negative raw amounts and unknown kinds are rejected.
	CreateEntry(ctx context.Context, collaboratorID string, req dto.CreateEntryRequest, creatorUserID string) (*domain.LedgerEntry, error)

	// GetEntryByID retrieves one entry, scoped to the collaborator.
	GetEntryByID(ctx context.Context, collaboratorID string, entryID string) (*domain.LedgerEntry, error)

	// ListEntries retrieves a paginated, filtered list of a collaborator's
	// entries, returning the entries and a token for the next page.
	ListEntries(ctx context.Context, collaboratorID string, params dto.ListEntriesParams) ([]domain.LedgerEntry, *string, error)
}
