package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/staffbook/staff_ledger_app/internal/core/domain"
)

// EntryFilters narrows an entry listing. Nil fields are ignored.
type EntryFilters struct {
	State *domain.PaymentState
	From  *time.Time
	To    *time.Time
}

// EntryReader defines read operations for ledger entry data
type EntryReader interface {
	// FindEntryByID retrieves a specific entry by its unique identifier.
	FindEntryByID(ctx context.Context, entryID string) (*domain.LedgerEntry, error)

	// FindEntriesByIDs retrieves multiple entries by their IDs. IDs with no
	// matching entry are simply absent from the result map.
	FindEntriesByIDs(ctx context.Context, entryIDs []string) (map[string]domain.LedgerEntry, error)

	// ListEntriesByCollaborator retrieves a paginated list of a collaborator's
	// entries using token-based pagination. It returns the entries, a token
	// for the next page, and an error.
	ListEntriesByCollaborator(ctx context.Context, collaboratorID string, filters EntryFilters, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error)

	// ListEntriesForAggregation retrieves every entry of a collaborator in the
	// optional date range, unpaginated, for in-memory aggregation.
	ListEntriesForAggregation(ctx context.Context, collaboratorID string, from, to *time.Time) ([]domain.LedgerEntry, error)
}

// EntryWriter defines write operations for ledger entry data
type EntryWriter interface {
	// SaveEntry persists a new ledger entry.
	SaveEntry(ctx context.Context, entry domain.LedgerEntry) error
}

// EntryTransactionSupport defines the entry mutations used inside payment
// reconciliation transactions.
type EntryTransactionSupport interface {
	// FindEntriesByIDsForUpdate selects entries and locks them for update
	// within a transaction. Returns ErrNotFound if any ID is missing.
	FindEntriesByIDsForUpdate(ctx context.Context, tx pgx.Tx, entryIDs []string) (map[string]domain.LedgerEntry, error)

	// MarkEntriesPaidInTx flips the given entries to PAID and sets their
	// payment back-reference. The update is conditional on the entries still
	// being PENDING; it returns the number of rows actually flipped so the
	// caller can detect lost races.
	MarkEntriesPaidInTx(ctx context.Context, tx pgx.Tx, entryIDs []string, paymentID string, userID string, now time.Time) (int64, error)

	// RevertEntriesByPaymentInTx flips every entry consumed by paymentID back
	// to PENDING, clearing the back-reference, and returns the reverted IDs.
	RevertEntriesByPaymentInTx(ctx context.Context, tx pgx.Tx, paymentID string, userID string, now time.Time) ([]string, error)
}

// EntryRepositoryFacade combines all entry-related repository interfaces
type EntryRepositoryFacade interface {
	EntryReader
	EntryWriter
	EntryTransactionSupport
}

// EntryRepositoryWithTx extends EntryRepositoryFacade with transaction capabilities
type EntryRepositoryWithTx interface {
	EntryRepositoryFacade
	TransactionManager
}
