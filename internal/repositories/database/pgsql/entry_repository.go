package pgsql

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/staffbook/staff_ledger_app/internal/apperrors"
	"github.com/staffbook/staff_ledger_app/internal/core/domain"
	portsrepo "github.com/staffbook/staff_ledger_app/internal/core/ports/repositories"
	"github.com/staffbook/staff_ledger_app/internal/models"
	"github.com/staffbook/staff_ledger_app/internal/utils/mapping"
	"github.com/staffbook/staff_ledger_app/internal/utils/pagination"
)

const entryColumns = `
	entry_id, collaborator_id, entry_date, kind, origin, payment_state, payment_id,
	pay_amount, bonus_amount, advance_amount, shortage_amount, expense_amount, notes,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxEntryRepository struct {
	BaseRepository
}

// newPgxEntryRepository creates a new repository for ledger entry data.
func newPgxEntryRepository(pool *pgxpool.Pool) portsrepo.EntryRepositoryWithTx {
	return &PgxEntryRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.EntryRepositoryWithTx = (*PgxEntryRepository)(nil)

// SaveEntry persists a new ledger entry.
func (r *PgxEntryRepository) SaveEntry(ctx context.Context, entry domain.LedgerEntry) error {
	m := mapping.ToModelLedgerEntry(entry)
	query := `
		INSERT INTO ledger_entries (` + entryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.EntryID,
		m.CollaboratorID,
		m.EntryDate,
		m.Kind,
		m.Origin,
		m.PaymentState,
		m.PaymentID,
		m.PayAmount,
		m.BonusAmount,
		m.AdvanceAmount,
		m.ShortageAmount,
		m.ExpenseAmount,
		m.Notes,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert ledger entry "+m.EntryID, err)
	}
	return nil
}

// FindEntryByID retrieves a single entry by its ID.
func (r *PgxEntryRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.LedgerEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM ledger_entries WHERE entry_id = $1;`

	m, err := scanEntryRow(r.Pool.QueryRow(ctx, query, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find entry by ID "+entryID, err)
	}

	entry := mapping.ToDomainLedgerEntry(*m)
	return &entry, nil
}

// FindEntriesByIDs retrieves multiple entries by their IDs. IDs with no
// matching row are absent from the result map.
func (r *PgxEntryRepository) FindEntriesByIDs(ctx context.Context, entryIDs []string) (map[string]domain.LedgerEntry, error) {
	if len(entryIDs) == 0 {
		return map[string]domain.LedgerEntry{}, nil
	}

	query := `SELECT ` + entryColumns + ` FROM ledger_entries WHERE entry_id = ANY($1);`
	rows, err := r.Pool.Query(ctx, query, entryIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query entries by IDs", err)
	}
	defer rows.Close()

	result := make(map[string]domain.LedgerEntry, len(entryIDs))
	for rows.Next() {
		m, err := scanEntryRow(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan entry row", err)
		}
		result[m.EntryID] = mapping.ToDomainLedgerEntry(*m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating entry rows", err)
	}
	return result, nil
}

// ListEntriesByCollaborator retrieves a paginated list of a collaborator's
// entries, newest first, using token-based pagination.
func (r *PgxEntryRepository) ListEntriesByCollaborator(ctx context.Context, collaboratorID string, filters portsrepo.EntryFilters, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	query := `SELECT ` + entryColumns + ` FROM ledger_entries WHERE collaborator_id = $1`
	args := []interface{}{collaboratorID}

	if filters.State != nil {
		args = append(args, string(*filters.State))
		query += ` AND payment_state = $` + strconv.Itoa(len(args))
	}
	if filters.From != nil {
		args = append(args, *filters.From)
		query += ` AND entry_date >= $` + strconv.Itoa(len(args))
	}
	if filters.To != nil {
		args = append(args, *filters.To)
		query += ` AND entry_date <= $` + strconv.Itoa(len(args))
	}

	if nextToken != nil && *nextToken != "" {
		lastEntryDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		args = append(args, lastEntryDate, lastCreatedAt)
		query += ` AND (entry_date, created_at) < ($` + strconv.Itoa(len(args)-1) + `, $` + strconv.Itoa(len(args)) + `)`
	}

	args = append(args, fetchLimit)
	query += ` ORDER BY entry_date DESC, created_at DESC LIMIT $` + strconv.Itoa(len(args)) + `;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query entries for collaborator "+collaboratorID, err)
	}
	defer rows.Close()

	entries := make([]models.LedgerEntry, 0, fetchLimit)
	for rows.Next() {
		m, err := scanEntryRow(rows)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan entry row for collaborator "+collaboratorID, err)
		}
		entries = append(entries, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating entry rows for collaborator "+collaboratorID, err)
	}

	var nextTokenVal *string
	if len(entries) > limit {
		last := entries[limit-1]
		token := pagination.EncodeToken(last.EntryDate, last.CreatedAt)
		nextTokenVal = &token
		entries = entries[:limit]
	}

	return mapping.ToDomainLedgerEntrySlice(entries), nextTokenVal, nil
}

// ListEntriesForAggregation retrieves every entry of a collaborator in the
// optional date range, ordered by entry date, for in-memory aggregation.
func (r *PgxEntryRepository) ListEntriesForAggregation(ctx context.Context, collaboratorID string, from, to *time.Time) ([]domain.LedgerEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM ledger_entries WHERE collaborator_id = $1`
	args := []interface{}{collaboratorID}

	if from != nil {
		args = append(args, *from)
		query += ` AND entry_date >= $` + strconv.Itoa(len(args))
	}
	if to != nil {
		args = append(args, *to)
		query += ` AND entry_date <= $` + strconv.Itoa(len(args))
	}
	query += ` ORDER BY entry_date ASC, created_at ASC;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query entries for aggregation for collaborator "+collaboratorID, err)
	}
	defer rows.Close()

	entries := []models.LedgerEntry{}
	for rows.Next() {
		m, err := scanEntryRow(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan entry row for collaborator "+collaboratorID, err)
		}
		entries = append(entries, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating entry rows for collaborator "+collaboratorID, err)
	}

	return mapping.ToDomainLedgerEntrySlice(entries), nil
}

// FindEntriesByIDsForUpdate selects entries and locks them for update within
// a transaction. Returns ErrNotFound if any ID is missing.
func (r *PgxEntryRepository) FindEntriesByIDsForUpdate(ctx context.Context, tx pgx.Tx, entryIDs []string) (map[string]domain.LedgerEntry, error) {
	if len(entryIDs) == 0 {
		return map[string]domain.LedgerEntry{}, nil
	}

	query := `SELECT ` + entryColumns + ` FROM ledger_entries WHERE entry_id = ANY($1) FOR UPDATE;`
	rows, err := tx.Query(ctx, query, entryIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to lock entries for update", err)
	}
	defer rows.Close()

	result := make(map[string]domain.LedgerEntry, len(entryIDs))
	for rows.Next() {
		m, err := scanEntryRow(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan locked entry row", err)
		}
		result[m.EntryID] = mapping.ToDomainLedgerEntry(*m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating locked entry rows", err)
	}

	for _, id := range entryIDs {
		if _, ok := result[id]; !ok {
			return nil, apperrors.NewNotFoundError("entry with ID " + id + " not found")
		}
	}
	return result, nil
}

// MarkEntriesPaidInTx flips the given entries to PAID and links them to the
// payment. The WHERE clause keeps the update conditional on the entries still
// being PENDING; the returned row count lets the caller detect a lost race.
func (r *PgxEntryRepository) MarkEntriesPaidInTx(ctx context.Context, tx pgx.Tx, entryIDs []string, paymentID string, userID string, now time.Time) (int64, error) {
	query := `
		UPDATE ledger_entries
		SET payment_state = $1, payment_id = $2, last_updated_at = $3, last_updated_by = $4
		WHERE entry_id = ANY($5) AND payment_state = $6;
	`
	tag, err := tx.Exec(ctx, query,
		string(domain.StatePaid),
		paymentID,
		now,
		userID,
		entryIDs,
		string(domain.StatePending),
	)
	if err != nil {
		return 0, apperrors.NewAppError(500, "failed to mark entries paid for payment "+paymentID, err)
	}
	return tag.RowsAffected(), nil
}

// RevertEntriesByPaymentInTx flips every entry consumed by the payment back
// to PENDING and returns the reverted IDs.
func (r *PgxEntryRepository) RevertEntriesByPaymentInTx(ctx context.Context, tx pgx.Tx, paymentID string, userID string, now time.Time) ([]string, error) {
	query := `
		UPDATE ledger_entries
		SET payment_state = $1, payment_id = NULL, last_updated_at = $2, last_updated_by = $3
		WHERE payment_id = $4 AND payment_state = $5
		RETURNING entry_id;
	`
	rows, err := tx.Query(ctx, query,
		string(domain.StatePending),
		now,
		userID,
		paymentID,
		string(domain.StatePaid),
	)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to revert entries for payment "+paymentID, err)
	}
	defer rows.Close()

	revertedIDs := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan reverted entry ID for payment "+paymentID, err)
		}
		revertedIDs = append(revertedIDs, id)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating reverted entry rows for payment "+paymentID, err)
	}
	return revertedIDs, nil
}

// scanEntryRow scans one ledger_entries row in entryColumns order.
func scanEntryRow(row pgx.Row) (*models.LedgerEntry, error) {
	var m models.LedgerEntry
	err := row.Scan(
		&m.EntryID,
		&m.CollaboratorID,
		&m.EntryDate,
		&m.Kind,
		&m.Origin,
		&m.PaymentState,
		&m.PaymentID,
		&m.PayAmount,
		&m.BonusAmount,
		&m.AdvanceAmount,
		&m.ShortageAmount,
		&m.ExpenseAmount,
		&m.Notes,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}
