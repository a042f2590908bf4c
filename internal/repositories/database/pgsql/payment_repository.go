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

const paymentColumns = `
	payment_id, collaborator_id, payment_date, method, notes, status, total_amount,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxPaymentRepository struct {
	BaseRepository
	entryRepo portsrepo.EntryRepositoryWithTx
}

// newPgxPaymentRepository creates a new repository for payment data. The
// entry repository dependency supplies the in-transaction entry mutations.
func newPgxPaymentRepository(pool *pgxpool.Pool, entryRepo portsrepo.EntryRepositoryWithTx) portsrepo.PaymentRepositoryFacade {
	return &PgxPaymentRepository{
		BaseRepository: BaseRepository{Pool: pool},
		entryRepo:      entryRepo,
	}
}

var _ portsrepo.PaymentRepositoryFacade = (*PgxPaymentRepository)(nil)

// CreatePaymentWithEntries persists the payment, its day breakdown, and
// flips every referenced entry to PAID in one database transaction. The
// entry update is conditional on the entries still being PENDING; a row
// count short of the selection means another payment claimed some of them
// first, and the whole transaction rolls back with ErrConflict.
func (r *PgxPaymentRepository) CreatePaymentWithEntries(ctx context.Context, payment domain.Payment) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) // No-op once the transaction is committed

	m := mapping.ToModelPayment(payment)
	paymentQuery := `
		INSERT INTO payments (` + paymentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err = tx.Exec(ctx, paymentQuery,
		m.PaymentID,
		m.CollaboratorID,
		m.PaymentDate,
		m.Method,
		m.Notes,
		m.Status,
		m.TotalAmount,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert payment "+m.PaymentID, err)
	}

	// Lock the entries so concurrent reconciliations serialize here.
	if _, err := r.entryRepo.FindEntriesByIDsForUpdate(ctx, tx, payment.EntryIDs); err != nil {
		return err
	}

	flipped, err := r.entryRepo.MarkEntriesPaidInTx(ctx, tx, payment.EntryIDs, payment.PaymentID, payment.CreatedBy, payment.CreatedAt)
	if err != nil {
		return err
	}
	if flipped != int64(len(payment.EntryIDs)) {
		return apperrors.ErrConflict
	}

	batch := &pgx.Batch{}
	dayQuery := `
		INSERT INTO payment_days (payment_id, day, amount)
		VALUES ($1, $2, $3);
	`
	for _, day := range payment.DaysPaid {
		batch.Queue(dayQuery, payment.PaymentID, day.Day, day.Amount)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to insert payment days for payment "+m.PaymentID, err)
	}

	return r.Commit(ctx, tx)
}

// RevertPayment deletes the payment and flips every referenced entry back to
// PENDING in one database transaction, returning the reverted entry IDs.
// Deleting zero payment rows means the payment no longer exists, so a second
// undo of the same payment reports ErrNotFound and reverts nothing.
func (r *PgxPaymentRepository) RevertPayment(ctx context.Context, paymentID string, userID string) ([]string, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	// Entries must be unlinked before the payment row can go away.
	revertedIDs, err := r.entryRepo.RevertEntriesByPaymentInTx(ctx, tx, paymentID, userID, time.Now())
	if err != nil {
		return nil, err
	}

	if _, err := tx.Exec(ctx, `DELETE FROM payment_days WHERE payment_id = $1;`, paymentID); err != nil {
		return nil, apperrors.NewAppError(500, "failed to delete payment days for payment "+paymentID, err)
	}

	tag, err := tx.Exec(ctx, `DELETE FROM payments WHERE payment_id = $1;`, paymentID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to delete payment "+paymentID, err)
	}
	if tag.RowsAffected() == 0 {
		return nil, apperrors.NewNotFoundError("payment with ID " + paymentID + " not found")
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return revertedIDs, nil
}

// FindPaymentByID retrieves a payment with its entry IDs and day breakdown.
func (r *PgxPaymentRepository) FindPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE payment_id = $1;`

	m, err := scanPaymentRow(r.Pool.QueryRow(ctx, query, paymentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find payment by ID "+paymentID, err)
	}

	entryIDs, err := r.findEntryIDs(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	days, err := r.findPaymentDays(ctx, paymentID)
	if err != nil {
		return nil, err
	}

	payment := mapping.ToDomainPayment(*m, entryIDs, days)
	return &payment, nil
}

// ListPaymentsByCollaborator retrieves a paginated list of a collaborator's
// payments, newest first, using token-based pagination.
func (r *PgxPaymentRepository) ListPaymentsByCollaborator(ctx context.Context, collaboratorID string, limit int, nextToken *string) ([]domain.Payment, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	query := `SELECT ` + paymentColumns + ` FROM payments WHERE collaborator_id = $1`
	args := []interface{}{collaboratorID}

	if nextToken != nil && *nextToken != "" {
		lastPaymentDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		args = append(args, lastPaymentDate, lastCreatedAt)
		query += ` AND (payment_date, created_at) < ($` + strconv.Itoa(len(args)-1) + `, $` + strconv.Itoa(len(args)) + `)`
	}

	args = append(args, fetchLimit)
	query += ` ORDER BY payment_date DESC, created_at DESC LIMIT $` + strconv.Itoa(len(args)) + `;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query payments for collaborator "+collaboratorID, err)
	}
	defer rows.Close()

	paymentModels := make([]models.Payment, 0, fetchLimit)
	for rows.Next() {
		m, err := scanPaymentRow(rows)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan payment row for collaborator "+collaboratorID, err)
		}
		paymentModels = append(paymentModels, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating payment rows for collaborator "+collaboratorID, err)
	}

	var nextTokenVal *string
	if len(paymentModels) > limit {
		last := paymentModels[limit-1]
		token := pagination.EncodeToken(last.PaymentDate, last.CreatedAt)
		nextTokenVal = &token
		paymentModels = paymentModels[:limit]
	}

	payments := make([]domain.Payment, 0, len(paymentModels))
	for _, m := range paymentModels {
		entryIDs, err := r.findEntryIDs(ctx, m.PaymentID)
		if err != nil {
			return nil, nil, err
		}
		days, err := r.findPaymentDays(ctx, m.PaymentID)
		if err != nil {
			return nil, nil, err
		}
		payments = append(payments, mapping.ToDomainPayment(m, entryIDs, days))
	}
	return payments, nextTokenVal, nil
}

func (r *PgxPaymentRepository) findEntryIDs(ctx context.Context, paymentID string) ([]string, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT entry_id FROM ledger_entries
		WHERE payment_id = $1
		ORDER BY entry_date ASC, created_at ASC;
	`, paymentID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query entry IDs for payment "+paymentID, err)
	}
	defer rows.Close()

	entryIDs := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan entry ID for payment "+paymentID, err)
		}
		entryIDs = append(entryIDs, id)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating entry IDs for payment "+paymentID, err)
	}
	return entryIDs, nil
}

func (r *PgxPaymentRepository) findPaymentDays(ctx context.Context, paymentID string) ([]models.PaymentDay, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT payment_id, day, amount FROM payment_days
		WHERE payment_id = $1
		ORDER BY day ASC;
	`, paymentID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query payment days for payment "+paymentID, err)
	}
	defer rows.Close()

	days := []models.PaymentDay{}
	for rows.Next() {
		var d models.PaymentDay
		if err := rows.Scan(&d.PaymentID, &d.Day, &d.Amount); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan payment day for payment "+paymentID, err)
		}
		days = append(days, d)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating payment days for payment "+paymentID, err)
	}
	return days, nil
}

// scanPaymentRow scans one payments row in paymentColumns order.
func scanPaymentRow(row pgx.Row) (*models.Payment, error) {
	var m models.Payment
	err := row.Scan(
		&m.PaymentID,
		&m.CollaboratorID,
		&m.PaymentDate,
		&m.Method,
		&m.Notes,
		&m.Status,
		&m.TotalAmount,
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
