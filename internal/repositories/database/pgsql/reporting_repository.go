package pgsql

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/staffbook/staff_ledger_app/internal/apperrors"
	"github.com/staffbook/staff_ledger_app/internal/core/domain"
	portsrepo "github.com/staffbook/staff_ledger_app/internal/core/ports/repositories"
)

type PgxReportingRepository struct {
	BaseRepository
}

// newPgxReportingRepository creates a new repository for stats projections.
func newPgxReportingRepository(pool *pgxpool.Pool) portsrepo.ReportingRepository {
	return &PgxReportingRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.ReportingRepository = (*PgxReportingRepository)(nil)

// GetCompensationSums retrieves amount sums grouped by collaborator and
// payment state. Summing is pushed to the database so stats do not load
// whole ledgers into memory.
func (r *PgxReportingRepository) GetCompensationSums(ctx context.Context, collaboratorIDs []string) ([]portsrepo.CompensationSums, error) {
	query := `
		SELECT collaborator_id, payment_state,
		       COALESCE(SUM(pay_amount), 0),
		       COALESCE(SUM(bonus_amount), 0),
		       COALESCE(SUM(advance_amount), 0),
		       COALESCE(SUM(shortage_amount), 0),
		       COALESCE(SUM(expense_amount), 0)
		FROM ledger_entries
		WHERE collaborator_id = ANY($1)
		GROUP BY collaborator_id, payment_state;
	`
	rows, err := r.Pool.Query(ctx, query, collaboratorIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query compensation sums", err)
	}
	defer rows.Close()

	sums := []portsrepo.CompensationSums{}
	for rows.Next() {
		var s portsrepo.CompensationSums
		var state string
		err := rows.Scan(&s.CollaboratorID, &state, &s.Pay, &s.Bonus, &s.Advance, &s.Shortage, &s.Expense)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan compensation sums row", err)
		}
		s.State = domain.PaymentState(state)
		sums = append(sums, s)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating compensation sums rows", err)
	}
	return sums, nil
}

// GetKindSums retrieves shortage and expense sums grouped by collaborator
// and entry kind. Classification into the automatic breakdown happens in
// the service, keyed on kind alone; origin is informational and never
// feeds arithmetic.
func (r *PgxReportingRepository) GetKindSums(ctx context.Context, collaboratorIDs []string) ([]portsrepo.KindSums, error) {
	query := `
		SELECT collaborator_id, kind,
		       COALESCE(SUM(shortage_amount), 0),
		       COALESCE(SUM(expense_amount), 0)
		FROM ledger_entries
		WHERE collaborator_id = ANY($1)
		GROUP BY collaborator_id, kind;
	`
	rows, err := r.Pool.Query(ctx, query, collaboratorIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query kind sums", err)
	}
	defer rows.Close()

	sums := []portsrepo.KindSums{}
	for rows.Next() {
		var s portsrepo.KindSums
		var kind string
		if err := rows.Scan(&s.CollaboratorID, &kind, &s.Shortage, &s.Expense); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan kind sums row", err)
		}
		s.Kind = domain.EntryKind(kind)
		sums = append(sums, s)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating kind sums rows", err)
	}
	return sums, nil
}
