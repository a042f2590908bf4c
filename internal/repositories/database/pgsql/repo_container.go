package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/staffbook/staff_ledger_app/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	entryRepo := newPgxEntryRepository(dbPool)
	paymentRepo := newPgxPaymentRepository(dbPool, entryRepo)
	reportingRepo := newPgxReportingRepository(dbPool)

	return portsrepo.RepositoryProvider{
		EntryRepo:     entryRepo,
		PaymentRepo:   paymentRepo,
		ReportingRepo: reportingRepo,
	}
}
