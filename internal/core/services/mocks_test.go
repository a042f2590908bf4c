package services_test

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"

	"github.com/staffbook/staff_ledger_app/internal/core/domain"
	portsrepo "github.com/staffbook/staff_ledger_app/internal/core/ports/repositories"
	"github.com/staffbook/staff_ledger_app/internal/platform/events"
)

// --- Mock EntryRepository ---

type MockEntryRepository struct {
	mock.Mock
}

var _ portsrepo.EntryRepositoryFacade = (*MockEntryRepository)(nil)

func (m *MockEntryRepository) SaveEntry(ctx context.Context, entry domain.LedgerEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockEntryRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}

func (m *MockEntryRepository) FindEntriesByIDs(ctx context.Context, entryIDs []string) (map[string]domain.LedgerEntry, error) {
	args := m.Called(ctx, entryIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.LedgerEntry), args.Error(1)
}

func (m *MockEntryRepository) ListEntriesByCollaborator(ctx context.Context, collaboratorID string, filters portsrepo.EntryFilters, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error) {
	args := m.Called(ctx, collaboratorID, filters, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.LedgerEntry), returnedNextToken, args.Error(2)
}

func (m *MockEntryRepository) ListEntriesForAggregation(ctx context.Context, collaboratorID string, from, to *time.Time) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx, collaboratorID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerEntry), args.Error(1)
}

func (m *MockEntryRepository) FindEntriesByIDsForUpdate(ctx context.Context, tx pgx.Tx, entryIDs []string) (map[string]domain.LedgerEntry, error) {
	args := m.Called(ctx, tx, entryIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.LedgerEntry), args.Error(1)
}

func (m *MockEntryRepository) MarkEntriesPaidInTx(ctx context.Context, tx pgx.Tx, entryIDs []string, paymentID string, userID string, now time.Time) (int64, error) {
	args := m.Called(ctx, tx, entryIDs, paymentID, userID, now)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockEntryRepository) RevertEntriesByPaymentInTx(ctx context.Context, tx pgx.Tx, paymentID string, userID string, now time.Time) ([]string, error) {
	args := m.Called(ctx, tx, paymentID, userID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// --- Mock PaymentRepository ---

type MockPaymentRepository struct {
	mock.Mock
}

var _ portsrepo.PaymentRepositoryFacade = (*MockPaymentRepository)(nil)

func (m *MockPaymentRepository) FindPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error) {
	args := m.Called(ctx, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

func (m *MockPaymentRepository) ListPaymentsByCollaborator(ctx context.Context, collaboratorID string, limit int, nextToken *string) ([]domain.Payment, *string, error) {
	args := m.Called(ctx, collaboratorID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.Payment), returnedNextToken, args.Error(2)
}

func (m *MockPaymentRepository) CreatePaymentWithEntries(ctx context.Context, payment domain.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *MockPaymentRepository) RevertPayment(ctx context.Context, paymentID string, userID string) ([]string, error) {
	args := m.Called(ctx, paymentID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// --- Mock ReportingRepository ---

type MockReportingRepository struct {
	mock.Mock
}

var _ portsrepo.ReportingRepository = (*MockReportingRepository)(nil)

func (m *MockReportingRepository) GetCompensationSums(ctx context.Context, collaboratorIDs []string) ([]portsrepo.CompensationSums, error) {
	args := m.Called(ctx, collaboratorIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]portsrepo.CompensationSums), args.Error(1)
}

func (m *MockReportingRepository) GetKindSums(ctx context.Context, collaboratorIDs []string) ([]portsrepo.KindSums, error) {
	args := m.Called(ctx, collaboratorIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]portsrepo.KindSums), args.Error(1)
}

func mustLoadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic(err)
	}
	return loc
}

// recordingPublisher captures published events for assertions.
type recordingPublisher struct {
	created  []*domain.Payment
	reverted []*domain.Payment
}

var _ events.Publisher = (*recordingPublisher)(nil)

func (p *recordingPublisher) PublishPaymentCreated(_ context.Context, payment *domain.Payment) {
	p.created = append(p.created, payment)
}

func (p *recordingPublisher) PublishPaymentReverted(_ context.Context, payment *domain.Payment, _ []string) {
	p.reverted = append(p.reverted, payment)
}

func (p *recordingPublisher) Close() error { return nil }
