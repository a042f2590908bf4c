package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/staffbook/staff_ledger_app/internal/apperrors"
	"github.com/staffbook/staff_ledger_app/internal/core/domain"
	"github.com/staffbook/staff_ledger_app/internal/core/services"
	"github.com/staffbook/staff_ledger_app/internal/dto"
)

type PaymentServiceTestSuite struct {
	suite.Suite
	mockEntryRepo   *MockEntryRepository
	mockPaymentRepo *MockPaymentRepository
	publisher       *recordingPublisher
	collaboratorID  string
	userID          string
	loc             *time.Location
}

// paymentFacade narrows the service under test to the methods exercised here.
type paymentFacade interface {
	CreatePayment(ctx context.Context, collaboratorID string, req dto.CreatePaymentRequest, creatorUserID string) (*domain.Payment, error)
	DeletePayment(ctx context.Context, paymentID string, userID string) ([]string, error)
	PreviewSelection(ctx context.Context, collaboratorID string, days []string) (*domain.SelectionPreview, error)
}

func (suite *PaymentServiceTestSuite) SetupTest() {
	suite.mockEntryRepo = new(MockEntryRepository)
	suite.mockPaymentRepo = new(MockPaymentRepository)
	suite.publisher = &recordingPublisher{}
	suite.loc = mustLoadLocation("America/Lima")
	suite.collaboratorID = uuid.NewString()
	suite.userID = uuid.NewString()
}

func (suite *PaymentServiceTestSuite) newService() paymentFacade {
	return services.NewPaymentService(suite.mockEntryRepo, suite.mockPaymentRepo, suite.publisher, suite.loc)
}

func (suite *PaymentServiceTestSuite) pendingEntry(date time.Time, pay string) domain.LedgerEntry {
	return domain.LedgerEntry{
		EntryID:        uuid.NewString(),
		CollaboratorID: suite.collaboratorID,
		EntryDate:      date,
		Kind:           domain.KindDailyPay,
		Origin:         domain.OriginManual,
		PaymentState:   domain.StatePending,
		Amounts: domain.EntryAmounts{
			Pay:      decimal.RequireFromString(pay),
			Bonus:    decimal.Zero,
			Advance:  decimal.Zero,
			Shortage: decimal.Zero,
			Expense:  decimal.Zero,
		},
	}
}

func asMap(entries ...domain.LedgerEntry) map[string]domain.LedgerEntry {
	m := make(map[string]domain.LedgerEntry, len(entries))
	for _, e := range entries {
		m[e.EntryID] = e
	}
	return m
}

func (suite *PaymentServiceTestSuite) TestCreatePaymentSuccess() {
	day1 := time.Date(2026, 3, 1, 9, 0, 0, 0, suite.loc)
	day2 := time.Date(2026, 3, 2, 9, 0, 0, 0, suite.loc)
	e1 := suite.pendingEntry(day1, "100")
	e2 := suite.pendingEntry(day2, "80")

	suite.mockEntryRepo.On("FindEntriesByIDs", mock.Anything, []string{e1.EntryID, e2.EntryID}).
		Return(asMap(e1, e2), nil)
	suite.mockPaymentRepo.On("CreatePaymentWithEntries", mock.Anything, mock.MatchedBy(func(p domain.Payment) bool {
		return p.CollaboratorID == suite.collaboratorID &&
			len(p.EntryIDs) == 2 &&
			p.TotalAmount.Equal(decimal.RequireFromString("180")) &&
			p.Status == domain.PaymentPaid &&
			len(p.DaysPaid) == 2 &&
			p.DaysPaid[0].Day == "2026-03-01" &&
			p.DaysPaid[1].Day == "2026-03-02"
	})).Return(nil)

	req := dto.CreatePaymentRequest{
		EntryIDs:    []string{e1.EntryID, e2.EntryID},
		Method:      "cash",
		PaymentDate: time.Now(),
	}
	payment, err := suite.newService().CreatePayment(context.Background(), suite.collaboratorID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(payment)
	suite.NotEmpty(payment.PaymentID)
	suite.True(payment.TotalAmount.Equal(decimal.RequireFromString("180")))
	suite.Len(suite.publisher.created, 1)
	suite.mockPaymentRepo.AssertExpectations(suite.T())
}

func (suite *PaymentServiceTestSuite) TestCreatePaymentDeduplicatesIDs() {
	e1 := suite.pendingEntry(time.Now(), "100")

	suite.mockEntryRepo.On("FindEntriesByIDs", mock.Anything, []string{e1.EntryID}).
		Return(asMap(e1), nil)
	suite.mockPaymentRepo.On("CreatePaymentWithEntries", mock.Anything, mock.MatchedBy(func(p domain.Payment) bool {
		return len(p.EntryIDs) == 1 && p.TotalAmount.Equal(decimal.RequireFromString("100"))
	})).Return(nil)

	req := dto.CreatePaymentRequest{
		EntryIDs:    []string{e1.EntryID, e1.EntryID, e1.EntryID},
		Method:      "cash",
		PaymentDate: time.Now(),
	}
	payment, err := suite.newService().CreatePayment(context.Background(), suite.collaboratorID, req, suite.userID)

	suite.Require().NoError(err)
	suite.True(payment.TotalAmount.Equal(decimal.RequireFromString("100")))
}

func (suite *PaymentServiceTestSuite) TestCreatePaymentMissingEntry() {
	e1 := suite.pendingEntry(time.Now(), "100")
	missingID := uuid.NewString()

	suite.mockEntryRepo.On("FindEntriesByIDs", mock.Anything, mock.Anything).
		Return(asMap(e1), nil)

	req := dto.CreatePaymentRequest{
		EntryIDs:    []string{e1.EntryID, missingID},
		Method:      "cash",
		PaymentDate: time.Now(),
	}
	_, err := suite.newService().CreatePayment(context.Background(), suite.collaboratorID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrInvalidSelection)
	suite.mockPaymentRepo.AssertNotCalled(suite.T(), "CreatePaymentWithEntries", mock.Anything, mock.Anything)
}

func (suite *PaymentServiceTestSuite) TestCreatePaymentForeignEntry() {
	e1 := suite.pendingEntry(time.Now(), "100")
	e1.CollaboratorID = uuid.NewString() // belongs to someone else

	suite.mockEntryRepo.On("FindEntriesByIDs", mock.Anything, mock.Anything).
		Return(asMap(e1), nil)

	req := dto.CreatePaymentRequest{
		EntryIDs:    []string{e1.EntryID},
		Method:      "cash",
		PaymentDate: time.Now(),
	}
	_, err := suite.newService().CreatePayment(context.Background(), suite.collaboratorID, req, suite.userID)

	suite.ErrorIs(err, services.ErrInvalidSelection)
}

func (suite *PaymentServiceTestSuite) TestCreatePaymentAlreadyPaidEntry() {
	e1 := suite.pendingEntry(time.Now(), "100")
	e1.PaymentState = domain.StatePaid

	suite.mockEntryRepo.On("FindEntriesByIDs", mock.Anything, mock.Anything).
		Return(asMap(e1), nil)

	req := dto.CreatePaymentRequest{
		EntryIDs:    []string{e1.EntryID},
		Method:      "cash",
		PaymentDate: time.Now(),
	}
	_, err := suite.newService().CreatePayment(context.Background(), suite.collaboratorID, req, suite.userID)

	suite.ErrorIs(err, services.ErrInvalidSelection)
}

func (suite *PaymentServiceTestSuite) TestCreatePaymentNonPositiveTotal() {
	e1 := suite.pendingEntry(time.Now(), "50")
	e1.Amounts.Advance = decimal.RequireFromString("80") // contribution -30

	suite.mockEntryRepo.On("FindEntriesByIDs", mock.Anything, mock.Anything).
		Return(asMap(e1), nil)

	req := dto.CreatePaymentRequest{
		EntryIDs:    []string{e1.EntryID},
		Method:      "cash",
		PaymentDate: time.Now(),
	}
	_, err := suite.newService().CreatePayment(context.Background(), suite.collaboratorID, req, suite.userID)

	suite.ErrorIs(err, services.ErrNonPositiveAmount)
	suite.mockPaymentRepo.AssertNotCalled(suite.T(), "CreatePaymentWithEntries", mock.Anything, mock.Anything)
}

func (suite *PaymentServiceTestSuite) TestCreatePaymentZeroTotal() {
	e1 := suite.pendingEntry(time.Now(), "0")

	suite.mockEntryRepo.On("FindEntriesByIDs", mock.Anything, mock.Anything).
		Return(asMap(e1), nil)

	req := dto.CreatePaymentRequest{
		EntryIDs:    []string{e1.EntryID},
		Method:      "cash",
		PaymentDate: time.Now(),
	}
	_, err := suite.newService().CreatePayment(context.Background(), suite.collaboratorID, req, suite.userID)

	suite.ErrorIs(err, services.ErrNonPositiveAmount)
}

func (suite *PaymentServiceTestSuite) TestCreatePaymentConflictPropagates() {
	e1 := suite.pendingEntry(time.Now(), "100")

	suite.mockEntryRepo.On("FindEntriesByIDs", mock.Anything, mock.Anything).
		Return(asMap(e1), nil)
	suite.mockPaymentRepo.On("CreatePaymentWithEntries", mock.Anything, mock.Anything).
		Return(apperrors.ErrConflict)

	req := dto.CreatePaymentRequest{
		EntryIDs:    []string{e1.EntryID},
		Method:      "cash",
		PaymentDate: time.Now(),
	}
	_, err := suite.newService().CreatePayment(context.Background(), suite.collaboratorID, req, suite.userID)

	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.Empty(suite.publisher.created)
}

func (suite *PaymentServiceTestSuite) TestDeletePaymentRevertsEntries() {
	paymentID := uuid.NewString()
	entryIDs := []string{uuid.NewString(), uuid.NewString()}
	payment := &domain.Payment{
		PaymentID:      paymentID,
		CollaboratorID: suite.collaboratorID,
		EntryIDs:       entryIDs,
		TotalAmount:    decimal.RequireFromString("180"),
	}

	suite.mockPaymentRepo.On("FindPaymentByID", mock.Anything, paymentID).Return(payment, nil)
	suite.mockPaymentRepo.On("RevertPayment", mock.Anything, paymentID, suite.userID).
		Return(entryIDs, nil)

	revertedIDs, err := suite.newService().DeletePayment(context.Background(), paymentID, suite.userID)

	suite.Require().NoError(err)
	suite.ElementsMatch(entryIDs, revertedIDs)
	suite.Len(suite.publisher.reverted, 1)
}

func (suite *PaymentServiceTestSuite) TestDeletePaymentNotFound() {
	paymentID := uuid.NewString()

	suite.mockPaymentRepo.On("FindPaymentByID", mock.Anything, paymentID).
		Return(nil, apperrors.ErrNotFound)

	_, err := suite.newService().DeletePayment(context.Background(), paymentID, suite.userID)

	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockPaymentRepo.AssertNotCalled(suite.T(), "RevertPayment", mock.Anything, mock.Anything, mock.Anything)
	suite.Empty(suite.publisher.reverted)
}

func (suite *PaymentServiceTestSuite) TestPreviewSelectionWholeDays() {
	day1 := time.Date(2026, 3, 1, 9, 0, 0, 0, suite.loc)
	day2 := time.Date(2026, 3, 2, 9, 0, 0, 0, suite.loc)
	e1 := suite.pendingEntry(day1, "100")
	e2 := suite.pendingEntry(day1, "20")
	e3 := suite.pendingEntry(day2, "80")

	suite.mockEntryRepo.On("ListEntriesForAggregation", mock.Anything, suite.collaboratorID, (*time.Time)(nil), (*time.Time)(nil)).
		Return([]domain.LedgerEntry{e1, e2, e3}, nil)

	// Selecting day1 must pull both of its entries, never just one.
	preview, err := suite.newService().PreviewSelection(context.Background(), suite.collaboratorID, []string{"2026-03-01"})

	suite.Require().NoError(err)
	suite.Equal([]string{"2026-03-01"}, preview.Days)
	suite.ElementsMatch([]string{e1.EntryID, e2.EntryID}, preview.EntryIDs)
	suite.True(preview.Total.Equal(decimal.RequireFromString("120")))
}

func (suite *PaymentServiceTestSuite) TestPreviewSelectionAllPendingByDefault() {
	day1 := time.Date(2026, 3, 1, 9, 0, 0, 0, suite.loc)
	e1 := suite.pendingEntry(day1, "100")
	paid := suite.pendingEntry(day1, "999")
	paid.PaymentState = domain.StatePaid

	suite.mockEntryRepo.On("ListEntriesForAggregation", mock.Anything, suite.collaboratorID, (*time.Time)(nil), (*time.Time)(nil)).
		Return([]domain.LedgerEntry{e1, paid}, nil)

	preview, err := suite.newService().PreviewSelection(context.Background(), suite.collaboratorID, nil)

	suite.Require().NoError(err)
	suite.Equal([]string{e1.EntryID}, preview.EntryIDs)
	suite.True(preview.Total.Equal(decimal.RequireFromString("100")))
}

func (suite *PaymentServiceTestSuite) TestPreviewSelectionRepeatedDay() {
	day1 := time.Date(2026, 3, 1, 9, 0, 0, 0, suite.loc)
	e1 := suite.pendingEntry(day1, "100")

	suite.mockEntryRepo.On("ListEntriesForAggregation", mock.Anything, suite.collaboratorID, (*time.Time)(nil), (*time.Time)(nil)).
		Return([]domain.LedgerEntry{e1}, nil)

	// A repeated day is one request to select it, not a toggle back off.
	preview, err := suite.newService().PreviewSelection(context.Background(), suite.collaboratorID, []string{"2026-03-01", "2026-03-01"})

	suite.Require().NoError(err)
	suite.Equal([]string{"2026-03-01"}, preview.Days)
	suite.Equal([]string{e1.EntryID}, preview.EntryIDs)
	suite.True(preview.Total.Equal(decimal.RequireFromString("100")))
}

func (suite *PaymentServiceTestSuite) TestPreviewSelectionUnknownDay() {
	suite.mockEntryRepo.On("ListEntriesForAggregation", mock.Anything, suite.collaboratorID, (*time.Time)(nil), (*time.Time)(nil)).
		Return([]domain.LedgerEntry{}, nil)

	_, err := suite.newService().PreviewSelection(context.Background(), suite.collaboratorID, []string{"2026-03-01"})

	suite.ErrorIs(err, services.ErrInvalidSelection)
}

func TestPaymentService(t *testing.T) {
	suite.Run(t, new(PaymentServiceTestSuite))
}
