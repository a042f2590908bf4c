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
	portssvc "github.com/staffbook/staff_ledger_app/internal/core/ports/services"
	"github.com/staffbook/staff_ledger_app/internal/core/services"
	"github.com/staffbook/staff_ledger_app/internal/dto"
)

type EntryServiceTestSuite struct {
	suite.Suite
	mockEntryRepo  *MockEntryRepository
	service        portssvc.EntrySvcFacade
	collaboratorID string
	userID         string
}

func (suite *EntryServiceTestSuite) SetupTest() {
	suite.mockEntryRepo = new(MockEntryRepository)
	suite.service = services.NewEntryService(suite.mockEntryRepo)
	suite.collaboratorID = uuid.NewString()
	suite.userID = uuid.NewString()
}

func (suite *EntryServiceTestSuite) TestCreateEntrySuccess() {
	suite.mockEntryRepo.On("SaveEntry", mock.Anything, mock.MatchedBy(func(e domain.LedgerEntry) bool {
		return e.CollaboratorID == suite.collaboratorID &&
			e.Kind == domain.KindDailyPay &&
			e.Origin == domain.OriginManual &&
			e.PaymentState == domain.StatePending &&
			e.PaymentID == nil &&
			e.CreatedBy == suite.userID
	})).Return(nil)

	req := dto.CreateEntryRequest{
		Kind:      domain.KindDailyPay,
		Date:      time.Now(),
		PayAmount: decimal.RequireFromString("100"),
	}
	entry, err := suite.service.CreateEntry(context.Background(), suite.collaboratorID, req, suite.userID)

	suite.Require().NoError(err)
	suite.NotEmpty(entry.EntryID)
	suite.Equal(domain.StatePending, entry.PaymentState)
	suite.mockEntryRepo.AssertExpectations(suite.T())
}

func (suite *EntryServiceTestSuite) TestCreateEntryEmptyKindBecomesDailyPay() {
	suite.mockEntryRepo.On("SaveEntry", mock.Anything, mock.MatchedBy(func(e domain.LedgerEntry) bool {
		return e.Kind == domain.KindDailyPay
	})).Return(nil)

	req := dto.CreateEntryRequest{
		Date:      time.Now(),
		PayAmount: decimal.RequireFromString("100"),
	}
	entry, err := suite.service.CreateEntry(context.Background(), suite.collaboratorID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.KindDailyPay, entry.Kind)
}

func (suite *EntryServiceTestSuite) TestCreateEntryAutomaticKindDefaultsOrigin() {
	suite.mockEntryRepo.On("SaveEntry", mock.Anything, mock.MatchedBy(func(e domain.LedgerEntry) bool {
		return e.Origin == domain.OriginAutomaticCollection
	})).Return(nil)

	req := dto.CreateEntryRequest{
		Kind:           domain.KindShortageAutomatic,
		Date:           time.Now(),
		ShortageAmount: decimal.RequireFromString("15"),
	}
	entry, err := suite.service.CreateEntry(context.Background(), suite.collaboratorID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.OriginAutomaticCollection, entry.Origin)
}

func (suite *EntryServiceTestSuite) TestCreateEntryNegativeAmountRejected() {
	req := dto.CreateEntryRequest{
		Kind:      domain.KindDailyPay,
		Date:      time.Now(),
		PayAmount: decimal.RequireFromString("-5"),
	}
	_, err := suite.service.CreateEntry(context.Background(), suite.collaboratorID, req, suite.userID)

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockEntryRepo.AssertNotCalled(suite.T(), "SaveEntry", mock.Anything, mock.Anything)
}

func (suite *EntryServiceTestSuite) TestCreateEntryUnknownKindRejected() {
	req := dto.CreateEntryRequest{
		Kind:      "GIFT_CARD",
		Date:      time.Now(),
		PayAmount: decimal.RequireFromString("100"),
	}
	_, err := suite.service.CreateEntry(context.Background(), suite.collaboratorID, req, suite.userID)

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *EntryServiceTestSuite) TestGetEntryScopedToCollaborator() {
	entry := &domain.LedgerEntry{
		EntryID:        uuid.NewString(),
		CollaboratorID: uuid.NewString(), // someone else's entry
		PaymentState:   domain.StatePending,
	}
	suite.mockEntryRepo.On("FindEntryByID", mock.Anything, entry.EntryID).Return(entry, nil)

	_, err := suite.service.GetEntryByID(context.Background(), suite.collaboratorID, entry.EntryID)

	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *EntryServiceTestSuite) TestGetEntrySuccess() {
	entry := &domain.LedgerEntry{
		EntryID:        uuid.NewString(),
		CollaboratorID: suite.collaboratorID,
		PaymentState:   domain.StatePending,
	}
	suite.mockEntryRepo.On("FindEntryByID", mock.Anything, entry.EntryID).Return(entry, nil)

	got, err := suite.service.GetEntryByID(context.Background(), suite.collaboratorID, entry.EntryID)

	suite.Require().NoError(err)
	suite.Equal(entry.EntryID, got.EntryID)
}

func (suite *EntryServiceTestSuite) TestListEntriesInvalidStateRejected() {
	badState := domain.PaymentState("SETTLED")
	params := dto.ListEntriesParams{State: &badState}

	_, _, err := suite.service.ListEntries(context.Background(), suite.collaboratorID, params)

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *EntryServiceTestSuite) TestListEntriesDefaultsLimit() {
	suite.mockEntryRepo.On("ListEntriesByCollaborator", mock.Anything, suite.collaboratorID, mock.Anything, 20, (*string)(nil)).
		Return([]domain.LedgerEntry{}, nil, nil)

	_, _, err := suite.service.ListEntries(context.Background(), suite.collaboratorID, dto.ListEntriesParams{})

	suite.Require().NoError(err)
	suite.mockEntryRepo.AssertExpectations(suite.T())
}

func TestEntryService(t *testing.T) {
	suite.Run(t, new(EntryServiceTestSuite))
}
