package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/contaflux/contaflux_backend/internal/apperrors"
	"github.com/contaflux/contaflux_backend/internal/core/domain"
	portssvc "github.com/contaflux/contaflux_backend/internal/core/ports/services"
	"github.com/contaflux/contaflux_backend/internal/core/services"
	"github.com/contaflux/contaflux_backend/internal/dto"
)

// --- Mock CashFlowSvcFacade ---
type MockCashFlowService struct {
	mock.Mock
}

func (m *MockCashFlowService) CreateEntry(ctx context.Context, direction domain.FlowDirection, req dto.CreateCashFlowEntryRequest, creatorUserID string) (*domain.CashFlowEntry, error) {
	args := m.Called(ctx, direction, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CashFlowEntry), args.Error(1)
}

func (m *MockCashFlowService) RecordSettlementEntry(ctx context.Context, entry domain.CashFlowEntry) (*domain.CashFlowEntry, error) {
	args := m.Called(ctx, entry)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CashFlowEntry), args.Error(1)
}

func (m *MockCashFlowService) GetEntryByID(ctx context.Context, entryID string) (*domain.CashFlowEntry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CashFlowEntry), args.Error(1)
}

func (m *MockCashFlowService) ListEntries(ctx context.Context, direction domain.FlowDirection, params dto.ListCashFlowParams) ([]domain.CashFlowEntry, error) {
	args := m.Called(ctx, direction, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CashFlowEntry), args.Error(1)
}

func (m *MockCashFlowService) UpdateEntry(ctx context.Context, entryID string, req dto.UpdateCashFlowEntryRequest, updaterUserID string) (*domain.CashFlowEntry, error) {
	args := m.Called(ctx, entryID, req, updaterUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CashFlowEntry), args.Error(1)
}

func (m *MockCashFlowService) DeleteEntry(ctx context.Context, entryID string) error {
	args := m.Called(ctx, entryID)
	return args.Error(0)
}

// --- Test Suite ---
type SettlementServiceTestSuite struct {
	suite.Suite
	mockRepo     *MockObligationRepository
	mockCashFlow *MockCashFlowService
	service      portssvc.SettlementSvcFacade
}

func (suite *SettlementServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockObligationRepository)
	suite.mockCashFlow = new(MockCashFlowService)
	suite.service = services.NewSettlementService(suite.mockRepo, suite.mockCashFlow)
}

func (suite *SettlementServiceTestSuite) pendingPayable() *domain.Obligation {
	categoryID := uuid.NewString()
	accountID := uuid.NewString()
	return &domain.Obligation{
		ObligationID:     uuid.NewString(),
		Description:      "Conta de luz",
		Amount:           decimal.RequireFromString("150.00"),
		DueDate:          time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		Direction:        domain.Payable,
		Status:           domain.StatusPending,
		CategoryID:       &categoryID,
		LinkedAccountID:  &accountID,
		ContactReference: "CEMIG",
	}
}

// --- Test Cases ---

func (suite *SettlementServiceTestSuite) TestSettle_PayableCreatesExpenseEntry() {
	ctx := context.Background()
	userID := uuid.NewString()
	obligation := suite.pendingPayable()
	settlementDate := time.Date(2025, 3, 5, 14, 30, 0, 0, time.UTC)

	suite.mockRepo.On("FindObligationByID", ctx, obligation.ObligationID).Return(obligation, nil).Once()
	suite.mockRepo.On("UpdateObligation", ctx, mock.MatchedBy(func(o domain.Obligation) bool {
		return o.Status == domain.StatusSettled &&
			o.SettlementDate != nil &&
			o.SettlementDate.Equal(time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC))
	})).Return(nil).Once()
	suite.mockCashFlow.On("RecordSettlementEntry", ctx, mock.MatchedBy(func(e domain.CashFlowEntry) bool {
		return e.Direction == domain.FlowExpense &&
			e.Amount.Equal(obligation.Amount) &&
			e.Description == "Pagamento - Conta de luz" &&
			e.Date.Equal(time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC)) &&
			e.CategoryID == obligation.CategoryID &&
			e.LinkedAccountID == obligation.LinkedAccountID &&
			e.ContactReference == obligation.ContactReference
	})).Return(&domain.CashFlowEntry{EntryID: uuid.NewString()}, nil).Once()

	settled, entry, err := suite.service.Settle(ctx, obligation.ObligationID, settlementDate, userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(settled)
	suite.Require().NotNil(entry)
	suite.Equal(domain.StatusSettled, settled.Status)
	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockCashFlow.AssertExpectations(suite.T())
}

func (suite *SettlementServiceTestSuite) TestSettle_ReceivableCreatesIncomeEntry() {
	ctx := context.Background()
	obligation := suite.pendingPayable()
	obligation.Direction = domain.Receivable
	obligation.Description = "Freela site"

	suite.mockRepo.On("FindObligationByID", ctx, obligation.ObligationID).Return(obligation, nil).Once()
	suite.mockRepo.On("UpdateObligation", ctx, mock.AnythingOfType("domain.Obligation")).Return(nil).Once()
	suite.mockCashFlow.On("RecordSettlementEntry", ctx, mock.MatchedBy(func(e domain.CashFlowEntry) bool {
		return e.Direction == domain.FlowIncome && e.Description == "Recebimento - Freela site"
	})).Return(&domain.CashFlowEntry{EntryID: uuid.NewString()}, nil).Once()

	_, entry, err := suite.service.Settle(ctx, obligation.ObligationID, time.Now(), uuid.NewString())

	suite.Require().NoError(err)
	suite.NotNil(entry)
	suite.mockCashFlow.AssertExpectations(suite.T())
}

func (suite *SettlementServiceTestSuite) TestSettle_AlreadySettledIsRejected() {
	ctx := context.Background()
	obligation := suite.pendingPayable()
	obligation.Status = domain.StatusSettled

	suite.mockRepo.On("FindObligationByID", ctx, obligation.ObligationID).Return(obligation, nil).Once()

	settled, entry, err := suite.service.Settle(ctx, obligation.ObligationID, time.Now(), uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(settled)
	suite.Nil(entry)
	suite.ErrorIs(err, apperrors.ErrAlreadySettled)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateObligation", mock.Anything, mock.Anything)
	suite.mockCashFlow.AssertNotCalled(suite.T(), "RecordSettlementEntry", mock.Anything, mock.Anything)
}

func (suite *SettlementServiceTestSuite) TestSettle_UpdateFailureCreatesNoEntry() {
	ctx := context.Background()
	obligation := suite.pendingPayable()

	suite.mockRepo.On("FindObligationByID", ctx, obligation.ObligationID).Return(obligation, nil).Once()
	suite.mockRepo.On("UpdateObligation", ctx, mock.AnythingOfType("domain.Obligation")).Return(assert.AnError).Once()

	settled, entry, err := suite.service.Settle(ctx, obligation.ObligationID, time.Now(), uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(settled)
	suite.Nil(entry)
	suite.ErrorIs(err, assert.AnError)
	suite.mockCashFlow.AssertNotCalled(suite.T(), "RecordSettlementEntry", mock.Anything, mock.Anything)
}

func (suite *SettlementServiceTestSuite) TestSettle_LedgerFailureReportsSettledObligation() {
	ctx := context.Background()
	obligation := suite.pendingPayable()

	suite.mockRepo.On("FindObligationByID", ctx, obligation.ObligationID).Return(obligation, nil).Once()
	suite.mockRepo.On("UpdateObligation", ctx, mock.AnythingOfType("domain.Obligation")).Return(nil).Once()
	suite.mockCashFlow.On("RecordSettlementEntry", ctx, mock.AnythingOfType("domain.CashFlowEntry")).Return(nil, assert.AnError).Once()

	settled, entry, err := suite.service.Settle(ctx, obligation.ObligationID, time.Now(), uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(entry)

	var ledgerErr *apperrors.SettlementLedgerError
	suite.Require().ErrorAs(err, &ledgerErr)
	suite.Equal(obligation.ObligationID, ledgerErr.ObligationID)
	suite.ErrorIs(err, assert.AnError)

	// The obligation did transition, the caller needs it to surface the gap.
	suite.Require().NotNil(settled)
	suite.Equal(domain.StatusSettled, settled.Status)
}

// --- Run Suite ---
func TestSettlementService(t *testing.T) {
	suite.Run(t, new(SettlementServiceTestSuite))
}
