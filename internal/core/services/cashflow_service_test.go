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
	portsrepo "github.com/contaflux/contaflux_backend/internal/core/ports/repositories"
	portssvc "github.com/contaflux/contaflux_backend/internal/core/ports/services"
	"github.com/contaflux/contaflux_backend/internal/core/services"
	"github.com/contaflux/contaflux_backend/internal/dto"
)

// --- Mock CashFlowRepository ---
type MockCashFlowRepository struct {
	mock.Mock
}

func (m *MockCashFlowRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.CashFlowEntry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CashFlowEntry), args.Error(1)
}

func (m *MockCashFlowRepository) ListEntries(ctx context.Context, direction domain.FlowDirection, filters portsrepo.CashFlowFilters) ([]domain.CashFlowEntry, error) {
	args := m.Called(ctx, direction, filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CashFlowEntry), args.Error(1)
}

func (m *MockCashFlowRepository) SaveEntry(ctx context.Context, entry domain.CashFlowEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockCashFlowRepository) UpdateEntry(ctx context.Context, entry domain.CashFlowEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockCashFlowRepository) DeleteEntry(ctx context.Context, entryID string) error {
	args := m.Called(ctx, entryID)
	return args.Error(0)
}

// --- Test Suite ---
type CashFlowServiceTestSuite struct {
	suite.Suite
	mockRepo *MockCashFlowRepository
	service  portssvc.CashFlowSvcFacade
}

func (suite *CashFlowServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockCashFlowRepository)
	suite.service = services.NewCashFlowService(suite.mockRepo)
}

// --- Test Cases ---

func (suite *CashFlowServiceTestSuite) TestCreateEntry_Success() {
	ctx := context.Background()
	creatorUserID := uuid.NewString()
	req := dto.CreateCashFlowEntryRequest{
		Description: "Mercado",
		Amount:      decimal.RequireFromString("320.45"),
		Date:        time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC),
	}

	suite.mockRepo.On("SaveEntry", ctx, mock.MatchedBy(func(e domain.CashFlowEntry) bool {
		return e.Description == req.Description &&
			e.Amount.Equal(req.Amount) &&
			e.Direction == domain.FlowExpense &&
			e.CreatedBy == creatorUserID
	})).Return(nil).Once()

	entry, err := suite.service.CreateEntry(ctx, domain.FlowExpense, req, creatorUserID)

	suite.Require().NoError(err)
	suite.Require().NotNil(entry)
	suite.NotEmpty(entry.EntryID)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CashFlowServiceTestSuite) TestCreateEntry_NonPositiveAmountFails() {
	ctx := context.Background()
	req := dto.CreateCashFlowEntryRequest{
		Description: "Estorno invalido",
		Amount:      decimal.RequireFromString("-5.00"),
		Date:        time.Now(),
	}

	entry, err := suite.service.CreateEntry(ctx, domain.FlowIncome, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(entry)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveEntry", mock.Anything, mock.Anything)
}

func (suite *CashFlowServiceTestSuite) TestRecordSettlementEntry_PersistsAsGiven() {
	ctx := context.Background()
	entry := domain.CashFlowEntry{
		EntryID:     uuid.NewString(),
		Description: "Pagamento - Conta de luz",
		Amount:      decimal.RequireFromString("150.00"),
		Date:        time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC),
		Direction:   domain.FlowExpense,
	}

	suite.mockRepo.On("SaveEntry", ctx, entry).Return(nil).Once()

	recorded, err := suite.service.RecordSettlementEntry(ctx, entry)

	suite.Require().NoError(err)
	suite.Equal(entry.EntryID, recorded.EntryID)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CashFlowServiceTestSuite) TestListEntries_PassesFilters() {
	ctx := context.Background()
	categoryID := uuid.NewString()
	expected := []domain.CashFlowEntry{{EntryID: uuid.NewString()}}

	suite.mockRepo.On("ListEntries", ctx, domain.FlowIncome, mock.MatchedBy(func(f portsrepo.CashFlowFilters) bool {
		return f.CategoryID != nil && *f.CategoryID == categoryID
	})).Return(expected, nil).Once()

	entries, err := suite.service.ListEntries(ctx, domain.FlowIncome, dto.ListCashFlowParams{CategoryID: &categoryID})

	suite.Require().NoError(err)
	suite.Equal(expected, entries)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CashFlowServiceTestSuite) TestUpdateEntry_NoFieldsIsNoOp() {
	ctx := context.Background()
	entryID := uuid.NewString()
	existing := &domain.CashFlowEntry{EntryID: entryID, Description: "Farmacia"}

	suite.mockRepo.On("FindEntryByID", ctx, entryID).Return(existing, nil).Once()

	entry, err := suite.service.UpdateEntry(ctx, entryID, dto.UpdateCashFlowEntryRequest{}, uuid.NewString())

	suite.Require().NoError(err)
	suite.Equal(existing, entry)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateEntry", mock.Anything, mock.Anything)
}

func (suite *CashFlowServiceTestSuite) TestDeleteEntry_RepoError() {
	ctx := context.Background()
	entryID := uuid.NewString()

	suite.mockRepo.On("DeleteEntry", ctx, entryID).Return(assert.AnError).Once()

	err := suite.service.DeleteEntry(ctx, entryID)

	suite.Require().Error(err)
	suite.ErrorIs(err, assert.AnError)
	suite.mockRepo.AssertExpectations(suite.T())
}

// --- Run Suite ---
func TestCashFlowService(t *testing.T) {
	suite.Run(t, new(CashFlowServiceTestSuite))
}
