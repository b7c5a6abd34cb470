package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/contaflux/contaflux_backend/internal/apperrors"
	"github.com/contaflux/contaflux_backend/internal/core/domain"
	portssvc "github.com/contaflux/contaflux_backend/internal/core/ports/services"
	"github.com/contaflux/contaflux_backend/internal/core/services"
)

// --- Mock ReportingRepository ---
type MockReportingRepository struct {
	mock.Mock
}

func (m *MockReportingRepository) GetMonthlyFlowTotals(ctx context.Context, from, to time.Time) ([]domain.MonthlyFlowRow, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MonthlyFlowRow), args.Error(1)
}

// --- Test Suite ---
type ReportingServiceTestSuite struct {
	suite.Suite
	mockRepo       *MockReportingRepository
	mockObligation *MockObligationRepository
	service        portssvc.ReportingSvcFacade
}

func (suite *ReportingServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockReportingRepository)
	suite.mockObligation = new(MockObligationRepository)
	suite.service = services.NewReportingService(suite.mockRepo, suite.mockObligation)
}

// --- Test Cases ---

func (suite *ReportingServiceTestSuite) TestMonthlyFlow_FillsEmptyMonths() {
	ctx := context.Background()
	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 4, 30, 0, 0, 0, 0, time.UTC)

	suite.mockRepo.On("GetMonthlyFlowTotals", ctx, from, to).Return([]domain.MonthlyFlowRow{
		{Month: "2025-01", Income: decimal.RequireFromString("1000.00"), Expense: decimal.RequireFromString("400.00")},
		{Month: "2025-04", Income: decimal.RequireFromString("500.00"), Expense: decimal.RequireFromString("700.00")},
	}, nil).Once()

	rows, err := suite.service.MonthlyFlow(ctx, from, to)

	suite.Require().NoError(err)
	suite.Require().Len(rows, 4)
	suite.Equal("2025-01", rows[0].Month)
	suite.Equal("2025-02", rows[1].Month)
	suite.Equal("2025-03", rows[2].Month)
	suite.Equal("2025-04", rows[3].Month)

	suite.True(rows[0].Net.Equal(decimal.RequireFromString("600.00")))
	suite.True(rows[1].Income.IsZero())
	suite.True(rows[1].Expense.IsZero())
	suite.True(rows[1].Net.IsZero())
	suite.True(rows[3].Net.Equal(decimal.RequireFromString("-200.00")))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestMonthlyFlow_CrossesYearBoundary() {
	ctx := context.Background()
	from := time.Date(2024, 11, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC)

	suite.mockRepo.On("GetMonthlyFlowTotals", ctx, from, to).Return([]domain.MonthlyFlowRow{}, nil).Once()

	rows, err := suite.service.MonthlyFlow(ctx, from, to)

	suite.Require().NoError(err)
	suite.Require().Len(rows, 4)
	suite.Equal("2024-11", rows[0].Month)
	suite.Equal("2025-02", rows[3].Month)
}

func (suite *ReportingServiceTestSuite) TestMonthlyFlow_InvertedRangeFails() {
	ctx := context.Background()
	from := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	rows, err := suite.service.MonthlyFlow(ctx, from, to)

	suite.Require().Error(err)
	suite.Nil(rows)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.ErrorIs(err, services.ErrInvertedRange)
	suite.mockRepo.AssertNotCalled(suite.T(), "GetMonthlyFlowTotals", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ReportingServiceTestSuite) TestObligationSummary_SplitsPendingAndOverdue() {
	ctx := context.Background()
	asOf := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)

	obligations := []domain.Obligation{
		{ObligationID: uuid.NewString(), DueDate: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), Status: domain.StatusPending, Amount: decimal.RequireFromString("100.00")},
		{ObligationID: uuid.NewString(), DueDate: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), Status: domain.StatusPending, Amount: decimal.RequireFromString("50.00")},
		{ObligationID: uuid.NewString(), DueDate: time.Date(2025, 3, 20, 0, 0, 0, 0, time.UTC), Status: domain.StatusPending, Amount: decimal.RequireFromString("75.00")},
	}

	suite.mockObligation.On("ListObligationsByDirection", ctx, domain.Payable, mock.Anything).Return(obligations, nil).Once()

	summary, err := suite.service.ObligationSummary(ctx, domain.Payable, asOf)

	suite.Require().NoError(err)
	suite.Equal(domain.Payable, summary.Direction)
	suite.Equal(2, summary.OverdueCount)
	suite.True(summary.OverdueTotal.Equal(decimal.RequireFromString("150.00")))
	suite.Equal(1, summary.PendingCount)
	suite.True(summary.PendingTotal.Equal(decimal.RequireFromString("75.00")))
	suite.mockObligation.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestObligationSummary_DueTodayIsNotOverdue() {
	ctx := context.Background()
	asOf := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)

	obligations := []domain.Obligation{
		{ObligationID: uuid.NewString(), DueDate: asOf, Status: domain.StatusPending, Amount: decimal.RequireFromString("40.00")},
	}

	suite.mockObligation.On("ListObligationsByDirection", ctx, domain.Receivable, mock.Anything).Return(obligations, nil).Once()

	summary, err := suite.service.ObligationSummary(ctx, domain.Receivable, asOf)

	suite.Require().NoError(err)
	suite.Equal(0, summary.OverdueCount)
	suite.Equal(1, summary.PendingCount)
}

// --- Run Suite ---
func TestReportingService(t *testing.T) {
	suite.Run(t, new(ReportingServiceTestSuite))
}
