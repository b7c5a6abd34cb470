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

// --- Mock ObligationRepository ---
type MockObligationRepository struct {
	mock.Mock
}

func (m *MockObligationRepository) FindObligationByID(ctx context.Context, obligationID string) (*domain.Obligation, error) {
	args := m.Called(ctx, obligationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Obligation), args.Error(1)
}

func (m *MockObligationRepository) ListObligationsByGroup(ctx context.Context, groupID string) ([]domain.Obligation, error) {
	args := m.Called(ctx, groupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Obligation), args.Error(1)
}

func (m *MockObligationRepository) ListObligationsByDirection(ctx context.Context, direction domain.ObligationDirection, filters portsrepo.ObligationFilters) ([]domain.Obligation, error) {
	args := m.Called(ctx, direction, filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Obligation), args.Error(1)
}

func (m *MockObligationRepository) SaveObligation(ctx context.Context, obligation domain.Obligation) error {
	args := m.Called(ctx, obligation)
	return args.Error(0)
}

func (m *MockObligationRepository) UpdateObligation(ctx context.Context, obligation domain.Obligation) error {
	args := m.Called(ctx, obligation)
	return args.Error(0)
}

func (m *MockObligationRepository) DeleteObligation(ctx context.Context, obligationID string) error {
	args := m.Called(ctx, obligationID)
	return args.Error(0)
}

// intPtr returns a pointer to the provided int value.
func intPtr(i int) *int {
	return &i
}

// --- Test Suite ---
type ObligationServiceTestSuite struct {
	suite.Suite
	mockRepo *MockObligationRepository
	service  portssvc.ObligationSvcFacade
}

func (suite *ObligationServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockObligationRepository)
	suite.service = services.NewObligationService(suite.mockRepo)
}

// --- Planning ---

func (suite *ObligationServiceTestSuite) TestPlanInstallments_SingleHasNoGroup() {
	ctx := context.Background()
	req := dto.CreateObligationRequest{
		Description: "Aluguel",
		TotalAmount: decimal.RequireFromString("1200.00"),
		DueDate:     time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		Direction:   domain.Payable,
	}

	planned, err := suite.service.PlanInstallments(ctx, req, uuid.NewString())

	suite.Require().NoError(err)
	suite.Require().Len(planned, 1)
	suite.Nil(planned[0].InstallmentGroupID)
	suite.Equal("Aluguel", planned[0].Description)
	suite.True(planned[0].Amount.Equal(req.TotalAmount))
	suite.Equal(domain.StatusPending, planned[0].Status)
}

func (suite *ObligationServiceTestSuite) TestPlanInstallments_SumsBackToTotal() {
	ctx := context.Background()
	req := dto.CreateObligationRequest{
		Description:      "Notebook",
		TotalAmount:      decimal.RequireFromString("100.00"),
		DueDate:          time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
		Direction:        domain.Payable,
		InstallmentCount: intPtr(3),
		Frequency:        domain.Monthly,
	}

	planned, err := suite.service.PlanInstallments(ctx, req, uuid.NewString())

	suite.Require().NoError(err)
	suite.Require().Len(planned, 3)

	sum := decimal.Zero
	for _, o := range planned {
		sum = sum.Add(o.Amount)
	}
	suite.True(sum.Equal(req.TotalAmount), "installments must sum back to the total, got %s", sum)
	suite.True(planned[0].Amount.Equal(decimal.RequireFromString("33.33")))
	suite.True(planned[1].Amount.Equal(decimal.RequireFromString("33.33")))
	suite.True(planned[2].Amount.Equal(decimal.RequireFromString("33.34")))
}

func (suite *ObligationServiceTestSuite) TestPlanInstallments_SharedGroupAndNumbering() {
	ctx := context.Background()
	req := dto.CreateObligationRequest{
		Description:      "Sofa",
		TotalAmount:      decimal.RequireFromString("900.00"),
		DueDate:          time.Date(2025, 2, 5, 0, 0, 0, 0, time.UTC),
		Direction:        domain.Payable,
		InstallmentCount: intPtr(3),
	}

	planned, err := suite.service.PlanInstallments(ctx, req, uuid.NewString())

	suite.Require().NoError(err)
	suite.Require().Len(planned, 3)
	suite.Require().NotNil(planned[0].InstallmentGroupID)
	groupID := *planned[0].InstallmentGroupID
	for i, o := range planned {
		suite.Require().NotNil(o.InstallmentGroupID)
		suite.Equal(groupID, *o.InstallmentGroupID)
		suite.Contains(o.Description, "Sofa - Parcela")
		suite.Equal(time.Month(2+i), o.DueDate.Month())
	}
	suite.Equal("Sofa - Parcela 1/3", planned[0].Description)
	suite.Equal("Sofa - Parcela 3/3", planned[2].Description)
}

func (suite *ObligationServiceTestSuite) TestPlanInstallments_OmittedCountDefaultsToSingle() {
	ctx := context.Background()
	req := dto.CreateObligationRequest{
		Description: "Conta de luz",
		TotalAmount: decimal.RequireFromString("180.50"),
		DueDate:     time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
		Direction:   domain.Payable,
	}

	planned, err := suite.service.PlanInstallments(ctx, req, uuid.NewString())

	suite.Require().NoError(err)
	suite.Len(planned, 1)
}

func (suite *ObligationServiceTestSuite) TestPlanInstallments_ExplicitZeroCountFails() {
	ctx := context.Background()
	req := dto.CreateObligationRequest{
		Description:      "Conta de luz",
		TotalAmount:      decimal.RequireFromString("180.50"),
		DueDate:          time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
		Direction:        domain.Payable,
		InstallmentCount: intPtr(0),
	}

	planned, err := suite.service.PlanInstallments(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(planned)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.ErrorIs(err, services.ErrInstallmentCountRange)
}

func (suite *ObligationServiceTestSuite) TestPlanInstallments_CountAboveMaxFails() {
	ctx := context.Background()
	req := dto.CreateObligationRequest{
		Description:      "Parcelado demais",
		TotalAmount:      decimal.RequireFromString("500.00"),
		DueDate:          time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		Direction:        domain.Payable,
		InstallmentCount: intPtr(25),
	}

	planned, err := suite.service.PlanInstallments(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(planned)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.ErrorIs(err, services.ErrInstallmentCountRange)
}

func (suite *ObligationServiceTestSuite) TestPlanInstallments_MaxCountSucceeds() {
	ctx := context.Background()
	req := dto.CreateObligationRequest{
		Description:      "Carro",
		TotalAmount:      decimal.RequireFromString("24000.00"),
		DueDate:          time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC),
		Direction:        domain.Payable,
		InstallmentCount: intPtr(24),
	}

	planned, err := suite.service.PlanInstallments(ctx, req, uuid.NewString())

	suite.Require().NoError(err)
	suite.Len(planned, 24)
}

func (suite *ObligationServiceTestSuite) TestPlanInstallments_NonPositiveAmountFails() {
	ctx := context.Background()
	req := dto.CreateObligationRequest{
		Description: "Zerado",
		TotalAmount: decimal.Zero,
		DueDate:     time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		Direction:   domain.Receivable,
	}

	planned, err := suite.service.PlanInstallments(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(planned)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.ErrorIs(err, services.ErrNonPositiveAmount)
}

// --- Creation ---

func (suite *ObligationServiceTestSuite) TestCreateObligations_SavesEachInstallment() {
	ctx := context.Background()
	req := dto.CreateObligationRequest{
		Description:      "Geladeira",
		TotalAmount:      decimal.RequireFromString("3000.00"),
		DueDate:          time.Date(2025, 5, 20, 0, 0, 0, 0, time.UTC),
		Direction:        domain.Payable,
		InstallmentCount: intPtr(3),
	}

	suite.mockRepo.On("SaveObligation", ctx, mock.AnythingOfType("domain.Obligation")).Return(nil).Times(3)

	created, err := suite.service.CreateObligations(ctx, req, uuid.NewString())

	suite.Require().NoError(err)
	suite.Len(created, 3)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ObligationServiceTestSuite) TestCreateObligations_MidBatchFailureReturnsPartial() {
	ctx := context.Background()
	req := dto.CreateObligationRequest{
		Description:      "Fogao",
		TotalAmount:      decimal.RequireFromString("600.00"),
		DueDate:          time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		Direction:        domain.Payable,
		InstallmentCount: intPtr(3),
	}

	suite.mockRepo.On("SaveObligation", ctx, mock.AnythingOfType("domain.Obligation")).Return(nil).Twice()
	suite.mockRepo.On("SaveObligation", ctx, mock.AnythingOfType("domain.Obligation")).Return(assert.AnError).Once()

	created, err := suite.service.CreateObligations(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, assert.AnError)
	suite.Len(created, 2)
	suite.mockRepo.AssertExpectations(suite.T())
}

// --- Listing ---

func (suite *ObligationServiceTestSuite) TestListObligations_OverdueFilterDerivedFromPending() {
	ctx := context.Background()
	overdueStatus := domain.StatusOverdue
	pastDue := domain.Obligation{
		ObligationID: uuid.NewString(),
		DueDate:      time.Now().UTC().AddDate(0, 0, -5),
		Status:       domain.StatusPending,
	}
	futureDue := domain.Obligation{
		ObligationID: uuid.NewString(),
		DueDate:      time.Now().UTC().AddDate(0, 0, 5),
		Status:       domain.StatusPending,
	}

	suite.mockRepo.On("ListObligationsByDirection", ctx, domain.Payable, mock.MatchedBy(func(f portsrepo.ObligationFilters) bool {
		return f.Status != nil && *f.Status == domain.StatusPending
	})).Return([]domain.Obligation{pastDue, futureDue}, nil).Once()

	result, err := suite.service.ListObligations(ctx, domain.Payable, dto.ListObligationsParams{Status: &overdueStatus})

	suite.Require().NoError(err)
	suite.Require().Len(result, 1)
	suite.Equal(pastDue.ObligationID, result[0].ObligationID)
	suite.mockRepo.AssertExpectations(suite.T())
}

// --- Updating ---

func (suite *ObligationServiceTestSuite) TestUpdateObligation_SettledIsImmutable() {
	ctx := context.Background()
	obligationID := uuid.NewString()
	newDescription := "tentativa"
	settled := &domain.Obligation{
		ObligationID: obligationID,
		Status:       domain.StatusSettled,
	}

	suite.mockRepo.On("FindObligationByID", ctx, obligationID).Return(settled, nil).Once()

	result, err := suite.service.UpdateObligation(ctx, obligationID, dto.UpdateObligationRequest{Description: &newDescription}, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(result)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.ErrorIs(err, services.ErrSettledImmutable)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateObligation", mock.Anything, mock.Anything)
}

func (suite *ObligationServiceTestSuite) TestUpdateObligation_PartialUpdate() {
	ctx := context.Background()
	obligationID := uuid.NewString()
	newAmount := decimal.RequireFromString("250.00")
	pending := &domain.Obligation{
		ObligationID: obligationID,
		Description:  "Internet",
		Amount:       decimal.RequireFromString("200.00"),
		Status:       domain.StatusPending,
	}

	suite.mockRepo.On("FindObligationByID", ctx, obligationID).Return(pending, nil).Once()
	suite.mockRepo.On("UpdateObligation", ctx, mock.MatchedBy(func(o domain.Obligation) bool {
		return o.Amount.Equal(newAmount) && o.Description == "Internet"
	})).Return(nil).Once()

	result, err := suite.service.UpdateObligation(ctx, obligationID, dto.UpdateObligationRequest{Amount: &newAmount}, uuid.NewString())

	suite.Require().NoError(err)
	suite.True(result.Amount.Equal(newAmount))
	suite.mockRepo.AssertExpectations(suite.T())
}

// --- Deletion ---

func (suite *ObligationServiceTestSuite) TestDeleteObligation_SingleWithoutCascade() {
	ctx := context.Background()
	obligationID := uuid.NewString()
	groupID := uuid.NewString()
	target := &domain.Obligation{ObligationID: obligationID, InstallmentGroupID: &groupID}

	suite.mockRepo.On("FindObligationByID", ctx, obligationID).Return(target, nil).Once()
	suite.mockRepo.On("DeleteObligation", ctx, obligationID).Return(nil).Once()

	deleted, err := suite.service.DeleteObligation(ctx, obligationID, false)

	suite.Require().NoError(err)
	suite.Equal(1, deleted)
	suite.mockRepo.AssertNotCalled(suite.T(), "ListObligationsByGroup", mock.Anything, mock.Anything)
}

func (suite *ObligationServiceTestSuite) TestDeleteObligation_CascadeDeletesWholeGroup() {
	ctx := context.Background()
	groupID := uuid.NewString()
	members := []domain.Obligation{
		{ObligationID: uuid.NewString(), InstallmentGroupID: &groupID},
		{ObligationID: uuid.NewString(), InstallmentGroupID: &groupID},
		{ObligationID: uuid.NewString(), InstallmentGroupID: &groupID},
	}
	target := &members[0]

	suite.mockRepo.On("FindObligationByID", ctx, target.ObligationID).Return(target, nil).Once()
	suite.mockRepo.On("ListObligationsByGroup", ctx, groupID).Return(members, nil).Once()
	for _, m := range members {
		suite.mockRepo.On("DeleteObligation", ctx, m.ObligationID).Return(nil).Once()
	}

	deleted, err := suite.service.DeleteObligation(ctx, target.ObligationID, true)

	suite.Require().NoError(err)
	suite.Equal(3, deleted)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ObligationServiceTestSuite) TestDeleteObligation_CascadeOnStandaloneDeletesOne() {
	ctx := context.Background()
	obligationID := uuid.NewString()
	target := &domain.Obligation{ObligationID: obligationID}

	suite.mockRepo.On("FindObligationByID", ctx, obligationID).Return(target, nil).Once()
	suite.mockRepo.On("DeleteObligation", ctx, obligationID).Return(nil).Once()

	deleted, err := suite.service.DeleteObligation(ctx, obligationID, true)

	suite.Require().NoError(err)
	suite.Equal(1, deleted)
	suite.mockRepo.AssertNotCalled(suite.T(), "ListObligationsByGroup", mock.Anything, mock.Anything)
}

func (suite *ObligationServiceTestSuite) TestDeleteObligation_PartialCascadeReportsFailures() {
	ctx := context.Background()
	groupID := uuid.NewString()
	members := []domain.Obligation{
		{ObligationID: uuid.NewString(), InstallmentGroupID: &groupID},
		{ObligationID: uuid.NewString(), InstallmentGroupID: &groupID},
		{ObligationID: uuid.NewString(), InstallmentGroupID: &groupID},
	}
	target := &members[0]

	suite.mockRepo.On("FindObligationByID", ctx, target.ObligationID).Return(target, nil).Once()
	suite.mockRepo.On("ListObligationsByGroup", ctx, groupID).Return(members, nil).Once()
	suite.mockRepo.On("DeleteObligation", ctx, members[0].ObligationID).Return(nil).Once()
	suite.mockRepo.On("DeleteObligation", ctx, members[1].ObligationID).Return(assert.AnError).Once()
	suite.mockRepo.On("DeleteObligation", ctx, members[2].ObligationID).Return(nil).Once()

	deleted, err := suite.service.DeleteObligation(ctx, target.ObligationID, true)

	suite.Require().Error(err)
	suite.Equal(2, deleted)

	var partial *apperrors.PartialCascadeError
	suite.Require().ErrorAs(err, &partial)
	suite.Equal(groupID, partial.GroupID)
	suite.Equal(2, partial.Deleted)
	suite.Equal([]string{members[1].ObligationID}, partial.FailedIDs)
	suite.mockRepo.AssertExpectations(suite.T())
}

// --- Run Suite ---
func TestObligationService(t *testing.T) {
	suite.Run(t, new(ObligationServiceTestSuite))
}
