package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/contaflux/contaflux_backend/internal/apperrors"
	"github.com/contaflux/contaflux_backend/internal/core/domain"
	portssvc "github.com/contaflux/contaflux_backend/internal/core/ports/services"
	"github.com/contaflux/contaflux_backend/internal/dto"
	"github.com/contaflux/contaflux_backend/internal/middleware"
)

// --- Mock ObligationService ---
type MockObligationService struct {
	mock.Mock
}

func (m *MockObligationService) PlanInstallments(ctx context.Context, req dto.CreateObligationRequest, creatorUserID string) ([]domain.Obligation, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Obligation), args.Error(1)
}
func (m *MockObligationService) CreateObligations(ctx context.Context, req dto.CreateObligationRequest, creatorUserID string) ([]domain.Obligation, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Obligation), args.Error(1)
}
func (m *MockObligationService) GetObligationByID(ctx context.Context, obligationID string) (*domain.Obligation, error) {
	args := m.Called(ctx, obligationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Obligation), args.Error(1)
}
func (m *MockObligationService) ListObligations(ctx context.Context, direction domain.ObligationDirection, params dto.ListObligationsParams) ([]domain.Obligation, error) {
	args := m.Called(ctx, direction, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Obligation), args.Error(1)
}
func (m *MockObligationService) UpdateObligation(ctx context.Context, obligationID string, req dto.UpdateObligationRequest, updaterUserID string) (*domain.Obligation, error) {
	args := m.Called(ctx, obligationID, req, updaterUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Obligation), args.Error(1)
}
func (m *MockObligationService) DeleteObligation(ctx context.Context, obligationID string, cascadeToGroup bool) (int, error) {
	args := m.Called(ctx, obligationID, cascadeToGroup)
	return args.Int(0), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.ObligationSvcFacade = (*MockObligationService)(nil)

// --- Mock SettlementService ---
type MockSettlementService struct {
	mock.Mock
}

func (m *MockSettlementService) Settle(ctx context.Context, obligationID string, settlementDate time.Time, userID string) (*domain.Obligation, *domain.CashFlowEntry, error) {
	args := m.Called(ctx, obligationID, settlementDate, userID)
	var obligation *domain.Obligation
	var entry *domain.CashFlowEntry
	if args.Get(0) != nil {
		obligation = args.Get(0).(*domain.Obligation)
	}
	if args.Get(1) != nil {
		entry = args.Get(1).(*domain.CashFlowEntry)
	}
	return obligation, entry, args.Error(2)
}

// Ensure mock implements the interface
var _ portssvc.SettlementSvcFacade = (*MockSettlementService)(nil)

// intPtr returns a pointer to the provided int value.
func intPtr(i int) *int {
	return &i
}

// --- Test Suite ---
type ObligationHandlerTestSuite struct {
	suite.Suite
	router                *gin.Engine
	mockObligationService *MockObligationService
	mockSettlementService *MockSettlementService
	jwtSecret             string
}

// generateTestToken creates a dummy JWT for testing.
func (suite *ObligationHandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "contaflux-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *ObligationHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.router.Use(middleware.AuthMiddleware(suite.jwtSecret))

	suite.mockObligationService = new(MockObligationService)
	suite.mockSettlementService = new(MockSettlementService)

	v1 := suite.router.Group("/api/v1")
	registerObligationRoutes(v1, suite.mockObligationService, suite.mockSettlementService)
}

func (suite *ObligationHandlerTestSuite) authedRequest(method, url string, body any) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		err := json.NewEncoder(&buf).Encode(body)
		suite.Require().NoError(err)
	}
	req, _ := http.NewRequest(method, url, &buf)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(uuid.NewString()))
	req.Header.Set("Content-Type", "application/json")
	return req
}

// --- Test Cases ---

func (suite *ObligationHandlerTestSuite) TestCreatePayables_ForcesDirectionFromRoute() {
	groupID := uuid.NewString()
	now := time.Now().UTC()
	created := []domain.Obligation{
		{
			ObligationID:       uuid.NewString(),
			Description:        "Sofa - Parcela 1/2",
			Amount:             decimal.RequireFromString("50.00"),
			DueDate:            now.AddDate(0, 1, 0),
			Direction:          domain.Payable,
			Status:             domain.StatusPending,
			InstallmentGroupID: &groupID,
		},
		{
			ObligationID:       uuid.NewString(),
			Description:        "Sofa - Parcela 2/2",
			Amount:             decimal.RequireFromString("50.00"),
			DueDate:            now.AddDate(0, 2, 0),
			Direction:          domain.Payable,
			Status:             domain.StatusPending,
			InstallmentGroupID: &groupID,
		},
	}

	// The route, not the body, decides the direction.
	suite.mockObligationService.On("CreateObligations",
		mock.Anything,
		mock.MatchedBy(func(req dto.CreateObligationRequest) bool {
			return req.Direction == domain.Payable && req.InstallmentCount != nil && *req.InstallmentCount == 2
		}),
		mock.AnythingOfType("string"),
	).Return(created, nil).Once()

	body := dto.CreateObligationRequest{
		Description:      "Sofa",
		TotalAmount:      decimal.RequireFromString("100.00"),
		DueDate:          now.AddDate(0, 1, 0),
		Direction:        domain.Receivable, // deliberately wrong, must be overridden
		InstallmentCount: intPtr(2),
		Frequency:        domain.Monthly,
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, suite.authedRequest(http.MethodPost, "/api/v1/payables", body))

	suite.Equal(http.StatusCreated, w.Code)

	var resp dto.ListObligationsResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp.Obligations, 2)
	suite.Equal(domain.Payable, resp.Obligations[0].Direction)
	suite.mockObligationService.AssertExpectations(suite.T())
}

func (suite *ObligationHandlerTestSuite) TestCreatePayables_ZeroInstallmentCountRejected() {
	// An explicit zero is not an omitted count; it must reach the service as
	// zero and come back as a validation failure.
	suite.mockObligationService.On("CreateObligations",
		mock.Anything,
		mock.MatchedBy(func(req dto.CreateObligationRequest) bool {
			return req.InstallmentCount != nil && *req.InstallmentCount == 0
		}),
		mock.AnythingOfType("string"),
	).Return(nil, fmt.Errorf("%w: installment count must be between 1 and 24 (got 0)", apperrors.ErrValidation)).Once()

	body := dto.CreateObligationRequest{
		Description:      "Conta de luz",
		TotalAmount:      decimal.RequireFromString("180.50"),
		DueDate:          time.Now().UTC().AddDate(0, 0, 10),
		Direction:        domain.Payable,
		InstallmentCount: intPtr(0),
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, suite.authedRequest(http.MethodPost, "/api/v1/payables", body))

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockObligationService.AssertExpectations(suite.T())
}

func (suite *ObligationHandlerTestSuite) TestListObligations_MissingToken() {
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/receivables", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockObligationService.AssertNotCalled(suite.T(), "ListObligations")
}

func (suite *ObligationHandlerTestSuite) TestGetObligation_NotFound() {
	obligationID := uuid.NewString()
	suite.mockObligationService.On("GetObligationByID", mock.Anything, obligationID).
		Return(nil, apperrors.ErrNotFound).Once()

	w := httptest.NewRecorder()
	url := fmt.Sprintf("/api/v1/payables/%s", obligationID)
	suite.router.ServeHTTP(w, suite.authedRequest(http.MethodGet, url, nil))

	suite.Equal(http.StatusNotFound, w.Code)
	suite.mockObligationService.AssertExpectations(suite.T())
}

func (suite *ObligationHandlerTestSuite) TestSettleObligation_EmptyBodyDefaultsToToday() {
	obligationID := uuid.NewString()
	settlementDate := time.Now().UTC()
	settled := &domain.Obligation{
		ObligationID:   obligationID,
		Description:    "Conta de luz",
		Amount:         decimal.RequireFromString("120.00"),
		DueDate:        settlementDate.AddDate(0, 0, -3),
		Direction:      domain.Payable,
		Status:         domain.StatusSettled,
		SettlementDate: &settlementDate,
	}
	entry := &domain.CashFlowEntry{
		EntryID:     uuid.NewString(),
		Description: "Pagamento - Conta de luz",
		Amount:      settled.Amount,
		Date:        settlementDate,
		Direction:   domain.FlowExpense,
	}

	suite.mockSettlementService.On("Settle",
		mock.Anything,
		obligationID,
		mock.MatchedBy(func(d time.Time) bool {
			return time.Since(d).Abs() < time.Minute
		}),
		mock.AnythingOfType("string"),
	).Return(settled, entry, nil).Once()

	url := fmt.Sprintf("/api/v1/payables/%s/settle", obligationID)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, suite.authedRequest(http.MethodPost, url, nil))

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.SettleObligationResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(domain.StatusSettled, resp.Obligation.Status)
	suite.Require().NotNil(resp.Entry)
	suite.Equal("Pagamento - Conta de luz", resp.Entry.Description)
	suite.mockSettlementService.AssertExpectations(suite.T())
}

func (suite *ObligationHandlerTestSuite) TestSettleObligation_AlreadySettled() {
	obligationID := uuid.NewString()
	suite.mockSettlementService.On("Settle", mock.Anything, obligationID, mock.Anything, mock.Anything).
		Return(nil, nil, apperrors.ErrAlreadySettled).Once()

	url := fmt.Sprintf("/api/v1/receivables/%s/settle", obligationID)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, suite.authedRequest(http.MethodPost, url, nil))

	suite.Equal(http.StatusConflict, w.Code)
	suite.mockSettlementService.AssertExpectations(suite.T())
}

func (suite *ObligationHandlerTestSuite) TestDeleteObligation_PartialCascade() {
	obligationID := uuid.NewString()
	failedID := uuid.NewString()
	partial := &apperrors.PartialCascadeError{
		GroupID:   uuid.NewString(),
		Deleted:   2,
		FailedIDs: []string{failedID},
		Causes:    []error{fmt.Errorf("store unavailable")},
	}
	suite.mockObligationService.On("DeleteObligation", mock.Anything, obligationID, true).
		Return(2, partial).Once()

	url := fmt.Sprintf("/api/v1/payables/%s?cascadeToGroup=true", obligationID)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, suite.authedRequest(http.MethodDelete, url, nil))

	suite.Equal(http.StatusInternalServerError, w.Code)

	var resp dto.DeleteObligationResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(2, resp.Deleted)
	suite.Equal([]string{failedID}, resp.FailedIDs)
	suite.mockObligationService.AssertExpectations(suite.T())
}

// --- Run Test Suite ---
func TestObligationHandler(t *testing.T) {
	suite.Run(t, new(ObligationHandlerTestSuite))
}
