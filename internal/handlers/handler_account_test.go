package handlers_test

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
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/halverson/farmbooks/internal/apperrors"
	"github.com/halverson/farmbooks/internal/core/domain"
	portssvc "github.com/halverson/farmbooks/internal/core/ports/services"
	"github.com/halverson/farmbooks/internal/dto"
	"github.com/halverson/farmbooks/internal/handlers"
	"github.com/halverson/farmbooks/internal/platform/config"
)

// --- Mock AccountService ---
type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) CreateAccount(ctx context.Context, entityID string, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error) {
	args := m.Called(ctx, entityID, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) GetAccountByID(ctx context.Context, entityID string, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, entityID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) ListAccounts(ctx context.Context, entityID string, params dto.ListParams) (*dto.ListAccountsResponse, error) {
	args := m.Called(ctx, entityID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListAccountsResponse), args.Error(1)
}

func (m *MockAccountService) DeactivateAccount(ctx context.Context, entityID string, accountID string, userID string) error {
	args := m.Called(ctx, entityID, accountID, userID)
	return args.Error(0)
}

func (m *MockAccountService) GetControlAccount(ctx context.Context, entityID string, control domain.ControlType) (*domain.Account, error) {
	args := m.Called(ctx, entityID, control)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) RebuildBalances(ctx context.Context, entityID string) error {
	args := m.Called(ctx, entityID)
	return args.Error(0)
}

func (m *MockAccountService) AssertPostable(ctx context.Context, entityID string, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, entityID, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.AccountSvcFacade = (*MockAccountService)(nil)

// --- Test Suite ---
type AccountHandlerTestSuite struct {
	suite.Suite
	router             *gin.Engine
	mockAccountService *MockAccountService
	jwtSecret          string
}

// generateTestToken creates a dummy JWT for testing.
func (suite *AccountHandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "farmbooks-test",
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

func (suite *AccountHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"
	suite.mockAccountService = new(MockAccountService)

	// Only the account facade is exercised here; the other slots stay nil
	// since their routes are registered but never hit.
	handlers.RegisterRoutes(suite.router, &config.Config{JWTSecret: suite.jwtSecret}, &portssvc.ServiceContainer{
		Account: suite.mockAccountService,
	})
}

func (suite *AccountHandlerTestSuite) serve(method, url, token string, body []byte) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(method, url, bytes.NewReader(body))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *AccountHandlerTestSuite) TestCreateAccount_Success() {
	entityID := uuid.NewString()
	userID := uuid.NewString()
	created := &domain.Account{
		AccountID:   uuid.NewString(),
		EntityID:    entityID,
		Code:        "5200",
		Name:        "Feed Expense",
		AccountType: domain.Expense,
		NormalSide:  domain.NormalDebit,
		IsActive:    true,
	}

	suite.mockAccountService.On("CreateAccount",
		mock.AnythingOfType("*context.valueCtx"),
		entityID,
		mock.MatchedBy(func(req dto.CreateAccountRequest) bool {
			return req.Code == "5200" && req.AccountType == domain.Expense
		}),
		userID,
	).Return(created, nil).Once()

	body, _ := json.Marshal(dto.CreateAccountRequest{
		Code:        "5200",
		Name:        "Feed Expense",
		AccountType: domain.Expense,
	})
	url := fmt.Sprintf("/api/v1/entities/%s/accounts", entityID)
	w := suite.serve(http.MethodPost, url, suite.generateTestToken(userID), body)

	suite.Equal(http.StatusCreated, w.Code)

	var resp dto.AccountResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(created.AccountID, resp.AccountID)
	suite.Equal(domain.NormalDebit, resp.NormalSide)
	suite.mockAccountService.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestCreateAccount_DuplicateCodeConflicts() {
	entityID := uuid.NewString()
	userID := uuid.NewString()

	suite.mockAccountService.On("CreateAccount",
		mock.AnythingOfType("*context.valueCtx"),
		entityID,
		mock.AnythingOfType("dto.CreateAccountRequest"),
		userID,
	).Return(nil, fmt.Errorf("%w: code 5200", apperrors.ErrDuplicateCode)).Once()

	body, _ := json.Marshal(dto.CreateAccountRequest{
		Code:        "5200",
		Name:        "Feed Expense",
		AccountType: domain.Expense,
	})
	url := fmt.Sprintf("/api/v1/entities/%s/accounts", entityID)
	w := suite.serve(http.MethodPost, url, suite.generateTestToken(userID), body)

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *AccountHandlerTestSuite) TestCreateAccount_InvalidAccountType() {
	entityID := uuid.NewString()
	userID := uuid.NewString()

	body := []byte(`{"code":"5200","name":"Feed Expense","accountType":"GRAIN"}`)
	url := fmt.Sprintf("/api/v1/entities/%s/accounts", entityID)
	w := suite.serve(http.MethodPost, url, suite.generateTestToken(userID), body)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockAccountService.AssertNotCalled(suite.T(), "CreateAccount", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AccountHandlerTestSuite) TestListAccounts_Success() {
	entityID := uuid.NewString()
	userID := uuid.NewString()
	expected := &dto.ListAccountsResponse{
		Accounts: []dto.AccountResponse{
			{AccountID: uuid.NewString(), Code: "1010", Name: "Operating Cash", AccountType: domain.Asset},
			{AccountID: uuid.NewString(), Code: "2000", Name: "Accounts Payable", AccountType: domain.Liability},
		},
	}

	suite.mockAccountService.On("ListAccounts",
		mock.AnythingOfType("*context.valueCtx"),
		entityID,
		mock.MatchedBy(func(p dto.ListParams) bool {
			return p.Limit == 10
		}),
	).Return(expected, nil).Once()

	url := fmt.Sprintf("/api/v1/entities/%s/accounts?limit=10", entityID)
	w := suite.serve(http.MethodGet, url, suite.generateTestToken(userID), nil)

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.ListAccountsResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp.Accounts, 2)
	suite.Equal("1010", resp.Accounts[0].Code)
	suite.mockAccountService.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestGetAccount_NotFound() {
	entityID := uuid.NewString()
	accountID := uuid.NewString()
	userID := uuid.NewString()

	suite.mockAccountService.On("GetAccountByID",
		mock.AnythingOfType("*context.valueCtx"),
		entityID,
		accountID,
	).Return(nil, apperrors.ErrNotFound).Once()

	url := fmt.Sprintf("/api/v1/entities/%s/accounts/%s", entityID, accountID)
	w := suite.serve(http.MethodGet, url, suite.generateTestToken(userID), nil)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *AccountHandlerTestSuite) TestDeactivateAccount_InUseConflicts() {
	entityID := uuid.NewString()
	accountID := uuid.NewString()
	userID := uuid.NewString()

	suite.mockAccountService.On("DeactivateAccount",
		mock.AnythingOfType("*context.valueCtx"),
		entityID,
		accountID,
		userID,
	).Return(apperrors.ErrAccountInUse).Once()

	url := fmt.Sprintf("/api/v1/entities/%s/accounts/%s", entityID, accountID)
	w := suite.serve(http.MethodDelete, url, suite.generateTestToken(userID), nil)

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *AccountHandlerTestSuite) TestListAccounts_MissingToken() {
	entityID := uuid.NewString()

	url := fmt.Sprintf("/api/v1/entities/%s/accounts", entityID)
	w := suite.serve(http.MethodGet, url, "", nil)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockAccountService.AssertNotCalled(suite.T(), "ListAccounts", mock.Anything, mock.Anything, mock.Anything)
}

// --- Run Test Suite ---
func TestAccountHandler(t *testing.T) {
	suite.Run(t, new(AccountHandlerTestSuite))
}
