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
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/willbanks/load-coordinator/internal/apperrors"
	"github.com/willbanks/load-coordinator/internal/core/domain"
	portssvc "github.com/willbanks/load-coordinator/internal/core/ports/services"
	"github.com/willbanks/load-coordinator/internal/dto"
	"github.com/willbanks/load-coordinator/internal/handlers"
	"github.com/willbanks/load-coordinator/internal/platform/config"
	"github.com/willbanks/load-coordinator/internal/utils"
)

// --- Mock LoadService ---
type MockLoadService struct {
	mock.Mock
}

func (m *MockLoadService) GetLoadByID(ctx context.Context, loadID string) (*domain.Load, error) {
	args := m.Called(ctx, loadID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Load), args.Error(1)
}
func (m *MockLoadService) ListLoads(ctx context.Context, profile domain.UserProfile, params dto.ListLoadsParams) ([]domain.Load, string, error) {
	args := m.Called(ctx, profile, params)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).([]domain.Load), args.String(1), args.Error(2)
}
func (m *MockLoadService) GetLoadDetails(ctx context.Context, loadID string) ([]domain.LoadDetail, error) {
	args := m.Called(ctx, loadID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LoadDetail), args.Error(1)
}
func (m *MockLoadService) GetLoadStops(ctx context.Context, loadID string) ([]domain.StopDetail, error) {
	args := m.Called(ctx, loadID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StopDetail), args.Error(1)
}
func (m *MockLoadService) UpdateLoad(ctx context.Context, loadID string, patch domain.LoadPatch, actor domain.UserProfile) (*domain.Load, []string, error) {
	args := m.Called(ctx, loadID, patch, actor)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.Load), args.Get(1).([]string), args.Error(2)
}
func (m *MockLoadService) BulkUpdateStatus(ctx context.Context, loadIDs []string, status domain.LoadStatus, actor domain.UserProfile) (dto.BulkStatusUpdateResponse, error) {
	args := m.Called(ctx, loadIDs, status, actor)
	return args.Get(0).(dto.BulkStatusUpdateResponse), args.Error(1)
}
func (m *MockLoadService) ConfirmLoad(ctx context.Context, loadID string, trailerNo string, actor domain.UserProfile) (*domain.Load, []string, error) {
	args := m.Called(ctx, loadID, trailerNo, actor)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.Load), args.Get(1).([]string), args.Error(2)
}
func (m *MockLoadService) UpdateLineItem(ctx context.Context, detailID string, req dto.UpdateLoadDetailRequest, actor domain.UserProfile) (*domain.LoadDetail, error) {
	args := m.Called(ctx, detailID, req, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LoadDetail), args.Error(1)
}

var _ portssvc.LoadSvcFacade = (*MockLoadService)(nil)

// --- Mock UserService (reader surface is what the handlers exercise) ---
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) GetUserByID(ctx context.Context, userID string) (*domain.UserProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserProfile), args.Error(1)
}
func (m *MockUserService) GetUserByEmail(ctx context.Context, email string) (*domain.UserProfile, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserProfile), args.Error(1)
}
func (m *MockUserService) ListUsers(ctx context.Context, limit, offset int) ([]domain.UserProfile, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.UserProfile), args.Error(1)
}
func (m *MockUserService) RegisterUser(ctx context.Context, req dto.RegisterUserRequest) (*domain.UserProfile, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserProfile), args.Error(1)
}
func (m *MockUserService) GetOrCreateFromGoogle(ctx context.Context, info domain.GoogleUserInfo) (*domain.UserProfile, error) {
	args := m.Called(ctx, info)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserProfile), args.Error(1)
}
func (m *MockUserService) UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest, requestingUser domain.UserProfile) (*domain.UserProfile, error) {
	args := m.Called(ctx, userID, req, requestingUser)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserProfile), args.Error(1)
}
func (m *MockUserService) UpdateRefreshToken(ctx context.Context, userID string, refreshTokenHash string, expiryTime time.Time) error {
	args := m.Called(ctx, userID, refreshTokenHash, expiryTime)
	return args.Error(0)
}
func (m *MockUserService) ClearRefreshToken(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}
func (m *MockUserService) AuthenticateUser(ctx context.Context, email, password string) (*domain.UserProfile, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserProfile), args.Error(1)
}

var _ portssvc.UserSvcFacade = (*MockUserService)(nil)

// --- Mock APITokenService (only needed so route setup has something to wire) ---
type MockAPITokenService struct {
	mock.Mock
}

func (m *MockAPITokenService) CreateToken(ctx context.Context, userID, name string, expiresIn *time.Duration) (string, *domain.APIToken, error) {
	args := m.Called(ctx, userID, name, expiresIn)
	if args.Get(1) == nil {
		return "", nil, args.Error(2)
	}
	return args.String(0), args.Get(1).(*domain.APIToken), args.Error(2)
}
func (m *MockAPITokenService) ListTokens(ctx context.Context, userID string) ([]domain.APIToken, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.APIToken), args.Error(1)
}
func (m *MockAPITokenService) RevokeToken(ctx context.Context, userID, tokenID string) error {
	args := m.Called(ctx, userID, tokenID)
	return args.Error(0)
}
func (m *MockAPITokenService) ValidateToken(ctx context.Context, tokenString string) (*domain.UserProfile, error) {
	args := m.Called(ctx, tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserProfile), args.Error(1)
}

var _ portssvc.APITokenSvc = (*MockAPITokenService)(nil)

// --- Test Suite Setup ---

type LoadHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	cfg         *config.Config
	mockLoadSvc *MockLoadService
	mockUserSvc *MockUserService
	admin       domain.UserProfile
	operator    domain.UserProfile
}

func (suite *LoadHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	suite.cfg = &config.Config{
		JWTSecret:          "test-secret",
		JWTIssuer:          "load-coordinator",
		RateLimitPerMinute: 10000,
	}
	suite.mockLoadSvc = new(MockLoadService)
	suite.mockUserSvc = new(MockUserService)

	suite.admin = domain.UserProfile{
		UserID:       "admin-1",
		Email:        "dispatch@willbanks.com",
		Role:         domain.RoleAdmin,
		Organization: domain.OrgWillbanks,
	}
	suite.operator = domain.UserProfile{
		UserID:         "op-1",
		Email:          "warehouse@wsi.com",
		Role:           domain.RoleOperator,
		Organization:   domain.OrgWSI,
		LocationFilter: "WSI",
	}

	services := &portssvc.ServiceContainer{
		Load:     suite.mockLoadSvc,
		User:     suite.mockUserSvc,
		APIToken: new(MockAPITokenService),
	}

	suite.router = gin.New()
	handlers.RegisterRoutes(suite.router, suite.cfg, services)
}

func (suite *LoadHandlerTestSuite) bearerFor(user domain.UserProfile) string {
	token, err := utils.GenerateJWT(user.UserID, suite.cfg.JWTSecret, suite.cfg.JWTIssuer, time.Now().Add(time.Hour))
	suite.Require().NoError(err)
	return "Bearer " + token
}

func (suite *LoadHandlerTestSuite) request(user domain.UserProfile, method, path string, body any) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		data, err := json.Marshal(body)
		suite.Require().NoError(err)
		reqBody = bytes.NewBuffer(data)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", suite.bearerFor(user))

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *LoadHandlerTestSuite) TestListLoads_Success() {
	suite.mockUserSvc.On("GetUserByID", mock.Anything, "admin-1").Return(&suite.admin, nil).Once()
	suite.mockLoadSvc.On("ListLoads", mock.Anything, suite.admin, mock.Anything).
		Return([]domain.Load{{LoadID: "L100", Status: domain.StatusOpen}}, "next-tok", nil).Once()

	w := suite.request(suite.admin, http.MethodGet, "/api/v1/loads?limit=25", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ListLoadsResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp.Loads, 1)
	suite.Equal("L100", resp.Loads[0].LoadID)
	suite.Equal("next-tok", resp.NextToken)
	suite.mockLoadSvc.AssertExpectations(suite.T())
}

func (suite *LoadHandlerTestSuite) TestListLoads_Unauthenticated() {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/loads", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockLoadSvc.AssertNotCalled(suite.T(), "ListLoads", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LoadHandlerTestSuite) TestGetLoad_NotFound() {
	suite.mockUserSvc.On("GetUserByID", mock.Anything, "admin-1").Return(&suite.admin, nil).Maybe()
	suite.mockLoadSvc.On("GetLoadByID", mock.Anything, "L999").
		Return(nil, fmt.Errorf("%w: load L999", apperrors.ErrNotFound)).Once()

	w := suite.request(suite.admin, http.MethodGet, "/api/v1/loads/L999", nil)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *LoadHandlerTestSuite) TestUpdateLoad_OperatorCannotSetStatus() {
	suite.mockUserSvc.On("GetUserByID", mock.Anything, "op-1").Return(&suite.operator, nil).Once()

	body := map[string]any{"status": "Shipped"}
	w := suite.request(suite.operator, http.MethodPatch, "/api/v1/loads/L100", body)

	suite.Equal(http.StatusForbidden, w.Code)
	suite.mockLoadSvc.AssertNotCalled(suite.T(), "UpdateLoad", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LoadHandlerTestSuite) TestUpdateLoad_OperatorCanAssignDriver() {
	updated := &domain.Load{LoadID: "L100", Status: domain.StatusAssigned, DriverName: "John Smith"}

	suite.mockUserSvc.On("GetUserByID", mock.Anything, "op-1").Return(&suite.operator, nil).Once()
	suite.mockLoadSvc.On("UpdateLoad", mock.Anything, "L100", mock.MatchedBy(func(patch domain.LoadPatch) bool {
		return patch.DriverName != nil && *patch.DriverName == "John Smith" && patch.Status == nil
	}), suite.operator).Return(updated, []string(nil), nil).Once()

	body := map[string]any{"driverName": "John Smith"}
	w := suite.request(suite.operator, http.MethodPatch, "/api/v1/loads/L100", body)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.UpdateLoadResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("Assigned", resp.Load.Status)
	suite.Empty(resp.Warnings)
	suite.mockLoadSvc.AssertExpectations(suite.T())
}

func (suite *LoadHandlerTestSuite) TestConfirmLoad_GateFailure() {
	suite.mockUserSvc.On("GetUserByID", mock.Anything, "admin-1").Return(&suite.admin, nil).Once()
	suite.mockLoadSvc.On("ConfirmLoad", mock.Anything, "L100", "abc", suite.admin).
		Return(nil, []string(nil), fmt.Errorf("%w: Trailer number must be numeric", apperrors.ErrValidation)).Once()

	body := map[string]any{"trailerNo": "abc"}
	w := suite.request(suite.admin, http.MethodPost, "/api/v1/loads/L100/confirm", body)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Contains(w.Body.String(), "Trailer number must be numeric")
}

func (suite *LoadHandlerTestSuite) TestConfirmLoad_Success() {
	confirmed := &domain.Load{LoadID: "L100", Status: domain.StatusReady, TrailerNo: "4512"}

	suite.mockUserSvc.On("GetUserByID", mock.Anything, "admin-1").Return(&suite.admin, nil).Once()
	suite.mockLoadSvc.On("ConfirmLoad", mock.Anything, "L100", "4512", suite.admin).
		Return(confirmed, []string{"loading document could not be generated"}, nil).Once()

	body := map[string]any{"trailerNo": "4512"}
	w := suite.request(suite.admin, http.MethodPost, "/api/v1/loads/L100/confirm", body)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ConfirmLoadResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.True(resp.IsConfirmed)
	suite.Equal("4512", resp.Load.TrailerNo)
	suite.Len(resp.Warnings, 1)
}

func (suite *LoadHandlerTestSuite) TestBulkUpdateStatus_RequiresAdmin() {
	suite.mockUserSvc.On("GetUserByID", mock.Anything, "op-1").Return(&suite.operator, nil).Once()

	body := map[string]any{"loadIDs": []string{"L100"}, "status": "Shipped"}
	w := suite.request(suite.operator, http.MethodPost, "/api/v1/loads/bulk-status", body)

	suite.Equal(http.StatusForbidden, w.Code)
	suite.mockLoadSvc.AssertNotCalled(suite.T(), "BulkUpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LoadHandlerTestSuite) TestBulkUpdateStatus_AllFailedNamesLoads() {
	failed := dto.BulkStatusUpdateResponse{Failed: []string{"L900", "L901"}}

	suite.mockUserSvc.On("GetUserByID", mock.Anything, "admin-1").Return(&suite.admin, nil).Once()
	suite.mockLoadSvc.On("BulkUpdateStatus", mock.Anything, []string{"L900", "L901"}, domain.StatusShipped, suite.admin).
		Return(failed, fmt.Errorf("%w: all 2 updates failed", apperrors.ErrPartialFailure)).Once()

	body := map[string]any{"loadIDs": []string{"L900", "L901"}, "status": "Shipped"}
	w := suite.request(suite.admin, http.MethodPost, "/api/v1/loads/bulk-status", body)

	suite.Equal(http.StatusUnprocessableEntity, w.Code)
	var resp dto.BulkStatusUpdateResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(0, resp.Updated)
	suite.Equal([]string{"L900", "L901"}, resp.Failed)
}

func TestLoadHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(LoadHandlerTestSuite))
}
