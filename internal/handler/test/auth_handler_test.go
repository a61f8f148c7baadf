package test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	handlers "bookhub/internal/handler"
	"bookhub/internal/models"
	"bookhub/internal/repository"
	"bookhub/internal/service"
)

func createAuthHandler(authService *MockAuthService) *handlers.Handlers {
	return &handlers.Handlers{
		AuthService: authService,
		Cfg:         testConfig(),
		Validate:    validator.New(),
	}
}

func TestRegisterHandler_Success(t *testing.T) {
	mockAuthService := new(MockAuthService)
	handler := createAuthHandler(mockAuthService)

	user := &models.User{
		UserID:   "user-123",
		Username: "reader42",
		Email:    "reader@example.com",
		Role:     "Viewer",
	}

	// role defaults to Viewer when omitted
	mockAuthService.On("Register", mock.Anything, service.RegisterRequest{
		Username: "reader42",
		Email:    "reader@example.com",
		Password: "password123",
		Role:     "Viewer",
	}).Return(user, nil)

	mockAuthService.On("Login", mock.Anything, "reader42", "password123").
		Return(user, "access-token-123", "refresh-token-123", nil)

	body, _ := json.Marshal(map[string]string{
		"username": "reader42",
		"email":    "reader@example.com",
		"password": "password123",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()

	handler.Register(rr, req)

	assert.Equal(t, http.StatusCreated, rr.Code)

	var response handlers.AuthResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &response))
	assert.Equal(t, "access-token-123", response.AccessToken)
	assert.Equal(t, "refresh-token-123", response.RefreshToken)
	assert.Equal(t, "reader42", response.User.Username)
	assert.Equal(t, "Viewer", response.User.Role)

	mockAuthService.AssertExpectations(t)
}

func TestRegisterHandler_InvalidEmail(t *testing.T) {
	handler := createAuthHandler(new(MockAuthService))

	body, _ := json.Marshal(map[string]string{
		"username": "reader42",
		"email":    "not-an-email",
		"password": "password123",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewBuffer(body))
	rr := httptest.NewRecorder()

	handler.Register(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestRegisterHandler_IgnoresClientRole(t *testing.T) {
	mockAuthService := new(MockAuthService)
	handler := createAuthHandler(mockAuthService)

	user := &models.User{
		UserID:   "user-123",
		Username: "reader42",
		Email:    "reader@example.com",
		Role:     "Viewer",
	}

	// a role in the request body must not make it into the account
	mockAuthService.On("Register", mock.Anything, service.RegisterRequest{
		Username: "reader42",
		Email:    "reader@example.com",
		Password: "password123",
		Role:     "Viewer",
	}).Return(user, nil)

	mockAuthService.On("Login", mock.Anything, "reader42", "password123").
		Return(user, "access-token-123", "refresh-token-123", nil)

	body, _ := json.Marshal(map[string]string{
		"username": "reader42",
		"email":    "reader@example.com",
		"password": "password123",
		"role":     "Admin",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()

	handler.Register(rr, req)

	assert.Equal(t, http.StatusCreated, rr.Code)

	var response handlers.AuthResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &response))
	assert.Equal(t, "Viewer", response.User.Role)

	mockAuthService.AssertExpectations(t)
}

func TestRegisterHandler_DuplicateUsername(t *testing.T) {
	mockAuthService := new(MockAuthService)
	handler := createAuthHandler(mockAuthService)

	mockAuthService.On("Register", mock.Anything, mock.Anything).
		Return(nil, repository.ErrConflict)

	body, _ := json.Marshal(map[string]string{
		"username": "reader42",
		"email":    "reader@example.com",
		"password": "password123",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewBuffer(body))
	rr := httptest.NewRecorder()

	handler.Register(rr, req)

	assertJSONError(t, rr, http.StatusConflict, "already taken")
}

func TestLoginHandler_WrongPassword(t *testing.T) {
	mockAuthService := new(MockAuthService)
	handler := createAuthHandler(mockAuthService)

	mockAuthService.On("Login", mock.Anything, "reader42", "wrong").
		Return(nil, "", "", assert.AnError)

	body, _ := json.Marshal(map[string]string{
		"username": "reader42",
		"password": "wrong",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewBuffer(body))
	rr := httptest.NewRecorder()

	handler.Login(rr, req)

	assertJSONError(t, rr, http.StatusUnauthorized, "invalid username or password")
}

func TestRefreshTokenHandler_Expired(t *testing.T) {
	mockAuthService := new(MockAuthService)
	handler := createAuthHandler(mockAuthService)

	mockAuthService.On("RefreshTokens", mock.Anything, "stale-token").
		Return(nil, "", "", assert.AnError)

	body, _ := json.Marshal(map[string]string{"refreshToken": "stale-token"})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/refresh-token", bytes.NewBuffer(body))
	rr := httptest.NewRecorder()

	handler.RefreshToken(rr, req)

	assertJSONError(t, rr, http.StatusUnauthorized, "refresh token")
}
