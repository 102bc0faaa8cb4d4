package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"storerating/internal/app/storerating/entity"
	"storerating/internal/app/storerating/repository"
	"storerating/internal/app/storerating/repository/mocks"
	"storerating/internal/app/storerating/service"
	"storerating/internal/app/storerating/util"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// Хелперы для создания тестового окружения

func newTestJWTManager() *util.JWTManager {
	return util.NewJWTManager("test-secret-key", 24*time.Hour)
}

func newTestAuthHandler() (*AuthHandler, *mocks.MockUserRepository, *util.JWTManager) {
	userRepo := new(mocks.MockUserRepository)
	jwtManager := newTestJWTManager()

	authService := service.NewAuthService(userRepo, jwtManager)
	handler := NewAuthHandler(authService)

	return handler, userRepo, jwtManager
}

func newTestUser() *entity.User {
	hash, _ := util.HashPassword("Password1!")
	return &entity.User{
		ID:           uuid.New(),
		Name:         "Test User",
		Email:        "test@example.com",
		PasswordHash: hash,
		Address:      "123 Test Street",
		Role:         entity.RoleUser,
		CreatedAt:    time.Now(),
	}
}

// setupTestRouter создаёт тестовый Gin router с одним хендлером
func setupTestRouter(method, path string, handlers ...gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	switch method {
	case http.MethodGet:
		router.GET(path, handlers...)
	case http.MethodPost:
		router.POST(path, handlers...)
	case http.MethodPut:
		router.PUT(path, handlers...)
	case http.MethodDelete:
		router.DELETE(path, handlers...)
	}
	return router
}

func jsonRequest(method, path string, payload interface{}) *http.Request {
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest(method, path, bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

// ==================== Register Handler Tests ====================

func TestAuthHandler_Register_Success(t *testing.T) {
	// Arrange
	handler, userRepo, _ := newTestAuthHandler()

	userRepo.On("GetByEmail", mock.Anything, "newuser@example.com").Return(nil, repository.ErrUserNotFound)
	userRepo.On("Create", mock.Anything, mock.AnythingOfType("*entity.User")).Return(nil)

	router := setupTestRouter(http.MethodPost, "/auth/register", handler.Register)
	req := jsonRequest(http.MethodPost, "/auth/register", entity.RegisterRequest{
		Name:     "Brand New User",
		Email:    "newuser@example.com",
		Address:  "456 New Street",
		Password: "Password1!",
	})
	rec := httptest.NewRecorder()

	// Act
	router.ServeHTTP(rec, req)

	// Assert
	assert.Equal(t, http.StatusCreated, rec.Code)

	var response entity.SuccessResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, "User registered successfully", response.Message)

	// Хэш пароля не должен утекать в JSON
	assert.NotContains(t, rec.Body.String(), "password_hash")
}

func TestAuthHandler_Register_InvalidBody(t *testing.T) {
	handler, _, _ := newTestAuthHandler()

	router := setupTestRouter(http.MethodPost, "/auth/register", handler.Register)
	req := httptest.NewRequest(http.MethodPost, "/auth/register", bytes.NewBufferString("invalid json"))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var response map[string]string
	json.Unmarshal(rec.Body.Bytes(), &response)
	assert.Equal(t, "Invalid request body", response["message"])
}

func TestAuthHandler_Register_DuplicateEmail(t *testing.T) {
	handler, userRepo, _ := newTestAuthHandler()

	existing := newTestUser()
	userRepo.On("GetByEmail", mock.Anything, existing.Email).Return(existing, nil)

	router := setupTestRouter(http.MethodPost, "/auth/register", handler.Register)
	req := jsonRequest(http.MethodPost, "/auth/register", entity.RegisterRequest{
		Name:     "Someone Else",
		Email:    existing.Email,
		Address:  "456 New Street",
		Password: "Password1!",
	})
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var response map[string]string
	json.Unmarshal(rec.Body.Bytes(), &response)
	assert.Equal(t, "User with this email already exists", response["message"])
}

func TestAuthHandler_Register_WeakPassword(t *testing.T) {
	handler, userRepo, _ := newTestAuthHandler()

	router := setupTestRouter(http.MethodPost, "/auth/register", handler.Register)
	req := jsonRequest(http.MethodPost, "/auth/register", entity.RegisterRequest{
		Name:     "Brand New User",
		Email:    "newuser@example.com",
		Address:  "456 New Street",
		Password: "weakpass",
	})
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	userRepo.AssertNotCalled(t, "Create")
}

// ==================== Login Handler Tests ====================

func TestAuthHandler_Login_Success(t *testing.T) {
	handler, userRepo, jwtManager := newTestAuthHandler()

	user := newTestUser()
	userRepo.On("GetByEmail", mock.Anything, user.Email).Return(user, nil)

	router := setupTestRouter(http.MethodPost, "/auth/login", handler.Login)
	req := jsonRequest(http.MethodPost, "/auth/login", entity.LoginRequest{
		Email:    user.Email,
		Password: "Password1!",
	})
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var response entity.AuthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, "Login successful", response.Message)
	assert.Equal(t, user.Email, response.User.Email)

	claims, err := jwtManager.ValidateToken(response.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	handler, userRepo, _ := newTestAuthHandler()

	user := newTestUser()
	userRepo.On("GetByEmail", mock.Anything, user.Email).Return(user, nil)

	router := setupTestRouter(http.MethodPost, "/auth/login", handler.Login)
	req := jsonRequest(http.MethodPost, "/auth/login", entity.LoginRequest{
		Email:    user.Email,
		Password: "WrongPass1!",
	})
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	var response map[string]string
	json.Unmarshal(rec.Body.Bytes(), &response)
	assert.Equal(t, "Invalid email or password", response["message"])
}

func TestAuthHandler_Login_UnknownEmail(t *testing.T) {
	handler, userRepo, _ := newTestAuthHandler()

	userRepo.On("GetByEmail", mock.Anything, "ghost@example.com").Return(nil, repository.ErrUserNotFound)

	router := setupTestRouter(http.MethodPost, "/auth/login", handler.Login)
	req := jsonRequest(http.MethodPost, "/auth/login", entity.LoginRequest{
		Email:    "ghost@example.com",
		Password: "Password1!",
	})
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	// Несуществующий email неотличим от неверного пароля
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

// ==================== UpdatePassword Handler Tests ====================

func TestAuthHandler_UpdatePassword_Success(t *testing.T) {
	handler, userRepo, jwtManager := newTestAuthHandler()

	user := newTestUser()
	userRepo.On("GetByID", mock.Anything, user.ID).Return(user, nil)
	userRepo.On("UpdatePassword", mock.Anything, user.ID, mock.AnythingOfType("string")).Return(nil)

	authMiddleware := NewAuthMiddleware(jwtManager)
	token, _ := jwtManager.GenerateToken(user.ID, user.Email, user.Role)

	router := setupTestRouter(http.MethodPut, "/auth/update-password", authMiddleware.Authenticate(), handler.UpdatePassword)
	req := jsonRequest(http.MethodPut, "/auth/update-password", entity.UpdatePasswordRequest{
		CurrentPassword: "Password1!",
		NewPassword:     "NewPass99#",
	})
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	userRepo.AssertExpectations(t)
}

func TestAuthHandler_UpdatePassword_WrongCurrentPassword(t *testing.T) {
	handler, userRepo, jwtManager := newTestAuthHandler()

	user := newTestUser()
	userRepo.On("GetByID", mock.Anything, user.ID).Return(user, nil)

	authMiddleware := NewAuthMiddleware(jwtManager)
	token, _ := jwtManager.GenerateToken(user.ID, user.Email, user.Role)

	router := setupTestRouter(http.MethodPut, "/auth/update-password", authMiddleware.Authenticate(), handler.UpdatePassword)
	req := jsonRequest(http.MethodPut, "/auth/update-password", entity.UpdatePasswordRequest{
		CurrentPassword: "WrongPass1!",
		NewPassword:     "NewPass99#",
	})
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var response map[string]string
	json.Unmarshal(rec.Body.Bytes(), &response)
	assert.Equal(t, "Current password is incorrect", response["message"])
}

func TestAuthHandler_UpdatePassword_NoToken(t *testing.T) {
	handler, _, jwtManager := newTestAuthHandler()

	authMiddleware := NewAuthMiddleware(jwtManager)

	router := setupTestRouter(http.MethodPut, "/auth/update-password", authMiddleware.Authenticate(), handler.UpdatePassword)
	req := jsonRequest(http.MethodPut, "/auth/update-password", entity.UpdatePasswordRequest{
		CurrentPassword: "Password1!",
		NewPassword:     "NewPass99#",
	})
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
