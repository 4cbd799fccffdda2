package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/revxlabs/revx/internal/constants"
	"github.com/revxlabs/revx/internal/database"
	"github.com/revxlabs/revx/internal/dto"
	"github.com/revxlabs/revx/internal/models"
	"github.com/revxlabs/revx/internal/repository"
	"github.com/revxlabs/revx/internal/services"
)

type authTestEnv struct {
	db          *gorm.DB
	handler     *AuthHandler
	authService *services.AuthService
}

type authResponse struct {
	Status    string      `json:"status"`
	Message   string      `json:"message"`
	Data      dto.UserDTO `json:"data"`
	AuthToken string      `json:"auth_token"`
}

func setupAuthTestEnv(t *testing.T) authTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.PasswordReset{},
	)
	require.NoError(t, err)

	database.SetDB(db)

	userRepo := repository.NewUserRepository(db)
	authService := services.NewAuthService(userRepo, db, "test-secret")
	handler := NewAuthHandler(authService)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return authTestEnv{
		db:          db,
		handler:     handler,
		authService: authService,
	}
}

func TestAuthHandler_Register(t *testing.T) {
	env := setupAuthTestEnv(t)

	r := gin.New()
	r.POST("/auth/register", env.handler.Register)

	payload := map[string]string{
		"email":     "new@example.com",
		"username":  "newuser",
		"full_name": "New User",
		"password":  "Sup3rsecret!",
	}
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/auth/register", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)

	var response authResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, "success", response.Status)
	require.Equal(t, payload["username"], response.Data.Username)
	require.NotEmpty(t, response.AuthToken)
}

func TestAuthHandler_Register_DuplicateEmail(t *testing.T) {
	env := setupAuthTestEnv(t)

	_, _, err := env.authService.Register(services.RegisterInput{
		Email:    "taken@example.com",
		Username: "first",
		FullName: "First User",
		Password: "Sup3rsecret!",
	})
	require.NoError(t, err)

	r := gin.New()
	r.POST("/auth/register", env.handler.Register)

	payload := map[string]string{
		"email":     "taken@example.com",
		"username":  "second",
		"full_name": "Second User",
		"password":  "Sup3rsecret!",
	}
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/auth/register", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusConflict, w.Code)

	var response map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.NotEmpty(t, response["detail"])
}

func TestAuthHandler_Register_WeakPassword(t *testing.T) {
	env := setupAuthTestEnv(t)

	r := gin.New()
	r.POST("/auth/register", env.handler.Register)

	payload := map[string]string{
		"email":     "weak@example.com",
		"username":  "weakling",
		"full_name": "Weak Password",
		"password":  "alllowercase",
	}
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/auth/register", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthHandler_Login(t *testing.T) {
	env := setupAuthTestEnv(t)

	_, _, err := env.authService.Register(services.RegisterInput{
		Email:    "existing@example.com",
		Username: "existing",
		FullName: "Existing User",
		Password: "Sup3rsecret!",
	})
	require.NoError(t, err)

	r := gin.New()
	r.POST("/auth/login", env.handler.Login)

	payload := map[string]string{
		"email":    "existing@example.com",
		"password": "Sup3rsecret!",
	}
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var response authResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, "existing", response.Data.Username)
	require.NotEmpty(t, response.AuthToken)
}

func TestAuthHandler_Login_WrongPassword(t *testing.T) {
	env := setupAuthTestEnv(t)

	_, _, err := env.authService.Register(services.RegisterInput{
		Email:    "victim@example.com",
		Username: "victim",
		FullName: "Victim User",
		Password: "Sup3rsecret!",
	})
	require.NoError(t, err)

	r := gin.New()
	r.POST("/auth/login", env.handler.Login)

	payload := map[string]string{
		"email":    "victim@example.com",
		"password": "Wr0ngsecret!",
	}
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_GetCurrentUser(t *testing.T) {
	env := setupAuthTestEnv(t)

	user, _, err := env.authService.Register(services.RegisterInput{
		Email:    "current@example.com",
		Username: "current-user",
		FullName: "Current User",
		Password: "Sup3rsecret!",
	})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set(constants.ContextKeyUserID, user.ID)

	env.handler.GetCurrentUser(c)

	require.Equal(t, http.StatusOK, w.Code)

	var response authResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, user.Username, response.Data.Username)
}

func TestAuthHandler_ChangePassword(t *testing.T) {
	env := setupAuthTestEnv(t)

	user, _, err := env.authService.Register(services.RegisterInput{
		Email:    "rotate@example.com",
		Username: "rotator",
		FullName: "Rotate User",
		Password: "Sup3rsecret!",
	})
	require.NoError(t, err)

	r := gin.New()
	r.POST("/auth/change-password", func(c *gin.Context) {
		c.Set(constants.ContextKeyUserID, user.ID)
		env.handler.ChangePassword(c)
	})

	payload := map[string]string{
		"current_password": "Sup3rsecret!",
		"new_password":     "N3wsecret!pw",
	}
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/auth/change-password", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	// Old password no longer works, new one does.
	_, _, err = env.authService.Login(services.LoginInput{
		Email:    "rotate@example.com",
		Password: "Sup3rsecret!",
	})
	require.ErrorIs(t, err, services.ErrInvalidCredentials)

	_, _, err = env.authService.Login(services.LoginInput{
		Email:    "rotate@example.com",
		Password: "N3wsecret!pw",
	})
	require.NoError(t, err)
}

func TestAuthHandler_ForgotPassword_UnknownEmail(t *testing.T) {
	env := setupAuthTestEnv(t)

	r := gin.New()
	r.POST("/auth/forgot-password", env.handler.ForgotPassword)

	body, err := json.Marshal(map[string]string{"email": "nobody@example.com"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/auth/forgot-password", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	// Unknown accounts get the same answer as known ones.
	require.Equal(t, http.StatusOK, w.Code)
}
