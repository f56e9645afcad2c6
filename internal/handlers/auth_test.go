package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/fieldnote/fieldnote-api/internal/constants"
	"github.com/fieldnote/fieldnote-api/internal/database"
	"github.com/fieldnote/fieldnote-api/internal/dto"
	"github.com/fieldnote/fieldnote-api/internal/models"
	"github.com/fieldnote/fieldnote-api/internal/repository"
	"github.com/fieldnote/fieldnote-api/internal/services"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.Company{},
		&models.User{},
		&models.Invitation{},
		&models.Customer{},
		&models.Project{},
		&models.Task{},
		&models.Memo{},
		&models.Checklist{},
		&models.ChecklistItem{},
	)
	require.NoError(t, err)

	database.SetDB(db)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return db
}

type authTestEnv struct {
	db          *gorm.DB
	handler     *AuthHandler
	authService *services.AuthService
}

func setupAuthTestEnv(t *testing.T) authTestEnv {
	t.Helper()

	db := openTestDB(t)

	userRepo := repository.NewUserRepository(db)
	authService := services.NewAuthService(userRepo)
	handler := NewAuthHandler(authService)

	return authTestEnv{
		db:          db,
		handler:     handler,
		authService: authService,
	}
}

func authTestRouter(env authTestEnv) *gin.Engine {
	r := gin.New()
	store := cookie.NewStore([]byte("secret"))
	r.Use(sessions.Sessions(constants.SessionCookieName, store))
	r.POST("/signup", env.handler.Signup)
	r.POST("/login", env.handler.Login)
	r.POST("/logout", env.handler.Logout)
	return r
}

func TestAuthHandler_Signup(t *testing.T) {
	env := setupAuthTestEnv(t)
	r := authTestRouter(env)

	payload := map[string]string{
		"company_name":     "Acme Construction",
		"username":         "founder",
		"email":            "founder@acme.example",
		"password":         "supersecret",
		"password_confirm": "supersecret",
	}
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/signup", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)

	var response dto.UserDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, payload["username"], response.Username)
	require.True(t, response.IsStaff, "the first user of a company is staff")

	var company models.Company
	require.NoError(t, env.db.Where("name = ?", payload["company_name"]).First(&company).Error)

	var user models.User
	require.NoError(t, env.db.Where("username = ?", payload["username"]).First(&user).Error)
	require.NotNil(t, user.CompanyID)
	require.Equal(t, company.ID, *user.CompanyID)

	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies, "signup should log the user in")
}

func TestAuthHandler_Signup_DuplicateCompanyName(t *testing.T) {
	env := setupAuthTestEnv(t)
	r := authTestRouter(env)

	_, err := env.authService.Signup(services.SignupInput{
		CompanyName:     "Acme Construction",
		Username:        "first",
		Email:           "first@acme.example",
		Password:        "supersecret",
		PasswordConfirm: "supersecret",
	})
	require.NoError(t, err)

	payload := map[string]string{
		"company_name":     "Acme Construction",
		"username":         "second",
		"email":            "second@acme.example",
		"password":         "supersecret",
		"password_confirm": "supersecret",
	}
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/signup", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusConflict, w.Code)

	var count int64
	require.NoError(t, env.db.Model(&models.User{}).Where("username = ?", "second").Count(&count).Error)
	require.Zero(t, count, "the rejected signup must not create a user")
}

func TestAuthHandler_Signup_PasswordMismatch(t *testing.T) {
	env := setupAuthTestEnv(t)
	r := authTestRouter(env)

	payload := map[string]string{
		"company_name":     "Acme Construction",
		"username":         "founder",
		"email":            "founder@acme.example",
		"password":         "supersecret",
		"password_confirm": "different",
	}
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/signup", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthHandler_Login(t *testing.T) {
	env := setupAuthTestEnv(t)
	r := authTestRouter(env)

	_, err := env.authService.Signup(services.SignupInput{
		CompanyName:     "Acme Construction",
		Username:        "existing",
		Email:           "existing@acme.example",
		Password:        "supersecret",
		PasswordConfirm: "supersecret",
	})
	require.NoError(t, err)

	payload := map[string]string{
		"username": "existing",
		"password": "supersecret",
	}
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var response dto.UserDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, payload["username"], response.Username)

	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies, "expected session cookie to be set")
}

func TestAuthHandler_Login_WrongPassword(t *testing.T) {
	env := setupAuthTestEnv(t)
	r := authTestRouter(env)

	_, err := env.authService.Signup(services.SignupInput{
		CompanyName:     "Acme Construction",
		Username:        "existing",
		Email:           "existing@acme.example",
		Password:        "supersecret",
		PasswordConfirm: "supersecret",
	})
	require.NoError(t, err)

	payload := map[string]string{
		"username": "existing",
		"password": "wrong-password",
	}
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
}
