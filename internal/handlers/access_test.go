package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/fieldnote/fieldnote-api/internal/constants"
	"github.com/fieldnote/fieldnote-api/internal/middleware"
	"github.com/fieldnote/fieldnote-api/internal/models"
	"github.com/fieldnote/fieldnote-api/internal/repository"
	"github.com/fieldnote/fieldnote-api/internal/services"
)

type accessTestEnv struct {
	db     *gorm.DB
	router *gin.Engine
}

// setupAccessTestEnv wires the role-gated route tiers the server mounts:
// task and memo writes open to any company member, project writes behind
// the staff check.
func setupAccessTestEnv(t *testing.T) accessTestEnv {
	t.Helper()

	db := openTestDB(t)

	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	memoRepo := repository.NewMemoRepository(db)
	checklistRepo := repository.NewChecklistRepository(db)

	authHandler := NewAuthHandler(services.NewAuthService(userRepo))
	projectHandler := NewProjectHandler(services.NewProjectService(
		projectRepo, customerRepo, taskRepo, memoRepo, checklistRepo))
	taskHandler := NewTaskHandler(services.NewTaskService(taskRepo, projectRepo))
	memoHandler := NewMemoHandler(services.NewMemoService(memoRepo, projectRepo, userRepo))

	r := gin.New()
	store := cookie.NewStore([]byte("secret"))
	r.Use(sessions.Sessions(constants.SessionCookieName, store))
	r.POST("/login", authHandler.Login)

	authed := r.Group("")
	authed.Use(middleware.RequireAuth(), middleware.LoadCurrentUser())
	{
		member := authed.Group("")
		member.Use(middleware.RequireCompany())
		{
			member.POST("/projects/:id/task/create", taskHandler.Create)
			member.POST("/projects/:id/memos/create", memoHandler.Create)

			staff := member.Group("")
			staff.Use(middleware.RequireStaff())
			{
				staff.POST("/projects/create", projectHandler.Create)
			}
		}
	}

	return accessTestEnv{db: db, router: r}
}

// createMemberUser adds a non-staff member with a real password to an
// existing company so the member can log in through the session middleware.
func createMemberUser(t *testing.T, db *gorm.DB, companyID uint64, username, password string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	require.NoError(t, err)

	user := &models.User{
		Username:     username,
		Email:        username + "@acme.example",
		PasswordHash: string(hash),
		CompanyID:    &companyID,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func loginAs(t *testing.T, r *gin.Engine, username, password string) []*http.Cookie {
	t.Helper()

	body, err := json.Marshal(map[string]string{
		"username": username,
		"password": password,
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	return cookies
}

func TestAccess_MemberCreatesMemo(t *testing.T) {
	env := setupAccessTestEnv(t)
	staffer := createTestCompanyUser(t, env.db, "acme", "staffer", true)
	member := createMemberUser(t, env.db, staffer.CompanyScopeID(), "colleague", "supersecret")
	project := createTestProject(t, env.db, staffer, "Site works")

	cookies := loginAs(t, env.router, "colleague", "supersecret")

	body, err := json.Marshal(map[string]string{"content": "Daily report"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost,
		fmt.Sprintf("/projects/%d/memos/create", project.ID), bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code, "regular members can write memos")

	var memo models.Memo
	require.NoError(t, env.db.Where("project_id = ?", project.ID).First(&memo).Error)
	require.Equal(t, "Daily report", memo.Content)
	require.NotNil(t, memo.AuthorID)
	require.Equal(t, member.ID, *memo.AuthorID)
}

func TestAccess_MemberCreatesTask(t *testing.T) {
	env := setupAccessTestEnv(t)
	staffer := createTestCompanyUser(t, env.db, "acme", "staffer", true)
	createMemberUser(t, env.db, staffer.CompanyScopeID(), "colleague", "supersecret")
	project := createTestProject(t, env.db, staffer, "Site works")

	cookies := loginAs(t, env.router, "colleague", "supersecret")

	body, err := json.Marshal(map[string]string{"name": "Dig foundations"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost,
		fmt.Sprintf("/projects/%d/task/create", project.ID), bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code, "regular members can write tasks")

	var count int64
	require.NoError(t, env.db.Model(&models.Task{}).Where("project_id = ?", project.ID).Count(&count).Error)
	require.EqualValues(t, 1, count)
}

func TestAccess_NonStaffProjectCreateRejected(t *testing.T) {
	env := setupAccessTestEnv(t)
	staffer := createTestCompanyUser(t, env.db, "acme", "staffer", true)
	createMemberUser(t, env.db, staffer.CompanyScopeID(), "colleague", "supersecret")

	cookies := loginAs(t, env.router, "colleague", "supersecret")

	body, err := json.Marshal(map[string]string{"name": "New build"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/projects/create", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusForbidden, w.Code)
	require.Contains(t, w.Body.String(), "Staff privileges required")

	var count int64
	require.NoError(t, env.db.Model(&models.Project{}).Count(&count).Error)
	require.Zero(t, count, "the rejected create must not add a project")
}
