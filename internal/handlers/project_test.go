package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/fieldnote/fieldnote-api/internal/constants"
	"github.com/fieldnote/fieldnote-api/internal/dto"
	"github.com/fieldnote/fieldnote-api/internal/models"
	"github.com/fieldnote/fieldnote-api/internal/repository"
	"github.com/fieldnote/fieldnote-api/internal/services"
	"github.com/fieldnote/fieldnote-api/internal/utils"
)

type projectTestEnv struct {
	db              *gorm.DB
	handler         *ProjectHandler
	customerHandler *CustomerHandler
}

func setupProjectTestEnv(t *testing.T) projectTestEnv {
	t.Helper()

	db := openTestDB(t)

	customerRepo := repository.NewCustomerRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	memoRepo := repository.NewMemoRepository(db)
	checklistRepo := repository.NewChecklistRepository(db)

	projectService := services.NewProjectService(projectRepo, customerRepo, taskRepo, memoRepo, checklistRepo)
	customerService := services.NewCustomerService(customerRepo)

	return projectTestEnv{
		db:              db,
		handler:         NewProjectHandler(projectService),
		customerHandler: NewCustomerHandler(customerService),
	}
}

// testContext builds a request context with the current user preloaded, the
// way the auth middleware chain would.
func testContext(method, url string, body []byte, user *models.User) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, url, bytes.NewReader(body))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Set(constants.ContextKeyUserID, user.ID)
	c.Set(constants.ContextKeyUser, user)

	return c, w
}

func createTestCompanyUser(t *testing.T, db *gorm.DB, companyName, username string, isStaff bool) *models.User {
	t.Helper()

	company := &models.Company{Name: companyName}
	require.NoError(t, db.Create(company).Error)

	user := &models.User{
		Username:     username,
		Email:        username + "@" + companyName + ".example",
		PasswordHash: "hashed",
		IsStaff:      isStaff,
		CompanyID:    &company.ID,
	}
	require.NoError(t, db.Create(user).Error)
	require.NoError(t, db.Preload("Company").First(user, user.ID).Error)
	return user
}

func createTestProject(t *testing.T, db *gorm.DB, user *models.User, name string) *models.Project {
	t.Helper()

	project := &models.Project{
		Name:      name,
		CompanyID: user.CompanyScopeID(),
		Status:    constants.ProjectStatusInProgress,
	}
	require.NoError(t, db.Create(project).Error)
	return project
}

func idParam(c *gin.Context, id uint64) {
	c.Params = gin.Params{{Key: "id", Value: strconv.FormatUint(id, 10)}}
}

func TestProjectHandler_Create(t *testing.T) {
	env := setupProjectTestEnv(t)
	user := createTestCompanyUser(t, env.db, "acme", "staffer", true)

	payload := map[string]interface{}{
		"name":       "Warehouse build",
		"status":     "in progress",
		"start_date": "2024-01-10",
		"end_date":   "2024-03-31",
	}
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	c, w := testContext(http.MethodPost, "/projects/create", body, user)
	env.handler.Create(c)

	require.Equal(t, http.StatusCreated, w.Code)

	var response dto.ProjectDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, "Warehouse build", response.Name)
	require.NotNil(t, response.StartDate)
	require.Equal(t, "2024-01-10", *response.StartDate)

	var project models.Project
	require.NoError(t, env.db.First(&project, response.ID).Error)
	require.Equal(t, user.CompanyScopeID(), project.CompanyID)
}

func TestProjectHandler_Get_CrossTenant(t *testing.T) {
	env := setupProjectTestEnv(t)
	owner := createTestCompanyUser(t, env.db, "acme", "owner", true)
	outsider := createTestCompanyUser(t, env.db, "rival", "outsider", true)

	project := createTestProject(t, env.db, owner, "Internal build")

	c, w := testContext(http.MethodGet, "/projects/1", nil, outsider)
	idParam(c, project.ID)
	env.handler.Get(c)

	// Another company's project reads as absent, never as forbidden
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestProjectHandler_Update_CrossTenant(t *testing.T) {
	env := setupProjectTestEnv(t)
	owner := createTestCompanyUser(t, env.db, "acme", "owner", true)
	outsider := createTestCompanyUser(t, env.db, "rival", "outsider", true)

	project := createTestProject(t, env.db, owner, "Internal build")

	body, err := json.Marshal(map[string]string{"name": "Hijacked"})
	require.NoError(t, err)

	c, w := testContext(http.MethodPost, "/projects/1/update", body, outsider)
	idParam(c, project.ID)
	env.handler.Update(c)

	require.Equal(t, http.StatusNotFound, w.Code)

	var unchanged models.Project
	require.NoError(t, env.db.First(&unchanged, project.ID).Error)
	require.Equal(t, "Internal build", unchanged.Name)
}

func TestProjectHandler_Delete_CrossTenant(t *testing.T) {
	env := setupProjectTestEnv(t)
	owner := createTestCompanyUser(t, env.db, "acme", "owner", true)
	outsider := createTestCompanyUser(t, env.db, "rival", "outsider", true)

	project := createTestProject(t, env.db, owner, "Internal build")

	c, w := testContext(http.MethodPost, "/projects/1/delete", nil, outsider)
	idParam(c, project.ID)
	env.handler.Delete(c)

	require.Equal(t, http.StatusNotFound, w.Code)

	var count int64
	require.NoError(t, env.db.Model(&models.Project{}).Where("id = ?", project.ID).Count(&count).Error)
	require.EqualValues(t, 1, count)
}

func TestProjectHandler_List_ScopedToCompany(t *testing.T) {
	env := setupProjectTestEnv(t)
	owner := createTestCompanyUser(t, env.db, "acme", "owner", true)
	outsider := createTestCompanyUser(t, env.db, "rival", "outsider", true)

	createTestProject(t, env.db, owner, "Ours")
	createTestProject(t, env.db, outsider, "Theirs")

	c, w := testContext(http.MethodGet, "/projects", nil, owner)
	env.handler.List(c)

	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Projects   []dto.ProjectDTO         `json:"projects"`
		Pagination utils.PaginationResponse `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(t, response.Projects, 1)
	require.Equal(t, "Ours", response.Projects[0].Name)
	require.EqualValues(t, 1, response.Pagination.Total)
}

func TestProjectHandler_List_Pagination(t *testing.T) {
	env := setupProjectTestEnv(t)
	owner := createTestCompanyUser(t, env.db, "acme", "owner", true)

	for i := 0; i < 5; i++ {
		createTestProject(t, env.db, owner, "Project "+strconv.Itoa(i))
	}

	c, w := testContext(http.MethodGet, "/projects?page=2&limit=2", nil, owner)
	env.handler.List(c)

	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Projects   []dto.ProjectDTO         `json:"projects"`
		Pagination utils.PaginationResponse `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(t, response.Projects, 2)
	require.EqualValues(t, 5, response.Pagination.Total)
	require.Equal(t, 2, response.Pagination.Page)
	// Newest first: page 2 of size 2 holds the third and second projects
	require.Equal(t, "Project 2", response.Projects[0].Name)
	require.Equal(t, "Project 1", response.Projects[1].Name)
}

func TestProjectHandler_Delete_CascadesChildren(t *testing.T) {
	env := setupProjectTestEnv(t)
	user := createTestCompanyUser(t, env.db, "acme", "owner", true)
	project := createTestProject(t, env.db, user, "Doomed")

	task := &models.Task{ProjectID: project.ID, Name: "Task"}
	require.NoError(t, env.db.Create(task).Error)
	memo := &models.Memo{ProjectID: project.ID, Content: "Note", AuthorID: &user.ID}
	require.NoError(t, env.db.Create(memo).Error)
	checklist := &models.Checklist{ProjectID: project.ID, Title: "List"}
	require.NoError(t, env.db.Create(checklist).Error)
	item := &models.ChecklistItem{ChecklistID: checklist.ID, Title: "Item"}
	require.NoError(t, env.db.Create(item).Error)

	c, w := testContext(http.MethodPost, "/projects/1/delete", nil, user)
	idParam(c, project.ID)
	env.handler.Delete(c)

	require.Equal(t, http.StatusOK, w.Code)

	for name, model := range map[string]interface{}{
		"projects":        &models.Project{},
		"tasks":           &models.Task{},
		"memos":           &models.Memo{},
		"checklists":      &models.Checklist{},
		"checklist items": &models.ChecklistItem{},
	} {
		var count int64
		require.NoError(t, env.db.Model(model).Count(&count).Error)
		require.Zero(t, count, "expected no remaining %s", name)
	}
}

func TestCustomerHandler_Delete_DetachesProjects(t *testing.T) {
	env := setupProjectTestEnv(t)
	user := createTestCompanyUser(t, env.db, "acme", "owner", true)

	customer := &models.Customer{Name: "BigCo", CompanyID: user.CompanyScopeID()}
	require.NoError(t, env.db.Create(customer).Error)

	project := createTestProject(t, env.db, user, "For BigCo")
	require.NoError(t, env.db.Model(project).Update("customer_id", customer.ID).Error)

	c, w := testContext(http.MethodPost, "/customers/1/delete", nil, user)
	idParam(c, customer.ID)
	env.customerHandler.Delete(c)

	require.Equal(t, http.StatusOK, w.Code)

	var reloaded models.Project
	require.NoError(t, env.db.First(&reloaded, project.ID).Error)
	require.Nil(t, reloaded.CustomerID, "deleting a customer must keep its projects, detached")
}
