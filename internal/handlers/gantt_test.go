package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/fieldnote/fieldnote-api/internal/models"
	"github.com/fieldnote/fieldnote-api/internal/repository"
	"github.com/fieldnote/fieldnote-api/internal/services"
)

type ganttTestEnv struct {
	db      *gorm.DB
	handler *GanttHandler
}

func setupGanttTestEnv(t *testing.T) ganttTestEnv {
	t.Helper()

	db := openTestDB(t)

	customerRepo := repository.NewCustomerRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	memoRepo := repository.NewMemoRepository(db)
	checklistRepo := repository.NewChecklistRepository(db)

	projectService := services.NewProjectService(projectRepo, customerRepo, taskRepo, memoRepo, checklistRepo)
	ganttService := services.NewGanttService(taskRepo)

	return ganttTestEnv{
		db:      db,
		handler: NewGanttHandler(projectService, ganttService),
	}
}

func date(t *testing.T, value string) *time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", value)
	require.NoError(t, err)
	return &d
}

func TestGanttHandler_ExportTasks(t *testing.T) {
	env := setupGanttTestEnv(t)
	user := createTestCompanyUser(t, env.db, "acme", "planner", true)
	project := createTestProject(t, env.db, user, "Warehouse build")

	// Seeded out of order on purpose; equal end dates break the tie by ID
	later := &models.Task{ProjectID: project.ID, Name: "Roofing", StartDate: date(t, "2024-03-01"), EndDate: date(t, "2024-03-20"), Progress: 0}
	require.NoError(t, env.db.Create(later).Error)
	first := &models.Task{ProjectID: project.ID, Name: "Groundwork", StartDate: date(t, "2024-01-05"), EndDate: date(t, "2024-02-01"), Progress: 100}
	require.NoError(t, env.db.Create(first).Error)
	second := &models.Task{ProjectID: project.ID, Name: "Framing", StartDate: date(t, "2024-02-01"), EndDate: date(t, "2024-03-20"), Progress: 40}
	require.NoError(t, env.db.Create(second).Error)

	taskRepo := repository.NewTaskRepository(env.db)
	require.NoError(t, taskRepo.ReplaceDependencies(later, []*models.Task{second, first}))

	c, w := testContext(http.MethodGet, "/projects/1/tasks.json", nil, user)
	idParam(c, project.ID)
	env.handler.ExportTasks(c)

	require.Equal(t, http.StatusOK, w.Code)

	var rows []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rows))
	require.Len(t, rows, 3)

	// Ordered by start date
	require.Equal(t, "Groundwork", rows[0]["name"])
	require.Equal(t, "Framing", rows[1]["name"])
	require.Equal(t, "Roofing", rows[2]["name"])

	// The chart contract: string IDs, flat fields, comma-joined dependencies
	for _, key := range []string{"id", "name", "start", "end", "progress", "dependencies"} {
		require.Contains(t, rows[0], key)
	}
	require.Equal(t, "2024-01-05", rows[0]["start"])
	require.Equal(t, "2024-02-01", rows[0]["end"])
	require.EqualValues(t, 100, rows[0]["progress"])
	require.Equal(t, "", rows[0]["dependencies"])

	wantDeps := fmt.Sprintf("%d,%d", first.ID, second.ID)
	require.Equal(t, wantDeps, rows[2]["dependencies"], "dependency IDs are sorted ascending")
}

func TestGanttHandler_ExportTasks_TieBreakByEndDateThenID(t *testing.T) {
	env := setupGanttTestEnv(t)
	user := createTestCompanyUser(t, env.db, "acme", "planner", true)
	project := createTestProject(t, env.db, user, "Warehouse build")

	shared := date(t, "2024-02-01")
	longer := &models.Task{ProjectID: project.ID, Name: "Longer", StartDate: shared, EndDate: date(t, "2024-03-01")}
	require.NoError(t, env.db.Create(longer).Error)
	shorter := &models.Task{ProjectID: project.ID, Name: "Shorter", StartDate: shared, EndDate: date(t, "2024-02-10")}
	require.NoError(t, env.db.Create(shorter).Error)
	twinA := &models.Task{ProjectID: project.ID, Name: "Twin A", StartDate: shared, EndDate: date(t, "2024-03-01")}
	require.NoError(t, env.db.Create(twinA).Error)

	c, w := testContext(http.MethodGet, "/projects/1/tasks.json", nil, user)
	idParam(c, project.ID)
	env.handler.ExportTasks(c)

	require.Equal(t, http.StatusOK, w.Code)

	var rows []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rows))
	require.Len(t, rows, 3)

	require.Equal(t, "Shorter", rows[0]["name"])
	// Equal start and end dates: creation order wins
	require.Equal(t, "Longer", rows[1]["name"])
	require.Equal(t, "Twin A", rows[2]["name"])
}

func TestGanttHandler_ExportTasks_CrossTenant(t *testing.T) {
	env := setupGanttTestEnv(t)
	owner := createTestCompanyUser(t, env.db, "acme", "planner", true)
	outsider := createTestCompanyUser(t, env.db, "rival", "outsider", true)
	project := createTestProject(t, env.db, owner, "Internal build")

	c, w := testContext(http.MethodGet, "/projects/1/tasks.json", nil, outsider)
	idParam(c, project.ID)
	env.handler.ExportTasks(c)

	require.Equal(t, http.StatusNotFound, w.Code)
}
