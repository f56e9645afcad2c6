package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fieldnote/fieldnote-api/internal/services"
)

// GanttHandler serves the frappe-gantt task export.
type GanttHandler struct {
	projectService *services.ProjectService
	ganttService   *services.GanttService
}

// NewGanttHandler creates a new GanttHandler.
func NewGanttHandler(projectService *services.ProjectService, ganttService *services.GanttService) *GanttHandler {
	return &GanttHandler{
		projectService: projectService,
		ganttService:   ganttService,
	}
}

// ExportTasks returns the project's tasks as a flat frappe-gantt array,
// ordered by start date, end date, then ID.
func (h *GanttHandler) ExportTasks(c *gin.Context) {
	user, ok := actor(c)
	if !ok {
		return
	}

	projectID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	// Tenant check happens here; the export itself is project-scoped.
	project, err := h.projectService.Get(user, projectID)
	if err != nil {
		respondProjectError(c, err)
		return
	}

	tasks, err := h.ganttService.ExportTasks(project.ID)
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, tasks)
}
