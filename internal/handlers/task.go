package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fieldnote/fieldnote-api/internal/dto"
	apierrors "github.com/fieldnote/fieldnote-api/internal/errors"
	"github.com/fieldnote/fieldnote-api/internal/services"
	"github.com/fieldnote/fieldnote-api/internal/utils"
)

// TaskHandler coordinates task-related HTTP handlers.
type TaskHandler struct {
	taskService *services.TaskService
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// TaskRequest is the create/update payload. Dates use YYYY-MM-DD and
// dependencies are sibling task IDs.
type TaskRequest struct {
	Name          string   `json:"name" binding:"required,max=255"`
	StartDate     *string  `json:"start_date"`
	EndDate       *string  `json:"end_date"`
	Progress      uint     `json:"progress"`
	DependencyIDs []uint64 `json:"dependency_ids"`
}

func (r TaskRequest) toInput() (services.TaskInput, error) {
	startDate, err := utils.ParseDate(r.StartDate)
	if err != nil {
		return services.TaskInput{}, err
	}
	endDate, err := utils.ParseDate(r.EndDate)
	if err != nil {
		return services.TaskInput{}, err
	}

	return services.TaskInput{
		Name:          r.Name,
		StartDate:     startDate,
		EndDate:       endDate,
		Progress:      r.Progress,
		DependencyIDs: r.DependencyIDs,
	}, nil
}

// Get returns one task of the current user's company.
func (h *TaskHandler) Get(c *gin.Context) {
	user, ok := actor(c)
	if !ok {
		return
	}

	taskID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	task, err := h.taskService.Get(user, taskID)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// Create creates a task under a project of the current user's company.
func (h *TaskHandler) Create(c *gin.Context) {
	user, ok := actor(c)
	if !ok {
		return
	}

	projectID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req TaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	input, err := req.toInput()
	if err != nil {
		apierrors.BadRequest(c, "Invalid date format, expected YYYY-MM-DD")
		return
	}

	task, err := h.taskService.Create(user, projectID, input)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskDTO(*task))
}

// Update updates a task, replacing its dependency set.
func (h *TaskHandler) Update(c *gin.Context) {
	user, ok := actor(c)
	if !ok {
		return
	}

	taskID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req TaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	input, err := req.toInput()
	if err != nil {
		apierrors.BadRequest(c, "Invalid date format, expected YYYY-MM-DD")
		return
	}

	task, err := h.taskService.Update(user, taskID, input)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// Delete removes a task and both incoming and outgoing dependency edges.
func (h *TaskHandler) Delete(c *gin.Context) {
	user, ok := actor(c)
	if !ok {
		return
	}

	taskID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	projectID, err := h.taskService.Delete(user, taskID)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "Task deleted successfully",
		"project_id": projectID,
	})
}

// DependencyCandidates lists tasks of a project that a task may depend on.
// An optional exclude query parameter removes the task being edited.
func (h *TaskHandler) DependencyCandidates(c *gin.Context) {
	user, ok := actor(c)
	if !ok {
		return
	}

	projectID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var excludeID uint64
	if raw := c.Query("exclude"); raw != "" {
		parsed, err := utils.ParseID(raw)
		if err != nil {
			apierrors.BadRequest(c, "Invalid exclude parameter")
			return
		}
		excludeID = parsed
	}

	tasks, err := h.taskService.DependencyCandidates(user, projectID, excludeID)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	taskDTOs := make([]dto.TaskDTO, len(tasks))
	for i, t := range tasks {
		taskDTOs[i] = dto.ToTaskDTO(t)
	}

	c.JSON(http.StatusOK, gin.H{"tasks": taskDTOs})
}

func respondTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTaskNotFound):
		apierrors.NotFound(c, "Task not found")
	case errors.Is(err, services.ErrProjectNotFound):
		apierrors.NotFound(c, "Project not found")
	case errors.Is(err, services.ErrTaskNameRequired):
		apierrors.BadRequest(c, "Task name is required")
	case errors.Is(err, services.ErrProgressOutOfRange):
		apierrors.BadRequest(c, "Progress must be between 0 and 100")
	case errors.Is(err, services.ErrSelfDependency):
		apierrors.BadRequest(c, "A task cannot depend on itself")
	case errors.Is(err, services.ErrInvalidDependency):
		apierrors.BadRequest(c, "Dependencies must be tasks of the same project")
	default:
		apierrors.InternalError(c, "")
	}
}
