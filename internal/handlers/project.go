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

// ProjectHandler coordinates project-related HTTP handlers.
type ProjectHandler struct {
	projectService *services.ProjectService
}

// NewProjectHandler creates a new ProjectHandler.
func NewProjectHandler(projectService *services.ProjectService) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
	}
}

// ProjectRequest is the create/update payload. Dates use YYYY-MM-DD.
type ProjectRequest struct {
	Name        string  `json:"name" binding:"required,max=255"`
	Status      string  `json:"status" binding:"max=50"`
	StartDate   *string `json:"start_date"`
	EndDate     *string `json:"end_date"`
	Description string  `json:"description"`
	CustomerID  *uint64 `json:"customer_id"`
}

func (r ProjectRequest) toInput() (services.ProjectInput, error) {
	startDate, err := utils.ParseDate(r.StartDate)
	if err != nil {
		return services.ProjectInput{}, err
	}
	endDate, err := utils.ParseDate(r.EndDate)
	if err != nil {
		return services.ProjectInput{}, err
	}

	return services.ProjectInput{
		Name:        r.Name,
		Status:      r.Status,
		StartDate:   startDate,
		EndDate:     endDate,
		Description: r.Description,
		CustomerID:  r.CustomerID,
	}, nil
}

// List returns a page of the current user's company projects.
func (h *ProjectHandler) List(c *gin.Context) {
	user, ok := actor(c)
	if !ok {
		return
	}

	params := utils.GetPaginationParams(c)

	projects, total, err := h.projectService.List(user, params)
	if err != nil {
		respondProjectError(c, err)
		return
	}

	projectDTOs := make([]dto.ProjectDTO, len(projects))
	for i, p := range projects {
		projectDTOs[i] = dto.ToProjectDTO(p)
	}

	c.JSON(http.StatusOK, gin.H{
		"projects": projectDTOs,
		"pagination": utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}

// Get returns one project with its tasks, memos and checklists.
func (h *ProjectHandler) Get(c *gin.Context) {
	user, ok := actor(c)
	if !ok {
		return
	}

	projectID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	detail, err := h.projectService.GetDetail(user, projectID)
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectDetailDTO(*detail.Project, detail.Tasks, detail.Memos, detail.Checklists))
}

// Create creates a project in the current user's company.
func (h *ProjectHandler) Create(c *gin.Context) {
	user, ok := actor(c)
	if !ok {
		return
	}

	var req ProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	input, err := req.toInput()
	if err != nil {
		apierrors.BadRequest(c, "Invalid date format, expected YYYY-MM-DD")
		return
	}

	project, err := h.projectService.Create(user, input)
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToProjectDTO(*project))
}

// Update updates a project of the current user's company.
func (h *ProjectHandler) Update(c *gin.Context) {
	user, ok := actor(c)
	if !ok {
		return
	}

	projectID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req ProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	input, err := req.toInput()
	if err != nil {
		apierrors.BadRequest(c, "Invalid date format, expected YYYY-MM-DD")
		return
	}

	project, err := h.projectService.Update(user, projectID, input)
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectDTO(*project))
}

// Delete removes a project and everything under it.
func (h *ProjectHandler) Delete(c *gin.Context) {
	user, ok := actor(c)
	if !ok {
		return
	}

	projectID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.projectService.Delete(user, projectID); err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Project deleted successfully",
	})
}

func respondProjectError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrProjectNotFound):
		apierrors.NotFound(c, "Project not found")
	case errors.Is(err, services.ErrProjectNameRequired):
		apierrors.BadRequest(c, "Project name is required")
	case errors.Is(err, services.ErrCustomerNotFound):
		apierrors.BadRequest(c, "Customer not found")
	default:
		apierrors.InternalError(c, "")
	}
}
