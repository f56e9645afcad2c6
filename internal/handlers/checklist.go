package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fieldnote/fieldnote-api/internal/dto"
	apierrors "github.com/fieldnote/fieldnote-api/internal/errors"
	"github.com/fieldnote/fieldnote-api/internal/services"
)

// ChecklistHandler coordinates checklist and checklist item handlers.
type ChecklistHandler struct {
	checklistService *services.ChecklistService
}

// NewChecklistHandler creates a new ChecklistHandler.
func NewChecklistHandler(checklistService *services.ChecklistService) *ChecklistHandler {
	return &ChecklistHandler{
		checklistService: checklistService,
	}
}

// ChecklistRequest is the create/update payload for checklists and items.
type ChecklistRequest struct {
	Title string `json:"title" binding:"required,max=255"`
}

// Create creates a checklist under a project.
func (h *ChecklistHandler) Create(c *gin.Context) {
	user, ok := actor(c)
	if !ok {
		return
	}

	projectID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req ChecklistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	checklist, err := h.checklistService.Create(user, projectID, req.Title)
	if err != nil {
		respondChecklistError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToChecklistDTO(*checklist))
}

// Update renames a checklist.
func (h *ChecklistHandler) Update(c *gin.Context) {
	user, ok := actor(c)
	if !ok {
		return
	}

	checklistID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req ChecklistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	checklist, err := h.checklistService.Update(user, checklistID, req.Title)
	if err != nil {
		respondChecklistError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToChecklistDTO(*checklist))
}

// CreateItem adds an unchecked item to a checklist.
func (h *ChecklistHandler) CreateItem(c *gin.Context) {
	user, ok := actor(c)
	if !ok {
		return
	}

	checklistID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req ChecklistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	item, err := h.checklistService.CreateItem(user, checklistID, req.Title)
	if err != nil {
		respondChecklistError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToChecklistItemDTO(*item))
}

// UpdateItem renames a checklist item.
func (h *ChecklistHandler) UpdateItem(c *gin.Context) {
	user, ok := actor(c)
	if !ok {
		return
	}

	itemID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req ChecklistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	item, err := h.checklistService.UpdateItem(user, itemID, req.Title)
	if err != nil {
		respondChecklistError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToChecklistItemDTO(*item))
}

// ToggleItem flips an item's done state and returns the new state.
func (h *ChecklistHandler) ToggleItem(c *gin.Context) {
	user, ok := actor(c)
	if !ok {
		return
	}

	itemID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	item, err := h.checklistService.ToggleItem(user, itemID)
	if err != nil {
		respondChecklistError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToChecklistItemDTO(*item))
}

func respondChecklistError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrChecklistNotFound):
		apierrors.NotFound(c, "Checklist not found")
	case errors.Is(err, services.ErrChecklistItemNotFound):
		apierrors.NotFound(c, "Checklist item not found")
	case errors.Is(err, services.ErrProjectNotFound):
		apierrors.NotFound(c, "Project not found")
	default:
		apierrors.InternalError(c, "")
	}
}
