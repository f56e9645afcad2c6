package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fieldnote/fieldnote-api/internal/dto"
	apierrors "github.com/fieldnote/fieldnote-api/internal/errors"
	"github.com/fieldnote/fieldnote-api/internal/services"
)

// MemoHandler coordinates memo-related HTTP handlers.
type MemoHandler struct {
	memoService *services.MemoService
}

// NewMemoHandler creates a new MemoHandler.
func NewMemoHandler(memoService *services.MemoService) *MemoHandler {
	return &MemoHandler{
		memoService: memoService,
	}
}

// MemoRequest is the create/update payload. Mentions are member user IDs.
type MemoRequest struct {
	Content    string   `json:"content" binding:"required"`
	MentionIDs []uint64 `json:"mention_ids"`
}

// Create creates a memo on a project, authored by the current user.
func (h *MemoHandler) Create(c *gin.Context) {
	user, ok := actor(c)
	if !ok {
		return
	}

	projectID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req MemoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	memo, err := h.memoService.Create(user, projectID, services.MemoInput{
		Content:    req.Content,
		MentionIDs: req.MentionIDs,
	})
	if err != nil {
		respondMemoError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToMemoDTO(*memo))
}

// Update edits a memo's content and replaces its mention set. The original
// author is kept.
func (h *MemoHandler) Update(c *gin.Context) {
	user, ok := actor(c)
	if !ok {
		return
	}

	memoID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req MemoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	memo, err := h.memoService.Update(user, memoID, services.MemoInput{
		Content:    req.Content,
		MentionIDs: req.MentionIDs,
	})
	if err != nil {
		respondMemoError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToMemoDTO(*memo))
}

func respondMemoError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrMemoNotFound):
		apierrors.NotFound(c, "Memo not found")
	case errors.Is(err, services.ErrProjectNotFound):
		apierrors.NotFound(c, "Project not found")
	case errors.Is(err, services.ErrMemoContentRequired):
		apierrors.BadRequest(c, "Memo content is required")
	case errors.Is(err, services.ErrInvalidMention):
		apierrors.BadRequest(c, "Mentioned users must be members of your company")
	default:
		apierrors.InternalError(c, "")
	}
}
