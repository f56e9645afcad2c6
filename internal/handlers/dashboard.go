package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fieldnote/fieldnote-api/internal/dto"
	apierrors "github.com/fieldnote/fieldnote-api/internal/errors"
	"github.com/fieldnote/fieldnote-api/internal/services"
)

// DashboardHandler serves the landing page summary.
type DashboardHandler struct {
	dashboardService *services.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(dashboardService *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
	}
}

// Summary returns the in-progress project count, tasks due within a week
// and the newest memos of the current user's company.
func (h *DashboardHandler) Summary(c *gin.Context) {
	user, ok := actor(c)
	if !ok {
		return
	}

	summary, err := h.dashboardService.Compute(user.CompanyScopeID(), time.Now())
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, dto.ToDashboardDTO(summary.InProgressProjectCount, summary.OverdueTasks, summary.RecentMemos))
}
