package handlers

import (
	"fmt"
	"html/template"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	apierrors "github.com/fieldnote/fieldnote-api/internal/errors"
	"github.com/fieldnote/fieldnote-api/internal/pdf"
	"github.com/fieldnote/fieldnote-api/internal/services"
	"github.com/fieldnote/fieldnote-api/internal/utils"
)

// PDFRenderer produces the printable documents served by PDFHandler.
type PDFRenderer interface {
	RenderProjectSummary(data pdf.ProjectSummary) ([]byte, error)
	RenderGanttChart(data pdf.GanttChart) ([]byte, error)
}

// PDFHandler serves the printable project documents.
type PDFHandler struct {
	projectService *services.ProjectService
	renderer       PDFRenderer
}

// NewPDFHandler creates a new PDFHandler.
func NewPDFHandler(projectService *services.ProjectService, renderer PDFRenderer) *PDFHandler {
	return &PDFHandler{
		projectService: projectService,
		renderer:       renderer,
	}
}

// ProjectSummary renders the project summary document as a PDF download.
func (h *PDFHandler) ProjectSummary(c *gin.Context) {
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

	project := detail.Project
	data := pdf.ProjectSummary{
		Name:        project.Name,
		Status:      project.Status,
		Start:       dateOrEmpty(utils.FormatDate(project.StartDate)),
		End:         dateOrEmpty(utils.FormatDate(project.EndDate)),
		Description: project.Description,
	}
	if project.Customer != nil {
		data.Customer = project.Customer.Name
	}

	for _, t := range detail.Tasks {
		data.Tasks = append(data.Tasks, pdf.TaskRow{
			Name:     t.Name,
			Start:    dateOrEmpty(utils.FormatDate(t.StartDate)),
			End:      dateOrEmpty(utils.FormatDate(t.EndDate)),
			Progress: t.Progress,
		})
	}

	for _, cl := range detail.Checklists {
		section := pdf.ChecklistSection{Title: cl.Title}
		for _, item := range cl.Items {
			section.Items = append(section.Items, pdf.ChecklistRow{
				Title:  item.Title,
				IsDone: item.IsDone,
			})
		}
		data.Checklists = append(data.Checklists, section)
	}

	document, err := h.renderer.RenderProjectSummary(data)
	if err != nil {
		apierrors.InternalError(c, "Failed to generate PDF")
		return
	}

	writePDF(c, fmt.Sprintf("project_%d_%s.pdf", project.ID, project.Name), document)
}

// GanttChart renders a client-supplied gantt SVG as a PDF download. The
// browser draws the chart; the server only wraps it into a document.
func (h *PDFHandler) GanttChart(c *gin.Context) {
	user, ok := actor(c)
	if !ok {
		return
	}

	projectID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	project, err := h.projectService.Get(user, projectID)
	if err != nil {
		respondProjectError(c, err)
		return
	}

	type GanttPDFRequest struct {
		SVGData string `json:"svg_data" binding:"required"`
	}

	var req GanttPDFRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if !strings.Contains(req.SVGData, "<svg") {
		apierrors.BadRequest(c, "svg_data must contain an SVG document")
		return
	}

	document, err := h.renderer.RenderGanttChart(pdf.GanttChart{
		ProjectName: project.Name,
		SVG:         template.HTML(req.SVGData),
	})
	if err != nil {
		apierrors.InternalError(c, "Failed to generate PDF")
		return
	}

	writePDF(c, fmt.Sprintf("gantt_%d_%s.pdf", project.ID, project.Name), document)
}

func writePDF(c *gin.Context, filename string, document []byte) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", document)
}

func dateOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
