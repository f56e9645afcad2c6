package pdf

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	wkhtmltopdf "github.com/SebastiaanKlippert/go-wkhtmltopdf"
)

//go:embed templates/*.html
var templateFS embed.FS

// TaskRow is one task line on the project summary document.
type TaskRow struct {
	Name     string
	Start    string
	End      string
	Progress uint
}

// ChecklistSection is one checklist block on the project summary document.
type ChecklistSection struct {
	Title string
	Items []ChecklistRow
}

type ChecklistRow struct {
	Title  string
	IsDone bool
}

// ProjectSummary is the data rendered into the project PDF.
type ProjectSummary struct {
	Name        string
	Status      string
	Customer    string
	Start       string
	End         string
	Description string
	Tasks       []TaskRow
	Checklists  []ChecklistSection
}

// GanttChart embeds a client-rendered vector payload into the gantt PDF.
type GanttChart struct {
	ProjectName string
	SVG         template.HTML
}

// Renderer converts HTML documents to PDF through wkhtmltopdf.
type Renderer struct {
	templates *template.Template
}

// NewRenderer parses the embedded templates. binPath overrides the
// wkhtmltopdf binary location when non-empty.
func NewRenderer(binPath string) (*Renderer, error) {
	if binPath != "" {
		wkhtmltopdf.SetPath(binPath)
	}

	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse pdf templates: %w", err)
	}

	return &Renderer{templates: tmpl}, nil
}

// RenderProjectSummary produces the project summary PDF.
func (r *Renderer) RenderProjectSummary(data ProjectSummary) ([]byte, error) {
	return r.render("project.html", data)
}

// RenderGanttChart produces the gantt chart PDF from an SVG payload.
func (r *Renderer) RenderGanttChart(data GanttChart) ([]byte, error) {
	return r.render("gantt.html", data)
}

func (r *Renderer) render(name string, data interface{}) ([]byte, error) {
	var html bytes.Buffer
	if err := r.templates.ExecuteTemplate(&html, name, data); err != nil {
		return nil, fmt.Errorf("failed to render %s: %w", name, err)
	}

	pdfg, err := wkhtmltopdf.NewPDFGenerator()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize pdf generator: %w", err)
	}

	pdfg.AddPage(wkhtmltopdf.NewPageReader(&html))

	if err := pdfg.Create(); err != nil {
		return nil, fmt.Errorf("failed to generate pdf: %w", err)
	}

	return pdfg.Bytes(), nil
}
