package dto

import (
	"time"

	"github.com/fieldnote/fieldnote-api/internal/models"
	"github.com/fieldnote/fieldnote-api/internal/utils"
)

// TaskDTO represents a task in API responses
type TaskDTO struct {
	ID            uint64    `json:"id"`
	ProjectID     uint64    `json:"project_id"`
	Name          string    `json:"name"`
	StartDate     *string   `json:"start_date"`
	EndDate       *string   `json:"end_date"`
	Progress      uint      `json:"progress"`
	DependencyIDs []uint64  `json:"dependency_ids"`
	CreatedAt     time.Time `json:"created_at"`
}

// GanttTaskDTO is the frappe-gantt compatible task representation.
// Field names and the comma-joined dependency list are part of the
// chart contract and must not change.
type GanttTaskDTO struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Start        *string `json:"start"`
	End          *string `json:"end"`
	Progress     int     `json:"progress"`
	Dependencies string  `json:"dependencies"`
}

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	depIDs := make([]uint64, len(task.Dependencies))
	for i, dep := range task.Dependencies {
		depIDs[i] = dep.ID
	}

	return TaskDTO{
		ID:            task.ID,
		ProjectID:     task.ProjectID,
		Name:          task.Name,
		StartDate:     utils.FormatDate(task.StartDate),
		EndDate:       utils.FormatDate(task.EndDate),
		Progress:      task.Progress,
		DependencyIDs: depIDs,
		CreatedAt:     task.CreatedAt,
	}
}
