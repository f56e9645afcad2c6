package dto

import (
	"time"

	"github.com/fieldnote/fieldnote-api/internal/models"
)

// ChecklistDTO represents a checklist with its items in API responses
type ChecklistDTO struct {
	ID        uint64             `json:"id"`
	ProjectID uint64             `json:"project_id"`
	Title     string             `json:"title"`
	Items     []ChecklistItemDTO `json:"items"`
	CreatedAt time.Time          `json:"created_at"`
}

// ChecklistItemDTO represents a single checklist item
type ChecklistItemDTO struct {
	ID          uint64    `json:"id"`
	ChecklistID uint64    `json:"checklist_id"`
	Title       string    `json:"title"`
	IsDone      bool      `json:"is_done"`
	CreatedAt   time.Time `json:"created_at"`
}

// ToChecklistDTO converts a Checklist model to ChecklistDTO
func ToChecklistDTO(checklist models.Checklist) ChecklistDTO {
	items := make([]ChecklistItemDTO, len(checklist.Items))
	for i, item := range checklist.Items {
		items[i] = ToChecklistItemDTO(item)
	}

	return ChecklistDTO{
		ID:        checklist.ID,
		ProjectID: checklist.ProjectID,
		Title:     checklist.Title,
		Items:     items,
		CreatedAt: checklist.CreatedAt,
	}
}

// ToChecklistItemDTO converts a ChecklistItem model to ChecklistItemDTO
func ToChecklistItemDTO(item models.ChecklistItem) ChecklistItemDTO {
	return ChecklistItemDTO{
		ID:          item.ID,
		ChecklistID: item.ChecklistID,
		Title:       item.Title,
		IsDone:      item.IsDone,
		CreatedAt:   item.CreatedAt,
	}
}
