package dto

import (
	"time"

	"github.com/fieldnote/fieldnote-api/internal/models"
	"github.com/fieldnote/fieldnote-api/internal/utils"
)

// ProjectDTO represents a project in API responses
type ProjectDTO struct {
	ID          uint64       `json:"id"`
	Name        string       `json:"name"`
	Status      string       `json:"status"`
	StartDate   *string      `json:"start_date"`
	EndDate     *string      `json:"end_date"`
	Description string       `json:"description"`
	CustomerID  *uint64      `json:"customer_id"`
	Customer    *CustomerDTO `json:"customer,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
}

// ProjectDetailDTO represents a project with its child records
type ProjectDetailDTO struct {
	ProjectDTO
	Tasks      []TaskDTO      `json:"tasks"`
	Memos      []MemoDTO      `json:"memos"`
	Checklists []ChecklistDTO `json:"checklists"`
}

// ToProjectDTO converts a Project model to ProjectDTO
func ToProjectDTO(project models.Project) ProjectDTO {
	dto := ProjectDTO{
		ID:          project.ID,
		Name:        project.Name,
		Status:      project.Status,
		StartDate:   utils.FormatDate(project.StartDate),
		EndDate:     utils.FormatDate(project.EndDate),
		Description: project.Description,
		CustomerID:  project.CustomerID,
		CreatedAt:   project.CreatedAt,
	}

	// Include customer if preloaded
	if project.Customer != nil {
		customer := ToCustomerDTO(*project.Customer)
		dto.Customer = &customer
	}

	return dto
}

// ToProjectDetailDTO converts a project and its children to a detail DTO
func ToProjectDetailDTO(project models.Project, tasks []models.Task, memos []models.Memo, checklists []models.Checklist) ProjectDetailDTO {
	taskDTOs := make([]TaskDTO, len(tasks))
	for i, t := range tasks {
		taskDTOs[i] = ToTaskDTO(t)
	}

	memoDTOs := make([]MemoDTO, len(memos))
	for i, m := range memos {
		memoDTOs[i] = ToMemoDTO(m)
	}

	checklistDTOs := make([]ChecklistDTO, len(checklists))
	for i, cl := range checklists {
		checklistDTOs[i] = ToChecklistDTO(cl)
	}

	return ProjectDetailDTO{
		ProjectDTO: ToProjectDTO(project),
		Tasks:      taskDTOs,
		Memos:      memoDTOs,
		Checklists: checklistDTOs,
	}
}
