package dto

import (
	"github.com/fieldnote/fieldnote-api/internal/models"
	"github.com/fieldnote/fieldnote-api/internal/utils"
)

// DashboardTaskDTO is a due-soon task row with its project name attached
type DashboardTaskDTO struct {
	ID          uint64  `json:"id"`
	Name        string  `json:"name"`
	ProjectID   uint64  `json:"project_id"`
	ProjectName string  `json:"project_name"`
	EndDate     *string `json:"end_date"`
	Progress    uint    `json:"progress"`
}

// DashboardDTO is the landing page summary
type DashboardDTO struct {
	InProgressProjectCount int64              `json:"in_progress_project_count"`
	DueSoonTaskCount       int                `json:"due_soon_task_count"`
	DueSoonTasks           []DashboardTaskDTO `json:"due_soon_tasks"`
	RecentMemos            []MemoDTO          `json:"recent_memos"`
}

// ToDashboardDTO converts a dashboard computation to its response form
func ToDashboardDTO(projectCount int64, tasks []models.Task, memos []models.Memo) DashboardDTO {
	taskDTOs := make([]DashboardTaskDTO, len(tasks))
	for i, t := range tasks {
		taskDTOs[i] = DashboardTaskDTO{
			ID:          t.ID,
			Name:        t.Name,
			ProjectID:   t.ProjectID,
			ProjectName: t.Project.Name,
			EndDate:     utils.FormatDate(t.EndDate),
			Progress:    t.Progress,
		}
	}

	memoDTOs := make([]MemoDTO, len(memos))
	for i, m := range memos {
		memoDTOs[i] = ToMemoDTO(m)
	}

	return DashboardDTO{
		InProgressProjectCount: projectCount,
		DueSoonTaskCount:       len(taskDTOs),
		DueSoonTasks:           taskDTOs,
		RecentMemos:            memoDTOs,
	}
}
