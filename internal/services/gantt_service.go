package services

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/fieldnote/fieldnote-api/internal/constants"
	"github.com/fieldnote/fieldnote-api/internal/dto"
	"github.com/fieldnote/fieldnote-api/internal/models"
	"github.com/fieldnote/fieldnote-api/internal/repository"
)

// GanttService exports a project's tasks in the shape the charting consumer
// expects. Field names and the comma-joined dependency list are a fixed
// external contract.
type GanttService struct {
	taskRepo repository.TaskRepository
}

// NewGanttService creates a new GanttService.
func NewGanttService(taskRepo repository.TaskRepository) *GanttService {
	return &GanttService{
		taskRepo: taskRepo,
	}
}

// ExportTasks returns the project's tasks ordered by (start date, end date,
// id), one summary per task.
func (s *GanttService) ExportTasks(projectID uint64) ([]dto.GanttTaskDTO, error) {
	tasks, err := s.taskRepo.ListByProject(projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to export tasks: %w", err)
	}

	out := make([]dto.GanttTaskDTO, len(tasks))
	for i, t := range tasks {
		out[i] = toGanttTaskDTO(t)
	}
	return out, nil
}

func toGanttTaskDTO(task models.Task) dto.GanttTaskDTO {
	depIDs := make([]uint64, 0, len(task.Dependencies))
	for _, d := range task.Dependencies {
		depIDs = append(depIDs, d.ID)
	}
	sort.Slice(depIDs, func(i, j int) bool { return depIDs[i] < depIDs[j] })

	deps := make([]string, len(depIDs))
	for i, id := range depIDs {
		deps[i] = strconv.FormatUint(id, 10)
	}

	progress := task.Progress
	if progress > constants.MaxProgress {
		progress = constants.MaxProgress
	}

	d := dto.GanttTaskDTO{
		ID:           strconv.FormatUint(task.ID, 10),
		Name:         task.Name,
		Progress:     int(progress),
		Dependencies: strings.Join(deps, ","),
	}
	if task.StartDate != nil {
		s := task.StartDate.Format(constants.DateFormat)
		d.Start = &s
	}
	if task.EndDate != nil {
		e := task.EndDate.Format(constants.DateFormat)
		d.End = &e
	}
	return d
}
