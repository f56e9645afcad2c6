package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/fieldnote/fieldnote-api/internal/constants"
	"github.com/fieldnote/fieldnote-api/internal/models"
	"github.com/fieldnote/fieldnote-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrTaskNotFound       = errors.New("task not found")
	ErrTaskNameRequired   = errors.New("task name is required")
	ErrProgressOutOfRange = errors.New("progress must be between 0 and 100")
	ErrSelfDependency     = errors.New("a task cannot depend on itself")
	ErrInvalidDependency  = errors.New("dependencies must be tasks of the same project")
)

// TaskService handles task business logic, including the dependency edge
// rules: a task may depend only on sibling tasks of the same project, never
// on itself. Cycles are not detected; consumers of the exported task list
// own that concern.
type TaskService struct {
	taskRepo    repository.TaskRepository
	projectRepo repository.ProjectRepository
}

// NewTaskService creates a new TaskService.
func NewTaskService(taskRepo repository.TaskRepository, projectRepo repository.ProjectRepository) *TaskService {
	return &TaskService{
		taskRepo:    taskRepo,
		projectRepo: projectRepo,
	}
}

// TaskInput carries the writable task fields.
type TaskInput struct {
	Name          string
	StartDate     *time.Time
	EndDate       *time.Time
	Progress      uint
	DependencyIDs []uint64
}

// Get returns a task of the actor's company with dependencies preloaded.
func (s *TaskService) Get(actor *models.User, taskID uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByIDInCompany(taskID, actor.CompanyScopeID())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return task, nil
}

// Create creates a task under one of the actor's projects.
func (s *TaskService) Create(actor *models.User, projectID uint64, input TaskInput) (*models.Task, error) {
	project, err := s.projectRepo.FindByIDInCompany(projectID, actor.CompanyScopeID())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}

	if err := validateTaskInput(input); err != nil {
		return nil, err
	}

	dependencies, err := s.resolveDependencies(project.ID, 0, input.DependencyIDs)
	if err != nil {
		return nil, err
	}

	task := &models.Task{
		ProjectID: project.ID,
		Name:      input.Name,
		StartDate: input.StartDate,
		EndDate:   input.EndDate,
		Progress:  input.Progress,
	}

	if err := s.taskRepo.Create(task, dependencies); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return s.Get(actor, task.ID)
}

// Update updates a task of the actor's company, replacing its dependency set.
func (s *TaskService) Update(actor *models.User, taskID uint64, input TaskInput) (*models.Task, error) {
	task, err := s.Get(actor, taskID)
	if err != nil {
		return nil, err
	}

	if err := validateTaskInput(input); err != nil {
		return nil, err
	}

	dependencies, err := s.resolveDependencies(task.ProjectID, task.ID, input.DependencyIDs)
	if err != nil {
		return nil, err
	}

	task.Name = input.Name
	task.StartDate = input.StartDate
	task.EndDate = input.EndDate
	task.Progress = input.Progress

	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	if err := s.taskRepo.ReplaceDependencies(task, dependencies); err != nil {
		return nil, fmt.Errorf("failed to update dependencies: %w", err)
	}

	return s.Get(actor, task.ID)
}

// Delete removes a task of the actor's company. Edge rows referencing the
// task from either side are dropped; dependent tasks stay as they are.
func (s *TaskService) Delete(actor *models.User, taskID uint64) (projectID uint64, err error) {
	task, err := s.Get(actor, taskID)
	if err != nil {
		return 0, err
	}

	if err := s.taskRepo.Delete(task.ID); err != nil {
		return 0, fmt.Errorf("failed to delete task: %w", err)
	}

	return task.ProjectID, nil
}

// DependencyCandidates returns the exact set of tasks a task may depend on:
// the other tasks of the same project, self excluded.
func (s *TaskService) DependencyCandidates(actor *models.User, projectID, excludeTaskID uint64) ([]models.Task, error) {
	if _, err := s.projectRepo.FindByIDInCompany(projectID, actor.CompanyScopeID()); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}

	tasks, err := s.taskRepo.ListSiblings(projectID, excludeTaskID)
	if err != nil {
		return nil, fmt.Errorf("failed to list dependency candidates: %w", err)
	}
	return tasks, nil
}

// resolveDependencies loads the requested dependency tasks and enforces the
// edge rules. taskID is 0 on create.
func (s *TaskService) resolveDependencies(projectID, taskID uint64, dependencyIDs []uint64) ([]*models.Task, error) {
	ids := uniqueUint64(dependencyIDs)
	if len(ids) == 0 {
		return nil, nil
	}

	for _, id := range ids {
		if taskID != 0 && id == taskID {
			return nil, ErrSelfDependency
		}
	}

	dependencies, err := s.taskRepo.FindInProject(ids, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to verify dependencies: %w", err)
	}
	if len(dependencies) != len(ids) {
		return nil, ErrInvalidDependency
	}

	return dependencies, nil
}

func validateTaskInput(input TaskInput) error {
	if input.Name == "" {
		return ErrTaskNameRequired
	}
	if input.Progress > constants.MaxProgress {
		return ErrProgressOutOfRange
	}
	return nil
}

// uniqueUint64 removes duplicate values from a slice of uint64
func uniqueUint64(values []uint64) []uint64 {
	seen := make(map[uint64]struct{}, len(values))
	result := make([]uint64, 0, len(values))

	for _, v := range values {
		if _, exists := seen[v]; exists {
			continue
		}
		seen[v] = struct{}{}
		result = append(result, v)
	}

	return result
}
