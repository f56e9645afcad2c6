package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/fieldnote/fieldnote-api/internal/models"
	"github.com/fieldnote/fieldnote-api/internal/repository"
	"github.com/fieldnote/fieldnote-api/internal/utils"
	"gorm.io/gorm"
)

var (
	ErrProjectNotFound     = errors.New("project not found")
	ErrProjectNameRequired = errors.New("project name is required")
	ErrCustomerNotFound    = errors.New("customer not found")
)

// ProjectService handles project business logic. Every operation is scoped to
// the acting user's company.
type ProjectService struct {
	projectRepo   repository.ProjectRepository
	customerRepo  repository.CustomerRepository
	taskRepo      repository.TaskRepository
	memoRepo      repository.MemoRepository
	checklistRepo repository.ChecklistRepository
}

// NewProjectService creates a new ProjectService.
func NewProjectService(
	projectRepo repository.ProjectRepository,
	customerRepo repository.CustomerRepository,
	taskRepo repository.TaskRepository,
	memoRepo repository.MemoRepository,
	checklistRepo repository.ChecklistRepository,
) *ProjectService {
	return &ProjectService{
		projectRepo:   projectRepo,
		customerRepo:  customerRepo,
		taskRepo:      taskRepo,
		memoRepo:      memoRepo,
		checklistRepo: checklistRepo,
	}
}

// ProjectInput carries the writable project fields.
type ProjectInput struct {
	Name        string
	Status      string
	StartDate   *time.Time
	EndDate     *time.Time
	Description string
	CustomerID  *uint64
}

// ProjectDetail is a project together with its child records.
type ProjectDetail struct {
	Project    *models.Project
	Tasks      []models.Task
	Memos      []models.Memo
	Checklists []models.Checklist
}

// List returns a page of the company's projects, newest first, with the
// total count.
func (s *ProjectService) List(actor *models.User, params utils.PaginationParams) ([]models.Project, int64, error) {
	projects, total, err := s.projectRepo.ListByCompany(actor.CompanyScopeID(), params)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, total, nil
}

// Get returns a project of the actor's company.
func (s *ProjectService) Get(actor *models.User, projectID uint64) (*models.Project, error) {
	project, err := s.projectRepo.FindByIDInCompany(projectID, actor.CompanyScopeID(), "Customer")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}
	return project, nil
}

// GetDetail returns a project with its memos, checklists and tasks.
func (s *ProjectService) GetDetail(actor *models.User, projectID uint64) (*ProjectDetail, error) {
	project, err := s.Get(actor, projectID)
	if err != nil {
		return nil, err
	}

	tasks, err := s.taskRepo.ListByProject(project.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	memos, err := s.memoRepo.ListByProject(project.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list memos: %w", err)
	}

	checklists, err := s.checklistRepo.ListByProject(project.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list checklists: %w", err)
	}

	return &ProjectDetail{
		Project:    project,
		Tasks:      tasks,
		Memos:      memos,
		Checklists: checklists,
	}, nil
}

// Create creates a project for the actor's company.
func (s *ProjectService) Create(actor *models.User, input ProjectInput) (*models.Project, error) {
	if input.Name == "" {
		return nil, ErrProjectNameRequired
	}

	if err := s.ensureCustomerInCompany(actor, input.CustomerID); err != nil {
		return nil, err
	}

	project := &models.Project{
		CompanyID:   actor.CompanyScopeID(),
		CustomerID:  input.CustomerID,
		Name:        input.Name,
		Status:      input.Status,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
		Description: input.Description,
	}

	if err := s.projectRepo.Create(project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	return s.Get(actor, project.ID)
}

// Update updates a project of the actor's company.
func (s *ProjectService) Update(actor *models.User, projectID uint64, input ProjectInput) (*models.Project, error) {
	project, err := s.Get(actor, projectID)
	if err != nil {
		return nil, err
	}

	if input.Name == "" {
		return nil, ErrProjectNameRequired
	}

	if err := s.ensureCustomerInCompany(actor, input.CustomerID); err != nil {
		return nil, err
	}

	project.Name = input.Name
	project.Status = input.Status
	project.StartDate = input.StartDate
	project.EndDate = input.EndDate
	project.Description = input.Description
	project.CustomerID = input.CustomerID
	project.Customer = nil

	if err := s.projectRepo.Update(project); err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	return s.Get(actor, project.ID)
}

// Delete removes a project of the actor's company together with its tasks,
// memos and checklists.
func (s *ProjectService) Delete(actor *models.User, projectID uint64) error {
	project, err := s.Get(actor, projectID)
	if err != nil {
		return err
	}

	if err := s.projectRepo.Delete(project.ID); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}

	return nil
}

func (s *ProjectService) ensureCustomerInCompany(actor *models.User, customerID *uint64) error {
	if customerID == nil {
		return nil
	}
	if _, err := s.customerRepo.FindByIDInCompany(*customerID, actor.CompanyScopeID()); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCustomerNotFound
		}
		return fmt.Errorf("failed to verify customer: %w", err)
	}
	return nil
}
