package services

import (
	"errors"
	"fmt"

	"github.com/fieldnote/fieldnote-api/internal/models"
	"github.com/fieldnote/fieldnote-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrChecklistNotFound     = errors.New("checklist not found")
	ErrChecklistItemNotFound = errors.New("checklist item not found")
)

// ChecklistService handles checklist and checklist item business logic.
type ChecklistService struct {
	checklistRepo repository.ChecklistRepository
	projectRepo   repository.ProjectRepository
}

// NewChecklistService creates a new ChecklistService.
func NewChecklistService(checklistRepo repository.ChecklistRepository, projectRepo repository.ProjectRepository) *ChecklistService {
	return &ChecklistService{
		checklistRepo: checklistRepo,
		projectRepo:   projectRepo,
	}
}

// Create creates a checklist on one of the actor's projects.
func (s *ChecklistService) Create(actor *models.User, projectID uint64, title string) (*models.Checklist, error) {
	if _, err := s.projectRepo.FindByIDInCompany(projectID, actor.CompanyScopeID()); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}

	checklist := &models.Checklist{
		ProjectID: projectID,
		Title:     title,
	}

	if err := s.checklistRepo.Create(checklist); err != nil {
		return nil, fmt.Errorf("failed to create checklist: %w", err)
	}

	return checklist, nil
}

// Update retitles a checklist of the actor's company.
func (s *ChecklistService) Update(actor *models.User, checklistID uint64, title string) (*models.Checklist, error) {
	checklist, err := s.getChecklist(actor, checklistID)
	if err != nil {
		return nil, err
	}

	checklist.Title = title
	if err := s.checklistRepo.Update(checklist); err != nil {
		return nil, fmt.Errorf("failed to update checklist: %w", err)
	}

	return checklist, nil
}

// CreateItem appends an item to a checklist of the actor's company.
func (s *ChecklistService) CreateItem(actor *models.User, checklistID uint64, title string) (*models.ChecklistItem, error) {
	checklist, err := s.getChecklist(actor, checklistID)
	if err != nil {
		return nil, err
	}

	item := &models.ChecklistItem{
		ChecklistID: checklist.ID,
		Title:       title,
	}

	if err := s.checklistRepo.CreateItem(item); err != nil {
		return nil, fmt.Errorf("failed to create checklist item: %w", err)
	}

	return item, nil
}

// UpdateItem retitles a checklist item of the actor's company.
func (s *ChecklistService) UpdateItem(actor *models.User, itemID uint64, title string) (*models.ChecklistItem, error) {
	item, err := s.getItem(actor, itemID)
	if err != nil {
		return nil, err
	}

	item.Title = title
	if err := s.checklistRepo.UpdateItem(item); err != nil {
		return nil, fmt.Errorf("failed to update checklist item: %w", err)
	}

	return item, nil
}

// ToggleItem flips an item's done state.
func (s *ChecklistService) ToggleItem(actor *models.User, itemID uint64) (*models.ChecklistItem, error) {
	item, err := s.getItem(actor, itemID)
	if err != nil {
		return nil, err
	}

	item.IsDone = !item.IsDone
	if err := s.checklistRepo.UpdateItem(item); err != nil {
		return nil, fmt.Errorf("failed to toggle checklist item: %w", err)
	}

	return item, nil
}

func (s *ChecklistService) getChecklist(actor *models.User, checklistID uint64) (*models.Checklist, error) {
	checklist, err := s.checklistRepo.FindByIDInCompany(checklistID, actor.CompanyScopeID())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrChecklistNotFound
		}
		return nil, fmt.Errorf("failed to find checklist: %w", err)
	}
	return checklist, nil
}

func (s *ChecklistService) getItem(actor *models.User, itemID uint64) (*models.ChecklistItem, error) {
	item, err := s.checklistRepo.FindItemByIDInCompany(itemID, actor.CompanyScopeID())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrChecklistItemNotFound
		}
		return nil, fmt.Errorf("failed to find checklist item: %w", err)
	}
	return item, nil
}
