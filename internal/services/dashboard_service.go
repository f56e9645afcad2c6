package services

import (
	"fmt"
	"time"

	"github.com/fieldnote/fieldnote-api/internal/constants"
	"github.com/fieldnote/fieldnote-api/internal/models"
	"github.com/fieldnote/fieldnote-api/internal/repository"
)

// DashboardService computes the home screen aggregates. All three are
// independent point-in-time snapshots recomputed per request; nothing is
// cached or maintained incrementally.
type DashboardService struct {
	projectRepo repository.ProjectRepository
	taskRepo    repository.TaskRepository
	memoRepo    repository.MemoRepository
}

// NewDashboardService creates a new DashboardService.
func NewDashboardService(projectRepo repository.ProjectRepository, taskRepo repository.TaskRepository, memoRepo repository.MemoRepository) *DashboardService {
	return &DashboardService{
		projectRepo: projectRepo,
		taskRepo:    taskRepo,
		memoRepo:    memoRepo,
	}
}

// Summary holds the three dashboard aggregates.
type Summary struct {
	InProgressProjectCount int64
	OverdueTasks           []models.Task
	OverdueTaskCount       int
	RecentMemos            []models.Memo
}

// Compute builds the dashboard for a company. today is passed in explicitly
// so the date window is testable.
func (s *DashboardService) Compute(companyID uint64, today time.Time) (*Summary, error) {
	projectCount, err := s.projectRepo.CountByStatus(companyID, constants.ProjectStatusInProgress)
	if err != nil {
		return nil, fmt.Errorf("failed to count projects: %w", err)
	}

	dueLimit := today.AddDate(0, 0, constants.DueSoonWindowDays)
	overdueTasks, err := s.taskRepo.DueSoon(companyID, dueLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list due tasks: %w", err)
	}

	recentMemos, err := s.memoRepo.RecentByCompany(companyID, constants.RecentMemoLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent memos: %w", err)
	}

	return &Summary{
		InProgressProjectCount: projectCount,
		OverdueTasks:           overdueTasks,
		OverdueTaskCount:       len(overdueTasks),
		RecentMemos:            recentMemos,
	}, nil
}
