package services

import (
	"errors"
	"fmt"

	"github.com/fieldnote/fieldnote-api/internal/models"
	"github.com/fieldnote/fieldnote-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrMemoNotFound        = errors.New("memo not found")
	ErrMemoContentRequired = errors.New("memo content is required")
	ErrInvalidMention      = errors.New("one or more mentioned users are not members of the company")
)

// MemoService handles shared memo business logic.
type MemoService struct {
	memoRepo    repository.MemoRepository
	projectRepo repository.ProjectRepository
	userRepo    repository.UserRepository
}

// NewMemoService creates a new MemoService.
func NewMemoService(memoRepo repository.MemoRepository, projectRepo repository.ProjectRepository, userRepo repository.UserRepository) *MemoService {
	return &MemoService{
		memoRepo:    memoRepo,
		projectRepo: projectRepo,
		userRepo:    userRepo,
	}
}

// MemoInput carries the writable memo fields.
type MemoInput struct {
	Content    string
	MentionIDs []uint64
}

// Create creates a memo on one of the actor's projects, authored by the actor.
func (s *MemoService) Create(actor *models.User, projectID uint64, input MemoInput) (*models.Memo, error) {
	if _, err := s.projectRepo.FindByIDInCompany(projectID, actor.CompanyScopeID()); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}

	if input.Content == "" {
		return nil, ErrMemoContentRequired
	}

	mentions, err := s.resolveMentions(actor, input.MentionIDs)
	if err != nil {
		return nil, err
	}

	authorID := actor.ID
	memo := &models.Memo{
		ProjectID: projectID,
		AuthorID:  &authorID,
		Content:   input.Content,
	}

	if err := s.memoRepo.Create(memo, mentions); err != nil {
		return nil, fmt.Errorf("failed to create memo: %w", err)
	}

	return s.memoRepo.FindByIDInCompany(memo.ID, actor.CompanyScopeID())
}

// Update edits a memo of the actor's company, replacing its mention set.
func (s *MemoService) Update(actor *models.User, memoID uint64, input MemoInput) (*models.Memo, error) {
	memo, err := s.memoRepo.FindByIDInCompany(memoID, actor.CompanyScopeID())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemoNotFound
		}
		return nil, fmt.Errorf("failed to find memo: %w", err)
	}

	if input.Content == "" {
		return nil, ErrMemoContentRequired
	}

	mentions, err := s.resolveMentions(actor, input.MentionIDs)
	if err != nil {
		return nil, err
	}

	memo.Content = input.Content
	if err := s.memoRepo.Update(memo); err != nil {
		return nil, fmt.Errorf("failed to update memo: %w", err)
	}

	if err := s.memoRepo.ReplaceMentions(memo, mentions); err != nil {
		return nil, fmt.Errorf("failed to update mentions: %w", err)
	}

	return s.memoRepo.FindByIDInCompany(memo.ID, actor.CompanyScopeID())
}

// resolveMentions verifies that every mentioned user belongs to the actor's
// company and returns the user rows.
func (s *MemoService) resolveMentions(actor *models.User, mentionIDs []uint64) ([]models.User, error) {
	ids := uniqueUint64(mentionIDs)
	if len(ids) == 0 {
		return nil, nil
	}

	count, err := s.userRepo.CountInCompany(ids, actor.CompanyScopeID())
	if err != nil {
		return nil, fmt.Errorf("failed to verify mentions: %w", err)
	}
	if int(count) != len(ids) {
		return nil, ErrInvalidMention
	}

	mentions := make([]models.User, 0, len(ids))
	for _, id := range ids {
		user, err := s.userRepo.FindByIDInCompany(id, actor.CompanyScopeID())
		if err != nil {
			return nil, fmt.Errorf("failed to load mentioned user: %w", err)
		}
		mentions = append(mentions, *user)
	}

	return mentions, nil
}
