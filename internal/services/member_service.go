package services

import (
	"errors"
	"fmt"

	"github.com/fieldnote/fieldnote-api/internal/models"
	"github.com/fieldnote/fieldnote-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrMemberNotFound   = errors.New("member not found")
	ErrCannotRemoveSelf = errors.New("you cannot remove your own account")
)

// MemberService handles company member management.
type MemberService struct {
	userRepo repository.UserRepository
}

// NewMemberService creates a new MemberService.
func NewMemberService(userRepo repository.UserRepository) *MemberService {
	return &MemberService{
		userRepo: userRepo,
	}
}

// List returns the actor's company members ordered by id.
func (s *MemberService) List(companyID uint64) ([]models.User, error) {
	users, err := s.userRepo.ListByCompany(companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	return users, nil
}

// Remove deletes a member of the actor's company. Actors cannot remove
// themselves.
func (s *MemberService) Remove(actor *models.User, memberID uint64) error {
	member, err := s.userRepo.FindByIDInCompany(memberID, actor.CompanyScopeID())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMemberNotFound
		}
		return fmt.Errorf("failed to find member: %w", err)
	}

	if member.ID == actor.ID {
		return ErrCannotRemoveSelf
	}

	if err := s.userRepo.Delete(member.ID); err != nil {
		return fmt.Errorf("failed to remove member: %w", err)
	}

	return nil
}
