package services

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/fieldnote/fieldnote-api/internal/constants"
	"github.com/fieldnote/fieldnote-api/internal/mailer"
	"github.com/fieldnote/fieldnote-api/internal/models"
	"github.com/fieldnote/fieldnote-api/internal/repository"
	"github.com/fieldnote/fieldnote-api/internal/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrInvitationNotFound        = errors.New("invitation not found")
	ErrInvitationAlreadyAccepted = errors.New("invitation has already been accepted")
	ErrInvitationEmailRequired   = errors.New("email is required")
	ErrPasswordRequired          = errors.New("password is required")
	ErrFailedToAcceptInvitation  = errors.New("failed to accept invitation")
)

// InvitationService handles the invitation lifecycle: pending -> accepted,
// with hard delete of pending invitations as the only other exit.
type InvitationService struct {
	invitationRepo repository.InvitationRepository
	userRepo       repository.UserRepository
	mail           mailer.Mailer
	baseURL        string
}

// NewInvitationService creates a new InvitationService.
func NewInvitationService(invitationRepo repository.InvitationRepository, userRepo repository.UserRepository, mail mailer.Mailer, baseURL string) *InvitationService {
	return &InvitationService{
		invitationRepo: invitationRepo,
		userRepo:       userRepo,
		mail:           mail,
		baseURL:        strings.TrimRight(baseURL, "/"),
	}
}

// Create persists a pending invitation for the actor's company and dispatches
// the acceptance mail. Mail failure is logged and never rolls back the
// invitation.
func (s *InvitationService) Create(actor *models.User, email string) (*models.Invitation, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, ErrInvitationEmailRequired
	}

	invitation := &models.Invitation{
		Token:     utils.GenerateInvitationToken(),
		Email:     email,
		CompanyID: actor.CompanyScopeID(),
	}

	if err := s.invitationRepo.Create(invitation); err != nil {
		return nil, fmt.Errorf("failed to create invitation: %w", err)
	}

	companyName := ""
	if actor.Company != nil {
		companyName = actor.Company.Name
	}
	acceptURL := fmt.Sprintf("%s/invitation/accept/%s", s.baseURL, invitation.Token)
	if err := s.mail.SendInvitation(invitation.Email, companyName, acceptURL); err != nil {
		log.Printf("invitation mail to %s not delivered: %v", invitation.Email, err)
	}

	return invitation, nil
}

// Get returns the invitation for a token, company preloaded.
func (s *InvitationService) Get(token string) (*models.Invitation, error) {
	invitation, err := s.invitationRepo.FindByToken(token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvitationNotFound
		}
		return nil, fmt.Errorf("failed to find invitation: %w", err)
	}
	return invitation, nil
}

// AcceptInput carries the signup data for an invitation token.
type AcceptInput struct {
	Token    string
	Username string
	Password string
}

// Accept creates the invited user and marks the invitation accepted as one
// all-or-nothing unit. A second accept on the same token is rejected without
// creating anything. The username defaults to the email local part.
func (s *InvitationService) Accept(input AcceptInput) (*models.User, error) {
	invitation, err := s.Get(input.Token)
	if err != nil {
		return nil, err
	}

	if invitation.IsAccepted {
		return nil, ErrInvitationAlreadyAccepted
	}

	if input.Password == "" {
		return nil, ErrPasswordRequired
	}
	if len(input.Password) < constants.MinPasswordLength {
		return nil, ErrPasswordTooShort
	}

	username := strings.TrimSpace(input.Username)
	if username == "" {
		username = strings.SplitN(invitation.Email, "@", 2)[0]
	}

	if _, err := s.userRepo.FindByUsername(username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrFailedToHashPassword
	}

	companyID := invitation.CompanyID
	user := &models.User{
		Username:     username,
		Email:        invitation.Email,
		PasswordHash: string(hashedPassword),
		CompanyID:    &companyID,
	}

	if err := s.invitationRepo.AcceptWithUser(user, invitation.ID); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToAcceptInvitation, err)
	}

	return user, nil
}

// ListPending returns the company's pending invitations, newest first.
func (s *InvitationService) ListPending(companyID uint64) ([]models.Invitation, error) {
	invitations, err := s.invitationRepo.ListPendingByCompany(companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list invitations: %w", err)
	}
	return invitations, nil
}

// Delete removes an invitation of the actor's company. Only pending
// invitations may be deleted.
func (s *InvitationService) Delete(actor *models.User, invitationID uint64) error {
	invitation, err := s.invitationRepo.FindByIDInCompany(invitationID, actor.CompanyScopeID())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvitationNotFound
		}
		return fmt.Errorf("failed to find invitation: %w", err)
	}

	if invitation.IsAccepted {
		return ErrInvitationAlreadyAccepted
	}

	if err := s.invitationRepo.Delete(invitation.ID); err != nil {
		return fmt.Errorf("failed to delete invitation: %w", err)
	}

	return nil
}
