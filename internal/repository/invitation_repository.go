package repository

import (
	"fmt"

	"github.com/fieldnote/fieldnote-api/internal/models"
	"gorm.io/gorm"
)

// GormInvitationRepository is a GORM implementation of InvitationRepository
type GormInvitationRepository struct {
	db *gorm.DB
}

// NewInvitationRepository creates a new InvitationRepository
func NewInvitationRepository(db *gorm.DB) InvitationRepository {
	return &GormInvitationRepository{db: db}
}

// Create persists a new pending invitation
func (r *GormInvitationRepository) Create(invitation *models.Invitation) error {
	return r.db.Create(invitation).Error
}

// FindByToken finds an invitation by its token with the company preloaded
func (r *GormInvitationRepository) FindByToken(token string) (*models.Invitation, error) {
	var invitation models.Invitation
	if err := r.db.Preload("Company").Where("token = ?", token).First(&invitation).Error; err != nil {
		return nil, err
	}
	return &invitation, nil
}

// FindByIDInCompany finds an invitation by ID scoped to a company
func (r *GormInvitationRepository) FindByIDInCompany(id, companyID uint64) (*models.Invitation, error) {
	var invitation models.Invitation
	if err := r.db.Where("id = ? AND company_id = ?", id, companyID).First(&invitation).Error; err != nil {
		return nil, err
	}
	return &invitation, nil
}

// ListPendingByCompany lists a company's pending invitations, newest first
func (r *GormInvitationRepository) ListPendingByCompany(companyID uint64) ([]models.Invitation, error) {
	var invitations []models.Invitation
	if err := r.db.Where("company_id = ? AND is_accepted = ?", companyID, false).
		Order("id DESC").
		Find(&invitations).Error; err != nil {
		return nil, err
	}
	return invitations, nil
}

// AcceptWithUser creates the new user and marks the invitation accepted in one
// transaction. If user creation fails the invitation stays pending.
func (r *GormInvitationRepository) AcceptWithUser(user *models.User, invitationID uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrCreateUser, err)
		}

		return tx.Model(&models.Invitation{}).
			Where("id = ?", invitationID).
			Update("is_accepted", true).Error
	})
}

// Delete removes an invitation
func (r *GormInvitationRepository) Delete(id uint64) error {
	return r.db.Delete(&models.Invitation{}, id).Error
}
