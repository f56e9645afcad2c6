package dto

import (
	"time"

	"github.com/fieldnote/fieldnote-api/internal/models"
)

// InvitationDTO represents a pending invitation in API responses.
// The token itself is never exposed in list responses.
type InvitationDTO struct {
	ID        uint64    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// MembersDTO bundles current members with pending invitations
type MembersDTO struct {
	Members     []UserDTO       `json:"members"`
	Invitations []InvitationDTO `json:"invitations"`
}

// ToInvitationDTO converts an Invitation model to InvitationDTO
func ToInvitationDTO(invitation models.Invitation) InvitationDTO {
	return InvitationDTO{
		ID:        invitation.ID,
		Email:     invitation.Email,
		CreatedAt: invitation.CreatedAt,
	}
}

// ToMembersDTO converts members and pending invitations to MembersDTO
func ToMembersDTO(members []models.User, invitations []models.Invitation) MembersDTO {
	memberDTOs := make([]UserDTO, len(members))
	for i, m := range members {
		memberDTOs[i] = ToUserDTO(m)
	}

	invitationDTOs := make([]InvitationDTO, len(invitations))
	for i, inv := range invitations {
		invitationDTOs[i] = ToInvitationDTO(inv)
	}

	return MembersDTO{
		Members:     memberDTOs,
		Invitations: invitationDTOs,
	}
}
