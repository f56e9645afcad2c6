package utils

import "github.com/google/uuid"

// GenerateInvitationToken generates an opaque, globally unique invitation token.
func GenerateInvitationToken() string {
	return uuid.NewString()
}
