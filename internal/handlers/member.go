package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"github.com/fieldnote/fieldnote-api/internal/constants"
	"github.com/fieldnote/fieldnote-api/internal/dto"
	apierrors "github.com/fieldnote/fieldnote-api/internal/errors"
	"github.com/fieldnote/fieldnote-api/internal/services"
)

// MemberHandler coordinates member and invitation HTTP handlers.
type MemberHandler struct {
	memberService     *services.MemberService
	invitationService *services.InvitationService
}

// NewMemberHandler creates a new MemberHandler.
func NewMemberHandler(memberService *services.MemberService, invitationService *services.InvitationService) *MemberHandler {
	return &MemberHandler{
		memberService:     memberService,
		invitationService: invitationService,
	}
}

// List returns the company's members and pending invitations.
func (h *MemberHandler) List(c *gin.Context) {
	user, ok := actor(c)
	if !ok {
		return
	}

	members, err := h.memberService.List(user.CompanyScopeID())
	if err != nil {
		respondMemberError(c, err)
		return
	}

	invitations, err := h.invitationService.ListPending(user.CompanyScopeID())
	if err != nil {
		respondMemberError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToMembersDTO(members, invitations))
}

// Invite creates an invitation into the current user's company and sends
// the invitation mail.
func (h *MemberHandler) Invite(c *gin.Context) {
	user, ok := actor(c)
	if !ok {
		return
	}

	type InviteRequest struct {
		Email string `json:"email" binding:"required,email"`
	}

	var req InviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	invitation, err := h.invitationService.Create(user, req.Email)
	if err != nil {
		respondMemberError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToInvitationDTO(*invitation))
}

// Remove deletes a member of the current user's company. Removing yourself
// is rejected.
func (h *MemberHandler) Remove(c *gin.Context) {
	user, ok := actor(c)
	if !ok {
		return
	}

	memberID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.memberService.Remove(user, memberID); err != nil {
		respondMemberError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Member removed successfully",
	})
}

// ShowInvitation resolves an invitation token for the public accept page.
func (h *MemberHandler) ShowInvitation(c *gin.Context) {
	invitation, err := h.invitationService.Get(c.Param("token"))
	if err != nil {
		respondMemberError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"email":        invitation.Email,
		"company_name": invitation.Company.Name,
	})
}

// AcceptInvitation creates the invited user, marks the invitation accepted
// and logs the new user in. This endpoint is public; the token is the
// credential.
func (h *MemberHandler) AcceptInvitation(c *gin.Context) {
	type AcceptRequest struct {
		Username string `json:"username" binding:"max=150"`
		Password string `json:"password" binding:"required"`
	}

	var req AcceptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.invitationService.Accept(services.AcceptInput{
		Token:    c.Param("token"),
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		respondMemberError(c, err)
		return
	}

	session := sessions.Default(c)
	session.Set(constants.ContextKeyUserID, user.ID)
	if err := session.Save(); err != nil {
		apierrors.InternalError(c, "Failed to save session")
		return
	}

	c.JSON(http.StatusCreated, dto.ToUserDTO(*user))
}

// DeleteInvitation withdraws a pending invitation.
func (h *MemberHandler) DeleteInvitation(c *gin.Context) {
	user, ok := actor(c)
	if !ok {
		return
	}

	invitationID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.invitationService.Delete(user, invitationID); err != nil {
		respondMemberError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Invitation deleted successfully",
	})
}

func respondMemberError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrMemberNotFound):
		apierrors.NotFound(c, "Member not found")
	case errors.Is(err, services.ErrCannotRemoveSelf):
		apierrors.BadRequest(c, "You cannot remove your own account")
	case errors.Is(err, services.ErrInvitationNotFound):
		apierrors.NotFound(c, "Invitation not found")
	case errors.Is(err, services.ErrInvitationAlreadyAccepted):
		apierrors.Conflict(c, "Invitation has already been accepted")
	case errors.Is(err, services.ErrInvitationEmailRequired):
		apierrors.BadRequest(c, "Email is required")
	case errors.Is(err, services.ErrPasswordRequired):
		apierrors.BadRequest(c, "Password is required")
	case errors.Is(err, services.ErrPasswordTooShort):
		apierrors.BadRequest(c, "Password must be at least 8 characters")
	case errors.Is(err, services.ErrUsernameTaken):
		apierrors.Conflict(c, "Username already exists")
	default:
		apierrors.InternalError(c, "")
	}
}
