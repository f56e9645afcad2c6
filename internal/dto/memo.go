package dto

import (
	"time"

	"github.com/fieldnote/fieldnote-api/internal/models"
)

// MemoDTO represents a memo in API responses
type MemoDTO struct {
	ID        uint64    `json:"id"`
	ProjectID uint64    `json:"project_id"`
	Content   string    `json:"content"`
	Author    *UserDTO  `json:"author"`
	Mentions  []UserDTO `json:"mentions"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToMemoDTO converts a Memo model to MemoDTO
func ToMemoDTO(memo models.Memo) MemoDTO {
	mentions := make([]UserDTO, len(memo.Mentions))
	for i, u := range memo.Mentions {
		mentions[i] = ToUserDTO(u)
	}

	dto := MemoDTO{
		ID:        memo.ID,
		ProjectID: memo.ProjectID,
		Content:   memo.Content,
		Mentions:  mentions,
		CreatedAt: memo.CreatedAt,
		UpdatedAt: memo.UpdatedAt,
	}

	// Author stays nil when the authoring user was deleted
	if memo.Author != nil {
		author := ToUserDTO(*memo.Author)
		dto.Author = &author
	}

	return dto
}
