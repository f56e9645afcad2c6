package models

import (
	"time"

	"gorm.io/gorm"
)

// Memo is a shared note on a project. Author is nulled when the authoring
// user is deleted; mentions reference users of the same company.
type Memo struct {
	ID        uint64         `gorm:"primarykey" json:"id"`
	ProjectID uint64         `gorm:"not null;index" json:"project_id"`
	AuthorID  *uint64        `gorm:"index" json:"author_id"`
	Content   string         `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Project  Project `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	Author   *User   `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Mentions []User  `gorm:"many2many:memo_mentions" json:"mentions,omitempty"`
}
