package models

import (
	"time"

	"gorm.io/gorm"
)

type Checklist struct {
	ID        uint64         `gorm:"primarykey" json:"id"`
	ProjectID uint64         `gorm:"not null;index" json:"project_id"`
	Title     string         `gorm:"type:varchar(255)" json:"title"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Project Project         `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	Items   []ChecklistItem `gorm:"foreignKey:ChecklistID" json:"items,omitempty"`
}

type ChecklistItem struct {
	ID          uint64         `gorm:"primarykey" json:"id"`
	ChecklistID uint64         `gorm:"not null;index" json:"checklist_id"`
	Title       string         `gorm:"type:varchar(255)" json:"title"`
	IsDone      bool           `gorm:"not null;default:false" json:"is_done"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Checklist Checklist `gorm:"foreignKey:ChecklistID" json:"checklist,omitempty"`
}
