package models

import (
	"time"

	"gorm.io/gorm"
)

// Task is a gantt bar. Dependencies is a directed, non-symmetric edge set:
// each entry is a prerequisite of this task within the same project. Edges
// carry no ordering or scheduling semantics here; cycle handling is the
// consumer's concern.
type Task struct {
	ID        uint64         `gorm:"primarykey" json:"id"`
	ProjectID uint64         `gorm:"not null;index" json:"project_id"`
	Name      string         `gorm:"type:varchar(255);not null" json:"name"`
	StartDate *time.Time     `gorm:"type:date" json:"start_date"`
	EndDate   *time.Time     `gorm:"type:date" json:"end_date"`
	Progress  uint           `gorm:"not null;default:0" json:"progress"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Project      Project `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	Dependencies []*Task `gorm:"many2many:task_dependencies;joinForeignKey:task_id;joinReferences:dependency_id" json:"dependencies,omitempty"`
}
