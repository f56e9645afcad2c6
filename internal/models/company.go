package models

import (
	"time"

	"gorm.io/gorm"
)

// Company is the unit of data isolation. Every tenant-scoped query filters
// by the acting user's company.
type Company struct {
	ID        uint64         `gorm:"primarykey" json:"id"`
	Name      string         `gorm:"type:varchar(255);uniqueIndex;not null" json:"name"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Users       []User       `gorm:"foreignKey:CompanyID" json:"users,omitempty"`
	Customers   []Customer   `gorm:"foreignKey:CompanyID" json:"customers,omitempty"`
	Projects    []Project    `gorm:"foreignKey:CompanyID" json:"projects,omitempty"`
	Invitations []Invitation `gorm:"foreignKey:CompanyID" json:"invitations,omitempty"`
}
