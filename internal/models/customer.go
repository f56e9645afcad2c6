package models

import (
	"time"

	"gorm.io/gorm"
)

// Customer names are unique per company, not globally.
type Customer struct {
	ID        uint64         `gorm:"primarykey" json:"id"`
	CompanyID uint64         `gorm:"not null;uniqueIndex:idx_customers_company_name" json:"company_id"`
	Name      string         `gorm:"type:varchar(255);not null;uniqueIndex:idx_customers_company_name" json:"name"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Company  Company   `gorm:"foreignKey:CompanyID" json:"company,omitempty"`
	Projects []Project `gorm:"foreignKey:CustomerID" json:"projects,omitempty"`
}
