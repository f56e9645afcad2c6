package models

import (
	"time"

	"gorm.io/gorm"
)

type Project struct {
	ID          uint64         `gorm:"primarykey" json:"id"`
	CompanyID   uint64         `gorm:"not null;index" json:"company_id"`
	CustomerID  *uint64        `gorm:"index" json:"customer_id"`
	Name        string         `gorm:"type:varchar(255);not null" json:"name"`
	Status      string         `gorm:"type:varchar(50)" json:"status"`
	StartDate   *time.Time     `gorm:"type:date" json:"start_date"`
	EndDate     *time.Time     `gorm:"type:date" json:"end_date"`
	Description string         `gorm:"type:text" json:"description"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations. Customer is optional and survives customer deletion (nulled).
	Company    Company     `gorm:"foreignKey:CompanyID" json:"company,omitempty"`
	Customer   *Customer   `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Tasks      []Task      `gorm:"foreignKey:ProjectID" json:"tasks,omitempty"`
	Memos      []Memo      `gorm:"foreignKey:ProjectID" json:"memos,omitempty"`
	Checklists []Checklist `gorm:"foreignKey:ProjectID" json:"checklists,omitempty"`
}
