package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID           uint64         `gorm:"primarykey" json:"id"`
	Username     string         `gorm:"type:varchar(150);uniqueIndex;not null" json:"username"`
	Email        string         `gorm:"type:varchar(255);not null" json:"email"`
	PasswordHash string         `gorm:"type:varchar(255);not null" json:"-"`
	IsStaff      bool           `gorm:"not null;default:false" json:"is_staff"`
	IsSuperuser  bool           `gorm:"not null;default:false" json:"is_superuser"`
	CompanyID    *uint64        `gorm:"index" json:"company_id"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Company *Company `gorm:"foreignKey:CompanyID" json:"company,omitempty"`
	Memos   []Memo   `gorm:"foreignKey:AuthorID" json:"-"`
}

// CompanyScopeID returns the company used to scope this user's queries.
// A user without a company gets scope 0, which matches no rows.
func (u *User) CompanyScopeID() uint64 {
	if u == nil || u.CompanyID == nil {
		return 0
	}
	return *u.CompanyID
}
