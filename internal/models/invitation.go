package models

import (
	"time"

	"gorm.io/gorm"
)

// Invitation grants signup rights into a specific company. The token is an
// opaque, globally unique, single-use identifier. The only state transition
// is pending -> accepted; accepted invitations are immutable.
type Invitation struct {
	ID         uint64         `gorm:"primarykey" json:"id"`
	Token      string         `gorm:"type:varchar(36);uniqueIndex;not null" json:"-"`
	Email      string         `gorm:"type:varchar(255);not null" json:"email"`
	CompanyID  uint64         `gorm:"not null;index" json:"company_id"`
	IsAccepted bool           `gorm:"not null;default:false" json:"is_accepted"`
	CreatedAt  time.Time      `json:"created_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Company Company `gorm:"foreignKey:CompanyID" json:"company,omitempty"`
}
