package database

import (
	"gorm.io/gorm"

	"github.com/fieldnote/fieldnote-api/internal/utils"
)

// Paginate applies pagination to a GORM query
func Paginate(params utils.PaginationParams) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(params.Offset).Limit(params.Limit)
	}
}

// Tenant scopes. Every query on a project-owned row must go through one of
// these (or filter company_id directly); a primary-key lookup without the
// company predicate is a defect.

// TaskInCompany restricts tasks to those whose project belongs to the company.
func TaskInCompany(companyID uint64) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Joins("JOIN projects ON projects.id = tasks.project_id AND projects.deleted_at IS NULL").
			Where("projects.company_id = ?", companyID)
	}
}

// MemoInCompany restricts memos to those whose project belongs to the company.
func MemoInCompany(companyID uint64) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Joins("JOIN projects ON projects.id = memos.project_id AND projects.deleted_at IS NULL").
			Where("projects.company_id = ?", companyID)
	}
}

// ChecklistInCompany restricts checklists to those whose project belongs to the company.
func ChecklistInCompany(companyID uint64) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Joins("JOIN projects ON projects.id = checklists.project_id AND projects.deleted_at IS NULL").
			Where("projects.company_id = ?", companyID)
	}
}

// ChecklistItemInCompany restricts items via checklist -> project -> company.
func ChecklistItemInCompany(companyID uint64) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Joins("JOIN checklists ON checklists.id = checklist_items.checklist_id AND checklists.deleted_at IS NULL").
			Joins("JOIN projects ON projects.id = checklists.project_id AND projects.deleted_at IS NULL").
			Where("projects.company_id = ?", companyID)
	}
}
