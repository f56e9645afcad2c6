package repository

import (
	"github.com/fieldnote/fieldnote-api/internal/database"
	"github.com/fieldnote/fieldnote-api/internal/models"
	"github.com/fieldnote/fieldnote-api/internal/utils"
	"gorm.io/gorm"
)

// GormProjectRepository is a GORM implementation of ProjectRepository
type GormProjectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &GormProjectRepository{db: db}
}

func (r *GormProjectRepository) Create(project *models.Project) error {
	return r.db.Create(project).Error
}

// FindByIDInCompany finds a project by ID scoped to a company with optional preloading
func (r *GormProjectRepository) FindByIDInCompany(id, companyID uint64, preload ...string) (*models.Project, error) {
	var project models.Project
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.Where("id = ? AND company_id = ?", id, companyID).First(&project).Error; err != nil {
		return nil, err
	}

	return &project, nil
}

// ListByCompany lists a page of the company's projects, newest first
func (r *GormProjectRepository) ListByCompany(companyID uint64, params utils.PaginationParams) ([]models.Project, int64, error) {
	var total int64
	if err := r.db.Model(&models.Project{}).
		Where("company_id = ?", companyID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var projects []models.Project
	if err := r.db.Preload("Customer").
		Where("company_id = ?", companyID).
		Order("id DESC").
		Scopes(database.Paginate(params)).
		Find(&projects).Error; err != nil {
		return nil, 0, err
	}
	return projects, total, nil
}

func (r *GormProjectRepository) Update(project *models.Project) error {
	return r.db.Save(project).Error
}

// Delete removes a project and all of its child records in one transaction.
func (r *GormProjectRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var taskIDs []uint64
		if err := tx.Model(&models.Task{}).Where("project_id = ?", id).
			Pluck("id", &taskIDs).Error; err != nil {
			return err
		}
		if len(taskIDs) > 0 {
			if err := tx.Exec("DELETE FROM task_dependencies WHERE task_id IN ? OR dependency_id IN ?",
				taskIDs, taskIDs).Error; err != nil {
				return err
			}
			if err := tx.Where("project_id = ?", id).Delete(&models.Task{}).Error; err != nil {
				return err
			}
		}

		var memoIDs []uint64
		if err := tx.Model(&models.Memo{}).Where("project_id = ?", id).
			Pluck("id", &memoIDs).Error; err != nil {
			return err
		}
		if len(memoIDs) > 0 {
			if err := tx.Exec("DELETE FROM memo_mentions WHERE memo_id IN ?", memoIDs).Error; err != nil {
				return err
			}
			if err := tx.Where("project_id = ?", id).Delete(&models.Memo{}).Error; err != nil {
				return err
			}
		}

		var checklistIDs []uint64
		if err := tx.Model(&models.Checklist{}).Where("project_id = ?", id).
			Pluck("id", &checklistIDs).Error; err != nil {
			return err
		}
		if len(checklistIDs) > 0 {
			if err := tx.Where("checklist_id IN ?", checklistIDs).
				Delete(&models.ChecklistItem{}).Error; err != nil {
				return err
			}
			if err := tx.Where("project_id = ?", id).Delete(&models.Checklist{}).Error; err != nil {
				return err
			}
		}

		return tx.Delete(&models.Project{}, id).Error
	})
}

// CountByStatus counts a company's projects with the exact status value
func (r *GormProjectRepository) CountByStatus(companyID uint64, status string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Project{}).
		Where("company_id = ? AND status = ?", companyID, status).
		Count(&count).Error
	return count, err
}
