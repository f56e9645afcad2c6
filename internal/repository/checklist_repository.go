package repository

import (
	"github.com/fieldnote/fieldnote-api/internal/database"
	"github.com/fieldnote/fieldnote-api/internal/models"
	"gorm.io/gorm"
)

// GormChecklistRepository is a GORM implementation of ChecklistRepository
type GormChecklistRepository struct {
	db *gorm.DB
}

// NewChecklistRepository creates a new ChecklistRepository
func NewChecklistRepository(db *gorm.DB) ChecklistRepository {
	return &GormChecklistRepository{db: db}
}

func (r *GormChecklistRepository) Create(checklist *models.Checklist) error {
	return r.db.Create(checklist).Error
}

func (r *GormChecklistRepository) FindByIDInCompany(id, companyID uint64) (*models.Checklist, error) {
	var checklist models.Checklist
	if err := r.db.Scopes(database.ChecklistInCompany(companyID)).
		Where("checklists.id = ?", id).
		First(&checklist).Error; err != nil {
		return nil, err
	}
	return &checklist, nil
}

// ListByProject lists a project's checklists newest first, items in id order
func (r *GormChecklistRepository) ListByProject(projectID uint64) ([]models.Checklist, error) {
	var checklists []models.Checklist
	if err := r.db.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("checklist_items.id")
	}).
		Where("project_id = ?", projectID).
		Order("id DESC").
		Find(&checklists).Error; err != nil {
		return nil, err
	}
	return checklists, nil
}

func (r *GormChecklistRepository) Update(checklist *models.Checklist) error {
	return r.db.Omit("Items").Save(checklist).Error
}

func (r *GormChecklistRepository) CreateItem(item *models.ChecklistItem) error {
	return r.db.Create(item).Error
}

func (r *GormChecklistRepository) FindItemByIDInCompany(id, companyID uint64) (*models.ChecklistItem, error) {
	var item models.ChecklistItem
	if err := r.db.Scopes(database.ChecklistItemInCompany(companyID)).
		Where("checklist_items.id = ?", id).
		First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *GormChecklistRepository) UpdateItem(item *models.ChecklistItem) error {
	return r.db.Save(item).Error
}
