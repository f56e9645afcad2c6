package repository

import (
	"github.com/fieldnote/fieldnote-api/internal/database"
	"github.com/fieldnote/fieldnote-api/internal/models"
	"gorm.io/gorm"
)

// GormMemoRepository is a GORM implementation of MemoRepository
type GormMemoRepository struct {
	db *gorm.DB
}

// NewMemoRepository creates a new MemoRepository
func NewMemoRepository(db *gorm.DB) MemoRepository {
	return &GormMemoRepository{db: db}
}

// Create creates a memo together with its mention rows
func (r *GormMemoRepository) Create(memo *models.Memo, mentions []models.User) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(memo).Error; err != nil {
			return err
		}

		if len(mentions) > 0 {
			if err := tx.Model(memo).Association("Mentions").Append(mentions); err != nil {
				return err
			}
		}

		return nil
	})
}

// FindByIDInCompany finds a memo by ID scoped to a company
func (r *GormMemoRepository) FindByIDInCompany(id, companyID uint64) (*models.Memo, error) {
	var memo models.Memo
	if err := r.db.Preload("Author").Preload("Mentions").
		Scopes(database.MemoInCompany(companyID)).
		Where("memos.id = ?", id).
		First(&memo).Error; err != nil {
		return nil, err
	}
	return &memo, nil
}

// ListByProject lists a project's memos newest first with author and mentions
func (r *GormMemoRepository) ListByProject(projectID uint64) ([]models.Memo, error) {
	var memos []models.Memo
	if err := r.db.Preload("Author").Preload("Mentions").
		Where("project_id = ?", projectID).
		Order("id DESC").
		Find(&memos).Error; err != nil {
		return nil, err
	}
	return memos, nil
}

func (r *GormMemoRepository) Update(memo *models.Memo) error {
	return r.db.Omit("Mentions", "Author").Save(memo).Error
}

// ReplaceMentions replaces the memo's mention set
func (r *GormMemoRepository) ReplaceMentions(memo *models.Memo, mentions []models.User) error {
	return r.db.Model(memo).Association("Mentions").Replace(mentions)
}

// RecentByCompany lists the company's most recent memos, newest first
func (r *GormMemoRepository) RecentByCompany(companyID uint64, limit int) ([]models.Memo, error) {
	var memos []models.Memo
	if err := r.db.Preload("Author").Preload("Project").
		Scopes(database.MemoInCompany(companyID)).
		Order("memos.id DESC").
		Limit(limit).
		Find(&memos).Error; err != nil {
		return nil, err
	}
	return memos, nil
}
