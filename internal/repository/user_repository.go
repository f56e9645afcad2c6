package repository

import (
	"errors"
	"fmt"

	"github.com/fieldnote/fieldnote-api/internal/models"
	"gorm.io/gorm"
)

var (
	// ErrCreateCompany is returned when creating the company fails inside the signup transaction.
	ErrCreateCompany = errors.New("user repository: create company failed")
	// ErrCreateUser is returned when creating the user fails inside a transaction.
	ErrCreateUser = errors.New("user repository: create user failed")
)

// GormUserRepository is a GORM implementation of UserRepository
type GormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

// Create creates a new user
func (r *GormUserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

// CreateCompanyWithOwner creates the company and its first staff user atomically.
func (r *GormUserRepository) CreateCompanyWithOwner(company *models.Company, owner *models.User) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(company).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrCreateCompany, err)
		}

		owner.CompanyID = &company.ID

		if err := tx.Create(owner).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrCreateUser, err)
		}

		return nil
	})
}

// FindByID finds a user by ID with the company preloaded
func (r *GormUserRepository) FindByID(id uint64) (*models.User, error) {
	var user models.User
	if err := r.db.Preload("Company").First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByUsername finds a user by username
func (r *GormUserRepository) FindByUsername(username string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByIDInCompany finds a user by ID scoped to a company
func (r *GormUserRepository) FindByIDInCompany(id, companyID uint64) (*models.User, error) {
	var user models.User
	if err := r.db.Where("id = ? AND company_id = ?", id, companyID).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// ListByCompany lists a company's users ordered by id
func (r *GormUserRepository) ListByCompany(companyID uint64) ([]models.User, error) {
	var users []models.User
	if err := r.db.Where("company_id = ?", companyID).Order("id").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// CountCompaniesByName counts companies with the given name
func (r *GormUserRepository) CountCompaniesByName(name string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Company{}).Where("name = ?", name).Count(&count).Error
	return count, err
}

// CountInCompany counts how many of the given user IDs belong to the company
func (r *GormUserRepository) CountInCompany(userIDs []uint64, companyID uint64) (int64, error) {
	if len(userIDs) == 0 {
		return 0, nil
	}
	var count int64
	err := r.db.Model(&models.User{}).
		Where("id IN ? AND company_id = ?", userIDs, companyID).
		Count(&count).Error
	return count, err
}

// Delete removes a user. Memos keep their content with the author nulled,
// and the user's mention rows are dropped.
func (r *GormUserRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Memo{}).Where("author_id = ?", id).
			Update("author_id", nil).Error; err != nil {
			return err
		}

		if err := tx.Exec("DELETE FROM memo_mentions WHERE user_id = ?", id).Error; err != nil {
			return err
		}

		return tx.Delete(&models.User{}, id).Error
	})
}
