package repository

import (
	"github.com/fieldnote/fieldnote-api/internal/models"
	"gorm.io/gorm"
)

// GormCustomerRepository is a GORM implementation of CustomerRepository
type GormCustomerRepository struct {
	db *gorm.DB
}

// NewCustomerRepository creates a new CustomerRepository
func NewCustomerRepository(db *gorm.DB) CustomerRepository {
	return &GormCustomerRepository{db: db}
}

func (r *GormCustomerRepository) Create(customer *models.Customer) error {
	return r.db.Create(customer).Error
}

func (r *GormCustomerRepository) FindByIDInCompany(id, companyID uint64) (*models.Customer, error) {
	var customer models.Customer
	if err := r.db.Where("id = ? AND company_id = ?", id, companyID).First(&customer).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *GormCustomerRepository) ListByCompany(companyID uint64) ([]models.Customer, error) {
	var customers []models.Customer
	if err := r.db.Where("company_id = ?", companyID).Order("name").Find(&customers).Error; err != nil {
		return nil, err
	}
	return customers, nil
}

func (r *GormCustomerRepository) Update(customer *models.Customer) error {
	return r.db.Save(customer).Error
}

// Delete removes the customer and nulls the reference on its projects.
// The projects themselves must survive.
func (r *GormCustomerRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Project{}).Where("customer_id = ?", id).
			Update("customer_id", nil).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Customer{}, id).Error
	})
}

// CountByName counts customers with the given name inside a company,
// optionally excluding one record (for updates).
func (r *GormCustomerRepository) CountByName(companyID uint64, name string, excludeID uint64) (int64, error) {
	var count int64
	query := r.db.Model(&models.Customer{}).Where("company_id = ? AND name = ?", companyID, name)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	err := query.Count(&count).Error
	return count, err
}
