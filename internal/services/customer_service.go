package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fieldnote/fieldnote-api/internal/models"
	"github.com/fieldnote/fieldnote-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrCustomerNameRequired = errors.New("customer name is required")
	ErrCustomerNameTaken    = errors.New("a customer with this name already exists")
)

// CustomerService handles customer business logic.
type CustomerService struct {
	customerRepo repository.CustomerRepository
}

// NewCustomerService creates a new CustomerService.
func NewCustomerService(customerRepo repository.CustomerRepository) *CustomerService {
	return &CustomerService{
		customerRepo: customerRepo,
	}
}

// List returns the company's customers ordered by name.
func (s *CustomerService) List(actor *models.User) ([]models.Customer, error) {
	customers, err := s.customerRepo.ListByCompany(actor.CompanyScopeID())
	if err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	return customers, nil
}

// Get returns a customer of the actor's company.
func (s *CustomerService) Get(actor *models.User, customerID uint64) (*models.Customer, error) {
	customer, err := s.customerRepo.FindByIDInCompany(customerID, actor.CompanyScopeID())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, fmt.Errorf("failed to find customer: %w", err)
	}
	return customer, nil
}

// Create creates a customer. Names are unique per company.
func (s *CustomerService) Create(actor *models.User, name string) (*models.Customer, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrCustomerNameRequired
	}

	count, err := s.customerRepo.CountByName(actor.CompanyScopeID(), name, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to check customer name: %w", err)
	}
	if count > 0 {
		return nil, ErrCustomerNameTaken
	}

	customer := &models.Customer{
		CompanyID: actor.CompanyScopeID(),
		Name:      name,
	}

	if err := s.customerRepo.Create(customer); err != nil {
		return nil, fmt.Errorf("failed to create customer: %w", err)
	}

	return customer, nil
}

// Update renames a customer of the actor's company.
func (s *CustomerService) Update(actor *models.User, customerID uint64, name string) (*models.Customer, error) {
	customer, err := s.Get(actor, customerID)
	if err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrCustomerNameRequired
	}

	count, err := s.customerRepo.CountByName(actor.CompanyScopeID(), name, customer.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check customer name: %w", err)
	}
	if count > 0 {
		return nil, ErrCustomerNameTaken
	}

	customer.Name = name
	if err := s.customerRepo.Update(customer); err != nil {
		return nil, fmt.Errorf("failed to update customer: %w", err)
	}

	return customer, nil
}

// Delete removes a customer. Projects referencing it survive with the
// customer reference cleared.
func (s *CustomerService) Delete(actor *models.User, customerID uint64) error {
	customer, err := s.Get(actor, customerID)
	if err != nil {
		return err
	}

	if err := s.customerRepo.Delete(customer.ID); err != nil {
		return fmt.Errorf("failed to delete customer: %w", err)
	}

	return nil
}
