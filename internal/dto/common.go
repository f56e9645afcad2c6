package dto

import (
	"github.com/fieldnote/fieldnote-api/internal/models"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID       uint64 `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	IsStaff  bool   `json:"is_staff"`
}

// CompanyDTO represents a company in API responses
type CompanyDTO struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

// CustomerDTO represents a customer in API responses
type CustomerDTO struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		IsStaff:  user.IsStaff,
	}
}

// ToCompanyDTO converts a Company model to CompanyDTO
func ToCompanyDTO(company models.Company) CompanyDTO {
	return CompanyDTO{
		ID:   company.ID,
		Name: company.Name,
	}
}

// ToCustomerDTO converts a Customer model to CustomerDTO
func ToCustomerDTO(customer models.Customer) CustomerDTO {
	return CustomerDTO{
		ID:   customer.ID,
		Name: customer.Name,
	}
}
