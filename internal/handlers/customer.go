package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fieldnote/fieldnote-api/internal/dto"
	apierrors "github.com/fieldnote/fieldnote-api/internal/errors"
	"github.com/fieldnote/fieldnote-api/internal/services"
)

// CustomerHandler coordinates customer-related HTTP handlers.
type CustomerHandler struct {
	customerService *services.CustomerService
}

// NewCustomerHandler creates a new CustomerHandler.
func NewCustomerHandler(customerService *services.CustomerService) *CustomerHandler {
	return &CustomerHandler{
		customerService: customerService,
	}
}

// CustomerRequest is the create/update payload.
type CustomerRequest struct {
	Name string `json:"name" binding:"required,max=255"`
}

// List returns the customers of the current user's company.
func (h *CustomerHandler) List(c *gin.Context) {
	user, ok := actor(c)
	if !ok {
		return
	}

	customers, err := h.customerService.List(user)
	if err != nil {
		respondCustomerError(c, err)
		return
	}

	customerDTOs := make([]dto.CustomerDTO, len(customers))
	for i, cust := range customers {
		customerDTOs[i] = dto.ToCustomerDTO(cust)
	}

	c.JSON(http.StatusOK, gin.H{"customers": customerDTOs})
}

// Get returns one customer of the current user's company.
func (h *CustomerHandler) Get(c *gin.Context) {
	user, ok := actor(c)
	if !ok {
		return
	}

	customerID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	customer, err := h.customerService.Get(user, customerID)
	if err != nil {
		respondCustomerError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCustomerDTO(*customer))
}

// Create creates a customer in the current user's company.
func (h *CustomerHandler) Create(c *gin.Context) {
	user, ok := actor(c)
	if !ok {
		return
	}

	var req CustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	customer, err := h.customerService.Create(user, req.Name)
	if err != nil {
		respondCustomerError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToCustomerDTO(*customer))
}

// Update renames a customer of the current user's company.
func (h *CustomerHandler) Update(c *gin.Context) {
	user, ok := actor(c)
	if !ok {
		return
	}

	customerID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req CustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	customer, err := h.customerService.Update(user, customerID, req.Name)
	if err != nil {
		respondCustomerError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCustomerDTO(*customer))
}

// Delete removes a customer. Projects of the customer are kept and detached.
func (h *CustomerHandler) Delete(c *gin.Context) {
	user, ok := actor(c)
	if !ok {
		return
	}

	customerID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.customerService.Delete(user, customerID); err != nil {
		respondCustomerError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Customer deleted successfully",
	})
}

func respondCustomerError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrCustomerNotFound):
		apierrors.NotFound(c, "Customer not found")
	case errors.Is(err, services.ErrCustomerNameRequired):
		apierrors.BadRequest(c, "Customer name is required")
	case errors.Is(err, services.ErrCustomerNameTaken):
		apierrors.Conflict(c, "A customer with this name already exists")
	default:
		apierrors.InternalError(c, "")
	}
}
