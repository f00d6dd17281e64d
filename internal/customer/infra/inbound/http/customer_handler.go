package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/davicafu/adminlab/internal/customer/application"
	"github.com/davicafu/adminlab/internal/customer/domain"
	"github.com/davicafu/adminlab/pkg/utils"
	"github.com/davicafu/adminlab/shared/platform/query"
)

// CustomerHandler encapsula los endpoints HTTP relacionados con Customer.
type CustomerHandler struct {
	service *application.CustomerService
}

func NewCustomerHandler(service *application.CustomerService) *CustomerHandler {
	return &CustomerHandler{service: service}
}

type customerRequest struct {
	FirstName         string           `json:"first_name" binding:"required,max=255"`
	LastName          string           `json:"last_name" binding:"required,max=255"`
	Username          *string          `json:"username" binding:"omitempty,max=255"`
	Email             string           `json:"email" binding:"required,email,max=255"`
	Phone             string           `json:"phone" binding:"max=255"`
	StreetAddress     string           `json:"street_address" binding:"max=255"`
	City              string           `json:"city" binding:"max=255"`
	State             string           `json:"state" binding:"max=255"`
	PostalCode        string           `json:"postal_code" binding:"max=20"`
	Country           string           `json:"country" binding:"max=255"`
	DateOfBirth       string           `json:"date_of_birth" binding:"omitempty,datetime=2006-01-02"`
	Gender            string           `json:"gender" binding:"omitempty,oneof=male female other"`
	ProfilePhoto      string           `json:"profile_photo" binding:"max=255"`
	CompanyName       string           `json:"company_name" binding:"max=255"`
	VATNumber         string           `json:"vat_number" binding:"max=255"`
	Currency          string           `json:"currency" binding:"max=10"`
	AccountBalance    *decimal.Decimal `json:"account_balance"`
	IsActive          *bool            `json:"is_active"`
	LastLoginAt       *time.Time       `json:"last_login_at"`
	PreferredLanguage string           `json:"preferred_language" binding:"max=10"`
	LastIP            string           `json:"last_ip" binding:"omitempty,ip"`
	ExtraInfo         map[string]any   `json:"extra_info"`
}

func (r customerRequest) toData() domain.CustomerData {
	data := domain.CustomerData{
		FirstName:         r.FirstName,
		LastName:          r.LastName,
		Username:          r.Username,
		Email:             r.Email,
		Phone:             r.Phone,
		StreetAddress:     r.StreetAddress,
		City:              r.City,
		State:             r.State,
		PostalCode:        r.PostalCode,
		Country:           r.Country,
		Gender:            r.Gender,
		ProfilePhoto:      r.ProfilePhoto,
		CompanyName:       r.CompanyName,
		VATNumber:         r.VATNumber,
		Currency:          r.Currency,
		IsActive:          r.IsActive == nil || *r.IsActive,
		LastLoginAt:       r.LastLoginAt,
		PreferredLanguage: r.PreferredLanguage,
		LastIP:            r.LastIP,
		ExtraInfo:         r.ExtraInfo,
	}
	if r.AccountBalance != nil {
		data.AccountBalance = *r.AccountBalance
	}
	if r.DateOfBirth != "" {
		// ya validada por binding
		if d, err := time.Parse("2006-01-02", r.DateOfBirth); err == nil {
			data.DateOfBirth = &d
		}
	}
	return data
}

// ---------------- Handlers ----------------

// ListCustomers endpoint GET /customers
func (h *CustomerHandler) ListCustomers(c *gin.Context) {
	q := query.ParseListQuery(c.Request.URL.Query(), h.service.ListConfig())

	res, err := h.service.List(c.Request.Context(), q)
	if err != nil {
		utils.SendInternalServerError(c, "Failed to load customers.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"customers": res,
		"filters":   res.Applied,
	})
}

// CreateCustomer endpoint POST /customers
func (h *CustomerHandler) CreateCustomer(c *gin.Context) {
	var req customerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendBadRequest(c, err.Error())
		return
	}

	customer, err := h.service.CreateCustomer(c.Request.Context(), req.toData())
	if err != nil {
		utils.SendDomainError(c, err, "Failed to create customer.")
		return
	}

	utils.SendSuccess(c, http.StatusCreated, customer)
}

// GetCustomer endpoint GET /customers/:id
func (h *CustomerHandler) GetCustomer(c *gin.Context) {
	id, ok := customerID(c)
	if !ok {
		return
	}

	customer, err := h.service.GetCustomer(c.Request.Context(), id)
	if err != nil {
		utils.SendDomainError(c, err, "Failed to load customer.")
		return
	}

	utils.SendSuccess(c, http.StatusOK, customer)
}

// CustomerJSON endpoint GET /customers/:id/json, devuelve la entidad sin envoltorio.
func (h *CustomerHandler) CustomerJSON(c *gin.Context) {
	id, ok := customerID(c)
	if !ok {
		return
	}

	customer, err := h.service.GetCustomer(c.Request.Context(), id)
	if err != nil {
		utils.SendDomainError(c, err, "Failed to load customer.")
		return
	}

	c.JSON(http.StatusOK, customer)
}

// UpdateCustomer endpoint PUT /customers/:id
func (h *CustomerHandler) UpdateCustomer(c *gin.Context) {
	id, ok := customerID(c)
	if !ok {
		return
	}

	var req customerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendBadRequest(c, err.Error())
		return
	}

	customer, err := h.service.UpdateCustomer(c.Request.Context(), id, req.toData())
	if err != nil {
		utils.SendDomainError(c, err, "Failed to update customer.")
		return
	}

	utils.SendSuccess(c, http.StatusOK, customer)
}

// DeleteCustomer endpoint DELETE /customers/:id
func (h *CustomerHandler) DeleteCustomer(c *gin.Context) {
	id, ok := customerID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteCustomer(c.Request.Context(), id); err != nil {
		utils.SendDomainError(c, err, "Failed to delete customer.")
		return
	}

	utils.SendMessage(c, http.StatusOK, "Customer deleted successfully.")
}

func customerID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		utils.SendBadRequest(c, "invalid customer id")
		return 0, false
	}
	return id, true
}
