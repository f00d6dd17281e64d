package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/davicafu/adminlab/internal/payment/application"
	"github.com/davicafu/adminlab/internal/payment/domain"
	"github.com/davicafu/adminlab/pkg/utils"
	"github.com/davicafu/adminlab/shared/platform/query"
)

type PaymentHandler struct {
	service *application.PaymentService
}

func NewPaymentHandler(service *application.PaymentService) *PaymentHandler {
	return &PaymentHandler{service: service}
}

// ListPayments endpoint GET /payments
func (h *PaymentHandler) ListPayments(c *gin.Context) {
	q := query.ParseListQuery(c.Request.URL.Query(), h.service.ListConfig())

	res, err := h.service.List(c.Request.Context(), q)
	if err != nil {
		utils.SendInternalServerError(c, "Failed to load payments.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"payments": res.Rows})
}

// CreatePayment endpoint POST /payments
func (h *PaymentHandler) CreatePayment(c *gin.Context) {
	var req struct {
		Amount decimal.Decimal `json:"amount"`
		Status string          `json:"status" binding:"required,oneof=pending processing success failed"`
		Email  string          `json:"email" binding:"required,email,max=255"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendBadRequest(c, err.Error())
		return
	}

	p, err := h.service.Create(c.Request.Context(), req.Amount, domain.PaymentStatus(req.Status), req.Email)
	if err != nil {
		utils.SendDomainError(c, err, "Failed to record payment.")
		return
	}
	utils.SendSuccess(c, http.StatusCreated, p)
}

// GetPayment endpoint GET /payments/:id
func (h *PaymentHandler) GetPayment(c *gin.Context) {
	id, ok := paymentID(c)
	if !ok {
		return
	}
	p, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		utils.SendDomainError(c, err, "Failed to load payment.")
		return
	}
	utils.SendSuccess(c, http.StatusOK, p)
}

// DeletePayment endpoint DELETE /payments/:id
func (h *PaymentHandler) DeletePayment(c *gin.Context) {
	id, ok := paymentID(c)
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		utils.SendDomainError(c, err, "Failed to delete payment.")
		return
	}
	utils.SendMessage(c, http.StatusOK, "Payment deleted successfully.")
}

func paymentID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.SendBadRequest(c, "invalid payment id")
		return 0, false
	}
	return id, true
}
