package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/davicafu/adminlab/internal/user/application"
	"github.com/davicafu/adminlab/pkg/utils"
	"github.com/davicafu/adminlab/shared/platform/query"
)

// UserHandler encapsula los endpoints HTTP relacionados con User
type UserHandler struct {
	service *application.UserService
}

// NewUserHandler crea un nuevo UserHandler
func NewUserHandler(service *application.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// ---------------- Handlers ----------------

// ListUsers endpoint GET /users (admite ?useCursor=1)
func (h *UserHandler) ListUsers(c *gin.Context) {
	q := query.ParseListQuery(c.Request.URL.Query(), h.service.ListConfig())

	res, err := h.service.ListUsers(c.Request.Context(), q)
	if err != nil {
		utils.SendInternalServerError(c, "Failed to load users.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"users":   res,
		"filters": res.Applied,
	})
}

// CreateUser endpoint POST /users
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req struct {
		Name  string `json:"name" binding:"required,max=255"`
		Email string `json:"email" binding:"required,email,max=255"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendBadRequest(c, err.Error())
		return
	}

	user, err := h.service.CreateUser(c.Request.Context(), req.Name, req.Email)
	if err != nil {
		utils.SendDomainError(c, err, "Failed to create user.")
		return
	}

	utils.SendSuccess(c, http.StatusCreated, user)
}

// GetUser endpoint GET /users/:id
func (h *UserHandler) GetUser(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.SendBadRequest(c, "invalid user id")
		return
	}

	user, err := h.service.GetUser(c.Request.Context(), id)
	if err != nil {
		utils.SendDomainError(c, err, "Failed to load user.")
		return
	}

	utils.SendSuccess(c, http.StatusOK, user)
}
