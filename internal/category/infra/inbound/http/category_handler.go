package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/davicafu/adminlab/internal/category/application"
	"github.com/davicafu/adminlab/pkg/utils"
	"github.com/davicafu/adminlab/shared/platform/query"
)

// UserIDHeader identifica al usuario autenticado (lo pone el proxy de auth).
const UserIDHeader = "X-User-ID"

type CategoryHandler struct {
	service *application.CategoryService
}

func NewCategoryHandler(service *application.CategoryService) *CategoryHandler {
	return &CategoryHandler{service: service}
}

type categoryRequest struct {
	Title string `json:"title" form:"title" binding:"required,max=255"`
}

// ListCategories endpoint GET /categories
func (h *CategoryHandler) ListCategories(c *gin.Context) {
	q := query.ParseListQuery(c.Request.URL.Query(), h.service.ListConfig())

	res, err := h.service.List(c.Request.Context(), q)
	if err != nil {
		utils.SendInternalServerError(c, "Failed to load categories.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": res.Rows})
}

// CreateCategory endpoint POST /categories
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	userID, err := strconv.ParseInt(c.GetHeader(UserIDHeader), 10, 64)
	if err != nil || userID <= 0 {
		utils.SendError(c, http.StatusUnauthorized, "Unauthenticated.")
		return
	}

	var req categoryRequest
	if err := c.ShouldBind(&req); err != nil {
		utils.SendBadRequest(c, err.Error())
		return
	}

	category, err := h.service.Create(c.Request.Context(), req.Title, userID)
	if err != nil {
		utils.SendDomainError(c, err, "Failed to create category.")
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "Category created successfully!",
		"data":    category,
	})
}

// UpdateCategory endpoint PUT /categories/:id
func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	id, ok := categoryID(c)
	if !ok {
		return
	}

	var req categoryRequest
	if err := c.ShouldBind(&req); err != nil {
		utils.SendBadRequest(c, err.Error())
		return
	}

	category, err := h.service.Update(c.Request.Context(), id, req.Title)
	if err != nil {
		utils.SendDomainError(c, err, "Failed to update category.")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Category updated successfully! " + category.Title + " ",
		"data":    category,
	})
}

// DeleteCategory endpoint DELETE /categories/:id
func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	id, ok := categoryID(c)
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		utils.SendDomainError(c, err, "Failed to delete category.")
		return
	}
	utils.SendMessage(c, http.StatusOK, "Category deleted successfully!")
}

func categoryID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.SendBadRequest(c, "invalid category id")
		return 0, false
	}
	return id, true
}
