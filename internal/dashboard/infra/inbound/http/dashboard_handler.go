package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/davicafu/adminlab/internal/dashboard/application"
	"github.com/davicafu/adminlab/pkg/utils"
)

type DashboardHandler struct {
	service *application.DashboardService
}

func NewDashboardHandler(service *application.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

// Show endpoint GET /dashboard
func (h *DashboardHandler) Show(c *gin.Context) {
	d, err := h.service.Dashboard(c.Request.Context())
	if err != nil {
		utils.SendInternalServerError(c, "Failed to load dashboard.")
		return
	}
	c.JSON(http.StatusOK, d)
}

func RegisterDashboardRoutes(r gin.IRouter, handler *DashboardHandler) {
	r.GET("/dashboard", handler.Show)
}
