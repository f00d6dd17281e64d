package http

import "github.com/gin-gonic/gin"

func RegisterCategoryRoutes(r gin.IRouter, handler *CategoryHandler) {
	categories := r.Group("/categories")
	{
		categories.GET("", handler.ListCategories)
		categories.POST("", handler.CreateCategory)
		categories.PUT("/:id", handler.UpdateCategory)
		categories.DELETE("/:id", handler.DeleteCategory)
	}
}
