package http

import "github.com/gin-gonic/gin"

func RegisterProductRoutes(r gin.IRouter, handler *ProductHandler) {
	products := r.Group("/products")
	{
		products.GET("", handler.ListProducts)
		products.POST("", handler.CreateProduct)
		products.GET("/:id", handler.GetProduct)
		products.PUT("/:id", handler.UpdateProduct)
		products.DELETE("/:id", handler.DeleteProduct)
	}
}
