package http

import "github.com/gin-gonic/gin"

func RegisterCustomerRoutes(r gin.IRouter, handler *CustomerHandler) {
	customers := r.Group("/customers")
	{
		customers.GET("", handler.ListCustomers)
		customers.POST("", handler.CreateCustomer)
		customers.GET("/:id", handler.GetCustomer)
		customers.GET("/:id/json", handler.CustomerJSON)
		customers.PUT("/:id", handler.UpdateCustomer)
		customers.DELETE("/:id", handler.DeleteCustomer)
	}
}
