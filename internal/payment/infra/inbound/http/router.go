package http

import "github.com/gin-gonic/gin"

func RegisterPaymentRoutes(r gin.IRouter, handler *PaymentHandler) {
	payments := r.Group("/payments")
	{
		payments.GET("", handler.ListPayments)
		payments.POST("", handler.CreatePayment)
		payments.GET("/:id", handler.GetPayment)
		payments.DELETE("/:id", handler.DeletePayment)
	}
}
