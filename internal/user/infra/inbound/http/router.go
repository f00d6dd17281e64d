package http

import "github.com/gin-gonic/gin"

func RegisterUserRoutes(r gin.IRouter, handler *UserHandler) {
	users := r.Group("/users")
	{
		users.GET("", handler.ListUsers)
		users.POST("", handler.CreateUser)
		users.GET("/:id", handler.GetUser)
	}
}
