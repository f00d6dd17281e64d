package http

import "github.com/gin-gonic/gin"

func RegisterPostRoutes(r gin.IRouter, handler *PostHandler) {
	posts := r.Group("/posts")
	{
		posts.GET("", handler.ListPosts)
		posts.POST("", handler.CreatePost)
		posts.GET("/:id", handler.GetPost)
		posts.DELETE("/:id", handler.DeletePost)
	}
}
