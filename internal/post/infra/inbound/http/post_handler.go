package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/davicafu/adminlab/internal/post/application"
	"github.com/davicafu/adminlab/internal/post/domain"
	"github.com/davicafu/adminlab/pkg/utils"
	"github.com/davicafu/adminlab/shared/platform/query"
	"github.com/davicafu/adminlab/shared/platform/storage"
)

type PostHandler struct {
	service *application.PostService
}

func NewPostHandler(service *application.PostService) *PostHandler {
	return &PostHandler{service: service}
}

// postForm llega como multipart/form-data junto al fichero picture.
type postForm struct {
	Title      string `form:"title" binding:"required,max=255"`
	Content    string `form:"content" binding:"required"`
	CategoryID int64  `form:"category_id" binding:"required"`
	Status     string `form:"status" binding:"omitempty,oneof=0 1 true false"`
}

// ListPosts endpoint GET /posts
func (h *PostHandler) ListPosts(c *gin.Context) {
	q := query.ParseListQuery(c.Request.URL.Query(), h.service.ListConfig())

	idx, err := h.service.Index(c.Request.Context(), q)
	if err != nil {
		utils.SendInternalServerError(c, "Failed to load posts.")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"posts":      idx.Posts.Rows,
		"categories": idx.Categories,
	})
}

// CreatePost endpoint POST /posts
func (h *PostHandler) CreatePost(c *gin.Context) {
	var form postForm
	if err := c.ShouldBind(&form); err != nil {
		utils.SendBadRequest(c, err.Error())
		return
	}

	fh, err := c.FormFile("picture")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			utils.SendBadRequest(c, "The picture field is required.")
			return
		}
		utils.SendBadRequest(c, err.Error())
		return
	}
	f, err := fh.Open()
	if err != nil {
		utils.SendBadRequest(c, err.Error())
		return
	}
	defer f.Close()

	post, err := h.service.Create(c.Request.Context(), domain.PostData{
		Title:      form.Title,
		Content:    form.Content,
		CategoryID: form.CategoryID,
		Status:     query.ParseBool(form.Status),
	}, &storage.Upload{Name: fh.Filename, Size: fh.Size, Reader: f})
	if err != nil {
		utils.SendDomainError(c, err, "Failed to create post.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Post created successfully!",
		"data":    post,
	})
}

// GetPost endpoint GET /posts/:id
func (h *PostHandler) GetPost(c *gin.Context) {
	id, ok := postID(c)
	if !ok {
		return
	}
	post, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		utils.SendDomainError(c, err, "Failed to load post.")
		return
	}
	utils.SendSuccess(c, http.StatusOK, post)
}

// DeletePost endpoint DELETE /posts/:id
func (h *PostHandler) DeletePost(c *gin.Context) {
	id, ok := postID(c)
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		utils.SendDomainError(c, err, "Failed to delete post.")
		return
	}
	utils.SendMessage(c, http.StatusOK, "Post deleted successfully!")
}

func postID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.SendBadRequest(c, "invalid post id")
		return 0, false
	}
	return id, true
}
