package http

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/davicafu/adminlab/internal/product/application"
	"github.com/davicafu/adminlab/internal/product/domain"
	"github.com/davicafu/adminlab/pkg/utils"
	"github.com/davicafu/adminlab/shared/platform/query"
	"github.com/davicafu/adminlab/shared/platform/storage"
)

// ProductHandler encapsula los endpoints HTTP de productos.
type ProductHandler struct {
	service *application.ProductService
}

func NewProductHandler(service *application.ProductService) *ProductHandler {
	return &ProductHandler{service: service}
}

// productForm llega como multipart/form-data.
type productForm struct {
	Name        string `form:"name" json:"name" binding:"max=255"`
	Description string `form:"description" json:"description"`
	Price       string `form:"price" json:"price" binding:"omitempty,numeric"`
}

func (f productForm) toData() (domain.ProductData, error) {
	data := domain.ProductData{Name: f.Name, Description: f.Description}
	if p := strings.TrimSpace(f.Price); p != "" {
		d, err := decimal.NewFromString(p)
		if err != nil {
			return data, errors.New("The price must be a valid number.")
		}
		data.Price = decimal.NewNullDecimal(d)
	}
	return data, nil
}

// ---------------- Handlers ----------------

// ListProducts endpoint GET /products
func (h *ProductHandler) ListProducts(c *gin.Context) {
	q := query.ParseListQuery(c.Request.URL.Query(), h.service.ListConfig())

	res, err := h.service.List(c.Request.Context(), q)
	if err != nil {
		utils.SendInternalServerError(c, "Failed to load products.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"products": res})
}

// CreateProduct endpoint POST /products
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	data, img, ok := bindProduct(c)
	if !ok {
		return
	}
	defer closeUpload(img)

	product, err := h.service.Create(c.Request.Context(), data, img)
	if err != nil {
		utils.SendDomainError(c, err, "Product is failed to create!")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Product created successfully!",
		"data":    product,
	})
}

// GetProduct endpoint GET /products/:id
func (h *ProductHandler) GetProduct(c *gin.Context) {
	id, ok := productID(c)
	if !ok {
		return
	}

	product, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		utils.SendDomainError(c, err, "Failed to load product.")
		return
	}
	utils.SendSuccess(c, http.StatusOK, product)
}

// UpdateProduct endpoint PUT /products/:id
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	id, ok := productID(c)
	if !ok {
		return
	}
	data, img, ok := bindProduct(c)
	if !ok {
		return
	}
	defer closeUpload(img)

	product, err := h.service.Update(c.Request.Context(), id, data, img)
	if err != nil {
		utils.SendDomainError(c, err, "Unable to update product. Please try again!")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Product updated successfully.",
		"data":    product,
	})
}

// DeleteProduct endpoint DELETE /products/:id
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	id, ok := productID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		utils.SendDomainError(c, err, "Unable to delete product. Please try again!")
		return
	}
	utils.SendMessage(c, http.StatusOK, "Product deleted successfully.")
}

// ---------------- Helpers ----------------

func productID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.SendBadRequest(c, "invalid product id")
		return 0, false
	}
	return id, true
}

// bindProduct lee el formulario y la imagen opcional featured_image.
func bindProduct(c *gin.Context) (domain.ProductData, *storage.Upload, bool) {
	var form productForm
	if err := c.ShouldBind(&form); err != nil {
		utils.SendBadRequest(c, err.Error())
		return domain.ProductData{}, nil, false
	}
	data, err := form.toData()
	if err != nil {
		utils.SendBadRequest(c, err.Error())
		return domain.ProductData{}, nil, false
	}

	img, err := formImage(c, "featured_image")
	if err != nil {
		utils.SendBadRequest(c, err.Error())
		return domain.ProductData{}, nil, false
	}
	return data, img, true
}

// formImage devuelve nil si el campo no viene en la petición.
func formImage(c *gin.Context, field string) (*storage.Upload, error) {
	fh, err := c.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return openUpload(fh)
}

func openUpload(fh *multipart.FileHeader) (*storage.Upload, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	return &storage.Upload{Name: fh.Filename, Size: fh.Size, Reader: f}, nil
}

func closeUpload(up *storage.Upload) {
	if up == nil {
		return
	}
	if cl, ok := up.Reader.(io.Closer); ok {
		cl.Close()
	}
}
