package http

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/davicafu/adminlab/internal/product/application"
	"github.com/davicafu/adminlab/internal/product/domain"
	"github.com/davicafu/adminlab/tests/mocks"
)

func setupRouter(t *testing.T) (*gin.Engine, *mocks.InMemoryProductRepo, *mocks.MemoryStorage) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := mocks.NewInMemoryProductRepo()
	files := mocks.NewMemoryStorage()
	service := application.NewProductService(repo, files, domain.ListConfig(), zap.NewNop())

	r := gin.New()
	RegisterProductRoutes(r, NewProductHandler(service))
	return r, repo, files
}

// multipartRequest construye un formulario con un fichero opcional.
func multipartRequest(t *testing.T, method, path string, fields map[string]string, fileName string, file []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if fileName != "" {
		fw, err := w.CreateFormFile("featured_image", fileName)
		require.NoError(t, err)
		_, err = fw.Write(file)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func serve(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateProduct_WithImage(t *testing.T) {
	r, repo, files := setupRouter(t)

	w := serve(r, multipartRequest(t, http.MethodPost, "/products",
		map[string]string{"name": "Silla", "price": "25.50"}, "silla.png", mocks.PNG))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	assert.Len(t, repo.Products, 1)
	assert.Equal(t, 1, files.Len())
	assert.Equal(t, "silla.png", *repo.Products[1].FeaturedImageOriginalName)
	assert.Equal(t, "25.5", repo.Products[1].Price.Decimal.String())
}

func TestCreateProduct_Validation(t *testing.T) {
	r, repo, _ := setupRouter(t)

	w := serve(r, multipartRequest(t, http.MethodPost, "/products", map[string]string{"price": "abc"}, "", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = serve(r, multipartRequest(t, http.MethodPost, "/products", map[string]string{"price": "-3"}, "", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = serve(r, multipartRequest(t, http.MethodPost, "/products", map[string]string{"name": "x"}, "doc.txt", []byte("texto plano")))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	assert.Empty(t, repo.Products)
}

func TestCreateProduct_StorageFailureIsGeneric(t *testing.T) {
	r, repo, _ := setupRouter(t)
	repo.Fail = true

	w := serve(r, multipartRequest(t, http.MethodPost, "/products", map[string]string{"name": "x"}, "", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Product is failed to create!")
	assert.NotContains(t, w.Body.String(), "storage down")
}

func TestListProducts_All(t *testing.T) {
	r, _, _ := setupRouter(t)
	for _, name := range []string{"a", "b", "c"} {
		serve(r, multipartRequest(t, http.MethodPost, "/products", map[string]string{"name": name}, "", nil))
	}

	w := serve(r, httptest.NewRequest(http.MethodGet, "/products", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Products struct {
			Data    []domain.Product `json:"data"`
			PerPage int              `json:"per_page"`
		} `json:"products"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Len(t, body.Products.Data, 3)
	assert.Equal(t, -1, body.Products.PerPage)
}

func TestUpdateAndDeleteProduct(t *testing.T) {
	r, repo, _ := setupRouter(t)
	serve(r, multipartRequest(t, http.MethodPost, "/products", map[string]string{"name": "a"}, "", nil))

	w := serve(r, multipartRequest(t, http.MethodPut, "/products/1", map[string]string{"name": "b"}, "", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "b", repo.Products[1].Name)

	w = serve(r, multipartRequest(t, http.MethodPut, "/products/9", map[string]string{"name": "b"}, "", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = serve(r, httptest.NewRequest(http.MethodDelete, "/products/1", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, repo.Products)

	w = serve(r, httptest.NewRequest(http.MethodGet, "/products/1", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
