package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/davicafu/adminlab/internal/category/application"
	"github.com/davicafu/adminlab/internal/category/domain"
	"github.com/davicafu/adminlab/tests/mocks"
)

func setupRouter(t *testing.T) (*gin.Engine, *mocks.InMemoryCategoryRepo) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := mocks.NewInMemoryCategoryRepo()
	r := gin.New()
	RegisterCategoryRoutes(r, NewCategoryHandler(application.NewCategoryService(repo, domain.ListConfig(), zap.NewNop())))
	return r, repo
}

func do(r *gin.Engine, method, path, body, userID string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if userID != "" {
		req.Header.Set(UserIDHeader, userID)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateCategory(t *testing.T) {
	r, repo := setupRouter(t)

	assert.Equal(t, http.StatusUnauthorized, do(r, http.MethodPost, "/categories", `{"title":"Go"}`, "").Code)
	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodPost, "/categories", `{"title":""}`, "7").Code)
	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodPost, "/categories", `{"title":"`+strings.Repeat("x", 256)+`"}`, "7").Code)

	w := do(r, http.MethodPost, "/categories", `{"title":"Go"}`, "7")
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, int64(7), repo.Categories[1].UserID)
}

func TestListCategories_FilterByUser(t *testing.T) {
	r, _ := setupRouter(t)
	do(r, http.MethodPost, "/categories", `{"title":"a"}`, "1")
	do(r, http.MethodPost, "/categories", `{"title":"b"}`, "2")
	do(r, http.MethodPost, "/categories", `{"title":"c"}`, "1")

	w := do(r, http.MethodGet, "/categories?user_id=1", "", "")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Categories []domain.Category `json:"categories"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Categories, 2)
	assert.Equal(t, "a", body.Categories[0].Title)
	assert.Equal(t, "c", body.Categories[1].Title)
}

func TestUpdateAndDeleteCategory(t *testing.T) {
	r, repo := setupRouter(t)
	do(r, http.MethodPost, "/categories", `{"title":"a"}`, "1")

	w := do(r, http.MethodPut, "/categories/1", `{"title":"Nueva"}`, "1")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Category updated successfully! Nueva")
	assert.Equal(t, "Nueva", repo.Categories[1].Title)

	assert.Equal(t, http.StatusNotFound, do(r, http.MethodPut, "/categories/5", `{"title":"x"}`, "1").Code)
	assert.Equal(t, http.StatusOK, do(r, http.MethodDelete, "/categories/1", "", "1").Code)
	assert.Equal(t, http.StatusNotFound, do(r, http.MethodDelete, "/categories/1", "", "1").Code)
}
