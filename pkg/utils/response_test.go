package utils

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	sharedDomain "github.com/davicafu/adminlab/shared/domain"
)

func TestStatusFor(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("customer: %w", sharedDomain.ErrNotFound), http.StatusNotFound},
		{fmt.Errorf("email taken: %w", sharedDomain.ErrAlreadyExists), http.StatusConflict},
		{sharedDomain.ErrInvalidInput, http.StatusBadRequest},
		{errors.New("db down"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, StatusFor(tc.err), tc.err.Error())
	}
}

func TestSendDomainError_HidesInternalDetail(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	SendDomainError(c, errors.New("dial tcp: refused"), "Failed to load customers")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":{"message":"Failed to load customers"}}`, w.Body.String())
}

func TestSendDomainError_NotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	SendDomainError(c, fmt.Errorf("customer not found: %w", sharedDomain.ErrNotFound), "x")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":{"message":"customer not found: not found"}}`, w.Body.String())
}
