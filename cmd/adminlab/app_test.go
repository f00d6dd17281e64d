package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/davicafu/adminlab/internal/config"
	"github.com/davicafu/adminlab/shared/platform/query"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	return &config.Config{
		HTTPPort:        "0",
		DBDriver:        "sqlite",
		SQLitePath:      filepath.Join(dir, "adminlab.db"),
		RedisAddr:       "127.0.0.1:1", // sin Redis: cache en memoria
		PostsBackend:    "sql",
		PaymentsBackend: "sql",
		OutboxLimit:     10,
		UploadDir:       filepath.Join(dir, "uploads"),
		MaxFetchAll:     100,
	}
}

func TestBuildApp_WiresSQLiteStack(t *testing.T) {
	gin.SetMode(gin.TestMode)
	a, err := buildApp(context.Background(), testConfig(t), zap.NewNop())
	require.NoError(t, err)
	defer a.Close()

	assert.NotNil(t, a.memBus)
	assert.Nil(t, a.analytics)
	assert.Len(t, a.outboxes(), 1)
	assert.Equal(t, 100, a.listConfig(query.Config{}).MaxFetchAll)

	router := newRouter(a)
	for _, path := range []string{"/health", "/dashboard", "/customers", "/users", "/products", "/categories", "/posts", "/payments"} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, w.Code, path)
	}
}

func TestSeedDemo_PopulatesDashboard(t *testing.T) {
	ctx := context.Background()
	a, err := buildApp(ctx, testConfig(t), zap.NewNop())
	require.NoError(t, err)
	defer a.Close()

	_, err = a.users.CreateUser(ctx, testUserName, testUserEmail)
	require.NoError(t, err)
	require.NoError(t, a.payments.Seed(ctx, 12))

	d, err := a.dashboard.Dashboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), d.Stats.Users)
	assert.Equal(t, int64(12), d.Stats.Payments)
	assert.Equal(t, []int64{10, 20, 15, 30, 25}, d.ChartData.Values)
}
