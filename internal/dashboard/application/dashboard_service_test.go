package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	paymentDomain "github.com/davicafu/adminlab/internal/payment/domain"
	"github.com/davicafu/adminlab/tests/mocks"
)

func count(n int64) CountFunc {
	return func(context.Context) (int64, error) { return n, nil }
}

func TestDashboard_StaticChartWithoutAnalytics(t *testing.T) {
	s := NewDashboardService(count(3), count(500), nil, zap.NewNop())

	d, err := s.Dashboard(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Stats{Users: 3, Payments: 500}, d.Stats)
	assert.Equal(t, []string{"Jan", "Feb", "Mar", "Apr", "May"}, d.ChartData.Labels)
	assert.Equal(t, []int64{10, 20, 15, 30, 25}, d.ChartData.Values)
}

func TestDashboard_MonthlySeriesFromAnalytics(t *testing.T) {
	analytics := &mocks.InMemoryPaymentAnalytics{Monthly: []paymentDomain.MonthlyCount{
		{Month: time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC), Count: 7},
		{Month: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), Count: 2},
	}}
	s := NewDashboardService(count(1), count(9), analytics, zap.NewNop())
	s.now = func() time.Time { return time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC) }

	d, err := s.Dashboard(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Feb", "Mar", "Apr", "May", "Jun"}, d.ChartData.Labels)
	assert.Equal(t, []int64{0, 0, 7, 0, 2}, d.ChartData.Values)
}

func TestDashboard_AnalyticsErrorFallsBack(t *testing.T) {
	analytics := &mocks.InMemoryPaymentAnalytics{Err: errors.New("down")}
	s := NewDashboardService(count(1), count(1), analytics, zap.NewNop())

	d, err := s.Dashboard(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []int64{10, 20, 15, 30, 25}, d.ChartData.Values)
}

func TestDashboard_CountErrorFails(t *testing.T) {
	boom := func(context.Context) (int64, error) { return 0, errors.New("db down") }
	s := NewDashboardService(boom, count(1), nil, zap.NewNop())

	_, err := s.Dashboard(context.Background())
	assert.Error(t, err)
}
