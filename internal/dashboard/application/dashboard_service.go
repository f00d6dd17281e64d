package application

import (
	"context"
	"time"

	"go.uber.org/zap"

	paymentDomain "github.com/davicafu/adminlab/internal/payment/domain"
)

const chartMonths = 5

// Serie estática que se muestra sin analítica configurada.
var (
	fallbackLabels = []string{"Jan", "Feb", "Mar", "Apr", "May"}
	fallbackValues = []int64{10, 20, 15, 30, 25}
)

// CountFunc cuenta los registros de un recurso.
type CountFunc func(ctx context.Context) (int64, error)

// MonthlySource da los pagos creados por mes.
type MonthlySource interface {
	MonthlyCreated(ctx context.Context, months int) ([]paymentDomain.MonthlyCount, error)
}

type Stats struct {
	Users    int64 `json:"users"`
	Payments int64 `json:"payments"`
}

type ChartData struct {
	Labels []string `json:"labels"`
	Values []int64  `json:"values"`
}

type Dashboard struct {
	Stats     Stats     `json:"stats"`
	ChartData ChartData `json:"chartData"`
}

type DashboardService struct {
	users    CountFunc
	payments CountFunc
	monthly  MonthlySource
	log      *zap.Logger
	now      func() time.Time
}

// NewDashboardService admite monthly nil.
func NewDashboardService(users, payments CountFunc, monthly MonthlySource, log *zap.Logger) *DashboardService {
	return &DashboardService{users: users, payments: payments, monthly: monthly, log: log, now: time.Now}
}

func (s *DashboardService) Dashboard(ctx context.Context) (Dashboard, error) {
	users, err := s.users(ctx)
	if err != nil {
		return Dashboard{}, err
	}
	payments, err := s.payments(ctx)
	if err != nil {
		return Dashboard{}, err
	}

	return Dashboard{
		Stats:     Stats{Users: users, Payments: payments},
		ChartData: s.chart(ctx),
	}, nil
}

// chart no falla: si la analítica no responde se usa la serie estática.
func (s *DashboardService) chart(ctx context.Context) ChartData {
	fallback := ChartData{Labels: fallbackLabels, Values: fallbackValues}
	if s.monthly == nil {
		return fallback
	}

	counts, err := s.monthly.MonthlyCreated(ctx, chartMonths)
	if err != nil {
		s.log.Warn("Payment analytics unavailable, using static chart", zap.Error(err))
		return fallback
	}
	if len(counts) == 0 {
		return fallback
	}
	return monthlySeries(counts, s.now(), chartMonths)
}

// monthlySeries rellena con ceros los meses sin pagos, del más antiguo al actual.
func monthlySeries(counts []paymentDomain.MonthlyCount, now time.Time, months int) ChartData {
	byMonth := make(map[string]int64, len(counts))
	for _, c := range counts {
		byMonth[c.Month.UTC().Format("2006-01")] += c.Count
	}

	now = now.UTC()
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -(months - 1), 0)

	data := ChartData{Labels: make([]string, 0, months), Values: make([]int64, 0, months)}
	for i := 0; i < months; i++ {
		m := first.AddDate(0, i, 0)
		data.Labels = append(data.Labels, m.Format("Jan"))
		data.Values = append(data.Values, byMonth[m.Format("2006-01")])
	}
	return data
}
