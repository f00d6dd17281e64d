package application

import (
	"context"
	"fmt"
	"math/rand"

	"go.uber.org/zap"

	"github.com/davicafu/adminlab/internal/customer/domain"
)

const (
	DefaultSeedTotal = 100000
	DefaultSeedBatch = 1000
)

// SeedJob pide crear BatchSize clientes numerados desde StartIndex.
type SeedJob struct {
	BatchSize  int `json:"batch_size"`
	StartIndex int `json:"start_index"`
}

// JobDispatcher encola (o ejecuta) un trabajo de seed.
type JobDispatcher interface {
	Dispatch(ctx context.Context, job SeedJob) error
}

// PlanSeed reparte total en trabajos de como mucho batch clientes.
func PlanSeed(total, batch int) []SeedJob {
	if total <= 0 || batch <= 0 {
		return nil
	}
	jobs := make([]SeedJob, 0, (total+batch-1)/batch)
	for start := 0; start < total; start += batch {
		jobs = append(jobs, SeedJob{BatchSize: min(batch, total-start), StartIndex: start})
	}
	return jobs
}

// Seeder divide la carga masiva de clientes en trabajos.
type Seeder struct {
	dispatcher JobDispatcher
	log        *zap.Logger
}

func NewSeeder(dispatcher JobDispatcher, log *zap.Logger) *Seeder {
	return &Seeder{dispatcher: dispatcher, log: log}
}

// Run despacha los trabajos y devuelve cuántos se encolaron.
func (s *Seeder) Run(ctx context.Context, total, batch int) (int, error) {
	jobs := PlanSeed(total, batch)
	for i, job := range jobs {
		if err := s.dispatcher.Dispatch(ctx, job); err != nil {
			return i, fmt.Errorf("dispatch seed job %d: %w", i, err)
		}
	}
	s.log.Info("Customer seed dispatched", zap.Int("total", total), zap.Int("jobs", len(jobs)))
	return len(jobs), nil
}

// SeedBatch crea los clientes de un trabajo. Repetir un trabajo falla con
// ErrCustomerAlreadyExists.
func (s *CustomerService) SeedBatch(ctx context.Context, job SeedJob) error {
	rnd := rand.New(rand.NewSource(int64(job.StartIndex) + 1))
	now := s.now()

	batch := make([]*domain.Customer, 0, job.BatchSize)
	for i := 0; i < job.BatchSize; i++ {
		c, err := fakeCustomer(rnd, job.StartIndex+i, now)
		if err != nil {
			return err
		}
		batch = append(batch, c)
	}

	if err := s.repo.CreateBatch(ctx, batch); err != nil {
		return err
	}
	s.log.Debug("Customer seed batch stored", zap.Int("start", job.StartIndex), zap.Int("size", job.BatchSize))
	return nil
}
