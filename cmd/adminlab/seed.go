package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/davicafu/adminlab/internal/config"
	customerApp "github.com/davicafu/adminlab/internal/customer/application"
	paymentApp "github.com/davicafu/adminlab/internal/payment/application"
	userDomain "github.com/davicafu/adminlab/internal/user/domain"
	"github.com/davicafu/adminlab/pkg/logger"
)

const (
	defaultSeedProducts = 5000
	testUserName        = "Test User"
	testUserEmail       = "test@example.com"
)

func newSeedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Carga datos de prueba",
	}
	cmd.AddCommand(newSeedCustomersCmd(), newSeedDemoCmd())
	return cmd
}

func newSeedCustomersCmd() *cobra.Command {
	var (
		total, batch int
		queue        bool
	)
	cmd := &cobra.Command{
		Use:   "customers",
		Short: "Genera clientes en trabajos por lotes",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), func(ctx context.Context, a *app) error {
				var dispatcher customerApp.JobDispatcher = customerApp.NewInlineDispatcher(a.customers)
				if queue {
					if !a.cfg.UseKafka {
						return errors.New("--queue requires USE_KAFKA=true; the in-memory bus has no consumer in this process")
					}
					dispatcher = customerApp.NewBusDispatcher(a.publisher)
				}

				jobs, err := customerApp.NewSeeder(dispatcher, a.log).Run(ctx, total, batch)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%d seed jobs dispatched\n", jobs)
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&total, "total", customerApp.DefaultSeedTotal, "clientes a generar")
	cmd.Flags().IntVar(&batch, "batch", customerApp.DefaultSeedBatch, "clientes por trabajo")
	cmd.Flags().BoolVar(&queue, "queue", false, "encolar los trabajos en Kafka en lugar de ejecutarlos aquí")
	return cmd
}

func newSeedDemoCmd() *cobra.Command {
	var products, payments int
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Crea el usuario de prueba, productos y pagos",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), func(ctx context.Context, a *app) error {
				_, err := a.users.CreateUser(ctx, testUserName, testUserEmail)
				if err != nil && !errors.Is(err, userDomain.ErrUserAlreadyExists) {
					return fmt.Errorf("seed test user: %w", err)
				}
				if err := a.products.Seed(ctx, products); err != nil {
					return fmt.Errorf("seed products: %w", err)
				}
				if err := a.payments.Seed(ctx, payments); err != nil {
					return fmt.Errorf("seed payments: %w", err)
				}
				a.log.Info("Demo data seeded", zap.Int("products", products), zap.Int("payments", payments))
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&products, "products", defaultSeedProducts, "productos a generar")
	cmd.Flags().IntVar(&payments, "payments", paymentApp.DefaultSeedPayments, "pagos a generar")
	return cmd
}

func withApp(ctx context.Context, fn func(ctx context.Context, a *app) error) error {
	cfg := config.Load()
	logger.Init(cfg.LogLevel)
	log := logger.Logger()
	defer log.Sync()

	a, err := buildApp(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(ctx, a)
}
