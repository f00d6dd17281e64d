package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	categoryHttp "github.com/davicafu/adminlab/internal/category/infra/inbound/http"
	"github.com/davicafu/adminlab/internal/config"
	customerDomain "github.com/davicafu/adminlab/internal/customer/domain"
	customerEvents "github.com/davicafu/adminlab/internal/customer/infra/inbound/events"
	customerHttp "github.com/davicafu/adminlab/internal/customer/infra/inbound/http"
	dashboardHttp "github.com/davicafu/adminlab/internal/dashboard/infra/inbound/http"
	infraRelayer "github.com/davicafu/adminlab/internal/infra/relayer"
	paymentDomain "github.com/davicafu/adminlab/internal/payment/domain"
	paymentEvents "github.com/davicafu/adminlab/internal/payment/infra/inbound/events"
	paymentHttp "github.com/davicafu/adminlab/internal/payment/infra/inbound/http"
	postHttp "github.com/davicafu/adminlab/internal/post/infra/inbound/http"
	productHttp "github.com/davicafu/adminlab/internal/product/infra/inbound/http"
	userDomain "github.com/davicafu/adminlab/internal/user/domain"
	userHttp "github.com/davicafu/adminlab/internal/user/infra/inbound/http"
	"github.com/davicafu/adminlab/pkg/logger"
	sharedEvents "github.com/davicafu/adminlab/shared/events"
)

const (
	analyticsBatch    = 200
	analyticsInterval = 5 * time.Second
	shutdownTimeout   = 10 * time.Second
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Arranca la API HTTP, el relayer de la outbox y los consumidores",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			logger.Init(cfg.LogLevel)
			log := logger.Logger()
			defer log.Sync()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return serve(ctx, cfg, log)
		},
	}
}

func serve(ctx context.Context, cfg *config.Config, log *zap.Logger) error {
	a, err := buildApp(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg sync.WaitGroup
	run := func(fn func(context.Context)) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			fn(ctx)
		}()
	}

	// ---------------- Consumers ----------------
	a.subscribe(ctx, customerDomain.CustomerSeedTopic, customerEvents.NewCustomerConsumer(a.customers, log))

	if a.analytics != nil {
		consumer := paymentEvents.NewPaymentAnalyticsConsumer(a.analytics, analyticsBatch, analyticsInterval, log)
		a.subscribe(ctx, paymentDomain.PaymentTopic, consumer)
		run(consumer.Run)
	}

	// ------------ Outbox Workers ------------
	registry := sharedEvents.Merge(
		customerDomain.NewEventRegistry(),
		userDomain.NewEventRegistry(),
		paymentDomain.NewEventRegistry(),
	)
	for name, repo := range a.outboxes() {
		w := infraRelayer.NewOutboxWorker(name, repo, a.publisher, registry, cfg.OutboxPeriod, cfg.OutboxLimit, log)
		run(w.Start)
	}

	// ---------------- HTTP ----------------
	router := newRouter(a)
	srv := &http.Server{Addr: ":" + cfg.HTTPPort, Handler: router}

	errCh := make(chan error, 1)
	go func() {
		log.Info("🚀 Server running", zap.String("url", "http://localhost:"+cfg.HTTPPort))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	var serveErr error
	select {
	case serveErr = <-errCh:
		if serveErr != nil {
			log.Error("failed to start server", zap.Error(serveErr))
		}
	case <-ctx.Done():
	}

	log.Info("🛑 Apagando servidor")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warn("HTTP shutdown incomplete", zap.Error(err))
	}

	cancel()
	wg.Wait()
	return serveErr
}

func newRouter(a *app) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.Static("/storage", a.cfg.UploadDir)

	dashboardHttp.RegisterDashboardRoutes(router, dashboardHttp.NewDashboardHandler(a.dashboard))
	customerHttp.RegisterCustomerRoutes(router, customerHttp.NewCustomerHandler(a.customers))
	userHttp.RegisterUserRoutes(router, userHttp.NewUserHandler(a.users))
	productHttp.RegisterProductRoutes(router, productHttp.NewProductHandler(a.products))
	categoryHttp.RegisterCategoryRoutes(router, categoryHttp.NewCategoryHandler(a.categories))
	postHttp.RegisterPostRoutes(router, postHttp.NewPostHandler(a.posts))
	paymentHttp.RegisterPaymentRoutes(router, paymentHttp.NewPaymentHandler(a.payments))
	return router
}
