package main

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/go-redis/redis/v8"
	"github.com/segmentio/kafka-go"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	categoryApp "github.com/davicafu/adminlab/internal/category/application"
	categoryDomain "github.com/davicafu/adminlab/internal/category/domain"
	categoryRepo "github.com/davicafu/adminlab/internal/category/infra/outbound/db/sqlrepo"
	"github.com/davicafu/adminlab/internal/config"
	customerApp "github.com/davicafu/adminlab/internal/customer/application"
	customerDomain "github.com/davicafu/adminlab/internal/customer/domain"
	customerRepo "github.com/davicafu/adminlab/internal/customer/infra/outbound/db/sqlrepo"
	dashboardApp "github.com/davicafu/adminlab/internal/dashboard/application"
	infraMongo "github.com/davicafu/adminlab/internal/infra/db/mongodb"
	"github.com/davicafu/adminlab/internal/infra/db/sqlstore"
	infraEvents "github.com/davicafu/adminlab/internal/infra/events"
	paymentApp "github.com/davicafu/adminlab/internal/payment/application"
	paymentDomain "github.com/davicafu/adminlab/internal/payment/domain"
	paymentAnalytics "github.com/davicafu/adminlab/internal/payment/infra/outbound/analytics/clickhouse"
	paymentMongo "github.com/davicafu/adminlab/internal/payment/infra/outbound/db/mongodb"
	paymentRepo "github.com/davicafu/adminlab/internal/payment/infra/outbound/db/sqlrepo"
	postApp "github.com/davicafu/adminlab/internal/post/application"
	postDomain "github.com/davicafu/adminlab/internal/post/domain"
	postMongo "github.com/davicafu/adminlab/internal/post/infra/outbound/db/mongodb"
	postRepo "github.com/davicafu/adminlab/internal/post/infra/outbound/db/sqlrepo"
	productApp "github.com/davicafu/adminlab/internal/product/application"
	productDomain "github.com/davicafu/adminlab/internal/product/domain"
	productRepo "github.com/davicafu/adminlab/internal/product/infra/outbound/db/sqlrepo"
	userApp "github.com/davicafu/adminlab/internal/user/application"
	userDomain "github.com/davicafu/adminlab/internal/user/domain"
	userRepo "github.com/davicafu/adminlab/internal/user/infra/outbound/db/sqlrepo"
	sharedDomain "github.com/davicafu/adminlab/shared/domain"
	sharedBus "github.com/davicafu/adminlab/shared/platform/bus"
	sharedCache "github.com/davicafu/adminlab/shared/platform/cache"
	"github.com/davicafu/adminlab/shared/platform/persistence"
	"github.com/davicafu/adminlab/shared/platform/query"
	"github.com/davicafu/adminlab/shared/platform/storage"
)

// app agrupa las dependencias ya construidas que comparten serve y seed.
type app struct {
	cfg *config.Config
	log *zap.Logger

	db      *sql.DB
	dialect persistence.Dialect
	mongoDB *mongo.Database

	cache     sharedCache.Cache
	publisher sharedBus.EventPublisher
	memBus    *infraEvents.InMemoryEventBus // nil con Kafka
	analytics *paymentAnalytics.PaymentAnalyticsRepo

	customers  *customerApp.CustomerService
	users      *userApp.UserService
	products   *productApp.ProductService
	categories *categoryApp.CategoryService
	posts      *postApp.PostService
	payments   *paymentApp.PaymentService
	dashboard  *dashboardApp.DashboardService

	closers []func()
}

func buildApp(ctx context.Context, cfg *config.Config, log *zap.Logger) (*app, error) {
	a := &app{cfg: cfg, log: log}
	if err := a.init(ctx); err != nil {
		a.Close()
		return nil, err
	}
	return a, nil
}

func (a *app) init(ctx context.Context) error {
	cfg, log := a.cfg, a.log

	// ---------------- DB ----------------
	dialect, err := persistence.DialectFor(cfg.DBDriver)
	if err != nil {
		return err
	}
	db, err := persistence.Open(ctx, dialect, cfg.DSN())
	if err != nil {
		return err
	}
	a.db, a.dialect = db, dialect
	a.onClose(func() { db.Close() })

	schemas := []func(context.Context, *sql.DB, persistence.Dialect) error{
		sqlstore.InitOutboxSchema,
		customerRepo.InitSchema,
		userRepo.InitSchema,
		productRepo.InitSchema,
		categoryRepo.InitSchema,
		postRepo.InitSchema,
		paymentRepo.InitSchema,
	}
	for _, initSchema := range schemas {
		if err := initSchema(ctx, db, dialect); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	if cfg.UsesMongo() {
		client, err := infraMongo.Connect(ctx, cfg.MongoURI)
		if err != nil {
			return err
		}
		a.onClose(func() { client.Disconnect(context.Background()) })
		a.mongoDB = client.Database(cfg.MongoDB)
		log.Info("✅ MongoDB conectado", zap.String("db", cfg.MongoDB))
	}

	// ---------------- Cache ----------------
	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Warn("⚠️ Redis no disponible, cache en memoria", zap.Error(err))
		rdb.Close()
		mem := sharedCache.NewInMemoryCache(cfg.CacheTTL, 3*cfg.CacheTTL)
		a.onClose(mem.Stop)
		a.cache = mem
	} else {
		a.onClose(func() { rdb.Close() })
		a.cache = sharedCache.NewRedisCache(rdb, "adminlab", cfg.CacheTTL)
		log.Info("✅ Redis conectado, cache habilitado")
	}

	// ---------------- Events ---------------
	if cfg.UseKafka {
		log.Info("🚀 Usando Kafka como bus de eventos", zap.Strings("brokers", cfg.KafkaBrokers))
		writer := infraEvents.NewKafkaWriter(cfg.KafkaBrokers)
		a.onClose(func() { writer.Close() })
		a.publisher = infraEvents.NewKafkaPublisher(writer, log)
	} else {
		log.Info("⚡️ Usando bus de eventos en memoria")
		a.memBus = infraEvents.NewInMemoryEventBus()
		a.onClose(a.memBus.Close)
		a.publisher = a.memBus
	}

	// ---------------- Analytics ----------------
	if cfg.ClickHouseAddr != "" {
		repo, err := paymentAnalytics.NewPaymentAnalyticsRepo(ctx, cfg.ClickHouseAddr, cfg.ClickHouseDB)
		if err != nil {
			log.Warn("⚠️ ClickHouse no disponible, dashboard con serie estática", zap.Error(err))
		} else if err := repo.InitSchema(ctx); err != nil {
			repo.Close()
			log.Warn("⚠️ No se pudo crear payments_log", zap.Error(err))
		} else {
			a.onClose(func() { repo.Close() })
			a.analytics = repo
		}
	}

	// --------------- Servicios --------------
	files := storage.NewLocalStorage(cfg.UploadDir)

	a.customers = customerApp.NewCustomerService(customerRepo.NewCustomerRepoSQL(db, dialect), a.cache, a.listConfig(customerDomain.ListConfig()), log)
	a.users = userApp.NewUserService(userRepo.NewUserRepoSQL(db, dialect), a.cache, a.listConfig(userDomain.ListConfig()), log)
	a.products = productApp.NewProductService(productRepo.NewProductRepoSQL(db, dialect), files, a.listConfig(productDomain.ListConfig()), log)
	a.categories = categoryApp.NewCategoryService(categoryRepo.NewCategoryRepoSQL(db, dialect), a.listConfig(categoryDomain.ListConfig()), log)

	posts, err := a.postRepository(ctx)
	if err != nil {
		return err
	}
	a.posts = postApp.NewPostService(posts, a.categories, files, a.listConfig(postDomain.ListConfig()), log)
	a.payments = paymentApp.NewPaymentService(a.paymentRepository(), a.listConfig(paymentDomain.ListConfig()), log)

	var monthly dashboardApp.MonthlySource
	if a.analytics != nil {
		monthly = a.analytics
	}
	a.dashboard = dashboardApp.NewDashboardService(a.users.CountUsers, a.payments.Count, monthly, log)
	return nil
}

func (a *app) postRepository(ctx context.Context) (postDomain.PostRepository, error) {
	if a.cfg.PostsBackend != "mongo" {
		return postRepo.NewPostRepoSQL(a.db, a.dialect), nil
	}
	repo := postMongo.NewPostRepoMongoDB(a.mongoDB)
	if err := repo.EnsureIndexes(ctx); err != nil {
		return nil, fmt.Errorf("posts indexes: %w", err)
	}
	return repo, nil
}

func (a *app) paymentRepository() paymentDomain.PaymentRepository {
	if a.cfg.PaymentsBackend == "mongo" {
		return paymentMongo.NewPaymentRepoMongoDB(a.mongoDB)
	}
	return paymentRepo.NewPaymentRepoSQL(a.db, a.dialect)
}

// outboxes devuelve las outbox activas por nombre.
func (a *app) outboxes() map[string]sharedDomain.OutboxRepository {
	out := map[string]sharedDomain.OutboxRepository{
		"sql": sqlstore.NewOutboxRepoSQL(a.db, a.dialect),
	}
	if a.cfg.PaymentsBackend == "mongo" {
		out["mongo"] = infraMongo.NewOutboxRepoMongoDB(a.mongoDB)
	}
	return out
}

func (a *app) listConfig(cfg query.Config) query.Config {
	if a.cfg.MaxFetchAll > 0 {
		cfg.MaxFetchAll = a.cfg.MaxFetchAll
	}
	return cfg
}

// subscribe conecta handler a un topic del bus activo.
func (a *app) subscribe(ctx context.Context, topic string, handler sharedBus.MessageHandler) {
	if a.memBus != nil {
		infraEvents.Consume(ctx, a.memBus.Subscribe(topic, 64), handler, a.log)
		return
	}

	reader := infraEvents.NewKafkaReader(a.cfg.KafkaBrokers, topic, a.cfg.KafkaGroupID+"-"+topic)
	a.onClose(func() { closeReader(reader) })
	infraEvents.NewConsumerAdapter(reader, handler, a.log).Start(ctx)
}

func closeReader(r *kafka.Reader) { _ = r.Close() }

func (a *app) onClose(fn func()) { a.closers = append(a.closers, fn) }

// Close libera en orden inverso al de apertura.
func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}
