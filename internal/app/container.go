package app

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"go.uber.org/dig"

	"service-pickup/internal/config"
	"service-pickup/internal/http/handlers"
	"service-pickup/internal/http/router"
	"service-pickup/internal/logx"
	"service-pickup/internal/repository"
	"service-pickup/internal/service/account"
	"service-pickup/internal/service/pickup"
	"service-pickup/internal/transport/kafka"
)

type (
	dbConnectFunc    func(context.Context, logx.Logger, string, int, time.Duration) (*pgxpool.Pool, error)
	redisConnectFunc func(context.Context, logx.Logger, repository.RedisOptions, int, time.Duration) (*redis.Client, error)
	migrateFunc      func(context.Context, *pgxpool.Pool) error
)

// ContainerBuilder is a dig container builder.
type ContainerBuilder struct {
	loadConfig   func() (*config.Config, error)
	dbConnect    dbConnectFunc
	redisConnect redisConnectFunc
	migrate      migrateFunc
	logFatalf    func(string, ...interface{})
}

// NewContainerBuilder returns a new dig container builder
func NewContainerBuilder() *ContainerBuilder {
	return &ContainerBuilder{
		loadConfig:   config.Load,
		dbConnect:    connectDbWithRetry,
		redisConnect: connectRedisWithRetry,
		migrate:      repository.EnsureSchema,
		logFatalf:    log.Fatalf,
	}
}

// WithConfig replaces configuration loading
func (b *ContainerBuilder) WithConfig(fn func() (*config.Config, error)) *ContainerBuilder {
	if fn != nil {
		b.loadConfig = fn
	}
	return b
}

// WithDBConnect sets the database connection function
func (b *ContainerBuilder) WithDBConnect(fn dbConnectFunc) *ContainerBuilder {
	if fn != nil {
		b.dbConnect = fn
	}
	return b
}

// WithRedisConnect sets the Redis connection function
func (b *ContainerBuilder) WithRedisConnect(fn redisConnectFunc) *ContainerBuilder {
	if fn != nil {
		b.redisConnect = fn
	}
	return b
}

// WithMigrate sets the schema bootstrap run after the database connects
func (b *ContainerBuilder) WithMigrate(fn migrateFunc) *ContainerBuilder {
	if fn != nil {
		b.migrate = fn
	}
	return b
}

// WithLogFatalf sets the log.Fatalf function
func (b *ContainerBuilder) WithLogFatalf(fn func(string, ...interface{})) *ContainerBuilder {
	if fn != nil {
		b.logFatalf = fn
	}
	return b
}

// MustBuild builds and returns the HTTP service container
func (b *ContainerBuilder) MustBuild(ctx context.Context) *dig.Container {
	container, err := b.build(ctx)
	if err != nil {
		b.logFatalf("failed to build container: %v", err)
	}
	return container
}

func (b *ContainerBuilder) build(ctx context.Context) (*dig.Container, error) {
	container := dig.New()

	if err := registerCore(container, ctx, b.loadConfig); err != nil {
		return nil, fmt.Errorf("core: %w", err)
	}
	if err := registerStores(container, b.dbConnect, b.redisConnect, b.migrate); err != nil {
		return nil, fmt.Errorf("stores: %w", err)
	}
	if err := registerService(container); err != nil {
		return nil, fmt.Errorf("service: %w", err)
	}
	if err := registerHTTP(container); err != nil {
		return nil, fmt.Errorf("http: %w", err)
	}
	return container, nil
}

// MustBuildContainer builds and returns the HTTP service container
func MustBuildContainer(ctx context.Context) *dig.Container {
	return NewContainerBuilder().MustBuild(ctx)
}

func provideAll(container *dig.Container, providers ...any) error {
	for _, provider := range providers {
		if err := container.Provide(provider); err != nil {
			return fmt.Errorf("provide %T: %w", provider, err)
		}
	}
	return nil
}

func registerCore(container *dig.Container, ctx context.Context, loadConfig func() (*config.Config, error)) error {
	return provideAll(container,
		func() context.Context { return ctx },
		loadConfig,
		NewLogger,
	)
}

func registerStores(container *dig.Container, dbConnect dbConnectFunc, redisConnect redisConnectFunc, migrate migrateFunc) error {
	providerDB := func(ctx context.Context, cfg *config.Config, logger logx.Logger) (*pgxpool.Pool, error) {
		pool, err := dbConnect(ctx, logger, cfg.DB.DSN(), 10, time.Second)
		if err != nil {
			return nil, err
		}
		if err := migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, fmt.Errorf("ensure schema: %w", err)
		}
		return pool, nil
	}
	providerRedis := func(ctx context.Context, cfg *config.Config, logger logx.Logger) (*redis.Client, error) {
		return redisConnect(ctx, logger, repository.RedisOptions{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		}, 10, time.Second)
	}
	return provideAll(container, providerDB, providerRedis, provideMetrics, provideProducer)
}

type producerIn struct {
	dig.In

	Cfg    *config.Config
	Logger logx.Logger
	Failed prometheus.Counter `name:"pickup_events_publish_failed_total"`
}

func provideProducer(in producerIn) (*kafka.Producer, error) {
	p, err := kafka.NewProducer(in.Logger, in.Cfg.Kafka.Brokers, in.Cfg.Kafka.Topic, in.Failed)
	if err != nil {
		return nil, err
	}
	if p == nil {
		in.Logger.Warn("kafka brokers not configured, pickup events are not published")
	}
	return p, nil
}

type pickupServiceIn struct {
	dig.In

	Cfg         *config.Config
	Logger      logx.Logger
	Store       *repository.PickupStore
	Producer    *kafka.Producer
	Transitions *prometheus.CounterVec `name:"pickup_transitions_total"`
}

func newPickupService(in pickupServiceIn) *pickup.Service {
	var events pickup.EventPublisher
	if in.Producer != nil {
		events = in.Producer
	}
	return pickup.NewService(in.Store, events, in.Transitions, in.Logger, in.Cfg.OperationTimeout)
}

func registerService(container *dig.Container) error {
	return provideAll(container,
		repository.NewAccountRepo,
		func(rdb *redis.Client, cfg *config.Config) *repository.PickupStore {
			return repository.NewPickupStore(rdb, cfg.Redis.KeyPrefix)
		},
		newPickupService,
		func(repo *repository.AccountRepo, cfg *config.Config) *account.Service {
			return account.NewService(repo, cfg.OperationTimeout)
		},
	)
}

type routerOptionsIn struct {
	dig.In

	Cfg       *config.Config
	Logger    logx.Logger
	RateLimit func(http.Handler) http.Handler `name:"rate_limit"`
}

func registerHTTP(container *dig.Container) error {
	optionsProvider := func(in routerOptionsIn) router.Options {
		if in.Cfg.Auth.JWTSecret == "" {
			in.Logger.Warn("JWT_SECRET is empty, every request will be unauthenticated")
		}
		return router.Options{
			Logger:         in.Logger,
			JWTSecret:      []byte(in.Cfg.Auth.JWTSecret),
			AllowedOrigins: in.Cfg.CORS.AllowedOrigins,
			RateLimit:      in.RateLimit,
		}
	}
	serverProvider := func(cfg *config.Config, mux http.Handler) *http.Server {
		return &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Port),
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      15 * time.Second,
			IdleTimeout:       60 * time.Second,
		}
	}
	handlersProvider := func(logger logx.Logger, pool *pgxpool.Pool, store *repository.PickupStore) *handlers.Handlers {
		return handlers.New(logger,
			handlers.Check{Name: "postgres", Pinger: pool},
			handlers.Check{Name: "redis", Pinger: store},
		)
	}
	return provideAll(container,
		handlersProvider,
		handlers.NewDispatcher,
		func(s *pickup.Service) handlers.PickupUsecase { return s },
		func(s *account.Service) handlers.AccountUsecase { return s },
		handlers.NewPickupHandler,
		handlers.NewAccountHandler,
		newRateLimitClock,
		newRateLimiter,
		newRateLimitMiddleware,
		optionsProvider,
		router.New,
		serverProvider,
		newPprofServer,
	)
}
