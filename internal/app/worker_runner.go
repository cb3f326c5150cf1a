package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/dig"

	"service-pickup/internal/config"
	"service-pickup/internal/logx"
	"service-pickup/internal/service/audit"
	"service-pickup/internal/transport/kafka"
)

// BuildWorkerContainer builds the container of the audit worker, which
// consumes pickup events and records them.
func BuildWorkerContainer(ctx context.Context, loadConfig func() (*config.Config, error)) (*dig.Container, error) {
	if loadConfig == nil {
		loadConfig = config.Load
	}
	container := dig.New()
	if err := registerCore(container, ctx, loadConfig); err != nil {
		return nil, fmt.Errorf("core: %w", err)
	}
	if err := registerAudit(container); err != nil {
		return nil, fmt.Errorf("audit: %w", err)
	}
	return container, nil
}

// MustBuildWorkerContainer is BuildWorkerContainer that exits on error.
func MustBuildWorkerContainer(ctx context.Context) *dig.Container {
	c, err := BuildWorkerContainer(ctx, nil)
	if err != nil {
		panic(err)
	}
	return c
}

type recorderIn struct {
	dig.In

	Logger   logx.Logger
	Consumed *prometheus.CounterVec `name:"pickup_events_consumed_total"`
}

type workerServerOut struct {
	dig.Out

	Server *http.Server `name:"metrics_server"`
}

func registerAudit(container *dig.Container) error {
	return provideAll(container,
		provideWorkerMetrics,
		func(in recorderIn) *audit.Recorder {
			return audit.NewRecorder(in.Logger, in.Consumed)
		},
		func(cfg *config.Config, logger logx.Logger, rec *audit.Recorder) (*kafka.Consumer, error) {
			return kafka.NewConsumer(logger, cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.Topic, makeAuditKafka(rec))
		},
		func(cfg *config.Config) workerServerOut {
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.Handler())
			return workerServerOut{Server: &http.Server{
				Addr:              fmt.Sprintf(":%d", cfg.Port),
				Handler:           mux,
				ReadHeaderTimeout: 5 * time.Second,
			}}
		},
	)
}

// WorkerRunner runs the audit worker
type WorkerRunner struct {
	runFn func(*dig.Container) error
}

// NewWorkerRunner returns a new WorkerRunner
func NewWorkerRunner() *WorkerRunner {
	return &WorkerRunner{runFn: runWorker}
}

// MustRun runs the worker until its context is done
func (r *WorkerRunner) MustRun(container *dig.Container) {
	err := r.runFn(container)
	if err == nil || errors.Is(err, context.Canceled) {
		return
	}
	panic(err)
}

type workerIn struct {
	dig.In

	Ctx      context.Context
	Logger   logx.Logger
	Consumer *kafka.Consumer
	Metrics  *http.Server `name:"metrics_server" optional:"true"`
}

func runWorker(container *dig.Container) error {
	return container.Invoke(workerRun)
}

func workerRun(in workerIn) error {
	if in.Consumer == nil {
		return fmt.Errorf("kafka consumer is nil: set KAFKA_BROKERS, KAFKA_TOPIC and KAFKA_GROUP_ID")
	}
	defer closeWorker(in.Logger, in.Consumer, in.Metrics)

	if in.Metrics != nil {
		startServer(in.Metrics, in.Logger)
	}
	in.Logger.Info("pickup-audit worker started")
	return in.Consumer.Run(in.Ctx)
}

func closeWorker(logger logx.Logger, consumer *kafka.Consumer, metricsServer *http.Server) {
	if err := consumer.Close(); err != nil {
		logger.Error("kafka close error", logx.Err(err))
	}
	if metricsServer != nil {
		gracefulShutdown(metricsServer, logger, time.Second)
	}
	_ = logger.Sync()
}
