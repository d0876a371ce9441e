// Package orderapi boots the order service process.
package orderapi

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"

	ordersinventory "github.com/IT21177828/CTSE-Project/internal/domains/orders/adapters/external/inventory"
	ordershttp "github.com/IT21177828/CTSE-Project/internal/domains/orders/adapters/http"
	orderskafka "github.com/IT21177828/CTSE-Project/internal/domains/orders/adapters/kafka"
	ordersmemory "github.com/IT21177828/CTSE-Project/internal/domains/orders/adapters/memory"
	ordersobs "github.com/IT21177828/CTSE-Project/internal/domains/orders/adapters/observability"
	orderspostgres "github.com/IT21177828/CTSE-Project/internal/domains/orders/adapters/persistence/postgres"
	ordersworkflows "github.com/IT21177828/CTSE-Project/internal/domains/orders/adapters/workflows"
	ordersapp "github.com/IT21177828/CTSE-Project/internal/domains/orders/application"
	ordersports "github.com/IT21177828/CTSE-Project/internal/domains/orders/ports"
	platformkafka "github.com/IT21177828/CTSE-Project/internal/platform/kafka"
	platformobservability "github.com/IT21177828/CTSE-Project/internal/platform/observability"
	platformpostgres "github.com/IT21177828/CTSE-Project/internal/platform/postgres"
)

// Run boots the order HTTP API with observability, persistence, the stock
// client, the event publisher, and workflows wired.
func Run(ctx context.Context) error {
	const serviceName = "order-service"
	cfg := LoadConfig()

	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	orderRepo, cleanupRepo := buildOrderRepository(ctx, cfg, logger)
	defer cleanupRepo()

	stockClient, err := ordersinventory.NewClient(cfg.InventoryBaseURL, nil)
	if err != nil {
		return fmt.Errorf("failed to build inventory client: %w", err)
	}

	publisher, cleanupPublisher := buildEventPublisher(cfg, logger)
	defer cleanupPublisher()

	coreService := ordersapp.NewService(orderRepo, stockClient, publisher)
	orderService := ordersobs.New(
		coreService,
		ordersobs.WithLogger(logger),
		ordersobs.WithTracer(instruments.Tracer("internal.orders.application")),
		ordersobs.WithMeter(instruments.Meter("internal.orders.application")),
	)

	var orderWorkflows ordersports.WorkflowOrchestrator = ordersworkflows.NewInlineOrderWorkflows(orderService)
	if temporalClient, err := connectTemporalClient(cfg, instruments); err != nil {
		logger.Warn("Temporal workflows unavailable, running inline PlaceOrder", slog.String("error", err.Error()))
	} else {
		defer temporalClient.Close()
		orderWorkflows = ordersworkflows.NewTemporalOrderWorkflows(temporalClient)
		logger.Info("Temporal workflows enabled", slog.String("namespace", cfg.TemporalNamespace))
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware(serviceName))
	ordershttp.NewAPI(orderWorkflows).Register(router)

	addr := ":" + cfg.Port
	logger.Info("order service listening", slog.String("addr", addr))
	if err := router.Run(addr); err != nil {
		logger.Error("order service exited", slog.String("addr", addr), slog.String("error", err.Error()))
		return err
	}
	return nil
}

func buildOrderRepository(ctx context.Context, cfg Config, logger *slog.Logger) (ordersports.Repository, func()) {
	if cfg.PostgresDSN == "" {
		logger.Warn("POSTGRES_DSN not set, falling back to in-memory order repository")
		return ordersmemory.NewRepository(), func() {}
	}
	db, cleanup := platformpostgres.ConnectFromEnv(ctx, "POSTGRES_DSN", logger)
	if db == nil {
		return ordersmemory.NewRepository(), cleanup
	}
	logger.Info("order repository configured with postgres")
	return orderspostgres.NewRepository(db), cleanup
}

func buildEventPublisher(cfg Config, logger *slog.Logger) (ordersports.EventPublisher, func()) {
	if cfg.KafkaBrokers == "" {
		logger.Warn("KAFKA_BROKERS not set, OrderPlaced events will be dropped")
		return &orderskafka.NoOpPublisher{Logger: logger}, func() {}
	}
	producer, err := platformkafka.NewSyncProducer(platformkafka.Config{
		Brokers: platformkafka.ParseBrokers(cfg.KafkaBrokers),
		Topic:   platformkafka.TopicOrderPlaced,
	})
	if err != nil {
		logger.Warn("failed to connect to kafka, OrderPlaced events will be dropped", slog.String("error", err.Error()))
		return &orderskafka.NoOpPublisher{Logger: logger}, func() {}
	}
	logger.Info("event publisher configured with kafka", slog.String("topic", platformkafka.TopicOrderPlaced))
	return orderskafka.NewPublisher(producer, logger), func() { _ = producer.Close() }
}

func connectTemporalClient(cfg Config, instruments *platformobservability.Instruments) (client.Client, error) {
	if cfg.TemporalDisabled {
		return nil, errors.New("temporal disabled via TEMPORAL_DISABLED env")
	}
	tracerOptions := temporalotel.TracerOptions{}
	if instruments != nil {
		tracerOptions.Tracer = instruments.Tracer("temporal-client")
	}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(tracerOptions)
	if err != nil {
		return nil, err
	}
	options := client.Options{
		HostPort:  cfg.TemporalAddress,
		Namespace: cfg.TemporalNamespace,
		Logger:    workerlog.NewStructuredLogger(instruments.Logger),
	}
	options.Interceptors = append(options.Interceptors, tracingInterceptor)
	return client.Dial(options)
}
