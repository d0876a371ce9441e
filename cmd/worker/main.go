package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"

	"github.com/IT21177828/CTSE-Project/internal/app/orderapi"
	ordersinventory "github.com/IT21177828/CTSE-Project/internal/domains/orders/adapters/external/inventory"
	orderskafka "github.com/IT21177828/CTSE-Project/internal/domains/orders/adapters/kafka"
	ordersmemory "github.com/IT21177828/CTSE-Project/internal/domains/orders/adapters/memory"
	ordersobs "github.com/IT21177828/CTSE-Project/internal/domains/orders/adapters/observability"
	orderspostgres "github.com/IT21177828/CTSE-Project/internal/domains/orders/adapters/persistence/postgres"
	ordersapp "github.com/IT21177828/CTSE-Project/internal/domains/orders/application"
	ordersports "github.com/IT21177828/CTSE-Project/internal/domains/orders/ports"
	platformkafka "github.com/IT21177828/CTSE-Project/internal/platform/kafka"
	platformobservability "github.com/IT21177828/CTSE-Project/internal/platform/observability"
	platformpostgres "github.com/IT21177828/CTSE-Project/internal/platform/postgres"
	orderactivities "github.com/IT21177828/CTSE-Project/internal/platform/temporal/activities/orders"
	orderworkflows "github.com/IT21177828/CTSE-Project/internal/platform/temporal/workflows/orders"
)

func main() {
	ctx := context.Background()
	const serviceName = "order-worker"
	cfg := orderapi.LoadConfig()

	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		log.Fatalf("failed to initialize observability: %v", err)
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
		logger.Error("failed to build inventory client", slog.String("error", err.Error()))
		os.Exit(1)
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
	orderActivities := orderactivities.NewActivities(orderService)

	tracerOptions := temporalotel.TracerOptions{Tracer: instruments.Tracer("temporal-worker")}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(tracerOptions)
	if err != nil {
		logger.Error("failed to configure Temporal tracing interceptor", slog.String("error", err.Error()))
		os.Exit(1)
	}
	clientOptions := client.Options{
		HostPort:  cfg.TemporalAddress,
		Namespace: cfg.TemporalNamespace,
		Logger:    workerlog.NewStructuredLogger(logger),
	}
	clientOptions.Interceptors = append(clientOptions.Interceptors, tracingInterceptor)
	temporalClient, err := client.Dial(clientOptions)
	if err != nil {
		logger.Error("failed to create Temporal client", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer temporalClient.Close()

	w := worker.New(temporalClient, orderworkflows.OrderPlacementTaskQueue, worker.Options{})
	w.RegisterWorkflowWithOptions(orderworkflows.OrderPlacementWorkflow, workflow.RegisterOptions{Name: orderworkflows.OrderPlacementWorkflowName})
	w.RegisterActivityWithOptions(orderActivities.PlaceOrder, activity.RegisterOptions{Name: orderactivities.PlaceOrderActivityName})

	logger.Info("worker listening", slog.String("taskQueue", orderworkflows.OrderPlacementTaskQueue), slog.String("namespace", clientOptions.Namespace))
	if err := w.Run(worker.InterruptCh()); err != nil {
		logger.Error("Temporal worker exited with error", slog.String("error", err.Error()))
		return
	}
	logger.Info("Temporal worker stopped")
}

func buildOrderRepository(ctx context.Context, cfg orderapi.Config, logger *slog.Logger) (ordersports.Repository, func()) {
	if cfg.PostgresDSN == "" {
		logger.Warn("POSTGRES_DSN not set, falling back to in-memory order repository")
		return ordersmemory.NewRepository(), func() {}
	}
	db, cleanup := platformpostgres.ConnectFromEnv(ctx, "POSTGRES_DSN", logger)
	if db == nil {
		return ordersmemory.NewRepository(), cleanup
	}
	logger.Info("worker order repository configured with postgres")
	return orderspostgres.NewRepository(db), cleanup
}

func buildEventPublisher(cfg orderapi.Config, logger *slog.Logger) (ordersports.EventPublisher, func()) {
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
	return orderskafka.NewPublisher(producer, logger), func() { _ = producer.Close() }
}
