// Package inventoryapi boots the inventory service process.
package inventoryapi

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	inventoryhttp "github.com/IT21177828/CTSE-Project/internal/domains/inventory/adapters/http"
	inventorymemory "github.com/IT21177828/CTSE-Project/internal/domains/inventory/adapters/memory"
	inventoryobs "github.com/IT21177828/CTSE-Project/internal/domains/inventory/adapters/observability"
	inventorypostgres "github.com/IT21177828/CTSE-Project/internal/domains/inventory/adapters/persistence/postgres"
	inventoryapp "github.com/IT21177828/CTSE-Project/internal/domains/inventory/application"
	inventoryports "github.com/IT21177828/CTSE-Project/internal/domains/inventory/ports"
	platformobservability "github.com/IT21177828/CTSE-Project/internal/platform/observability"
	platformpostgres "github.com/IT21177828/CTSE-Project/internal/platform/postgres"
)

// Run boots the inventory HTTP API. The check-and-reserve endpoint it serves
// is the stock gate of the order flow, so persistence must be backed by a
// store whose decrement is atomic; both the memory and postgres adapters
// guarantee that.
func Run(ctx context.Context) error {
	const serviceName = "inventory-service"

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

	repo, cleanupRepo := buildInventoryRepository(ctx, logger)
	defer cleanupRepo()

	coreService := inventoryapp.NewService(repo)
	service := inventoryobs.New(
		coreService,
		inventoryobs.WithLogger(logger),
		inventoryobs.WithTracer(instruments.Tracer("internal.inventory.application")),
		inventoryobs.WithMeter(instruments.Meter("internal.inventory.application")),
	)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware(serviceName))
	inventoryhttp.NewAPI(service).Register(router)

	addr := ":" + envDefault("PORT", "8082")
	logger.Info("inventory service listening", slog.String("addr", addr))
	if err := router.Run(addr); err != nil {
		logger.Error("inventory service exited", slog.String("addr", addr), slog.String("error", err.Error()))
		return err
	}
	return nil
}

func buildInventoryRepository(ctx context.Context, logger *slog.Logger) (inventoryports.Repository, func()) {
	db, cleanup := platformpostgres.ConnectFromEnv(ctx, "POSTGRES_DSN", logger)
	if db == nil {
		return inventorymemory.NewRepository(), cleanup
	}
	logger.Info("inventory repository configured with postgres")
	return inventorypostgres.NewRepository(db), cleanup
}

func envDefault(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}
