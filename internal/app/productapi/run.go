// Package productapi boots the product catalog process.
package productapi

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	producthttp "github.com/IT21177828/CTSE-Project/internal/domains/products/adapters/http"
	productmemory "github.com/IT21177828/CTSE-Project/internal/domains/products/adapters/memory"
	productpostgres "github.com/IT21177828/CTSE-Project/internal/domains/products/adapters/persistence/postgres"
	productapp "github.com/IT21177828/CTSE-Project/internal/domains/products/application"
	productports "github.com/IT21177828/CTSE-Project/internal/domains/products/ports"
	platformobservability "github.com/IT21177828/CTSE-Project/internal/platform/observability"
	platformpostgres "github.com/IT21177828/CTSE-Project/internal/platform/postgres"
)

// Run boots the product catalog HTTP API.
func Run(ctx context.Context) error {
	const serviceName = "product-service"

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

	repo, cleanupRepo := buildProductRepository(ctx, logger)
	defer cleanupRepo()
	service := productapp.NewService(repo)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware(serviceName))
	producthttp.NewAPI(service).Register(router)

	addr := ":" + envDefault("PORT", "8080")
	logger.Info("product service listening", slog.String("addr", addr))
	if err := router.Run(addr); err != nil {
		logger.Error("product service exited", slog.String("addr", addr), slog.String("error", err.Error()))
		return err
	}
	return nil
}

func buildProductRepository(ctx context.Context, logger *slog.Logger) (productports.Repository, func()) {
	db, cleanup := platformpostgres.ConnectFromEnv(ctx, "POSTGRES_DSN", logger)
	if db == nil {
		return productmemory.NewRepository(), cleanup
	}
	logger.Info("product repository configured with postgres")
	return productpostgres.NewRepository(db), cleanup
}

func envDefault(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}
