//go:build integration

package postgres

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/IT21177828/CTSE-Project/internal/domains/inventory/domain"
	"github.com/IT21177828/CTSE-Project/internal/domains/inventory/ports"
)

func setupInventoryPostgresContainer(t *testing.T) (*gorm.DB, func()) {
	ctx := context.Background()

	pgContainer, err := tcpostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcpostgres.WithDatabase("inventory_test"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	cleanup := func() {
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			sqlDB.Close()
		}
		pgContainer.Terminate(ctx)
	}

	return db, cleanup
}

func TestRepository_ReserveDecrements(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupInventoryPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()

	item, err := domain.NewInventory(0, "WIDGET-1", 10)
	require.NoError(t, err)
	_, err = repo.Save(ctx, item)
	require.NoError(t, err)

	granted, err := repo.Reserve(ctx, "WIDGET-1", 4)
	require.NoError(t, err)
	assert.True(t, granted)

	remaining, err := repo.FindBySKU(ctx, "WIDGET-1")
	require.NoError(t, err)
	assert.Equal(t, 6, remaining.Quantity)
}

func TestRepository_ReserveInsufficientStock(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupInventoryPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()

	item, err := domain.NewInventory(0, "WIDGET-1", 3)
	require.NoError(t, err)
	_, err = repo.Save(ctx, item)
	require.NoError(t, err)

	granted, err := repo.Reserve(ctx, "WIDGET-1", 4)
	require.NoError(t, err)
	assert.False(t, granted)

	remaining, err := repo.FindBySKU(ctx, "WIDGET-1")
	require.NoError(t, err)
	assert.Equal(t, 3, remaining.Quantity)
}

func TestRepository_ReserveUnknownSKU(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupInventoryPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)

	granted, err := repo.Reserve(context.Background(), "NO-SUCH-SKU", 1)
	require.NoError(t, err)
	assert.False(t, granted)
}

func TestRepository_ConcurrentReserveNeverOversells(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupInventoryPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()

	const available = 20
	item, err := domain.NewInventory(0, "WIDGET-1", available)
	require.NoError(t, err)
	_, err = repo.Save(ctx, item)
	require.NoError(t, err)

	var granted int64
	var wg sync.WaitGroup
	for i := 0; i < 30; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := repo.Reserve(ctx, "WIDGET-1", 1)
			require.NoError(t, err)
			if ok {
				atomic.AddInt64(&granted, 1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(available), granted)
	remaining, err := repo.FindBySKU(ctx, "WIDGET-1")
	require.NoError(t, err)
	assert.Equal(t, 0, remaining.Quantity)
}

func TestRepository_SaveDuplicateSKU(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupInventoryPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()

	item, err := domain.NewInventory(0, "WIDGET-1", 1)
	require.NoError(t, err)
	_, err = repo.Save(ctx, item)
	require.NoError(t, err)

	dup, err := domain.NewInventory(0, "WIDGET-1", 5)
	require.NoError(t, err)
	_, err = repo.Save(ctx, dup)
	assert.ErrorIs(t, err, ports.ErrDuplicateSKU)
}
