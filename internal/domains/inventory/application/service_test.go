package application

import (
	"context"
	"math/rand"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	invmemory "github.com/IT21177828/CTSE-Project/internal/domains/inventory/adapters/memory"
	"github.com/IT21177828/CTSE-Project/internal/domains/inventory/domain"
	"github.com/IT21177828/CTSE-Project/internal/domains/inventory/ports"
)

func seedInventory(t *testing.T, repo *invmemory.Repository, sku string, quantity int) {
	t.Helper()
	item, err := domain.NewInventory(0, sku, quantity)
	require.NoError(t, err)
	_, err = repo.Save(context.Background(), item)
	require.NoError(t, err)
}

func TestIsInStock_ReservesWhenAvailable(t *testing.T) {
	repo := invmemory.NewRepository()
	seedInventory(t, repo, "WIDGET-1", 10)
	svc := NewService(repo)

	granted, err := svc.IsInStock(context.Background(), "WIDGET-1", 4)
	require.NoError(t, err)
	require.True(t, granted)

	remaining, err := svc.GetBySKU(context.Background(), "WIDGET-1")
	require.NoError(t, err)
	require.Equal(t, 6, remaining.Quantity)
}

func TestIsInStock_InsufficientStockLeavesQuantityUnchanged(t *testing.T) {
	repo := invmemory.NewRepository()
	seedInventory(t, repo, "WIDGET-1", 3)
	svc := NewService(repo)

	granted, err := svc.IsInStock(context.Background(), "WIDGET-1", 4)
	require.NoError(t, err)
	require.False(t, granted)

	remaining, err := svc.GetBySKU(context.Background(), "WIDGET-1")
	require.NoError(t, err)
	require.Equal(t, 3, remaining.Quantity)
}

func TestIsInStock_NonPositiveQuantity(t *testing.T) {
	repo := invmemory.NewRepository()
	seedInventory(t, repo, "WIDGET-1", 3)
	svc := NewService(repo)

	for _, quantity := range []int{0, -1} {
		granted, err := svc.IsInStock(context.Background(), "WIDGET-1", quantity)
		require.NoError(t, err)
		require.False(t, granted)
	}

	remaining, err := svc.GetBySKU(context.Background(), "WIDGET-1")
	require.NoError(t, err)
	require.Equal(t, 3, remaining.Quantity)
}

func TestIsInStock_UnknownSKUIsNotAnError(t *testing.T) {
	svc := NewService(invmemory.NewRepository())

	granted, err := svc.IsInStock(context.Background(), "NO-SUCH-SKU", 1)
	require.NoError(t, err)
	require.False(t, granted)
}

// Concurrent reservations against one SKU must never grant more than the
// available quantity in total, regardless of interleaving.
func TestIsInStock_ConcurrentReservationsNeverOversell(t *testing.T) {
	const available = 100
	repo := invmemory.NewRepository()
	seedInventory(t, repo, "WIDGET-1", available)
	svc := NewService(repo)

	rng := rand.New(rand.NewSource(42))
	requesters := 50
	quantities := make([]int, requesters)
	for i := range quantities {
		quantities[i] = 1 + rng.Intn(7)
	}

	var granted int64
	var wg sync.WaitGroup
	for _, quantity := range quantities {
		wg.Add(1)
		go func(q int) {
			defer wg.Done()
			ok, err := svc.IsInStock(context.Background(), "WIDGET-1", q)
			require.NoError(t, err)
			if ok {
				atomic.AddInt64(&granted, int64(q))
			}
		}(quantity)
	}
	wg.Wait()

	require.LessOrEqual(t, granted, int64(available))

	remaining, err := svc.GetBySKU(context.Background(), "WIDGET-1")
	require.NoError(t, err)
	require.Equal(t, available-int(granted), remaining.Quantity)
	require.GreaterOrEqual(t, remaining.Quantity, 0)
}

func TestAdd_RejectsNegativeQuantity(t *testing.T) {
	svc := NewService(invmemory.NewRepository())

	_, err := svc.Add(context.Background(), &domain.Inventory{SKUCode: "WIDGET-1", Quantity: -5})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdateQuantity_SetsAbsoluteValue(t *testing.T) {
	repo := invmemory.NewRepository()
	seedInventory(t, repo, "WIDGET-1", 3)
	svc := NewService(repo)

	item, err := svc.GetBySKU(context.Background(), "WIDGET-1")
	require.NoError(t, err)

	updated, err := svc.UpdateQuantity(context.Background(), item.ID, 42)
	require.NoError(t, err)
	require.Equal(t, 42, updated.Quantity)
}

func TestUpdateQuantity_UnknownID(t *testing.T) {
	svc := NewService(invmemory.NewRepository())

	_, err := svc.UpdateQuantity(context.Background(), 999, 1)
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestDelete_RemovesItem(t *testing.T) {
	repo := invmemory.NewRepository()
	seedInventory(t, repo, "WIDGET-1", 3)
	svc := NewService(repo)

	item, err := svc.GetBySKU(context.Background(), "WIDGET-1")
	require.NoError(t, err)
	require.NoError(t, svc.Delete(context.Background(), item.ID))

	_, err = svc.GetBySKU(context.Background(), "WIDGET-1")
	require.ErrorIs(t, err, ports.ErrNotFound)
}
