package application_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IT21177828/CTSE-Project/internal/domains/orders/application"
	"github.com/IT21177828/CTSE-Project/internal/domains/orders/domain"
	"github.com/IT21177828/CTSE-Project/internal/domains/orders/ports"
)

type fakeStock struct {
	inStock bool
	err     error
	calls   int
}

func (f *fakeStock) CheckAndReserve(_ context.Context, _ string, _ int) (bool, error) {
	f.calls++
	return f.inStock, f.err
}

type fakeRepo struct {
	created []*domain.Order
	err     error
	nextID  int64
}

func (f *fakeRepo) Create(_ context.Context, order *domain.Order) (*domain.Order, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.nextID++
	clone := *order
	clone.ID = f.nextID
	f.created = append(f.created, &clone)
	result := clone
	return &result, nil
}

func (f *fakeRepo) GetByOrderNumber(_ context.Context, orderNumber string) (*domain.Order, error) {
	for _, order := range f.created {
		if order.OrderNumber == orderNumber {
			return order, nil
		}
	}
	return nil, ports.ErrNotFound
}

func (f *fakeRepo) List(_ context.Context) ([]*domain.Order, error) {
	return f.created, nil
}

type fakePublisher struct {
	published []domain.OrderPlaced
	err       error
}

func (f *fakePublisher) PublishOrderPlaced(_ context.Context, event domain.OrderPlaced) error {
	if f.err != nil {
		return f.err
	}
	f.published = append(f.published, event)
	return nil
}

func placeOrderInput() ports.PlaceOrderInput {
	return ports.PlaceOrderInput{
		SKUCode:   "iphone_15",
		Quantity:  2,
		Price:     1299.99,
		Email:     "jane@example.com",
		FirstName: "Jane",
		LastName:  "Doe",
	}
}

func TestPlaceOrder_Success(t *testing.T) {
	stock := &fakeStock{inStock: true}
	repo := &fakeRepo{}
	publisher := &fakePublisher{}
	service := application.NewService(repo, stock, publisher)

	order, err := service.PlaceOrder(context.Background(), placeOrderInput())
	require.NoError(t, err)
	require.NotNil(t, order)

	assert.NotEmpty(t, order.OrderNumber)
	assert.Equal(t, "iphone_15", order.SKUCode)
	assert.Equal(t, 2, order.Quantity)
	assert.Equal(t, 1299.99, order.Price)

	require.Len(t, repo.created, 1)
	require.Len(t, publisher.published, 1)
	event := publisher.published[0]
	assert.Equal(t, order.OrderNumber, event.OrderNumber)
	assert.Equal(t, "jane@example.com", event.Email)
	assert.Equal(t, "Jane", event.FirstName)
	assert.Equal(t, "Doe", event.LastName)
}

func TestPlaceOrder_OrderNumbersAreUnique(t *testing.T) {
	stock := &fakeStock{inStock: true}
	repo := &fakeRepo{}
	publisher := &fakePublisher{}
	service := application.NewService(repo, stock, publisher)

	seen := map[string]bool{}
	for i := 0; i < 10; i++ {
		order, err := service.PlaceOrder(context.Background(), placeOrderInput())
		require.NoError(t, err)
		assert.False(t, seen[order.OrderNumber], "order number %s issued twice", order.OrderNumber)
		seen[order.OrderNumber] = true
	}
}

func TestPlaceOrder_OutOfStock(t *testing.T) {
	stock := &fakeStock{inStock: false}
	repo := &fakeRepo{}
	publisher := &fakePublisher{}
	service := application.NewService(repo, stock, publisher)

	order, err := service.PlaceOrder(context.Background(), placeOrderInput())
	require.Error(t, err)
	assert.Nil(t, order)

	var outOfStock *application.OutOfStockError
	require.ErrorAs(t, err, &outOfStock)
	assert.Equal(t, "iphone_15", outOfStock.SKUCode)
	assert.Contains(t, err.Error(), "iphone_15")

	assert.Empty(t, repo.created, "rejected order must not be persisted")
	assert.Empty(t, publisher.published, "rejected order must not publish an event")
}

func TestPlaceOrder_StockCheckUnavailable(t *testing.T) {
	stock := &fakeStock{err: ports.ErrStockCheckUnavailable}
	repo := &fakeRepo{}
	publisher := &fakePublisher{}
	service := application.NewService(repo, stock, publisher)

	_, err := service.PlaceOrder(context.Background(), placeOrderInput())
	require.Error(t, err)

	// An unreachable inventory service is a fault, never an out-of-stock answer.
	assert.ErrorIs(t, err, ports.ErrStockCheckUnavailable)
	var outOfStock *application.OutOfStockError
	assert.False(t, errors.As(err, &outOfStock))

	assert.Empty(t, repo.created)
	assert.Empty(t, publisher.published)
}

func TestPlaceOrder_PersistFailureSkipsPublish(t *testing.T) {
	stock := &fakeStock{inStock: true}
	repo := &fakeRepo{err: errors.New("connection reset")}
	publisher := &fakePublisher{}
	service := application.NewService(repo, stock, publisher)

	_, err := service.PlaceOrder(context.Background(), placeOrderInput())
	require.Error(t, err)
	assert.Empty(t, publisher.published, "no event may be emitted for an order that was not persisted")
}

func TestPlaceOrder_PublishFailureKeepsOrder(t *testing.T) {
	stock := &fakeStock{inStock: true}
	repo := &fakeRepo{}
	publisher := &fakePublisher{err: errors.New("broker unavailable")}
	service := application.NewService(repo, stock, publisher)

	order, err := service.PlaceOrder(context.Background(), placeOrderInput())
	require.Error(t, err)
	assert.Nil(t, order)

	var publishErr *application.PublishError
	require.ErrorAs(t, err, &publishErr)

	// The order record survives the failed publication.
	require.Len(t, repo.created, 1)
	assert.Equal(t, publishErr.OrderNumber, repo.created[0].OrderNumber)
}

func TestPlaceOrder_StockCheckedBeforePersisting(t *testing.T) {
	stock := &fakeStock{inStock: false}
	repo := &fakeRepo{}
	service := application.NewService(repo, stock, &fakePublisher{})

	_, err := service.PlaceOrder(context.Background(), placeOrderInput())
	require.Error(t, err)
	assert.Equal(t, 1, stock.calls)
	assert.Empty(t, repo.created)
}
