package ports

import (
	"context"
	"errors"
)

// ErrStockCheckUnavailable marks transport failures (timeout, connection
// refused, unexpected status) talking to the inventory service. It is kept
// distinct from a deterministic false so callers never mistake an outage
// for "out of stock".
var ErrStockCheckUnavailable = errors.New("inventory service unavailable")

// StockChecker is the synchronous outbound call to the inventory service's
// check-and-reserve endpoint. A false result means the reservation was
// denied; errors wrap ErrStockCheckUnavailable. No automatic retry is
// performed.
type StockChecker interface {
	CheckAndReserve(ctx context.Context, skuCode string, quantity int) (bool, error)
}
