package ports

import (
	"context"

	"github.com/IT21177828/CTSE-Project/internal/domains/orders/domain"
)

// EventPublisher delivers OrderPlaced events to the event channel. The call
// returns only after the channel acknowledged the message; consumer
// processing stays decoupled. Implementations inject the caller's trace
// context into transport metadata so downstream consumers can correlate.
type EventPublisher interface {
	PublishOrderPlaced(ctx context.Context, event domain.OrderPlaced) error
}
