// Package redis parks unprocessable events in a Redis list for inspection.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/IT21177828/CTSE-Project/internal/domains/notifications/ports"
)

// DefaultKey is the list poison messages are pushed onto.
const DefaultKey = "notifications:order-placed:dead-letter"

var _ ports.DeadLetterSink = (*DeadLetterSink)(nil)

// DeadLetterSink appends dead letters to a Redis list. Entries carry the
// failure reason and the raw payload so an operator can replay or discard
// them by hand.
type DeadLetterSink struct {
	client *redis.Client
	key    string
}

// NewDeadLetterSink wires a Redis client into the sink. key may be empty to
// use DefaultKey.
func NewDeadLetterSink(client *redis.Client, key string) *DeadLetterSink {
	if key == "" {
		key = DefaultKey
	}
	return &DeadLetterSink{client: client, key: key}
}

type deadLetter struct {
	At      time.Time `json:"at"`
	Reason  string    `json:"reason"`
	Payload string    `json:"payload"`
}

func (s *DeadLetterSink) Push(ctx context.Context, reason string, payload []byte) error {
	if s == nil || s.client == nil {
		return fmt.Errorf("dead letter sink not configured")
	}
	entry, err := json.Marshal(deadLetter{
		At:      time.Now().UTC(),
		Reason:  reason,
		Payload: string(payload),
	})
	if err != nil {
		return fmt.Errorf("encode dead letter: %w", err)
	}
	if err := s.client.LPush(ctx, s.key, entry).Err(); err != nil {
		return fmt.Errorf("push dead letter: %w", err)
	}
	return nil
}
