// Package kafka holds shared Sarama construction for the order-placed
// event channel.
package kafka

import (
	"strings"
	"time"

	"github.com/IBM/sarama"
)

// TopicOrderPlaced is the single logical topic carrying OrderPlaced events.
const TopicOrderPlaced = "order-placed"

// Config carries broker and consumer-group settings for the event channel.
type Config struct {
	Brokers []string
	Topic   string
	GroupID string
}

// ParseBrokers splits a comma-separated broker list.
func ParseBrokers(raw string) []string {
	parts := strings.Split(raw, ",")
	brokers := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			brokers = append(brokers, p)
		}
	}
	return brokers
}

func newSaramaConfig() *sarama.Config {
	cfg := sarama.NewConfig()
	cfg.Version = sarama.V3_7_0_0
	cfg.Producer.Return.Successes = true
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Consumer.Return.Errors = true
	cfg.Consumer.Offsets.Initial = sarama.OffsetNewest
	cfg.Metadata.Retry.Max = 5
	cfg.Metadata.Retry.Backoff = 2 * time.Second
	return cfg
}

// NewSyncProducer builds a producer that blocks until the broker
// acknowledges the write. The order flow relies on this: placement only
// reports success once the channel accepted the event.
func NewSyncProducer(cfg Config) (sarama.SyncProducer, error) {
	return sarama.NewSyncProducer(cfg.Brokers, newSaramaConfig())
}

// NewConsumerGroup builds a consumer group for at-least-once consumption.
func NewConsumerGroup(cfg Config) (sarama.ConsumerGroup, error) {
	return sarama.NewConsumerGroup(cfg.Brokers, cfg.GroupID, newSaramaConfig())
}
