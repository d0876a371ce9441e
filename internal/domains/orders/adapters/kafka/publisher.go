// Package kafka publishes OrderPlaced events with trace context attached
// to the record headers.
package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/IBM/sarama"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/IT21177828/CTSE-Project/internal/domains/orders/domain"
	"github.com/IT21177828/CTSE-Project/internal/domains/orders/ports"
	platformkafka "github.com/IT21177828/CTSE-Project/internal/platform/kafka"
)

var _ ports.EventPublisher = (*Publisher)(nil)

// Publisher writes OrderPlaced events to the order-placed topic through a
// synchronous producer: PublishOrderPlaced returns only once the broker
// acknowledged the message. No partition key is set, so ordering across
// orders is not guaranteed; no consumer requires it.
type Publisher struct {
	producer sarama.SyncProducer
	topic    string
	logger   *slog.Logger
	tracer   trace.Tracer
}

// NewPublisher wires a sync producer into the publisher.
func NewPublisher(producer sarama.SyncProducer, logger *slog.Logger) *Publisher {
	return &Publisher{
		producer: producer,
		topic:    platformkafka.TopicOrderPlaced,
		logger:   logger,
		tracer:   otel.Tracer("orders-kafka-publisher"),
	}
}

func (p *Publisher) PublishOrderPlaced(ctx context.Context, event domain.OrderPlaced) error {
	if p == nil || p.producer == nil {
		return errors.New("kafka publisher not configured")
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal OrderPlaced event: %w", err)
	}
	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Value: sarama.ByteEncoder(payload),
	}

	ctx, span := p.tracer.Start(ctx, fmt.Sprintf("%s publish", p.topic),
		trace.WithSpanKind(trace.SpanKindProducer),
		trace.WithAttributes(
			attribute.String("messaging.system", "kafka"),
			attribute.String("messaging.destination.name", p.topic),
			attribute.String("order.number", event.OrderNumber),
		),
	)
	defer span.End()
	msg.Headers = injectTraceHeaders(ctx)

	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		span.SetStatus(otelcodes.Error, err.Error())
		p.logError(ctx, "failed to publish OrderPlaced event", err, event.OrderNumber)
		return fmt.Errorf("publish OrderPlaced for order %s: %w", event.OrderNumber, err)
	}
	span.SetAttributes(
		attribute.Int64("messaging.kafka.offset", offset),
		attribute.Int("messaging.kafka.partition", int(partition)),
	)
	if p.logger != nil {
		p.logger.InfoContext(ctx, "OrderPlaced event published",
			slog.String("orderNumber", event.OrderNumber),
			slog.Int64("offset", offset),
			slog.Int("partition", int(partition)),
		)
	}
	return nil
}

// injectTraceHeaders copies the active trace context into Kafka record
// headers. Kafka carries no native trace correlation, so the propagated
// token is the only link between the inbound request and the consumer.
func injectTraceHeaders(ctx context.Context) []sarama.RecordHeader {
	carrier := propagation.MapCarrier{}
	otel.GetTextMapPropagator().Inject(ctx, carrier)
	headers := make([]sarama.RecordHeader, 0, len(carrier))
	for key, value := range carrier {
		headers = append(headers, sarama.RecordHeader{
			Key:   []byte(key),
			Value: []byte(value),
		})
	}
	return headers
}

func (p *Publisher) logError(ctx context.Context, msg string, err error, orderNumber string) {
	if p.logger == nil {
		return
	}
	p.logger.ErrorContext(ctx, msg,
		slog.String("orderNumber", orderNumber),
		slog.String("error", err.Error()),
	)
}

// NoOpPublisher is used when the event channel is not configured. It keeps
// local development working but logs loudly: orders placed through it will
// never produce a confirmation mail.
type NoOpPublisher struct {
	Logger *slog.Logger
}

var _ ports.EventPublisher = (*NoOpPublisher)(nil)

func (n *NoOpPublisher) PublishOrderPlaced(ctx context.Context, event domain.OrderPlaced) error {
	if n.Logger != nil {
		n.Logger.WarnContext(ctx, "event channel not configured, dropping OrderPlaced event",
			slog.String("orderNumber", event.OrderNumber))
	}
	return nil
}
