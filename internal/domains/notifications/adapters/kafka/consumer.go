// Package kafka consumes OrderPlaced events from the order-placed topic.
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

	"github.com/IT21177828/CTSE-Project/internal/domains/notifications/domain"
	"github.com/IT21177828/CTSE-Project/internal/domains/notifications/ports"
)

// errPoison marks a message that can never be processed, no matter how often
// it is redelivered. It is parked in the dead letter sink and acknowledged.
var errPoison = errors.New("poison message")

// Handler is the notification context's entry point. Adapters hand it a
// decoded event; transport concerns stay out of the application service.
type Handler interface {
	HandleOrderPlaced(ctx context.Context, event domain.OrderPlaced) error
}

var _ sarama.ConsumerGroupHandler = (*Consumer)(nil)

// Consumer implements sarama's consumer group contract for the order-placed
// topic. Offsets are committed only after the handler succeeded, so a mail
// failure leads to redelivery rather than a lost notification.
type Consumer struct {
	handler Handler
	dlq     ports.DeadLetterSink
	logger  *slog.Logger
	tracer  trace.Tracer
}

// NewConsumer wires the event handler and the dead letter sink. dlq may be
// nil; poison messages are then dropped after logging.
func NewConsumer(handler Handler, dlq ports.DeadLetterSink, logger *slog.Logger) *Consumer {
	return &Consumer{
		handler: handler,
		dlq:     dlq,
		logger:  logger,
		tracer:  otel.Tracer("notifications-kafka-consumer"),
	}
}

func (c *Consumer) Setup(sarama.ConsumerGroupSession) error   { return nil }
func (c *Consumer) Cleanup(sarama.ConsumerGroupSession) error { return nil }

// ConsumeClaim processes one partition claim. Successful and poison messages
// are marked; any other failure aborts the claim without marking, so the
// message comes back on the next session.
func (c *Consumer) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case msg, ok := <-claim.Messages():
			if !ok {
				return nil
			}
			err := c.handleMessage(session.Context(), msg)
			switch {
			case err == nil:
				session.MarkMessage(msg, "")
			case errors.Is(err, errPoison):
				c.parkPoison(session.Context(), msg, err)
				session.MarkMessage(msg, "")
			default:
				return err
			}
		case <-session.Context().Done():
			return nil
		}
	}
}

// handleMessage decodes one record and dispatches it. The trace context is
// restored from the record headers when present; events without one are
// processed all the same.
func (c *Consumer) handleMessage(ctx context.Context, msg *sarama.ConsumerMessage) error {
	ctx = extractTraceContext(ctx, msg)
	ctx, span := c.tracer.Start(ctx, fmt.Sprintf("%s process", msg.Topic),
		trace.WithSpanKind(trace.SpanKindConsumer),
		trace.WithAttributes(
			attribute.String("messaging.system", "kafka"),
			attribute.String("messaging.destination.name", msg.Topic),
			attribute.Int64("messaging.kafka.offset", msg.Offset),
		),
	)
	defer span.End()

	var event domain.OrderPlaced
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		span.SetStatus(otelcodes.Error, err.Error())
		return fmt.Errorf("%w: unmarshal OrderPlaced: %v", errPoison, err)
	}
	span.SetAttributes(attribute.String("order.number", event.OrderNumber))

	if err := c.handler.HandleOrderPlaced(ctx, event); err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		c.logError(ctx, "handling OrderPlaced failed, leaving event for redelivery", err, event.OrderNumber)
		return err
	}
	return nil
}

func (c *Consumer) parkPoison(ctx context.Context, msg *sarama.ConsumerMessage, cause error) {
	c.logError(ctx, "poison message on order-placed topic", cause, "")
	if c.dlq == nil {
		return
	}
	if err := c.dlq.Push(ctx, cause.Error(), msg.Value); err != nil {
		c.logError(ctx, "failed to park poison message", err, "")
	}
}

// extractTraceContext restores the propagated trace from record headers. A
// missing or malformed header yields the unchanged context; tracing is
// best-effort, processing is not conditional on it.
func extractTraceContext(ctx context.Context, msg *sarama.ConsumerMessage) context.Context {
	carrier := propagation.MapCarrier{}
	for _, header := range msg.Headers {
		if header == nil {
			continue
		}
		carrier[string(header.Key)] = string(header.Value)
	}
	return otel.GetTextMapPropagator().Extract(ctx, carrier)
}

func (c *Consumer) logError(ctx context.Context, message string, err error, orderNumber string) {
	if c.logger == nil {
		return
	}
	attrs := []slog.Attr{slog.String("error", err.Error())}
	if orderNumber != "" {
		attrs = append(attrs, slog.String("orderNumber", orderNumber))
	}
	c.logger.LogAttrs(ctx, slog.LevelError, message, attrs...)
}

// Run drives the consumer group until the context is cancelled. Consume
// returns whenever the group rebalances, so it is called in a loop.
func Run(ctx context.Context, group sarama.ConsumerGroup, topics []string, consumer *Consumer, logger *slog.Logger) error {
	for {
		if err := group.Consume(ctx, topics, consumer); err != nil {
			if errors.Is(err, sarama.ErrClosedConsumerGroup) {
				return nil
			}
			if logger != nil {
				logger.ErrorContext(ctx, "consumer group session ended", slog.String("error", err.Error()))
			}
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
}
