package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/IT21177828/CTSE-Project/internal/domains/orders/domain"
	platformkafka "github.com/IT21177828/CTSE-Project/internal/platform/kafka"
)

func mockProducerConfig() *sarama.Config {
	config := mocks.NewTestConfig()
	config.Producer.Return.Successes = true
	return config
}

func testEvent() domain.OrderPlaced {
	return domain.OrderPlaced{
		OrderNumber: "7f9b6a2e-order",
		Email:       "jane@example.com",
		FirstName:   "Jane",
		LastName:    "Doe",
	}
}

func TestPublishOrderPlaced_SendsEventToTopic(t *testing.T) {
	producer := mocks.NewSyncProducer(t, mockProducerConfig())
	var captured *sarama.ProducerMessage
	producer.ExpectSendMessageWithMessageCheckerFunctionAndSucceed(func(msg *sarama.ProducerMessage) error {
		captured = msg
		return nil
	})

	publisher := NewPublisher(producer, slog.Default())
	err := publisher.PublishOrderPlaced(context.Background(), testEvent())
	require.NoError(t, err)
	require.NoError(t, producer.Close())

	require.NotNil(t, captured)
	assert.Equal(t, platformkafka.TopicOrderPlaced, captured.Topic)

	raw, encodeErr := captured.Value.Encode()
	require.NoError(t, encodeErr)
	var payload map[string]string
	require.NoError(t, json.Unmarshal(raw, &payload))
	assert.Equal(t, "7f9b6a2e-order", payload["orderNumber"])
	assert.Equal(t, "jane@example.com", payload["email"])
	assert.Equal(t, "Jane", payload["firstName"])
	assert.Equal(t, "Doe", payload["lastName"])
}

func TestPublishOrderPlaced_InjectsTraceHeaders(t *testing.T) {
	otel.SetTextMapPropagator(propagation.TraceContext{})
	provider := sdktrace.NewTracerProvider()
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	ctx, span := provider.Tracer("test").Start(context.Background(), "inbound request")
	defer span.End()
	wantTraceID := span.SpanContext().TraceID().String()

	producer := mocks.NewSyncProducer(t, mockProducerConfig())
	var captured *sarama.ProducerMessage
	producer.ExpectSendMessageWithMessageCheckerFunctionAndSucceed(func(msg *sarama.ProducerMessage) error {
		captured = msg
		return nil
	})

	publisher := NewPublisher(producer, slog.Default())
	require.NoError(t, publisher.PublishOrderPlaced(ctx, testEvent()))
	require.NoError(t, producer.Close())

	require.NotNil(t, captured)
	var traceparent string
	for _, header := range captured.Headers {
		if string(header.Key) == "traceparent" {
			traceparent = string(header.Value)
		}
	}
	require.NotEmpty(t, traceparent, "record must carry the W3C trace context header")
	assert.Contains(t, traceparent, wantTraceID)
}

func TestPublishOrderPlaced_BrokerErrorSurfaces(t *testing.T) {
	producer := mocks.NewSyncProducer(t, mockProducerConfig())
	producer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	publisher := NewPublisher(producer, slog.Default())
	err := publisher.PublishOrderPlaced(context.Background(), testEvent())
	require.Error(t, err)
	assert.True(t, errors.Is(err, sarama.ErrOutOfBrokers))
	require.NoError(t, producer.Close())
}

func TestNoOpPublisher_DropsEvent(t *testing.T) {
	publisher := &NoOpPublisher{Logger: slog.Default()}
	assert.NoError(t, publisher.PublishOrderPlaced(context.Background(), testEvent()))
}
