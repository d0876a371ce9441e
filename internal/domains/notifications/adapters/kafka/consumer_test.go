package kafka

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/IBM/sarama"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	oteltrace "go.opentelemetry.io/otel/trace"

	"github.com/IT21177828/CTSE-Project/internal/domains/notifications/domain"
)

type fakeHandler struct {
	events []domain.OrderPlaced
	ctxs   []context.Context
	err    error
}

func (f *fakeHandler) HandleOrderPlaced(ctx context.Context, event domain.OrderPlaced) error {
	f.events = append(f.events, event)
	f.ctxs = append(f.ctxs, ctx)
	return f.err
}

type fakeSink struct {
	reasons  []string
	payloads [][]byte
}

func (f *fakeSink) Push(_ context.Context, reason string, payload []byte) error {
	f.reasons = append(f.reasons, reason)
	f.payloads = append(f.payloads, payload)
	return nil
}

func orderPlacedMessage(value string, headers []*sarama.RecordHeader) *sarama.ConsumerMessage {
	return &sarama.ConsumerMessage{
		Topic:   "order-placed",
		Value:   []byte(value),
		Headers: headers,
	}
}

const validPayload = `{"orderNumber":"7f9b6a2e-order","email":"jane@example.com","firstName":"Jane","lastName":"Doe"}`

func TestHandleMessage_DispatchesEvent(t *testing.T) {
	handler := &fakeHandler{}
	consumer := NewConsumer(handler, &fakeSink{}, slog.Default())

	err := consumer.handleMessage(context.Background(), orderPlacedMessage(validPayload, nil))
	require.NoError(t, err)

	require.Len(t, handler.events, 1)
	event := handler.events[0]
	assert.Equal(t, "7f9b6a2e-order", event.OrderNumber)
	assert.Equal(t, "jane@example.com", event.Email)
	assert.Equal(t, "Jane", event.FirstName)
	assert.Equal(t, "Doe", event.LastName)
}

func TestHandleMessage_MissingTraceHeaderIsFine(t *testing.T) {
	handler := &fakeHandler{}
	consumer := NewConsumer(handler, &fakeSink{}, slog.Default())

	// No traceparent header at all: the event is still processed.
	err := consumer.handleMessage(context.Background(), orderPlacedMessage(validPayload, nil))
	require.NoError(t, err)
	assert.Len(t, handler.events, 1)
}

func TestHandleMessage_RestoresTraceContextFromHeaders(t *testing.T) {
	otel.SetTextMapPropagator(propagation.TraceContext{})
	handler := &fakeHandler{}
	consumer := NewConsumer(handler, &fakeSink{}, slog.Default())

	headers := []*sarama.RecordHeader{{
		Key:   []byte("traceparent"),
		Value: []byte("00-4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7-01"),
	}}
	err := consumer.handleMessage(context.Background(), orderPlacedMessage(validPayload, headers))
	require.NoError(t, err)

	require.Len(t, handler.ctxs, 1)
	spanCtx := oteltrace.SpanContextFromContext(handler.ctxs[0])
	require.True(t, spanCtx.IsValid())
	assert.Equal(t, "4bf92f3577b34da6a3ce929d0e0e4736", spanCtx.TraceID().String())
}

func TestHandleMessage_MalformedPayloadIsPoison(t *testing.T) {
	handler := &fakeHandler{}
	consumer := NewConsumer(handler, &fakeSink{}, slog.Default())

	err := consumer.handleMessage(context.Background(), orderPlacedMessage("not-json", nil))
	require.Error(t, err)
	assert.ErrorIs(t, err, errPoison)
	assert.Empty(t, handler.events, "poison payload must not reach the handler")
}

func TestParkPoison_PushesToDeadLetterSink(t *testing.T) {
	sink := &fakeSink{}
	consumer := NewConsumer(&fakeHandler{}, sink, slog.Default())

	msg := orderPlacedMessage("not-json", nil)
	consumer.parkPoison(context.Background(), msg, errors.New("unmarshal failed"))

	require.Len(t, sink.payloads, 1)
	assert.Equal(t, []byte("not-json"), sink.payloads[0])
	assert.Equal(t, "unmarshal failed", sink.reasons[0])
}

func TestHandleMessage_HandlerFailureIsNotPoison(t *testing.T) {
	handler := &fakeHandler{err: errors.New("relay refused")}
	consumer := NewConsumer(handler, &fakeSink{}, slog.Default())

	err := consumer.handleMessage(context.Background(), orderPlacedMessage(validPayload, nil))
	require.Error(t, err)

	// A delivery failure must surface for redelivery, not be parked.
	assert.False(t, errors.Is(err, errPoison))
}

func TestHandleMessage_RedeliveryProducesSameEvent(t *testing.T) {
	handler := &fakeHandler{}
	consumer := NewConsumer(handler, &fakeSink{}, slog.Default())

	require.NoError(t, consumer.handleMessage(context.Background(), orderPlacedMessage(validPayload, nil)))
	require.NoError(t, consumer.handleMessage(context.Background(), orderPlacedMessage(validPayload, nil)))

	require.Len(t, handler.events, 2)
	assert.Equal(t, handler.events[0], handler.events[1])
}
