package observability

import (
	"context"
	"errors"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	ordersapp "github.com/IT21177828/CTSE-Project/internal/domains/orders/application"
	ordersdomain "github.com/IT21177828/CTSE-Project/internal/domains/orders/domain"
	ordersports "github.com/IT21177828/CTSE-Project/internal/domains/orders/ports"
)

const tracerName = "github.com/IT21177828/CTSE-Project/internal/domains/orders/adapters/observability/service"

// Service decorates the order service with tracing, logging, and metrics.
type Service struct {
	inner   ordersports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tr
	}
}

func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		s.metrics = newServiceMetrics(m)
	}
}

// New wraps the core order service.
func New(inner ordersports.Service, opts ...Option) ordersports.Service {
	s := &Service{
		inner:  inner,
		tracer: nooptrace.NewTracerProvider().Tracer(tracerName),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	return s
}

func (s *Service) PlaceOrder(ctx context.Context, input ordersports.PlaceOrderInput) (*ordersdomain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.PlaceOrder",
		trace.WithAttributes(
			attribute.String("order.sku", input.SKUCode),
			attribute.Int("order.quantity", input.Quantity),
		))
	defer span.End()

	s.logInfo(ctx, "placing order", slog.String("sku", input.SKUCode), slog.Int("quantity", input.Quantity))
	result, err := s.inner.PlaceOrder(ctx, input)
	if err != nil {
		var outOfStock *ordersapp.OutOfStockError
		if errors.As(err, &outOfStock) {
			// Business rejection, not a fault: the span stays ok.
			span.SetAttributes(attribute.Bool("order.rejected", true))
			s.metrics.recordRejected(ctx)
			s.logInfo(ctx, "order rejected, insufficient stock", slog.String("sku", outOfStock.SKUCode))
			return nil, err
		}
		var publishErr *ordersapp.PublishError
		if errors.As(err, &publishErr) {
			// The order is durable but the confirmation will never be
			// sent. Flag it for manual reconciliation.
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			s.metrics.recordPublishFailed(ctx)
			s.logError(ctx, "order persisted but event publication failed", err,
				slog.String("orderNumber", publishErr.OrderNumber))
			return nil, err
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.logError(ctx, "order placement failed", err, slog.String("sku", input.SKUCode))
		return nil, err
	}
	span.SetAttributes(attribute.String("order.number", result.OrderNumber))
	s.metrics.recordPlaced(ctx)
	s.logInfo(ctx, "order placed", slog.String("orderNumber", result.OrderNumber), slog.String("sku", result.SKUCode))
	return result, nil
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) logError(ctx context.Context, msg string, err error, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	attrs = append(attrs, slog.String("error", err.Error()))
	s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
}

type serviceMetrics struct {
	ordersPlaced    metric.Int64Counter
	ordersRejected  metric.Int64Counter
	publishFailures metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	placed, _ := m.Int64Counter("orders.service.orders_placed", metric.WithDescription("Number of orders placed successfully"))
	rejected, _ := m.Int64Counter("orders.service.orders_rejected", metric.WithDescription("Number of orders rejected for insufficient stock"))
	publishFailures, _ := m.Int64Counter("orders.service.publish_failures", metric.WithDescription("Number of orders persisted whose event publication failed"))
	return serviceMetrics{ordersPlaced: placed, ordersRejected: rejected, publishFailures: publishFailures}
}

func (m serviceMetrics) recordPlaced(ctx context.Context) {
	if m.ordersPlaced != nil {
		m.ordersPlaced.Add(ctx, 1)
	}
}

func (m serviceMetrics) recordRejected(ctx context.Context) {
	if m.ordersRejected != nil {
		m.ordersRejected.Add(ctx, 1)
	}
}

func (m serviceMetrics) recordPublishFailed(ctx context.Context) {
	if m.publishFailures != nil {
		m.publishFailures.Add(ctx, 1)
	}
}

var _ ordersports.Service = (*Service)(nil)
