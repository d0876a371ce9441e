package observability

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	invdomain "github.com/IT21177828/CTSE-Project/internal/domains/inventory/domain"
	invports "github.com/IT21177828/CTSE-Project/internal/domains/inventory/ports"
)

const tracerName = "github.com/IT21177828/CTSE-Project/internal/domains/inventory/adapters/observability/service"

// Service decorates the inventory service with tracing, logging, and metrics.
type Service struct {
	inner   invports.Service
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

// New wraps the core inventory service.
func New(inner invports.Service, opts ...Option) invports.Service {
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

func (s *Service) IsInStock(ctx context.Context, skuCode string, quantity int) (bool, error) {
	ctx, span := s.tracer.Start(ctx, "InventoryService.IsInStock",
		trace.WithAttributes(attribute.String("inventory.sku", skuCode), attribute.Int("inventory.requested", quantity)))
	defer span.End()

	s.logInfo(ctx, "checking stock", slog.String("sku", skuCode), slog.Int("quantity", quantity))
	granted, err := s.inner.IsInStock(ctx, skuCode, quantity)
	if err != nil {
		return false, s.handleError(ctx, span, err, "stock check failed", slog.String("sku", skuCode))
	}
	span.SetAttributes(attribute.Bool("inventory.granted", granted))
	s.metrics.recordReservation(ctx, granted)
	if granted {
		s.logInfo(ctx, "stock reserved", slog.String("sku", skuCode), slog.Int("quantity", quantity))
	} else {
		s.logInfo(ctx, "stock unavailable", slog.String("sku", skuCode), slog.Int("quantity", quantity))
	}
	return granted, nil
}

func (s *Service) List(ctx context.Context) ([]*invdomain.Inventory, error) {
	ctx, span := s.tracer.Start(ctx, "InventoryService.List")
	defer span.End()

	result, err := s.inner.List(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list inventory")
	}
	span.SetAttributes(attribute.Int("inventory.count", len(result)))
	return result, nil
}

func (s *Service) Add(ctx context.Context, item *invdomain.Inventory) (*invdomain.Inventory, error) {
	ctx, span := s.tracer.Start(ctx, "InventoryService.Add",
		trace.WithAttributes(attribute.String("inventory.sku", item.SKUCode)))
	defer span.End()

	s.logInfo(ctx, "adding inventory item", slog.String("sku", item.SKUCode), slog.Int("quantity", item.Quantity))
	result, err := s.inner.Add(ctx, item)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to add inventory item", slog.String("sku", item.SKUCode))
	}
	return result, nil
}

func (s *Service) UpdateQuantity(ctx context.Context, id int64, quantity int) (*invdomain.Inventory, error) {
	ctx, span := s.tracer.Start(ctx, "InventoryService.UpdateQuantity",
		trace.WithAttributes(attribute.Int64("inventory.id", id), attribute.Int("inventory.quantity", quantity)))
	defer span.End()

	result, err := s.inner.UpdateQuantity(ctx, id, quantity)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to update quantity", slog.Int64("id", id))
	}
	s.logInfo(ctx, "quantity updated", slog.String("sku", result.SKUCode), slog.Int("quantity", result.Quantity))
	return result, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	ctx, span := s.tracer.Start(ctx, "InventoryService.Delete",
		trace.WithAttributes(attribute.Int64("inventory.id", id)))
	defer span.End()

	if err := s.inner.Delete(ctx, id); err != nil {
		return s.handleError(ctx, span, err, "failed to delete inventory item", slog.Int64("id", id))
	}
	s.logInfo(ctx, "inventory item deleted", slog.Int64("id", id))
	return nil
}

func (s *Service) GetBySKU(ctx context.Context, skuCode string) (*invdomain.Inventory, error) {
	ctx, span := s.tracer.Start(ctx, "InventoryService.GetBySKU",
		trace.WithAttributes(attribute.String("inventory.sku", skuCode)))
	defer span.End()

	result, err := s.inner.GetBySKU(ctx, skuCode)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load inventory item", slog.String("sku", skuCode))
	}
	return result, nil
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	if s.logger != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
		s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
	}
	return err
}

type serviceMetrics struct {
	reservationsGranted metric.Int64Counter
	reservationsDenied  metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	granted, _ := m.Int64Counter("inventory.service.reservations_granted", metric.WithDescription("Number of stock reservations granted"))
	denied, _ := m.Int64Counter("inventory.service.reservations_denied", metric.WithDescription("Number of stock reservations denied"))
	return serviceMetrics{reservationsGranted: granted, reservationsDenied: denied}
}

func (m serviceMetrics) recordReservation(ctx context.Context, granted bool) {
	if granted && m.reservationsGranted != nil {
		m.reservationsGranted.Add(ctx, 1)
	}
	if !granted && m.reservationsDenied != nil {
		m.reservationsDenied.Add(ctx, 1)
	}
}

var _ invports.Service = (*Service)(nil)
