// Package application turns OrderPlaced events into confirmation mail.
package application

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/IT21177828/CTSE-Project/internal/domains/notifications/domain"
	"github.com/IT21177828/CTSE-Project/internal/domains/notifications/ports"
)

const defaultSender = "springshop@email.com"

// Service handles consumed OrderPlaced events. Rendering is a pure function
// of the event, so a redelivered event produces byte-identical mail; the
// delivery channel decides whether the customer sees it once or twice.
type Service struct {
	mailer ports.Mailer
	from   string
	logger *slog.Logger
}

func NewService(mailer ports.Mailer, from string, logger *slog.Logger) *Service {
	if from == "" {
		from = defaultSender
	}
	return &Service{mailer: mailer, from: from, logger: logger}
}

// HandleOrderPlaced renders and sends the confirmation mail. A delivery
// failure is returned so the consumer leaves the event unacknowledged for
// redelivery.
func (s *Service) HandleOrderPlaced(ctx context.Context, event domain.OrderPlaced) error {
	msg := s.RenderConfirmation(event)
	if err := s.mailer.Send(ctx, msg); err != nil {
		return fmt.Errorf("send confirmation for order %s: %w", event.OrderNumber, err)
	}
	if s.logger != nil {
		s.logger.InfoContext(ctx, "confirmation mail sent",
			slog.String("orderNumber", event.OrderNumber),
			slog.String("to", event.Email))
	}
	return nil
}

// RenderConfirmation builds the mail for an OrderPlaced event.
func (s *Service) RenderConfirmation(event domain.OrderPlaced) ports.Message {
	return ports.Message{
		From:    s.from,
		To:      event.Email,
		Subject: fmt.Sprintf("Your Order with OrderNumber %s is placed successfully", event.OrderNumber),
		Body: fmt.Sprintf(`Hi %s %s,

Your order with order number %s is now placed successfully.

Best Regards,
Spring Shop
`, event.FirstName, event.LastName, event.OrderNumber),
	}
}
