package application_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IT21177828/CTSE-Project/internal/domains/notifications/application"
	"github.com/IT21177828/CTSE-Project/internal/domains/notifications/domain"
	"github.com/IT21177828/CTSE-Project/internal/domains/notifications/ports"
)

type fakeMailer struct {
	sent []ports.Message
	err  error
}

func (f *fakeMailer) Send(_ context.Context, msg ports.Message) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, msg)
	return nil
}

func placedEvent() domain.OrderPlaced {
	return domain.OrderPlaced{
		OrderNumber: "7f9b6a2e-order",
		Email:       "jane@example.com",
		FirstName:   "Jane",
		LastName:    "Doe",
	}
}

func TestHandleOrderPlaced_SendsConfirmation(t *testing.T) {
	mailer := &fakeMailer{}
	service := application.NewService(mailer, "shop@example.com", nil)

	require.NoError(t, service.HandleOrderPlaced(context.Background(), placedEvent()))
	require.Len(t, mailer.sent, 1)

	msg := mailer.sent[0]
	assert.Equal(t, "shop@example.com", msg.From)
	assert.Equal(t, "jane@example.com", msg.To)
	assert.Equal(t, "Your Order with OrderNumber 7f9b6a2e-order is placed successfully", msg.Subject)
	assert.Contains(t, msg.Body, "Hi Jane Doe,")
	assert.Contains(t, msg.Body, "order number 7f9b6a2e-order")
}

func TestHandleOrderPlaced_SendFailurePropagates(t *testing.T) {
	mailer := &fakeMailer{err: errors.New("relay refused")}
	service := application.NewService(mailer, "", nil)

	err := service.HandleOrderPlaced(context.Background(), placedEvent())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "7f9b6a2e-order")
}

func TestRenderConfirmation_DeterministicOnRedelivery(t *testing.T) {
	service := application.NewService(&fakeMailer{}, "", nil)
	first := service.RenderConfirmation(placedEvent())
	second := service.RenderConfirmation(placedEvent())
	assert.Equal(t, first, second, "a redelivered event must render byte-identical mail")
}

func TestNewService_DefaultsSenderAddress(t *testing.T) {
	service := application.NewService(&fakeMailer{}, "", nil)
	msg := service.RenderConfirmation(placedEvent())
	assert.NotEmpty(t, msg.From)
}
