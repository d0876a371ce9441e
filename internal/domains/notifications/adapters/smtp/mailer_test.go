package smtp

import (
	"context"
	"net/smtp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IT21177828/CTSE-Project/internal/domains/notifications/ports"
)

func TestSend_EncodesHeadersAndBody(t *testing.T) {
	mailer, err := NewMailer("localhost:1025", "", "")
	require.NoError(t, err)

	var gotFrom string
	var gotTo []string
	var gotMsg []byte
	mailer.send = func(_ string, _ smtp.Auth, from string, to []string, msg []byte) error {
		gotFrom, gotTo, gotMsg = from, to, msg
		return nil
	}

	err = mailer.Send(context.Background(), ports.Message{
		From:    "shop@example.com",
		To:      "jane@example.com",
		Subject: "Your Order with OrderNumber 7f9b6a2e-order is placed successfully",
		Body:    "Hi Jane Doe,\n\nYour order is placed.\n",
	})
	require.NoError(t, err)

	assert.Equal(t, "shop@example.com", gotFrom)
	assert.Equal(t, []string{"jane@example.com"}, gotTo)
	raw := string(gotMsg)
	assert.Contains(t, raw, "To: jane@example.com\r\n")
	assert.Contains(t, raw, "Subject: Your Order with OrderNumber 7f9b6a2e-order is placed successfully\r\n")
	assert.Contains(t, raw, "Hi Jane Doe,\r\n")
}

func TestSend_CancelledContext(t *testing.T) {
	mailer, err := NewMailer("localhost:1025", "", "")
	require.NoError(t, err)
	mailer.send = func(string, smtp.Auth, string, []string, []byte) error {
		t.Fatal("send must not be called with a cancelled context")
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.Error(t, mailer.Send(ctx, ports.Message{To: "jane@example.com"}))
}

func TestNewMailer_RequiresAddress(t *testing.T) {
	_, err := NewMailer("  ", "", "")
	require.Error(t, err)
}
