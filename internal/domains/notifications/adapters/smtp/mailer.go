// Package smtp delivers confirmation mail over plain SMTP.
package smtp

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/IT21177828/CTSE-Project/internal/domains/notifications/ports"
)

var _ ports.Mailer = (*Mailer)(nil)

// Mailer sends mail through a single SMTP relay. Auth is optional; local
// relays and mailhog-style dev servers accept unauthenticated submission.
type Mailer struct {
	addr string
	auth smtp.Auth
	send func(addr string, auth smtp.Auth, from string, to []string, msg []byte) error
}

// NewMailer builds a mailer for the relay at addr (host:port). username may
// be empty to skip authentication.
func NewMailer(addr, username, password string) (*Mailer, error) {
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return nil, fmt.Errorf("smtp address is required")
	}
	var auth smtp.Auth
	if username != "" {
		host := addr
		if i := strings.LastIndex(addr, ":"); i >= 0 {
			host = addr[:i]
		}
		auth = smtp.PlainAuth("", username, password, host)
	}
	return &Mailer{addr: addr, auth: auth, send: smtp.SendMail}, nil
}

func (m *Mailer) Send(ctx context.Context, msg ports.Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	payload := encodeMessage(msg)
	if err := m.send(m.addr, m.auth, msg.From, []string{msg.To}, payload); err != nil {
		return fmt.Errorf("smtp send to %s: %w", msg.To, err)
	}
	return nil
}

func encodeMessage(msg ports.Message) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", msg.From)
	fmt.Fprintf(&b, "To: %s\r\n", msg.To)
	fmt.Fprintf(&b, "Subject: %s\r\n", msg.Subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(strings.ReplaceAll(msg.Body, "\n", "\r\n"))
	return []byte(b.String())
}
