package ports

import "context"

// Message is one outbound mail.
type Message struct {
	From    string
	To      string
	Subject string
	Body    string
}

// Mailer delivers confirmation mail. Implementations must be safe to call
// again with the same message: a failed delivery is retried through topic
// redelivery, not by the caller.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}
