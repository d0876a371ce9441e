package ports

import "context"

// DeadLetterSink stores messages that can never be processed, such as
// payloads that fail to unmarshal. Parking them keeps the consumer moving
// instead of redelivering poison forever.
type DeadLetterSink interface {
	Push(ctx context.Context, reason string, payload []byte) error
}
