package ports

import "context"

// EventPublisher emits order-lifecycle events for downstream consumers.
// Publishing is best effort at the call sites: a failed publish is logged and
// never rolls back the transaction that produced it.
type EventPublisher interface {
	Publish(ctx context.Context, eventType string, payload []byte, partitionKey string) error
}
