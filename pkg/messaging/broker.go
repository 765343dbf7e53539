package messaging

import "context"

// Broker publishes workflow events to downstream collaborators.
type Broker interface {
	Publish(ctx context.Context, topic string, payload []byte) error
	Close() error
}
