package websockets

import (
	"context"
)

// ConnectionManager tracks the clients subscribed to the live lobby and
// battle feed.
type ConnectionManager interface {
	AddConnection(ctx context.Context, connectionID string) error
	RemoveConnection(ctx context.Context, connectionID string) error
}

// Publisher pushes lobby and battle events to every subscribed client.
// Delivery is best effort: the state change that produced the event has
// already been persisted, so a failed push is logged, never surfaced.
type Publisher interface {
	Publish(ctx context.Context, message Message) error
}
