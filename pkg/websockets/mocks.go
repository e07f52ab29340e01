package websockets

import "context"

// NoOpPublisher discards every event. The watchdog uses it since nothing
// subscribes to a Lambda, and handler tests use it when the feed is not
// under test.
type NoOpPublisher struct{}

// Publish drops the event.
func (p *NoOpPublisher) Publish(ctx context.Context, message Message) error {
	return nil
}
