package notify

import "context"

// Push is a device push message. Token addresses the recipient device;
// delivery is handled by a worker consuming the push queue.
type Push struct {
	Token string `json:"token"`
	Title string `json:"title"`
	Body  string `json:"body"`
}

// Dispatcher hands push messages to a delivery channel. Implementations
// must not assume the caller retries: delivery is best effort.
type Dispatcher interface {
	Dispatch(ctx context.Context, push Push) error
	Close() error
}

// NopDispatcher drops every push. Used when no broker is configured.
type NopDispatcher struct{}

func (NopDispatcher) Dispatch(context.Context, Push) error { return nil }
func (NopDispatcher) Close() error                         { return nil }
