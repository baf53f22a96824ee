package ports

import "context"

// Publisher delivers change events to a topic.
type Publisher interface {
	PublishRaw(ctx context.Context, topic string, payload []byte) error
}
