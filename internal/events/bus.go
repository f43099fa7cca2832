// Package events carries document change notifications between services
// over an in-process watermill pub/sub.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	planningSvc "planforge/internal/domain/services/planning"
)

// TopicDocumentChanged carries DocumentChangedEvent payloads.
const TopicDocumentChanged = "planning.document.changed"

// Bus publishes and delivers events in process.
type Bus struct {
	pubSub *gochannel.GoChannel
	logger *slog.Logger
}

// NewBus creates an in-process bus. Messages published with no subscriber are dropped.
func NewBus(logger *slog.Logger) *Bus {
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{OutputChannelBuffer: 64},
		watermill.NewStdLogger(false, false),
	)
	return &Bus{pubSub: pubSub, logger: logger}
}

// PublishDocumentChanged implements planning.DocumentEventPublisher.
func (b *Bus) PublishDocumentChanged(ctx context.Context, event *planningSvc.DocumentChangedEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal document event: %w", err)
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.Metadata.Set("project_id", event.ProjectID)
	msg.Metadata.Set("type", string(event.Type))

	if err := b.pubSub.Publish(TopicDocumentChanged, msg); err != nil {
		return fmt.Errorf("publish document event: %w", err)
	}

	b.logger.Debug("document event published",
		"project_id", event.ProjectID,
		"type", event.Type,
		"revision", event.Revision,
	)
	return nil
}

// Subscribe returns the message stream for topic. The stream closes when ctx is done.
func (b *Bus) Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error) {
	return b.pubSub.Subscribe(ctx, topic)
}

// Close stops delivery to all subscribers.
func (b *Bus) Close() error {
	return b.pubSub.Close()
}
