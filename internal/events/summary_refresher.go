package events

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill/message"

	"planforge/internal/domain"
	planningSvc "planforge/internal/domain/services/planning"
)

// SummaryRefresher recomputes a project's summary whenever one of its documents changes.
type SummaryRefresher struct {
	bus     *Bus
	summary planningSvc.SummaryService
	logger  *slog.Logger
}

// NewSummaryRefresher creates a refresher fed by bus.
func NewSummaryRefresher(bus *Bus, summary planningSvc.SummaryService, logger *slog.Logger) *SummaryRefresher {
	return &SummaryRefresher{bus: bus, summary: summary, logger: logger}
}

// Start subscribes and processes events in the background until ctx is done.
func (r *SummaryRefresher) Start(ctx context.Context) error {
	messages, err := r.bus.Subscribe(ctx, TopicDocumentChanged)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			r.process(ctx, msg)
		}
		r.logger.Debug("summary refresher stopped")
	}()

	return nil
}

func (r *SummaryRefresher) process(ctx context.Context, msg *message.Message) {
	var event planningSvc.DocumentChangedEvent
	if err := json.Unmarshal(msg.Payload, &event); err != nil {
		r.logger.Error("invalid document event", "message_id", msg.UUID, "error", err)
		msg.Ack()
		return
	}

	// failures are acked: the next change to the project refreshes it again
	defer msg.Ack()

	if _, err := r.summary.RefreshSummary(ctx, event.ProjectID); err != nil {
		// a project deleted after the write has nothing left to summarize
		if !errors.Is(err, domain.ErrNotFound) {
			r.logger.Warn("summary refresh failed",
				"project_id", event.ProjectID,
				"type", event.Type,
				"error", err,
			)
		}
		return
	}

	r.logger.Debug("summary refreshed", "project_id", event.ProjectID, "type", event.Type)
}
