package workers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"ballotbox/contexts/engagement/notification-service/domain/entities"
	"ballotbox/contexts/engagement/notification-service/ports"
	"ballotbox/internal/shared/events"
)

// EventConsumer turns governance lifecycle events into participant-facing
// notifications. Unknown event types are skipped; delivery failures are
// logged and swallowed so the bus never retries a mutation that already
// happened.
type EventConsumer struct {
	Notifier ports.Notifier
	Clock    ports.Clock
	Logger   *slog.Logger
}

type votingEventPayload struct {
	Title      string `json:"title"`
	OptionText string `json:"option_text"`
	TxHash     string `json:"tx_hash"`
}

func (c EventConsumer) HandleEvent(ctx context.Context, envelope events.Envelope) error {
	logger := c.logger()

	var payload votingEventPayload
	if len(envelope.Payload) > 0 {
		if err := json.Unmarshal(envelope.Payload, &payload); err != nil {
			logger.Error("notification payload decode failed",
				"event", "notification_payload_decode_failed",
				"module", "engagement/notification-service",
				"layer", "worker",
				"event_id", envelope.EventID,
				"event_type", envelope.EventType,
				"error", err.Error(),
			)
			return nil
		}
	}

	notification, ok := c.render(envelope, payload)
	if !ok {
		return nil
	}

	if err := c.Notifier.Send(ctx, notification); err != nil {
		logger.Error("notification delivery failed",
			"event", "notification_delivery_failed",
			"module", "engagement/notification-service",
			"layer", "worker",
			"event_id", envelope.EventID,
			"event_type", envelope.EventType,
			"voting_id", envelope.VotingID,
			"error", err.Error(),
		)
		return nil
	}

	logger.Info("notification sent",
		"event", "notification_sent",
		"module", "engagement/notification-service",
		"layer", "worker",
		"event_type", envelope.EventType,
		"voting_id", envelope.VotingID,
	)
	return nil
}

func (c EventConsumer) render(envelope events.Envelope, payload votingEventPayload) (entities.Notification, bool) {
	var title, body string
	switch envelope.EventType {
	case events.TypeVotingCreated:
		title = "Voting Created!"
		body = fmt.Sprintf("%q has been created successfully.", payload.Title)
	case events.TypeVoteCast:
		title = "Vote Submitted!"
		body = fmt.Sprintf("You voted for %q.", payload.OptionText)
	case events.TypeVotingClosed:
		title = "Voting Closed!"
		body = fmt.Sprintf("%q reached its capacity and is awaiting reveal.", payload.Title)
	case events.TypeVotingRevealed:
		title = "Results Revealed!"
		body = fmt.Sprintf("Results for %q have been revealed.", payload.Title)
	default:
		return entities.Notification{}, false
	}
	if payload.TxHash != "" {
		body = fmt.Sprintf("%s Transaction: %s", body, payload.TxHash)
	}
	return entities.Notification{
		NotificationID: envelope.EventID,
		Title:          title,
		Body:           body,
		VotingID:       envelope.VotingID,
		SentAt:         c.now(),
	}, true
}

func (c EventConsumer) now() time.Time {
	if c.Clock != nil {
		return c.Clock.Now().UTC()
	}
	return time.Now().UTC()
}

func (c EventConsumer) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.Default()
	}
	return c.Logger
}
