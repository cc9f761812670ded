package commands

import (
	"context"
	"encoding/json"
	"time"

	application "ballotbox/contexts/governance/voting-store/application"
	"ballotbox/contexts/governance/voting-store/ports"
	"ballotbox/internal/shared/events"
)

// appendEvent records a lifecycle event in the outbox. Event delivery is
// fire-and-forget: an outbox failure is logged and never rolls back the
// already-applied mutation.
func (uc VotingUseCase) appendEvent(
	ctx context.Context,
	eventType string,
	votingID int64,
	occurredAt time.Time,
	data map[string]any,
) {
	logger := application.ResolveLogger(uc.Logger)
	if uc.Outbox == nil {
		return
	}

	eventID := ""
	if uc.IDGen != nil {
		if id, err := uc.IDGen.NewID(ctx); err == nil {
			eventID = id
		}
	}

	payload, err := json.Marshal(data)
	if err != nil {
		logger.Error("voting event payload encode failed",
			"event", "voting_event_encode_failed",
			"module", "governance/voting-store",
			"layer", "application",
			"event_type", eventType,
			"voting_id", votingID,
			"error", err.Error(),
		)
		return
	}
	envelope, err := json.Marshal(events.Envelope{
		EventID:       eventID,
		EventType:     eventType,
		SourceService: "voting-store",
		OccurredAtUTC: occurredAt.UTC(),
		VotingID:      votingID,
		SchemaVersion: 1,
		Payload:       payload,
	})
	if err != nil {
		logger.Error("voting event envelope encode failed",
			"event", "voting_event_encode_failed",
			"module", "governance/voting-store",
			"layer", "application",
			"event_type", eventType,
			"voting_id", votingID,
			"error", err.Error(),
		)
		return
	}

	if err := uc.Outbox.AppendOutbox(ctx, ports.OutboxMessage{
		OutboxID:  eventID,
		EventType: eventType,
		Payload:   envelope,
	}); err != nil {
		logger.Error("voting outbox append failed",
			"event", "voting_outbox_append_failed",
			"module", "governance/voting-store",
			"layer", "application",
			"event_type", eventType,
			"voting_id", votingID,
			"error", err.Error(),
		)
	}
}
