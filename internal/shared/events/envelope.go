package events

import (
	"encoding/json"
	"time"
)

// Event types emitted by the governance contexts.
const (
	TypeVotingCreated  = "voting.created"
	TypeVoteCast       = "voting.vote_cast"
	TypeVotingClosed   = "voting.closed"
	TypeVotingRevealed = "voting.revealed"
)

// Envelope is the canonical event shape shared between the outbox relay, the
// message bus, and consumers. Events are partitioned by voting id so
// consumers observe a stable per-voting order.
type Envelope struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	SourceService string          `json:"source_service"`
	OccurredAtUTC time.Time       `json:"occurred_at_utc"`
	VotingID      int64           `json:"voting_id"`
	SchemaVersion int             `json:"schema_version"`
	Payload       json.RawMessage `json:"payload"`
}
