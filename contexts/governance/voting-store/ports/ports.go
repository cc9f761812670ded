package ports

import (
	"context"
	"time"

	"ballotbox/contexts/governance/voting-store/domain/entities"
	"ballotbox/internal/shared/events"
)

// VotingRepository owns the authoritative voting collection. Mutating
// operations execute check-then-update atomically per voting id: no other
// mutation on the same voting may interleave between the status/capacity
// check and the write.
type VotingRepository interface {
	// CreateVoting assigns a fresh monotonic id and stores the voting at the
	// head of the listing order.
	CreateVoting(ctx context.Context, voting entities.Voting) (entities.Voting, error)
	GetVoting(ctx context.Context, votingID int64) (entities.Voting, error)
	// ListVotings returns snapshots most-recent-first.
	ListVotings(ctx context.Context) ([]entities.Voting, error)
	// CastVote increments the option tally and the participant count as one
	// step, transitioning the voting to awaiting_reveal when the capacity is
	// reached. It rejects non-active votings and unknown option ids without
	// mutating anything.
	CastVote(ctx context.Context, votingID int64, optionID int) (entities.Voting, error)
	// RevealVoting transitions awaiting_reveal to revealed. It rejects
	// still-active and already-revealed votings.
	RevealVoting(ctx context.Context, votingID int64) (entities.Voting, error)
}

// VoteLedger is the duplicate-prevention collaborator. The governance
// vote-ledger context satisfies it; the store context never touches ledger
// state directly.
type VoteLedger interface {
	HasVoted(ctx context.Context, votingID int64, voterID string) (bool, error)
	// RecordVote inserts an immutable (voter, voting) record, rejecting
	// duplicates atomically.
	RecordVote(ctx context.Context, votingID int64, optionID int, voterID string) error
	// DiscardVote removes a record whose paired store mutation was rejected.
	DiscardVote(ctx context.Context, votingID int64, voterID string) error
}

type OutboxMessage struct {
	OutboxID  string
	EventType string
	Payload   []byte
}

type OutboxWriter interface {
	AppendOutbox(ctx context.Context, message OutboxMessage) error
}

type OutboxRepository interface {
	OutboxWriter
	ListPendingOutbox(ctx context.Context, limit int) ([]OutboxMessage, error)
	MarkOutboxPublished(ctx context.Context, outboxID string, publishedAt time.Time) error
}

type EventPublisher interface {
	Publish(ctx context.Context, topic string, event events.Envelope) error
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
