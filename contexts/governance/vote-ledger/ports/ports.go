package ports

import (
	"context"
	"time"

	"ballotbox/contexts/governance/vote-ledger/domain/entities"
)

// RecordRepository stores vote records keyed by (voter, voting). Insert is
// atomic: two concurrent inserts for the same key resolve to exactly one
// stored record and one ErrAlreadyVoted rejection.
type RecordRepository interface {
	Insert(ctx context.Context, record entities.VoteRecord) error
	Get(ctx context.Context, votingID int64, voterID string) (entities.VoteRecord, bool, error)
	// Delete compensates a record whose paired store mutation was rejected.
	Delete(ctx context.Context, votingID int64, voterID string) error
	ListByVoter(ctx context.Context, voterID string) ([]entities.VoteRecord, error)
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
