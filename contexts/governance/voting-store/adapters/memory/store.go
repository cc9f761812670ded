package memory

import (
	"context"
	"sync"
	"time"

	"ballotbox/contexts/governance/voting-store/domain/entities"
	domainerrors "ballotbox/contexts/governance/voting-store/domain/errors"
	"ballotbox/contexts/governance/voting-store/ports"

	"github.com/google/uuid"
)

type outboxRecord struct {
	message   ports.OutboxMessage
	published bool
}

// Store is the canonical in-process voting repository: a keyed map from
// voting id to voting, mutated in place under one mutex so cast/reveal
// execute as single check-then-update steps. Listing order is kept
// separately, newest first.
type Store struct {
	mu sync.RWMutex

	votings map[int64]*entities.Voting
	order   []int64
	nextID  int64

	outbox      map[string]outboxRecord
	outboxOrder []string
}

// NewStore seeds the repository and derives the next voting id as one
// greater than the current maximum.
func NewStore(seed []entities.Voting) *Store {
	store := &Store{
		votings: make(map[int64]*entities.Voting, len(seed)),
		outbox:  make(map[string]outboxRecord),
		nextID:  1,
	}
	for _, voting := range seed {
		clone := voting.Clone()
		store.votings[clone.VotingID] = &clone
		store.order = append(store.order, clone.VotingID)
		if clone.VotingID >= store.nextID {
			store.nextID = clone.VotingID + 1
		}
	}
	return store
}

func (s *Store) CreateVoting(_ context.Context, voting entities.Voting) (entities.Voting, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	clone := voting.Clone()
	clone.VotingID = s.nextID
	s.nextID++

	s.votings[clone.VotingID] = &clone
	s.order = append([]int64{clone.VotingID}, s.order...)
	return clone.Clone(), nil
}

func (s *Store) GetVoting(_ context.Context, votingID int64) (entities.Voting, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	voting, ok := s.votings[votingID]
	if !ok {
		return entities.Voting{}, domainerrors.ErrVotingNotFound
	}
	return voting.Clone(), nil
}

func (s *Store) ListVotings(_ context.Context) ([]entities.Voting, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.Voting, 0, len(s.order))
	for _, id := range s.order {
		if voting, ok := s.votings[id]; ok {
			items = append(items, voting.Clone())
		}
	}
	return items, nil
}

func (s *Store) CastVote(_ context.Context, votingID int64, optionID int) (entities.Voting, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	voting, ok := s.votings[votingID]
	if !ok {
		return entities.Voting{}, domainerrors.ErrVotingNotFound
	}
	if voting.Status != entities.VotingStatusActive {
		return entities.Voting{}, domainerrors.ErrVotingNotActive
	}

	target := -1
	for index, option := range voting.Options {
		if option.OptionID == optionID {
			target = index
			break
		}
	}
	if target < 0 {
		return entities.Voting{}, domainerrors.ErrOptionNotFound
	}

	voting.Options[target].VoteCount++
	voting.ParticipantCount++
	voting.UpdatedAt = time.Now().UTC()
	if voting.ParticipantCount >= voting.Capacity {
		voting.Status = entities.VotingStatusAwaitingReveal
	}
	return voting.Clone(), nil
}

func (s *Store) RevealVoting(_ context.Context, votingID int64) (entities.Voting, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	voting, ok := s.votings[votingID]
	if !ok {
		return entities.Voting{}, domainerrors.ErrVotingNotFound
	}
	switch voting.Status {
	case entities.VotingStatusActive:
		return entities.Voting{}, domainerrors.ErrVotingStillOpen
	case entities.VotingStatusRevealed:
		return entities.Voting{}, domainerrors.ErrAlreadyRevealed
	}

	voting.Status = entities.VotingStatusRevealed
	voting.UpdatedAt = time.Now().UTC()
	return voting.Clone(), nil
}

func (s *Store) AppendOutbox(ctx context.Context, message ports.OutboxMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if message.OutboxID == "" {
		id, err := s.NewID(ctx)
		if err != nil {
			return err
		}
		message.OutboxID = id
	}
	if _, exists := s.outbox[message.OutboxID]; exists {
		return domainerrors.ErrConflict
	}
	s.outbox[message.OutboxID] = outboxRecord{message: message}
	s.outboxOrder = append(s.outboxOrder, message.OutboxID)
	return nil
}

func (s *Store) ListPendingOutbox(_ context.Context, limit int) ([]ports.OutboxMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]ports.OutboxMessage, 0, limit)
	for _, id := range s.outboxOrder {
		record, ok := s.outbox[id]
		if !ok || record.published {
			continue
		}
		items = append(items, record.message)
		if limit > 0 && len(items) >= limit {
			break
		}
	}
	return items, nil
}

func (s *Store) MarkOutboxPublished(_ context.Context, outboxID string, _ time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.outbox[outboxID]
	if !ok {
		return domainerrors.ErrConflict
	}
	record.published = true
	s.outbox[outboxID] = record
	return nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}
