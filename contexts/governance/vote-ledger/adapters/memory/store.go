package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"ballotbox/contexts/governance/vote-ledger/domain/entities"
	domainerrors "ballotbox/contexts/governance/vote-ledger/domain/errors"

	"github.com/google/uuid"
)

// Store keeps vote records in a map keyed by (voter, voting). All operations
// run under one mutex so Insert is an atomic insert-if-absent.
type Store struct {
	mu      sync.RWMutex
	records map[string]entities.VoteRecord
}

func NewStore() *Store {
	return &Store{
		records: make(map[string]entities.VoteRecord),
	}
}

func (s *Store) Insert(_ context.Context, record entities.VoteRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := recordKey(record.VotingID, record.VoterID)
	if _, exists := s.records[key]; exists {
		return domainerrors.ErrAlreadyVoted
	}
	s.records[key] = record
	return nil
}

func (s *Store) Get(_ context.Context, votingID int64, voterID string) (entities.VoteRecord, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.records[recordKey(votingID, voterID)]
	return record, ok, nil
}

func (s *Store) Delete(_ context.Context, votingID int64, voterID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := recordKey(votingID, voterID)
	if _, ok := s.records[key]; !ok {
		return domainerrors.ErrRecordNotFound
	}
	delete(s.records, key)
	return nil
}

func (s *Store) ListByVoter(_ context.Context, voterID string) ([]entities.VoteRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.VoteRecord, 0)
	for _, record := range s.records {
		if record.VoterID == voterID {
			items = append(items, record)
		}
	}
	return items, nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

func recordKey(votingID int64, voterID string) string {
	return fmt.Sprintf("%d|%s", votingID, voterID)
}
