package application

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"ballotbox/contexts/governance/vote-ledger/domain/entities"
	domainerrors "ballotbox/contexts/governance/vote-ledger/domain/errors"
	"ballotbox/contexts/governance/vote-ledger/ports"
)

// Service is the authoritative duplicate-prevention check for vote casting.
// Callers record a vote here before mutating tallies, and discard the record
// if the paired mutation is rejected.
type Service struct {
	Records ports.RecordRepository
	Clock   ports.Clock
	IDGen   ports.IDGenerator
	Logger  *slog.Logger
}

func (s Service) HasVoted(ctx context.Context, votingID int64, voterID string) (bool, error) {
	voterID = strings.TrimSpace(voterID)
	if voterID == "" {
		return false, nil
	}
	_, found, err := s.Records.Get(ctx, votingID, voterID)
	if err != nil {
		return false, err
	}
	return found, nil
}

func (s Service) RecordVote(ctx context.Context, votingID int64, optionID int, voterID string) error {
	voterID = strings.TrimSpace(voterID)
	if voterID == "" || votingID <= 0 || optionID <= 0 {
		return domainerrors.ErrInvalidRecordInput
	}

	recordID := ""
	if s.IDGen != nil {
		id, err := s.IDGen.NewID(ctx)
		if err != nil {
			return err
		}
		recordID = id
	}

	err := s.Records.Insert(ctx, entities.VoteRecord{
		RecordID:  recordID,
		VotingID:  votingID,
		OptionID:  optionID,
		VoterID:   voterID,
		CreatedAt: s.now(),
	})
	if err != nil {
		return err
	}

	resolveLogger(s.Logger).Info("vote recorded",
		"event", "ledger_vote_recorded",
		"module", "governance/vote-ledger",
		"layer", "application",
		"voting_id", votingID,
		"option_id", optionID,
		"voter_id", voterID,
	)
	return nil
}

// VotedOption returns the option the identity selected, if any. Used to
// render "you voted for X" without re-deriving state elsewhere.
func (s Service) VotedOption(ctx context.Context, votingID int64, voterID string) (int, bool, error) {
	voterID = strings.TrimSpace(voterID)
	if voterID == "" {
		return 0, false, nil
	}
	record, found, err := s.Records.Get(ctx, votingID, voterID)
	if err != nil || !found {
		return 0, false, err
	}
	return record.OptionID, true, nil
}

func (s Service) DiscardVote(ctx context.Context, votingID int64, voterID string) error {
	return s.Records.Delete(ctx, votingID, strings.TrimSpace(voterID))
}

func (s Service) now() time.Time {
	if s.Clock != nil {
		return s.Clock.Now().UTC()
	}
	return time.Now().UTC()
}

func resolveLogger(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.Default()
	}
	return logger
}
