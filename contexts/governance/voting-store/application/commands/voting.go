package commands

import (
	"context"
	"log/slog"
	"strings"
	"time"

	application "ballotbox/contexts/governance/voting-store/application"
	"ballotbox/contexts/governance/voting-store/domain/entities"
	domainerrors "ballotbox/contexts/governance/voting-store/domain/errors"
	"ballotbox/contexts/governance/voting-store/ports"
	"ballotbox/internal/shared/events"
)

// CreateVotingCommand is the write-model input for proposal creation. TxHash
// is the external confirmation handle; it is carried into events untouched.
type CreateVotingCommand struct {
	Title       string
	Description string
	Options     []string
	Capacity    int
	CreatorID   string
	TxHash      string
}

// CastVoteCommand records one confirmed vote for a voting option.
type CastVoteCommand struct {
	VotingID int64
	OptionID int
	VoterID  string
	TxHash   string
}

// RevealResultsCommand requests the creator-gated reveal transition.
type RevealResultsCommand struct {
	VotingID    int64
	RequesterID string
	TxHash      string
}

// CastVoteResult returns the updated voting plus a closure marker the
// transport layer can surface directly.
type CastVoteResult struct {
	Voting entities.Voting
	Closed bool
}

// VotingUseCase orchestrates the voting lifecycle: capacity-gated casting
// with duplicate prevention, creator-gated reveal, and outbox event emission.
// Every rejection leaves store and ledger state untouched.
type VotingUseCase struct {
	Votings ports.VotingRepository
	Ledger  ports.VoteLedger
	Outbox  ports.OutboxWriter
	Clock   ports.Clock
	IDGen   ports.IDGenerator
	Logger  *slog.Logger
}

// CreateVoting validates creation input and stores a fresh active voting with
// zeroed tallies and sequential option ids starting at 1.
func (uc VotingUseCase) CreateVoting(ctx context.Context, cmd CreateVotingCommand) (entities.Voting, error) {
	logger := application.ResolveLogger(uc.Logger)

	creatorID := strings.TrimSpace(cmd.CreatorID)
	if creatorID == "" {
		return entities.Voting{}, domainerrors.ErrIdentityRequired
	}
	title := strings.TrimSpace(cmd.Title)
	description := strings.TrimSpace(cmd.Description)
	if title == "" || len(title) > entities.MaxTitleLength ||
		description == "" || len(description) > entities.MaxDescriptionLength {
		return entities.Voting{}, domainerrors.ErrInvalidVotingInput
	}
	if cmd.Capacity <= 0 {
		return entities.Voting{}, domainerrors.ErrInvalidVotingInput
	}
	if len(cmd.Options) < entities.MinOptions || len(cmd.Options) > entities.MaxOptions {
		return entities.Voting{}, domainerrors.ErrInvalidVotingInput
	}

	now := uc.now()
	options := make([]entities.VotingOption, 0, len(cmd.Options))
	for index, raw := range cmd.Options {
		text := strings.TrimSpace(raw)
		if text == "" || len(text) > entities.MaxOptionTextLength {
			return entities.Voting{}, domainerrors.ErrInvalidVotingInput
		}
		options = append(options, entities.VotingOption{
			OptionID: index + 1,
			Text:     text,
		})
	}

	voting, err := uc.Votings.CreateVoting(ctx, entities.Voting{
		Title:       title,
		Description: description,
		CreatorID:   creatorID,
		Options:     options,
		Capacity:    cmd.Capacity,
		Status:      entities.VotingStatusActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		logger.Error("voting create failed",
			"event", "voting_create_failed",
			"module", "governance/voting-store",
			"layer", "application",
			"creator_id", creatorID,
			"error", err.Error(),
		)
		return entities.Voting{}, err
	}

	uc.appendEvent(ctx, events.TypeVotingCreated, voting.VotingID, now, map[string]any{
		"title":    voting.Title,
		"creator":  voting.CreatorID,
		"capacity": voting.Capacity,
		"tx_hash":  strings.TrimSpace(cmd.TxHash),
	})
	logger.Info("voting created",
		"event", "voting_created",
		"module", "governance/voting-store",
		"layer", "application",
		"voting_id", voting.VotingID,
		"creator_id", creatorID,
		"capacity", voting.Capacity,
	)
	return voting, nil
}

// CastVote applies one confirmed vote. The ledger record and the tally
// mutation form one logical transaction: the record is inserted first
// (authoritative duplicate rejection), and compensated away if the store
// rejects the cast, so neither side ever observes a partial outcome.
func (uc VotingUseCase) CastVote(ctx context.Context, cmd CastVoteCommand) (CastVoteResult, error) {
	logger := application.ResolveLogger(uc.Logger)

	voterID := strings.TrimSpace(cmd.VoterID)
	if voterID == "" {
		return CastVoteResult{}, domainerrors.ErrIdentityRequired
	}

	if err := uc.Ledger.RecordVote(ctx, cmd.VotingID, cmd.OptionID, voterID); err != nil {
		logger.Warn("vote cast rejected by ledger",
			"event", "voting_cast_ledger_rejected",
			"module", "governance/voting-store",
			"layer", "application",
			"voting_id", cmd.VotingID,
			"voter_id", voterID,
			"error", err.Error(),
		)
		return CastVoteResult{}, err
	}

	voting, err := uc.Votings.CastVote(ctx, cmd.VotingID, cmd.OptionID)
	if err != nil {
		if discardErr := uc.Ledger.DiscardVote(ctx, cmd.VotingID, voterID); discardErr != nil {
			logger.Error("vote ledger compensation failed",
				"event", "voting_cast_compensation_failed",
				"module", "governance/voting-store",
				"layer", "application",
				"voting_id", cmd.VotingID,
				"voter_id", voterID,
				"error", discardErr.Error(),
			)
		}
		logger.Warn("vote cast rejected by store",
			"event", "voting_cast_rejected",
			"module", "governance/voting-store",
			"layer", "application",
			"voting_id", cmd.VotingID,
			"option_id", cmd.OptionID,
			"voter_id", voterID,
			"error", err.Error(),
		)
		return CastVoteResult{}, err
	}

	now := uc.now()
	option, _ := voting.Option(cmd.OptionID)
	uc.appendEvent(ctx, events.TypeVoteCast, voting.VotingID, now, map[string]any{
		"option_id":   cmd.OptionID,
		"option_text": option.Text,
		"voter":       voterID,
		"tx_hash":     strings.TrimSpace(cmd.TxHash),
	})

	closed := voting.Status == entities.VotingStatusAwaitingReveal
	if closed {
		uc.appendEvent(ctx, events.TypeVotingClosed, voting.VotingID, now, map[string]any{
			"title":    voting.Title,
			"capacity": voting.Capacity,
		})
	}

	logger.Info("vote cast",
		"event", "voting_cast",
		"module", "governance/voting-store",
		"layer", "application",
		"voting_id", voting.VotingID,
		"option_id", cmd.OptionID,
		"voter_id", voterID,
		"participant_count", voting.ParticipantCount,
		"closed", closed,
	)
	return CastVoteResult{Voting: voting, Closed: closed}, nil
}

// RevealResults transitions a closed voting to revealed. Tallies are already
// final from casting and are not recomputed.
func (uc VotingUseCase) RevealResults(ctx context.Context, cmd RevealResultsCommand) (entities.Voting, error) {
	logger := application.ResolveLogger(uc.Logger)

	requesterID := strings.TrimSpace(cmd.RequesterID)
	if requesterID == "" {
		return entities.Voting{}, domainerrors.ErrIdentityRequired
	}

	voting, err := uc.Votings.GetVoting(ctx, cmd.VotingID)
	if err != nil {
		return entities.Voting{}, err
	}
	if !voting.MatchesCreator(requesterID) {
		logger.Warn("reveal rejected for non-creator",
			"event", "voting_reveal_unauthorized",
			"module", "governance/voting-store",
			"layer", "application",
			"voting_id", cmd.VotingID,
			"requester_id", requesterID,
		)
		return entities.Voting{}, domainerrors.ErrNotCreator
	}

	voting, err = uc.Votings.RevealVoting(ctx, cmd.VotingID)
	if err != nil {
		return entities.Voting{}, err
	}

	now := uc.now()
	uc.appendEvent(ctx, events.TypeVotingRevealed, voting.VotingID, now, map[string]any{
		"title":   voting.Title,
		"tx_hash": strings.TrimSpace(cmd.TxHash),
	})
	logger.Info("voting revealed",
		"event", "voting_revealed",
		"module", "governance/voting-store",
		"layer", "application",
		"voting_id", voting.VotingID,
		"requester_id", requesterID,
	)
	return voting, nil
}

func (uc VotingUseCase) now() time.Time {
	if uc.Clock != nil {
		return uc.Clock.Now().UTC()
	}
	return time.Now().UTC()
}
