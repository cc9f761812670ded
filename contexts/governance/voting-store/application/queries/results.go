package queries

import (
	"context"
	"math"

	"ballotbox/contexts/governance/voting-store/domain/entities"
	domainerrors "ballotbox/contexts/governance/voting-store/domain/errors"
	"ballotbox/contexts/governance/voting-store/ports"
)

// ResultsUseCase serves the read side: listings, detail snapshots, and
// revealed tallies.
type ResultsUseCase struct {
	Votings ports.VotingRepository
}

func (uc ResultsUseCase) ListVotings(ctx context.Context) ([]entities.Voting, error) {
	return uc.Votings.ListVotings(ctx)
}

func (uc ResultsUseCase) GetVoting(ctx context.Context, votingID int64) (entities.Voting, error) {
	return uc.Votings.GetVoting(ctx, votingID)
}

// VotingResults returns the final tallies with per-option percentages.
// Results are only readable once the creator has revealed them.
func (uc ResultsUseCase) VotingResults(ctx context.Context, votingID int64) (entities.Voting, map[int]int, error) {
	voting, err := uc.Votings.GetVoting(ctx, votingID)
	if err != nil {
		return entities.Voting{}, nil, err
	}
	if !voting.IsRevealed() {
		return entities.Voting{}, nil, domainerrors.ErrResultsNotRevealed
	}
	return voting, ResultPercentages(voting), nil
}

// ResultPercentages maps each option id to round-half-up percent of the
// participant count. A voting with no participants yields 0 for every
// option. Percentages are rounded independently and need not sum to 100.
func ResultPercentages(voting entities.Voting) map[int]int {
	percentages := make(map[int]int, len(voting.Options))
	for _, option := range voting.Options {
		if voting.ParticipantCount <= 0 {
			percentages[option.OptionID] = 0
			continue
		}
		ratio := float64(option.VoteCount) / float64(voting.ParticipantCount)
		percentages[option.OptionID] = int(math.Round(ratio * 100))
	}
	return percentages
}
