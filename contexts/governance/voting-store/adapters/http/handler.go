package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"ballotbox/contexts/governance/voting-store/application/commands"
	"ballotbox/contexts/governance/voting-store/application/queries"
	"ballotbox/contexts/governance/voting-store/domain/entities"
	httptransport "ballotbox/contexts/governance/voting-store/transport/http"
)

type Handler struct {
	Votings commands.VotingUseCase
	Results queries.ResultsUseCase
	Logger  *slog.Logger
}

func (h Handler) CreateVotingHandler(
	ctx context.Context,
	creatorID string,
	txHash string,
	req httptransport.CreateVotingRequest,
) (httptransport.VotingResponse, error) {
	voting, err := h.Votings.CreateVoting(ctx, commands.CreateVotingCommand{
		Title:       req.Title,
		Description: req.Description,
		Options:     req.Options,
		Capacity:    req.Capacity,
		CreatorID:   creatorID,
		TxHash:      txHash,
	})
	if err != nil {
		return httptransport.VotingResponse{}, err
	}
	return mapVoting(voting), nil
}

func (h Handler) CastVoteHandler(
	ctx context.Context,
	votingID int64,
	voterID string,
	txHash string,
	req httptransport.CastVoteRequest,
) (httptransport.CastVoteResponse, error) {
	result, err := h.Votings.CastVote(ctx, commands.CastVoteCommand{
		VotingID: votingID,
		OptionID: req.OptionID,
		VoterID:  voterID,
		TxHash:   txHash,
	})
	if err != nil {
		return httptransport.CastVoteResponse{}, err
	}
	return httptransport.CastVoteResponse{
		Voting: mapVoting(result.Voting),
		Closed: result.Closed,
	}, nil
}

func (h Handler) RevealResultsHandler(
	ctx context.Context,
	votingID int64,
	requesterID string,
	txHash string,
) (httptransport.VotingResponse, error) {
	voting, err := h.Votings.RevealResults(ctx, commands.RevealResultsCommand{
		VotingID:    votingID,
		RequesterID: requesterID,
		TxHash:      txHash,
	})
	if err != nil {
		return httptransport.VotingResponse{}, err
	}
	return mapVoting(voting), nil
}

func (h Handler) ListVotingsHandler(ctx context.Context) (httptransport.VotingListResponse, error) {
	votings, err := h.Results.ListVotings(ctx)
	if err != nil {
		return httptransport.VotingListResponse{}, err
	}
	items := make([]httptransport.VotingResponse, 0, len(votings))
	for _, voting := range votings {
		items = append(items, mapVoting(voting))
	}
	return httptransport.VotingListResponse{Items: items}, nil
}

func (h Handler) GetVotingHandler(ctx context.Context, votingID int64) (httptransport.VotingResponse, error) {
	voting, err := h.Results.GetVoting(ctx, votingID)
	if err != nil {
		return httptransport.VotingResponse{}, err
	}
	return mapVoting(voting), nil
}

func (h Handler) VotingResultsHandler(ctx context.Context, votingID int64) (httptransport.ResultsResponse, error) {
	voting, percentages, err := h.Results.VotingResults(ctx, votingID)
	if err != nil {
		return httptransport.ResultsResponse{}, err
	}
	options := make([]httptransport.OptionResponse, 0, len(voting.Options))
	for _, option := range voting.Options {
		count := option.VoteCount
		percent := percentages[option.OptionID]
		options = append(options, httptransport.OptionResponse{
			OptionID:   option.OptionID,
			Text:       option.Text,
			VoteCount:  &count,
			Percentage: &percent,
		})
	}
	return httptransport.ResultsResponse{
		VotingID:         voting.VotingID,
		Title:            voting.Title,
		ParticipantCount: voting.ParticipantCount,
		Options:          options,
	}, nil
}

// mapVoting hides per-option tallies until the voting is revealed.
func mapVoting(voting entities.Voting) httptransport.VotingResponse {
	options := make([]httptransport.OptionResponse, 0, len(voting.Options))
	revealed := voting.IsRevealed()
	var percentages map[int]int
	if revealed {
		percentages = queries.ResultPercentages(voting)
	}
	for _, option := range voting.Options {
		item := httptransport.OptionResponse{
			OptionID: option.OptionID,
			Text:     option.Text,
		}
		if revealed {
			count := option.VoteCount
			percent := percentages[option.OptionID]
			item.VoteCount = &count
			item.Percentage = &percent
		}
		options = append(options, item)
	}
	return httptransport.VotingResponse{
		VotingID:         voting.VotingID,
		Title:            voting.Title,
		Description:      voting.Description,
		CreatorID:        voting.CreatorID,
		Options:          options,
		Capacity:         voting.Capacity,
		ParticipantCount: voting.ParticipantCount,
		Status:           string(voting.Status),
		CreatedAt:        voting.CreatedAt.UTC().Format(time.RFC3339),
	}
}
