package httpadapter

import (
	"context"
	"log/slog"

	"ballotbox/contexts/governance/vote-ledger/application"
	httptransport "ballotbox/contexts/governance/vote-ledger/transport/http"
)

type Handler struct {
	Ledger application.Service
	Logger *slog.Logger
}

func (h Handler) MyVoteHandler(ctx context.Context, votingID int64, voterID string) (httptransport.MyVoteResponse, error) {
	optionID, found, err := h.Ledger.VotedOption(ctx, votingID, voterID)
	if err != nil {
		return httptransport.MyVoteResponse{}, err
	}
	resp := httptransport.MyVoteResponse{
		VotingID: votingID,
		HasVoted: found,
	}
	if found {
		resp.OptionID = &optionID
	}
	return resp, nil
}
