package queries

import (
	"context"
	"testing"

	"ballotbox/contexts/governance/voting-store/adapters/memory"
	"ballotbox/contexts/governance/voting-store/domain/entities"
	domainerrors "ballotbox/contexts/governance/voting-store/domain/errors"
)

func TestResultPercentagesRoundHalfUp(t *testing.T) {
	voting := entities.Voting{
		ParticipantCount: 100,
		Options: []entities.VotingOption{
			{OptionID: 1, VoteCount: 45},
			{OptionID: 2, VoteCount: 25},
			{OptionID: 3, VoteCount: 15},
			{OptionID: 4, VoteCount: 15},
		},
	}

	percentages := ResultPercentages(voting)
	want := map[int]int{1: 45, 2: 25, 3: 15, 4: 15}
	for optionID, expected := range want {
		if percentages[optionID] != expected {
			t.Fatalf("option %d: expected %d%%, got %d%%", optionID, expected, percentages[optionID])
		}
	}
}

func TestResultPercentagesRoundingBoundary(t *testing.T) {
	voting := entities.Voting{
		ParticipantCount: 3,
		Options: []entities.VotingOption{
			{OptionID: 1, VoteCount: 2},
			{OptionID: 2, VoteCount: 1},
		},
	}

	percentages := ResultPercentages(voting)
	if percentages[1] != 67 {
		t.Fatalf("expected 67%% for two of three votes, got %d%%", percentages[1])
	}
	if percentages[2] != 33 {
		t.Fatalf("expected 33%% for one of three votes, got %d%%", percentages[2])
	}
}

func TestResultPercentagesZeroParticipants(t *testing.T) {
	voting := entities.Voting{
		ParticipantCount: 0,
		Options: []entities.VotingOption{
			{OptionID: 1},
			{OptionID: 2},
		},
	}

	percentages := ResultPercentages(voting)
	for optionID, percent := range percentages {
		if percent != 0 {
			t.Fatalf("option %d: expected 0%% with no participants, got %d%%", optionID, percent)
		}
	}
}

func TestVotingResultsRequiresReveal(t *testing.T) {
	store := memory.NewStore([]entities.Voting{
		{
			VotingID: 1,
			Title:    "Closed but unrevealed",
			Options: []entities.VotingOption{
				{OptionID: 1, Text: "Yes", VoteCount: 3},
				{OptionID: 2, Text: "No", VoteCount: 1},
			},
			Capacity:         4,
			ParticipantCount: 4,
			Status:           entities.VotingStatusAwaitingReveal,
		},
		{
			VotingID: 2,
			Title:    "Revealed",
			Options: []entities.VotingOption{
				{OptionID: 1, Text: "Yes", VoteCount: 1},
				{OptionID: 2, Text: "No", VoteCount: 1},
			},
			Capacity:         2,
			ParticipantCount: 2,
			Status:           entities.VotingStatusRevealed,
		},
	})
	uc := ResultsUseCase{Votings: store}

	_, _, err := uc.VotingResults(context.Background(), 1)
	if err != domainerrors.ErrResultsNotRevealed {
		t.Fatalf("expected results not revealed, got %v", err)
	}

	voting, percentages, err := uc.VotingResults(context.Background(), 2)
	if err != nil {
		t.Fatalf("revealed results failed: %v", err)
	}
	if voting.VotingID != 2 {
		t.Fatalf("expected voting 2, got %d", voting.VotingID)
	}
	if percentages[1] != 50 || percentages[2] != 50 {
		t.Fatalf("expected 50/50 split, got %v", percentages)
	}

	_, _, err = uc.VotingResults(context.Background(), 42)
	if err != domainerrors.ErrVotingNotFound {
		t.Fatalf("expected voting not found, got %v", err)
	}
}
