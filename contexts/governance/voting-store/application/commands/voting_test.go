package commands

import (
	"context"
	"testing"

	ledgermemory "ballotbox/contexts/governance/vote-ledger/adapters/memory"
	ledgerapp "ballotbox/contexts/governance/vote-ledger/application"
	ledgererrors "ballotbox/contexts/governance/vote-ledger/domain/errors"
	"ballotbox/contexts/governance/voting-store/adapters/memory"
	"ballotbox/contexts/governance/voting-store/domain/entities"
	domainerrors "ballotbox/contexts/governance/voting-store/domain/errors"
)

func newTestUseCase() (VotingUseCase, *memory.Store, ledgerapp.Service) {
	store := memory.NewStore(nil)
	ledger := ledgerapp.Service{
		Records: ledgermemory.NewStore(),
		Clock:   store,
		IDGen:   store,
	}
	return VotingUseCase{
		Votings: store,
		Ledger:  ledger,
		Outbox:  store,
		Clock:   store,
		IDGen:   store,
	}, store, ledger
}

func TestCreateVotingAssignsSequentialOptionIDs(t *testing.T) {
	uc, _, _ := newTestUseCase()

	voting, err := uc.CreateVoting(context.Background(), CreateVotingCommand{
		Title:       "Best Blockchain for DeFi",
		Description: "Pick the chain you would build on today.",
		Options:     []string{"Ethereum", "Base", "Polygon"},
		Capacity:    100,
		CreatorID:   "0xCreator",
	})
	if err != nil {
		t.Fatalf("create voting failed: %v", err)
	}
	if voting.VotingID != 1 {
		t.Fatalf("expected voting_id 1, got %d", voting.VotingID)
	}
	if voting.Status != entities.VotingStatusActive {
		t.Fatalf("expected active status, got %s", voting.Status)
	}
	if voting.ParticipantCount != 0 {
		t.Fatalf("expected zero participants, got %d", voting.ParticipantCount)
	}
	for index, option := range voting.Options {
		if option.OptionID != index+1 {
			t.Fatalf("expected option_id %d, got %d", index+1, option.OptionID)
		}
		if option.VoteCount != 0 {
			t.Fatalf("expected zero tally for option %d, got %d", option.OptionID, option.VoteCount)
		}
	}
}

func TestCreateVotingRejectsBadInput(t *testing.T) {
	uc, _, _ := newTestUseCase()
	valid := CreateVotingCommand{
		Title:       "Valid title",
		Description: "Valid description",
		Options:     []string{"Yes", "No"},
		Capacity:    10,
		CreatorID:   "0xCreator",
	}

	cases := []struct {
		name   string
		mutate func(cmd *CreateVotingCommand)
		want   error
	}{
		{"missing identity", func(cmd *CreateVotingCommand) { cmd.CreatorID = "  " }, domainerrors.ErrIdentityRequired},
		{"blank title", func(cmd *CreateVotingCommand) { cmd.Title = "   " }, domainerrors.ErrInvalidVotingInput},
		{"blank description", func(cmd *CreateVotingCommand) { cmd.Description = "" }, domainerrors.ErrInvalidVotingInput},
		{"zero capacity", func(cmd *CreateVotingCommand) { cmd.Capacity = 0 }, domainerrors.ErrInvalidVotingInput},
		{"negative capacity", func(cmd *CreateVotingCommand) { cmd.Capacity = -5 }, domainerrors.ErrInvalidVotingInput},
		{"too few options", func(cmd *CreateVotingCommand) { cmd.Options = []string{"Only"} }, domainerrors.ErrInvalidVotingInput},
		{"too many options", func(cmd *CreateVotingCommand) {
			cmd.Options = []string{"A", "B", "C", "D", "E", "F", "G"}
		}, domainerrors.ErrInvalidVotingInput},
		{"blank option", func(cmd *CreateVotingCommand) { cmd.Options = []string{"Yes", "   "} }, domainerrors.ErrInvalidVotingInput},
	}

	for _, tc := range cases {
		cmd := valid
		cmd.Options = append([]string(nil), valid.Options...)
		tc.mutate(&cmd)
		_, err := uc.CreateVoting(context.Background(), cmd)
		if err != tc.want {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, err)
		}
	}

	votings, err := uc.Votings.ListVotings(context.Background())
	if err != nil {
		t.Fatalf("list votings failed: %v", err)
	}
	if len(votings) != 0 {
		t.Fatalf("rejected creations must not persist, found %d votings", len(votings))
	}
}

func TestCastVoteClosesVotingAtCapacity(t *testing.T) {
	uc, _, _ := newTestUseCase()

	voting, err := uc.CreateVoting(context.Background(), CreateVotingCommand{
		Title:       "Snack budget",
		Description: "Where should the snack budget go?",
		Options:     []string{"Coffee", "Fruit"},
		Capacity:    2,
		CreatorID:   "0xCreator",
	})
	if err != nil {
		t.Fatalf("create voting failed: %v", err)
	}

	first, err := uc.CastVote(context.Background(), CastVoteCommand{
		VotingID: voting.VotingID,
		OptionID: 1,
		VoterID:  "0xAlice",
	})
	if err != nil {
		t.Fatalf("first cast failed: %v", err)
	}
	if first.Closed {
		t.Fatal("voting must stay open below capacity")
	}
	if first.Voting.Status != entities.VotingStatusActive {
		t.Fatalf("expected active status, got %s", first.Voting.Status)
	}

	second, err := uc.CastVote(context.Background(), CastVoteCommand{
		VotingID: voting.VotingID,
		OptionID: 2,
		VoterID:  "0xBob",
	})
	if err != nil {
		t.Fatalf("second cast failed: %v", err)
	}
	if !second.Closed {
		t.Fatal("voting must close when capacity is reached")
	}
	if second.Voting.Status != entities.VotingStatusAwaitingReveal {
		t.Fatalf("expected awaiting_reveal, got %s", second.Voting.Status)
	}

	total := 0
	for _, option := range second.Voting.Options {
		total += option.VoteCount
	}
	if total != second.Voting.ParticipantCount {
		t.Fatalf("tally sum %d must equal participant count %d", total, second.Voting.ParticipantCount)
	}

	_, err = uc.CastVote(context.Background(), CastVoteCommand{
		VotingID: voting.VotingID,
		OptionID: 1,
		VoterID:  "0xLate",
	})
	if err != domainerrors.ErrVotingNotActive {
		t.Fatalf("expected voting not active after close, got %v", err)
	}
}

func TestCastVoteRejectsDuplicateVoterWithoutMutation(t *testing.T) {
	uc, _, _ := newTestUseCase()

	voting, err := uc.CreateVoting(context.Background(), CreateVotingCommand{
		Title:       "Release day",
		Description: "Which day should we ship?",
		Options:     []string{"Tuesday", "Thursday"},
		Capacity:    10,
		CreatorID:   "0xCreator",
	})
	if err != nil {
		t.Fatalf("create voting failed: %v", err)
	}

	if _, err := uc.CastVote(context.Background(), CastVoteCommand{
		VotingID: voting.VotingID,
		OptionID: 1,
		VoterID:  "0xAlice",
	}); err != nil {
		t.Fatalf("first cast failed: %v", err)
	}

	_, err = uc.CastVote(context.Background(), CastVoteCommand{
		VotingID: voting.VotingID,
		OptionID: 2,
		VoterID:  "0xAlice",
	})
	if err != ledgererrors.ErrAlreadyVoted {
		t.Fatalf("expected already voted, got %v", err)
	}

	after, err := uc.Votings.GetVoting(context.Background(), voting.VotingID)
	if err != nil {
		t.Fatalf("get voting failed: %v", err)
	}
	if after.ParticipantCount != 1 {
		t.Fatalf("duplicate cast must not mutate tallies, got %d participants", after.ParticipantCount)
	}
	if after.Options[1].VoteCount != 0 {
		t.Fatalf("duplicate cast must not touch the second option, got %d", after.Options[1].VoteCount)
	}
}

func TestCastVoteCompensatesLedgerWhenStoreRejects(t *testing.T) {
	uc, _, ledger := newTestUseCase()

	voting, err := uc.CreateVoting(context.Background(), CreateVotingCommand{
		Title:       "Logo color",
		Description: "Pick the new logo color.",
		Options:     []string{"Blue", "Green"},
		Capacity:    10,
		CreatorID:   "0xCreator",
	})
	if err != nil {
		t.Fatalf("create voting failed: %v", err)
	}

	_, err = uc.CastVote(context.Background(), CastVoteCommand{
		VotingID: voting.VotingID,
		OptionID: 99,
		VoterID:  "0xAlice",
	})
	if err != domainerrors.ErrOptionNotFound {
		t.Fatalf("expected option not found, got %v", err)
	}

	voted, err := ledger.HasVoted(context.Background(), voting.VotingID, "0xAlice")
	if err != nil {
		t.Fatalf("has voted failed: %v", err)
	}
	if voted {
		t.Fatal("rejected cast must discard the ledger record")
	}

	// The same voter can retry with a valid option.
	result, err := uc.CastVote(context.Background(), CastVoteCommand{
		VotingID: voting.VotingID,
		OptionID: 1,
		VoterID:  "0xAlice",
	})
	if err != nil {
		t.Fatalf("retry cast failed: %v", err)
	}
	if result.Voting.ParticipantCount != 1 {
		t.Fatalf("expected one participant after retry, got %d", result.Voting.ParticipantCount)
	}
}

func TestRevealResultsCreatorGate(t *testing.T) {
	uc, _, _ := newTestUseCase()

	voting, err := uc.CreateVoting(context.Background(), CreateVotingCommand{
		Title:       "Team offsite",
		Description: "Where should the offsite happen?",
		Options:     []string{"Lisbon", "Berlin"},
		Capacity:    2,
		CreatorID:   "0xCreatorAddress",
	})
	if err != nil {
		t.Fatalf("create voting failed: %v", err)
	}

	_, err = uc.RevealResults(context.Background(), RevealResultsCommand{
		VotingID:    voting.VotingID,
		RequesterID: "0xSomebodyElse",
	})
	if err != domainerrors.ErrNotCreator {
		t.Fatalf("expected not creator, got %v", err)
	}

	_, err = uc.RevealResults(context.Background(), RevealResultsCommand{
		VotingID:    voting.VotingID,
		RequesterID: "0xCreatorAddress",
	})
	if err != domainerrors.ErrVotingStillOpen {
		t.Fatalf("expected voting still open, got %v", err)
	}

	for _, voter := range []string{"0xAlice", "0xBob"} {
		if _, err := uc.CastVote(context.Background(), CastVoteCommand{
			VotingID: voting.VotingID,
			OptionID: 1,
			VoterID:  voter,
		}); err != nil {
			t.Fatalf("cast for %s failed: %v", voter, err)
		}
	}

	revealed, err := uc.RevealResults(context.Background(), RevealResultsCommand{
		VotingID:    voting.VotingID,
		RequesterID: "0xcreatoraddress",
	})
	if err != nil {
		t.Fatalf("reveal failed: %v", err)
	}
	if revealed.Status != entities.VotingStatusRevealed {
		t.Fatalf("expected revealed status, got %s", revealed.Status)
	}

	_, err = uc.RevealResults(context.Background(), RevealResultsCommand{
		VotingID:    voting.VotingID,
		RequesterID: "0xCreatorAddress",
	})
	if err != domainerrors.ErrAlreadyRevealed {
		t.Fatalf("expected already revealed, got %v", err)
	}
}

func TestRevealResultsMatchesTruncatedCreatorLabel(t *testing.T) {
	uc, store, _ := newTestUseCase()

	seeded, err := store.CreateVoting(context.Background(), entities.Voting{
		Title:       "Seeded voting",
		Description: "Creator stored as an abbreviated wallet label.",
		CreatorID:   "0xAbCd...1234",
		Options: []entities.VotingOption{
			{OptionID: 1, Text: "Yes"},
			{OptionID: 2, Text: "No"},
		},
		Capacity: 1,
		Status:   entities.VotingStatusAwaitingReveal,
	})
	if err != nil {
		t.Fatalf("seed voting failed: %v", err)
	}

	revealed, err := uc.RevealResults(context.Background(), RevealResultsCommand{
		VotingID:    seeded.VotingID,
		RequesterID: "0xabcdEF0123456789",
	})
	if err != nil {
		t.Fatalf("reveal with full address failed: %v", err)
	}
	if revealed.Status != entities.VotingStatusRevealed {
		t.Fatalf("expected revealed status, got %s", revealed.Status)
	}

	_, err = uc.RevealResults(context.Background(), RevealResultsCommand{
		VotingID:    seeded.VotingID,
		RequesterID: "0xFFFF000011112222",
	})
	if err != domainerrors.ErrNotCreator {
		t.Fatalf("expected not creator for mismatched prefix, got %v", err)
	}
}

func TestMutationsAppendOutboxEvents(t *testing.T) {
	uc, store, _ := newTestUseCase()

	voting, err := uc.CreateVoting(context.Background(), CreateVotingCommand{
		Title:       "Event wiring",
		Description: "Verifies lifecycle events reach the outbox.",
		Options:     []string{"A", "B"},
		Capacity:    1,
		CreatorID:   "0xCreator",
		TxHash:      "0xhash1",
	})
	if err != nil {
		t.Fatalf("create voting failed: %v", err)
	}
	if _, err := uc.CastVote(context.Background(), CastVoteCommand{
		VotingID: voting.VotingID,
		OptionID: 1,
		VoterID:  "0xAlice",
		TxHash:   "0xhash2",
	}); err != nil {
		t.Fatalf("cast failed: %v", err)
	}
	if _, err := uc.RevealResults(context.Background(), RevealResultsCommand{
		VotingID:    voting.VotingID,
		RequesterID: "0xCreator",
		TxHash:      "0xhash3",
	}); err != nil {
		t.Fatalf("reveal failed: %v", err)
	}

	pending, err := store.ListPendingOutbox(context.Background(), 10)
	if err != nil {
		t.Fatalf("list outbox failed: %v", err)
	}
	// created + cast + closed (capacity 1) + revealed
	if len(pending) != 4 {
		t.Fatalf("expected 4 outbox rows, got %d", len(pending))
	}
}
