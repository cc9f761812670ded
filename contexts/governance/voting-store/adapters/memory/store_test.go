package memory

import (
	"context"
	"testing"
	"time"

	"ballotbox/contexts/governance/voting-store/domain/entities"
	domainerrors "ballotbox/contexts/governance/voting-store/domain/errors"
	"ballotbox/contexts/governance/voting-store/ports"
)

func activeVoting(title string) entities.Voting {
	return entities.Voting{
		Title:       title,
		Description: "description",
		CreatorID:   "0xCreator",
		Options: []entities.VotingOption{
			{OptionID: 1, Text: "Yes"},
			{OptionID: 2, Text: "No"},
		},
		Capacity: 2,
		Status:   entities.VotingStatusActive,
	}
}

func TestCreateVotingDerivesMonotonicIDsFromSeed(t *testing.T) {
	seed := activeVoting("Seeded")
	seed.VotingID = 5
	store := NewStore([]entities.Voting{seed})

	created, err := store.CreateVoting(context.Background(), activeVoting("Fresh"))
	if err != nil {
		t.Fatalf("create voting failed: %v", err)
	}
	if created.VotingID != 6 {
		t.Fatalf("expected id 6 after seed id 5, got %d", created.VotingID)
	}

	next, err := store.CreateVoting(context.Background(), activeVoting("Next"))
	if err != nil {
		t.Fatalf("create voting failed: %v", err)
	}
	if next.VotingID != 7 {
		t.Fatalf("expected id 7, got %d", next.VotingID)
	}
}

func TestListVotingsNewestFirst(t *testing.T) {
	store := NewStore(nil)

	for _, title := range []string{"First", "Second", "Third"} {
		if _, err := store.CreateVoting(context.Background(), activeVoting(title)); err != nil {
			t.Fatalf("create %s failed: %v", title, err)
		}
	}

	items, err := store.ListVotings(context.Background())
	if err != nil {
		t.Fatalf("list votings failed: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("expected 3 votings, got %d", len(items))
	}
	if items[0].Title != "Third" || items[2].Title != "First" {
		t.Fatalf("expected newest first, got %s .. %s", items[0].Title, items[2].Title)
	}
}

func TestCastVoteTransitionsAtCapacity(t *testing.T) {
	store := NewStore(nil)
	created, err := store.CreateVoting(context.Background(), activeVoting("Capacity"))
	if err != nil {
		t.Fatalf("create voting failed: %v", err)
	}

	after, err := store.CastVote(context.Background(), created.VotingID, 1)
	if err != nil {
		t.Fatalf("first cast failed: %v", err)
	}
	if after.Status != entities.VotingStatusActive {
		t.Fatalf("expected active below capacity, got %s", after.Status)
	}

	after, err = store.CastVote(context.Background(), created.VotingID, 2)
	if err != nil {
		t.Fatalf("second cast failed: %v", err)
	}
	if after.Status != entities.VotingStatusAwaitingReveal {
		t.Fatalf("expected awaiting_reveal at capacity, got %s", after.Status)
	}
	if after.ParticipantCount != 2 {
		t.Fatalf("expected 2 participants, got %d", after.ParticipantCount)
	}

	_, err = store.CastVote(context.Background(), created.VotingID, 1)
	if err != domainerrors.ErrVotingNotActive {
		t.Fatalf("expected voting not active, got %v", err)
	}
}

func TestCastVoteRejectionsLeaveStateUntouched(t *testing.T) {
	store := NewStore(nil)
	created, err := store.CreateVoting(context.Background(), activeVoting("Rejections"))
	if err != nil {
		t.Fatalf("create voting failed: %v", err)
	}

	if _, err := store.CastVote(context.Background(), 999, 1); err != domainerrors.ErrVotingNotFound {
		t.Fatalf("expected voting not found, got %v", err)
	}
	if _, err := store.CastVote(context.Background(), created.VotingID, 99); err != domainerrors.ErrOptionNotFound {
		t.Fatalf("expected option not found, got %v", err)
	}

	after, err := store.GetVoting(context.Background(), created.VotingID)
	if err != nil {
		t.Fatalf("get voting failed: %v", err)
	}
	if after.ParticipantCount != 0 {
		t.Fatalf("rejections must not mutate, got %d participants", after.ParticipantCount)
	}
}

func TestRevealVotingStateMachine(t *testing.T) {
	store := NewStore(nil)
	created, err := store.CreateVoting(context.Background(), activeVoting("Reveal"))
	if err != nil {
		t.Fatalf("create voting failed: %v", err)
	}

	if _, err := store.RevealVoting(context.Background(), created.VotingID); err != domainerrors.ErrVotingStillOpen {
		t.Fatalf("expected voting still open, got %v", err)
	}

	if _, err := store.CastVote(context.Background(), created.VotingID, 1); err != nil {
		t.Fatalf("cast failed: %v", err)
	}
	if _, err := store.CastVote(context.Background(), created.VotingID, 2); err != nil {
		t.Fatalf("cast failed: %v", err)
	}

	revealed, err := store.RevealVoting(context.Background(), created.VotingID)
	if err != nil {
		t.Fatalf("reveal failed: %v", err)
	}
	if revealed.Status != entities.VotingStatusRevealed {
		t.Fatalf("expected revealed, got %s", revealed.Status)
	}

	if _, err := store.RevealVoting(context.Background(), created.VotingID); err != domainerrors.ErrAlreadyRevealed {
		t.Fatalf("expected already revealed, got %v", err)
	}
	if _, err := store.RevealVoting(context.Background(), 999); err != domainerrors.ErrVotingNotFound {
		t.Fatalf("expected voting not found, got %v", err)
	}
}

func TestSnapshotsAreIsolatedFromStore(t *testing.T) {
	store := NewStore(nil)
	created, err := store.CreateVoting(context.Background(), activeVoting("Isolation"))
	if err != nil {
		t.Fatalf("create voting failed: %v", err)
	}

	snapshot, err := store.GetVoting(context.Background(), created.VotingID)
	if err != nil {
		t.Fatalf("get voting failed: %v", err)
	}
	snapshot.Options[0].VoteCount = 99
	snapshot.ParticipantCount = 99

	fresh, err := store.GetVoting(context.Background(), created.VotingID)
	if err != nil {
		t.Fatalf("get voting failed: %v", err)
	}
	if fresh.Options[0].VoteCount != 0 || fresh.ParticipantCount != 0 {
		t.Fatal("mutating a snapshot must not affect stored state")
	}
}

func TestOutboxPendingAndMarkPublished(t *testing.T) {
	store := NewStore(nil)

	for _, id := range []string{"out-1", "out-2", "out-3"} {
		if err := store.AppendOutbox(context.Background(), ports.OutboxMessage{
			OutboxID:  id,
			EventType: "voting.created",
			Payload:   []byte(`{}`),
		}); err != nil {
			t.Fatalf("append %s failed: %v", id, err)
		}
	}

	if err := store.AppendOutbox(context.Background(), ports.OutboxMessage{OutboxID: "out-1"}); err != domainerrors.ErrConflict {
		t.Fatalf("expected conflict for duplicate outbox id, got %v", err)
	}

	pending, err := store.ListPendingOutbox(context.Background(), 2)
	if err != nil {
		t.Fatalf("list pending failed: %v", err)
	}
	if len(pending) != 2 {
		t.Fatalf("expected batch of 2, got %d", len(pending))
	}
	if pending[0].OutboxID != "out-1" {
		t.Fatalf("expected append order, got %s first", pending[0].OutboxID)
	}

	if err := store.MarkOutboxPublished(context.Background(), "out-1", time.Now().UTC()); err != nil {
		t.Fatalf("mark published failed: %v", err)
	}

	pending, err = store.ListPendingOutbox(context.Background(), 10)
	if err != nil {
		t.Fatalf("list pending failed: %v", err)
	}
	if len(pending) != 2 {
		t.Fatalf("expected 2 pending after publish, got %d", len(pending))
	}
	for _, row := range pending {
		if row.OutboxID == "out-1" {
			t.Fatal("published row must not be listed as pending")
		}
	}
}
