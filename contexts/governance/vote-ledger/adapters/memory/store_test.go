package memory

import (
	"context"
	"testing"
	"time"

	"ballotbox/contexts/governance/vote-ledger/domain/entities"
	domainerrors "ballotbox/contexts/governance/vote-ledger/domain/errors"
)

func TestInsertIsAtomicInsertIfAbsent(t *testing.T) {
	store := NewStore()
	now := time.Now().UTC()

	err := store.Insert(context.Background(), entities.VoteRecord{
		RecordID:  "rec-1",
		VotingID:  1,
		OptionID:  2,
		VoterID:   "0xAlice",
		CreatedAt: now,
	})
	if err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	err = store.Insert(context.Background(), entities.VoteRecord{
		RecordID: "rec-2",
		VotingID: 1,
		OptionID: 1,
		VoterID:  "0xAlice",
	})
	if err != domainerrors.ErrAlreadyVoted {
		t.Fatalf("expected already voted, got %v", err)
	}

	record, found, err := store.Get(context.Background(), 1, "0xAlice")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if !found || record.OptionID != 2 {
		t.Fatalf("expected original record preserved, got option %d found=%v", record.OptionID, found)
	}
}

func TestDeleteRemovesExactly(t *testing.T) {
	store := NewStore()

	if err := store.Insert(context.Background(), entities.VoteRecord{
		RecordID: "rec-1",
		VotingID: 1,
		OptionID: 1,
		VoterID:  "0xAlice",
	}); err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	if err := store.Delete(context.Background(), 1, "0xBob"); err != domainerrors.ErrRecordNotFound {
		t.Fatalf("expected record not found for other voter, got %v", err)
	}
	if err := store.Delete(context.Background(), 1, "0xAlice"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if err := store.Delete(context.Background(), 1, "0xAlice"); err != domainerrors.ErrRecordNotFound {
		t.Fatalf("expected record not found after delete, got %v", err)
	}
}

func TestListByVoterSpansVotings(t *testing.T) {
	store := NewStore()

	records := []entities.VoteRecord{
		{RecordID: "rec-1", VotingID: 1, OptionID: 1, VoterID: "0xAlice"},
		{RecordID: "rec-2", VotingID: 2, OptionID: 2, VoterID: "0xAlice"},
		{RecordID: "rec-3", VotingID: 1, OptionID: 1, VoterID: "0xBob"},
	}
	for _, record := range records {
		if err := store.Insert(context.Background(), record); err != nil {
			t.Fatalf("insert %s failed: %v", record.RecordID, err)
		}
	}

	mine, err := store.ListByVoter(context.Background(), "0xAlice")
	if err != nil {
		t.Fatalf("list by voter failed: %v", err)
	}
	if len(mine) != 2 {
		t.Fatalf("expected 2 records for voter, got %d", len(mine))
	}
}
