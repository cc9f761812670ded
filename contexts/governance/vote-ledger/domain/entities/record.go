package entities

import "time"

// VoteRecord ties one participant identity to the option they selected on a
// voting. Records are created once per (voter, voting) pair and never change:
// there is no vote editing in this product.
type VoteRecord struct {
	RecordID  string
	VotingID  int64
	OptionID  int
	VoterID   string
	CreatedAt time.Time
}
