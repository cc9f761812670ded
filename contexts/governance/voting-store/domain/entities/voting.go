package entities

import "time"

type VotingStatus string

const (
	VotingStatusActive         VotingStatus = "active"
	VotingStatusAwaitingReveal VotingStatus = "awaiting_reveal"
	VotingStatusRevealed       VotingStatus = "revealed"
)

// Input bounds enforced at creation time.
const (
	MinOptions = 2
	MaxOptions = 6

	MaxTitleLength       = 120
	MaxDescriptionLength = 2000
	MaxOptionTextLength  = 80
)

type VotingOption struct {
	OptionID  int
	Text      string
	VoteCount int
}

// Voting is a single proposal with a fixed option set, a participant
// capacity, and a lifecycle status. Tallies mutate only through vote casting;
// the sum of option vote counts always equals ParticipantCount.
type Voting struct {
	VotingID         int64
	Title            string
	Description      string
	CreatorID        string
	Options          []VotingOption
	Capacity         int
	ParticipantCount int
	Status           VotingStatus
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (v Voting) IsActive() bool {
	return v.Status == VotingStatusActive
}

func (v Voting) IsRevealed() bool {
	return v.Status == VotingStatusRevealed
}

// AtCapacity reports whether every seat has been taken.
func (v Voting) AtCapacity() bool {
	return v.Capacity > 0 && v.ParticipantCount >= v.Capacity
}

// Option resolves an option by its id within this voting.
func (v Voting) Option(optionID int) (VotingOption, bool) {
	for _, option := range v.Options {
		if option.OptionID == optionID {
			return option, true
		}
	}
	return VotingOption{}, false
}

// Clone returns a deep copy so callers can hand out snapshots without
// exposing the store's mutable option slice.
func (v Voting) Clone() Voting {
	out := v
	out.Options = make([]VotingOption, len(v.Options))
	copy(out.Options, v.Options)
	return out
}
