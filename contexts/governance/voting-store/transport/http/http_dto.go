package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type CreateVotingRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Options     []string `json:"options"`
	Capacity    int      `json:"capacity"`
}

type CastVoteRequest struct {
	OptionID int `json:"option_id"`
}

type OptionResponse struct {
	OptionID int    `json:"option_id"`
	Text     string `json:"text"`
	// VoteCount and Percentage are populated only once results are revealed.
	VoteCount  *int `json:"vote_count,omitempty"`
	Percentage *int `json:"percentage,omitempty"`
}

type VotingResponse struct {
	VotingID         int64            `json:"voting_id"`
	Title            string           `json:"title"`
	Description      string           `json:"description"`
	CreatorID        string           `json:"creator_id"`
	Options          []OptionResponse `json:"options"`
	Capacity         int              `json:"capacity"`
	ParticipantCount int              `json:"participant_count"`
	Status           string           `json:"status"`
	CreatedAt        string           `json:"created_at"`
}

type VotingListResponse struct {
	Items []VotingResponse `json:"items"`
}

type CastVoteResponse struct {
	Voting VotingResponse `json:"voting"`
	Closed bool           `json:"closed"`
}

type ResultsResponse struct {
	VotingID         int64            `json:"voting_id"`
	Title            string           `json:"title"`
	ParticipantCount int              `json:"participant_count"`
	Options          []OptionResponse `json:"options"`
}
