package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type MyVoteResponse struct {
	VotingID int64 `json:"voting_id"`
	HasVoted bool  `json:"has_voted"`
	OptionID *int  `json:"option_id,omitempty"`
}
