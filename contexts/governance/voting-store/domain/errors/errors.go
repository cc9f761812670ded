package errors

import "errors"

var (
	ErrInvalidVotingInput = errors.New("invalid voting input")
	ErrIdentityRequired   = errors.New("participant identity is required")
	ErrVotingNotFound     = errors.New("voting not found")
	ErrOptionNotFound     = errors.New("voting option not found")
	ErrVotingNotActive    = errors.New("voting is not accepting votes")
	ErrNotCreator         = errors.New("only the voting creator may reveal results")
	ErrVotingStillOpen    = errors.New("voting is still accepting votes")
	ErrAlreadyRevealed    = errors.New("voting results are already revealed")
	ErrResultsNotRevealed = errors.New("voting results are not revealed yet")
	ErrConflict           = errors.New("voting state conflict")
)
