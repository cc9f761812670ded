package errors

import "errors"

var (
	ErrInvalidRecordInput = errors.New("invalid vote record input")
	ErrAlreadyVoted       = errors.New("identity has already voted on this voting")
	ErrRecordNotFound     = errors.New("vote record not found")
)
