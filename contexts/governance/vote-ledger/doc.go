// Package voteledger tracks which option each participant identity selected
// per voting. It is the authoritative one-vote-per-identity check inside the
// governance context: the voting store records a vote here before touching
// tallies and compensates the record away if the cast is rejected. The
// ledger never mutates voting state itself.
package voteledger
