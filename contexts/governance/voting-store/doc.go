// Package votingstore implements the voting lifecycle inside the governance
// context.
//
// The module owns proposal creation, capacity-gated vote casting,
// creator-gated reveal, and percentage tabulation. Reaching capacity closes a
// voting in the same atomic step as the final cast; reveal is terminal.
// Business rules live in application/domain layers and infrastructure stays
// behind ports and adapters. Duplicate-vote prevention is delegated to the
// governance vote-ledger context through the VoteLedger port.
package votingstore
