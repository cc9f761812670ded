package entities

import "time"

// Notification is a human-readable message handed to the external
// notification collaborator after a confirmed governance action.
type Notification struct {
	NotificationID string
	Title          string
	Body           string
	VotingID       int64
	SentAt         time.Time
}
