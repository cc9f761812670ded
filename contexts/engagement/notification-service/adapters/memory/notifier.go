package memory

import (
	"context"
	"sync"
	"time"

	"ballotbox/contexts/engagement/notification-service/domain/entities"
)

// Notifier records delivered notifications in memory. It stands in for the
// external push collaborator in local runs and tests.
type Notifier struct {
	mu   sync.RWMutex
	sent []entities.Notification
}

func NewNotifier() *Notifier {
	return &Notifier{}
}

func (n *Notifier) Send(_ context.Context, notification entities.Notification) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, notification)
	return nil
}

func (n *Notifier) Sent() []entities.Notification {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return append([]entities.Notification(nil), n.sent...)
}

func (n *Notifier) Now() time.Time {
	return time.Now().UTC()
}
