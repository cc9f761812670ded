package ports

import (
	"context"
	"time"

	"ballotbox/contexts/engagement/notification-service/domain/entities"
)

// Notifier delivers a notification to the external collaborator. Delivery is
// fire-and-forget from the governance side: a failure is logged, never
// propagated back into a mutation.
type Notifier interface {
	Send(ctx context.Context, notification entities.Notification) error
}

type Clock interface {
	Now() time.Time
}
