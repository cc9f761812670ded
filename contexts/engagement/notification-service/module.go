package notificationservice

import (
	"log/slog"

	"ballotbox/contexts/engagement/notification-service/adapters/memory"
	"ballotbox/contexts/engagement/notification-service/application/workers"
	"ballotbox/contexts/engagement/notification-service/ports"
)

type Module struct {
	Consumer workers.EventConsumer
	Notifier *memory.Notifier
}

type Dependencies struct {
	Notifier ports.Notifier
	Clock    ports.Clock
	Logger   *slog.Logger
}

func NewModule(deps Dependencies) Module {
	return Module{
		Consumer: workers.EventConsumer{
			Notifier: deps.Notifier,
			Clock:    deps.Clock,
			Logger:   deps.Logger,
		},
	}
}

func NewInMemoryModule(logger *slog.Logger) Module {
	notifier := memory.NewNotifier()
	module := NewModule(Dependencies{
		Notifier: notifier,
		Clock:    notifier,
		Logger:   logger,
	})
	module.Notifier = notifier
	return module
}
