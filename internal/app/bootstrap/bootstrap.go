package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	notificationservice "ballotbox/contexts/engagement/notification-service"
	voteledger "ballotbox/contexts/governance/vote-ledger"
	ledgerpostgres "ballotbox/contexts/governance/vote-ledger/adapters/postgres"
	votingstore "ballotbox/contexts/governance/voting-store"
	votingmemory "ballotbox/contexts/governance/voting-store/adapters/memory"
	votingpostgres "ballotbox/contexts/governance/voting-store/adapters/postgres"
	votingworkers "ballotbox/contexts/governance/voting-store/application/workers"
	votingports "ballotbox/contexts/governance/voting-store/ports"
	"ballotbox/internal/platform/config"
	"ballotbox/internal/platform/db"
	"ballotbox/internal/platform/httpserver"
	"ballotbox/internal/platform/messaging"
	"ballotbox/internal/shared/events"
)

// Package bootstrap is the composition root.
// Keep construction/wiring here so module code stays framework-agnostic.

type APIApp struct {
	server        *httpserver.Server
	postgres      *db.Postgres
	bus           *messaging.Bus
	notifications notificationservice.Module
	relay         votingworkers.OutboxRelay
	relayEnabled  bool
	pollInterval  time.Duration
	logger        *slog.Logger
}

type WorkerApp struct {
	postgres      *db.Postgres
	bus           *messaging.Bus
	notifications notificationservice.Module
	relay         votingworkers.OutboxRelay
	pollInterval  time.Duration
	logger        *slog.Logger
}

func BuildAPI() (*APIApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "api")
	bus := messaging.NewBus(logger)
	notifications := notificationservice.NewInMemoryModule(logger)

	app := &APIApp{
		bus:           bus,
		notifications: notifications,
		relayEnabled:  cfg.EnableNotificationRelay,
		pollInterval:  cfg.RelayPollInterval,
		logger:        logger,
	}

	var ledgerModule voteledger.Module
	var votingModule votingstore.Module
	var outboxRepo votingports.OutboxRepository

	if strings.TrimSpace(cfg.PostgresDSN) != "" {
		pg, err := db.Connect(cfg.PostgresDSN)
		if err != nil {
			return nil, err
		}
		app.postgres = pg

		ledgerRepo := ledgerpostgres.NewRepository(pg.DB, logger)
		ledgerModule = voteledger.NewModule(voteledger.Dependencies{
			Records: ledgerRepo,
			Clock:   ledgerpostgres.SystemClock{},
			IDGen:   ledgerpostgres.UUIDGenerator{},
			Logger:  logger,
		})

		votingRepo := votingpostgres.NewRepository(pg.DB, logger)
		votingModule = votingstore.NewModule(votingstore.Dependencies{
			Votings: votingRepo,
			Ledger:  ledgerModule.Ledger,
			Outbox:  votingRepo,
			Clock:   votingpostgres.SystemClock{},
			IDGen:   votingpostgres.UUIDGenerator{},
			Logger:  logger,
		})
		outboxRepo = votingRepo
	} else {
		ledgerModule = voteledger.NewInMemoryModule(logger)

		store := votingmemory.NewStore(demoSeed(cfg.EnableDemoSeed))
		votingModule = votingstore.NewModule(votingstore.Dependencies{
			Votings: store,
			Ledger:  ledgerModule.Ledger,
			Outbox:  store,
			Clock:   store,
			IDGen:   store,
			Logger:  logger,
		})
		votingModule.Store = store
		outboxRepo = store
	}

	app.relay = votingworkers.OutboxRelay{
		Outbox:    outboxRepo,
		Publisher: bus,
		BatchSize: cfg.RelayBatchSize,
		Logger:    logger,
	}
	app.server = httpserver.New(votingModule, ledgerModule, logger, normalizeAddr(cfg.HTTPPort))
	return app, nil
}

func BuildWorker() (*WorkerApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "worker")
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return nil, errors.New("POSTGRES_DSN is required")
	}

	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}

	bus := messaging.NewBus(logger)
	notifications := notificationservice.NewInMemoryModule(logger)
	votingRepo := votingpostgres.NewRepository(pg.DB, logger)

	return &WorkerApp{
		postgres:      pg,
		bus:           bus,
		notifications: notifications,
		relay: votingworkers.OutboxRelay{
			Outbox:    votingRepo,
			Publisher: bus,
			Clock:     votingpostgres.SystemClock{},
			BatchSize: cfg.RelayBatchSize,
			Logger:    logger,
		},
		pollInterval: cfg.RelayPollInterval,
		logger:       logger,
	}, nil
}

func (a *APIApp) Run(ctx context.Context) error {
	if a.relayEnabled {
		if err := subscribeNotifications(ctx, a.bus, a.notifications); err != nil {
			return err
		}
		go a.relayLoop(ctx)
	}
	a.logger.Info("api app started",
		"event", "bootstrap_api_started",
		"module", "internal/app/bootstrap",
		"layer", "platform",
		"notification_relay", a.relayEnabled,
	)
	return a.server.Start()
}

func (a *APIApp) relayLoop(ctx context.Context) {
	ticker := time.NewTicker(a.pollInterval)
	defer ticker.Stop()
	for {
		if err := a.relay.RunOnce(ctx); err != nil {
			a.logger.Error("notification relay cycle failed",
				"event", "bootstrap_relay_cycle_failed",
				"module", "internal/app/bootstrap",
				"layer", "platform",
				"error", err.Error(),
			)
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (a *APIApp) Close() error {
	if a.postgres != nil {
		return a.postgres.Close()
	}
	return nil
}

func (w *WorkerApp) Run(ctx context.Context) error {
	if err := subscribeNotifications(ctx, w.bus, w.notifications); err != nil {
		return err
	}

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	w.logger.Info("worker app started",
		"event", "bootstrap_worker_started",
		"module", "internal/app/bootstrap",
		"layer", "platform",
		"poll_interval", w.pollInterval.String(),
	)

	for {
		if err := w.relay.RunOnce(ctx); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func (w *WorkerApp) Close() error {
	if w.postgres != nil {
		return w.postgres.Close()
	}
	return nil
}

func subscribeNotifications(ctx context.Context, bus *messaging.Bus, module notificationservice.Module) error {
	topics := []string{
		events.TypeVotingCreated,
		events.TypeVoteCast,
		events.TypeVotingClosed,
		events.TypeVotingRevealed,
	}
	for _, topic := range topics {
		if err := bus.Subscribe(ctx, topic, "notification-service-cg", module.Consumer.HandleEvent); err != nil {
			return err
		}
	}
	return nil
}

func normalizeAddr(port string) string {
	value := strings.TrimSpace(port)
	if value == "" {
		return ":8080"
	}
	if strings.HasPrefix(value, ":") {
		return value
	}
	return ":" + value
}
