package voteledger

import (
	"log/slog"

	httpadapter "ballotbox/contexts/governance/vote-ledger/adapters/http"
	"ballotbox/contexts/governance/vote-ledger/adapters/memory"
	"ballotbox/contexts/governance/vote-ledger/application"
	"ballotbox/contexts/governance/vote-ledger/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Ledger  application.Service
	Store   *memory.Store
}

type Dependencies struct {
	Records ports.RecordRepository
	Clock   ports.Clock
	IDGen   ports.IDGenerator
	Logger  *slog.Logger
}

func NewModule(deps Dependencies) Module {
	service := application.Service{
		Records: deps.Records,
		Clock:   deps.Clock,
		IDGen:   deps.IDGen,
		Logger:  deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{
			Ledger: service,
			Logger: deps.Logger,
		},
		Ledger: service,
	}
}

func NewInMemoryModule(logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Records: store,
		Clock:   store,
		IDGen:   store,
		Logger:  logger,
	})
	module.Store = store
	return module
}
