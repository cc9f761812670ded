package votingstore

import (
	"log/slog"

	httpadapter "ballotbox/contexts/governance/voting-store/adapters/http"
	"ballotbox/contexts/governance/voting-store/adapters/memory"
	"ballotbox/contexts/governance/voting-store/application/commands"
	"ballotbox/contexts/governance/voting-store/application/queries"
	"ballotbox/contexts/governance/voting-store/domain/entities"
	"ballotbox/contexts/governance/voting-store/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
}

type Dependencies struct {
	Votings ports.VotingRepository
	Ledger  ports.VoteLedger
	Outbox  ports.OutboxWriter
	Clock   ports.Clock
	IDGen   ports.IDGenerator
	Logger  *slog.Logger
}

func NewModule(deps Dependencies) Module {
	votingUseCase := commands.VotingUseCase{
		Votings: deps.Votings,
		Ledger:  deps.Ledger,
		Outbox:  deps.Outbox,
		Clock:   deps.Clock,
		IDGen:   deps.IDGen,
		Logger:  deps.Logger,
	}
	resultsUseCase := queries.ResultsUseCase{
		Votings: deps.Votings,
	}
	return Module{
		Handler: httpadapter.Handler{
			Votings: votingUseCase,
			Results: resultsUseCase,
			Logger:  deps.Logger,
		},
	}
}

// NewInMemoryModule wires the module against the in-process store. The
// ledger collaborator still has to be supplied since it lives in its own
// context.
func NewInMemoryModule(seed []entities.Voting, ledger ports.VoteLedger, logger *slog.Logger) Module {
	store := memory.NewStore(seed)
	module := NewModule(Dependencies{
		Votings: store,
		Ledger:  ledger,
		Outbox:  store,
		Clock:   store,
		IDGen:   store,
		Logger:  logger,
	})
	module.Store = store
	return module
}
