package httpserver

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	voteledger "ballotbox/contexts/governance/vote-ledger"
	ledgererrors "ballotbox/contexts/governance/vote-ledger/domain/errors"
	ledgerhttp "ballotbox/contexts/governance/vote-ledger/transport/http"
	votingstore "ballotbox/contexts/governance/voting-store"
	votingerrors "ballotbox/contexts/governance/voting-store/domain/errors"
	votinghttp "ballotbox/contexts/governance/voting-store/transport/http"

	httpSwagger "github.com/swaggo/http-swagger"
	_ "ballotbox/internal/platform/httpserver/docs"
)

type Server struct {
	mux     *http.ServeMux
	logger  *slog.Logger
	addr    string
	votings votingstore.Module
	ledger  voteledger.Module
}

func New(
	votings votingstore.Module,
	ledger voteledger.Module,
	logger *slog.Logger,
	addr string,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if addr == "" {
		addr = ":8080"
	}

	s := &Server{
		mux:     http.NewServeMux(),
		logger:  logger,
		addr:    addr,
		votings: votings,
		ledger:  ledger,
	}
	s.registerRoutes()
	return s
}

func (s *Server) Start() error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
	return http.ListenAndServe(s.addr, s.mux)
}

// Handler exposes the mux for in-process tests.
func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) registerRoutes() {
	s.mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	s.mux.HandleFunc("POST /v1/votings", s.handleCreateVoting)
	s.mux.HandleFunc("GET /v1/votings", s.handleListVotings)
	s.mux.HandleFunc("GET /v1/votings/{voting_id}", s.handleGetVoting)
	s.mux.HandleFunc("POST /v1/votings/{voting_id}/votes", s.handleCastVote)
	s.mux.HandleFunc("POST /v1/votings/{voting_id}/reveal", s.handleRevealResults)
	s.mux.HandleFunc("GET /v1/votings/{voting_id}/results", s.handleVotingResults)
	s.mux.HandleFunc("GET /v1/votings/{voting_id}/my-vote", s.handleMyVote)
}

func (s *Server) handleCreateVoting(w http.ResponseWriter, r *http.Request) {
	identity := resolveWalletAddress(r)
	if identity == "" {
		writeVotingError(w, http.StatusUnauthorized, "missing_identity", "X-Wallet-Address header is required")
		return
	}

	var req votinghttp.CreateVotingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeVotingError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.votings.Handler.CreateVotingHandler(r.Context(), identity, resolveTxHash(r), req)
	if err != nil {
		writeVotingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleListVotings(w http.ResponseWriter, r *http.Request) {
	resp, err := s.votings.Handler.ListVotingsHandler(r.Context())
	if err != nil {
		writeVotingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetVoting(w http.ResponseWriter, r *http.Request) {
	votingID, ok := parseVotingID(w, r)
	if !ok {
		return
	}
	resp, err := s.votings.Handler.GetVotingHandler(r.Context(), votingID)
	if err != nil {
		writeVotingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCastVote(w http.ResponseWriter, r *http.Request) {
	identity := resolveWalletAddress(r)
	if identity == "" {
		writeVotingError(w, http.StatusUnauthorized, "missing_identity", "X-Wallet-Address header is required")
		return
	}

	votingID, ok := parseVotingID(w, r)
	if !ok {
		return
	}

	var req votinghttp.CastVoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeVotingError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.votings.Handler.CastVoteHandler(r.Context(), votingID, identity, resolveTxHash(r), req)
	if err != nil {
		writeVotingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRevealResults(w http.ResponseWriter, r *http.Request) {
	identity := resolveWalletAddress(r)
	if identity == "" {
		writeVotingError(w, http.StatusUnauthorized, "missing_identity", "X-Wallet-Address header is required")
		return
	}

	votingID, ok := parseVotingID(w, r)
	if !ok {
		return
	}

	resp, err := s.votings.Handler.RevealResultsHandler(r.Context(), votingID, identity, resolveTxHash(r))
	if err != nil {
		writeVotingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleVotingResults(w http.ResponseWriter, r *http.Request) {
	votingID, ok := parseVotingID(w, r)
	if !ok {
		return
	}
	resp, err := s.votings.Handler.VotingResultsHandler(r.Context(), votingID)
	if err != nil {
		writeVotingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleMyVote(w http.ResponseWriter, r *http.Request) {
	identity := resolveWalletAddress(r)
	if identity == "" {
		writeLedgerError(w, http.StatusUnauthorized, "missing_identity", "X-Wallet-Address header is required")
		return
	}

	votingID, ok := parseVotingID(w, r)
	if !ok {
		return
	}

	resp, err := s.ledger.Handler.MyVoteHandler(r.Context(), votingID, identity)
	if err != nil {
		writeLedgerDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func parseVotingID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := r.PathValue("voting_id")
	votingID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || votingID <= 0 {
		writeVotingError(w, http.StatusBadRequest, "invalid_voting_id", "voting_id must be a positive integer")
		return 0, false
	}
	return votingID, true
}

func writeVotingDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, votingerrors.ErrInvalidVotingInput):
		writeVotingError(w, http.StatusBadRequest, "invalid_voting_input", err.Error())
	case errors.Is(err, votingerrors.ErrIdentityRequired):
		writeVotingError(w, http.StatusUnauthorized, "identity_required", err.Error())
	case errors.Is(err, votingerrors.ErrVotingNotFound):
		writeVotingError(w, http.StatusNotFound, "voting_not_found", err.Error())
	case errors.Is(err, votingerrors.ErrOptionNotFound):
		writeVotingError(w, http.StatusNotFound, "option_not_found", err.Error())
	case errors.Is(err, votingerrors.ErrVotingNotActive):
		writeVotingError(w, http.StatusConflict, "voting_not_active", err.Error())
	case errors.Is(err, ledgererrors.ErrAlreadyVoted):
		writeVotingError(w, http.StatusConflict, "already_voted", err.Error())
	case errors.Is(err, ledgererrors.ErrInvalidRecordInput):
		writeVotingError(w, http.StatusBadRequest, "invalid_vote_input", err.Error())
	case errors.Is(err, votingerrors.ErrNotCreator):
		writeVotingError(w, http.StatusForbidden, "not_creator", err.Error())
	case errors.Is(err, votingerrors.ErrVotingStillOpen):
		writeVotingError(w, http.StatusConflict, "voting_still_open", err.Error())
	case errors.Is(err, votingerrors.ErrAlreadyRevealed):
		writeVotingError(w, http.StatusConflict, "already_revealed", err.Error())
	case errors.Is(err, votingerrors.ErrResultsNotRevealed):
		writeVotingError(w, http.StatusConflict, "results_not_revealed", err.Error())
	default:
		writeVotingError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeLedgerDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ledgererrors.ErrInvalidRecordInput):
		writeLedgerError(w, http.StatusBadRequest, "invalid_vote_input", err.Error())
	case errors.Is(err, ledgererrors.ErrRecordNotFound):
		writeLedgerError(w, http.StatusNotFound, "vote_record_not_found", err.Error())
	default:
		writeLedgerError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeVotingError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, votinghttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}

func writeLedgerError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, ledgerhttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// resolveWalletAddress extracts the participant identity supplied by the
// wallet collaborator. An empty value means no mutating operation may run.
func resolveWalletAddress(r *http.Request) string {
	return strings.TrimSpace(r.Header.Get("X-Wallet-Address"))
}

// resolveTxHash extracts the external confirmation handle. The core never
// validates its format; it is carried for display and notifications only.
func resolveTxHash(r *http.Request) string {
	return strings.TrimSpace(r.Header.Get("X-Transaction-Hash"))
}
