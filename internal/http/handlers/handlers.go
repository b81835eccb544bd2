package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	nethttp "net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	appscoreboard "github.com/preston-bernstein/live-scoreboard/internal/app/scoreboard"
	"github.com/preston-bernstein/live-scoreboard/internal/domain/matches"
	"github.com/preston-bernstein/live-scoreboard/internal/scoreboard"
)

const maxBodyBytes = 1 << 16

// Handler wires HTTP routes to the scoreboard service.
type Handler struct {
	svc     *appscoreboard.Service
	logger  *slog.Logger
	readyFn func() bool
}

// NewHandler constructs a Handler. readyFn may be nil, in which case the
// handler always reports ready.
func NewHandler(svc *appscoreboard.Service, logger *slog.Logger, readyFn func() bool) *Handler {
	return &Handler{
		svc:     svc,
		logger:  logger,
		readyFn: readyFn,
	}
}

// Health reports the service health.
func (h *Handler) Health(w nethttp.ResponseWriter, r *nethttp.Request) {
	if err := r.Context().Err(); err != nil {
		writeError(w, r, nethttp.StatusServiceUnavailable, "shutting down", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ok"}, h.logger)
}

// Ready reports readiness for traffic (e.g., for Kubernetes probes).
func (h *Handler) Ready(w nethttp.ResponseWriter, r *nethttp.Request) {
	if h.readyFn == nil || h.readyFn() {
		writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	writeError(w, r, nethttp.StatusServiceUnavailable, "not ready", h.logger)
}

// ListMatches returns the ranked summary of ongoing matches.
func (h *Handler) ListMatches(w nethttp.ResponseWriter, r *nethttp.Request) {
	list := h.svc.OngoingMatches()
	logger := loggerFromContext(r, h.logger)
	if logger != nil {
		logger.Debug("served scoreboard", "count", len(list))
	}
	writeJSON(w, nethttp.StatusOK, matches.NewSummaryResponse(list), h.logger)
}

// StartMatch starts a new match.
func (h *Handler) StartMatch(w nethttp.ResponseWriter, r *nethttp.Request) {
	var req matches.StartRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, r, nethttp.StatusBadRequest, "invalid request body", h.logger)
		return
	}
	match := h.svc.StartMatch(req.HomeTeam, req.AwayTeam)
	writeJSON(w, nethttp.StatusCreated, match, h.logger)
}

// MatchByID returns a specific ongoing match.
func (h *Handler) MatchByID(w nethttp.ResponseWriter, r *nethttp.Request) {
	id, ok := matchID(w, r, h.logger)
	if !ok {
		return
	}
	match, err := h.svc.MatchByID(id)
	if err != nil {
		writeScoreboardError(w, r, err, h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, match, h.logger)
}

// UpdateScore sets the score of an ongoing match.
func (h *Handler) UpdateScore(w nethttp.ResponseWriter, r *nethttp.Request) {
	id, ok := matchID(w, r, h.logger)
	if !ok {
		return
	}
	var req matches.ScoreRequest
	if err := decodeBody(w, r, &req); err != nil || req.Home == nil || req.Away == nil {
		writeError(w, r, nethttp.StatusBadRequest, "invalid request body", h.logger)
		return
	}
	match, err := h.svc.UpdateScore(id, *req.Home, *req.Away)
	if err != nil {
		writeScoreboardError(w, r, err, h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, match, h.logger)
}

// FinishMatch removes an ongoing match and returns the ones still in play.
func (h *Handler) FinishMatch(w nethttp.ResponseWriter, r *nethttp.Request) {
	id, ok := matchID(w, r, h.logger)
	if !ok {
		return
	}
	remaining, err := h.svc.FinishMatch(id)
	if err != nil {
		writeScoreboardError(w, r, err, h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, matches.NewSummaryResponse(remaining), h.logger)
}

func matchID(w nethttp.ResponseWriter, r *nethttp.Request, logger *slog.Logger) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, nethttp.StatusBadRequest, "invalid match id", logger)
		return 0, false
	}
	return id, true
}

func decodeBody(w nethttp.ResponseWriter, r *nethttp.Request, dest any) error {
	if r.Body == nil {
		return errors.New("empty body")
	}
	dec := json.NewDecoder(nethttp.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	return dec.Decode(dest)
}

func writeScoreboardError(w nethttp.ResponseWriter, r *nethttp.Request, err error, logger *slog.Logger) {
	switch {
	case errors.Is(err, scoreboard.ErrNegativeScore):
		writeError(w, r, nethttp.StatusUnprocessableEntity, scoreboard.ErrNegativeScore.Error(), logger)
	case errors.Is(err, scoreboard.ErrMatchNotFound):
		writeError(w, r, nethttp.StatusNotFound, scoreboard.ErrMatchNotFound.Error(), logger)
	default:
		if logger != nil {
			logger.Error("unexpected scoreboard error", "error", err)
		}
		writeError(w, r, nethttp.StatusInternalServerError, "internal error", logger)
	}
}
