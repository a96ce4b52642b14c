package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/rocketscienceinc/gridclash-backend/internal/apperror"
	"github.com/rocketscienceinc/gridclash-backend/internal/entity"
)

type Handlers interface {
	PingHandler(w http.ResponseWriter, _ *http.Request)

	MatchHandler(w http.ResponseWriter, r *http.Request)
	ResultsHandler(w http.ResponseWriter, r *http.Request)
	ResultHandler(w http.ResponseWriter, r *http.Request)
}

type matchReader interface {
	Snapshot() entity.Snapshot
}

type resultReader interface {
	GetByID(ctx context.Context, id string) (*entity.MatchResult, error)
	ListRecent(ctx context.Context, limit int) ([]*entity.MatchResult, error)
}

type handlers struct {
	logger       *slog.Logger
	matchReader  matchReader
	resultReader resultReader
}

func NewHandlers(logger *slog.Logger, matchReader matchReader, resultReader resultReader) Handlers {
	return &handlers{
		logger:       logger.With("component", "rest"),
		matchReader:  matchReader,
		resultReader: resultReader,
	}
}

func (that *handlers) MatchHandler(w http.ResponseWriter, _ *http.Request) {
	that.writeJSON(w, http.StatusOK, that.matchReader.Snapshot())
}

// ResultsHandler lists archived results, newest first. ?limit=N caps the list.
func (that *handlers) ResultsHandler(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			http.Error(w, "invalid limit", http.StatusBadRequest)
			return
		}
		limit = parsed
	}

	results, err := that.resultReader.ListRecent(r.Context(), limit)
	if err != nil {
		that.logger.Error("failed to list results", "method", "ResultsHandler", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	that.writeJSON(w, http.StatusOK, results)
}

func (that *handlers) ResultHandler(w http.ResponseWriter, r *http.Request) {
	result, err := that.resultReader.GetByID(r.Context(), r.PathValue("id"))
	if errors.Is(err, apperror.ErrResultNotFound) {
		http.Error(w, "result not found", http.StatusNotFound)
		return
	}

	if err != nil {
		that.logger.Error("failed to get result", "method", "ResultHandler", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	that.writeJSON(w, http.StatusOK, result)
}

func (that *handlers) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		that.logger.Error("failed to write response", "error", err)
	}
}
