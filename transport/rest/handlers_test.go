package rest

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/gridclash-backend/internal/entity"
	"github.com/rocketscienceinc/gridclash-backend/internal/repository"
)

type stubMatch struct {
	snapshot entity.Snapshot
}

func (that stubMatch) Snapshot() entity.Snapshot {
	return that.snapshot
}

func newTestRouter(t *testing.T) (http.Handler, repository.ResultRepository) {
	t.Helper()

	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	results := repository.NewMemoryResultRepository(10)
	match := stubMatch{snapshot: entity.Snapshot{MatchID: "live", Status: entity.StatusSeating, Turn: entity.SeatA}}

	return NewRouter(NewHandlers(logger, match, results)), results
}

func get(router http.Handler, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))

	return rec
}

func TestPingHandler(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := get(router, "/ping")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "pong", rec.Body.String())
}

func TestMatchHandler(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := get(router, "/match")

	require.Equal(t, http.StatusOK, rec.Code)

	var snapshot entity.Snapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snapshot))
	assert.Equal(t, "live", snapshot.MatchID)
	assert.Equal(t, entity.StatusSeating, snapshot.Status)
}

func TestResultHandlers(t *testing.T) {
	router, results := newTestRouter(t)
	ctx := context.Background()

	for _, id := range []string{"first", "second"} {
		require.NoError(t, results.Save(ctx, &entity.MatchResult{MatchID: id, Winner: entity.SeatA, Reason: entity.ReasonForfeit}))
	}

	t.Run("list is newest first", func(t *testing.T) {
		rec := get(router, "/results")
		require.Equal(t, http.StatusOK, rec.Code)

		var list []entity.MatchResult
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
		require.Len(t, list, 2)
		assert.Equal(t, "second", list[0].MatchID)
	})

	t.Run("limit caps the list", func(t *testing.T) {
		rec := get(router, "/results?limit=1")
		require.Equal(t, http.StatusOK, rec.Code)

		var list []entity.MatchResult
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
		assert.Len(t, list, 1)
	})

	t.Run("bad limit", func(t *testing.T) {
		assert.Equal(t, http.StatusBadRequest, get(router, "/results?limit=abc").Code)
	})

	t.Run("single result", func(t *testing.T) {
		rec := get(router, "/results/first")
		require.Equal(t, http.StatusOK, rec.Code)

		var result entity.MatchResult
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
		assert.Equal(t, entity.SeatA, result.Winner)
	})

	t.Run("missing result", func(t *testing.T) {
		assert.Equal(t, http.StatusNotFound, get(router, "/results/nope").Code)
	})
}
