package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/rocketscienceinc/gridclash-backend/internal/entity"
	"github.com/rocketscienceinc/gridclash-backend/internal/match"
)

const archiveTimeout = 5 * time.Second

type publisher interface {
	Broadcast(event entity.Event) error
}

type resultRepo interface {
	Save(ctx context.Context, result *entity.MatchResult) error
}

// MatchManager serialises every mutation of the shared match and fans the resulting event out.
// Broadcasts are enqueued inside the critical section so clients see snapshots in mutation order.
type MatchManager struct {
	logger     *slog.Logger
	match      *match.Match
	publisher  publisher
	resultRepo resultRepo

	forfeitAfter time.Duration

	mu     sync.Mutex
	timers map[entity.Seat]*time.Timer
}

func NewMatchManager(logger *slog.Logger, match *match.Match, publisher publisher, resultRepo resultRepo, forfeitAfter time.Duration) *MatchManager {
	return &MatchManager{
		logger: logger.With("component", "match_manager"),

		match:      match,
		publisher:  publisher,
		resultRepo: resultRepo,

		forfeitAfter: forfeitAfter,
		timers:       make(map[entity.Seat]*time.Timer),
	}
}

func (that *MatchManager) Join(ctx context.Context, seat entity.Seat, names []string) error {
	log := that.logger.With("method", "Join", "seat", seat)

	that.mu.Lock()
	event, err := that.match.Join(seat, names)
	if err != nil {
		that.mu.Unlock()
		return fmt.Errorf("failed to join seat %s: %w", seat, err)
	}
	that.publish(ctx, event)
	that.mu.Unlock()

	log.Info("seat joined", "characters", names, "status", event.GameState.Status)

	return nil
}

func (that *MatchManager) MakeMove(ctx context.Context, seat entity.Seat, token entity.MoveToken) error {
	log := that.logger.With("method", "MakeMove", "seat", seat, "move", token.String())

	var result *entity.MatchResult

	that.mu.Lock()
	event, err := that.match.AttemptMove(seat, token)
	if err != nil {
		that.mu.Unlock()
		return fmt.Errorf("failed to make move: %w", err)
	}
	that.publish(ctx, event)
	if event.Type == entity.EventGameOver {
		result, _ = that.match.Result()
		that.stopTimersLocked()
	}
	that.mu.Unlock()

	if result != nil {
		log.Info("match concluded", "winner", result.Winner, "moves", len(result.Moves))
		that.archive(ctx, result)
		return nil
	}

	log.Debug("move accepted")

	return nil
}

func (that *MatchManager) LegalMoves(_ context.Context, id entity.PieceID) ([]entity.LegalMove, error) {
	moves, err := that.match.LegalMoves(id)
	if err != nil {
		return nil, fmt.Errorf("failed to list legal moves: %w", err)
	}

	return moves, nil
}

// NewGame resets the match unconditionally and drops any pending forfeit.
func (that *MatchManager) NewGame(ctx context.Context) error {
	that.mu.Lock()
	that.stopTimersLocked()
	event := that.match.Reset()
	that.publish(ctx, event)
	that.mu.Unlock()

	that.logger.Info("match reset", "method", "NewGame", "matchID", event.GameState.MatchID)

	return nil
}

func (that *MatchManager) Snapshot() entity.Snapshot {
	return that.match.Snapshot()
}

// SendSnapshot queues the current state for one connection. It runs under the mutation lock,
// so the reply is ordered with broadcasts and a newer snapshot is never overtaken by an older one.
func (that *MatchManager) SendSnapshot(_ context.Context, reply func(entity.Event) error) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if err := reply(entity.NewGameStateEvent(that.match.Snapshot())); err != nil {
		return fmt.Errorf("failed to send snapshot: %w", err)
	}

	return nil
}

// SeatDisconnected arms the forfeit timer for a seat whose connection dropped.
// With a zero forfeitAfter the seat simply stays pending.
func (that *MatchManager) SeatDisconnected(_ context.Context, seat entity.Seat) {
	log := that.logger.With("method", "SeatDisconnected", "seat", seat)

	if that.forfeitAfter <= 0 {
		log.Info("seat disconnected, match stays open")
		return
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	if !that.match.Status().IsActive() {
		return
	}

	matchID := that.match.ID()
	if timer, ok := that.timers[seat]; ok {
		timer.Stop()
	}

	that.timers[seat] = time.AfterFunc(that.forfeitAfter, func() {
		that.forfeit(seat, matchID)
	})

	log.Info("forfeit scheduled", "after", that.forfeitAfter, "matchID", matchID)
}

func (that *MatchManager) forfeit(seat entity.Seat, matchID string) {
	log := that.logger.With("method", "forfeit", "seat", seat, "matchID", matchID)

	that.mu.Lock()
	delete(that.timers, seat)

	if that.match.ID() != matchID {
		that.mu.Unlock()
		log.Debug("stale forfeit timer ignored")
		return
	}

	event, err := that.match.Forfeit(seat)
	if err != nil {
		that.mu.Unlock()
		log.Info("forfeit skipped", "error", err)
		return
	}

	ctx := context.Background()
	that.publish(ctx, event)
	result, _ := that.match.Result()
	that.stopTimersLocked()
	that.mu.Unlock()

	log.Info("seat forfeited", "winner", event.Winner)

	that.archive(ctx, result)
}

// Close stops pending forfeit timers.
func (that *MatchManager) Close() {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.stopTimersLocked()
}

func (that *MatchManager) stopTimersLocked() {
	for seat, timer := range that.timers {
		timer.Stop()
		delete(that.timers, seat)
	}
}

func (that *MatchManager) publish(_ context.Context, event entity.Event) {
	if err := that.publisher.Broadcast(event); err != nil {
		that.logger.Error("failed to broadcast event", "type", event.Type, "error", err)
	}
}

// archive stores a concluded match. Failures are logged; players never see them.
func (that *MatchManager) archive(ctx context.Context, result *entity.MatchResult) {
	if result == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), archiveTimeout)
	defer cancel()

	if err := that.resultRepo.Save(ctx, result); err != nil {
		that.logger.Error("failed to archive match result", "matchID", result.MatchID, "error", err)
	}
}
