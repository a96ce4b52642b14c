package match

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/gridclash-backend/internal/apperror"
	"github.com/rocketscienceinc/gridclash-backend/internal/entity"
	"github.com/rocketscienceinc/gridclash-backend/internal/rules"
)

// Match is the single owner of the board, seat rosters, active turn and move log.
// Every mutation returns the event that should be fanned out to clients.
type Match struct {
	mu sync.RWMutex

	id      string
	board   *entity.Board
	rosters map[entity.Seat][]string
	turn    entity.Seat
	status  entity.MatchStatus
	moves   []entity.MoveRecord

	winner     entity.Seat
	reason     string
	finishedAt time.Time
}

func New() *Match {
	match := &Match{}
	match.resetLocked()

	return match
}

func (that *Match) resetLocked() {
	that.id = uuid.NewString()
	that.board = entity.NewBoard()
	that.rosters = make(map[entity.Seat][]string, len(entity.Seats))
	that.turn = entity.SeatA
	that.status = entity.StatusEmpty
	that.moves = nil
	that.winner = entity.NoSeat
	that.reason = ""
	that.finishedAt = time.Time{}
}

// Reset returns the match to its initial empty state regardless of the current one.
func (that *Match) Reset() entity.Event {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.resetLocked()

	return entity.NewGameStateEvent(that.snapshotLocked())
}

// Join seats a player and places one piece per name on the seat's home row, in roster order.
func (that *Match) Join(seat entity.Seat, names []string) (entity.Event, error) {
	if !seat.IsValid() {
		return entity.Event{}, fmt.Errorf("%w: %q", apperror.ErrUnknownSeat, seat)
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	if _, taken := that.rosters[seat]; taken {
		return entity.Event{}, fmt.Errorf("%w: %s", apperror.ErrSeatTaken, seat)
	}

	pieces, err := buildRoster(seat, names)
	if err != nil {
		return entity.Event{}, err
	}

	for col, piece := range pieces {
		mustHold(that.board.Place(piece, seat.HomeRow(), col))
	}

	that.rosters[seat] = append([]string(nil), names...)

	if len(that.rosters) == len(entity.Seats) {
		that.status = entity.StatusActive
		return entity.NewGameInitializationEvent(that.snapshotLocked()), nil
	}

	that.status = entity.StatusSeating

	return entity.NewGameStateEvent(that.snapshotLocked()), nil
}

func buildRoster(seat entity.Seat, names []string) ([]entity.Piece, error) {
	if len(names) == 0 || len(names) > entity.BoardSize {
		return nil, fmt.Errorf("%w: %d characters, want 1 to %d", apperror.ErrInvalidRoster, len(names), entity.BoardSize)
	}

	seen := make(map[string]struct{}, len(names))
	pieces := make([]entity.Piece, 0, len(names))

	for _, name := range names {
		if _, dup := seen[name]; dup {
			return nil, fmt.Errorf("%w: duplicate character %q", apperror.ErrInvalidRoster, name)
		}
		seen[name] = struct{}{}

		piece, err := entity.NewPiece(seat, name)
		if err != nil {
			return nil, err
		}

		pieces = append(pieces, piece)
	}

	return pieces, nil
}

// LegalMoves enumerates the moves available to a piece, judged from its owner's side.
func (that *Match) LegalMoves(id entity.PieceID) ([]entity.LegalMove, error) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	row, col, ok := that.board.Locate(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", apperror.ErrPieceNotFound, id)
	}

	piece, err := that.board.OccupantAt(row, col)
	mustHold(err)

	return rules.EnumerateLegalMoves(that.board, piece.Owner(), *piece, row, col), nil
}

// AttemptMove validates and applies a move. A rejected move leaves the match untouched.
func (that *Match) AttemptMove(seat entity.Seat, token entity.MoveToken) (entity.Event, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.status.IsConcluded() {
		return entity.Event{}, apperror.ErrMatchConcluded
	}

	if seat != that.turn {
		return entity.Event{}, apperror.ErrNotYourTurn
	}

	if !that.status.IsActive() {
		return entity.Event{}, apperror.ErrMatchNotStarted
	}

	fromRow, fromCol, ok := that.board.Locate(token.Piece)
	if !ok {
		return entity.Event{}, fmt.Errorf("%w: %s", apperror.ErrPieceNotFound, token.Piece)
	}

	if token.Piece.Seat != seat {
		return entity.Event{}, fmt.Errorf("%w: %s belongs to seat %s", apperror.ErrIllegalMove, token.Piece, token.Piece.Seat)
	}

	occupant, err := that.board.OccupantAt(fromRow, fromCol)
	mustHold(err)
	mover := *occupant

	if !rules.IsLegal(that.board, seat, mover.Kind, fromRow, fromCol, token.Direction) {
		return entity.Event{}, fmt.Errorf("%w: %s cannot move %s", apperror.ErrIllegalMove, token.Piece, token.Direction)
	}

	toRow, toCol, _ := rules.Destination(mover.Kind, token.Direction, fromRow, fromCol)

	// capture happens before the mover lands
	captured, err := that.board.OccupantAt(toRow, toCol)
	mustHold(err)
	if captured != nil {
		mustHold(that.board.Clear(toRow, toCol))
	}

	mustHold(that.board.Clear(fromRow, fromCol))
	mustHold(that.board.Place(mover, toRow, toCol))

	that.moves = append(that.moves, entity.MoveRecord{
		Seq:  len(that.moves) + 1,
		Seat: seat,
		Move: token.Piece.Name + ":" + string(token.Direction),
	})

	if that.isGameOverLocked() {
		that.concludeLocked(seat, entity.ReasonElimination)
		return entity.NewGameOverEvent(seat, that.snapshotLocked()), nil
	}

	that.turn = seat.Opponent()

	return entity.NewGameStateEvent(that.snapshotLocked()), nil
}

// Forfeit concludes an active match in favour of the other seat.
func (that *Match) Forfeit(seat entity.Seat) (entity.Event, error) {
	if !seat.IsValid() {
		return entity.Event{}, fmt.Errorf("%w: %q", apperror.ErrUnknownSeat, seat)
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	switch {
	case that.status.IsConcluded():
		return entity.Event{}, apperror.ErrMatchConcluded
	case !that.status.IsActive():
		return entity.Event{}, apperror.ErrMatchNotStarted
	}

	winner := seat.Opponent()
	that.concludeLocked(winner, entity.ReasonForfeit)

	return entity.NewGameOverEvent(winner, that.snapshotLocked()), nil
}

func (that *Match) IsGameOver() bool {
	that.mu.RLock()
	defer that.mu.RUnlock()

	return that.status.IsConcluded() || that.isGameOverLocked()
}

// isGameOverLocked is true once any seated side has no live pieces left.
func (that *Match) isGameOverLocked() bool {
	for seat := range that.rosters {
		if that.board.Count(seat) == 0 {
			return true
		}
	}

	return false
}

func (that *Match) concludeLocked(winner entity.Seat, reason string) {
	that.status = entity.StatusConcluded
	that.winner = winner
	that.reason = reason
	that.finishedAt = time.Now().UTC()
}

func (that *Match) ID() string {
	that.mu.RLock()
	defer that.mu.RUnlock()

	return that.id
}

func (that *Match) Status() entity.MatchStatus {
	that.mu.RLock()
	defer that.mu.RUnlock()

	return that.status
}

func (that *Match) Turn() entity.Seat {
	that.mu.RLock()
	defer that.mu.RUnlock()

	return that.turn
}

func (that *Match) Snapshot() entity.Snapshot {
	that.mu.RLock()
	defer that.mu.RUnlock()

	return that.snapshotLocked()
}

// Result returns ok=false until the match is concluded.
func (that *Match) Result() (*entity.MatchResult, bool) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	if !that.status.IsConcluded() {
		return nil, false
	}

	return &entity.MatchResult{
		MatchID:    that.id,
		Winner:     that.winner,
		Reason:     that.reason,
		Players:    that.playersLocked(),
		Moves:      append([]entity.MoveRecord{}, that.moves...),
		FinishedAt: that.finishedAt,
	}, true
}

func (that *Match) snapshotLocked() entity.Snapshot {
	return entity.Snapshot{
		MatchID:     that.id,
		Board:       that.board.Cells(),
		MoveHistory: append([]entity.MoveRecord{}, that.moves...),
		Turn:        that.turn,
		Status:      that.status,
		Winner:      that.winner,
		Players:     that.playersLocked(),
	}
}

func (that *Match) playersLocked() map[entity.Seat][]string {
	players := make(map[entity.Seat][]string, len(that.rosters))
	for seat, names := range that.rosters {
		players[seat] = append([]string(nil), names...)
	}

	return players
}

// mustHold panics on a board error that validated input can never produce.
func mustHold(err error) {
	if err != nil {
		panic(fmt.Errorf("board invariant violated: %w", err))
	}
}
