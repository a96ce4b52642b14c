package rules

import "github.com/rocketscienceinc/gridclash-backend/internal/entity"

type step struct {
	dir  entity.Direction
	dRow int
	dCol int
}

// Step tables in canonical order; enumeration preserves this order.
var (
	pawnSteps = []step{
		{entity.Left, 0, -1},
		{entity.Right, 0, 1},
		{entity.Forward, -1, 0},
		{entity.Back, 1, 0},
	}

	heroSteps = []step{
		{entity.Left, 0, -2},
		{entity.Right, 0, 2},
		{entity.Forward, -2, 0},
		{entity.Back, 2, 0},
		{entity.ForwardLeft, -2, -2},
		{entity.ForwardRight, -2, 2},
		{entity.BackLeft, 2, -2},
		{entity.BackRight, 2, 2},
	}
)

func stepsFor(kind entity.PieceKind) []step {
	switch kind {
	case entity.KindPawn:
		return pawnSteps
	case entity.KindHero:
		return heroSteps
	default:
		return nil
	}
}

// Directions returns the directions a kind may move in, in canonical order.
func Directions(kind entity.PieceKind) []entity.Direction {
	steps := stepsFor(kind)

	dirs := make([]entity.Direction, 0, len(steps))
	for _, s := range steps {
		dirs = append(dirs, s.dir)
	}

	return dirs
}

// DeltaFor returns ok=false when the kind cannot move in dir.
func DeltaFor(kind entity.PieceKind, dir entity.Direction) (int, int, bool) {
	for _, s := range stepsFor(kind) {
		if s.dir == dir {
			return s.dRow, s.dCol, true
		}
	}

	return 0, 0, false
}

// Destination applies the kind's delta; ok=false for an unsupported direction. Bounds are not checked.
func Destination(kind entity.PieceKind, dir entity.Direction, fromRow, fromCol int) (int, int, bool) {
	dRow, dCol, ok := DeltaFor(kind, dir)
	if !ok {
		return 0, 0, false
	}

	return fromRow + dRow, fromCol + dCol, true
}

// IsLegal reports whether the move lands on the board and not on a piece owned by owner.
// Landing on an opponent's piece is legal and means a capture.
func IsLegal(board *entity.Board, owner entity.Seat, kind entity.PieceKind, fromRow, fromCol int, dir entity.Direction) bool {
	toRow, toCol, ok := Destination(kind, dir, fromRow, fromCol)
	if !ok || !entity.InBounds(toRow, toCol) {
		return false
	}

	occupant, err := board.OccupantAt(toRow, toCol)
	if err != nil {
		return false
	}

	return occupant == nil || occupant.Owner() != owner
}

// EnumerateLegalMoves lists every direction that passes IsLegal for the piece at (row, col).
func EnumerateLegalMoves(board *entity.Board, owner entity.Seat, piece entity.Piece, row, col int) []entity.LegalMove {
	moves := make([]entity.LegalMove, 0, len(stepsFor(piece.Kind)))

	for _, s := range stepsFor(piece.Kind) {
		if !IsLegal(board, owner, piece.Kind, row, col, s.dir) {
			continue
		}

		token := entity.MoveToken{Piece: piece.ID, Direction: s.dir}
		moves = append(moves, entity.LegalMove{
			Label:   string(s.dir),
			Command: token.String(),
		})
	}

	return moves
}
