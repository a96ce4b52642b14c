package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/gridclash-backend/internal/entity"
)

func mustPiece(t *testing.T, seat entity.Seat, name string) entity.Piece {
	t.Helper()

	piece, err := entity.NewPiece(seat, name)
	require.NoError(t, err)

	return piece
}

func labels(moves []entity.LegalMove) []string {
	out := make([]string, 0, len(moves))
	for _, move := range moves {
		out = append(out, move.Label)
	}
	return out
}

func TestDeltaFor(t *testing.T) {
	t.Run("pawn steps one cell orthogonally", func(t *testing.T) {
		dRow, dCol, ok := DeltaFor(entity.KindPawn, entity.Forward)
		require.True(t, ok)
		assert.Equal(t, -1, dRow)
		assert.Equal(t, 0, dCol)

		_, _, ok = DeltaFor(entity.KindPawn, entity.ForwardLeft)
		assert.False(t, ok)
	})

	t.Run("hero steps two cells including diagonals", func(t *testing.T) {
		dRow, dCol, ok := DeltaFor(entity.KindHero, entity.BackRight)
		require.True(t, ok)
		assert.Equal(t, 2, dRow)
		assert.Equal(t, 2, dCol)
	})

	t.Run("unknown kind has no moves", func(t *testing.T) {
		_, _, ok := DeltaFor(entity.KindUnknown, entity.Forward)
		assert.False(t, ok)
		assert.Empty(t, Directions(entity.KindUnknown))
	})
}

func TestIsLegal(t *testing.T) {
	board := entity.NewBoard()
	pawn := mustPiece(t, entity.SeatA, "P1")
	friend := mustPiece(t, entity.SeatA, "P2")
	enemy := mustPiece(t, entity.SeatB, "P1")

	require.NoError(t, board.Place(pawn, 0, 0))
	require.NoError(t, board.Place(friend, 0, 1))
	require.NoError(t, board.Place(enemy, 1, 0))

	t.Run("leaving the board is illegal", func(t *testing.T) {
		assert.False(t, IsLegal(board, entity.SeatA, entity.KindPawn, 0, 0, entity.Forward))
		assert.False(t, IsLegal(board, entity.SeatA, entity.KindPawn, 0, 0, entity.Left))
	})

	t.Run("landing on a friendly piece is illegal", func(t *testing.T) {
		assert.False(t, IsLegal(board, entity.SeatA, entity.KindPawn, 0, 0, entity.Right))
	})

	t.Run("landing on an enemy piece is a legal capture", func(t *testing.T) {
		assert.True(t, IsLegal(board, entity.SeatA, entity.KindPawn, 0, 0, entity.Back))
	})

	t.Run("direction outside the kind's set is illegal", func(t *testing.T) {
		assert.False(t, IsLegal(board, entity.SeatA, entity.KindPawn, 2, 2, entity.BackRight))
	})
}

func TestEnumerateLegalMoves(t *testing.T) {
	t.Run("pawn in a corner keeps canonical order", func(t *testing.T) {
		// Given: a lone pawn at (0, 0)
		board := entity.NewBoard()
		pawn := mustPiece(t, entity.SeatA, "P1")
		require.NoError(t, board.Place(pawn, 0, 0))

		// When: enumerating its moves
		moves := EnumerateLegalMoves(board, entity.SeatA, pawn, 0, 0)

		// Then: only R and B remain, in L, R, F, B order
		assert.Equal(t, []string{"R", "B"}, labels(moves))
		assert.Equal(t, "A-P1:R", moves[0].Command)
		assert.Equal(t, "A-P1:B", moves[1].Command)
	})

	t.Run("hero in the centre has all eight", func(t *testing.T) {
		board := entity.NewBoard()
		hero := mustPiece(t, entity.SeatB, "H1")
		require.NoError(t, board.Place(hero, 2, 2))

		moves := EnumerateLegalMoves(board, entity.SeatB, hero, 2, 2)

		assert.Equal(t, []string{"L", "R", "F", "B", "FL", "FR", "BL", "BR"}, labels(moves))
	})

	t.Run("hero on the edge loses off-board diagonals", func(t *testing.T) {
		board := entity.NewBoard()
		hero := mustPiece(t, entity.SeatA, "H1")
		require.NoError(t, board.Place(hero, 0, 2))

		moves := EnumerateLegalMoves(board, entity.SeatA, hero, 0, 2)

		assert.Equal(t, []string{"L", "R", "B", "BL", "BR"}, labels(moves))
	})

	t.Run("every enumerated move passes IsLegal", func(t *testing.T) {
		board := entity.NewBoard()
		hero := mustPiece(t, entity.SeatA, "H1")
		blocker := mustPiece(t, entity.SeatA, "P1")
		require.NoError(t, board.Place(hero, 2, 2))
		require.NoError(t, board.Place(blocker, 2, 4))

		for _, move := range EnumerateLegalMoves(board, entity.SeatA, hero, 2, 2) {
			assert.True(t, IsLegal(board, entity.SeatA, hero.Kind, 2, 2, entity.Direction(move.Label)), move.Label)
		}

		assert.NotContains(t, labels(EnumerateLegalMoves(board, entity.SeatA, hero, 2, 2)), "R")
	})
}
