package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/gridclash-backend/internal/apperror"
)

func TestKindOf(t *testing.T) {
	t.Run("kind follows the first letter", func(t *testing.T) {
		kind, err := KindOf("P3")
		require.NoError(t, err)
		assert.Equal(t, KindPawn, kind)

		kind, err = KindOf("H1")
		require.NoError(t, err)
		assert.Equal(t, KindHero, kind)
	})

	t.Run("unknown prefix is rejected", func(t *testing.T) {
		kind, err := KindOf("X1")

		require.ErrorIs(t, err, apperror.ErrUnknownPieceKind)
		assert.Equal(t, KindUnknown, kind)
	})
}

func TestParsePieceID(t *testing.T) {
	t.Run("qualified form ignores the fallback", func(t *testing.T) {
		// When: parsing "B-H1" with seat A as fallback
		id, err := ParsePieceID("B-H1", SeatA)

		// Then: the seat comes from the tag
		require.NoError(t, err)
		assert.Equal(t, PieceID{Seat: SeatB, Name: "H1"}, id)
		assert.Equal(t, "B-H1", id.String())
	})

	t.Run("bare name takes the fallback seat", func(t *testing.T) {
		id, err := ParsePieceID("P2", SeatB)

		require.NoError(t, err)
		assert.Equal(t, PieceID{Seat: SeatB, Name: "P2"}, id)
	})

	t.Run("bare name without a fallback is rejected", func(t *testing.T) {
		_, err := ParsePieceID("P2", NoSeat)

		require.ErrorIs(t, err, apperror.ErrInvalidPieceName)
	})

	t.Run("bad seat or empty name is rejected", func(t *testing.T) {
		_, err := ParsePieceID("C-P1", SeatA)
		require.ErrorIs(t, err, apperror.ErrUnknownSeat)

		_, err = ParsePieceID("A-", SeatA)
		require.ErrorIs(t, err, apperror.ErrInvalidPieceName)

		_, err = ParsePieceID("", SeatA)
		require.ErrorIs(t, err, apperror.ErrInvalidPieceName)
	})
}

func TestNewPiece(t *testing.T) {
	piece, err := NewPiece(SeatA, "H2")
	require.NoError(t, err)
	assert.Equal(t, KindHero, piece.Kind)
	assert.Equal(t, SeatA, piece.Owner())

	_, err = NewPiece(SeatA, "P:1")
	require.ErrorIs(t, err, apperror.ErrInvalidPieceName)

	_, err = NewPiece(SeatA, "Q1")
	require.ErrorIs(t, err, apperror.ErrUnknownPieceKind)
}
