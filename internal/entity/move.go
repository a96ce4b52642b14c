package entity

import (
	"fmt"
	"strings"

	"github.com/rocketscienceinc/gridclash-backend/internal/apperror"
)

// MoveToken is a parsed "<pieceTag>:<directionCode>" command.
type MoveToken struct {
	Piece     PieceID
	Direction Direction
}

func ParseMoveToken(raw string, fallback Seat) (MoveToken, error) {
	tag, dirPart, ok := strings.Cut(raw, ":")
	if !ok {
		return MoveToken{}, fmt.Errorf("%w: %q", apperror.ErrInvalidMoveToken, raw)
	}

	piece, err := ParsePieceID(tag, fallback)
	if err != nil {
		return MoveToken{}, fmt.Errorf("%w: %w", apperror.ErrInvalidMoveToken, err)
	}

	dir, err := ParseDirection(dirPart)
	if err != nil {
		return MoveToken{}, fmt.Errorf("%w: %w", apperror.ErrInvalidMoveToken, err)
	}

	return MoveToken{Piece: piece, Direction: dir}, nil
}

// String returns the qualified form, e.g. "A-P1:BR".
func (that MoveToken) String() string {
	return that.Piece.String() + ":" + string(that.Direction)
}

// MoveRecord is one entry of the append-only move log.
type MoveRecord struct {
	Seq  int    `json:"seq"`
	Seat Seat   `json:"player"`
	Move string `json:"move"`
}

// LegalMove is offered to a client; Command can be sent back verbatim as a move token.
type LegalMove struct {
	Label   string `json:"label"`
	Command string `json:"command"`
}
