package entity

import (
	"fmt"
	"strings"

	"github.com/rocketscienceinc/gridclash-backend/internal/apperror"
)

type PieceKind int

const (
	KindUnknown PieceKind = iota
	KindPawn
	KindHero
)

func (that PieceKind) String() string {
	switch that {
	case KindPawn:
		return "pawn"
	case KindHero:
		return "hero"
	default:
		return "unknown"
	}
}

// KindOf derives the piece kind from the first letter of a character name.
func KindOf(name string) (PieceKind, error) {
	if name == "" {
		return KindUnknown, apperror.ErrInvalidPieceName
	}

	switch name[0] {
	case 'P':
		return KindPawn, nil
	case 'H':
		return KindHero, nil
	default:
		return KindUnknown, fmt.Errorf("%w: %q", apperror.ErrUnknownPieceKind, name)
	}
}

// PieceID identifies a piece for the whole match lifetime. Wire form is "<seat>-<name>".
type PieceID struct {
	Seat Seat
	Name string
}

func (that PieceID) String() string {
	return string(that.Seat) + "-" + that.Name
}

// ParsePieceID accepts both "A-P1" and a bare "P1"; the bare form takes the fallback seat.
func ParsePieceID(raw string, fallback Seat) (PieceID, error) {
	seatPart, name, qualified := strings.Cut(raw, "-")
	if !qualified {
		name = raw
		if !fallback.IsValid() {
			return PieceID{}, fmt.Errorf("%w: %q has no seat", apperror.ErrInvalidPieceName, raw)
		}

		if err := validateName(name); err != nil {
			return PieceID{}, err
		}

		return PieceID{Seat: fallback, Name: name}, nil
	}

	seat, err := ParseSeat(seatPart)
	if err != nil {
		return PieceID{}, err
	}

	if err = validateName(name); err != nil {
		return PieceID{}, err
	}

	return PieceID{Seat: seat, Name: name}, nil
}

func validateName(name string) error {
	if name == "" || strings.ContainsAny(name, "-:") {
		return fmt.Errorf("%w: %q", apperror.ErrInvalidPieceName, name)
	}
	return nil
}

type Piece struct {
	ID   PieceID
	Kind PieceKind
}

func NewPiece(seat Seat, name string) (Piece, error) {
	if err := validateName(name); err != nil {
		return Piece{}, err
	}

	kind, err := KindOf(name)
	if err != nil {
		return Piece{}, err
	}

	return Piece{ID: PieceID{Seat: seat, Name: name}, Kind: kind}, nil
}

func (that Piece) Owner() Seat {
	return that.ID.Seat
}
