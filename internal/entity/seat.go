package entity

import (
	"fmt"

	"github.com/rocketscienceinc/gridclash-backend/internal/apperror"
)

type Seat string

const (
	SeatA  Seat = "A"
	SeatB  Seat = "B"
	NoSeat Seat = ""
)

// Seats lists both seats in turn order.
var Seats = [2]Seat{SeatA, SeatB}

func ParseSeat(raw string) (Seat, error) {
	switch seat := Seat(raw); seat {
	case SeatA, SeatB:
		return seat, nil
	default:
		return NoSeat, fmt.Errorf("%w: %q", apperror.ErrUnknownSeat, raw)
	}
}

func (that Seat) IsValid() bool {
	return that == SeatA || that == SeatB
}

func (that Seat) Opponent() Seat {
	if that == SeatA {
		return SeatB
	}
	return SeatA
}

// HomeRow is the row a seat's pieces are placed on at join time.
func (that Seat) HomeRow() int {
	if that == SeatA {
		return 0
	}
	return BoardSize - 1
}
