package entity

import (
	"fmt"

	"github.com/rocketscienceinc/gridclash-backend/internal/apperror"
)

type Direction string

const (
	Forward      Direction = "F"
	Back         Direction = "B"
	Left         Direction = "L"
	Right        Direction = "R"
	ForwardLeft  Direction = "FL"
	ForwardRight Direction = "FR"
	BackLeft     Direction = "BL"
	BackRight    Direction = "BR"
)

func ParseDirection(raw string) (Direction, error) {
	switch dir := Direction(raw); dir {
	case Forward, Back, Left, Right, ForwardLeft, ForwardRight, BackLeft, BackRight:
		return dir, nil
	default:
		return "", fmt.Errorf("%w: %q", apperror.ErrUnknownDirection, raw)
	}
}
