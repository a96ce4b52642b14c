package apperror

import "errors"

var (
	ErrSeatTaken       = errors.New("seat is already taken")
	ErrNotYourTurn     = errors.New("it's not your turn")
	ErrPieceNotFound   = errors.New("piece not found")
	ErrIllegalMove     = errors.New("illegal move")
	ErrOutOfBounds     = errors.New("coordinate out of bounds")
	ErrMatchConcluded  = errors.New("match is already concluded")
	ErrMatchNotStarted = errors.New("match is not started")

	ErrUnknownSeat      = errors.New("unknown seat")
	ErrUnknownPieceKind = errors.New("unknown piece kind")
	ErrUnknownDirection = errors.New("unknown direction")
	ErrInvalidPieceName = errors.New("invalid piece name")
	ErrInvalidMoveToken = errors.New("invalid move token")
	ErrInvalidRoster    = errors.New("invalid roster")

	ErrUnknownMessage = errors.New("unknown message type")
	ErrResultNotFound = errors.New("match result not found")
)
