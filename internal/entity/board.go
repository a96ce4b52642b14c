package entity

import (
	"fmt"

	"github.com/rocketscienceinc/gridclash-backend/internal/apperror"
)

const BoardSize = 5

// Board is the 5x5 occupancy grid. It checks structure only; legality belongs to the rules package.
type Board struct {
	cells [BoardSize][BoardSize]*Piece
}

func NewBoard() *Board {
	return &Board{}
}

func InBounds(row, col int) bool {
	return row >= 0 && row < BoardSize && col >= 0 && col < BoardSize
}

func checkBounds(row, col int) error {
	if !InBounds(row, col) {
		return fmt.Errorf("%w: (%d, %d)", apperror.ErrOutOfBounds, row, col)
	}
	return nil
}

// OccupantAt returns nil for an empty cell.
func (that *Board) OccupantAt(row, col int) (*Piece, error) {
	if err := checkBounds(row, col); err != nil {
		return nil, err
	}

	return that.cells[row][col], nil
}

func (that *Board) Place(piece Piece, row, col int) error {
	if err := checkBounds(row, col); err != nil {
		return err
	}

	that.cells[row][col] = &piece

	return nil
}

func (that *Board) Clear(row, col int) error {
	if err := checkBounds(row, col); err != nil {
		return err
	}

	that.cells[row][col] = nil

	return nil
}

// Locate scans the grid for a piece. A captured piece is reported with ok=false.
func (that *Board) Locate(id PieceID) (int, int, bool) {
	for row := range BoardSize {
		for col := range BoardSize {
			if cell := that.cells[row][col]; cell != nil && cell.ID == id {
				return row, col, true
			}
		}
	}

	return -1, -1, false
}

// Count returns the number of live pieces owned by seat.
func (that *Board) Count(seat Seat) int {
	count := 0
	for row := range BoardSize {
		for col := range BoardSize {
			if cell := that.cells[row][col]; cell != nil && cell.Owner() == seat {
				count++
			}
		}
	}

	return count
}

// Cells renders the grid for the wire: "<seat>-<name>" or nil for an empty cell.
func (that *Board) Cells() [BoardSize][BoardSize]*string {
	var out [BoardSize][BoardSize]*string
	for row := range BoardSize {
		for col := range BoardSize {
			if cell := that.cells[row][col]; cell != nil {
				label := cell.ID.String()
				out[row][col] = &label
			}
		}
	}

	return out
}
