package entity

import "time"

type MatchStatus string

const (
	StatusEmpty     MatchStatus = "empty"
	StatusSeating   MatchStatus = "seating"
	StatusActive    MatchStatus = "active"
	StatusConcluded MatchStatus = "concluded"
)

func (that MatchStatus) IsActive() bool {
	return that == StatusActive
}

func (that MatchStatus) IsConcluded() bool {
	return that == StatusConcluded
}

const (
	ReasonElimination = "elimination"
	ReasonForfeit     = "forfeit"
)

// Snapshot is the full state pushed to clients after every accepted mutation.
type Snapshot struct {
	MatchID     string                        `json:"matchId"`
	Board       [BoardSize][BoardSize]*string `json:"board"`
	MoveHistory []MoveRecord                  `json:"moveHistory"`
	Turn        Seat                          `json:"turn"`
	Status      MatchStatus                   `json:"status"`
	Winner      Seat                          `json:"winner,omitempty"`
	Players     map[Seat][]string             `json:"players"`
}

// MatchResult is the archived record of a concluded match.
type MatchResult struct {
	MatchID    string            `json:"matchId"`
	Winner     Seat              `json:"winner"`
	Reason     string            `json:"reason"`
	Players    map[Seat][]string `json:"players"`
	Moves      []MoveRecord      `json:"moves"`
	FinishedAt time.Time         `json:"finishedAt"`
}
