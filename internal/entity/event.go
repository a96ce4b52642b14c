package entity

type EventType string

const (
	EventGameInitialization EventType = "gameInitialization"
	EventGameState          EventType = "gameState"
	EventGameOver           EventType = "gameOver"
	EventInvalidMove        EventType = "invalidMove"
	EventValidMoves         EventType = "validMoves"
	EventError              EventType = "error"
)

// Event is a server to client message. Only the fields relevant to Type are set.
type Event struct {
	Type      EventType   `json:"type"`
	GameState *Snapshot   `json:"gameState,omitempty"`
	Winner    Seat        `json:"winner,omitempty"`
	Moves     []LegalMove `json:"moves"`
	Message   string      `json:"message,omitempty"`
}

func NewGameStateEvent(snapshot Snapshot) Event {
	return Event{Type: EventGameState, GameState: &snapshot}
}

func NewGameInitializationEvent(snapshot Snapshot) Event {
	return Event{Type: EventGameInitialization, GameState: &snapshot}
}

func NewGameOverEvent(winner Seat, snapshot Snapshot) Event {
	return Event{Type: EventGameOver, Winner: winner, GameState: &snapshot}
}

func NewInvalidMoveEvent(message string) Event {
	return Event{Type: EventInvalidMove, Message: message}
}

// NewValidMovesEvent encodes an empty result as [] rather than null.
func NewValidMovesEvent(moves []LegalMove) Event {
	if moves == nil {
		moves = []LegalMove{}
	}
	return Event{Type: EventValidMoves, Moves: moves}
}

func NewErrorEvent(message string) Event {
	return Event{Type: EventError, Message: message}
}

func (that Event) IsBroadcast() bool {
	switch that.Type {
	case EventGameInitialization, EventGameState, EventGameOver:
		return true
	default:
		return false
	}
}
