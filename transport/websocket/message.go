package websocket

const (
	actionInitialize        = "initialize"
	actionMove              = "move"
	actionRequestValidMoves = "requestValidMoves"
	actionNewGame           = "newGame"
)

// Message is a client to server message. Which fields are used depends on Type.
type Message struct {
	Type       string   `json:"type"`
	Player     string   `json:"player,omitempty"`
	Characters []string `json:"characters,omitempty"`
	Character  string   `json:"character,omitempty"`
	Move       string   `json:"move,omitempty"`
}
