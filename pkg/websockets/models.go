package websockets

// MessageType defines the type of a WebSocket message.
type MessageType string

const (
	// MessageTypeLobbyUpdate is for lobby state changes (join, selection, ready, promotion).
	MessageTypeLobbyUpdate MessageType = "lobbyUpdate"
	// MessageTypeBattleUpdate is for battle state changes (turns, reverts, game over).
	MessageTypeBattleUpdate MessageType = "battleUpdate"
)

// Message represents a generic WebSocket message.
type Message struct {
	Type    MessageType `json:"type"`
	Payload interface{} `json:"payload"`
}

// LobbyUpdatePayload is the payload for a lobbyUpdate message.
type LobbyUpdatePayload struct {
	Code   string `json:"code"`
	Status string `json:"status"`
	Event  string `json:"event"`
}

// BattleUpdatePayload is the payload for a battleUpdate message.
type BattleUpdatePayload struct {
	BattleID      string `json:"battle_id"`
	Status        string `json:"status"`
	TurnNumber    int64  `json:"turn_number"`
	CurrentTurn   string `json:"current_turn"`
	Player1Health int64  `json:"player1_health"`
	Player2Health int64  `json:"player2_health"`
	Winner        string `json:"winner,omitempty"`
	Event         string `json:"event"`
}
