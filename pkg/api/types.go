// Package api holds the request and response types of the HTTP surface.
// They are kept separate from the domain models so storage concerns
// (dynamodbav tags, version counters) never leak onto the wire.
package api

import (
	"time"
)

// NewAccount is the request body for registering an account.
type NewAccount struct {
	PrimaryAddress string `json:"primary_address"`
}

// LinkRequest is the request body for linking a secondary address.
type LinkRequest struct {
	SecondaryAddress string `json:"secondary_address"`
}

// Account is the wire representation of an account.
type Account struct {
	PrimaryAddress   string     `json:"primary_address"`
	SecondaryAddress *string    `json:"secondary_address,omitempty"`
	LinkedAt         *time.Time `json:"linked_at,omitempty"`
	Balance          int64      `json:"balance"`
	CreatedAt        time.Time  `json:"created_at"`
}

// ResolveResponse maps a secondary address to its primary address.
type ResolveResponse struct {
	PrimaryAddress string `json:"primary_address"`
}

// StatBlock is the wire representation of a frozen stat snapshot.
type StatBlock struct {
	Attack       int64  `json:"attack"`
	Defense      int64  `json:"defense"`
	Intelligence int64  `json:"intelligence"`
	Luck         int64  `json:"luck"`
	Speed        int64  `json:"speed"`
	Strength     int64  `json:"strength"`
	MaxHealth    int64  `json:"max_health"`
	NFTType      string `json:"nft_type"`
}

// NewLobby is the request body for creating a lobby.
type NewLobby struct {
	CreatorAddress string  `json:"creator_address"`
	Visibility     *string `json:"visibility,omitempty"`
	TTLMinutes     *int64  `json:"ttl_minutes,omitempty"`
}

// JoinRequest is the request body for joining a lobby.
type JoinRequest struct {
	JoinerAddress string `json:"joiner_address"`
}

// SelectRequest is the request body for picking a fighter.
type SelectRequest struct {
	PlayerAddress string `json:"player_address"`
	Collection    string `json:"collection"`
	Item          string `json:"item"`
	Ready         bool   `json:"ready"`
}

// CancelRequest is the request body for cancelling a lobby.
type CancelRequest struct {
	CreatorAddress string `json:"creator_address"`
}

// PromoteRequest is the request body for starting the battle.
type PromoteRequest struct {
	InitiatorAddress string `json:"initiator_address"`
}

// NFTSelection is the wire representation of one side's fighter pick.
type NFTSelection struct {
	Collection string     `json:"collection"`
	Item       string     `json:"item"`
	Ready      bool       `json:"ready"`
	Stats      *StatBlock `json:"stats,omitempty"`
}

// Lobby is the wire representation of a lobby.
type Lobby struct {
	Code             string        `json:"code"`
	CreatorAddress   string        `json:"creator_address"`
	JoinerAddress    *string       `json:"joiner_address,omitempty"`
	Status           string        `json:"status"`
	Visibility       string        `json:"visibility"`
	CreatorSelection *NFTSelection `json:"creator_selection,omitempty"`
	JoinerSelection  *NFTSelection `json:"joiner_selection,omitempty"`
	BattleID         *string       `json:"battle_id,omitempty"`
	ExpiresAt        time.Time     `json:"expires_at"`
	CreatedAt        time.Time     `json:"created_at"`
}

// Move is one entry of a battle's move log on the wire.
type Move struct {
	TurnNumber      int64     `json:"turn_number"`
	Player          string    `json:"player"`
	Action          string    `json:"action"`
	Damage          int64     `json:"damage"`
	WasCritical     bool      `json:"was_critical"`
	ResultingHealth int64     `json:"resulting_health"`
	TxRef           string    `json:"tx_ref"`
	Timestamp       time.Time `json:"timestamp"`
}

// PendingTurn marks an in-flight turn submission on the wire.
type PendingTurn struct {
	Player      string    `json:"player"`
	Action      string    `json:"action"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// Battle is the wire representation of a battle.
type Battle struct {
	ID               string       `json:"id"`
	ExternalBattleID *string      `json:"external_battle_id,omitempty"`
	Player1Address   string       `json:"player1_address"`
	Player2Address   string       `json:"player2_address"`
	Player1Stats     StatBlock    `json:"player1_stats"`
	Player2Stats     StatBlock    `json:"player2_stats"`
	CurrentTurn      string       `json:"current_turn,omitempty"`
	Player1Health    int64        `json:"player1_health"`
	Player2Health    int64        `json:"player2_health"`
	Player1MaxHealth int64        `json:"player1_max_health"`
	Player2MaxHealth int64        `json:"player2_max_health"`
	TurnNumber       int64        `json:"turn_number"`
	Status           string       `json:"status"`
	Winner           *string      `json:"winner,omitempty"`
	PendingTurn      *PendingTurn `json:"pending_turn,omitempty"`
	Moves            []Move       `json:"moves"`
	CreatedAt        time.Time    `json:"created_at"`
	UpdatedAt        time.Time    `json:"updated_at"`
}

// BeginTurnRequest is the request body for starting a turn submission.
type BeginTurnRequest struct {
	PlayerAddress string `json:"player_address"`
	Action        string `json:"action"`
}

// TurnResult is the ledger-reported outcome posted back by the client
// after the signed contract call confirms.
type TurnResult struct {
	Player1Health         int64   `json:"player1_health"`
	Player2Health         int64   `json:"player2_health"`
	TurnCount             int64   `json:"turn_count"`
	IsOver                bool    `json:"is_over"`
	WinnerSecondaryAddr   *string `json:"winner_secondary_addr,omitempty"`
	NextTurnSecondaryAddr *string `json:"next_turn_secondary_addr,omitempty"`
	Damage                *int64  `json:"damage,omitempty"`
	WasCritical           *bool   `json:"was_critical,omitempty"`
}

// CommitTurnRequest is the request body for committing a turn.
type CommitTurnRequest struct {
	TxRef  string     `json:"tx_ref"`
	Result TurnResult `json:"result"`
}

// RevertTurnRequest is the request body for reverting a pending turn.
type RevertTurnRequest struct {
	PlayerAddress string `json:"player_address"`
	Reason        string `json:"reason,omitempty"`
}

// CreditEntry is the wire representation of a reward-ledger entry.
type CreditEntry struct {
	EntryID     string    `json:"entry_id"`
	BattleID    string    `json:"battle_id"`
	AccountID   string    `json:"account_id"`
	Credit      int64     `json:"credit"`
	Description string    `json:"description"`
	Timestamp   time.Time `json:"timestamp"`
}
