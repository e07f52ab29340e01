package models

import "time"

// BattleStatus defines the possible states of a battle.
type BattleStatus string

const (
	BattleInitializing BattleStatus = "initializing"
	BattleActive       BattleStatus = "active"
	BattleFinished     BattleStatus = "finished"
	BattleAbandoned    BattleStatus = "abandoned"
)

// PendingTurn marks an in-flight turn submission. Its presence is the
// single-flight lock for the turn protocol; it must survive reloads and
// disconnects, which is why it is persisted on the battle record.
type PendingTurn struct {
	Player      string    `dynamodbav:"player"`
	Action      string    `dynamodbav:"action"`
	SubmittedAt time.Time `dynamodbav:"submitted_at"`
	TxRef       string    `dynamodbav:"tx_ref,omitempty"`
}

// Move is one entry in a battle's append-only move log.
type Move struct {
	TurnNumber      int64     `dynamodbav:"turn_number"`
	Player          string    `dynamodbav:"player"`
	Action          string    `dynamodbav:"action"`
	Damage          int64     `dynamodbav:"damage"`
	WasCritical     bool      `dynamodbav:"was_critical"`
	ResultingHealth int64     `dynamodbav:"resulting_health"`
	TxRef           string    `dynamodbav:"tx_ref"`
	Timestamp       time.Time `dynamodbav:"timestamp"`
}

// Battle is the durable record of an in-progress or finished battle.
// All addresses in primary-address fields are primary addresses; the
// secondary addresses both players linked at promotion time are snapshotted
// so a later re-link cannot break an in-flight battle.
type Battle struct {
	ID               string       `dynamodbav:"id"`
	ExternalBattleID string       `dynamodbav:"external_battle_id,omitempty"`
	Player1Address   string       `dynamodbav:"player1_address"`
	Player2Address   string       `dynamodbav:"player2_address"`
	Player1Secondary string       `dynamodbav:"player1_secondary"`
	Player2Secondary string       `dynamodbav:"player2_secondary"`
	Player1NFT       NFTRef       `dynamodbav:"player1_nft"`
	Player2NFT       NFTRef       `dynamodbav:"player2_nft"`
	Player1Stats     StatBlock    `dynamodbav:"player1_stats"`
	Player2Stats     StatBlock    `dynamodbav:"player2_stats"`
	CurrentTurn      string       `dynamodbav:"current_turn"`
	Player1Health    int64        `dynamodbav:"player1_health"`
	Player2Health    int64        `dynamodbav:"player2_health"`
	Player1MaxHealth int64        `dynamodbav:"player1_max_health"`
	Player2MaxHealth int64        `dynamodbav:"player2_max_health"`
	TurnNumber       int64        `dynamodbav:"turn_number"`
	Status           BattleStatus `dynamodbav:"status"`
	Winner           string       `dynamodbav:"winner,omitempty"`
	PendingTurn      *PendingTurn `dynamodbav:"pending_turn,omitempty"`
	Moves            []Move       `dynamodbav:"moves"`
	Version          int64        `dynamodbav:"version"`
	CreatedAt        time.Time    `dynamodbav:"created_at"`
	UpdatedAt        time.Time    `dynamodbav:"updated_at"`
}

// NFTRef identifies an NFT by collection and item.
type NFTRef struct {
	Collection string `dynamodbav:"collection" json:"collection"`
	Item       string `dynamodbav:"item" json:"item"`
}

// HasPlayer reports whether the primary address is one of the two fighters.
func (b *Battle) HasPlayer(addr string) bool {
	return addr == b.Player1Address || addr == b.Player2Address
}

// SecondaryToPrimary maps a ledger-reported secondary address onto one of
// the battle's participants using the snapshot taken at promotion.
func (b *Battle) SecondaryToPrimary(secondary string) (string, bool) {
	switch NormalizeAddress(secondary) {
	case b.Player1Secondary:
		return b.Player1Address, true
	case b.Player2Secondary:
		return b.Player2Address, true
	}
	return "", false
}

// Opponent returns the other participant's primary address.
func (b *Battle) Opponent(addr string) string {
	if addr == b.Player1Address {
		return b.Player2Address
	}
	return b.Player1Address
}

// FirstTurn picks the opening player: higher speed moves first, with ties
// always favoring the creator so replays are reproducible.
func FirstTurn(creator, joiner string, creatorStats, joinerStats StatBlock) string {
	if joinerStats.Speed > creatorStats.Speed {
		return joiner
	}
	return creator
}

// ClampHealth bounds a ledger-reported health value to [0, max].
func ClampHealth(h, max int64) int64 {
	if h < 0 {
		return 0
	}
	if h > max {
		return max
	}
	return h
}
