package chain

import (
	"context"
	"errors"

	"github.com/nftarena/battle-coordinator/pkg/models"
)

// ErrLedgerFailure marks a failed call to the external ledger. Callers map
// it onto the revert / creation-abort paths so durable state never reflects
// a ledger operation that did not happen.
var ErrLedgerFailure = errors.New("external ledger call failed")

// CreateBattleParams are the inputs to the contract's battle creation entry
// point. Addresses are secondary (contract-side) addresses.
type CreateBattleParams struct {
	Player1Secondary string           `json:"player1_secondary"`
	Player2Secondary string           `json:"player2_secondary"`
	Player1Stats     models.StatBlock `json:"player1_stats"`
	Player2Stats     models.StatBlock `json:"player2_stats"`
	Player1MaxHealth int64            `json:"player1_max_health"`
	Player2MaxHealth int64            `json:"player2_max_health"`
}

// CreateBattleResult is the ledger's confirmation of battle creation.
type CreateBattleResult struct {
	ExternalBattleID string `json:"external_battle_id"`
	TxRef            string `json:"tx_ref"`
}

// TurnResult is the ledger's authoritative outcome of an executed turn.
// The coordinator never recomputes combat math; it overwrites its state
// with these values. All addresses are secondary addresses and must be
// translated before touching any primary-address field.
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

// ExecuteTurnResult pairs a turn outcome with its transaction reference.
type ExecuteTurnResult struct {
	Turn  TurnResult `json:"turn"`
	TxRef string     `json:"tx_ref"`
}

// Client defines the external ledger's entry points as consumed here.
// Both operations are externally signed and may take seconds; they always
// run outside the coordinator's transactional boundary.
type Client interface {
	// CreateBattle registers a battle on the ledger.
	CreateBattle(ctx context.Context, params CreateBattleParams) (*CreateBattleResult, error)

	// ExecuteTurn advances a battle on the ledger. The normal turn path is
	// client-driven (the wallet signs the call and the UI posts the result
	// back), but the entry point is part of the consumed contract.
	ExecuteTurn(ctx context.Context, externalBattleID string) (*ExecuteTurnResult, error)
}
