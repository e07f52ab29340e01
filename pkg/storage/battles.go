package storage

import (
	"context"
	"time"

	"github.com/nftarena/battle-coordinator/pkg/chain"
	"github.com/nftarena/battle-coordinator/pkg/models"
)

// BattleReader defines the interface for reading battle records.
type BattleReader interface {
	// GetBattle retrieves a battle by its ID.
	GetBattle(ctx context.Context, battleID string) (*models.Battle, error)

	// ListBattlesByPlayer retrieves battles a primary address participates in.
	ListBattlesByPlayer(ctx context.Context, primary string) ([]models.Battle, error)

	// GetStuckBattles retrieves active battles whose pending turn has been in
	// flight longer than maxAge.
	GetStuckBattles(ctx context.Context, maxAge time.Duration) ([]models.Battle, error)
}

// BattleLifecycle defines the creation-handshake operations.
type BattleLifecycle interface {
	// ConfirmBattleCreation moves an initializing battle to active once the
	// external ledger confirms creation.
	ConfirmBattleCreation(ctx context.Context, battleID, externalBattleID, txRef string) (*models.Battle, error)

	// AbortBattleCreation moves an initializing battle to abandoned when the
	// ledger-creation call failed.
	AbortBattleCreation(ctx context.Context, battleID, reason string) error
}

// TurnExecutor defines the single-flight turn protocol. At most one turn
// submission is in flight per battle; pending_turn is the persisted lock.
type TurnExecutor interface {
	// BeginTurn sets the pending turn marker for the acting player.
	BeginTurn(ctx context.Context, battleID, player, action string) (*models.Battle, error)

	// CommitTurn reconciles the ledger result into the battle record,
	// appends the move and, on game over, settles the winner's credit.
	// Committing the same opRef twice is a no-op.
	CommitTurn(ctx context.Context, battleID string, result *chain.TurnResult, opRef string) (*models.Battle, error)

	// RevertTurn clears the pending turn without touching combat state.
	// Calling it with no pending turn is a no-op.
	RevertTurn(ctx context.Context, battleID, reason string) error

	// RevertTurnMatching clears the pending turn only if it is still the
	// observed submission (same player and submission timestamp); anything
	// else is a no-op. Used by the watchdog so a turn submitted after its
	// read is never clobbered.
	RevertTurnMatching(ctx context.Context, battleID, player string, submittedAt time.Time, reason string) error
}

// BattleStore combines all battle-facing interfaces.
type BattleStore interface {
	BattleReader
	BattleLifecycle
	TurnExecutor
}
