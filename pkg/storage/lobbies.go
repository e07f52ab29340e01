package storage

import (
	"context"
	"time"

	"github.com/nftarena/battle-coordinator/pkg/models"
)

// SelectNFTParams carries one side's fighter selection.
type SelectNFTParams struct {
	Player     string
	Collection string
	Item       string
	Ready      bool
	Stats      *models.StatBlock
}

// LobbyStore defines the interface for the matchmaking state machine.
// All mutations enforce the waiting→ready→started transitions and apply
// lazy expiry before writing.
type LobbyStore interface {
	// CreateLobby creates a lobby with a fresh shareable code.
	CreateLobby(ctx context.Context, creator string, visibility models.LobbyVisibility, ttl time.Duration) (*models.Lobby, error)

	// GetLobby retrieves a lobby by code, with lazy expiry applied.
	GetLobby(ctx context.Context, code string) (*models.Lobby, error)

	// ListOpenLobbies returns public lobbies still waiting for a joiner.
	ListOpenLobbies(ctx context.Context, limit int32) ([]models.Lobby, error)

	// JoinLobby seats the joiner in the vacant slot.
	JoinLobby(ctx context.Context, code, joiner string) (*models.Lobby, error)

	// SelectNFT stores a fighter selection and re-derives the lobby status.
	SelectNFT(ctx context.Context, code string, params SelectNFTParams) (*models.Lobby, error)

	// CancelLobby moves a waiting lobby to cancelled. Creator only.
	CancelLobby(ctx context.Context, code, creator string) error

	// PromoteLobby atomically marks the lobby started and creates the battle
	// record in initializing state.
	PromoteLobby(ctx context.Context, code string, battle *models.Battle) (*models.Lobby, error)
}
