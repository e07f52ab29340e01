package lobbies

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/nftarena/battle-coordinator/pkg/api"
	"github.com/nftarena/battle-coordinator/pkg/chain"
	"github.com/nftarena/battle-coordinator/pkg/mapping"
	"github.com/nftarena/battle-coordinator/pkg/models"
	"github.com/nftarena/battle-coordinator/pkg/nft"
	"github.com/nftarena/battle-coordinator/pkg/storage"
	"github.com/nftarena/battle-coordinator/pkg/websockets"
)

// DefaultLobbyTTL is how long a lobby stays joinable when the creator does
// not ask for a specific TTL.
const DefaultLobbyTTL = 15 * time.Minute

// MaxLobbyTTL caps creator-supplied TTLs.
const MaxLobbyTTL = 24 * time.Hour

const defaultListLimit = 25

// LobbiesHandler holds the dependencies for lobby-related handlers.
type LobbiesHandler struct {
	Store     storage.ApiStore
	Stats     nft.StatProvider
	Chain     chain.Client
	Publisher websockets.Publisher
}

// NewLobbiesHandler creates a new LobbiesHandler.
func NewLobbiesHandler(store storage.ApiStore, stats nft.StatProvider, chainClient chain.Client, publisher websockets.Publisher) *LobbiesHandler {
	return &LobbiesHandler{Store: store, Stats: stats, Chain: chainClient, Publisher: publisher}
}

// requireLinked verifies the player has an account with a linked secondary
// address. Lobby entry is gated on it so promotion can always snapshot both
// secondaries.
func (h *LobbiesHandler) requireLinked(ctx context.Context, primary string) (*models.Account, error) {
	account, err := h.Store.GetAccount(ctx, primary)
	if err != nil {
		return nil, err
	}
	if !account.Linked() {
		return nil, storage.ErrUnlinked
	}
	return account, nil
}

func (h *LobbiesHandler) publishLobbyUpdate(ctx context.Context, lobby *models.Lobby, event string) {
	msg := websockets.Message{
		Type: websockets.MessageTypeLobbyUpdate,
		Payload: websockets.LobbyUpdatePayload{
			Code:   lobby.Code,
			Status: string(lobby.Status),
			Event:  event,
		},
	}
	if err := h.Publisher.Publish(ctx, msg); err != nil {
		slog.Error("failed to publish lobby update", "code", lobby.Code, "error", err)
	}
}

// CreateLobby handles the logic for opening a new lobby.
func (h *LobbiesHandler) CreateLobby(w http.ResponseWriter, r *http.Request) {
	var newLobby api.NewLobby
	if err := json.NewDecoder(r.Body).Decode(&newLobby); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	if newLobby.CreatorAddress == "" {
		http.Error(w, "creator_address is required", http.StatusBadRequest)
		return
	}

	if _, err := h.requireLinked(r.Context(), newLobby.CreatorAddress); err != nil {
		writeLinkGateError(w, err)
		return
	}

	visibility := models.LobbyPublic
	if newLobby.Visibility != nil && models.LobbyVisibility(*newLobby.Visibility) == models.LobbyPrivate {
		visibility = models.LobbyPrivate
	}

	ttl := DefaultLobbyTTL
	if newLobby.TTLMinutes != nil && *newLobby.TTLMinutes > 0 {
		ttl = time.Duration(*newLobby.TTLMinutes) * time.Minute
		if ttl > MaxLobbyTTL {
			ttl = MaxLobbyTTL
		}
	}

	lobby, err := h.Store.CreateLobby(r.Context(), newLobby.CreatorAddress, visibility, ttl)
	if err != nil {
		slog.Error("failed to create lobby", "creator", newLobby.CreatorAddress, "error", err)
		http.Error(w, fmt.Sprintf("Failed to create lobby: %v", err), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, mapping.ToApiLobby(lobby))
}

// ListOpenLobbies handles the public lobby browser.
func (h *LobbiesHandler) ListOpenLobbies(w http.ResponseWriter, r *http.Request) {
	lobbies, err := h.Store.ListOpenLobbies(r.Context(), defaultListLimit)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to list lobbies: %v", err), http.StatusInternalServerError)
		return
	}

	out := make([]*api.Lobby, len(lobbies))
	for i := range lobbies {
		out[i] = mapping.ToApiLobby(&lobbies[i])
	}
	writeJSON(w, http.StatusOK, out)
}

// GetLobbyByCode handles the logic for retrieving a lobby.
func (h *LobbiesHandler) GetLobbyByCode(w http.ResponseWriter, r *http.Request, code string) {
	lobby, err := h.Store.GetLobby(r.Context(), code)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			http.Error(w, "Lobby not found", http.StatusNotFound)
		} else {
			http.Error(w, fmt.Sprintf("Failed to retrieve lobby: %v", err), http.StatusInternalServerError)
		}
		return
	}

	writeJSON(w, http.StatusOK, mapping.ToApiLobby(lobby))
}

// JoinLobby handles the logic for seating a joiner.
func (h *LobbiesHandler) JoinLobby(w http.ResponseWriter, r *http.Request, code string) {
	var join api.JoinRequest
	if err := json.NewDecoder(r.Body).Decode(&join); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	if join.JoinerAddress == "" {
		http.Error(w, "joiner_address is required", http.StatusBadRequest)
		return
	}

	if _, err := h.requireLinked(r.Context(), join.JoinerAddress); err != nil {
		writeLinkGateError(w, err)
		return
	}

	lobby, err := h.Store.JoinLobby(r.Context(), code, join.JoinerAddress)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			http.Error(w, "Lobby not found", http.StatusNotFound)
		case errors.Is(err, storage.ErrSelfJoin):
			http.Error(w, "Cannot join your own lobby", http.StatusConflict)
		case errors.Is(err, storage.ErrLobbyFull):
			http.Error(w, "Lobby is already full", http.StatusConflict)
		case errors.Is(err, storage.ErrInvalidState):
			http.Error(w, "Lobby is no longer joinable", http.StatusConflict)
		default:
			http.Error(w, fmt.Sprintf("Failed to join lobby: %v", err), http.StatusInternalServerError)
		}
		return
	}

	h.publishLobbyUpdate(r.Context(), lobby, "playerJoined")
	writeJSON(w, http.StatusOK, mapping.ToApiLobby(lobby))
}

// SelectNFT handles a fighter selection for one side of the lobby.
func (h *LobbiesHandler) SelectNFT(w http.ResponseWriter, r *http.Request, code string) {
	var sel api.SelectRequest
	if err := json.NewDecoder(r.Body).Decode(&sel); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	if sel.PlayerAddress == "" || sel.Collection == "" || sel.Item == "" {
		http.Error(w, "player_address, collection and item are required", http.StatusBadRequest)
		return
	}

	// Preview snapshot only; promotion re-reads the stats authoritatively.
	stats, err := h.Stats.GetStats(r.Context(), sel.Collection, sel.Item)
	if err != nil {
		if errors.Is(err, nft.ErrStatsUnavailable) {
			http.Error(w, "Stats unavailable for the selected NFT", http.StatusBadGateway)
			return
		}
		http.Error(w, fmt.Sprintf("Failed to fetch NFT stats: %v", err), http.StatusBadGateway)
		return
	}

	lobby, err := h.Store.SelectNFT(r.Context(), code, storage.SelectNFTParams{
		Player:     sel.PlayerAddress,
		Collection: sel.Collection,
		Item:       sel.Item,
		Ready:      sel.Ready,
		Stats:      stats,
	})
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			http.Error(w, "Lobby not found", http.StatusNotFound)
		case errors.Is(err, storage.ErrNotAMember):
			http.Error(w, "Player is not a member of this lobby", http.StatusForbidden)
		case errors.Is(err, storage.ErrInvalidState):
			http.Error(w, "Lobby no longer accepts selections", http.StatusConflict)
		default:
			http.Error(w, fmt.Sprintf("Failed to store selection: %v", err), http.StatusInternalServerError)
		}
		return
	}

	h.publishLobbyUpdate(r.Context(), lobby, "selectionChanged")
	writeJSON(w, http.StatusOK, mapping.ToApiLobby(lobby))
}

// CancelLobby handles the creator tearing down a lobby.
func (h *LobbiesHandler) CancelLobby(w http.ResponseWriter, r *http.Request, code string) {
	var cancel api.CancelRequest
	if err := json.NewDecoder(r.Body).Decode(&cancel); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	if err := h.Store.CancelLobby(r.Context(), code, cancel.CreatorAddress); err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			http.Error(w, "Lobby not found", http.StatusNotFound)
		case errors.Is(err, storage.ErrNotAMember):
			http.Error(w, "Only the creator can cancel a lobby", http.StatusForbidden)
		case errors.Is(err, storage.ErrInvalidState):
			http.Error(w, "Lobby can no longer be cancelled", http.StatusConflict)
		default:
			http.Error(w, fmt.Sprintf("Failed to cancel lobby: %v", err), http.StatusInternalServerError)
		}
		return
	}

	h.publishLobbyUpdate(r.Context(), &models.Lobby{Code: code, Status: models.LobbyCancelled}, "lobbyCancelled")
	w.WriteHeader(http.StatusNoContent)
}

// PromoteLobby turns a ready lobby into a battle. The flow is: validate the
// lobby, re-read both stat blocks, snapshot both linked secondaries, create
// the battle record in initializing state, register it on the ledger, then
// confirm (or abort) the creation.
func (h *LobbiesHandler) PromoteLobby(w http.ResponseWriter, r *http.Request, code string) {
	var promote api.PromoteRequest
	if err := json.NewDecoder(r.Body).Decode(&promote); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	lobby, err := h.Store.GetLobby(r.Context(), code)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			http.Error(w, "Lobby not found", http.StatusNotFound)
		} else {
			http.Error(w, fmt.Sprintf("Failed to retrieve lobby: %v", err), http.StatusInternalServerError)
		}
		return
	}

	if !lobby.Member(promote.InitiatorAddress) {
		http.Error(w, "Only a lobby member can start the battle", http.StatusForbidden)
		return
	}
	if lobby.Status != models.LobbyReady {
		http.Error(w, "Both players must be ready before starting", http.StatusConflict)
		return
	}
	if lobby.CreatorSelection == nil || lobby.JoinerSelection == nil {
		http.Error(w, storage.ErrIncompleteSelection.Error(), http.StatusConflict)
		return
	}

	battle, err := h.buildBattle(r.Context(), lobby)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrUnlinked), errors.Is(err, storage.ErrNotFound):
			http.Error(w, "Both players must have a linked secondary address", http.StatusUnprocessableEntity)
		case errors.Is(err, nft.ErrStatsUnavailable):
			http.Error(w, "Stats unavailable for a selected NFT", http.StatusBadGateway)
		default:
			http.Error(w, fmt.Sprintf("Failed to prepare battle: %v", err), http.StatusInternalServerError)
		}
		return
	}

	startedLobby, err := h.Store.PromoteLobby(r.Context(), code, battle)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			http.Error(w, "Lobby not found", http.StatusNotFound)
		case errors.Is(err, storage.ErrIncompleteSelection):
			http.Error(w, err.Error(), http.StatusConflict)
		case errors.Is(err, storage.ErrInvalidState):
			http.Error(w, "Lobby is not ready to start", http.StatusConflict)
		default:
			http.Error(w, fmt.Sprintf("Failed to promote lobby: %v", err), http.StatusInternalServerError)
		}
		return
	}

	created, err := h.Chain.CreateBattle(r.Context(), chain.CreateBattleParams{
		Player1Secondary: battle.Player1Secondary,
		Player2Secondary: battle.Player2Secondary,
		Player1Stats:     battle.Player1Stats,
		Player2Stats:     battle.Player2Stats,
		Player1MaxHealth: battle.Player1MaxHealth,
		Player2MaxHealth: battle.Player2MaxHealth,
	})
	if err != nil {
		slog.Error("ledger battle creation failed, abandoning battle", "battleId", battle.ID, "error", err)
		if abortErr := h.Store.AbortBattleCreation(r.Context(), battle.ID, err.Error()); abortErr != nil {
			slog.Error("CRITICAL: failed to abandon battle after ledger failure", "battleId", battle.ID, "error", abortErr)
		}
		http.Error(w, "External ledger rejected battle creation", http.StatusBadGateway)
		return
	}

	activeBattle, err := h.Store.ConfirmBattleCreation(r.Context(), battle.ID, created.ExternalBattleID, created.TxRef)
	if err != nil {
		slog.Error("CRITICAL: ledger battle created but activation failed", "battleId", battle.ID, "externalBattleId", created.ExternalBattleID, "error", err)
		http.Error(w, fmt.Sprintf("Failed to activate battle: %v", err), http.StatusInternalServerError)
		return
	}

	h.publishLobbyUpdate(r.Context(), startedLobby, "battleStarted")
	h.publishBattleUpdate(r.Context(), activeBattle, "battleCreated")

	writeJSON(w, http.StatusCreated, mapping.ToApiBattle(activeBattle))
}

// buildBattle assembles the initializing battle record from a ready lobby:
// authoritative stat re-reads for both NFTs and a snapshot of both players'
// linked secondary addresses.
func (h *LobbiesHandler) buildBattle(ctx context.Context, lobby *models.Lobby) (*models.Battle, error) {
	creatorStats, err := h.Stats.GetStats(ctx, lobby.CreatorSelection.Collection, lobby.CreatorSelection.Item)
	if err != nil {
		return nil, fmt.Errorf("creator stats: %w", err)
	}
	joinerStats, err := h.Stats.GetStats(ctx, lobby.JoinerSelection.Collection, lobby.JoinerSelection.Item)
	if err != nil {
		return nil, fmt.Errorf("joiner stats: %w", err)
	}

	creatorAccount, err := h.requireLinked(ctx, lobby.CreatorAddress)
	if err != nil {
		return nil, fmt.Errorf("creator account: %w", err)
	}
	joinerAccount, err := h.requireLinked(ctx, lobby.JoinerAddress)
	if err != nil {
		return nil, fmt.Errorf("joiner account: %w", err)
	}

	now := time.Now()
	return &models.Battle{
		ID:               uuid.NewString(),
		Player1Address:   lobby.CreatorAddress,
		Player2Address:   lobby.JoinerAddress,
		Player1Secondary: models.NormalizeAddress(creatorAccount.SecondaryAddress),
		Player2Secondary: models.NormalizeAddress(joinerAccount.SecondaryAddress),
		Player1NFT: models.NFTRef{
			Collection: lobby.CreatorSelection.Collection,
			Item:       lobby.CreatorSelection.Item,
		},
		Player2NFT: models.NFTRef{
			Collection: lobby.JoinerSelection.Collection,
			Item:       lobby.JoinerSelection.Item,
		},
		Player1Stats:     *creatorStats,
		Player2Stats:     *joinerStats,
		CurrentTurn:      models.FirstTurn(lobby.CreatorAddress, lobby.JoinerAddress, *creatorStats, *joinerStats),
		Player1Health:    creatorStats.MaxHealth,
		Player2Health:    joinerStats.MaxHealth,
		Player1MaxHealth: creatorStats.MaxHealth,
		Player2MaxHealth: joinerStats.MaxHealth,
		TurnNumber:       0,
		Status:           models.BattleInitializing,
		Moves:            []models.Move{},
		Version:          1,
		CreatedAt:        now,
		UpdatedAt:        now,
	}, nil
}

func (h *LobbiesHandler) publishBattleUpdate(ctx context.Context, battle *models.Battle, event string) {
	msg := websockets.Message{
		Type: websockets.MessageTypeBattleUpdate,
		Payload: websockets.BattleUpdatePayload{
			BattleID:      battle.ID,
			Status:        string(battle.Status),
			TurnNumber:    battle.TurnNumber,
			CurrentTurn:   battle.CurrentTurn,
			Player1Health: battle.Player1Health,
			Player2Health: battle.Player2Health,
			Winner:        battle.Winner,
			Event:         event,
		},
	}
	if err := h.Publisher.Publish(ctx, msg); err != nil {
		slog.Error("failed to publish battle update", "battleId", battle.ID, "error", err)
	}
}

func writeLinkGateError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		http.Error(w, "No account for this address", http.StatusUnprocessableEntity)
	case errors.Is(err, storage.ErrUnlinked):
		http.Error(w, "Account has no linked secondary address", http.StatusUnprocessableEntity)
	default:
		http.Error(w, fmt.Sprintf("Failed to check account link: %v", err), http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}
