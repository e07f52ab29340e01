package battles

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/nftarena/battle-coordinator/pkg/api"
	"github.com/nftarena/battle-coordinator/pkg/mapping"
	"github.com/nftarena/battle-coordinator/pkg/models"
	"github.com/nftarena/battle-coordinator/pkg/storage"
	"github.com/nftarena/battle-coordinator/pkg/websockets"
)

// BattlesHandler holds the dependencies for battle-related handlers.
type BattlesHandler struct {
	Store     storage.BattleStore
	Publisher websockets.Publisher
}

// NewBattlesHandler creates a new BattlesHandler.
func NewBattlesHandler(store storage.BattleStore, publisher websockets.Publisher) *BattlesHandler {
	return &BattlesHandler{Store: store, Publisher: publisher}
}

// GetBattleById handles the logic for retrieving a battle.
func (h *BattlesHandler) GetBattleById(w http.ResponseWriter, r *http.Request, battleID string) {
	battle, err := h.Store.GetBattle(r.Context(), battleID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			http.Error(w, "Battle not found", http.StatusNotFound)
		} else {
			http.Error(w, fmt.Sprintf("Failed to retrieve battle: %v", err), http.StatusInternalServerError)
		}
		return
	}

	writeJSON(w, http.StatusOK, mapping.ToApiBattle(battle))
}

// ListBattlesByPlayer handles the battle-history listing for a player.
func (h *BattlesHandler) ListBattlesByPlayer(w http.ResponseWriter, r *http.Request, address string) {
	battles, err := h.Store.ListBattlesByPlayer(r.Context(), address)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to list battles: %v", err), http.StatusInternalServerError)
		return
	}

	out := make([]*api.Battle, len(battles))
	for i := range battles {
		out[i] = mapping.ToApiBattle(&battles[i])
	}
	writeJSON(w, http.StatusOK, out)
}

// BeginTurn handles the start of a turn submission. On success the pending
// turn marker is set and the caller may sign the contract call.
func (h *BattlesHandler) BeginTurn(w http.ResponseWriter, r *http.Request, battleID string) {
	var begin api.BeginTurnRequest
	if err := json.NewDecoder(r.Body).Decode(&begin); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	if begin.PlayerAddress == "" || begin.Action == "" {
		http.Error(w, "player_address and action are required", http.StatusBadRequest)
		return
	}

	battle, err := h.Store.BeginTurn(r.Context(), battleID, begin.PlayerAddress, begin.Action)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			http.Error(w, "Battle not found", http.StatusNotFound)
		case errors.Is(err, storage.ErrNotAMember):
			http.Error(w, "Player is not part of this battle", http.StatusForbidden)
		case errors.Is(err, storage.ErrNotYourTurn):
			http.Error(w, "It is not this player's turn", http.StatusConflict)
		case errors.Is(err, storage.ErrTurnInFlight):
			http.Error(w, "A turn submission is already in flight", http.StatusConflict)
		case errors.Is(err, storage.ErrInvalidState):
			http.Error(w, "Battle is not active", http.StatusConflict)
		default:
			http.Error(w, fmt.Sprintf("Failed to begin turn: %v", err), http.StatusInternalServerError)
		}
		return
	}

	writeJSON(w, http.StatusOK, mapping.ToApiBattle(battle))
}

// CommitTurn reconciles a ledger-confirmed turn result into the battle.
func (h *BattlesHandler) CommitTurn(w http.ResponseWriter, r *http.Request, battleID string) {
	var commit api.CommitTurnRequest
	if err := json.NewDecoder(r.Body).Decode(&commit); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	if commit.TxRef == "" {
		http.Error(w, "tx_ref is required", http.StatusBadRequest)
		return
	}

	battle, err := h.Store.CommitTurn(r.Context(), battleID, mapping.ToChainTurnResult(&commit.Result), commit.TxRef)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			http.Error(w, "Battle not found", http.StatusNotFound)
		case errors.Is(err, storage.ErrUnresolvedAddress):
			http.Error(w, "Ledger result references an unknown address", http.StatusUnprocessableEntity)
		case errors.Is(err, storage.ErrInvalidState):
			http.Error(w, "No pending turn to commit", http.StatusConflict)
		case errors.Is(err, storage.ErrStaleVersion):
			http.Error(w, "Battle was modified concurrently, retry", http.StatusConflict)
		default:
			http.Error(w, fmt.Sprintf("Failed to commit turn: %v", err), http.StatusInternalServerError)
		}
		return
	}

	event := "turnCommitted"
	if battle.Status == models.BattleFinished {
		event = "battleFinished"
	}
	h.publishBattleUpdate(r.Context(), battle, event)

	writeJSON(w, http.StatusOK, mapping.ToApiBattle(battle))
}

// RevertTurn clears a pending turn after a failed or abandoned submission.
// Only a battle participant may revert; the watchdog bypasses this handler
// and talks to the store directly.
func (h *BattlesHandler) RevertTurn(w http.ResponseWriter, r *http.Request, battleID string) {
	var revert api.RevertTurnRequest
	if err := json.NewDecoder(r.Body).Decode(&revert); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	if revert.PlayerAddress == "" {
		http.Error(w, "player_address is required", http.StatusBadRequest)
		return
	}

	battle, err := h.Store.GetBattle(r.Context(), battleID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			http.Error(w, "Battle not found", http.StatusNotFound)
		} else {
			http.Error(w, fmt.Sprintf("Failed to retrieve battle: %v", err), http.StatusInternalServerError)
		}
		return
	}
	if !battle.HasPlayer(revert.PlayerAddress) {
		http.Error(w, "Player is not part of this battle", http.StatusForbidden)
		return
	}

	if err := h.Store.RevertTurn(r.Context(), battleID, revert.Reason); err != nil {
		http.Error(w, fmt.Sprintf("Failed to revert turn: %v", err), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *BattlesHandler) publishBattleUpdate(ctx context.Context, battle *models.Battle, event string) {
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

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}
