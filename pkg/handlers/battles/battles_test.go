package battles

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/nftarena/battle-coordinator/pkg/api"
	"github.com/nftarena/battle-coordinator/pkg/chain"
	"github.com/nftarena/battle-coordinator/pkg/models"
	"github.com/nftarena/battle-coordinator/pkg/storage"
	storage_mocks "github.com/nftarena/battle-coordinator/pkg/storage/mocks"
	"github.com/nftarena/battle-coordinator/pkg/websockets"
)

func activeBattle() *models.Battle {
	now := time.Now()
	return &models.Battle{
		ID:               "battle-1",
		ExternalBattleID: "ext-1",
		Player1Address:   "alice",
		Player2Address:   "bob",
		Player1Secondary: "0xaaa",
		Player2Secondary: "0xbbb",
		CurrentTurn:      "alice",
		Player1Health:    90,
		Player2Health:    80,
		Player1MaxHealth: 100,
		Player2MaxHealth: 100,
		TurnNumber:       4,
		Status:           models.BattleActive,
		Moves:            []models.Move{},
		Version:          5,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

func TestGetBattleById(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockStorage := new(storage_mocks.ApiStore)
		handler := NewBattlesHandler(mockStorage, &websockets.NoOpPublisher{})

		mockStorage.On("GetBattle", mock.Anything, "battle-1").Return(activeBattle(), nil)

		req := httptest.NewRequest(http.MethodGet, "/battles/battle-1", nil)
		rr := httptest.NewRecorder()

		handler.GetBattleById(rr, req, "battle-1")

		assert.Equal(t, http.StatusOK, rr.Code)
		var got api.Battle
		assert.NoError(t, json.NewDecoder(rr.Body).Decode(&got))
		assert.Equal(t, "battle-1", got.ID)
		assert.Equal(t, "alice", got.CurrentTurn)
	})

	t.Run("Not Found", func(t *testing.T) {
		mockStorage := new(storage_mocks.ApiStore)
		handler := NewBattlesHandler(mockStorage, &websockets.NoOpPublisher{})

		mockStorage.On("GetBattle", mock.Anything, "missing").Return(nil, storage.ErrNotFound)

		req := httptest.NewRequest(http.MethodGet, "/battles/missing", nil)
		rr := httptest.NewRecorder()

		handler.GetBattleById(rr, req, "missing")

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestListBattlesByPlayer(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockStorage := new(storage_mocks.ApiStore)
		handler := NewBattlesHandler(mockStorage, &websockets.NoOpPublisher{})

		mockStorage.On("ListBattlesByPlayer", mock.Anything, "alice").Return([]models.Battle{*activeBattle()}, nil)

		req := httptest.NewRequest(http.MethodGet, "/players/alice/battles", nil)
		rr := httptest.NewRecorder()

		handler.ListBattlesByPlayer(rr, req, "alice")

		assert.Equal(t, http.StatusOK, rr.Code)
		var got []api.Battle
		assert.NoError(t, json.NewDecoder(rr.Body).Decode(&got))
		assert.Len(t, got, 1)
	})
}

func TestBeginTurn(t *testing.T) {
	beginBody := func() *bytes.Reader {
		body, _ := json.Marshal(api.BeginTurnRequest{PlayerAddress: "alice", Action: "attack"})
		return bytes.NewReader(body)
	}

	t.Run("Success", func(t *testing.T) {
		mockStorage := new(storage_mocks.ApiStore)
		handler := NewBattlesHandler(mockStorage, &websockets.NoOpPublisher{})

		battle := activeBattle()
		battle.PendingTurn = &models.PendingTurn{Player: "alice", Action: "attack", SubmittedAt: time.Now()}
		mockStorage.On("BeginTurn", mock.Anything, "battle-1", "alice", "attack").Return(battle, nil)

		req := httptest.NewRequest(http.MethodPost, "/battles/battle-1/turns", beginBody())
		rr := httptest.NewRecorder()

		handler.BeginTurn(rr, req, "battle-1")

		assert.Equal(t, http.StatusOK, rr.Code)
		var got api.Battle
		assert.NoError(t, json.NewDecoder(rr.Body).Decode(&got))
		if assert.NotNil(t, got.PendingTurn) {
			assert.Equal(t, "alice", got.PendingTurn.Player)
		}
		mockStorage.AssertExpectations(t)
	})

	t.Run("Not Your Turn", func(t *testing.T) {
		mockStorage := new(storage_mocks.ApiStore)
		handler := NewBattlesHandler(mockStorage, &websockets.NoOpPublisher{})

		mockStorage.On("BeginTurn", mock.Anything, "battle-1", "alice", "attack").Return(nil, storage.ErrNotYourTurn)

		req := httptest.NewRequest(http.MethodPost, "/battles/battle-1/turns", beginBody())
		rr := httptest.NewRecorder()

		handler.BeginTurn(rr, req, "battle-1")

		assert.Equal(t, http.StatusConflict, rr.Code)
	})

	t.Run("Turn In Flight", func(t *testing.T) {
		mockStorage := new(storage_mocks.ApiStore)
		handler := NewBattlesHandler(mockStorage, &websockets.NoOpPublisher{})

		mockStorage.On("BeginTurn", mock.Anything, "battle-1", "alice", "attack").Return(nil, storage.ErrTurnInFlight)

		req := httptest.NewRequest(http.MethodPost, "/battles/battle-1/turns", beginBody())
		rr := httptest.NewRecorder()

		handler.BeginTurn(rr, req, "battle-1")

		assert.Equal(t, http.StatusConflict, rr.Code)
	})

	t.Run("Not A Member", func(t *testing.T) {
		mockStorage := new(storage_mocks.ApiStore)
		handler := NewBattlesHandler(mockStorage, &websockets.NoOpPublisher{})

		body, _ := json.Marshal(api.BeginTurnRequest{PlayerAddress: "mallory", Action: "attack"})
		mockStorage.On("BeginTurn", mock.Anything, "battle-1", "mallory", "attack").Return(nil, storage.ErrNotAMember)

		req := httptest.NewRequest(http.MethodPost, "/battles/battle-1/turns", bytes.NewReader(body))
		rr := httptest.NewRecorder()

		handler.BeginTurn(rr, req, "battle-1")

		assert.Equal(t, http.StatusForbidden, rr.Code)
	})

	t.Run("Missing Action", func(t *testing.T) {
		mockStorage := new(storage_mocks.ApiStore)
		handler := NewBattlesHandler(mockStorage, &websockets.NoOpPublisher{})

		body, _ := json.Marshal(api.BeginTurnRequest{PlayerAddress: "alice"})
		req := httptest.NewRequest(http.MethodPost, "/battles/battle-1/turns", bytes.NewReader(body))
		rr := httptest.NewRecorder()

		handler.BeginTurn(rr, req, "battle-1")

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		mockStorage.AssertNotCalled(t, "BeginTurn", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestCommitTurn(t *testing.T) {
	commitBody := func() *bytes.Reader {
		body, _ := json.Marshal(api.CommitTurnRequest{
			TxRef: "0xdeadbeef",
			Result: api.TurnResult{
				Player1Health: 90,
				Player2Health: 65,
				TurnCount:     5,
			},
		})
		return bytes.NewReader(body)
	}

	t.Run("Success", func(t *testing.T) {
		mockStorage := new(storage_mocks.ApiStore)
		handler := NewBattlesHandler(mockStorage, &websockets.NoOpPublisher{})

		committed := activeBattle()
		committed.Player2Health = 65
		committed.TurnNumber = 5
		committed.CurrentTurn = "bob"
		mockStorage.On("CommitTurn", mock.Anything, "battle-1", mock.MatchedBy(func(r *chain.TurnResult) bool {
			return r.TurnCount == 5 && r.Player2Health == 65
		}), "0xdeadbeef").Return(committed, nil)

		req := httptest.NewRequest(http.MethodPost, "/battles/battle-1/turns/commit", commitBody())
		rr := httptest.NewRecorder()

		handler.CommitTurn(rr, req, "battle-1")

		assert.Equal(t, http.StatusOK, rr.Code)
		var got api.Battle
		assert.NoError(t, json.NewDecoder(rr.Body).Decode(&got))
		assert.Equal(t, "bob", got.CurrentTurn)
		assert.Equal(t, int64(5), got.TurnNumber)
		mockStorage.AssertExpectations(t)
	})

	t.Run("Missing TxRef", func(t *testing.T) {
		mockStorage := new(storage_mocks.ApiStore)
		handler := NewBattlesHandler(mockStorage, &websockets.NoOpPublisher{})

		body, _ := json.Marshal(api.CommitTurnRequest{Result: api.TurnResult{TurnCount: 5}})
		req := httptest.NewRequest(http.MethodPost, "/battles/battle-1/turns/commit", bytes.NewReader(body))
		rr := httptest.NewRecorder()

		handler.CommitTurn(rr, req, "battle-1")

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		mockStorage.AssertNotCalled(t, "CommitTurn", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("No Pending Turn", func(t *testing.T) {
		mockStorage := new(storage_mocks.ApiStore)
		handler := NewBattlesHandler(mockStorage, &websockets.NoOpPublisher{})

		mockStorage.On("CommitTurn", mock.Anything, "battle-1", mock.Anything, "0xdeadbeef").
			Return(nil, storage.ErrInvalidState)

		req := httptest.NewRequest(http.MethodPost, "/battles/battle-1/turns/commit", commitBody())
		rr := httptest.NewRecorder()

		handler.CommitTurn(rr, req, "battle-1")

		assert.Equal(t, http.StatusConflict, rr.Code)
	})

	t.Run("Unresolved Address", func(t *testing.T) {
		mockStorage := new(storage_mocks.ApiStore)
		handler := NewBattlesHandler(mockStorage, &websockets.NoOpPublisher{})

		mockStorage.On("CommitTurn", mock.Anything, "battle-1", mock.Anything, "0xdeadbeef").
			Return(nil, storage.ErrUnresolvedAddress)

		req := httptest.NewRequest(http.MethodPost, "/battles/battle-1/turns/commit", commitBody())
		rr := httptest.NewRecorder()

		handler.CommitTurn(rr, req, "battle-1")

		assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	})
}

func TestRevertTurn(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockStorage := new(storage_mocks.ApiStore)
		handler := NewBattlesHandler(mockStorage, &websockets.NoOpPublisher{})

		mockStorage.On("GetBattle", mock.Anything, "battle-1").Return(activeBattle(), nil)
		mockStorage.On("RevertTurn", mock.Anything, "battle-1", "wallet rejected").Return(nil)

		body, _ := json.Marshal(api.RevertTurnRequest{PlayerAddress: "alice", Reason: "wallet rejected"})
		req := httptest.NewRequest(http.MethodPost, "/battles/battle-1/turns/revert", bytes.NewReader(body))
		rr := httptest.NewRecorder()

		handler.RevertTurn(rr, req, "battle-1")

		assert.Equal(t, http.StatusNoContent, rr.Code)
		mockStorage.AssertExpectations(t)
	})

	t.Run("Not A Member", func(t *testing.T) {
		mockStorage := new(storage_mocks.ApiStore)
		handler := NewBattlesHandler(mockStorage, &websockets.NoOpPublisher{})

		mockStorage.On("GetBattle", mock.Anything, "battle-1").Return(activeBattle(), nil)

		body, _ := json.Marshal(api.RevertTurnRequest{PlayerAddress: "mallory", Reason: "griefing"})
		req := httptest.NewRequest(http.MethodPost, "/battles/battle-1/turns/revert", bytes.NewReader(body))
		rr := httptest.NewRecorder()

		handler.RevertTurn(rr, req, "battle-1")

		assert.Equal(t, http.StatusForbidden, rr.Code)
		mockStorage.AssertNotCalled(t, "RevertTurn", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Missing Player", func(t *testing.T) {
		mockStorage := new(storage_mocks.ApiStore)
		handler := NewBattlesHandler(mockStorage, &websockets.NoOpPublisher{})

		body, _ := json.Marshal(api.RevertTurnRequest{Reason: "wallet rejected"})
		req := httptest.NewRequest(http.MethodPost, "/battles/battle-1/turns/revert", bytes.NewReader(body))
		rr := httptest.NewRecorder()

		handler.RevertTurn(rr, req, "battle-1")

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		mockStorage.AssertNotCalled(t, "RevertTurn", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Battle Not Found", func(t *testing.T) {
		mockStorage := new(storage_mocks.ApiStore)
		handler := NewBattlesHandler(mockStorage, &websockets.NoOpPublisher{})

		mockStorage.On("GetBattle", mock.Anything, "missing").Return(nil, storage.ErrNotFound)

		body, _ := json.Marshal(api.RevertTurnRequest{PlayerAddress: "alice"})
		req := httptest.NewRequest(http.MethodPost, "/battles/missing/turns/revert", bytes.NewReader(body))
		rr := httptest.NewRecorder()

		handler.RevertTurn(rr, req, "missing")

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}
