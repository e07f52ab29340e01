package lobbies

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
	chain_mocks "github.com/nftarena/battle-coordinator/pkg/chain/mocks"
	"github.com/nftarena/battle-coordinator/pkg/models"
	"github.com/nftarena/battle-coordinator/pkg/nft"
	nft_mocks "github.com/nftarena/battle-coordinator/pkg/nft/mocks"
	"github.com/nftarena/battle-coordinator/pkg/storage"
	storage_mocks "github.com/nftarena/battle-coordinator/pkg/storage/mocks"
	"github.com/nftarena/battle-coordinator/pkg/websockets"
)

func linkedAccount(primary, secondary string) *models.Account {
	linkedAt := time.Now()
	return &models.Account{
		PrimaryAddress:   primary,
		SecondaryAddress: secondary,
		LinkedAt:         &linkedAt,
		Version:          2,
	}
}

func testStats(speed int64) *models.StatBlock {
	return &models.StatBlock{
		Attack:    10,
		Defense:   8,
		Speed:     speed,
		MaxHealth: 100,
		NFTType:   "goblin",
	}
}

func readyLobby(code string) *models.Lobby {
	now := time.Now()
	return &models.Lobby{
		Code:           code,
		CreatorAddress: "alice",
		JoinerAddress:  "bob",
		Status:         models.LobbyReady,
		Visibility:     models.LobbyPublic,
		CreatorSelection: &models.NFTSelection{
			Collection: "goblins", Item: "42", Ready: true, Stats: testStats(7),
		},
		JoinerSelection: &models.NFTSelection{
			Collection: "trolls", Item: "7", Ready: true, Stats: testStats(5),
		},
		ExpiresAt: now.Add(10 * time.Minute),
		Version:   4,
		CreatedAt: now,
	}
}

func newTestHandler(store *storage_mocks.ApiStore, stats *nft_mocks.StatProvider, chainClient *chain_mocks.Client) *LobbiesHandler {
	return NewLobbiesHandler(store, stats, chainClient, &websockets.NoOpPublisher{})
}

func TestCreateLobby(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockStorage := new(storage_mocks.ApiStore)
		handler := newTestHandler(mockStorage, new(nft_mocks.StatProvider), new(chain_mocks.Client))

		mockStorage.On("GetAccount", mock.Anything, "alice").Return(linkedAccount("alice", "0xaaa"), nil)
		created := &models.Lobby{Code: "ABCDEF", CreatorAddress: "alice", Status: models.LobbyWaiting, Visibility: models.LobbyPublic}
		mockStorage.On("CreateLobby", mock.Anything, "alice", models.LobbyPublic, DefaultLobbyTTL).Return(created, nil)

		body, _ := json.Marshal(api.NewLobby{CreatorAddress: "alice"})
		req := httptest.NewRequest(http.MethodPost, "/lobbies", bytes.NewReader(body))
		rr := httptest.NewRecorder()

		handler.CreateLobby(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)
		var got api.Lobby
		assert.NoError(t, json.NewDecoder(rr.Body).Decode(&got))
		assert.Equal(t, "ABCDEF", got.Code)
		mockStorage.AssertExpectations(t)
	})

	t.Run("Custom TTL And Private Visibility", func(t *testing.T) {
		mockStorage := new(storage_mocks.ApiStore)
		handler := newTestHandler(mockStorage, new(nft_mocks.StatProvider), new(chain_mocks.Client))

		mockStorage.On("GetAccount", mock.Anything, "alice").Return(linkedAccount("alice", "0xaaa"), nil)
		created := &models.Lobby{Code: "ABCDEF", CreatorAddress: "alice", Status: models.LobbyWaiting, Visibility: models.LobbyPrivate}
		mockStorage.On("CreateLobby", mock.Anything, "alice", models.LobbyPrivate, 30*time.Minute).Return(created, nil)

		visibility := string(models.LobbyPrivate)
		ttl := int64(30)
		body, _ := json.Marshal(api.NewLobby{CreatorAddress: "alice", Visibility: &visibility, TTLMinutes: &ttl})
		req := httptest.NewRequest(http.MethodPost, "/lobbies", bytes.NewReader(body))
		rr := httptest.NewRecorder()

		handler.CreateLobby(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)
		mockStorage.AssertExpectations(t)
	})

	t.Run("Unlinked Creator", func(t *testing.T) {
		mockStorage := new(storage_mocks.ApiStore)
		handler := newTestHandler(mockStorage, new(nft_mocks.StatProvider), new(chain_mocks.Client))

		mockStorage.On("GetAccount", mock.Anything, "alice").Return(&models.Account{PrimaryAddress: "alice"}, nil)

		body, _ := json.Marshal(api.NewLobby{CreatorAddress: "alice"})
		req := httptest.NewRequest(http.MethodPost, "/lobbies", bytes.NewReader(body))
		rr := httptest.NewRecorder()

		handler.CreateLobby(rr, req)

		assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
		mockStorage.AssertNotCalled(t, "CreateLobby", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("No Account", func(t *testing.T) {
		mockStorage := new(storage_mocks.ApiStore)
		handler := newTestHandler(mockStorage, new(nft_mocks.StatProvider), new(chain_mocks.Client))

		mockStorage.On("GetAccount", mock.Anything, "ghost").Return(nil, storage.ErrNotFound)

		body, _ := json.Marshal(api.NewLobby{CreatorAddress: "ghost"})
		req := httptest.NewRequest(http.MethodPost, "/lobbies", bytes.NewReader(body))
		rr := httptest.NewRecorder()

		handler.CreateLobby(rr, req)

		assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	})
}

func TestJoinLobby(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockStorage := new(storage_mocks.ApiStore)
		handler := newTestHandler(mockStorage, new(nft_mocks.StatProvider), new(chain_mocks.Client))

		mockStorage.On("GetAccount", mock.Anything, "bob").Return(linkedAccount("bob", "0xbbb"), nil)
		joined := &models.Lobby{Code: "ABCDEF", CreatorAddress: "alice", JoinerAddress: "bob", Status: models.LobbyWaiting}
		mockStorage.On("JoinLobby", mock.Anything, "ABCDEF", "bob").Return(joined, nil)

		body, _ := json.Marshal(api.JoinRequest{JoinerAddress: "bob"})
		req := httptest.NewRequest(http.MethodPost, "/lobbies/ABCDEF/join", bytes.NewReader(body))
		rr := httptest.NewRecorder()

		handler.JoinLobby(rr, req, "ABCDEF")

		assert.Equal(t, http.StatusOK, rr.Code)
		mockStorage.AssertExpectations(t)
	})

	t.Run("Lobby Full", func(t *testing.T) {
		mockStorage := new(storage_mocks.ApiStore)
		handler := newTestHandler(mockStorage, new(nft_mocks.StatProvider), new(chain_mocks.Client))

		mockStorage.On("GetAccount", mock.Anything, "carol").Return(linkedAccount("carol", "0xccc"), nil)
		mockStorage.On("JoinLobby", mock.Anything, "ABCDEF", "carol").Return(nil, storage.ErrLobbyFull)

		body, _ := json.Marshal(api.JoinRequest{JoinerAddress: "carol"})
		req := httptest.NewRequest(http.MethodPost, "/lobbies/ABCDEF/join", bytes.NewReader(body))
		rr := httptest.NewRecorder()

		handler.JoinLobby(rr, req, "ABCDEF")

		assert.Equal(t, http.StatusConflict, rr.Code)
	})

	t.Run("Self Join", func(t *testing.T) {
		mockStorage := new(storage_mocks.ApiStore)
		handler := newTestHandler(mockStorage, new(nft_mocks.StatProvider), new(chain_mocks.Client))

		mockStorage.On("GetAccount", mock.Anything, "alice").Return(linkedAccount("alice", "0xaaa"), nil)
		mockStorage.On("JoinLobby", mock.Anything, "ABCDEF", "alice").Return(nil, storage.ErrSelfJoin)

		body, _ := json.Marshal(api.JoinRequest{JoinerAddress: "alice"})
		req := httptest.NewRequest(http.MethodPost, "/lobbies/ABCDEF/join", bytes.NewReader(body))
		rr := httptest.NewRecorder()

		handler.JoinLobby(rr, req, "ABCDEF")

		assert.Equal(t, http.StatusConflict, rr.Code)
	})
}

func TestSelectNFT(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockStorage := new(storage_mocks.ApiStore)
		mockStats := new(nft_mocks.StatProvider)
		handler := newTestHandler(mockStorage, mockStats, new(chain_mocks.Client))

		stats := testStats(7)
		mockStats.On("GetStats", mock.Anything, "goblins", "42").Return(stats, nil)
		updated := &models.Lobby{Code: "ABCDEF", CreatorAddress: "alice", Status: models.LobbyWaiting}
		mockStorage.On("SelectNFT", mock.Anything, "ABCDEF", mock.MatchedBy(func(p storage.SelectNFTParams) bool {
			return p.Player == "alice" && p.Collection == "goblins" && p.Item == "42" && p.Ready && p.Stats == stats
		})).Return(updated, nil)

		body, _ := json.Marshal(api.SelectRequest{PlayerAddress: "alice", Collection: "goblins", Item: "42", Ready: true})
		req := httptest.NewRequest(http.MethodPost, "/lobbies/ABCDEF/select", bytes.NewReader(body))
		rr := httptest.NewRecorder()

		handler.SelectNFT(rr, req, "ABCDEF")

		assert.Equal(t, http.StatusOK, rr.Code)
		mockStorage.AssertExpectations(t)
		mockStats.AssertExpectations(t)
	})

	t.Run("Stats Unavailable", func(t *testing.T) {
		mockStorage := new(storage_mocks.ApiStore)
		mockStats := new(nft_mocks.StatProvider)
		handler := newTestHandler(mockStorage, mockStats, new(chain_mocks.Client))

		mockStats.On("GetStats", mock.Anything, "goblins", "42").Return(nil, nft.ErrStatsUnavailable)

		body, _ := json.Marshal(api.SelectRequest{PlayerAddress: "alice", Collection: "goblins", Item: "42"})
		req := httptest.NewRequest(http.MethodPost, "/lobbies/ABCDEF/select", bytes.NewReader(body))
		rr := httptest.NewRecorder()

		handler.SelectNFT(rr, req, "ABCDEF")

		assert.Equal(t, http.StatusBadGateway, rr.Code)
		mockStorage.AssertNotCalled(t, "SelectNFT", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Not A Member", func(t *testing.T) {
		mockStorage := new(storage_mocks.ApiStore)
		mockStats := new(nft_mocks.StatProvider)
		handler := newTestHandler(mockStorage, mockStats, new(chain_mocks.Client))

		mockStats.On("GetStats", mock.Anything, "goblins", "42").Return(testStats(7), nil)
		mockStorage.On("SelectNFT", mock.Anything, "ABCDEF", mock.Anything).Return(nil, storage.ErrNotAMember)

		body, _ := json.Marshal(api.SelectRequest{PlayerAddress: "mallory", Collection: "goblins", Item: "42"})
		req := httptest.NewRequest(http.MethodPost, "/lobbies/ABCDEF/select", bytes.NewReader(body))
		rr := httptest.NewRecorder()

		handler.SelectNFT(rr, req, "ABCDEF")

		assert.Equal(t, http.StatusForbidden, rr.Code)
	})
}

func TestCancelLobby(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockStorage := new(storage_mocks.ApiStore)
		handler := newTestHandler(mockStorage, new(nft_mocks.StatProvider), new(chain_mocks.Client))

		mockStorage.On("CancelLobby", mock.Anything, "ABCDEF", "alice").Return(nil)

		body, _ := json.Marshal(api.CancelRequest{CreatorAddress: "alice"})
		req := httptest.NewRequest(http.MethodPost, "/lobbies/ABCDEF/cancel", bytes.NewReader(body))
		rr := httptest.NewRecorder()

		handler.CancelLobby(rr, req, "ABCDEF")

		assert.Equal(t, http.StatusNoContent, rr.Code)
		mockStorage.AssertExpectations(t)
	})

	t.Run("Not Creator", func(t *testing.T) {
		mockStorage := new(storage_mocks.ApiStore)
		handler := newTestHandler(mockStorage, new(nft_mocks.StatProvider), new(chain_mocks.Client))

		mockStorage.On("CancelLobby", mock.Anything, "ABCDEF", "bob").Return(storage.ErrNotAMember)

		body, _ := json.Marshal(api.CancelRequest{CreatorAddress: "bob"})
		req := httptest.NewRequest(http.MethodPost, "/lobbies/ABCDEF/cancel", bytes.NewReader(body))
		rr := httptest.NewRecorder()

		handler.CancelLobby(rr, req, "ABCDEF")

		assert.Equal(t, http.StatusForbidden, rr.Code)
	})
}

func TestPromoteLobby(t *testing.T) {
	promoteBody := func() *bytes.Reader {
		body, _ := json.Marshal(api.PromoteRequest{InitiatorAddress: "alice"})
		return bytes.NewReader(body)
	}

	t.Run("Success", func(t *testing.T) {
		mockStorage := new(storage_mocks.ApiStore)
		mockStats := new(nft_mocks.StatProvider)
		mockChain := new(chain_mocks.Client)
		handler := newTestHandler(mockStorage, mockStats, mockChain)

		lobby := readyLobby("ABCDEF")
		mockStorage.On("GetLobby", mock.Anything, "ABCDEF").Return(lobby, nil)
		mockStats.On("GetStats", mock.Anything, "goblins", "42").Return(testStats(7), nil)
		mockStats.On("GetStats", mock.Anything, "trolls", "7").Return(testStats(5), nil)
		mockStorage.On("GetAccount", mock.Anything, "alice").Return(linkedAccount("alice", "0xAAA"), nil)
		mockStorage.On("GetAccount", mock.Anything, "bob").Return(linkedAccount("bob", "0xbbb"), nil)

		var promoted *models.Battle
		started := &models.Lobby{Code: "ABCDEF", Status: models.LobbyStarted}
		mockStorage.On("PromoteLobby", mock.Anything, "ABCDEF", mock.MatchedBy(func(b *models.Battle) bool {
			promoted = b
			return b.Status == models.BattleInitializing &&
				b.Player1Address == "alice" && b.Player2Address == "bob" &&
				b.Player1Secondary == "0xaaa" && b.Player2Secondary == "0xbbb" &&
				b.CurrentTurn == "alice" && // creator wins the speed tie-break
				b.Player1Health == 100 && b.Player2Health == 100
		})).Return(started, nil)

		mockChain.On("CreateBattle", mock.Anything, mock.MatchedBy(func(p chain.CreateBattleParams) bool {
			return p.Player1Secondary == "0xaaa" && p.Player2Secondary == "0xbbb" &&
				p.Player1MaxHealth == 100 && p.Player2MaxHealth == 100
		})).Return(&chain.CreateBattleResult{ExternalBattleID: "ext-1", TxRef: "0xdeadbeef"}, nil)

		mockStorage.On("ConfirmBattleCreation", mock.Anything, mock.AnythingOfType("string"), "ext-1", "0xdeadbeef").
			Run(func(args mock.Arguments) {
				assert.Equal(t, promoted.ID, args.String(1))
			}).
			Return(&models.Battle{
				ID:               "battle-1",
				ExternalBattleID: "ext-1",
				Player1Address:   "alice",
				Player2Address:   "bob",
				Status:           models.BattleActive,
				CurrentTurn:      "alice",
			}, nil)

		req := httptest.NewRequest(http.MethodPost, "/lobbies/ABCDEF/promote", promoteBody())
		rr := httptest.NewRecorder()

		handler.PromoteLobby(rr, req, "ABCDEF")

		assert.Equal(t, http.StatusCreated, rr.Code)
		var got api.Battle
		assert.NoError(t, json.NewDecoder(rr.Body).Decode(&got))
		assert.Equal(t, "active", got.Status)
		mockStorage.AssertExpectations(t)
		mockChain.AssertExpectations(t)
	})

	t.Run("Faster Joiner Moves First", func(t *testing.T) {
		mockStorage := new(storage_mocks.ApiStore)
		mockStats := new(nft_mocks.StatProvider)
		mockChain := new(chain_mocks.Client)
		handler := newTestHandler(mockStorage, mockStats, mockChain)

		lobby := readyLobby("ABCDEF")
		mockStorage.On("GetLobby", mock.Anything, "ABCDEF").Return(lobby, nil)
		mockStats.On("GetStats", mock.Anything, "goblins", "42").Return(testStats(5), nil)
		mockStats.On("GetStats", mock.Anything, "trolls", "7").Return(testStats(9), nil)
		mockStorage.On("GetAccount", mock.Anything, "alice").Return(linkedAccount("alice", "0xaaa"), nil)
		mockStorage.On("GetAccount", mock.Anything, "bob").Return(linkedAccount("bob", "0xbbb"), nil)

		started := &models.Lobby{Code: "ABCDEF", Status: models.LobbyStarted}
		mockStorage.On("PromoteLobby", mock.Anything, "ABCDEF", mock.MatchedBy(func(b *models.Battle) bool {
			return b.CurrentTurn == "bob"
		})).Return(started, nil)
		mockChain.On("CreateBattle", mock.Anything, mock.Anything).
			Return(&chain.CreateBattleResult{ExternalBattleID: "ext-2", TxRef: "0xbeef"}, nil)
		mockStorage.On("ConfirmBattleCreation", mock.Anything, mock.Anything, "ext-2", "0xbeef").
			Return(&models.Battle{ID: "battle-2", Status: models.BattleActive}, nil)

		req := httptest.NewRequest(http.MethodPost, "/lobbies/ABCDEF/promote", promoteBody())
		rr := httptest.NewRecorder()

		handler.PromoteLobby(rr, req, "ABCDEF")

		assert.Equal(t, http.StatusCreated, rr.Code)
		mockStorage.AssertExpectations(t)
	})

	t.Run("Ledger Failure Abandons Battle", func(t *testing.T) {
		mockStorage := new(storage_mocks.ApiStore)
		mockStats := new(nft_mocks.StatProvider)
		mockChain := new(chain_mocks.Client)
		handler := newTestHandler(mockStorage, mockStats, mockChain)

		lobby := readyLobby("ABCDEF")
		mockStorage.On("GetLobby", mock.Anything, "ABCDEF").Return(lobby, nil)
		mockStats.On("GetStats", mock.Anything, "goblins", "42").Return(testStats(7), nil)
		mockStats.On("GetStats", mock.Anything, "trolls", "7").Return(testStats(5), nil)
		mockStorage.On("GetAccount", mock.Anything, "alice").Return(linkedAccount("alice", "0xaaa"), nil)
		mockStorage.On("GetAccount", mock.Anything, "bob").Return(linkedAccount("bob", "0xbbb"), nil)
		mockStorage.On("PromoteLobby", mock.Anything, "ABCDEF", mock.Anything).
			Return(&models.Lobby{Code: "ABCDEF", Status: models.LobbyStarted}, nil)
		mockChain.On("CreateBattle", mock.Anything, mock.Anything).Return(nil, chain.ErrLedgerFailure)
		mockStorage.On("AbortBattleCreation", mock.Anything, mock.AnythingOfType("string"), mock.AnythingOfType("string")).Return(nil)

		req := httptest.NewRequest(http.MethodPost, "/lobbies/ABCDEF/promote", promoteBody())
		rr := httptest.NewRecorder()

		handler.PromoteLobby(rr, req, "ABCDEF")

		assert.Equal(t, http.StatusBadGateway, rr.Code)
		mockStorage.AssertCalled(t, "AbortBattleCreation", mock.Anything, mock.AnythingOfType("string"), mock.AnythingOfType("string"))
		mockStorage.AssertNotCalled(t, "ConfirmBattleCreation", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Not Ready", func(t *testing.T) {
		mockStorage := new(storage_mocks.ApiStore)
		handler := newTestHandler(mockStorage, new(nft_mocks.StatProvider), new(chain_mocks.Client))

		lobby := readyLobby("ABCDEF")
		lobby.Status = models.LobbyWaiting
		mockStorage.On("GetLobby", mock.Anything, "ABCDEF").Return(lobby, nil)

		req := httptest.NewRequest(http.MethodPost, "/lobbies/ABCDEF/promote", promoteBody())
		rr := httptest.NewRecorder()

		handler.PromoteLobby(rr, req, "ABCDEF")

		assert.Equal(t, http.StatusConflict, rr.Code)
		mockStorage.AssertNotCalled(t, "PromoteLobby", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Not A Member", func(t *testing.T) {
		mockStorage := new(storage_mocks.ApiStore)
		handler := newTestHandler(mockStorage, new(nft_mocks.StatProvider), new(chain_mocks.Client))

		mockStorage.On("GetLobby", mock.Anything, "ABCDEF").Return(readyLobby("ABCDEF"), nil)

		body, _ := json.Marshal(api.PromoteRequest{InitiatorAddress: "mallory"})
		req := httptest.NewRequest(http.MethodPost, "/lobbies/ABCDEF/promote", bytes.NewReader(body))
		rr := httptest.NewRecorder()

		handler.PromoteLobby(rr, req, "ABCDEF")

		assert.Equal(t, http.StatusForbidden, rr.Code)
	})

	t.Run("Unlinked Joiner", func(t *testing.T) {
		mockStorage := new(storage_mocks.ApiStore)
		mockStats := new(nft_mocks.StatProvider)
		handler := newTestHandler(mockStorage, mockStats, new(chain_mocks.Client))

		lobby := readyLobby("ABCDEF")
		mockStorage.On("GetLobby", mock.Anything, "ABCDEF").Return(lobby, nil)
		mockStats.On("GetStats", mock.Anything, "goblins", "42").Return(testStats(7), nil)
		mockStats.On("GetStats", mock.Anything, "trolls", "7").Return(testStats(5), nil)
		mockStorage.On("GetAccount", mock.Anything, "alice").Return(linkedAccount("alice", "0xaaa"), nil)
		mockStorage.On("GetAccount", mock.Anything, "bob").Return(&models.Account{PrimaryAddress: "bob"}, nil)

		req := httptest.NewRequest(http.MethodPost, "/lobbies/ABCDEF/promote", promoteBody())
		rr := httptest.NewRecorder()

		handler.PromoteLobby(rr, req, "ABCDEF")

		assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
		mockStorage.AssertNotCalled(t, "PromoteLobby", mock.Anything, mock.Anything, mock.Anything)
	})
}
