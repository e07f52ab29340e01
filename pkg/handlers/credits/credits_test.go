package credits

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/nftarena/battle-coordinator/pkg/api"
	"github.com/nftarena/battle-coordinator/pkg/models"
	storage_mocks "github.com/nftarena/battle-coordinator/pkg/storage/mocks"
)

func TestListCreditEntries(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockStorage := new(storage_mocks.ApiStore)
		handler := NewCreditsHandler(mockStorage)

		entries := []models.CreditEntry{{
			EntryID:     "reward#battle-1",
			BattleID:    "battle-1",
			AccountID:   "alice",
			Credit:      models.WinReward,
			Description: "Victory reward for battle battle-1",
			Timestamp:   time.Now(),
		}}
		mockStorage.On("ListCreditEntries", mock.Anything, int32(defaultListLimit)).Return(entries, nil)

		req := httptest.NewRequest(http.MethodGet, "/credits", nil)
		rr := httptest.NewRecorder()

		handler.ListCreditEntries(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		var got []api.CreditEntry
		assert.NoError(t, json.NewDecoder(rr.Body).Decode(&got))
		assert.Len(t, got, 1)
		assert.Equal(t, models.WinReward, got[0].Credit)
	})

	t.Run("Custom Limit", func(t *testing.T) {
		mockStorage := new(storage_mocks.ApiStore)
		handler := NewCreditsHandler(mockStorage)

		mockStorage.On("ListCreditEntries", mock.Anything, int32(5)).Return([]models.CreditEntry{}, nil)

		req := httptest.NewRequest(http.MethodGet, "/credits?limit=5", nil)
		rr := httptest.NewRecorder()

		handler.ListCreditEntries(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		mockStorage.AssertExpectations(t)
	})

	t.Run("Invalid Limit", func(t *testing.T) {
		mockStorage := new(storage_mocks.ApiStore)
		handler := NewCreditsHandler(mockStorage)

		req := httptest.NewRequest(http.MethodGet, "/credits?limit=nope", nil)
		rr := httptest.NewRecorder()

		handler.ListCreditEntries(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		mockStorage.AssertNotCalled(t, "ListCreditEntries", mock.Anything, mock.Anything)
	})
}
