package dynamodb

import (
	"context"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/nftarena/battle-coordinator/pkg/models"
	"github.com/nftarena/battle-coordinator/pkg/storage"
	"github.com/nftarena/battle-coordinator/pkg/storage/dynamodb/mocks"
)

func TestSelectNFT(t *testing.T) {
	params := storage.SelectNFTParams{
		Player:     "alice",
		Collection: "goblins",
		Item:       "42",
		Ready:      true,
	}

	t.Run("Success", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		lobby := waitingLobby("ABCDEF", time.Now().Add(time.Hour))
		lobby.JoinerAddress = "bob"
		lobbyAV, _ := attributevalue.MarshalMap(lobby)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Return(&dynamodb.GetItemOutput{Item: lobbyAV}, nil)
		mockClient.On("UpdateItem", mock.Anything, mock.Anything).Return(&dynamodb.UpdateItemOutput{}, nil)

		store := newTestStore(mockClient)
		updated, err := store.SelectNFT(context.Background(), "ABCDEF", params)

		assert.NoError(t, err)
		assert.True(t, updated.CreatorSelection.Ready)
		// The joiner has not picked yet, so the lobby stays waiting.
		assert.Equal(t, models.LobbyWaiting, updated.Status)
		mockClient.AssertExpectations(t)
	})

	t.Run("Both Ready Derives Ready", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		lobby := waitingLobby("ABCDEF", time.Now().Add(time.Hour))
		lobby.JoinerAddress = "bob"
		lobby.JoinerSelection = &models.NFTSelection{Collection: "dragons", Item: "7", Ready: true}
		lobbyAV, _ := attributevalue.MarshalMap(lobby)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Return(&dynamodb.GetItemOutput{Item: lobbyAV}, nil)
		mockClient.On("UpdateItem", mock.Anything, mock.Anything).Return(&dynamodb.UpdateItemOutput{}, nil)

		store := newTestStore(mockClient)
		updated, err := store.SelectNFT(context.Background(), "ABCDEF", params)

		assert.NoError(t, err)
		assert.Equal(t, models.LobbyReady, updated.Status)
		mockClient.AssertExpectations(t)
	})

	t.Run("Changing NFT Drops Ready", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		lobby := waitingLobby("ABCDEF", time.Now().Add(time.Hour))
		lobby.JoinerAddress = "bob"
		lobby.CreatorSelection = &models.NFTSelection{Collection: "goblins", Item: "1", Ready: true}
		lobbyAV, _ := attributevalue.MarshalMap(lobby)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Return(&dynamodb.GetItemOutput{Item: lobbyAV}, nil)
		mockClient.On("UpdateItem", mock.Anything, mock.Anything).Return(&dynamodb.UpdateItemOutput{}, nil)

		store := newTestStore(mockClient)
		updated, err := store.SelectNFT(context.Background(), "ABCDEF", params)

		assert.NoError(t, err)
		// Ready was requested, but the fighter changed from item 1 to 42.
		assert.False(t, updated.CreatorSelection.Ready)
		assert.Equal(t, models.LobbyWaiting, updated.Status)
		mockClient.AssertExpectations(t)
	})

	t.Run("Ready Up Without Change Sticks", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		lobby := waitingLobby("ABCDEF", time.Now().Add(time.Hour))
		lobby.JoinerAddress = "bob"
		lobby.CreatorSelection = &models.NFTSelection{Collection: "goblins", Item: "42", Ready: false}
		lobbyAV, _ := attributevalue.MarshalMap(lobby)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Return(&dynamodb.GetItemOutput{Item: lobbyAV}, nil)
		mockClient.On("UpdateItem", mock.Anything, mock.Anything).Return(&dynamodb.UpdateItemOutput{}, nil)

		store := newTestStore(mockClient)
		updated, err := store.SelectNFT(context.Background(), "ABCDEF", params)

		assert.NoError(t, err)
		assert.True(t, updated.CreatorSelection.Ready)
		mockClient.AssertExpectations(t)
	})

	t.Run("Not A Member", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		lobby := waitingLobby("ABCDEF", time.Now().Add(time.Hour))
		lobbyAV, _ := attributevalue.MarshalMap(lobby)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Return(&dynamodb.GetItemOutput{Item: lobbyAV}, nil)

		store := newTestStore(mockClient)
		outsider := params
		outsider.Player = "mallory"
		_, err := store.SelectNFT(context.Background(), "ABCDEF", outsider)

		assert.ErrorIs(t, err, storage.ErrNotAMember)
		mockClient.AssertExpectations(t)
	})

	t.Run("Started Lobby Rejects Selection", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		lobby := waitingLobby("ABCDEF", time.Now().Add(time.Hour))
		lobby.Status = models.LobbyStarted
		lobbyAV, _ := attributevalue.MarshalMap(lobby)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Return(&dynamodb.GetItemOutput{Item: lobbyAV}, nil)

		store := newTestStore(mockClient)
		_, err := store.SelectNFT(context.Background(), "ABCDEF", params)

		assert.ErrorIs(t, err, storage.ErrInvalidState)
		mockClient.AssertExpectations(t)
	})
}
