package dynamodb

import (
	"context"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/nftarena/battle-coordinator/pkg/models"
	"github.com/nftarena/battle-coordinator/pkg/storage"
	"github.com/nftarena/battle-coordinator/pkg/storage/dynamodb/mocks"
)

func TestGetBattle(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		battleAV, _ := attributevalue.MarshalMap(activeBattle())
		mockClient.On("GetItem", mock.Anything, mock.Anything).Return(&dynamodb.GetItemOutput{Item: battleAV}, nil)

		store := newTestStore(mockClient)
		battle, err := store.GetBattle(context.Background(), "battle-1")

		assert.NoError(t, err)
		assert.Equal(t, "battle-1", battle.ID)
		assert.Equal(t, models.BattleActive, battle.Status)
		mockClient.AssertExpectations(t)
	})

	t.Run("Not Found", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Return(&dynamodb.GetItemOutput{Item: nil}, nil)

		store := newTestStore(mockClient)
		_, err := store.GetBattle(context.Background(), "battle-1")

		assert.ErrorIs(t, err, storage.ErrNotFound)
		mockClient.AssertExpectations(t)
	})
}

func TestListBattlesByPlayer(t *testing.T) {
	mockClient := new(mocks.DynamoDBAPI)
	battleAV, _ := attributevalue.MarshalMap(activeBattle())
	mockClient.On("Query", mock.Anything, mock.MatchedBy(func(input *dynamodb.QueryInput) bool {
		return *input.IndexName == playerOneGSI &&
			*input.KeyConditionExpression == "player1_address = :addr"
	})).Return(&dynamodb.QueryOutput{
		Items: []map[string]types.AttributeValue{battleAV},
	}, nil)
	mockClient.On("Query", mock.Anything, mock.MatchedBy(func(input *dynamodb.QueryInput) bool {
		return *input.IndexName == playerTwoGSI &&
			*input.KeyConditionExpression == "player2_address = :addr"
	})).Return(&dynamodb.QueryOutput{}, nil)

	store := newTestStore(mockClient)
	battles, err := store.ListBattlesByPlayer(context.Background(), "alice")

	assert.NoError(t, err)
	assert.Len(t, battles, 1)
	mockClient.AssertExpectations(t)
}

func TestGetStuckBattles(t *testing.T) {
	mockClient := new(mocks.DynamoDBAPI)
	b := activeBattle()
	b.PendingTurn = &models.PendingTurn{Player: "alice", SubmittedAt: time.Now().Add(-time.Hour)}
	battleAV, _ := attributevalue.MarshalMap(b)
	mockClient.On("Query", mock.Anything, mock.MatchedBy(func(input *dynamodb.QueryInput) bool {
		return *input.IndexName == battleStatusGSI &&
			*input.KeyConditionExpression == "#status = :active"
	})).Return(&dynamodb.QueryOutput{
		Items: []map[string]types.AttributeValue{battleAV},
	}, nil)

	store := newTestStore(mockClient)
	battles, err := store.GetStuckBattles(context.Background(), WatchdogGrace)

	assert.NoError(t, err)
	assert.Len(t, battles, 1)
	assert.NotNil(t, battles[0].PendingTurn)
	mockClient.AssertExpectations(t)
}

func TestConfirmBattleCreation(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		confirmed := activeBattle()
		confirmed.ExternalBattleID = "ext-9"
		confirmedAV, _ := attributevalue.MarshalMap(confirmed)
		mockClient.On("UpdateItem", mock.Anything, mock.Anything).Return(&dynamodb.UpdateItemOutput{}, nil)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Return(&dynamodb.GetItemOutput{Item: confirmedAV}, nil)

		store := newTestStore(mockClient)
		battle, err := store.ConfirmBattleCreation(context.Background(), "battle-1", "ext-9", "tx-create")

		assert.NoError(t, err)
		assert.Equal(t, models.BattleActive, battle.Status)
		assert.Equal(t, "ext-9", battle.ExternalBattleID)
		mockClient.AssertExpectations(t)
	})

	t.Run("Not Initializing", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		mockClient.On("UpdateItem", mock.Anything, mock.Anything).Return(nil, &types.ConditionalCheckFailedException{})

		store := newTestStore(mockClient)
		_, err := store.ConfirmBattleCreation(context.Background(), "battle-1", "ext-9", "tx-create")

		assert.ErrorIs(t, err, storage.ErrInvalidState)
		mockClient.AssertExpectations(t)
	})
}

func TestAbortBattleCreation(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		mockClient.On("UpdateItem", mock.Anything, mock.Anything).Return(&dynamodb.UpdateItemOutput{}, nil)

		store := newTestStore(mockClient)
		err := store.AbortBattleCreation(context.Background(), "battle-1", "ledger create failed")

		assert.NoError(t, err)
		mockClient.AssertExpectations(t)
	})

	t.Run("Not Initializing", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		mockClient.On("UpdateItem", mock.Anything, mock.Anything).Return(nil, &types.ConditionalCheckFailedException{})

		store := newTestStore(mockClient)
		err := store.AbortBattleCreation(context.Background(), "battle-1", "ledger create failed")

		assert.ErrorIs(t, err, storage.ErrInvalidState)
		mockClient.AssertExpectations(t)
	})
}
