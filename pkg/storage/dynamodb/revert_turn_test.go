package dynamodb

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/nftarena/battle-coordinator/pkg/storage/dynamodb/mocks"
)

func TestRevertTurn(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		mockClient.On("UpdateItem", mock.Anything, mock.Anything).Return(&dynamodb.UpdateItemOutput{}, nil)

		store := newTestStore(mockClient)
		err := store.RevertTurn(context.Background(), "battle-1", "ledger call failed")

		assert.NoError(t, err)
		mockClient.AssertExpectations(t)
	})

	t.Run("Nothing Pending Is A No-Op", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		mockClient.On("UpdateItem", mock.Anything, mock.Anything).Return(nil, &types.ConditionalCheckFailedException{})

		store := newTestStore(mockClient)
		err := store.RevertTurn(context.Background(), "battle-1", "watchdog timeout")

		assert.NoError(t, err)
		mockClient.AssertExpectations(t)
	})

	t.Run("Storage Error", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		mockClient.On("UpdateItem", mock.Anything, mock.Anything).Return(nil, errors.New("some other storage error"))

		store := newTestStore(mockClient)
		err := store.RevertTurn(context.Background(), "battle-1", "watchdog timeout")

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to revert turn")
		mockClient.AssertExpectations(t)
	})
}

func TestRevertTurnMatching(t *testing.T) {
	submittedAt := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	t.Run("Reverts The Observed Submission", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		expectedSubmitted, _ := attributevalue.Marshal(submittedAt)
		mockClient.On("UpdateItem", mock.Anything, mock.MatchedBy(func(input *dynamodb.UpdateItemInput) bool {
			cond := *input.ConditionExpression
			player := input.ExpressionAttributeValues[":player"].(*types.AttributeValueMemberS)
			return cond == "pending_turn.player = :player AND pending_turn.submitted_at = :submitted" &&
				player.Value == "alice" &&
				assert.ObjectsAreEqual(expectedSubmitted, input.ExpressionAttributeValues[":submitted"])
		})).Return(&dynamodb.UpdateItemOutput{}, nil)

		store := newTestStore(mockClient)
		err := store.RevertTurnMatching(context.Background(), "battle-1", "alice", submittedAt, "watchdog timeout")

		assert.NoError(t, err)
		mockClient.AssertExpectations(t)
	})

	t.Run("Changed Submission Is A No-Op", func(t *testing.T) {
		// A commit and a fresh submission landed after the check was
		// enqueued: the conditional write fails and the new turn survives.
		mockClient := new(mocks.DynamoDBAPI)
		mockClient.On("UpdateItem", mock.Anything, mock.Anything).Return(nil, &types.ConditionalCheckFailedException{})

		store := newTestStore(mockClient)
		err := store.RevertTurnMatching(context.Background(), "battle-1", "alice", submittedAt, "watchdog timeout")

		assert.NoError(t, err)
		mockClient.AssertExpectations(t)
	})

	t.Run("Storage Error", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		mockClient.On("UpdateItem", mock.Anything, mock.Anything).Return(nil, errors.New("some other storage error"))

		store := newTestStore(mockClient)
		err := store.RevertTurnMatching(context.Background(), "battle-1", "alice", submittedAt, "watchdog timeout")

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to revert turn")
		mockClient.AssertExpectations(t)
	})
}
