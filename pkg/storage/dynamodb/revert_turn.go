package dynamodb

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// RevertTurn clears the pending-turn lock without touching combat state.
// It is idempotent: reverting a battle with no pending turn succeeds, so a
// client-reported failure and the watchdog check can both fire for the same
// submission without harm.
func (s *Store) RevertTurn(ctx context.Context, battleID, reason string) error {
	now := time.Now()
	nowAV, err := attributevalue.Marshal(now)
	if err != nil {
		return fmt.Errorf("failed to marshal timestamp for revert: %w", err)
	}

	input := &dynamodb.UpdateItemInput{
		TableName: aws.String(s.BattlesTableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: battleID},
		},
		UpdateExpression:    aws.String("REMOVE pending_turn SET updated_at = :now, version = version + :inc"),
		ConditionExpression: aws.String("attribute_exists(id) AND attribute_exists(pending_turn)"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":now": nowAV,
			":inc": &types.AttributeValueMemberN{Value: "1"},
		},
	}

	_, err = s.Client.UpdateItem(ctx, input)
	if err != nil {
		var condCheckFailed *types.ConditionalCheckFailedException
		if errors.As(err, &condCheckFailed) {
			// Nothing pending (or the battle is gone): the commit or an
			// earlier revert already cleared it.
			return nil
		}
		return fmt.Errorf("failed to revert turn: %w", err)
	}

	slog.Info("reverted pending turn", "battle_id", battleID, "reason", reason)
	return nil
}

// RevertTurnMatching clears the pending turn only if the submission on the
// record is still the one observed: same player, same submission timestamp.
// The watchdog uses it so a commit followed by a fresh submission landing
// between its read and its revert is left untouched. A non-matching (or
// absent) pending turn is an idempotent no-op.
func (s *Store) RevertTurnMatching(ctx context.Context, battleID, player string, submittedAt time.Time, reason string) error {
	now := time.Now()
	nowAV, err := attributevalue.Marshal(now)
	if err != nil {
		return fmt.Errorf("failed to marshal timestamp for revert: %w", err)
	}
	submittedAV, err := attributevalue.Marshal(submittedAt)
	if err != nil {
		return fmt.Errorf("failed to marshal observed submission time: %w", err)
	}

	input := &dynamodb.UpdateItemInput{
		TableName: aws.String(s.BattlesTableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: battleID},
		},
		UpdateExpression:    aws.String("REMOVE pending_turn SET updated_at = :now, version = version + :inc"),
		ConditionExpression: aws.String("pending_turn.player = :player AND pending_turn.submitted_at = :submitted"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":now":       nowAV,
			":inc":       &types.AttributeValueMemberN{Value: "1"},
			":player":    &types.AttributeValueMemberS{Value: player},
			":submitted": submittedAV,
		},
	}

	_, err = s.Client.UpdateItem(ctx, input)
	if err != nil {
		var condCheckFailed *types.ConditionalCheckFailedException
		if errors.As(err, &condCheckFailed) {
			// The submission changed under us: it committed, reverted, or a
			// new turn began. Leave the record alone.
			return nil
		}
		return fmt.Errorf("failed to revert turn: %w", err)
	}

	slog.Info("reverted pending turn", "battle_id", battleID, "player", player, "reason", reason)
	return nil
}
