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

	"github.com/nftarena/battle-coordinator/pkg/models"
	"github.com/nftarena/battle-coordinator/pkg/scheduler"
	"github.com/nftarena/battle-coordinator/pkg/storage"
)

// WatchdogGrace is how long a pending turn may stay in flight before the
// watchdog reverts it. Ledger calls take seconds; minutes means the client
// is gone.
const WatchdogGrace = 5 * time.Minute

// BeginTurn marks a turn submission in flight. The pending_turn attribute is
// the single-flight lock: its absence is part of the write condition, so two
// concurrent submissions cannot both succeed.
func (s *Store) BeginTurn(ctx context.Context, battleID, player, action string) (*models.Battle, error) {
	// 1. Pre-read so callers get a specific error instead of a bare
	// conditional-check failure.
	battle, err := s.GetBattle(ctx, battleID)
	if err != nil {
		return nil, err
	}

	if battle.Status != models.BattleActive {
		return nil, fmt.Errorf("%w: battle %s is %s", storage.ErrInvalidState, battleID, battle.Status)
	}
	if !battle.HasPlayer(player) {
		return nil, storage.ErrNotAMember
	}
	if battle.CurrentTurn != player {
		return nil, storage.ErrNotYourTurn
	}
	if battle.PendingTurn != nil {
		return nil, storage.ErrTurnInFlight
	}

	now := time.Now()
	pending := &models.PendingTurn{
		Player:      player,
		Action:      action,
		SubmittedAt: now,
	}

	pendingAV, err := attributevalue.Marshal(pending)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal pending turn: %w", err)
	}
	nowAV, err := attributevalue.Marshal(now)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal timestamp for turn start: %w", err)
	}

	// 2. Set the lock conditionally on the state the pre-read observed.
	input := &dynamodb.UpdateItemInput{
		TableName: aws.String(s.BattlesTableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: battleID},
		},
		UpdateExpression:    aws.String("SET pending_turn = :pending, updated_at = :now, version = version + :inc"),
		ConditionExpression: aws.String("#status = :active AND current_turn = :player AND attribute_not_exists(pending_turn) AND version = :version"),
		ExpressionAttributeNames: map[string]string{
			"#status": "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pending": pendingAV,
			":now":     nowAV,
			":active":  &types.AttributeValueMemberS{Value: string(models.BattleActive)},
			":player":  &types.AttributeValueMemberS{Value: player},
			":version": &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", battle.Version)},
			":inc":     &types.AttributeValueMemberN{Value: "1"},
		},
	}

	_, err = s.Client.UpdateItem(ctx, input)
	if err != nil {
		var condCheckFailed *types.ConditionalCheckFailedException
		if errors.As(err, &condCheckFailed) {
			// A concurrent submission won the race for the lock.
			return nil, storage.ErrTurnInFlight
		}
		return nil, fmt.Errorf("failed to set pending turn: %w", err)
	}

	battle.PendingTurn = pending
	battle.UpdatedAt = now
	battle.Version++

	// 3. Enqueue the watchdog check. The lock is already durable; if the
	// enqueue fails the sweep mode will still find the battle, so this is
	// logged loudly but does not fail the submission.
	if s.Scheduler != nil {
		check := scheduler.TurnCheck{
			BattleID:    battleID,
			Player:      player,
			SubmittedAt: now,
		}
		if err := s.Scheduler.ScheduleTurnCheck(ctx, check, WatchdogGrace); err != nil {
			slog.Error("CRITICAL: failed to schedule turn check; relying on sweep",
				"battle_id", battleID, "player", player, "error", err)
		}
	}

	return battle, nil
}
