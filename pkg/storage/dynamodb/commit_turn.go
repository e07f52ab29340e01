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

	"github.com/nftarena/battle-coordinator/pkg/chain"
	"github.com/nftarena/battle-coordinator/pkg/models"
	"github.com/nftarena/battle-coordinator/pkg/storage"
)

// CommitTurn reconciles a ledger-reported turn outcome into the battle
// record. Health, turn count and turn order are overwritten with the
// ledger's values; combat math is never recomputed here. On game over the
// same transaction settles the winner's credit, keyed so a retried commit
// can never pay twice.
func (s *Store) CommitTurn(ctx context.Context, battleID string, result *chain.TurnResult, opRef string) (*models.Battle, error) {
	// 1. Load current state for the idempotency check and address mapping.
	battle, err := s.GetBattle(ctx, battleID)
	if err != nil {
		return nil, err
	}

	// 2. Idempotency: a commit that already landed returns the stored state.
	if committed := alreadyCommitted(battle, result, opRef); committed {
		slog.Info("turn already committed, returning stored state",
			"battle_id", battleID, "op_ref", opRef, "turn_number", battle.TurnNumber)
		return battle, nil
	}

	if battle.Status != models.BattleActive {
		return nil, fmt.Errorf("%w: battle %s is %s", storage.ErrInvalidState, battleID, battle.Status)
	}
	if battle.PendingTurn == nil {
		return nil, fmt.Errorf("%w: battle %s has no pending turn", storage.ErrInvalidState, battleID)
	}
	if result.TurnCount <= battle.TurnNumber {
		return nil, fmt.Errorf("%w: ledger turn count %d does not advance %d",
			storage.ErrInvalidState, result.TurnCount, battle.TurnNumber)
	}

	// 3. Translate the ledger's secondary addresses onto the participants.
	newHealth1 := models.ClampHealth(result.Player1Health, battle.Player1MaxHealth)
	newHealth2 := models.ClampHealth(result.Player2Health, battle.Player2MaxHealth)

	actor := battle.PendingTurn.Player
	now := time.Now()

	newStatus := battle.Status
	winner := ""
	nextTurn := battle.CurrentTurn
	if result.IsOver {
		newStatus = models.BattleFinished
		if result.WinnerSecondaryAddr != nil {
			w, ok := battle.SecondaryToPrimary(*result.WinnerSecondaryAddr)
			if !ok {
				return nil, fmt.Errorf("%w: winner %s is not a participant of battle %s",
					storage.ErrUnresolvedAddress, *result.WinnerSecondaryAddr, battleID)
			}
			winner = w
		}
		nextTurn = ""
	} else {
		if result.NextTurnSecondaryAddr != nil {
			n, ok := battle.SecondaryToPrimary(*result.NextTurnSecondaryAddr)
			if !ok {
				return nil, fmt.Errorf("%w: next-turn address %s is not a participant of battle %s",
					storage.ErrUnresolvedAddress, *result.NextTurnSecondaryAddr, battleID)
			}
			nextTurn = n
		} else {
			nextTurn = battle.Opponent(actor)
		}
	}

	// 4. Build the move-log entry from the pending turn and the outcome.
	move := models.Move{
		TurnNumber:      result.TurnCount,
		Player:          actor,
		Action:          battle.PendingTurn.Action,
		TxRef:           opRef,
		Timestamp:       now,
		ResultingHealth: opponentHealth(battle, actor, newHealth1, newHealth2),
	}
	if result.Damage != nil {
		move.Damage = *result.Damage
	}
	if result.WasCritical != nil {
		move.WasCritical = *result.WasCritical
	}

	moveAV, err := attributevalue.Marshal(move)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal move: %w", err)
	}
	nowAV, err := attributevalue.Marshal(now)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal timestamp for commit: %w", err)
	}
	emptyMovesAV := &types.AttributeValueMemberL{Value: []types.AttributeValue{}}

	update := &types.Update{
		TableName: aws.String(s.BattlesTableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: battleID},
		},
		UpdateExpression: aws.String("SET player1_health = :h1, player2_health = :h2, turn_number = :turn, " +
			"current_turn = :next, #status = :status, winner = :winner, " +
			"moves = list_append(if_not_exists(moves, :empty), :move), updated_at = :now, version = version + :inc " +
			"REMOVE pending_turn"),
		ConditionExpression: aws.String("version = :version AND attribute_exists(pending_turn)"),
		ExpressionAttributeNames: map[string]string{
			"#status": "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":h1":      &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", newHealth1)},
			":h2":      &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", newHealth2)},
			":turn":    &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", result.TurnCount)},
			":next":    &types.AttributeValueMemberS{Value: nextTurn},
			":status":  &types.AttributeValueMemberS{Value: string(newStatus)},
			":winner":  &types.AttributeValueMemberS{Value: winner},
			":move":    &types.AttributeValueMemberL{Value: []types.AttributeValue{moveAV}},
			":empty":   emptyMovesAV,
			":now":     nowAV,
			":version": &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", battle.Version)},
			":inc":     &types.AttributeValueMemberN{Value: "1"},
		},
	}

	transactItems := []types.TransactWriteItem{{Update: update}}

	// 5. Game over: settle the winner's reward in the same transaction. The
	// entry is keyed by battle, so a commit retried after a partial failure
	// finds the existing entry and the whole transaction cancels, which the
	// idempotency check above then absorbs.
	if result.IsOver && winner != "" {
		entry := models.CreditEntry{
			EntryID:     fmt.Sprintf("reward#%s", battleID),
			BattleID:    battleID,
			AccountID:   winner,
			Credit:      models.WinReward,
			Description: fmt.Sprintf("Victory reward for battle %s", battleID),
			Timestamp:   now,
			GSI1PK:      "CREDIT_ENTRIES",
		}
		entryAV, err := attributevalue.MarshalMap(entry)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal credit entry: %w", err)
		}

		transactItems = append(transactItems,
			types.TransactWriteItem{
				// Operation 2: Create the reward entry exactly once.
				Put: &types.Put{
					TableName:           aws.String(s.CreditsTableName),
					Item:                entryAV,
					ConditionExpression: aws.String("attribute_not_exists(entry_id)"),
				},
			},
			types.TransactWriteItem{
				// Operation 3: Credit the winner's balance.
				Update: &types.Update{
					TableName: aws.String(s.AccountsTableName),
					Key: map[string]types.AttributeValue{
						"primary_address": &types.AttributeValueMemberS{Value: winner},
					},
					UpdateExpression:    aws.String("ADD balance :reward SET updated_at = :now"),
					ConditionExpression: aws.String("attribute_exists(primary_address)"),
					ExpressionAttributeValues: map[string]types.AttributeValue{
						":reward": &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", models.WinReward)},
						":now":    nowAV,
					},
				},
			},
		)
	}

	_, err = s.Client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{TransactItems: transactItems})
	if err != nil {
		var tce *types.TransactionCanceledException
		if errors.As(err, &tce) {
			// Re-read: a concurrent or retried commit may have landed first.
			current, getErr := s.GetBattle(ctx, battleID)
			if getErr == nil && alreadyCommitted(current, result, opRef) {
				return current, nil
			}
			return nil, fmt.Errorf("%w: battle %s changed during commit", storage.ErrStaleVersion, battleID)
		}
		return nil, fmt.Errorf("failed to execute commit transaction: %w", err)
	}

	battle.Player1Health = newHealth1
	battle.Player2Health = newHealth2
	battle.TurnNumber = result.TurnCount
	battle.CurrentTurn = nextTurn
	battle.Status = newStatus
	battle.Winner = winner
	battle.PendingTurn = nil
	battle.Moves = append(battle.Moves, move)
	battle.UpdatedAt = now
	battle.Version++
	return battle, nil
}

// alreadyCommitted reports whether this exact commit already landed: no turn
// pending, the turn counter caught up, and the latest move carries the same
// transaction reference.
func alreadyCommitted(battle *models.Battle, result *chain.TurnResult, opRef string) bool {
	if battle.PendingTurn != nil {
		return false
	}
	if battle.Status != models.BattleFinished && battle.TurnNumber < result.TurnCount {
		return false
	}
	if len(battle.Moves) == 0 {
		return false
	}
	return battle.Moves[len(battle.Moves)-1].TxRef == opRef
}

// opponentHealth returns the post-turn health of the actor's opponent, the
// value the move log records as the result of the hit.
func opponentHealth(battle *models.Battle, actor string, h1, h2 int64) int64 {
	if actor == battle.Player1Address {
		return h2
	}
	return h1
}
