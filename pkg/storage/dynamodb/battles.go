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
	"github.com/nftarena/battle-coordinator/pkg/storage"
)

const (
	battleStatusGSI = "status-updated_at-index"
	playerOneGSI    = "player1_address-index"
	playerTwoGSI    = "player2_address-index"
)

// GetBattle retrieves a battle from DynamoDB by its ID.
func (s *Store) GetBattle(ctx context.Context, battleID string) (*models.Battle, error) {
	key, err := attributevalue.MarshalMap(map[string]string{"id": battleID})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal battle ID: %w", err)
	}

	input := &dynamodb.GetItemInput{
		TableName: aws.String(s.BattlesTableName),
		Key:       key,
	}

	result, err := s.Client.GetItem(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to get battle from DynamoDB: %w", err)
	}

	if result.Item == nil {
		return nil, fmt.Errorf("%w: battle %s", storage.ErrNotFound, battleID)
	}

	var battle models.Battle
	if err := attributevalue.UnmarshalMap(result.Item, &battle); err != nil {
		return nil, fmt.Errorf("failed to unmarshal battle: %w", err)
	}

	return &battle, nil
}

// ListBattlesByPlayer retrieves battles a primary address participates in.
// Either slot can hold the player, so both per-slot indexes are queried.
func (s *Store) ListBattlesByPlayer(ctx context.Context, primary string) ([]models.Battle, error) {
	var battles []models.Battle
	for _, index := range []struct {
		name string
		key  string
	}{
		{playerOneGSI, "player1_address"},
		{playerTwoGSI, "player2_address"},
	} {
		input := &dynamodb.QueryInput{
			TableName:              aws.String(s.BattlesTableName),
			IndexName:              aws.String(index.name),
			KeyConditionExpression: aws.String(index.key + " = :addr"),
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":addr": &types.AttributeValueMemberS{Value: primary},
			},
		}

		result, err := s.Client.Query(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("failed to query battles by player: %w", err)
		}

		var page []models.Battle
		if err := attributevalue.UnmarshalListOfMaps(result.Items, &page); err != nil {
			return nil, fmt.Errorf("failed to unmarshal battles: %w", err)
		}
		battles = append(battles, page...)
	}

	return battles, nil
}

// GetStuckBattles retrieves active battles whose pending turn has been in
// flight longer than maxAge. Used by the watchdog's sweep mode.
func (s *Store) GetStuckBattles(ctx context.Context, maxAge time.Duration) ([]models.Battle, error) {
	cutoff := time.Now().Add(-maxAge)
	cutoffStr, err := cutoff.MarshalText()
	if err != nil {
		return nil, fmt.Errorf("failed to marshal cutoff time: %w", err)
	}

	input := &dynamodb.QueryInput{
		TableName:              aws.String(s.BattlesTableName),
		IndexName:              aws.String(battleStatusGSI),
		KeyConditionExpression: aws.String("#status = :active"),
		FilterExpression:       aws.String("attribute_exists(pending_turn) AND pending_turn.submitted_at < :cutoff"),
		ExpressionAttributeNames: map[string]string{
			"#status": "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":active": &types.AttributeValueMemberS{Value: string(models.BattleActive)},
			":cutoff": &types.AttributeValueMemberS{Value: string(cutoffStr)},
		},
	}

	result, err := s.Client.Query(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to query for stuck battles: %w", err)
	}

	var battles []models.Battle
	if err := attributevalue.UnmarshalListOfMaps(result.Items, &battles); err != nil {
		return nil, fmt.Errorf("failed to unmarshal stuck battles: %w", err)
	}

	return battles, nil
}

// ConfirmBattleCreation moves an initializing battle to active once the
// external ledger confirms creation.
func (s *Store) ConfirmBattleCreation(ctx context.Context, battleID, externalBattleID, txRef string) (*models.Battle, error) {
	now := time.Now()
	nowAV, err := attributevalue.Marshal(now)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal timestamp for confirmation: %w", err)
	}

	input := &dynamodb.UpdateItemInput{
		TableName: aws.String(s.BattlesTableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: battleID},
		},
		UpdateExpression:    aws.String("SET #status = :active, external_battle_id = :externalID, updated_at = :now, version = version + :inc"),
		ConditionExpression: aws.String("attribute_exists(id) AND #status = :initializing"),
		ExpressionAttributeNames: map[string]string{
			"#status": "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":active":       &types.AttributeValueMemberS{Value: string(models.BattleActive)},
			":externalID":   &types.AttributeValueMemberS{Value: externalBattleID},
			":now":          nowAV,
			":initializing": &types.AttributeValueMemberS{Value: string(models.BattleInitializing)},
			":inc":          &types.AttributeValueMemberN{Value: "1"},
		},
	}

	_, err = s.Client.UpdateItem(ctx, input)
	if err != nil {
		var condCheckFailed *types.ConditionalCheckFailedException
		if errors.As(err, &condCheckFailed) {
			return nil, fmt.Errorf("%w: battle %s is not initializing", storage.ErrInvalidState, battleID)
		}
		return nil, fmt.Errorf("failed to confirm battle creation: %w", err)
	}

	slog.Info("battle activated", "battle_id", battleID, "external_battle_id", externalBattleID, "tx_ref", txRef)

	return s.GetBattle(ctx, battleID)
}

// AbortBattleCreation moves an initializing battle to abandoned after a
// failed ledger-creation call. The lobby stays started; the players open a
// new lobby instead.
func (s *Store) AbortBattleCreation(ctx context.Context, battleID, reason string) error {
	now := time.Now()
	nowAV, err := attributevalue.Marshal(now)
	if err != nil {
		return fmt.Errorf("failed to marshal timestamp for abort: %w", err)
	}

	input := &dynamodb.UpdateItemInput{
		TableName: aws.String(s.BattlesTableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: battleID},
		},
		UpdateExpression:    aws.String("SET #status = :abandoned, updated_at = :now, version = version + :inc"),
		ConditionExpression: aws.String("attribute_exists(id) AND #status = :initializing"),
		ExpressionAttributeNames: map[string]string{
			"#status": "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":abandoned":    &types.AttributeValueMemberS{Value: string(models.BattleAbandoned)},
			":now":          nowAV,
			":initializing": &types.AttributeValueMemberS{Value: string(models.BattleInitializing)},
			":inc":          &types.AttributeValueMemberN{Value: "1"},
		},
	}

	_, err = s.Client.UpdateItem(ctx, input)
	if err != nil {
		var condCheckFailed *types.ConditionalCheckFailedException
		if errors.As(err, &condCheckFailed) {
			return fmt.Errorf("%w: battle %s is not initializing", storage.ErrInvalidState, battleID)
		}
		return fmt.Errorf("failed to abort battle creation: %w", err)
	}

	slog.Warn("battle abandoned before activation", "battle_id", battleID, "reason", reason)
	return nil
}
