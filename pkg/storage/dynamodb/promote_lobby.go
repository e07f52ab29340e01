package dynamodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/nftarena/battle-coordinator/pkg/models"
	"github.com/nftarena/battle-coordinator/pkg/storage"
)

// PromoteLobby atomically marks a ready lobby as started and creates the
// battle record in initializing state. This is the single point where the
// lobby and battle lifecycles couple; once started the lobby is inert.
//
// The caller builds the battle (turn order, authoritative stat snapshots,
// secondary-address snapshots) and is responsible for the ledger-creation
// handshake that follows.
func (s *Store) PromoteLobby(ctx context.Context, code string, battle *models.Battle) (*models.Lobby, error) {
	lobby, err := s.getLobbyRaw(ctx, code)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if lobby.ExpiredAt(now) {
		return nil, fmt.Errorf("%w: lobby %s has expired", storage.ErrInvalidState, code)
	}
	if lobby.Status != models.LobbyReady {
		return nil, fmt.Errorf("%w: lobby %s is %s, not ready", storage.ErrInvalidState, code, lobby.Status)
	}
	// Defensive re-check; ready status implies this but promotion must never
	// trust a stale derivation.
	if lobby.CreatorSelection == nil || !lobby.CreatorSelection.Ready ||
		lobby.JoinerSelection == nil || !lobby.JoinerSelection.Ready {
		return nil, storage.ErrIncompleteSelection
	}

	battle.Status = models.BattleInitializing
	battle.TurnNumber = 0
	battle.Moves = []models.Move{}
	battle.Version = 1
	battle.CreatedAt = now
	battle.UpdatedAt = now

	battleAV, err := attributevalue.MarshalMap(battle)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal battle: %w", err)
	}
	nowAV, err := attributevalue.Marshal(now)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal timestamp for promotion: %w", err)
	}

	input := &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{
				// Operation 1: Create the battle record.
				Put: &types.Put{
					TableName:           aws.String(s.BattlesTableName),
					Item:                battleAV,
					ConditionExpression: aws.String("attribute_not_exists(id)"),
				},
			},
			{
				// Operation 2: Mark the lobby started.
				Update: &types.Update{
					TableName: aws.String(s.LobbiesTableName),
					Key: map[string]types.AttributeValue{
						"code": &types.AttributeValueMemberS{Value: code},
					},
					UpdateExpression:    aws.String("SET #status = :started, battle_id = :battleID, last_activity = :now, version = version + :inc"),
					ConditionExpression: aws.String("#status = :ready AND version = :version"),
					ExpressionAttributeNames: map[string]string{
						"#status": "status",
					},
					ExpressionAttributeValues: map[string]types.AttributeValue{
						":started":  &types.AttributeValueMemberS{Value: string(models.LobbyStarted)},
						":battleID": &types.AttributeValueMemberS{Value: battle.ID},
						":now":      nowAV,
						":ready":    &types.AttributeValueMemberS{Value: string(models.LobbyReady)},
						":version":  &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", lobby.Version)},
						":inc":      &types.AttributeValueMemberN{Value: "1"},
					},
				},
			},
		},
	}

	_, err = s.Client.TransactWriteItems(ctx, input)
	if err != nil {
		var tce *types.TransactionCanceledException
		if errors.As(err, &tce) {
			return nil, fmt.Errorf("%w: lobby %s changed during promotion", storage.ErrInvalidState, code)
		}
		return nil, fmt.Errorf("failed to execute promotion transaction: %w", err)
	}

	lobby.Status = models.LobbyStarted
	lobby.BattleID = battle.ID
	lobby.LastActivity = now
	lobby.Version++
	return lobby, nil
}
