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

// JoinLobby seats the joiner in the vacant slot. The caller is responsible
// for the requireLinked gate.
func (s *Store) JoinLobby(ctx context.Context, code, joiner string) (*models.Lobby, error) {
	lobby, err := s.getLobbyRaw(ctx, code)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if lobby.ExpiredAt(now) {
		return nil, fmt.Errorf("%w: lobby %s has expired", storage.ErrInvalidState, code)
	}
	if lobby.Status != models.LobbyWaiting {
		return nil, fmt.Errorf("%w: lobby %s is %s", storage.ErrInvalidState, code, lobby.Status)
	}
	if joiner == lobby.CreatorAddress {
		return nil, storage.ErrSelfJoin
	}
	if lobby.JoinerAddress != "" {
		return nil, storage.ErrLobbyFull
	}

	nowAV, err := attributevalue.Marshal(now)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal timestamp for join: %w", err)
	}

	input := &dynamodb.UpdateItemInput{
		TableName: aws.String(s.LobbiesTableName),
		Key: map[string]types.AttributeValue{
			"code": &types.AttributeValueMemberS{Value: code},
		},
		UpdateExpression:    aws.String("SET joiner_address = :joiner, last_activity = :now, version = version + :inc"),
		ConditionExpression: aws.String("#status = :waiting AND attribute_not_exists(joiner_address) AND version = :version"),
		ExpressionAttributeNames: map[string]string{
			"#status": "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":joiner":  &types.AttributeValueMemberS{Value: joiner},
			":now":     nowAV,
			":waiting": &types.AttributeValueMemberS{Value: string(models.LobbyWaiting)},
			":version": &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", lobby.Version)},
			":inc":     &types.AttributeValueMemberN{Value: "1"},
		},
	}

	_, err = s.Client.UpdateItem(ctx, input)
	if err != nil {
		var condCheckFailed *types.ConditionalCheckFailedException
		if errors.As(err, &condCheckFailed) {
			// Another joiner won the race for the slot.
			return nil, storage.ErrLobbyFull
		}
		return nil, fmt.Errorf("failed to join lobby: %w", err)
	}

	lobby.JoinerAddress = joiner
	lobby.LastActivity = now
	lobby.Version++
	return lobby, nil
}

// CancelLobby moves a waiting lobby to cancelled. Creator only.
func (s *Store) CancelLobby(ctx context.Context, code, creator string) error {
	lobby, err := s.getLobbyRaw(ctx, code)
	if err != nil {
		return err
	}

	if creator != lobby.CreatorAddress {
		return storage.ErrNotAMember
	}
	if lobby.ExpiredAt(time.Now()) {
		return fmt.Errorf("%w: lobby %s has expired", storage.ErrInvalidState, code)
	}
	if lobby.Status != models.LobbyWaiting {
		return fmt.Errorf("%w: lobby %s is %s", storage.ErrInvalidState, code, lobby.Status)
	}

	input := &dynamodb.UpdateItemInput{
		TableName: aws.String(s.LobbiesTableName),
		Key: map[string]types.AttributeValue{
			"code": &types.AttributeValueMemberS{Value: code},
		},
		UpdateExpression:    aws.String("SET #status = :cancelled, version = version + :inc"),
		ConditionExpression: aws.String("#status = :waiting AND version = :version"),
		ExpressionAttributeNames: map[string]string{
			"#status": "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":cancelled": &types.AttributeValueMemberS{Value: string(models.LobbyCancelled)},
			":waiting":   &types.AttributeValueMemberS{Value: string(models.LobbyWaiting)},
			":version":   &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", lobby.Version)},
			":inc":       &types.AttributeValueMemberN{Value: "1"},
		},
	}

	_, err = s.Client.UpdateItem(ctx, input)
	if err != nil {
		var condCheckFailed *types.ConditionalCheckFailedException
		if errors.As(err, &condCheckFailed) {
			return storage.ErrStaleVersion
		}
		return fmt.Errorf("failed to cancel lobby: %w", err)
	}

	return nil
}
