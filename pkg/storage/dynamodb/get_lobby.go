package dynamodb

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/nftarena/battle-coordinator/pkg/models"
	"github.com/nftarena/battle-coordinator/pkg/storage"
)

const lobbyStatusGSI = "status-created_at-index"

// GetLobby retrieves a lobby by code. Expiry is lazy: a waiting or ready
// lobby past its deadline is reported as expired without writing back.
func (s *Store) GetLobby(ctx context.Context, code string) (*models.Lobby, error) {
	lobby, err := s.getLobbyRaw(ctx, code)
	if err != nil {
		return nil, err
	}

	if lobby.ExpiredAt(time.Now()) {
		lobby.Status = models.LobbyExpired
	}
	return lobby, nil
}

// getLobbyRaw fetches the stored record without applying lazy expiry.
// Mutations use it so they can distinguish "stored as waiting but expired"
// from genuinely invalid states.
func (s *Store) getLobbyRaw(ctx context.Context, code string) (*models.Lobby, error) {
	key, err := attributevalue.MarshalMap(map[string]string{"code": code})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal lobby code: %w", err)
	}

	input := &dynamodb.GetItemInput{
		TableName: aws.String(s.LobbiesTableName),
		Key:       key,
	}

	result, err := s.Client.GetItem(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to get lobby from DynamoDB: %w", err)
	}

	if result.Item == nil {
		return nil, fmt.Errorf("%w: lobby %s", storage.ErrNotFound, code)
	}

	var lobby models.Lobby
	if err := attributevalue.UnmarshalMap(result.Item, &lobby); err != nil {
		return nil, fmt.Errorf("failed to unmarshal lobby: %w", err)
	}

	return &lobby, nil
}

// ListOpenLobbies returns public lobbies still waiting for a joiner.
func (s *Store) ListOpenLobbies(ctx context.Context, limit int32) ([]models.Lobby, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(s.LobbiesTableName),
		IndexName:              aws.String(lobbyStatusGSI),
		KeyConditionExpression: aws.String("#status = :waiting"),
		FilterExpression:       aws.String("visibility = :public AND attribute_not_exists(joiner_address)"),
		ExpressionAttributeNames: map[string]string{
			"#status": "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":public":  &types.AttributeValueMemberS{Value: string(models.LobbyPublic)},
			":waiting": &types.AttributeValueMemberS{Value: string(models.LobbyWaiting)},
		},
		Limit: aws.Int32(limit),
	}

	result, err := s.Client.Query(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to query open lobbies: %w", err)
	}

	var lobbies []models.Lobby
	if err := attributevalue.UnmarshalListOfMaps(result.Items, &lobbies); err != nil {
		return nil, fmt.Errorf("failed to unmarshal lobbies: %w", err)
	}

	// Drop lobbies the TTL sweeper has not collected yet.
	now := time.Now()
	open := lobbies[:0]
	for _, l := range lobbies {
		if !l.ExpiredAt(now) {
			open = append(open, l)
		}
	}

	return open, nil
}
