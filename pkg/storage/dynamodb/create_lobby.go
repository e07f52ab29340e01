package dynamodb

import (
	"context"
	"crypto/rand"
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

// lobbyCodeAlphabet avoids 0/O and 1/I so codes survive being read aloud.
const lobbyCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

const lobbyCodeLength = 6

const createLobbyAttempts = 3

func newLobbyCode() (string, error) {
	buf := make([]byte, lobbyCodeLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate lobby code: %w", err)
	}
	for i, b := range buf {
		buf[i] = lobbyCodeAlphabet[int(b)%len(lobbyCodeAlphabet)]
	}
	return string(buf), nil
}

// CreateLobby creates a lobby with a fresh shareable code. The caller is
// responsible for the requireLinked gate. Code collisions are retried.
func (s *Store) CreateLobby(ctx context.Context, creator string, visibility models.LobbyVisibility, ttl time.Duration) (*models.Lobby, error) {
	now := time.Now()
	lobby := &models.Lobby{
		CreatorAddress: creator,
		Status:         models.LobbyWaiting,
		Visibility:     visibility,
		ExpiresAt:      now.Add(ttl),
		LastActivity:   now,
		Version:        1,
		CreatedAt:      now,
		// TTL trails expires_at so readers, not the TTL sweeper, decide expiry.
		TTL: now.Add(ttl + 24*time.Hour).Unix(),
	}

	for attempt := 0; attempt < createLobbyAttempts; attempt++ {
		code, err := newLobbyCode()
		if err != nil {
			return nil, err
		}
		lobby.Code = code

		lobbyAV, err := attributevalue.MarshalMap(lobby)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal lobby: %w", err)
		}

		input := &dynamodb.PutItemInput{
			TableName:           aws.String(s.LobbiesTableName),
			Item:                lobbyAV,
			ConditionExpression: aws.String("attribute_not_exists(code)"),
		}

		_, err = s.Client.PutItem(ctx, input)
		if err != nil {
			var condCheckFailed *types.ConditionalCheckFailedException
			if errors.As(err, &condCheckFailed) {
				continue
			}
			return nil, fmt.Errorf("failed to create lobby in DynamoDB: %w", err)
		}

		return lobby, nil
	}

	return nil, storage.ErrDuplicateLobbyCode
}
