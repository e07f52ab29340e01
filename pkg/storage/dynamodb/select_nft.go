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

// SelectNFT stores one side's fighter selection and re-derives the lobby
// status. Changing the NFT drops any prior ready commitment, even if the
// same request asked to ready up: a changed fighter must be confirmed again.
func (s *Store) SelectNFT(ctx context.Context, code string, params storage.SelectNFTParams) (*models.Lobby, error) {
	lobby, err := s.getLobbyRaw(ctx, code)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if lobby.ExpiredAt(now) {
		return nil, fmt.Errorf("%w: lobby %s has expired", storage.ErrInvalidState, code)
	}
	if lobby.Status != models.LobbyWaiting && lobby.Status != models.LobbyReady {
		return nil, fmt.Errorf("%w: lobby %s is %s", storage.ErrInvalidState, code, lobby.Status)
	}
	if !lobby.Member(params.Player) {
		return nil, storage.ErrNotAMember
	}

	prior := lobby.SelectionFor(params.Player)
	ready := params.Ready
	if !prior.SameNFT(params.Collection, params.Item) {
		ready = false
	}

	selection := &models.NFTSelection{
		Collection: params.Collection,
		Item:       params.Item,
		Ready:      ready,
		Stats:      params.Stats,
		SelectedAt: now,
	}

	slot := "creator_selection"
	if params.Player == lobby.JoinerAddress {
		slot = "joiner_selection"
		lobby.JoinerSelection = selection
	} else {
		lobby.CreatorSelection = selection
	}

	// The ready status is derived after every selection write, never set
	// directly by the caller.
	newStatus := models.DeriveLobbyStatus(lobby)

	selectionAV, err := attributevalue.Marshal(selection)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal selection: %w", err)
	}
	nowAV, err := attributevalue.Marshal(now)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal timestamp for selection: %w", err)
	}

	input := &dynamodb.UpdateItemInput{
		TableName: aws.String(s.LobbiesTableName),
		Key: map[string]types.AttributeValue{
			"code": &types.AttributeValueMemberS{Value: code},
		},
		UpdateExpression:    aws.String(fmt.Sprintf("SET %s = :selection, #status = :status, last_activity = :now, version = version + :inc", slot)),
		ConditionExpression: aws.String("#status IN (:waiting, :ready) AND version = :version"),
		ExpressionAttributeNames: map[string]string{
			"#status": "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":selection": selectionAV,
			":status":    &types.AttributeValueMemberS{Value: string(newStatus)},
			":now":       nowAV,
			":waiting":   &types.AttributeValueMemberS{Value: string(models.LobbyWaiting)},
			":ready":     &types.AttributeValueMemberS{Value: string(models.LobbyReady)},
			":version":   &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", lobby.Version)},
			":inc":       &types.AttributeValueMemberN{Value: "1"},
		},
	}

	_, err = s.Client.UpdateItem(ctx, input)
	if err != nil {
		var condCheckFailed *types.ConditionalCheckFailedException
		if errors.As(err, &condCheckFailed) {
			return nil, storage.ErrStaleVersion
		}
		return nil, fmt.Errorf("failed to store selection: %w", err)
	}

	lobby.Status = newStatus
	lobby.LastActivity = now
	lobby.Version++
	return lobby, nil
}
