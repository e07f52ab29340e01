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

const secondaryAddressGSI = "secondary_address-index"

// CreateAccount registers an account record for a primary address.
func (s *Store) CreateAccount(ctx context.Context, primary string) (*models.Account, error) {
	now := time.Now()
	account := &models.Account{
		PrimaryAddress: primary,
		Balance:        0,
		Version:        1,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	accountAV, err := attributevalue.MarshalMap(account)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal account: %w", err)
	}

	input := &dynamodb.PutItemInput{
		TableName:           aws.String(s.AccountsTableName),
		Item:                accountAV,
		ConditionExpression: aws.String("attribute_not_exists(primary_address)"),
	}

	_, err = s.Client.PutItem(ctx, input)
	if err != nil {
		var condCheckFailed *types.ConditionalCheckFailedException
		if errors.As(err, &condCheckFailed) {
			return nil, fmt.Errorf("account for %s already exists", primary)
		}
		return nil, fmt.Errorf("failed to create account in DynamoDB: %w", err)
	}

	return account, nil
}

// GetAccount retrieves an account by primary address.
func (s *Store) GetAccount(ctx context.Context, primary string) (*models.Account, error) {
	key, err := attributevalue.MarshalMap(map[string]string{"primary_address": primary})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal primary address: %w", err)
	}

	input := &dynamodb.GetItemInput{
		TableName: aws.String(s.AccountsTableName),
		Key:       key,
	}

	result, err := s.Client.GetItem(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to get account from DynamoDB: %w", err)
	}

	if result.Item == nil {
		return nil, fmt.Errorf("%w: account %s", storage.ErrNotFound, primary)
	}

	var account models.Account
	if err := attributevalue.UnmarshalMap(result.Item, &account); err != nil {
		return nil, fmt.Errorf("failed to unmarshal account: %w", err)
	}

	return &account, nil
}

// ResolvePrimary maps a secondary address back to its primary address using
// the reverse-lookup GSI. Ledger events are keyed by secondary addresses;
// everything else in the system speaks primary.
func (s *Store) ResolvePrimary(ctx context.Context, secondary string) (string, error) {
	normalized := models.NormalizeAddress(secondary)

	input := &dynamodb.QueryInput{
		TableName:              aws.String(s.AccountsTableName),
		IndexName:              aws.String(secondaryAddressGSI),
		KeyConditionExpression: aws.String("secondary_address = :secondary"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":secondary": &types.AttributeValueMemberS{Value: normalized},
		},
		Limit: aws.Int32(1),
	}

	result, err := s.Client.Query(ctx, input)
	if err != nil {
		return "", fmt.Errorf("failed to query accounts by secondary address: %w", err)
	}

	if len(result.Items) == 0 {
		return "", fmt.Errorf("%w: secondary address %s", storage.ErrNotFound, normalized)
	}

	var account models.Account
	if err := attributevalue.UnmarshalMap(result.Items[0], &account); err != nil {
		return "", fmt.Errorf("failed to unmarshal account: %w", err)
	}

	return account.PrimaryAddress, nil
}

// LinkAccount upserts the primary→secondary mapping. Linking the same pair
// again succeeds; re-linking to a different secondary overwrites and is
// logged so the change is auditable.
func (s *Store) LinkAccount(ctx context.Context, primary, secondary string) (*models.Account, error) {
	account, err := s.GetAccount(ctx, primary)
	if err != nil {
		return nil, err
	}

	normalized := models.NormalizeAddress(secondary)
	if account.SecondaryAddress == normalized {
		return account, nil
	}
	if account.SecondaryAddress != "" {
		slog.Warn("re-linking account to a different secondary address",
			"primary", primary, "old", account.SecondaryAddress, "new", normalized)
	}

	now := time.Now()
	nowAV, err := attributevalue.Marshal(now)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal timestamp for link: %w", err)
	}

	input := &dynamodb.UpdateItemInput{
		TableName: aws.String(s.AccountsTableName),
		Key: map[string]types.AttributeValue{
			"primary_address": &types.AttributeValueMemberS{Value: primary},
		},
		UpdateExpression:    aws.String("SET secondary_address = :secondary, linked_at = :now, updated_at = :now, version = version + :inc"),
		ConditionExpression: aws.String("attribute_exists(primary_address) AND version = :version"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":secondary": &types.AttributeValueMemberS{Value: normalized},
			":now":       nowAV,
			":version":   &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", account.Version)},
			":inc":       &types.AttributeValueMemberN{Value: "1"},
		},
	}

	_, err = s.Client.UpdateItem(ctx, input)
	if err != nil {
		var condCheckFailed *types.ConditionalCheckFailedException
		if errors.As(err, &condCheckFailed) {
			return nil, storage.ErrStaleVersion
		}
		return nil, fmt.Errorf("failed to link account: %w", err)
	}

	account.SecondaryAddress = normalized
	account.LinkedAt = &now
	account.UpdatedAt = now
	account.Version++
	return account, nil
}
