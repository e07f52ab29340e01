package dynamodb

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/nftarena/battle-coordinator/pkg/models"
)

const creditsGSI = "gsi1pk-timestamp-index"

// ListCreditEntries retrieves the most recent reward-ledger entries.
func (s *Store) ListCreditEntries(ctx context.Context, limit int32) ([]models.CreditEntry, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(s.CreditsTableName),
		IndexName:              aws.String(creditsGSI),
		KeyConditionExpression: aws.String("gsi1pk = :pk"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk": &types.AttributeValueMemberS{Value: "CREDIT_ENTRIES"},
		},
		ScanIndexForward: aws.Bool(false), // Sort by timestamp in descending order
		Limit:            &limit,
	}

	result, err := s.Client.Query(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to query for credit entries: %w", err)
	}

	var entries []models.CreditEntry
	if err := attributevalue.UnmarshalListOfMaps(result.Items, &entries); err != nil {
		return nil, fmt.Errorf("failed to unmarshal credit entries: %w", err)
	}

	return entries, nil
}
