package dynamodb

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/nftarena/battle-coordinator/pkg/scheduler"
	"github.com/nftarena/battle-coordinator/pkg/storage"
)

// DynamoDBAPI is the subset of the DynamoDB client used by the store.
// It exists so tests can substitute a mock.
type DynamoDBAPI interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	TransactWriteItems(ctx context.Context, params *dynamodb.TransactWriteItemsInput, optFns ...func(*dynamodb.Options)) (*dynamodb.TransactWriteItemsOutput, error)
}

// Store implements the Storage interface using AWS DynamoDB.
type Store struct {
	Client               DynamoDBAPI
	Scheduler            scheduler.Scheduler
	AccountsTableName    string
	LobbiesTableName     string
	BattlesTableName     string
	CreditsTableName     string
	ConnectionsTableName string
}

// New creates a new Store. The scheduler may be nil for components that
// never begin turns (the watchdog passes nil to avoid rescheduling itself).
func New(client DynamoDBAPI, sched scheduler.Scheduler, accountsTable, lobbiesTable, battlesTable, creditsTable, connectionsTable string) *Store {
	return &Store{
		Client:               client,
		Scheduler:            sched,
		AccountsTableName:    accountsTable,
		LobbiesTableName:     lobbiesTable,
		BattlesTableName:     battlesTable,
		CreditsTableName:     creditsTable,
		ConnectionsTableName: connectionsTable,
	}
}

// Make sure we conform to the interface
var _ storage.Storage = (*Store)(nil)
