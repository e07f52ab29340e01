package main

import (
	"context"
	"encoding/json"
	"log"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/config"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/joho/godotenv"

	"github.com/nftarena/battle-coordinator/pkg/scheduler"
	"github.com/nftarena/battle-coordinator/pkg/storage"
	dydbstore "github.com/nftarena/battle-coordinator/pkg/storage/dynamodb"
)

var store storage.WatchdogStore

func init() {
	// Load environment variables from .env file (useful for local testing).
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Initialize dependencies once.
	cfg, err := config.LoadDefaultConfig(context.TODO())
	if err != nil {
		log.Fatalf("unable to load SDK config, %v", err)
	}

	dbClient := awsdynamodb.NewFromConfig(cfg)
	accountsTable := os.Getenv("DYNAMODB_ACCOUNTS_TABLE_NAME")
	lobbiesTable := os.Getenv("DYNAMODB_LOBBIES_TABLE_NAME")
	battlesTable := os.Getenv("DYNAMODB_BATTLES_TABLE_NAME")
	creditsTable := os.Getenv("DYNAMODB_CREDITS_TABLE_NAME")
	connectionsTable := os.Getenv("DYNAMODB_CONNECTIONS_TABLE_NAME")

	if battlesTable == "" {
		log.Fatal("DYNAMODB_BATTLES_TABLE_NAME environment variable not set")
	}

	// The watchdog never begins turns, so it needs no scheduler.
	store = dydbstore.New(dbClient, nil, accountsTable, lobbiesTable, battlesTable, creditsTable, connectionsTable)
}

// HandleRequest processes delayed turn-check messages. A pending turn is
// reverted only when the submission that enqueued the check is still the one
// on the record; a turn that committed, reverted, or was resubmitted in the
// meantime is left alone.
//
// An invocation without records (the EventBridge schedule) runs a full sweep
// instead, catching turns whose check message was never enqueued.
func HandleRequest(ctx context.Context, sqsEvent events.SQSEvent) error {
	if len(sqsEvent.Records) == 0 {
		return sweepStuckBattles(ctx)
	}

	for _, message := range sqsEvent.Records {
		log.Printf("Processing message %s", message.MessageId)

		var check scheduler.TurnCheck
		if err := json.Unmarshal([]byte(message.Body), &check); err != nil {
			log.Printf("ERROR: failed to unmarshal turn check from SQS message %s: %v", message.MessageId, err)
			// Returning an error will cause SQS to retry the message.
			return err
		}

		// The revert is conditional on the exact submission observed at
		// enqueue time, so a commit plus fresh submission racing this
		// message is never clobbered.
		if err := store.RevertTurnMatching(ctx, check.BattleID, check.Player, check.SubmittedAt, "watchdog timeout"); err != nil {
			log.Printf("ERROR: failed to revert stuck turn on battle %s: %v", check.BattleID, err)
			return err
		}

		log.Printf("Processed turn check for battle %s (player %s)", check.BattleID, check.Player)
	}

	return nil
}

// sweepStuckBattles reverts every pending turn older than the watchdog grace
// period.
func sweepStuckBattles(ctx context.Context) error {
	stuck, err := store.GetStuckBattles(ctx, dydbstore.WatchdogGrace)
	if err != nil {
		log.Printf("ERROR: failed to query for stuck battles: %v", err)
		return err
	}

	for _, battle := range stuck {
		pending := battle.PendingTurn
		if pending == nil {
			continue
		}
		if err := store.RevertTurnMatching(ctx, battle.ID, pending.Player, pending.SubmittedAt, "watchdog sweep"); err != nil {
			log.Printf("ERROR: failed to revert stuck turn on battle %s: %v", battle.ID, err)
			return err
		}
		log.Printf("Reverted stuck turn on battle %s", battle.ID)
	}

	log.Printf("Sweep complete, reverted %d stuck battles", len(stuck))
	return nil
}

func main() {
	lambda.Start(HandleRequest)
}
