package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/aws/aws-sdk-go-v2/config"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"

	"github.com/nftarena/battle-coordinator/pkg/chain"
	"github.com/nftarena/battle-coordinator/pkg/handlers"
	wshandlers "github.com/nftarena/battle-coordinator/pkg/handlers/websockets"
	"github.com/nftarena/battle-coordinator/pkg/middleware"
	"github.com/nftarena/battle-coordinator/pkg/nft"
	"github.com/nftarena/battle-coordinator/pkg/scheduler"
	"github.com/nftarena/battle-coordinator/pkg/storage/dynamodb"
	"github.com/nftarena/battle-coordinator/pkg/websockets"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// AWS Session
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

	if accountsTable == "" || lobbiesTable == "" || battlesTable == "" || creditsTable == "" || connectionsTable == "" {
		log.Fatal("One or more DynamoDB table name environment variables are not set")
	}

	// SQS Client and Scheduler for the turn watchdog
	sqsClient := sqs.NewFromConfig(cfg)
	sqsQueueURL := os.Getenv("SQS_TURN_CHECK_QUEUE_URL")
	if sqsQueueURL == "" {
		log.Fatal("SQS_TURN_CHECK_QUEUE_URL environment variable not set")
	}
	sqsScheduler := scheduler.NewSQSScheduler(sqsClient, sqsQueueURL)

	store := dynamodb.New(dbClient, sqsScheduler, accountsTable, lobbiesTable, battlesTable, creditsTable, connectionsTable)

	// External collaborators
	gatewayURL := os.Getenv("CHAIN_GATEWAY_URL")
	if gatewayURL == "" {
		log.Fatal("CHAIN_GATEWAY_URL environment variable not set")
	}
	chainClient := chain.NewGatewayClient(gatewayURL, os.Getenv("CHAIN_GATEWAY_TOKEN"))

	statServiceURL := os.Getenv("NFT_STAT_SERVICE_URL")
	if statServiceURL == "" {
		log.Fatal("NFT_STAT_SERVICE_URL environment variable not set")
	}
	statProvider := nft.NewStatServiceClient(statServiceURL, os.Getenv("NFT_STAT_SERVICE_TOKEN"))

	// Publisher for live lobby/battle updates. Without a websocket API
	// endpoint (local development) updates are silently dropped.
	var publisher websockets.Publisher = &websockets.NoOpPublisher{}
	if wsEndpoint := os.Getenv("WEBSOCKET_API_ENDPOINT"); wsEndpoint != "" {
		p, err := websockets.NewPublisher(store, store, wsEndpoint)
		if err != nil {
			log.Fatalf("failed to create websocket publisher: %v", err)
		}
		publisher = p
	}

	apiHandlers := handlers.NewApi(store, statProvider, chainClient, publisher)

	router := chi.NewRouter()
	router.Use(middleware.NewStructuredLogger(logger))
	apiHandlers.Mount(router)

	// Local development websocket endpoint.
	router.Handle("/ws", wshandlers.NewHandler(store))

	port := os.Getenv("HTTP_PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting server on port %s", port)

	if err := http.ListenAndServe(":"+port, router); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
