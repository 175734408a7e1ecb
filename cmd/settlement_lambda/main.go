package main

import (
	"context"
	"encoding/json"
	"log"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/joho/godotenv"
	"github.com/rotafacil/wallet-core/pkg/commission"
	"github.com/rotafacil/wallet-core/pkg/config"
	"github.com/rotafacil/wallet-core/pkg/ledger"
	"github.com/rotafacil/wallet-core/pkg/scheduler"
	"github.com/rotafacil/wallet-core/pkg/split"
	dydbstore "github.com/rotafacil/wallet-core/pkg/storage/dynamodb"
	"github.com/rotafacil/wallet-core/pkg/withdrawal"
)

var (
	engine  *split.Engine
	manager *withdrawal.Manager
)

func init() {
	// Load environment variables from .env file (useful for local testing).
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	// Initialize dependencies once.
	awsCfg, err := awsconfig.LoadDefaultConfig(context.TODO())
	if err != nil {
		log.Fatalf("unable to load SDK config, %v", err)
	}

	dbClient := dynamodb.NewFromConfig(awsCfg)
	store := dydbstore.New(dbClient, cfg.Tables)

	ledgerSvc := ledger.NewService(store, store)
	resolver := commission.NewResolver(store, cfg.Commission)
	engine = split.NewEngine(ledgerSvc, store, store, resolver, cfg.PlatformWalletID)

	// The sweep never calls the settlement provider, so no gateway client here.
	manager = withdrawal.NewManager(ledgerSvc, store, nil, cfg.Withdrawal, cfg.PlatformWalletID)
}

// HandleRequest processes settlement jobs from the SQS queue.
func HandleRequest(ctx context.Context, sqsEvent events.SQSEvent) error {
	for _, message := range sqsEvent.Records {
		log.Printf("Processing message %s", message.MessageId)

		var job scheduler.Job
		if err := json.Unmarshal([]byte(message.Body), &job); err != nil {
			log.Printf("ERROR: failed to unmarshal job from SQS message %s: %v", message.MessageId, err)
			// Returning an error will cause SQS to retry the message, which is appropriate here.
			return err
		}

		switch job.Kind {
		case scheduler.JobSettleCharge:
			log.Printf("Settling splits for charge %s", job.ChargeID)
			if err := engine.SettleChargeSplits(ctx, job.ChargeID); err != nil {
				log.Printf("ERROR: failed to settle charge %s: %v", job.ChargeID, err)
				return err
			}

		case scheduler.JobSweepStaleWithdrawals:
			log.Printf("Sweeping stale withdrawals for driver %s", job.DriverID)
			if err := manager.SweepStale(ctx, job.DriverID); err != nil {
				log.Printf("ERROR: failed to sweep withdrawals for driver %s: %v", job.DriverID, err)
				return err
			}

		default:
			// Unknown jobs are dropped instead of poisoning the queue.
			log.Printf("ERROR: unknown job kind %q in message %s", job.Kind, message.MessageId)
		}

		log.Printf("Successfully processed message %s", message.MessageId)
	}

	return nil
}

func main() {
	lambda.Start(HandleRequest)
}
