package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/joho/godotenv"
	"github.com/rotafacil/wallet-core/pkg/commission"
	"github.com/rotafacil/wallet-core/pkg/config"
	"github.com/rotafacil/wallet-core/pkg/gateway"
	"github.com/rotafacil/wallet-core/pkg/handlers"
	"github.com/rotafacil/wallet-core/pkg/handlers/deliveries"
	"github.com/rotafacil/wallet-core/pkg/handlers/wallets"
	"github.com/rotafacil/wallet-core/pkg/handlers/webhooks"
	"github.com/rotafacil/wallet-core/pkg/handlers/withdrawals"
	"github.com/rotafacil/wallet-core/pkg/ledger"
	"github.com/rotafacil/wallet-core/pkg/reconciler"
	"github.com/rotafacil/wallet-core/pkg/scheduler"
	"github.com/rotafacil/wallet-core/pkg/split"
	dydbstore "github.com/rotafacil/wallet-core/pkg/storage/dynamodb"
	"github.com/rotafacil/wallet-core/pkg/withdrawal"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	// AWS Session
	awsCfg, err := awsconfig.LoadDefaultConfig(context.TODO())
	if err != nil {
		log.Fatalf("unable to load SDK config, %v", err)
	}

	dbClient := dynamodb.NewFromConfig(awsCfg)
	store := dydbstore.New(dbClient, cfg.Tables)

	// SQS Client and Scheduler
	sqsClient := sqs.NewFromConfig(awsCfg)
	if cfg.Queue.URL == "" {
		log.Fatal("SQS_QUEUE_URL environment variable not set")
	}
	sqsScheduler := scheduler.NewSQSScheduler(sqsClient, cfg.Queue.URL)

	// Domain services
	pixClient := gateway.NewPixClient(cfg.Gateway)
	ledgerSvc := ledger.NewService(store, store)
	resolver := commission.NewResolver(store, cfg.Commission)
	engine := split.NewEngine(ledgerSvc, store, store, resolver, cfg.PlatformWalletID)
	manager := withdrawal.NewManager(ledgerSvc, store, pixClient, cfg.Withdrawal, cfg.PlatformWalletID)
	rec := reconciler.NewReconciler(store, store, manager, sqsScheduler)

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	router := handlers.NewRouter(
		logger,
		wallets.NewWalletsHandler(ledgerSvc, store, pixClient),
		deliveries.NewDeliveriesHandler(engine),
		withdrawals.NewWithdrawalsHandler(manager, store),
		webhooks.NewWebhooksHandler(rec),
	)

	log.Printf("Starting server on port %s", cfg.HTTPPort)

	if err := http.ListenAndServe(":"+cfg.HTTPPort, router); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
