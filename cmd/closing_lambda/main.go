package main

import (
	"context"
	"log"
	"time"

	"github.com/aws/aws-lambda-go/lambda"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/rotafacil/wallet-core/pkg/config"
	"github.com/rotafacil/wallet-core/pkg/gateway"
	"github.com/rotafacil/wallet-core/pkg/models"
	"github.com/rotafacil/wallet-core/pkg/storage"
	dydbstore "github.com/rotafacil/wallet-core/pkg/storage/dynamodb"
)

var (
	store     storage.Storage
	pixClient gateway.Client
)

func init() {
	// Load environment variables for local testing.
	godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.TODO())
	if err != nil {
		log.Fatalf("unable to load SDK config, %v", err)
	}

	store = dydbstore.New(dynamodb.NewFromConfig(awsCfg), cfg.Tables)
	pixClient = gateway.NewPixClient(cfg.Gateway)
}

// HandleRequest is triggered by an EventBridge Schedule. It groups unbilled
// post-paid splits per company and issues one closing charge for each batch;
// the reconciler settles the batch when the charge is paid.
func HandleRequest(ctx context.Context) error {
	log.Println("Starting closing process for deferred splits...")

	pending, err := store.ListPendingClosing(ctx)
	if err != nil {
		log.Printf("ERROR: failed to list pending splits: %v", err)
		return err
	}
	if len(pending) == 0 {
		log.Println("No deferred splits awaiting closing.")
		return nil
	}

	byCompany := make(map[string][]models.DeliverySplit)
	for _, split := range pending {
		byCompany[split.CompanyID] = append(byCompany[split.CompanyID], split)
	}

	log.Printf("Found %d deferred splits across %d companies.", len(pending), len(byCompany))

	for companyID, splits := range byCompany {
		if err := closeCompanyBatch(ctx, companyID, splits); err != nil {
			log.Printf("ERROR: failed to close batch for company %s: %v", companyID, err)
			// Continue to the next company, don't let one failure stop the whole batch.
			continue
		}
	}

	log.Println("Closing process finished.")
	return nil
}

// closeCompanyBatch creates one closing charge covering the company's splits
// and stamps it onto each of them. Splits that picked up a charge from a
// concurrent run are skipped by the attach step.
func closeCompanyBatch(ctx context.Context, companyID string, splits []models.DeliverySplit) error {
	var total models.Cents
	deliveryIDs := make([]string, len(splits))
	for i, split := range splits {
		total += split.TotalAmount
		deliveryIDs[i] = split.DeliveryID
	}

	wallet, err := store.GetOrCreateWallet(ctx, models.OwnerCompany, companyID)
	if err != nil {
		return err
	}

	reference := uuid.New().String()
	result, err := pixClient.CreateCharge(ctx, total, reference)
	if err != nil {
		return err
	}

	now := time.Now()
	charge, err := store.CreateCharge(ctx, &models.Charge{
		ID:          reference,
		WalletID:    wallet.ID,
		Type:        models.ChargeClosing,
		Amount:      total,
		ProviderRef: result.ChargeRef,
		Status:      models.ChargeWaitingPayment,
		QRCode:      result.QRCode,
		BRCode:      result.BRCode,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return err
	}

	if err := store.AttachCharge(ctx, deliveryIDs, charge.ID); err != nil {
		return err
	}

	log.Printf("Issued closing charge %s for company %s covering %d deliveries (%s)", charge.ID, companyID, len(deliveryIDs), total)
	return nil
}

func main() {
	lambda.Start(HandleRequest)
}
