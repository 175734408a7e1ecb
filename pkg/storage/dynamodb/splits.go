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
	"github.com/rotafacil/wallet-core/pkg/models"
	"github.com/rotafacil/wallet-core/pkg/storage"
)

const (
	splitByClosingKeyGSI = "closing_key-index"
	splitByChargeGSI     = "charge_id-index"
)

// CreateSplit persists a new split keyed by delivery id. The conditional put
// makes the delivery id the idempotency key: a concurrent or repeated call
// converges on the first record.
func (s *Store) CreateSplit(ctx context.Context, split *models.DeliverySplit) (*models.DeliverySplit, error) {
	splitAV, err := attributevalue.MarshalMap(split)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal split: %w", err)
	}

	input := &dynamodb.PutItemInput{
		TableName:           aws.String(s.Tables.Splits),
		Item:                splitAV,
		ConditionExpression: aws.String("attribute_not_exists(delivery_id)"),
	}

	if _, err := s.Client.PutItem(ctx, input); err != nil {
		var condCheckFailed *types.ConditionalCheckFailedException
		if errors.As(err, &condCheckFailed) {
			existing, getErr := s.GetSplitByDelivery(ctx, split.DeliveryID)
			if getErr != nil {
				return nil, getErr
			}
			return existing, storage.ErrAlreadyProcessed
		}
		return nil, fmt.Errorf("failed to create split in DynamoDB: %w", err)
	}

	return split, nil
}

// GetSplitByDelivery retrieves the split for a delivery, or nil when none
// exists.
func (s *Store) GetSplitByDelivery(ctx context.Context, deliveryID string) (*models.DeliverySplit, error) {
	key, err := attributevalue.MarshalMap(map[string]string{"delivery_id": deliveryID})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal delivery id: %w", err)
	}

	result, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.Tables.Splits),
		Key:       key,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get split from DynamoDB: %w", err)
	}
	if result.Item == nil {
		return nil, nil
	}

	var split models.DeliverySplit
	if err := attributevalue.UnmarshalMap(result.Item, &split); err != nil {
		return nil, fmt.Errorf("failed to unmarshal split: %w", err)
	}

	return &split, nil
}

// RecordSplitEntry stores one of the three ledger entry ids on the split so an
// interrupted immediate split resumes from the last completed step instead of
// re-debiting the company.
func (s *Store) RecordSplitEntry(ctx context.Context, deliveryID, field, entryID string) error {
	_, err := s.Client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:           aws.String(s.Tables.Splits),
		Key:                 map[string]types.AttributeValue{"delivery_id": &types.AttributeValueMemberS{Value: deliveryID}},
		UpdateExpression:    aws.String("SET #f = :id, updated_at = :now"),
		ConditionExpression: aws.String("attribute_exists(delivery_id)"),
		ExpressionAttributeNames: map[string]string{
			"#f": field,
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":id":  &types.AttributeValueMemberS{Value: entryID},
			":now": &types.AttributeValueMemberS{Value: time.Now().UTC().Format(time.RFC3339Nano)},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to record split entry %s: %w", field, err)
	}
	return nil
}

// MarkSplitProcessed flips processed false to true, exactly once.
func (s *Store) MarkSplitProcessed(ctx context.Context, deliveryID string) error {
	_, err := s.Client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:           aws.String(s.Tables.Splits),
		Key:                 map[string]types.AttributeValue{"delivery_id": &types.AttributeValueMemberS{Value: deliveryID}},
		UpdateExpression:    aws.String("SET processed = :true, updated_at = :now REMOVE closing_key"),
		ConditionExpression: aws.String("processed = :false"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":true":  &types.AttributeValueMemberBOOL{Value: true},
			":false": &types.AttributeValueMemberBOOL{Value: false},
			":now":   &types.AttributeValueMemberS{Value: time.Now().UTC().Format(time.RFC3339Nano)},
		},
	})
	if err != nil {
		var condCheckFailed *types.ConditionalCheckFailedException
		if errors.As(err, &condCheckFailed) {
			return fmt.Errorf("split %s: %w", deliveryID, storage.ErrAlreadyProcessed)
		}
		return fmt.Errorf("failed to mark split processed: %w", err)
	}
	return nil
}

// ListPendingClosing retrieves deferred splits awaiting a closing charge.
func (s *Store) ListPendingClosing(ctx context.Context) ([]models.DeliverySplit, error) {
	result, err := s.Client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(s.Tables.Splits),
		IndexName:              aws.String(splitByClosingKeyGSI),
		KeyConditionExpression: aws.String("closing_key = :pending"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pending": &types.AttributeValueMemberS{Value: models.ClosingPending},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query pending-closing splits: %w", err)
	}

	var splits []models.DeliverySplit
	if err := attributevalue.UnmarshalListOfMaps(result.Items, &splits); err != nil {
		return nil, fmt.Errorf("failed to unmarshal splits: %w", err)
	}

	return splits, nil
}

// AttachCharge stamps the closing charge onto a batch of splits. A split that
// already carries a charge is skipped, so a crashed closing run can be rerun
// safely.
func (s *Store) AttachCharge(ctx context.Context, deliveryIDs []string, chargeID string) error {
	for _, deliveryID := range deliveryIDs {
		_, err := s.Client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
			TableName:           aws.String(s.Tables.Splits),
			Key:                 map[string]types.AttributeValue{"delivery_id": &types.AttributeValueMemberS{Value: deliveryID}},
			UpdateExpression:    aws.String("SET charge_id = :charge_id, updated_at = :now REMOVE closing_key"),
			ConditionExpression: aws.String("attribute_not_exists(charge_id)"),
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":charge_id": &types.AttributeValueMemberS{Value: chargeID},
				":now":       &types.AttributeValueMemberS{Value: time.Now().UTC().Format(time.RFC3339Nano)},
			},
		})
		if err != nil {
			var condCheckFailed *types.ConditionalCheckFailedException
			if errors.As(err, &condCheckFailed) {
				continue
			}
			return fmt.Errorf("failed to attach charge to split %s: %w", deliveryID, err)
		}
	}
	return nil
}

// ListSplitsByCharge retrieves every split attached to a closing charge.
func (s *Store) ListSplitsByCharge(ctx context.Context, chargeID string) ([]models.DeliverySplit, error) {
	result, err := s.Client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(s.Tables.Splits),
		IndexName:              aws.String(splitByChargeGSI),
		KeyConditionExpression: aws.String("charge_id = :charge_id"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":charge_id": &types.AttributeValueMemberS{Value: chargeID},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query splits by charge: %w", err)
	}

	var splits []models.DeliverySplit
	if err := attributevalue.UnmarshalListOfMaps(result.Items, &splits); err != nil {
		return nil, fmt.Errorf("failed to unmarshal splits: %w", err)
	}

	return splits, nil
}

// SettleDeferredSplit credits the driver and platform wallets, appends both
// ledger entries and flips the split to processed, in one DynamoDB
// transaction. Each split settles exactly once regardless of how many times a
// confirmed closing charge is replayed.
func (s *Store) SettleDeferredSplit(ctx context.Context, split *models.DeliverySplit, platformWalletID string) error {
	for attempt := 0; attempt < maxWalletAttempts; attempt++ {
		driverWallet, err := s.GetWallet(ctx, models.WalletID(models.OwnerDriver, split.DriverID))
		if err != nil {
			return fmt.Errorf("failed to get driver wallet for settlement: %w", err)
		}
		platformWallet, err := s.GetWallet(ctx, platformWalletID)
		if err != nil {
			return fmt.Errorf("failed to get platform wallet for settlement: %w", err)
		}

		now := time.Now()
		link := models.EntryLink{DeliveryID: split.DeliveryID, ChargeID: split.ChargeID}

		driverChange := &walletChange{
			entryType:      models.EntryDeliveryCredit,
			direction:      models.DirectionCredit,
			amount:         split.DriverAmount,
			link:           link,
			availableDelta: split.DriverAmount,
			requireActive:  true,
		}
		if err := driverChange.validate(driverWallet); err != nil {
			return err
		}
		driverEntry := driverChange.newEntry(driverWallet, now)
		driverEntryItem, err := s.entryPutItem(driverEntry)
		if err != nil {
			return err
		}

		commissionChange := &walletChange{
			entryType:      models.EntryCommission,
			direction:      models.DirectionCredit,
			amount:         split.CommissionAmount,
			link:           link,
			availableDelta: split.CommissionAmount,
		}
		commissionEntry := commissionChange.newEntry(platformWallet, now)
		commissionEntryItem, err := s.entryPutItem(commissionEntry)
		if err != nil {
			return err
		}

		processedItem := types.TransactWriteItem{
			Update: &types.Update{
				TableName:           aws.String(s.Tables.Splits),
				Key:                 map[string]types.AttributeValue{"delivery_id": &types.AttributeValueMemberS{Value: split.DeliveryID}},
				UpdateExpression:    aws.String("SET processed = :true, driver_credit_entry_id = :driver_entry, commission_credit_entry_id = :commission_entry, updated_at = :now REMOVE closing_key"),
				ConditionExpression: aws.String("processed = :false"),
				ExpressionAttributeValues: map[string]types.AttributeValue{
					":true":             &types.AttributeValueMemberBOOL{Value: true},
					":false":            &types.AttributeValueMemberBOOL{Value: false},
					":driver_entry":     &types.AttributeValueMemberS{Value: driverEntry.EntryID},
					":commission_entry": &types.AttributeValueMemberS{Value: commissionEntry.EntryID},
					":now":              &types.AttributeValueMemberS{Value: now.UTC().Format(time.RFC3339Nano)},
				},
			},
		}

		items := []types.TransactWriteItem{
			s.walletUpdateItem(driverWallet, driverChange, now),
			driverEntryItem,
			s.walletUpdateItem(platformWallet, commissionChange, now),
			commissionEntryItem,
			processedItem,
		}

		_, err = s.Client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{TransactItems: items})
		if err == nil {
			return nil
		}

		var txc *types.TransactionCanceledException
		if errors.As(err, &txc) {
			switch failedItemIndex(txc) {
			case 0, 2:
				// Lost a wallet version race; re-read and retry.
				continue
			case 4:
				return fmt.Errorf("split %s: %w", split.DeliveryID, storage.ErrAlreadyProcessed)
			}
		}
		return fmt.Errorf("failed to execute deferred settlement: %w", err)
	}
	return storage.ErrConcurrentUpdate
}
