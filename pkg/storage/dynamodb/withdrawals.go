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
	"github.com/google/uuid"
	"github.com/rotafacil/wallet-core/pkg/models"
	"github.com/rotafacil/wallet-core/pkg/storage"
)

const (
	withdrawalByDriverGSI      = "driver_id-created_at-index"
	withdrawalByTransferRefGSI = "transfer_ref-index"
)

// CreateWithdrawal blocks the withdrawal amount on the driver wallet and
// persists the withdrawal row in one DynamoDB transaction. Either the funds
// are reserved and the row exists, or neither happened.
func (s *Store) CreateWithdrawal(ctx context.Context, w *models.Withdrawal) (*models.Withdrawal, error) {
	w.ID = uuid.New().String()
	w.Status = models.WithdrawalProcessing

	link := models.EntryLink{WithdrawalID: w.ID}

	_, _, err := s.applyWalletChange(ctx, w.WalletID, blockChange(w.Amount, link), func(now time.Time) ([]types.TransactWriteItem, error) {
		w.CreatedAt = now
		w.UpdatedAt = now
		withdrawalAV, err := attributevalue.MarshalMap(w)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal withdrawal: %w", err)
		}
		return []types.TransactWriteItem{{
			Put: &types.Put{
				TableName:           aws.String(s.Tables.Withdrawals),
				Item:                withdrawalAV,
				ConditionExpression: aws.String("attribute_not_exists(withdrawal_id)"),
			},
		}}, nil
	})
	if err != nil {
		return nil, err
	}

	return w, nil
}

// GetWithdrawal retrieves a withdrawal by its id.
func (s *Store) GetWithdrawal(ctx context.Context, withdrawalID string) (*models.Withdrawal, error) {
	key, err := attributevalue.MarshalMap(map[string]string{"withdrawal_id": withdrawalID})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal withdrawal id: %w", err)
	}

	result, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.Tables.Withdrawals),
		Key:       key,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get withdrawal from DynamoDB: %w", err)
	}
	if result.Item == nil {
		return nil, fmt.Errorf("withdrawal %s: %w", withdrawalID, storage.ErrReconciliationNotFound)
	}

	var w models.Withdrawal
	if err := attributevalue.UnmarshalMap(result.Item, &w); err != nil {
		return nil, fmt.Errorf("failed to unmarshal withdrawal: %w", err)
	}

	return &w, nil
}

// GetWithdrawalByTransferRef looks a withdrawal up by the provider's transfer
// reference.
func (s *Store) GetWithdrawalByTransferRef(ctx context.Context, transferRef string) (*models.Withdrawal, error) {
	result, err := s.Client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(s.Tables.Withdrawals),
		IndexName:              aws.String(withdrawalByTransferRefGSI),
		KeyConditionExpression: aws.String("transfer_ref = :ref"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":ref": &types.AttributeValueMemberS{Value: transferRef},
		},
		Limit: aws.Int32(1),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query withdrawal by transfer ref: %w", err)
	}
	if len(result.Items) == 0 {
		return nil, fmt.Errorf("transfer ref %s: %w", transferRef, storage.ErrReconciliationNotFound)
	}

	var w models.Withdrawal
	if err := attributevalue.UnmarshalMap(result.Items[0], &w); err != nil {
		return nil, fmt.Errorf("failed to unmarshal withdrawal: %w", err)
	}

	return &w, nil
}

// SetWithdrawalTransferRef records the provider transfer reference on a
// processing withdrawal.
func (s *Store) SetWithdrawalTransferRef(ctx context.Context, withdrawalID, transferRef string) error {
	_, err := s.Client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:           aws.String(s.Tables.Withdrawals),
		Key:                 map[string]types.AttributeValue{"withdrawal_id": &types.AttributeValueMemberS{Value: withdrawalID}},
		UpdateExpression:    aws.String("SET transfer_ref = :ref, updated_at = :now"),
		ConditionExpression: aws.String("attribute_exists(withdrawal_id)"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":ref": &types.AttributeValueMemberS{Value: transferRef},
			":now": &types.AttributeValueMemberS{Value: time.Now().UTC().Format(time.RFC3339Nano)},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to set transfer ref on withdrawal %s: %w", withdrawalID, err)
	}
	return nil
}

// CompleteWithdrawal confirms the blocked debit, credits the fee to the
// platform wallet and marks the withdrawal completed, atomically. A replayed
// confirmation finds the withdrawal already terminal and becomes a no-op.
func (s *Store) CompleteWithdrawal(ctx context.Context, w *models.Withdrawal, platformWalletID string) error {
	current, err := s.GetWithdrawal(ctx, w.ID)
	if err != nil {
		return err
	}
	if current.Status != models.WithdrawalProcessing {
		return fmt.Errorf("withdrawal %s is %s: %w", w.ID, current.Status, storage.ErrAlreadyProcessed)
	}

	link := models.EntryLink{WithdrawalID: current.ID}

	for attempt := 0; attempt < maxWalletAttempts; attempt++ {
		driverWallet, err := s.GetWallet(ctx, current.WalletID)
		if err != nil {
			return fmt.Errorf("failed to get driver wallet for completion: %w", err)
		}

		now := time.Now()

		confirm := confirmChange(current.Amount, models.EntryWithdrawal, link)
		if err := confirm.validate(driverWallet); err != nil {
			return err
		}
		confirmEntry := confirm.newEntry(driverWallet, now)
		confirmEntryItem, err := s.entryPutItem(confirmEntry)
		if err != nil {
			return err
		}

		items := []types.TransactWriteItem{
			s.walletUpdateItem(driverWallet, confirm, now),
			confirmEntryItem,
		}

		feeLegIndex := -1
		if current.Fee > 0 {
			platformWallet, err := s.GetWallet(ctx, platformWalletID)
			if err != nil {
				return fmt.Errorf("failed to get platform wallet for fee: %w", err)
			}
			feeChange := &walletChange{
				entryType:      models.EntryWithdrawalFee,
				direction:      models.DirectionCredit,
				amount:         current.Fee,
				link:           link,
				availableDelta: current.Fee,
			}
			feeEntry := feeChange.newEntry(platformWallet, now)
			feeEntryItem, err := s.entryPutItem(feeEntry)
			if err != nil {
				return err
			}
			feeLegIndex = len(items)
			items = append(items, s.walletUpdateItem(platformWallet, feeChange, now), feeEntryItem)
		}

		statusLegIndex := len(items)
		items = append(items, s.withdrawalTransitionItem(current.ID, models.WithdrawalCompleted, "", now))

		_, err = s.Client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{TransactItems: items})
		if err == nil {
			return nil
		}

		var txc *types.TransactionCanceledException
		if errors.As(err, &txc) {
			idx := failedItemIndex(txc)
			if idx == 0 || (feeLegIndex >= 0 && idx == feeLegIndex) {
				continue
			}
			if idx == statusLegIndex {
				return fmt.Errorf("withdrawal %s: %w", current.ID, storage.ErrAlreadyProcessed)
			}
		}
		return fmt.Errorf("failed to execute withdrawal completion: %w", err)
	}
	return storage.ErrConcurrentUpdate
}

// FailWithdrawal releases the blocked amount back to available and marks the
// withdrawal failed with the given reason, atomically. No funds remain
// blocked after a failure.
func (s *Store) FailWithdrawal(ctx context.Context, w *models.Withdrawal, reason string) error {
	current, err := s.GetWithdrawal(ctx, w.ID)
	if err != nil {
		return err
	}
	if current.Status != models.WithdrawalProcessing {
		return fmt.Errorf("withdrawal %s is %s: %w", w.ID, current.Status, storage.ErrAlreadyProcessed)
	}

	link := models.EntryLink{WithdrawalID: current.ID}

	_, _, err = s.applyWalletChange(ctx, current.WalletID, unblockChange(current.Amount, link), func(now time.Time) ([]types.TransactWriteItem, error) {
		return []types.TransactWriteItem{s.withdrawalTransitionItem(current.ID, models.WithdrawalFailed, reason, now)}, nil
	})
	if err != nil {
		if errors.Is(err, errExtraConditionFailed) {
			return fmt.Errorf("withdrawal %s: %w", current.ID, storage.ErrAlreadyProcessed)
		}
		return err
	}

	return nil
}

// ListWithdrawalsByDriverSince retrieves a driver's withdrawals created at or
// after the cutoff, most recent first.
func (s *Store) ListWithdrawalsByDriverSince(ctx context.Context, driverID string, since time.Time) ([]models.Withdrawal, error) {
	sinceStr, err := since.UTC().MarshalText()
	if err != nil {
		return nil, fmt.Errorf("failed to marshal cutoff time: %w", err)
	}

	result, err := s.Client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(s.Tables.Withdrawals),
		IndexName:              aws.String(withdrawalByDriverGSI),
		KeyConditionExpression: aws.String("driver_id = :driver_id AND created_at >= :since"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":driver_id": &types.AttributeValueMemberS{Value: driverID},
			":since":     &types.AttributeValueMemberS{Value: string(sinceStr)},
		},
		ScanIndexForward: aws.Bool(false),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query withdrawals by driver: %w", err)
	}

	var withdrawals []models.Withdrawal
	if err := attributevalue.UnmarshalListOfMaps(result.Items, &withdrawals); err != nil {
		return nil, fmt.Errorf("failed to unmarshal withdrawals: %w", err)
	}

	return withdrawals, nil
}

// withdrawalTransitionItem builds the conditional processing-to-terminal flip
// for a withdrawal row.
func (s *Store) withdrawalTransitionItem(withdrawalID string, to models.WithdrawalStatus, reason string, now time.Time) types.TransactWriteItem {
	update := "SET #status = :to, updated_at = :now"
	values := map[string]types.AttributeValue{
		":to":         &types.AttributeValueMemberS{Value: string(to)},
		":processing": &types.AttributeValueMemberS{Value: string(models.WithdrawalProcessing)},
		":now":        &types.AttributeValueMemberS{Value: now.UTC().Format(time.RFC3339Nano)},
	}
	if reason != "" {
		update += ", failure_reason = :reason"
		values[":reason"] = &types.AttributeValueMemberS{Value: reason}
	}
	return types.TransactWriteItem{
		Update: &types.Update{
			TableName:           aws.String(s.Tables.Withdrawals),
			Key:                 map[string]types.AttributeValue{"withdrawal_id": &types.AttributeValueMemberS{Value: withdrawalID}},
			UpdateExpression:    aws.String(update),
			ConditionExpression: aws.String("#status = :processing"),
			ExpressionAttributeNames: map[string]string{
				"#status": "status",
			},
			ExpressionAttributeValues: values,
		},
	}
}
