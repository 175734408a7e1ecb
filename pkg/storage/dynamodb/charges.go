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

const chargeByProviderRefGSI = "provider_ref-index"

// CreateCharge persists a new charge in waiting_payment.
func (s *Store) CreateCharge(ctx context.Context, charge *models.Charge) (*models.Charge, error) {
	chargeAV, err := attributevalue.MarshalMap(charge)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal charge: %w", err)
	}

	input := &dynamodb.PutItemInput{
		TableName:           aws.String(s.Tables.Charges),
		Item:                chargeAV,
		ConditionExpression: aws.String("attribute_not_exists(charge_id)"),
	}

	if _, err := s.Client.PutItem(ctx, input); err != nil {
		return nil, fmt.Errorf("failed to create charge in DynamoDB: %w", err)
	}

	return charge, nil
}

// GetCharge retrieves a charge by its id.
func (s *Store) GetCharge(ctx context.Context, chargeID string) (*models.Charge, error) {
	key, err := attributevalue.MarshalMap(map[string]string{"charge_id": chargeID})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal charge id: %w", err)
	}

	result, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.Tables.Charges),
		Key:       key,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get charge from DynamoDB: %w", err)
	}
	if result.Item == nil {
		return nil, fmt.Errorf("charge %s: %w", chargeID, storage.ErrReconciliationNotFound)
	}

	var charge models.Charge
	if err := attributevalue.UnmarshalMap(result.Item, &charge); err != nil {
		return nil, fmt.Errorf("failed to unmarshal charge: %w", err)
	}

	return &charge, nil
}

// GetChargeByProviderRef looks a charge up by the settlement provider's
// reference id.
func (s *Store) GetChargeByProviderRef(ctx context.Context, providerRef string) (*models.Charge, error) {
	result, err := s.Client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(s.Tables.Charges),
		IndexName:              aws.String(chargeByProviderRefGSI),
		KeyConditionExpression: aws.String("provider_ref = :ref"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":ref": &types.AttributeValueMemberS{Value: providerRef},
		},
		Limit: aws.Int32(1),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query charge by provider ref: %w", err)
	}
	if len(result.Items) == 0 {
		return nil, fmt.Errorf("provider ref %s: %w", providerRef, storage.ErrReconciliationNotFound)
	}

	var charge models.Charge
	if err := attributevalue.UnmarshalMap(result.Items[0], &charge); err != nil {
		return nil, fmt.Errorf("failed to unmarshal charge: %w", err)
	}

	return &charge, nil
}

// ConfirmRechargeCharge transitions a recharge charge to confirmed and
// credits its wallet in one DynamoDB transaction. Replayed confirmations find
// the charge already out of waiting_payment and become no-ops.
func (s *Store) ConfirmRechargeCharge(ctx context.Context, charge *models.Charge) (*models.Wallet, *models.LedgerEntry, error) {
	current, err := s.GetCharge(ctx, charge.ID)
	if err != nil {
		return nil, nil, err
	}
	if current.Status != models.ChargeWaitingPayment && current.Status != models.ChargeOverdue {
		return nil, nil, fmt.Errorf("charge %s is %s: %w", charge.ID, current.Status, storage.ErrAlreadyProcessed)
	}

	change := &walletChange{
		entryType:      models.EntryRecharge,
		direction:      models.DirectionCredit,
		amount:         current.Amount,
		link:           models.EntryLink{ChargeID: current.ID},
		availableDelta: current.Amount,
		requireActive:  true,
	}

	wallet, entry, err := s.applyWalletChange(ctx, current.WalletID, change, func(now time.Time) ([]types.TransactWriteItem, error) {
		return []types.TransactWriteItem{s.chargeTransitionItem(current.ID, models.ChargeConfirmed, now, true)}, nil
	})
	if err != nil {
		if errors.Is(err, errExtraConditionFailed) {
			return nil, nil, fmt.Errorf("charge %s: %w", charge.ID, storage.ErrAlreadyProcessed)
		}
		return nil, nil, err
	}

	return wallet, entry, nil
}

// TransitionCharge moves a charge to the given status without touching
// balances.
func (s *Store) TransitionCharge(ctx context.Context, chargeID string, to models.ChargeStatus) error {
	item := s.chargeTransitionItem(chargeID, to, time.Now(), to == models.ChargeConfirmed)

	_, err := s.Client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 item.Update.TableName,
		Key:                       item.Update.Key,
		UpdateExpression:          item.Update.UpdateExpression,
		ConditionExpression:       item.Update.ConditionExpression,
		ExpressionAttributeNames:  item.Update.ExpressionAttributeNames,
		ExpressionAttributeValues: item.Update.ExpressionAttributeValues,
	})
	if err != nil {
		var condCheckFailed *types.ConditionalCheckFailedException
		if errors.As(err, &condCheckFailed) {
			return fmt.Errorf("charge %s already %s: %w", chargeID, to, storage.ErrAlreadyProcessed)
		}
		return fmt.Errorf("failed to transition charge %s: %w", chargeID, err)
	}

	return nil
}

// chargeTransitionItem builds the conditional status flip for a charge. The
// condition excludes the target status so replays are detectable, and a
// confirmation also stamps paid_at.
func (s *Store) chargeTransitionItem(chargeID string, to models.ChargeStatus, now time.Time, paid bool) types.TransactWriteItem {
	nowStr := now.UTC().Format(time.RFC3339Nano)
	update := "SET #status = :to, updated_at = :now"
	values := map[string]types.AttributeValue{
		":to":  &types.AttributeValueMemberS{Value: string(to)},
		":now": &types.AttributeValueMemberS{Value: nowStr},
	}
	if paid {
		update += ", paid_at = :paid"
		values[":paid"] = &types.AttributeValueMemberS{Value: nowStr}
	}
	return types.TransactWriteItem{
		Update: &types.Update{
			TableName:           aws.String(s.Tables.Charges),
			Key:                 map[string]types.AttributeValue{"charge_id": &types.AttributeValueMemberS{Value: chargeID}},
			UpdateExpression:    aws.String(update),
			ConditionExpression: aws.String("#status <> :to"),
			ExpressionAttributeNames: map[string]string{
				"#status": "status",
			},
			ExpressionAttributeValues: values,
		},
	}
}
