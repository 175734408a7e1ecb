package dynamodb

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/rotafacil/wallet-core/pkg/models"
)

const tierKeyPrefix = "tier#"

func deliveryCountKey(driverID, monthKey string) string {
	return fmt.Sprintf("count#%s#%s", driverID, monthKey)
}

// IncrementDeliveryCount bumps the driver's monthly delivery counter. ADD
// creates the counter on first use, so no separate initialisation exists.
func (s *Store) IncrementDeliveryCount(ctx context.Context, driverID, monthKey string) error {
	_, err := s.Client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:        aws.String(s.Tables.Stats),
		Key:              map[string]types.AttributeValue{"id": &types.AttributeValueMemberS{Value: deliveryCountKey(driverID, monthKey)}},
		UpdateExpression: aws.String("ADD delivery_count :one"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":one": &types.AttributeValueMemberN{Value: "1"},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to increment delivery count: %w", err)
	}
	return nil
}

// GetDeliveryCount reads the driver's monthly delivery counter; a missing
// counter reads as zero.
func (s *Store) GetDeliveryCount(ctx context.Context, driverID, monthKey string) (int64, error) {
	result, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.Tables.Stats),
		Key:       map[string]types.AttributeValue{"id": &types.AttributeValueMemberS{Value: deliveryCountKey(driverID, monthKey)}},
	})
	if err != nil {
		return 0, fmt.Errorf("failed to get delivery count: %w", err)
	}
	if result.Item == nil {
		return 0, nil
	}

	var record struct {
		DeliveryCount int64 `dynamodbav:"delivery_count"`
	}
	if err := attributevalue.UnmarshalMap(result.Item, &record); err != nil {
		return 0, fmt.Errorf("failed to unmarshal delivery count: %w", err)
	}

	return record.DeliveryCount, nil
}

// ListCommissionTiers retrieves every configured commission tier.
func (s *Store) ListCommissionTiers(ctx context.Context) ([]models.CommissionTier, error) {
	result, err := s.Client.Scan(ctx, &dynamodb.ScanInput{
		TableName:        aws.String(s.Tables.Stats),
		FilterExpression: aws.String("begins_with(id, :prefix)"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":prefix": &types.AttributeValueMemberS{Value: tierKeyPrefix},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan commission tiers: %w", err)
	}

	var tiers []models.CommissionTier
	if err := attributevalue.UnmarshalListOfMaps(result.Items, &tiers); err != nil {
		return nil, fmt.Errorf("failed to unmarshal commission tiers: %w", err)
	}

	return tiers, nil
}
