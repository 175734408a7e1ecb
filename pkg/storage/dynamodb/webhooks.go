package dynamodb

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
	"github.com/rotafacil/wallet-core/pkg/models"
)

// LogEvent durably stores the raw inbound event before any side effect runs.
func (s *Store) LogEvent(ctx context.Context, event *models.WebhookEvent) (*models.WebhookEvent, error) {
	event.ID = uuid.New().String()
	event.ReceivedAt = time.Now()
	event.Processed = false

	eventAV, err := attributevalue.MarshalMap(event)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal webhook event: %w", err)
	}

	input := &dynamodb.PutItemInput{
		TableName:           aws.String(s.Tables.Events),
		Item:                eventAV,
		ConditionExpression: aws.String("attribute_not_exists(event_id)"),
	}

	if _, err := s.Client.PutItem(ctx, input); err != nil {
		return nil, fmt.Errorf("failed to log webhook event: %w", err)
	}

	return event, nil
}

// MarkEventProcessed records the processing outcome on the logged event.
func (s *Store) MarkEventProcessed(ctx context.Context, eventID string, processed bool, errorMessage string) error {
	now := time.Now().UTC().Format(time.RFC3339Nano)
	update := "SET processed = :processed, processed_at = :now"
	values := map[string]types.AttributeValue{
		":processed": &types.AttributeValueMemberBOOL{Value: processed},
		":now":       &types.AttributeValueMemberS{Value: now},
	}
	if errorMessage != "" {
		update += ", error_message = :msg"
		values[":msg"] = &types.AttributeValueMemberS{Value: errorMessage}
	}

	_, err := s.Client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(s.Tables.Events),
		Key:                       map[string]types.AttributeValue{"event_id": &types.AttributeValueMemberS{Value: eventID}},
		UpdateExpression:          aws.String(update),
		ConditionExpression:       aws.String("attribute_exists(event_id)"),
		ExpressionAttributeValues: values,
	})
	if err != nil {
		return fmt.Errorf("failed to mark webhook event %s: %w", eventID, err)
	}

	return nil
}
