package dynamodb

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/rotafacil/wallet-core/pkg/models"
	"github.com/rotafacil/wallet-core/pkg/storage"
	"github.com/rotafacil/wallet-core/pkg/storage/dynamodb/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestCreateSplit(t *testing.T) {
	split := &models.DeliverySplit{DeliveryID: "del-1", CompanyID: "c1", DriverID: "d1", TotalAmount: 3000}

	t.Run("Success", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, Tables: testTables}

		mockClient.On("PutItem", mock.Anything, mock.MatchedBy(func(input *dynamodb.PutItemInput) bool {
			return *input.ConditionExpression == "attribute_not_exists(delivery_id)"
		})).Once().Return(&dynamodb.PutItemOutput{}, nil)

		created, err := store.CreateSplit(context.Background(), split)

		assert.NoError(t, err)
		assert.Equal(t, split, created)
		mockClient.AssertExpectations(t)
	})

	t.Run("DuplicateConvergesOnFirstRecord", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, Tables: testTables}

		existing := &models.DeliverySplit{DeliveryID: "del-1", TotalAmount: 3000, Processed: true}
		existingItem, marshalErr := attributevalue.MarshalMap(existing)
		assert.NoError(t, marshalErr)

		mockClient.On("PutItem", mock.Anything, mock.Anything).Once().Return(nil, &types.ConditionalCheckFailedException{})
		mockClient.On("GetItem", mock.Anything, mock.Anything).Once().Return(&dynamodb.GetItemOutput{Item: existingItem}, nil)

		got, err := store.CreateSplit(context.Background(), split)

		assert.ErrorIs(t, err, storage.ErrAlreadyProcessed)
		assert.True(t, got.Processed)
	})
}

func TestSettleDeferredSplit(t *testing.T) {
	split := &models.DeliverySplit{
		DeliveryID:       "del-1",
		DriverID:         "d1",
		ChargeID:         "ch1",
		TotalAmount:      3000,
		DriverAmount:     2400,
		CommissionAmount: 600,
	}
	driverWallet := &models.Wallet{ID: "driver#d1", Available: 0, Status: models.WalletActive, Version: 1}
	platformWallet := &models.Wallet{ID: "platform#rotafacil", Available: 5000, Status: models.WalletActive, Version: 3}

	t.Run("Success", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, Tables: testTables}

		mockClient.On("GetItem", mock.Anything, mock.Anything).Once().Return(walletOutput(t, driverWallet), nil)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Once().Return(walletOutput(t, platformWallet), nil)
		mockClient.On("TransactWriteItems", mock.Anything, mock.MatchedBy(func(input *dynamodb.TransactWriteItemsInput) bool {
			// Driver credit + entry, platform credit + entry, processed flip.
			return len(input.TransactItems) == 5
		})).Once().Return(&dynamodb.TransactWriteItemsOutput{}, nil)

		err := store.SettleDeferredSplit(context.Background(), split, platformWallet.ID)

		assert.NoError(t, err)
		mockClient.AssertExpectations(t)
	})

	t.Run("ReplayLosesProcessedFlip", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, Tables: testTables}

		mockClient.On("GetItem", mock.Anything, mock.Anything).Once().Return(walletOutput(t, driverWallet), nil)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Once().Return(walletOutput(t, platformWallet), nil)
		mockClient.On("TransactWriteItems", mock.Anything, mock.Anything).Once().Return(nil, &types.TransactionCanceledException{
			CancellationReasons: []types.CancellationReason{
				{Code: aws.String("None")},
				{Code: aws.String("None")},
				{Code: aws.String("None")},
				{Code: aws.String("None")},
				{Code: aws.String("ConditionalCheckFailed")},
			},
		})

		err := store.SettleDeferredSplit(context.Background(), split, platformWallet.ID)

		assert.ErrorIs(t, err, storage.ErrAlreadyProcessed)
	})

	t.Run("RetriesOnWalletVersionRace", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, Tables: testTables}

		mockClient.On("GetItem", mock.Anything, mock.Anything).Times(4).Return(walletOutput(t, driverWallet), nil)
		mockClient.On("TransactWriteItems", mock.Anything, mock.Anything).Once().Return(nil, &types.TransactionCanceledException{
			CancellationReasons: []types.CancellationReason{
				{Code: aws.String("ConditionalCheckFailed")},
				{Code: aws.String("None")},
				{Code: aws.String("None")},
				{Code: aws.String("None")},
				{Code: aws.String("None")},
			},
		})
		mockClient.On("TransactWriteItems", mock.Anything, mock.Anything).Once().Return(&dynamodb.TransactWriteItemsOutput{}, nil)

		err := store.SettleDeferredSplit(context.Background(), split, platformWallet.ID)

		assert.NoError(t, err)
		mockClient.AssertExpectations(t)
	})
}

func TestMarkSplitProcessed(t *testing.T) {
	t.Run("SecondFlipIsRejected", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, Tables: testTables}

		mockClient.On("UpdateItem", mock.Anything, mock.Anything).Once().Return(nil, &types.ConditionalCheckFailedException{})

		err := store.MarkSplitProcessed(context.Background(), "del-1")

		assert.ErrorIs(t, err, storage.ErrAlreadyProcessed)
	})
}

func TestAttachCharge(t *testing.T) {
	t.Run("SkipsAlreadyAttached", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, Tables: testTables}

		mockClient.On("UpdateItem", mock.Anything, mock.Anything).Once().Return(nil, &types.ConditionalCheckFailedException{})
		mockClient.On("UpdateItem", mock.Anything, mock.Anything).Once().Return(&dynamodb.UpdateItemOutput{}, nil)

		err := store.AttachCharge(context.Background(), []string{"del-1", "del-2"}, "ch1")

		assert.NoError(t, err)
		mockClient.AssertExpectations(t)
	})
}
