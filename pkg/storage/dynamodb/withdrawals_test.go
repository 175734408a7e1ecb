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

func withdrawalOutput(t *testing.T, w *models.Withdrawal) *dynamodb.GetItemOutput {
	t.Helper()
	item, err := attributevalue.MarshalMap(w)
	assert.NoError(t, err)
	return &dynamodb.GetItemOutput{Item: item}
}

func TestCreateWithdrawal(t *testing.T) {
	wallet := &models.Wallet{ID: "driver#d1", Available: 5000, Status: models.WalletActive, Version: 1}

	t.Run("BlocksAndPersistsAtomically", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, Tables: testTables}

		mockClient.On("GetItem", mock.Anything, mock.Anything).Once().Return(walletOutput(t, wallet), nil)
		mockClient.On("TransactWriteItems", mock.Anything, mock.MatchedBy(func(input *dynamodb.TransactWriteItemsInput) bool {
			// Wallet block, ledger entry, withdrawal row.
			return len(input.TransactItems) == 3
		})).Once().Return(&dynamodb.TransactWriteItemsOutput{}, nil)

		w, err := store.CreateWithdrawal(context.Background(), &models.Withdrawal{
			DriverID: "d1", WalletID: wallet.ID, Amount: 1000, Fee: 150, NetAmount: 850,
		})

		assert.NoError(t, err)
		assert.NotEmpty(t, w.ID)
		assert.Equal(t, models.WithdrawalProcessing, w.Status)
		mockClient.AssertExpectations(t)
	})

	t.Run("InsufficientBalance", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, Tables: testTables}

		mockClient.On("GetItem", mock.Anything, mock.Anything).Once().Return(walletOutput(t, wallet), nil)

		_, err := store.CreateWithdrawal(context.Background(), &models.Withdrawal{
			DriverID: "d1", WalletID: wallet.ID, Amount: 9000,
		})

		assert.ErrorIs(t, err, storage.ErrInsufficientBalance)
		mockClient.AssertNotCalled(t, "TransactWriteItems", mock.Anything, mock.Anything)
	})
}

func TestFailWithdrawal(t *testing.T) {
	processing := &models.Withdrawal{ID: "w1", DriverID: "d1", WalletID: "driver#d1", Amount: 5000, Status: models.WithdrawalProcessing}
	wallet := &models.Wallet{ID: "driver#d1", Available: 0, Blocked: 5000, Status: models.WalletActive, Version: 2}

	t.Run("ReleasesBlockedFunds", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, Tables: testTables}

		mockClient.On("GetItem", mock.Anything, mock.Anything).Once().Return(withdrawalOutput(t, processing), nil)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Once().Return(walletOutput(t, wallet), nil)
		mockClient.On("TransactWriteItems", mock.Anything, mock.MatchedBy(func(input *dynamodb.TransactWriteItemsInput) bool {
			// Wallet unblock, ledger entry, withdrawal status flip.
			return len(input.TransactItems) == 3
		})).Once().Return(&dynamodb.TransactWriteItemsOutput{}, nil)

		err := store.FailWithdrawal(context.Background(), processing, "provider rejected the key")

		assert.NoError(t, err)
		mockClient.AssertExpectations(t)
	})

	t.Run("AlreadyTerminal", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, Tables: testTables}

		failed := *processing
		failed.Status = models.WithdrawalFailed
		mockClient.On("GetItem", mock.Anything, mock.Anything).Once().Return(withdrawalOutput(t, &failed), nil)

		err := store.FailWithdrawal(context.Background(), processing, "late webhook")

		assert.ErrorIs(t, err, storage.ErrAlreadyProcessed)
		mockClient.AssertNotCalled(t, "TransactWriteItems", mock.Anything, mock.Anything)
	})
}

func TestCompleteWithdrawal(t *testing.T) {
	processing := &models.Withdrawal{ID: "w1", DriverID: "d1", WalletID: "driver#d1", Amount: 1000, Fee: 150, NetAmount: 850, Status: models.WithdrawalProcessing}
	driverWallet := &models.Wallet{ID: "driver#d1", Available: 200, Blocked: 1000, Status: models.WalletActive, Version: 4}
	platformWallet := &models.Wallet{ID: "platform#rotafacil", Available: 9000, Status: models.WalletActive, Version: 8}

	t.Run("ConfirmsDebitAndCreditsFee", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, Tables: testTables}

		mockClient.On("GetItem", mock.Anything, mock.Anything).Once().Return(withdrawalOutput(t, processing), nil)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Once().Return(walletOutput(t, driverWallet), nil)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Once().Return(walletOutput(t, platformWallet), nil)
		mockClient.On("TransactWriteItems", mock.Anything, mock.MatchedBy(func(input *dynamodb.TransactWriteItemsInput) bool {
			// Driver confirm + entry, platform fee credit + entry, status flip.
			return len(input.TransactItems) == 5
		})).Once().Return(&dynamodb.TransactWriteItemsOutput{}, nil)

		err := store.CompleteWithdrawal(context.Background(), processing, platformWallet.ID)

		assert.NoError(t, err)
		mockClient.AssertExpectations(t)
	})

	t.Run("ReplayedCompletion", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, Tables: testTables}

		completed := *processing
		completed.Status = models.WithdrawalCompleted
		mockClient.On("GetItem", mock.Anything, mock.Anything).Once().Return(withdrawalOutput(t, &completed), nil)

		err := store.CompleteWithdrawal(context.Background(), processing, platformWallet.ID)

		assert.ErrorIs(t, err, storage.ErrAlreadyProcessed)
		mockClient.AssertNotCalled(t, "TransactWriteItems", mock.Anything, mock.Anything)
	})

	t.Run("StatusFlipLostRace", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, Tables: testTables}

		mockClient.On("GetItem", mock.Anything, mock.Anything).Once().Return(withdrawalOutput(t, processing), nil)
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

		err := store.CompleteWithdrawal(context.Background(), processing, platformWallet.ID)

		assert.ErrorIs(t, err, storage.ErrAlreadyProcessed)
		mockClient.AssertExpectations(t)
	})
}
