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

// GetOrCreateWallet returns the wallet for the owner, inserting it atomically
// when absent. The conditional put is the insert-if-absent primitive: a loser
// of a concurrent race simply reads the winner's row.
func (s *Store) GetOrCreateWallet(ctx context.Context, ownerType models.OwnerType, ownerID string) (*models.Wallet, error) {
	walletID := models.WalletID(ownerType, ownerID)

	existing, err := s.GetWallet(ctx, walletID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, storage.ErrWalletNotFound) {
		return nil, err
	}

	now := time.Now()
	wallet := &models.Wallet{
		ID:        walletID,
		OwnerID:   ownerID,
		OwnerType: ownerType,
		Available: 0,
		Blocked:   0,
		Status:    models.WalletActive,
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}

	walletAV, err := attributevalue.MarshalMap(wallet)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal wallet: %w", err)
	}

	input := &dynamodb.PutItemInput{
		TableName:           aws.String(s.Tables.Wallets),
		Item:                walletAV,
		ConditionExpression: aws.String("attribute_not_exists(wallet_id)"),
	}

	_, err = s.Client.PutItem(ctx, input)
	if err != nil {
		var condCheckFailed *types.ConditionalCheckFailedException
		if errors.As(err, &condCheckFailed) {
			// A concurrent caller won the insert; converge on their row.
			winner, getErr := s.GetWallet(ctx, walletID)
			if getErr != nil {
				return nil, fmt.Errorf("%w: %v", storage.ErrWalletCreationConflict, getErr)
			}
			return winner, nil
		}
		return nil, fmt.Errorf("failed to create wallet in DynamoDB: %w", err)
	}

	return wallet, nil
}

// GetWallet retrieves a wallet from DynamoDB by its id.
func (s *Store) GetWallet(ctx context.Context, walletID string) (*models.Wallet, error) {
	key, err := attributevalue.MarshalMap(map[string]string{"wallet_id": walletID})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal wallet id: %w", err)
	}

	input := &dynamodb.GetItemInput{
		TableName: aws.String(s.Tables.Wallets),
		Key:       key,
	}

	result, err := s.Client.GetItem(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to get wallet from DynamoDB: %w", err)
	}

	if result.Item == nil {
		return nil, fmt.Errorf("wallet %s: %w", walletID, storage.ErrWalletNotFound)
	}

	var wallet models.Wallet
	if err := attributevalue.UnmarshalMap(result.Item, &wallet); err != nil {
		return nil, fmt.Errorf("failed to unmarshal wallet: %w", err)
	}

	return &wallet, nil
}
