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

// maxWalletAttempts bounds the optimistic-concurrency retry loop. A lost
// version race re-reads the wallet and retries; genuine validation failures
// surface immediately.
const maxWalletAttempts = 3

// walletChange describes one atomic balance mutation and the ledger entry it
// appends. The five public wallet operations are all expressed through it, as
// are the wallet legs of the multi-item withdrawal and charge transactions.
type walletChange struct {
	entryType      models.EntryType
	direction      models.EntryDirection
	amount         models.Cents
	link           models.EntryLink
	availableDelta models.Cents
	blockedDelta   models.Cents
	requireActive  bool
	allowNegative  bool
	fromBlocked    bool
	snapshotTotal  bool
}

// validate checks the change against a freshly read wallet. It must hold
// under the same read that feeds the version condition, so a pre-check
// failure means the operation would fail, not that it raced.
func (c *walletChange) validate(w *models.Wallet) error {
	if c.amount <= 0 {
		return fmt.Errorf("amount %s: %w", c.amount, storage.ErrInvalidAmount)
	}
	if c.requireActive && w.Status != models.WalletActive {
		return fmt.Errorf("wallet %s: %w", w.ID, storage.ErrWalletInactive)
	}
	if c.fromBlocked {
		if w.Blocked < c.amount {
			return fmt.Errorf("wallet %s blocked %s, required %s: %w", w.ID, w.Blocked, c.amount, storage.ErrInsufficientBalance)
		}
		return nil
	}
	if c.availableDelta < 0 && !c.allowNegative && w.Available < c.amount {
		return fmt.Errorf("wallet %s available %s, required %s: %w", w.ID, w.Available, c.amount, storage.ErrInsufficientBalance)
	}
	return nil
}

// newEntry builds the ledger entry for the change using the wallet state the
// version condition was read from.
func (c *walletChange) newEntry(w *models.Wallet, now time.Time) *models.LedgerEntry {
	previous := w.Available
	next := w.Available + c.availableDelta
	if c.snapshotTotal {
		previous = w.Total()
		next = w.Total() + c.availableDelta + c.blockedDelta
	}
	return &models.LedgerEntry{
		EntryID:         uuid.New().String(),
		WalletID:        w.ID,
		Type:            c.entryType,
		Direction:       c.direction,
		Status:          models.EntryCompleted,
		Amount:          c.amount,
		PreviousBalance: previous,
		NewBalance:      next,
		Link:            c.link,
		ProcessedAt:     now,
	}
}

// walletUpdateItem builds the conditional wallet update leg of a transaction.
// The version condition guarantees the balances the entry snapshot was built
// from are the balances being mutated.
func (s *Store) walletUpdateItem(w *models.Wallet, c *walletChange, now time.Time) types.TransactWriteItem {
	return types.TransactWriteItem{
		Update: &types.Update{
			TableName: aws.String(s.Tables.Wallets),
			Key: map[string]types.AttributeValue{
				"wallet_id": &types.AttributeValueMemberS{Value: w.ID},
			},
			UpdateExpression:    aws.String("SET available = available + :da, blocked = blocked + :db, version = version + :inc, updated_at = :now"),
			ConditionExpression: aws.String("version = :version"),
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":da":      &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", c.availableDelta)},
				":db":      &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", c.blockedDelta)},
				":version": &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", w.Version)},
				":inc":     &types.AttributeValueMemberN{Value: "1"},
				":now":     &types.AttributeValueMemberS{Value: now.UTC().Format(time.RFC3339Nano)},
			},
		},
	}
}

// entryPutItem builds the append-only ledger put leg of a transaction.
func (s *Store) entryPutItem(entry *models.LedgerEntry) (types.TransactWriteItem, error) {
	entryAV, err := attributevalue.MarshalMap(entry)
	if err != nil {
		return types.TransactWriteItem{}, fmt.Errorf("failed to marshal ledger entry: %w", err)
	}
	return types.TransactWriteItem{
		Put: &types.Put{
			TableName:           aws.String(s.Tables.Ledger),
			Item:                entryAV,
			ConditionExpression: aws.String("attribute_not_exists(entry_id)"),
		},
	}, nil
}

// errExtraConditionFailed signals that a rider leg's condition failed rather
// than the wallet's version check. Callers map it to their own semantics,
// usually ErrAlreadyProcessed for a status flip that already happened.
var errExtraConditionFailed = errors.New("transaction rider condition failed")

// extraItemsFn builds the additional transaction legs (a withdrawal row, a
// charge or split status flip) that ride on a wallet mutation. It is invoked
// once per optimistic attempt so timestamps and conditions stay fresh.
type extraItemsFn func(now time.Time) ([]types.TransactWriteItem, error)

// applyWalletChange executes one balance mutation as a single DynamoDB
// transaction: the wallet update and the ledger entry land together or not at
// all. A lost version race on the wallet leg is retried; a failed rider
// condition surfaces as errExtraConditionFailed.
func (s *Store) applyWalletChange(ctx context.Context, walletID string, c *walletChange, extra extraItemsFn) (*models.Wallet, *models.LedgerEntry, error) {
	for attempt := 0; attempt < maxWalletAttempts; attempt++ {
		wallet, err := s.GetWallet(ctx, walletID)
		if err != nil {
			return nil, nil, err
		}

		if err := c.validate(wallet); err != nil {
			return nil, nil, err
		}

		now := time.Now()
		entry := c.newEntry(wallet, now)

		entryItem, err := s.entryPutItem(entry)
		if err != nil {
			return nil, nil, err
		}

		items := []types.TransactWriteItem{s.walletUpdateItem(wallet, c, now), entryItem}
		if extra != nil {
			extraItems, err := extra(now)
			if err != nil {
				return nil, nil, err
			}
			items = append(items, extraItems...)
		}

		_, err = s.Client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{TransactItems: items})
		if err == nil {
			wallet.Available += c.availableDelta
			wallet.Blocked += c.blockedDelta
			wallet.Version++
			wallet.UpdatedAt = now
			return wallet, entry, nil
		}

		var txc *types.TransactionCanceledException
		if errors.As(err, &txc) {
			switch failedItemIndex(txc) {
			case 0:
				// Lost the version race; re-read and retry.
				continue
			case -1:
				// Cancelled for a non-conditional reason.
			default:
				return nil, nil, errExtraConditionFailed
			}
		}
		return nil, nil, fmt.Errorf("failed to execute wallet transaction: %w", err)
	}
	return nil, nil, storage.ErrConcurrentUpdate
}

// failedItemIndex returns the index of the first leg whose condition failed,
// or -1 when the cancellation was not a conditional check.
func failedItemIndex(txc *types.TransactionCanceledException) int {
	for i, reason := range txc.CancellationReasons {
		if reason.Code != nil && *reason.Code == "ConditionalCheckFailed" {
			return i
		}
	}
	return -1
}

// Credit increases the available balance and appends a credit entry.
func (s *Store) Credit(ctx context.Context, walletID string, amount models.Cents, entryType models.EntryType, link models.EntryLink) (*models.Wallet, *models.LedgerEntry, error) {
	return s.applyWalletChange(ctx, walletID, &walletChange{
		entryType:      entryType,
		direction:      models.DirectionCredit,
		amount:         amount,
		link:           link,
		availableDelta: amount,
		requireActive:  true,
	}, nil)
}

// Debit decreases the available balance and appends a debit entry. With
// allowNegative set the balance guard is waived for the designated post-paid
// flow.
func (s *Store) Debit(ctx context.Context, walletID string, amount models.Cents, entryType models.EntryType, link models.EntryLink, allowNegative bool) (*models.Wallet, *models.LedgerEntry, error) {
	return s.applyWalletChange(ctx, walletID, &walletChange{
		entryType:      entryType,
		direction:      models.DirectionDebit,
		amount:         amount,
		link:           link,
		availableDelta: -amount,
		requireActive:  true,
		allowNegative:  allowNegative,
	}, nil)
}

// BlockBalance moves amount from available to blocked.
func (s *Store) BlockBalance(ctx context.Context, walletID string, amount models.Cents, link models.EntryLink) (*models.Wallet, *models.LedgerEntry, error) {
	return s.applyWalletChange(ctx, walletID, blockChange(amount, link), nil)
}

// UnblockBalance moves amount from blocked back to available.
func (s *Store) UnblockBalance(ctx context.Context, walletID string, amount models.Cents, link models.EntryLink) (*models.Wallet, *models.LedgerEntry, error) {
	return s.applyWalletChange(ctx, walletID, unblockChange(amount, link), nil)
}

// ConfirmBlockedDebit removes amount from blocked permanently. The entry's
// balance snapshot uses the combined available+blocked total.
func (s *Store) ConfirmBlockedDebit(ctx context.Context, walletID string, amount models.Cents, entryType models.EntryType, link models.EntryLink) (*models.Wallet, *models.LedgerEntry, error) {
	return s.applyWalletChange(ctx, walletID, confirmChange(amount, entryType, link), nil)
}

func blockChange(amount models.Cents, link models.EntryLink) *walletChange {
	return &walletChange{
		entryType:      models.EntryBalanceBlock,
		direction:      models.DirectionNeutral,
		amount:         amount,
		link:           link,
		availableDelta: -amount,
		blockedDelta:   amount,
		requireActive:  true,
	}
}

func unblockChange(amount models.Cents, link models.EntryLink) *walletChange {
	return &walletChange{
		entryType:      models.EntryBalanceUnblock,
		direction:      models.DirectionNeutral,
		amount:         amount,
		link:           link,
		availableDelta: amount,
		blockedDelta:   -amount,
		fromBlocked:    true,
	}
}

func confirmChange(amount models.Cents, entryType models.EntryType, link models.EntryLink) *walletChange {
	return &walletChange{
		entryType:     entryType,
		direction:     models.DirectionDebit,
		amount:        amount,
		link:          link,
		blockedDelta:  -amount,
		fromBlocked:   true,
		snapshotTotal: true,
	}
}
