package withdrawal_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/rotafacil/wallet-core/pkg/config"
	"github.com/rotafacil/wallet-core/pkg/gateway"
	gwmocks "github.com/rotafacil/wallet-core/pkg/gateway/mocks"
	"github.com/rotafacil/wallet-core/pkg/ledger"
	"github.com/rotafacil/wallet-core/pkg/models"
	"github.com/rotafacil/wallet-core/pkg/storage"
	storemocks "github.com/rotafacil/wallet-core/pkg/storage/mocks"
	"github.com/rotafacil/wallet-core/pkg/withdrawal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

const platformWalletID = "platform#rotafacil"

var testCfg = config.WithdrawalConfig{
	Fee:            150,
	MinAmount:      500,
	DailyCap:       1,
	StaleThreshold: 30 * time.Minute,
}

func newManager(mockStorage *storemocks.Storage, mockGateway *gwmocks.Client) *withdrawal.Manager {
	ledgerSvc := ledger.NewService(mockStorage, mockStorage)
	m := withdrawal.NewManager(ledgerSvc, mockStorage, mockGateway, testCfg, platformWalletID)
	m.Now = func() time.Time { return time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC) }
	return m
}

func driverWallet(available models.Cents) *models.Wallet {
	return &models.Wallet{ID: "driver#d1", Available: available, Status: models.WalletActive, Version: 1}
}

func TestRequest(t *testing.T) {
	t.Run("SynchronousAuthorization", func(t *testing.T) {
		mockStorage := new(storemocks.Storage)
		mockGateway := new(gwmocks.Client)
		m := newManager(mockStorage, mockGateway)

		mockStorage.On("GetOrCreateWallet", mock.Anything, models.OwnerDriver, "d1").Return(driverWallet(5000), nil)
		mockStorage.On("ListWithdrawalsByDriverSince", mock.Anything, "d1", mock.Anything).Return([]models.Withdrawal{}, nil)
		mockStorage.On("GetOrCreateWallet", mock.Anything, models.OwnerPlatform, "rotafacil").Return(&models.Wallet{ID: platformWalletID, Status: models.WalletActive}, nil)

		created := &models.Withdrawal{ID: "w1", DriverID: "d1", WalletID: "driver#d1", Amount: 1000, Fee: 150, NetAmount: 850, Status: models.WithdrawalProcessing}
		mockStorage.On("CreateWithdrawal", mock.Anything, mock.MatchedBy(func(w *models.Withdrawal) bool {
			return w.Amount == 1000 && w.Fee == 150 && w.NetAmount == 850
		})).Once().Return(created, nil)

		mockGateway.On("CreateTransfer", mock.Anything, models.Cents(850), "d1@pix.br", models.PixKeyEmail, "w1").
			Once().Return(&gateway.TransferResult{TransferRef: "tr1", Status: gateway.TransferAuthorized}, nil)

		mockStorage.On("SetWithdrawalTransferRef", mock.Anything, "w1", "tr1").Once().Return(nil)
		mockStorage.On("GetWithdrawal", mock.Anything, "w1").Once().Return(created, nil)
		mockStorage.On("CompleteWithdrawal", mock.Anything, created, platformWalletID).Once().Return(nil)

		amount := models.Cents(1000)
		w, err := m.Request(context.Background(), "d1", &amount, "d1@pix.br", models.PixKeyEmail)

		assert.NoError(t, err)
		assert.Equal(t, models.WithdrawalCompleted, w.Status)
		assert.Equal(t, "tr1", w.TransferRef)
		mockStorage.AssertExpectations(t)
		mockGateway.AssertExpectations(t)
	})

	t.Run("FullBalanceWhenAmountOmitted", func(t *testing.T) {
		mockStorage := new(storemocks.Storage)
		mockGateway := new(gwmocks.Client)
		m := newManager(mockStorage, mockGateway)

		mockStorage.On("GetOrCreateWallet", mock.Anything, models.OwnerDriver, "d1").Return(driverWallet(2000), nil)
		mockStorage.On("ListWithdrawalsByDriverSince", mock.Anything, "d1", mock.Anything).Return([]models.Withdrawal{}, nil)
		mockStorage.On("GetOrCreateWallet", mock.Anything, models.OwnerPlatform, "rotafacil").Return(&models.Wallet{ID: platformWalletID, Status: models.WalletActive}, nil)

		created := &models.Withdrawal{ID: "w2", Amount: 2000, Fee: 150, NetAmount: 1850, Status: models.WithdrawalProcessing}
		mockStorage.On("CreateWithdrawal", mock.Anything, mock.MatchedBy(func(w *models.Withdrawal) bool {
			return w.Amount == 2000 && w.NetAmount == 1850
		})).Once().Return(created, nil)
		mockGateway.On("CreateTransfer", mock.Anything, models.Cents(1850), "d1@pix.br", models.PixKeyEmail, "w2").
			Once().Return(&gateway.TransferResult{TransferRef: "tr2", Status: gateway.TransferPending}, nil)
		mockStorage.On("SetWithdrawalTransferRef", mock.Anything, "w2", "tr2").Once().Return(nil)

		w, err := m.Request(context.Background(), "d1", nil, "d1@pix.br", models.PixKeyEmail)

		assert.NoError(t, err)
		assert.Equal(t, models.WithdrawalProcessing, w.Status)
		mockStorage.AssertNotCalled(t, "CompleteWithdrawal", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("RateLimited", func(t *testing.T) {
		mockStorage := new(storemocks.Storage)
		mockGateway := new(gwmocks.Client)
		m := newManager(mockStorage, mockGateway)

		doneToday := []models.Withdrawal{{ID: "w0", Status: models.WithdrawalCompleted}}
		mockStorage.On("GetOrCreateWallet", mock.Anything, models.OwnerDriver, "d1").Return(driverWallet(5000), nil)
		mockStorage.On("ListWithdrawalsByDriverSince", mock.Anything, "d1", mock.Anything).Return(doneToday, nil)

		amount := models.Cents(1000)
		_, err := m.Request(context.Background(), "d1", &amount, "d1@pix.br", models.PixKeyEmail)

		assert.ErrorIs(t, err, storage.ErrRateLimitExceeded)
		assert.Contains(t, err.Error(), "1 of 1 daily withdrawals")
		mockStorage.AssertNotCalled(t, "CreateWithdrawal", mock.Anything, mock.Anything)
	})

	t.Run("InsufficientBalance", func(t *testing.T) {
		mockStorage := new(storemocks.Storage)
		mockGateway := new(gwmocks.Client)
		m := newManager(mockStorage, mockGateway)

		mockStorage.On("GetOrCreateWallet", mock.Anything, models.OwnerDriver, "d1").Return(driverWallet(500), nil)
		mockStorage.On("ListWithdrawalsByDriverSince", mock.Anything, "d1", mock.Anything).Return([]models.Withdrawal{}, nil)

		amount := models.Cents(1000)
		_, err := m.Request(context.Background(), "d1", &amount, "d1@pix.br", models.PixKeyEmail)

		assert.ErrorIs(t, err, storage.ErrInsufficientBalance)
		assert.Contains(t, err.Error(), "available 5.00, required 10.00")
		mockStorage.AssertNotCalled(t, "CreateWithdrawal", mock.Anything, mock.Anything)
		mockGateway.AssertNotCalled(t, "CreateTransfer", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("AmountDoesNotCoverFee", func(t *testing.T) {
		mockStorage := new(storemocks.Storage)
		mockGateway := new(gwmocks.Client)
		m := newManager(mockStorage, mockGateway)

		mockStorage.On("GetOrCreateWallet", mock.Anything, models.OwnerDriver, "d1").Return(driverWallet(5000), nil)
		mockStorage.On("ListWithdrawalsByDriverSince", mock.Anything, "d1", mock.Anything).Return([]models.Withdrawal{}, nil)

		amount := models.Cents(100)
		_, err := m.Request(context.Background(), "d1", &amount, "d1@pix.br", models.PixKeyEmail)

		assert.ErrorIs(t, err, storage.ErrInvalidAmount)
		mockStorage.AssertNotCalled(t, "CreateWithdrawal", mock.Anything, mock.Anything)
	})

	t.Run("MissingDestinationKey", func(t *testing.T) {
		mockStorage := new(storemocks.Storage)
		mockGateway := new(gwmocks.Client)
		m := newManager(mockStorage, mockGateway)

		amount := models.Cents(1000)
		_, err := m.Request(context.Background(), "d1", &amount, "", models.PixKeyEmail)

		assert.ErrorIs(t, err, storage.ErrSubaccountNotConfigured)
		mockStorage.AssertNotCalled(t, "GetOrCreateWallet", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("GatewayRejectionRollsBack", func(t *testing.T) {
		mockStorage := new(storemocks.Storage)
		mockGateway := new(gwmocks.Client)
		m := newManager(mockStorage, mockGateway)

		mockStorage.On("GetOrCreateWallet", mock.Anything, models.OwnerDriver, "d1").Return(driverWallet(5000), nil)
		mockStorage.On("ListWithdrawalsByDriverSince", mock.Anything, "d1", mock.Anything).Return([]models.Withdrawal{}, nil)
		mockStorage.On("GetOrCreateWallet", mock.Anything, models.OwnerPlatform, "rotafacil").Return(&models.Wallet{ID: platformWalletID, Status: models.WalletActive}, nil)

		created := &models.Withdrawal{ID: "w3", Status: models.WithdrawalProcessing}
		mockStorage.On("CreateWithdrawal", mock.Anything, mock.Anything).Once().Return(created, nil)

		rejection := fmt.Errorf("%w: invalid pix key", gateway.ErrGateway)
		mockGateway.On("CreateTransfer", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Once().Return(nil, rejection)

		mockStorage.On("GetWithdrawal", mock.Anything, "w3").Once().Return(created, nil)
		mockStorage.On("FailWithdrawal", mock.Anything, created, mock.Anything).Once().Return(nil)

		amount := models.Cents(1000)
		_, err := m.Request(context.Background(), "d1", &amount, "d1@pix.br", models.PixKeyEmail)

		assert.ErrorIs(t, err, gateway.ErrGateway)
		mockStorage.AssertExpectations(t)
	})

	t.Run("TimeoutLeavesProcessing", func(t *testing.T) {
		mockStorage := new(storemocks.Storage)
		mockGateway := new(gwmocks.Client)
		m := newManager(mockStorage, mockGateway)

		mockStorage.On("GetOrCreateWallet", mock.Anything, models.OwnerDriver, "d1").Return(driverWallet(5000), nil)
		mockStorage.On("ListWithdrawalsByDriverSince", mock.Anything, "d1", mock.Anything).Return([]models.Withdrawal{}, nil)
		mockStorage.On("GetOrCreateWallet", mock.Anything, models.OwnerPlatform, "rotafacil").Return(&models.Wallet{ID: platformWalletID, Status: models.WalletActive}, nil)

		created := &models.Withdrawal{ID: "w4", Status: models.WithdrawalProcessing}
		mockStorage.On("CreateWithdrawal", mock.Anything, mock.Anything).Once().Return(created, nil)
		mockGateway.On("CreateTransfer", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Once().Return(nil, fmt.Errorf("transfer: %w", context.DeadlineExceeded))

		amount := models.Cents(1000)
		w, err := m.Request(context.Background(), "d1", &amount, "d1@pix.br", models.PixKeyEmail)

		assert.NoError(t, err)
		assert.Equal(t, models.WithdrawalProcessing, w.Status)
		mockStorage.AssertNotCalled(t, "FailWithdrawal", mock.Anything, mock.Anything, mock.Anything)
		mockStorage.AssertNotCalled(t, "SetWithdrawalTransferRef", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestFinalize(t *testing.T) {
	t.Run("ReplayedCompletionIsQuiet", func(t *testing.T) {
		mockStorage := new(storemocks.Storage)
		m := newManager(mockStorage, new(gwmocks.Client))

		w := &models.Withdrawal{ID: "w1", Status: models.WithdrawalCompleted}
		mockStorage.On("GetWithdrawal", mock.Anything, "w1").Once().Return(w, nil)
		mockStorage.On("CompleteWithdrawal", mock.Anything, w, platformWalletID).Once().Return(storage.ErrAlreadyProcessed)

		assert.NoError(t, m.Finalize(context.Background(), "w1"))
	})

	t.Run("OtherErrorsPropagate", func(t *testing.T) {
		mockStorage := new(storemocks.Storage)
		m := newManager(mockStorage, new(gwmocks.Client))

		w := &models.Withdrawal{ID: "w1", Status: models.WithdrawalProcessing}
		boom := errors.New("table throttled")
		mockStorage.On("GetWithdrawal", mock.Anything, "w1").Once().Return(w, nil)
		mockStorage.On("CompleteWithdrawal", mock.Anything, w, platformWalletID).Once().Return(boom)

		assert.ErrorIs(t, m.Finalize(context.Background(), "w1"), boom)
	})
}

func TestSweepStale(t *testing.T) {
	t.Run("FailsOnlyStaleProcessingRows", func(t *testing.T) {
		mockStorage := new(storemocks.Storage)
		m := newManager(mockStorage, new(gwmocks.Client))
		now := m.Now()

		rows := []models.Withdrawal{
			{ID: "w-old", Status: models.WithdrawalProcessing, CreatedAt: now.Add(-2 * time.Hour)},
			{ID: "w-fresh", Status: models.WithdrawalProcessing, CreatedAt: now.Add(-5 * time.Minute)},
			{ID: "w-done", Status: models.WithdrawalCompleted, CreatedAt: now.Add(-3 * time.Hour)},
		}
		mockStorage.On("ListWithdrawalsByDriverSince", mock.Anything, "d1", mock.Anything).Return(rows, nil)

		stale := &rows[0]
		mockStorage.On("GetWithdrawal", mock.Anything, "w-old").Once().Return(stale, nil)
		mockStorage.On("FailWithdrawal", mock.Anything, stale, "abandoned after staleness window").Once().Return(nil)

		err := m.SweepStale(context.Background(), "d1")

		assert.NoError(t, err)
		mockStorage.AssertExpectations(t)
		mockStorage.AssertNotCalled(t, "GetWithdrawal", mock.Anything, "w-fresh")
		mockStorage.AssertNotCalled(t, "GetWithdrawal", mock.Anything, "w-done")
	})
}
