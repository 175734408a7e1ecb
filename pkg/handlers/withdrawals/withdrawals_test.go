package withdrawals_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rotafacil/wallet-core/pkg/config"
	gwmocks "github.com/rotafacil/wallet-core/pkg/gateway/mocks"
	"github.com/rotafacil/wallet-core/pkg/handlers/withdrawals"
	"github.com/rotafacil/wallet-core/pkg/ledger"
	"github.com/rotafacil/wallet-core/pkg/models"
	"github.com/rotafacil/wallet-core/pkg/storage"
	"github.com/rotafacil/wallet-core/pkg/storage/mocks"
	"github.com/rotafacil/wallet-core/pkg/withdrawal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newHandler(mockStorage *mocks.Storage) *withdrawals.WithdrawalsHandler {
	ledgerSvc := ledger.NewService(mockStorage, mockStorage)
	cfg := config.WithdrawalConfig{Fee: 150, MinAmount: 500, DailyCap: 1, StaleThreshold: 30 * time.Minute}
	manager := withdrawal.NewManager(ledgerSvc, mockStorage, new(gwmocks.Client), cfg, "platform#rotafacil")
	return withdrawals.NewWithdrawalsHandler(manager, mockStorage)
}

func amountPtr(c models.Cents) *models.Cents { return &c }

func TestRequest(t *testing.T) {
	t.Run("RateLimited", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		mockStorage.On("GetOrCreateWallet", mock.Anything, models.OwnerDriver, "d1").
			Return(&models.Wallet{ID: "driver#d1", Available: 5000, Status: models.WalletActive}, nil)
		mockStorage.On("ListWithdrawalsByDriverSince", mock.Anything, "d1", mock.Anything).
			Return([]models.Withdrawal{{ID: "w0", Status: models.WithdrawalCompleted}}, nil)

		h := newHandler(mockStorage)

		body, _ := json.Marshal(withdrawals.RequestWithdrawal{
			DriverID: "d1", Amount: amountPtr(1000), DestKey: "d1@pix.br", DestKeyType: models.PixKeyEmail,
		})
		req := httptest.NewRequest(http.MethodPost, "/withdrawals", bytes.NewReader(body))
		rr := httptest.NewRecorder()

		h.Request(rr, req)

		assert.Equal(t, http.StatusTooManyRequests, rr.Code)
		mockStorage.AssertNotCalled(t, "CreateWithdrawal", mock.Anything, mock.Anything)
	})

	t.Run("InsufficientBalance", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		mockStorage.On("GetOrCreateWallet", mock.Anything, models.OwnerDriver, "d1").
			Return(&models.Wallet{ID: "driver#d1", Available: 500, Status: models.WalletActive}, nil)
		mockStorage.On("ListWithdrawalsByDriverSince", mock.Anything, "d1", mock.Anything).
			Return([]models.Withdrawal{}, nil)

		h := newHandler(mockStorage)

		body, _ := json.Marshal(withdrawals.RequestWithdrawal{
			DriverID: "d1", Amount: amountPtr(1000), DestKey: "d1@pix.br", DestKeyType: models.PixKeyEmail,
		})
		req := httptest.NewRequest(http.MethodPost, "/withdrawals", bytes.NewReader(body))
		rr := httptest.NewRecorder()

		h.Request(rr, req)

		assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	})

	t.Run("MissingDestinationKey", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		h := newHandler(mockStorage)

		body, _ := json.Marshal(withdrawals.RequestWithdrawal{DriverID: "d1", Amount: amountPtr(1000)})
		req := httptest.NewRequest(http.MethodPost, "/withdrawals", bytes.NewReader(body))
		rr := httptest.NewRecorder()

		h.Request(rr, req)

		assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	})

	t.Run("MissingDriverID", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		h := newHandler(mockStorage)

		body, _ := json.Marshal(withdrawals.RequestWithdrawal{Amount: amountPtr(1000), DestKey: "d1@pix.br"})
		req := httptest.NewRequest(http.MethodPost, "/withdrawals", bytes.NewReader(body))
		rr := httptest.NewRecorder()

		h.Request(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestGet(t *testing.T) {
	getRequest := func(id string) *http.Request {
		req := httptest.NewRequest(http.MethodGet, "/withdrawals/"+id, nil)
		rctx := chi.NewRouteContext()
		rctx.URLParams.Add("withdrawalId", id)
		return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
	}

	t.Run("Success", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		mockStorage.On("GetWithdrawal", mock.Anything, "w1").
			Return(&models.Withdrawal{ID: "w1", Status: models.WithdrawalCompleted}, nil)

		h := newHandler(mockStorage)
		rr := httptest.NewRecorder()

		h.Get(rr, getRequest("w1"))

		assert.Equal(t, http.StatusOK, rr.Code)
		var got models.Withdrawal
		assert.NoError(t, json.NewDecoder(rr.Body).Decode(&got))
		assert.Equal(t, models.WithdrawalCompleted, got.Status)
	})

	t.Run("NotFound", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		mockStorage.On("GetWithdrawal", mock.Anything, "w9").Return(nil, storage.ErrReconciliationNotFound)

		h := newHandler(mockStorage)
		rr := httptest.NewRecorder()

		h.Get(rr, getRequest("w9"))

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}
