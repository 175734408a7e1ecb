package wallets_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/rotafacil/wallet-core/pkg/gateway"
	gwmocks "github.com/rotafacil/wallet-core/pkg/gateway/mocks"
	"github.com/rotafacil/wallet-core/pkg/handlers/wallets"
	"github.com/rotafacil/wallet-core/pkg/ledger"
	"github.com/rotafacil/wallet-core/pkg/models"
	"github.com/rotafacil/wallet-core/pkg/storage"
	"github.com/rotafacil/wallet-core/pkg/storage/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func ownerRequest(method, target string, body []byte, ownerType, ownerID string) *http.Request {
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, target, bytes.NewReader(body))
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("ownerType", ownerType)
	rctx.URLParams.Add("ownerId", ownerID)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func newHandler(mockStorage *mocks.Storage, mockGateway *gwmocks.Client) *wallets.WalletsHandler {
	return wallets.NewWalletsHandler(ledger.NewService(mockStorage, mockStorage), mockStorage, mockGateway)
}

func TestGetWallet(t *testing.T) {
	expectedWallet := &models.Wallet{ID: "company#c1", Available: 10000, Status: models.WalletActive, Version: 3}

	t.Run("Success", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		mockStorage.On("GetWallet", mock.Anything, "company#c1").Return(expectedWallet, nil)

		h := newHandler(mockStorage, new(gwmocks.Client))

		req := ownerRequest(http.MethodGet, "/wallets/company/c1", nil, "company", "c1")
		rr := httptest.NewRecorder()

		h.GetWallet(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		var got models.Wallet
		assert.NoError(t, json.NewDecoder(rr.Body).Decode(&got))
		assert.Equal(t, expectedWallet.ID, got.ID)
		assert.Equal(t, expectedWallet.Available, got.Available)
		mockStorage.AssertExpectations(t)
	})

	t.Run("NotFound", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		mockStorage.On("GetWallet", mock.Anything, "company#c9").Return(nil, storage.ErrWalletNotFound)

		h := newHandler(mockStorage, new(gwmocks.Client))

		req := ownerRequest(http.MethodGet, "/wallets/company/c9", nil, "company", "c9")
		rr := httptest.NewRecorder()

		h.GetWallet(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestListEntries(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		mockStorage.On("ListEntriesByWallet", mock.Anything, "driver#d1", int32(10)).Return([]models.LedgerEntry{{EntryID: "e1"}}, nil)

		h := newHandler(mockStorage, new(gwmocks.Client))

		req := ownerRequest(http.MethodGet, "/wallets/driver/d1/entries?limit=10", nil, "driver", "d1")
		rr := httptest.NewRecorder()

		h.ListEntries(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		mockStorage.AssertExpectations(t)
	})

	t.Run("InvalidLimit", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		h := newHandler(mockStorage, new(gwmocks.Client))

		req := ownerRequest(http.MethodGet, "/wallets/driver/d1/entries?limit=-1", nil, "driver", "d1")
		rr := httptest.NewRecorder()

		h.ListEntries(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		mockStorage.AssertNotCalled(t, "ListEntriesByWallet", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestRecharge(t *testing.T) {
	wallet := &models.Wallet{ID: "company#c1", Status: models.WalletActive, Version: 1}

	t.Run("Success", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		mockGateway := new(gwmocks.Client)

		mockStorage.On("GetOrCreateWallet", mock.Anything, models.OwnerCompany, "c1").Return(wallet, nil)
		mockGateway.On("CreateCharge", mock.Anything, models.Cents(10000), mock.Anything).
			Once().Return(&gateway.ChargeResult{ChargeRef: "pay_123", QRCode: "img", BRCode: "br"}, nil)
		mockStorage.On("CreateCharge", mock.Anything, mock.MatchedBy(func(c *models.Charge) bool {
			return c.Type == models.ChargeRecharge && c.Status == models.ChargeWaitingPayment && c.ProviderRef == "pay_123"
		})).Once().Return(func(_ context.Context, c *models.Charge) (*models.Charge, error) {
			return c, nil
		})

		h := newHandler(mockStorage, mockGateway)

		body, _ := json.Marshal(wallets.RechargeRequest{Amount: 10000})
		req := ownerRequest(http.MethodPost, "/wallets/company/c1/recharge", body, "company", "c1")
		rr := httptest.NewRecorder()

		h.Recharge(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)
		var got models.Charge
		assert.NoError(t, json.NewDecoder(rr.Body).Decode(&got))
		assert.Equal(t, "br", got.BRCode)
		mockStorage.AssertExpectations(t)
		mockGateway.AssertExpectations(t)
	})

	t.Run("NonPositiveAmount", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		h := newHandler(mockStorage, new(gwmocks.Client))

		body, _ := json.Marshal(wallets.RechargeRequest{Amount: 0})
		req := ownerRequest(http.MethodPost, "/wallets/company/c1/recharge", body, "company", "c1")
		rr := httptest.NewRecorder()

		h.Recharge(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		mockStorage.AssertNotCalled(t, "GetOrCreateWallet", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("ProviderDown", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		mockGateway := new(gwmocks.Client)

		mockStorage.On("GetOrCreateWallet", mock.Anything, models.OwnerCompany, "c1").Return(wallet, nil)
		mockGateway.On("CreateCharge", mock.Anything, mock.Anything, mock.Anything).
			Once().Return(nil, gateway.ErrGateway)

		h := newHandler(mockStorage, mockGateway)

		body, _ := json.Marshal(wallets.RechargeRequest{Amount: 10000})
		req := ownerRequest(http.MethodPost, "/wallets/company/c1/recharge", body, "company", "c1")
		rr := httptest.NewRecorder()

		h.Recharge(rr, req)

		assert.Equal(t, http.StatusBadGateway, rr.Code)
		mockStorage.AssertNotCalled(t, "CreateCharge", mock.Anything, mock.Anything)
	})
}
