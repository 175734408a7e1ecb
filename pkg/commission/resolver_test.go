package commission_test

import (
	"context"
	"testing"

	"github.com/rotafacil/wallet-core/pkg/commission"
	"github.com/rotafacil/wallet-core/pkg/config"
	"github.com/rotafacil/wallet-core/pkg/models"
	"github.com/rotafacil/wallet-core/pkg/storage/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestResolve(t *testing.T) {
	tiers := []models.CommissionTier{
		{ID: "tier#3", MinDeliveries: 101, MaxDeliveries: 0, PercentageBP: 1000, Active: true},
		{ID: "tier#1", MinDeliveries: 0, MaxDeliveries: 50, PercentageBP: 2000, Active: true},
		{ID: "tier#2", MinDeliveries: 51, MaxDeliveries: 100, PercentageBP: 1500, Active: true},
	}
	cfg := config.CommissionConfig{Enabled: true, DefaultBP: 2000}

	t.Run("Disabled", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		r := commission.NewResolver(mockStorage, config.CommissionConfig{Enabled: false, DefaultBP: 2000})

		bp, err := r.Resolve(context.Background(), "d1")

		assert.NoError(t, err)
		assert.Equal(t, models.BasisPoints(0), bp)
		mockStorage.AssertNotCalled(t, "GetDeliveryCount", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("LowestMatchingTierWins", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		mockStorage.On("GetDeliveryCount", mock.Anything, "d1", mock.Anything).Return(int64(30), nil)
		mockStorage.On("ListCommissionTiers", mock.Anything).Return(tiers, nil)

		r := commission.NewResolver(mockStorage, cfg)
		bp, err := r.Resolve(context.Background(), "d1")

		assert.NoError(t, err)
		assert.Equal(t, models.BasisPoints(2000), bp)
	})

	t.Run("MiddleBracket", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		mockStorage.On("GetDeliveryCount", mock.Anything, "d1", mock.Anything).Return(int64(75), nil)
		mockStorage.On("ListCommissionTiers", mock.Anything).Return(tiers, nil)

		r := commission.NewResolver(mockStorage, cfg)
		bp, err := r.Resolve(context.Background(), "d1")

		assert.NoError(t, err)
		assert.Equal(t, models.BasisPoints(1500), bp)
	})

	t.Run("OpenEndedBracket", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		mockStorage.On("GetDeliveryCount", mock.Anything, "d1", mock.Anything).Return(int64(5000), nil)
		mockStorage.On("ListCommissionTiers", mock.Anything).Return(tiers, nil)

		r := commission.NewResolver(mockStorage, cfg)
		bp, err := r.Resolve(context.Background(), "d1")

		assert.NoError(t, err)
		assert.Equal(t, models.BasisPoints(1000), bp)
	})

	t.Run("GapFallsBackToHighestMinimum", func(t *testing.T) {
		gapped := []models.CommissionTier{
			{ID: "tier#1", MinDeliveries: 0, MaxDeliveries: 50, PercentageBP: 2000, Active: true},
			{ID: "tier#2", MinDeliveries: 100, MaxDeliveries: 200, PercentageBP: 1200, Active: true},
		}
		mockStorage := new(mocks.Storage)
		mockStorage.On("GetDeliveryCount", mock.Anything, "d1", mock.Anything).Return(int64(75), nil)
		mockStorage.On("ListCommissionTiers", mock.Anything).Return(gapped, nil)

		r := commission.NewResolver(mockStorage, cfg)
		bp, err := r.Resolve(context.Background(), "d1")

		assert.NoError(t, err)
		assert.Equal(t, models.BasisPoints(1200), bp)
	})

	t.Run("InactiveTiersIgnored", func(t *testing.T) {
		inactive := []models.CommissionTier{
			{ID: "tier#1", MinDeliveries: 0, MaxDeliveries: 50, PercentageBP: 500, Active: false},
		}
		mockStorage := new(mocks.Storage)
		mockStorage.On("GetDeliveryCount", mock.Anything, "d1", mock.Anything).Return(int64(10), nil)
		mockStorage.On("ListCommissionTiers", mock.Anything).Return(inactive, nil)

		r := commission.NewResolver(mockStorage, cfg)
		bp, err := r.Resolve(context.Background(), "d1")

		assert.NoError(t, err)
		assert.Equal(t, models.BasisPoints(2000), bp)
	})

	t.Run("NoTiersUsesDefault", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		mockStorage.On("GetDeliveryCount", mock.Anything, "d1", mock.Anything).Return(int64(10), nil)
		mockStorage.On("ListCommissionTiers", mock.Anything).Return([]models.CommissionTier{}, nil)

		r := commission.NewResolver(mockStorage, cfg)
		bp, err := r.Resolve(context.Background(), "d1")

		assert.NoError(t, err)
		assert.Equal(t, models.BasisPoints(2000), bp)
	})
}
