package storage

import (
	"context"

	"github.com/rotafacil/wallet-core/pkg/models"
)

// StatsStore defines the interface for driver delivery counters and the
// commission tier schedule.
type StatsStore interface {
	// IncrementDeliveryCount bumps the driver's counter for the month bucket.
	IncrementDeliveryCount(ctx context.Context, driverID, monthKey string) error

	// GetDeliveryCount reads the driver's counter for the month bucket.
	// A missing counter reads as zero.
	GetDeliveryCount(ctx context.Context, driverID, monthKey string) (int64, error)

	// ListCommissionTiers retrieves every configured tier.
	ListCommissionTiers(ctx context.Context) ([]models.CommissionTier, error)
}
