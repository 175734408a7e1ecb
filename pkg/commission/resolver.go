package commission

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/rotafacil/wallet-core/pkg/config"
	"github.com/rotafacil/wallet-core/pkg/models"
	"github.com/rotafacil/wallet-core/pkg/storage"
)

// Resolver computes a driver's commission percentage from the tiered schedule
// keyed by monthly delivery volume. It has no side effects beyond the reads.
type Resolver struct {
	Stats storage.StatsStore
	Cfg   config.CommissionConfig

	// Now is swappable for tests; defaults to time.Now.
	Now func() time.Time
}

// NewResolver creates a new Resolver.
func NewResolver(stats storage.StatsStore, cfg config.CommissionConfig) *Resolver {
	return &Resolver{Stats: stats, Cfg: cfg, Now: time.Now}
}

// Resolve returns the commission percentage for the driver: the lowest
// matching active tier for the driver's current monthly delivery count, the
// highest-minimum active tier when the count is above every bracket, the
// configured default when no tiers exist, and zero when commission is
// disabled.
func (r *Resolver) Resolve(ctx context.Context, driverID string) (models.BasisPoints, error) {
	if !r.Cfg.Enabled {
		return 0, nil
	}

	count, err := r.Stats.GetDeliveryCount(ctx, driverID, models.MonthKey(r.Now()))
	if err != nil {
		return 0, fmt.Errorf("failed to resolve delivery count for driver %s: %w", driverID, err)
	}

	tiers, err := r.Stats.ListCommissionTiers(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list commission tiers: %w", err)
	}

	active := make([]models.CommissionTier, 0, len(tiers))
	for _, tier := range tiers {
		if tier.Active {
			active = append(active, tier)
		}
	}
	if len(active) == 0 {
		return r.Cfg.DefaultBP, nil
	}

	sort.Slice(active, func(i, j int) bool {
		return active[i].MinDeliveries < active[j].MinDeliveries
	})

	for i := range active {
		if active[i].Contains(count) {
			return active[i].PercentageBP, nil
		}
	}

	// No bracket covers the count. Fall back to the widest-volume tier.
	return active[len(active)-1].PercentageBP, nil
}
