package catalogsync

import (
	"context"
	"time"

	"go.uber.org/zap"

	"mirrow/internal/observability"
)

const (
	metafieldNamespace = "custom"
	metafieldKey       = "whop_plan_id"
)

type MetafieldWriter interface {
	SetMetafield(ctx context.Context, ownerID, namespace, key, value string) error
}

// MetafieldUpdater stores each match's plan id on its Shopify variant as
// custom.whop_plan_id.
type MetafieldUpdater struct {
	Admin  MetafieldWriter
	Delay  time.Duration
	Logger *zap.Logger
}

func (u *MetafieldUpdater) Run(ctx context.Context, matches []Match) (Counts, error) {
	logger := u.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	logger.Info("[Metafields] variants to update", zap.Int("count", len(matches)))

	var counts Counts
	for i, m := range matches {
		if i > 0 {
			if err := wait(ctx, u.Delay); err != nil {
				return counts, err
			}
		}

		if err := u.Admin.SetMetafield(ctx, m.VariantID, metafieldNamespace, metafieldKey, m.PlanID); err != nil {
			counts.Failed++
			logger.Error("[Metafields] update failed", zap.String("variant_id", m.VariantID), zap.Error(err))
			continue
		}
		counts.Succeeded++
		observability.MetafieldsUpdated.Inc()
		logger.Info("[Metafields] linked variant",
			zap.String("variant_id", m.VariantID), zap.String("plan_id", m.PlanID))
	}
	return counts, nil
}
