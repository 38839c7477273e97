package catalogsync

import (
	"context"
	"time"

	"go.uber.org/zap"
)

type PlanUpdater interface {
	MakePlanOneTime(ctx context.Context, planID string) error
}

// PlanFixer converts renewal plans created by the sync into one-time plans.
type PlanFixer struct {
	Whop   PlanUpdater
	Delay  time.Duration
	Logger *zap.Logger
}

func (f *PlanFixer) Run(ctx context.Context, planIDs []string) (Counts, error) {
	logger := f.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	logger.Info("[Plans] plans to fix", zap.Int("count", len(planIDs)))

	var counts Counts
	for i, id := range planIDs {
		if i > 0 {
			if err := wait(ctx, f.Delay); err != nil {
				return counts, err
			}
		}

		if err := f.Whop.MakePlanOneTime(ctx, id); err != nil {
			counts.Failed++
			logger.Error("[Plans] update failed", zap.String("plan_id", id), zap.Error(err))
			continue
		}
		counts.Succeeded++
		logger.Info("[Plans] plan is now one-time", zap.String("plan_id", id))
	}
	return counts, nil
}
