package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/okwaro/dutyroster/pkg/core/model"
	"github.com/okwaro/dutyroster/pkg/core/scheduler"
)

// AssignmentStatistics reports per-person and per-role assignment counts
// over the trailing lookback window. lookbackDays must be in [1, 365].
func AssignmentStatistics(
	ctx context.Context,
	store scheduler.Store,
	logger *zap.Logger,
	lookbackDays int,
) (*model.StatisticsResult, error) {
	logger.Debug("Computing assignment statistics", zap.Int("lookback_days", lookbackDays))

	engine := scheduler.New(store, logger, scheduler.Config{})

	result, err := engine.Statistics(ctx, lookbackDays)
	if err != nil {
		return nil, err
	}

	logger.Info("Statistics computed",
		zap.String("period", result.Period),
		zap.Int("total_assignments", result.TotalAssignments))

	return result, nil
}
