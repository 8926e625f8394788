package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/okwaro/dutyroster/internal/config"
	"github.com/okwaro/dutyroster/pkg/core/model"
	"github.com/okwaro/dutyroster/pkg/core/scheduler"
)

// GenerateRoster generates the duty roster for the given date string
// (YYYY-MM-DD). An empty date targets the next service occurrence from the
// configured recurrence rule. When save is false the roster is computed but
// not written back.
func GenerateRoster(
	ctx context.Context,
	store scheduler.Store,
	cfg *config.Config,
	logger *zap.Logger,
	dateStr string,
	save bool,
) (*model.RosterResult, error) {
	target, err := resolveTargetDate(cfg, dateStr)
	if err != nil {
		return nil, err
	}

	logger.Debug("Resolved target date", zap.String("date", target.Format("2006-01-02")))

	engine := scheduler.New(store, logger, scheduler.Config{
		LookbackDays:         cfg.LookbackDays,
		HospitalityCount:     cfg.HospitalityCount,
		SocialMediaPreferred: cfg.SocialMediaPreferred,
	})

	return engine.Generate(ctx, target, save)
}

// resolveTargetDate parses an explicit date or falls back to the next
// occurrence of the configured service rule
func resolveTargetDate(cfg *config.Config, dateStr string) (time.Time, error) {
	if dateStr == "" {
		next, err := cfg.NextServiceDate(time.Now())
		if err != nil {
			return time.Time{}, fmt.Errorf("no date given and %w", err)
		}
		return next, nil
	}

	target, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return time.Time{}, &scheduler.InputError{
			Message: fmt.Sprintf("invalid date %q, expected YYYY-MM-DD", dateStr),
		}
	}
	return target, nil
}
