package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/okwaro/dutyroster/pkg/core/model"
	"github.com/okwaro/dutyroster/pkg/db"
)

// ListPeople returns all active people with their role tags and flags
func ListPeople(ctx context.Context, store db.PeopleStore, logger *zap.Logger) ([]model.Person, error) {
	people, err := store.GetPeople(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch people: %w", err)
	}

	logger.Debug("Fetched people", zap.Int("count", len(people)))
	return people, nil
}

// MarkAttendance marks the listed people absent and everyone else present,
// matching how a roster run is prepared: the caller names who is away for
// the date and the rest of the pool is available.
func MarkAttendance(ctx context.Context, store db.PeopleStore, logger *zap.Logger, absentIDs []int64) error {
	if len(absentIDs) == 0 {
		// Nobody away: reset the whole pool to present
		if err := store.SetPresenceExcept(ctx, nil, true); err != nil {
			return fmt.Errorf("failed to reset presence: %w", err)
		}
		logger.Info("All people marked present")
		return nil
	}

	if err := store.SetPresence(ctx, absentIDs, false); err != nil {
		return fmt.Errorf("failed to mark absentees: %w", err)
	}
	if err := store.SetPresenceExcept(ctx, absentIDs, true); err != nil {
		return fmt.Errorf("failed to mark remaining people present: %w", err)
	}

	logger.Info("Attendance updated", zap.Int("absent", len(absentIDs)))
	return nil
}
