package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/okwaro/dutyroster/pkg/core/model"
)

const (
	// MinLookbackDays and MaxLookbackDays bound the reporting window
	MinLookbackDays = 1
	MaxLookbackDays = 365
)

// Statistics aggregates assignment counts over the trailing lookback
// window, ending today inclusive. Pure read; nothing is mutated.
func (s *Scheduler) Statistics(ctx context.Context, lookbackDays int) (*model.StatisticsResult, error) {
	if lookbackDays < MinLookbackDays || lookbackDays > MaxLookbackDays {
		return nil, inputf("lookback days must be between %d and %d, got %d",
			MinLookbackDays, MaxLookbackDays, lookbackDays)
	}

	roles, err := s.store.GetRoles(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch roles: %w", err)
	}
	catalogueName := make(map[string]string, len(roles))
	for _, role := range roles {
		catalogueName[RoleKey(role.Name)] = role.Name
	}

	// Window bounds sit on date boundaries so an assignment dated exactly
	// lookbackDays ago still falls inside it
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	from := today.AddDate(0, 0, -lookbackDays)

	// Half-open store range, pushed one day past today to include it
	records, err := s.store.GetAssignmentsBetween(ctx, from, today.AddDate(0, 0, 1))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch assignment history: %w", err)
	}

	result := &model.StatisticsResult{
		Period: fmt.Sprintf("%s to %s",
			from.Format(dateLayout), today.Format(dateLayout)),
		PersonStatistics: make(map[string]model.PersonStats),
		RoleStatistics:   make(map[string]model.RoleStats),
		TotalAssignments: len(records),
	}

	// Counts aggregate under the normalised role key; output uses the
	// catalogue casing, falling back to the first recorded casing for
	// roles no longer in the catalogue.
	roleName := make(map[string]string)
	roleStats := make(map[string]model.RoleStats)

	for _, rec := range records {
		key := RoleKey(rec.RoleName)
		if _, ok := roleName[key]; !ok {
			if display, ok := catalogueName[key]; ok {
				roleName[key] = display
			} else {
				roleName[key] = rec.RoleName
			}
		}
		name := roleName[key]

		ps, ok := result.PersonStatistics[rec.PersonName]
		if !ok {
			ps = model.PersonStats{Roles: make(map[string]int)}
		}
		ps.TotalAssignments++
		ps.Roles[name]++
		result.PersonStatistics[rec.PersonName] = ps

		rs, ok := roleStats[key]
		if !ok {
			rs = model.RoleStats{People: make(map[string]int)}
		}
		rs.TotalAssignments++
		rs.People[rec.PersonName]++
		roleStats[key] = rs
	}

	for key, rs := range roleStats {
		result.RoleStatistics[roleName[key]] = rs
	}

	return result, nil
}
