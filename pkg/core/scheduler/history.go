package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/okwaro/dutyroster/pkg/core/model"
)

// HistoryStore provides the assignment records history is built from
type HistoryStore interface {
	// GetAssignmentsBetween returns assignment records with event date in
	// the half-open range [from, to).
	GetAssignmentsBetween(ctx context.Context, from, to time.Time) ([]model.AssignmentRecord, error)
}

// History holds per-person and per-role assignment counts over a lookback
// window. Role keys are normalised with RoleKey. Zero history is valid;
// missing entries count as zero load.
type History struct {
	// PerPersonRole maps person id -> role key -> count
	PerPersonRole map[int64]map[string]int

	// PerRolePerson maps role key -> person id -> count
	PerRolePerson map[string]map[int64]int
}

// RoleLoad returns how often the person held the named role in the window
func (h History) RoleLoad(roleName string, personID int64) int {
	return h.PerRolePerson[RoleKey(roleName)][personID]
}

// TotalLoad returns the person's assignment count across all roles
func (h History) TotalLoad(personID int64) int {
	total := 0
	for _, count := range h.PerPersonRole[personID] {
		total += count
	}
	return total
}

// BuildHistory aggregates raw assignment records into count tables
func BuildHistory(records []model.AssignmentRecord) History {
	hist := History{
		PerPersonRole: make(map[int64]map[string]int),
		PerRolePerson: make(map[string]map[int64]int),
	}

	for _, rec := range records {
		key := RoleKey(rec.RoleName)

		if hist.PerPersonRole[rec.PersonID] == nil {
			hist.PerPersonRole[rec.PersonID] = make(map[string]int)
		}
		hist.PerPersonRole[rec.PersonID][key]++

		if hist.PerRolePerson[key] == nil {
			hist.PerRolePerson[key] = make(map[int64]int)
		}
		hist.PerRolePerson[key][rec.PersonID]++
	}

	return hist
}

// LoadHistory reads assignment records in the lookback window before the
// target date and builds the count tables. The target date itself is
// excluded; the roster being generated must not influence its own scoring.
func LoadHistory(ctx context.Context, store HistoryStore, target time.Time, lookbackDays int) (History, error) {
	from := target.AddDate(0, 0, -lookbackDays)

	records, err := store.GetAssignmentsBetween(ctx, from, target)
	if err != nil {
		return History{}, fmt.Errorf("failed to fetch assignment history: %w", err)
	}

	return BuildHistory(records), nil
}
