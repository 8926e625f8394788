package scheduler

import (
	"go.uber.org/zap"

	"github.com/okwaro/dutyroster/pkg/core/model"
)

// run holds the mutable state of a single generation pass. Nothing here
// outlives one Generate call, so two concurrent generations never share an
// assigned set.
type run struct {
	history History
	pool    []model.Person
	taken   map[int64]struct{}
	scorer  *Scorer
	logger  *zap.Logger
}

func newRun(history History, pool []model.Person, scorer *Scorer, logger *zap.Logger) *run {
	return &run{
		history: history,
		pool:    pool,
		taken:   make(map[int64]struct{}),
		scorer:  scorer,
		logger:  logger,
	}
}

func (r *run) isTaken(personID int64) bool {
	_, ok := r.taken[personID]
	return ok
}

func (r *run) take(personID int64) {
	r.taken[personID] = struct{}{}
}

// eligible returns pool members who hold the role and are not yet assigned
// anything for this date
func (r *run) eligible(roleName string) []model.Person {
	candidates := make([]model.Person, 0)
	for _, p := range r.pool {
		if p.HasRole(roleName) && !r.isTaken(p.ID) {
			candidates = append(candidates, p)
		}
	}
	return candidates
}

// pickLowest scores every candidate for the role and returns the one with
// the minimum score. Exact ties fall wherever the scorer's jitter lands
// them. Candidates must be non-empty.
func (r *run) pickLowest(candidates []model.Person, roleName string) model.Person {
	best := candidates[0]
	bestScore := r.scorer.Score(best.ID, roleName, r.history)

	for _, p := range candidates[1:] {
		if score := r.scorer.Score(p.ID, roleName, r.history); score < bestScore {
			best = p
			bestScore = score
		}
	}

	return best
}

// assignSlot fills one role slot from the pool. The chosen person is marked
// taken for the rest of the run, which is what enforces one role per person
// per date. A false return means the slot has no eligible candidate; the
// caller records the gap and moves on.
func (r *run) assignSlot(label, roleName string) (model.Person, bool) {
	candidates := r.eligible(roleName)
	if len(candidates) == 0 {
		return model.Person{}, false
	}

	chosen := r.pickLowest(candidates, roleName)
	r.take(chosen.ID)

	r.logger.Debug("Slot filled",
		zap.String("label", label),
		zap.String("role", roleName),
		zap.Int64("person_id", chosen.ID),
		zap.String("person", chosen.FullName()))

	return chosen, true
}
