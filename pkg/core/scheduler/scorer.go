package scheduler

import "math/rand/v2"

const (
	// Priority score weights. Lower total score means the person is a
	// better pick for the slot.

	// WeightRoleLoad multiplies how often the candidate held this exact
	// role recently. Dominant term: someone who just did the job waits.
	WeightRoleLoad = 10

	// WeightTotalLoad multiplies the candidate's recent assignment count
	// across every role, spreading overall burden.
	WeightTotalLoad = 2

	// JitterMax bounds the random tie-break term. Kept well below
	// WeightRoleLoad so jitter can only reorder candidates whose
	// historical load is identical.
	JitterMax = 0.5
)

// Scorer computes priority scores for candidate/role pairs. The jitter
// source is injectable so tests can pin it to zero or a seeded sequence.
type Scorer struct {
	jitter func() float64
}

// NewScorer returns a scorer with the default random jitter. Repeated runs
// over identical history may pick different people among equals; that is
// deliberate, it stops the rotation from starving anyone deterministically.
func NewScorer() *Scorer {
	return &Scorer{
		jitter: func() float64 { return rand.Float64() * JitterMax },
	}
}

// NewScorerWithJitter returns a scorer using the given tie-break source
func NewScorerWithJitter(jitter func() float64) *Scorer {
	return &Scorer{jitter: jitter}
}

// Score returns the priority score for assigning the person to the role.
// Missing history entries count as zero, so with no history at all the
// score reduces to the jitter term alone.
func (s *Scorer) Score(personID int64, roleName string, hist History) float64 {
	return float64(WeightRoleLoad*hist.RoleLoad(roleName, personID)) +
		float64(WeightTotalLoad*hist.TotalLoad(personID)) +
		s.jitter()
}
