package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/okwaro/dutyroster/pkg/core/model"
)

func zeroJitter() float64 { return 0 }

func TestScore_Formula(t *testing.T) {
	hist := BuildHistory([]model.AssignmentRecord{
		{PersonID: 1, RoleName: "Streaming"},
		{PersonID: 1, RoleName: "Streaming"},
		{PersonID: 1, RoleName: "Videography"},
	})

	scorer := NewScorerWithJitter(zeroJitter)

	// 10*2 same-role + 2*3 total
	assert.Equal(t, 26.0, scorer.Score(1, "Streaming", hist))

	// No same-role load, total load still counts
	assert.Equal(t, 6.0, scorer.Score(1, "Sound", hist))

	// Unknown person scores zero
	assert.Equal(t, 0.0, scorer.Score(99, "Streaming", hist))
}

func TestScore_MonotonicFairness(t *testing.T) {
	// A carries strictly more recent same-role load than B; with jitter
	// pinned to zero B must never rank behind A.
	hist := BuildHistory([]model.AssignmentRecord{
		{PersonID: 1, RoleName: "Streaming"},
		{PersonID: 1, RoleName: "Streaming"},
		{PersonID: 2, RoleName: "Streaming"},
	})

	scorer := NewScorerWithJitter(zeroJitter)

	scoreA := scorer.Score(1, "Streaming", hist)
	scoreB := scorer.Score(2, "Streaming", hist)
	assert.Less(t, scoreB, scoreA)
}

func TestScore_JitterBounded(t *testing.T) {
	hist := BuildHistory(nil)
	scorer := NewScorer()

	// With no history the score is the jitter term alone, always in [0, 0.5)
	for i := 0; i < 1000; i++ {
		score := scorer.Score(1, "Streaming", hist)
		assert.GreaterOrEqual(t, score, 0.0)
		assert.Less(t, score, JitterMax)
	}
}

func TestScore_JitterCannotFlipRealLoadGap(t *testing.T) {
	// One prior same-role assignment is a 10 point gap; bounded jitter
	// must never let the loaded candidate win.
	hist := BuildHistory([]model.AssignmentRecord{
		{PersonID: 1, RoleName: "Streaming"},
	})

	scorer := NewScorer()
	for i := 0; i < 100; i++ {
		assert.Less(t, scorer.Score(2, "Streaming", hist), scorer.Score(1, "Streaming", hist))
	}
}
