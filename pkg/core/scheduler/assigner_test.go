package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/okwaro/dutyroster/pkg/core/model"
)

func testRun(pool []model.Person, records []model.AssignmentRecord) *run {
	return newRun(BuildHistory(records), pool, NewScorerWithJitter(zeroJitter), zap.NewNop())
}

func TestAssignSlot_FiltersByRoleTag(t *testing.T) {
	pool := []model.Person{
		{ID: 1, FirstName: "Ann", Roles: []string{"Streaming"}},
		{ID: 2, FirstName: "Ben", Roles: []string{"Videography"}},
	}
	r := testRun(pool, nil)

	person, ok := r.assignSlot("Camera 1", "Videography")
	require.True(t, ok)
	assert.Equal(t, int64(2), person.ID)
}

func TestAssignSlot_RoleTagMatchIsCaseInsensitive(t *testing.T) {
	pool := []model.Person{
		{ID: 1, FirstName: "Ann", Roles: []string{"VIDEOGRAPHY"}},
	}
	r := testRun(pool, nil)

	_, ok := r.assignSlot("Camera 1", "Videography")
	assert.True(t, ok)
}

func TestAssignSlot_SkipsTakenPeople(t *testing.T) {
	pool := []model.Person{
		{ID: 1, FirstName: "Ann", Roles: []string{"Videography"}},
		{ID: 2, FirstName: "Ben", Roles: []string{"Videography"}},
	}
	r := testRun(pool, nil)
	r.take(1)

	person, ok := r.assignSlot("Camera 1", "Videography")
	require.True(t, ok)
	assert.Equal(t, int64(2), person.ID)
}

func TestAssignSlot_MarksChosenPersonTaken(t *testing.T) {
	pool := []model.Person{
		{ID: 1, FirstName: "Ann", Roles: []string{"Videography"}},
	}
	r := testRun(pool, nil)

	_, ok := r.assignSlot("Camera 1", "Videography")
	require.True(t, ok)
	assert.True(t, r.isTaken(1))

	// Same person cannot fill a second slot
	_, ok = r.assignSlot("Camera 2", "Videography")
	assert.False(t, ok)
}

func TestAssignSlot_NoCandidatesIsNotAnError(t *testing.T) {
	pool := []model.Person{
		{ID: 1, FirstName: "Ann", Roles: []string{"Streaming"}},
	}
	r := testRun(pool, nil)

	_, ok := r.assignSlot("Sound Desk", "Sound")
	assert.False(t, ok)
	assert.Empty(t, r.taken)
}

func TestAssignSlot_PrefersLeastLoadedCandidate(t *testing.T) {
	pool := []model.Person{
		{ID: 1, FirstName: "Ann", Roles: []string{"Streaming"}},
		{ID: 2, FirstName: "Ben", Roles: []string{"Streaming"}},
	}
	records := []model.AssignmentRecord{
		{PersonID: 1, RoleName: "Streaming"},
		{PersonID: 1, RoleName: "Streaming"},
		{PersonID: 1, RoleName: "Streaming"},
		{PersonID: 1, RoleName: "Streaming"},
		{PersonID: 1, RoleName: "Streaming"},
	}
	r := testRun(pool, records)

	person, ok := r.assignSlot("Streaming", "Streaming")
	require.True(t, ok)
	assert.Equal(t, int64(2), person.ID)
}
