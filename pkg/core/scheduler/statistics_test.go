package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okwaro/dutyroster/pkg/core/model"
)

func startOfToday() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}

func TestStatistics_RejectsOutOfRangeLookback(t *testing.T) {
	sched := testScheduler(&mockStore{})

	for _, days := range []int{0, -5, 400} {
		_, err := sched.Statistics(context.Background(), days)

		var input *InputError
		require.ErrorAs(t, err, &input, "days=%d", days)
		assert.Contains(t, input.Message, "between 1 and 365")
	}
}

func TestStatistics_AggregatesBothDirections(t *testing.T) {
	now := time.Now()
	store := &mockStore{
		roles: fullCatalogue(),
		records: []model.AssignmentRecord{
			{PersonID: 1, PersonName: "Ann Achieng", RoleName: "Streaming", Date: now.AddDate(0, 0, -10)},
			{PersonID: 1, PersonName: "Ann Achieng", RoleName: "Streaming", Date: now.AddDate(0, 0, -20)},
			{PersonID: 1, PersonName: "Ann Achieng", RoleName: "Videography", Date: now.AddDate(0, 0, -30)},
			{PersonID: 2, PersonName: "Ben Baraka", RoleName: "Streaming", Date: now.AddDate(0, 0, -5)},
		},
	}

	result, err := testScheduler(store).Statistics(context.Background(), 90)
	require.NoError(t, err)

	assert.Equal(t, 4, result.TotalAssignments)

	ann := result.PersonStatistics["Ann Achieng"]
	assert.Equal(t, 3, ann.TotalAssignments)
	assert.Equal(t, 2, ann.Roles["Streaming"])
	assert.Equal(t, 1, ann.Roles["Videography"])

	streaming := result.RoleStatistics["Streaming"]
	assert.Equal(t, 3, streaming.TotalAssignments)
	assert.Equal(t, 2, streaming.People["Ann Achieng"])
	assert.Equal(t, 1, streaming.People["Ben Baraka"])
}

func TestStatistics_RoleNamesUseCatalogueCasing(t *testing.T) {
	// Records carry whatever casing they were written with; the report
	// folds them together and shows the catalogue name
	store := &mockStore{
		roles: fullCatalogue(),
		records: []model.AssignmentRecord{
			{PersonID: 1, PersonName: "Ann Achieng", RoleName: "STREAMING", Date: time.Now().AddDate(0, 0, -5)},
			{PersonID: 2, PersonName: "Ben Baraka", RoleName: "streaming", Date: time.Now().AddDate(0, 0, -6)},
		},
	}

	result, err := testScheduler(store).Statistics(context.Background(), 90)
	require.NoError(t, err)

	require.Contains(t, result.RoleStatistics, "Streaming")
	assert.NotContains(t, result.RoleStatistics, "streaming")
	assert.Equal(t, 2, result.RoleStatistics["Streaming"].TotalAssignments)
	assert.Equal(t, 1, result.PersonStatistics["Ann Achieng"].Roles["Streaming"])
}

func TestStatistics_UncataloguedRoleKeepsRecordedName(t *testing.T) {
	store := &mockStore{
		roles: fullCatalogue(),
		records: []model.AssignmentRecord{
			{PersonID: 1, PersonName: "Ann Achieng", RoleName: "Ushering", Date: time.Now().AddDate(0, 0, -5)},
			{PersonID: 2, PersonName: "Ben Baraka", RoleName: "ushering", Date: time.Now().AddDate(0, 0, -6)},
		},
	}

	result, err := testScheduler(store).Statistics(context.Background(), 90)
	require.NoError(t, err)

	require.Contains(t, result.RoleStatistics, "Ushering")
	assert.Equal(t, 2, result.RoleStatistics["Ushering"].TotalAssignments)
}

func TestStatistics_WindowSitsOnDateBoundaries(t *testing.T) {
	store := &mockStore{roles: fullCatalogue()}
	today := startOfToday()

	_, err := testScheduler(store).Statistics(context.Background(), 30)
	require.NoError(t, err)

	assert.Equal(t, today.AddDate(0, 0, -30), store.queriedFrom)
	assert.Equal(t, today.AddDate(0, 0, 1), store.queriedTo)
}

func TestStatistics_IncludesAssignmentExactlyLookbackDaysOld(t *testing.T) {
	// Rosters are dated at midnight; one dated exactly lookbackDays ago
	// must still count
	store := &mockStore{
		roles: fullCatalogue(),
		records: []model.AssignmentRecord{
			{PersonID: 1, PersonName: "Ann Achieng", RoleName: "Streaming", Date: startOfToday().AddDate(0, 0, -90)},
		},
	}

	result, err := testScheduler(store).Statistics(context.Background(), 90)
	require.NoError(t, err)

	assert.Equal(t, 1, result.TotalAssignments)
	assert.Equal(t, 1, result.PersonStatistics["Ann Achieng"].TotalAssignments)
}

func TestStatistics_PeriodCoversLookbackWindow(t *testing.T) {
	result, err := testScheduler(&mockStore{}).Statistics(context.Background(), 30)
	require.NoError(t, err)

	today := time.Now()
	expected := today.AddDate(0, 0, -30).Format("2006-01-02") + " to " + today.Format("2006-01-02")
	assert.Equal(t, expected, result.Period)
	assert.Zero(t, result.TotalAssignments)
}
