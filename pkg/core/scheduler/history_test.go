package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okwaro/dutyroster/pkg/core/model"
)

// mockHistoryStore records the query range it was asked for
type mockHistoryStore struct {
	records []model.AssignmentRecord
	err     error
	from    time.Time
	to      time.Time
}

func (m *mockHistoryStore) GetAssignmentsBetween(ctx context.Context, from, to time.Time) ([]model.AssignmentRecord, error) {
	m.from = from
	m.to = to
	if m.err != nil {
		return nil, m.err
	}
	return m.records, nil
}

func TestBuildHistory_CountsBothDirections(t *testing.T) {
	records := []model.AssignmentRecord{
		{PersonID: 1, RoleName: "Streaming"},
		{PersonID: 1, RoleName: "Streaming"},
		{PersonID: 1, RoleName: "Videography"},
		{PersonID: 2, RoleName: "streaming"},
	}

	hist := BuildHistory(records)

	assert.Equal(t, 2, hist.RoleLoad("Streaming", 1))
	assert.Equal(t, 1, hist.RoleLoad("Videography", 1))
	assert.Equal(t, 3, hist.TotalLoad(1))
	assert.Equal(t, 1, hist.TotalLoad(2))
}

func TestBuildHistory_RoleNamesFoldCase(t *testing.T) {
	records := []model.AssignmentRecord{
		{PersonID: 1, RoleName: "Streaming"},
		{PersonID: 1, RoleName: "STREAMING"},
		{PersonID: 1, RoleName: "streaming"},
	}

	hist := BuildHistory(records)

	assert.Equal(t, 3, hist.RoleLoad("StReAmInG", 1))
	assert.Len(t, hist.PerRolePerson, 1)
}

func TestBuildHistory_Empty(t *testing.T) {
	hist := BuildHistory(nil)

	assert.Equal(t, 0, hist.RoleLoad("Streaming", 1))
	assert.Equal(t, 0, hist.TotalLoad(1))
}

func TestLoadHistory_WindowExcludesTargetDate(t *testing.T) {
	store := &mockHistoryStore{}
	target := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	_, err := LoadHistory(context.Background(), store, target, 90)
	require.NoError(t, err)

	// Half-open range ending at the target date itself
	assert.Equal(t, target.AddDate(0, 0, -90), store.from)
	assert.Equal(t, target, store.to)
}

func TestLoadHistory_StoreError(t *testing.T) {
	store := &mockHistoryStore{err: errors.New("connection refused")}

	_, err := LoadHistory(context.Background(), store, time.Now(), 90)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "assignment history")
}
