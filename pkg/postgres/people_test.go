package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNonNilIDs_NilBecomesEmptyArray(t *testing.T) {
	ids := nonNilIDs(nil)

	// An empty non-nil slice encodes as '{}' rather than NULL, so the
	// reset-everyone exclusion update still matches every row
	require.NotNil(t, ids)
	assert.Empty(t, ids)
}

func TestNonNilIDs_PassesAListThrough(t *testing.T) {
	ids := []int64{3, 7}
	assert.Equal(t, ids, nonNilIDs(ids))
}
