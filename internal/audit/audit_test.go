package audit

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordAndRecent(t *testing.T) {
	r, err := Open(filepath.Join(t.TempDir(), "data", "audit.db"))
	require.NoError(t, err)

	require.NoError(t, r.Record("create", "nurse", "admin", "role=doctor"))
	require.NoError(t, r.Record("delete", "nurse", "admin", ""))

	entries, err := r.Recent(10)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	for _, e := range entries {
		assert.NotEmpty(t, e.ID)
		assert.Equal(t, "nurse", e.Username)
		assert.Equal(t, "admin", e.Actor)
		assert.False(t, e.CreatedAt.IsZero())
	}
}

func TestRecentLimit(t *testing.T) {
	r, err := Open(filepath.Join(t.TempDir(), "audit.db"))
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		require.NoError(t, r.Record("update", "patient", "admin", ""))
	}

	entries, err := r.Recent(3)
	require.NoError(t, err)
	assert.Len(t, entries, 3)
}
