package state

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frescoui/fresco/pkg/engine"
)

func TestSaveAndRestoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "fresco.db")
	store, err := Open(path)
	require.NoError(t, err)

	st := engine.NewDashboardState()
	st.User["cpu"] = 0.42
	st.User["lines"] = []string{"a", "b"}
	st.UI["log.tab"] = 2
	require.NoError(t, store.Save(st))
	require.NoError(t, store.Close())

	store, err = Open(path)
	require.NoError(t, err)
	defer store.Close()

	restored := engine.NewDashboardState()
	require.NoError(t, store.Restore(restored))
	assert.Equal(t, 0.42, restored.User["cpu"])
	assert.Equal(t, []any{"a", "b"}, restored.User["lines"], "JSON restore yields generic slices")
	assert.Equal(t, float64(2), restored.UI["log.tab"])
}

func TestSaveReplacesPreviousState(t *testing.T) {
	store, err := Open(":memory:")
	require.NoError(t, err)
	defer store.Close()

	st := engine.NewDashboardState()
	st.User["old"] = "v"
	require.NoError(t, store.Save(st))

	next := engine.NewDashboardState()
	next.User["new"] = "w"
	require.NoError(t, store.Save(next))

	restored := engine.NewDashboardState()
	require.NoError(t, store.Restore(restored))
	assert.NotContains(t, restored.User, "old")
	assert.Equal(t, "w", restored.User["new"])
}

func TestUnserializableValuesAreSkipped(t *testing.T) {
	store, err := Open(":memory:")
	require.NoError(t, err)
	defer store.Close()

	st := engine.NewDashboardState()
	st.User["fn"] = func() {}
	st.User["ok"] = 1
	require.NoError(t, store.Save(st))

	restored := engine.NewDashboardState()
	require.NoError(t, store.Restore(restored))
	assert.NotContains(t, restored.User, "fn")
	assert.Equal(t, float64(1), restored.User["ok"])
}

func TestNewerSchemaRejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fresco.db")
	store, err := Open(path)
	require.NoError(t, err)
	_, err = store.db.Exec("UPDATE schema_info SET version = ?", schemaVersion+1)
	require.NoError(t, err)
	require.NoError(t, store.Close())

	_, err = Open(path)
	assert.ErrorContains(t, err, "newer than supported")
}
