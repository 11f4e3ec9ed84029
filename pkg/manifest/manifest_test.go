package manifest

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingIsEmpty(t *testing.T) {
	m, err := Load(filepath.Join(t.TempDir(), "none.yaml"))
	require.NoError(t, err)
	assert.Equal(t, &Manifest{}, m)
}

func TestAddSnapshot(t *testing.T) {
	m := &Manifest{}
	m.AddSnapshot(Snapshot{Name: "arith", Version: "v1", File: "a1.txt"})
	assert.Equal(t, "v1", m.CurrentVersion)
	assert.Equal(t, "", m.PreviousVersion)

	m.AddSnapshot(Snapshot{Name: "arith", Version: "v2", File: "a2.txt"})
	assert.Equal(t, "v2", m.CurrentVersion)
	assert.Equal(t, "v1", m.PreviousVersion)

	m.AddSnapshot(Snapshot{Name: "arith", Version: "v2", File: "a2b.txt", Width: 40})
	assert.Equal(t, "v1", m.PreviousVersion, "re-recording keeps the previous pointer")
	assert.Len(t, m.Snapshots, 2)
	assert.Equal(t, "a2b.txt", m.SnapshotFile("v2"))
	assert.Equal(t, "", m.SnapshotFile("v9"))
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "manifest.yaml")
	m := &Manifest{}
	m.AddSnapshot(Snapshot{Name: "arith", Version: "v1", File: "a1.txt", Schema: "s.yaml", Documents: []string{"d.yaml"}, Width: 70})
	require.NoError(t, m.Save(path))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, m, got)

	s, ok := got.Find("v1")
	require.True(t, ok)
	assert.Equal(t, []string{"d.yaml"}, s.Documents)
}
