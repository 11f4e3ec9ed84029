package snapshot

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmmoran/treefmt/pkg/format"
)

func TestGenerateAndDiff(t *testing.T) {
	dir := t.TempDir()
	manifestPath := filepath.Join(dir, "manifest.yaml")
	schemaPath := filepath.Join("testdata", "arith.yaml")
	opts := format.NewOptions()

	first, err := Generate(context.Background(), opts, schemaPath, []string{filepath.Join("testdata", "v1.yaml")}, manifestPath, dir, "arith", "v1")
	require.NoError(t, err)
	data, err := os.ReadFile(first)
	require.NoError(t, err)
	assert.Equal(t, "(Const 7)\n(BinOp Plus (Const 1) (Const 2))\n(Call max (Const 3) (Const 4))\n", string(data))

	_, err = DiffCurrentWithPrevious(manifestPath)
	require.Error(t, err, "a single snapshot has nothing to compare against")

	_, err = Generate(context.Background(), opts, schemaPath, []string{filepath.Join("testdata", "v2.yaml")}, manifestPath, dir, "arith", "v2")
	require.NoError(t, err)

	m, err := List(manifestPath)
	require.NoError(t, err)
	assert.Equal(t, "v2", m.CurrentVersion)
	assert.Equal(t, "v1", m.PreviousVersion)
	require.Len(t, m.Snapshots, 2)
	assert.Equal(t, format.DefaultWidth, m.Snapshots[1].Width)

	diff, err := DiffCurrentWithPrevious(manifestPath)
	require.NoError(t, err)
	t.Logf("diff: %s", diff)
	assert.True(t, hasDiffLine(diff, "-", "(BinOp Plus (Const 1) (Const 2))"), "removed rendering line is shown whole")
	assert.True(t, hasDiffLine(diff, "+", "(BinOp Minus (Const 1) (Const 2))"), "added rendering line is shown whole")
	assert.False(t, hasDiffLine(diff, "-", "(Const 7)"), "unchanged lines are not reported")
}

// hasDiffLine reports whether diff has a line marked with sign that carries
// text as one whole quoted line.
func hasDiffLine(diff, sign, text string) bool {
	for _, line := range strings.Split(diff, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, sign) && strings.Contains(line, strconv.Quote(text)) {
			return true
		}
	}
	return false
}

func TestGenerateSameOutputHasEmptyDiff(t *testing.T) {
	dir := t.TempDir()
	manifestPath := filepath.Join(dir, "manifest.yaml")
	schemaPath := filepath.Join("testdata", "arith.yaml")
	doc := []string{filepath.Join("testdata", "v1.yaml")}

	for _, v := range []string{"v1", "v2"} {
		_, err := Generate(context.Background(), format.NewOptions(), schemaPath, doc, manifestPath, dir, "arith", v)
		require.NoError(t, err)
	}

	diff, err := DiffCurrentWithPrevious(manifestPath)
	require.NoError(t, err)
	assert.Empty(t, diff)
}

func TestGenerateRequiresNameAndVersion(t *testing.T) {
	_, err := Generate(context.Background(), format.NewOptions(), "", nil, "", t.TempDir(), "", "v1")
	assert.Error(t, err)
}
