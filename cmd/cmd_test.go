package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	arithSchema = filepath.Join("..", "pkg", "schema", "testdata", "arith.yaml")
	arithDoc    = filepath.Join("..", "pkg", "schema", "testdata", "arith_doc.yaml")
)

func TestPrintCommand(t *testing.T) {
	var out bytes.Buffer
	c := NewPrintCommand()
	c.SetOut(&out)
	c.SetArgs([]string{"--schema", arithSchema, arithDoc})
	require.NoError(t, c.Execute())

	assert.Equal(t, strings.Join([]string{
		"(BinOp Plus (Const 1) (Const 2))",
		"(Call max (Const 3) (Const 4))",
		"(BinOp 2 (Const 5) right=?)",
	}, "\n")+"\n", out.String())
}

func TestPrintCommandNarrow(t *testing.T) {
	var out bytes.Buffer
	c := NewPrintCommand()
	c.SetOut(&out)
	c.SetArgs([]string{"--schema", arithSchema, "--width", "20", arithDoc})
	require.NoError(t, c.Execute())

	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	assert.Equal(t, "(BinOp", lines[0])
	assert.Equal(t, "  Plus", lines[1])
}

func TestPrintCommandRejectsBadBackend(t *testing.T) {
	c := NewPrintCommand()
	c.SetOut(&bytes.Buffer{})
	c.SetErr(&bytes.Buffer{})
	c.SetArgs([]string{"--schema", arithSchema, "--backend", "pdf", arithDoc})
	assert.Error(t, c.Execute())
}

func TestGenCommand(t *testing.T) {
	dir := t.TempDir()
	c := NewGenCommand()
	c.SetArgs([]string{"--schema", arithSchema, "-o", dir, "-f", "arith_gen.go"})
	require.NoError(t, c.Execute())

	data, err := os.ReadFile(filepath.Join(dir, "arith_gen.go"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "DO NOT EDIT")
}

func TestSnapshotCommand(t *testing.T) {
	dir := t.TempDir()
	manifestPath := filepath.Join(dir, "manifest.yaml")

	for _, v := range []string{"v1", "v2"} {
		c := NewSnapshotCommand()
		c.SetOut(&bytes.Buffer{})
		c.SetArgs([]string{"-s", arithSchema, "-m", manifestPath, "-o", dir, "-v", v, arithDoc})
		require.NoError(t, c.Execute())
	}

	var out bytes.Buffer
	c := NewSnapshotCommand()
	c.SetOut(&out)
	c.SetArgs([]string{"list", "-m", manifestPath})
	require.NoError(t, c.Execute())
	assert.Contains(t, out.String(), "* tree v2")

	out.Reset()
	c = NewSnapshotCommand()
	c.SetOut(&out)
	c.SetArgs([]string{"diff", "-m", manifestPath})
	require.NoError(t, c.Execute())
	assert.Empty(t, out.String())
}
