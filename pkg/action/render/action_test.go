package render

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmmoran/treefmt/pkg/format"
)

var arithSchema = filepath.Join("..", "..", "schema", "testdata", "arith.yaml")

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func writeDoc(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
}

func TestRunMultipleFiles(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.yaml")
	b := filepath.Join(dir, "b.yaml")
	writeDoc(t, a, `{_type: Const, value: 1}`)
	writeDoc(t, b, `[{_type: Const, value: 2}, {_type: Const, value: 3}]`)

	var out bytes.Buffer
	require.NoError(t, Run(context.Background(), arithSchema, []string{a, b}, format.NewOptions(), &out))
	assert.Equal(t, "(Const 1)\n(Const 2)\n(Const 3)\n", out.String())
}

func TestRunHTMLBackend(t *testing.T) {
	doc := filepath.Join(t.TempDir(), "doc.yaml")
	writeDoc(t, doc, `{_type: BinOp, op: Plus, left: {_type: Const, value: 1}}`)

	opts := format.NewOptions()
	opts.Backend = format.BackendHTML
	var out bytes.Buffer
	require.NoError(t, Run(context.Background(), arithSchema, []string{doc}, opts, &out))
	assert.Contains(t, out.String(), `<span class="tf-degraded">right=?</span>`)
}

func TestRunANSIPalette(t *testing.T) {
	doc := filepath.Join(t.TempDir(), "doc.yaml")
	writeDoc(t, doc, `{_type: Const, value: 1}`)

	opts := format.NewOptions()
	opts.Backend = format.BackendANSI
	opts.Palette = map[string]string{"literal": "blue"}
	var out bytes.Buffer
	require.NoError(t, Run(context.Background(), arithSchema, []string{doc}, opts, &out))
	assert.Contains(t, out.String(), "\x1b[38;2;0;0;255m1\x1b[0m")

	opts.Palette = map[string]string{"literal": "no-such-color"}
	assert.Error(t, Run(context.Background(), arithSchema, []string{doc}, opts, &bytes.Buffer{}))
}

func TestRunErrors(t *testing.T) {
	doc := filepath.Join(t.TempDir(), "doc.yaml")
	writeDoc(t, doc, `{_type: Nope}`)

	assert.Error(t, Run(context.Background(), "missing.yaml", []string{doc}, format.NewOptions(), &bytes.Buffer{}))
	assert.Error(t, Run(context.Background(), arithSchema, []string{doc}, format.NewOptions(), &bytes.Buffer{}))
	assert.Error(t, Run(context.Background(), arithSchema, []string{"missing.yaml"}, format.NewOptions(), &bytes.Buffer{}))
}

func TestWatchRerendersOnChange(t *testing.T) {
	doc := filepath.Join(t.TempDir(), "doc.yaml")
	writeDoc(t, doc, `{_type: Const, value: 1}`)

	ctx, cancel := context.WithCancel(context.Background())
	out := &syncBuffer{}
	done := make(chan error, 1)
	go func() { done <- Watch(ctx, arithSchema, []string{doc}, format.NewOptions(), out) }()

	require.Eventually(t, func() bool { return strings.Contains(out.String(), "(Const 1)") }, 5*time.Second, 10*time.Millisecond)

	writeDoc(t, doc, `{_type: Const, value: 2}`)
	require.Eventually(t, func() bool { return strings.Contains(out.String(), "(Const 2)") }, 5*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop after cancel")
	}
}
