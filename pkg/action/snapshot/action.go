package snapshot

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/go-cmp/cmp"

	"github.com/cmmoran/treefmt/pkg/action/render"
	"github.com/cmmoran/treefmt/pkg/format"
	"github.com/cmmoran/treefmt/pkg/manifest"
)

// Generate renders files against the schema at schemaPath into
// <outDir>/<name>-<version>.txt and records the result in the manifest.
func Generate(ctx context.Context, opts *format.Options, schemaPath string, files []string, manifestPath, outDir, snapshotName, snapshotVersion string) (string, error) {
	if snapshotName == "" || snapshotVersion == "" {
		return "", fmt.Errorf("snapshot name and version are required")
	}

	m, err := manifest.Load(manifestPath)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	if err := render.Run(ctx, schemaPath, files, opts, &b); err != nil {
		return "", err
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", fmt.Errorf("create snapshot directory: %w", err)
	}
	outFile := filepath.Clean(filepath.Join(outDir, snapshotName+"-"+snapshotVersion+".txt"))
	if err := os.WriteFile(outFile, []byte(b.String()), 0o644); err != nil {
		return "", fmt.Errorf("write snapshot: %w", err)
	}

	m.AddSnapshot(manifest.Snapshot{
		Name:      snapshotName,
		Version:   snapshotVersion,
		File:      outFile,
		Schema:    schemaPath,
		Documents: files,
		Width:     opts.Width,
	})

	if err := m.Save(manifestPath); err != nil {
		return "", err
	}

	return outFile, nil
}

// List returns all snapshots recorded in the manifest.
func List(manifestPath string) (*manifest.Manifest, error) {
	return manifest.Load(manifestPath)
}

// DiffCurrentWithPrevious loads the manifest, locates the current and previous
// snapshot files, and returns a textual diff of their contents. An empty
// result means the renderings are identical.
func DiffCurrentWithPrevious(manifestPath string) (string, error) {
	m, err := manifest.Load(manifestPath)
	if err != nil {
		return "", err
	}

	if m.CurrentVersion == "" || m.PreviousVersion == "" {
		return "", fmt.Errorf("no current/previous snapshots recorded")
	}

	currentPath := m.SnapshotFile(m.CurrentVersion)
	previousPath := m.SnapshotFile(m.PreviousVersion)

	if currentPath == "" || previousPath == "" {
		return "", fmt.Errorf("snapshot files not found in manifest")
	}

	current, err := os.ReadFile(currentPath)
	if err != nil {
		return "", fmt.Errorf("read current snapshot: %w", err)
	}

	previous, err := os.ReadFile(previousPath)
	if err != nil {
		return "", fmt.Errorf("read previous snapshot: %w", err)
	}

	return cmp.Diff(string(previous), string(current)), nil
}
