package generate

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/cmmoran/treefmt/internal/codegen"
	"github.com/cmmoran/treefmt/pkg/schema"
)

// Generate writes Go node types for the schema at schemaPath into
// outDir/outFile and returns the written path.
func Generate(schemaPath, outDir, outFile string) (string, error) {
	s, err := schema.Load(schemaPath)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}

	pkgName := s.Package
	if pkgName == "" {
		pkgName = PackageName(outDir)
	}
	importPath, err := codegen.ImportPath(outDir)
	if errors.Is(err, codegen.ErrNoModule) {
		slog.Debug("output directory is not inside a module", "dir", outDir)
		importPath = ""
	} else if err != nil {
		return "", err
	}

	f, err := codegen.New(s, pkgName, importPath).File()
	if err != nil {
		return "", err
	}

	out := filepath.Clean(filepath.Join(outDir, outFile))
	ff, err := os.OpenFile(out, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return "", fmt.Errorf("open output: %w", err)
	}
	if err := f.Render(ff); err != nil {
		_ = ff.Close()
		return "", fmt.Errorf("render %s: %w", out, err)
	}
	if err := ff.Close(); err != nil {
		return "", err
	}
	slog.Info("generated node types", "file", out, "package", pkgName, "records", len(s.Records))
	return out, nil
}

// PackageName derives a Go package name from a directory.
func PackageName(dir string) string {
	abs, err := filepath.Abs(dir)
	if err != nil {
		abs = dir
	}
	name := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			return unicode.ToLower(r)
		}
		return -1
	}, filepath.Base(abs))
	if name == "" || unicode.IsDigit(rune(name[0])) {
		name = "nodes" + name
	}
	return name
}
