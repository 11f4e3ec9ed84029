package extract

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/cmmoran/treefmt/internal/schemagen"
)

// Extract derives a schema from the Go package in inDir. It is written to
// outPath, or to w when outPath is empty.
func Extract(inDir, outPath string, w io.Writer) error {
	s, err := schemagen.Extract(inDir)
	if err != nil {
		return err
	}
	data, err := s.Marshal()
	if err != nil {
		return err
	}
	if outPath == "" {
		_, err = w.Write(data)
		return err
	}
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("create schema directory: %w", err)
	}
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		return fmt.Errorf("write schema: %w", err)
	}
	slog.Info("extracted schema", "file", outPath, "records", len(s.Records), "enums", len(s.Enums), "sums", len(s.Sums))
	return nil
}
