package render

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/cmmoran/treefmt/pkg/format"
	"github.com/cmmoran/treefmt/pkg/schema"
)

// Run renders every root node of every document in files, in order, and
// writes the result to w.
func Run(ctx context.Context, schemaPath string, files []string, opts *format.Options, w io.Writer) error {
	s, err := schema.Load(schemaPath)
	if err != nil {
		return err
	}
	p, err := format.NewPrinterWithOpts(opts)
	if err != nil {
		return err
	}
	sink, err := format.NewSink(p.Opts.Backend)
	if err != nil {
		return err
	}
	if ansi, ok := sink.(*format.ANSISink); ok && len(p.Opts.Palette) > 0 {
		if ansi.Palette, err = format.ParsePalette(p.Opts.Palette); err != nil {
			return err
		}
	}

	for _, file := range files {
		roots, err := schema.LoadDocument(s, file)
		if err != nil {
			return err
		}
		slog.Debug("rendering document", "file", file, "roots", len(roots), "width", p.Opts.Width)
		if err := p.PrintAll(ctx, sink, roots); err != nil {
			return fmt.Errorf("render %s: %w", file, err)
		}
	}

	if _, err := io.WriteString(w, sink.String()); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

// Watch runs Run once and again whenever the schema or a document changes,
// until ctx is done. Render errors are logged, not returned, so a broken
// intermediate edit does not stop the watch.
func Watch(ctx context.Context, schemaPath string, files []string, opts *format.Options, w io.Writer) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	watched := map[string]bool{}
	for _, path := range append([]string{schemaPath}, files...) {
		dir := filepath.Dir(path)
		if watched[dir] {
			continue
		}
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
		watched[dir] = true
	}

	relevant := map[string]bool{filepath.Clean(schemaPath): true}
	for _, f := range files {
		relevant[filepath.Clean(f)] = true
	}

	rerun := func() {
		if err := Run(ctx, schemaPath, files, opts, w); err != nil {
			slog.Error("render failed", "error", err)
		}
	}
	rerun()

	for {
		select {
		case <-ctx.Done():
			if errors.Is(ctx.Err(), context.Canceled) {
				return nil
			}
			return ctx.Err()
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !relevant[filepath.Clean(ev.Name)] || !(ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create)) {
				continue
			}
			slog.Info("change detected", "file", ev.Name, "op", ev.Op.String())
			rerun()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Warn("watch error", "error", err)
		}
	}
}
