package codegen

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/mod/modfile"
	"golang.org/x/mod/module"
)

// ErrNoModule is returned when no go.mod encloses a directory.
var ErrNoModule = errors.New("no enclosing go.mod")

// ImportPath returns the import path of the package in dir by locating the
// nearest enclosing go.mod.
func ImportPath(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	for from := abs; ; {
		data, err := os.ReadFile(filepath.Join(from, "go.mod"))
		if err == nil {
			modPath := modfile.ModulePath(data)
			if modPath == "" {
				return "", fmt.Errorf("%s: go.mod has no module directive", from)
			}
			rel, err := filepath.Rel(from, abs)
			if err != nil {
				return "", err
			}
			path := modPath
			if rel != "." {
				path = modPath + "/" + filepath.ToSlash(rel)
			}
			if err := module.CheckImportPath(path); err != nil {
				return "", err
			}
			return path, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("read go.mod: %w", err)
		}
		parent := filepath.Dir(from)
		if parent == from {
			return "", ErrNoModule
		}
		from = parent
	}
}
