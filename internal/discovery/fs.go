package discovery

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Extension is the file suffix recognized as a notebook document.
const Extension = ".ipynb"

// ErrNoNotebooks indicates that discovery produced no notebooks to test.
var ErrNoNotebooks = errors.New("no notebooks found to test")

// Notebooks returns notebook file paths. If explicit paths are provided they are
// validated and returned in the order given. Otherwise the entries of dir are
// listed, filtered with IsNotebook and sorted lexicographically. A missing dir
// is reported as an error; an existing dir without notebooks yields an empty slice.
func Notebooks(dir string, explicit []string) ([]string, error) {
	if len(explicit) > 0 {
		return resolveExplicit(dir, explicit)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read notebooks dir %q: %w", dir, err)
	}

	paths := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !IsNotebook(entry.Name()) {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(paths)

	return paths, nil
}

// IsNotebook reports whether name carries the notebook extension and is not hidden.
func IsNotebook(name string) bool {
	return strings.HasSuffix(name, Extension) && !strings.HasPrefix(name, ".")
}

// Names returns the base names of paths, preserving order.
func Names(paths []string) []string {
	names := make([]string, 0, len(paths))
	for _, p := range paths {
		names = append(names, filepath.Base(p))
	}
	return names
}

func resolveExplicit(dir string, explicit []string) ([]string, error) {
	seen := make(map[string]struct{})
	resolved := make([]string, 0, len(explicit))
	for _, input := range explicit {
		cleaned := input
		if !filepath.IsAbs(cleaned) {
			if _, err := os.Stat(cleaned); err != nil {
				cleaned = filepath.Join(dir, cleaned)
			}
		}
		cleaned = filepath.Clean(cleaned)
		info, err := os.Stat(cleaned)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("notebook %q not found", input)
			}
			return nil, fmt.Errorf("stat %q: %w", input, err)
		}
		if info.IsDir() {
			return nil, fmt.Errorf("notebook %q is a directory", input)
		}
		if _, ok := seen[cleaned]; ok {
			continue
		}
		seen[cleaned] = struct{}{}
		resolved = append(resolved, cleaned)
	}
	return resolved, nil
}
