package discovery

import (
	"fmt"
	"path/filepath"
)

// MissingError reports an expected notebook absent from the discovered set.
type MissingError struct {
	Name string
}

func (e *MissingError) Error() string {
	return fmt.Sprintf("Expected notebook %s not found", e.Name)
}

// Expect checks that at least one notebook was found and that every name in
// expected is the base name of a discovered path. Expected names are compared
// exactly; the first missing one is reported.
func Expect(paths []string, expected []string) error {
	if len(paths) == 0 {
		return ErrNoNotebooks
	}

	found := make(map[string]struct{}, len(paths))
	for _, p := range paths {
		found[filepath.Base(p)] = struct{}{}
	}
	for _, name := range expected {
		if _, ok := found[name]; !ok {
			return &MissingError{Name: name}
		}
	}
	return nil
}
