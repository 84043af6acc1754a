// Package notebooks holds the project notebooks and the test that executes them.
package notebooks

import (
	"path/filepath"
	"runtime"
)

// Expected lists the notebooks that must be present. Update it when a
// notebook is added, renamed or removed.
var Expected = []string{
	"01_risk_distribution_exploration.ipynb",
	"02_temporal_risk_dynamics.ipynb",
	"03_hazard_modeling.ipynb",
}

// Dir returns the directory holding the notebooks, independent of the
// process working directory.
func Dir() string {
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		return "."
	}
	return filepath.Dir(file)
}
