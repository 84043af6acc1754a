// Package nbtesting runs notebooks as go test subtests.
//
// A test package that owns a notebooks directory calls Run for one subtest per
// notebook and Exist for the aggregate check over the expected set.
package nbtesting

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/bgricker/nbtest/internal/discovery"
	"github.com/bgricker/nbtest/internal/nbexec"
	"github.com/bgricker/nbtest/internal/report"
	"github.com/bgricker/nbtest/internal/version"
)

// SkipUnavailableEnv names the environment variable that turns a missing
// nbconvert into a skip instead of a failure.
const SkipUnavailableEnv = "NBTEST_SKIP_UNAVAILABLE"

// Config controls how Run executes notebooks.
type Config struct {
	Dir        string
	Timeout    time.Duration
	Kernel     string
	Jupyter    string
	PythonPath []string
	// Engine replaces the nbconvert engine. When set, the availability and
	// -short checks are not made.
	Engine nbexec.Engine
}

// Run discovers the notebooks in cfg.Dir and executes each in its own
// subtest named after the file. A missing directory fails the test, as does a
// missing nbconvert unless -short is set or SkipUnavailableEnv is non-empty.
func Run(t *testing.T, cfg Config) {
	t.Helper()

	paths, err := discovery.Notebooks(cfg.Dir, nil)
	if err != nil {
		t.Fatalf("discover notebooks: %v", err)
	}

	engine := cfg.Engine
	if engine == nil {
		if testing.Short() {
			t.Skip("notebook execution skipped in -short mode")
		}
		skip, err := checkEngine(cfg.Jupyter, version.DetectNBConvert, os.Getenv)
		if err != nil {
			t.Fatal(err)
		}
		if skip != "" {
			t.Skip(skip)
		}
		engine = &nbexec.NBConvert{Command: cfg.Jupyter}
	}

	runner := nbexec.New(nbexec.Options{
		Root:       cfg.Dir,
		Engine:     engine,
		Timeout:    cfg.Timeout,
		Kernel:     cfg.Kernel,
		Env:        os.Environ(),
		PythonPath: cfg.PythonPath,
	})

	for _, path := range paths {
		t.Run(filepath.Base(path), func(t *testing.T) {
			outcome, err := runner.Execute(context.Background(), path)
			if msg := failure(outcome, err); msg != "" {
				t.Fatal(msg)
			}
		})
	}
}

// Exist asserts that dir holds at least one notebook and every name in expected.
func Exist(t *testing.T, dir string, expected []string) {
	t.Helper()

	paths, err := discovery.Notebooks(dir, nil)
	if err != nil {
		t.Fatalf("discover notebooks: %v", err)
	}
	if err := discovery.Expect(paths, expected); err != nil {
		t.Fatal(err)
	}
}

// checkEngine reports whether nbconvert can be invoked. When it cannot, the
// result is a skip reason if the skip variable is set and an error otherwise.
func checkEngine(jupyter string, detect func(string) (version.Info, error), getenv func(string) string) (string, error) {
	if _, err := detect(jupyter); err != nil {
		if getenv(SkipUnavailableEnv) != "" {
			return fmt.Sprintf("jupyter nbconvert unavailable: %v", err), nil
		}
		return "", fmt.Errorf("jupyter nbconvert unavailable: %w; install it with `pip install nbconvert nbclient ipykernel` or set %s=1 to skip", err, SkipUnavailableEnv)
	}
	return "", nil
}

func failure(outcome report.Outcome, err error) string {
	if err != nil {
		return fmt.Sprintf("Notebook %s could not be read: %v", outcome.Notebook, err)
	}
	if !outcome.Success {
		return fmt.Sprintf("Notebook %s failed to execute: %s", outcome.Notebook, outcome.Error)
	}
	return ""
}
