package filter

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

var paths = []string{
	"notebooks/01_risk_distribution_exploration.ipynb",
	"notebooks/02_temporal_risk_dynamics.ipynb",
	"notebooks/03_hazard_modeling.ipynb",
}

func TestNotebooksOnly(t *testing.T) {
	only, err := Compile([]string{"RISK"})
	if err != nil {
		t.Fatalf("compile: %v", err)
	}

	got := Notebooks(paths, only, nil)
	if diff := cmp.Diff(paths[:2], got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestNotebooksRegexAndSkip(t *testing.T) {
	only, err := Compile([]string{"/^0[23]_/"})
	if err != nil {
		t.Fatalf("compile only: %v", err)
	}
	skip, err := Compile([]string{"hazard"})
	if err != nil {
		t.Fatalf("compile skip: %v", err)
	}

	got := Notebooks(paths, only, skip)
	if diff := cmp.Diff([]string{paths[1]}, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestNotebooksNoPatterns(t *testing.T) {
	got := Notebooks(paths, nil, nil)
	if diff := cmp.Diff(paths, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
	if Notebooks(nil, nil, nil) != nil {
		t.Fatalf("expected nil for empty input")
	}
}

func TestCompile(t *testing.T) {
	patterns, err := Compile([]string{"  ", "plain", "/re.*/"})
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if len(patterns) != 2 {
		t.Fatalf("expected blank pattern dropped, got %d", len(patterns))
	}
	if patterns[1].String() != "/re.*/" {
		t.Fatalf("unexpected raw %q", patterns[1].String())
	}

	if _, err := Compile([]string{"/[/"}); err == nil {
		t.Fatalf("expected invalid regexp error")
	}
}
