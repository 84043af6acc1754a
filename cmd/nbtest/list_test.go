package main

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/bgricker/nbtest/internal/output"
)

func TestListCommandBasic(t *testing.T) {
	p := newProject(t, "b.ipynb", "a.ipynb", ".hidden.ipynb", "notes.txt")

	out, _, err := execute(t, "list", "--jupyter", p.jupyter)
	if err != nil {
		t.Fatalf("command execute: %v", err)
	}

	want := "Found 2 notebooks to test:\n  - a.ipynb\n  - b.ipynb\n"
	if diff := cmp.Diff(want, out); diff != "" {
		t.Fatalf("unexpected output (-want +got):\n%s", diff)
	}
}

func TestListCommandFilters(t *testing.T) {
	p := newProject(t, "01_intro.ipynb", "02_model.ipynb", "03_scratch.ipynb")

	out, _, err := execute(t, "list", "--jupyter", p.jupyter, "--only", "/^0[23]_/", "--skip", "SCRATCH")
	if err != nil {
		t.Fatalf("command execute: %v", err)
	}

	want := "Found 1 notebooks to test:\n  - 02_model.ipynb\n"
	if diff := cmp.Diff(want, out); diff != "" {
		t.Fatalf("unexpected output (-want +got):\n%s", diff)
	}
}

func TestListCommandJSON(t *testing.T) {
	p := newProject(t, "b.ipynb", "a.ipynb")

	out, _, err := execute(t, "list", "--jupyter", p.jupyter, "--format", "json")
	if err != nil {
		t.Fatalf("command execute: %v", err)
	}

	var got output.Report
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decode report: %v\n%s", err, out)
	}
	if got.Dir != "notebooks" || got.Kernel != "python3" {
		t.Fatalf("unexpected report header: %+v", got)
	}
	if diff := cmp.Diff([]string{"notebooks/a.ipynb", "notebooks/b.ipynb"}, got.Notebooks); diff != "" {
		t.Fatalf("unexpected notebooks (-want +got):\n%s", diff)
	}
	if got.Summary.TotalNotebooks != 2 {
		t.Fatalf("total = %d", got.Summary.TotalNotebooks)
	}
}

func TestListCommandVersionWarning(t *testing.T) {
	p := newProject(t, "a.ipynb")
	if err := writeFile(p.root, ".python-version", "2.7\n"); err != nil {
		t.Fatalf("write .python-version: %v", err)
	}

	_, stderr, err := execute(t, "list", "--jupyter", p.jupyter)
	if err != nil {
		t.Fatalf("command execute: %v", err)
	}
	if stderr == "" {
		t.Fatalf("expected a python version warning")
	}
}

func TestUnsupportedFormat(t *testing.T) {
	p := newProject(t, "a.ipynb")

	if _, _, err := execute(t, "list", "--jupyter", p.jupyter, "--format", "xml"); err == nil {
		t.Fatalf("expected an error for unsupported format")
	}
}
