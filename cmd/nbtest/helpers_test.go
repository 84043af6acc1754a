package main

import (
	"bytes"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// fakeJupyter answers `nbconvert --version` and fails any notebook whose file
// name contains "broken".
const fakeJupyter = `
for last; do :; done
if [ "$2" = "--version" ]; then
  echo "7.16.4"
  exit 0
fi
echo "[NbConvertApp] Converting notebook $last to notebook" >&2
case "$last" in
  *broken*)
    echo "Traceback (most recent call last):" >&2
    echo "nbclient.exceptions.CellExecutionError: An error occurred while executing the following cell:" >&2
    echo "ZeroDivisionError: division by zero" >&2
    exit 1
    ;;
esac
exit 0
`

const notebookJSON = `{
 "cells": [
  {"cell_type": "markdown", "metadata": {}, "source": ["# title"]},
  {"cell_type": "code", "execution_count": null, "metadata": {}, "outputs": [], "source": ["x = 1"]}
 ],
 "metadata": {"kernelspec": {"name": "python3", "display_name": "Python 3", "language": "python"}},
 "nbformat": 4,
 "nbformat_minor": 5
}`

type project struct {
	root    string
	jupyter string
}

// newProject creates a working directory holding a notebooks dir with the
// given files and a fake jupyter script, and changes into it.
func newProject(t *testing.T, names ...string) project {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake jupyter requires a POSIX shell")
	}
	root := t.TempDir()
	nbDir := filepath.Join(root, "notebooks")
	if err := os.MkdirAll(nbDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(nbDir, name), []byte(notebookJSON), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	script := filepath.Join(root, "jupyter.sh")
	if err := os.WriteFile(script, []byte(fakeJupyter), 0o644); err != nil {
		t.Fatalf("write fake jupyter: %v", err)
	}
	chdir(t, root)
	return project{root: root, jupyter: "sh " + script}
}

func execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	cmd := newRootCmd()
	cmd.SetArgs(args)

	outBuf := &bytes.Buffer{}
	errBuf := &bytes.Buffer{}
	cmd.SetOut(outBuf)
	cmd.SetErr(errBuf)

	err = cmd.Execute()
	return outBuf.String(), errBuf.String(), err
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir %q: %v", dir, err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatalf("restore dir: %v", err)
		}
	})
}

func writeFile(dir, name, body string) error {
	return os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644)
}
