// Package notebook reads Jupyter notebook documents from disk.
//
// Only the fields nbtest inspects are decoded; the original bytes are kept so
// the document handed to an execution engine is exactly what was read.
package notebook

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// ErrNotNotebook indicates the file decoded as JSON but carries no nbformat version.
var ErrNotNotebook = errors.New("not a notebook document")

// Document is a decoded notebook file.
type Document struct {
	Path          string   `json:"-"`
	NBFormat      int      `json:"nbformat"`
	NBFormatMinor int      `json:"nbformat_minor"`
	Metadata      Metadata `json:"metadata"`
	Cells         []Cell   `json:"cells"`

	raw []byte
}

// Metadata holds the notebook-level metadata used for kernel selection.
type Metadata struct {
	KernelSpec   KernelSpec   `json:"kernelspec"`
	LanguageInfo LanguageInfo `json:"language_info"`
}

// KernelSpec names the kernel the notebook was saved with.
type KernelSpec struct {
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	Language    string `json:"language"`
}

// LanguageInfo describes the notebook language.
type LanguageInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// Cell is a single notebook cell. Source may be a string or a list of lines.
type Cell struct {
	CellType string          `json:"cell_type"`
	Source   json.RawMessage `json:"source"`
}

// Text returns the cell source joined into a single string.
func (c Cell) Text() string {
	if len(c.Source) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(c.Source, &s); err == nil {
		return s
	}
	var lines []string
	if err := json.Unmarshal(c.Source, &lines); err == nil {
		return strings.Join(lines, "")
	}
	return ""
}

// Read opens path, decodes the notebook and closes the file before returning.
func Read(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open notebook %q: %w", path, err)
	}
	defer f.Close()

	doc, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("read notebook %q: %w", path, err)
	}
	doc.Path = path
	return doc, nil
}

// Decode parses a notebook from r.
func Decode(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode json: %w", err)
	}
	if doc.NBFormat == 0 {
		return nil, ErrNotNotebook
	}
	doc.raw = data
	return &doc, nil
}

// Encode writes the document bytes as they were read.
func (d *Document) Encode(w io.Writer) error {
	if d.raw == nil {
		return json.NewEncoder(w).Encode(d)
	}
	_, err := io.Copy(w, bytes.NewReader(d.raw))
	return err
}

// CodeCells returns the cells of type "code".
func (d *Document) CodeCells() []Cell {
	var out []Cell
	for _, c := range d.Cells {
		if c.CellType == "code" {
			out = append(out, c)
		}
	}
	return out
}

// KernelName returns the kernel recorded in the notebook metadata, or "".
func (d *Document) KernelName() string {
	return d.Metadata.KernelSpec.Name
}
