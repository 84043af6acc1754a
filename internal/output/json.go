package output

import (
	"encoding/json"
	"io"

	"github.com/bgricker/nbtest/internal/report"
)

// JSONRenderer emits structured execution data.
type JSONRenderer struct {
	out io.Writer
}

// NewJSON creates a JSON renderer writing to out.
func NewJSON(out io.Writer) *JSONRenderer {
	return &JSONRenderer{out: out}
}

// Report captures JSON output schema.
type Report struct {
	Dir       string           `json:"dir"`
	Kernel    string           `json:"kernel,omitempty"`
	Notebooks []string         `json:"notebooks"`
	Outcomes  []report.Outcome `json:"outcomes,omitempty"`
	Summary   report.Summary   `json:"summary"`
	Expected  []string         `json:"expected,omitempty"`
	Missing   string           `json:"missing,omitempty"`
	Warnings  []string         `json:"warnings,omitempty"`
}

// Render encodes the report as JSON.
func (j *JSONRenderer) Render(report Report) error {
	enc := json.NewEncoder(j.out)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}
