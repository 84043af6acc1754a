package output

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/bgricker/nbtest/internal/report"
)

// StreamingRenderer receives per-notebook updates while a run is in progress.
type StreamingRenderer interface {
	Begin(paths []string) error
	StartNotebook(name string) error
	CompleteNotebook(outcome report.Outcome) error
	RenderSummary(summary report.Summary) error
}

const (
	markPassed  = "✅"
	markFailed  = "❌"
	markSkipped = "⏭️"
)

// PrettyRenderer renders execution results in a human-friendly format.
type PrettyRenderer struct {
	out io.Writer
}

// NewPretty creates a PrettyRenderer writing to the provided writer.
func NewPretty(out io.Writer) *PrettyRenderer {
	return &PrettyRenderer{out: out}
}

// RenderList prints the discovered notebooks.
func (p *PrettyRenderer) RenderList(paths []string) error {
	if _, err := fmt.Fprintln(p.out, foundLine(len(paths))); err != nil {
		return err
	}
	for _, path := range paths {
		if _, err := fmt.Fprintf(p.out, "  - %s\n", filepath.Base(path)); err != nil {
			return err
		}
	}
	return nil
}

// RenderResults shows every notebook outcome followed by a summary line.
func (p *PrettyRenderer) RenderResults(outcomes []report.Outcome, summary report.Summary) error {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, foundLine(len(outcomes)))
	for _, o := range outcomes {
		fmt.Fprintf(&buf, "  - %s\n", o.Notebook)
		writeOutcome(&buf, o)
	}
	writeSummary(&buf, summary)
	_, err := buf.WriteTo(p.out)
	return err
}

// StreamingPrettyRenderer prints each notebook as soon as it starts and finishes.
type StreamingPrettyRenderer struct {
	out io.Writer
}

// NewStreamingPretty creates a StreamingPrettyRenderer.
func NewStreamingPretty(out io.Writer) *StreamingPrettyRenderer {
	return &StreamingPrettyRenderer{out: out}
}

// Begin implements StreamingRenderer.
func (s *StreamingPrettyRenderer) Begin(paths []string) error {
	_, err := fmt.Fprintln(s.out, foundLine(len(paths)))
	return err
}

// StartNotebook implements StreamingRenderer.
func (s *StreamingPrettyRenderer) StartNotebook(name string) error {
	_, err := fmt.Fprintf(s.out, "  - %s\n", name)
	return err
}

// CompleteNotebook implements StreamingRenderer.
func (s *StreamingPrettyRenderer) CompleteNotebook(outcome report.Outcome) error {
	var buf bytes.Buffer
	writeOutcome(&buf, outcome)
	_, err := buf.WriteTo(s.out)
	return err
}

// RenderSummary implements StreamingRenderer.
func (s *StreamingPrettyRenderer) RenderSummary(summary report.Summary) error {
	var buf bytes.Buffer
	writeSummary(&buf, summary)
	_, err := buf.WriteTo(s.out)
	return err
}

func foundLine(n int) string {
	return fmt.Sprintf("Found %d notebooks to test:", n)
}

func writeOutcome(buf *bytes.Buffer, o report.Outcome) {
	switch o.Status {
	case report.StatusPassed:
		fmt.Fprintf(buf, "    %s Executed successfully (%s)\n", markPassed, formatDuration(o.Duration))
	case report.StatusSkipped:
		fmt.Fprintf(buf, "    %s Skipped (dry run, %d code cells)\n", markSkipped, o.CodeCells)
	default:
		msg := strings.TrimSpace(o.Error)
		first, rest, _ := strings.Cut(msg, "\n")
		fmt.Fprintf(buf, "    %s Failed: %s\n", markFailed, first)
		if rest != "" {
			fmt.Fprintln(buf, indent(rest, "      "))
		}
	}
}

func writeSummary(buf *bytes.Buffer, summary report.Summary) {
	fmt.Fprintf(buf, "SUMMARY: %d passed, %d failed, %d skipped (%s)\n", summary.Passed, summary.Failed, summary.Skipped, formatDuration(summary.Duration))
}

func indent(s, pad string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	lines := strings.Split(s, "\n")
	for i := range lines {
		lines[i] = pad + lines[i]
	}
	return strings.Join(lines, "\n")
}

func formatDuration(d time.Duration) string {
	if d <= 0 {
		return "0s"
	}
	if d < time.Second {
		return d.Round(time.Millisecond).String()
	}
	return d.Truncate(time.Millisecond).String()
}
