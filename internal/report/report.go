package report

import "time"

// Status values recorded on an Outcome.
const (
	StatusPassed  = "passed"
	StatusFailed  = "failed"
	StatusSkipped = "skipped"
)

// Outcome captures the result of executing a single notebook.
type Outcome struct {
	RunID      string        `json:"run_id"`
	Notebook   string        `json:"notebook"`
	Path       string        `json:"path"`
	Kernel     string        `json:"kernel"`
	Status     string        `json:"status"`
	Success    bool          `json:"success"`
	Error      string        `json:"error,omitempty"`
	ReadError  bool          `json:"read_error,omitempty"`
	CodeCells  int           `json:"code_cells"`
	Duration   time.Duration `json:"-"`
	DurationMS int64         `json:"duration_ms"`
	DryRun     bool          `json:"dry_run"`
}

// Summary aggregates notebook execution results.
type Summary struct {
	TotalNotebooks int           `json:"total_notebooks"`
	Passed         int           `json:"passed"`
	Failed         int           `json:"failed"`
	Skipped        int           `json:"skipped"`
	Duration       time.Duration `json:"-"`
	DurationMS     int64         `json:"duration_ms"`
	ExitCode       int           `json:"exit_code"`
}

// Add folds an outcome into the summary.
func (s *Summary) Add(o Outcome) {
	s.TotalNotebooks++
	switch o.Status {
	case StatusPassed:
		s.Passed++
	case StatusSkipped:
		s.Skipped++
	default:
		s.Failed++
		s.ExitCode = 1
	}
	s.Duration += o.Duration
	s.DurationMS = s.Duration.Milliseconds()
}
