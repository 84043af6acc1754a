package nbexec

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/bgricker/nbtest/internal/notebook"
	"github.com/bgricker/nbtest/internal/output"
	"github.com/bgricker/nbtest/internal/report"
)

// Options configure how the runner executes notebooks.
type Options struct {
	Root       string
	Engine     Engine
	Timeout    time.Duration
	Kernel     string
	Env        []string
	PythonPath []string
	Stdout     io.Writer
	Stderr     io.Writer
	Verbose    bool
	DryRun     bool
	Now        func() time.Time
	NewID      func() string
	Logger     *slog.Logger
	Streaming  output.StreamingRenderer
}

// Runner executes notebooks sequentially, one outcome per notebook.
type Runner struct {
	opts Options
}

// New creates a runner with the supplied options.
func New(opts Options) *Runner {
	if opts.Engine == nil {
		opts.Engine = &NBConvert{}
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.Kernel == "" {
		opts.Kernel = DefaultKernel
	}
	if opts.Stdout == nil {
		opts.Stdout = io.Discard
	}
	if opts.Stderr == nil {
		opts.Stderr = io.Discard
	}
	if opts.Env == nil {
		opts.Env = os.Environ()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.NewID == nil {
		opts.NewID = func() string { return uuid.New().String() }
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Runner{opts: opts}
}

// Execute reads the notebook at path and runs it through the engine.
// Errors reading the document are returned; any engine failure is reported in
// the outcome with the engine's message preserved.
func (r *Runner) Execute(ctx context.Context, path string) (report.Outcome, error) {
	outcome := r.newOutcome(path)

	doc, err := notebook.Read(path)
	if err != nil {
		return outcome, err
	}
	outcome.CodeCells = len(doc.CodeCells())

	log := r.opts.Logger.With("run_id", outcome.RunID, "notebook", outcome.Notebook)
	log.Debug("executing notebook", "kernel", r.opts.Kernel, "timeout", r.opts.Timeout, "code_cells", outcome.CodeCells)

	start := r.opts.Now()
	execErr := r.opts.Engine.Execute(ctx, doc, r.engineConfig(path))
	outcome.Duration = r.opts.Now().Sub(start)
	outcome.DurationMS = outcome.Duration.Milliseconds()

	if execErr != nil {
		outcome.Status = report.StatusFailed
		outcome.Error = execErr.Error()
		log.Warn("notebook failed", "duration", outcome.Duration, "error", outcome.Error)
		return outcome, nil
	}

	outcome.Status = report.StatusPassed
	outcome.Success = true
	log.Info("notebook passed", "duration", outcome.Duration)
	return outcome, nil
}

// Run executes the notebooks at paths in sorted order. A notebook that cannot
// be read is recorded as failed and does not stop the remaining ones. Run only
// returns an error when ctx is cancelled or the streaming renderer fails.
func (r *Runner) Run(ctx context.Context, paths []string) ([]report.Outcome, report.Summary, error) {
	ordered := append([]string{}, paths...)
	sort.Strings(ordered)

	var summary report.Summary
	results := make([]report.Outcome, 0, len(ordered))

	if s := r.opts.Streaming; s != nil {
		if err := s.Begin(ordered); err != nil {
			return nil, summary, err
		}
	}

	for _, path := range ordered {
		if err := ctx.Err(); err != nil {
			return results, summary, err
		}
		if s := r.opts.Streaming; s != nil {
			if err := s.StartNotebook(filepath.Base(path)); err != nil {
				return nil, summary, err
			}
		}

		var outcome report.Outcome
		if r.opts.DryRun {
			outcome = r.dryRun(path)
		} else {
			var err error
			outcome, err = r.Execute(ctx, path)
			if err != nil {
				outcome.Status = report.StatusFailed
				outcome.ReadError = true
				outcome.Error = err.Error()
			}
		}

		summary.Add(outcome)
		results = append(results, outcome)

		if s := r.opts.Streaming; s != nil {
			if err := s.CompleteNotebook(outcome); err != nil {
				return nil, summary, err
			}
		}
	}

	if s := r.opts.Streaming; s != nil {
		if err := s.RenderSummary(summary); err != nil {
			return nil, summary, err
		}
	}
	return results, summary, nil
}

func (r *Runner) dryRun(path string) report.Outcome {
	outcome := r.newOutcome(path)
	outcome.DryRun = true
	doc, err := notebook.Read(path)
	if err != nil {
		outcome.Status = report.StatusFailed
		outcome.ReadError = true
		outcome.Error = err.Error()
		return outcome
	}
	outcome.Status = report.StatusSkipped
	outcome.CodeCells = len(doc.CodeCells())
	return outcome
}

func (r *Runner) newOutcome(path string) report.Outcome {
	return report.Outcome{
		RunID:    r.opts.NewID(),
		Notebook: filepath.Base(path),
		Path:     path,
		Kernel:   r.opts.Kernel,
	}
}

func (r *Runner) engineConfig(path string) EngineConfig {
	cfg := EngineConfig{
		Timeout:     r.opts.Timeout,
		KernelName:  r.opts.Kernel,
		AllowErrors: false,
		WorkDir:     notebookDir(path),
		Env:         r.env(),
	}
	if r.opts.Verbose {
		cfg.Stdout = r.opts.Stdout
		cfg.Stderr = r.opts.Stderr
	}
	return cfg
}

func (r *Runner) env() []string {
	if len(r.opts.PythonPath) == 0 {
		return r.opts.Env
	}
	entries := make([]string, 0, len(r.opts.PythonPath)+1)
	for _, p := range r.opts.PythonPath {
		if !filepath.IsAbs(p) && r.opts.Root != "" {
			p = filepath.Join(r.opts.Root, p)
		}
		entries = append(entries, filepath.Clean(p))
	}
	if existing := envValue(r.opts.Env, "PYTHONPATH"); existing != "" {
		entries = append(entries, existing)
	}
	return mergeEnv(r.opts.Env, map[string]string{
		"PYTHONPATH": strings.Join(entries, string(os.PathListSeparator)),
	})
}

func notebookDir(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return filepath.Dir(abs)
	}
	return filepath.Dir(path)
}

func mergeEnv(base []string, overlays ...map[string]string) []string {
	envMap := make(map[string]string, len(base)+len(overlays)*4)
	for _, kv := range base {
		if idx := strings.Index(kv, "="); idx != -1 {
			envMap[kv[:idx]] = kv[idx+1:]
		}
	}
	for _, overlay := range overlays {
		for k, v := range overlay {
			envMap[k] = v
		}
	}
	keys := make([]string, 0, len(envMap))
	for k := range envMap {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, fmt.Sprintf("%s=%s", k, envMap[k]))
	}
	return out
}

func envValue(env []string, key string) string {
	for _, kv := range env {
		if idx := strings.Index(kv, "="); idx != -1 && kv[:idx] == key {
			return kv[idx+1:]
		}
	}
	return ""
}
