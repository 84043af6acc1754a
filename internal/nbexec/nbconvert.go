package nbexec

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/bgricker/nbtest/internal/notebook"
)

const (
	defaultCommand   = "jupyter"
	defaultMaxOutput = 1 << 20
	defaultWaitDelay = 5 * time.Second
)

// NBConvert executes notebooks with `jupyter nbconvert --execute`.
// The document is written to a private temp dir so the source file is never
// modified; the executed copy is discarded.
type NBConvert struct {
	// Command is the jupyter invocation, e.g. "jupyter" or "python3 -m jupyter".
	Command string
	// MaxOutput caps the stderr kept for the failure message; only the
	// trailing MaxOutput bytes survive.
	MaxOutput int
	// WaitDelay bounds how long to wait for kernel child processes after
	// the engine is killed.
	WaitDelay time.Duration
}

// Execute implements Engine.
func (n *NBConvert) Execute(ctx context.Context, doc *notebook.Document, cfg EngineConfig) error {
	tmp, err := os.MkdirTemp("", "nbtest-*")
	if err != nil {
		return fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(tmp)

	input := filepath.Join(tmp, inputName(doc))
	if err := writeDocument(input, doc); err != nil {
		return err
	}

	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	argv := append(n.commandArgs(), nbconvertArgs(input, tmp, cfg)...)
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = cfg.WorkDir
	cmd.Env = cfg.Env
	cmd.WaitDelay = n.waitDelay()
	killProcessGroup(cmd)

	limit := n.MaxOutput
	if limit <= 0 {
		limit = defaultMaxOutput
	}
	stderr := &tailWriter{limit: limit}
	if cfg.Stdout != nil {
		cmd.Stdout = cfg.Stdout
	}
	cmd.Stderr = teeTo(stderr, cfg.Stderr)

	runErr := cmd.Run()
	if runErr == nil {
		return nil
	}

	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%w after %s", ErrTimeout, cfg.Timeout)
	}
	if errors.Is(runErr, exec.ErrNotFound) {
		return fmt.Errorf("%s executable not found; install it with `pip install nbconvert nbclient ipykernel`", argv[0])
	}

	var exitErr *exec.ExitError
	if errors.As(runErr, &exitErr) {
		return &ExecError{
			ExitCode: exitErr.ExitCode(),
			Message:  failureMessage(stderr.String()),
		}
	}
	return fmt.Errorf("run %s: %w", argv[0], runErr)
}

func (n *NBConvert) commandArgs() []string {
	fields := strings.Fields(n.Command)
	if len(fields) == 0 {
		return []string{defaultCommand}
	}
	return fields
}

func (n *NBConvert) waitDelay() time.Duration {
	if n.WaitDelay > 0 {
		return n.WaitDelay
	}
	return defaultWaitDelay
}

func nbconvertArgs(input, outDir string, cfg EngineConfig) []string {
	args := []string{
		"nbconvert",
		"--to", "notebook",
		"--execute",
		"--output-dir", outDir,
		"--output", "executed",
	}
	if cfg.Timeout > 0 {
		secs := int(math.Ceil(cfg.Timeout.Seconds()))
		args = append(args, fmt.Sprintf("--ExecutePreprocessor.timeout=%d", secs))
	}
	if cfg.KernelName != "" {
		args = append(args, "--ExecutePreprocessor.kernel_name="+cfg.KernelName)
	}
	if cfg.AllowErrors {
		args = append(args, "--ExecutePreprocessor.allow_errors=True")
	} else {
		args = append(args, "--ExecutePreprocessor.allow_errors=False")
	}
	return append(args, input)
}

func inputName(doc *notebook.Document) string {
	if doc.Path != "" {
		return filepath.Base(doc.Path)
	}
	return "notebook.ipynb"
}

func writeDocument(path string, doc *notebook.Document) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %q: %w", path, err)
	}
	if err := doc.Encode(f); err != nil {
		f.Close()
		return fmt.Errorf("write %q: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %q: %w", path, err)
	}
	return nil
}

func teeTo(w io.Writer, extra io.Writer) io.Writer {
	if extra == nil {
		return w
	}
	return io.MultiWriter(w, extra)
}

// tailWriter keeps the last limit bytes written to it.
type tailWriter struct {
	buf   []byte
	limit int
}

func (w *tailWriter) Write(p []byte) (int, error) {
	n := len(p)
	if n >= w.limit {
		w.buf = append(w.buf[:0], p[n-w.limit:]...)
		return n, nil
	}
	// Compact once the buffer reaches twice the limit.
	if len(w.buf)+n > 2*w.limit {
		keep := w.limit - n
		w.buf = append(w.buf[:0], w.buf[len(w.buf)-keep:]...)
	}
	w.buf = append(w.buf, p...)
	return n, nil
}

func (w *tailWriter) String() string {
	b := w.buf
	if len(b) > w.limit {
		b = b[len(b)-w.limit:]
	}
	return string(b)
}
