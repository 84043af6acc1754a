// Package nbexec executes notebook documents through an external engine and
// converts every engine failure into a reportable outcome.
package nbexec

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/bgricker/nbtest/internal/notebook"
)

const (
	// DefaultTimeout bounds a single notebook run.
	DefaultTimeout = 300 * time.Second
	// DefaultKernel is the kernel started for every notebook.
	DefaultKernel = "python3"
)

// ErrTimeout is wrapped by engine errors caused by the run exceeding its timeout.
var ErrTimeout = errors.New("notebook execution timed out")

// Engine runs every code cell of a document against a fresh kernel.
// It returns an error when a cell raises, the kernel cannot start or the
// timeout expires.
type Engine interface {
	Execute(ctx context.Context, doc *notebook.Document, cfg EngineConfig) error
}

// EngineConfig carries the options recognized by an Engine.
type EngineConfig struct {
	Timeout     time.Duration
	KernelName  string
	AllowErrors bool
	WorkDir     string
	Env         []string
	Stdout      io.Writer
	Stderr      io.Writer
}

// ExecError is returned when the engine process exits unsuccessfully.
// Message holds the engine's own failure description.
type ExecError struct {
	ExitCode int
	Message  string
}

func (e *ExecError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("engine exited with status %d", e.ExitCode)
	}
	return e.Message
}
