package main

import (
	"errors"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/bgricker/nbtest/internal/config"
	"github.com/bgricker/nbtest/internal/discovery"
	"github.com/bgricker/nbtest/internal/logging"
	"github.com/bgricker/nbtest/internal/nbexec"
	"github.com/bgricker/nbtest/internal/output"
)

// errNotebooksFailed is returned when at least one notebook did not execute cleanly.
var errNotebooksFailed = errors.New("one or more notebooks failed")

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Execute notebooks and report success or failure",
		RunE:  runExecute,
	}
}

func runExecute(cmd *cobra.Command, args []string) error {
	cfg, root, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	timeout, err := cfg.Timeout()
	if err != nil {
		return err
	}

	set, err := loadNotebooks(root, cfg)
	if err != nil {
		return err
	}
	if len(set.selected) == 0 {
		return discovery.ErrNoNotebooks
	}
	// The runner executes in sorted order; report notebooks the same way.
	sort.Strings(set.selected)

	logger := logging.New(cfg.LogLevel, cmd.ErrOrStderr())
	logger.Debug("starting run", "dir", set.dir, "notebooks", len(set.selected), "timeout", timeout, "kernel", cfg.Kernel)

	runOpts := nbexec.Options{
		Root:       root,
		Engine:     &nbexec.NBConvert{Command: cfg.Jupyter},
		Timeout:    timeout,
		Kernel:     cfg.Kernel,
		PythonPath: cfg.PythonPath,
		Stdout:     cmd.OutOrStdout(),
		Stderr:     cmd.ErrOrStderr(),
		Verbose:    cfg.Verbose,
		DryRun:     cfg.DryRun,
		Logger:     logger,
	}
	if cfg.Format == config.FormatPretty {
		runOpts.Streaming = output.NewStreamingPretty(cmd.OutOrStdout())
	}

	outcomes, summary, err := nbexec.New(runOpts).Run(cmd.Context(), set.selected)
	if err != nil {
		return err
	}

	expectErr := checkExpected(set.found, cfg.Expect)

	switch cfg.Format {
	case config.FormatJSON:
		jsonReport := output.Report{
			Dir:       relPaths(root, []string{set.dir})[0],
			Kernel:    cfg.Kernel,
			Notebooks: relPaths(root, set.selected),
			Outcomes:  outcomes,
			Summary:   summary,
			Expected:  cfg.Expect,
			Warnings:  set.warnings,
		}
		var missing *discovery.MissingError
		if errors.As(expectErr, &missing) {
			jsonReport.Missing = missing.Name
		}
		if err := output.NewJSON(cmd.OutOrStdout()).Render(jsonReport); err != nil {
			return err
		}
	default:
		printWarnings(cmd, set.warnings)
	}

	if expectErr != nil {
		return expectErr
	}
	if summary.ExitCode != 0 {
		return errNotebooksFailed
	}
	return nil
}

func checkExpected(found, expected []string) error {
	if len(expected) == 0 {
		return nil
	}
	if err := discovery.Expect(found, expected); err != nil {
		return fmt.Errorf("check expected notebooks: %w", err)
	}
	return nil
}
