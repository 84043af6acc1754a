package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bgricker/nbtest/internal/config"
	"github.com/bgricker/nbtest/internal/output"
	"github.com/bgricker/nbtest/internal/report"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the notebooks that would be tested",
		RunE:  runList,
	}
}

func runList(cmd *cobra.Command, args []string) error {
	cfg, root, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	set, err := loadNotebooks(root, cfg)
	if err != nil {
		return err
	}

	switch cfg.Format {
	case config.FormatJSON:
		listReport := output.Report{
			Dir:       relPaths(root, []string{set.dir})[0],
			Kernel:    cfg.Kernel,
			Notebooks: relPaths(root, set.selected),
			Summary:   report.Summary{TotalNotebooks: len(set.selected)},
			Warnings:  set.warnings,
		}
		return output.NewJSON(cmd.OutOrStdout()).Render(listReport)
	default:
		if err := output.NewPretty(cmd.OutOrStdout()).RenderList(set.selected); err != nil {
			return err
		}
		printWarnings(cmd, set.warnings)
	}
	return nil
}

func printWarnings(cmd *cobra.Command, warnings []string) {
	for _, msg := range warnings {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", msg)
	}
}
