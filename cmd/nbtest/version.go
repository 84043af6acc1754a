package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bgricker/nbtest/internal/version"
)

// buildVersion is overridden at link time with -ldflags "-X main.buildVersion=...".
var buildVersion = "dev"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the nbtest version and the detected tool versions",
		RunE:  runVersion,
	}
}

func runVersion(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "nbtest %s\n", buildVersion)

	if info, err := version.DetectPython(cfg.Python); err != nil {
		fmt.Fprintf(out, "python: unavailable (%v)\n", err)
	} else {
		fmt.Fprintf(out, "python: %s\n", info.Version)
	}
	if info, err := version.DetectNBConvert(cfg.Jupyter); err != nil {
		fmt.Fprintf(out, "nbconvert: unavailable (%v)\n", err)
	} else {
		fmt.Fprintf(out, "nbconvert: %s\n", info.Version)
	}
	return nil
}
