package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/bgricker/nbtest/internal/config"
)

func gatherFlags(cmd *cobra.Command) (config.FlagValues, error) {
	flags := cmd.Flags()
	var values config.FlagValues
	var err error

	if values.Dir, err = stringFlag(flags, "dir"); err != nil {
		return values, err
	}
	if values.Timeout, err = stringFlag(flags, "timeout"); err != nil {
		return values, err
	}
	if values.Kernel, err = stringFlag(flags, "kernel"); err != nil {
		return values, err
	}
	if values.Jupyter, err = stringFlag(flags, "jupyter"); err != nil {
		return values, err
	}
	if values.Format, err = stringFlag(flags, "format"); err != nil {
		return values, err
	}
	if values.LogLevel, err = stringFlag(flags, "log-level"); err != nil {
		return values, err
	}

	if values.Notebooks, err = sliceFlag(flags, "notebook"); err != nil {
		return values, err
	}
	if values.Only, err = sliceFlag(flags, "only"); err != nil {
		return values, err
	}
	if values.Skip, err = sliceFlag(flags, "skip"); err != nil {
		return values, err
	}
	if values.Expect, err = sliceFlag(flags, "expect"); err != nil {
		return values, err
	}
	if values.PythonPath, err = sliceFlag(flags, "python-path"); err != nil {
		return values, err
	}

	if values.DryRun, err = boolFlag(flags, "dry-run"); err != nil {
		return values, err
	}
	if values.Verbose, err = boolFlag(flags, "verbose"); err != nil {
		return values, err
	}

	return values, nil
}

func stringFlag(flags *pflag.FlagSet, name string) (config.StringFlag, error) {
	if !flags.Changed(name) {
		return config.StringFlag{}, nil
	}
	v, err := flags.GetString(name)
	if err != nil {
		return config.StringFlag{}, fmt.Errorf("parse --%s: %w", name, err)
	}
	return config.StringFlag{Value: v, Set: true}, nil
}

func sliceFlag(flags *pflag.FlagSet, name string) (config.SliceFlag, error) {
	if !flags.Changed(name) {
		return config.SliceFlag{}, nil
	}
	v, err := flags.GetStringArray(name)
	if err != nil {
		return config.SliceFlag{}, fmt.Errorf("parse --%s: %w", name, err)
	}
	return config.SliceFlag{Values: append([]string{}, v...)}, nil
}

func boolFlag(flags *pflag.FlagSet, name string) (config.BoolFlag, error) {
	if !flags.Changed(name) {
		return config.BoolFlag{}, nil
	}
	v, err := flags.GetBool(name)
	if err != nil {
		return config.BoolFlag{}, fmt.Errorf("parse --%s: %w", name, err)
	}
	return config.BoolFlag{Value: v, Set: true}, nil
}
