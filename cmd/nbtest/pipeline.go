package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bgricker/nbtest/internal/config"
	"github.com/bgricker/nbtest/internal/discovery"
	"github.com/bgricker/nbtest/internal/filter"
	"github.com/bgricker/nbtest/internal/version"
)

// notebookSet bundles discovered notebooks with the filtered selection and warnings.
type notebookSet struct {
	dir      string
	found    []string
	selected []string
	warnings []string
}

func loadConfig(cmd *cobra.Command) (config.Config, string, error) {
	root, err := os.Getwd()
	if err != nil {
		return config.Config{}, "", fmt.Errorf("determine working directory: %w", err)
	}

	cfg, err := config.Load(root)
	if err != nil {
		return config.Config{}, "", err
	}

	flags, err := gatherFlags(cmd)
	if err != nil {
		return config.Config{}, "", err
	}
	config.ApplyFlags(&cfg, flags)

	switch strings.ToLower(cfg.Format) {
	case config.FormatPretty, config.FormatJSON:
		cfg.Format = strings.ToLower(cfg.Format)
	default:
		return config.Config{}, "", fmt.Errorf("unsupported format %q", cfg.Format)
	}

	return cfg, root, nil
}

func loadNotebooks(root string, cfg config.Config) (notebookSet, error) {
	dir := cfg.Dir
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(root, dir)
	}

	found, err := discovery.Notebooks(dir, cfg.Notebooks)
	if err != nil {
		return notebookSet{}, err
	}

	only, err := filter.Compile(cfg.Only)
	if err != nil {
		return notebookSet{}, err
	}
	skip, err := filter.Compile(cfg.Skip)
	if err != nil {
		return notebookSet{}, err
	}

	return notebookSet{
		dir:      dir,
		found:    found,
		selected: filter.Notebooks(found, only, skip),
		warnings: detectVersionWarnings(root, cfg),
	}, nil
}

// relPaths reports paths relative to root when possible so output does not
// depend on where the project is checked out.
func relPaths(root string, paths []string) []string {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if rel, err := filepath.Rel(root, p); err == nil && !strings.HasPrefix(rel, "..") {
			p = rel
		}
		out = append(out, filepath.ToSlash(p))
	}
	return out
}

func detectVersionWarnings(root string, cfg config.Config) []string {
	if !cfg.Warn.VersionMismatch {
		return nil
	}

	var warnings []string

	pythonPath := filepath.Join(root, ".python-version")
	if contents, err := os.ReadFile(pythonPath); err == nil {
		required := strings.TrimSpace(string(contents))
		if required != "" {
			info, detectErr := version.DetectPython(cfg.Python)
			if warn := buildVersionWarning("python", required, info.Version, detectErr); warn != "" {
				warnings = append(warnings, warn)
			}
		}
	}

	if cfg.DryRun {
		return warnings
	}
	if _, err := version.DetectNBConvert(cfg.Jupyter); err != nil && version.Missing(err) {
		warnings = append(warnings, fmt.Sprintf("%s executable not found; notebooks cannot be executed", firstField(cfg.Jupyter)))
	}

	return warnings
}

func buildVersionWarning(name, required, actual string, detectErr error) string {
	if detectErr != nil {
		if version.Missing(detectErr) {
			return fmt.Sprintf("%s executable not found; required %s", name, required)
		}
		return fmt.Sprintf("unable to detect %s version: %v", name, detectErr)
	}
	if !version.CompareMajorMinor(required, actual) {
		return fmt.Sprintf("%s version mismatch: required %s (from .%s-version) but found %s", name, required, name, actual)
	}
	return ""
}

func firstField(s string) string {
	if fields := strings.Fields(s); len(fields) > 0 {
		return fields[0]
	}
	return config.DefaultJupyter
}
