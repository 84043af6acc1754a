package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/bgricker/nbtest/internal/nbexec"
)

// FileName is the config file looked up in the working directory.
const FileName = ".nbtest.yml"

// Config captures CLI options sourced from config files or flags.
type Config struct {
	Dir       string   `yaml:"dir"`
	Notebooks []string `yaml:"notebooks"`
	Only      []string `yaml:"only"`
	Skip      []string `yaml:"skip"`
	Expect    []string `yaml:"expect"`

	RawTimeout string   `yaml:"timeout"`
	Kernel     string   `yaml:"kernel"`
	Jupyter    string   `yaml:"jupyter"`
	Python     string   `yaml:"python"`
	PythonPath []string `yaml:"python_path"`

	DryRun   bool   `yaml:"dry_run"`
	Verbose  bool   `yaml:"verbose"`
	Format   string `yaml:"format"`
	LogLevel string `yaml:"log_level"`

	Warn WarnConfig `yaml:"warn"`
}

// WarnConfig controls additional warning behaviour.
type WarnConfig struct {
	VersionMismatch bool `yaml:"version_mismatch"`
}

const (
	// DefaultDir is the notebooks directory relative to the working directory.
	DefaultDir = "notebooks"
	// DefaultTimeout bounds a single notebook run.
	DefaultTimeout = nbexec.DefaultTimeout
	// DefaultKernel is the kernel used to execute notebooks.
	DefaultKernel = nbexec.DefaultKernel
	// DefaultJupyter is the jupyter invocation.
	DefaultJupyter = "jupyter"
	// DefaultPython is the interpreter probed for version warnings.
	DefaultPython = "python3"

	// FormatPretty renders human readable output.
	FormatPretty = "pretty"
	// FormatJSON renders machine readable output.
	FormatJSON = "json"
)

// Default returns the baseline configuration used when no flags or config file specify values.
func Default() Config {
	return Config{
		Dir:      DefaultDir,
		Kernel:   DefaultKernel,
		Jupyter:  DefaultJupyter,
		Python:   DefaultPython,
		Format:   FormatPretty,
		LogLevel: "warn",
		Warn: WarnConfig{
			VersionMismatch: true,
		},
	}
}

// Timeout returns the configured per-notebook timeout or the default.
func (c Config) Timeout() (time.Duration, error) {
	if c.RawTimeout == "" {
		return DefaultTimeout, nil
	}
	d, err := time.ParseDuration(c.RawTimeout)
	if err != nil {
		return 0, fmt.Errorf("parse timeout %q: %w", c.RawTimeout, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("timeout must be positive, got %q", c.RawTimeout)
	}
	return d, nil
}

// Load reads .nbtest.yml from root when present. Missing files are ignored.
func Load(root string) (Config, error) {
	cfg := Default()
	path := filepath.Join(root, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config %q: %w", path, err)
	}

	// Seed warn so a file without a warn block keeps the defaults.
	fileCfg := Config{Warn: cfg.Warn}
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return cfg, fmt.Errorf("parse config %q: %w", path, err)
	}

	return merge(cfg, fileCfg), nil
}

func merge(base, override Config) Config {
	out := base

	if override.Dir != "" {
		out.Dir = override.Dir
	}
	if len(override.Notebooks) > 0 {
		out.Notebooks = append([]string{}, override.Notebooks...)
	}
	if len(override.Only) > 0 {
		out.Only = append([]string{}, override.Only...)
	}
	if len(override.Skip) > 0 {
		out.Skip = append([]string{}, override.Skip...)
	}
	if len(override.Expect) > 0 {
		out.Expect = append([]string{}, override.Expect...)
	}
	if override.RawTimeout != "" {
		out.RawTimeout = override.RawTimeout
	}
	if override.Kernel != "" {
		out.Kernel = override.Kernel
	}
	if override.Jupyter != "" {
		out.Jupyter = override.Jupyter
	}
	if override.Python != "" {
		out.Python = override.Python
	}
	if len(override.PythonPath) > 0 {
		out.PythonPath = append([]string{}, override.PythonPath...)
	}
	if override.Format != "" {
		out.Format = override.Format
	}
	if override.LogLevel != "" {
		out.LogLevel = override.LogLevel
	}
	if override.DryRun {
		out.DryRun = true
	}
	if override.Verbose {
		out.Verbose = true
	}

	out.Warn = override.Warn

	return out
}

// ApplyFlags mutates cfg by applying values from CLI flags when they are present.
func ApplyFlags(cfg *Config, flags FlagValues) {
	if flags.Dir.Set {
		cfg.Dir = flags.Dir.Value
	}
	if len(flags.Notebooks.Values) > 0 {
		cfg.Notebooks = append([]string{}, flags.Notebooks.Values...)
	}
	if len(flags.Only.Values) > 0 {
		cfg.Only = append([]string{}, flags.Only.Values...)
	}
	if len(flags.Skip.Values) > 0 {
		cfg.Skip = append([]string{}, flags.Skip.Values...)
	}
	if len(flags.Expect.Values) > 0 {
		cfg.Expect = append([]string{}, flags.Expect.Values...)
	}
	if flags.Timeout.Set {
		cfg.RawTimeout = flags.Timeout.Value
	}
	if flags.Kernel.Set {
		cfg.Kernel = flags.Kernel.Value
	}
	if flags.Jupyter.Set {
		cfg.Jupyter = flags.Jupyter.Value
	}
	if len(flags.PythonPath.Values) > 0 {
		cfg.PythonPath = append([]string{}, flags.PythonPath.Values...)
	}
	if flags.Format.Set {
		cfg.Format = flags.Format.Value
	}
	if flags.LogLevel.Set {
		cfg.LogLevel = flags.LogLevel.Value
	}
	if flags.DryRun.Set {
		cfg.DryRun = flags.DryRun.Value
	}
	if flags.Verbose.Set {
		cfg.Verbose = flags.Verbose.Value
	}
}

// FlagValues captures CLI flag state with knowledge of whether each flag was set explicitly.
type FlagValues struct {
	Dir        StringFlag
	Notebooks  SliceFlag
	Only       SliceFlag
	Skip       SliceFlag
	Expect     SliceFlag
	Timeout    StringFlag
	Kernel     StringFlag
	Jupyter    StringFlag
	PythonPath SliceFlag
	Format     StringFlag
	LogLevel   StringFlag
	DryRun     BoolFlag
	Verbose    BoolFlag
}

// StringFlag represents a string flag and whether it was set.
type StringFlag struct {
	Value string
	Set   bool
}

// SliceFlag represents a slice flag and whether it captured values via CLI.
type SliceFlag struct {
	Values []string
}

// BoolFlag represents a bool flag and whether it was set.
type BoolFlag struct {
	Value bool
	Set   bool
}
