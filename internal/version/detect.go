package version

import (
	"bytes"
	"errors"
	"fmt"
	"os/exec"
	"regexp"
	"strings"
)

// Info captures a tool version installed on the system.
type Info struct {
	Name    string
	Version string
}

var (
	pythonRegex  = regexp.MustCompile(`(?i)python\s+(\d+\.\d+(?:\.\d+)?)`)
	numericRegex = regexp.MustCompile(`(\d+\.\d+(?:\.\d+)?)`)
)

// DetectPython returns the interpreter version by calling `<python> --version`.
func DetectPython(python string) (Info, error) {
	if python == "" {
		python = "python3"
	}
	out, err := runCommand(python, "--version")
	if err != nil {
		return Info{}, err
	}
	match := pythonRegex.FindStringSubmatch(out)
	if len(match) < 2 {
		return Info{}, fmt.Errorf("unable to parse python version from %q", out)
	}
	return Info{Name: "python", Version: match[1]}, nil
}

// DetectNBConvert returns the nbconvert version by calling
// `<jupyter> nbconvert --version`. jupyter may carry leading arguments,
// e.g. "python3 -m jupyter".
func DetectNBConvert(jupyter string) (Info, error) {
	fields := strings.Fields(jupyter)
	if len(fields) == 0 {
		fields = []string{"jupyter"}
	}
	args := append(fields[1:], "nbconvert", "--version")
	out, err := runCommand(fields[0], args...)
	if err != nil {
		return Info{}, err
	}
	match := numericRegex.FindStringSubmatch(out)
	if len(match) < 2 {
		return Info{}, fmt.Errorf("unable to parse nbconvert version from %q", out)
	}
	return Info{Name: "nbconvert", Version: match[1]}, nil
}

func runCommand(name string, args ...string) (string, error) {
	cmd := exec.Command(name, args...)
	cmd.Stdin = nil
	var buf bytes.Buffer
	cmd.Stdout = &buf
	cmd.Stderr = &buf
	if err := cmd.Run(); err != nil {
		return "", err
	}
	return strings.TrimSpace(buf.String()), nil
}

// CompareMajorMinor compares major.minor portions of two semver-like versions.
// An empty side means the version is unknown and compares as matching.
func CompareMajorMinor(desired, actual string) bool {
	if desired == "" || actual == "" {
		return true
	}
	d := semverPrefix(desired)
	a := semverPrefix(actual)
	if d == "" || a == "" {
		return false
	}
	return strings.EqualFold(d, a)
}

func semverPrefix(version string) string {
	parts := strings.Split(version, ".")
	if len(parts) < 2 {
		return ""
	}
	return fmt.Sprintf("%s.%s", parts[0], parts[1])
}

// Missing reports whether executing the command returns a not-found error.
func Missing(cmdErr error) bool {
	return errors.Is(cmdErr, exec.ErrNotFound)
}
