package version

import (
	"os/exec"
	"testing"
)

func TestSemverPrefix(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"3.11.4", "3.11"},
		{"7.16", "7.16"},
		{"", ""},
		{"3", ""},
	}
	for _, c := range cases {
		if got := semverPrefix(c.in); got != c.want {
			t.Fatalf("semverPrefix(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestCompareMajorMinor(t *testing.T) {
	tests := []struct {
		desired string
		actual  string
		match   bool
	}{
		{"3.11.4", "3.11.9", true},
		{"3.11", "3.11.9", true},
		{"3.10", "3.11.2", false},
		{"3", "3.11.2", false},
		{"", "3.11.2", true},
		{"3.11", "", true},
	}
	for _, tt := range tests {
		if got := CompareMajorMinor(tt.desired, tt.actual); got != tt.match {
			t.Fatalf("CompareMajorMinor(%q,%q)=%v want %v", tt.desired, tt.actual, got, tt.match)
		}
	}
}

func TestPythonRegex(t *testing.T) {
	match := pythonRegex.FindStringSubmatch("Python 3.12.1")
	if len(match) < 2 || match[1] != "3.12.1" {
		t.Fatalf("unexpected match %v", match)
	}
}

func TestDetectMissingBinary(t *testing.T) {
	_, err := DetectNBConvert("nbtest-no-such-jupyter-binary")
	if !Missing(err) {
		t.Fatalf("expected not-found error, got %v", err)
	}
	if _, err := exec.LookPath("nbtest-no-such-python"); err == nil {
		t.Skip("unexpected binary on PATH")
	}
	if _, err := DetectPython("nbtest-no-such-python"); !Missing(err) {
		t.Fatalf("expected not-found error, got %v", err)
	}
}
