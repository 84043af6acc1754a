package nbexec

import (
	"fmt"
	"regexp"
	"strings"
)

const failureTailLines = 20

var (
	ansiEscape = regexp.MustCompile(`\x1b\[[0-9;]*[A-Za-z]`)
	noKernel   = regexp.MustCompile(`No such kernel named ([\w.-]+)`)

	// Exception names raised by nbclient/jupyter_client, in the order they
	// are searched for in stderr.
	engineExceptions = []string{
		"CellExecutionError",
		"CellTimeoutError",
		"DeadKernelError",
		"NoSuchKernel",
	}
)

// failureMessage extracts the engine's description of why a run failed from
// its stderr. It returns the text following the last engine exception name,
// or the tail of stderr without the converter's progress lines.
func failureMessage(stderr string) string {
	clean := ansiEscape.ReplaceAllString(stderr, "")

	if m := noKernel.FindStringSubmatch(clean); len(m) == 2 {
		return fmt.Sprintf("No such kernel named %s; install it with `python3 -m ipykernel install --user --name %s`", m[1], m[1])
	}

	for _, name := range engineExceptions {
		marker := name + ":"
		idx := strings.LastIndex(clean, marker)
		if idx == -1 {
			continue
		}
		msg := strings.TrimSpace(clean[idx+len(marker):])
		if msg != "" {
			return msg
		}
		return name
	}

	return tailLines(dropProgress(clean), failureTailLines)
}

func dropProgress(stderr string) string {
	lines := strings.Split(stderr, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "[NbConvertApp]") {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}

func tailLines(input string, maxLines int) string {
	input = strings.TrimSpace(input)
	if input == "" {
		return ""
	}
	lines := strings.Split(input, "\n")
	if len(lines) <= maxLines {
		return strings.Join(lines, "\n")
	}
	return strings.Join(lines[len(lines)-maxLines:], "\n")
}
