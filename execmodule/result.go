package execmodule

import (
	"strings"
	"time"
)

// Result holds the output and status of a completed subprocess.
type Result struct {
	Stdout []byte
	Stderr []byte
	// ExitCode is -1 if the process was killed.
	ExitCode int
	Duration time.Duration
}

// StdoutLines returns the non-empty lines of Stdout.
func (r *Result) StdoutLines() []string { return lines(r.Stdout) }

// StderrLines returns the non-empty lines of Stderr.
func (r *Result) StderrLines() []string { return lines(r.Stderr) }

func lines(b []byte) []string {
	var out []string
	for _, l := range strings.Split(string(b), "\n") {
		l = strings.TrimRight(l, "\r")
		if l != "" {
			out = append(out, l)
		}
	}
	return out
}
