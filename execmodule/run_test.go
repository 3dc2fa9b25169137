package execmodule_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/kbukum/smcemu/errors"
	"github.com/kbukum/smcemu/execmodule"
)

func TestRunEcho(t *testing.T) {
	result, err := execmodule.Run(context.Background(), execmodule.Command{
		Binary: "echo",
		Args:   []string{"hello", "world"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.ExitCode != 0 {
		t.Fatalf("expected exit code 0, got %d", result.ExitCode)
	}
	out := strings.TrimSpace(string(result.Stdout))
	if out != "hello world" {
		t.Fatalf("expected 'hello world', got %q", out)
	}
}

func TestRunStdin(t *testing.T) {
	result, err := execmodule.Run(context.Background(), execmodule.Command{
		Binary: "cat",
		Stdin:  strings.NewReader("from stdin"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := string(result.Stdout)
	if out != "from stdin" {
		t.Fatalf("expected 'from stdin', got %q", out)
	}
}

func TestRunExitCode(t *testing.T) {
	result, err := execmodule.Run(context.Background(), execmodule.Command{
		Binary: "sh",
		Args:   []string{"-c", "exit 42"},
	})
	if !errors.Is(err, errors.ErrCodeModuleFailure) {
		t.Fatalf("expected MODULE_FAILURE for non-zero exit, got %v", err)
	}
	if result.ExitCode != 42 {
		t.Fatalf("expected exit code 42, got %d", result.ExitCode)
	}
}

func TestRunStderr(t *testing.T) {
	result, err := execmodule.Run(context.Background(), execmodule.Command{
		Binary: "sh",
		Args:   []string{"-c", "echo oops >&2"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	stderr := strings.TrimSpace(string(result.Stderr))
	if stderr != "oops" {
		t.Fatalf("expected 'oops' on stderr, got %q", stderr)
	}
}

func TestRunContextCancel(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	result, err := execmodule.Run(ctx, execmodule.Command{
		Binary:      "sleep",
		Args:        []string{"10"},
		GracePeriod: 500 * time.Millisecond,
	})
	if err == nil {
		t.Fatal("expected error from context cancellation")
	}
	if result.Duration > 5*time.Second {
		t.Fatalf("process took too long to kill: %v", result.Duration)
	}
}

func TestRunEmptyBinary(t *testing.T) {
	_, err := execmodule.Run(context.Background(), execmodule.Command{})
	if !errors.Is(err, errors.ErrCodeInvalidArgument) {
		t.Fatalf("expected INVALID_ARGUMENT for empty binary, got %v", err)
	}
}

func TestRunDuration(t *testing.T) {
	result, err := execmodule.Run(context.Background(), execmodule.Command{
		Binary: "sleep",
		Args:   []string{"0.1"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Duration < 50*time.Millisecond {
		t.Fatalf("duration too short: %v", result.Duration)
	}
}

func TestRunEnv(t *testing.T) {
	result, err := execmodule.Run(context.Background(), execmodule.Command{
		Binary: "sh",
		Args:   []string{"-c", "echo $MY_TEST_VAR"},
		Env:    []string{"MY_TEST_VAR=hello123"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := strings.TrimSpace(string(result.Stdout))
	if out != "hello123" {
		t.Fatalf("expected 'hello123', got %q", out)
	}
}

func TestResultLines(t *testing.T) {
	r := &execmodule.Result{Stdout: []byte("a\r\n\nb\n"), Stderr: []byte("")}
	got := r.StdoutLines()
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("StdoutLines() = %q", got)
	}
	if lines := r.StderrLines(); len(lines) != 0 {
		t.Fatalf("StderrLines() = %q, want none", lines)
	}
}
