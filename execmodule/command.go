package execmodule

import (
	"io"
	"time"

	"github.com/kbukum/smcemu/config"
	"github.com/kbukum/smcemu/resilience"
)

// DefaultGracePeriod is the time between SIGTERM and SIGKILL on cancellation.
const DefaultGracePeriod = 5 * time.Second

// Command configures a subprocess to execute.
type Command struct {
	// Binary is the executable path or name (resolved via PATH).
	Binary string
	Args   []string
	// Dir is the working directory. If empty, uses the current directory.
	Dir string
	// Env is additional environment variables (key=value), merged with os.Environ.
	Env   []string
	Stdin io.Reader
	// GracePeriod is how long to wait after SIGTERM before SIGKILL.
	GracePeriod time.Duration
	// Retry reruns a command that exits non-zero within one EXECUTE.
	Retry resilience.Policy
}

// FromConfig converts the scenario's command section.
func FromConfig(c *config.Command) Command {
	if c == nil {
		return Command{}
	}
	return Command{
		Binary:      c.Binary,
		Args:        append([]string(nil), c.Args...),
		Dir:         c.Dir,
		Env:         append([]string(nil), c.Env...),
		GracePeriod: c.GracePeriod,
		Retry:       c.Retry,
	}
}
