package execmodule

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/kbukum/smcemu/control"
	"github.com/kbukum/smcemu/errors"
	"github.com/kbukum/smcemu/logger"
	"github.com/kbukum/smcemu/resilience"
	"github.com/kbukum/smcemu/validation"
)

// ExitCodeVariable holds the exit code of the last run.
const ExitCodeVariable = "last_exit_code"

// Module runs Command once per EXECUTE.
type Module struct {
	cmd Command
	log *logger.Logger
}

// New creates a module for cmd.
func New(cmd Command, l *logger.Logger) (*Module, error) {
	if err := validation.New().Required("binary", cmd.Binary).Validate(); err != nil {
		return nil, err
	}
	if l == nil {
		return &Module{cmd: cmd, log: logger.Get("execmodule")}, nil
	}
	return &Module{cmd: cmd, log: l.WithComponent("execmodule")}, nil
}

// Command returns the configured command.
func (m *Module) Command() Command { return m.cmd }

func (m *Module) Start(ctx context.Context, cfg *control.ConfigurationTool) error {
	cfg.LoggerInfo("command module ready: " + m.cmd.Binary)
	return nil
}

func (m *Module) Process(ctx context.Context, cfg *control.ConfigurationTool, tool *control.ExecutionTool) error {
	stdin, err := stdinFor(tool)
	if err != nil {
		return err
	}
	cmd := m.cmd
	if cmd.Dir == "" {
		cmd.Dir = cfg.WorkDirectory()
	}

	var res *Result
	runErr := resilience.Do(ctx, cmd.Retry, func(attempt int) error {
		cmd.Stdin = strings.NewReader(stdin)
		var err error
		res, err = Run(ctx, cmd)
		return err
	},
		resilience.RetryIf(func(err error) bool {
			appErr, ok := errors.AsAppError(err)
			return ok && ctx.Err() == nil && errors.IsRecoverable(appErr.Code)
		}),
		resilience.OnRetry(func(attempt int, err error, delay time.Duration) {
			cfg.LoggerWarn(fmt.Sprintf("command attempt %d failed: %v", attempt, err))
		}),
	)
	if res == nil {
		return runErr
	}
	m.log.WithContext(ctx).
		WithFields(logger.DurationFields("run "+cmd.Binary, res.Duration)).
		Debug("command finished", logger.Fields("exit_code", res.ExitCode))

	for _, line := range res.StderrLines() {
		if err := tool.AddLog(line); err != nil {
			return err
		}
	}
	if out := res.StdoutLines(); len(out) > 0 {
		payloads := make([]any, len(out))
		for i, line := range out {
			payloads[i] = line
		}
		if err := tool.AddMessage(payloads...); err != nil {
			return err
		}
	}
	if err := cfg.SetVariable(ExitCodeVariable, res.ExitCode); err != nil {
		return err
	}
	return runErr
}

func (m *Module) Update(ctx context.Context, cfg *control.ConfigurationTool) error { return nil }

func (m *Module) Stop(ctx context.Context, cfg *control.ConfigurationTool) error {
	cfg.LoggerInfo("command module stopped: " + m.cmd.Binary)
	return nil
}

// stdinFor renders the DATA values of source 0, one per line.
func stdinFor(tool *control.ExecutionTool) (string, error) {
	if tool.CountSource() == 0 {
		return "", nil
	}
	actions, err := tool.GetMessages(0, -1, -1)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	for _, a := range actions {
		for _, msg := range a.Messages() {
			b.WriteString(msg.Value().String())
			b.WriteByte('\n')
		}
	}
	return b.String(), nil
}
