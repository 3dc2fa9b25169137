package bootstrap

import (
	"context"
	"fmt"
)

// Hook is a lifecycle callback that runs while a Host starts or stops.
type Hook func(ctx context.Context) error

// OnStart registers a hook that runs after every emulator has started and
// before the task begins.
func (h *Host) OnStart(hooks ...Hook) {
	h.onStart = append(h.onStart, hooks...)
}

// OnStop registers a hook that runs before the emulators are stopped. Use it
// to collect reports while the phase logs are still complete.
func (h *Host) OnStop(hooks ...Hook) {
	h.onStop = append(h.onStop, hooks...)
}

// runHooks executes hooks in order, returning the first error.
func runHooks(ctx context.Context, hooks []Hook) error {
	for i, h := range hooks {
		if err := h(ctx); err != nil {
			return fmt.Errorf("hook %d failed: %w", i, err)
		}
	}
	return nil
}
