package bootstrap

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kbukum/smcemu/component"
	"github.com/kbukum/smcemu/logger"
)

// DefaultGracefulTimeout bounds Host shutdown when no timeout is configured.
const DefaultGracefulTimeout = 15 * time.Second

// Host runs a set of emulators around a finite task.
type Host struct {
	Name       string
	Version    string
	Components *component.Registry
	Logger     *logger.Logger

	gracefulTimeout time.Duration
	onStart         []Hook
	onStop          []Hook
}

// NewHost creates an empty host.
func NewHost(name, version string, opts ...HostOption) *Host {
	h := &Host{
		Name:            name,
		Version:         version,
		gracefulTimeout: DefaultGracefulTimeout,
	}
	for _, opt := range opts {
		opt(h)
	}
	if h.Logger == nil {
		h.Logger = logger.GetGlobalLogger()
	}
	h.Logger = h.Logger.WithComponent("host")
	h.Components = component.NewRegistry()
	return h
}

// Register adds an emulator, or any other component, to the host.
func (h *Host) Register(c component.Component) error {
	return h.Components.Register(c)
}

// RunTask starts every component, runs the OnStart hooks, executes task and
// shuts down again when the task returns or the process receives SIGINT or
// SIGTERM. The task error takes precedence over shutdown errors.
func (h *Host) RunTask(ctx context.Context, task func(ctx context.Context) error) error {
	h.Logger.Info("starting host", logger.Fields("name", h.Name, "version", h.Version))
	if err := h.Components.StartAll(ctx); err != nil {
		_ = h.stop()
		return fmt.Errorf("initialization failed: %w", err)
	}
	if err := runHooks(ctx, h.onStart); err != nil {
		_ = h.stop()
		return fmt.Errorf("onStart hook failed: %w", err)
	}

	taskCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	go func() {
		select {
		case sig := <-sigCh:
			h.Logger.Info("received signal, canceling task", logger.Fields("signal", sig.String()))
			cancel()
		case <-taskCtx.Done():
		}
	}()

	taskErr := task(taskCtx)

	if stopErr := h.stop(); stopErr != nil {
		if taskErr != nil {
			return taskErr
		}
		return stopErr
	}
	return taskErr
}

// Health reports every registered component.
func (h *Host) Health(ctx context.Context) []component.Health {
	return h.Components.HealthAll(ctx)
}

func (h *Host) stop() error {
	h.Logger.Info("shutting down host", logger.Fields("timeout", h.gracefulTimeout.String()))

	ctx, cancel := context.WithTimeout(context.Background(), h.gracefulTimeout)
	defer cancel()

	var shutdownErr error
	if err := runHooks(ctx, h.onStop); err != nil {
		h.Logger.WithError(err).Error("onStop hook error")
		shutdownErr = err
	}
	if err := h.Components.StopAll(ctx); err != nil {
		h.Logger.WithError(err).Error("shutdown completed with errors")
		shutdownErr = err
	}
	h.Logger.Info("host shutdown complete")
	return shutdownErr
}
