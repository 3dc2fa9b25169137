package testutil

import (
	"context"
	"sync"

	"github.com/kbukum/smcemu/control"
)

// FuncModule is a hosted module assembled from optional callbacks. A nil
// callback succeeds without doing anything.
type FuncModule struct {
	StartFn   func(ctx context.Context, cfg *control.ConfigurationTool) error
	ProcessFn func(ctx context.Context, cfg *control.ConfigurationTool, tool *control.ExecutionTool) error
	UpdateFn  func(ctx context.Context, cfg *control.ConfigurationTool) error
	StopFn    func(ctx context.Context, cfg *control.ConfigurationTool) error

	mu    sync.Mutex
	calls []string
}

func (m *FuncModule) Start(ctx context.Context, cfg *control.ConfigurationTool) error {
	m.called("START")
	if m.StartFn == nil {
		return nil
	}
	return m.StartFn(ctx, cfg)
}

func (m *FuncModule) Process(ctx context.Context, cfg *control.ConfigurationTool, tool *control.ExecutionTool) error {
	m.called("EXECUTE")
	if m.ProcessFn == nil {
		return nil
	}
	return m.ProcessFn(ctx, cfg, tool)
}

func (m *FuncModule) Update(ctx context.Context, cfg *control.ConfigurationTool) error {
	m.called("UPDATE")
	if m.UpdateFn == nil {
		return nil
	}
	return m.UpdateFn(ctx, cfg)
}

func (m *FuncModule) Stop(ctx context.Context, cfg *control.ConfigurationTool) error {
	m.called("STOP")
	if m.StopFn == nil {
		return nil
	}
	return m.StopFn(ctx, cfg)
}

// Calls returns the phases invoked so far, in order.
func (m *FuncModule) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

func (m *FuncModule) called(phase string) {
	m.mu.Lock()
	m.calls = append(m.calls, phase)
	m.mu.Unlock()
}
