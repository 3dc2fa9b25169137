package bootstrap

import (
	"context"
	"sync"

	"github.com/kbukum/smcemu/component"
	"github.com/kbukum/smcemu/config"
	"github.com/kbukum/smcemu/control"
	"github.com/kbukum/smcemu/execmodule"
	"github.com/kbukum/smcemu/logger"
	"github.com/kbukum/smcemu/message"
	"github.com/kbukum/smcemu/process"
	"github.com/kbukum/smcemu/topology"
)

// Emulator hosts one configuration: its topology, both control tools and the
// process driving the module through its lifecycle.
type Emulator struct {
	cfg     *config.Emulator
	log     *logger.Logger
	rt      *runtime
	cfgTool *control.ConfigurationTool
	tool    *control.ExecutionTool
	process *process.Process

	mu          sync.Mutex
	started     bool
	phases      []message.Message
	lastFailure string
}

var _ component.Component = (*Emulator)(nil)

// New validates cfg and builds the emulator around module. A nil module runs
// the configured command when cfg.Command is set, and otherwise stays idle.
func New(cfg *config.Emulator, module process.Module, opts ...Option) (*Emulator, error) {
	if cfg == nil {
		cfg = &config.Emulator{}
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	base := o.logger
	if base == nil {
		base = logger.New(&cfg.Logging, cfg.Name)
	}
	log := base.WithComponent("emulator").WithFields(logger.Fields(logger.FieldConfiguration, cfg.Name))
	if o.sink == nil {
		o.sink = logger.ForConfiguration(base, cfg.Name)
	}

	if module == nil && cfg.Command != nil {
		m, err := execmodule.New(execmodule.FromConfig(cfg.Command), base)
		if err != nil {
			return nil, err
		}
		module = m
	}

	rt, err := buildRuntime(cfg, log)
	if err != nil {
		return nil, err
	}

	toolOpts := []control.ConfigurationToolOption{
		control.WithHomeFolder(cfg.HomeFolder),
		control.WithWorkDirectory(cfg.WorkDirectory),
		control.WithSink(o.sink),
	}
	if o.fs != nil {
		toolOpts = append(toolOpts, control.WithFs(o.fs))
	}
	cfgTool, err := control.NewConfigurationTool(rt.configuration, toolOpts...)
	if err != nil {
		return nil, err
	}
	tool, err := control.NewExecutionTool(rt.ec,
		control.WithInput(rt.input),
		control.WithLogger(o.logger),
		control.WithMetrics(o.metrics),
	)
	if err != nil {
		return nil, err
	}
	cfgTool.Bind(tool)
	p, err := process.New(cfgTool, module, process.WithLogger(o.logger), process.WithMetrics(o.metrics))
	if err != nil {
		return nil, err
	}

	log.Debug("emulator built", logger.Fields(
		"module", cfg.Module,
		"sources", rt.ec.CountSource(),
		"input_sources", len(rt.input),
	))
	return &Emulator{cfg: cfg, log: log, rt: rt, cfgTool: cfgTool, tool: tool, process: p}, nil
}

// Name returns the configuration name.
func (e *Emulator) Name() string { return e.cfg.Name }

// Config returns the validated scenario.
func (e *Emulator) Config() *config.Emulator { return e.cfg }

// Root returns the container holding the configuration.
func (e *Emulator) Root() *topology.Container { return e.rt.root }

// Configuration returns the emulated configuration.
func (e *Emulator) Configuration() *topology.Configuration { return e.rt.configuration }

// ConfigurationTool returns the tool the module reads its configuration from.
func (e *Emulator) ConfigurationTool() *control.ConfigurationTool { return e.cfgTool }

// ExecutionTool returns the tool the module consumes input and emits output through.
func (e *Emulator) ExecutionTool() *control.ExecutionTool { return e.tool }

// Process returns the lifecycle driver.
func (e *Emulator) Process() *process.Process { return e.process }

// Manage attaches child as a managed execution context and registers its
// configuration, returning the managed id used by flow control.
func (e *Emulator) Manage(child *Emulator) (int, error) {
	id := e.tool.AddManaged(process.Managed(child.Name(), child.process, child.tool))
	ec := e.rt.ec
	if err := ec.InsertManagedConfiguration(e.tool, ec.CountManagedConfigurations(), child.rt.configuration); err != nil {
		return -1, err
	}
	return id, nil
}

// Start runs the START phase once. Module failures are contained in the
// phase messages and reported through Health.
func (e *Emulator) Start(ctx context.Context) error {
	e.mu.Lock()
	started := e.started
	e.mu.Unlock()
	if started {
		return nil
	}
	e.record(e.process.Start(ctx))
	e.mu.Lock()
	e.started = true
	e.mu.Unlock()
	e.log.Info("emulator started")
	return nil
}

// Execute runs one EXECUTE phase over the configured input.
func (e *Emulator) Execute(ctx context.Context) []message.Message {
	return e.record(e.process.Execute(ctx, e.tool))
}

// Update runs the UPDATE phase.
func (e *Emulator) Update(ctx context.Context) []message.Message {
	return e.record(e.process.Update(ctx))
}

// Stop runs the STOP phase if the emulator was started.
func (e *Emulator) Stop(ctx context.Context) error {
	e.mu.Lock()
	started := e.started
	e.started = false
	e.mu.Unlock()
	if !started {
		return nil
	}
	e.record(e.process.Stop(ctx))
	e.log.Info("emulator stopped")
	return nil
}

// Cycle runs START, EXECUTE, UPDATE, EXECUTE and STOP back to back,
// independent of Start and Stop.
func (e *Emulator) Cycle(ctx context.Context) []message.Message {
	return e.record(e.process.Cycle(ctx, e.tool))
}

// Health is degraded while the most recent phase carried an ERROR or
// ACTION_ERROR message.
func (e *Emulator) Health(ctx context.Context) component.Health {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.lastFailure != "" {
		return component.Health{Name: e.Name(), Status: component.StatusDegraded, Message: e.lastFailure}
	}
	return component.Health{Name: e.Name(), Status: component.StatusHealthy}
}

// Phases returns every phase message the emulator has produced, in order.
func (e *Emulator) Phases() []message.Message {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]message.Message(nil), e.phases...)
}

func (e *Emulator) record(msgs []message.Message) []message.Message {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.phases = append(e.phases, msgs...)
	if len(msgs) == 0 {
		return msgs
	}
	e.lastFailure = ""
	if m, ok := message.LastFailure(msgs); ok {
		e.lastFailure = m.Value().String()
		e.log.Warn("phase failed", logger.Fields(logger.FieldError, e.lastFailure))
	}
	return msgs
}
