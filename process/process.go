package process

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/kbukum/smcemu/control"
	"github.com/kbukum/smcemu/errors"
	"github.com/kbukum/smcemu/logger"
	"github.com/kbukum/smcemu/message"
	"github.com/kbukum/smcemu/observability"
	"github.com/kbukum/smcemu/validation"
	"github.com/kbukum/smcemu/value"
)

// sentinelPayload is the value carried by ACTION_START and ACTION_STOP.
const sentinelPayload = 1

// Process is the lifecycle driver of one configuration.
type Process struct {
	id      string
	cfg     *control.ConfigurationTool
	module  Module
	log     *logger.Logger
	metrics *observability.PhaseMetrics
}

// Option configures a Process.
type Option func(*Process)

// WithLogger sets the logger.
func WithLogger(l *logger.Logger) Option {
	return func(p *Process) { p.log = l }
}

// WithMetrics records phase metrics on m.
func WithMetrics(m *observability.PhaseMetrics) Option {
	return func(p *Process) { p.metrics = m }
}

// New creates a driver for module running under cfg. module may be nil.
func New(cfg *control.ConfigurationTool, module Module, opts ...Option) (*Process, error) {
	if err := validation.New().NotNil("configuration", cfg != nil).Validate(); err != nil {
		return nil, err
	}
	p := &Process{id: uuid.NewString(), cfg: cfg, module: module}
	for _, opt := range opts {
		opt(p)
	}
	if p.log == nil {
		p.log = logger.Get("process")
	} else {
		p.log = p.log.WithComponent("process")
	}
	p.log = p.log.WithFields(logger.Fields(
		logger.FieldProcessID, p.id,
		logger.FieldConfiguration, cfg.Name(),
	))
	return p, nil
}

// ID returns the run identifier of the driver.
func (p *Process) ID() string { return p.id }

// Configuration returns the configuration handle.
func (p *Process) Configuration() *control.ConfigurationTool { return p.cfg }

// Module returns the hosted module, nil for an idle process.
func (p *Process) Module() Module { return p.module }

// Start runs the module's start callback.
func (p *Process) Start(ctx context.Context) []message.Message {
	return p.phase(ctx, message.ActionStart, nil, func(ctx context.Context) error {
		return p.module.Start(ctx, p.cfg)
	})
}

// Execute runs the module's process callback against tool. The messages the
// module emits are returned between the sentinels and stay in the tool's
// cumulative output log.
func (p *Process) Execute(ctx context.Context, tool *control.ExecutionTool) []message.Message {
	if tool != nil {
		p.cfg.Bind(tool)
	}
	return p.phase(ctx, message.ActionExecute, tool, func(ctx context.Context) error {
		if tool == nil {
			return errors.InvalidArgument("execution_tool", "must not be nil")
		}
		return p.module.Process(ctx, p.cfg, tool)
	})
}

// Update runs the module's update callback.
func (p *Process) Update(ctx context.Context) []message.Message {
	return p.phase(ctx, message.ActionUpdate, nil, func(ctx context.Context) error {
		return p.module.Update(ctx, p.cfg)
	})
}

// Stop runs the module's stop callback.
func (p *Process) Stop(ctx context.Context) []message.Message {
	return p.phase(ctx, message.ActionStop, nil, func(ctx context.Context) error {
		return p.module.Stop(ctx, p.cfg)
	})
}

// Cycle runs START, EXECUTE, UPDATE, EXECUTE and STOP and returns the
// concatenated messages.
func (p *Process) Cycle(ctx context.Context, tool *control.ExecutionTool) []message.Message {
	if tool != nil {
		p.cfg.Bind(tool)
	}
	out := []message.Message{}
	out = append(out, p.Start(ctx)...)
	out = append(out, p.Execute(ctx, tool)...)
	out = append(out, p.Update(ctx)...)
	out = append(out, p.Execute(ctx, tool)...)
	out = append(out, p.Stop(ctx)...)
	return out
}

func (p *Process) phase(ctx context.Context, phase message.ActionType, tool *control.ExecutionTool, call func(context.Context) error) []message.Message {
	if p.module == nil {
		return []message.Message{}
	}

	parent := observability.OperationFromContext(ctx)
	op := observability.NewOperation(p.cfg.Name(), string(phase), p.id, p.metrics)
	ctx, span := op.Start(ctx, observability.SpanPhase)
	log := p.log.WithContext(ctx).WithFields(logger.Fields(logger.FieldPhase, string(phase)))
	if parent != nil {
		log = log.WithFields(logger.Fields(
			"parent_configuration", parent.Configuration,
			"parent_operation", parent.Name,
		))
	}
	log.Debug("phase started")

	result := []message.Message{message.New(message.TypeActionStart, value.MustNew(sentinelPayload))}
	mark := 0
	if tool != nil {
		mark = tool.OutputLen()
	}

	status := observability.StatusOK
	err := invoke(ctx, phase, call)
	if err != nil {
		status = observability.StatusContained
		result = append(result, message.New(message.TypeActionError, value.MustNew("error "+failureText(err))))
		log.WithFields(logger.ErrorFields(string(phase), err)).Warn("module failure contained")
	} else if tool != nil {
		result = append(result, tool.OutputSince(mark)...)
	}
	result = append(result, message.New(message.TypeActionStop, value.MustNew(sentinelPayload)))

	op.End(ctx, span, status, len(result), err)
	log.WithFields(logger.DurationFields(string(phase), op.Duration())).Debug("phase finished", logger.Fields(
		"messages", len(result),
		"status", status,
	))
	return result
}

// invoke runs call, converting a returned error or a panic into a
// MODULE_FAILURE.
func invoke(ctx context.Context, phase message.ActionType, call func(context.Context) error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.ModuleFailure(string(phase), fmt.Errorf("panic: %v", r))
		}
	}()
	if cerr := call(ctx); cerr != nil {
		return errors.ModuleFailure(string(phase), cerr)
	}
	return nil
}

func failureText(err error) string {
	if appErr, ok := errors.AsAppError(err); ok && appErr.Code == errors.ErrCodeModuleFailure && appErr.Cause != nil {
		return appErr.Cause.Error()
	}
	return err.Error()
}
