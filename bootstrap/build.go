package bootstrap

import (
	"github.com/kbukum/smcemu/config"
	"github.com/kbukum/smcemu/errors"
	"github.com/kbukum/smcemu/logger"
	"github.com/kbukum/smcemu/message"
	"github.com/kbukum/smcemu/topology"
	"github.com/kbukum/smcemu/value"
)

// RootContainerName names the container holding the root configuration.
const RootContainerName = "rootContainer"

type runtime struct {
	root          *topology.Container
	module        *topology.Module
	configuration *topology.Configuration
	ec            *topology.ExecutionContext
	input         [][]message.Action
}

func buildRuntime(cfg *config.Emulator, log *logger.Logger) (*runtime, error) {
	rec := topology.RecorderFunc(func(t message.Type, text string) {
		log.Trace("topology built", logger.Fields(logger.FieldMessageType, string(t), "text", text))
	})

	settings, err := toValues(cfg.Settings)
	if err != nil {
		return nil, err
	}
	variables, err := toValues(cfg.Variables)
	if err != nil {
		return nil, err
	}

	rt := &runtime{root: topology.NewContainer(RootContainerName)}
	if rt.module, err = topology.NewModule(cfg.Module); err != nil {
		return nil, err
	}
	rt.configuration, err = topology.NewConfiguration(rt.root, rt.module, cfg.Name,
		topology.WithDescription(cfg.Description),
		topology.WithSettings(settings),
		topology.WithVariables(variables),
		topology.WithBufferSize(cfg.BufferSize),
		topology.WithThreadBufferSize(cfg.ThreadBufferSize),
	)
	if err != nil {
		return nil, err
	}

	ecCfg := cfg.ExecutionContext
	if rt.ec, err = rt.configuration.CreateExecutionContext(rec, ecCfg.Name, ecCfg.WorkInterval()); err != nil {
		return nil, err
	}
	rt.ec.SetType(rec, ecCfg.Type)
	if err := buildSources(rec, rt.ec, ecCfg.Sources); err != nil {
		return nil, err
	}

	moduleType, err := rt.module.Type(0)
	if err != nil {
		return nil, err
	}
	err = moduleType.CheckCardinality(rt.ec.CountSource(), rt.configuration.CountExecutionContexts(), rt.ec.CountManagedConfigurations())
	if err != nil {
		return nil, err
	}

	if rt.input, err = toInput(cfg.Input); err != nil {
		return nil, err
	}
	return rt, nil
}

func buildSources(rec topology.Recorder, ec *topology.ExecutionContext, sources []config.Source) error {
	for _, s := range sources {
		params, err := value.FromSlice(s.Params)
		if err != nil {
			return err
		}
		src, err := ec.CreateSource(rec, topology.SourceType(s.Type), params...)
		if err != nil {
			return err
		}
		for _, f := range s.Filters {
			fparams, err := value.FromSlice(f.Params)
			if err != nil {
				return err
			}
			if _, err := src.CreateFilter(rec, topology.FilterType(f.Type), fparams...); err != nil {
				return err
			}
		}
	}
	return nil
}

func toValues(in map[string]any) (map[string]value.Value, error) {
	out := make(map[string]value.Value, len(in))
	for k, p := range in {
		v, err := value.New(p)
		if err != nil {
			return nil, err
		}
		out[k] = v
	}
	return out, nil
}

func toInput(in [][]config.Action) ([][]message.Action, error) {
	out := make([][]message.Action, len(in))
	for i, actions := range in {
		out[i] = make([]message.Action, 0, len(actions))
		for _, a := range actions {
			msgs := make([]message.Message, 0, len(a.Messages))
			for _, m := range a.Messages {
				msg, err := toMessage(m)
				if err != nil {
					return nil, err
				}
				msgs = append(msgs, msg)
			}
			out[i] = append(out[i], message.NewAction(message.ActionType(a.Type), msgs...))
		}
	}
	return out, nil
}

func toMessage(m config.Message) (message.Message, error) {
	if m.ValueType == "" {
		return message.Of(message.Type(m.Type), m.Value)
	}
	t, ok := value.ParseType(m.ValueType)
	if !ok {
		return message.Message{}, errors.InvalidArgument("value_type", "unknown value type "+m.ValueType)
	}
	v, err := value.NewTyped(t, m.Value)
	if err != nil {
		return message.Message{}, err
	}
	return message.New(message.Type(m.Type), v), nil
}
