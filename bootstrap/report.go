package bootstrap

import (
	"context"
	"io"

	"go.yaml.in/yaml/v3"

	"github.com/kbukum/smcemu/component"
	"github.com/kbukum/smcemu/message"
)

// Report is the audit record of one emulator run.
type Report struct {
	Name             string            `yaml:"name"`
	Module           string            `yaml:"module"`
	ExecutionContext string            `yaml:"execution_context"`
	ProcessID        string            `yaml:"process_id"`
	Health           component.Health  `yaml:"health"`
	Variables        map[string]string `yaml:"variables,omitempty"`
	Phases           []message.Message `yaml:"phases"`
	Output           []message.Message `yaml:"output"`
}

// Report snapshots the phases, the cumulative output log and the current
// variables of the emulator.
func (e *Emulator) Report(ctx context.Context) Report {
	vars := e.rt.configuration.Variables()
	r := Report{
		Name:             e.Name(),
		Module:           e.rt.module.Name(),
		ExecutionContext: e.rt.ec.Address(),
		ProcessID:        e.process.ID(),
		Health:           e.Health(ctx),
		Phases:           e.Phases(),
		Output:           e.tool.Output(),
	}
	if len(vars) > 0 {
		r.Variables = make(map[string]string, len(vars))
		for k, v := range vars {
			r.Variables[k] = v.String()
		}
	}
	return r
}

// WriteReports encodes reports as one YAML sequence, in the given order.
func WriteReports(w io.Writer, reports ...Report) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(reports); err != nil {
		return err
	}
	return enc.Close()
}
