package config

import (
	"os"
	"time"

	"github.com/kbukum/smcemu/errors"
	"github.com/kbukum/smcemu/logger"
	"github.com/kbukum/smcemu/resilience"
	"github.com/kbukum/smcemu/validation"
)

// DefaultExecutionContext names the execution context when none is given.
const DefaultExecutionContext = "default"

// Emulator holds everything needed to build one emulated configuration.
type Emulator struct {
	Name             string           `yaml:"name" mapstructure:"name" validate:"required"`
	Description      string           `yaml:"description" mapstructure:"description"`
	Module           string           `yaml:"module" mapstructure:"module" validate:"required"`
	Settings         map[string]any   `yaml:"settings" mapstructure:"settings"`
	Variables        map[string]any   `yaml:"variables" mapstructure:"variables"`
	HomeFolder       string           `yaml:"home_folder" mapstructure:"home_folder" validate:"required"`
	WorkDirectory    string           `yaml:"work_directory" mapstructure:"work_directory" validate:"required"`
	BufferSize       int              `yaml:"buffer_size" mapstructure:"buffer_size" validate:"gte=1"`
	ThreadBufferSize int              `yaml:"thread_buffer_size" mapstructure:"thread_buffer_size" validate:"gte=1"`
	ExecutionContext ExecutionContext `yaml:"execution_context" mapstructure:"execution_context"`
	Command          *Command         `yaml:"command" mapstructure:"command"`
	Input            [][]Action       `yaml:"input" mapstructure:"input" validate:"dive,dive"`
	Logging          logger.Config    `yaml:"logging" mapstructure:"logging"`
	Telemetry        Telemetry        `yaml:"telemetry" mapstructure:"telemetry"`
}

// ExecutionContext describes the root execution context.
type ExecutionContext struct {
	Name            string   `yaml:"name" mapstructure:"name" validate:"required"`
	Type            string   `yaml:"type" mapstructure:"type" validate:"required"`
	MaxWorkInterval *int     `yaml:"max_work_interval" mapstructure:"max_work_interval" validate:"omitempty,gte=-1"`
	Sources         []Source `yaml:"sources" mapstructure:"sources" validate:"dive"`
}

// WorkInterval returns the max work interval, -1 when unset.
func (e ExecutionContext) WorkInterval() int {
	if e.MaxWorkInterval == nil {
		return -1
	}
	return *e.MaxWorkInterval
}

// Source describes one source of the root execution context.
type Source struct {
	Type    string   `yaml:"type" mapstructure:"type" validate:"required"`
	Params  []any    `yaml:"params" mapstructure:"params"`
	Filters []Filter `yaml:"filters" mapstructure:"filters" validate:"dive"`
}

// Filter describes one filter of a source.
type Filter struct {
	Type   string `yaml:"type" mapstructure:"type" validate:"required"`
	Params []any  `yaml:"params" mapstructure:"params"`
}

// Action is one buffered input action.
type Action struct {
	Type     string    `yaml:"type" mapstructure:"type" validate:"oneof=START EXECUTE UPDATE STOP"`
	Messages []Message `yaml:"messages" mapstructure:"messages" validate:"dive"`
}

// Message is one buffered input message.
type Message struct {
	Type  string `yaml:"type" mapstructure:"type" validate:"required"`
	Value any    `yaml:"value" mapstructure:"value"`
	// ValueType forces the value tag, e.g. LONG for a small number.
	ValueType string `yaml:"value_type" mapstructure:"value_type"`
}

// Command configures the external command module.
type Command struct {
	Binary      string            `yaml:"binary" mapstructure:"binary" validate:"required"`
	Args        []string          `yaml:"args" mapstructure:"args"`
	Dir         string            `yaml:"dir" mapstructure:"dir"`
	Env         []string          `yaml:"env" mapstructure:"env"`
	GracePeriod time.Duration     `yaml:"grace_period" mapstructure:"grace_period" validate:"gte=0"`
	Retry       resilience.Policy `yaml:"retry" mapstructure:"retry"`
}

// Telemetry configures OTLP export. An empty endpoint disables it.
type Telemetry struct {
	Endpoint   string  `yaml:"endpoint" mapstructure:"endpoint"`
	Insecure   bool    `yaml:"insecure" mapstructure:"insecure"`
	SampleRate float64 `yaml:"sample_rate" mapstructure:"sample_rate" validate:"gte=0,lte=1"`
}

// Enabled reports whether an exporter endpoint is configured.
func (t Telemetry) Enabled() bool { return t.Endpoint != "" }

// ApplyDefaults fills unset fields.
func (c *Emulator) ApplyDefaults() {
	if c.Module == "" {
		c.Module = c.Name
	}
	if c.HomeFolder == "" {
		c.HomeFolder = os.TempDir()
	}
	if c.WorkDirectory == "" {
		c.WorkDirectory = os.TempDir()
	}
	if c.BufferSize == 0 {
		c.BufferSize = 1
	}
	if c.ThreadBufferSize == 0 {
		c.ThreadBufferSize = 1
	}
	if c.ExecutionContext.Name == "" {
		c.ExecutionContext.Name = DefaultExecutionContext
	}
	if c.ExecutionContext.Type == "" {
		c.ExecutionContext.Type = DefaultExecutionContext
	}
	for i := range c.Input {
		for j := range c.Input[i] {
			a := &c.Input[i][j]
			if a.Type == "" {
				a.Type = "EXECUTE"
			}
			for k := range a.Messages {
				if a.Messages[k].Type == "" {
					a.Messages[k].Type = "DATA"
				}
			}
		}
	}
	if c.Command != nil && c.Command.GracePeriod == 0 {
		c.Command.GracePeriod = 5 * time.Second
	}
	if c.Telemetry.Enabled() && c.Telemetry.SampleRate == 0 {
		c.Telemetry.SampleRate = 1.0
	}
	c.Logging.ApplyDefaults()
}

// Validate checks the struct tags and the logging section.
func (c *Emulator) Validate() error {
	if err := validation.Validate(c); err != nil {
		return errors.InvalidConfig(err)
	}
	if err := c.Logging.Validate(); err != nil {
		return errors.InvalidConfig(err)
	}
	return nil
}
