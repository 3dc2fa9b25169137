package topology

import (
	"maps"
	"slices"

	"github.com/kbukum/smcemu/errors"
	"github.com/kbukum/smcemu/message"
	"github.com/kbukum/smcemu/validation"
	"github.com/kbukum/smcemu/value"
)

// Configuration is a named instance of a Module attached to a Container.
type Configuration struct {
	container         *Container
	module            *Module
	name              string
	description       string
	settings          map[string]value.Value
	variables         map[string]value.Value
	changed           map[string]bool
	bufferSize        int
	threadBufferSize  int
	enable            bool
	executionContexts []*ExecutionContext
}

// ConfigurationOption configures a new Configuration.
type ConfigurationOption func(*Configuration)

// WithDescription sets the free-text description.
func WithDescription(description string) ConfigurationOption {
	return func(c *Configuration) { c.description = description }
}

// WithSettings preloads settings.
func WithSettings(settings map[string]value.Value) ConfigurationOption {
	return func(c *Configuration) { maps.Copy(c.settings, settings) }
}

// WithVariables preloads variables. Preloaded variables report changed.
func WithVariables(variables map[string]value.Value) ConfigurationOption {
	return func(c *Configuration) {
		for k, v := range variables {
			c.variables[k] = v
			c.changed[k] = true
		}
	}
}

// WithBufferSize sets the buffer size hint.
func WithBufferSize(size int) ConfigurationOption {
	return func(c *Configuration) { c.bufferSize = size }
}

// WithThreadBufferSize sets the thread buffer size hint.
func WithThreadBufferSize(size int) ConfigurationOption {
	return func(c *Configuration) { c.threadBufferSize = size }
}

// NewConfiguration creates a configuration and attaches it to container.
func NewConfiguration(container *Container, module *Module, name string, opts ...ConfigurationOption) (*Configuration, error) {
	err := validation.New().
		NotNil("container", container != nil).
		NotNil("module", module != nil).
		Required("name", name).
		Validate()
	if err != nil {
		return nil, err
	}
	c := &Configuration{
		container:        container,
		module:           module,
		name:             name,
		settings:         make(map[string]value.Value),
		variables:        make(map[string]value.Value),
		changed:          make(map[string]bool),
		bufferSize:       1,
		threadBufferSize: 1,
		enable:           true,
	}
	for _, opt := range opts {
		opt(c)
	}
	container.attach(c)
	return c, nil
}

func (c *Configuration) Container() *Container { return c.container }
func (c *Configuration) Module() *Module       { return c.module }
func (c *Configuration) Name() string          { return c.name }
func (c *Configuration) Description() string   { return c.description }
func (c *Configuration) BufferSize() int       { return c.bufferSize }
func (c *Configuration) ThreadBufferSize() int { return c.threadBufferSize }
func (c *Configuration) IsEnable() bool        { return c.enable }

// IsActive is always false in the emulator.
func (c *Configuration) IsActive() bool { return false }

// Settings returns a copy of all settings.
func (c *Configuration) Settings() map[string]value.Value { return maps.Clone(c.settings) }

// Setting returns the setting stored under key.
func (c *Configuration) Setting(key string) (value.Value, error) {
	v, ok := c.settings[key]
	if !ok {
		return value.Value{}, errors.NotFound("setting", key)
	}
	return v, nil
}

// Variables returns a copy of all variables.
func (c *Configuration) Variables() map[string]value.Value { return maps.Clone(c.variables) }

// Variable returns the variable stored under key.
func (c *Configuration) Variable(key string) (value.Value, error) {
	v, ok := c.variables[key]
	if !ok {
		return value.Value{}, errors.NotFound("variable", key)
	}
	return v, nil
}

// IsVariableChanged reports whether key was preloaded or set since the last
// call for that key, and clears the flag.
func (c *Configuration) IsVariableChanged(key string) bool {
	changed := c.changed[key]
	if changed {
		c.changed[key] = false
	}
	return changed
}

// SetName renames the configuration.
func (c *Configuration) SetName(rec Recorder, name string) error {
	if err := validation.New().Required("name", name).Validate(); err != nil {
		return err
	}
	c.name = name
	record(rec, message.TypeConfigurationUpdate, "%s", c.name)
	return nil
}

// SetSetting stores a setting.
func (c *Configuration) SetSetting(rec Recorder, key string, v value.Value) error {
	if err := validation.New().Required("key", key).Validate(); err != nil {
		return err
	}
	c.settings[key] = v
	record(rec, message.TypeConfigurationSettingUpdate, "%s %s", c.name, key)
	return nil
}

// SetVariable stores a variable and marks it changed.
func (c *Configuration) SetVariable(rec Recorder, key string, v value.Value) error {
	if err := validation.New().Required("key", key).Validate(); err != nil {
		return err
	}
	c.variables[key] = v
	c.changed[key] = true
	record(rec, message.TypeConfigurationVariableUpdate, "%s %s", c.name, key)
	return nil
}

// RemoveVariable deletes a variable and its changed flag.
func (c *Configuration) RemoveVariable(rec Recorder, key string) error {
	if _, ok := c.variables[key]; !ok {
		return errors.NotFound("variable", key)
	}
	delete(c.variables, key)
	delete(c.changed, key)
	record(rec, message.TypeConfigurationVariableRemove, "%s %s", c.name, key)
	return nil
}

// SetBufferSize updates the buffer size hint.
func (c *Configuration) SetBufferSize(rec Recorder, size int) error {
	if err := validation.New().Min("buffer_size", size, 1).Validate(); err != nil {
		return err
	}
	c.bufferSize = size
	record(rec, message.TypeConfigurationUpdate, "%s", c.name)
	return nil
}

// SetThreadBufferSize updates the thread buffer size hint.
func (c *Configuration) SetThreadBufferSize(rec Recorder, size int) error {
	if err := validation.New().Min("thread_buffer_size", size, 1).Validate(); err != nil {
		return err
	}
	c.threadBufferSize = size
	record(rec, message.TypeConfigurationUpdate, "%s", c.name)
	return nil
}

// SetEnable toggles the configuration.
func (c *Configuration) SetEnable(rec Recorder, enable bool) {
	c.enable = enable
	record(rec, message.TypeConfigurationUpdate, "%s", c.name)
}

// CountExecutionContexts returns the number of owned execution contexts.
func (c *Configuration) CountExecutionContexts() int { return len(c.executionContexts) }

// ExecutionContext returns the execution context at id.
func (c *Configuration) ExecutionContext(id int) (*ExecutionContext, error) {
	if err := validation.Index("execution context", id, len(c.executionContexts)); err != nil {
		return nil, err
	}
	return c.executionContexts[id], nil
}

// CreateExecutionContext appends a new execution context.
func (c *Configuration) CreateExecutionContext(rec Recorder, name string, maxWorkInterval int) (*ExecutionContext, error) {
	err := validation.New().
		Required("name", name).
		Min("max_work_interval", maxWorkInterval, -1).
		Validate()
	if err != nil {
		return nil, err
	}
	ec := newExecutionContext(c, name, maxWorkInterval)
	c.executionContexts = append(c.executionContexts, ec)
	record(rec, message.TypeExecutionContextCreate, "%s", ec.Address())
	return ec, nil
}

// UpdateExecutionContext renames the execution context at id and sets its
// max work interval.
func (c *Configuration) UpdateExecutionContext(rec Recorder, id int, name string, maxWorkInterval int) error {
	if err := validation.Index("execution context", id, len(c.executionContexts)); err != nil {
		return err
	}
	err := validation.New().
		Required("name", name).
		Min("max_work_interval", maxWorkInterval, -1).
		Validate()
	if err != nil {
		return err
	}
	ec := c.executionContexts[id]
	ec.name = name
	ec.maxWorkInterval = maxWorkInterval
	record(rec, message.TypeExecutionContextUpdate, "%s", ec.Address())
	return nil
}

// RemoveExecutionContext removes the execution context at id.
func (c *Configuration) RemoveExecutionContext(rec Recorder, id int) error {
	if err := validation.Index("execution context", id, len(c.executionContexts)); err != nil {
		return err
	}
	ec := c.executionContexts[id]
	c.executionContexts = slices.Delete(c.executionContexts, id, id+1)
	record(rec, message.TypeExecutionContextRemove, "%s", ec.Address())
	return nil
}
