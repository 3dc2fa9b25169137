package topology

import (
	"slices"

	"github.com/kbukum/smcemu/message"
	"github.com/kbukum/smcemu/validation"
)

// DefaultExecutionContextType is the type tag of a new execution context.
const DefaultExecutionContextType = "default"

// ExecutionContext is the unit a lifecycle phase runs against. It is the
// source list of its configuration and references the child execution
// contexts and managed configurations it controls.
type ExecutionContext struct {
	SourceList

	configuration     *Configuration
	name              string
	typ               string
	maxWorkInterval   int
	enable            bool
	executionContexts []*ExecutionContext
	managed           []*Configuration
}

func newExecutionContext(cfg *Configuration, name string, maxWorkInterval int) *ExecutionContext {
	ec := &ExecutionContext{
		configuration:   cfg,
		name:            name,
		typ:             DefaultExecutionContextType,
		maxWorkInterval: maxWorkInterval,
		enable:          true,
	}
	ec.SourceList = SourceList{ec: ec}
	return ec
}

func (ec *ExecutionContext) Configuration() *Configuration { return ec.configuration }
func (ec *ExecutionContext) Name() string                  { return ec.name }
func (ec *ExecutionContext) Type() string                  { return ec.typ }
func (ec *ExecutionContext) MaxWorkInterval() int          { return ec.maxWorkInterval }
func (ec *ExecutionContext) IsEnable() bool                { return ec.enable }

// Address returns "configuration.executionContext".
func (ec *ExecutionContext) Address() string {
	return ec.configuration.Name() + "." + ec.name
}

// SetName renames the execution context.
func (ec *ExecutionContext) SetName(rec Recorder, name string) error {
	if err := validation.New().Required("name", name).Validate(); err != nil {
		return err
	}
	ec.name = name
	record(rec, message.TypeExecutionContextUpdate, "%s", ec.Address())
	return nil
}

// SetType changes the free-form type tag.
func (ec *ExecutionContext) SetType(rec Recorder, typ string) {
	ec.typ = typ
	record(rec, message.TypeExecutionContextUpdate, "%s", ec.Address())
}

// SetMaxWorkInterval changes the scheduling hint; -1 means unlimited.
func (ec *ExecutionContext) SetMaxWorkInterval(rec Recorder, tacts int) error {
	if err := validation.New().Min("max_work_interval", tacts, -1).Validate(); err != nil {
		return err
	}
	ec.maxWorkInterval = tacts
	record(rec, message.TypeExecutionContextUpdate, "%s", ec.Address())
	return nil
}

// SetEnable toggles the execution context.
func (ec *ExecutionContext) SetEnable(rec Recorder, enable bool) {
	ec.enable = enable
	record(rec, message.TypeExecutionContextUpdate, "%s", ec.Address())
}

// CountExecutionContexts returns the number of child execution contexts.
func (ec *ExecutionContext) CountExecutionContexts() int { return len(ec.executionContexts) }

// ExecutionContext returns the child execution context at id.
func (ec *ExecutionContext) ExecutionContext(id int) (*ExecutionContext, error) {
	if err := validation.Index("execution context", id, len(ec.executionContexts)); err != nil {
		return nil, err
	}
	return ec.executionContexts[id], nil
}

// InsertExecutionContext references child at position id in [0, count].
func (ec *ExecutionContext) InsertExecutionContext(rec Recorder, id int, child *ExecutionContext) error {
	if err := validation.New().NotNil("execution_context", child != nil).Validate(); err != nil {
		return err
	}
	if err := validation.InsertIndex("execution context", id, len(ec.executionContexts)); err != nil {
		return err
	}
	ec.executionContexts = slices.Insert(ec.executionContexts, id, child)
	record(rec, message.TypeManagedExecutionContextAdd, "%s %s", ec.Address(), child.Address())
	return nil
}

// RemoveExecutionContext drops the child reference at id.
func (ec *ExecutionContext) RemoveExecutionContext(rec Recorder, id int) error {
	if err := validation.Index("execution context", id, len(ec.executionContexts)); err != nil {
		return err
	}
	child := ec.executionContexts[id]
	ec.executionContexts = slices.Delete(ec.executionContexts, id, id+1)
	record(rec, message.TypeManagedExecutionContextRemove, "%s %s", ec.Address(), child.Address())
	return nil
}

// CountManagedConfigurations returns the number of managed configurations.
func (ec *ExecutionContext) CountManagedConfigurations() int { return len(ec.managed) }

// ManagedConfiguration returns the managed configuration at id.
func (ec *ExecutionContext) ManagedConfiguration(id int) (*Configuration, error) {
	if err := validation.Index("managed configuration", id, len(ec.managed)); err != nil {
		return nil, err
	}
	return ec.managed[id], nil
}

// InsertManagedConfiguration references cfg at position id in [0, count].
func (ec *ExecutionContext) InsertManagedConfiguration(rec Recorder, id int, cfg *Configuration) error {
	if err := validation.New().NotNil("configuration", cfg != nil).Validate(); err != nil {
		return err
	}
	if err := validation.InsertIndex("managed configuration", id, len(ec.managed)); err != nil {
		return err
	}
	ec.managed = slices.Insert(ec.managed, id, cfg)
	record(rec, message.TypeManagedConfigurationAdd, "%s %s", ec.Address(), cfg.Name())
	return nil
}

// RemoveManagedConfiguration drops the managed configuration reference at id.
func (ec *ExecutionContext) RemoveManagedConfiguration(rec Recorder, id int) error {
	if err := validation.Index("managed configuration", id, len(ec.managed)); err != nil {
		return err
	}
	cfg := ec.managed[id]
	ec.managed = slices.Delete(ec.managed, id, id+1)
	record(rec, message.TypeManagedConfigurationRemove, "%s %s", ec.Address(), cfg.Name())
	return nil
}
