package control

import (
	"sort"

	"github.com/kbukum/smcemu/message"
	"github.com/kbukum/smcemu/topology"
	"github.com/kbukum/smcemu/validation"
)

// CountManagedConfigurations returns the number of managed configurations.
func (t *ExecutionTool) CountManagedConfigurations() int {
	return t.ec.CountManagedConfigurations()
}

// ManagedConfiguration returns the managed configuration at id.
func (t *ExecutionTool) ManagedConfiguration(id int) (*topology.Configuration, error) {
	return t.ec.ManagedConfiguration(id)
}

// CreateConfiguration creates a configuration in container and inserts it
// at id in the managed list.
func (t *ExecutionTool) CreateConfiguration(id int, container *topology.Container, module *topology.Module, name string) (*topology.Configuration, error) {
	if err := validation.InsertIndex("managed configuration", id, t.ec.CountManagedConfigurations()); err != nil {
		return nil, err
	}
	cfg, err := topology.NewConfiguration(container, module, name)
	if err != nil {
		return nil, err
	}
	if err := t.ec.InsertManagedConfiguration(nil, id, cfg); err != nil {
		container.DetachConfiguration(cfg)
		return nil, err
	}
	t.Record(message.TypeConfigurationCreate, cfg.Name())
	return cfg, nil
}

// RemoveManagedConfiguration detaches the configuration at id from its
// container and drops it from the managed list.
func (t *ExecutionTool) RemoveManagedConfiguration(id int) error {
	cfg, err := t.ec.ManagedConfiguration(id)
	if err != nil {
		return err
	}
	cfg.Container().DetachConfiguration(cfg)
	if err := t.ec.RemoveManagedConfiguration(nil, id); err != nil {
		return err
	}
	t.Record(message.TypeConfigurationRemove, cfg.Name())
	return nil
}

// CreateContainer appends a child container to parent.
func (t *ExecutionTool) CreateContainer(parent *topology.Container, name string) (*topology.Container, error) {
	if err := validation.New().NotNil("container", parent != nil).Validate(); err != nil {
		return nil, err
	}
	return parent.CreateContainer(t, name)
}

// RemoveContainer removes the empty child container of parent at id.
func (t *ExecutionTool) RemoveContainer(parent *topology.Container, id int) error {
	if err := validation.New().NotNil("container", parent != nil).Validate(); err != nil {
		return err
	}
	return parent.RemoveContainer(t, id)
}

// Modules returns the distinct modules of the managed configurations and of
// the handle's own configuration, sorted by name.
func (t *ExecutionTool) Modules() []*topology.Module {
	byName := map[string]*topology.Module{}
	for i := 0; i < t.ec.CountManagedConfigurations(); i++ {
		cfg, _ := t.ec.ManagedConfiguration(i)
		byName[cfg.Module().Name()] = cfg.Module()
	}
	own := t.Configuration().Module()
	byName[own.Name()] = own

	modules := make([]*topology.Module, 0, len(byName))
	for _, m := range byName {
		modules = append(modules, m)
	}
	sort.Slice(modules, func(i, j int) bool { return modules[i].Name() < modules[j].Name() })
	return modules
}
