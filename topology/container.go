package topology

import (
	"slices"

	"github.com/kbukum/smcemu/errors"
	"github.com/kbukum/smcemu/message"
	"github.com/kbukum/smcemu/validation"
)

// Container is a node of the container tree.
type Container struct {
	name           string
	enable         bool
	parent         *Container
	containers     []*Container
	configurations []*Configuration
}

// NewContainer creates a detached root container.
func NewContainer(name string) *Container {
	return &Container{name: name, enable: true}
}

// Name returns the container name.
func (c *Container) Name() string { return c.name }

// IsEnable reports whether the container is enabled.
func (c *Container) IsEnable() bool { return c.enable }

// Parent returns the owning container, nil for a root.
func (c *Container) Parent() *Container { return c.parent }

// CountContainers returns the number of child containers.
func (c *Container) CountContainers() int { return len(c.containers) }

// Container returns the child container at id.
func (c *Container) Container(id int) (*Container, error) {
	if err := validation.Index("container", id, len(c.containers)); err != nil {
		return nil, err
	}
	return c.containers[id], nil
}

// CountConfigurations returns the number of configurations attached here.
func (c *Container) CountConfigurations() int { return len(c.configurations) }

// Configuration returns the attached configuration at id.
func (c *Container) Configuration(id int) (*Configuration, error) {
	if err := validation.Index("configuration", id, len(c.configurations)); err != nil {
		return nil, err
	}
	return c.configurations[id], nil
}

// CreateContainer appends a new child container.
func (c *Container) CreateContainer(rec Recorder, name string) (*Container, error) {
	if err := validation.New().Required("name", name).Validate(); err != nil {
		return nil, err
	}
	child := &Container{name: name, enable: true, parent: c}
	c.containers = append(c.containers, child)
	record(rec, message.TypeContainerCreate, "%s %s", c.name, name)
	return child, nil
}

// RemoveContainer removes the child container at id. A container that still
// owns configurations or containers is rejected without mutation.
func (c *Container) RemoveContainer(rec Recorder, id int) error {
	if err := validation.Index("container", id, len(c.containers)); err != nil {
		return err
	}
	child := c.containers[id]
	if len(child.configurations) > 0 || len(child.containers) > 0 {
		return errors.NonEmptyContainer(child.name, len(child.configurations), len(child.containers))
	}
	c.containers = slices.Delete(c.containers, id, id+1)
	child.parent = nil
	record(rec, message.TypeContainerRemove, "%s %s", c.name, child.name)
	return nil
}

// DetachConfiguration removes cfg from this container. It reports false when
// cfg is not attached here.
func (c *Container) DetachConfiguration(cfg *Configuration) bool {
	i := slices.Index(c.configurations, cfg)
	if i < 0 {
		return false
	}
	c.configurations = slices.Delete(c.configurations, i, i+1)
	return true
}

func (c *Container) attach(cfg *Configuration) {
	c.configurations = append(c.configurations, cfg)
}
