package topology

import (
	"fmt"

	"github.com/kbukum/smcemu/errors"
	"github.com/kbukum/smcemu/validation"
)

// Unbounded is the maximum count meaning "no upper limit".
const Unbounded = -1

// ModuleType declares the legal shape of a configuration of one module type.
type ModuleType struct {
	Name                     string `mapstructure:"name" validate:"required"`
	MinSources               int    `mapstructure:"min_sources" validate:"gte=0"`
	MaxSources               int    `mapstructure:"max_sources" validate:"gte=-1"`
	MinExecutionContexts     int    `mapstructure:"min_execution_contexts" validate:"gte=0"`
	MaxExecutionContexts     int    `mapstructure:"max_execution_contexts" validate:"gte=-1"`
	MinManagedConfigurations int    `mapstructure:"min_managed_configurations" validate:"gte=0"`
	MaxManagedConfigurations int    `mapstructure:"max_managed_configurations" validate:"gte=-1"`
}

// DefaultModuleType returns an unconstrained type.
func DefaultModuleType(name string) ModuleType {
	return ModuleType{
		Name:                     name,
		MaxSources:               Unbounded,
		MaxExecutionContexts:     Unbounded,
		MaxManagedConfigurations: Unbounded,
	}
}

// CheckCardinality reports an INVALID_ARGUMENT error when the given counts
// fall outside the ranges declared by the type.
func (t ModuleType) CheckCardinality(sources, executionContexts, managed int) error {
	v := validation.New()
	checkRange(v, "sources", sources, t.MinSources, t.MaxSources)
	checkRange(v, "execution_contexts", executionContexts, t.MinExecutionContexts, t.MaxExecutionContexts)
	checkRange(v, "managed_configurations", managed, t.MinManagedConfigurations, t.MaxManagedConfigurations)
	return v.Validate()
}

func checkRange(v *validation.Validator, field string, count, minCount, maxCount int) {
	v.Min(field, count, minCount)
	if maxCount != Unbounded {
		v.Custom(count <= maxCount, field, fmt.Sprintf("must be at most %d", maxCount))
	}
}

// Module describes a class of pluggable logic. It is immutable.
type Module struct {
	name  string
	types []ModuleType
}

// NewModule validates the types and builds a module. A module declared
// without types gets one unconstrained "default" type.
func NewModule(name string, types ...ModuleType) (*Module, error) {
	if err := validation.New().Required("name", name).Validate(); err != nil {
		return nil, err
	}
	if len(types) == 0 {
		types = []ModuleType{DefaultModuleType("default")}
	}
	for i, t := range types {
		if err := validation.Validate(t); err != nil {
			return nil, errors.InvalidArgument(fmt.Sprintf("types[%d]", i), err.Error()).WithCause(err)
		}
		if t.MaxSources != Unbounded && t.MaxSources < t.MinSources {
			return nil, errors.InvalidArgument(fmt.Sprintf("types[%d].max_sources", i), "is below min_sources")
		}
	}
	return &Module{name: name, types: append([]ModuleType(nil), types...)}, nil
}

// MustModule is like NewModule but panics on invalid input.
func MustModule(name string, types ...ModuleType) *Module {
	m, err := NewModule(name, types...)
	if err != nil {
		panic(err)
	}
	return m
}

// Name returns the module name.
func (m *Module) Name() string { return m.name }

// CountTypes returns the number of declared types.
func (m *Module) CountTypes() int { return len(m.types) }

// Type returns the type at typeID.
func (m *Module) Type(typeID int) (ModuleType, error) {
	if err := validation.Index("module type", typeID, len(m.types)); err != nil {
		return ModuleType{}, err
	}
	return m.types[typeID], nil
}
