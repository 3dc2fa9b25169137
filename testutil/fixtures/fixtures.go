// Package fixtures builds small topologies for tests.
package fixtures

import (
	"testing"

	"github.com/kbukum/smcemu/topology"
)

// Topology is a root container holding one configuration with one
// execution context.
type Topology struct {
	Root             *topology.Container
	Module           *topology.Module
	Configuration    *topology.Configuration
	ExecutionContext *topology.ExecutionContext
}

// New builds a Topology named "cfg" with execution context "ec" of module
// "module". Options are applied to the configuration.
func New(t testing.TB, opts ...topology.ConfigurationOption) *Topology {
	t.Helper()
	root := topology.NewContainer("rootContainer")
	module := topology.MustModule("module")
	cfg, err := topology.NewConfiguration(root, module, "cfg", opts...)
	if err != nil {
		t.Fatalf("configuration: %v", err)
	}
	ec, err := cfg.CreateExecutionContext(nil, "ec", -1)
	if err != nil {
		t.Fatalf("execution context: %v", err)
	}
	return &Topology{Root: root, Module: module, Configuration: cfg, ExecutionContext: ec}
}
