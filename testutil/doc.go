// Package testutil provides test doubles and helpers shared by the emulator
// packages.
//
// FuncModule builds a hosted module from closures and records the phases it
// saw:
//
//	m := &testutil.FuncModule{
//	    ProcessFn: func(ctx context.Context, cfg *control.ConfigurationTool, tool *control.ExecutionTool) error {
//	        return tool.AddMessage("hello")
//	    },
//	}
//
// MemorySink captures what a module writes through its logger sink, and
// Setup / T(t).Setup run a component.Component for the duration of a test.
// Topology fixtures live in the fixtures subpackage.
package testutil
