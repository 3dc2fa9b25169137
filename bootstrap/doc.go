// Package bootstrap turns a scenario configuration into a running emulator.
//
// New builds the whole runtime of one configuration: the root container,
// the module descriptor, the configuration with its settings and variables,
// the execution context with its sources and filters, both control tools
// and the lifecycle driver.
//
//	var cfg config.Emulator
//	_ = config.LoadConfig("smcemu", &cfg, config.WithConfigFile(path))
//	emu, err := bootstrap.New(&cfg, myModule)
//	msgs := emu.Cycle(ctx)
//
// An Emulator is a component.Component: Start runs the START phase and Stop
// the STOP phase, so several emulators can share a Host, which starts them
// in order, runs a task and stops them again on completion or on SIGINT /
// SIGTERM.
package bootstrap
