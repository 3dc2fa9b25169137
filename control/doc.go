// Package control implements the two handles a hosted module receives.
//
// ExecutionTool is the execution-context handle. It carries the buffered
// input per source, the cumulative output log, configuration control
// (managed configurations and containers) and flow control (synchronous and
// "parallel" runs of managed execution contexts). It is also the
// topology.Recorder passed to topology mutators, so every structural change
// lands in the output log as a control message.
//
// ConfigurationTool is the configuration handle: settings, variables with
// change tracking, home folder and a logging sink.
//
// Both handles are single-threaded: one phase runs at a time and nothing
// here locks.
package control
