// Package process drives a hosted module through its lifecycle.
//
// Every phase returns the messages it produced, framed by ACTION_START and
// ACTION_STOP sentinels:
//
//	p, _ := process.New(cfgTool, module)
//	msgs := p.Execute(ctx, execTool) // [ACTION_START, ...emitted..., ACTION_STOP]
//
// A module callback that returns an error or panics never escapes the
// driver: the phase reports exactly one ACTION_ERROR between the sentinels
// instead of the callback's output. A Process without a module is idle and
// every phase returns an empty list.
//
// Cycle runs START, EXECUTE, UPDATE, EXECUTE, STOP in order. Managed adapts
// a Process to a flow-control target for control.ExecutionTool.
package process
