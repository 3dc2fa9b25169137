// Package execmodule hosts an external program as a module.
//
// Every EXECUTE phase runs the configured binary once. The DATA values
// buffered on source 0 are written to its standard input in text form, one
// per line. Each non-empty stdout line becomes a DATA message and each
// non-empty stderr line a LOG message. A non-zero exit is returned as the
// phase error after the output has been emitted, and the exit code is kept
// in the "last_exit_code" variable.
//
// Run is usable on its own:
//
//	res, err := execmodule.Run(ctx, execmodule.Command{Binary: "echo", Args: []string{"hi"}})
package execmodule
