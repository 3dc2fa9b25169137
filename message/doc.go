// Package message defines the units exchanged between the emulated host and
// a hosted module: a timestamped Message carrying a value.Value, the Action
// that groups messages produced in one lifecycle phase, and the Command that
// bundles several actions for one source.
//
// Helpers in this package select the EXECUTE/DATA view of buffered input and
// implement the host's error predicate for actions.
package message
