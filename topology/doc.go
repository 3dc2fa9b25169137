// Package topology models the addressable tree a hosted module runs in:
//
//	Module -> Container -> Configuration -> ExecutionContext -> Source -> Filter
//
// Containers own child containers and configurations. Configurations own
// execution contexts, which own an ordered source list and reference (but do
// not own) child execution contexts and managed configurations.
//
// Every mutator takes a Recorder. When the recorder is non-nil the mutation
// is appended to it as one control message naming the affected path, which
// keeps the execution output a complete audit trail. Bootstrap code passes
// nil to build the initial tree without recording it.
package topology
