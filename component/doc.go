// Package component defines the start/stop lifecycle shared by hosted
// emulators and the registry that runs several of them in order.
package component
