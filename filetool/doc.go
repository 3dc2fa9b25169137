// Package filetool gives hosted modules read access to a path, usually their
// home folder. It is backed by an afero.Fs so tests can run against an
// in-memory filesystem.
package filetool
