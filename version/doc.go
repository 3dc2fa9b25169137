// Package version reports the build of the smcemu binary.
//
// Version, commit and build time are set at link time and fall back to the
// VCS stamp embedded by the Go toolchain:
//
//	go build -ldflags "-X github.com/kbukum/smcemu/version.Version=1.0.0"
package version
