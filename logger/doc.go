// Package logger provides structured logging for the emulator using zerolog.
//
// It supports JSON and console output, log level configuration, and
// component-scoped loggers with structured fields. A Sink adapts a Logger to
// the five plain-text severity methods a hosted module calls through its
// configuration handle.
//
// # Configuration
//
//	logging:
//	  level: "debug"
//	  format: "json"
//
// # Usage
//
//	log := logger.Get("process")
//	log.Info("phase finished", logger.Fields("phase", "execute"))
package logger
