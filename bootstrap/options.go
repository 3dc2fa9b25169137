package bootstrap

import (
	"time"

	"github.com/spf13/afero"

	"github.com/kbukum/smcemu/logger"
	"github.com/kbukum/smcemu/observability"
)

// Option configures an Emulator.
type Option func(*options)

type options struct {
	logger  *logger.Logger
	metrics *observability.PhaseMetrics
	fs      afero.Fs
	sink    logger.Sink
}

// WithLogger sets the logger of the emulator and everything it builds.
// Without it the process and execution tool use the component loggers
// registered by logger.Init.
func WithLogger(l *logger.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithMetrics records phase and flow-control metrics on m.
func WithMetrics(m *observability.PhaseMetrics) Option {
	return func(o *options) { o.metrics = m }
}

// WithFs sets the filesystem behind the module home folder.
func WithFs(fs afero.Fs) Option {
	return func(o *options) { o.fs = fs }
}

// WithSink routes the module's logger calls to sink.
func WithSink(sink logger.Sink) Option {
	return func(o *options) { o.sink = sink }
}

// HostOption configures a Host.
type HostOption func(*Host)

// WithHostLogger sets the host logger.
func WithHostLogger(l *logger.Logger) HostOption {
	return func(h *Host) { h.Logger = l }
}

// WithGracefulTimeout bounds the shutdown of a Host.
func WithGracefulTimeout(d time.Duration) HostOption {
	return func(h *Host) { h.gracefulTimeout = d }
}
