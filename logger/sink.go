package logger

// Sink is the five-level text logging capability handed to hosted modules.
// Formatting and routing are the sink's concern.
type Sink interface {
	Trace(text string)
	Debug(text string)
	Info(text string)
	Warn(text string)
	Error(text string)
}

// ForConfiguration returns a Sink that writes through l, tagging every line
// with the configuration name.
func ForConfiguration(l *Logger, name string) Sink {
	if l == nil {
		l = GetGlobalLogger()
	}
	return &configurationSink{log: l.WithFields(Fields(FieldConfiguration, name))}
}

type configurationSink struct {
	log *Logger
}

func (s *configurationSink) Trace(text string) { s.log.Trace(text) }
func (s *configurationSink) Debug(text string) { s.log.Debug(text) }
func (s *configurationSink) Info(text string)  { s.log.Info(text) }
func (s *configurationSink) Warn(text string)  { s.log.Warn(text) }
func (s *configurationSink) Error(text string) { s.log.Error(text) }
