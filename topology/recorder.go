package topology

import (
	"fmt"

	"github.com/kbukum/smcemu/message"
)

// Recorder receives one control message per structural mutation.
type Recorder interface {
	Record(t message.Type, text string)
}

// RecorderFunc adapts a function to Recorder.
type RecorderFunc func(t message.Type, text string)

// Record calls f.
func (f RecorderFunc) Record(t message.Type, text string) { f(t, text) }

func record(rec Recorder, t message.Type, format string, args ...any) {
	if rec == nil {
		return
	}
	rec.Record(t, fmt.Sprintf(format, args...))
}
