package testutil

import "sync"

// Line is one captured sink entry.
type Line struct {
	Level string
	Text  string
}

// MemorySink is a logger.Sink that keeps every line in memory.
type MemorySink struct {
	mu    sync.Mutex
	lines []Line
}

func (s *MemorySink) Trace(text string) { s.add("trace", text) }
func (s *MemorySink) Debug(text string) { s.add("debug", text) }
func (s *MemorySink) Info(text string)  { s.add("info", text) }
func (s *MemorySink) Warn(text string)  { s.add("warn", text) }
func (s *MemorySink) Error(text string) { s.add("error", text) }

// Lines returns the captured lines in write order.
func (s *MemorySink) Lines() []Line {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Line(nil), s.lines...)
}

func (s *MemorySink) add(level, text string) {
	s.mu.Lock()
	s.lines = append(s.lines, Line{Level: level, Text: text})
	s.mu.Unlock()
}
