package logger

import "sync"

// components holds the loggers Init builds from logging.components.
var components = struct {
	sync.RWMutex
	byName map[string]*Logger
}{byName: make(map[string]*Logger)}

// Register installs l as the logger for component name.
func Register(name string, l *Logger) {
	components.Lock()
	defer components.Unlock()
	components.byName[name] = l
}

// Get returns the logger for component name: the registered one, or the
// global logger tagged with name.
func Get(name string) *Logger {
	components.RLock()
	l, ok := components.byName[name]
	components.RUnlock()
	if ok {
		return l
	}
	return GetGlobalLogger().WithComponent(name)
}

// Reset drops every registered component logger.
func Reset() {
	components.Lock()
	defer components.Unlock()
	components.byName = make(map[string]*Logger)
}
