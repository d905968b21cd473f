package helpers

import (
	"dwellscan/listingworker/logger"
)

// LoggerInterface defines the interface for logger implementations
type LoggerInterface interface {
	LogError(name string, err error)
	LogInfo(format string, args ...interface{})
}

// ComponentLogger provides logging functionality backed by the structured logger
type ComponentLogger struct {
	component string
}

// NewComponentLogger creates a new logger instance for a component
func NewComponentLogger(component string) *ComponentLogger {
	return &ComponentLogger{component: component}
}

// LogError logs an error with the originating name attached
func (l *ComponentLogger) LogError(name string, err error) {
	logger.LogError(l.component, err, "%s failed", name)
}

// LogInfo logs an informational message
func (l *ComponentLogger) LogInfo(format string, args ...interface{}) {
	logger.LogInfo(l.component, format, args...)
}
