package utils

import (
	"log"
	"os"
)

// Logger prints leveled progress lines through the standard logger. A nil
// *Logger discards everything. It also satisfies resty.Logger.
type Logger struct {
	debug bool
	l     *log.Logger
}

func NewLogger(debug bool) *Logger {
	return &Logger{debug: debug, l: log.New(os.Stderr, "", log.LstdFlags)}
}

func (l *Logger) Debugf(format string, v ...interface{}) {
	if l == nil || !l.debug {
		return
	}
	l.l.Printf("[DEBUG] "+format, v...)
}

func (l *Logger) Infof(format string, v ...interface{}) {
	if l == nil {
		return
	}
	l.l.Printf(format, v...)
}

func (l *Logger) Warnf(format string, v ...interface{}) {
	if l == nil {
		return
	}
	l.l.Printf("[WARN] "+format, v...)
}

func (l *Logger) Errorf(format string, v ...interface{}) {
	if l == nil {
		return
	}
	l.l.Printf("[ERROR] "+format, v...)
}

type disableLogger struct{}

func (d disableLogger) Errorf(string, ...interface{}) {}
func (d disableLogger) Warnf(string, ...interface{})  {}
func (d disableLogger) Debugf(string, ...interface{}) {}
