// Package logger provides the prefixed loggers shared by training and
// matching components.
package logger

import (
	"io"
	"log"
	"os"
)

// Logger holds several logger instances with different prefixes
type Logger struct {
	Warn *log.Logger
	Info *log.Logger
	Err  *log.Logger
}

// New creates an instance of all needed loggers writing to stderr
func New() *Logger {
	return NewWithWriter(os.Stderr)
}

// NewWithWriter creates loggers writing to w
func NewWithWriter(w io.Writer) *Logger {
	return &Logger{
		Warn: log.New(w, "[ Warn ] ", log.LstdFlags|log.Lshortfile),
		Info: log.New(w, "[ Info ] ", log.LstdFlags|log.Lshortfile),
		Err:  log.New(w, "[ Error ] ", log.LstdFlags|log.Lshortfile),
	}
}

// Discard returns loggers dropping every message
func Discard() *Logger {
	return NewWithWriter(io.Discard)
}

// OrDefault returns l, or a new stderr logger when l is nil
func OrDefault(l *Logger) *Logger {
	if l == nil {
		return New()
	}
	return l
}
