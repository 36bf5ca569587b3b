package ui

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

type Logger struct {
	Debug bool
	l     *logrus.Logger
}

func NewLogger(debug bool) *Logger {
	return NewLoggerTo(os.Stderr, debug)
}

func NewLoggerTo(w io.Writer, debug bool) *Logger {
	l := logrus.New()
	l.SetOutput(w)
	l.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp:       true,
		DisableLevelTruncation: true,
		PadLevelText:           true,
	})

	l.SetLevel(logrus.InfoLevel)
	if debug {
		l.SetLevel(logrus.DebugLevel)
	}

	return &Logger{Debug: debug, l: l}
}

// AddFileOutput mirrors every entry into path, appending.
func (l *Logger) AddFileOutput(path string) (io.Closer, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		return nil, err
	}

	l.l.SetOutput(io.MultiWriter(l.l.Out, f))
	return f, nil
}

func (l *Logger) WithField(key string, value any) *logrus.Entry {
	return l.l.WithField(key, value)
}

func (l *Logger) Debugf(format string, args ...any) {
	l.l.Debugf(trimNL(format), args...)
}

func (l *Logger) Infof(format string, args ...any) {
	l.l.Infof(trimNL(format), args...)
}

func (l *Logger) Warnf(format string, args ...any) {
	l.l.Warnf(trimNL(format), args...)
}

func (l *Logger) Errorf(format string, args ...any) {
	l.l.Errorf(trimNL(format), args...)
}

// logrus terminates entries itself.
func trimNL(format string) string {
	for len(format) > 0 && format[len(format)-1] == '\n' {
		format = format[:len(format)-1]
	}
	return format
}
