// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package ctxt

import (
	"io"
	"sync/atomic"

	"github.com/sirupsen/logrus"
)

// logHolder wraps the logger so it can be stored in an
// atomic.Pointer.
type logHolder struct {
	l   logrus.FieldLogger
	nop bool
}

var logPtr atomic.Pointer[logHolder]

func init() { logPtr.Store(&logHolder{newNopLogger(), true}) }

// newNopLogger creates a logger that discards everything.
func newNopLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	l.SetLevel(logrus.PanicLevel)
	return l
}

// SetLogger sets the logger shared by every texel package.
// By default nothing is logged. Passing nil restores the
// default.
// It is safe for concurrent use.
func SetLogger(l logrus.FieldLogger) {
	if l == nil {
		logPtr.Store(&logHolder{newNopLogger(), true})
		return
	}
	logPtr.Store(&logHolder{l, false})
}

// Log returns the current logger.
// It is safe for concurrent use.
func Log() logrus.FieldLogger { return logPtr.Load().l }

// SetLevel sets the level of the current logger.
// It has no effect on the default logger, nor on loggers
// that are neither a *logrus.Logger nor a *logrus.Entry.
func SetLevel(lvl logrus.Level) {
	h := logPtr.Load()
	if h.nop {
		return
	}
	switch l := h.l.(type) {
	case *logrus.Logger:
		l.SetLevel(lvl)
	case *logrus.Entry:
		l.Logger.SetLevel(lvl)
	}
}
