// Package logging wires one logrus logger for every storage component to
// log through, replacing the fmt.Printf debug lines the reference code
// scattered across the buffer pool, WAL, and checkpoint manager.
package logging

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Log is the process-wide logger. Storage components log through a
// *logrus.Entry obtained from Component rather than using this
// package-level var directly.
var Log = newDefault()

func newDefault() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetLevel(logrus.InfoLevel)
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	return l
}

// Component returns a logger scoped to one storage component, e.g.
// logging.Component("bufferpool").
func Component(name string) *logrus.Entry {
	return Log.WithField("component", name)
}

// Discard returns a logger that drops everything, for use in tests that
// don't want component output on stderr.
func Discard() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l.WithField("component", "discard")
}
