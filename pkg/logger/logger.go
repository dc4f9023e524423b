// Package logger provides the shared logrus setup and a context-carried
// log entry so that every component logs with the same marker field.
package logger

import (
	"context"
	"os"

	"github.com/sirupsen/logrus"
)

type contextKey struct{}

var base = newBase()

func newBase() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stdout)
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	l.SetLevel(logrus.InfoLevel)
	return l
}

// Setup configures the base logger with the given marker and level.
// The marker is attached as a structured field to every entry produced
// by Logger. Unknown levels fall back to info.
func Setup(marker, level string) *logrus.Entry {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	base.SetLevel(lvl)
	return base.WithField("marker", marker)
}

// WithLogger returns a context carrying the given entry.
func WithLogger(ctx context.Context, entry *logrus.Entry) context.Context {
	return context.WithValue(ctx, contextKey{}, entry)
}

// Logger returns the entry carried by ctx, or a plain entry on the base
// logger when the context has none.
func Logger(ctx context.Context) *logrus.Entry {
	if ctx != nil {
		if entry, ok := ctx.Value(contextKey{}).(*logrus.Entry); ok {
			return entry
		}
	}
	return logrus.NewEntry(base)
}
