// Package rlog provides the engine's single structured-logging injection
// point (§4.7). Every package that logs a diagnostic — a table insert, a
// failed query compilation, a swallowed per-record evaluation error — goes through
// rlog.Logger() rather than holding its own logger, so a host application
// can redirect or silence all of it with one call to SetLogger.
package rlog

import "github.com/sirupsen/logrus"

var logger logrus.FieldLogger = logrus.StandardLogger()

// SetLogger redirects every log line the engine emits to logger. Passing
// nil restores the default (logrus.StandardLogger()).
func SetLogger(l logrus.FieldLogger) {
	if l == nil {
		logger = logrus.StandardLogger()
		return
	}
	logger = l
}

// Logger returns the currently configured logger.
func Logger() logrus.FieldLogger { return logger }
