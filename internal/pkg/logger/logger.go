// Package logger configures the process-wide logrus logger.
package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

var log = logrus.New()

// Setup configures output format and level for the given app mode.
// prod logs JSON at info level, everything else logs text at debug level.
func Setup(mode string) {
	log.SetOutput(os.Stdout)
	if mode == "prod" {
		log.SetFormatter(&logrus.JSONFormatter{})
		log.SetLevel(logrus.InfoLevel)
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
		log.SetLevel(logrus.DebugLevel)
	}
}

// L returns the shared logger.
func L() *logrus.Logger {
	return log
}

// With returns an entry carrying a component field.
func With(component string) *logrus.Entry {
	return log.WithField("component", component)
}
