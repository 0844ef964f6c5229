package helpers

import (
	"os"
	"time"

	"github.com/sirupsen/logrus"
)

// NewLogger builds the process-wide logger. Development gets human-readable
// text at debug level; every other environment logs JSON at info level.
func NewLogger(appName, env string) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stdout)

	switch env {
	case "development", "test":
		l.SetLevel(logrus.DebugLevel)
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	default:
		l.SetLevel(logrus.InfoLevel)
		l.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339Nano})
	}

	l.WithFields(logrus.Fields{"app": appName, "env": env}).Info("logger ready")
	return l
}
