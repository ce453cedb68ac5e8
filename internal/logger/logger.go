package logger

import (
	"io"

	"github.com/sirupsen/logrus"

	"github.com/segyhp/lending-engine/internal/config"
)

// New builds the application logger from the logging configuration.
func New(cfg config.LoggingConfig, output io.Writer) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(output)

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	l.SetLevel(level)

	if cfg.Format == "text" {
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		l.SetFormatter(new(logrus.JSONFormatter))
	}

	return l
}
