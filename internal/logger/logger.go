// README: logrus logger construction from config.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"campusride/internal/config"
)

// New builds the service logger. Unknown levels fall back to info.
func New(cfg config.LogConfig, service string) *logrus.Entry {
	return newWithOutput(cfg, service, os.Stdout)
}

func newWithOutput(cfg config.LogConfig, service string, out io.Writer) *logrus.Entry {
	log := logrus.New()
	log.SetOutput(out)

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	if cfg.Format == "text" {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, TimestampFormat: time.RFC3339})
	} else {
		log.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: time.RFC3339,
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime: "timestamp",
				logrus.FieldKeyMsg:  "message",
			},
		})
	}
	return log.WithField("service", service)
}
