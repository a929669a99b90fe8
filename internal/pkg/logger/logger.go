// Package logger adapts logrus to the ports.Logger interface.
package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

// LogrusLogger routes structured log entries to stderr via logrus.
type LogrusLogger struct {
	log *logrus.Logger
}

// New creates a LogrusLogger. With verbose enabled the level drops to debug,
// otherwise only warnings and errors are emitted so command output stays
// clean on stdout.
func New(verbose bool) *LogrusLogger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetFormatter(&logrus.TextFormatter{DisableTimestamp: !verbose})
	if verbose {
		l.SetLevel(logrus.DebugLevel)
	} else {
		l.SetLevel(logrus.WarnLevel)
	}
	return &LogrusLogger{log: l}
}

func (l *LogrusLogger) Debug(msg string, fields map[string]interface{}) {
	l.log.WithFields(logrus.Fields(fields)).Debug(msg)
}

func (l *LogrusLogger) Info(msg string, fields map[string]interface{}) {
	l.log.WithFields(logrus.Fields(fields)).Info(msg)
}

func (l *LogrusLogger) Warn(msg string, fields map[string]interface{}) {
	l.log.WithFields(logrus.Fields(fields)).Warn(msg)
}

func (l *LogrusLogger) Error(msg string, err error, fields map[string]interface{}) {
	entry := l.log.WithFields(logrus.Fields(fields))
	if err != nil {
		entry = entry.WithError(err)
	}
	entry.Error(msg)
}
