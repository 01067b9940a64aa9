package log

import (
	"os"

	"github.com/sirupsen/logrus"
)

type logrusLogger struct {
	log *logrus.Logger
}

func newLogrusLogger(cfg *LoggerConfig) *logrusLogger {
	l := logrus.New()
	l.SetOutput(os.Stdout)
	l.SetReportCaller(true)
	l.SetFormatter(&formatter{pattern: cfg.Pattern, time: cfg.Time})
	if level, err := logrus.ParseLevel(cfg.Level); err == nil {
		l.SetLevel(level)
	} else {
		l.SetLevel(logrus.InfoLevel)
	}
	return &logrusLogger{log: l}
}

func (l *logrusLogger) Print(args ...interface{}) {
	l.log.Print(args...)
}

func (l *logrusLogger) Printf(format string, args ...interface{}) {
	l.log.Printf(format, args...)
}

func (l *logrusLogger) Trace(args ...interface{}) {
	l.log.Trace(args...)
}

func (l *logrusLogger) Tracef(format string, args ...interface{}) {
	l.log.Tracef(format, args...)
}

func (l *logrusLogger) Debug(args ...interface{}) {
	l.log.Debug(args...)
}

func (l *logrusLogger) Debugf(format string, args ...interface{}) {
	l.log.Debugf(format, args...)
}

func (l *logrusLogger) Info(args ...interface{}) {
	l.log.Info(args...)
}

func (l *logrusLogger) Infof(format string, args ...interface{}) {
	l.log.Infof(format, args...)
}

func (l *logrusLogger) Warn(args ...interface{}) {
	l.log.Warn(args...)
}

func (l *logrusLogger) Warnf(format string, args ...interface{}) {
	l.log.Warnf(format, args...)
}

func (l *logrusLogger) Error(args ...interface{}) {
	l.log.Error(args...)
}

func (l *logrusLogger) Errorf(format string, args ...interface{}) {
	l.log.Errorf(format, args...)
}

func (l *logrusLogger) WithField(field string, value interface{}) Logger {
	return &logrusEntry{entry: l.log.WithField(field, value)}
}

func (l *logrusLogger) WithFields(fields map[string]interface{}) Logger {
	return &logrusEntry{entry: l.log.WithFields(fields)}
}

func (l *logrusLogger) WithError(err error) Logger {
	return &logrusEntry{entry: l.log.WithError(err)}
}

func (l *logrusLogger) IsTraceEnabled() bool {
	return l.log.IsLevelEnabled(logrus.TraceLevel)
}

func (l *logrusLogger) IsDebugEnabled() bool {
	return l.log.IsLevelEnabled(logrus.DebugLevel)
}

// logrusEntry adapts a logrus.Entry returned by WithField/WithFields so
// chained calls keep the Logger interface.
type logrusEntry struct {
	entry *logrus.Entry
}

func (e *logrusEntry) Print(args ...interface{})                 { e.entry.Print(args...) }
func (e *logrusEntry) Printf(format string, args ...interface{}) { e.entry.Printf(format, args...) }
func (e *logrusEntry) Trace(args ...interface{})                 { e.entry.Trace(args...) }
func (e *logrusEntry) Tracef(format string, args ...interface{}) { e.entry.Tracef(format, args...) }
func (e *logrusEntry) Debug(args ...interface{})                 { e.entry.Debug(args...) }
func (e *logrusEntry) Debugf(format string, args ...interface{}) { e.entry.Debugf(format, args...) }
func (e *logrusEntry) Info(args ...interface{})                  { e.entry.Info(args...) }
func (e *logrusEntry) Infof(format string, args ...interface{})  { e.entry.Infof(format, args...) }
func (e *logrusEntry) Warn(args ...interface{})                  { e.entry.Warn(args...) }
func (e *logrusEntry) Warnf(format string, args ...interface{})  { e.entry.Warnf(format, args...) }
func (e *logrusEntry) Error(args ...interface{})                 { e.entry.Error(args...) }
func (e *logrusEntry) Errorf(format string, args ...interface{}) { e.entry.Errorf(format, args...) }

func (e *logrusEntry) WithField(field string, value interface{}) Logger {
	return &logrusEntry{entry: e.entry.WithField(field, value)}
}

func (e *logrusEntry) WithFields(fields map[string]interface{}) Logger {
	return &logrusEntry{entry: e.entry.WithFields(fields)}
}

func (e *logrusEntry) WithError(err error) Logger {
	return &logrusEntry{entry: e.entry.WithError(err)}
}

func (e *logrusEntry) IsTraceEnabled() bool {
	return e.entry.Logger.IsLevelEnabled(logrus.TraceLevel)
}

func (e *logrusEntry) IsDebugEnabled() bool {
	return e.entry.Logger.IsLevelEnabled(logrus.DebugLevel)
}
