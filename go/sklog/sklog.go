// Package sklog defines the logging functions (e.g. Info, Errorf, etc.)
// used across this repo. By default everything is written to stderr.
package sklog

import (
	"os"

	logger "github.com/jcgregorio/logger"
)

// Severity identifies one of the supported log levels.
type Severity int

const (
	DEBUG Severity = iota
	INFO
	WARNING
	ERROR
	FATAL
)

// Logger is the interface all logging backends must implement. An empty
// format means the args should be handled as fmt.Sprint would.
type Logger interface {
	Log(severity Severity, format string, args ...interface{})
}

var impl Logger

// WE MUST initialize the logger here; otherwise there's a very good chance
// of getting a nil pointer panic on the first log line.
func init() {
	impl = NewStdLogger(os.Stderr)
}

// SetLogger replaces the logging backend. Only intended for tests.
func SetLogger(l Logger) {
	impl = l
}

// stdLogger writes to a SyncWriter, such as os.Stdout or os.Stderr.
type stdLogger struct {
	logger *logger.Logger
}

// NewStdLogger returns a Logger that writes to the given SyncWriter.
func NewStdLogger(dst logger.SyncWriter) Logger {
	return &stdLogger{
		logger: logger.NewFromOptions(&logger.Options{
			SyncWriter:   dst,
			DepthDelta:   3,
			IncludeDebug: true,
		}),
	}
}

// Log implements Logger.
func (s *stdLogger) Log(severity Severity, format string, args ...interface{}) {
	switch severity {
	case DEBUG:
		if format == "" {
			s.logger.Debug(args...)
		} else {
			s.logger.Debugf(format, args...)
		}
	case INFO:
		if format == "" {
			s.logger.Info(args...)
		} else {
			s.logger.Infof(format, args...)
		}
	case WARNING:
		if format == "" {
			s.logger.Warning(args...)
		} else {
			s.logger.Warningf(format, args...)
		}
	case ERROR:
		if format == "" {
			s.logger.Error(args...)
		} else {
			s.logger.Errorf(format, args...)
		}
	case FATAL:
		if format == "" {
			s.logger.Fatal(args...)
		} else {
			s.logger.Fatalf(format, args...)
		}
	default:
		s.logger.Errorf(format, args...)
	}
}

// Functions to log at various levels. Debug, Info, Warning, Error and Fatal
// use fmt.Sprint to format the arguments; functions ending in f use
// fmt.Sprintf. The Fatal variants exit the program after logging.

func Debug(msg ...interface{}) {
	impl.Log(DEBUG, "", msg...)
}

func Debugf(format string, v ...interface{}) {
	impl.Log(DEBUG, format, v...)
}

func Info(msg ...interface{}) {
	impl.Log(INFO, "", msg...)
}

func Infof(format string, v ...interface{}) {
	impl.Log(INFO, format, v...)
}

func Warning(msg ...interface{}) {
	impl.Log(WARNING, "", msg...)
}

func Warningf(format string, v ...interface{}) {
	impl.Log(WARNING, format, v...)
}

func Error(msg ...interface{}) {
	impl.Log(ERROR, "", msg...)
}

func Errorf(format string, v ...interface{}) {
	impl.Log(ERROR, format, v...)
}

func Fatal(msg ...interface{}) {
	impl.Log(FATAL, "", msg...)
}

func Fatalf(format string, v ...interface{}) {
	impl.Log(FATAL, format, v...)
}
