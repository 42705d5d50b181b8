package logger

import (
	"io"
	"os"
	"sync"

	"github.com/baditaflorin/l"
	"github.com/cockroachdb/errors"

	"github.com/baditaflorin/go_ish/internal/ports"
)

// StdLogger adapts the l.Logger to the ports.Logger interface.
type StdLogger struct {
	logger l.Logger
	closer io.Closer
}

// textConfig is the default configuration: async text output with source locations.
func textConfig(out io.Writer) l.Config {
	return l.Config{
		Output:      out,
		JsonFormat:  false,
		AsyncWrite:  true,
		BufferSize:  1024 * 1024,      // 1MB buffer
		MaxFileSize: 10 * 1024 * 1024, // 10MB max file size
		MaxBackups:  5,
		AddSource:   true,
		Metrics:     true,
	}
}

// NewStdLogger creates a new logger writing text to stdout.
func NewStdLogger() (ports.Logger, error) {
	return NewCustomStdLogger(textConfig(os.Stdout))
}

// NewCustomStdLogger creates a new standard logger with custom configuration.
func NewCustomStdLogger(config l.Config) (ports.Logger, error) {
	logger, err := l.NewStandardFactory().CreateLogger(config)
	if err != nil {
		return nil, errors.Wrap(err, "creating logger")
	}
	return &StdLogger{logger: logger}, nil
}

// NewFileLogger creates a logger appending to the file at path.
// Closing the logger closes the file.
func NewFileLogger(path string) (ports.Logger, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, errors.Wrapf(err, "opening log file %s", path)
	}
	logger, err := l.NewStandardFactory().CreateLogger(textConfig(f))
	if err != nil {
		_ = f.Close()
		return nil, errors.Wrap(err, "creating logger")
	}
	return &StdLogger{logger: logger, closer: f}, nil
}

var (
	sharedOnce   sync.Once
	sharedLogger ports.Logger
)

// Shared returns a process-wide stdout logger, created on first use.
// Comparators are short-lived, so they share it instead of each owning one.
// If the logger can not be created, messages are discarded.
func Shared() ports.Logger {
	sharedOnce.Do(func() {
		lg, err := NewStdLogger()
		if err != nil {
			sharedLogger = NewNopLogger()
			return
		}
		sharedLogger = lg
	})
	return sharedLogger
}

// Debug logs a debug message.
func (s *StdLogger) Debug(msg string, keysAndValues ...interface{}) {
	s.logger.Debug(msg, keysAndValues...)
}

// Info logs an info message.
func (s *StdLogger) Info(msg string, keysAndValues ...interface{}) {
	s.logger.Info(msg, keysAndValues...)
}

// Warn logs a warning message.
func (s *StdLogger) Warn(msg string, keysAndValues ...interface{}) {
	s.logger.Warn(msg, keysAndValues...)
}

// Error logs an error message.
func (s *StdLogger) Error(msg string, keysAndValues ...interface{}) {
	s.logger.Error(msg, keysAndValues...)
}

// Close flushes the logger and releases its output.
func (s *StdLogger) Close() error {
	err := s.logger.Close()
	if s.closer != nil {
		err = errors.CombineErrors(err, s.closer.Close())
	}
	return err
}

// FromExisting creates a new StdLogger from an existing l.Logger.
// The caller keeps ownership of the underlying logger.
func FromExisting(logger l.Logger) ports.Logger {
	return &StdLogger{logger: logger}
}
