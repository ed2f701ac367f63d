// Package logger is the process-wide logger. Call sites use printf-style
// helpers with a bracketed scope prefix, e.g. logger.Info("[Store] hydrated %d agents", n).
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

// Options configures the global logger.
type Options struct {
	// Level is one of debug, info, warn, error.
	Level string
	// Format is "text" or "json".
	Format string
	// OutputPath is "stdout", "stderr" or a file path.
	OutputPath string
}

// NewOptions returns the default logger options.
func NewOptions() *Options {
	return &Options{
		Level:      "info",
		Format:     "text",
		OutputPath: "stderr",
	}
}

var (
	mu   sync.Mutex
	std  = newLogrus()
	file *os.File
)

func newLogrus() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetLevel(logrus.InfoLevel)
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, TimestampFormat: "2006-01-02 15:04:05"})
	return l
}

// InitLog points the global logger at logPath with default level and format.
func InitLog(logPath string) error {
	opts := NewOptions()
	opts.OutputPath = logPath
	return Init(opts)
}

// Init applies opts to the global logger.
func Init(opts *Options) error {
	if opts == nil {
		opts = NewOptions()
	}
	level, err := logrus.ParseLevel(opts.Level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", opts.Level, err)
	}

	mu.Lock()
	defer mu.Unlock()

	out, f, err := openOutput(opts.OutputPath)
	if err != nil {
		return err
	}
	closeFileLocked()
	file = f

	std.SetOutput(out)
	std.SetLevel(level)
	switch strings.ToLower(opts.Format) {
	case "json":
		std.SetFormatter(&logrus.JSONFormatter{TimestampFormat: "2006-01-02 15:04:05"})
	default:
		std.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, TimestampFormat: "2006-01-02 15:04:05"})
	}
	return nil
}

func openOutput(path string) (io.Writer, *os.File, error) {
	switch path {
	case "", "stderr":
		return os.Stderr, nil, nil
	case "stdout":
		return os.Stdout, nil, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file %s: %w", path, err)
	}
	return f, f, nil
}

// SetOutput redirects the global logger, mostly for tests.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	closeFileLocked()
	std.SetOutput(w)
}

// FlushLog syncs and closes the log file, if any.
func FlushLog() {
	mu.Lock()
	defer mu.Unlock()
	if file != nil {
		_ = file.Sync()
	}
	closeFileLocked()
	std.SetOutput(os.Stderr)
}

func closeFileLocked() {
	if file != nil {
		_ = file.Close()
		file = nil
	}
}

func Debug(format string, args ...interface{}) { std.Debugf(format, args...) }

func Info(format string, args ...interface{}) { std.Infof(format, args...) }

func Warn(format string, args ...interface{}) { std.Warnf(format, args...) }

func Error(format string, args ...interface{}) { std.Errorf(format, args...) }

// WithField returns an entry carrying one structured field.
func WithField(key string, value interface{}) *logrus.Entry {
	return std.WithField(key, value)
}
