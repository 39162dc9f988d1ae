package logger

import (
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/log"
)

const timeFormat = "06-01-02 15:04:05"

type LogLevel int

const (
	DEBUG LogLevel = iota
	INFO
	WARN
	ERROR
	FATAL
)

func (l LogLevel) String() string {
	switch l {
	case DEBUG:
		return "DEBUG"
	case INFO:
		return "INFO"
	case WARN:
		return "WARN"
	case ERROR:
		return "ERROR"
	case FATAL:
		return "FATAL"
	default:
		return "UNKNOWN"
	}
}

func (l LogLevel) charmLevel() log.Level {
	switch l {
	case DEBUG:
		return log.DebugLevel
	case INFO:
		return log.InfoLevel
	case WARN:
		return log.WarnLevel
	case ERROR:
		return log.ErrorLevel
	default:
		return log.FatalLevel
	}
}

type MultiWriter struct {
	writers []io.Writer
}

func NewMultiWriter(writers ...io.Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

func (mw *MultiWriter) Write(p []byte) (n int, err error) {
	for _, w := range mw.writers {
		if _, err := w.Write(p); err != nil {
			return 0, err
		}
	}
	return len(p), nil
}

func (mw *MultiWriter) Add(writer io.Writer) {
	mw.writers = append(mw.writers, writer)
}

// ColoredLogger keeps one charm logger per level so ERROR and FATAL can be
// routed to a different writer than the rest.
type ColoredLogger struct {
	verbose bool
	mu      sync.RWMutex
	writers map[LogLevel]io.Writer
	loggers map[LogLevel]*log.Logger
}

var globalLogger *ColoredLogger

func init() {
	globalLogger = &ColoredLogger{
		verbose: false,
		writers: make(map[LogLevel]io.Writer),
		loggers: make(map[LogLevel]*log.Logger),
	}

	for level := DEBUG; level <= FATAL; level++ {
		globalLogger.writers[level] = os.Stdout
		globalLogger.loggers[level] = newCharmLogger(os.Stdout)
	}
}

func newCharmLogger(w io.Writer) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      timeFormat,
		Level:           log.DebugLevel,
	})
}

func SetVerbose(verbose bool) {
	globalLogger.mu.Lock()
	defer globalLogger.mu.Unlock()
	globalLogger.verbose = verbose
}

func IsVerbose() bool {
	globalLogger.mu.RLock()
	defer globalLogger.mu.RUnlock()
	return globalLogger.verbose
}

func SetWriterForAll(writer io.Writer) {
	globalLogger.mu.Lock()
	defer globalLogger.mu.Unlock()
	for level := DEBUG; level <= FATAL; level++ {
		globalLogger.writers[level] = writer
		globalLogger.loggers[level] = newCharmLogger(writer)
	}
}

func AddWriter(level LogLevel, writer io.Writer) {
	globalLogger.mu.Lock()
	defer globalLogger.mu.Unlock()

	currentWriter := globalLogger.writers[level]

	if mw, ok := currentWriter.(*MultiWriter); ok {
		mw.Add(writer)
	} else {
		multiWriter := NewMultiWriter(currentWriter, writer)
		globalLogger.writers[level] = multiWriter
		globalLogger.loggers[level] = newCharmLogger(multiWriter)
	}
}

func AddWriterForAll(writer io.Writer) {
	for level := DEBUG; level <= FATAL; level++ {
		AddWriter(level, writer)
	}
}

func (cl *ColoredLogger) log(level LogLevel, format string, args ...interface{}) {
	cl.mu.RLock()
	if level == DEBUG && !cl.verbose {
		cl.mu.RUnlock()
		return
	}

	logger := cl.loggers[level]
	cl.mu.RUnlock()

	logger.Logf(level.charmLevel(), format, args...)

	if level == FATAL {
		os.Exit(1)
	}
}

func Debug(format string, args ...interface{}) {
	globalLogger.log(DEBUG, format, args...)
}

func Info(format string, args ...interface{}) {
	globalLogger.log(INFO, format, args...)
}

func Warn(format string, args ...interface{}) {
	globalLogger.log(WARN, format, args...)
}

func Error(format string, args ...interface{}) {
	globalLogger.log(ERROR, format, args...)
}

func Fatal(format string, args ...interface{}) {
	globalLogger.log(FATAL, format, args...)
}
