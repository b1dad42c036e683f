package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Fields are structured key/values attached to a log line.
type Fields = logrus.Fields

type Logger struct {
	mu       sync.Mutex
	logs     []string
	logIndex int
	maxLogs  int
	crashDir string
	base     *logrus.Logger
	file     *lumberjack.Logger
}

// Options configures the logger built by InitLogger or New.
type Options struct {
	Level    logrus.Level
	JSON     bool
	File     string
	CrashDir string
	// Output defaults to stdout.
	Output io.Writer
}

var instance *Logger
var once sync.Once

// Intializes static logger (records last 10 logs)
func InitLogger(opts Options) {
	once.Do(func() {
		instance = New(opts)
	})
}

// Singleton method to make sure theres only one instance of logger.
// Falls back to an info level stdout logger when InitLogger was never called.
func GetLogger() *Logger {
	InitLogger(Options{Level: logrus.InfoLevel})
	return instance
}

// New builds a standalone logger. Most code should use GetLogger.
func New(opts Options) *Logger {
	base := logrus.New()
	base.SetLevel(opts.Level)

	if opts.JSON {
		base.SetFormatter(&logrus.JSONFormatter{TimestampFormat: "2006-01-02 15:04:05"})
	} else {
		base.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, TimestampFormat: "2006-01-02 15:04:05"})
	}

	out := opts.Output
	if out == nil {
		out = os.Stdout
	}

	l := &Logger{
		logs:     make([]string, 10),
		maxLogs:  10,
		crashDir: opts.CrashDir,
		base:     base,
	}
	if l.crashDir == "" {
		l.crashDir = filepath.Join("logs", "crash")
	}

	if opts.File != "" {
		l.file = &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    10, // MB
			MaxBackups: 5,
			MaxAge:     30, // days
			Compress:   true,
		}
		out = io.MultiWriter(out, l.file)
	}
	base.SetOutput(out)
	base.AddHook(&recentLogsHook{logger: l})

	return l
}

// Log something at level with optional structured fields
func (l *Logger) Log(level logrus.Level, message string, fields ...Fields) {
	entry := logrus.NewEntry(l.base)
	for _, f := range fields {
		entry = entry.WithFields(f)
	}
	entry.Log(level, message)
}

func (l *Logger) Info(message string, fields ...Fields) {
	l.Log(logrus.InfoLevel, message, fields...)
}

func (l *Logger) Debug(message string, fields ...Fields) {
	l.Log(logrus.DebugLevel, message, fields...)
}

func (l *Logger) Warn(message string, fields ...Fields) {
	l.Log(logrus.WarnLevel, message, fields...)
}

func (l *Logger) Error(message string, fields ...Fields) {
	l.Log(logrus.ErrorLevel, message, fields...)
}

// Close flushes the rotating log file, if one is open.
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}

func (l *Logger) remember(message string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.logs[l.logIndex] = message
	l.logIndex = (l.logIndex + 1) % l.maxLogs
}

// Global recovery system. Writes a crash file and re-panics so the process
// still exits with the original stack.
func (l *Logger) RecoverAndLogPanic() {
	if r := recover(); r != nil {
		l.WriteCrashFile(r)
		panic(r)
	}
}

// Write all logs to file from the array
func (l *Logger) WriteCrashFile(r any) string {
	recentLogs := l.GetRecentLogs()

	if err := os.MkdirAll(l.crashDir, os.ModePerm); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create log directory: %v\n", err)
		return ""
	}

	timestamp := time.Now().Format("20060102-150405")
	crashFile := filepath.Join(l.crashDir, fmt.Sprintf("crash-%s.log", timestamp))
	file, err := os.Create(crashFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create crash file: %v\n", err)
		return ""
	}
	defer file.Close()

	var b strings.Builder
	b.WriteString("==== Crash Report ====\n")
	b.WriteString(fmt.Sprintf("Time: %s\n", time.Now().Format("2006-01-02 15:04:05")))
	b.WriteString(fmt.Sprintf("Panic: %v\n\n", r))
	b.WriteString(fmt.Sprintf("==== Last %d Logs ====\n", l.maxLogs))
	for _, log := range recentLogs {
		b.WriteString(log + "\n")
	}
	file.WriteString(b.String())

	return crashFile
}

// Get the recent logs stored in the array, oldest first
func (l *Logger) GetRecentLogs() []string {
	l.mu.Lock()
	defer l.mu.Unlock()

	var recentLogs []string
	for i := 0; i < l.maxLogs; i++ {
		index := (l.logIndex + i) % l.maxLogs
		if l.logs[index] != "" {
			recentLogs = append(recentLogs, l.logs[index])
		}
	}
	return recentLogs
}

// recentLogsHook copies every emitted entry into the crash report buffer.
type recentLogsHook struct {
	logger *Logger
}

func (h *recentLogsHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (h *recentLogsHook) Fire(entry *logrus.Entry) error {
	h.logger.remember(formatEntry(entry))
	return nil
}

// formatEntry renders an entry in the 2006-01-02 15:04:05 format with its fields sorted.
func formatEntry(entry *logrus.Entry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] [%s] %s", entry.Time.Format("2006-01-02 15:04:05"),
		strings.ToUpper(entry.Level.String()), entry.Message)

	keys := make([]string, 0, len(entry.Data))
	for key := range entry.Data {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		fmt.Fprintf(&b, " %s=%v", key, entry.Data[key])
	}
	return b.String()
}
