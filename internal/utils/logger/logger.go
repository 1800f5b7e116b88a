package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/fatih/color"
)

// Logger is a small colored console logger scoped to one component.
type Logger struct {
	component string
}

var levelEmoji = map[string]string{
	"INFO":    "ℹ️ ",
	"SUCCESS": "✅ ",
	"WARN":    "⚠️ ",
	"ERROR":   "❌ ",
	"DEBUG":   "🔍 ",
	"FATAL":   "💀 ",
}

func New(component string) *Logger {
	return &Logger{component: component}
}

func (l *Logger) format(level, msg string) string {
	_, file, line, _ := runtime.Caller(2)
	return fmt.Sprintf("%s | %s | %s | %s:%d | %s | %s",
		levelEmoji[level],
		time.Now().Format("2006-01-02 15:04:05"),
		level,
		filepath.Base(file),
		line,
		l.component,
		msg,
	)
}

func (l *Logger) Info(msg string, args ...interface{}) {
	color.Cyan(l.format("INFO", fmt.Sprintf(msg, args...)))
}

func (l *Logger) Success(msg string, args ...interface{}) {
	color.Green(l.format("SUCCESS", fmt.Sprintf(msg, args...)))
}

func (l *Logger) Warn(msg string, args ...interface{}) {
	color.Yellow(l.format("WARN", fmt.Sprintf(msg, args...)))
}

// Error logs the message and returns it wrapped around err so callers
// can log and propagate in one statement.
func (l *Logger) Error(msg string, err error, args ...interface{}) error {
	args = append(args, err)
	color.Red(l.format("ERROR", fmt.Sprintf(msg, args...)))
	return fmt.Errorf("%s: %w", msg, err)
}

func (l *Logger) Debug(msg string, args ...interface{}) {
	color.Magenta(l.format("DEBUG", fmt.Sprintf(msg, args...)))
}

func (l *Logger) Fatal(msg string, err error) {
	color.Red(l.format("FATAL", fmt.Sprintf("%s: %v", msg, err)))
	os.Exit(1)
}
