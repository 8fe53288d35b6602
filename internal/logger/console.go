// Package logger provides leveled console logging for pkgusage.
//
// Log output is diagnostic only and goes to stderr, leaving stdout to the
// report itself. Implementations are safe for concurrent use.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/harrison/pkgusage/internal/models"
)

// level orders messages by severity; higher is more severe.
type level int

const (
	levelTrace level = iota
	levelDebug
	levelInfo
	levelWarn
	levelError
)

// ValidLevels lists the accepted log level names in increasing severity.
var ValidLevels = []string{"trace", "debug", "info", "warn", "error"}

// levelTags are the upper-case tags written between brackets, indexed by level.
var levelTags = [...]string{"TRACE", "DEBUG", "INFO", "WARN", "ERROR"}

// levelColors tint the tag when the destination is a terminal.
var levelColors = [...]*color.Color{
	color.New(color.FgHiBlack),
	color.New(color.FgCyan),
	color.New(color.FgBlue),
	color.New(color.FgYellow),
	color.New(color.FgRed),
}

// ConsoleLogger writes "[HH:MM:SS] [LEVEL] message" lines to a writer.
// Messages below the configured level are dropped. The level tag is colored
// when the writer is os.Stdout or os.Stderr and color is not disabled.
type ConsoleLogger struct {
	writer      io.Writer
	minLevel    level
	mutex       sync.Mutex
	colorOutput bool
}

// NewConsoleLogger creates a ConsoleLogger that writes to the provided io.Writer.
// If writer is nil, messages are silently discarded.
// An empty or unknown logLevel defaults to "info".
func NewConsoleLogger(writer io.Writer, logLevel string) *ConsoleLogger {
	minLevel, ok := parseLevel(logLevel)
	if !ok {
		minLevel = levelInfo
	}
	return &ConsoleLogger{
		writer:      writer,
		minLevel:    minLevel,
		colorOutput: writer != nil && (writer == os.Stdout || writer == os.Stderr) && !color.NoColor,
	}
}

// parseLevel maps a case-insensitive level name to its level.
func parseLevel(name string) (level, bool) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	for i, l := range ValidLevels {
		if l == normalized {
			return level(i), true
		}
	}
	return levelInfo, false
}

// IsValidLevel reports whether level names a known log level (case-insensitive).
func IsValidLevel(name string) bool {
	_, ok := parseLevel(name)
	return ok
}

// Level returns the normalized minimum level.
func (cl *ConsoleLogger) Level() string {
	return ValidLevels[cl.minLevel]
}

// LogTrace logs a trace-level message (most verbose).
// Format: "[HH:MM:SS] [TRACE] <message>"
func (cl *ConsoleLogger) LogTrace(message string) {
	cl.write(levelTrace, message)
}

// LogDebug logs a debug-level message.
// Format: "[HH:MM:SS] [DEBUG] <message>"
func (cl *ConsoleLogger) LogDebug(message string) {
	cl.write(levelDebug, message)
}

// LogInfo logs an info-level message.
// Format: "[HH:MM:SS] [INFO] <message>"
func (cl *ConsoleLogger) LogInfo(message string) {
	cl.write(levelInfo, message)
}

// LogWarn logs a warning-level message.
// Format: "[HH:MM:SS] [WARN] <message>"
func (cl *ConsoleLogger) LogWarn(message string) {
	cl.write(levelWarn, message)
}

// LogError logs an error-level message.
// Format: "[HH:MM:SS] [ERROR] <message>"
func (cl *ConsoleLogger) LogError(message string) {
	cl.write(levelError, message)
}

// write emits one line when lvl is at or above the configured minimum.
func (cl *ConsoleLogger) write(lvl level, message string) {
	if cl.writer == nil || lvl < cl.minLevel {
		return
	}

	tag := levelTags[lvl]
	if cl.colorOutput {
		tag = levelColors[lvl].Sprint(tag)
	}
	line := fmt.Sprintf("[%s] [%s] %s\n", timestamp(), tag, message)

	cl.mutex.Lock()
	defer cl.mutex.Unlock()
	io.WriteString(cl.writer, line)
}

// LogScanStart logs the beginning of a lookup at INFO level.
func (cl *ConsoleLogger) LogScanStart(dependency, root string) {
	cl.LogInfo(fmt.Sprintf("Scanning %s for uses of %s", root, dependency))
}

// LogScanComplete logs candidate and match totals at INFO level.
// Format: "Matched N of M candidate files (S skipped) in 12ms"
func (cl *ConsoleLogger) LogScanComplete(report *models.Report, candidates int, duration time.Duration) {
	if report == nil {
		return
	}
	msg := fmt.Sprintf("Matched %d of %d candidate files", report.Count, candidates)
	if report.HasSkipped() {
		msg += fmt.Sprintf(" (%d skipped)", len(report.Skipped))
	}
	msg += " in " + formatDuration(duration)
	cl.LogInfo(msg)
}

// timestamp returns the current time formatted as "15:04:05" (HH:MM:SS).
func timestamp() string {
	return time.Now().Format("15:04:05")
}

// formatDuration renders short durations in ms and longer ones in seconds.
func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return fmt.Sprintf("%.1fs", d.Seconds())
}
