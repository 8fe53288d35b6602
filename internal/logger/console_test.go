package logger

import (
	"bytes"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/harrison/pkgusage/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestNewConsoleLogger(t *testing.T) {
	t.Run("with valid writer", func(t *testing.T) {
		buf := &bytes.Buffer{}
		logger := NewConsoleLogger(buf, "debug")

		assert.NotNil(t, logger)
		assert.Equal(t, "debug", logger.Level())
		assert.False(t, logger.colorOutput, "buffers never get color")
	})

	t.Run("invalid level falls back to info", func(t *testing.T) {
		assert.Equal(t, "info", NewConsoleLogger(nil, "verbose").Level())
		assert.Equal(t, "info", NewConsoleLogger(nil, "").Level())
		assert.Equal(t, "warn", NewConsoleLogger(nil, " WARN ").Level())
	})

	t.Run("nil writer discards", func(t *testing.T) {
		logger := NewConsoleLogger(nil, "trace")
		assert.NotPanics(t, func() { logger.LogError("dropped") })
	})
}

func TestLevelFiltering(t *testing.T) {
	tests := []struct {
		level   string
		visible []string
		hidden  []string
	}{
		{level: "trace", visible: []string{"TRACE", "DEBUG", "INFO", "WARN", "ERROR"}},
		{level: "info", visible: []string{"INFO", "WARN", "ERROR"}, hidden: []string{"TRACE", "DEBUG"}},
		{level: "warn", visible: []string{"WARN", "ERROR"}, hidden: []string{"TRACE", "DEBUG", "INFO"}},
		{level: "error", visible: []string{"ERROR"}, hidden: []string{"TRACE", "DEBUG", "INFO", "WARN"}},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			buf := &bytes.Buffer{}
			logger := NewConsoleLogger(buf, tt.level)

			logger.LogTrace("t")
			logger.LogDebug("d")
			logger.LogInfo("i")
			logger.LogWarn("w")
			logger.LogError("e")

			out := buf.String()
			for _, lvl := range tt.visible {
				assert.Contains(t, out, "["+lvl+"]")
			}
			for _, lvl := range tt.hidden {
				assert.NotContains(t, out, "["+lvl+"]")
			}
		})
	}
}

func TestLogFormat(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := NewConsoleLogger(buf, "info")

	logger.LogWarn("skipping unreadable directory /x")

	line := buf.String()
	assert.Regexp(t, `^\[\d{2}:\d{2}:\d{2}\] \[WARN\] skipping unreadable directory /x\n$`, line)
}

func TestLogScanMessages(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := NewConsoleLogger(buf, "info")

	logger.LogScanStart("react", "/repo")
	report := models.NewReport("react", "/repo", []string{"a.ts", "b.js"}, []models.SkippedPath{
		{Path: "/repo/locked", Kind: "directory unreadable"},
	})
	logger.LogScanComplete(report, 5, 12*time.Millisecond)
	logger.LogScanComplete(nil, 0, 0)

	out := buf.String()
	assert.Contains(t, out, "Scanning /repo for uses of react")
	assert.Contains(t, out, "Matched 2 of 5 candidate files (1 skipped) in 12ms")
	assert.Equal(t, 2, strings.Count(out, "\n"))
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "0ms", formatDuration(0))
	assert.Equal(t, "250ms", formatDuration(250*time.Millisecond))
	assert.Equal(t, "1.5s", formatDuration(1500*time.Millisecond))
}

func TestConcurrentLogging(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := NewConsoleLogger(buf, "info")

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			logger.LogInfo("message")
		}()
	}
	wg.Wait()

	assert.Equal(t, 20, strings.Count(buf.String(), "[INFO] message\n"))
}

func TestIsValidLevel(t *testing.T) {
	for _, l := range ValidLevels {
		assert.True(t, IsValidLevel(l))
	}
	assert.True(t, IsValidLevel("DEBUG"))
	assert.False(t, IsValidLevel("verbose"))
	assert.False(t, IsValidLevel(""))
}

func TestParseLevel(t *testing.T) {
	for i, name := range ValidLevels {
		lvl, ok := parseLevel(name)
		assert.True(t, ok)
		assert.Equal(t, level(i), lvl)
		assert.Equal(t, strings.ToUpper(name), levelTags[lvl])
	}

	lvl, ok := parseLevel("verbose")
	assert.False(t, ok)
	assert.Equal(t, levelInfo, lvl)
}
