package usage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/harrison/pkgusage/internal/models"
	"github.com/harrison/pkgusage/internal/walker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeFiles creates each relative path under root with the given content.
func writeFiles(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
}

func basenames(paths []string) []string {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		out = append(out, filepath.Base(p))
	}
	return out
}

type mockLogger struct {
	debugs    []string
	infos     []string
	warns     []string
	started   bool
	completed *models.Report
}

func (m *mockLogger) LogDebug(message string) { m.debugs = append(m.debugs, message) }
func (m *mockLogger) LogInfo(message string)  { m.infos = append(m.infos, message) }
func (m *mockLogger) LogWarn(message string)  { m.warns = append(m.warns, message) }
func (m *mockLogger) LogScanStart(dependency, root string) {
	m.started = true
}
func (m *mockLogger) LogScanComplete(report *models.Report, candidates int, duration time.Duration) {
	m.completed = report
}

func TestFindReactScenario(t *testing.T) {
	tmpDir := t.TempDir()
	writeFiles(t, tmpDir, map[string]string{
		"a.ts":              `import React from "react"`,
		"b.js":              `const x = require('react')`,
		"c.ts":              `export const c = 1`,
		"node_modules/d.js": `require("react")`,
	})

	for _, workers := range []int{1, 4} {
		t.Run(fmt.Sprintf("workers=%d", workers), func(t *testing.T) {
			finder := NewFinder(walker.New(walker.Options{}), Options{Workers: workers})

			report, err := finder.Find(context.Background(), tmpDir, "react")
			require.NoError(t, err)

			assert.Equal(t, []string{filepath.Join(tmpDir, "a.ts"), filepath.Join(tmpDir, "b.js")}, report.Files)
			assert.Equal(t, 2, report.Count)
			assert.Equal(t, "react", report.Dependency)
			assert.Equal(t, tmpDir, report.Root)
			assert.Empty(t, report.Skipped)
		})
	}
}

func TestFindPrefixNameDoesNotMatch(t *testing.T) {
	tmpDir := t.TempDir()
	writeFiles(t, tmpDir, map[string]string{
		"index.js": `const fb = require("foo-bar")`,
	})

	report, err := NewFinder(walker.New(walker.Options{}), Options{}).Find(context.Background(), tmpDir, "foo")
	require.NoError(t, err)

	assert.Empty(t, report.Files)
	assert.NotNil(t, report.Files)
	assert.Equal(t, 0, report.Count)
}

func TestFindFixtureTree(t *testing.T) {
	tmpDir := t.TempDir()
	writeFiles(t, tmpDir, map[string]string{
		"src/App.ts":                 "import * as React from 'react'\nexport default App\n",
		"src/components/Button.js":   "const React = require(\"react\")\n",
		"src/components/Icon.ts":     "import { svg } from \"./svg\"\n",
		"src/util.js":                "module.exports = {}\n",
		"src/legacy.ts":              "import x from \"react-dom\"\n",
		"build/bundle.js":            "require('react')\n",
		"packages/node_modules/r.ts": "import r from 'react'\n",
		"docs/README.md":             "import React from \"react\"\n",
		"scripts/tool.jsx":           "import React from \"react\"\n",
	})

	report, err := NewFinder(walker.New(walker.Options{}), Options{}).Find(context.Background(), tmpDir, "react")
	require.NoError(t, err)

	assert.Equal(t, []string{"App.ts", "Button.js"}, basenames(report.Files))
	assert.Equal(t, len(report.Files), report.Count)
}

func TestFindParallelPreservesWalkOrder(t *testing.T) {
	tmpDir := t.TempDir()
	files := make(map[string]string)
	for i := 0; i < 60; i++ {
		content := "export {}\n"
		if i%3 == 0 {
			content = fmt.Sprintf("import m%d from \"lodash\"\n", i)
		}
		files[fmt.Sprintf("dir%02d/f%02d.js", i%7, i)] = content
	}
	writeFiles(t, tmpDir, files)

	w := walker.New(walker.Options{})
	sequential, err := NewFinder(w, Options{Workers: 1}).Find(context.Background(), tmpDir, "lodash")
	require.NoError(t, err)
	parallel, err := NewFinder(w, Options{Workers: 8}).Find(context.Background(), tmpDir, "lodash")
	require.NoError(t, err)

	assert.Equal(t, 20, sequential.Count)
	assert.Equal(t, sequential.Files, parallel.Files)
}

func TestFindErrors(t *testing.T) {
	t.Run("empty dependency name", func(t *testing.T) {
		_, err := NewFinder(walker.New(walker.Options{}), Options{}).Find(context.Background(), t.TempDir(), "")
		require.Error(t, err)
		assert.True(t, errors.Is(err, models.ErrInvalidInvocation))
	})

	t.Run("missing root", func(t *testing.T) {
		_, err := NewFinder(walker.New(walker.Options{}), Options{}).Find(context.Background(), filepath.Join(t.TempDir(), "nope"), "react")
		require.Error(t, err)
		assert.True(t, errors.Is(err, models.ErrDirectoryUnreadable))
	})

	t.Run("cancelled context", func(t *testing.T) {
		tmpDir := t.TempDir()
		writeFiles(t, tmpDir, map[string]string{"a.js": "", "b.js": ""})
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := NewFinder(walker.New(walker.Options{}), Options{}).Find(ctx, tmpDir, "react")
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestFindUnreadableFile(t *testing.T) {
	tmpDir := t.TempDir()
	writeFiles(t, tmpDir, map[string]string{
		"a.ts": `import React from "react"`,
		"z.js": `require("react")`,
	})
	// Invalid UTF-8 is unreadable as text regardless of permissions.
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "m.js"), []byte{0xc3, 0x28, 0xff}, 0644))

	for _, workers := range []int{1, 3} {
		t.Run(fmt.Sprintf("abort workers=%d", workers), func(t *testing.T) {
			report, err := NewFinder(walker.New(walker.Options{}), Options{Workers: workers}).Find(context.Background(), tmpDir, "react")
			require.Error(t, err)
			assert.Nil(t, report)
			assert.True(t, errors.Is(err, models.ErrFileUnreadable))
		})

		t.Run(fmt.Sprintf("skip workers=%d", workers), func(t *testing.T) {
			logger := &mockLogger{}
			finder := NewFinder(walker.New(walker.Options{Policy: models.PolicySkip}), Options{
				Workers: workers,
				Policy:  models.PolicySkip,
				Logger:  logger,
			})

			report, err := finder.Find(context.Background(), tmpDir, "react")
			require.NoError(t, err)

			assert.Equal(t, []string{"a.ts", "z.js"}, basenames(report.Files))
			require.Len(t, report.Skipped, 1)
			assert.Equal(t, filepath.Join(tmpDir, "m.js"), report.Skipped[0].Path)
			assert.Equal(t, models.KindFileUnreadable.String(), report.Skipped[0].Kind)
			assert.Equal(t, models.ErrNotText.Error(), report.Skipped[0].Reason)
			assert.Len(t, logger.warns, 1)
			assert.True(t, logger.started)
			assert.Same(t, report, logger.completed)
		})
	}
}
