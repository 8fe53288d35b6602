// Package matcher decides whether a source file uses a named dependency.
//
// Two statement shapes count as a use:
//
//	import <anything> from "<name>"
//	require("<name>")
//
// Either quote character is accepted at each end independently, so
// `from "react'` matches too. That looseness is kept for compatibility and
// should not be extended. The name is always matched literally and must be
// followed directly by the closing quote, so "foo" never matches "foo-bar".
package matcher

import (
	"fmt"
	"os"
	"regexp"
	"unicode/utf8"

	"github.com/harrison/pkgusage/internal/models"
)

const (
	importTemplate  = `import .+ from ("|')%s("|')`
	requireTemplate = `require\(("|')%s("|')\)`
)

// Matcher holds the compiled patterns for one dependency name.
type Matcher struct {
	importRe  *regexp.Regexp
	requireRe *regexp.Regexp
}

// New compiles the import and require patterns for dependency.
// An empty name is an invalid invocation; any other string is taken literally.
func New(dependency string) (*Matcher, error) {
	if dependency == "" {
		return nil, models.NewUsageError(models.KindInvalidInvocation, "", fmt.Errorf("dependency name must not be empty"))
	}

	quoted := regexp.QuoteMeta(dependency)

	importRe, err := regexp.Compile(fmt.Sprintf(importTemplate, quoted))
	if err != nil {
		return nil, fmt.Errorf("failed to compile import pattern: %w", err)
	}
	requireRe, err := regexp.Compile(fmt.Sprintf(requireTemplate, quoted))
	if err != nil {
		return nil, fmt.Errorf("failed to compile require pattern: %w", err)
	}

	return &Matcher{
		importRe:  importRe,
		requireRe: requireRe,
	}, nil
}

// Matches reports whether content contains a static import or a require call
// naming the dependency.
func (m *Matcher) Matches(content string) bool {
	return m.MatchesImport(content) || m.MatchesRequire(content)
}

// MatchesImport reports whether content contains `import ... from "<name>"`.
func (m *Matcher) MatchesImport(content string) bool {
	return m.importRe.MatchString(content)
}

// MatchesRequire reports whether content contains `require("<name>")`.
func (m *Matcher) MatchesRequire(content string) bool {
	return m.requireRe.MatchString(content)
}

// MatchFile reads path and reports whether it uses the dependency.
// A file that cannot be read, or is not valid UTF-8, yields a FileUnreadable error.
func (m *Matcher) MatchFile(path string) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return false, models.NewUsageError(models.KindFileUnreadable, path, err)
	}
	if !utf8.Valid(data) {
		return false, models.NewUsageError(models.KindFileUnreadable, path, models.ErrNotText)
	}
	return m.Matches(string(data)), nil
}
