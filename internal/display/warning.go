package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/harrison/pkgusage/internal/models"
)

// Warning represents a user-facing warning message
type Warning struct {
	Title      string   // Main warning title
	Message    string   // Detailed explanation (optional)
	Files      []string // Related paths (optional)
	Suggestion string   // Action to take (optional)
}

// Display writes the warning to out, in yellow when colorize is set.
func (w Warning) Display(out io.Writer, colorize bool) {
	var b strings.Builder

	if colorize {
		b.WriteString("\x1b[33m")
	}
	b.WriteString("Warning: ")
	b.WriteString(w.Title)
	b.WriteString("\n")

	if w.Message != "" {
		b.WriteString("    ")
		b.WriteString(w.Message)
		b.WriteString("\n")
	}

	if len(w.Files) > 0 {
		b.WriteString("    ")
		if len(w.Files) == 1 {
			b.WriteString("Affected path:\n")
		} else {
			b.WriteString("Affected paths:\n")
		}

		for i, file := range w.Files {
			b.WriteString(fmt.Sprintf("      %d. %s\n", i+1, file))
		}
	}

	if w.Suggestion != "" {
		b.WriteString("    Suggestion:\n")
		b.WriteString("    ")
		b.WriteString(w.Suggestion)
		b.WriteString("\n")
	}

	if colorize {
		b.WriteString("\x1b[0m")
	}

	fmt.Fprint(out, b.String())
}

// WarnSkipped builds the warning shown when the skip policy left paths out of
// a report. The zero Warning is returned when nothing was skipped.
func WarnSkipped(skipped []models.SkippedPath) Warning {
	if len(skipped) == 0 {
		return Warning{}
	}

	files := make([]string, 0, len(skipped))
	for _, s := range skipped {
		files = append(files, fmt.Sprintf("%s (%s: %s)", s.Path, s.Kind, s.Reason))
	}

	return Warning{
		Title:      fmt.Sprintf("%d path(s) could not be read and were left out of the report", len(skipped)),
		Message:    "The file list and count may be incomplete",
		Files:      files,
		Suggestion: "Fix permissions or rerun with --on-error=abort to fail instead",
	}
}

// IsZero reports whether w carries no content.
func (w Warning) IsZero() bool {
	return w.Title == "" && w.Message == "" && len(w.Files) == 0 && w.Suggestion == ""
}
