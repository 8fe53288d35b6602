package display

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/harrison/pkgusage/internal/models"
	"gopkg.in/yaml.v3"
)

// Format selects how a report is rendered.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat converts a user-supplied string into a Format. Empty means text.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatText:
		return FormatText, nil
	case FormatJSON:
		return FormatJSON, nil
	case FormatYAML, "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("invalid format %q, must be one of: text, json, yaml", s)
	}
}

// SummaryLine returns the closing line of a text report.
func SummaryLine(dependency string, count int) string {
	return fmt.Sprintf("The package %s is used in %d file(s).", dependency, count)
}

// Render renders report in the requested format. colorize only affects the
// text summary line; paths are always printed plain so they stay pipeable.
func Render(report *models.Report, format Format, colorize bool) ([]byte, error) {
	switch format {
	case FormatText, "":
		return renderText(report, colorize), nil
	case FormatJSON:
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to encode report as json: %w", err)
		}
		return append(data, '\n'), nil
	case FormatYAML:
		data, err := yaml.Marshal(report)
		if err != nil {
			return nil, fmt.Errorf("failed to encode report as yaml: %w", err)
		}
		return data, nil
	default:
		return nil, fmt.Errorf("unsupported format %q", format)
	}
}

// PrintReport renders report and writes it to w.
func PrintReport(w io.Writer, report *models.Report, format Format, colorize bool) error {
	data, err := Render(report, format, colorize)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

func renderText(report *models.Report, colorize bool) []byte {
	var b bytes.Buffer
	for _, file := range report.Files {
		b.WriteString(file)
		b.WriteString("\n")
	}

	if !colorize {
		b.WriteString(SummaryLine(report.Dependency, report.Count))
		b.WriteString("\n")
		return b.Bytes()
	}

	name := color.New(color.FgCyan, color.Bold)
	count := color.New(color.FgGreen)
	if report.Count == 0 {
		count = color.New(color.FgYellow)
	}
	// The caller already decided the destination is a terminal.
	name.EnableColor()
	count.EnableColor()

	fmt.Fprintf(&b, "The package %s is used in %s file(s).\n",
		name.Sprint(report.Dependency), count.Sprint(report.Count))
	return b.Bytes()
}
