// Package display renders lookup reports and user-facing warnings.
//
// # Reports
//
// The text format prints one matching path per line followed by the summary:
//
//	src/App.ts
//	src/components/Button.js
//	The package react is used in 2 file(s).
//
// Only the summary line is ever colored, and only when the caller says the
// destination is a terminal. JSON and YAML render the models.Report fields.
//
//	data, err := display.Render(report, display.FormatJSON, false)
//
// # Warnings
//
// WarnSkipped lists the paths the skip policy left out:
//
//	if report.HasSkipped() {
//	    display.WarnSkipped(report.Skipped).Display(os.Stderr, colorize)
//	}
package display
