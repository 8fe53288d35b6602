package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/harrison/pkgusage/internal/config"
	"github.com/harrison/pkgusage/internal/display"
	"github.com/harrison/pkgusage/internal/logger"
	"github.com/harrison/pkgusage/internal/models"
	"github.com/harrison/pkgusage/internal/reportfile"
	"github.com/harrison/pkgusage/internal/usage"
	"github.com/harrison/pkgusage/internal/walker"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// NewRootCommand creates and returns the root cobra command for pkgusage
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pkgusage <package-name>",
		Short: "Find the source files that import or require a package",
		Long: `pkgusage walks a directory tree and lists every JavaScript/TypeScript
source file that uses the named package, either through a static import
(import x from "pkg") or a require call (require("pkg")).

Directories named node_modules or build are skipped at any depth, and only
.ts and .js files are inspected unless configured otherwise.

The report is one matching path per line followed by:
  The package <name> is used in <count> file(s).

Exit code: 0 on success (even with no matches), 1 on any error`,
		Args:    requirePackageName,
		RunE:    runUsage,
		Version: Version,
		// main prints the error once; usage text only for invocation errors
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.Flags().StringP("dir", "d", "", "Root directory to scan (default: current working directory)")
	cmd.Flags().String("config", "", "Path to a YAML config file")
	cmd.Flags().StringSlice("exclude", walker.DefaultExcludeDirs, "Directory names to skip at any depth")
	cmd.Flags().StringSlice("ext", walker.DefaultExtensions, "File extensions to inspect")
	cmd.Flags().IntP("jobs", "j", 1, "Number of files matched concurrently")
	cmd.Flags().String("on-error", string(models.PolicyAbort), "What to do with unreadable paths: abort, skip")
	cmd.Flags().String("format", string(display.FormatText), "Report format: text, json, yaml")
	cmd.Flags().StringP("output", "o", "", "Also write the report to this file")
	cmd.Flags().String("log-level", "warn", "Log level on stderr: trace, debug, info, warn, error")

	return cmd
}

// requirePackageName rejects invocations without exactly one non-empty package name.
func requirePackageName(cmd *cobra.Command, args []string) error {
	if len(args) == 1 && args[0] != "" {
		return nil
	}
	msg := "missing required argument <package-name>"
	if len(args) > 1 {
		msg = fmt.Sprintf("expected exactly one package name, got %d arguments", len(args))
	}
	return models.NewUsageError(models.KindInvalidInvocation, "", fmt.Errorf("%s\nUsage: %s", msg, cmd.UseLine()))
}

func runUsage(cmd *cobra.Command, args []string) error {
	packageName := args[0]

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	root, _ := cmd.Flags().GetString("dir")
	if root == "" {
		root, err = os.Getwd()
		if err != nil {
			return models.NewUsageError(models.KindDirectoryUnreadable, ".", err)
		}
	}

	format, _ := display.ParseFormat(cfg.Format)
	policy := cfg.Policy()
	stdout := cmd.OutOrStdout()
	stderr := cmd.ErrOrStderr()
	log := logger.NewConsoleLogger(stderr, cfg.LogLevel)

	w := walker.New(walker.Options{
		ExcludeDirs: cfg.ExcludeDirs,
		Extensions:  cfg.Extensions,
		Policy:      policy,
		Logger:      log,
	})
	finder := usage.NewFinder(w, usage.Options{
		Workers: cfg.Jobs,
		Policy:  policy,
		Logger:  log,
	})

	report, err := finder.Find(cmd.Context(), root, packageName)
	if err != nil {
		return err
	}

	if err := display.PrintReport(stdout, report, format, colorEnabled(stdout)); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	if warning := display.WarnSkipped(report.Skipped); !warning.IsZero() {
		warning.Display(stderr, colorEnabled(stderr))
	}

	if cfg.Output != "" {
		data, err := display.Render(report, format, false)
		if err != nil {
			return err
		}
		if err := reportfile.Write(cfg.Output, data); err != nil {
			return fmt.Errorf("failed to write report file: %w", err)
		}
		log.LogInfo(fmt.Sprintf("Report written to %s", cfg.Output))
	}

	return nil
}

// loadConfig builds the effective configuration: defaults, then --config, then flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if path, _ := cmd.Flags().GetString("config"); path != "" {
		loaded, err := config.LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	var overrides config.FlagOverrides
	flags := cmd.Flags()
	if flags.Changed("exclude") {
		v, _ := flags.GetStringSlice("exclude")
		overrides.ExcludeDirs = &v
	}
	if flags.Changed("ext") {
		v, _ := flags.GetStringSlice("ext")
		overrides.Extensions = &v
	}
	if flags.Changed("jobs") {
		v, _ := flags.GetInt("jobs")
		overrides.Jobs = &v
	}
	if flags.Changed("on-error") {
		v, _ := flags.GetString("on-error")
		overrides.OnError = &v
	}
	if flags.Changed("format") {
		v, _ := flags.GetString("format")
		overrides.Format = &v
	}
	if flags.Changed("output") {
		v, _ := flags.GetString("output")
		overrides.Output = &v
	}
	if flags.Changed("log-level") {
		v, _ := flags.GetString("log-level")
		overrides.LogLevel = &v
	}

	cfg.MergeWithFlags(overrides)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// colorEnabled reports whether w is a color-capable terminal.
func colorEnabled(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok || color.NoColor {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
