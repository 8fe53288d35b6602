// Package usage runs a dependency lookup end to end: it walks the tree,
// matches every candidate file and assembles the ordered report.
package usage

import (
	"context"
	"fmt"
	"time"

	"github.com/harrison/pkgusage/internal/matcher"
	"github.com/harrison/pkgusage/internal/models"
	"github.com/harrison/pkgusage/internal/walker"
	"golang.org/x/sync/errgroup"
)

// Logger is the subset of the console logger the finder reports through.
type Logger interface {
	LogDebug(message string)
	LogInfo(message string)
	LogWarn(message string)
}

// ScanLogger is implemented by loggers that summarize whole scans.
type ScanLogger interface {
	LogScanStart(dependency, root string)
	LogScanComplete(report *models.Report, candidates int, duration time.Duration)
}

// Options configures how candidate files are matched.
type Options struct {
	// Workers is the number of files matched concurrently (<= 1 means sequential)
	Workers int
	// Policy decides whether an unreadable file aborts the lookup
	Policy models.ErrorPolicy
	// Logger receives progress and warnings (optional)
	Logger Logger
}

// Finder combines a Walker with per-lookup Matchers.
type Finder struct {
	walker  *walker.Walker
	workers int
	policy  models.ErrorPolicy
	logger  Logger
}

// NewFinder creates a Finder around w.
func NewFinder(w *walker.Walker, opts Options) *Finder {
	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}
	policy := opts.Policy
	if policy == "" {
		policy = models.PolicyAbort
	}
	return &Finder{
		walker:  w,
		workers: workers,
		policy:  policy,
		logger:  opts.Logger,
	}
}

// fileOutcome is the per-candidate result slot written by exactly one worker.
type fileOutcome struct {
	matched bool
	skipped *models.SkippedPath
}

// Find returns every file under root that imports or requires dependency,
// in walk order. With the abort policy any unreadable directory or file
// fails the whole lookup and no partial report is returned.
func (f *Finder) Find(ctx context.Context, root, dependency string) (*models.Report, error) {
	m, err := matcher.New(dependency)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	if sl, ok := f.logger.(ScanLogger); ok {
		sl.LogScanStart(dependency, root)
	}

	walked, err := f.walker.Walk(root)
	if err != nil {
		return nil, err
	}
	f.debug(fmt.Sprintf("found %d candidate files", len(walked.Files)))

	outcomes := make([]fileOutcome, len(walked.Files))
	if f.workers == 1 || len(walked.Files) < 2 {
		err = f.matchSequential(ctx, m, walked.Files, outcomes)
	} else {
		err = f.matchParallel(ctx, m, walked.Files, outcomes)
	}
	if err != nil {
		return nil, err
	}

	files := make([]string, 0)
	skipped := append([]models.SkippedPath(nil), walked.Skipped...)
	for i, out := range outcomes {
		if out.skipped != nil {
			skipped = append(skipped, *out.skipped)
			continue
		}
		if out.matched {
			files = append(files, walked.Files[i])
		}
	}

	report := models.NewReport(dependency, root, files, skipped)
	if sl, ok := f.logger.(ScanLogger); ok {
		sl.LogScanComplete(report, len(walked.Files), time.Since(start))
	}
	return report, nil
}

func (f *Finder) matchSequential(ctx context.Context, m *matcher.Matcher, files []string, outcomes []fileOutcome) error {
	for i, path := range files {
		if err := ctx.Err(); err != nil {
			return err
		}
		out, err := f.matchOne(m, path)
		if err != nil {
			return err
		}
		outcomes[i] = out
	}
	return nil
}

// matchParallel gives each goroutine its own outcome slot, so walk order
// survives without any shared append.
func (f *Finder) matchParallel(ctx context.Context, m *matcher.Matcher, files []string, outcomes []fileOutcome) error {
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(f.workers)

	for i, path := range files {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			out, err := f.matchOne(m, path)
			if err != nil {
				return err
			}
			outcomes[i] = out
			return nil
		})
	}

	return eg.Wait()
}

// matchOne checks a single file, applying the error policy.
func (f *Finder) matchOne(m *matcher.Matcher, path string) (fileOutcome, error) {
	ok, err := m.MatchFile(path)
	if err != nil {
		if f.policy != models.PolicySkip {
			return fileOutcome{}, err
		}
		f.warn(fmt.Sprintf("skipping unreadable file %s: %v", path, err))
		skipped := models.NewSkippedPath(models.KindFileUnreadable, path, unwrapCause(err))
		return fileOutcome{skipped: &skipped}, nil
	}
	if ok {
		f.debug(fmt.Sprintf("match: %s", path))
	}
	return fileOutcome{matched: ok}, nil
}

// unwrapCause strips the UsageError wrapper so the skip reason reads cleanly.
func unwrapCause(err error) error {
	if ue, ok := err.(*models.UsageError); ok && ue.Err != nil {
		return ue.Err
	}
	return err
}

func (f *Finder) debug(msg string) {
	if f.logger != nil {
		f.logger.LogDebug(msg)
	}
}

func (f *Finder) warn(msg string) {
	if f.logger != nil {
		f.logger.LogWarn(msg)
	}
}
