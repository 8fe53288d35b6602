package walker

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/harrison/pkgusage/internal/models"
)

// DefaultExcludeDirs are the directory names never descended into unless overridden.
var DefaultExcludeDirs = []string{"node_modules", "build"}

// DefaultExtensions are the candidate file extensions unless overridden.
var DefaultExtensions = []string{"ts", "js"}

// Logger is the subset of the console logger the walker reports through.
type Logger interface {
	LogDebug(message string)
	LogWarn(message string)
}

// Options configures which directories are skipped and which files are candidates.
type Options struct {
	// ExcludeDirs lists directory base names to skip at any depth (exact match)
	ExcludeDirs []string
	// Extensions lists allowed extensions, with or without a leading dot (exact match)
	Extensions []string
	// Policy decides whether an unreadable subdirectory aborts the walk
	Policy models.ErrorPolicy
	// Logger receives debug and warning messages (optional)
	Logger Logger
}

// Result contains the candidate files found by a walk.
type Result struct {
	// Files holds candidate paths in depth-first, directory-listing order
	Files []string
	// Skipped holds directories left out under the skip policy
	Skipped []models.SkippedPath
}

// Walker enumerates candidate files under a root directory.
// Its exclusion and extension sets are fixed at construction.
type Walker struct {
	exclude map[string]bool
	exts    map[string]bool
	policy  models.ErrorPolicy
	logger  Logger

	// readDir lists a directory; os.ReadDir outside of tests
	readDir func(name string) ([]fs.DirEntry, error)
}

// New creates a Walker from opts. Nil slices fall back to the defaults;
// empty non-nil slices are honoured (no exclusions, or no candidates).
func New(opts Options) *Walker {
	excludeDirs := opts.ExcludeDirs
	if excludeDirs == nil {
		excludeDirs = DefaultExcludeDirs
	}
	extensions := opts.Extensions
	if extensions == nil {
		extensions = DefaultExtensions
	}

	excludeMap := make(map[string]bool, len(excludeDirs))
	for _, dir := range excludeDirs {
		excludeMap[dir] = true
	}

	extMap := make(map[string]bool, len(extensions))
	for _, ext := range extensions {
		extMap[strings.TrimPrefix(ext, ".")] = true
	}

	policy := opts.Policy
	if policy == "" {
		policy = models.PolicyAbort
	}

	return &Walker{
		exclude: excludeMap,
		exts:    extMap,
		policy:  policy,
		logger:  opts.Logger,
		readDir: os.ReadDir,
	}
}

// IsExcluded reports whether a directory with the given base name is skipped.
func (w *Walker) IsExcluded(name string) bool {
	return w.exclude[name]
}

// IsCandidate reports whether a file with the given base name would be inspected.
func (w *Walker) IsCandidate(name string) bool {
	ext, ok := Extension(name)
	return ok && w.exts[ext]
}

// Extension returns the substring after the last "." in a base name.
// ok is false when the name contains no dot.
func Extension(name string) (ext string, ok bool) {
	i := strings.LastIndexByte(name, '.')
	if i < 0 {
		return "", false
	}
	return name[i+1:], true
}

// Walk lists candidate files under root. The root itself must be a readable
// directory; failing that is always fatal regardless of policy.
func (w *Walker) Walk(root string) (*Result, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, models.NewUsageError(models.KindDirectoryUnreadable, root, err)
	}
	if !info.IsDir() {
		return nil, models.NewUsageError(models.KindDirectoryUnreadable, root, fmt.Errorf("not a directory"))
	}

	result := &Result{
		Files: make([]string, 0),
	}
	if err := w.walkDir(root, result, true, make(map[string]bool)); err != nil {
		return nil, err
	}
	return result, nil
}

// walkDir appends the candidates under dir to result. Directory symlinks are
// followed; ancestors holds the resolved paths of the directories currently
// being walked, so a link back into one of them is not descended again.
func (w *Walker) walkDir(dir string, result *Result, isRoot bool, ancestors map[string]bool) error {
	resolved, err := filepath.EvalSymlinks(dir)
	if err != nil {
		return w.unreadableDir(dir, result, isRoot, err)
	}
	if ancestors[resolved] {
		w.debug(fmt.Sprintf("symlink cycle at %s, already walking %s", dir, resolved))
		return nil
	}
	ancestors[resolved] = true
	defer delete(ancestors, resolved)

	entries, err := w.readDir(dir)
	if err != nil {
		return w.unreadableDir(dir, result, isRoot, err)
	}

	for _, entry := range entries {
		name := entry.Name()
		path := filepath.Join(dir, name)

		isDir := entry.IsDir()
		if entry.Type()&fs.ModeSymlink != 0 {
			if target, statErr := os.Stat(path); statErr == nil && target.IsDir() {
				isDir = true
			}
		}

		if isDir {
			if w.IsExcluded(name) {
				w.debug(fmt.Sprintf("excluded directory %s", path))
				continue
			}
			if err := w.walkDir(path, result, false, ancestors); err != nil {
				return err
			}
			continue
		}

		if w.IsCandidate(name) {
			result.Files = append(result.Files, path)
		}
	}

	return nil
}

// unreadableDir applies the error policy to a directory that could not be listed.
func (w *Walker) unreadableDir(dir string, result *Result, isRoot bool, err error) error {
	if isRoot || w.policy != models.PolicySkip {
		return models.NewUsageError(models.KindDirectoryUnreadable, dir, err)
	}
	w.warn(fmt.Sprintf("skipping unreadable directory %s: %v", dir, err))
	result.Skipped = append(result.Skipped, models.NewSkippedPath(models.KindDirectoryUnreadable, dir, err))
	return nil
}

func (w *Walker) debug(msg string) {
	if w.logger != nil {
		w.logger.LogDebug(msg)
	}
}

func (w *Walker) warn(msg string) {
	if w.logger != nil {
		w.logger.LogWarn(msg)
	}
}
