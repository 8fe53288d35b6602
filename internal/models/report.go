package models

// SkippedPath records a directory or file left out of a scan because it could
// not be read while the skip policy was active.
type SkippedPath struct {
	Path   string `json:"path" yaml:"path"`
	Kind   string `json:"kind" yaml:"kind"`
	Reason string `json:"reason" yaml:"reason"`
}

// NewSkippedPath builds a SkippedPath from a scan error.
func NewSkippedPath(kind ErrorKind, path string, err error) SkippedPath {
	reason := ""
	if err != nil {
		reason = err.Error()
	}
	return SkippedPath{Path: path, Kind: kind.String(), Reason: reason}
}

// Report is the outcome of looking up one dependency under one root.
// Files keeps traversal order: depth-first, siblings in directory-listing order.
type Report struct {
	Dependency string        `json:"dependency" yaml:"dependency"`
	Root       string        `json:"root" yaml:"root"`
	Files      []string      `json:"files" yaml:"files"`
	Count      int           `json:"count" yaml:"count"`
	Skipped    []SkippedPath `json:"skipped,omitempty" yaml:"skipped,omitempty"`
}

// NewReport creates a Report whose Count always equals len(files).
func NewReport(dependency, root string, files []string, skipped []SkippedPath) *Report {
	if files == nil {
		files = []string{}
	}
	return &Report{
		Dependency: dependency,
		Root:       root,
		Files:      files,
		Count:      len(files),
		Skipped:    skipped,
	}
}

// HasSkipped reports whether any path was left out of the scan.
func (r *Report) HasSkipped() bool {
	return len(r.Skipped) > 0
}
