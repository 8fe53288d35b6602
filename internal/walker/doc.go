// Package walker enumerates the source files a dependency lookup inspects.
//
// A Walker descends a directory tree depth-first, visiting siblings in the
// order os.ReadDir returns them (sorted by name), and collects every file
// whose extension is in its allowed set.
//
// # Exclusion
//
// Directories whose base name is in the exclusion set are never entered, at
// any depth. The test is an exact base-name match, so excluding "build" skips
// "src/build" but not "src/builder" or "build.js". A symlink to a directory is
// walked like a directory under the link's own name; a link leading back into
// a directory already being walked is not entered again.
//
// # Candidates
//
// A file's extension is the text after the last "." in its base name. Names
// without a dot have no extension and are never candidates. Matching is exact
// and case-sensitive: with the default set {"ts", "js"}, "app.JS" is skipped.
//
// # Errors
//
// An unreadable root is always fatal. An unreadable subdirectory is fatal
// under models.PolicyAbort (the default) and recorded in Result.Skipped under
// models.PolicySkip.
//
// # Usage
//
//	w := walker.New(walker.Options{
//	    ExcludeDirs: []string{"node_modules", "build", "dist"},
//	    Extensions:  []string{"ts", "tsx", "js"},
//	})
//	result, err := w.Walk(".")
//	if err != nil {
//	    return err
//	}
//	for _, path := range result.Files {
//	    fmt.Println(path)
//	}
package walker
