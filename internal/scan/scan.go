// Package scan finds statement PDFs in a directory.
package scan

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
)

const (
	// pdfPattern matches the .pdf extension in any letter case
	pdfPattern          = "*.[pP][dD][fF]"
	recursivePDFPattern = "**/" + pdfPattern
)

// PDFs returns the regular files in dir whose name ends in .pdf, ignoring
// case, sorted by path. Subdirectories are only searched when recursive is
// set.
func PDFs(dir string, recursive bool) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("scan %s: not a directory", dir)
	}

	pattern := pdfPattern
	if recursive {
		pattern = recursivePDFPattern
	}

	fsys := os.DirFS(dir)
	matches, err := doublestar.Glob(fsys, pattern)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", dir, err)
	}

	var paths []string
	for _, match := range matches {
		entry, err := fs.Stat(fsys, match)
		if err != nil || !entry.Mode().IsRegular() {
			continue
		}
		paths = append(paths, filepath.Join(dir, filepath.FromSlash(match)))
	}
	sort.Strings(paths)

	return paths, nil
}
