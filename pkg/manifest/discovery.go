package manifest

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultManifestName is the conventional manifest file name.
const DefaultManifestName = "custom-elements.json"

// discoveryExclude lists directories never searched for a manifest.
var discoveryExclude = []string{
	"**/node_modules",
	".git",
	"coverage",
	".cewrap",
}

// Discover searches rootDir for custom-elements.json and returns the
// shallowest match (ties broken alphabetically) so that a project-level
// manifest wins over fixtures nested deeper in the tree.
func Discover(rootDir string) (string, error) {
	absRoot, err := filepath.Abs(rootDir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve root path: %w", err)
	}

	var found []string
	err = filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // Continue walking on errors.
		}

		relPath, err := filepath.Rel(absRoot, path)
		if err != nil {
			relPath = path
		}
		relPath = filepath.ToSlash(relPath)

		if d.IsDir() {
			for _, pattern := range discoveryExclude {
				if matched, _ := doublestar.Match(pattern, relPath); matched {
					return filepath.SkipDir
				}
			}
			return nil
		}

		if d.Name() == DefaultManifestName {
			found = append(found, relPath)
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	if len(found) == 0 {
		return "", fmt.Errorf("no %s found in %s", DefaultManifestName, rootDir)
	}

	sort.Slice(found, func(i, j int) bool {
		di, dj := strings.Count(found[i], "/"), strings.Count(found[j], "/")
		if di != dj {
			return di < dj
		}
		return found[i] < found[j]
	})
	return filepath.Join(absRoot, filepath.FromSlash(found[0])), nil
}
