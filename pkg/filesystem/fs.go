// Package filesystem provides file discovery and content reading for the
// scanner. Exclusion patterns use gitignore syntax.
package filesystem

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"
)

// defaultIgnores are always skipped during discovery regardless of the
// configured exclusion patterns.
var defaultIgnores = []string{
	"node_modules/",
	".git/",
	".svelte-kit/",
	"dist/",
	"build/",
	"coverage/",
	".DS_Store",
}

// SvelteExtension is the file extension scanned by default.
const SvelteExtension = ".svelte"

// Discover walks each root in order and returns every file whose extension is
// in extensions (defaulting to .svelte), excluding anything matched by the
// gitignore-style excludePatterns. A root that is itself a matching file is
// returned directly. Results are deduplicated, preserving first-seen order.
func Discover(roots []string, extensions []string, excludePatterns []string) ([]string, error) {
	if len(extensions) == 0 {
		extensions = []string{SvelteExtension}
	}
	extSet := make(map[string]bool, len(extensions))
	for _, ext := range extensions {
		extSet[ext] = true
	}

	matcher := ignore.CompileIgnoreLines(append(append([]string{}, defaultIgnores...), excludePatterns...)...)

	var paths []string
	seen := make(map[string]bool)
	add := func(path string) {
		if !seen[path] {
			seen[path] = true
			paths = append(paths, path)
		}
	}

	for _, root := range roots {
		info, err := os.Stat(root)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", root, err)
		}

		if !info.IsDir() {
			if extSet[filepath.Ext(root)] && !matcher.MatchesPath(root) {
				add(root)
			}
			continue
		}

		err = filepath.Walk(root, func(path string, fi os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			relPath, err := filepath.Rel(root, path)
			if err != nil {
				return err
			}
			if relPath == "." {
				return nil
			}
			if matcher.MatchesPath(relPath) {
				if fi.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			if !fi.IsDir() && extSet[filepath.Ext(path)] {
				add(path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walking %s: %w", root, err)
		}
	}

	return paths, nil
}

// Reader reads file contents from disk. It satisfies scan.ContentReader.
type Reader struct{}

// ReadText returns the file's content as a string.
func (Reader) ReadText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// FileExists checks if a file exists at the given path.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// FilterExisting returns the subset of paths that exist and end in one of the
// given extensions. Used to narrow a pull request's changed files to the ones
// worth scanning.
func FilterExisting(paths []string, extensions []string) []string {
	if len(extensions) == 0 {
		extensions = []string{SvelteExtension}
	}
	var out []string
	for _, p := range paths {
		for _, ext := range extensions {
			if strings.HasSuffix(p, ext) && FileExists(p) {
				out = append(out, p)
				break
			}
		}
	}
	return out
}
