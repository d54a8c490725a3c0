package app

import (
	"os"
	"path/filepath"
	"strings"

	gitignore "github.com/sabhiram/go-gitignore"
)

// FileHelper provides file operation utilities
type FileHelper struct{}

// NewFileHelper creates a new FileHelper
func NewFileHelper() *FileHelper {
	return &FileHelper{}
}

// matchers bundles the pattern sets applied during a directory walk.
// All three use gitignore-style matching against slash-separated paths
// relative to the walked root.
type matchers struct {
	includes   *gitignore.GitIgnore
	excludes   *gitignore.GitIgnore
	ignoreFile *gitignore.GitIgnore
}

func (m matchers) excluded(rel string) bool {
	return matchesPath(m.excludes, rel) || matchesPath(m.ignoreFile, rel)
}

func (m matchers) included(rel string) bool {
	return m.includes == nil || m.includes.MatchesPath(rel)
}

// CollectSourceFiles collects JavaScript/TypeScript files from paths.
// Directory arguments are filtered through the include and exclude
// patterns plus the directory's own .gitignore; explicit file arguments
// only have to survive the exclude patterns.
func (h *FileHelper) CollectSourceFiles(paths []string, recursive bool, includePatterns, excludePatterns []string, followSymlinks bool) ([]string, error) {
	m := matchers{
		includes: compileMatcher(includePatterns),
		excludes: compileMatcher(excludePatterns),
	}

	var files []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, err
		}

		if !info.IsDir() {
			if h.isSourceFile(path) && !matchesPath(m.excludes, filepath.ToSlash(path)) {
				files = append(files, path)
			}
			continue
		}

		dm := m
		dm.ignoreFile = loadGitIgnore(path)

		var collected []string
		if recursive {
			collected, err = h.walkTree(path, path, dm, followSymlinks, map[string]bool{})
		} else {
			collected, err = h.listDir(path, dm)
		}
		if err != nil {
			return nil, err
		}
		files = append(files, collected...)
	}

	return files, nil
}

// walkTree recursively collects source files under dir, pruning excluded
// directories early. Symlinked directories are descended only when
// followSymlinks is set; the visited set breaks symlink cycles.
func (h *FileHelper) walkTree(root, dir string, m matchers, followSymlinks bool, visited map[string]bool) ([]string, error) {
	if real, err := filepath.EvalSymlinks(dir); err == nil {
		if visited[real] {
			return nil, nil
		}
		visited[real] = true
	}

	var files []string
	err := filepath.Walk(dir, func(filePath string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		rel := relPath(root, filePath)

		if info.IsDir() {
			if filePath == dir {
				return nil
			}
			if info.Name() == ".git" {
				return filepath.SkipDir
			}
			if m.excluded(rel) {
				return filepath.SkipDir
			}
			return nil
		}

		if info.Mode()&os.ModeSymlink != 0 {
			if !followSymlinks {
				return nil
			}
			target, err := os.Stat(filePath)
			if err != nil {
				return nil
			}
			if target.IsDir() {
				if m.excluded(rel) {
					return nil
				}
				sub, err := h.walkTree(root, filePath, m, followSymlinks, visited)
				if err != nil {
					return err
				}
				files = append(files, sub...)
				return nil
			}
		}

		if !h.isSourceFile(filePath) {
			return nil
		}
		if m.excluded(rel) || !m.included(rel) {
			return nil
		}
		files = append(files, filePath)
		return nil
	})

	return files, err
}

// listDir collects source files directly under dir without recursing
func (h *FileHelper) listDir(dir string, m matchers) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		filePath := filepath.Join(dir, entry.Name())
		rel := entry.Name()
		if h.isSourceFile(filePath) && !m.excluded(rel) && m.included(rel) {
			files = append(files, filePath)
		}
	}
	return files, nil
}

// IsValidSourceFile checks if a file is a valid JavaScript/TypeScript file
func (h *FileHelper) IsValidSourceFile(path string) bool {
	return h.isSourceFile(path)
}

// FileExists checks if a file exists
func (h *FileHelper) FileExists(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return !info.IsDir(), nil
}

// ReadFile reads file content
func (h *FileHelper) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// isSourceFile checks if a file is JavaScript/TypeScript based on extension
func (h *FileHelper) isSourceFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".js" || ext == ".ts" || ext == ".jsx" || ext == ".tsx" ||
		ext == ".mjs" || ext == ".cjs" || ext == ".mts" || ext == ".cts"
}

// relPath returns path relative to root with forward slashes, for
// gitignore-style matching
func relPath(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}

// compileMatcher compiles gitignore-style patterns, or nil for none
func compileMatcher(patterns []string) *gitignore.GitIgnore {
	if len(patterns) == 0 {
		return nil
	}
	return gitignore.CompileIgnoreLines(patterns...)
}

// loadGitIgnore compiles the .gitignore at root, or nil when absent
func loadGitIgnore(root string) *gitignore.GitIgnore {
	gi, err := gitignore.CompileIgnoreFile(filepath.Join(root, ".gitignore"))
	if err != nil {
		return nil
	}
	return gi
}

func matchesPath(m *gitignore.GitIgnore, rel string) bool {
	return m != nil && m.MatchesPath(rel)
}

// ResolveFilePaths resolves file paths, returning existing files directly
// or collecting files from directories
func ResolveFilePaths(
	fileHelper *FileHelper,
	paths []string,
	recursive bool,
	includePatterns []string,
	excludePatterns []string,
	followSymlinks bool,
) ([]string, error) {
	// Check if all paths are already files
	allFiles := true
	for _, path := range paths {
		exists, err := fileHelper.FileExists(path)
		if err != nil || !exists {
			allFiles = false
			break
		}
	}

	// If all paths are already files, no need to collect again
	if allFiles {
		return paths, nil
	}

	// Collect files from directories
	return fileHelper.CollectSourceFiles(paths, recursive, includePatterns, excludePatterns, followSymlinks)
}
