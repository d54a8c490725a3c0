package app

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileHelperCollectSourceFiles(t *testing.T) {
	// Create temp directory with test files
	tempDir := t.TempDir()

	// Create test files
	testFiles := []string{"test.js", "test.ts", "test.jsx", "test.tsx", "test.txt"}
	for _, f := range testFiles {
		path := filepath.Join(tempDir, f)
		if err := os.WriteFile(path, []byte("// test"), 0644); err != nil {
			t.Fatalf("Failed to create test file: %v", err)
		}
	}

	helper := NewFileHelper()

	files, err := helper.CollectSourceFiles([]string{tempDir}, true, nil, nil, false)
	if err != nil {
		t.Fatalf("CollectSourceFiles failed: %v", err)
	}

	// Should find 4 JS/TS files
	if len(files) != 4 {
		t.Errorf("Expected 4 JS/TS files, got %d", len(files))
	}
}

func TestFileHelperIsValidSourceFile(t *testing.T) {
	helper := NewFileHelper()

	tests := []struct {
		path     string
		expected bool
	}{
		{"test.js", true},
		{"test.ts", true},
		{"test.jsx", true},
		{"test.tsx", true},
		{"test.mjs", true},
		{"test.cjs", true},
		{"test.mts", true},
		{"test.cts", true},
		{"test.py", false},
		{"test.go", false},
		{"test.txt", false},
		{"test.d.ts", true},
	}

	for _, tt := range tests {
		result := helper.IsValidSourceFile(tt.path)
		if result != tt.expected {
			t.Errorf("IsValidSourceFile(%s) = %v, expected %v", tt.path, result, tt.expected)
		}
	}
}

func TestFileHelperFileExists(t *testing.T) {
	helper := NewFileHelper()

	// Create temp file
	tempFile, err := os.CreateTemp("", "test*.js")
	if err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	tempFile.Close()
	defer os.Remove(tempFile.Name())

	// Test existing file
	exists, err := helper.FileExists(tempFile.Name())
	if err != nil {
		t.Fatalf("FileExists failed: %v", err)
	}
	if !exists {
		t.Error("Expected file to exist")
	}

	// Test non-existing file
	exists, err = helper.FileExists("/nonexistent/file.js")
	if err != nil {
		t.Fatalf("FileExists failed: %v", err)
	}
	if exists {
		t.Error("Expected file to not exist")
	}
}

func TestFileHelperCollectExplicitFiles(t *testing.T) {
	tempDir := t.TempDir()

	srcFile := filepath.Join(tempDir, "app.ts")
	specFile := filepath.Join(tempDir, "app.spec.ts")
	docFile := filepath.Join(tempDir, "README.md")
	for _, f := range []string{srcFile, specFile, docFile} {
		if err := os.WriteFile(f, []byte("// test"), 0644); err != nil {
			t.Fatalf("Failed to create test file: %v", err)
		}
	}

	helper := NewFileHelper()

	// Explicit file arguments honor excludes but bypass include patterns
	files, err := helper.CollectSourceFiles(
		[]string{srcFile, specFile, docFile},
		true,
		[]string{"src/**/*.js"},
		[]string{"*.spec.ts"},
		false,
	)
	if err != nil {
		t.Fatalf("CollectSourceFiles failed: %v", err)
	}

	if len(files) != 1 {
		t.Fatalf("Expected 1 file, got %d: %v", len(files), files)
	}
	if files[0] != srcFile {
		t.Errorf("Expected %s, got %s", srcFile, files[0])
	}
}

func TestFileHelperExcludeNodeModules(t *testing.T) {
	// Create temp directory structure with node_modules
	tempDir := t.TempDir()

	srcDir := filepath.Join(tempDir, "src")
	if err := os.MkdirAll(srcDir, 0755); err != nil {
		t.Fatalf("Failed to create src dir: %v", err)
	}
	srcFile := filepath.Join(srcDir, "index.js")
	if err := os.WriteFile(srcFile, []byte("// source"), 0644); err != nil {
		t.Fatalf("Failed to create source file: %v", err)
	}

	nodeModulesDir := filepath.Join(tempDir, "node_modules", "some-package")
	if err := os.MkdirAll(nodeModulesDir, 0755); err != nil {
		t.Fatalf("Failed to create node_modules dir: %v", err)
	}
	nodeModulesFile := filepath.Join(nodeModulesDir, "index.js")
	if err := os.WriteFile(nodeModulesFile, []byte("// package"), 0644); err != nil {
		t.Fatalf("Failed to create node_modules file: %v", err)
	}

	helper := NewFileHelper()

	excludePatterns := []string{"node_modules"}
	files, err := helper.CollectSourceFiles([]string{tempDir}, true, nil, excludePatterns, false)
	if err != nil {
		t.Fatalf("CollectSourceFiles failed: %v", err)
	}

	// Should only find 1 file (src/index.js), not the one in node_modules
	if len(files) != 1 {
		t.Errorf("Expected 1 file (excluding node_modules), got %d", len(files))
	}
	for _, f := range files {
		if filepath.Base(filepath.Dir(f)) == "node_modules" || filepath.Base(filepath.Dir(filepath.Dir(f))) == "node_modules" {
			t.Errorf("Found file in node_modules which should be excluded: %s", f)
		}
	}
}

func TestFileHelperExcludeMultiplePatterns(t *testing.T) {
	// Create temp directory structure
	tempDir := t.TempDir()

	dirs := []string{"src", "dist", "build", ".next", "coverage"}
	for _, dir := range dirs {
		dirPath := filepath.Join(tempDir, dir)
		if err := os.MkdirAll(dirPath, 0755); err != nil {
			t.Fatalf("Failed to create %s dir: %v", dir, err)
		}
		file := filepath.Join(dirPath, "index.js")
		if err := os.WriteFile(file, []byte("// "+dir), 0644); err != nil {
			t.Fatalf("Failed to create file in %s: %v", dir, err)
		}
	}

	helper := NewFileHelper()

	excludePatterns := []string{"dist", "build", ".next", "coverage"}
	files, err := helper.CollectSourceFiles([]string{tempDir}, true, nil, excludePatterns, false)
	if err != nil {
		t.Fatalf("CollectSourceFiles failed: %v", err)
	}

	// Should only find 1 file (src/index.js)
	if len(files) != 1 {
		t.Errorf("Expected 1 file (only src), got %d", len(files))
	}
}

func TestFileHelperExcludeMinifiedFiles(t *testing.T) {
	tempDir := t.TempDir()

	testFiles := []string{"app.js", "utils.js", "vendor.min.js", "bundle.bundle.js"}
	for _, f := range testFiles {
		path := filepath.Join(tempDir, f)
		if err := os.WriteFile(path, []byte("// "+f), 0644); err != nil {
			t.Fatalf("Failed to create test file: %v", err)
		}
	}

	helper := NewFileHelper()

	excludePatterns := []string{"*.min.js", "*.bundle.js"}
	files, err := helper.CollectSourceFiles([]string{tempDir}, true, nil, excludePatterns, false)
	if err != nil {
		t.Fatalf("CollectSourceFiles failed: %v", err)
	}

	// Should find only app.js and utils.js
	if len(files) != 2 {
		t.Errorf("Expected 2 files (excluding minified/bundled), got %d", len(files))
	}
}

func TestFileHelperIncludePatterns(t *testing.T) {
	tempDir := t.TempDir()

	layout := map[string]string{
		"src/app.ts":    "// app",
		"src/util.js":   "// util",
		"lib/helper.ts": "// helper",
	}
	for name, content := range layout {
		path := filepath.Join(tempDir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("Failed to create dir for %s: %v", name, err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("Failed to create %s: %v", name, err)
		}
	}

	helper := NewFileHelper()

	// Anchored pattern restricts to .ts files under src
	files, err := helper.CollectSourceFiles([]string{tempDir}, true, []string{"src/**/*.ts"}, nil, false)
	if err != nil {
		t.Fatalf("CollectSourceFiles failed: %v", err)
	}
	if len(files) != 1 {
		t.Fatalf("Expected 1 file for src/**/*.ts, got %d: %v", len(files), files)
	}
	if filepath.Base(files[0]) != "app.ts" {
		t.Errorf("Expected app.ts, got %s", files[0])
	}

	// Unanchored pattern matches .ts files at any depth
	files, err = helper.CollectSourceFiles([]string{tempDir}, true, []string{"**/*.ts"}, nil, false)
	if err != nil {
		t.Fatalf("CollectSourceFiles failed: %v", err)
	}
	if len(files) != 2 {
		t.Errorf("Expected 2 files for **/*.ts, got %d: %v", len(files), files)
	}
}

func TestFileHelperHonorsGitIgnore(t *testing.T) {
	tempDir := t.TempDir()

	ignoreLines := "generated\nlegacy.js\n"
	if err := os.WriteFile(filepath.Join(tempDir, ".gitignore"), []byte(ignoreLines), 0644); err != nil {
		t.Fatalf("Failed to create .gitignore: %v", err)
	}

	genDir := filepath.Join(tempDir, "generated")
	if err := os.MkdirAll(genDir, 0755); err != nil {
		t.Fatalf("Failed to create generated dir: %v", err)
	}
	for path, content := range map[string]string{
		filepath.Join(genDir, "api.ts"):     "// generated",
		filepath.Join(tempDir, "legacy.js"): "// legacy",
		filepath.Join(tempDir, "main.ts"):   "// main",
	} {
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("Failed to create %s: %v", path, err)
		}
	}

	helper := NewFileHelper()

	files, err := helper.CollectSourceFiles([]string{tempDir}, true, nil, nil, false)
	if err != nil {
		t.Fatalf("CollectSourceFiles failed: %v", err)
	}

	if len(files) != 1 {
		t.Fatalf("Expected 1 file (gitignored files skipped), got %d: %v", len(files), files)
	}
	if filepath.Base(files[0]) != "main.ts" {
		t.Errorf("Expected main.ts, got %s", files[0])
	}
}

func TestFileHelperNonRecursive(t *testing.T) {
	tempDir := t.TempDir()

	nestedDir := filepath.Join(tempDir, "nested")
	if err := os.MkdirAll(nestedDir, 0755); err != nil {
		t.Fatalf("Failed to create nested dir: %v", err)
	}
	for _, path := range []string{
		filepath.Join(tempDir, "top.ts"),
		filepath.Join(nestedDir, "deep.ts"),
	} {
		if err := os.WriteFile(path, []byte("// test"), 0644); err != nil {
			t.Fatalf("Failed to create %s: %v", path, err)
		}
	}

	helper := NewFileHelper()

	files, err := helper.CollectSourceFiles([]string{tempDir}, false, nil, nil, false)
	if err != nil {
		t.Fatalf("CollectSourceFiles failed: %v", err)
	}

	// Should find only the top-level file
	if len(files) != 1 {
		t.Fatalf("Expected 1 file, got %d: %v", len(files), files)
	}
	if filepath.Base(files[0]) != "top.ts" {
		t.Errorf("Expected top.ts, got %s", files[0])
	}
}

func TestFileHelperSymlinkedDirectories(t *testing.T) {
	tempDir := t.TempDir()

	projDir := filepath.Join(tempDir, "proj")
	sharedDir := filepath.Join(tempDir, "shared")
	for _, dir := range []string{projDir, sharedDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			t.Fatalf("Failed to create dir: %v", err)
		}
	}
	for _, path := range []string{
		filepath.Join(projDir, "main.ts"),
		filepath.Join(sharedDir, "util.ts"),
	} {
		if err := os.WriteFile(path, []byte("// test"), 0644); err != nil {
			t.Fatalf("Failed to create %s: %v", path, err)
		}
	}
	if err := os.Symlink(sharedDir, filepath.Join(projDir, "linked")); err != nil {
		t.Skipf("Symlinks not supported: %v", err)
	}

	helper := NewFileHelper()

	// Symlinked directories are skipped by default
	files, err := helper.CollectSourceFiles([]string{projDir}, true, nil, nil, false)
	if err != nil {
		t.Fatalf("CollectSourceFiles failed: %v", err)
	}
	if len(files) != 1 {
		t.Errorf("Expected 1 file without followSymlinks, got %d: %v", len(files), files)
	}

	// And descended when followSymlinks is set
	files, err = helper.CollectSourceFiles([]string{projDir}, true, nil, nil, true)
	if err != nil {
		t.Fatalf("CollectSourceFiles failed: %v", err)
	}
	if len(files) != 2 {
		t.Errorf("Expected 2 files with followSymlinks, got %d: %v", len(files), files)
	}
}

func TestFileHelperSymlinkCycle(t *testing.T) {
	tempDir := t.TempDir()

	projDir := filepath.Join(tempDir, "proj")
	if err := os.MkdirAll(projDir, 0755); err != nil {
		t.Fatalf("Failed to create proj dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(projDir, "main.ts"), []byte("// test"), 0644); err != nil {
		t.Fatalf("Failed to create main.ts: %v", err)
	}
	if err := os.Symlink(projDir, filepath.Join(projDir, "loop")); err != nil {
		t.Skipf("Symlinks not supported: %v", err)
	}

	helper := NewFileHelper()

	// A self-referencing symlink must not loop forever or duplicate files
	files, err := helper.CollectSourceFiles([]string{projDir}, true, nil, nil, true)
	if err != nil {
		t.Fatalf("CollectSourceFiles failed: %v", err)
	}
	if len(files) != 1 {
		t.Errorf("Expected 1 file, got %d: %v", len(files), files)
	}
}

func TestFileHelperNonexistentPath(t *testing.T) {
	helper := NewFileHelper()

	_, err := helper.CollectSourceFiles([]string{"/nonexistent/path"}, true, nil, nil, false)
	if err == nil {
		t.Error("Expected error for nonexistent path")
	}
}

func TestResolveFilePaths(t *testing.T) {
	// Create temp directory with test files
	tempDir := t.TempDir()

	testFile := filepath.Join(tempDir, "test.js")
	if err := os.WriteFile(testFile, []byte("// test"), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	helper := NewFileHelper()

	// Test with existing file
	files, err := ResolveFilePaths(helper, []string{testFile}, true, nil, nil, false)
	if err != nil {
		t.Fatalf("ResolveFilePaths failed: %v", err)
	}
	if len(files) != 1 {
		t.Errorf("Expected 1 file, got %d", len(files))
	}

	// Test with directory
	files, err = ResolveFilePaths(helper, []string{tempDir}, true, nil, nil, false)
	if err != nil {
		t.Fatalf("ResolveFilePaths failed: %v", err)
	}
	if len(files) != 1 {
		t.Errorf("Expected 1 file, got %d", len(files))
	}
}

func TestResolveFilePathsPassesThroughExistingFiles(t *testing.T) {
	tempDir := t.TempDir()

	docFile := filepath.Join(tempDir, "README.md")
	if err := os.WriteFile(docFile, []byte("# readme"), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	helper := NewFileHelper()

	// Explicitly named files are returned as-is, even non-source ones
	files, err := ResolveFilePaths(helper, []string{docFile}, true, nil, nil, false)
	if err != nil {
		t.Fatalf("ResolveFilePaths failed: %v", err)
	}
	if len(files) != 1 || files[0] != docFile {
		t.Errorf("Expected [%s], got %v", docFile, files)
	}
}
