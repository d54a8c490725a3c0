// Package cache stores per-file check verdicts keyed by content hash.
// A hit must be indistinguishable from a fresh run at the same content
// and rule version, so entries are invalidated by schema version, by
// hash, and by age. Storage failures never fail a gate run: every read
// error is a miss and every write error is dropped after a debug log.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/editguard/editguard/domain"
	"go.uber.org/zap"
)

// SchemaVersion identifies the entry layout and rule logic. Bump it
// whenever engine rules change so stale verdicts stop matching.
const SchemaVersion = 1

// slugMaxLength bounds the readable part of an entry file name
const slugMaxLength = 32

// pathHashLength is how many hex chars of the path hash key an entry
const pathHashLength = 16

// Entry is the persisted form of one check's verdict for one file
type Entry struct {
	// Version is the schema version the entry was written with
	Version int `json:"version"`

	// FileHash is the SHA-256 hex digest of the file content
	FileHash string `json:"file_hash"`

	// Timestamp is when the entry was written
	Timestamp time.Time `json:"timestamp"`

	// Result is the cached verdict
	Result domain.Verdict `json:"result"`
}

// Store is a filesystem-backed verdict cache
type Store struct {
	dir    string
	maxAge time.Duration
	logger *zap.Logger
}

// New creates a verdict cache rooted at dir. Entries older than maxAge
// are treated as misses.
func New(dir string, maxAge time.Duration, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		dir:    dir,
		maxAge: maxAge,
		logger: logger,
	}
}

// HashContent returns the SHA-256 hex digest of the content
func HashContent(content string) string {
	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}

// Get returns the cached verdict when the stored entry matches the
// schema version, the content hash, and the age window. Any storage or
// decode failure is a miss.
func (s *Store) Get(check domain.CheckKind, filePath string, content string) (*domain.Verdict, bool) {
	path := s.entryPath(check, filePath)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}

	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		s.logger.Debug("cache entry corrupted",
			zap.String("check", string(check)),
			zap.String("file", filePath),
			zap.Error(err))
		return nil, false
	}

	if entry.Version != SchemaVersion {
		return nil, false
	}
	if entry.FileHash != HashContent(content) {
		return nil, false
	}
	if time.Since(entry.Timestamp) > s.maxAge {
		return nil, false
	}

	return &entry.Result, true
}

// Set stores a fresh verdict. Failures are logged at debug level and
// swallowed; a broken cache must never block an edit.
func (s *Store) Set(check domain.CheckKind, filePath string, content string, verdict domain.Verdict) {
	entry := Entry{
		Version:   SchemaVersion,
		FileHash:  HashContent(content),
		Timestamp: time.Now().UTC(),
		Result:    verdict,
	}

	data, err := json.MarshalIndent(entry, "", "  ")
	if err != nil {
		s.logger.Debug("cache entry encode failed", zap.Error(err))
		return
	}

	path := s.entryPath(check, filePath)
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		s.logger.Debug("cache dir create failed", zap.Error(err))
		return
	}

	if err := atomicWrite(path, data); err != nil {
		s.logger.Debug("cache write failed",
			zap.String("check", string(check)),
			zap.String("file", filePath),
			zap.Error(err))
	}
}

// Clear removes every cached verdict
func (s *Store) Clear() error {
	if err := os.RemoveAll(s.dir); err != nil {
		return fmt.Errorf("failed to clear cache at %s: %w", s.dir, err)
	}
	return nil
}

// Dir returns the cache root directory
func (s *Store) Dir() string {
	return s.dir
}

// Stats walks the cache and reports entry count, total size, and the
// oldest entry timestamp
func (s *Store) Stats() (domain.CacheStats, error) {
	stats := domain.CacheStats{}

	err := filepath.Walk(s.dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if info.IsDir() || !strings.HasSuffix(path, ".json") {
			return nil
		}

		stats.Entries++
		stats.SizeBytes += info.Size()

		data, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		var entry Entry
		if err := json.Unmarshal(data, &entry); err != nil {
			return nil
		}
		if stats.Oldest.IsZero() || entry.Timestamp.Before(stats.Oldest) {
			stats.Oldest = entry.Timestamp
		}
		return nil
	})
	if err != nil {
		if os.IsNotExist(err) {
			return domain.CacheStats{}, nil
		}
		return stats, err
	}

	return stats, nil
}

// entryPath maps (check, file path) to a filesystem-safe entry file.
// The path hash keys the entry; the slug keeps it readable for operators.
func (s *Store) entryPath(check domain.CheckKind, filePath string) string {
	abs, err := filepath.Abs(filePath)
	if err != nil {
		abs = filePath
	}

	hash := HashContent(abs)[:pathHashLength]
	slug := slugify(strings.TrimSuffix(filepath.Base(filePath), filepath.Ext(filePath)))
	name := hash + ".json"
	if slug != "" {
		name = hash + "-" + slug + ".json"
	}

	return filepath.Join(s.dir, string(check), name)
}

// slugify replaces non-alphanumeric runs with single hyphens and trims
// leading/trailing hyphens
func slugify(input string) string {
	var result strings.Builder
	lastHyphen := false
	for _, r := range strings.ToLower(input) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			result.WriteRune(r)
			lastHyphen = false
		} else if !lastHyphen {
			result.WriteRune('-')
			lastHyphen = true
		}
	}
	slug := strings.Trim(result.String(), "-")
	if len(slug) > slugMaxLength {
		slug = slug[:slugMaxLength]
		if idx := strings.LastIndex(slug, "-"); idx > 0 {
			slug = slug[:idx]
		}
	}
	return slug
}

// atomicWrite writes data to path via a temp file and rename so readers
// never observe a partial entry
func atomicWrite(path string, data []byte) error {
	dir := filepath.Dir(path)

	tmpFile, err := os.CreateTemp(dir, ".tmp-")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	// Clean up temp file on error
	success := false
	defer func() {
		if !success {
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err := tmpFile.Write(data); err != nil {
		_ = tmpFile.Close()
		return fmt.Errorf("write content: %w", err)
	}

	if err := tmpFile.Sync(); err != nil {
		_ = tmpFile.Close()
		return fmt.Errorf("sync: %w", err)
	}

	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Chmod(tmpPath, 0o600); err != nil {
		return fmt.Errorf("chmod: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename: %w", err)
	}

	success = true
	return nil
}

// NoOpStore is a VerdictCache that stores nothing, used when caching
// is disabled
type NoOpStore struct{}

// Get always misses
func (NoOpStore) Get(_ domain.CheckKind, _ string, _ string) (*domain.Verdict, bool) {
	return nil, false
}

// Set drops the verdict
func (NoOpStore) Set(_ domain.CheckKind, _ string, _ string, _ domain.Verdict) {}
