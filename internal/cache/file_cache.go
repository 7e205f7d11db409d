package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"time"
)

const cacheExt = ".cache"

// FileCache stores response bodies on disk, one file per key. Freshness is
// judged by the file's modification time, so entries are stored verbatim and
// large dataset bodies are never re-encoded.
type FileCache struct {
	dir string
	ttl time.Duration
	now func() time.Time
}

// NewFileCache creates a new file cache
func NewFileCache(dir string, ttl time.Duration) (*FileCache, error) {
	// Create cache directory if it doesn't exist (0750 for security)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, err
	}

	return &FileCache{
		dir: dir,
		ttl: ttl,
		now: time.Now,
	}, nil
}

// DefaultCacheDir returns the default cache directory
func DefaultCacheDir() string {
	if xdgCache := os.Getenv("XDG_CACHE_HOME"); xdgCache != "" {
		return filepath.Join(xdgCache, "railsearch")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "railsearch-cache")
	}

	return filepath.Join(home, ".cache", "railsearch")
}

// Dir returns the cache directory.
func (c *FileCache) Dir() string { return c.dir }

// keyToFilename converts a cache key (URL) to a filename
func (c *FileCache) keyToFilename(key string) string {
	hash := sha256.Sum256([]byte(key))
	return filepath.Join(c.dir, hex.EncodeToString(hash[:])+cacheExt)
}

// Get returns the cached body for key if it exists and has not expired.
func (c *FileCache) Get(key string) ([]byte, bool) {
	filename := c.keyToFilename(key)

	info, err := os.Stat(filename)
	if err != nil {
		return nil, false
	}
	if c.expired(info) {
		_ = os.Remove(filename)
		return nil, false
	}

	// #nosec G304 -- filename is derived from hash of cache key, not user input
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, false
	}
	return data, true
}

// Age reports how long ago key was stored.
func (c *FileCache) Age(key string) (time.Duration, bool) {
	info, err := os.Stat(c.keyToFilename(key))
	if err != nil {
		return 0, false
	}
	return c.now().Sub(info.ModTime()), true
}

// Set stores a value in the cache. The write goes through a temp file so a
// reader never sees a partial body.
func (c *FileCache) Set(key string, value []byte) error {
	filename := c.keyToFilename(key)

	tmp, err := os.CreateTemp(c.dir, "tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(value); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	// Use 0600 for cache files to restrict access to owner only
	if err := os.Chmod(tmpName, 0600); err != nil {
		_ = os.Remove(tmpName)
		return err
	}

	now := c.now()
	if err := os.Chtimes(tmpName, now, now); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	return os.Rename(tmpName, filename)
}

// Delete removes a single entry. Missing entries are not an error.
func (c *FileCache) Delete(key string) error {
	err := os.Remove(c.keyToFilename(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// Clear removes all cache entries
func (c *FileCache) Clear() error {
	return c.removeWhere(func(os.FileInfo) bool { return true })
}

// Cleanup removes expired entries
func (c *FileCache) Cleanup() error {
	return c.removeWhere(c.expired)
}

func (c *FileCache) expired(info os.FileInfo) bool {
	return c.now().After(info.ModTime().Add(c.ttl))
}

func (c *FileCache) removeWhere(match func(os.FileInfo) bool) error {
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != cacheExt {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if match(info) {
			_ = os.Remove(filepath.Join(c.dir, entry.Name()))
		}
	}

	return nil
}
