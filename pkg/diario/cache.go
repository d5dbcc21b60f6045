package diario

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// EditionResult is the cached outcome of fetching one edition: whether an
// edition was published for the date, and its extracted text if so.
// Caching the negative result matters as much as the positive one, since
// weekends and holidays make missing editions routine.
type EditionResult struct {
	Found bool   `json:"found"`
	Text  string `json:"text,omitempty"`
}

// DiskCache provides persistent, file-based caching for fetched editions.
// Each cached entry is stored as a JSON file keyed by a SHA-256 hash of the
// edition URL.
type DiskCache struct {
	cacheDir string
	cacheTTL time.Duration
}

// diskCacheEntry wraps an EditionResult with an expiration timestamp for TTL
// enforcement.
type diskCacheEntry struct {
	Result    EditionResult `json:"result"`
	ExpiresAt time.Time     `json:"expires_at"`
}

// NewDiskCache creates a new disk cache in the given directory with the
// specified TTL. Creates the directory if it does not exist.
func NewDiskCache(cacheDir string, cacheTTL time.Duration) (*DiskCache, error) {
	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory %s: %w", cacheDir, err)
	}

	return &DiskCache{
		cacheDir: cacheDir,
		cacheTTL: cacheTTL,
	}, nil
}

// Get retrieves a cached edition result for the given URL.
// Returns the result and true if found and not expired.
func (cache *DiskCache) Get(url string) (EditionResult, bool) {
	cacheFilePath := cache.pathFor(url)

	data, err := os.ReadFile(cacheFilePath)
	if err != nil {
		return EditionResult{}, false
	}

	var entry diskCacheEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return EditionResult{}, false
	}

	if time.Now().After(entry.ExpiresAt) {
		// Entry expired — remove stale file.
		_ = os.Remove(cacheFilePath)
		return EditionResult{}, false
	}

	return entry.Result, true
}

// Set stores an edition result in the cache for the given URL.
func (cache *DiskCache) Set(url string, result EditionResult) error {
	entry := diskCacheEntry{
		Result:    result,
		ExpiresAt: time.Now().Add(cache.cacheTTL),
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal cache entry: %w", err)
	}

	cacheFilePath := cache.pathFor(url)
	if err := os.WriteFile(cacheFilePath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write cache file %s: %w", cacheFilePath, err)
	}

	return nil
}

// keyFor returns the SHA-256 hash of the URL, used as the cache filename.
func (cache *DiskCache) keyFor(url string) string {
	hash := sha256.Sum256([]byte(url))
	return hex.EncodeToString(hash[:])
}

// pathFor returns the full file path for a cached URL.
func (cache *DiskCache) pathFor(url string) string {
	return filepath.Join(cache.cacheDir, cache.keyFor(url)+".json")
}
