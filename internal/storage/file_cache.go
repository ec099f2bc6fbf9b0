// internal/storage/file_cache.go
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

// FileCacheService provides an in-memory cache over data files. Entries are
// invalidated when the file's mtime or size changes, or after the expiration
// window. Raw bytes are cached; unmarshaling happens per read so that callers
// never share decoded structures.
type FileCacheService struct {
	cache      map[string]*FileCacheEntry
	mutex      sync.RWMutex
	maxSize    int
	expiration time.Duration
}

// FileCacheEntry is one cached file.
type FileCacheEntry struct {
	Raw       []byte
	CreatedAt time.Time
	LastRead  time.Time
	ModTime   time.Time
	Size      int64
}

// NewFileCacheService creates a file cache.
func NewFileCacheService(maxSize int, expiration time.Duration) *FileCacheService {
	if maxSize <= 0 {
		maxSize = 100
	}

	if expiration <= 0 {
		expiration = 5 * time.Minute
	}

	return &FileCacheService{
		cache:      make(map[string]*FileCacheEntry),
		maxSize:    maxSize,
		expiration: expiration,
	}
}

// ReadYAML reads a YAML file through the cache into target.
func (s *FileCacheService) ReadYAML(path string, target interface{}) error {
	raw, err := s.readRaw(path)
	if err != nil {
		return err
	}

	if err := yaml.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("failed to parse YAML %s: %w", path, err)
	}
	return nil
}

// ReadJSON reads a JSON file through the cache into target.
func (s *FileCacheService) ReadJSON(path string, target interface{}) error {
	raw, err := s.readRaw(path)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("failed to parse JSON %s: %w", path, err)
	}
	return nil
}

// readRaw returns the file contents, served from cache when still valid.
func (s *FileCacheService) readRaw(path string) ([]byte, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path %s: %w", path, err)
	}

	s.mutex.RLock()
	entry, exists := s.cache[absPath]
	s.mutex.RUnlock()

	if exists {
		fileInfo, statErr := os.Stat(absPath)
		if statErr == nil {
			isModified := fileInfo.ModTime().After(entry.ModTime) || fileInfo.Size() != entry.Size
			isExpired := time.Since(entry.CreatedAt) > s.expiration

			if !isModified && !isExpired {
				s.mutex.Lock()
				entry.LastRead = time.Now()
				s.mutex.Unlock()
				return entry.Raw, nil
			}
		}
	}

	data, err := os.ReadFile(absPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}

	fileInfo, err := os.Stat(absPath)
	if err == nil {
		s.mutex.Lock()
		s.cache[absPath] = &FileCacheEntry{
			Raw:       data,
			CreatedAt: time.Now(),
			LastRead:  time.Now(),
			ModTime:   fileInfo.ModTime(),
			Size:      fileInfo.Size(),
		}

		// Evict the least recently read entries when over capacity
		if len(s.cache) > s.maxSize {
			s.evictLRU(s.maxSize / 5)
		}
		s.mutex.Unlock()
	}

	return data, nil
}

// evictLRU removes up to n least-recently-read entries. Caller holds the lock.
func (s *FileCacheService) evictLRU(n int) {
	if n <= 0 {
		n = 1
	}

	for i := 0; i < n && len(s.cache) > 0; i++ {
		oldestKey := ""
		var oldestTime time.Time
		for key, entry := range s.cache {
			if oldestKey == "" || entry.LastRead.Before(oldestTime) {
				oldestKey = key
				oldestTime = entry.LastRead
			}
		}
		delete(s.cache, oldestKey)
	}
}

// Invalidate drops one path from the cache.
func (s *FileCacheService) Invalidate(path string) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return
	}

	s.mutex.Lock()
	delete(s.cache, absPath)
	s.mutex.Unlock()
}

// Clear drops all cached entries.
func (s *FileCacheService) Clear() {
	s.mutex.Lock()
	s.cache = make(map[string]*FileCacheEntry)
	s.mutex.Unlock()
}

// Stats reports cache occupancy.
func (s *FileCacheService) Stats() map[string]interface{} {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	return map[string]interface{}{
		"entries":    len(s.cache),
		"max_size":   s.maxSize,
		"expiration": s.expiration.String(),
	}
}
