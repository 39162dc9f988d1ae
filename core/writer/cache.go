package writer

import (
	"crypto/md5"
	"os"
	"sync"
	"time"

	"github.com/spf13/afero"
	"github.com/tristendillon/antigravity/core/logger"
)

// CachedSink skips writes whose content matches what the target already
// holds, so an unchanged project file keeps its modification time and the
// editor does not reload it. A write is skipped only when the file on disk
// holds the same content; the remembered hash saves the read while the
// file's size and modification time are still the ones seen after the last
// write.
type CachedSink struct {
	next DocumentSink
	fs   afero.Fs

	mu      sync.Mutex
	entries map[string]cacheEntry
	stats   struct {
		hits   int64
		misses int64
	}
}

type cacheEntry struct {
	sum     [md5.Size]byte
	size    int64
	modTime time.Time
}

func (e cacheEntry) matches(info os.FileInfo) bool {
	return info.Size() == e.size && info.ModTime().Equal(e.modTime)
}

// NewCachedSink wraps a FileWriter and reads existing files through its
// filesystem.
func NewCachedSink(w *FileWriter) *CachedSink {
	return NewCachedSinkFs(w, w.Fs())
}

// NewCachedSinkFs wraps any sink whose documents can be read back through
// fs. With a nil fs every write goes through.
func NewCachedSinkFs(next DocumentSink, fs afero.Fs) *CachedSink {
	return &CachedSink{
		next:    next,
		fs:      fs,
		entries: make(map[string]cacheEntry),
	}
}

func (c *CachedSink) Write(path, content string) error {
	sum := md5.Sum([]byte(content))

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.unchanged(path, sum) {
		c.stats.hits++
		logger.Debug("Unchanged, not rewriting %s", path)
		return nil
	}
	c.stats.misses++

	if err := c.next.Write(path, content); err != nil {
		delete(c.entries, path)
		return err
	}
	c.remember(path, sum)
	return nil
}

func (c *CachedSink) unchanged(path string, sum [md5.Size]byte) bool {
	if c.fs == nil {
		return false
	}
	info, err := c.fs.Stat(path)
	if err != nil || info.IsDir() {
		delete(c.entries, path)
		return false
	}
	if prev, ok := c.entries[path]; ok && prev.matches(info) {
		return prev.sum == sum
	}

	existing, err := afero.ReadFile(c.fs, path)
	if err != nil {
		delete(c.entries, path)
		return false
	}
	onDisk := md5.Sum(existing)
	c.entries[path] = cacheEntry{sum: onDisk, size: info.Size(), modTime: info.ModTime()}
	return onDisk == sum
}

func (c *CachedSink) remember(path string, sum [md5.Size]byte) {
	if c.fs == nil {
		return
	}
	info, err := c.fs.Stat(path)
	if err != nil {
		delete(c.entries, path)
		return
	}
	c.entries[path] = cacheEntry{sum: sum, size: info.Size(), modTime: info.ModTime()}
}

// Forget drops the remembered state of path, forcing the next write to
// compare against the disk again.
func (c *CachedSink) Forget(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, path)
}

func (c *CachedSink) Stats() (hits, misses int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats.hits, c.stats.misses
}
