package writer

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/spf13/afero"
	apperrors "github.com/tristendillon/antigravity/core/errors"
)

// DocumentSink persists a rendered document. Every call fully replaces the
// content stored under path.
type DocumentSink interface {
	Write(path, content string) error
}

// FileWriter writes documents through an afero filesystem. Content goes to a
// temporary file next to the target which is then renamed over it, so a
// target either holds the new content or keeps the old one.
type FileWriter struct {
	fs   afero.Fs
	perm os.FileMode
}

func NewFileWriter() *FileWriter {
	return NewFileWriterFs(afero.NewOsFs())
}

func NewFileWriterFs(fs afero.Fs) *FileWriter {
	return &FileWriter{fs: fs, perm: 0o644}
}

// NewMemFileWriter returns a FileWriter over an in-memory filesystem.
func NewMemFileWriter() *FileWriter {
	return NewFileWriterFs(afero.NewMemMapFs())
}

func (w *FileWriter) Fs() afero.Fs {
	return w.fs
}

func (w *FileWriter) Write(path, content string) error {
	dir := filepath.Dir(path)
	if err := w.fs.MkdirAll(dir, os.ModePerm); err != nil {
		return apperrors.NewPath(apperrors.KindPersist, "create output directory", dir, err)
	}

	tmp, err := afero.TempFile(w.fs, dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return apperrors.NewPath(apperrors.KindPersist, "create temp file for", path, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.WriteString(content); err != nil {
		tmp.Close()
		w.fs.Remove(tmpName)
		return apperrors.NewPath(apperrors.KindPersist, "write", path, err)
	}
	if err := tmp.Close(); err != nil {
		w.fs.Remove(tmpName)
		return apperrors.NewPath(apperrors.KindPersist, "close temp file for", path, err)
	}
	if err := w.fs.Chmod(tmpName, w.perm); err != nil {
		w.fs.Remove(tmpName)
		return apperrors.NewPath(apperrors.KindPersist, "chmod temp file for", path, err)
	}
	if err := w.fs.Rename(tmpName, path); err != nil {
		w.fs.Remove(tmpName)
		return apperrors.NewPath(apperrors.KindPersist, "replace", path, err)
	}
	return nil
}

// MemoryWriter keeps documents in memory. Paths registered with Fail return
// the given error instead of being stored.
type MemoryWriter struct {
	mu     sync.Mutex
	files  map[string]string
	writes []string
	failOn map[string]error
}

func NewMemoryWriter() *MemoryWriter {
	return &MemoryWriter{
		files:  make(map[string]string),
		failOn: make(map[string]error),
	}
}

func (m *MemoryWriter) Fail(path string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err == nil {
		err = fmt.Errorf("write %s refused", path)
	}
	m.failOn[path] = err
}

// Seed stores content without counting it as a write.
func (m *MemoryWriter) Seed(path, content string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[path] = content
}

func (m *MemoryWriter) Write(path, content string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err, ok := m.failOn[path]; ok {
		return apperrors.NewPath(apperrors.KindPersist, "write", path, err)
	}
	m.files[path] = content
	m.writes = append(m.writes, path)
	return nil
}

func (m *MemoryWriter) Get(path string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	content, ok := m.files[path]
	return content, ok
}

func (m *MemoryWriter) Files() map[string]string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]string, len(m.files))
	for path, content := range m.files {
		out[path] = content
	}
	return out
}

func (m *MemoryWriter) Paths() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	paths := make([]string, 0, len(m.files))
	for path := range m.files {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

// Writes lists successful writes in call order, repeats included.
func (m *MemoryWriter) Writes() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.writes))
	copy(out, m.writes)
	return out
}
