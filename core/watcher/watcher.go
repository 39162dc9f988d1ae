// Package watcher turns filesystem events under a game project into
// debounced SyncRequests.
package watcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"
	"github.com/tristendillon/antigravity/core/logger"
	"github.com/tristendillon/antigravity/core/models"
)

const defaultDebounce = 500 * time.Millisecond

// Editor caches, build output and the files the generator writes itself.
var defaultIgnores = []string{
	"**/.git/**",
	"Library/**",
	"Temp/**",
	"obj/**",
	"Logs/**",
	"**/*.csproj",
	"**/*.sln",
	"**/.*.tmp-*",
}

type Config struct {
	Root string
	// Ignore is merged with the default ignores. Patterns are doublestar
	// globs relative to Root.
	Ignore   []string
	Debounce time.Duration

	OnStart  func() error
	OnChange func(ctx context.Context, req models.SyncRequest) error
	OnClose  func() error
}

// Watcher watches every non-ignored directory under Root. Run must be called
// once.
type Watcher struct {
	cfg      Config
	fsw      *fsnotify.Watcher
	root     string
	ignores  []string
	debounce time.Duration
	started  atomic.Bool
}

func New(cfg Config) (*Watcher, error) {
	root := cfg.Root
	if root == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("cannot determine working dir: %w", err)
		}
		root = wd
	}
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve watch root: %w", err)
	}

	for _, pat := range cfg.Ignore {
		if !doublestar.ValidatePattern(pat) {
			return nil, fmt.Errorf("invalid ignore pattern %q", pat)
		}
	}

	debounce := cfg.Debounce
	if debounce <= 0 {
		debounce = defaultDebounce
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	w := &Watcher{
		cfg:      cfg,
		fsw:      fsw,
		root:     absRoot,
		ignores:  append(append([]string{}, defaultIgnores...), cfg.Ignore...),
		debounce: debounce,
	}
	logger.Debug("Excluding paths: %v", w.ignores)

	if err := w.addWatchersRecursively(); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("failed to add watchers: %w", err)
	}
	return w, nil
}

func (w *Watcher) Root() string {
	return w.root
}

// Run processes events until ctx is canceled. Changes are collected for the
// debounce period and handed to OnChange as one request. OnChange never runs
// twice at once; a flush that finds it busy is retried later.
func (w *Watcher) Run(ctx context.Context) error {
	if !w.started.CompareAndSwap(false, true) {
		return fmt.Errorf("watcher already running")
	}

	var (
		mu      sync.Mutex
		pending = &batch{}
		timer   *time.Timer
		busy    atomic.Bool
	)

	flush := func() {
		if ctx.Err() != nil {
			return
		}
		if !busy.CompareAndSwap(false, true) {
			logger.Debug("Sync still running, postponing changes")
			mu.Lock()
			timer.Reset(w.debounce)
			mu.Unlock()
			return
		}
		defer busy.Store(false)

		mu.Lock()
		if pending.empty() {
			mu.Unlock()
			return
		}
		req := pending.request()
		pending = &batch{}
		mu.Unlock()

		logger.Debug("File changes detected: %d affected, %d imported", len(req.Affected()), len(req.Imported))
		if w.cfg.OnChange != nil {
			if err := w.cfg.OnChange(ctx, req); err != nil {
				logger.Error("Watcher.OnChange failed: %v", err)
			}
		}
	}

	defer func() {
		mu.Lock()
		if timer != nil {
			timer.Stop()
		}
		mu.Unlock()
		if w.cfg.OnClose != nil {
			if err := w.cfg.OnClose(); err != nil {
				logger.Error("Watcher.OnClose failed: %v", err)
			}
		}
		if err := w.fsw.Close(); err != nil {
			logger.Error("Failed to close file watcher: %v", err)
		}
	}()

	if w.cfg.OnStart != nil {
		if err := w.cfg.OnStart(); err != nil {
			logger.Error("Watcher.OnStart failed: %v", err)
		}
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fsw.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}

			rel, err := filepath.Rel(w.root, event.Name)
			if err != nil {
				rel = event.Name
			}
			rel = filepath.ToSlash(rel)
			if w.isIgnored(rel) {
				continue
			}

			changes := []string{rel}
			if event.Has(fsnotify.Create) {
				if files, isDir := w.maybeAddDir(event.Name, rel); isDir {
					changes = files
				}
			}

			c := classify(event.Op)
			if c == changeNone || len(changes) == 0 {
				continue
			}
			logger.Debug("File event: %s %s", event.Op, rel)

			mu.Lock()
			for _, p := range changes {
				pending.add(c, p)
			}
			if timer == nil {
				timer = time.AfterFunc(w.debounce, flush)
			} else {
				timer.Reset(w.debounce)
			}
			mu.Unlock()

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			if isFatalFsnotifyError(err) {
				return fmt.Errorf("fatal watcher error: %w", err)
			}
			logger.Error("Watcher error: %v", err)
		}
	}
}

func (w *Watcher) isIgnored(rel string) bool {
	for _, pat := range w.ignores {
		if matched, err := doublestar.Match(pat, rel); err == nil && matched {
			return true
		}
	}
	return false
}

func (w *Watcher) isIgnoredDir(rel string) bool {
	return rel != "." && (w.isIgnored(rel) || w.isIgnored(rel+"/"))
}

// maybeAddDir starts watching a newly created directory tree and returns
// the files already inside it, which arrive without events of their own
// when the directory was moved in.
func (w *Watcher) maybeAddDir(path, rel string) ([]string, bool) {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return nil, false
	}
	if w.isIgnoredDir(rel) {
		return nil, true
	}
	logger.Debug("Adding watcher for new directory: %s", rel)
	files, err := w.walk(path)
	if err != nil {
		logger.Error("Failed to watch %s: %v", path, err)
	}
	return files, true
}

func (w *Watcher) addWatchersRecursively() error {
	_, err := w.walk(w.root)
	return err
}

// walk adds a watch for every non-ignored directory under dir and returns
// the non-ignored files it saw, relative to the root.
func (w *Watcher) walk(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			logger.Warn("Skipping inaccessible path %s: %v", path, err)
			return nil
		}

		rel, err := filepath.Rel(w.root, path)
		if err != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)

		if !d.IsDir() {
			if !w.isIgnored(rel) {
				files = append(files, rel)
			}
			return nil
		}
		if w.isIgnoredDir(rel) {
			logger.Debug("Excluding directory: %s", rel)
			return filepath.SkipDir
		}

		if err := w.fsw.Add(path); err != nil {
			return fmt.Errorf("failed to add watcher for %s: %w", path, err)
		}
		return nil
	})
	return files, err
}
