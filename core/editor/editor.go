// Package editor is the entry point a game-editor host drives: it forwards
// change notifications to the project generator and opens files in the
// discovered Antigravity installation.
package editor

import (
	"context"
	"os"
	"strings"

	"github.com/tristendillon/antigravity/core/launcher"
	"github.com/tristendillon/antigravity/core/logger"
	"github.com/tristendillon/antigravity/core/models"
)

type Discovery interface {
	Installations() []models.Installation
}

type Generator interface {
	Sync()
	SyncIfNeeded(req models.SyncRequest) bool
}

type Opener interface {
	Open(ctx context.Context, editorPath string, loc launcher.Location) error
}

type Editor struct {
	discovery Discovery
	generator Generator
	opener    Opener
	getwd     func() (string, error)
}

type Option func(*Editor)

func WithOpener(o Opener) Option {
	return func(e *Editor) { e.opener = o }
}

func WithGetwd(getwd func() (string, error)) Option {
	return func(e *Editor) { e.getwd = getwd }
}

func New(discovery Discovery, generator Generator, opts ...Option) *Editor {
	e := &Editor{
		discovery: discovery,
		generator: generator,
		opener:    launcher.New(),
		getwd:     os.Getwd,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Register builds an Editor only for the main host process. Batch and
// worker processes get nil and must not sync or open anything.
func Register(host HostProcess, discovery Discovery, generator Generator, opts ...Option) *Editor {
	if !host.IsMainProcess() {
		logger.Debug("Not the main process, editor integration disabled")
		return nil
	}
	return New(discovery, generator, opts...)
}

func (e *Editor) Installations() []models.Installation {
	return e.discovery.Installations()
}

// TryGetInstallationForPath finds the installation whose path equals
// editorPath, ignoring case.
func (e *Editor) TryGetInstallationForPath(editorPath string) (models.Installation, bool) {
	for _, install := range e.Installations() {
		if strings.EqualFold(install.Path, editorPath) {
			return install, true
		}
	}
	return models.Installation{}, false
}

func (e *Editor) SyncAll() {
	e.generator.Sync()
}

// SyncIfNeeded regenerates the project files when any added, deleted or
// moved path is a source file. Imported files alone never trigger a sync.
func (e *Editor) SyncIfNeeded(added, deleted, moved, movedFrom, imported []string) bool {
	return e.generator.SyncIfNeeded(models.SyncRequest{
		Added:     added,
		Deleted:   deleted,
		Moved:     moved,
		MovedFrom: movedFrom,
		Imported:  imported,
	})
}

// OpenProject opens filePath at line and column; negative values are
// omitted. An empty filePath opens the working directory.
func (e *Editor) OpenProject(ctx context.Context, filePath string, line, column int) bool {
	if filePath == "" {
		wd, err := e.getwd()
		if err != nil {
			logger.Error("Failed to determine working directory: %v", err)
			return false
		}
		filePath = wd
	}

	installs := e.Installations()
	if len(installs) == 0 {
		logger.Warn("Antigravity is not installed or cannot be found.")
		return false
	}

	loc := launcher.Location{Path: filePath, Line: line, Column: column}
	if err := e.opener.Open(ctx, installs[0].Path, loc); err != nil {
		logger.Error("Failed to open file in Antigravity: %v", err)
		return false
	}
	return true
}

// Initialize reports whether an installation is available. The path the
// host passes is not consulted.
func (e *Editor) Initialize(editorInstallationPath string) bool {
	return len(e.Installations()) > 0
}
