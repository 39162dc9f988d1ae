// Package discovery finds the Antigravity editor on this machine by probing
// the usual per-OS installation paths.
package discovery

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/spf13/afero"
	"github.com/tristendillon/antigravity/core/logger"
	"github.com/tristendillon/antigravity/core/models"
)

const (
	EditorName = "Antigravity"
	binaryName = "antigravity"
)

type candidate struct {
	path string
	dir  bool
}

// Locator probes candidate paths in order and keeps the first existing one.
// Zero fields fall back to the running system.
type Locator struct {
	// Override, when set, is checked before the platform paths.
	Override string

	Fs       afero.Fs
	GOOS     string
	Home     string
	Getenv   func(string) string
	LookPath func(string) (string, error)
}

func NewLocator(override string) *Locator {
	return &Locator{Override: override}
}

func (l *Locator) fs() afero.Fs {
	if l.Fs != nil {
		return l.Fs
	}
	return afero.NewOsFs()
}

func (l *Locator) goos() string {
	if l.GOOS != "" {
		return l.GOOS
	}
	return runtime.GOOS
}

func (l *Locator) home() string {
	if l.Home != "" {
		return l.Home
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return home
}

func (l *Locator) getenv(key string) string {
	if l.Getenv != nil {
		return l.Getenv(key)
	}
	return os.Getenv(key)
}

func (l *Locator) candidates() []candidate {
	var out []candidate
	home := l.home()

	switch l.goos() {
	case "windows":
		var bases []string
		if local := l.getenv("LOCALAPPDATA"); local != "" {
			bases = append(bases, filepath.Join(local, "Programs"))
		}
		for _, key := range []string{"ProgramFiles", "ProgramFiles(x86)"} {
			if dir := l.getenv(key); dir != "" {
				bases = append(bases, dir)
			}
		}
		for _, base := range bases {
			out = append(out, candidate{path: filepath.Join(base, EditorName, EditorName+".exe")})
		}
	case "darwin":
		out = append(out, candidate{path: "/Applications/" + EditorName + ".app", dir: true})
		if home != "" {
			out = append(out, candidate{path: filepath.Join(home, "Applications", EditorName+".app"), dir: true})
		}
	case "linux":
		out = append(out,
			candidate{path: "/usr/bin/" + binaryName},
			candidate{path: "/usr/local/bin/" + binaryName},
		)
		if home != "" {
			out = append(out, candidate{path: filepath.Join(home, ".local", "bin", binaryName)})
		}
	}
	return out
}

func (l *Locator) exists(c candidate) bool {
	info, err := l.fs().Stat(c.path)
	if err != nil {
		return false
	}
	return info.IsDir() == c.dir
}

// Installations returns at most one installation: the override when it
// exists, else the first platform path that exists, else the first
// antigravity binary on PATH.
func (l *Locator) Installations() []models.Installation {
	if l.Override != "" {
		_, err := l.fs().Stat(l.Override)
		if err == nil {
			return []models.Installation{{Name: EditorName, Path: l.Override}}
		}
		logger.Warn("Configured editor path %s not usable: %v", l.Override, err)
	}

	for _, c := range l.candidates() {
		if l.exists(c) {
			logger.Debug("Found %s at %s", EditorName, c.path)
			return []models.Installation{{Name: EditorName, Path: c.path}}
		}
	}

	lookPath := l.LookPath
	if lookPath == nil {
		lookPath = exec.LookPath
	}
	if p, err := lookPath(binaryName); err == nil {
		logger.Debug("Found %s on PATH at %s", EditorName, p)
		return []models.Installation{{Name: EditorName, Path: p}}
	}

	logger.Debug("No %s installation found", EditorName)
	return nil
}

// Path returns the discovered editor path, or "" when none is installed.
func (l *Locator) Path() string {
	installs := l.Installations()
	if len(installs) == 0 {
		return ""
	}
	return installs[0].Path
}

func (l *Locator) IsInstalled() bool {
	return l.Path() != ""
}
