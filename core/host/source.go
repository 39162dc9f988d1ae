// Package host provides the build-module snapshots the project generator
// renders from. A ModuleSource stands in for the game editor's compilation
// pipeline: it lists modules, their sources and their references.
package host

import (
	apperrors "github.com/tristendillon/antigravity/core/errors"
	"github.com/tristendillon/antigravity/core/models"
)

type ModuleSource interface {
	GetModules() ([]models.Module, error)
	GetProjectDisplayName() (string, error)
	GetProjectRootDirectory() (string, error)
}

// Snapshot is one consistent view of a project: its display name, root
// directory and modules.
type Snapshot struct {
	Name    string
	Root    string
	Modules []models.Module
}

// Snapshotter is implemented by sources that can produce a whole Snapshot
// from a single read of their backing data.
type Snapshotter interface {
	Snapshot() (Snapshot, error)
}

// TakeSnapshot reads src once through Snapshot when it supports it, and
// through the three ModuleSource calls otherwise. Errors are discovery
// errors.
func TakeSnapshot(src ModuleSource) (Snapshot, error) {
	if s, ok := src.(Snapshotter); ok {
		snap, err := s.Snapshot()
		if err != nil {
			return Snapshot{}, wrapDiscovery("read project", err)
		}
		return snap, nil
	}

	var (
		snap Snapshot
		err  error
	)
	if snap.Modules, err = src.GetModules(); err != nil {
		return Snapshot{}, wrapDiscovery("list modules", err)
	}
	if snap.Name, err = src.GetProjectDisplayName(); err != nil {
		return Snapshot{}, wrapDiscovery("read project name", err)
	}
	if snap.Root, err = src.GetProjectRootDirectory(); err != nil {
		return Snapshot{}, wrapDiscovery("read project root", err)
	}
	return snap, nil
}

func wrapDiscovery(message string, err error) error {
	if apperrors.Is(err, apperrors.KindDiscovery) {
		return err
	}
	return apperrors.New(apperrors.KindDiscovery, message, err)
}

// StaticSource returns fixed values. Err, when set, is returned by
// GetModules.
type StaticSource struct {
	Name    string
	Root    string
	Modules []models.Module
	Err     error
}

func (s *StaticSource) GetModules() ([]models.Module, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	out := make([]models.Module, len(s.Modules))
	copy(out, s.Modules)
	return out, nil
}

func (s *StaticSource) GetProjectDisplayName() (string, error) {
	return s.Name, nil
}

func (s *StaticSource) GetProjectRootDirectory() (string, error) {
	return s.Root, nil
}
