package host

import (
	"bytes"
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
	apperrors "github.com/tristendillon/antigravity/core/errors"
	"github.com/tristendillon/antigravity/core/logger"
	"github.com/tristendillon/antigravity/core/models"
	"gopkg.in/yaml.v3"
)

type Manifest struct {
	Project ManifestProject  `yaml:"project"`
	Modules []ManifestModule `yaml:"modules"`
}

type ManifestProject struct {
	Name string `yaml:"name"`
	Root string `yaml:"root"`
}

type ManifestModule struct {
	Name       string   `yaml:"name"`
	Sources    []string `yaml:"sources"`
	References []string `yaml:"references"`
}

// ManifestSource reads modules from a YAML manifest. The file is re-read for
// every snapshot so each sync sees the current content. Relative paths are
// resolved against the project root, which itself defaults to the
// manifest's directory.
type ManifestSource struct {
	Path string
	Fs   afero.Fs
}

func NewManifestSource(path string) *ManifestSource {
	return NewManifestSourceFs(afero.NewOsFs(), path)
}

func NewManifestSourceFs(fs afero.Fs, path string) *ManifestSource {
	return &ManifestSource{Path: path, Fs: fs}
}

func (ms *ManifestSource) load() (*Manifest, string, error) {
	data, err := afero.ReadFile(ms.Fs, ms.Path)
	if err != nil {
		return nil, "", apperrors.NewPath(apperrors.KindDiscovery, "read manifest", ms.Path, err)
	}

	var manifest Manifest
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&manifest); err != nil {
		return nil, "", apperrors.NewPath(apperrors.KindDiscovery, "parse manifest", ms.Path, err)
	}

	root, err := ms.resolveRoot(manifest.Project.Root)
	if err != nil {
		return nil, "", err
	}
	logger.Debug("Loaded manifest %s with %d modules", ms.Path, len(manifest.Modules))
	return &manifest, root, nil
}

func (ms *ManifestSource) resolveRoot(root string) (string, error) {
	manifestDir := filepath.Dir(ms.Path)
	if root == "" {
		root = manifestDir
	} else if !filepath.IsAbs(root) {
		root = filepath.Join(manifestDir, root)
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", apperrors.NewPath(apperrors.KindDiscovery, "resolve project root", root, err)
	}
	return abs, nil
}

// Snapshot parses the manifest once and derives name, root and modules
// from that single read.
func (ms *ManifestSource) Snapshot() (Snapshot, error) {
	manifest, root, err := ms.load()
	if err != nil {
		return Snapshot{}, err
	}

	modules := make([]models.Module, 0, len(manifest.Modules))
	for i, m := range manifest.Modules {
		if m.Name == "" {
			return Snapshot{}, apperrors.NewPath(apperrors.KindDiscovery,
				fmt.Sprintf("module #%d has no name in", i+1), ms.Path, nil)
		}
		modules = append(modules, models.Module{
			Name:        m.Name,
			SourceFiles: resolveAll(root, m.Sources),
			References:  resolveAll(root, m.References),
		})
	}

	name := manifest.Project.Name
	if name == "" {
		name = filepath.Base(root)
	}
	return Snapshot{Name: name, Root: root, Modules: modules}, nil
}

func (ms *ManifestSource) GetModules() ([]models.Module, error) {
	snap, err := ms.Snapshot()
	return snap.Modules, err
}

func (ms *ManifestSource) GetProjectDisplayName() (string, error) {
	snap, err := ms.Snapshot()
	return snap.Name, err
}

func (ms *ManifestSource) GetProjectRootDirectory() (string, error) {
	snap, err := ms.Snapshot()
	return snap.Root, err
}

func resolveAll(root string, paths []string) []string {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		p = filepath.FromSlash(p)
		if !filepath.IsAbs(p) {
			p = filepath.Join(root, p)
		}
		out = append(out, p)
	}
	return out
}
