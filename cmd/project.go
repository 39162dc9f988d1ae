package cmd

import (
	"github.com/tristendillon/antigravity/core/config"
	"github.com/tristendillon/antigravity/core/discovery"
	"github.com/tristendillon/antigravity/core/editor"
	apperrors "github.com/tristendillon/antigravity/core/errors"
	"github.com/tristendillon/antigravity/core/generator"
	"github.com/tristendillon/antigravity/core/host"
	"github.com/tristendillon/antigravity/core/identifier"
	"github.com/tristendillon/antigravity/core/logger"
	"github.com/tristendillon/antigravity/core/syncpolicy"
	"github.com/tristendillon/antigravity/core/writer"
)

// moduleSource picks the module manifest when one is configured and scans
// the Assets folder otherwise.
func moduleSource(c *config.Config) (host.ModuleSource, error) {
	if c.Project.Manifest != "" {
		logger.Debug("Reading modules from manifest %s", c.Project.Manifest)
		return host.NewManifestSource(c.Project.Manifest), nil
	}
	if !host.IsGameProject(c.Project.Root) {
		return nil, apperrors.NewPath(apperrors.KindUsage, "no Assets folder and no project.manifest configured in", c.Project.Root, nil)
	}
	src := host.NewAssetsSource(c.Project.Root, c.References)
	src.Name = c.Project.Name
	return src, nil
}

func newGenerator(c *config.Config, sink writer.DocumentSink) (*generator.ProjectGenerator, error) {
	src, err := moduleSource(c)
	if err != nil {
		return nil, err
	}
	return generator.New(src, sink,
		generator.WithPolicy(syncpolicy.New(c.Sync.Extensions...)),
		generator.WithDeriver(identifier.NewDeriver(c.Sync.Salt)),
	), nil
}

func newLocator(c *config.Config) *discovery.Locator {
	return discovery.NewLocator(c.Editor.Path)
}

// newEditor wires the host-facing facade. It returns nil in batch mode.
func newEditor(c *config.Config) (*editor.Editor, error) {
	gen, err := newGenerator(c, writer.NewCachedSink(writer.NewFileWriter()))
	if err != nil {
		return nil, err
	}
	return editor.Register(editor.EnvHost{Batch: c.Batch}, newLocator(c), gen), nil
}
