package generator

import (
	"fmt"
	"path/filepath"
	"strings"

	apperrors "github.com/tristendillon/antigravity/core/errors"
	"github.com/tristendillon/antigravity/core/host"
	"github.com/tristendillon/antigravity/core/identifier"
	"github.com/tristendillon/antigravity/core/logger"
	"github.com/tristendillon/antigravity/core/models"
	"github.com/tristendillon/antigravity/core/syncpolicy"
	"github.com/tristendillon/antigravity/core/template_engine"
	"github.com/tristendillon/antigravity/core/writer"
)

const (
	SolutionExtension = ".sln"
	ProjectExtension  = ".csproj"

	languageVersion = "latest"
)

// ProjectGenerator renders the solution and per-module project files for the
// modules reported by a ModuleSource and hands them to a DocumentSink.
// Calls must not overlap.
type ProjectGenerator struct {
	source  host.ModuleSource
	sink    writer.DocumentSink
	policy  *syncpolicy.Policy
	deriver identifier.Deriver
	engine  *template_engine.TemplateEngine
}

type Option func(*ProjectGenerator)

func WithPolicy(policy *syncpolicy.Policy) Option {
	return func(pg *ProjectGenerator) {
		if policy != nil {
			pg.policy = policy
		}
	}
}

func WithDeriver(deriver identifier.Deriver) Option {
	return func(pg *ProjectGenerator) {
		pg.deriver = deriver
	}
}

func New(source host.ModuleSource, sink writer.DocumentSink, opts ...Option) *ProjectGenerator {
	pg := &ProjectGenerator{
		source:  source,
		sink:    sink,
		policy:  syncpolicy.New(),
		deriver: identifier.Default(),
		engine:  template_engine.NewTemplateEngine(),
	}
	for _, opt := range opts {
		opt(pg)
	}
	return pg
}

// SyncIfNeeded regenerates the project files when the request touches a
// source file. It reports whether a sync was attempted; write failures are
// logged, not returned.
func (pg *ProjectGenerator) SyncIfNeeded(req models.SyncRequest) bool {
	affected := req.Affected()
	if !pg.policy.ShouldSync(affected) {
		logger.Debug("No source changes among %d affected paths, skipping sync", len(affected))
		return false
	}
	pg.Sync()
	return true
}

// Sync regenerates every document. It never fails: problems are logged and
// the documents that could be written stay written.
func (pg *ProjectGenerator) Sync() {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Failed to generate project files: %v", r)
		}
	}()

	report, err := pg.SyncWithReport()
	if err != nil {
		logger.Error("Failed to generate project files: %v", err)
		return
	}

	for _, failed := range report.Failed() {
		logger.Error("Failed to write %s: %v", failed.TargetPath, failed.Err)
	}
	if report.OK() {
		logger.Info("Successfully generated %d project files", len(report.Documents))
	} else {
		logger.Warn("Generated %d of %d project files", len(report.Written()), len(report.Documents))
	}
}

// SyncWithReport renders all documents and writes them, solution first.
// Discovery and render problems abort before anything is written and are
// returned; write failures are recorded per document and do not stop the
// remaining writes.
func (pg *ProjectGenerator) SyncWithReport() (models.SyncReport, error) {
	docs, err := pg.Render()
	if err != nil {
		return models.SyncReport{}, err
	}

	report := models.SyncReport{Documents: make([]models.DocumentResult, 0, len(docs))}
	for _, doc := range docs {
		err := pg.sink.Write(doc.TargetPath, doc.Content)
		if err != nil && apperrors.KindOf(err) == "" {
			err = apperrors.NewPath(apperrors.KindPersist, "write", doc.TargetPath, err)
		}
		if err == nil {
			logger.Debug("Wrote %s", doc.TargetPath)
		}
		report.Documents = append(report.Documents, models.DocumentResult{TargetPath: doc.TargetPath, Err: err})
	}
	return report, nil
}

// Render builds the solution document followed by one project document per
// module, in module order. Nothing is written.
func (pg *ProjectGenerator) Render() ([]models.Document, error) {
	snap, err := host.TakeSnapshot(pg.source)
	if err != nil {
		return nil, err
	}
	projectName, root, modules := snap.Name, snap.Root, snap.Modules
	if err := validateSnapshot(projectName, root, modules); err != nil {
		return nil, err
	}

	docs := make([]models.Document, 0, len(modules)+1)

	solution, err := pg.RenderSolution(modules)
	if err != nil {
		return nil, err
	}
	docs = append(docs, models.Document{
		TargetPath: filepath.Join(root, projectName+SolutionExtension),
		Content:    solution,
	})

	for _, module := range modules {
		content, err := pg.RenderProject(root, module)
		if err != nil {
			return nil, err
		}
		docs = append(docs, models.Document{
			TargetPath: filepath.Join(root, module.Name+ProjectExtension),
			Content:    content,
		})
	}

	return docs, nil
}

type solutionProject struct {
	Name     string
	FileName string
	GUID     string
}

type solutionData struct {
	Projects []solutionProject
}

func (pg *ProjectGenerator) RenderSolution(modules []models.Module) (string, error) {
	data := solutionData{Projects: make([]solutionProject, 0, len(modules))}
	for _, m := range modules {
		data.Projects = append(data.Projects, solutionProject{
			Name:     m.Name,
			FileName: m.Name + ProjectExtension,
			GUID:     pg.deriver.Derive(m.Name).Braced(),
		})
	}
	return pg.engine.Render(template_engine.TEMPLATES.SOLUTION_SLN, data)
}

type projectData struct {
	GUID        string
	Name        string
	LangVersion string
	AllowUnsafe bool
	Compile     []string
	References  []string
}

// RenderProject renders the project document of one module. Compile items
// are relative to root.
func (pg *ProjectGenerator) RenderProject(root string, module models.Module) (string, error) {
	data := projectData{
		GUID:        pg.deriver.Derive(module.Name).Braced(),
		Name:        module.Name,
		LangVersion: languageVersion,
		AllowUnsafe: true,
		Compile:     make([]string, 0, len(module.SourceFiles)),
		References:  module.References,
	}
	for _, src := range module.SourceFiles {
		data.Compile = append(data.Compile, RelativePath(root, src))
	}
	return pg.engine.Render(template_engine.TEMPLATES.PROJECT_CSPROJ, data)
}

func validateSnapshot(projectName, root string, modules []models.Module) error {
	if strings.TrimSpace(projectName) == "" {
		return apperrors.New(apperrors.KindDiscovery, "project name is empty", nil)
	}
	if strings.TrimSpace(root) == "" {
		return apperrors.New(apperrors.KindDiscovery, "project root is empty", nil)
	}
	seen := make(map[string]struct{}, len(modules))
	for i, m := range modules {
		if m.Name == "" {
			return apperrors.New(apperrors.KindDiscovery, fmt.Sprintf("module #%d has no name", i+1), nil)
		}
		if _, dup := seen[m.Name]; dup {
			return apperrors.New(apperrors.KindDiscovery, fmt.Sprintf("module %q listed twice", m.Name), nil)
		}
		seen[m.Name] = struct{}{}
	}
	return nil
}
