package template_engine

import "embed"

//go:embed templates
var TemplateFS embed.FS

var TEMPLATES = struct {
	SOLUTION_SLN   TemplateRef
	PROJECT_CSPROJ TemplateRef
	CONFIG_YAML    TemplateRef
}{
	SOLUTION_SLN:   TemplateRef{Path: "solution.sln.tmpl"},
	PROJECT_CSPROJ: TemplateRef{Path: "project.csproj.tmpl"},
	CONFIG_YAML:    TemplateRef{Path: "antigravity.yaml.tmpl"},
}
