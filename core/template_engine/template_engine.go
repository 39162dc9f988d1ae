package template_engine

import (
	"bytes"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strings"
	"sync"
	"text/template"

	apperrors "github.com/tristendillon/antigravity/core/errors"
	"github.com/tristendillon/antigravity/core/logger"
)

type TemplateRef struct {
	Path  string
	IsDir bool
}

func (tr TemplateRef) IsDirectory() bool {
	return tr.IsDir
}

type TemplateEngine struct {
	funcMap template.FuncMap

	mu     sync.Mutex
	parsed map[string]*template.Template
}

// xmlEscaper escapes the characters that would break an XML attribute or
// text node. Apostrophes are left alone so plain paths render unchanged.
var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

func EscapeXML(s string) string {
	return xmlEscaper.Replace(s)
}

// Stem is the file name without its last extension:
// Libs/Newtonsoft.Json.dll becomes Newtonsoft.Json.
func Stem(p string) string {
	base := filepath.Base(p)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func getDefaultFuncMap() template.FuncMap {
	return template.FuncMap{
		"xml":  EscapeXML,
		"join": strings.Join,
		"stem": Stem,
	}
}

func NewTemplateEngine() *TemplateEngine {
	return &TemplateEngine{
		funcMap: getDefaultFuncMap(),
		parsed:  make(map[string]*template.Template),
	}
}

func (te *TemplateEngine) load(templateRef TemplateRef) (*template.Template, error) {
	if templateRef.IsDirectory() {
		return nil, fmt.Errorf("cannot render from directory reference: %s", templateRef.Path)
	}

	te.mu.Lock()
	defer te.mu.Unlock()

	if tmpl, ok := te.parsed[templateRef.Path]; ok {
		return tmpl, nil
	}

	templatePath := path.Join("templates", templateRef.Path)
	content, err := TemplateFS.ReadFile(templatePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read template file %s: %w", templatePath, err)
	}

	tmpl, err := template.New(path.Base(templateRef.Path)).
		Option("missingkey=error").
		Funcs(te.funcMap).
		Parse(string(content))
	if err != nil {
		return nil, fmt.Errorf("failed to parse template %s: %w", templateRef.Path, err)
	}

	logger.Debug("Parsed template %s", templateRef.Path)
	te.parsed[templateRef.Path] = tmpl
	return tmpl, nil
}

// RenderTo executes the referenced template into w.
func (te *TemplateEngine) RenderTo(w io.Writer, templateRef TemplateRef, data interface{}) error {
	tmpl, err := te.load(templateRef)
	if err != nil {
		return apperrors.New(apperrors.KindRender, "load template", err)
	}
	if err := tmpl.Execute(w, data); err != nil {
		return apperrors.New(apperrors.KindRender, "execute template "+templateRef.Path, err)
	}
	return nil
}

// Render executes the referenced template and returns the output.
func (te *TemplateEngine) Render(templateRef TemplateRef, data interface{}) (string, error) {
	var buf bytes.Buffer
	if err := te.RenderTo(&buf, templateRef, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
