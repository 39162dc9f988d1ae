package host

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	apperrors "github.com/tristendillon/antigravity/core/errors"
	"github.com/tristendillon/antigravity/core/logger"
	"github.com/tristendillon/antigravity/core/models"
)

const (
	DefaultModule       = "Assembly-CSharp"
	DefaultEditorModule = "Assembly-CSharp-Editor"

	assetsPattern   = "Assets/**/*"
	settingsFile    = "ProjectSettings/ProjectSettings.asset"
	productNameKey  = "productName:"
	editorSegment   = "Editor"
	guidReferenceID = "GUID:"
)

type asmdef struct {
	Name           string   `json:"name"`
	References     []string `json:"references"`
	AutoReferenced *bool    `json:"autoReferenced"`
}

func (a asmdef) autoReferenced() bool {
	return a.AutoReferenced == nil || *a.AutoReferenced
}

// AssetsSource derives modules from a game project's Assets folder the way
// the editor's compilation pipeline assigns them: every .asmdef owns the
// scripts below it, the rest fall into the default runtime or editor module.
type AssetsSource struct {
	Root string
	// Name overrides the product name from the project settings.
	Name string
	// References are extra artifacts added to every module. Relative paths
	// are resolved against Root.
	References []string

	fsys fs.FS
}

func NewAssetsSource(root string, references []string) *AssetsSource {
	return &AssetsSource{Root: root, References: references}
}

// NewAssetsSourceFS is like NewAssetsSource but reads from fsys, which must
// be rooted at root.
func NewAssetsSourceFS(root string, fsys fs.FS, references []string) *AssetsSource {
	return &AssetsSource{Root: root, References: references, fsys: fsys}
}

// IsGameProject reports whether dir has an Assets folder.
func IsGameProject(dir string) bool {
	info, err := os.Stat(filepath.Join(dir, "Assets"))
	return err == nil && info.IsDir()
}

func (as *AssetsSource) filesystem() fs.FS {
	if as.fsys != nil {
		return as.fsys
	}
	return os.DirFS(as.Root)
}

func (as *AssetsSource) GetProjectRootDirectory() (string, error) {
	if as.fsys != nil {
		return as.Root, nil
	}
	abs, err := filepath.Abs(as.Root)
	if err != nil {
		return "", apperrors.NewPath(apperrors.KindDiscovery, "resolve project root", as.Root, err)
	}
	return abs, nil
}

func (as *AssetsSource) GetProjectDisplayName() (string, error) {
	if as.Name != "" {
		return as.Name, nil
	}

	root, err := as.GetProjectRootDirectory()
	if err != nil {
		return "", err
	}

	data, err := fs.ReadFile(as.filesystem(), settingsFile)
	if err != nil {
		logger.Debug("No %s, using directory name for the solution", settingsFile)
		return filepath.Base(root), nil
	}

	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if name, ok := strings.CutPrefix(line, productNameKey); ok {
			if name = strings.TrimSpace(name); name != "" {
				return name, nil
			}
		}
	}
	return filepath.Base(root), nil
}

func (as *AssetsSource) GetModules() ([]models.Module, error) {
	root, err := as.GetProjectRootDirectory()
	if err != nil {
		return nil, err
	}
	fsys := as.filesystem()

	matches, err := doublestar.Glob(fsys, assetsPattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, apperrors.NewPath(apperrors.KindDiscovery, "scan assets in", root, err)
	}
	sort.Strings(matches)

	definitions := make(map[string]asmdef)
	owners := make(map[string]string)
	var sources, libraries []string

	for _, match := range matches {
		switch strings.ToLower(path.Ext(match)) {
		case ".asmdef":
			def, err := readAsmdef(fsys, match)
			if err != nil {
				return nil, err
			}
			if other, ok := owners[def.Name]; ok {
				return nil, apperrors.NewPath(apperrors.KindDiscovery,
					fmt.Sprintf("module %q is also defined by %s in", def.Name, other), match, nil)
			}
			owners[def.Name] = match
			definitions[path.Dir(match)] = def
		case ".dll":
			libraries = append(libraries, toAbs(root, match))
		case ".cs":
			sources = append(sources, match)
		}
	}

	shared := append([]string{}, libraries...)
	shared = append(shared, resolveAll(root, as.References)...)

	bySource := make(map[string][]string)
	for _, src := range sources {
		name := ownerOf(src, definitions)
		bySource[name] = append(bySource[name], toAbs(root, src))
	}

	var autoRefs []string
	for _, def := range definitions {
		if def.autoReferenced() && len(bySource[def.Name]) > 0 {
			autoRefs = append(autoRefs, def.Name)
		}
	}
	sort.Strings(autoRefs)

	var modules []models.Module
	for _, def := range definitions {
		files := bySource[def.Name]
		if len(files) == 0 {
			continue
		}
		modules = append(modules, models.Module{
			Name:        def.Name,
			SourceFiles: files,
			References:  append(append([]string{}, shared...), scriptAssemblies(root, referencedNames(def))...),
		})
	}

	if files := bySource[DefaultModule]; len(files) > 0 {
		modules = append(modules, models.Module{
			Name:        DefaultModule,
			SourceFiles: files,
			References:  append(append([]string{}, shared...), scriptAssemblies(root, autoRefs)...),
		})
	}
	if files := bySource[DefaultEditorModule]; len(files) > 0 {
		editorRefs := append([]string{}, autoRefs...)
		if len(bySource[DefaultModule]) > 0 {
			editorRefs = append(editorRefs, DefaultModule)
		}
		modules = append(modules, models.Module{
			Name:        DefaultEditorModule,
			SourceFiles: files,
			References:  append(append([]string{}, shared...), scriptAssemblies(root, editorRefs)...),
		})
	}

	sort.Slice(modules, func(i, j int) bool { return modules[i].Name < modules[j].Name })
	logger.Debug("Found %d modules from %d scripts under %s", len(modules), len(sources), root)
	return modules, nil
}

func readAsmdef(fsys fs.FS, name string) (asmdef, error) {
	var def asmdef
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return def, apperrors.NewPath(apperrors.KindDiscovery, "read assembly definition", name, err)
	}
	if err := json.Unmarshal(data, &def); err != nil {
		return def, apperrors.NewPath(apperrors.KindDiscovery, "parse assembly definition", name, err)
	}
	if def.Name == "" {
		return def, apperrors.NewPath(apperrors.KindDiscovery, "assembly definition without a name", name, nil)
	}
	return def, nil
}

// ownerOf walks up from src to find the nearest assembly definition.
func ownerOf(src string, definitions map[string]asmdef) string {
	dir := path.Dir(src)
	for {
		if def, ok := definitions[dir]; ok {
			return def.Name
		}
		parent := path.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	for _, segment := range strings.Split(src, "/") {
		if segment == editorSegment {
			return DefaultEditorModule
		}
	}
	return DefaultModule
}

func referencedNames(def asmdef) []string {
	var names []string
	for _, ref := range def.References {
		if strings.HasPrefix(ref, guidReferenceID) {
			logger.Debug("Skipping GUID reference %s in %s", ref, def.Name)
			continue
		}
		names = append(names, ref)
	}
	return names
}

func scriptAssemblies(root string, names []string) []string {
	out := make([]string, 0, len(names))
	for _, name := range names {
		out = append(out, filepath.Join(root, "Library", "ScriptAssemblies", name+".dll"))
	}
	return out
}

func toAbs(root, slashPath string) string {
	return filepath.Join(root, filepath.FromSlash(slashPath))
}
