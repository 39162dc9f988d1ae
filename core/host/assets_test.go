package host

import (
	"os"
	"path/filepath"
	"slices"
	"testing"
	"testing/fstest"

	apperrors "github.com/tristendillon/antigravity/core/errors"
	"github.com/tristendillon/antigravity/core/models"
)

var projectRoot = filepath.FromSlash("/work/SpaceGame")

func abs(rel string) string {
	return filepath.Join(projectRoot, filepath.FromSlash(rel))
}

func gameProject() fstest.MapFS {
	return fstest.MapFS{
		"ProjectSettings/ProjectSettings.asset": {Data: []byte("%YAML 1.1\n--- !u!129 &1\nPlayerSettings:\n  companyName: Acme\n  productName: Space Game\n")},
		"Assets/Scripts/Player.cs":              {Data: []byte("class Player {}")},
		"Assets/Scripts/Enemy.cs":               {Data: []byte("class Enemy {}")},
		"Assets/Scripts/Editor/PlayerEditor.cs": {Data: []byte("class PlayerEditor {}")},
		"Assets/Core/Game.Core.asmdef":          {Data: []byte(`{"name": "Game.Core", "references": ["Game.Util", "GUID:0123"]}`)},
		"Assets/Core/Health.cs":                 {Data: []byte("class Health {}")},
		"Assets/Core/Editor/HealthEditor.cs":    {Data: []byte("class HealthEditor {}")},
		"Assets/Util/Game.Util.asmdef":          {Data: []byte(`{"name": "Game.Util", "autoReferenced": false}`)},
		"Assets/Util/Math.cs":                   {Data: []byte("class Math {}")},
		"Assets/Empty/Game.Empty.asmdef":        {Data: []byte(`{"name": "Game.Empty"}`)},
		"Assets/Plugins/Newtonsoft.Json.dll":    {Data: []byte{0}},
		"Assets/Readme.md":                      {Data: []byte("# readme")},
	}
}

func moduleByName(t *testing.T, modules []models.Module, name string) models.Module {
	t.Helper()
	for _, m := range modules {
		if m.Name == name {
			return m
		}
	}
	t.Fatalf("module %q not found", name)
	return models.Module{}
}

func TestAssetsSourceModules(t *testing.T) {
	t.Parallel()

	src := NewAssetsSourceFS(projectRoot, gameProject(), []string{"Library/UnityEngine.dll"})
	modules, err := src.GetModules()
	if err != nil {
		t.Fatalf("GetModules() error: %v", err)
	}

	var names []string
	for _, m := range modules {
		names = append(names, m.Name)
	}
	if want := []string{"Assembly-CSharp", "Assembly-CSharp-Editor", "Game.Core", "Game.Util"}; !slices.Equal(names, want) {
		t.Fatalf("module names = %v, want %v", names, want)
	}

	runtime := moduleByName(t, modules, DefaultModule)
	if want := []string{abs("Assets/Scripts/Enemy.cs"), abs("Assets/Scripts/Player.cs")}; !slices.Equal(runtime.SourceFiles, want) {
		t.Errorf("runtime sources = %v, want %v", runtime.SourceFiles, want)
	}
	wantRuntimeRefs := []string{
		abs("Assets/Plugins/Newtonsoft.Json.dll"),
		abs("Library/UnityEngine.dll"),
		abs("Library/ScriptAssemblies/Game.Core.dll"),
	}
	if !slices.Equal(runtime.References, wantRuntimeRefs) {
		t.Errorf("runtime references = %v, want %v", runtime.References, wantRuntimeRefs)
	}

	editor := moduleByName(t, modules, DefaultEditorModule)
	if want := []string{abs("Assets/Scripts/Editor/PlayerEditor.cs")}; !slices.Equal(editor.SourceFiles, want) {
		t.Errorf("editor sources = %v, want %v", editor.SourceFiles, want)
	}
	if last := editor.References[len(editor.References)-1]; last != abs("Library/ScriptAssemblies/Assembly-CSharp.dll") {
		t.Errorf("editor module should reference the runtime module, last reference = %s", last)
	}

	core := moduleByName(t, modules, "Game.Core")
	if want := []string{abs("Assets/Core/Editor/HealthEditor.cs"), abs("Assets/Core/Health.cs")}; !slices.Equal(core.SourceFiles, want) {
		t.Errorf("asmdef module should own its whole subtree, got %v", core.SourceFiles)
	}
	if !slices.Contains(core.References, abs("Library/ScriptAssemblies/Game.Util.dll")) {
		t.Errorf("Game.Core references = %v, want Game.Util", core.References)
	}
	for _, ref := range core.References {
		if filepath.Base(ref) == "GUID:0123.dll" {
			t.Errorf("GUID reference leaked into %v", core.References)
		}
	}
}

func TestAssetsSourceIsDeterministic(t *testing.T) {
	t.Parallel()

	src := NewAssetsSourceFS(projectRoot, gameProject(), nil)
	first, err := src.GetModules()
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 5; i++ {
		again, err := src.GetModules()
		if err != nil {
			t.Fatal(err)
		}
		if len(again) != len(first) {
			t.Fatalf("run %d: %d modules, want %d", i, len(again), len(first))
		}
		for j := range first {
			if first[j].Name != again[j].Name ||
				!slices.Equal(first[j].SourceFiles, again[j].SourceFiles) ||
				!slices.Equal(first[j].References, again[j].References) {
				t.Fatalf("run %d: module %d differs: %+v vs %+v", i, j, first[j], again[j])
			}
		}
	}
}

func TestAssetsSourceDisplayName(t *testing.T) {
	t.Parallel()

	src := NewAssetsSourceFS(projectRoot, gameProject(), nil)
	if name, err := src.GetProjectDisplayName(); err != nil || name != "Space Game" {
		t.Errorf("GetProjectDisplayName() = %q, %v; want Space Game", name, err)
	}

	bare := NewAssetsSourceFS(projectRoot, fstest.MapFS{}, nil)
	if name, _ := bare.GetProjectDisplayName(); name != "SpaceGame" {
		t.Errorf("fallback name = %q, want SpaceGame", name)
	}

	bare.Name = "Override"
	if name, _ := bare.GetProjectDisplayName(); name != "Override" {
		t.Errorf("override name = %q, want Override", name)
	}
}

func TestAssetsSourceBadDefinitions(t *testing.T) {
	t.Parallel()

	tests := map[string]fstest.MapFS{
		"invalid json": {
			"Assets/A/A.asmdef": {Data: []byte(`{"name":`)},
		},
		"missing name": {
			"Assets/A/A.asmdef": {Data: []byte(`{"references": []}`)},
		},
		"duplicate name": {
			"Assets/A/A.asmdef": {Data: []byte(`{"name": "Same"}`)},
			"Assets/B/B.asmdef": {Data: []byte(`{"name": "Same"}`)},
		},
	}

	for name, fsys := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			_, err := NewAssetsSourceFS(projectRoot, fsys, nil).GetModules()
			if !apperrors.Is(err, apperrors.KindDiscovery) {
				t.Errorf("GetModules() error = %v, want discovery error", err)
			}
		})
	}
}

func TestIsGameProject(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if IsGameProject(dir) {
		t.Error("empty dir reported as a game project")
	}
	if err := mkdir(filepath.Join(dir, "Assets")); err != nil {
		t.Fatal(err)
	}
	if !IsGameProject(dir) {
		t.Error("dir with Assets not reported as a game project")
	}
}

func mkdir(p string) error {
	return os.MkdirAll(p, 0o755)
}

func TestAssetsSourceExtensionsIgnoreCase(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"Assets/Scripts/Player.CS":      {Data: []byte("class Player {}")},
		"Assets/Scripts/Enemy.cs":       {Data: []byte("class Enemy {}")},
		"Assets/Plugins/Tools.DLL":      {Data: []byte{0}},
		"Assets/Scripts/Notes.txt":      {Data: []byte("notes")},
		"Assets/Scripts/Old.cs.meta":    {Data: []byte("guid: 1")},
		"Assets/Scripts/Nested/Boss.Cs": {Data: []byte("class Boss {}")},
	}
	modules, err := NewAssetsSourceFS(projectRoot, fsys, nil).GetModules()
	if err != nil {
		t.Fatalf("GetModules() error: %v", err)
	}

	runtime := moduleByName(t, modules, DefaultModule)
	wantSources := []string{
		abs("Assets/Scripts/Enemy.cs"),
		abs("Assets/Scripts/Nested/Boss.Cs"),
		abs("Assets/Scripts/Player.CS"),
	}
	if !slices.Equal(runtime.SourceFiles, wantSources) {
		t.Errorf("sources = %v, want %v", runtime.SourceFiles, wantSources)
	}
	if !slices.Contains(runtime.References, abs("Assets/Plugins/Tools.DLL")) {
		t.Errorf("references = %v, want Tools.DLL", runtime.References)
	}
}
