package generator

import (
	"path/filepath"
	"testing"
)

func TestRelativePath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		base   string
		target string
		want   string
	}{
		{"inside root", "/work/Game", "/work/Game/Assets/Scripts/Foo.cs", "Assets/Scripts/Foo.cs"},
		{"directly in root", "/work/Game", "/work/Game/Foo.cs", "Foo.cs"},
		{"sibling directory", "/work/Game", "/work/Shared/Bar.cs", "../Shared/Bar.cs"},
		{"trailing slash on base", "/work/Game/", "/work/Game/Foo.cs", "Foo.cs"},
		{"unclean target", "/work/Game", "/work/Game/Assets/../Shared/Bar.cs", "Shared/Bar.cs"},
		{"escaped characters", "/work/Game", "/work/Game/My%20Script.cs", "My Script.cs"},
		{"case sensitive", "/work/Game", "/work/game/Foo.cs", "../game/Foo.cs"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := relativePath(tt.base, tt.target, '/', false)
			if got != tt.want {
				t.Errorf("relativePath(%q, %q) = %q, want %q", tt.base, tt.target, got, tt.want)
			}
		})
	}
}

func TestRelativePathWindows(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		base   string
		target string
		want   string
	}{
		{"inside root", `C:\Work\Game`, `C:\Work\Game\Assets\Foo.cs`, `Assets\Foo.cs`},
		{"case folded", `C:\Work\Game`, `c:\work\game\Assets\Foo.cs`, `Assets\Foo.cs`},
		{"parent", `C:\Work\Game`, `C:\Work\Shared\Bar.cs`, `..\Shared\Bar.cs`},
		{"other volume", `C:\Work\Game`, `D:\Shared\Bar.cs`, `D:\Shared\Bar.cs`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := relativePath(tt.base, tt.target, '\\', true)
			if got != tt.want {
				t.Errorf("relativePath(%q, %q) = %q, want %q", tt.base, tt.target, got, tt.want)
			}
		})
	}
}

func TestRelativePathHostSeparator(t *testing.T) {
	t.Parallel()

	base := filepath.Join(string(filepath.Separator)+"work", "Game")
	target := filepath.Join(base, "Assets", "Foo.cs")
	if got, want := RelativePath(base, target), filepath.FromSlash("Assets/Foo.cs"); got != want {
		t.Errorf("RelativePath() = %q, want %q", got, want)
	}
}
