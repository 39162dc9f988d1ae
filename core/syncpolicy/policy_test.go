package syncpolicy

import (
	"slices"
	"testing"
)

func TestShouldSync(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		affected []string
		want     bool
	}{
		{"source file", []string{"Foo.cs"}, true},
		{"upper case extension", []string{"foo.CS"}, true},
		{"absolute path", []string{"/p/Assets/Scripts/Player.cs"}, true},
		{"one of many", []string{"readme.md", "Assets/Enemy.cs", "data.json"}, true},
		{"no source files", []string{"readme.md", "data.json"}, false},
		{"meta file", []string{"Foo.cs.meta"}, false},
		{"empty", nil, false},
	}

	p := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := p.ShouldSync(tt.affected); got != tt.want {
				t.Errorf("ShouldSync(%v) = %v, want %v", tt.affected, got, tt.want)
			}
		})
	}
}

func TestNewNormalizesExtensions(t *testing.T) {
	t.Parallel()

	p := New("CS", " .asmdef ", "")
	if got, want := p.Extensions(), []string{".cs", ".asmdef"}; !slices.Equal(got, want) {
		t.Errorf("Extensions() = %v, want %v", got, want)
	}
	if !p.ShouldSync([]string{"Assets/Game.Core.asmdef"}) {
		t.Error("asmdef change should trigger a sync")
	}
}

func TestNewDefaultsToSourceExtension(t *testing.T) {
	t.Parallel()

	if got := New().Extensions(); !slices.Equal(got, []string{DefaultExtension}) {
		t.Errorf("New().Extensions() = %v, want [%s]", got, DefaultExtension)
	}
	if got := New("  ").Extensions(); !slices.Equal(got, []string{DefaultExtension}) {
		t.Errorf("New(blank).Extensions() = %v, want [%s]", got, DefaultExtension)
	}
}
