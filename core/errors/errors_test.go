package errors

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"
)

func TestAppErrorMessage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want string
	}{
		{"bare", New(KindRender, "execute template", nil), "render: execute template"},
		{"cause", New(KindDiscovery, "list modules", fs.ErrNotExist), "discovery: list modules: file does not exist"},
		{"path", NewPath(KindPersist, "write document", "/p/A.csproj", fs.ErrPermission), "persist: write document /p/A.csproj: permission denied"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestKindSurvivesWrapping(t *testing.T) {
	t.Parallel()

	base := NewPath(KindPersist, "write document", "/p/B.csproj", fs.ErrPermission)
	wrapped := fmt.Errorf("sync: %w", base)

	if !Is(wrapped, KindPersist) {
		t.Errorf("Is(wrapped, persist) = false, want true")
	}
	if Is(wrapped, KindRender) {
		t.Errorf("Is(wrapped, render) = true, want false")
	}
	if !errors.Is(wrapped, fs.ErrPermission) {
		t.Errorf("errors.Is(wrapped, fs.ErrPermission) = false, want true")
	}
	if KindOf(fs.ErrClosed) != "" {
		t.Errorf("KindOf(plain error) = %q, want empty", KindOf(fs.ErrClosed))
	}
}

func TestIsUsage(t *testing.T) {
	t.Parallel()

	if !IsUsage(NewUsage("missing file argument")) {
		t.Error("IsUsage(NewUsage(...)) = false, want true")
	}
	if IsUsage(NewInternal("boom", nil)) {
		t.Error("IsUsage(NewInternal(...)) = true, want false")
	}
}
