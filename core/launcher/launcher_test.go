package launcher

import (
	"context"
	"errors"
	"os/exec"
	"slices"
	"testing"

	apperrors "github.com/tristendillon/antigravity/core/errors"
)

func TestLocationTarget(t *testing.T) {
	t.Parallel()

	tests := []struct {
		loc  Location
		want string
	}{
		{Location{Path: "/p/Foo.cs", Line: -1, Column: -1}, "/p/Foo.cs"},
		{Location{Path: "/p/Foo.cs", Line: 12, Column: -1}, "/p/Foo.cs:12"},
		{Location{Path: "/p/Foo.cs", Line: 12, Column: 4}, "/p/Foo.cs:12:4"},
		{Location{Path: "/p/Foo.cs", Line: 0, Column: 0}, "/p/Foo.cs:0:0"},
		{Location{Path: "/p/Foo.cs", Line: -1, Column: 4}, "/p/Foo.cs"},
	}
	for _, tt := range tests {
		if got := tt.loc.Target(); got != tt.want {
			t.Errorf("%+v.Target() = %q, want %q", tt.loc, got, tt.want)
		}
	}
}

func TestCommand(t *testing.T) {
	t.Parallel()

	loc := Location{Path: "/p/Foo.cs", Line: 3, Column: -1}

	linux := &Launcher{GOOS: "linux"}
	cmd := linux.Command("/usr/bin/antigravity", loc)
	if want := []string{"/usr/bin/antigravity", "/p/Foo.cs:3"}; !slices.Equal(cmd.Args, want) {
		t.Errorf("linux Args = %v, want %v", cmd.Args, want)
	}

	darwin := &Launcher{GOOS: "darwin"}
	cmd = darwin.Command("/Applications/Antigravity.app", loc)
	want := []string{"open", "-a", "/Applications/Antigravity.app", "--args", "/p/Foo.cs:3"}
	if !slices.Equal(cmd.Args, want) {
		t.Errorf("darwin Args = %v, want %v", cmd.Args, want)
	}
}

func TestOpen(t *testing.T) {
	t.Parallel()

	var started []string
	l := &Launcher{GOOS: "linux", Start: func(cmd *exec.Cmd) error {
		started = cmd.Args
		return nil
	}}

	if err := l.Open(context.Background(), "/usr/bin/antigravity", Location{Path: "/p", Line: -1, Column: -1}); err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	if want := []string{"/usr/bin/antigravity", "/p"}; !slices.Equal(started, want) {
		t.Errorf("started %v, want %v", started, want)
	}
}

func TestOpenErrors(t *testing.T) {
	t.Parallel()

	l := &Launcher{GOOS: "linux", Start: func(*exec.Cmd) error { return errors.New("exec format error") }}

	err := l.Open(context.Background(), "/usr/bin/antigravity", Location{Path: "/p"})
	if !apperrors.Is(err, apperrors.KindExec) {
		t.Errorf("Open() error = %v, want an exec error", err)
	}
	if err := l.Open(context.Background(), "", Location{Path: "/p"}); !apperrors.IsUsage(err) {
		t.Errorf("Open() without editor = %v, want a usage error", err)
	}
}
