// Package launcher starts the editor process on a file location.
package launcher

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	apperrors "github.com/tristendillon/antigravity/core/errors"
	"github.com/tristendillon/antigravity/core/logger"
)

// Location is a file position. Line and Column are ignored when negative;
// Column is only used together with Line.
type Location struct {
	Path   string
	Line   int
	Column int
}

// Target renders the location the way the editor's command line expects it:
// path, path:line or path:line:column.
func (loc Location) Target() string {
	var b strings.Builder
	b.WriteString(loc.Path)
	if loc.Line >= 0 {
		fmt.Fprintf(&b, ":%d", loc.Line)
		if loc.Column >= 0 {
			fmt.Fprintf(&b, ":%d", loc.Column)
		}
	}
	return b.String()
}

// StartFunc starts cmd without waiting for it.
type StartFunc func(cmd *exec.Cmd) error

type Launcher struct {
	GOOS  string
	Start StartFunc
}

func New() *Launcher {
	return &Launcher{GOOS: runtime.GOOS, Start: startDetached}
}

func startDetached(cmd *exec.Cmd) error {
	if err := cmd.Start(); err != nil {
		return err
	}
	return cmd.Process.Release()
}

// Command builds the process that opens loc in the editor at editorPath.
// A macOS app bundle is started through open(1). The process is not tied to
// a context because it outlives the caller.
func (l *Launcher) Command(editorPath string, loc Location) *exec.Cmd {
	target := loc.Target()
	if l.GOOS == "darwin" && strings.HasSuffix(strings.ToLower(editorPath), ".app") {
		return exec.Command("open", "-a", editorPath, "--args", target)
	}
	return exec.Command(editorPath, target)
}

// Open starts the editor and returns once the process is running.
func (l *Launcher) Open(ctx context.Context, editorPath string, loc Location) error {
	if editorPath == "" {
		return apperrors.NewUsage("no editor path given")
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("open canceled: %w", err)
	}
	cmd := l.Command(editorPath, loc)
	logger.Debug("Starting %s", strings.Join(cmd.Args, " "))

	start := l.Start
	if start == nil {
		start = startDetached
	}
	if err := start(cmd); err != nil {
		return apperrors.NewPath(apperrors.KindExec, "start editor", editorPath, err)
	}
	return nil
}
