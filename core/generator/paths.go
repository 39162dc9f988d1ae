package generator

import (
	"net/url"
	"path"
	"path/filepath"
	"runtime"
	"strings"
)

// RelativePath returns target relative to the directory base, using the
// host separator. It follows URI reference rules: both paths are cleaned,
// the common leading segments are dropped and every remaining base segment
// becomes "..". Targets on another volume are returned unchanged.
func RelativePath(base, target string) string {
	return relativePath(base, target, filepath.Separator, runtime.GOOS == "windows")
}

func relativePath(base, target string, sep rune, foldCase bool) string {
	toSlash := func(p string) string {
		if sep != '/' {
			p = strings.ReplaceAll(p, string(sep), "/")
		}
		return p
	}
	fromSlash := func(p string) string {
		if sep != '/' {
			p = strings.ReplaceAll(p, "/", string(sep))
		}
		return p
	}

	b := path.Clean(toSlash(base))
	t := path.Clean(toSlash(target))

	if volume(b) != volume(t) && !(foldCase && strings.EqualFold(volume(b), volume(t))) {
		return target
	}

	baseSegs := splitSegments(b)
	targetSegs := splitSegments(t)

	common := 0
	for common < len(baseSegs) && common < len(targetSegs)-1 {
		if !sameSegment(baseSegs[common], targetSegs[common], foldCase) {
			break
		}
		common++
	}

	parts := make([]string, 0, len(baseSegs)-common+len(targetSegs)-common)
	for i := common; i < len(baseSegs); i++ {
		parts = append(parts, "..")
	}
	parts = append(parts, targetSegs[common:]...)

	rel := strings.Join(parts, "/")
	if unescaped, err := url.PathUnescape(rel); err == nil {
		rel = unescaped
	}
	return fromSlash(rel)
}

func volume(p string) string {
	if len(p) >= 2 && p[1] == ':' {
		return p[:2]
	}
	return ""
}

func splitSegments(p string) []string {
	p = strings.TrimPrefix(p, volume(p))
	var segs []string
	for _, s := range strings.Split(p, "/") {
		if s != "" {
			segs = append(segs, s)
		}
	}
	return segs
}

func sameSegment(a, b string, foldCase bool) bool {
	if foldCase {
		return strings.EqualFold(a, b)
	}
	return a == b
}
