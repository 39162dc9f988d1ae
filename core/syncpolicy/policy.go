package syncpolicy

import "strings"

const DefaultExtension = ".cs"

// Policy decides whether a set of changed paths requires the project files
// to be regenerated. It only looks at file extensions.
type Policy struct {
	extensions []string
}

// New builds a policy for the given extensions. With none it watches
// DefaultExtension. Extensions are matched case-insensitively and may be
// given with or without the leading dot.
func New(extensions ...string) *Policy {
	normalized := make([]string, 0, len(extensions))
	for _, ext := range extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		normalized = append(normalized, ext)
	}
	if len(normalized) == 0 {
		normalized = append(normalized, DefaultExtension)
	}
	return &Policy{extensions: normalized}
}

func (p *Policy) Extensions() []string {
	out := make([]string, len(p.extensions))
	copy(out, p.extensions)
	return out
}

// ShouldSync reports whether any path ends with a watched extension.
func (p *Policy) ShouldSync(affected []string) bool {
	for _, path := range affected {
		if p.Matches(path) {
			return true
		}
	}
	return false
}

func (p *Policy) Matches(path string) bool {
	lower := strings.ToLower(path)
	for _, ext := range p.extensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}
