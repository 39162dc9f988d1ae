package identifier

import (
	"regexp"
	"testing"
)

var hex32 = regexp.MustCompile(`^[0-9a-f]{32}$`)

func TestDerivePinnedValues(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		want string
	}{
		{"Assembly-CSharp", "af57aad82a3364eb7264de854a5c0d52"},
		{"Assembly-CSharp-Editor", "cea3000a3c32e57d6e81337c49960f4f"},
		{"Game.Core", "98227ec8d421a8aecfb1fad1ba20442d"},
		{"A", "02e4a7f44ffe78e90cde233c3fe15a2d"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Derive(tt.name).String(); got != tt.want {
				t.Errorf("Derive(%q) = %s, want %s", tt.name, got, tt.want)
			}
		})
	}
}

func TestDeriveIsDeterministic(t *testing.T) {
	t.Parallel()

	first := Derive("Assembly-CSharp")
	second := NewDeriver(DefaultSalt).Derive("Assembly-CSharp")
	if first != second {
		t.Errorf("two derivations differ: %s vs %s", first, second)
	}
	if !hex32.MatchString(first.String()) {
		t.Errorf("identifier %q is not 32 lowercase hex characters", first)
	}
}

func TestDeriveDependsOnSalt(t *testing.T) {
	t.Parallel()

	a := NewDeriver("one").Derive("Module")
	b := NewDeriver("two").Derive("Module")
	if a == b {
		t.Errorf("different salts produced the same identifier %s", a)
	}
	if Default().Salt() != DefaultSalt {
		t.Errorf("Default().Salt() = %q, want %q", Default().Salt(), DefaultSalt)
	}
}

func TestBraced(t *testing.T) {
	t.Parallel()

	id := Derive("A")
	if got, want := id.Braced(), "{02e4a7f44ffe78e90cde233c3fe15a2d}"; got != want {
		t.Errorf("Braced() = %q, want %q", got, want)
	}
	if id.IsZero() {
		t.Error("derived identifier reported as zero")
	}
	if !(ModuleIdentifier{}).IsZero() {
		t.Error("zero identifier not reported as zero")
	}
}
