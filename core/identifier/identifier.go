// Package identifier derives the stable project GUIDs written into solution
// and project files. The same module name always yields the same identifier,
// so regenerated files do not churn under version control.
package identifier

import (
	"crypto/md5"
	"strings"

	"github.com/google/uuid"
)

// DefaultSalt is prefixed to every module name before hashing.
const DefaultSalt = "unity-antigravity-project-guid"

// ModuleIdentifier holds the 16 digest bytes of a derived identifier.
type ModuleIdentifier struct {
	id uuid.UUID
}

// String renders the identifier as 32 lowercase hex characters.
func (m ModuleIdentifier) String() string {
	return strings.ReplaceAll(m.id.String(), "-", "")
}

// Braced wraps the identifier in the curly braces used by .sln and .csproj.
func (m ModuleIdentifier) Braced() string {
	return "{" + m.String() + "}"
}

func (m ModuleIdentifier) IsZero() bool {
	return m.id == uuid.Nil
}

type Deriver struct {
	salt string
}

func NewDeriver(salt string) Deriver {
	return Deriver{salt: salt}
}

func (d Deriver) Salt() string {
	return d.salt
}

// Derive hashes salt+name with md5. md5 is used for its stable output, not
// for security.
func (d Deriver) Derive(name string) ModuleIdentifier {
	sum := md5.Sum([]byte(d.salt + name))
	return ModuleIdentifier{id: uuid.UUID(sum)}
}

var defaultDeriver = NewDeriver(DefaultSalt)

func Default() Deriver {
	return defaultDeriver
}

func Derive(name string) ModuleIdentifier {
	return defaultDeriver.Derive(name)
}
