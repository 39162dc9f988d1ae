package errors

import (
	"errors"
	"fmt"
)

type Kind string

const (
	KindUsage     Kind = "usage"
	KindConfig    Kind = "config"
	KindDiscovery Kind = "discovery"
	KindRender    Kind = "render"
	KindPersist   Kind = "persist"
	KindExec      Kind = "exec"
	KindInternal  Kind = "internal"
)

// AppError tags a failure with the stage that produced it. Path is the file
// or directory involved, when there is one.
type AppError struct {
	Kind    Kind
	Message string
	Path    string
	Cause   error
}

func (e *AppError) Error() string {
	if e == nil {
		return ""
	}
	msg := fmt.Sprintf("%s: %s", e.Kind, e.Message)
	if e.Path != "" {
		msg = fmt.Sprintf("%s %s", msg, e.Path)
	}
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

func (e *AppError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

func New(kind Kind, message string, cause error) error {
	return &AppError{
		Kind:    kind,
		Message: message,
		Cause:   cause,
	}
}

func NewPath(kind Kind, message, path string, cause error) error {
	return &AppError{
		Kind:    kind,
		Message: message,
		Path:    path,
		Cause:   cause,
	}
}

func NewUsage(message string) error {
	return New(KindUsage, message, nil)
}

func NewInternal(message string, cause error) error {
	return New(KindInternal, message, cause)
}

// KindOf returns the kind of the outermost AppError in err's chain, or the
// empty kind when there is none.
func KindOf(err error) Kind {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return ""
}

func Is(err error, kind Kind) bool {
	return KindOf(err) == kind
}

func IsUsage(err error) bool {
	return Is(err, KindUsage)
}
