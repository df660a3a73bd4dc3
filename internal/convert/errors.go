package convert

import (
	"errors"
	"fmt"
)

// Kind classifies where in the pipeline a conversion failed.
type Kind string

const (
	KindInput  Kind = "input"
	KindRender Kind = "render"
	KindEncode Kind = "encode"
	KindOutput Kind = "output"
)

// Error wraps a pipeline failure with its kind and the file it concerns.
type Error struct {
	Kind Kind
	Path string
	Err  error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}

	base := fmt.Sprintf("%s error", e.Kind)
	if e.Path != "" {
		base += fmt.Sprintf(" (path=%s)", e.Path)
	}
	if e.Err != nil {
		base += fmt.Sprintf(": %v", e.Err)
	}
	return base
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func IsKind(err error, kind Kind) bool {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Kind == kind
	}
	return false
}

func newError(kind Kind, path string, err error) error {
	return &Error{Kind: kind, Path: path, Err: err}
}
