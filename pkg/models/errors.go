package models

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedNumber reports a token that should be a float or an
	// unsigned integer but does not parse as one.
	ErrMalformedNumber = errors.New("malformed numeric token")
	// ErrUnsupportedFace reports a face with other than three corners.
	ErrUnsupportedFace = errors.New("only triangle faces are supported")
	// ErrMissingComponent reports a v, vt or vn line with too few values.
	ErrMissingComponent = errors.New("missing vector component")
	// ErrIndexOutOfRange reports a face corner that refers to an attribute
	// that has not been defined.
	ErrIndexOutOfRange = errors.New("index out of range")
)

// ParseError locates a failure in OBJ source text.
type ParseError struct {
	Line    int    // 1-based line number
	Keyword string // line keyword (v, vt, vn, f, o)
	Err     error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("obj line %d (%s): %v", e.Line, e.Keyword, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
