package scanner

import (
	"errors"
	"fmt"
)

// ErrUnmatchedBrace is the kind of every structural parse failure.
var ErrUnmatchedBrace = errors.New("unmatched '{'")

// ParseError is a fatal structural error in a schema file.
type ParseError struct {
	Kind error
	File string
	Line int
	Decl string
}

func (e *ParseError) Error() string {
	if e == nil {
		return ""
	}
	if e.Decl != "" {
		return fmt.Sprintf("%s:%d: %s in declaration %s", e.File, e.Line, e.Kind, e.Decl)
	}
	return fmt.Sprintf("%s:%d: %s", e.File, e.Line, e.Kind)
}

func (e *ParseError) Unwrap() error { return e.Kind }
