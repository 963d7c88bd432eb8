package layout

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnresolvable is the kind of every layout failure caused by undefined
	// or cyclic field types.
	ErrUnresolvable = errors.New("unresolvable struct layout")

	// ErrDuplicateStruct reports two exported structs sharing a source name.
	ErrDuplicateStruct = errors.New("duplicate struct")
)

// Unresolved describes one struct whose layout could not be computed.
type Unresolved struct {
	Struct  string
	File    string
	Reasons []string
}

// Error reports every stuck struct of a batch at once.
type Error struct {
	Kind       error
	Unresolved []Unresolved
	Cycles     [][]string
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString(e.Kind.Error())
	if len(e.Unresolved) > 0 {
		names := make([]string, len(e.Unresolved))
		for i, u := range e.Unresolved {
			names[i] = u.Struct
		}
		fmt.Fprintf(&b, ": %s", strings.Join(names, ", "))
	}
	for _, u := range e.Unresolved {
		fmt.Fprintf(&b, "\n  %s (%s): %s", u.Struct, u.File, strings.Join(u.Reasons, "; "))
	}
	for _, c := range e.Cycles {
		fmt.Fprintf(&b, "\n  cycle: %s", strings.Join(c, " -> "))
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Kind }

// Structs returns the names of the unresolved structs.
func (e *Error) Structs() []string {
	out := make([]string, len(e.Unresolved))
	for i, u := range e.Unresolved {
		out[i] = u.Struct
	}
	return out
}

func duplicateError(name, first, second string) error {
	return fmt.Errorf("%w %s: declared in %s and %s", ErrDuplicateStruct, name, first, second)
}
