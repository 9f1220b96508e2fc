package codegraph

import (
	"slices"
	"strings"
)

// ExceptionMode selects the exception specification of a callable.
type ExceptionMode int

const (
	// Unrestricted emits no specification.
	Unrestricted ExceptionMode = iota
	// NoThrow emits an empty throw list.
	NoThrow
	// ListedSet emits the listed exception types.
	ListedSet
)

// ExceptionSpec is an exception mode and, for ListedSet, the exception type
// names. Leaving ListedSet clears the names.
type ExceptionSpec struct {
	mode  ExceptionMode
	names []string
}

func (e *ExceptionSpec) Mode() ExceptionMode { return e.mode }
func (e *ExceptionSpec) Names() []string     { return slices.Clone(e.names) }

func (e *ExceptionSpec) SetMode(m ExceptionMode) {
	e.mode = m
	if m != ListedSet {
		e.names = nil
	}
}

// Throws switches to ListedSet and appends names.
func (e *ExceptionSpec) Throws(names ...string) {
	e.mode = ListedSet
	e.names = append(e.names, names...)
}

func (e *ExceptionSpec) clone() ExceptionSpec {
	return ExceptionSpec{mode: e.mode, names: slices.Clone(e.names)}
}

func (e *ExceptionSpec) text(rc *RenderContext) string {
	if !rc.caps.Has(ExceptionSpecifications) {
		return ""
	}
	switch e.mode {
	case NoThrow:
		return " throw( )"
	case ListedSet:
		if len(e.names) == 0 {
			return ""
		}
		return " throw( " + strings.Join(e.names, " , ") + " )"
	}
	return ""
}
