package codegraph

import (
	"slices"
	"strings"

	"github.com/cockroachdb/errors"
)

var basicTypeNames = []string{
	"void", "bool",
	"char", "signed char", "unsigned char", "wchar_t", "char16_t", "char32_t",
	"short", "short int", "signed short", "signed short int", "unsigned short", "unsigned short int",
	"int", "signed", "signed int", "unsigned", "unsigned int",
	"long", "long int", "signed long", "signed long int", "unsigned long", "unsigned long int",
	"long long", "long long int", "signed long long", "unsigned long long", "unsigned long long int",
	"float", "double", "long double",
}

func normalizeTypeName(name string) string {
	return strings.Join(strings.Fields(name), " ")
}

// IsBasicTypeName reports whether name spells a fundamental type.
func IsBasicTypeName(name string) bool {
	return slices.Contains(basicTypeNames, normalizeTypeName(name))
}

// BasicType is a fundamental type such as int or unsigned long.
type BasicType struct {
	name string
}

func NewBasicType(name string) (*BasicType, error) {
	n := normalizeTypeName(name)
	if !IsBasicTypeName(n) {
		return nil, errors.Wrapf(ErrInvalidArgument, "%q is not a basic type", name)
	}
	return &BasicType{name: n}, nil
}

// MustBasicType is NewBasicType for names known to be valid.
func MustBasicType(name string) *BasicType {
	t, err := NewBasicType(name)
	if err != nil {
		panic(err)
	}
	return t
}

func (t *BasicType) Name() string { return t.name }
func (t *BasicType) Kind() Kind   { return KindBasicType }

func (t *BasicType) Render(rc *RenderContext, out *Sink, indent int) error {
	out.WriteString(rc.tabs(indent) + t.name)
	return out.Err()
}

func (t *BasicType) Clone() *BasicType {
	if t == nil {
		return nil
	}
	clone := *t
	return &clone
}

func (t *BasicType) Duplicate() Node         { return t.Clone() }
func (t *BasicType) Assign(other Node) error { return assign(t, other) }

// NamedType is a type spelled verbatim, typically one from a library such as
// std::string.
type NamedType struct {
	name string
}

func NewNamedType(name string) *NamedType {
	return &NamedType{name: strings.TrimSpace(name)}
}

func (t *NamedType) Name() string { return t.name }
func (t *NamedType) Kind() Kind   { return KindNamedType }

func (t *NamedType) Render(rc *RenderContext, out *Sink, indent int) error {
	out.WriteString(rc.tabs(indent) + t.name)
	return out.Err()
}

func (t *NamedType) Clone() *NamedType {
	if t == nil {
		return nil
	}
	clone := *t
	return &clone
}

func (t *NamedType) Duplicate() Node         { return t.Clone() }
func (t *NamedType) Assign(other Node) error { return assign(t, other) }

// declaratorType is implemented by types whose name sits inside the type text,
// such as function pointers.
type declaratorType interface {
	declare(rc *RenderContext, name string) (string, error)
}
