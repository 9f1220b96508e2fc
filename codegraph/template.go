package codegraph

import (
	"strings"

	"github.com/cockroachdb/errors"
)

// TemplateParam is one entry of a template parameter list.
type TemplateParam interface {
	Node
	Name() string
	parameter(rc *RenderContext) (string, error)
}

// templateAttributes spells "template< ... > " or nothing for an empty list.
func templateAttributes(rc *RenderContext, params []TemplateParam) (string, error) {
	if len(params) == 0 {
		return "", nil
	}
	parts := make([]string, 0, len(params))
	for _, p := range params {
		s, err := p.parameter(rc)
		if err != nil {
			return "", err
		}
		parts = append(parts, s)
	}
	return "template< " + strings.Join(parts, " , ") + " > ", nil
}

func templateArgumentNames(params []TemplateParam) string {
	if len(params) == 0 {
		return ""
	}
	names := make([]string, len(params))
	for i, p := range params {
		names[i] = p.Name()
	}
	return "< " + strings.Join(names, " , ") + " >"
}

// TemplateParameter is a type parameter: typename T.
type TemplateParameter struct {
	name string
}

func NewTemplateParameter(name string) *TemplateParameter {
	return &TemplateParameter{name: name}
}

func (p *TemplateParameter) Name() string { return p.name }
func (p *TemplateParameter) Kind() Kind   { return KindTemplateParameter }

func (p *TemplateParameter) parameter(*RenderContext) (string, error) {
	return "typename " + p.name, nil
}

func (p *TemplateParameter) Render(rc *RenderContext, out *Sink, indent int) error {
	return renderParameter(rc, p, out, indent)
}

func (p *TemplateParameter) Clone() *TemplateParameter {
	if p == nil {
		return nil
	}
	clone := *p
	return &clone
}

func (p *TemplateParameter) Duplicate() Node         { return p.Clone() }
func (p *TemplateParameter) Assign(other Node) error { return assign(p, other) }

// NontypeTemplateParameter is a value parameter such as int N or char *P.
type NontypeTemplateParameter struct {
	typeName string
	name     string
}

// NewNontypeTemplateParameter accepts integral and floating types as well as
// pointers and references.
func NewNontypeTemplateParameter(typeName, name string) (*NontypeTemplateParameter, error) {
	t := normalizeTypeName(typeName)
	if !strings.ContainsAny(t, "*&") && (!IsBasicTypeName(t) || t == "void") {
		return nil, errors.Wrapf(ErrInvalidArgument, "%q cannot type a nontype template parameter", typeName)
	}
	return &NontypeTemplateParameter{typeName: t, name: name}, nil
}

func (p *NontypeTemplateParameter) Name() string     { return p.name }
func (p *NontypeTemplateParameter) TypeName() string { return p.typeName }
func (p *NontypeTemplateParameter) Kind() Kind       { return KindNontypeTemplateParameter }

func (p *NontypeTemplateParameter) parameter(*RenderContext) (string, error) {
	return p.typeName + " " + p.name, nil
}

func (p *NontypeTemplateParameter) Render(rc *RenderContext, out *Sink, indent int) error {
	return renderParameter(rc, p, out, indent)
}

func (p *NontypeTemplateParameter) Clone() *NontypeTemplateParameter {
	if p == nil {
		return nil
	}
	clone := *p
	return &clone
}

func (p *NontypeTemplateParameter) Duplicate() Node         { return p.Clone() }
func (p *NontypeTemplateParameter) Assign(other Node) error { return assign(p, other) }

// TypedTemplateParameter is a value parameter typed by a user defined type.
type TypedTemplateParameter struct {
	typ  Type
	name string
}

func NewTypedTemplateParameter(t Type, name string) (*TypedTemplateParameter, error) {
	if isNil(t) {
		return nil, errors.Wrap(ErrNullReference, "typed template parameter needs a type")
	}
	if _, basic := t.(*BasicType); basic {
		return nil, errors.Wrapf(ErrInvalidArgument, "basic type %q needs a nontype template parameter", t.Name())
	}
	return &TypedTemplateParameter{typ: t, name: name}, nil
}

func (p *TypedTemplateParameter) Name() string { return p.name }
func (p *TypedTemplateParameter) Type() Type   { return p.typ }
func (p *TypedTemplateParameter) Kind() Kind   { return KindTypedTemplateParameter }

func (p *TypedTemplateParameter) parameter(rc *RenderContext) (string, error) {
	n, err := typeName(rc, p.typ)
	if err != nil {
		return "", err
	}
	return n + " " + p.name, nil
}

func (p *TypedTemplateParameter) Render(rc *RenderContext, out *Sink, indent int) error {
	return renderParameter(rc, p, out, indent)
}

func (p *TypedTemplateParameter) Clone() *TypedTemplateParameter {
	if p == nil {
		return nil
	}
	clone := *p
	return &clone
}

func (p *TypedTemplateParameter) Duplicate() Node         { return p.Clone() }
func (p *TypedTemplateParameter) Assign(other Node) error { return assign(p, other) }

const maxTemplateTemplateArity = 64

// TemplateTemplateParameter is a parameter that is itself a class template.
type TemplateTemplateParameter struct {
	name  string
	arity int
}

func NewTemplateTemplateParameter(name string, arity int) (*TemplateTemplateParameter, error) {
	if arity < 1 || arity > maxTemplateTemplateArity {
		return nil, errors.Wrapf(ErrInvalidArgument, "template template parameter %s: arity %d out of range 1..%d",
			name, arity, maxTemplateTemplateArity)
	}
	return &TemplateTemplateParameter{name: name, arity: arity}, nil
}

func (p *TemplateTemplateParameter) Name() string { return p.name }
func (p *TemplateTemplateParameter) Arity() int   { return p.arity }
func (p *TemplateTemplateParameter) Kind() Kind   { return KindTemplateTemplateParameter }

func (p *TemplateTemplateParameter) parameter(*RenderContext) (string, error) {
	args := make([]string, p.arity)
	for i := range args {
		args[i] = "typename"
	}
	return "template< " + strings.Join(args, " , ") + " > class " + p.name, nil
}

func (p *TemplateTemplateParameter) Render(rc *RenderContext, out *Sink, indent int) error {
	return renderParameter(rc, p, out, indent)
}

func (p *TemplateTemplateParameter) Clone() *TemplateTemplateParameter {
	if p == nil {
		return nil
	}
	clone := *p
	return &clone
}

func (p *TemplateTemplateParameter) Duplicate() Node         { return p.Clone() }
func (p *TemplateTemplateParameter) Assign(other Node) error { return assign(p, other) }

func renderParameter(rc *RenderContext, p TemplateParam, out *Sink, indent int) error {
	s, err := p.parameter(rc)
	if err != nil {
		return err
	}
	out.WriteString(rc.tabs(indent) + s)
	return out.Err()
}
