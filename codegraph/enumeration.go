package codegraph

import (
	"slices"

	"github.com/cockroachdb/errors"
)

// Enumerator is one named constant of an enumeration.
type Enumerator struct {
	Name    string
	Value   string
	Comment string
}

// Enumeration is an unscoped enum. An unnamed enumeration is rendered in place
// when nested in a composite type.
type Enumeration struct {
	name        string
	comment     *Comment
	enumerators []Enumerator
	enclosing   NestableType
}

func NewEnumeration(name string, enumerators ...Enumerator) *Enumeration {
	return &Enumeration{name: name, comment: &Comment{}, enumerators: slices.Clone(enumerators)}
}

func (e *Enumeration) Name() string              { return e.name }
func (e *Enumeration) Comment() *Comment         { return e.comment }
func (e *Enumeration) Enumerators() []Enumerator { return slices.Clone(e.enumerators) }
func (e *Enumeration) Enclosing() NestableType   { return e.enclosing }
func (e *Enumeration) Kind() Kind                { return KindEnumeration }

func (e *Enumeration) setEnclosing(t NestableType) { e.enclosing = t }

func (e *Enumeration) templateParams() []TemplateParam { return nil }
func (e *Enumeration) specializationArgs() []Node      { return nil }

func (e *Enumeration) SetName(name string) *Enumeration {
	e.name = name
	return e
}

func (e *Enumeration) Add(name, value string) *Enumeration {
	e.enumerators = append(e.enumerators, Enumerator{Name: name, Value: value})
	return e
}

func (e *Enumeration) AddEnumerator(en Enumerator) *Enumeration {
	e.enumerators = append(e.enumerators, en)
	return e
}

// AddTemplateParameter always fails: enumerations cannot be templated.
func (e *Enumeration) AddTemplateParameter(TemplateParam) error {
	return errors.Wrapf(ErrNotSupported, "enumeration %s cannot have template parameters", e.name)
}

func (e *Enumeration) Render(rc *RenderContext, out *Sink, indent int) error {
	if err := writeComment(rc, out, e.comment, indent); err != nil {
		return err
	}
	tabs := rc.tabs(indent)
	head := "enum"
	if e.name != "" {
		head += " " + e.name
	}
	out.WriteString(tabs + head + "\n" + tabs + "{\n")
	inner := rc.tabs(indent + 1)
	for i, en := range e.enumerators {
		if i > 0 {
			out.WriteString(" , \n")
		}
		if en.Comment != "" {
			if err := NewComment(en.Comment).Render(rc, out, indent+1); err != nil {
				return err
			}
			out.WriteString("\n")
		}
		out.WriteString(inner + en.Name)
		if en.Value != "" {
			out.WriteString(" = " + en.Value)
		}
	}
	if len(e.enumerators) > 0 {
		out.WriteString("\n")
	}
	out.WriteString(tabs + "};\n")
	return out.Err()
}

func (e *Enumeration) Clone() *Enumeration {
	if e == nil {
		return nil
	}
	return &Enumeration{
		name:        e.name,
		comment:     cloneComment(e.comment),
		enumerators: slices.Clone(e.enumerators),
		enclosing:   e.enclosing,
	}
}

func (e *Enumeration) Duplicate() Node         { return e.Clone() }
func (e *Enumeration) Assign(other Node) error { return assign(e, other) }
