package codegraph

import (
	"slices"
	"strings"

	"github.com/cockroachdb/errors"
)

// Typedefinition introduces one or more synonyms for a type.
type Typedefinition struct {
	comment  *Comment
	typ      Type
	synonyms []string
}

// NewTypedefinition references t without owning it.
func NewTypedefinition(t Type, synonyms ...string) (*Typedefinition, error) {
	if isNil(t) {
		return nil, errors.Wrap(ErrNullReference, "typedef needs a type")
	}
	if len(synonyms) == 0 {
		return nil, errors.Wrapf(ErrInvalidArgument, "typedef of %s needs a synonym", t.Name())
	}
	return &Typedefinition{comment: &Comment{}, typ: t, synonyms: slices.Clone(synonyms)}, nil
}

func (d *Typedefinition) Comment() *Comment  { return d.comment }
func (d *Typedefinition) Type() Type         { return d.typ }
func (d *Typedefinition) Synonyms() []string { return slices.Clone(d.synonyms) }
func (d *Typedefinition) Kind() Kind         { return KindTypedefinition }

func (d *Typedefinition) AddSynonym(name string) *Typedefinition {
	d.synonyms = append(d.synonyms, name)
	return d
}

func (d *Typedefinition) HasSynonym(name string) bool {
	return slices.Contains(d.synonyms, name)
}

func (d *Typedefinition) Render(rc *RenderContext, out *Sink, indent int) error {
	if err := writeComment(rc, out, d.comment, indent); err != nil {
		return err
	}
	tabs := rc.tabs(indent)
	if dt, ok := d.typ.(declaratorType); ok {
		lines := make([]string, 0, len(d.synonyms))
		for _, syn := range d.synonyms {
			s, err := dt.declare(rc, syn)
			if err != nil {
				return err
			}
			lines = append(lines, tabs+"typedef "+s+";")
		}
		out.WriteString(strings.Join(lines, "\n"))
		return out.Err()
	}
	name, err := typeName(rc, d.typ)
	if err != nil {
		return err
	}
	out.WriteString(tabs + "typedef " + name + " " + strings.Join(d.synonyms, " , ") + ";")
	return out.Err()
}

func (d *Typedefinition) Clone() *Typedefinition {
	if d == nil {
		return nil
	}
	return &Typedefinition{comment: cloneComment(d.comment), typ: d.typ, synonyms: slices.Clone(d.synonyms)}
}

func (d *Typedefinition) Duplicate() Node         { return d.Clone() }
func (d *Typedefinition) Assign(other Node) error { return assign(d, other) }

// TypedefinedType names a type through one of a typedef's synonyms.
type TypedefinedType struct {
	def  *Typedefinition
	name string
}

func NewTypedefinedType(def *Typedefinition, name string) (*TypedefinedType, error) {
	if def == nil {
		return nil, errors.Wrap(ErrNullReference, "typedefined type needs a typedef")
	}
	if !def.HasSynonym(name) {
		return nil, errors.Wrapf(ErrInvalidArgument, "%q is not a synonym of %s", name, def.typ.Name())
	}
	return &TypedefinedType{def: def, name: name}, nil
}

func (t *TypedefinedType) Name() string                { return t.name }
func (t *TypedefinedType) Definition() *Typedefinition { return t.def }
func (t *TypedefinedType) Kind() Kind                  { return KindTypedefinedType }

func (t *TypedefinedType) Render(rc *RenderContext, out *Sink, indent int) error {
	out.WriteString(rc.tabs(indent) + t.name)
	return out.Err()
}

func (t *TypedefinedType) Clone() *TypedefinedType {
	if t == nil {
		return nil
	}
	clone := *t
	return &clone
}

func (t *TypedefinedType) Duplicate() Node         { return t.Clone() }
func (t *TypedefinedType) Assign(other Node) error { return assign(t, other) }
