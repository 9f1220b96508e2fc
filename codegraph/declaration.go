package codegraph

import (
	"slices"
	"strconv"
	"strings"
)

// DeclaratorSpecifier is the type part of a declaration together with its
// storage class and cv-qualifiers. Static and extern exclude each other.
type DeclaratorSpecifier struct {
	typ      Type
	constant bool
	volatile bool
	static   bool
	extern   bool
}

func (s *DeclaratorSpecifier) Type() Type     { return s.typ }
func (s *DeclaratorSpecifier) Const() bool    { return s.constant }
func (s *DeclaratorSpecifier) Volatile() bool { return s.volatile }
func (s *DeclaratorSpecifier) Static() bool   { return s.static }
func (s *DeclaratorSpecifier) Extern() bool   { return s.extern }

// SetType replaces the referenced type. The type is not owned.
func (s *DeclaratorSpecifier) SetType(t Type) *DeclaratorSpecifier {
	s.typ = t
	return s
}

func (s *DeclaratorSpecifier) SetConst(v bool) *DeclaratorSpecifier {
	s.constant = v
	return s
}

func (s *DeclaratorSpecifier) SetVolatile(v bool) *DeclaratorSpecifier {
	s.volatile = v
	return s
}

func (s *DeclaratorSpecifier) SetStatic(v bool) *DeclaratorSpecifier {
	s.static = v
	if v {
		s.extern = false
	}
	return s
}

func (s *DeclaratorSpecifier) SetExtern(v bool) *DeclaratorSpecifier {
	s.extern = v
	if v {
		s.static = false
	}
	return s
}

// text spells cv-qualifiers and the type name followed by a space.
func (s *DeclaratorSpecifier) text(rc *RenderContext) (string, error) {
	var b strings.Builder
	if s.constant {
		b.WriteString("const ")
	}
	if s.volatile {
		b.WriteString("volatile ")
	}
	name, err := typeName(rc, s.typ)
	if err != nil {
		return "", err
	}
	b.WriteString(name + " ")
	return b.String(), nil
}

func (s *DeclaratorSpecifier) storage() string {
	switch {
	case s.static:
		return "static "
	case s.extern:
		return "extern "
	}
	return ""
}

// Declarator is the name part of a declaration: indirection, qualifiers, array
// bounds and initializer. Qualifiers only apply to pointers and a reference
// cannot have array bounds.
type Declarator struct {
	name      string
	level     int
	reference bool
	constant  bool
	volatile  bool
	indices   []int
	init      Expression
}

func NewDeclarator(name string) *Declarator {
	return &Declarator{name: name}
}

func (d *Declarator) Name() string            { return d.name }
func (d *Declarator) IndirectionLevel() int   { return d.level }
func (d *Declarator) Const() bool             { return d.constant && d.level > 0 }
func (d *Declarator) Volatile() bool          { return d.volatile && d.level > 0 }
func (d *Declarator) Reference() bool         { return d.reference && len(d.indices) == 0 }
func (d *Declarator) Indices() []int          { return slices.Clone(d.indices) }
func (d *Declarator) Initializer() Expression { return d.init }
func (d *Declarator) HasInitializer() bool    { return !isNil(d.init) }
func (d *Declarator) Kind() Kind              { return KindDeclarator }

func (d *Declarator) SetName(name string) *Declarator {
	d.name = name
	return d
}

func (d *Declarator) SetIndirectionLevel(level int) *Declarator {
	d.level = max(level, 0)
	return d
}

func (d *Declarator) SetConst(v bool) *Declarator {
	d.constant = v && d.level > 0
	return d
}

func (d *Declarator) SetVolatile(v bool) *Declarator {
	d.volatile = v && d.level > 0
	return d
}

func (d *Declarator) SetReference(v bool) *Declarator {
	d.reference = v && len(d.indices) == 0
	return d
}

// AddIndex appends an array bound and drops the reference qualifier.
func (d *Declarator) AddIndex(n int) *Declarator {
	d.indices = append(d.indices, n)
	d.reference = false
	return d
}

// SetInitializer takes ownership of e; nil removes the initializer.
func (d *Declarator) SetInitializer(e Expression) *Declarator {
	d.init = e
	return d
}

func (d *Declarator) text(rc *RenderContext, name string, withInit bool) (string, error) {
	var b strings.Builder
	b.WriteString(strings.Repeat("*", d.level))
	if d.Reference() {
		b.WriteString("&")
	}
	if d.Const() || d.Volatile() {
		b.WriteString(" ")
	}
	if d.Const() {
		b.WriteString("const ")
	}
	if d.Volatile() {
		b.WriteString("volatile ")
	}
	b.WriteString(name)
	for i, n := range d.indices {
		if i == 0 {
			b.WriteString(" ")
		}
		b.WriteString("[ " + strconv.Itoa(n) + " ]")
	}
	if withInit && d.HasInitializer() {
		init, err := spell(rc, d.init, 0)
		if err != nil {
			return "", err
		}
		b.WriteString(" = " + init)
	}
	return b.String(), nil
}

func (d *Declarator) Render(rc *RenderContext, out *Sink, indent int) error {
	s, err := d.text(rc, d.name, true)
	if err != nil {
		return err
	}
	out.WriteString(rc.tabs(indent) + s)
	return out.Err()
}

func (d *Declarator) Clone() *Declarator {
	if d == nil {
		return nil
	}
	clone := *d
	clone.indices = slices.Clone(d.indices)
	if d.HasInitializer() {
		clone.init = d.init.Duplicate().(Expression)
	}
	return &clone
}

func (d *Declarator) Duplicate() Node         { return d.Clone() }
func (d *Declarator) Assign(other Node) error { return assign(d, other) }

// VariableDeclaration declares one variable. It is also used for function
// parameters, where the initializer is the default argument.
type VariableDeclaration struct {
	comment *Comment
	spec    DeclaratorSpecifier
	decl    *Declarator
}

// NewVariable declares name of type t. The type is referenced, not owned.
func NewVariable(t Type, name string) *VariableDeclaration {
	return &VariableDeclaration{comment: &Comment{}, spec: DeclaratorSpecifier{typ: t}, decl: NewDeclarator(name)}
}

func (v *VariableDeclaration) Comment() *Comment               { return v.comment }
func (v *VariableDeclaration) Specifier() *DeclaratorSpecifier { return &v.spec }
func (v *VariableDeclaration) Declarator() *Declarator         { return v.decl }
func (v *VariableDeclaration) Name() string                    { return v.decl.name }
func (v *VariableDeclaration) Kind() Kind                      { return KindVariableDeclaration }

// Init is shorthand for Declarator().SetInitializer.
func (v *VariableDeclaration) Init(e Expression) *VariableDeclaration {
	v.decl.SetInitializer(e)
	return v
}

// text spells the declaration without indentation, comment or terminator.
func (v *VariableDeclaration) text(rc *RenderContext, storage bool, name string, withInit bool) (string, error) {
	prefix := ""
	if storage {
		prefix = v.spec.storage()
	}
	if dt, ok := v.spec.typ.(declaratorType); ok {
		return v.declaratorText(rc, dt, prefix, name, withInit)
	}
	spec, err := v.spec.text(rc)
	if err != nil {
		return "", err
	}
	d, err := v.decl.text(rc, name, withInit)
	if err != nil {
		return "", err
	}
	return prefix + spec + d, nil
}

// declaratorText spells a declaration whose type wraps the declarator, such as
// a function pointer. The initializer follows the whole declarator.
func (v *VariableDeclaration) declaratorText(rc *RenderContext, dt declaratorType, prefix, name string, withInit bool) (string, error) {
	d, err := v.decl.text(rc, name, false)
	if err != nil {
		return "", err
	}
	s, err := dt.declare(rc, d)
	if err != nil {
		return "", err
	}
	if v.spec.constant {
		s = "const " + s
	}
	if withInit && v.decl.HasInitializer() {
		init, err := spell(rc, v.decl.init, 0)
		if err != nil {
			return "", err
		}
		s += " = " + init
	}
	return prefix + s, nil
}

// parameter spells the declaration as a function parameter.
func (v *VariableDeclaration) parameter(rc *RenderContext, withDefault bool) (string, error) {
	return v.text(rc, false, v.decl.name, withDefault)
}

func (v *VariableDeclaration) Render(rc *RenderContext, out *Sink, indent int) error {
	if err := writeComment(rc, out, v.comment, indent); err != nil {
		return err
	}
	s, err := v.text(rc, true, v.decl.name, true)
	if err != nil {
		return err
	}
	out.WriteString(rc.tabs(indent) + s + ";")
	return out.Err()
}

// renderMember emits the in-class form of a data member. Static members are
// declared without their initializer.
func (v *VariableDeclaration) renderMember(rc *RenderContext, out *Sink, indent int, prefix string, withInit bool) error {
	if err := writeComment(rc, out, v.comment, indent); err != nil {
		return err
	}
	s, err := v.text(rc, true, v.decl.name, withInit)
	if err != nil {
		return err
	}
	out.WriteString(rc.tabs(indent) + prefix + s + ";")
	return out.Err()
}

// renderDefinition emits "T Owner::name = init;" for a static member.
func (v *VariableDeclaration) renderDefinition(rc *RenderContext, out *Sink, indent int, owner NestableType) error {
	name := v.decl.name
	if owner != nil {
		q, err := qualifiedName(rc, owner)
		if err != nil {
			return err
		}
		name = q + "::" + name
	}
	s, err := v.text(rc, false, name, true)
	if err != nil {
		return err
	}
	headers, err := enclosingHeaders(rc, owner)
	if err != nil {
		return err
	}
	out.WriteString(rc.tabs(indent) + headers + s + ";")
	return out.Err()
}

// RenderSplit declares a namespace scope variable extern in the declaration
// stream and defines it in the definition stream. Static and extern variables
// are emitted whole into the declaration stream.
func (v *VariableDeclaration) RenderSplit(rc *RenderContext, decl, def *Sink, declIndent, defIndent int) error {
	if v.spec.static || v.spec.extern {
		return v.Render(rc, decl, declIndent)
	}
	if err := writeComment(rc, decl, v.comment, declIndent); err != nil {
		return err
	}
	s, err := v.text(rc, false, v.decl.name, false)
	if err != nil {
		return err
	}
	decl.WriteString(rc.tabs(declIndent) + "extern " + s + ";")
	if err := decl.Err(); err != nil {
		return err
	}
	s, err = v.text(rc, false, v.decl.name, true)
	if err != nil {
		return err
	}
	def.WriteString(rc.tabs(defIndent) + s + ";")
	return def.Err()
}

func (v *VariableDeclaration) Clone() *VariableDeclaration {
	if v == nil {
		return nil
	}
	return &VariableDeclaration{comment: cloneComment(v.comment), spec: v.spec, decl: v.decl.Clone()}
}

func (v *VariableDeclaration) Duplicate() Node         { return v.Clone() }
func (v *VariableDeclaration) Assign(other Node) error { return assign(v, other) }
func (*VariableDeclaration) statement()                {}

// VariableDeclarationList declares several variables sharing one specifier.
type VariableDeclarationList struct {
	comment     *Comment
	spec        DeclaratorSpecifier
	declarators List[*Declarator]
}

func NewVariableList(t Type, declarators ...*Declarator) *VariableDeclarationList {
	l := &VariableDeclarationList{comment: &Comment{}, spec: DeclaratorSpecifier{typ: t}}
	l.declarators.Add(declarators...)
	return l
}

func (l *VariableDeclarationList) Comment() *Comment               { return l.comment }
func (l *VariableDeclarationList) Specifier() *DeclaratorSpecifier { return &l.spec }
func (l *VariableDeclarationList) Declarators() *List[*Declarator] { return &l.declarators }
func (l *VariableDeclarationList) Kind() Kind                      { return KindVariableDeclarationList }

func (l *VariableDeclarationList) Render(rc *RenderContext, out *Sink, indent int) error {
	if err := writeComment(rc, out, l.comment, indent); err != nil {
		return err
	}
	spec, err := l.spec.text(rc)
	if err != nil {
		return err
	}
	names := make([]string, 0, l.declarators.Len())
	for _, d := range l.declarators.All() {
		s, err := d.text(rc, d.name, true)
		if err != nil {
			return err
		}
		names = append(names, s)
	}
	out.WriteString(rc.tabs(indent) + l.spec.storage() + spec + strings.Join(names, " , ") + ";")
	return out.Err()
}

func (l *VariableDeclarationList) Clone() *VariableDeclarationList {
	if l == nil {
		return nil
	}
	return &VariableDeclarationList{comment: cloneComment(l.comment), spec: l.spec, declarators: l.declarators.Clone()}
}

func (l *VariableDeclarationList) Duplicate() Node         { return l.Clone() }
func (l *VariableDeclarationList) Assign(other Node) error { return assign(l, other) }
func (*VariableDeclarationList) statement()                {}
