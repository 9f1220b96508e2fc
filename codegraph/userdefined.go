package codegraph

import (
	"strings"

	"github.com/cockroachdb/errors"
)

// BaseType is one entry of a class's base list. The base class is referenced,
// not owned.
type BaseType struct {
	access  Access
	typ     *UserDefinedType
	args    List[Node]
	virtual bool
}

func NewBaseType(t *UserDefinedType, access Access) *BaseType {
	return &BaseType{access: access, typ: t}
}

func (b *BaseType) Access() Access         { return b.access }
func (b *BaseType) Type() *UserDefinedType { return b.typ }
func (b *BaseType) Virtual() bool          { return b.virtual }
func (b *BaseType) Arguments() *List[Node] { return &b.args }
func (b *BaseType) Kind() Kind             { return KindBaseType }

func (b *BaseType) SetVirtual(v bool) *BaseType {
	b.virtual = v
	return b
}

// AddArgument appends a template argument for a class template base.
func (b *BaseType) AddArgument(n Node) *BaseType {
	b.args.Add(n)
	return b
}

func (b *BaseType) text(rc *RenderContext) (string, error) {
	var s strings.Builder
	if b.access != AccessDefault {
		s.WriteString(b.access.String() + " ")
	}
	if b.virtual {
		s.WriteString("virtual ")
	}
	if b.typ == nil {
		return "", errors.Wrap(ErrNullReference, "base type")
	}
	if e := b.typ.enclosing; e != nil {
		q, err := qualifiedName(rc, e)
		if err != nil {
			return "", err
		}
		s.WriteString(q + "::")
	}
	s.WriteString(b.typ.name)
	if b.args.Len() > 0 {
		args, err := spellJoined(rc, b.args.Slice(), " , ")
		if err != nil {
			return "", err
		}
		s.WriteString("< " + args + " >")
	}
	return s.String(), nil
}

func (b *BaseType) Render(rc *RenderContext, out *Sink, indent int) error {
	s, err := b.text(rc)
	if err != nil {
		return err
	}
	out.WriteString(rc.tabs(indent) + s)
	return out.Err()
}

func (b *BaseType) Clone() *BaseType {
	if b == nil {
		return nil
	}
	return &BaseType{access: b.access, typ: b.typ, args: b.args.Clone(), virtual: b.virtual}
}

func (b *BaseType) Duplicate() Node         { return b.Clone() }
func (b *BaseType) Assign(other Node) error { return assign(b, other) }

// UserDefinedType is a class or struct. Members are added with an access level
// and rendered grouped by access; see compose for the emission order.
type UserDefinedType struct {
	name        string
	class       bool
	comment     *Comment
	bases       List[*BaseType]
	specialized List[Node]
	templates   List[TemplateParam]
	typedefs    Members[*Typedefinition]
	types       Members[*UserDefinedType]
	enums       Members[*Enumeration]
	unions      Members[*Union]
	vars        Members[*VariableDeclaration]
	functions   Members[*MemberFunction]
	operators   Members[*MemberOperator]
	ctors       Members[*Constructor]
	dtor        *Destructor
	dtorAccess  Access
	sealed      bool
	inline      bool
	enclosing   NestableType
}

func NewClass(name string) *UserDefinedType {
	return &UserDefinedType{name: name, class: true, comment: &Comment{}}
}

func NewStruct(name string) *UserDefinedType {
	return &UserDefinedType{name: name, comment: &Comment{}}
}

func (t *UserDefinedType) Name() string            { return t.name }
func (t *UserDefinedType) IsClass() bool           { return t.class }
func (t *UserDefinedType) Comment() *Comment       { return t.comment }
func (t *UserDefinedType) Enclosing() NestableType { return t.enclosing }
func (t *UserDefinedType) Sealed() bool            { return t.sealed }
func (t *UserDefinedType) Inline() bool            { return t.inline }
func (t *UserDefinedType) Kind() Kind              { return KindUserDefinedType }

func (t *UserDefinedType) Bases() *List[*BaseType]                   { return &t.bases }
func (t *UserDefinedType) Typedefs() *Members[*Typedefinition]       { return &t.typedefs }
func (t *UserDefinedType) Types() *Members[*UserDefinedType]         { return &t.types }
func (t *UserDefinedType) Enumerations() *Members[*Enumeration]      { return &t.enums }
func (t *UserDefinedType) Unions() *Members[*Union]                  { return &t.unions }
func (t *UserDefinedType) Variables() *Members[*VariableDeclaration] { return &t.vars }
func (t *UserDefinedType) Functions() *Members[*MemberFunction]      { return &t.functions }
func (t *UserDefinedType) Operators() *Members[*MemberOperator]      { return &t.operators }
func (t *UserDefinedType) Constructors() *Members[*Constructor]      { return &t.ctors }
func (t *UserDefinedType) Destructor() *Destructor                   { return t.dtor }
func (t *UserDefinedType) TemplateParameters() []TemplateParam       { return t.templateParams() }

func (t *UserDefinedType) setEnclosing(e NestableType)     { t.enclosing = e }
func (t *UserDefinedType) templateParams() []TemplateParam { return t.templates.Slice() }
func (t *UserDefinedType) specializationArgs() []Node      { return t.specialized.Slice() }

func (t *UserDefinedType) defaultAccess() Access {
	if t.class {
		return Private
	}
	return Public
}

func (t *UserDefinedType) keyword() string {
	if t.class {
		return "class"
	}
	return "struct"
}

func (t *UserDefinedType) SetName(name string) *UserDefinedType {
	t.name = name
	return t
}

// SetInline defines a nested type inside its enclosing type instead of after it.
func (t *UserDefinedType) SetInline(v bool) *UserDefinedType {
	t.inline = v
	return t
}

func (t *UserDefinedType) AddBase(b *BaseType) *UserDefinedType {
	t.bases.Add(b)
	return t
}

func (t *UserDefinedType) AddTemplateParameter(p TemplateParam) *UserDefinedType {
	t.templates.Add(p)
	return t
}

// AddSpecializationArgument makes the type an explicit specialization.
func (t *UserDefinedType) AddSpecializationArgument(n Node) *UserDefinedType {
	t.specialized.Add(n)
	return t
}

func (t *UserDefinedType) AddTypedef(d *Typedefinition, access Access) *Member[*Typedefinition] {
	return t.typedefs.Add(d, access)
}

func (t *UserDefinedType) AddType(nested *UserDefinedType, access Access) *Member[*UserDefinedType] {
	nested.enclosing = t
	return t.types.Add(nested, access)
}

func (t *UserDefinedType) AddEnumeration(e *Enumeration, access Access) *Member[*Enumeration] {
	e.setEnclosing(t)
	return t.enums.Add(e, access)
}

func (t *UserDefinedType) AddUnion(u *Union, access Access) *Member[*Union] {
	u.setEnclosing(t)
	return t.unions.Add(u, access)
}

// AddVariable adds a data member; set Mutable on the returned entry for a
// mutable member.
func (t *UserDefinedType) AddVariable(v *VariableDeclaration, access Access) *Member[*VariableDeclaration] {
	return t.vars.Add(v, access)
}

func (t *UserDefinedType) AddFunction(f *MemberFunction, access Access) *Member[*MemberFunction] {
	f.setEnclosing(t)
	return t.functions.Add(f, access)
}

func (t *UserDefinedType) AddOperator(o *MemberOperator, access Access) *Member[*MemberOperator] {
	o.setEnclosing(t)
	return t.operators.Add(o, access)
}

func (t *UserDefinedType) AddConstructor(c *Constructor, access Access) *Member[*Constructor] {
	c.setEnclosing(t)
	if t.sealed {
		access = Private
	}
	return t.ctors.Add(c, access)
}

// SetDestructor replaces the destructor; nil removes it.
func (t *UserDefinedType) SetDestructor(d *Destructor, access Access) *UserDefinedType {
	if d != nil {
		d.setEnclosing(t)
	}
	t.dtor, t.dtorAccess = d, access
	return t
}

// Abstract reports whether the destructor is pure.
func (t *UserDefinedType) Abstract() bool {
	return t.dtor != nil && t.dtor.pure
}

// SetAbstract makes the destructor pure, adding a public one when missing.
func (t *UserDefinedType) SetAbstract(v bool) *UserDefinedType {
	switch {
	case v && t.dtor == nil:
		t.SetDestructor(NewDestructor().SetPure(true), Public)
	case v:
		t.dtor.SetPure(true)
	case t.dtor != nil:
		t.dtor.SetPure(false)
	}
	return t
}

// SetSealed makes every constructor private, or public again when unsealed.
func (t *UserDefinedType) SetSealed(v bool) *UserDefinedType {
	t.sealed = v
	access := Public
	if v {
		access = Private
	}
	for _, c := range t.ctors.All() {
		c.Access = access
	}
	return t
}

// derivesFromComposing reports whether any base is a type whose composition is
// still open.
func (t *UserDefinedType) derivesFromComposing(rc *RenderContext) bool {
	for _, b := range t.bases.All() {
		if b.typ != nil && rc.isComposing(b.typ) {
			return true
		}
	}
	return false
}

func (t *UserDefinedType) header(rc *RenderContext, indent int, qualified bool) (string, error) {
	var b strings.Builder
	b.WriteString(rc.tabs(indent))
	if qualified {
		h, err := enclosingHeaders(rc, t.enclosing)
		if err != nil {
			return "", err
		}
		b.WriteString(h)
	}
	own, err := templateHeaderOf(rc, t)
	if err != nil {
		return "", err
	}
	b.WriteString(own + t.keyword() + " ")
	if qualified {
		q, err := qualifiedName(rc, t.enclosing)
		if err != nil {
			return "", err
		}
		b.WriteString(q + "::")
	}
	b.WriteString(t.name)
	if t.specialized.Len() > 0 {
		args, err := spellJoined(rc, t.specialized.Slice(), " , ")
		if err != nil {
			return "", err
		}
		b.WriteString("< " + args + " >")
	}
	for i, base := range t.bases.All() {
		if i == 0 {
			b.WriteString(" : ")
		} else {
			b.WriteString(" , ")
		}
		s, err := base.text(rc)
		if err != nil {
			return "", err
		}
		b.WriteString(s)
	}
	return b.String(), nil
}

// forwardPass mentions nested declarations before any member uses them.
// Unnamed enumerations and unions are defined here in full.
func (t *UserDefinedType) forwardPass(rc *RenderContext, out *Sink, indent int) error {
	fallback, inner := t.defaultAccess(), indent+1
	tabs := rc.tabs(inner)
	return writeGroups(rc, out, indent, func(access Access, g *Sink) error {
		for e := range t.enums.In(access, fallback) {
			if e.Value.name != "" {
				g.WriteString(tabs + "enum " + e.Value.name + ";\n\n")
			} else if err := renderTerminated(rc, e.Value, g, inner); err != nil {
				return err
			}
		}
		for u := range t.unions.In(access, fallback) {
			if u.Value.name != "" {
				g.WriteString(tabs + "union " + u.Value.name + ";\n\n")
			} else if err := renderTerminated(rc, u.Value, g, inner); err != nil {
				return err
			}
		}
		for n := range t.types.In(access, fallback) {
			g.WriteString(tabs + n.Value.keyword() + " " + n.Value.name + ";\n\n")
		}
		for d := range t.typedefs.In(access, fallback) {
			if err := renderTerminated(rc, d.Value, g, inner); err != nil {
				return err
			}
		}
		return g.Err()
	})
}

// memberPass emits members grouped by access, each group ordered enumerations,
// unions, nested types, variables, functions, operators, constructors and the
// destructor.
func (t *UserDefinedType) memberPass(rc *RenderContext, out *Sink, indent int) error {
	fallback, inner := t.defaultAccess(), indent+1
	return writeGroups(rc, out, indent, func(access Access, g *Sink) error {
		for e := range t.enums.In(access, fallback) {
			if e.Value.name == "" {
				continue
			}
			if err := renderTerminated(rc, e.Value, g, inner); err != nil {
				return err
			}
		}
		for u := range t.unions.In(access, fallback) {
			if u.Value.name == "" {
				continue
			}
			if err := renderTerminated(rc, u.Value, g, inner); err != nil {
				return err
			}
		}
		for n := range t.types.In(access, fallback) {
			nested := n.Value
			if nested.inline && !nested.derivesFromComposing(rc) {
				s, err := spellWith(rc, func(rc *RenderContext, out *Sink, indent int) error {
					return nested.compose(rc, out, nil, indent, 0)
				}, inner)
				if err != nil {
					return err
				}
				writeTerminated(g, s)
				continue
			}
			rc.backlog = append(rc.backlog, deferral{composite: nested})
		}
		for v := range t.vars.In(access, fallback) {
			if err := emitVariable(rc, g, inner, t, v); err != nil {
				return err
			}
		}
		for f := range t.functions.In(access, fallback) {
			if err := emitCallable(rc, g, inner, f.Value); err != nil {
				return err
			}
		}
		for o := range t.operators.In(access, fallback) {
			if err := emitCallable(rc, g, inner, o.Value); err != nil {
				return err
			}
		}
		for c := range t.ctors.In(access, fallback) {
			if err := emitCallable(rc, g, inner, c.Value); err != nil {
				return err
			}
		}
		if t.dtor != nil && t.dtorAccess.resolve(fallback) == access {
			if err := emitCallable(rc, g, inner, t.dtor); err != nil {
				return err
			}
		}
		return g.Err()
	})
}

func (t *UserDefinedType) compose(rc *RenderContext, out, def *Sink, indent, defIndent int) error {
	return compose(rc, t, out, def, indent, defIndent, func(qualified bool) error {
		if err := writeComment(rc, out, t.comment, indent); err != nil {
			return err
		}
		head, err := t.header(rc, indent, qualified)
		if err != nil {
			return err
		}
		tabs := rc.tabs(indent)
		out.WriteString(head + "\n" + tabs + "{\n")
		if err := t.forwardPass(rc, out, indent); err != nil {
			return err
		}
		if err := t.memberPass(rc, out, indent); err != nil {
			return err
		}
		out.WriteString(tabs + "};\n")
		return out.Err()
	})
}

// Render writes the type followed by every definition it deferred.
func (t *UserDefinedType) Render(rc *RenderContext, out *Sink, indent int) error {
	return t.compose(rc, out, nil, indent, 0)
}

// RenderSplit writes the type to decl and the out-of-line member definitions
// to def.
func (t *UserDefinedType) RenderSplit(rc *RenderContext, decl, def *Sink, declIndent, defIndent int) error {
	return t.compose(rc, decl, def, declIndent, defIndent)
}

// Clone deep copies the type. Members of the copy point back to the copy, and
// nested bases that named a type inside the original name its copy.
func (t *UserDefinedType) Clone() *UserDefinedType {
	if t == nil {
		return nil
	}
	remap := map[*UserDefinedType]*UserDefinedType{}
	c := t.cloneInto(remap)
	c.rebase(remap)
	return c
}

func (t *UserDefinedType) cloneInto(remap map[*UserDefinedType]*UserDefinedType) *UserDefinedType {
	c := &UserDefinedType{
		name:        t.name,
		class:       t.class,
		comment:     cloneComment(t.comment),
		bases:       t.bases.Clone(),
		specialized: t.specialized.Clone(),
		templates:   t.templates.Clone(),
		typedefs:    t.typedefs.Clone(),
		enums:       t.enums.Clone(),
		unions:      t.unions.Clone(),
		vars:        t.vars.Clone(),
		functions:   t.functions.Clone(),
		operators:   t.operators.Clone(),
		ctors:       t.ctors.Clone(),
		dtor:        t.dtor.Clone(),
		dtorAccess:  t.dtorAccess,
		sealed:      t.sealed,
		inline:      t.inline,
		enclosing:   t.enclosing,
	}
	remap[t] = c
	for _, n := range t.types.All() {
		entry := c.types.Add(n.Value.cloneInto(remap), n.Access)
		entry.Mutable = n.Mutable
	}
	c.adopt()
	return c
}

// adopt points every member's enclosing reference at t.
func (t *UserDefinedType) adopt() {
	for _, n := range t.types.All() {
		n.Value.enclosing = t
	}
	for _, e := range t.enums.All() {
		e.Value.setEnclosing(t)
	}
	for _, u := range t.unions.All() {
		u.Value.setEnclosing(t)
	}
	for _, f := range t.functions.All() {
		f.Value.setEnclosing(t)
	}
	for _, o := range t.operators.All() {
		o.Value.setEnclosing(t)
	}
	for _, c := range t.ctors.All() {
		c.Value.setEnclosing(t)
	}
	if t.dtor != nil {
		t.dtor.setEnclosing(t)
	}
}

func (t *UserDefinedType) rebase(remap map[*UserDefinedType]*UserDefinedType) {
	for _, b := range t.bases.All() {
		if m, ok := remap[b.typ]; ok {
			b.typ = m
		}
	}
	for _, n := range t.types.All() {
		n.Value.rebase(remap)
	}
}

func (t *UserDefinedType) Duplicate() Node { return t.Clone() }

func (t *UserDefinedType) Assign(other Node) error {
	src, err := assignable[*UserDefinedType](t, other)
	if err != nil {
		return err
	}
	remap := map[*UserDefinedType]*UserDefinedType{}
	*t = *src.cloneInto(remap)
	remap[src] = t
	t.adopt()
	t.rebase(remap)
	return nil
}
