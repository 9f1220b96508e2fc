package codegraph

// memberCallable adds the member-only flags to callable. The setters keep the
// flags consistent whatever order they are called in.
type memberCallable struct {
	callable
	virtual   bool
	static    bool
	constant  bool
	volatile  bool
	pure      bool
	forceBody bool
	enclosing NestableType
}

func (m *memberCallable) Virtual() bool   { return m.virtual }
func (m *memberCallable) Static() bool    { return m.static }
func (m *memberCallable) Const() bool     { return m.constant }
func (m *memberCallable) Volatile() bool  { return m.volatile }
func (m *memberCallable) Pure() bool      { return m.pure }
func (m *memberCallable) ForceBody() bool { return m.forceBody }

// Enclosing is the composite type the member belongs to, if any.
func (m *memberCallable) Enclosing() NestableType { return m.enclosing }

func (m *memberCallable) setEnclosing(t NestableType) { m.enclosing = t }

// SetStatic clears virtual, pure and the cv-qualifiers.
func (m *memberCallable) SetStatic(v bool) {
	m.static = v
	if v {
		m.virtual = false
		m.pure = false
		m.constant = false
		m.volatile = false
	}
}

// SetVirtual drops template parameters and static. Clearing virtual also
// clears pure.
func (m *memberCallable) SetVirtual(v bool) {
	m.virtual = v
	if v {
		m.templates.Purge()
		m.static = false
	} else {
		m.pure = false
	}
}

// SetPure makes the member virtual.
func (m *memberCallable) SetPure(v bool) {
	m.pure = v
	if v {
		m.SetVirtual(true)
	}
}

func (m *memberCallable) SetConst(v bool) {
	m.constant = v
	if v {
		m.static = false
	}
}

func (m *memberCallable) SetVolatile(v bool) {
	m.volatile = v
	if v {
		m.static = false
	}
}

// SetForceBody gives a pure member an out-of-line body as well.
func (m *memberCallable) SetForceBody(v bool) { m.forceBody = v }

// AddTemplateParameter makes the member a template, which cannot be virtual.
func (m *memberCallable) AddTemplateParameter(p TemplateParam) {
	m.templates.Add(p)
	m.virtual = false
	m.pure = false
}

func (m *memberCallable) cloneMember() memberCallable {
	clone := *m
	clone.callable = m.callable.clone()
	return clone
}

func (m *memberCallable) qualifiers() string {
	s := ""
	if m.volatile {
		s += " volatile"
	}
	if m.constant {
		s += " const"
	}
	return s
}

func (m *memberCallable) storage() string {
	switch {
	case m.static:
		return "static "
	case m.virtual:
		return "virtual "
	}
	return ""
}

func (m *memberCallable) memberPlacement(rc *RenderContext) placement {
	switch {
	case m.pure && m.forceBody:
		return placeDeferred
	case m.pure:
		return placeDeclaration
	case m.inline:
		return placeInline
	case isTemplated(m.templates.Len(), m.enclosing) && !rc.caps.Has(OutofClassTemplates):
		return placeInline
	}
	return placeDeferred
}

// head spells everything up to and including the exception specification.
func (m *memberCallable) head(rc *RenderContext, indent int, name string, form placement) (string, error) {
	templ, err := m.templateText(rc)
	if err != nil {
		return "", err
	}
	ret, err := m.returnText(rc)
	if err != nil {
		return "", err
	}
	var b []byte
	b = append(b, rc.tabs(indent)...)
	switch form {
	case placeDeclaration:
		b = append(b, templ...)
		if m.inline {
			b = append(b, "inline "...)
		}
		b = append(b, m.storage()...)
	case placeInline:
		b = append(b, templ...)
		b = append(b, m.storage()...)
	case placeDeferred:
		headers, err := outOfLineHeaders(rc, m.enclosing, templ)
		if err != nil {
			return "", err
		}
		b = append(b, headers...)
		if name, err = outOfLineName(rc, m.enclosing, name); err != nil {
			return "", err
		}
	}
	sig, err := m.signature(rc, name, form != placeDeferred)
	if err != nil {
		return "", err
	}
	b = append(b, ret...)
	b = append(b, sig...)
	b = append(b, m.qualifiers()...)
	b = append(b, m.exception.text(rc)...)
	return string(b), nil
}

func (m *memberCallable) renderForm(rc *RenderContext, out *Sink, indent int, name string, form placement) error {
	if form != placeDeferred {
		if err := writeComment(rc, out, m.comment, indent); err != nil {
			return err
		}
	}
	head, err := m.head(rc, indent, name, form)
	if err != nil {
		return err
	}
	out.WriteString(head)
	if form == placeDeclaration {
		if m.pure {
			out.WriteString(" = 0")
		}
		out.WriteString(";")
		return out.Err()
	}
	return m.writeBody(rc, out, indent, "")
}

// MemberFunction is a function declared in a composite type.
type MemberFunction struct {
	memberCallable
}

func NewMemberFunction(name string) *MemberFunction {
	return &MemberFunction{memberCallable{callable: newCallable(name)}}
}

func (f *MemberFunction) Kind() Kind { return KindMemberFunction }

// Render writes the out-of-line definition.
func (f *MemberFunction) Render(rc *RenderContext, out *Sink, indent int) error {
	return f.renderDefinition(rc, out, indent)
}

func (f *MemberFunction) RenderSplit(rc *RenderContext, decl, def *Sink, declIndent, defIndent int) error {
	return renderMemberSplit(rc, f, decl, def, declIndent, defIndent)
}

func (f *MemberFunction) placement(rc *RenderContext) placement { return f.memberPlacement(rc) }

func (f *MemberFunction) renderDeclaration(rc *RenderContext, out *Sink, indent int) error {
	return f.renderForm(rc, out, indent, f.name, placeDeclaration)
}

func (f *MemberFunction) renderInline(rc *RenderContext, out *Sink, indent int) error {
	return f.renderForm(rc, out, indent, f.name, placeInline)
}

func (f *MemberFunction) renderDefinition(rc *RenderContext, out *Sink, indent int) error {
	return f.renderForm(rc, out, indent, f.name, placeDeferred)
}

func (f *MemberFunction) Clone() *MemberFunction {
	if f == nil {
		return nil
	}
	return &MemberFunction{f.cloneMember()}
}

func (f *MemberFunction) Duplicate() Node         { return f.Clone() }
func (f *MemberFunction) Assign(other Node) error { return assign(f, other) }

// MemberOperator is an operator overload declared in a composite type.
type MemberOperator struct {
	memberCallable
	kind   OperatorKind
	symbol string
}

func NewMemberOperator(kind OperatorKind, symbol string) (*MemberOperator, error) {
	s, err := normalizeOperator(kind, symbol)
	if err != nil {
		return nil, err
	}
	return &MemberOperator{memberCallable: memberCallable{callable: newCallable(operatorName(s))}, kind: kind, symbol: s}, nil
}

func (o *MemberOperator) OperatorKind() OperatorKind { return o.kind }
func (o *MemberOperator) Symbol() string             { return o.symbol }
func (o *MemberOperator) Name() string               { return operatorName(o.symbol) }
func (o *MemberOperator) Kind() Kind                 { return KindMemberOperator }

// AddParameter rejects parameters beyond the operator's arity.
func (o *MemberOperator) AddParameter(p *VariableDeclaration) error {
	if err := checkArity(o.kind, o.params.Len()+1); err != nil {
		return err
	}
	o.params.Add(p)
	return nil
}

func (o *MemberOperator) Render(rc *RenderContext, out *Sink, indent int) error {
	return o.renderDefinition(rc, out, indent)
}

func (o *MemberOperator) RenderSplit(rc *RenderContext, decl, def *Sink, declIndent, defIndent int) error {
	return renderMemberSplit(rc, o, decl, def, declIndent, defIndent)
}

func (o *MemberOperator) placement(rc *RenderContext) placement { return o.memberPlacement(rc) }

func (o *MemberOperator) renderDeclaration(rc *RenderContext, out *Sink, indent int) error {
	return o.renderForm(rc, out, indent, o.Name(), placeDeclaration)
}

func (o *MemberOperator) renderInline(rc *RenderContext, out *Sink, indent int) error {
	return o.renderForm(rc, out, indent, o.Name(), placeInline)
}

func (o *MemberOperator) renderDefinition(rc *RenderContext, out *Sink, indent int) error {
	return o.renderForm(rc, out, indent, o.Name(), placeDeferred)
}

func (o *MemberOperator) Clone() *MemberOperator {
	if o == nil {
		return nil
	}
	return &MemberOperator{memberCallable: o.cloneMember(), kind: o.kind, symbol: o.symbol}
}

func (o *MemberOperator) Duplicate() Node         { return o.Clone() }
func (o *MemberOperator) Assign(other Node) error { return assign(o, other) }
