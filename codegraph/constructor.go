package codegraph

import (
	"strings"

	"github.com/cockroachdb/errors"
)

// MemberInitializer is one entry of a constructor's initializer list.
type MemberInitializer struct {
	name string
	args List[Expression]
}

func NewMemberInitializer(name string, args ...Expression) *MemberInitializer {
	m := &MemberInitializer{name: name}
	m.args.Add(args...)
	return m
}

func (m *MemberInitializer) Name() string                 { return m.name }
func (m *MemberInitializer) Arguments() *List[Expression] { return &m.args }
func (m *MemberInitializer) Kind() Kind                   { return KindMemberInitializer }

func (m *MemberInitializer) Render(rc *RenderContext, out *Sink, indent int) error {
	args, err := argumentList(rc, m.args.Slice())
	if err != nil {
		return err
	}
	out.WriteString(rc.tabs(indent) + m.name + args)
	return out.Err()
}

func (m *MemberInitializer) Clone() *MemberInitializer {
	if m == nil {
		return nil
	}
	return &MemberInitializer{name: m.name, args: m.args.Clone()}
}

func (m *MemberInitializer) Duplicate() Node         { return m.Clone() }
func (m *MemberInitializer) Assign(other Node) error { return assign(m, other) }

// Constructor is named after its enclosing type.
type Constructor struct {
	callable
	explicit     bool
	initializers List[*MemberInitializer]
	enclosing    NestableType
}

func NewConstructor() *Constructor {
	return &Constructor{callable: newCallable("")}
}

// Name is the enclosing type's name, or empty for a detached constructor.
func (c *Constructor) Name() string {
	if c.enclosing == nil {
		return c.name
	}
	return c.enclosing.Name()
}

func (c *Constructor) Explicit() bool                          { return c.explicit }
func (c *Constructor) Initializers() *List[*MemberInitializer] { return &c.initializers }
func (c *Constructor) Enclosing() NestableType                 { return c.enclosing }
func (c *Constructor) Kind() Kind                              { return KindConstructor }

func (c *Constructor) setEnclosing(t NestableType) { c.enclosing = t }

func (c *Constructor) SetExplicit(v bool) *Constructor {
	c.explicit = v
	return c
}

func (c *Constructor) AddInitializer(m *MemberInitializer) *Constructor {
	c.initializers.Add(m)
	return c
}

func (c *Constructor) initializerText(rc *RenderContext, indent int) (string, error) {
	if c.initializers.Len() == 0 {
		return "", nil
	}
	s, err := spellJoined(rc, c.initializers.Slice(), " , ")
	if err != nil {
		return "", err
	}
	return "\n" + rc.tabs(indent+1) + ": " + s, nil
}

func (c *Constructor) placement(rc *RenderContext) placement {
	if c.inline || (isTemplated(c.templates.Len(), c.enclosing) && !rc.caps.Has(OutofClassTemplates)) {
		return placeInline
	}
	return placeDeferred
}

func (c *Constructor) renderForm(rc *RenderContext, out *Sink, indent int, form placement) error {
	templ, err := c.templateText(rc)
	if err != nil {
		return err
	}
	var b strings.Builder
	b.WriteString(rc.tabs(indent))
	name := c.Name()
	if form == placeDeferred {
		headers, err := outOfLineHeaders(rc, c.enclosing, templ)
		if err != nil {
			return err
		}
		b.WriteString(headers)
		if name, err = outOfLineName(rc, c.enclosing, name); err != nil {
			return err
		}
	} else {
		if err := writeComment(rc, out, c.comment, indent); err != nil {
			return err
		}
		b.WriteString(templ)
		if c.explicit {
			b.WriteString("explicit ")
		}
	}
	sig, err := c.signature(rc, name, form != placeDeferred)
	if err != nil {
		return err
	}
	b.WriteString(sig + c.exception.text(rc))
	if form == placeDeclaration {
		out.WriteString(b.String() + ";")
		return out.Err()
	}
	out.WriteString(b.String())
	inits, err := c.initializerText(rc, indent)
	if err != nil {
		return err
	}
	return c.writeBody(rc, out, indent, inits)
}

// Render writes the out-of-line definition.
func (c *Constructor) Render(rc *RenderContext, out *Sink, indent int) error {
	return c.renderDefinition(rc, out, indent)
}

func (c *Constructor) RenderSplit(rc *RenderContext, decl, def *Sink, declIndent, defIndent int) error {
	return renderMemberSplit(rc, c, decl, def, declIndent, defIndent)
}

func (c *Constructor) renderDeclaration(rc *RenderContext, out *Sink, indent int) error {
	return c.renderForm(rc, out, indent, placeDeclaration)
}

func (c *Constructor) renderInline(rc *RenderContext, out *Sink, indent int) error {
	return c.renderForm(rc, out, indent, placeInline)
}

func (c *Constructor) renderDefinition(rc *RenderContext, out *Sink, indent int) error {
	return c.renderForm(rc, out, indent, placeDeferred)
}

func (c *Constructor) Clone() *Constructor {
	if c == nil {
		return nil
	}
	return &Constructor{
		callable:     c.callable.clone(),
		explicit:     c.explicit,
		initializers: c.initializers.Clone(),
		enclosing:    c.enclosing,
	}
}

func (c *Constructor) Duplicate() Node         { return c.Clone() }
func (c *Constructor) Assign(other Node) error { return assign(c, other) }

// Destructor is named after its enclosing type. Pure implies virtual.
type Destructor struct {
	callable
	virtual   bool
	pure      bool
	forceBody bool
	enclosing NestableType
}

func NewDestructor() *Destructor {
	return &Destructor{callable: newCallable("")}
}

func (d *Destructor) Name() string {
	if d.enclosing == nil {
		return "~"
	}
	return "~" + d.enclosing.Name()
}

func (d *Destructor) Virtual() bool           { return d.virtual }
func (d *Destructor) Pure() bool              { return d.pure }
func (d *Destructor) ForceBody() bool         { return d.forceBody }
func (d *Destructor) Enclosing() NestableType { return d.enclosing }
func (d *Destructor) Kind() Kind              { return KindDestructor }

func (d *Destructor) setEnclosing(t NestableType) { d.enclosing = t }

// SetVirtual clears pure when turning virtual off.
func (d *Destructor) SetVirtual(v bool) *Destructor {
	d.virtual = v
	if !v {
		d.pure = false
	}
	return d
}

func (d *Destructor) SetPure(v bool) *Destructor {
	d.pure = v
	if v {
		d.virtual = true
	}
	return d
}

func (d *Destructor) SetForceBody(v bool) *Destructor {
	d.forceBody = v
	return d
}

// AddParameter always fails: destructors take no parameters.
func (d *Destructor) AddParameter(*VariableDeclaration) error {
	return errors.Wrap(ErrInvalidArgument, "destructors take no parameters")
}

// AddTemplateParameter always fails: destructors cannot be templates.
func (d *Destructor) AddTemplateParameter(TemplateParam) error {
	return errors.Wrap(ErrInvalidArgument, "destructors cannot be templates")
}

func (d *Destructor) placement(rc *RenderContext) placement {
	switch {
	case d.pure && d.forceBody:
		return placeDeferred
	case d.pure:
		return placeDeclaration
	case d.inline:
		return placeInline
	case isTemplated(0, d.enclosing) && !rc.caps.Has(OutofClassTemplates):
		return placeInline
	}
	return placeDeferred
}

func (d *Destructor) renderForm(rc *RenderContext, out *Sink, indent int, form placement) error {
	var b strings.Builder
	b.WriteString(rc.tabs(indent))
	name := d.Name()
	if form == placeDeferred {
		headers, err := outOfLineHeaders(rc, d.enclosing, "")
		if err != nil {
			return err
		}
		b.WriteString(headers)
		if name, err = outOfLineName(rc, d.enclosing, name); err != nil {
			return err
		}
	} else {
		if err := writeComment(rc, out, d.comment, indent); err != nil {
			return err
		}
		if d.virtual {
			b.WriteString("virtual ")
		}
	}
	b.WriteString(name + "( )" + d.exception.text(rc))
	if form == placeDeclaration {
		if d.pure {
			b.WriteString(" = 0")
		}
		out.WriteString(b.String() + ";")
		return out.Err()
	}
	out.WriteString(b.String())
	return d.writeBody(rc, out, indent, "")
}

// Render writes the out-of-line definition.
func (d *Destructor) Render(rc *RenderContext, out *Sink, indent int) error {
	return d.renderDefinition(rc, out, indent)
}

func (d *Destructor) RenderSplit(rc *RenderContext, decl, def *Sink, declIndent, defIndent int) error {
	return renderMemberSplit(rc, d, decl, def, declIndent, defIndent)
}

func (d *Destructor) renderDeclaration(rc *RenderContext, out *Sink, indent int) error {
	return d.renderForm(rc, out, indent, placeDeclaration)
}

func (d *Destructor) renderInline(rc *RenderContext, out *Sink, indent int) error {
	return d.renderForm(rc, out, indent, placeInline)
}

func (d *Destructor) renderDefinition(rc *RenderContext, out *Sink, indent int) error {
	return d.renderForm(rc, out, indent, placeDeferred)
}

func (d *Destructor) Clone() *Destructor {
	if d == nil {
		return nil
	}
	return &Destructor{
		callable:  d.callable.clone(),
		virtual:   d.virtual,
		pure:      d.pure,
		forceBody: d.forceBody,
		enclosing: d.enclosing,
	}
}

func (d *Destructor) Duplicate() Node         { return d.Clone() }
func (d *Destructor) Assign(other Node) error { return assign(d, other) }
