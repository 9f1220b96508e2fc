package codegraph

import (
	"strings"

	"github.com/cockroachdb/errors"
)

// Union is a named or anonymous union. Anonymous unions hold data members only.
type Union struct {
	name      string
	comment   *Comment
	templates List[TemplateParam]
	vars      Members[*VariableDeclaration]
	functions Members[*MemberFunction]
	operators Members[*MemberOperator]
	enclosing NestableType
}

func NewUnion(name string) *Union {
	return &Union{name: name, comment: &Comment{}}
}

func (u *Union) Name() string                              { return u.name }
func (u *Union) Comment() *Comment                         { return u.comment }
func (u *Union) Enclosing() NestableType                   { return u.enclosing }
func (u *Union) Variables() *Members[*VariableDeclaration] { return &u.vars }
func (u *Union) Kind() Kind                                { return KindUnion }

func (u *Union) setEnclosing(t NestableType)     { u.enclosing = t }
func (u *Union) templateParams() []TemplateParam { return u.templates.Slice() }
func (u *Union) specializationArgs() []Node      { return nil }

func (u *Union) anonymous(what string) error {
	return errors.Wrapf(ErrNotSupported, "anonymous union cannot have %s", what)
}

// Functions returns the member functions. Anonymous unions have none.
func (u *Union) Functions() (*Members[*MemberFunction], error) {
	if u.name == "" {
		return nil, u.anonymous("member functions")
	}
	return &u.functions, nil
}

func (u *Union) Operators() (*Members[*MemberOperator], error) {
	if u.name == "" {
		return nil, u.anonymous("member operators")
	}
	return &u.operators, nil
}

func (u *Union) TemplateParameters() ([]TemplateParam, error) {
	if u.name == "" {
		return nil, u.anonymous("template parameters")
	}
	return u.templates.Slice(), nil
}

func (u *Union) SetName(name string) *Union {
	u.name = name
	return u
}

// AddVariable adds a data member. Set Mutable on the returned entry for a
// mutable member.
func (u *Union) AddVariable(v *VariableDeclaration, access Access) *Member[*VariableDeclaration] {
	return u.vars.Add(v, access)
}

func (u *Union) AddFunction(f *MemberFunction, access Access) (*Member[*MemberFunction], error) {
	if u.name == "" {
		return nil, u.anonymous("member functions")
	}
	f.setEnclosing(u)
	return u.functions.Add(f, access), nil
}

func (u *Union) AddOperator(o *MemberOperator, access Access) (*Member[*MemberOperator], error) {
	if u.name == "" {
		return nil, u.anonymous("member operators")
	}
	o.setEnclosing(u)
	return u.operators.Add(o, access), nil
}

func (u *Union) AddTemplateParameter(p TemplateParam) error {
	if u.name == "" {
		return u.anonymous("template parameters")
	}
	u.templates.Add(p)
	return nil
}

func (u *Union) header(rc *RenderContext, indent int, qualified bool) (string, error) {
	var b strings.Builder
	b.WriteString(rc.tabs(indent))
	if qualified {
		h, err := enclosingHeaders(rc, u.enclosing)
		if err != nil {
			return "", err
		}
		b.WriteString(h)
	}
	own, err := templateHeaderOf(rc, u)
	if err != nil {
		return "", err
	}
	b.WriteString(own + "union")
	if u.name == "" {
		return b.String(), nil
	}
	b.WriteString(" ")
	if qualified {
		q, err := qualifiedName(rc, u.enclosing)
		if err != nil {
			return "", err
		}
		b.WriteString(q + "::")
	}
	b.WriteString(u.name)
	return b.String(), nil
}

func (u *Union) memberPass(rc *RenderContext, out *Sink, indent int) error {
	inner := indent + 1
	return writeGroups(rc, out, indent, func(access Access, g *Sink) error {
		for v := range u.vars.In(access, Public) {
			if err := emitVariable(rc, g, inner, u, v); err != nil {
				return err
			}
		}
		for f := range u.functions.In(access, Public) {
			if err := emitCallable(rc, g, inner, f.Value); err != nil {
				return err
			}
		}
		for o := range u.operators.In(access, Public) {
			if err := emitCallable(rc, g, inner, o.Value); err != nil {
				return err
			}
		}
		return g.Err()
	})
}

func (u *Union) compose(rc *RenderContext, out, def *Sink, indent, defIndent int) error {
	return compose(rc, u, out, def, indent, defIndent, func(qualified bool) error {
		if err := writeComment(rc, out, u.comment, indent); err != nil {
			return err
		}
		head, err := u.header(rc, indent, qualified && u.name != "")
		if err != nil {
			return err
		}
		tabs := rc.tabs(indent)
		out.WriteString(head + "\n" + tabs + "{\n")
		if err := u.memberPass(rc, out, indent); err != nil {
			return err
		}
		out.WriteString(tabs + "};\n")
		return out.Err()
	})
}

func (u *Union) Render(rc *RenderContext, out *Sink, indent int) error {
	return u.compose(rc, out, nil, indent, 0)
}

func (u *Union) RenderSplit(rc *RenderContext, decl, def *Sink, declIndent, defIndent int) error {
	return u.compose(rc, decl, def, declIndent, defIndent)
}

func (u *Union) Clone() *Union {
	if u == nil {
		return nil
	}
	c := &Union{
		name:      u.name,
		comment:   cloneComment(u.comment),
		templates: u.templates.Clone(),
		vars:      u.vars.Clone(),
		functions: u.functions.Clone(),
		operators: u.operators.Clone(),
		enclosing: u.enclosing,
	}
	c.adopt()
	return c
}

func (u *Union) adopt() {
	for _, f := range u.functions.All() {
		f.Value.setEnclosing(u)
	}
	for _, o := range u.operators.All() {
		o.Value.setEnclosing(u)
	}
}

func (u *Union) Duplicate() Node { return u.Clone() }

func (u *Union) Assign(other Node) error {
	if err := assign(u, other); err != nil {
		return err
	}
	u.adopt()
	return nil
}
