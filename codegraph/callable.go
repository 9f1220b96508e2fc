package codegraph

import (
	"strings"
)

// callable holds the state shared by functions, operators, constructors and
// destructors.
type callable struct {
	name      string
	comment   *Comment
	params    List[*VariableDeclaration]
	returns   *VariableDeclaration
	exception ExceptionSpec
	body      List[Statement]
	catches   List[*CatchClause]
	templates List[TemplateParam]
	inline    bool
}

func newCallable(name string) callable {
	return callable{name: name, comment: &Comment{}}
}

func (c *callable) Name() string                            { return c.name }
func (c *callable) Comment() *Comment                       { return c.comment }
func (c *callable) Parameters() *List[*VariableDeclaration] { return &c.params }
func (c *callable) Exception() *ExceptionSpec               { return &c.exception }
func (c *callable) Body() *List[Statement]                  { return &c.body }
func (c *callable) Catches() *List[*CatchClause]            { return &c.catches }
func (c *callable) Inline() bool                            { return c.inline }

func (c *callable) SetName(name string) { c.name = name }
func (c *callable) SetInline(v bool)    { c.inline = v }

// TemplateParameters lists the callable's own template parameters.
func (c *callable) TemplateParameters() []TemplateParam {
	return append([]TemplateParam(nil), c.templates.Slice()...)
}

func (c *callable) AddTemplateParameter(p TemplateParam) {
	c.templates.Add(p)
}

// AddParameter appends a parameter and takes ownership of it.
func (c *callable) AddParameter(p *VariableDeclaration) error {
	c.params.Add(p)
	return nil
}

func (c *callable) AddStatement(stmts ...Statement) {
	c.body.Add(stmts...)
}

func (c *callable) AddCatch(cc *CatchClause) {
	c.catches.Add(cc)
}

// Returns is the unnamed return declaration, or nil for void.
func (c *callable) Returns() *VariableDeclaration {
	return c.returns
}

// SetReturns makes the callable return t and hands back the return declaration
// for pointer or const adjustments. A nil t makes it return void.
func (c *callable) SetReturns(t Type) *VariableDeclaration {
	if isNil(t) {
		c.returns = nil
		return nil
	}
	c.returns = NewVariable(t, "")
	return c.returns
}

func (c *callable) clone() callable {
	return callable{
		name:      c.name,
		comment:   cloneComment(c.comment),
		params:    c.params.Clone(),
		returns:   c.returns.Clone(),
		exception: c.exception.clone(),
		body:      c.body.Clone(),
		catches:   c.catches.Clone(),
		templates: c.templates.Clone(),
		inline:    c.inline,
	}
}

func (c *callable) returnText(rc *RenderContext) (string, error) {
	if c.returns == nil {
		return "void ", nil
	}
	return c.returns.text(rc, false, "", false)
}

func (c *callable) parameterList(rc *RenderContext, withDefaults bool) (string, error) {
	if c.params.Len() == 0 {
		return "( )", nil
	}
	parts := make([]string, 0, c.params.Len())
	for _, p := range c.params.All() {
		s, err := p.parameter(rc, withDefaults)
		if err != nil {
			return "", err
		}
		parts = append(parts, s)
	}
	return "( " + strings.Join(parts, " , ") + " )", nil
}

func (c *callable) templateText(rc *RenderContext) (string, error) {
	return templateAttributes(rc, c.templates.Slice())
}

func (c *callable) functionTry(rc *RenderContext) bool {
	return rc.caps.Has(FunctionTryBlocks) && c.catches.Len() > 0
}

// signature spells name, parameters and exception specification.
func (c *callable) signature(rc *RenderContext, name string, withDefaults bool) (string, error) {
	params, err := c.parameterList(rc, withDefaults)
	if err != nil {
		return "", err
	}
	return name + params, nil
}

// writeBody emits the body after a signature. inits is placed between the
// function try keyword and the opening brace. Without function try blocks the
// handlers are wrapped around the statements inside the body.
func (c *callable) writeBody(rc *RenderContext, out *Sink, indent int, inits string) error {
	tabs := rc.tabs(indent)
	functionTry := c.functionTry(rc)
	if functionTry {
		out.WriteString("\n" + tabs + "try")
	}
	out.WriteString(inits)
	out.WriteString("\n" + tabs + "{\n")
	if c.catches.Len() > 0 && !functionTry {
		inner := rc.tabs(indent + 1)
		out.WriteString(inner + "try\n" + inner + "{\n")
		if err := renderStatements(rc, out, indent+2, c.body.Slice()); err != nil {
			return err
		}
		out.WriteString(inner + "}\n")
		for _, cc := range c.catches.All() {
			if err := renderTerminated(rc, cc, out, indent+1); err != nil {
				return err
			}
		}
	} else if err := renderStatements(rc, out, indent+1, c.body.Slice()); err != nil {
		return err
	}
	out.WriteString(tabs + "}\n")
	if functionTry {
		for _, cc := range c.catches.All() {
			if err := renderTerminated(rc, cc, out, indent); err != nil {
				return err
			}
		}
	}
	return out.Err()
}

// renderFree writes a namespace scope function or operator.
func (c *callable) renderFree(rc *RenderContext, out *Sink, indent int, name string, withDefaults, declaration bool) error {
	if err := writeComment(rc, out, c.comment, indent); err != nil {
		return err
	}
	templ, err := c.templateText(rc)
	if err != nil {
		return err
	}
	ret, err := c.returnText(rc)
	if err != nil {
		return err
	}
	sig, err := c.signature(rc, name, withDefaults)
	if err != nil {
		return err
	}
	head := rc.tabs(indent) + templ
	if c.inline {
		head += "inline "
	}
	head += ret + sig + c.exception.text(rc)
	if declaration {
		out.WriteString(head + ";")
		return out.Err()
	}
	out.WriteString(head)
	return c.writeBody(rc, out, indent, "")
}

// renderFreeSplit puts inline and template functions whole into the
// declaration stream; others are declared there and defined in the definition
// stream.
func (c *callable) renderFreeSplit(rc *RenderContext, decl, def *Sink, declIndent, defIndent int, name string) error {
	if c.inline || c.templates.Len() > 0 {
		return c.renderFree(rc, decl, declIndent, name, true, false)
	}
	if err := c.renderFree(rc, decl, declIndent, name, true, true); err != nil {
		return err
	}
	decl.WriteString("\n")
	if err := decl.Err(); err != nil {
		return err
	}
	return c.renderFree(rc, def, defIndent, name, false, false)
}

// placement is where the composite engine puts a member callable.
type placement int

const (
	// placeDeclaration declares the member in the class only.
	placeDeclaration placement = iota
	// placeDeferred declares the member and defers its out-of-line definition.
	placeDeferred
	// placeInline defines the member inside the class.
	placeInline
)

// memberRenderer is implemented by every callable that can be a member of a
// composite type.
type memberRenderer interface {
	Node
	placement(rc *RenderContext) placement
	renderDeclaration(rc *RenderContext, out *Sink, indent int) error
	renderInline(rc *RenderContext, out *Sink, indent int) error
	renderDefinition(rc *RenderContext, out *Sink, indent int) error
}

// renderMemberSplit is the dual stream form shared by member callables: the
// class-scope form goes to decl and the out-of-line definition, if any, to def.
func renderMemberSplit(rc *RenderContext, m memberRenderer, decl, def *Sink, declIndent, defIndent int) error {
	switch m.placement(rc) {
	case placeInline:
		return m.renderInline(rc, decl, declIndent)
	case placeDeferred:
		if err := m.renderDeclaration(rc, decl, declIndent); err != nil {
			return err
		}
		return m.renderDefinition(rc, def, defIndent)
	}
	return m.renderDeclaration(rc, decl, declIndent)
}

// isTemplated reports whether a member needs template headers when defined out
// of line.
func isTemplated(own int, enclosing NestableType) bool {
	return own > 0 || hasTemplates(enclosing)
}

// outOfLineName qualifies name with the enclosing type.
func outOfLineName(rc *RenderContext, enclosing NestableType, name string) (string, error) {
	if enclosing == nil {
		return name, nil
	}
	q, err := qualifiedName(rc, enclosing)
	if err != nil {
		return "", err
	}
	return q + "::" + name, nil
}

// outOfLineHeaders spells the enclosing template headers followed by own, with
// the export keyword when the capability allows it.
func outOfLineHeaders(rc *RenderContext, enclosing NestableType, own string) (string, error) {
	outer, err := enclosingHeaders(rc, enclosing)
	if err != nil {
		return "", err
	}
	headers := outer + own
	if headers != "" && rc.caps.Has(ExportKeyword) {
		return "export " + headers, nil
	}
	return headers, nil
}
