package codegraph

// Node is one emittable construct in the tree.
type Node interface {
	Kind() Kind
	// Render emits one complete fragment. Separators between fragments are the
	// caller's job, except where the grammar makes a terminator part of the node.
	Render(rc *RenderContext, out *Sink, indent int) error
	// Duplicate returns an independent deep copy.
	Duplicate() Node
	// Assign replaces the receiver with a deep copy of other. It fails with
	// ErrTypeMismatch when other is a different concrete kind.
	Assign(other Node) error
}

// Type is a node that can be named in a declaration.
type Type interface {
	Node
	Name() string
}

// NestableType is a type that can be declared inside a composite type.
type NestableType interface {
	Type
	Enclosing() NestableType
	setEnclosing(NestableType)
	templateParams() []TemplateParam
	// specializationArgs are the arguments of an explicit specialization.
	specializationArgs() []Node
}

// Expression is a node usable as an operand.
type Expression interface {
	Node
	expression()
}

// Statement is a node usable in a function body.
type Statement interface {
	Node
	statement()
}

// Commentable nodes carry an attached comment.
type Commentable interface {
	Comment() *Comment
}

// templateHeaderOf spells the "template< ... > " prefix of t itself. An explicit
// specialization without parameters gets an empty list.
func templateHeaderOf(rc *RenderContext, t NestableType) (string, error) {
	if params := t.templateParams(); len(params) > 0 {
		return templateAttributes(rc, params)
	}
	if len(t.specializationArgs()) > 0 {
		return "template< > ", nil
	}
	return "", nil
}

// templateArgumentsOf spells the "< T , U >" suffix used when t is named.
func templateArgumentsOf(rc *RenderContext, t NestableType) (string, error) {
	if params := t.templateParams(); len(params) > 0 {
		return templateArgumentNames(params), nil
	}
	args := t.specializationArgs()
	if len(args) == 0 {
		return "", nil
	}
	s, err := spellJoined(rc, args, " , ")
	if err != nil {
		return "", err
	}
	return "< " + s + " >", nil
}

// hasTemplates reports whether t or any enclosing type has template parameters.
func hasTemplates(t NestableType) bool {
	for ; t != nil; t = t.Enclosing() {
		if len(t.templateParams()) > 0 {
			return true
		}
	}
	return false
}

// qualifiedName names t from the outermost enclosing type down, including
// template arguments: Outer< T >::Inner.
func qualifiedName(rc *RenderContext, t NestableType) (string, error) {
	args, err := templateArgumentsOf(rc, t)
	if err != nil {
		return "", err
	}
	name := t.Name() + args
	if e := t.Enclosing(); e != nil {
		prefix, err := qualifiedName(rc, e)
		if err != nil {
			return "", err
		}
		return prefix + "::" + name, nil
	}
	return name, nil
}

// enclosingHeaders collects the template headers of t and every enclosing type,
// outermost first.
func enclosingHeaders(rc *RenderContext, t NestableType) (string, error) {
	if t == nil {
		return "", nil
	}
	outer, err := enclosingHeaders(rc, t.Enclosing())
	if err != nil {
		return "", err
	}
	own, err := templateHeaderOf(rc, t)
	if err != nil {
		return "", err
	}
	return outer + own, nil
}

// typeName spells t for use in a declaration specifier.
func typeName(rc *RenderContext, t Type) (string, error) {
	if isNil(t) {
		return "", nil
	}
	if n, ok := t.(NestableType); ok && n.Enclosing() != nil {
		return qualifiedName(rc, n)
	}
	return t.Name(), nil
}

// writeComment writes a non-empty comment followed by a line break.
func writeComment(rc *RenderContext, out *Sink, c *Comment, indent int) error {
	if c == nil || c.Empty() {
		return nil
	}
	if err := c.Render(rc, out, indent); err != nil {
		return err
	}
	out.WriteString("\n")
	return out.Err()
}
