package codegraph

import (
	"slices"
	"strings"

	"github.com/cockroachdb/errors"
)

var binaryOperators = []string{
	"+", "-", "*", "/", "%", "=", "&&", "||", "^", ".", ",", "<<", ">>", "<", ">", "<=", ">=", "==", "!=",
	"&", "|", "+=", "-=", "*=", "/=", "%=", "<<=", ">>=", "&=", "|=", "^=", "->", "[]",
}

// alternateTokens maps alternative operator spellings to their symbols.
var alternateTokens = map[string]string{
	"and":    "&&",
	"and_eq": "&=",
	"bitand": "&",
	"bitor":  "|",
	"compl":  "~",
	"not":    "!",
	"not_eq": "!=",
	"or":     "||",
	"or_eq":  "|=",
	"xor":    "^",
	"xor_eq": "^=",
}

var prefixOperators = []string{"++", "--", "+", "-", "!", "~", "*", "&", "sizeof", "compl", "not"}

var postfixOperators = []string{"++", "--"}

// operatorText spells op, honoring the alternate keyword capability.
func operatorText(rc *RenderContext, op string) string {
	if sym, ok := alternateTokens[op]; ok && !rc.caps.Has(AlternateKeywords) {
		return sym
	}
	return op
}

func requireOperands(op string, operands ...Expression) error {
	for _, o := range operands {
		if isNil(o) {
			return errors.Wrapf(ErrNullReference, "operator %s is missing an operand", op)
		}
	}
	return nil
}

// Binary is an infix expression: a + b, a [ i ], a -> b.
type Binary struct {
	op          string
	left, right Expression
}

func NewBinary(left Expression, op string, right Expression) (*Binary, error) {
	op = strings.TrimSpace(op)
	_, alt := alternateTokens[op]
	if !slices.Contains(binaryOperators, op) && (!alt || op == "compl" || op == "not") {
		return nil, errors.Wrapf(ErrInvalidArgument, "unknown binary operator %q", op)
	}
	if err := requireOperands(op, left, right); err != nil {
		return nil, err
	}
	return &Binary{op: op, left: left, right: right}, nil
}

func (b *Binary) Operator() string  { return b.op }
func (b *Binary) Left() Expression  { return b.left }
func (b *Binary) Right() Expression { return b.right }
func (b *Binary) Kind() Kind        { return KindBinary }

func (b *Binary) Render(rc *RenderContext, out *Sink, indent int) error {
	l, err := spell(rc, b.left, 0)
	if err != nil {
		return err
	}
	r, err := spell(rc, b.right, 0)
	if err != nil {
		return err
	}
	if b.op == "[]" {
		out.WriteString(rc.tabs(indent) + l + " [ " + r + " ]")
		return out.Err()
	}
	out.WriteString(rc.tabs(indent) + l + " " + operatorText(rc, b.op) + " " + r)
	return out.Err()
}

func (b *Binary) Clone() *Binary {
	if b == nil {
		return nil
	}
	return &Binary{op: b.op, left: b.left.Duplicate().(Expression), right: b.right.Duplicate().(Expression)}
}

func (b *Binary) Duplicate() Node         { return b.Clone() }
func (b *Binary) Assign(other Node) error { return assign(b, other) }
func (*Binary) expression()               {}

// Prefix is a unary operator written before its operand, including sizeof.
type Prefix struct {
	op      string
	operand Expression
}

func NewPrefix(op string, operand Expression) (*Prefix, error) {
	op = strings.TrimSpace(op)
	if !slices.Contains(prefixOperators, op) {
		return nil, errors.Wrapf(ErrInvalidArgument, "unknown prefix operator %q", op)
	}
	if err := requireOperands(op, operand); err != nil {
		return nil, err
	}
	return &Prefix{op: op, operand: operand}, nil
}

func (p *Prefix) Operator() string    { return p.op }
func (p *Prefix) Operand() Expression { return p.operand }
func (p *Prefix) Kind() Kind          { return KindPrefix }

func (p *Prefix) Render(rc *RenderContext, out *Sink, indent int) error {
	x, err := spell(rc, p.operand, 0)
	if err != nil {
		return err
	}
	var s string
	switch op := operatorText(rc, p.op); op {
	case "sizeof":
		s = "sizeof( " + x + " )"
	case "compl", "not":
		s = op + " " + x
	default:
		s = op + x
	}
	out.WriteString(rc.tabs(indent) + s)
	return out.Err()
}

func (p *Prefix) Clone() *Prefix {
	if p == nil {
		return nil
	}
	return &Prefix{op: p.op, operand: p.operand.Duplicate().(Expression)}
}

func (p *Prefix) Duplicate() Node         { return p.Clone() }
func (p *Prefix) Assign(other Node) error { return assign(p, other) }
func (*Prefix) expression()               {}

// Postfix is an increment or decrement written after its operand.
type Postfix struct {
	op      string
	operand Expression
}

func NewPostfix(operand Expression, op string) (*Postfix, error) {
	op = strings.TrimSpace(op)
	if !slices.Contains(postfixOperators, op) {
		return nil, errors.Wrapf(ErrInvalidArgument, "unknown postfix operator %q", op)
	}
	if err := requireOperands(op, operand); err != nil {
		return nil, err
	}
	return &Postfix{op: op, operand: operand}, nil
}

func (p *Postfix) Operator() string    { return p.op }
func (p *Postfix) Operand() Expression { return p.operand }
func (p *Postfix) Kind() Kind          { return KindPostfix }

func (p *Postfix) Render(rc *RenderContext, out *Sink, indent int) error {
	x, err := spell(rc, p.operand, 0)
	if err != nil {
		return err
	}
	out.WriteString(rc.tabs(indent) + x + p.op)
	return out.Err()
}

func (p *Postfix) Clone() *Postfix {
	if p == nil {
		return nil
	}
	return &Postfix{op: p.op, operand: p.operand.Duplicate().(Expression)}
}

func (p *Postfix) Duplicate() Node         { return p.Clone() }
func (p *Postfix) Assign(other Node) error { return assign(p, other) }
func (*Postfix) expression()               {}

// CastKind selects the cast syntax.
type CastKind int

const (
	CStyleCast CastKind = iota
	StaticCast
	ConstCast
	ReinterpretCast
	DynamicCast
)

var castKeywords = map[CastKind]string{
	StaticCast:      "static_cast",
	ConstCast:       "const_cast",
	ReinterpretCast: "reinterpret_cast",
	DynamicCast:     "dynamic_cast",
}

// Cast converts an expression to a type, referenced without ownership.
type Cast struct {
	kind    CastKind
	typ     Type
	level   int
	operand Expression
}

func NewCast(kind CastKind, t Type, operand Expression) (*Cast, error) {
	if isNil(t) {
		return nil, errors.Wrap(ErrNullReference, "cast needs a target type")
	}
	if err := requireOperands("cast", operand); err != nil {
		return nil, err
	}
	return &Cast{kind: kind, typ: t, operand: operand}, nil
}

// SetIndirectionLevel casts to a pointer of the given depth.
func (c *Cast) SetIndirectionLevel(level int) *Cast {
	c.level = max(level, 0)
	return c
}

func (c *Cast) CastKind() CastKind  { return c.kind }
func (c *Cast) Operand() Expression { return c.operand }
func (c *Cast) Kind() Kind          { return KindCast }

func (c *Cast) Render(rc *RenderContext, out *Sink, indent int) error {
	t, err := typeName(rc, c.typ)
	if err != nil {
		return err
	}
	if c.level > 0 {
		t += " " + strings.Repeat("*", c.level)
	}
	x, err := spell(rc, c.operand, 0)
	if err != nil {
		return err
	}
	if kw, ok := castKeywords[c.kind]; ok {
		out.WriteString(rc.tabs(indent) + kw + "< " + t + " >( " + x + " )")
	} else {
		out.WriteString(rc.tabs(indent) + "( " + t + " )" + x)
	}
	return out.Err()
}

func (c *Cast) Clone() *Cast {
	if c == nil {
		return nil
	}
	clone := *c
	clone.operand = c.operand.Duplicate().(Expression)
	return &clone
}

func (c *Cast) Duplicate() Node         { return c.Clone() }
func (c *Cast) Assign(other Node) error { return assign(c, other) }
func (*Cast) expression()               {}

// Callee is anything a call can refer to by name.
type Callee interface {
	Name() string
}

func argumentList(rc *RenderContext, args []Expression) (string, error) {
	if len(args) == 0 {
		return "( )", nil
	}
	s, err := spellJoined(rc, args, " , ")
	if err != nil {
		return "", err
	}
	return "( " + s + " )", nil
}

// Call is a free function call, by name or through a referenced callee.
type Call struct {
	name   string
	callee Callee
	args   List[Expression]
}

func NewCall(name string, args ...Expression) *Call {
	c := &Call{name: name}
	c.args.Add(args...)
	return c
}

// NewCalleeCall calls f by reference; the call follows renames of f.
func NewCalleeCall(f Callee, args ...Expression) *Call {
	c := &Call{callee: f}
	c.args.Add(args...)
	return c
}

func (c *Call) Arguments() *List[Expression] { return &c.args }
func (c *Call) Kind() Kind                   { return KindCall }

func (c *Call) Name() string {
	if !isNil(c.callee) {
		return c.callee.Name()
	}
	return c.name
}

func (c *Call) Render(rc *RenderContext, out *Sink, indent int) error {
	args, err := argumentList(rc, c.args.Slice())
	if err != nil {
		return err
	}
	out.WriteString(rc.tabs(indent) + c.Name() + args)
	return out.Err()
}

func (c *Call) Clone() *Call {
	if c == nil {
		return nil
	}
	return &Call{name: c.name, callee: c.callee, args: c.args.Clone()}
}

func (c *Call) Duplicate() Node         { return c.Clone() }
func (c *Call) Assign(other Node) error { return assign(c, other) }
func (*Call) expression()               {}

// MemberCall invokes a method on an object: obj.f( ) or ptr -> f( ).
type MemberCall struct {
	object Expression
	arrow  bool
	method string
	callee Callee
	args   List[Expression]
}

func NewMemberCall(object Expression, method string, args ...Expression) (*MemberCall, error) {
	if isNil(object) {
		return nil, errors.Wrapf(ErrNullReference, "call of %s has no invoking object", method)
	}
	c := &MemberCall{object: object, method: method}
	c.args.Add(args...)
	return c, nil
}

// SetArrow selects pointer member access.
func (c *MemberCall) SetArrow(v bool) *MemberCall {
	c.arrow = v
	return c
}

// SetCallee names the call after a referenced member function.
func (c *MemberCall) SetCallee(f Callee) *MemberCall {
	c.callee = f
	return c
}

func (c *MemberCall) Object() Expression           { return c.object }
func (c *MemberCall) Arguments() *List[Expression] { return &c.args }
func (c *MemberCall) Kind() Kind                   { return KindMemberCall }

func (c *MemberCall) Name() string {
	if !isNil(c.callee) {
		return c.callee.Name()
	}
	return c.method
}

func (c *MemberCall) Render(rc *RenderContext, out *Sink, indent int) error {
	obj, err := spell(rc, c.object, 0)
	if err != nil {
		return err
	}
	args, err := argumentList(rc, c.args.Slice())
	if err != nil {
		return err
	}
	access := "."
	if c.arrow {
		access = " -> "
	}
	out.WriteString(rc.tabs(indent) + obj + access + c.Name() + args)
	return out.Err()
}

func (c *MemberCall) Clone() *MemberCall {
	if c == nil {
		return nil
	}
	clone := *c
	clone.object = c.object.Duplicate().(Expression)
	clone.args = c.args.Clone()
	return &clone
}

func (c *MemberCall) Duplicate() Node         { return c.Clone() }
func (c *MemberCall) Assign(other Node) error { return assign(c, other) }
func (*MemberCall) expression()               {}

// New allocates an object or an array.
type New struct {
	typ   Type
	level int
	size  Expression
	args  List[Expression]
}

func NewNew(t Type, args ...Expression) *New {
	n := &New{typ: t}
	n.args.Add(args...)
	return n
}

func (n *New) SetIndirectionLevel(level int) *New {
	n.level = max(level, 0)
	return n
}

// SetArraySize turns the expression into an array allocation. Constructor
// arguments are ignored for arrays.
func (n *New) SetArraySize(size Expression) *New {
	n.size = size
	return n
}

func (n *New) Arguments() *List[Expression] { return &n.args }
func (n *New) Kind() Kind                   { return KindNew }

func (n *New) Render(rc *RenderContext, out *Sink, indent int) error {
	if isNil(n.typ) {
		return errors.Wrap(ErrNullReference, "new expression has no type")
	}
	t, err := typeName(rc, n.typ)
	if err != nil {
		return err
	}
	s := "new " + t + strings.Repeat("*", n.level)
	switch {
	case !isNil(n.size):
		size, err := spell(rc, n.size, 0)
		if err != nil {
			return err
		}
		s += " [ " + size + " ]"
	case n.args.Len() > 0:
		args, err := argumentList(rc, n.args.Slice())
		if err != nil {
			return err
		}
		s += args
	}
	out.WriteString(rc.tabs(indent) + s)
	return out.Err()
}

func (n *New) Clone() *New {
	if n == nil {
		return nil
	}
	clone := *n
	if !isNil(n.size) {
		clone.size = n.size.Duplicate().(Expression)
	}
	clone.args = n.args.Clone()
	return &clone
}

func (n *New) Duplicate() Node         { return n.Clone() }
func (n *New) Assign(other Node) error { return assign(n, other) }
func (*New) expression()               {}

// Delete releases an object or, with the array form, an array.
type Delete struct {
	operand Expression
	array   bool
}

func NewDelete(operand Expression, array bool) (*Delete, error) {
	if err := requireOperands("delete", operand); err != nil {
		return nil, err
	}
	return &Delete{operand: operand, array: array}, nil
}

func (d *Delete) Kind() Kind { return KindDelete }

func (d *Delete) Render(rc *RenderContext, out *Sink, indent int) error {
	x, err := spell(rc, d.operand, 0)
	if err != nil {
		return err
	}
	if d.array {
		out.WriteString(rc.tabs(indent) + "delete [ ] " + x)
	} else {
		out.WriteString(rc.tabs(indent) + "delete " + x)
	}
	return out.Err()
}

func (d *Delete) Clone() *Delete {
	if d == nil {
		return nil
	}
	return &Delete{operand: d.operand.Duplicate().(Expression), array: d.array}
}

func (d *Delete) Duplicate() Node         { return d.Clone() }
func (d *Delete) Assign(other Node) error { return assign(d, other) }
func (*Delete) expression()               {}

// Throw raises an exception. Without an operand it rethrows.
type Throw struct {
	operand Expression
}

func NewThrow(operand Expression) *Throw {
	return &Throw{operand: operand}
}

func (t *Throw) Kind() Kind { return KindThrow }

func (t *Throw) Render(rc *RenderContext, out *Sink, indent int) error {
	if isNil(t.operand) {
		out.WriteString(rc.tabs(indent) + "throw")
		return out.Err()
	}
	x, err := spell(rc, t.operand, 0)
	if err != nil {
		return err
	}
	out.WriteString(rc.tabs(indent) + "throw " + x)
	return out.Err()
}

func (t *Throw) Clone() *Throw {
	if t == nil {
		return nil
	}
	clone := &Throw{}
	if !isNil(t.operand) {
		clone.operand = t.operand.Duplicate().(Expression)
	}
	return clone
}

func (t *Throw) Duplicate() Node         { return t.Clone() }
func (t *Throw) Assign(other Node) error { return assign(t, other) }
func (*Throw) expression()               {}

// Conditional is the ternary operator.
type Conditional struct {
	cond, then, otherwise Expression
}

func NewConditional(cond, then, otherwise Expression) (*Conditional, error) {
	if err := requireOperands("?:", cond, then, otherwise); err != nil {
		return nil, err
	}
	return &Conditional{cond: cond, then: then, otherwise: otherwise}, nil
}

func (c *Conditional) Kind() Kind { return KindConditional }

func (c *Conditional) Render(rc *RenderContext, out *Sink, indent int) error {
	parts := make([]string, 3)
	for i, e := range []Expression{c.cond, c.then, c.otherwise} {
		s, err := spell(rc, e, 0)
		if err != nil {
			return err
		}
		parts[i] = s
	}
	out.WriteString(rc.tabs(indent) + parts[0] + " ? " + parts[1] + " : " + parts[2])
	return out.Err()
}

func (c *Conditional) Clone() *Conditional {
	if c == nil {
		return nil
	}
	return &Conditional{
		cond:      c.cond.Duplicate().(Expression),
		then:      c.then.Duplicate().(Expression),
		otherwise: c.otherwise.Duplicate().(Expression),
	}
}

func (c *Conditional) Duplicate() Node         { return c.Clone() }
func (c *Conditional) Assign(other Node) error { return assign(c, other) }
func (*Conditional) expression()               {}

// Primitive is a literal or identifier written as given.
type Primitive struct {
	text string
}

func NewPrimitive(text string) *Primitive {
	return &Primitive{text: text}
}

func (p *Primitive) Text() string { return p.text }
func (p *Primitive) Kind() Kind   { return KindPrimitive }

func (p *Primitive) Render(rc *RenderContext, out *Sink, indent int) error {
	out.WriteString(rc.tabs(indent) + p.text)
	return out.Err()
}

func (p *Primitive) Clone() *Primitive {
	if p == nil {
		return nil
	}
	clone := *p
	return &clone
}

func (p *Primitive) Duplicate() Node         { return p.Clone() }
func (p *Primitive) Assign(other Node) error { return assign(p, other) }
func (*Primitive) expression()               {}

// VariableRef names a variable declared elsewhere.
type VariableRef struct {
	variable *VariableDeclaration
}

func NewVariableRef(v *VariableDeclaration) *VariableRef {
	return &VariableRef{variable: v}
}

func (r *VariableRef) Variable() *VariableDeclaration { return r.variable }
func (r *VariableRef) Kind() Kind                     { return KindVariableRef }

func (r *VariableRef) Render(rc *RenderContext, out *Sink, indent int) error {
	return renderReference(rc, out, indent, r.variable, "variable")
}

func (r *VariableRef) Clone() *VariableRef {
	if r == nil {
		return nil
	}
	clone := *r
	return &clone
}

func (r *VariableRef) Duplicate() Node         { return r.Clone() }
func (r *VariableRef) Assign(other Node) error { return assign(r, other) }
func (*VariableRef) expression()               {}

// ArgumentRef names a parameter of the enclosing callable.
type ArgumentRef struct {
	parameter *VariableDeclaration
}

func NewArgumentRef(p *VariableDeclaration) *ArgumentRef {
	return &ArgumentRef{parameter: p}
}

func (r *ArgumentRef) Parameter() *VariableDeclaration { return r.parameter }
func (r *ArgumentRef) Kind() Kind                      { return KindArgumentRef }

func (r *ArgumentRef) Render(rc *RenderContext, out *Sink, indent int) error {
	return renderReference(rc, out, indent, r.parameter, "argument")
}

func (r *ArgumentRef) Clone() *ArgumentRef {
	if r == nil {
		return nil
	}
	clone := *r
	return &clone
}

func (r *ArgumentRef) Duplicate() Node         { return r.Clone() }
func (r *ArgumentRef) Assign(other Node) error { return assign(r, other) }
func (*ArgumentRef) expression()               {}

func renderReference(rc *RenderContext, out *Sink, indent int, v *VariableDeclaration, what string) error {
	if v == nil {
		return errors.Wrapf(ErrNullReference, "%s reference is not bound", what)
	}
	out.WriteString(rc.tabs(indent) + v.decl.name)
	return out.Err()
}

// MethodRef names a callable, for example to take its address.
type MethodRef struct {
	callee Callee
}

func NewMethodRef(f Callee) *MethodRef {
	return &MethodRef{callee: f}
}

func (r *MethodRef) Kind() Kind { return KindMethodRef }

func (r *MethodRef) Render(rc *RenderContext, out *Sink, indent int) error {
	if isNil(r.callee) {
		return errors.Wrap(ErrNullReference, "method reference is not bound")
	}
	out.WriteString(rc.tabs(indent) + r.callee.Name())
	return out.Err()
}

func (r *MethodRef) Clone() *MethodRef {
	if r == nil {
		return nil
	}
	clone := *r
	return &clone
}

func (r *MethodRef) Duplicate() Node         { return r.Clone() }
func (r *MethodRef) Assign(other Node) error { return assign(r, other) }
func (*MethodRef) expression()               {}

// ScopeResolution qualifies a name: scope::name. A nil scope names the global
// namespace.
type ScopeResolution struct {
	scope, name Expression
}

func NewScopeResolution(scope, name Expression) (*ScopeResolution, error) {
	if err := requireOperands("::", name); err != nil {
		return nil, err
	}
	return &ScopeResolution{scope: scope, name: name}, nil
}

func (s *ScopeResolution) Kind() Kind { return KindScopeResolution }

func (s *ScopeResolution) Render(rc *RenderContext, out *Sink, indent int) error {
	var scope string
	if !isNil(s.scope) {
		var err error
		if scope, err = spell(rc, s.scope, 0); err != nil {
			return err
		}
	}
	name, err := spell(rc, s.name, 0)
	if err != nil {
		return err
	}
	out.WriteString(rc.tabs(indent) + scope + "::" + name)
	return out.Err()
}

func (s *ScopeResolution) Clone() *ScopeResolution {
	if s == nil {
		return nil
	}
	clone := &ScopeResolution{name: s.name.Duplicate().(Expression)}
	if !isNil(s.scope) {
		clone.scope = s.scope.Duplicate().(Expression)
	}
	return clone
}

func (s *ScopeResolution) Duplicate() Node         { return s.Clone() }
func (s *ScopeResolution) Assign(other Node) error { return assign(s, other) }
func (*ScopeResolution) expression()               {}

// Parenthesized wraps an expression in parentheses.
type Parenthesized struct {
	inner Expression
}

func NewParenthesized(inner Expression) (*Parenthesized, error) {
	if err := requireOperands("()", inner); err != nil {
		return nil, err
	}
	return &Parenthesized{inner: inner}, nil
}

func (p *Parenthesized) Kind() Kind { return KindParenthesized }

func (p *Parenthesized) Render(rc *RenderContext, out *Sink, indent int) error {
	x, err := spell(rc, p.inner, 0)
	if err != nil {
		return err
	}
	out.WriteString(rc.tabs(indent) + "( " + x + " )")
	return out.Err()
}

func (p *Parenthesized) Clone() *Parenthesized {
	if p == nil {
		return nil
	}
	return &Parenthesized{inner: p.inner.Duplicate().(Expression)}
}

func (p *Parenthesized) Duplicate() Node         { return p.Clone() }
func (p *Parenthesized) Assign(other Node) error { return assign(p, other) }
func (*Parenthesized) expression()               {}
