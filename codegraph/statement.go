package codegraph

import (
	"github.com/cockroachdb/errors"
)

// renderStatements writes each statement on its own line at indent.
func renderStatements(rc *RenderContext, out *Sink, indent int, stmts []Statement) error {
	for _, s := range stmts {
		if err := renderTerminated(rc, s, out, indent); err != nil {
			return err
		}
	}
	return out.Err()
}

// renderBraced writes "{", the statements one level deeper, and "}".
func renderBraced(rc *RenderContext, out *Sink, indent int, stmts []Statement) error {
	tabs := rc.tabs(indent)
	out.WriteString(tabs + "{\n")
	if err := renderStatements(rc, out, indent+1, stmts); err != nil {
		return err
	}
	out.WriteString(tabs + "}")
	return out.Err()
}

func cloneStatement(s Statement) Statement {
	if isNil(s) {
		return nil
	}
	return s.Duplicate().(Statement)
}

func cloneExpression(e Expression) Expression {
	if isNil(e) {
		return nil
	}
	return e.Duplicate().(Expression)
}

func spellOptional(rc *RenderContext, n Node) (string, error) {
	if isNil(n) {
		return "", nil
	}
	return spell(rc, n, 0)
}

// ExpressionStatement evaluates an expression. Without one it is the empty
// statement.
type ExpressionStatement struct {
	comment *Comment
	expr    Expression
}

func NewExpressionStatement(e Expression) *ExpressionStatement {
	return &ExpressionStatement{comment: &Comment{}, expr: e}
}

func (s *ExpressionStatement) Comment() *Comment      { return s.comment }
func (s *ExpressionStatement) Expression() Expression { return s.expr }
func (s *ExpressionStatement) Kind() Kind             { return KindExpressionStatement }

func (s *ExpressionStatement) Render(rc *RenderContext, out *Sink, indent int) error {
	if err := writeComment(rc, out, s.comment, indent); err != nil {
		return err
	}
	if isNil(s.expr) {
		out.WriteString(rc.tabs(indent) + ";")
		return out.Err()
	}
	x, err := spell(rc, s.expr, indent)
	if err != nil {
		return err
	}
	out.WriteString(x + ";")
	return out.Err()
}

func (s *ExpressionStatement) Clone() *ExpressionStatement {
	if s == nil {
		return nil
	}
	return &ExpressionStatement{comment: cloneComment(s.comment), expr: cloneExpression(s.expr)}
}

func (s *ExpressionStatement) Duplicate() Node         { return s.Clone() }
func (s *ExpressionStatement) Assign(other Node) error { return assign(s, other) }
func (*ExpressionStatement) statement()                {}

// UsingStatement is a using declaration or a using directive.
type UsingStatement struct {
	name      string
	namespace bool
}

func NewUsing(name string) *UsingStatement {
	return &UsingStatement{name: name}
}

func NewUsingNamespace(name string) *UsingStatement {
	return &UsingStatement{name: name, namespace: true}
}

func (s *UsingStatement) Kind() Kind { return KindUsing }

func (s *UsingStatement) Render(rc *RenderContext, out *Sink, indent int) error {
	if s.namespace {
		out.WriteString(rc.tabs(indent) + "using namespace " + s.name + ";")
	} else {
		out.WriteString(rc.tabs(indent) + "using " + s.name + ";")
	}
	return out.Err()
}

func (s *UsingStatement) Clone() *UsingStatement {
	if s == nil {
		return nil
	}
	clone := *s
	return &clone
}

func (s *UsingStatement) Duplicate() Node         { return s.Clone() }
func (s *UsingStatement) Assign(other Node) error { return assign(s, other) }
func (*UsingStatement) statement()                {}

// JumpKind selects the jump statement.
type JumpKind int

const (
	Continue JumpKind = iota
	Break
	Goto
	Return
)

// Jump is continue, break, goto or return.
type Jump struct {
	kind  JumpKind
	label string
	value Expression
}

func NewContinue() *Jump { return &Jump{kind: Continue} }
func NewBreak() *Jump    { return &Jump{kind: Break} }

func NewGoto(label string) (*Jump, error) {
	if label == "" {
		return nil, errors.Wrap(ErrInvalidArgument, "goto needs a label")
	}
	return &Jump{kind: Goto, label: label}, nil
}

// NewReturn returns value, or nothing when value is nil.
func NewReturn(value Expression) *Jump {
	return &Jump{kind: Return, value: value}
}

func (j *Jump) JumpKind() JumpKind { return j.kind }
func (j *Jump) Kind() Kind         { return KindJump }

func (j *Jump) Render(rc *RenderContext, out *Sink, indent int) error {
	tabs := rc.tabs(indent)
	switch j.kind {
	case Continue:
		out.WriteString(tabs + "continue;")
	case Break:
		out.WriteString(tabs + "break;")
	case Goto:
		out.WriteString(tabs + "goto " + j.label + ";")
	case Return:
		if isNil(j.value) {
			out.WriteString(tabs + "return;")
			break
		}
		x, err := spell(rc, j.value, 0)
		if err != nil {
			return err
		}
		out.WriteString(tabs + "return " + x + ";")
	}
	return out.Err()
}

func (j *Jump) Clone() *Jump {
	if j == nil {
		return nil
	}
	return &Jump{kind: j.kind, label: j.label, value: cloneExpression(j.value)}
}

func (j *Jump) Duplicate() Node         { return j.Clone() }
func (j *Jump) Assign(other Node) error { return assign(j, other) }
func (*Jump) statement()                {}

// Label marks a statement as a goto target.
type Label struct {
	name string
	stmt Statement
}

func NewLabel(name string, stmt Statement) (*Label, error) {
	if name == "" {
		return nil, errors.Wrap(ErrInvalidArgument, "label needs a name")
	}
	return &Label{name: name, stmt: stmt}, nil
}

func (l *Label) Name() string { return l.name }
func (l *Label) Kind() Kind   { return KindLabel }

func (l *Label) Render(rc *RenderContext, out *Sink, indent int) error {
	s := ";"
	if !isNil(l.stmt) {
		var err error
		if s, err = spell(rc, l.stmt, 0); err != nil {
			return err
		}
	}
	out.WriteString(rc.tabs(indent) + l.name + ": " + s)
	return out.Err()
}

func (l *Label) Clone() *Label {
	if l == nil {
		return nil
	}
	return &Label{name: l.name, stmt: cloneStatement(l.stmt)}
}

func (l *Label) Duplicate() Node         { return l.Clone() }
func (l *Label) Assign(other Node) error { return assign(l, other) }
func (*Label) statement()                {}

// Block is a statement sequence. A block holding exactly one statement is
// written without braces unless it is marked braced.
type Block struct {
	statements List[Statement]
	braced     bool
}

func NewBlock(stmts ...Statement) *Block {
	b := &Block{}
	b.statements.Add(stmts...)
	return b
}

func (b *Block) Statements() *List[Statement] { return &b.statements }
func (b *Block) Braced() bool                 { return b.braced }
func (b *Block) Kind() Kind                   { return KindBlock }

func (b *Block) Add(stmts ...Statement) *Block {
	b.statements.Add(stmts...)
	return b
}

func (b *Block) SetBraced(v bool) *Block {
	b.braced = v
	return b
}

func (b *Block) Render(rc *RenderContext, out *Sink, indent int) error {
	if b.statements.Len() == 1 && !b.braced {
		return b.statements.At(0).Render(rc, out, indent+1)
	}
	return renderBraced(rc, out, indent, b.statements.Slice())
}

func (b *Block) Clone() *Block {
	if b == nil {
		return nil
	}
	return &Block{statements: b.statements.Clone(), braced: b.braced}
}

func (b *Block) Duplicate() Node         { return b.Clone() }
func (b *Block) Assign(other Node) error { return assign(b, other) }
func (*Block) statement()                {}

func orEmptyBlock(b *Block) *Block {
	if b == nil {
		return NewBlock()
	}
	return b
}

// If is a conditional with an optional else branch.
type If struct {
	cond      Expression
	then      *Block
	otherwise *Block
}

func NewIf(cond Expression, then *Block) (*If, error) {
	if isNil(cond) {
		return nil, errors.Wrap(ErrNullReference, "if needs a condition")
	}
	return &If{cond: cond, then: orEmptyBlock(then)}, nil
}

func (s *If) Then() *Block { return s.then }
func (s *If) Else() *Block { return s.otherwise }
func (s *If) Kind() Kind   { return KindIf }

// SetElse attaches an else branch; nil removes it.
func (s *If) SetElse(b *Block) *If {
	s.otherwise = b
	return s
}

func (s *If) Render(rc *RenderContext, out *Sink, indent int) error {
	tabs := rc.tabs(indent)
	c, err := spell(rc, s.cond, 0)
	if err != nil {
		return err
	}
	out.WriteString(tabs + "if( " + c + " )\n")
	if err := s.then.Render(rc, out, indent); err != nil {
		return err
	}
	if s.otherwise != nil {
		out.WriteString("\n" + tabs + "else\n")
		if err := s.otherwise.Render(rc, out, indent); err != nil {
			return err
		}
	}
	return out.Err()
}

func (s *If) Clone() *If {
	if s == nil {
		return nil
	}
	return &If{cond: cloneExpression(s.cond), then: s.then.Clone(), otherwise: s.otherwise.Clone()}
}

func (s *If) Duplicate() Node         { return s.Clone() }
func (s *If) Assign(other Node) error { return assign(s, other) }
func (*If) statement()                {}

// Switch dispatches on a value to its cases, in insertion order.
type Switch struct {
	cond  Expression
	cases List[*Case]
}

func NewSwitch(cond Expression, cases ...*Case) (*Switch, error) {
	if isNil(cond) {
		return nil, errors.Wrap(ErrNullReference, "switch needs a condition")
	}
	s := &Switch{cond: cond}
	s.cases.Add(cases...)
	return s, nil
}

func (s *Switch) Cases() *List[*Case] { return &s.cases }
func (s *Switch) Kind() Kind          { return KindSwitch }

func (s *Switch) AddCase(c *Case) *Switch {
	s.cases.Add(c)
	return s
}

func (s *Switch) Render(rc *RenderContext, out *Sink, indent int) error {
	tabs := rc.tabs(indent)
	c, err := spell(rc, s.cond, 0)
	if err != nil {
		return err
	}
	out.WriteString(tabs + "switch( " + c + " )\n" + tabs + "{\n")
	for _, cs := range s.cases.All() {
		if err := renderTerminated(rc, cs, out, indent); err != nil {
			return err
		}
	}
	out.WriteString(tabs + "}")
	return out.Err()
}

func (s *Switch) Clone() *Switch {
	if s == nil {
		return nil
	}
	return &Switch{cond: cloneExpression(s.cond), cases: s.cases.Clone()}
}

func (s *Switch) Duplicate() Node         { return s.Clone() }
func (s *Switch) Assign(other Node) error { return assign(s, other) }
func (*Switch) statement()                {}

// Case is one label of a switch. A nil label is the default case. A scoped case
// wraps its statements in braces.
type Case struct {
	label      Expression
	statements List[Statement]
	scoped     bool
}

func NewCase(label Expression, stmts ...Statement) *Case {
	c := &Case{label: label}
	c.statements.Add(stmts...)
	return c
}

func NewDefaultCase(stmts ...Statement) *Case {
	return NewCase(nil, stmts...)
}

func (c *Case) Statements() *List[Statement] { return &c.statements }
func (c *Case) IsDefault() bool              { return isNil(c.label) }
func (c *Case) Kind() Kind                   { return KindCase }

func (c *Case) Add(stmts ...Statement) *Case {
	c.statements.Add(stmts...)
	return c
}

func (c *Case) SetScoped(v bool) *Case {
	c.scoped = v
	return c
}

func (c *Case) Render(rc *RenderContext, out *Sink, indent int) error {
	tabs := rc.tabs(indent)
	if c.IsDefault() {
		out.WriteString(tabs + "default:")
	} else {
		l, err := spell(rc, c.label, 0)
		if err != nil {
			return err
		}
		out.WriteString(tabs + "case " + l + ":")
	}
	if c.scoped {
		out.WriteString("\n")
		return renderBraced(rc, out, indent, c.statements.Slice())
	}
	for _, s := range c.statements.All() {
		out.WriteString("\n")
		if err := s.Render(rc, out, indent+1); err != nil {
			return err
		}
	}
	return out.Err()
}

func (c *Case) Clone() *Case {
	if c == nil {
		return nil
	}
	return &Case{label: cloneExpression(c.label), statements: c.statements.Clone(), scoped: c.scoped}
}

func (c *Case) Duplicate() Node         { return c.Clone() }
func (c *Case) Assign(other Node) error { return assign(c, other) }

// For is a classic three-part loop. The initializer may be an expression or a
// variable declaration; any part may be omitted.
type For struct {
	init Node
	cond Expression
	step Expression
	body *Block
}

func NewFor(init Node, cond, step Expression, body *Block) *For {
	return &For{init: init, cond: cond, step: step, body: orEmptyBlock(body)}
}

func (s *For) Body() *Block { return s.body }
func (s *For) Kind() Kind   { return KindFor }

func (s *For) Render(rc *RenderContext, out *Sink, indent int) error {
	var init string
	if v, ok := s.init.(*VariableDeclaration); ok && v != nil {
		var err error
		if init, err = v.text(rc, true, v.decl.name, true); err != nil {
			return err
		}
	} else if i, err := spellOptional(rc, s.init); err != nil {
		return err
	} else {
		init = i
	}
	cond, err := spellOptional(rc, s.cond)
	if err != nil {
		return err
	}
	step, err := spellOptional(rc, s.step)
	if err != nil {
		return err
	}
	out.WriteString(rc.tabs(indent) + "for( " + init + " ; " + cond + " ; " + step + " )\n")
	if err := s.body.Render(rc, out, indent); err != nil {
		return err
	}
	return out.Err()
}

func (s *For) Clone() *For {
	if s == nil {
		return nil
	}
	clone := &For{cond: cloneExpression(s.cond), step: cloneExpression(s.step), body: s.body.Clone()}
	if !isNil(s.init) {
		clone.init = s.init.Duplicate()
	}
	return clone
}

func (s *For) Duplicate() Node         { return s.Clone() }
func (s *For) Assign(other Node) error { return assign(s, other) }
func (*For) statement()                {}

// While tests its condition before each iteration.
type While struct {
	cond Expression
	body *Block
}

func NewWhile(cond Expression, body *Block) (*While, error) {
	if isNil(cond) {
		return nil, errors.Wrap(ErrNullReference, "while needs a condition")
	}
	return &While{cond: cond, body: orEmptyBlock(body)}, nil
}

func (s *While) Body() *Block { return s.body }
func (s *While) Kind() Kind   { return KindWhile }

func (s *While) Render(rc *RenderContext, out *Sink, indent int) error {
	c, err := spell(rc, s.cond, 0)
	if err != nil {
		return err
	}
	out.WriteString(rc.tabs(indent) + "while( " + c + " )\n")
	return s.body.Render(rc, out, indent)
}

func (s *While) Clone() *While {
	if s == nil {
		return nil
	}
	return &While{cond: cloneExpression(s.cond), body: s.body.Clone()}
}

func (s *While) Duplicate() Node         { return s.Clone() }
func (s *While) Assign(other Node) error { return assign(s, other) }
func (*While) statement()                {}

// DoWhile tests its condition after each iteration.
type DoWhile struct {
	cond Expression
	body *Block
}

func NewDoWhile(body *Block, cond Expression) (*DoWhile, error) {
	if isNil(cond) {
		return nil, errors.Wrap(ErrNullReference, "do-while needs a condition")
	}
	return &DoWhile{cond: cond, body: orEmptyBlock(body)}, nil
}

func (s *DoWhile) Body() *Block { return s.body }
func (s *DoWhile) Kind() Kind   { return KindDoWhile }

func (s *DoWhile) Render(rc *RenderContext, out *Sink, indent int) error {
	tabs := rc.tabs(indent)
	c, err := spell(rc, s.cond, 0)
	if err != nil {
		return err
	}
	out.WriteString(tabs + "do\n")
	if err := s.body.Render(rc, out, indent); err != nil {
		return err
	}
	out.WriteString("\n" + tabs + "while( " + c + " );")
	return out.Err()
}

func (s *DoWhile) Clone() *DoWhile {
	if s == nil {
		return nil
	}
	return &DoWhile{cond: cloneExpression(s.cond), body: s.body.Clone()}
}

func (s *DoWhile) Duplicate() Node         { return s.Clone() }
func (s *DoWhile) Assign(other Node) error { return assign(s, other) }
func (*DoWhile) statement()                {}

// TryCatch is a try block followed by its handlers.
type TryCatch struct {
	comment *Comment
	body    *Block
	catches List[*CatchClause]
}

func NewTryCatch(body *Block, catches ...*CatchClause) *TryCatch {
	t := &TryCatch{comment: &Comment{}, body: orEmptyBlock(body)}
	t.catches.Add(catches...)
	return t
}

func (t *TryCatch) Comment() *Comment            { return t.comment }
func (t *TryCatch) Body() *Block                 { return t.body }
func (t *TryCatch) Catches() *List[*CatchClause] { return &t.catches }
func (t *TryCatch) Kind() Kind                   { return KindTryCatch }

func (t *TryCatch) AddCatch(c *CatchClause) *TryCatch {
	t.catches.Add(c)
	return t
}

func (t *TryCatch) Render(rc *RenderContext, out *Sink, indent int) error {
	if err := writeComment(rc, out, t.comment, indent); err != nil {
		return err
	}
	out.WriteString(rc.tabs(indent) + "try\n")
	if err := renderBraced(rc, out, indent, t.body.statements.Slice()); err != nil {
		return err
	}
	for _, c := range t.catches.All() {
		out.WriteString("\n")
		if err := c.Render(rc, out, indent); err != nil {
			return err
		}
	}
	return out.Err()
}

func (t *TryCatch) Clone() *TryCatch {
	if t == nil {
		return nil
	}
	return &TryCatch{comment: cloneComment(t.comment), body: t.body.Clone(), catches: t.catches.Clone()}
}

func (t *TryCatch) Duplicate() Node         { return t.Clone() }
func (t *TryCatch) Assign(other Node) error { return assign(t, other) }
func (*TryCatch) statement()                {}

// CatchClause handles one exception type. A nil parameter catches everything.
type CatchClause struct {
	comment *Comment
	param   *VariableDeclaration
	body    *Block
}

func NewCatch(param *VariableDeclaration, body *Block) *CatchClause {
	return &CatchClause{comment: &Comment{}, param: param, body: orEmptyBlock(body)}
}

func (c *CatchClause) Comment() *Comment               { return c.comment }
func (c *CatchClause) Parameter() *VariableDeclaration { return c.param }
func (c *CatchClause) Body() *Block                    { return c.body }
func (c *CatchClause) Kind() Kind                      { return KindCatchClause }

func (c *CatchClause) Render(rc *RenderContext, out *Sink, indent int) error {
	param := "..."
	if c.param != nil {
		var err error
		if param, err = c.param.parameter(rc, false); err != nil {
			return err
		}
	}
	out.WriteString(rc.tabs(indent) + "catch( " + param + " )\n")
	if err := writeComment(rc, out, c.comment, indent); err != nil {
		return err
	}
	return renderBraced(rc, out, indent, c.body.statements.Slice())
}

func (c *CatchClause) Clone() *CatchClause {
	if c == nil {
		return nil
	}
	return &CatchClause{comment: cloneComment(c.comment), param: c.param.Clone(), body: c.body.Clone()}
}

func (c *CatchClause) Duplicate() Node         { return c.Clone() }
func (c *CatchClause) Assign(other Node) error { return assign(c, other) }
