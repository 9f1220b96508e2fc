package codegraph

import (
	"strings"

	"github.com/cockroachdb/errors"
)

// DirectiveKind selects the keyword of a PreprocessorDirective.
type DirectiveKind int

const (
	Include DirectiveKind = iota
	Pragma
	Define
	Undefine
	// Raw writes the text after a bare "#".
	Raw
)

var directiveKeywords = [...]string{
	Include:  "#include ",
	Pragma:   "#pragma ",
	Define:   "#define ",
	Undefine: "#undef ",
	Raw:      "#",
}

func (k DirectiveKind) String() string {
	if k < 0 || int(k) >= len(directiveKeywords) {
		return "unknown"
	}
	return strings.TrimSpace(strings.TrimPrefix(directiveKeywords[k], "#"))
}

// continued escapes the line breaks of a multi-line directive body.
func continued(text string, multiline bool) string {
	if !multiline {
		return text
	}
	return strings.ReplaceAll(text, "\n", "\\\n")
}

// PreprocessorDirective is a single directive line. Directives always start
// at column zero.
type PreprocessorDirective struct {
	kind      DirectiveKind
	text      string
	multiline bool
	comment   *Comment
}

func NewDirective(kind DirectiveKind, text string) (*PreprocessorDirective, error) {
	if kind < 0 || int(kind) >= len(directiveKeywords) {
		return nil, errors.Wrapf(ErrInvalidArgument, "directive kind %d", int(kind))
	}
	return &PreprocessorDirective{
		kind:      kind,
		text:      text,
		multiline: strings.Contains(text, "\n"),
		comment:   &Comment{},
	}, nil
}

// NewInclude includes header, which must carry its own quotes or brackets.
func NewInclude(header string) *PreprocessorDirective {
	d, _ := NewDirective(Include, header)
	return d
}

func (d *PreprocessorDirective) DirectiveKind() DirectiveKind { return d.kind }
func (d *PreprocessorDirective) Text() string                 { return d.text }
func (d *PreprocessorDirective) Multiline() bool              { return d.multiline }
func (d *PreprocessorDirective) Comment() *Comment            { return d.comment }
func (d *PreprocessorDirective) Kind() Kind                   { return KindPreprocessorDirective }

// SetMultiline controls whether line breaks in the text are escaped.
func (d *PreprocessorDirective) SetMultiline(v bool) *PreprocessorDirective {
	d.multiline = v
	return d
}

func (d *PreprocessorDirective) Render(rc *RenderContext, out *Sink, indent int) error {
	if err := writeComment(rc, out, d.comment, 0); err != nil {
		return err
	}
	out.WriteString(directiveKeywords[d.kind] + continued(d.text, d.multiline) + "\n")
	return out.Err()
}

func (d *PreprocessorDirective) Clone() *PreprocessorDirective {
	if d == nil {
		return nil
	}
	clone := *d
	clone.comment = cloneComment(d.comment)
	return &clone
}

func (d *PreprocessorDirective) Duplicate() Node         { return d.Clone() }
func (d *PreprocessorDirective) Assign(other Node) error { return assign(d, other) }

// MacroTestKind selects the conditional directive opening a MacroTest.
type MacroTestKind int

const (
	IfDef MacroTestKind = iota
	IfNDef
	IfExpr
)

var macroTestKeywords = [...]string{
	IfDef:  "#ifdef ",
	IfNDef: "#ifndef ",
	IfExpr: "#if ",
}

// MacroTest guards its children with a conditional directive and #endif.
type MacroTest struct {
	kind      MacroTestKind
	condition string
	comment   *Comment
	children  List[Node]
}

func NewMacroTest(kind MacroTestKind, condition string, children ...Node) (*MacroTest, error) {
	if kind < 0 || int(kind) >= len(macroTestKeywords) {
		return nil, errors.Wrapf(ErrInvalidArgument, "macro test kind %d", int(kind))
	}
	if strings.TrimSpace(condition) == "" {
		return nil, errors.Wrap(ErrInvalidArgument, "macro test without condition")
	}
	m := &MacroTest{kind: kind, condition: condition, comment: &Comment{}}
	m.children.Add(children...)
	return m, nil
}

func (m *MacroTest) Condition() string     { return m.condition }
func (m *MacroTest) Comment() *Comment     { return m.comment }
func (m *MacroTest) Children() *List[Node] { return &m.children }
func (m *MacroTest) Kind() Kind            { return KindMacroTest }

func (m *MacroTest) Add(children ...Node) *MacroTest {
	m.children.Add(children...)
	return m
}

func (m *MacroTest) opening() string {
	return macroTestKeywords[m.kind] + continued(m.condition, strings.Contains(m.condition, "\n")) + "\n"
}

func (m *MacroTest) Render(rc *RenderContext, out *Sink, indent int) error {
	if err := writeComment(rc, out, m.comment, 0); err != nil {
		return err
	}
	out.WriteString(m.opening())
	for _, n := range m.children.All() {
		if err := renderTerminated(rc, n, out, indent); err != nil {
			return err
		}
	}
	out.WriteString("#endif\n")
	return out.Err()
}

// RenderSplit opens and closes the guard in both streams.
func (m *MacroTest) RenderSplit(rc *RenderContext, decl, def *Sink, declIndent, defIndent int) error {
	if err := writeComment(rc, decl, m.comment, 0); err != nil {
		return err
	}
	decl.WriteString(m.opening())
	def.WriteString(m.opening())
	for _, n := range m.children.All() {
		if err := renderSplitTerminated(rc, n, decl, def, declIndent, defIndent); err != nil {
			return err
		}
	}
	decl.WriteString("#endif\n")
	def.WriteString("#endif\n")
	if err := decl.Err(); err != nil {
		return err
	}
	return def.Err()
}

func (m *MacroTest) Clone() *MacroTest {
	if m == nil {
		return nil
	}
	return &MacroTest{
		kind:      m.kind,
		condition: m.condition,
		comment:   cloneComment(m.comment),
		children:  m.children.Clone(),
	}
}

func (m *MacroTest) Duplicate() Node         { return m.Clone() }
func (m *MacroTest) Assign(other Node) error { return assign(m, other) }
