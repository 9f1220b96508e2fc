package codegraph

import (
	"strings"
)

// CaptureMode selects how a lambda capture binds.
type CaptureMode int

const (
	// CaptureByName captures the variable by copy without a default marker.
	CaptureByName CaptureMode = iota
	CaptureByReference
	CaptureByValue
)

// Capture is one entry of a lambda capture list. A capture without a variable
// is a capture default ("&" or "=").
type Capture struct {
	Mode     CaptureMode
	Variable *VariableDeclaration
}

func (c Capture) text() string {
	var s string
	switch c.Mode {
	case CaptureByReference:
		s = "&"
	case CaptureByValue:
		s = "="
	}
	if c.Variable != nil {
		s += c.Variable.decl.name
	}
	return s
}

// Lambda is a lambda expression. Captured variables are referenced, not owned.
type Lambda struct {
	callable
	captures []Capture
	mutable  bool
}

func NewLambda(captures ...Capture) *Lambda {
	return &Lambda{callable: newCallable(""), captures: captures}
}

func (l *Lambda) Captures() []Capture { return append([]Capture(nil), l.captures...) }
func (l *Lambda) Mutable() bool       { return l.mutable }
func (l *Lambda) Kind() Kind          { return KindLambda }

func (l *Lambda) AddCapture(c Capture) *Lambda {
	l.captures = append(l.captures, c)
	return l
}

func (l *Lambda) SetMutable(v bool) *Lambda {
	l.mutable = v
	return l
}

func (l *Lambda) Render(rc *RenderContext, out *Sink, indent int) error {
	if err := writeComment(rc, out, l.comment, indent); err != nil {
		return err
	}
	tabs := rc.tabs(indent)
	caps := make([]string, len(l.captures))
	for i, c := range l.captures {
		caps[i] = c.text()
	}
	head := tabs + "[ ]"
	if len(caps) > 0 {
		head = tabs + "[ " + strings.Join(caps, " , ") + " ]"
	}
	params, err := l.parameterList(rc, true)
	if err != nil {
		return err
	}
	head += params
	if l.mutable {
		head += " mutable"
	}
	head += l.exception.text(rc)
	if l.returns != nil {
		ret, err := l.returnText(rc)
		if err != nil {
			return err
		}
		head += " -> " + strings.TrimSpace(ret)
	}
	out.WriteString(head + "\n" + tabs + "{\n")
	if err := renderStatements(rc, out, indent+1, l.body.Slice()); err != nil {
		return err
	}
	out.WriteString(tabs + "}")
	return out.Err()
}

func (l *Lambda) Clone() *Lambda {
	if l == nil {
		return nil
	}
	return &Lambda{
		callable: l.callable.clone(),
		captures: append([]Capture(nil), l.captures...),
		mutable:  l.mutable,
	}
}

func (l *Lambda) Duplicate() Node         { return l.Clone() }
func (l *Lambda) Assign(other Node) error { return assign(l, other) }
func (*Lambda) expression()               {}
