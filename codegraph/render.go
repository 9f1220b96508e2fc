package codegraph

import (
	"bytes"
	"io"
	"strings"

	"github.com/cockroachdb/errors"
)

// Sink is an append-only text destination. The first write error is kept and
// every later write is dropped.
type Sink struct {
	w   io.Writer
	err error
}

func NewSink(w io.Writer) *Sink {
	return &Sink{w: w}
}

func (s *Sink) WriteString(str string) {
	if s.err != nil || str == "" {
		return
	}
	_, s.err = io.WriteString(s.w, str)
}

// Err returns the first error the underlying writer reported.
func (s *Sink) Err() error {
	return s.err
}

// deferral is one backlog entry: either a whole nested type that must be
// composed after its enclosing type, or the out-of-line form of a member.
type deferral struct {
	composite composer
	define    func(rc *RenderContext, out *Sink, indent int) error
}

// composer is a composite type that runs its own composition when flushed.
type composer interface {
	compose(rc *RenderContext, out, def *Sink, indent, defIndent int) error
}

// RenderContext carries the state of a single render call. It is created fresh
// by Render, RenderString, RenderSplit and RenderSplitString.
type RenderContext struct {
	unit      string
	caps      Capability
	depth     int
	composing []NestableType
	backlog   []deferral
	def       *Sink
	defIndent int
}

// NewRenderContext snapshots the process wide indentation character and
// capability set.
func NewRenderContext() *RenderContext {
	return &RenderContext{
		unit: string(IndentationCharacter()),
		caps: Capabilities(),
	}
}

func (rc *RenderContext) Capabilities() Capability {
	return rc.caps
}

func (rc *RenderContext) tabs(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat(rc.unit, n)
}

func (rc *RenderContext) split() bool {
	return rc.def != nil
}

func (rc *RenderContext) isComposing(t NestableType) bool {
	for _, c := range rc.composing {
		if c == t {
			return true
		}
	}
	return false
}

// defer records the out-of-line form of a member. While rendering into two
// streams the form goes straight to the definition stream.
func (rc *RenderContext) deferDefinition(define func(rc *RenderContext, out *Sink, indent int) error) error {
	if rc.split() {
		s, err := spellWith(rc, define, rc.defIndent)
		if err != nil {
			return err
		}
		writeTerminated(rc.def, s)
		return rc.def.Err()
	}
	rc.backlog = append(rc.backlog, deferral{define: define})
	return nil
}

// SplitRenderer is implemented by nodes that emit different text into the
// declaration and definition streams. Nodes without it render everything into
// the declaration stream.
type SplitRenderer interface {
	RenderSplit(rc *RenderContext, decl, def *Sink, declIndent, defIndent int) error
}

func renderSplit(rc *RenderContext, n Node, decl, def *Sink, declIndent, defIndent int) error {
	if s, ok := n.(SplitRenderer); ok {
		return s.RenderSplit(rc, decl, def, declIndent, defIndent)
	}
	return n.Render(rc, decl, declIndent)
}

// Render writes the combined rendering of n to w.
func Render(n Node, w io.Writer) error {
	if isNil(n) {
		return errors.Wrap(ErrNullReference, "render")
	}
	out := NewSink(w)
	if err := n.Render(NewRenderContext(), out, 0); err != nil {
		return err
	}
	return out.Err()
}

func RenderString(n Node) (string, error) {
	var b bytes.Buffer
	err := Render(n, &b)
	return b.String(), err
}

// RenderSplit writes declarations to decl and out-of-line definitions to def.
func RenderSplit(n Node, decl, def io.Writer) error {
	if isNil(n) {
		return errors.Wrap(ErrNullReference, "render split")
	}
	ds, fs := NewSink(decl), NewSink(def)
	if err := renderSplit(NewRenderContext(), n, ds, fs, 0, 0); err != nil {
		return err
	}
	if err := ds.Err(); err != nil {
		return err
	}
	return fs.Err()
}

func RenderSplitString(n Node) (decl, def string, err error) {
	var db, fb bytes.Buffer
	err = RenderSplit(n, &db, &fb)
	return db.String(), fb.String(), err
}

// spell renders n into a string.
func spell(rc *RenderContext, n Node, indent int) (string, error) {
	var b bytes.Buffer
	s := NewSink(&b)
	if err := n.Render(rc, s, indent); err != nil {
		return "", err
	}
	return b.String(), s.Err()
}

func spellWith(rc *RenderContext, fn func(rc *RenderContext, out *Sink, indent int) error, indent int) (string, error) {
	var b bytes.Buffer
	s := NewSink(&b)
	if err := fn(rc, s, indent); err != nil {
		return "", err
	}
	return b.String(), s.Err()
}

// spellJoined renders every item at indentation zero and joins the results.
func spellJoined[T Node](rc *RenderContext, items []T, sep string) (string, error) {
	parts := make([]string, 0, len(items))
	for _, item := range items {
		s, err := spell(rc, item, 0)
		if err != nil {
			return "", err
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, sep), nil
}

// writeTerminated writes a non-empty fragment and ends the line if the fragment
// did not.
func writeTerminated(out *Sink, s string) {
	if s == "" {
		return
	}
	out.WriteString(s)
	if !strings.HasSuffix(s, "\n") {
		out.WriteString("\n")
	}
}

func renderTerminated(rc *RenderContext, n Node, out *Sink, indent int) error {
	s, err := spell(rc, n, indent)
	if err != nil {
		return err
	}
	writeTerminated(out, s)
	return out.Err()
}

func renderSplitTerminated(rc *RenderContext, n Node, decl, def *Sink, declIndent, defIndent int) error {
	var db, fb bytes.Buffer
	ds, fs := NewSink(&db), NewSink(&fb)
	if err := renderSplit(rc, n, ds, fs, declIndent, defIndent); err != nil {
		return err
	}
	if err := ds.Err(); err != nil {
		return err
	}
	if err := fs.Err(); err != nil {
		return err
	}
	writeTerminated(decl, db.String())
	writeTerminated(def, fb.String())
	if err := decl.Err(); err != nil {
		return err
	}
	return def.Err()
}
