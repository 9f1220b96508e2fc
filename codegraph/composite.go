package codegraph

import (
	"bytes"
)

// compose runs body as one composition step. The outermost composition owns a
// fresh backlog, routes deferred definitions to def when rendering two streams,
// and flushes the backlog right after body has closed the type. Nested
// compositions share the outermost backlog.
func compose(rc *RenderContext, t NestableType, out, def *Sink, indent, defIndent int, body func(qualified bool) error) error {
	if rc.depth > 0 {
		rc.depth++
		rc.composing = append(rc.composing, t)
		err := body(false)
		rc.composing = rc.composing[:len(rc.composing)-1]
		rc.depth--
		return err
	}

	saved, savedDef, savedDefIndent := rc.backlog, rc.def, rc.defIndent
	rc.backlog, rc.def, rc.defIndent = nil, def, defIndent
	defer func() {
		rc.backlog, rc.def, rc.defIndent = saved, savedDef, savedDefIndent
	}()

	rc.depth++
	rc.composing = append(rc.composing, t)
	err := body(t.Enclosing() != nil)
	rc.composing = rc.composing[:len(rc.composing)-1]
	rc.depth--
	if err != nil {
		return err
	}
	return rc.flush(out, indent)
}

// flush empties the backlog in FIFO order. Deferred types are composed as new
// top level compositions with their own backlog.
func (rc *RenderContext) flush(out *Sink, indent int) error {
	for len(rc.backlog) > 0 {
		entry := rc.backlog[0]
		rc.backlog = rc.backlog[1:]
		if entry.composite != nil {
			if err := entry.composite.compose(rc, out, rc.def, indent, rc.defIndent); err != nil {
				return err
			}
			continue
		}
		s, err := spellWith(rc, entry.define, indent)
		if err != nil {
			return err
		}
		writeTerminated(out, s)
	}
	return out.Err()
}

// writeGroups emits one section per access level in Public, Protected, Private
// order. Each section gets its label only when fill produced text for it.
func writeGroups(rc *RenderContext, out *Sink, indent int, fill func(access Access, group *Sink) error) error {
	for _, access := range accessOrder {
		var b bytes.Buffer
		group := NewSink(&b)
		if err := fill(access, group); err != nil {
			return err
		}
		if err := group.Err(); err != nil {
			return err
		}
		if b.Len() == 0 {
			continue
		}
		out.WriteString(rc.tabs(indent) + access.String() + ":\n")
		out.WriteString(b.String())
	}
	return out.Err()
}

// emitCallable places a member callable: inline, declared only, or declared now
// with its definition deferred.
func emitCallable(rc *RenderContext, out *Sink, indent int, m memberRenderer) error {
	s, err := spellWith(rc, func(rc *RenderContext, out *Sink, indent int) error {
		switch m.placement(rc) {
		case placeInline:
			return m.renderInline(rc, out, indent)
		case placeDeferred:
			if err := m.renderDeclaration(rc, out, indent); err != nil {
				return err
			}
			return rc.deferDefinition(m.renderDefinition)
		}
		return m.renderDeclaration(rc, out, indent)
	}, indent)
	if err != nil {
		return err
	}
	writeTerminated(out, s)
	return out.Err()
}

// emitVariable places a data member. A static const member of basic type is
// initialized in place; other static members are declared and their definition
// deferred.
func emitVariable(rc *RenderContext, out *Sink, indent int, owner NestableType, m *Member[*VariableDeclaration]) error {
	v := m.Value
	spec := &v.spec
	_, basic := spec.typ.(*BasicType)
	var b bytes.Buffer
	item := NewSink(&b)
	switch {
	case spec.static && spec.constant && basic:
		ext := spec.extern
		spec.extern = false
		err := v.Render(rc, item, indent)
		spec.extern = ext
		if err != nil {
			return err
		}
	case spec.static:
		if err := v.renderMember(rc, item, indent, "", false); err != nil {
			return err
		}
		err := rc.deferDefinition(func(rc *RenderContext, out *Sink, indent int) error {
			return v.renderDefinition(rc, out, indent, owner)
		})
		if err != nil {
			return err
		}
	default:
		prefix := ""
		if m.Mutable {
			prefix = "mutable "
		}
		if err := v.renderMember(rc, item, indent, prefix, true); err != nil {
			return err
		}
	}
	if err := item.Err(); err != nil {
		return err
	}
	writeTerminated(out, b.String())
	return out.Err()
}
