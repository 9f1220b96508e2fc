package codegraph

import "strings"

// Comment is free text attached to a node. Single line comments use the block
// form; multi-line comments repeat the line prefix.
type Comment struct {
	text      string
	multiline bool
}

func NewComment(text string) *Comment {
	return &Comment{text: text, multiline: strings.Contains(text, "\n")}
}

// CommentOf renders n and uses the result as comment text, which is handy for
// commenting out code.
func CommentOf(n Node) (*Comment, error) {
	text, err := RenderString(n)
	if err != nil {
		return nil, err
	}
	return NewComment(strings.TrimRight(text, "\n")), nil
}

func (c *Comment) Text() string {
	return c.text
}

func (c *Comment) SetText(text string) *Comment {
	c.text = text
	if strings.Contains(text, "\n") {
		c.multiline = true
	}
	return c
}

func (c *Comment) Multiline() bool {
	return c.multiline
}

// SetMultiline forces the line-prefix form. Text containing a line break always
// uses it.
func (c *Comment) SetMultiline(v bool) *Comment {
	c.multiline = v || strings.Contains(c.text, "\n")
	return c
}

func (c *Comment) Empty() bool {
	return c == nil || c.text == ""
}

func (c *Comment) Kind() Kind { return KindComment }

func (c *Comment) Render(rc *RenderContext, out *Sink, indent int) error {
	if c.Empty() {
		return nil
	}
	tabs := rc.tabs(indent)
	if !c.multiline {
		out.WriteString(tabs + "/*" + c.text + "*/")
		return out.Err()
	}
	out.WriteString(tabs + "//" + strings.ReplaceAll(c.text, "\n", "\n"+tabs+"//"))
	return out.Err()
}

func (c *Comment) Clone() *Comment {
	if c == nil {
		return nil
	}
	clone := *c
	return &clone
}

func (c *Comment) Duplicate() Node { return c.Clone() }

func (c *Comment) Assign(other Node) error { return assign(c, other) }

// cloneComment never returns nil so owners can always hand out a comment.
func cloneComment(c *Comment) *Comment {
	if c == nil {
		return &Comment{}
	}
	return c.Clone()
}

// CodeSnippet is literal source text. Every line is prefixed with the current
// indentation; at indentation zero the text is emitted verbatim.
type CodeSnippet struct {
	text string
}

func NewCodeSnippet(text string) *CodeSnippet {
	return &CodeSnippet{text: text}
}

func (s *CodeSnippet) Text() string { return s.text }

func (s *CodeSnippet) SetText(text string) *CodeSnippet {
	s.text = text
	return s
}

func (s *CodeSnippet) Kind() Kind { return KindCodeSnippet }

func (s *CodeSnippet) Render(rc *RenderContext, out *Sink, indent int) error {
	if indent == 0 {
		out.WriteString(s.text)
		return out.Err()
	}
	tabs := rc.tabs(indent)
	lines := strings.Split(s.text, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = tabs + line
		}
	}
	out.WriteString(strings.Join(lines, "\n"))
	return out.Err()
}

func (s *CodeSnippet) Clone() *CodeSnippet {
	if s == nil {
		return nil
	}
	clone := *s
	return &clone
}

func (s *CodeSnippet) Duplicate() Node         { return s.Clone() }
func (s *CodeSnippet) Assign(other Node) error { return assign(s, other) }
func (*CodeSnippet) expression()               {}
func (*CodeSnippet) statement()                {}
