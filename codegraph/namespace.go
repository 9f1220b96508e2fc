package codegraph

// Namespace scopes its children. An empty name makes it anonymous.
type Namespace struct {
	name     string
	comment  *Comment
	children List[Node]
}

func NewNamespace(name string, children ...Node) *Namespace {
	n := &Namespace{name: name, comment: &Comment{}}
	n.children.Add(children...)
	return n
}

func (n *Namespace) Name() string          { return n.name }
func (n *Namespace) Comment() *Comment     { return n.comment }
func (n *Namespace) Children() *List[Node] { return &n.children }
func (n *Namespace) Kind() Kind            { return KindNamespace }

// Add appends children and takes ownership of them.
func (n *Namespace) Add(children ...Node) *Namespace {
	n.children.Add(children...)
	return n
}

func (n *Namespace) opening(rc *RenderContext, indent int) string {
	tabs := rc.tabs(indent)
	head := tabs + "namespace"
	if n.name != "" {
		head += " " + n.name
	}
	return head + "\n" + tabs + "{\n"
}

func (n *Namespace) Render(rc *RenderContext, out *Sink, indent int) error {
	if err := writeComment(rc, out, n.comment, indent); err != nil {
		return err
	}
	out.WriteString(n.opening(rc, indent))
	for _, c := range n.children.All() {
		if err := renderTerminated(rc, c, out, indent+1); err != nil {
			return err
		}
	}
	out.WriteString(rc.tabs(indent) + "}\n")
	return out.Err()
}

// RenderSplit opens the namespace in both streams. The comment goes to the
// declaration stream only.
func (n *Namespace) RenderSplit(rc *RenderContext, decl, def *Sink, declIndent, defIndent int) error {
	if err := writeComment(rc, decl, n.comment, declIndent); err != nil {
		return err
	}
	decl.WriteString(n.opening(rc, declIndent))
	def.WriteString(n.opening(rc, defIndent))
	for _, c := range n.children.All() {
		if err := renderSplitTerminated(rc, c, decl, def, declIndent+1, defIndent+1); err != nil {
			return err
		}
	}
	decl.WriteString(rc.tabs(declIndent) + "}\n")
	def.WriteString(rc.tabs(defIndent) + "}\n")
	if err := decl.Err(); err != nil {
		return err
	}
	return def.Err()
}

func (n *Namespace) Clone() *Namespace {
	if n == nil {
		return nil
	}
	return &Namespace{name: n.name, comment: cloneComment(n.comment), children: n.children.Clone()}
}

func (n *Namespace) Duplicate() Node         { return n.Clone() }
func (n *Namespace) Assign(other Node) error { return assign(n, other) }
