package codegraph

import (
	"io"
	"os"

	"github.com/cockroachdb/errors"
)

// CompilationUnit is the top level container of one generated artifact.
type CompilationUnit struct {
	name     string
	comment  *Comment
	children List[Node]
}

func NewCompilationUnit(name string, children ...Node) *CompilationUnit {
	u := &CompilationUnit{name: name, comment: &Comment{}}
	u.children.Add(children...)
	return u
}

func (u *CompilationUnit) Name() string          { return u.name }
func (u *CompilationUnit) Comment() *Comment     { return u.comment }
func (u *CompilationUnit) Children() *List[Node] { return &u.children }
func (u *CompilationUnit) Kind() Kind            { return KindCompilationUnit }

func (u *CompilationUnit) SetName(name string) *CompilationUnit {
	u.name = name
	return u
}

func (u *CompilationUnit) Add(children ...Node) *CompilationUnit {
	u.children.Add(children...)
	return u
}

func (u *CompilationUnit) Render(rc *RenderContext, out *Sink, indent int) error {
	if err := writeComment(rc, out, u.comment, indent); err != nil {
		return err
	}
	for _, c := range u.children.All() {
		if err := renderTerminated(rc, c, out, indent); err != nil {
			return err
		}
	}
	return out.Err()
}

func (u *CompilationUnit) RenderSplit(rc *RenderContext, decl, def *Sink, declIndent, defIndent int) error {
	if err := writeComment(rc, decl, u.comment, declIndent); err != nil {
		return err
	}
	for _, c := range u.children.All() {
		if err := renderSplitTerminated(rc, c, decl, def, declIndent, defIndent); err != nil {
			return err
		}
	}
	if err := decl.Err(); err != nil {
		return err
	}
	return def.Err()
}

// Write renders the unit to w.
func (u *CompilationUnit) Write(w io.Writer) error {
	return Render(u, w)
}

// WriteFile creates or truncates the file named after the unit and writes the
// combined rendering into it.
func (u *CompilationUnit) WriteFile() error {
	return writeFile(u.name, u.Write)
}

// WriteSplitFiles writes declarations to declPath and definitions to defPath.
func (u *CompilationUnit) WriteSplitFiles(declPath, defPath string) error {
	return writeFile(declPath, func(decl io.Writer) error {
		return writeFile(defPath, func(def io.Writer) error {
			return RenderSplit(u, decl, def)
		})
	})
}

func writeFile(path string, write func(io.Writer) error) (err error) {
	if path == "" {
		return errors.Wrap(ErrInvalidArgument, "compilation unit has no file name")
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "failed to create %s", path)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = errors.Wrapf(cerr, "failed to close %s", path)
		}
	}()
	if err := write(f); err != nil {
		return errors.Wrapf(err, "failed to write %s", path)
	}
	return nil
}

func (u *CompilationUnit) Clone() *CompilationUnit {
	if u == nil {
		return nil
	}
	return &CompilationUnit{name: u.name, comment: cloneComment(u.comment), children: u.children.Clone()}
}

func (u *CompilationUnit) Duplicate() Node         { return u.Clone() }
func (u *CompilationUnit) Assign(other Node) error { return assign(u, other) }
