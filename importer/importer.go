package importer

import (
	"fmt"
	"go/token"
	"slices"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/dave/dst"
	"github.com/dave/dst/decorator"
	"github.com/dave/dst/dstutil"
	"github.com/newrelic/go-cpp-codegen/codegraph"
	"github.com/newrelic/go-cpp-codegen/importer/facts"
	"github.com/newrelic/go-cpp-codegen/internal/comment"
	"github.com/newrelic/go-cpp-codegen/internal/util"
)

// standardHeaders maps the std types produced by util.CppType to their
// headers, in include order.
var standardHeaders = []struct {
	prefix string
	header string
}{
	{"std::any", "<any>"},
	{"std::array", "<array>"},
	{"std::complex", "<complex>"},
	{"std::map", "<map>"},
	{"std::string", "<string>"},
	{"std::error_code", "<system_error>"},
	{"std::tuple", "<tuple>"},
	{"std::vector", "<vector>"},
}

// Importer builds a C++ skeleton from the named types, package level variables
// and functions of a Go package. Struct types become structs, interfaces become
// abstract classes and methods become member functions defined out of line.
//
// Please create Importers with New; the zero value has no fact keeper.
type Importer struct {
	namespace string

	pkg     *decorator.Package // package being imported, may be nil
	facts   facts.Keeper
	specs   map[string]*dst.TypeSpec
	docs    map[string]dst.Decorations
	types   map[string]*codegraph.UserDefinedType
	order   []string // type names in declaration order
	headers map[string]bool
}

// New returns an Importer that places every declaration in namespace. An empty
// namespace uses the name of each imported package.
func New(namespace string) *Importer {
	return &Importer{namespace: strings.TrimSpace(namespace)}
}

func (im *Importer) reset(pkg *decorator.Package) {
	im.pkg = pkg
	im.facts = facts.NewKeeper()
	im.specs = map[string]*dst.TypeSpec{}
	im.docs = map[string]dst.Decorations{}
	im.types = map[string]*codegraph.UserDefinedType{}
	im.order = nil
	im.headers = map[string]bool{}
}

// Package imports every syntax file of pkg into a compilation unit named after
// the package.
func (im *Importer) Package(pkg *decorator.Package) (*codegraph.CompilationUnit, error) {
	if pkg == nil {
		return nil, errors.New("cannot import a nil package")
	}
	return im.Files(pkg.Name, pkg, pkg.Syntax...)
}

// Files imports files into a compilation unit called name. pkg is only used to
// resolve source positions for diagnostics and may be nil.
func (im *Importer) Files(name string, pkg *decorator.Package, files ...*dst.File) (*codegraph.CompilationUnit, error) {
	if name == "" {
		return nil, errors.New("compilation unit name is empty")
	}
	im.reset(pkg)

	files = slices.DeleteFunc(slices.Clone(files), im.generated)
	if err := im.collect(files); err != nil {
		return nil, err
	}

	namespace := im.namespace
	if namespace == "" {
		namespace = name
	}
	ns := codegraph.NewNamespace(namespace)

	for _, typeName := range im.order {
		if im.facts.GetFact(typeName) == facts.AliasType {
			ns.Add(im.typedef(typeName))
		}
	}

	emitted := map[string]bool{}
	for _, typeName := range im.order {
		im.emitType(ns, typeName, emitted)
	}

	for _, file := range files {
		for _, decl := range file.Decls {
			if gen, ok := decl.(*dst.GenDecl); ok && (gen.Tok == token.VAR || gen.Tok == token.CONST) {
				im.variables(ns, gen)
			}
		}
	}

	for _, file := range files {
		for _, decl := range file.Decls {
			fn, ok := decl.(*dst.FuncDecl)
			if !ok {
				continue
			}
			if fn.Recv != nil && len(fn.Recv.List) > 0 {
				im.method(ns, fn)
				continue
			}
			if f := im.function(ns, fn); f != nil {
				ns.Add(f)
			}
		}
	}

	unit := codegraph.NewCompilationUnit(name)
	for _, h := range standardHeaders {
		if im.headers[h.header] {
			unit.Add(codegraph.NewInclude(h.header))
		}
	}
	unit.Add(ns)
	return unit, nil
}

// generated reports whether file was produced by protoc, which the importer
// leaves alone.
func (im *Importer) generated(file *dst.File) bool {
	pos := util.Position(file, im.pkg)
	return pos != nil && strings.Contains(pos.Filename, ".pb.go")
}

// collect records a fact for every named type so that the second pass can tell
// structs from interfaces regardless of declaration order.
func (im *Importer) collect(files []*dst.File) error {
	for _, file := range files {
		for _, decl := range file.Decls {
			gen, ok := decl.(*dst.GenDecl)
			if !ok || gen.Tok != token.TYPE {
				continue
			}
			for _, spec := range gen.Specs {
				ts, ok := spec.(*dst.TypeSpec)
				if !ok {
					continue
				}
				entry := facts.Entry{Name: ts.Name.Name, Fact: factOf(ts)}
				if err := im.facts.AddFact(entry); err != nil {
					return errors.Wrapf(err, "error adding fact entry %s", entry)
				}

				im.specs[entry.Name] = ts
				im.order = append(im.order, entry.Name)
				im.docs[entry.Name] = ts.Decs.Start
				if len(gen.Specs) == 1 {
					im.docs[entry.Name] = gen.Decs.Start
				}

				switch entry.Fact {
				case facts.StructType:
					im.types[entry.Name] = codegraph.NewStruct(entry.Name)
				case facts.InterfaceType:
					im.types[entry.Name] = codegraph.NewClass(entry.Name)
				}
			}
		}
	}
	return nil
}

// Facts lists the named types of the last imported package in declaration
// order.
func (im *Importer) Facts() []facts.Entry {
	entries := make([]facts.Entry, len(im.order))
	for i, name := range im.order {
		entries[i] = facts.Entry{Name: name, Fact: im.facts.GetFact(name)}
	}
	return entries
}

func factOf(ts *dst.TypeSpec) facts.Fact {
	if ts.Assign {
		return facts.AliasType
	}
	switch ts.Type.(type) {
	case *dst.StructType:
		return facts.StructType
	case *dst.InterfaceType:
		return facts.InterfaceType
	default:
		return facts.AliasType
	}
}

// emitType adds the composite type for name to ns after its bases.
func (im *Importer) emitType(ns *codegraph.Namespace, name string, emitted map[string]bool) {
	t, ok := im.types[name]
	if !ok || emitted[name] {
		return
	}
	emitted[name] = true

	spec := im.specs[name]
	docComment(t.Comment(), im.docs[name])
	im.templateParameters(spec.TypeParams, t.AddTemplateParameter)

	switch v := spec.Type.(type) {
	case *dst.StructType:
		im.fillStruct(t, v)
	case *dst.InterfaceType:
		im.fillInterface(t, v)
	}

	for _, base := range t.Bases().All() {
		im.emitType(ns, base.Type().Name(), emitted)
	}
	ns.Add(t)
}

func (im *Importer) templateParameters(params *dst.FieldList, add func(codegraph.TemplateParam) *codegraph.UserDefinedType) {
	if params == nil {
		return
	}
	for _, field := range params.List {
		for _, n := range field.Names {
			add(codegraph.NewTemplateParameter(n.Name))
		}
	}
}

func (im *Importer) fillStruct(t *codegraph.UserDefinedType, st *dst.StructType) {
	if st.Fields == nil {
		return
	}
	for _, field := range st.Fields.List {
		if len(field.Names) == 0 {
			im.embed(t, field, facts.StructType, facts.InterfaceType)
			continue
		}
		for _, n := range field.Names {
			if n.Name == "_" {
				continue
			}
			v, ok := im.variable(n.Name, field.Type)
			docComment(v.Comment(), field.Decs.Start)
			if !ok {
				annotate(v.Comment(), comment.Warn(im.pkg, field, fmt.Sprintf("field %s has no C++ counterpart", n.Name)))
			}
			t.AddVariable(v, access(n.Name))
		}
	}
}

func (im *Importer) fillInterface(t *codegraph.UserDefinedType, it *dst.InterfaceType) {
	if it.Methods != nil {
		for _, field := range it.Methods.List {
			ft, isFunc := field.Type.(*dst.FuncType)
			if isFunc && len(field.Names) > 0 {
				m := codegraph.NewMemberFunction(field.Names[0].Name)
				docComment(m.Comment(), field.Decs.Start)
				im.signature(m, ft, field)
				m.SetPure(true)
				t.AddFunction(m, codegraph.Public)
				continue
			}
			im.embed(t, field, facts.InterfaceType)
		}
	}
	t.SetAbstract(true)
}

// embed turns an embedded field into a public base when it names a local type
// with one of the accepted facts.
func (im *Importer) embed(t *codegraph.UserDefinedType, field *dst.Field, accepted ...facts.Fact) {
	expr := unparen(field.Type)
	if star, ok := expr.(*dst.StarExpr); ok {
		expr = star.X
	}
	if ident, ok := expr.(*dst.Ident); ok && ident.Path == "" {
		if base, known := im.types[ident.Name]; known && slices.Contains(accepted, im.facts.GetFact(ident.Name)) {
			t.AddBase(codegraph.NewBaseType(base, codegraph.Public))
			return
		}
	}

	spelled, _, _ := util.CppType(expr)
	annotate(t.Comment(), comment.Warn(im.pkg, field,
		fmt.Sprintf("embedded %s is not a base class", spelled),
		"only struct and interface types declared in this package can be embedded"))
}

func (im *Importer) typedef(name string) codegraph.Node {
	spec := im.specs[name]
	typ, pointers, ok := im.typeOf(spec.Type)
	if pointers > 0 {
		typ = codegraph.NewNamedType(typ.Name() + " " + strings.Repeat("*", pointers))
	}

	def, err := codegraph.NewTypedefinition(typ, name)
	if err != nil {
		return comment.Warn(im.pkg, spec, fmt.Sprintf("type %s skipped", name), err.Error())
	}
	docComment(def.Comment(), im.docs[name])
	if !ok {
		annotate(def.Comment(), comment.Warn(im.pkg, spec, fmt.Sprintf("type %s has no C++ counterpart", name)))
	}
	return def
}

// variables converts package level var and const declarations. Types are taken
// from the declaration or inferred from a literal initializer.
func (im *Importer) variables(ns *codegraph.Namespace, gen *dst.GenDecl) {
	for _, spec := range gen.Specs {
		vs, ok := spec.(*dst.ValueSpec)
		if !ok {
			continue
		}
		for i, n := range vs.Names {
			if n.Name == "_" {
				continue
			}

			var value dst.Expr
			if i < len(vs.Values) {
				value = vs.Values[i]
			}

			var v *codegraph.VariableDeclaration
			typeOK := true
			switch {
			case vs.Type != nil:
				v, typeOK = im.variable(n.Name, vs.Type)
			case value != nil:
				if typ, inferred := im.inferType(value); inferred {
					v = codegraph.NewVariable(typ, n.Name)
				}
			}
			if v == nil {
				ns.Add(comment.Warn(im.pkg, vs, fmt.Sprintf("cannot infer the type of %s", n.Name)))
				continue
			}

			docComment(v.Comment(), vs.Decs.Start)
			if len(gen.Specs) == 1 {
				docComment(v.Comment(), gen.Decs.Start)
			}
			if !typeOK {
				annotate(v.Comment(), comment.Warn(im.pkg, vs, fmt.Sprintf("%s has no C++ counterpart", n.Name)))
			}
			if gen.Tok == token.CONST {
				v.Specifier().SetConst(true)
			}
			if value != nil {
				if lit, isLit := util.Literal(value); isLit {
					v.Init(codegraph.NewPrimitive(lit))
				} else {
					annotate(v.Comment(), comment.Warn(im.pkg, vs, fmt.Sprintf("initializer of %s not translated", n.Name)))
				}
			}
			ns.Add(v)
		}
	}
}

func (im *Importer) inferType(value dst.Expr) (codegraph.Type, bool) {
	switch v := unparen(value).(type) {
	case *dst.BasicLit:
		switch v.Kind {
		case token.INT:
			return codegraph.MustBasicType("int"), true
		case token.FLOAT:
			return codegraph.MustBasicType("double"), true
		case token.STRING:
			im.require("std::string")
			return codegraph.NewNamedType("std::string"), true
		}
	case *dst.Ident:
		if v.Name == "true" || v.Name == "false" {
			return codegraph.MustBasicType("bool"), true
		}
	case *dst.UnaryExpr:
		if v.Op == token.SUB {
			return im.inferType(v.X)
		}
	}
	return nil, false
}

// method attaches a method declaration to the struct it belongs to. Value
// receivers produce const member functions.
func (im *Importer) method(ns *codegraph.Namespace, fn *dst.FuncDecl) {
	recv := unparen(fn.Recv.List[0].Type)
	pointer := false
	if star, ok := recv.(*dst.StarExpr); ok {
		pointer = true
		recv = star.X
	}
	switch v := recv.(type) {
	case *dst.IndexExpr:
		recv = v.X
	case *dst.IndexListExpr:
		recv = v.X
	}

	typeName := ""
	if ident, ok := recv.(*dst.Ident); ok {
		typeName = ident.Name
	}
	t, ok := im.types[typeName]
	if !ok || im.facts.GetFact(typeName) != facts.StructType {
		ns.Add(comment.Warn(im.pkg, fn,
			fmt.Sprintf("method %s.%s skipped", typeName, fn.Name.Name),
			"methods are only generated for struct types"))
		return
	}

	m := codegraph.NewMemberFunction(fn.Name.Name)
	docComment(m.Comment(), fn.Decs.Start)
	im.signature(m, fn.Type, fn)
	if !pointer {
		m.SetConst(true)
	}
	t.AddFunction(m, access(fn.Name.Name))
}

// function converts a free function. init functions have no C++ counterpart
// and are reported instead.
func (im *Importer) function(ns *codegraph.Namespace, fn *dst.FuncDecl) *codegraph.Function {
	if fn.Name.Name == "init" {
		ns.Add(comment.Warn(im.pkg, fn, "init function skipped", "package initialization has no C++ counterpart"))
		return nil
	}

	f := codegraph.NewFunction(fn.Name.Name)
	if fn.Type.TypeParams != nil {
		for _, field := range fn.Type.TypeParams.List {
			for _, n := range field.Names {
				f.AddTemplateParameter(codegraph.NewTemplateParameter(n.Name))
			}
		}
	}
	docComment(f.Comment(), fn.Decs.Start)
	im.signature(f, fn.Type, fn)
	if fn.Name.Name == "main" && f.Returns() == nil {
		f.SetReturns(codegraph.MustBasicType("int"))
	}
	return f
}

// signed is the part of the callable API the importer fills in.
type signed interface {
	AddParameter(p *codegraph.VariableDeclaration) error
	SetReturns(t codegraph.Type) *codegraph.VariableDeclaration
	Comment() *codegraph.Comment
}

func (im *Importer) signature(c signed, ft *dst.FuncType, node dst.Node) {
	if ft.Params != nil {
		index := 0
		for _, field := range ft.Params.List {
			names := field.Names
			if len(names) == 0 {
				names = []*dst.Ident{dst.NewIdent("_")}
			}
			for _, n := range names {
				name := n.Name
				if name == "_" {
					name = fmt.Sprintf("arg%d", index)
				}
				index++

				p, ok := im.variable(name, field.Type)
				if !ok {
					annotate(c.Comment(), comment.Warn(im.pkg, field, fmt.Sprintf("parameter %s has no C++ counterpart", name)))
				}
				if err := c.AddParameter(p); err != nil {
					annotate(c.Comment(), comment.Warn(im.pkg, field, fmt.Sprintf("parameter %s skipped", name), err.Error()))
				}
			}
		}
	}

	var results []dst.Expr
	if ft.Results != nil {
		for _, field := range ft.Results.List {
			for range max(len(field.Names), 1) {
				results = append(results, field.Type)
			}
		}
	}

	switch len(results) {
	case 0:
	case 1:
		typ, pointers, ok := im.typeOf(results[0])
		c.SetReturns(typ).Declarator().SetIndirectionLevel(pointers)
		if !ok {
			annotate(c.Comment(), comment.Warn(im.pkg, node, "result has no C++ counterpart"))
		}
	default:
		spelled := make([]string, len(results))
		for i, r := range results {
			name, pointers, _ := util.CppType(r)
			spelled[i] = strings.TrimSpace(name + " " + strings.Repeat("*", pointers))
			im.require(name)
		}
		im.require("std::tuple")
		c.SetReturns(codegraph.NewNamedType("std::tuple< " + strings.Join(spelled, " , ") + " >"))
		annotate(c.Comment(), comment.Info(im.pkg, node, fmt.Sprintf("%d results are returned as a std::tuple", len(results))))
	}
}

// variable declares name with the C++ spelling of expr. Go pointers become
// declarator indirection.
func (im *Importer) variable(name string, expr dst.Expr) (*codegraph.VariableDeclaration, bool) {
	typ, pointers, ok := im.typeOf(expr)
	v := codegraph.NewVariable(typ, name)
	v.Declarator().SetIndirectionLevel(pointers)
	return v, ok
}

func (im *Importer) typeOf(expr dst.Expr) (codegraph.Type, int, bool) {
	name, pointers, ok := util.CppType(unparen(expr))
	im.require(name)
	if t, local := im.types[name]; local {
		return t, pointers, ok
	}
	if codegraph.IsBasicTypeName(name) {
		return codegraph.MustBasicType(name), pointers, ok
	}
	return codegraph.NewNamedType(name), pointers, ok
}

// require records the standard headers a spelled type needs.
func (im *Importer) require(spelled string) {
	for _, h := range standardHeaders {
		if strings.Contains(spelled, h.prefix) {
			im.headers[h.header] = true
		}
	}
}

func access(name string) codegraph.Access {
	if token.IsExported(name) {
		return codegraph.Public
	}
	return codegraph.Private
}

// docComment copies Go comment decorations onto a C++ comment.
func docComment(target *codegraph.Comment, decs dst.Decorations) {
	var lines []string
	for _, d := range decs.All() {
		switch {
		case strings.HasPrefix(d, "//"):
			lines = append(lines, strings.TrimPrefix(d, "//"))
		case strings.HasPrefix(d, "/*"):
			body := strings.TrimSuffix(strings.TrimPrefix(d, "/*"), "*/")
			lines = append(lines, strings.Split(body, "\n")...)
		}
	}
	if len(lines) == 0 {
		return
	}
	annotate(target, codegraph.NewComment(strings.Join(lines, "\n")))
}

// annotate appends c to target on a new line.
func annotate(target, c *codegraph.Comment) {
	if c == nil || c.Empty() {
		return
	}
	text := c.Text()
	if !target.Empty() {
		text = target.Text() + "\n" + text
	}
	target.SetText(text).SetMultiline(true)
}

// unparen drops every parenthesis from a type expression.
func unparen(expr dst.Expr) dst.Expr {
	if expr == nil {
		return nil
	}
	return dstutil.Apply(expr, nil, func(c *dstutil.Cursor) bool {
		if p, ok := c.Node().(*dst.ParenExpr); ok {
			c.Replace(p.X)
		}
		return true
	}).(dst.Expr)
}
