package blueprint

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/newrelic/go-cpp-codegen/codegraph"
)

// builder resolves type names against the types declared so far.
type builder struct {
	types map[string]*codegraph.UserDefinedType
}

// Build creates the compilation unit described by u.
func (u *Unit) Build() (*codegraph.CompilationUnit, error) {
	if strings.TrimSpace(u.Name) == "" {
		return nil, errors.New("blueprint has no name")
	}
	b := &builder{types: map[string]*codegraph.UserDefinedType{}}

	unit := codegraph.NewCompilationUnit(u.Name)
	setComment(unit.Comment(), u.Comment)
	for _, inc := range u.Includes {
		unit.Add(codegraph.NewInclude(includeText(inc)))
	}
	for _, ns := range u.Namespaces {
		n, err := b.namespace(ns)
		if err != nil {
			return nil, errors.Wrapf(err, "namespace %q", ns.Name)
		}
		unit.Add(n)
	}
	return unit, nil
}

// includeText quotes a bare header name.
func includeText(header string) string {
	header = strings.TrimSpace(header)
	if strings.HasPrefix(header, "<") || strings.HasPrefix(header, `"`) {
		return header
	}
	return `"` + header + `"`
}

func setComment(c *codegraph.Comment, text string) {
	if text == "" {
		return
	}
	c.SetText(text).SetMultiline(strings.Contains(text, "\n"))
}

func parseAccess(s string) (codegraph.Access, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return codegraph.AccessDefault, nil
	case "public":
		return codegraph.Public, nil
	case "protected":
		return codegraph.Protected, nil
	case "private":
		return codegraph.Private, nil
	}
	return codegraph.AccessDefault, errors.Newf("unknown access %q", s)
}

func (b *builder) namespace(ns Namespace) (*codegraph.Namespace, error) {
	n := codegraph.NewNamespace(ns.Name)
	setComment(n.Comment(), ns.Comment)

	for _, e := range ns.Enums {
		n.Add(enumeration(e))
	}
	for _, typ := range ns.Types {
		t, err := b.userType(typ, "")
		if err != nil {
			return nil, err
		}
		n.Add(t)
	}
	for _, v := range ns.Variables {
		decl, err := b.variable(v.Name, v.Type, v.Pointer, v.Reference)
		if err != nil {
			return nil, err
		}
		decl.Specifier().SetStatic(v.Static).SetConst(v.Const)
		if v.Init != "" {
			decl.Init(codegraph.NewPrimitive(v.Init))
		}
		setComment(decl.Comment(), v.Comment)
		n.Add(decl)
	}
	for _, f := range ns.Functions {
		fn, err := b.function(f)
		if err != nil {
			return nil, err
		}
		n.Add(fn)
	}
	return n, nil
}

func enumeration(e Enum) *codegraph.Enumeration {
	en := codegraph.NewEnumeration(e.Name)
	setComment(en.Comment(), e.Comment)
	for _, v := range e.Values {
		en.AddEnumerator(codegraph.Enumerator{Name: v.Name, Value: v.Value, Comment: v.Comment})
	}
	return en
}

// userType builds typ and everything nested in it. scope is the qualified name
// of the enclosing type, empty at namespace level.
func (b *builder) userType(typ Type, scope string) (*codegraph.UserDefinedType, error) {
	if typ.Name == "" {
		return nil, errors.New("type has no name")
	}
	qualified := typ.Name
	if scope != "" {
		qualified = scope + "::" + typ.Name
	}

	var t *codegraph.UserDefinedType
	switch strings.ToLower(typ.Kind) {
	case "", "class":
		t = codegraph.NewClass(typ.Name)
	case "struct":
		t = codegraph.NewStruct(typ.Name)
	default:
		return nil, errors.Newf("type %s: unknown kind %q", qualified, typ.Kind)
	}
	if _, dup := b.types[qualified]; dup {
		return nil, errors.Newf("type %s declared twice", qualified)
	}
	b.types[qualified] = t

	setComment(t.Comment(), typ.Comment)
	t.SetInline(typ.Inline)
	for _, p := range typ.Templates {
		t.AddTemplateParameter(codegraph.NewTemplateParameter(p))
	}

	for _, base := range typ.Bases {
		bt, ok := b.types[base.Name]
		if !ok {
			return nil, errors.Newf("type %s: unknown base %s", qualified, base.Name)
		}
		access, err := parseAccess(base.Access)
		if err != nil {
			return nil, errors.Wrapf(err, "type %s: base %s", qualified, base.Name)
		}
		t.AddBase(codegraph.NewBaseType(bt, access).SetVirtual(base.Virtual))
	}

	for _, nested := range typ.Nested {
		n, err := b.userType(nested, qualified)
		if err != nil {
			return nil, err
		}
		access, err := parseAccess(nested.Access)
		if err != nil {
			return nil, errors.Wrapf(err, "type %s", n.Name())
		}
		t.AddType(n, access)
	}

	for _, m := range typ.Members {
		if err := b.member(t, m); err != nil {
			return nil, errors.Wrapf(err, "type %s", qualified)
		}
	}

	if typ.Abstract {
		t.SetAbstract(true)
	}
	if typ.Sealed {
		t.SetSealed(true)
	}
	return t, nil
}

func (b *builder) member(t *codegraph.UserDefinedType, m Member) error {
	access, err := parseAccess(m.Access)
	if err != nil {
		return errors.Wrapf(err, "member %s", m.Name)
	}

	switch strings.ToLower(m.Kind) {
	case "variable":
		v, err := b.variable(m.Name, m.Type, m.Pointer, m.Reference)
		if err != nil {
			return err
		}
		v.Specifier().SetStatic(m.Static).SetConst(m.Const)
		if m.Init != "" {
			v.Init(codegraph.NewPrimitive(m.Init))
		}
		setComment(v.Comment(), m.Comment)
		t.AddVariable(v, access).Mutable = m.Mutable

	case "function":
		f := codegraph.NewMemberFunction(m.Name)
		for _, p := range m.Templates {
			f.AddTemplateParameter(codegraph.NewTemplateParameter(p))
		}
		if err := b.signature(f, m.Params, m.Returns, m.Pointer, m.Reference); err != nil {
			return errors.Wrapf(err, "member %s", m.Name)
		}
		f.AddStatement(statements(m.Body)...)
		f.SetInline(m.Inline)
		if m.Static {
			f.SetStatic(true)
		}
		if m.Virtual {
			f.SetVirtual(true)
		}
		if m.Const {
			f.SetConst(true)
		}
		if m.Pure {
			f.SetPure(true)
		}
		f.SetForceBody(m.ForceBody)
		setComment(f.Comment(), m.Comment)
		t.AddFunction(f, access)

	case "constructor":
		c := codegraph.NewConstructor().SetExplicit(m.Explicit)
		if err := b.signature(c, m.Params, "", 0, false); err != nil {
			return errors.Wrap(err, "constructor")
		}
		for _, mi := range m.Initializers {
			args := make([]codegraph.Expression, len(mi.Args))
			for i, a := range mi.Args {
				args[i] = codegraph.NewPrimitive(a)
			}
			c.AddInitializer(codegraph.NewMemberInitializer(mi.Name, args...))
		}
		c.AddStatement(statements(m.Body)...)
		c.SetInline(m.Inline)
		setComment(c.Comment(), m.Comment)
		t.AddConstructor(c, access)

	case "destructor":
		d := codegraph.NewDestructor().SetVirtual(m.Virtual).SetPure(m.Pure).SetForceBody(m.ForceBody)
		d.AddStatement(statements(m.Body)...)
		d.SetInline(m.Inline)
		setComment(d.Comment(), m.Comment)
		t.SetDestructor(d, access)

	default:
		return errors.Newf("member %s: unknown kind %q", m.Name, m.Kind)
	}
	return nil
}

func (b *builder) function(f Function) (*codegraph.Function, error) {
	fn := codegraph.NewFunction(f.Name)
	for _, p := range f.Templates {
		fn.AddTemplateParameter(codegraph.NewTemplateParameter(p))
	}
	if err := b.signature(fn, f.Params, f.Returns, f.Pointer, f.Reference); err != nil {
		return nil, errors.Wrapf(err, "function %s", f.Name)
	}
	fn.AddStatement(statements(f.Body)...)
	fn.SetInline(f.Inline)
	setComment(fn.Comment(), f.Comment)
	return fn, nil
}

// signed is the part of every callable a blueprint can describe.
type signed interface {
	AddParameter(p *codegraph.VariableDeclaration) error
	SetReturns(t codegraph.Type) *codegraph.VariableDeclaration
}

func (b *builder) signature(c signed, params []Param, returns string, pointer int, reference bool) error {
	for _, p := range params {
		v, err := b.variable(p.Name, p.Type, p.Pointer, p.Reference)
		if err != nil {
			return err
		}
		v.Specifier().SetConst(p.Const)
		if p.Default != "" {
			v.Init(codegraph.NewPrimitive(p.Default))
		}
		if err := c.AddParameter(v); err != nil {
			return err
		}
	}

	returns = strings.TrimSpace(returns)
	if returns == "" || (returns == "void" && pointer == 0) {
		return nil
	}
	c.SetReturns(b.typeOf(returns)).Declarator().SetIndirectionLevel(pointer).SetReference(reference)
	return nil
}

func (b *builder) variable(name, typ string, pointer int, reference bool) (*codegraph.VariableDeclaration, error) {
	if strings.TrimSpace(typ) == "" {
		return nil, errors.Newf("%s has no type", name)
	}
	v := codegraph.NewVariable(b.typeOf(typ), name)
	v.Declarator().SetIndirectionLevel(pointer).SetReference(reference)
	return v, nil
}

// typeOf resolves a spelled type: a basic type, a type declared earlier in the
// blueprint, or a verbatim named type.
func (b *builder) typeOf(name string) codegraph.Type {
	name = strings.TrimSpace(name)
	if codegraph.IsBasicTypeName(name) {
		return codegraph.MustBasicType(name)
	}
	if t, ok := b.types[name]; ok {
		return t
	}
	return codegraph.NewNamedType(name)
}

// statements turns body lines into statements. A trailing semicolon is
// optional; blank lines are dropped.
func statements(lines []string) []codegraph.Statement {
	var out []codegraph.Statement
	for _, line := range lines {
		s := strings.TrimSuffix(strings.TrimSpace(line), ";")
		if s == "" {
			continue
		}
		out = append(out, codegraph.NewExpressionStatement(codegraph.NewCodeSnippet(s)))
	}
	return out
}
