package codegraph

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runMember(pure, forceBody bool) *UserDefinedType {
	a := NewClass("A")
	run := NewMemberFunction("run")
	run.SetPure(pure)
	run.SetForceBody(forceBody)
	a.AddFunction(run, Public)
	return a
}

func nestedDerived(name string) *UserDefinedType {
	base := NewClass(name)
	derived := NewClass("Derived")
	derived.AddBase(NewBaseType(base, Public))
	base.AddType(derived, Public)
	return base
}

func boxTemplate() *UserDefinedType {
	box := NewClass("Box")
	box.AddTemplateParameter(NewTemplateParameter("T"))
	get := NewMemberFunction("get")
	get.SetReturns(NewTemplateParameter("T"))
	get.AddStatement(NewReturn(prim("value_")))
	box.AddFunction(get, Public)
	box.AddVariable(NewVariable(NewTemplateParameter("T"), "value_"), Private)
	return box
}

func TestRenderComposite(t *testing.T) {
	tests := []struct {
		name string
		node func() Node
		want string
	}{
		{
			name: "pure virtual member",
			node: func() Node { return runMember(true, false) },
			want: "class A\n{\npublic:\n\tvirtual void run( ) = 0;\n};\n",
		},
		{
			name: "pure virtual member with forced body",
			node: func() Node { return runMember(true, true) },
			want: "class A\n{\npublic:\n\tvirtual void run( ) = 0;\n};\nvoid A::run( )\n{\n}\n",
		},
		{
			name: "nested type deriving from its enclosing type",
			node: func() Node { return nestedDerived("Base") },
			want: "class Base\n{\npublic:\n\tclass Derived;\n\n};\nclass Base::Derived : public Base\n{\n};\n",
		},
		{
			name: "nested type that is not inline",
			node: func() Node {
				outer := NewClass("Outer")
				outer.AddType(NewClass("Inner"), Public)
				return outer
			},
			want: "class Outer\n{\npublic:\n\tclass Inner;\n\n};\nclass Outer::Inner\n{\n};\n",
		},
		{
			name: "inline nested type",
			node: func() Node {
				outer := NewClass("Outer")
				outer.AddType(NewClass("Inner").SetInline(true), Public)
				return outer
			},
			want: "class Outer\n{\npublic:\n\tclass Inner;\n\npublic:\n\tclass Inner\n\t{\n\t};\n};\n",
		},
		{
			name: "groups in public protected private order",
			node: func() Node {
				c := NewClass("C")
				c.AddVariable(NewVariable(intType(), "p"), Private)
				c.AddFunction(NewMemberFunction("f"), Protected)
				c.AddVariable(NewVariable(intType(), "q"), Public)
				return c
			},
			want: "class C\n{\npublic:\n\tint q;\nprotected:\n\tvoid f( );\nprivate:\n\tint p;\n};\nvoid C::f( )\n{\n}\n",
		},
		{
			name: "inline nested struct",
			node: func() Node {
				outer := NewStruct("Outer")
				inner := NewStruct("Inner").SetInline(true)
				inner.AddVariable(NewVariable(intType(), "x"), AccessDefault)
				outer.AddType(inner, AccessDefault)
				return outer
			},
			want: "struct Outer\n{\npublic:\n\tstruct Inner;\n\npublic:\n\tstruct Inner\n\t{\n\tpublic:\n\t\tint x;\n\t};\n};\n",
		},
		{
			name: "static and mutable data members",
			node: func() Node {
				s := NewStruct("S")
				limit := NewVariable(intType(), "limit").Init(prim("10"))
				limit.Specifier().SetStatic(true).SetConst(true)
				s.AddVariable(limit, Public)
				count := NewVariable(intType(), "count").Init(prim("0"))
				count.Specifier().SetStatic(true)
				s.AddVariable(count, Public)
				s.AddVariable(NewVariable(NewNamedType("std::string"), "name_"), Public).Mutable = true
				return s
			},
			want: "struct S\n{\npublic:\n\tstatic const int limit = 10;\n\tstatic int count;\n\tmutable std::string name_;\n};\nint S::count = 0;\n",
		},
		{
			name: "constructor and destructor",
			node: func() Node {
				p := NewClass("Point")
				ctor := NewConstructor()
				mustOK(ctor.AddParameter(NewVariable(intType(), "x")))
				ctor.AddInitializer(NewMemberInitializer("x_", prim("x")))
				p.AddConstructor(ctor, Public)
				p.SetDestructor(NewDestructor().SetVirtual(true), Public)
				p.AddVariable(NewVariable(intType(), "x_"), AccessDefault)
				return p
			},
			want: "class Point\n{\npublic:\n\tPoint( int x );\n\tvirtual ~Point( );\nprivate:\n\tint x_;\n};\nPoint::Point( int x )\n\t: x_( x )\n{\n}\nPoint::~Point( )\n{\n}\n",
		},
		{
			name: "abstract interface",
			node: func() Node { return NewClass("I").SetAbstract(true) },
			want: "class I\n{\npublic:\n\tvirtual ~I( ) = 0;\n};\n",
		},
		{
			name: "class template with inline members",
			node: func() Node { return boxTemplate() },
			want: "template< typename T > class Box\n{\npublic:\n\tT get( )\n\t{\n\t\treturn value_;\n\t}\nprivate:\n\tT value_;\n};\n",
		},
		{
			name: "named union",
			node: func() Node {
				u := NewUnion("Value")
				u.AddVariable(NewVariable(intType(), "i"), AccessDefault)
				u.AddVariable(NewVariable(MustBasicType("float"), "f"), AccessDefault)
				return u
			},
			want: "union Value\n{\npublic:\n\tint i;\n\tfloat f;\n};\n",
		},
		{
			name: "anonymous union member",
			node: func() Node {
				v := NewStruct("Var")
				u := NewUnion("")
				u.AddVariable(NewVariable(intType(), "i"), AccessDefault)
				v.AddUnion(u, AccessDefault)
				return v
			},
			want: "struct Var\n{\npublic:\n\tunion\n\t{\n\tpublic:\n\t\tint i;\n\t};\n};\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := renderText(t, tt.node())
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Render() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCompositeRendersAreRepeatable(t *testing.T) {
	base := nestedDerived("Base")
	first := renderText(t, base)
	assert.Equal(t, first, renderText(t, base))

	decl, def := renderSplitText(t, base)
	decl2, def2 := renderSplitText(t, base)
	assert.Equal(t, decl, decl2)
	assert.Equal(t, def, def2)
}

func TestOutOfClassTemplates(t *testing.T) {
	tests := []struct {
		name       string
		caps       Capability
		wantInside string
		wantAfter  string
	}{
		{
			name:       "out of class definition",
			caps:       OutofClassTemplates,
			wantInside: "\tT get( );\n",
			wantAfter:  "};\ntemplate< typename T > T Box< T >::get( )\n{\n\treturn value_;\n}\n",
		},
		{
			name:       "exported out of class definition",
			caps:       OutofClassTemplates | ExportKeyword,
			wantInside: "\tT get( );\n",
			wantAfter:  "};\nexport template< typename T > T Box< T >::get( )\n{\n\treturn value_;\n}\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withCapabilities(t, tt.caps)
			got := renderText(t, boxTemplate())
			assert.Contains(t, got, tt.wantInside)
			assert.True(t, strings.HasSuffix(got, tt.wantAfter), got)
		})
	}
}

func TestMemberOfNestedTemplate(t *testing.T) {
	build := func() *UserDefinedType {
		outer := NewClass("Outer")
		outer.AddTemplateParameter(NewTemplateParameter("T"))
		inner := NewStruct("Inner").SetInline(true)
		inner.AddFunction(NewMemberFunction("f"), AccessDefault)
		outer.AddType(inner, Public)
		return outer
	}

	withCapabilities(t, OutofClassTemplates)
	assert.Equal(t,
		"template< typename T > class Outer\n{\npublic:\n\tstruct Inner;\n\npublic:\n\tstruct Inner\n\t{\n\tpublic:\n\t\tvoid f( );\n\t};\n};\ntemplate< typename T > void Outer< T >::Inner::f( )\n{\n}\n",
		renderText(t, build()))

	SetCapabilities(DefaultCapabilities)
	got := renderText(t, build())
	assert.Contains(t, got, "\t\tvoid f( )\n\t\t{\n\t\t}\n")
	assert.True(t, strings.HasSuffix(got, "\t};\n};\n"), got)
}

func TestRenderSplitComposite(t *testing.T) {
	a := NewClass("A")
	a.AddFunction(NewMemberFunction("f"), Public)

	decl, def := renderSplitText(t, a)
	assert.Equal(t, "class A\n{\npublic:\n\tvoid f( );\n};\n", decl)
	assert.Equal(t, "void A::f( )\n{\n}\n", def)

	decl, def = renderSplitText(t, NewNamespace("geo", a))
	assert.Equal(t, "namespace geo\n{\n\tclass A\n\t{\n\tpublic:\n\t\tvoid f( );\n\t};\n}\n", decl)
	assert.Equal(t, "namespace geo\n{\n\tvoid A::f( )\n\t{\n\t}\n}\n", def)
}

func TestSealed(t *testing.T) {
	c := NewClass("Final")
	first := c.AddConstructor(NewConstructor(), Public)
	c.SetSealed(true)
	assert.True(t, c.Sealed())
	assert.Equal(t, Private, first.Access)

	second := c.AddConstructor(NewConstructor(), Public)
	assert.Equal(t, Private, second.Access)

	c.SetSealed(false)
	for _, m := range c.Constructors().All() {
		assert.Equal(t, Public, m.Access)
	}
}

func TestAbstract(t *testing.T) {
	c := NewClass("I")
	assert.False(t, c.Abstract())
	c.SetAbstract(true)
	require.NotNil(t, c.Destructor())
	assert.True(t, c.Abstract())
	assert.True(t, c.Destructor().Virtual())

	c.SetAbstract(false)
	assert.False(t, c.Abstract())
	assert.True(t, c.Destructor().Virtual())
}

func TestAnonymousUnionRejectsFunctions(t *testing.T) {
	u := NewUnion("")
	_, err := u.AddFunction(NewMemberFunction("f"), Public)
	assert.ErrorIs(t, err, ErrNotSupported)
	_, err = u.Operators()
	assert.ErrorIs(t, err, ErrNotSupported)
	assert.ErrorIs(t, u.AddTemplateParameter(NewTemplateParameter("T")), ErrNotSupported)

	named := NewUnion("U")
	_, err = named.AddFunction(NewMemberFunction("f"), Public)
	assert.NoError(t, err)
}

func TestBaseTypeText(t *testing.T) {
	base := NewClass("Base")
	base.AddTemplateParameter(NewTemplateParameter("T"))
	derived := NewClass("D")
	derived.AddBase(NewBaseType(base, Protected).SetVirtual(true).AddArgument(intType()))
	assert.Equal(t, "class D : protected virtual Base< int >\n{\n};\n", renderText(t, derived))

	_, err := RenderString(NewBaseType(nil, Public))
	assert.ErrorIs(t, err, ErrNullReference)
}

func TestCloneRebindsNestedBases(t *testing.T) {
	base := nestedDerived("Base")
	clone := base.Clone()
	clone.SetName("Copy")

	assert.Equal(t,
		"class Copy\n{\npublic:\n\tclass Derived;\n\n};\nclass Copy::Derived : public Copy\n{\n};\n",
		renderText(t, clone))
	assert.Equal(t,
		"class Base\n{\npublic:\n\tclass Derived;\n\n};\nclass Base::Derived : public Base\n{\n};\n",
		renderText(t, base))

	target := NewClass("X")
	require.NoError(t, target.Assign(base))
	target.SetName("Y")
	assert.Contains(t, renderText(t, target), "class Y::Derived : public Y\n")
	assert.Contains(t, renderText(t, base), "class Base::Derived : public Base\n")
}
