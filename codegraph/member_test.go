package codegraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemberFlags(t *testing.T) {
	type flags struct {
		virtual, static, constant, volatile, pure bool
		templates                                int
	}
	tests := []struct {
		name  string
		apply func(f *MemberFunction)
		want  flags
	}{
		{
			name:  "static clears virtual and pure",
			apply: func(f *MemberFunction) { f.SetPure(true); f.SetStatic(true) },
			want:  flags{static: true},
		},
		{
			name:  "virtual clears static",
			apply: func(f *MemberFunction) { f.SetStatic(true); f.SetVirtual(true) },
			want:  flags{virtual: true},
		},
		{
			name:  "pure implies virtual",
			apply: func(f *MemberFunction) { f.SetPure(true) },
			want:  flags{virtual: true, pure: true},
		},
		{
			name:  "clearing virtual clears pure",
			apply: func(f *MemberFunction) { f.SetPure(true); f.SetVirtual(false) },
			want:  flags{},
		},
		{
			name:  "const clears static",
			apply: func(f *MemberFunction) { f.SetStatic(true); f.SetConst(true) },
			want:  flags{constant: true},
		},
		{
			name:  "static clears cv-qualifiers",
			apply: func(f *MemberFunction) { f.SetConst(true); f.SetVolatile(true); f.SetStatic(true) },
			want:  flags{static: true},
		},
		{
			name: "virtual drops template parameters",
			apply: func(f *MemberFunction) {
				f.AddTemplateParameter(NewTemplateParameter("T"))
				f.SetVirtual(true)
			},
			want: flags{virtual: true},
		},
		{
			name: "template parameter clears virtual",
			apply: func(f *MemberFunction) {
				f.SetPure(true)
				f.AddTemplateParameter(NewTemplateParameter("T"))
			},
			want: flags{templates: 1},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewMemberFunction("f")
			tt.apply(f)
			got := flags{
				virtual:   f.Virtual(),
				static:    f.Static(),
				constant:  f.Const(),
				volatile:  f.Volatile(),
				pure:      f.Pure(),
				templates: len(f.TemplateParameters()),
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMemberFunctionForms(t *testing.T) {
	c := NewClass("Shape")
	area := NewMemberFunction("area")
	area.SetReturns(MustBasicType("double"))
	area.SetConst(true)
	area.SetVirtual(true)
	area.Comment().SetText("area in square units")
	c.AddFunction(area, Public)

	assert.Equal(t,
		"class Shape\n{\npublic:\n\t/*area in square units*/\n\tvirtual double area( ) const;\n};\ndouble Shape::area( ) const\n{\n}\n",
		renderText(t, c))

	area.SetInline(true)
	assert.Equal(t,
		"class Shape\n{\npublic:\n\t/*area in square units*/\n\tvirtual double area( ) const\n\t{\n\t}\n};\n",
		renderText(t, c))
}

func TestDestructorFlags(t *testing.T) {
	d := NewDestructor().SetPure(true)
	assert.True(t, d.Virtual())
	d.SetVirtual(false)
	assert.False(t, d.Pure())

	assert.ErrorIs(t, d.AddParameter(NewVariable(intType(), "x")), ErrInvalidArgument)
	assert.ErrorIs(t, d.AddTemplateParameter(NewTemplateParameter("T")), ErrInvalidArgument)
	assert.Equal(t, "~", d.Name())

	c := NewClass("Res")
	c.SetDestructor(d, Public)
	assert.Equal(t, "~Res", d.Name())
}

func TestOperatorArity(t *testing.T) {
	tests := []struct {
		name    string
		kind    OperatorKind
		symbol  string
		params  int
		wantErr error
	}{
		{name: "unary member", kind: UnaryOperator, symbol: "!", params: 1},
		{name: "unary with two parameters", kind: UnaryOperator, symbol: "-", params: 2, wantErr: ErrInvalidArgument},
		{name: "binary", kind: BinaryOperator, symbol: "+", params: 2},
		{name: "binary with three parameters", kind: BinaryOperator, symbol: "+", params: 3, wantErr: ErrInvalidArgument},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			op, err := NewOperator(tt.kind, tt.symbol)
			require.NoError(t, err)
			for i := range tt.params {
				err = op.AddParameter(NewVariable(intType(), string(rune('a'+i))))
				if err != nil {
					break
				}
			}
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestOperatorSymbols(t *testing.T) {
	tests := []struct {
		name    string
		kind    OperatorKind
		symbol  string
		want    string
		wantErr error
	}{
		{name: "spaces are dropped", kind: BinaryOperator, symbol: "+ =", want: "operator += "},
		{name: "alternate keyword", kind: BinaryOperator, symbol: "and", want: "operator && "},
		{name: "array new", kind: UnaryOperator, symbol: "new[]", want: "operator new[] "},
		{name: "not overloadable", kind: BinaryOperator, symbol: "?:", wantErr: ErrInvalidArgument},
		{name: "call operator", kind: CallOperator, symbol: "()", wantErr: ErrInvalidArgument},
		{name: "conversion operator", kind: ConversionOperator, symbol: "int", wantErr: ErrInvalidArgument},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			op, err := NewMemberOperator(tt.kind, tt.symbol)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, op.Name())
		})
	}
}

func TestDeclaratorRules(t *testing.T) {
	tests := []struct {
		name  string
		build func() *Declarator
		want  string
	}{
		{name: "plain", build: func() *Declarator { return NewDeclarator("x") }, want: "x"},
		{name: "const without pointer is dropped", build: func() *Declarator { return NewDeclarator("x").SetConst(true) }, want: "x"},
		{
			name:  "const pointer",
			build: func() *Declarator { return NewDeclarator("p").SetIndirectionLevel(2).SetConst(true) },
			want:  "** const p",
		},
		{name: "reference", build: func() *Declarator { return NewDeclarator("r").SetReference(true) }, want: "&r"},
		{
			name:  "array drops reference",
			build: func() *Declarator { return NewDeclarator("a").SetReference(true).AddIndex(4).AddIndex(2) },
			want:  "a [ 4 ][ 2 ]",
		},
		{
			name:  "initializer",
			build: func() *Declarator { return NewDeclarator("n").SetInitializer(prim("3")) },
			want:  "n = 3",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, renderText(t, tt.build()))
		})
	}
}

func TestSpecifierStorage(t *testing.T) {
	v := NewVariable(intType(), "n")
	v.Specifier().SetExtern(true).SetStatic(true)
	assert.True(t, v.Specifier().Static())
	assert.False(t, v.Specifier().Extern())

	v.Specifier().SetConst(true)
	assert.True(t, v.Specifier().Static())
	assert.Equal(t, "static const int n;", renderText(t, v))
}

func TestMemberInsertionOrder(t *testing.T) {
	c := NewStruct("S")
	for _, name := range []string{"c", "a", "b"} {
		c.AddVariable(NewVariable(intType(), name), AccessDefault)
	}
	var names []string
	for _, m := range c.Variables().All() {
		names = append(names, m.Value.Name())
	}
	assert.Equal(t, []string{"c", "a", "b"}, names)
	assert.Equal(t, "struct S\n{\npublic:\n\tint c;\n\tint a;\n\tint b;\n};\n", renderText(t, c))
}
