package util

import (
	"testing"

	"github.com/dave/dst"
	"github.com/dave/dst/decorator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// parseVar parses "var x <typ> = <value>" and returns the type and value
// expressions.
func parseVar(t *testing.T, typ, value string) (dst.Expr, dst.Expr) {
	t.Helper()
	src := "package p\nvar x " + typ
	if value != "" {
		src += " = " + value
	}
	f, err := decorator.Parse(src)
	require.NoError(t, err)
	spec := f.Decls[0].(*dst.GenDecl).Specs[0].(*dst.ValueSpec)
	var v dst.Expr
	if len(spec.Values) > 0 {
		v = spec.Values[0]
	}
	return spec.Type, v
}

func TestCppType(t *testing.T) {
	tests := []struct {
		name     string
		goType   string
		want     string
		pointers int
		ok       bool
	}{
		{name: "int", goType: "int", want: "int", ok: true},
		{name: "string", goType: "string", want: "std::string", ok: true},
		{name: "unsigned", goType: "uint64", want: "unsigned long long", ok: true},
		{name: "pointer", goType: "**float64", want: "double", pointers: 2, ok: true},
		{name: "slice", goType: "[]string", want: "std::vector< std::string >", ok: true},
		{name: "array", goType: "[4]byte", want: "std::array< unsigned char , 4 >", ok: true},
		{name: "map", goType: "map[string]*Node", want: "std::map< std::string , Node * >", ok: true},
		{name: "qualified", goType: "time.Duration", want: "time::Duration", ok: true},
		{name: "empty interface", goType: "interface{}", want: "std::any", ok: true},
		{name: "generic instance", goType: "Pair[int, string]", want: "Pair< int , std::string >", ok: true},
		{name: "channel", goType: "chan int", want: "void *", ok: false},
		{name: "function", goType: "func()", want: "void *", ok: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expr, _ := parseVar(t, tt.goType, "")
			got, pointers, ok := CppType(expr)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.pointers, pointers)
			assert.Equal(t, tt.ok, ok)
		})
	}
}

func TestLiteral(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  string
		ok    bool
	}{
		{name: "integer", value: "42", want: "42", ok: true},
		{name: "negative", value: "-1.5", want: "-1.5", ok: true},
		{name: "string", value: `"hi"`, want: `"hi"`, ok: true},
		{name: "raw string", value: "`a\\b`", want: `"a\\b"`, ok: true},
		{name: "bool", value: "true", want: "true", ok: true},
		{name: "nil", value: "nil", want: "nullptr", ok: true},
		{name: "rune", value: "'a'", ok: false},
		{name: "call", value: "f()", ok: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, v := parseVar(t, "", tt.value)
			got, ok := Literal(v)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.ok, ok)
		})
	}
}

func TestPositionWithoutPackage(t *testing.T) {
	assert.Nil(t, Position(&dst.Ident{Name: "x"}, nil))
	assert.Nil(t, Position(nil, &decorator.Package{}))
}

func TestDebugPrint(t *testing.T) {
	type entry struct {
		Name  string
		Count int
	}
	assert.Equal(t, `util.entry{Name:"x", Count:2}`, DebugPrint(entry{Name: "x", Count: 2}))
}
