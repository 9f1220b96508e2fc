package importer

import (
	"testing"

	"github.com/dave/dst"
	"github.com/dave/dst/decorator"
	"github.com/newrelic/go-cpp-codegen/codegraph"
	"github.com/newrelic/go-cpp-codegen/importer/facts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const shapes = `package geo

// Shape is anything with an area.
type Shape interface {
	Area() float64
}

type Circle struct {
	Shape
	Radius float64
	name   string
}

func (c Circle) Area() float64 {
	return 3.14 * c.Radius * c.Radius
}

func (c *Circle) Grow(by float64) {
	c.Radius += by
}

func Scale(c *Circle, by float64) {
	c.Radius *= by
}
`

func parse(t *testing.T, sources ...string) []*dst.File {
	t.Helper()
	files := make([]*dst.File, len(sources))
	for i, src := range sources {
		f, err := decorator.Parse(src)
		require.NoError(t, err)
		files[i] = f
	}
	return files
}

func importString(t *testing.T, namespace string, sources ...string) (*codegraph.CompilationUnit, string) {
	t.Helper()
	unit, err := New(namespace).Files("geo", nil, parse(t, sources...)...)
	require.NoError(t, err)
	text, err := codegraph.RenderString(unit)
	require.NoError(t, err)
	return unit, text
}

func namespaceOf(t *testing.T, unit *codegraph.CompilationUnit) *codegraph.Namespace {
	t.Helper()
	children := unit.Children()
	require.Positive(t, children.Len())
	ns, ok := children.At(children.Len() - 1).(*codegraph.Namespace)
	require.True(t, ok, "last child of the unit is not a namespace")
	return ns
}

func typeNamed(ns *codegraph.Namespace, name string) *codegraph.UserDefinedType {
	for _, child := range ns.Children().All() {
		if t, ok := child.(*codegraph.UserDefinedType); ok && t.Name() == name {
			return t
		}
	}
	return nil
}

func TestImportShapes(t *testing.T) {
	unit, text := importString(t, "", shapes)

	assert.Equal(t, "geo", unit.Name())
	ns := namespaceOf(t, unit)
	assert.Equal(t, "geo", ns.Name())

	shape := typeNamed(ns, "Shape")
	require.NotNil(t, shape)
	assert.True(t, shape.IsClass())
	assert.True(t, shape.Abstract())

	circle := typeNamed(ns, "Circle")
	require.NotNil(t, circle)
	assert.False(t, circle.IsClass())
	require.Equal(t, 1, circle.Bases().Len())
	assert.Same(t, shape, circle.Bases().At(0).Type())
	assert.Equal(t, 2, circle.Variables().Len())
	assert.Equal(t, 2, circle.Functions().Len())

	tests := []struct {
		name     string
		fragment string
	}{
		{name: "header for std::string", fragment: "#include <string>\n"},
		{name: "doc comment", fragment: "\t// Shape is anything with an area.\n\tclass Shape\n"},
		{name: "pure virtual interface method", fragment: "\t\tvirtual double Area( ) = 0;\n"},
		{name: "embedded struct is a public base", fragment: "\tstruct Circle : public Shape\n"},
		{name: "exported field", fragment: "\t\tdouble Radius;\n"},
		{name: "unexported field", fragment: "private:\n\t\tstd::string name;\n"},
		{name: "value receiver is const", fragment: "\t\tdouble Area( ) const;\n"},
		{name: "pointer receiver", fragment: "\t\tvoid Grow( double by );\n"},
		{name: "out of line definition", fragment: "double Circle::Area( ) const\n"},
		{name: "free function", fragment: "\tvoid Scale( Circle *c , double by )\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Contains(t, text, tt.fragment)
		})
	}
}

func TestImportShapesSplit(t *testing.T) {
	unit, _ := importString(t, "", shapes)
	decl, def, err := codegraph.RenderSplitString(unit)
	require.NoError(t, err)

	assert.Contains(t, decl, "\t\tdouble Area( ) const;\n")
	assert.NotContains(t, decl, "Circle::Area")
	assert.Contains(t, def, "double Circle::Area( ) const\n")
	assert.Contains(t, def, "void Circle::Grow( double by )\n")
	assert.Contains(t, decl, "\tvoid Scale( Circle *c , double by );\n")
	assert.Contains(t, def, "\tvoid Scale( Circle *c , double by )\n")
}

func TestImportBaseOrder(t *testing.T) {
	src := `package geo

type Square struct {
	Rect
}

type Rect struct {
	W, H int
}
`
	im := New("")
	unit, err := im.Files("geo", nil, parse(t, src)...)
	require.NoError(t, err)
	text, err := codegraph.RenderString(unit)
	require.NoError(t, err)
	ns := namespaceOf(t, unit)

	var names []string
	for _, child := range ns.Children().All() {
		if t, ok := child.(*codegraph.UserDefinedType); ok {
			names = append(names, t.Name())
		}
	}
	assert.Equal(t, []string{"Rect", "Square"}, names)
	assert.Equal(t, []facts.Entry{
		{Name: "Square", Fact: facts.StructType},
		{Name: "Rect", Fact: facts.StructType},
	}, im.Facts())
	assert.Contains(t, text, "\t\tint W;\n\t\tint H;\n")
}

func TestImportDeclarations(t *testing.T) {
	src := `package geo

import "sync"

type Celsius float64

type Box[T any] struct {
	value T
}

type Registry struct {
	sync.Mutex
	events chan int
}

const Limit = 10

var Name = "geo"

var ratio float64 = 0.5

var started = time.Now()

func init() {}

func main() {}

func (c Celsius) String() string { return "" }

func Divide(a, b int) (int, error) { return a / b, nil }

func Max[T any](a, b T) T { return a }

func Apply(f func(int) int, v int) {}
`
	unit, text := importString(t, "", src)

	tests := []struct {
		name     string
		fragment string
	}{
		{name: "alias becomes typedef", fragment: "\ttypedef double Celsius;\n"},
		{name: "generic struct becomes template", fragment: "\ttemplate< typename T > struct Box\n"},
		{name: "template field", fragment: "\t\tT value;\n"},
		{name: "foreign embedded type", fragment: "SCAFFOLD WARN: embedded sync::Mutex is not a base class"},
		{name: "untranslatable field", fragment: "SCAFFOLD WARN: field events has no C++ counterpart"},
		{name: "const inferred from literal", fragment: "\tconst int Limit = 10;\n"},
		{name: "string variable", fragment: "\tstd::string Name = \"geo\";\n"},
		{name: "typed variable", fragment: "\tdouble ratio = 0.5;\n"},
		{name: "uninferable variable", fragment: "\t// SCAFFOLD WARN: cannot infer the type of started\n"},
		{name: "init skipped", fragment: "\t// SCAFFOLD WARN: init function skipped\n\t// package initialization has no C++ counterpart\n"},
		{name: "main returns int", fragment: "\tint main( )\n"},
		{name: "method on alias", fragment: "SCAFFOLD WARN: method Celsius.String skipped"},
		{name: "multiple results", fragment: "\t// SCAFFOLD INFO: 2 results are returned as a std::tuple\n\tstd::tuple< int , std::error_code > Divide( int a , int b )\n"},
		{name: "generic function", fragment: "\ttemplate< typename T > T Max( T a , T b )\n"},
		{name: "function parameter", fragment: "SCAFFOLD WARN: parameter f has no C++ counterpart"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Contains(t, text, tt.fragment)
		})
	}

	var includes []string
	for _, child := range unit.Children().All() {
		if d, ok := child.(*codegraph.PreprocessorDirective); ok {
			includes = append(includes, d.Text())
		}
	}
	assert.Equal(t, []string{"<string>", "<system_error>", "<tuple>"}, includes)
}

func TestImportNamespaceOverride(t *testing.T) {
	unit, text := importString(t, "shapes", shapes)
	assert.Equal(t, "shapes", namespaceOf(t, unit).Name())
	assert.Contains(t, text, "namespace shapes\n{\n")
}

func TestImportErrors(t *testing.T) {
	t.Run("duplicate type across files", func(t *testing.T) {
		files := parse(t, "package geo\ntype Point struct{}\n", "package geo\ntype Point interface{}\n")
		_, err := New("").Files("geo", nil, files...)
		assert.ErrorContains(t, err, "fact already exists: Point")
	})
	t.Run("empty unit name", func(t *testing.T) {
		_, err := New("").Files("", nil, parse(t, shapes)...)
		assert.Error(t, err)
	})
	t.Run("nil package", func(t *testing.T) {
		_, err := New("").Package(nil)
		assert.Error(t, err)
	})
}

func TestImporterIsReusable(t *testing.T) {
	im := New("")
	files := parse(t, shapes)
	_, err := im.Files("geo", nil, files...)
	require.NoError(t, err)

	unit, err := im.Files("geo", nil, parse(t, shapes)...)
	require.NoError(t, err)
	assert.NotNil(t, typeNamed(namespaceOf(t, unit), "Circle"))
}
