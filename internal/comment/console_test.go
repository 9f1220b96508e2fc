package comment

import (
	"go/ast"
	"go/token"
	"testing"

	"github.com/dave/dst"
	"github.com/dave/dst/decorator"
	"github.com/stretchr/testify/assert"
	"golang.org/x/tools/go/packages"
)

// testPackage maps node to an identifier on line 2, column 3 of a file under
// an application directory named app.
func testPackage(node dst.Node) *decorator.Package {
	fset := token.NewFileSet()
	f := fset.AddFile("/home/dev/app/geo/shape.go", -1, 50)
	f.SetLines([]int{0, 10, 20})

	return &decorator.Package{
		Decorator: &decorator.Decorator{
			Map: decorator.Map{
				Ast: decorator.AstMap{
					Nodes: map[dst.Node]ast.Node{
						node: &ast.Ident{Name: "hi", NamePos: f.Pos(12)},
					},
				},
			},
		},
		Package: &packages.Package{
			Fset: fset,
		},
	}
}

func TestAddComment(t *testing.T) {
	node := &dst.Ident{Name: "hi"}
	pkg := testPackage(node)

	testPrinter := &ConsolePrinter{
		appRoot:  "app",
		comments: []string{},
	}

	testPrinter.Add(pkg, node, InfoHeader, "message", "additionalInfo")
	if assert.Len(t, testPrinter.comments, 1) {
		assert.Equal(t, "SCAFFOLD INFO: app/geo/shape.go 2:3 message\n\tadditionalInfo", testPrinter.comments[0])
	}

	testPrinter.Add(nil, node, WarnHeader, "no position")
	assert.Equal(t, "SCAFFOLD WARN: no position", testPrinter.comments[1])
}

func TestGetPosition(t *testing.T) {
	node := &dst.Ident{Name: "hi"}
	tests := []struct {
		name    string
		pkg     *decorator.Package
		appRoot string
		want    string
	}{
		{name: "relative to application root", pkg: testPackage(node), appRoot: "app", want: "app/geo/shape.go 2:3"},
		{name: "root not in path", pkg: testPackage(node), appRoot: "elsewhere", want: "shape.go 2:3"},
		{name: "unmapped node", pkg: testPackage(&dst.Ident{}), appRoot: "app", want: ""},
		{name: "no package", pkg: nil, appRoot: "app", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, getPosition(tt.pkg, node, tt.appRoot))
		})
	}
}

func TestNilPrinter(t *testing.T) {
	var p *ConsolePrinter
	p.Add(nil, nil, InfoHeader, "ignored")
	p.Flush()
}
