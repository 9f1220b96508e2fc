package util

import (
	"go/token"
	"strconv"
	"strings"

	"github.com/dave/dst"
	"github.com/dave/dst/decorator"
)

// goToCpp maps predeclared Go types to C++ spellings.
var goToCpp = map[string]string{
	"bool":       "bool",
	"byte":       "unsigned char",
	"complex64":  "std::complex< float >",
	"complex128": "std::complex< double >",
	"error":      "std::error_code",
	"float32":    "float",
	"float64":    "double",
	"int":        "int",
	"int8":       "signed char",
	"int16":      "short",
	"int32":      "int",
	"int64":      "long long",
	"rune":       "int",
	"string":     "std::string",
	"uint":       "unsigned int",
	"uint8":      "unsigned char",
	"uint16":     "unsigned short",
	"uint32":     "unsigned int",
	"uint64":     "unsigned long long",
	"uintptr":    "unsigned long",
	"any":        "std::any",
}

// CppType spells a Go type expression as a C++ type. Pointers are returned as
// an indirection count so the caller can put them on the declarator. ok is
// false for types with no C++ counterpart (channels, function types, inline
// structs); the spelling is then a best effort.
func CppType(expr dst.Expr) (name string, pointers int, ok bool) {
	for {
		star, isStar := expr.(*dst.StarExpr)
		if !isStar {
			break
		}
		pointers++
		expr = star.X
	}
	name, ok = spell(expr)
	return name, pointers, ok
}

func spell(expr dst.Expr) (string, bool) {
	switch v := expr.(type) {
	case *dst.Ident:
		if cpp, known := goToCpp[v.Name]; known {
			return cpp, true
		}
		if v.Path != "" {
			return namespaceOf(v.Path) + "::" + v.Name, true
		}
		return v.Name, true
	case *dst.SelectorExpr:
		if x, isIdent := v.X.(*dst.Ident); isIdent {
			return x.Name + "::" + v.Sel.Name, true
		}
	case *dst.StarExpr:
		inner, ok := spell(v.X)
		return inner + " *", ok
	case *dst.ArrayType:
		elem, ok := spell(v.Elt)
		if v.Len == nil {
			return "std::vector< " + elem + " >", ok
		}
		if lit, isLit := v.Len.(*dst.BasicLit); isLit && lit.Kind == token.INT {
			return "std::array< " + elem + " , " + lit.Value + " >", ok
		}
		return "std::vector< " + elem + " >", false
	case *dst.MapType:
		key, keyOK := spell(v.Key)
		value, valueOK := spell(v.Value)
		return "std::map< " + key + " , " + value + " >", keyOK && valueOK
	case *dst.InterfaceType:
		if v.Methods == nil || len(v.Methods.List) == 0 {
			return "std::any", true
		}
	case *dst.Ellipsis:
		elem, ok := spell(v.Elt)
		return "std::vector< " + elem + " >", ok
	case *dst.IndexExpr:
		base, baseOK := spell(v.X)
		arg, argOK := spell(v.Index)
		return base + "< " + arg + " >", baseOK && argOK
	case *dst.IndexListExpr:
		base, ok := spell(v.X)
		args := make([]string, len(v.Indices))
		for i, index := range v.Indices {
			var argOK bool
			args[i], argOK = spell(index)
			ok = ok && argOK
		}
		return base + "< " + strings.Join(args, " , ") + " >", ok
	}
	return "void *", false
}

// namespaceOf turns an import path into the C++ namespace of the package.
func namespaceOf(path string) string {
	if i := strings.LastIndex(path, "/"); i >= 0 {
		path = path[i+1:]
	}
	return strings.NewReplacer("-", "_", ".", "_").Replace(path)
}

// Position returns the source position of a dst node, or nil when pkg has no
// mapping for it.
func Position(node dst.Node, pkg *decorator.Package) *token.Position {
	if node == nil || pkg == nil || pkg.Decorator == nil {
		return nil
	}

	astNode := pkg.Decorator.Ast.Nodes[node]
	if astNode == nil {
		return nil
	}

	pos := pkg.Fset.Position(astNode.Pos())
	return &pos
}

// Literal returns the source text of a basic literal, negated literals
// included, or false for anything more complex. Raw strings are requoted.
func Literal(expr dst.Expr) (string, bool) {
	switch v := expr.(type) {
	case *dst.BasicLit:
		switch v.Kind {
		case token.CHAR, token.IMAG:
			return "", false
		case token.STRING:
			if strings.HasPrefix(v.Value, "`") {
				raw, err := strconv.Unquote(v.Value)
				if err != nil {
					return "", false
				}
				return strconv.Quote(raw), true
			}
		}
		return v.Value, true
	case *dst.Ident:
		switch v.Name {
		case "true", "false":
			return v.Name, true
		case "nil":
			return "nullptr", true
		}
	case *dst.UnaryExpr:
		if v.Op == token.SUB {
			if s, ok := Literal(v.X); ok {
				return "-" + s, true
			}
		}
	}
	return "", false
}
