package codegraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderExpressions(t *testing.T) {
	x := NewVariable(intType(), "x")
	tests := []struct {
		name string
		caps Capability
		expr func() Expression
		want string
	}{
		{name: "binary", expr: func() Expression { return must(NewBinary(prim("a"), "+", prim("b"))) }, want: "a + b"},
		{name: "subscript", expr: func() Expression { return must(NewBinary(prim("a"), "[]", prim("i"))) }, want: "a [ i ]"},
		{name: "alternate token as symbol", expr: func() Expression { return must(NewBinary(prim("a"), "and", prim("b"))) }, want: "a && b"},
		{
			name: "alternate token as keyword",
			caps: DefaultCapabilities | AlternateKeywords,
			expr: func() Expression { return must(NewBinary(prim("a"), "and", prim("b"))) },
			want: "a and b",
		},
		{name: "prefix", expr: func() Expression { return must(NewPrefix("++", prim("i"))) }, want: "++i"},
		{name: "sizeof", expr: func() Expression { return must(NewPrefix("sizeof", prim("int"))) }, want: "sizeof( int )"},
		{name: "compl as symbol", expr: func() Expression { return must(NewPrefix("compl", prim("m"))) }, want: "~m"},
		{
			name: "not as keyword",
			caps: AlternateKeywords,
			expr: func() Expression { return must(NewPrefix("not", prim("ok"))) },
			want: "not ok",
		},
		{name: "postfix", expr: func() Expression { return must(NewPostfix(prim("i"), "--")) }, want: "i--"},
		{name: "static cast", expr: func() Expression { return must(NewCast(StaticCast, intType(), prim("d"))) }, want: "static_cast< int >( d )"},
		{
			name: "c style pointer cast",
			expr: func() Expression { return must(NewCast(CStyleCast, intType(), prim("p"))).SetIndirectionLevel(1) },
			want: "( int * )p",
		},
		{name: "call", expr: func() Expression { return NewCall("f", prim("a"), prim("b")) }, want: "f( a , b )"},
		{name: "call without arguments", expr: func() Expression { return NewCall("f") }, want: "f( )"},
		{
			name: "call follows callee rename",
			expr: func() Expression {
				f := NewFunction("before")
				c := NewCalleeCall(f)
				f.SetName("after")
				return c
			},
			want: "after( )",
		},
		{name: "member call", expr: func() Expression { return must(NewMemberCall(prim("s"), "size")) }, want: "s.size( )"},
		{name: "arrow call", expr: func() Expression { return must(NewMemberCall(prim("p"), "run")).SetArrow(true) }, want: "p -> run( )"},
		{name: "new with arguments", expr: func() Expression { return NewNew(NewNamedType("Foo"), prim("a")) }, want: "new Foo( a )"},
		{name: "new array", expr: func() Expression { return NewNew(intType()).SetArraySize(prim("n")) }, want: "new int [ n ]"},
		{name: "array delete", expr: func() Expression { return must(NewDelete(prim("p"), true)) }, want: "delete [ ] p"},
		{name: "rethrow", expr: func() Expression { return NewThrow(nil) }, want: "throw"},
		{name: "throw", expr: func() Expression { return NewThrow(NewCall("Error")) }, want: "throw Error( )"},
		{
			name: "conditional",
			expr: func() Expression { return must(NewConditional(prim("a"), prim("b"), prim("c"))) },
			want: "a ? b : c",
		},
		{name: "global scope", expr: func() Expression { return must(NewScopeResolution(nil, prim("x"))) }, want: "::x"},
		{name: "scope", expr: func() Expression { return must(NewScopeResolution(prim("std"), prim("cout"))) }, want: "std::cout"},
		{name: "parenthesized", expr: func() Expression { return must(NewParenthesized(prim("x"))) }, want: "( x )"},
		{name: "variable reference", expr: func() Expression { return NewVariableRef(x) }, want: "x"},
		{name: "argument reference", expr: func() Expression { return NewArgumentRef(x) }, want: "x"},
		{name: "method reference", expr: func() Expression { return NewMethodRef(NewMemberFunction("area")) }, want: "area"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			caps := tt.caps
			if caps == 0 {
				caps = DefaultCapabilities
			}
			withCapabilities(t, caps)
			assert.Equal(t, tt.want, renderText(t, tt.expr()))
		})
	}
}

func TestExpressionErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{name: "unknown binary operator", err: second(NewBinary(prim("a"), "**", prim("b"))), want: ErrInvalidArgument},
		{name: "compl is not binary", err: second(NewBinary(prim("a"), "compl", prim("b"))), want: ErrInvalidArgument},
		{name: "binary without operand", err: second(NewBinary(prim("a"), "+", nil)), want: ErrNullReference},
		{name: "postfix plus", err: second(NewPostfix(prim("a"), "+")), want: ErrInvalidArgument},
		{name: "prefix without operand", err: second(NewPrefix("-", nil)), want: ErrNullReference},
		{name: "cast without type", err: second(NewCast(StaticCast, nil, prim("a"))), want: ErrNullReference},
		{name: "member call without object", err: second(NewMemberCall(nil, "f")), want: ErrNullReference},
		{name: "goto without label", err: second(NewGoto("")), want: ErrInvalidArgument},
		{name: "label without name", err: second(NewLabel("", NewBreak())), want: ErrInvalidArgument},
		{name: "if without condition", err: second(NewIf(nil, nil)), want: ErrNullReference},
		{name: "unbound variable reference", err: second(RenderString(NewVariableRef(nil))), want: ErrNullReference},
		{name: "unbound method reference", err: second(RenderString(NewMethodRef(nil))), want: ErrNullReference},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.err, tt.want)
		})
	}
}

func second[T any](_ T, err error) error { return err }

func TestRenderStatements(t *testing.T) {
	tests := []struct {
		name string
		stmt func() Statement
		want string
	}{
		{
			name: "switch with default",
			stmt: func() Statement {
				return must(NewSwitch(prim("x"), NewCase(prim("1"), NewBreak()), NewDefaultCase(NewBreak())))
			},
			want: "switch( x )\n{\ncase 1:\n\tbreak;\ndefault:\n\tbreak;\n}",
		},
		{
			name: "scoped case",
			stmt: func() Statement {
				return must(NewSwitch(prim("x"), NewCase(prim("1"), NewBreak()).SetScoped(true)))
			},
			want: "switch( x )\n{\ncase 1:\n{\n\tbreak;\n}\n}",
		},
		{
			name: "if else",
			stmt: func() Statement {
				s := must(NewIf(prim("ok"), NewBlock(NewReturn(prim("1")))))
				return s.SetElse(NewBlock(NewReturn(prim("0"))))
			},
			want: "if( ok )\n\treturn 1;\nelse\n\treturn 0;",
		},
		{
			name: "braced if",
			stmt: func() Statement {
				return must(NewIf(prim("ok"), NewBlock(NewReturn(nil)).SetBraced(true)))
			},
			want: "if( ok )\n{\n\treturn;\n}",
		},
		{
			name: "for with declaration",
			stmt: func() Statement {
				i := NewVariable(intType(), "i").Init(prim("0"))
				return NewFor(i, must(NewBinary(prim("i"), "<", prim("n"))), must(NewPostfix(prim("i"), "++")), NewBlock(NewContinue()))
			},
			want: "for( int i = 0 ; i < n ; i++ )\n\tcontinue;",
		},
		{
			name: "endless for",
			stmt: func() Statement { return NewFor(nil, nil, nil, NewBlock(NewBreak())) },
			want: "for(  ;  ;  )\n\tbreak;",
		},
		{
			name: "while",
			stmt: func() Statement { return must(NewWhile(prim("busy"), NewBlock(NewExpressionStatement(NewCall("spin"))))) },
			want: "while( busy )\n\tspin( );",
		},
		{
			name: "do while",
			stmt: func() Statement { return must(NewDoWhile(NewBlock(NewExpressionStatement(NewCall("step"))), prim("more"))) },
			want: "do\n\tstep( );\nwhile( more );",
		},
		{
			name: "label",
			stmt: func() Statement { return must(NewLabel("done", NewReturn(nil))) },
			want: "done: return;",
		},
		{
			name: "goto",
			stmt: func() Statement { return must(NewGoto("done")) },
			want: "goto done;",
		},
		{
			name: "using namespace",
			stmt: func() Statement { return NewUsingNamespace("std") },
			want: "using namespace std;",
		},
		{
			name: "empty statement",
			stmt: func() Statement { return NewExpressionStatement(nil) },
			want: ";",
		},
		{
			name: "try catch",
			stmt: func() Statement {
				e := NewVariable(NewNamedType("std::exception"), "e")
				e.Specifier().SetConst(true)
				e.Declarator().SetReference(true)
				return NewTryCatch(NewBlock(NewExpressionStatement(NewCall("run"))).SetBraced(true), NewCatch(e, nil))
			},
			want: "try\n{\n\trun( );\n}\ncatch( const std::exception &e )\n{\n}",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, renderText(t, tt.stmt()))
		})
	}
}

func TestRenderLambda(t *testing.T) {
	n := NewVariable(intType(), "n")
	l := NewLambda(Capture{Mode: CaptureByReference}, Capture{Variable: n})
	require.NoError(t, l.AddParameter(NewVariable(intType(), "x")))
	l.SetReturns(intType())
	l.AddStatement(NewReturn(must(NewBinary(prim("x"), "+", NewVariableRef(n)))))
	assert.Equal(t, "[ & , n ]( int x ) -> int\n{\n\treturn x + n;\n}", renderText(t, l))

	empty := NewLambda().SetMutable(true)
	assert.Equal(t, "[ ]( ) mutable\n{\n}", renderText(t, empty))

	stmt := NewExpressionStatement(NewCall("each", empty))
	assert.Equal(t, "each( [ ]( ) mutable\n{\n} );", renderText(t, stmt))
}

func TestRenderFunctionPointers(t *testing.T) {
	handler := NewFunction("handle")
	handler.SetReturns(intType())
	require.NoError(t, handler.AddParameter(NewVariable(intType(), "a")))
	fp := NewFunctionPointerType("Handler", handler)

	point := NewClass("Point")
	area := NewMemberFunction("area")
	area.SetReturns(MustBasicType("double"))
	area.SetConst(true)
	point.AddFunction(area, Public)

	tests := []struct {
		name string
		node func() Node
		want string
	}{
		{
			name: "function pointer typedef",
			node: func() Node { return must(NewTypedefinition(fp, "Handler")) },
			want: "typedef int ( *Handler )( int a );",
		},
		{
			name: "function pointer variable",
			node: func() Node { return NewVariable(fp, "cb").Init(prim("nullptr")) },
			want: "int ( *cb )( int a ) = nullptr;",
		},
		{
			name: "pointer to data member",
			node: func() Node { return must(NewTypedefinition(NewPointerToMemberType("Coord", point, intType()), "Coord")) },
			want: "typedef int Point::*Coord;",
		},
		{
			name: "pointer to member function",
			node: func() Node {
				return must(NewTypedefinition(NewMemberFunctionPointerType("AreaFn", area, nil), "AreaFn"))
			},
			want: "typedef double ( Point::*AreaFn )( ) const;",
		},
		{
			name: "one typedef line per synonym",
			node: func() Node { return must(NewTypedefinition(fp, "A", "B")) },
			want: "typedef int ( *A )( int a );\ntypedef int ( *B )( int a );",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, renderText(t, tt.node()))
		})
	}

	_, err := RenderString(NewFunctionPointerType("Broken", nil))
	assert.ErrorIs(t, err, ErrNullReference)
}
