package codegraph

import (
	"slices"
	"strings"

	"github.com/cockroachdb/errors"
)

// Function is a namespace scope function.
type Function struct {
	callable
}

func NewFunction(name string) *Function {
	return &Function{callable: newCallable(name)}
}

func (f *Function) Kind() Kind { return KindFunction }

// Render writes the full definition.
func (f *Function) Render(rc *RenderContext, out *Sink, indent int) error {
	return f.renderFree(rc, out, indent, f.name, true, false)
}

// RenderDeclaration writes the prototype.
func (f *Function) RenderDeclaration(rc *RenderContext, out *Sink, indent int) error {
	return f.renderFree(rc, out, indent, f.name, true, true)
}

func (f *Function) RenderSplit(rc *RenderContext, decl, def *Sink, declIndent, defIndent int) error {
	return f.renderFreeSplit(rc, decl, def, declIndent, defIndent, f.name)
}

func (f *Function) Clone() *Function {
	if f == nil {
		return nil
	}
	return &Function{callable: f.callable.clone()}
}

func (f *Function) Duplicate() Node         { return f.Clone() }
func (f *Function) Assign(other Node) error { return assign(f, other) }

// OperatorKind classifies an overloaded operator by arity.
type OperatorKind int

const (
	UnaryOperator OperatorKind = iota
	BinaryOperator
	CallOperator
	ConversionOperator
)

func (k OperatorKind) String() string {
	switch k {
	case UnaryOperator:
		return "unary"
	case BinaryOperator:
		return "binary"
	case CallOperator:
		return "call"
	case ConversionOperator:
		return "conversion"
	}
	return "unknown"
}

var overloadableSymbols = []string{
	"+", "-", "*", "/", "%", "^", "&", "|", "~", "!", "=", "<", ">", "+=", "-=", "*=", "/=", "%=",
	"^=", "&=", "|=", "<<", ">>", ">>=", "<<=", "==", "!=", "<=", ">=", "&&", "||", "++", "--", ",",
	"->*", "->", "[]", "new", "delete", "new[]", "delete[]",
}

// normalizeOperator trims the symbol and maps alternate keywords to symbols.
func normalizeOperator(kind OperatorKind, symbol string) (string, error) {
	if kind == CallOperator || kind == ConversionOperator {
		return "", errors.Wrapf(ErrInvalidArgument, "%s operators cannot be modeled", kind)
	}
	s := strings.Join(strings.Fields(symbol), "")
	if sym, ok := alternateTokens[s]; ok {
		s = sym
	}
	if !slices.Contains(overloadableSymbols, s) {
		return "", errors.Wrapf(ErrInvalidArgument, "%q is not an overloadable operator", symbol)
	}
	return s, nil
}

func checkArity(kind OperatorKind, params int) error {
	switch {
	case kind == UnaryOperator && params > 1:
		return errors.Wrapf(ErrInvalidArgument, "unary operator takes at most 1 parameter, got %d", params)
	case kind == BinaryOperator && params > 2:
		return errors.Wrapf(ErrInvalidArgument, "binary operator takes at most 2 parameters, got %d", params)
	case kind == CallOperator || kind == ConversionOperator:
		return errors.Wrapf(ErrInvalidArgument, "%s operators cannot be modeled", kind)
	}
	return nil
}

func operatorName(symbol string) string {
	return "operator " + symbol + " "
}

// Operator is a namespace scope operator overload.
type Operator struct {
	callable
	kind   OperatorKind
	symbol string
}

func NewOperator(kind OperatorKind, symbol string) (*Operator, error) {
	s, err := normalizeOperator(kind, symbol)
	if err != nil {
		return nil, err
	}
	return &Operator{callable: newCallable(operatorName(s)), kind: kind, symbol: s}, nil
}

func (o *Operator) OperatorKind() OperatorKind { return o.kind }
func (o *Operator) Symbol() string             { return o.symbol }
func (o *Operator) Name() string               { return operatorName(o.symbol) }
func (o *Operator) Kind() Kind                 { return KindOperator }

// AddParameter rejects parameters beyond the operator's arity.
func (o *Operator) AddParameter(p *VariableDeclaration) error {
	if err := checkArity(o.kind, o.params.Len()+1); err != nil {
		return err
	}
	o.params.Add(p)
	return nil
}

func (o *Operator) Render(rc *RenderContext, out *Sink, indent int) error {
	return o.renderFree(rc, out, indent, o.Name(), true, false)
}

func (o *Operator) RenderSplit(rc *RenderContext, decl, def *Sink, declIndent, defIndent int) error {
	return o.renderFreeSplit(rc, decl, def, declIndent, defIndent, o.Name())
}

func (o *Operator) Clone() *Operator {
	if o == nil {
		return nil
	}
	return &Operator{callable: o.callable.clone(), kind: o.kind, symbol: o.symbol}
}

func (o *Operator) Duplicate() Node         { return o.Clone() }
func (o *Operator) Assign(other Node) error { return assign(o, other) }
