package codegraph

import (
	"github.com/cockroachdb/errors"
)

// FunctionPointerType is a pointer to functions with the signature of a
// referenced function: ret ( *name )( params ). The function is not owned.
type FunctionPointerType struct {
	name     string
	function *Function
}

func NewFunctionPointerType(name string, f *Function) *FunctionPointerType {
	return &FunctionPointerType{name: name, function: f}
}

func (p *FunctionPointerType) Name() string        { return p.name }
func (p *FunctionPointerType) Function() *Function { return p.function }
func (p *FunctionPointerType) Kind() Kind          { return KindFunctionPointerType }

func (p *FunctionPointerType) declare(rc *RenderContext, name string) (string, error) {
	if p.function == nil {
		return "", errors.Wrapf(ErrNullReference, "function pointer %s has no signature", p.name)
	}
	return pointerSignature(rc, &p.function.callable, "*"+name, "")
}

func (p *FunctionPointerType) Render(rc *RenderContext, out *Sink, indent int) error {
	s, err := p.declare(rc, p.name)
	if err != nil {
		return err
	}
	out.WriteString(rc.tabs(indent) + s)
	return out.Err()
}

func (p *FunctionPointerType) Clone() *FunctionPointerType {
	if p == nil {
		return nil
	}
	clone := *p
	return &clone
}

func (p *FunctionPointerType) Duplicate() Node         { return p.Clone() }
func (p *FunctionPointerType) Assign(other Node) error { return assign(p, other) }

// MemberFunctionPointerType points to member functions of a class with the
// signature of a referenced member function: ret ( Owner::*name )( params ).
type MemberFunctionPointerType struct {
	name     string
	function *MemberFunction
	owner    NestableType
}

// NewMemberFunctionPointerType uses the function's enclosing type as owner
// unless owner is given.
func NewMemberFunctionPointerType(name string, f *MemberFunction, owner NestableType) *MemberFunctionPointerType {
	return &MemberFunctionPointerType{name: name, function: f, owner: owner}
}

func (p *MemberFunctionPointerType) Name() string              { return p.name }
func (p *MemberFunctionPointerType) Function() *MemberFunction { return p.function }
func (p *MemberFunctionPointerType) Kind() Kind                { return KindMemberFunctionPointerType }

func (p *MemberFunctionPointerType) declare(rc *RenderContext, name string) (string, error) {
	if p.function == nil {
		return "", errors.Wrapf(ErrNullReference, "member function pointer %s has no signature", p.name)
	}
	owner := p.owner
	if isNil(owner) {
		owner = p.function.enclosing
	}
	if isNil(owner) {
		return "", errors.Wrapf(ErrNullReference, "member function pointer %s has no class", p.name)
	}
	q, err := qualifiedName(rc, owner)
	if err != nil {
		return "", err
	}
	return pointerSignature(rc, &p.function.callable, q+"::*"+name, p.function.qualifiers())
}

func (p *MemberFunctionPointerType) Render(rc *RenderContext, out *Sink, indent int) error {
	s, err := p.declare(rc, p.name)
	if err != nil {
		return err
	}
	out.WriteString(rc.tabs(indent) + s)
	return out.Err()
}

func (p *MemberFunctionPointerType) Clone() *MemberFunctionPointerType {
	if p == nil {
		return nil
	}
	clone := *p
	return &clone
}

func (p *MemberFunctionPointerType) Duplicate() Node         { return p.Clone() }
func (p *MemberFunctionPointerType) Assign(other Node) error { return assign(p, other) }

// PointerToMemberType points to data members of type t in owner: T Owner::*name.
type PointerToMemberType struct {
	name  string
	owner NestableType
	typ   Type
}

func NewPointerToMemberType(name string, owner NestableType, t Type) *PointerToMemberType {
	return &PointerToMemberType{name: name, owner: owner, typ: t}
}

func (p *PointerToMemberType) Name() string        { return p.name }
func (p *PointerToMemberType) Owner() NestableType { return p.owner }
func (p *PointerToMemberType) Type() Type          { return p.typ }
func (p *PointerToMemberType) Kind() Kind          { return KindPointerToMemberType }

func (p *PointerToMemberType) declare(rc *RenderContext, name string) (string, error) {
	if isNil(p.owner) || isNil(p.typ) {
		return "", errors.Wrapf(ErrNullReference, "pointer to member %s needs a class and a type", p.name)
	}
	t, err := typeName(rc, p.typ)
	if err != nil {
		return "", err
	}
	q, err := qualifiedName(rc, p.owner)
	if err != nil {
		return "", err
	}
	return t + " " + q + "::*" + name, nil
}

func (p *PointerToMemberType) Render(rc *RenderContext, out *Sink, indent int) error {
	s, err := p.declare(rc, p.name)
	if err != nil {
		return err
	}
	out.WriteString(rc.tabs(indent) + s)
	return out.Err()
}

func (p *PointerToMemberType) Clone() *PointerToMemberType {
	if p == nil {
		return nil
	}
	clone := *p
	return &clone
}

func (p *PointerToMemberType) Duplicate() Node         { return p.Clone() }
func (p *PointerToMemberType) Assign(other Node) error { return assign(p, other) }

// pointerSignature spells ret ( declarator )( params ) followed by the
// qualifier suffix.
func pointerSignature(rc *RenderContext, c *callable, declarator, suffix string) (string, error) {
	ret, err := c.returnText(rc)
	if err != nil {
		return "", err
	}
	params, err := c.parameterList(rc, false)
	if err != nil {
		return "", err
	}
	return ret + "( " + declarator + " )" + params + suffix, nil
}
