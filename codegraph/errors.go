package codegraph

import (
	"reflect"

	"github.com/cockroachdb/errors"
)

// Error kinds. Every error returned by this package wraps exactly one of them;
// match with errors.Is.
var (
	// ErrTypeMismatch is returned by Assign when the source node is of a different concrete kind.
	ErrTypeMismatch = errors.New("type mismatch")
	// ErrInvalidArgument marks construction input outside the modeled grammar.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrNotSupported marks operations that are meaningless for the node's current configuration.
	ErrNotSupported = errors.New("not supported")
	// ErrNullReference marks a required reference that was never supplied.
	ErrNullReference = errors.New("null reference")
)

func isNil(n any) bool {
	if n == nil {
		return true
	}
	v := reflect.ValueOf(n)
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func:
		return v.IsNil()
	}
	return false
}

func kindOf(n Node) string {
	if isNil(n) {
		return "nil"
	}
	return n.Kind().String()
}

// assignable checks that other can be assigned to dst and returns it with its
// concrete type.
func assignable[P Node](dst Node, other Node) (P, error) {
	var zero P
	if isNil(other) {
		return zero, errors.Wrapf(ErrNullReference, "assign %s from nil", dst.Kind())
	}
	src, ok := other.(P)
	if !ok {
		return zero, errors.Wrapf(ErrTypeMismatch, "cannot assign %s to %s", kindOf(other), dst.Kind())
	}
	return src, nil
}

// assign replaces *dst with a deep copy of other after checking that other has
// the same concrete kind.
func assign[E any, P interface {
	*E
	Node
	Clone() P
}](dst P, other Node) error {
	src, err := assignable[P](dst, other)
	if err != nil {
		return err
	}
	*dst = *src.Clone()
	return nil
}
