package codegraph

import (
	"iter"
	"slices"
)

// List is an ordered collection that owns its elements. Clone deep copies every
// element; Purge drops them all.
type List[T Node] struct {
	items []T
}

// Add appends items and takes ownership of them.
func (l *List[T]) Add(items ...T) {
	l.items = append(l.items, items...)
}

func (l *List[T]) Len() int {
	return len(l.items)
}

func (l *List[T]) At(i int) T {
	return l.items[i]
}

func (l *List[T]) All() iter.Seq2[int, T] {
	return slices.All(l.items)
}

// Remove detaches the element at i and hands ownership back to the caller.
func (l *List[T]) Remove(i int) T {
	item := l.items[i]
	l.items = slices.Delete(l.items, i, i+1)
	return item
}

func (l *List[T]) Purge() {
	clear(l.items)
	l.items = nil
}

func (l *List[T]) Slice() []T {
	return l.items
}

func (l List[T]) Clone() List[T] {
	if l.items == nil {
		return List[T]{}
	}
	out := make([]T, len(l.items))
	for i, item := range l.items {
		out[i] = item.Duplicate().(T)
	}
	return List[T]{items: out}
}

// Refs is an ordered collection of references. It never copies or drops the
// referenced nodes.
type Refs[T any] struct {
	items []T
}

func (r *Refs[T]) Add(items ...T) {
	r.items = append(r.items, items...)
}

func (r *Refs[T]) Len() int {
	return len(r.items)
}

func (r *Refs[T]) At(i int) T {
	return r.items[i]
}

func (r *Refs[T]) All() iter.Seq2[int, T] {
	return slices.All(r.items)
}

func (r Refs[T]) Clone() Refs[T] {
	return Refs[T]{items: slices.Clone(r.items)}
}

// Member pairs a node with the access level it was added under.
type Member[T Node] struct {
	Value   T
	Access  Access
	Mutable bool
}

// Members is an owning collection of composite-type members.
type Members[T Node] struct {
	items []*Member[T]
}

func (m *Members[T]) Add(value T, access Access) *Member[T] {
	entry := &Member[T]{Value: value, Access: access}
	m.items = append(m.items, entry)
	return entry
}

func (m *Members[T]) Len() int {
	return len(m.items)
}

func (m *Members[T]) At(i int) *Member[T] {
	return m.items[i]
}

func (m *Members[T]) All() iter.Seq2[int, *Member[T]] {
	return slices.All(m.items)
}

// In yields the members whose access, with Default resolved to fallback, equals
// access. Insertion order is kept.
func (m *Members[T]) In(access, fallback Access) iter.Seq[*Member[T]] {
	return func(yield func(*Member[T]) bool) {
		for _, entry := range m.items {
			if entry.Access.resolve(fallback) != access {
				continue
			}
			if !yield(entry) {
				return
			}
		}
	}
}

func (m *Members[T]) Remove(i int) *Member[T] {
	entry := m.items[i]
	m.items = slices.Delete(m.items, i, i+1)
	return entry
}

func (m *Members[T]) Purge() {
	clear(m.items)
	m.items = nil
}

func (m Members[T]) Clone() Members[T] {
	if m.items == nil {
		return Members[T]{}
	}
	out := make([]*Member[T], len(m.items))
	for i, entry := range m.items {
		out[i] = &Member[T]{
			Value:   entry.Value.Duplicate().(T),
			Access:  entry.Access,
			Mutable: entry.Mutable,
		}
	}
	return Members[T]{items: out}
}
