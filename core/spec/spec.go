package spec

import (
	"fmt"
	"iter"
	"slices"
	"strings"

	"github.com/kilianp07/patterns/core/model"
)

// Specification is a predicate over items of type T.
type Specification[T any] interface {
	IsSatisfied(item T) bool
}

// Func adapts a plain function to the Specification interface.
type Func[T any] func(item T) bool

// IsSatisfied calls f.
func (f Func[T]) IsSatisfied(item T) bool { return f(item) }

type colorSpec struct{ color model.Color }

// ColorIs is satisfied by products of color c.
func ColorIs(c model.Color) Specification[model.Product] { return colorSpec{color: c} }

func (s colorSpec) IsSatisfied(p model.Product) bool { return p.Color() == s.color }
func (s colorSpec) String() string                   { return "color=" + s.color.String() }

type sizeSpec struct{ size model.Size }

// SizeIs is satisfied by products of size sz.
func SizeIs(sz model.Size) Specification[model.Product] { return sizeSpec{size: sz} }

func (s sizeSpec) IsSatisfied(p model.Product) bool { return p.Size() == s.size }
func (s sizeSpec) String() string                   { return "size=" + s.size.String() }

type andSpec[T any] struct{ specs []Specification[T] }

// And is satisfied when every child is. Nested Ands are flattened.
func And[T any](specs ...Specification[T]) Specification[T] {
	return andSpec[T]{specs: flatten(specs, func(s Specification[T]) ([]Specification[T], bool) {
		a, ok := s.(andSpec[T])
		return a.specs, ok
	})}
}

func (s andSpec[T]) IsSatisfied(item T) bool {
	for _, c := range s.specs {
		if !c.IsSatisfied(item) {
			return false
		}
	}
	return true
}

func (s andSpec[T]) String() string { return join(s.specs, " AND ", "TRUE") }

type orSpec[T any] struct{ specs []Specification[T] }

// Or is satisfied when at least one child is. Nested Ors are flattened.
func Or[T any](specs ...Specification[T]) Specification[T] {
	return orSpec[T]{specs: flatten(specs, func(s Specification[T]) ([]Specification[T], bool) {
		o, ok := s.(orSpec[T])
		return o.specs, ok
	})}
}

func (s orSpec[T]) IsSatisfied(item T) bool {
	for _, c := range s.specs {
		if c.IsSatisfied(item) {
			return true
		}
	}
	return false
}

func (s orSpec[T]) String() string { return join(s.specs, " OR ", "FALSE") }

type notSpec[T any] struct{ spec Specification[T] }

// Not negates s.
func Not[T any](s Specification[T]) Specification[T] { return notSpec[T]{spec: s} }

func (s notSpec[T]) IsSatisfied(item T) bool { return !s.spec.IsSatisfied(item) }
func (s notSpec[T]) String() string          { return "NOT " + describe(s.spec) }

// Filter lazily yields the items satisfying s, in input order. The returned
// sequence pulls from items on every traversal.
func Filter[T any](items iter.Seq[T], s Specification[T]) iter.Seq[T] {
	return func(yield func(T) bool) {
		for item := range items {
			if s.IsSatisfied(item) && !yield(item) {
				return
			}
		}
	}
}

// FilterSlice returns the items of the slice satisfying s.
func FilterSlice[T any](items []T, s Specification[T]) []T {
	return slices.Collect(Filter(slices.Values(items), s))
}

// Describe renders s in a human readable form.
func Describe[T any](s Specification[T]) string { return describe(s) }

func describe(s any) string {
	if str, ok := s.(fmt.Stringer); ok {
		return str.String()
	}
	return fmt.Sprintf("%T", s)
}

func flatten[T any](specs []Specification[T], children func(Specification[T]) ([]Specification[T], bool)) []Specification[T] {
	out := make([]Specification[T], 0, len(specs))
	for _, s := range specs {
		if nested, ok := children(s); ok {
			out = append(out, nested...)
			continue
		}
		out = append(out, s)
	}
	return out
}

func join[T any](specs []Specification[T], sep, empty string) string {
	if len(specs) == 0 {
		return empty
	}
	parts := make([]string, len(specs))
	for i, s := range specs {
		parts[i] = describe(s)
	}
	return "(" + strings.Join(parts, sep) + ")"
}
