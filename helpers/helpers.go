// Package helpers holds small wrapper types that satisfy the unwrap contract
// of generated accessors. A type takes part in the get_deref kinds by having
// a Deref method returning a pointer to its target, and in the get_as kinds by
// having AsRef, AsDeref or AsDerefMut methods.
package helpers

import "fmt"

// Derefer is a single level of indirection to a T.
type Derefer[T any] interface {
	Deref() *T
}

// Box owns a T through a pointer. The zero Box holds nothing and its Deref
// returns nil.
type Box[T any] struct {
	v *T
}

// NewBox returns a Box holding v.
func NewBox[T any](v T) Box[T] {
	return Box[T]{v: &v}
}

// Deref returns the boxed value.
func (b Box[T]) Deref() *T {
	return b.v
}

func (b Box[T]) String() string {
	if b.v == nil {
		return "Box(nil)"
	}
	return fmt.Sprintf("Box(%v)", *b.v)
}

// Option is a value that may be absent.
type Option[T any] struct {
	v  T
	ok bool
}

// Some returns a present Option.
func Some[T any](v T) Option[T] {
	return Option[T]{v: v, ok: true}
}

// None returns an absent Option.
func None[T any]() Option[T] {
	return Option[T]{}
}

// IsSome reports whether the value is present.
func (o Option[T]) IsSome() bool {
	return o.ok
}

// Get returns the value and whether it is present.
func (o Option[T]) Get() (T, bool) {
	return o.v, o.ok
}

// AsRef returns a pointer to the contained value, or nil.
func (o *Option[T]) AsRef() *T {
	if !o.ok {
		return nil
	}
	return &o.v
}

func (o Option[T]) String() string {
	if !o.ok {
		return "None"
	}
	return fmt.Sprintf("Some(%v)", o.v)
}

// DerefOption is an Option whose value is itself an indirection to a T.
type DerefOption[T any, D Derefer[T]] struct {
	Option[D]
}

// SomeDeref returns a present DerefOption.
func SomeDeref[T any, D Derefer[T]](d D) DerefOption[T, D] {
	return DerefOption[T, D]{Option: Some(d)}
}

// AsDeref returns the target of the contained indirection, or nil.
func (o *DerefOption[T, D]) AsDeref() *T {
	if !o.ok {
		return nil
	}
	return o.v.Deref()
}

// AsDerefMut is AsDeref for callers that modify the target.
func (o *DerefOption[T, D]) AsDerefMut() *T {
	return o.AsDeref()
}
