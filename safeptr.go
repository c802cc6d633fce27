// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package rtti

import (
	"math"
	"unsafe"

	"fortio.org/safecast"
	"golang.org/x/exp/constraints"
)

// SafePtr is a non-owning *T whose every dereference is checked:
// dereferencing, indexing or moving a nil SafePtr is a contract
// violation rather than a nil-pointer fault somewhere later.
//
// Arithmetic follows C pointer rules over the element size of T. The
// result must stay inside the allocation the pointer was taken from,
// as required by unsafe.Add; [SafePtrOf] is the usual way to obtain a
// pointer into a slice's backing array.
type SafePtr[T any] struct {
	p *T
}

// NewSafePtr wraps p.
func NewSafePtr[T any](p *T) SafePtr[T] { return SafePtr[T]{p: p} }

// SafePtrOf returns a SafePtr to the first element of s, empty when s is.
func SafePtrOf[T any](s []T) SafePtr[T] {
	if len(s) == 0 {
		return SafePtr[T]{}
	}
	return SafePtr[T]{p: &s[0]}
}

// NullAssert reports a contract violation when the pointer is nil.
func (s SafePtr[T]) NullAssert() {
	if s.p == nil {
		halt(nil, "SafePtr", "dereference of nil pointer")
	}
}

// Get returns the raw pointer without checking it.
func (s SafePtr[T]) Get() *T { return s.p }

// Safe returns the raw pointer, which must not be nil.
func (s SafePtr[T]) Safe() *T {
	s.NullAssert()
	return s.p
}

// Load returns a copy of the pointee.
func (s SafePtr[T]) Load() T {
	s.NullAssert()
	return *s.p
}

// Store overwrites the pointee with v.
func (s SafePtr[T]) Store(v T) {
	s.NullAssert()
	*s.p = v
}

// Index returns a pointer to the n-th element counted from s.
func (s SafePtr[T]) Index(n int) *T {
	s.NullAssert()
	return offset(s.p, n)
}

// Add returns s moved forward by n elements.
func (s SafePtr[T]) Add(n int) SafePtr[T] {
	s.NullAssert()
	return SafePtr[T]{p: offset(s.p, n)}
}

// Sub returns s moved back by n elements.
func (s SafePtr[T]) Sub(n int) SafePtr[T] {
	if n == math.MinInt {
		halt(nil, "SafePtr.Sub", "offset overflows int")
	}
	return s.Add(-n)
}

// Inc moves s forward by one element.
func (s *SafePtr[T]) Inc() { *s = s.Add(1) }

// Dec moves s back by one element.
func (s *SafePtr[T]) Dec() { *s = s.Add(-1) }

// Distance returns the number of elements from o to s.
// Both pointers must be non-nil and point into the same allocation.
func (s SafePtr[T]) Distance(o SafePtr[T]) int {
	s.NullAssert()
	o.NullAssert()
	size := unsafe.Sizeof(*s.p)
	if size == 0 {
		return 0
	}
	a, errA := safecast.Conv[int](uintptr(unsafe.Pointer(s.p)))
	b, errB := safecast.Conv[int](uintptr(unsafe.Pointer(o.p)))
	sz, errS := safecast.Conv[int](size)
	if errA != nil || errB != nil || errS != nil {
		halt(nil, "SafePtr.Distance", "address does not fit in int")
	}
	return (a - b) / sz
}

// Advance moves s by n elements of any integer type.
// An n outside the int range is a contract violation.
func Advance[T any, N constraints.Integer](s SafePtr[T], n N) SafePtr[T] {
	i, err := safecast.Conv[int](n)
	if err != nil {
		halt(nil, "SafePtr.Advance", err.Error())
	}
	return s.Add(i)
}

// offset returns p moved by n elements.
func offset[T any](p *T, n int) *T {
	sz, err := safecast.Conv[int](unsafe.Sizeof(*p))
	if err != nil {
		halt(nil, "SafePtr", err.Error())
	}
	if sz != 0 && (n > math.MaxInt/sz || n < math.MinInt/sz) {
		halt(nil, "SafePtr", "offset overflows int")
	}
	return (*T)(unsafe.Add(unsafe.Pointer(p), n*sz))
}

// Empty reports whether the pointer is nil.
func (s SafePtr[T]) Empty() bool { return s.p == nil }

// Clear sets the pointer to nil.
func (s *SafePtr[T]) Clear() { s.p = nil }

// Const returns a read-only view of the same pointee.
func (s SafePtr[T]) Const() ConstPtr[T] { return ConstPtr[T]{p: s.p} }

// Addr implements [Addressable].
func (s SafePtr[T]) Addr() unsafe.Pointer { return unsafe.Pointer(s.p) }

// Equal reports whether s and o hold the same address.
func (s SafePtr[T]) Equal(o SafePtr[T]) bool { return s.p == o.p }

// Compare orders s and o by address.
func (s SafePtr[T]) Compare(o SafePtr[T]) int { return Compare(s, o) }

// Del releases the pointee through io.Closer when *T implements it,
// then clears s.
func (s *SafePtr[T]) Del() error {
	err := disposeOf[T](unsafe.Pointer(s.p))
	s.Clear()
	return err
}
