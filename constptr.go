// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package rtti

import "unsafe"

// ConstPtr is a read-only, non-owning view of a *T.
// It is the result of every cast to a const target. There is no way back
// from a ConstPtr to a mutable *T.
type ConstPtr[T any] struct {
	p *T
}

// Empty reports whether the view is nil.
func (c ConstPtr[T]) Empty() bool { return c.p == nil }

// NullAssert reports a contract violation when the view is nil.
func (c ConstPtr[T]) NullAssert() {
	if c.p == nil {
		halt(nil, "ConstPtr", "dereference of nil pointer")
	}
}

// Load returns a copy of the pointee. A nil view is a contract violation.
func (c ConstPtr[T]) Load() T {
	c.NullAssert()
	return *c.p
}

// Is reports whether the view points at p.
func (c ConstPtr[T]) Is(p *T) bool { return c.p == p }

// Addr implements [Addressable].
func (c ConstPtr[T]) Addr() unsafe.Pointer { return unsafe.Pointer(c.p) }

// Equal reports whether both views point at the same address.
func (c ConstPtr[T]) Equal(o ConstPtr[T]) bool { return c.p == o.p }
