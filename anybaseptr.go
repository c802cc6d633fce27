// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package rtti

import "unsafe"

// AnyBasePtr is a non-owning pointer bounded to T and the types built on
// it. It keeps two addresses: the view of the pointee as a *T and the
// address of the exact dynamic type recorded in its TypeID. With
// embedding at a non-zero offset the two differ.
//
// Casts out of an AnyBasePtr succeed only for the exact recorded type, for
// T itself, or for registered ancestors of either. Ancestors of the exact
// type are reached from the exact address; ancestors of T from the view,
// so they apply even when the exact type registered no base of its own.
// Speculative casts to siblings or to further derived types are never
// attempted.
type AnyBasePtr[T any] struct {
	ptr  *T
	addr unsafe.Pointer
	id   TypeID
}

// NewAnyBasePtr records p with exact type T in the default registry.
func NewAnyBasePtr[T any](p *T) AnyBasePtr[T] { return NewAnyBasePtrIn(Default(), p) }

// NewAnyBasePtrIn records p with exact type T in r.
func NewAnyBasePtrIn[T any](r *Registry, p *T) AnyBasePtr[T] {
	if p == nil {
		return AnyBasePtr[T]{}
	}
	return AnyBasePtr[T]{ptr: p, addr: unsafe.Pointer(p), id: OfIn[T](r)}
}

// NewDerivedPtr records p with exact type D, viewed as a *T through up.
// Like [RegisterBase], the signature of up is the compile-time proof that
// D is built on T.
func NewDerivedPtr[T, D any](p *D, up func(*D) *T) AnyBasePtr[T] {
	return NewDerivedPtrIn(Default(), p, up)
}

// NewDerivedPtrIn is [NewDerivedPtr] on an explicit registry.
func NewDerivedPtrIn[T, D any](r *Registry, p *D, up func(*D) *T) AnyBasePtr[T] {
	if p == nil {
		return AnyBasePtr[T]{}
	}
	return AnyBasePtr[T]{ptr: up(p), addr: unsafe.Pointer(p), id: OfIn[D](r)}
}

// MakeAnyBasePtr assembles an AnyBasePtr from a view, the exact address
// and its TypeID, typically taken from another AnyBasePtr.
// A nil view yields an empty pointer; a non-nil view with an empty id is a
// contract violation.
func MakeAnyBasePtr[T any](p *T, exact unsafe.Pointer, id TypeID) AnyBasePtr[T] {
	var b AnyBasePtr[T]
	b.Assign(p, exact, id)
	return b
}

// Assign replaces the view, exact address and type.
func (b *AnyBasePtr[T]) Assign(p *T, exact unsafe.Pointer, id TypeID) {
	if p == nil {
		b.Clear()
		return
	}
	if id.Empty() || exact == nil {
		halt(nil, "AnyBasePtr.Assign", "non-nil pointer with empty type record")
	}
	b.ptr, b.addr, b.id = p, exact, id
}

// Clear empties b.
func (b *AnyBasePtr[T]) Clear() {
	b.ptr = nil
	b.addr = nil
	b.id.Clear()
}

// Type returns the TypeID of the exact dynamic type.
func (b AnyBasePtr[T]) Type() TypeID { return b.id }

// Exact returns the address of the exact dynamic type.
func (b AnyBasePtr[T]) Exact() unsafe.Pointer { return b.addr }

// Empty reports whether b holds no pointer.
func (b AnyBasePtr[T]) Empty() bool { return b.ptr == nil }

// NullAssert reports a contract violation when b is empty.
func (b AnyBasePtr[T]) NullAssert() {
	if b.ptr == nil {
		b.id.registry().fail("AnyBasePtr", "dereference of nil pointer")
	}
}

// Get returns the *T view, nil when empty.
// Mutable access through a const-qualified record is a contract
// violation; use [AnyBasePtr.View] instead.
func (b AnyBasePtr[T]) Get() *T {
	if b.id.IsConst() {
		b.id.registry().fail("AnyBasePtr.Get", "mutable access to "+b.id.info.String())
	}
	return b.ptr
}

// Safe is [AnyBasePtr.Get] for a pointer that must not be empty.
func (b AnyBasePtr[T]) Safe() *T {
	b.NullAssert()
	return b.Get()
}

// View returns a read-only view of the pointee as T.
func (b AnyBasePtr[T]) View() ConstPtr[T] { return ConstPtr[T]{p: b.ptr} }

// Load returns a copy of the pointee. An empty b is a contract violation.
func (b AnyBasePtr[T]) Load() T {
	b.NullAssert()
	return *b.ptr
}

// MakeAddConst returns a copy of b whose record is const-qualified.
func (b AnyBasePtr[T]) MakeAddConst() AnyBasePtr[T] {
	return AnyBasePtr[T]{ptr: b.ptr, addr: b.addr, id: b.id.MakeAddConst()}
}

// Erase returns b as an [AnyPtr] holding the exact address and type.
func (b AnyBasePtr[T]) Erase() AnyPtr { return AnyPtr{addr: b.addr, id: b.id} }

// Addr implements [Addressable]. It is the address of the *T view.
func (b AnyBasePtr[T]) Addr() unsafe.Pointer { return unsafe.Pointer(b.ptr) }

// Equal reports whether b and o view the same address.
func (b AnyBasePtr[T]) Equal(o AnyBasePtr[T]) bool { return b.ptr == o.ptr }

// Compare orders b and o by view address.
func (b AnyBasePtr[T]) Compare(o AnyBasePtr[T]) int { return Compare(b, o) }

// Del releases the pointee through its exact dynamic type, so a Close
// defined on the exact type runs rather than one promoted from T, then
// clears b. The error is the Close error.
func (b *AnyBasePtr[T]) Del() error {
	err := Dispose(b.addr, b.id)
	b.Clear()
	return err
}

// TryCastAs returns the pointee of b as a *D, or nil on a miss.
// D is a non-const target. D is usually the only explicit type argument:
//
//	dragon := rtti.TryCastAs[Dragon](monsters[i])
func TryCastAs[D, T any](b AnyBasePtr[T]) *D {
	return (*D)(castBase[D](b, 0))
}

// TryCastAsConst returns a read-only view of the pointee of b as D.
func TryCastAsConst[D, T any](b AnyBasePtr[T]) ConstPtr[D] {
	return ConstPtr[D]{p: (*D)(castBase[D](b, Const))}
}

// CastAs is [TryCastAs] with a miss being a contract violation.
func CastAs[D, T any](b AnyBasePtr[T]) *D {
	p := TryCastAs[D](b)
	if p == nil {
		b.id.registry().fail("AnyBasePtr.CastAs", castMiss[D](b.id, 0))
	}
	return p
}

// CastAsConst is [TryCastAsConst] with a miss being a contract violation.
func CastAsConst[D, T any](b AnyBasePtr[T]) ConstPtr[D] {
	c := TryCastAsConst[D](b)
	if c.p == nil {
		b.id.registry().fail("AnyBasePtr.CastAsConst", castMiss[D](b.id, Const))
	}
	return c
}

// castBase implements the AnyBasePtr cast rule for target D with
// qualifiers qual.
func castBase[D, T any](b AnyBasePtr[T], qual Qualifier) unsafe.Pointer {
	r := b.id.registry()
	if r == nil || b.ptr == nil {
		return nil
	}
	target := QualifiedInfoOf[D](r, qual)
	if p := convert(b.addr, b.id, TypeID{target}); p != nil {
		return p
	}
	if !qual.Has(b.id.info.qual) {
		return nil
	}
	bound := InfoOf[T](r)
	if target.RemoveCV() == bound {
		return unsafe.Pointer(b.ptr)
	}
	return bound.Upcast(unsafe.Pointer(b.ptr), target)
}
