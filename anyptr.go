// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package rtti

import "unsafe"

// AnyPtr is a type-erased, non-owning pointer that remembers the type it
// was made from. Values come back out through checked casts such as
// [TryCast], which honor qualifiers and registered base relations.
//
// The address is nil iff the TypeID is empty.
type AnyPtr struct {
	addr unsafe.Pointer
	id   TypeID
}

// NewAnyPtr erases p, recording T from the default registry.
// A nil p yields an empty AnyPtr.
func NewAnyPtr[T any](p *T) AnyPtr { return NewAnyPtrIn(Default(), p) }

// NewAnyPtrIn erases p, recording T from r.
func NewAnyPtrIn[T any](r *Registry, p *T) AnyPtr {
	if p == nil {
		return AnyPtr{}
	}
	return AnyPtr{addr: unsafe.Pointer(p), id: OfIn[T](r)}
}

// NewConstAnyPtr erases p as a pointer to const T. Casts to a non-const
// target fail.
func NewConstAnyPtr[T any](p *T) AnyPtr {
	if p == nil {
		return AnyPtr{}
	}
	return AnyPtr{addr: unsafe.Pointer(p), id: OfConst[T]()}
}

// MakeAnyPtr pairs addr with an explicit id.
// A nil addr yields an empty AnyPtr; a non-nil addr with an empty id is a
// contract violation.
func MakeAnyPtr(addr unsafe.Pointer, id TypeID) AnyPtr {
	var a AnyPtr
	a.Assign(addr, id)
	return a
}

// Assign replaces the address and type.
func (a *AnyPtr) Assign(addr unsafe.Pointer, id TypeID) {
	if addr == nil {
		a.Clear()
		return
	}
	if id.Empty() {
		halt(nil, "AnyPtr.Assign", "non-nil address with empty type id")
	}
	a.addr, a.id = addr, id
}

// Clear empties a.
func (a *AnyPtr) Clear() {
	a.addr = nil
	a.id.Clear()
}

// Get returns the raw address.
func (a AnyPtr) Get() unsafe.Pointer { return a.addr }

// Type returns the recorded TypeID.
func (a AnyPtr) Type() TypeID { return a.id }

// Empty reports whether a holds no pointer.
func (a AnyPtr) Empty() bool { return a.addr == nil }

// NullAssert reports a contract violation when a is empty.
func (a AnyPtr) NullAssert() {
	if a.addr == nil {
		halt(nil, "AnyPtr", "dereference of nil pointer")
	}
}

// MakeAddConst returns a copy of a whose type is const-qualified.
func (a AnyPtr) MakeAddConst() AnyPtr { return AnyPtr{addr: a.addr, id: a.id.MakeAddConst()} }

// Addr implements [Addressable].
func (a AnyPtr) Addr() unsafe.Pointer { return a.addr }

// Equal reports whether a and o hold the same address.
func (a AnyPtr) Equal(o AnyPtr) bool { return a.addr == o.addr }

// Compare orders a and o by address.
func (a AnyPtr) Compare(o AnyPtr) int { return Compare(a, o) }

// String implements fmt.Stringer.
func (a AnyPtr) String() string {
	if a.addr == nil {
		return "AnyPtr(nil)"
	}
	return "AnyPtr(" + a.id.info.String() + ")"
}

// Convert returns the address of a viewed as target, or nil.
//
// The conversion succeeds when a is non-empty, target carries every
// qualifier of the stored type, and the unqualified types are equal or
// target is a registered ancestor of the stored type. The result is
// adjusted by the upcast when one was needed.
func (a AnyPtr) Convert(target TypeID) unsafe.Pointer {
	return convert(a.addr, a.id, target)
}

func convert(addr unsafe.Pointer, stored, target TypeID) unsafe.Pointer {
	if addr == nil || stored.info == nil || target.info == nil {
		return nil
	}
	s, t := stored.info, target.info
	if !t.qual.Has(s.qual) {
		return nil
	}
	if s.RemoveCV() == t.RemoveCV() {
		return addr
	}
	return s.Upcast(addr, t)
}

// TryCast returns the pointer held by a as a *T, or nil on a miss.
// T is a non-const target: a const-qualified record never matches.
func TryCast[T any](a AnyPtr) *T {
	r := a.id.registry()
	if r == nil {
		return nil
	}
	return (*T)(a.Convert(OfIn[T](r)))
}

// TryCastConst returns the pointer held by a as a read-only view of T.
// The view is empty on a miss.
func TryCastConst[T any](a AnyPtr) ConstPtr[T] {
	r := a.id.registry()
	if r == nil {
		return ConstPtr[T]{}
	}
	return ConstPtr[T]{p: (*T)(a.Convert(OfQualified[T](r, Const)))}
}

// Cast is [TryCast] for callers that have already established the type.
// A miss is a contract violation.
func Cast[T any](a AnyPtr) *T {
	p := TryCast[T](a)
	if p == nil {
		a.id.registry().fail("AnyPtr.Cast", castMiss[T](a.id, 0))
	}
	return p
}

// CastConst is [TryCastConst] with a miss being a contract violation.
func CastConst[T any](a AnyPtr) ConstPtr[T] {
	c := TryCastConst[T](a)
	if c.p == nil {
		a.id.registry().fail("AnyPtr.CastConst", castMiss[T](a.id, Const))
	}
	return c
}

// castMiss describes a failed cast from stored to T with qualifiers q.
func castMiss[T any](stored TypeID, q Qualifier) string {
	target := q.decorate(ShortenPaths(typeString[T]()))
	if stored.info == nil {
		return "cannot cast empty pointer to " + target
	}
	return "cannot cast " + stored.info.String() + " to " + target
}
