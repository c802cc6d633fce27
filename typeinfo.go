// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package rtti

import (
	"reflect"
	"sync"
	"sync/atomic"
	"unsafe"

	set "github.com/hashicorp/go-set/v3"
)

// UpcastFunc converts p, the address of a value of the registering type,
// into the address of its ancestor described by target.
// It returns nil when target is not an ancestor.
// target is always unqualified.
type UpcastFunc func(p unsafe.Pointer, target *TypeInfo) unsafe.Pointer

// TypeInfo is the registry entry of one qualified type.
//
// Entries are unique per registry: for a given type and qualifier set there
// is exactly one *TypeInfo, created on first request and never destroyed,
// so entries compare by pointer identity.
type TypeInfo struct {
	lat  *lattice
	qual Qualifier
	name string
}

// baseLink is the single base edge of a type with its upcast function.
type baseLink struct {
	info   *TypeInfo
	upcast UpcastFunc
}

// lattice holds the four qualifier variants of one type.
// Variant q lives at index q, so qualifier transforms are index flips.
type lattice struct {
	reg     *Registry
	typ     reflect.Type
	vars    [4]TypeInfo
	base    atomic.Pointer[baseLink]
	dispose func(unsafe.Pointer) error
	once    sync.Once
}

// newLattice performs the raw construction of a lattice: the display name
// is resolved, nothing is linked yet.
func newLattice(r *Registry, t reflect.Type, name string, dispose func(unsafe.Pointer) error) *lattice {
	l := &lattice{reg: r, typ: t, dispose: dispose}
	l.vars[0].name = name
	return l
}

// link wires every variant to the lattice and derives the qualified names.
// It runs once per lattice; repeated calls are no-ops.
func (l *lattice) link() {
	l.once.Do(func() {
		base := l.vars[0].name
		for q := range l.vars {
			v := &l.vars[q]
			v.lat = l
			v.qual = Qualifier(q)
			v.name = Qualifier(q).decorate(base)
		}
	})
}

// Name returns the display name, or "" when name resolution failed.
func (i *TypeInfo) Name() string { return i.name }

// String implements fmt.Stringer.
func (i *TypeInfo) String() string {
	if i == nil {
		return "<nil>"
	}
	if i.name == "" {
		return i.qual.decorate(i.lat.typ.String())
	}
	return i.name
}

// Type returns the unqualified Go type of the entry.
func (i *TypeInfo) Type() reflect.Type { return i.lat.typ }

// Registry returns the registry owning the entry.
func (i *TypeInfo) Registry() *Registry { return i.lat.reg }

// Qualifiers returns the qualifier set of the entry.
func (i *TypeInfo) Qualifiers() Qualifier { return i.qual }

// IsConst reports whether the entry is const-qualified.
func (i *TypeInfo) IsConst() bool { return i.qual&Const != 0 }

// IsVolatile reports whether the entry is volatile-qualified.
func (i *TypeInfo) IsVolatile() bool { return i.qual&Volatile != 0 }

// WithQualifiers returns the sibling entry carrying exactly q.
func (i *TypeInfo) WithQualifiers(q Qualifier) *TypeInfo { return &i.lat.vars[q&CV] }

// AddConst returns the const-qualified sibling, or i if already const.
func (i *TypeInfo) AddConst() *TypeInfo { return i.WithQualifiers(i.qual | Const) }

// RemoveConst returns the sibling without const, or i if not const.
func (i *TypeInfo) RemoveConst() *TypeInfo { return i.WithQualifiers(i.qual &^ Const) }

// AddVolatile returns the volatile-qualified sibling, or i if already volatile.
func (i *TypeInfo) AddVolatile() *TypeInfo { return i.WithQualifiers(i.qual | Volatile) }

// RemoveVolatile returns the sibling without volatile, or i if not volatile.
func (i *TypeInfo) RemoveVolatile() *TypeInfo { return i.WithQualifiers(i.qual &^ Volatile) }

// RemoveCV returns the unqualified sibling.
func (i *TypeInfo) RemoveCV() *TypeInfo { return &i.lat.vars[0] }

// Base returns the registered direct base of the type, or nil.
// Qualifiers are not part of the inheritance chain: every variant
// reports the same unqualified base.
func (i *TypeInfo) Base() *TypeInfo {
	if b := i.lat.base.Load(); b != nil {
		return b.info
	}
	return nil
}

// IsBaseType reports whether other, stripped of its qualifiers, is the
// registered base of i or an ancestor of that base.
func (i *TypeInfo) IsBaseType(other *TypeInfo) bool {
	if other == nil {
		return false
	}
	target := other.RemoveCV()
	for b := i.Base(); b != nil; b = b.Base() {
		if b == target {
			return true
		}
	}
	return false
}

// Ancestors returns the set of registered ancestors of the type,
// all unqualified.
func (i *TypeInfo) Ancestors() *set.Set[*TypeInfo] {
	s := set.New[*TypeInfo](0)
	for b := i.Base(); b != nil; b = b.Base() {
		s.Insert(b)
	}
	return s
}

// Upcast converts p, the address of a value of i's type, into the address
// of the target's type by walking the registered base chain.
// Qualifiers of both i and target are ignored. The result is nil when p is
// nil or target is not an ancestor.
func (i *TypeInfo) Upcast(p unsafe.Pointer, target *TypeInfo) unsafe.Pointer {
	if p == nil || target == nil {
		return nil
	}
	b := i.lat.base.Load()
	if b == nil {
		return nil
	}
	return b.upcast(p, target.RemoveCV())
}
