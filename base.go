// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package rtti

import (
	"reflect"
	"unsafe"
)

// RegisterBase declares Base as the direct base of Derived in the default
// registry and installs up as the conversion. The signature of up is the
// compile-time proof of the relation; with struct embedding it is usually
// a field selector:
//
//	var _ = rtti.RegisterBase(func(d *Dragon) *Monster { return &d.Monster })
//
// Registration belongs in package initialization, before any cast that
// relies on it. A type has at most one registered base; registering a
// second one is a contract violation. It returns Derived's TypeID.
func RegisterBase[Base, Derived any](up func(*Derived) *Base) TypeID {
	return RegisterBaseIn(Default(), up)
}

// RegisterBaseIn is [RegisterBase] on an explicit registry.
func RegisterBaseIn[Base, Derived any](r *Registry, up func(*Derived) *Base) TypeID {
	if up == nil {
		r.fail("RegisterBase", "nil upcast function for "+reflect.TypeFor[Derived]().String())
	}
	derived := InfoOf[Derived](r)
	base := InfoOf[Base](r)
	derived.setBase(base, func(p unsafe.Pointer, target *TypeInfo) unsafe.Pointer {
		b := unsafe.Pointer(up((*Derived)(p)))
		if target == base {
			return b
		}
		return base.Upcast(b, target)
	})
	return TypeID{derived}
}

// RegisterEmbedded declares Base as the direct base of Derived in the
// default registry, where Derived is a struct embedding Base by value.
// The embedding is verified by reflection at registration; anything else
// is a contract violation. It returns Derived's TypeID.
func RegisterEmbedded[Base, Derived any]() TypeID {
	return RegisterEmbeddedIn[Base, Derived](Default())
}

// RegisterEmbeddedIn is [RegisterEmbedded] on an explicit registry.
func RegisterEmbeddedIn[Base, Derived any](r *Registry) TypeID {
	bt, dt := reflect.TypeFor[Base](), reflect.TypeFor[Derived]()
	off, ok := embeddedOffset(dt, bt)
	if !ok {
		r.fail("RegisterEmbedded", dt.String()+" does not embed "+bt.String())
	}
	return RegisterBaseIn(r, func(d *Derived) *Base {
		return (*Base)(unsafe.Add(unsafe.Pointer(d), off))
	})
}

// embeddedOffset returns the offset of the anonymous field of type base
// in the struct type derived.
func embeddedOffset(derived, base reflect.Type) (uintptr, bool) {
	if derived.Kind() != reflect.Struct {
		return 0, false
	}
	for i := range derived.NumField() {
		f := derived.Field(i)
		if f.Anonymous && f.Type == base {
			return f.Offset, true
		}
	}
	return 0, false
}

// setBase records base as the direct base of i with the given upcast.
func (i *TypeInfo) setBase(base *TypeInfo, up UpcastFunc) {
	r := i.lat.reg
	const op = "RegisterBase"
	if i.qual != 0 || base.qual != 0 {
		r.fail(op, "qualified types cannot take part in a base relation: "+i.String()+" <- "+base.String())
	}
	if base.lat.reg != r {
		r.fail(op, base.String()+" belongs to another registry")
	}
	if base == i {
		r.fail(op, i.String()+" cannot be its own base")
	}

	r.baseMu.Lock()
	defer r.baseMu.Unlock()
	if prev := i.Base(); prev != nil {
		r.fail(op, "base of "+i.String()+" already registered as "+prev.String())
	}
	if base.Ancestors().Contains(i) {
		r.fail(op, "registering "+base.String()+" as base of "+i.String()+" forms a cycle")
	}
	i.lat.base.Store(&baseLink{info: base, upcast: up})
}
