// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package rtti

// TypeID is a pointer-sized handle to a registry entry.
// The zero value is empty. Two TypeIDs are equal under == iff they
// reference the identical entry.
type TypeID struct {
	info *TypeInfo
}

// Of returns the TypeID of T in the default registry.
func Of[T any]() TypeID { return TypeID{InfoOf[T](Default())} }

// OfIn returns the TypeID of T in r.
func OfIn[T any](r *Registry) TypeID { return TypeID{InfoOf[T](r)} }

// OfConst returns the TypeID of const T in the default registry.
func OfConst[T any]() TypeID { return TypeID{QualifiedInfoOf[T](Default(), Const)} }

// OfQualified returns the TypeID of T with qualifiers q in r.
func OfQualified[T any](r *Registry, q Qualifier) TypeID {
	return TypeID{QualifiedInfoOf[T](r, q)}
}

// OfValue returns the TypeID of the static type of its argument in the
// default registry.
func OfValue[T any](T) TypeID { return Of[T]() }

// IDOf returns the TypeID referencing info. A nil info yields an empty TypeID.
func IDOf(info *TypeInfo) TypeID { return TypeID{info} }

// Assign binds id to T's entry in the default registry.
func Assign[T any](id *TypeID) { *id = Of[T]() }

// Empty reports whether id references no entry.
func (id TypeID) Empty() bool { return id.info == nil }

// Clear empties id.
func (id *TypeID) Clear() { id.info = nil }

// Info returns the referenced entry.
// Calling Info on an empty TypeID is a contract violation; check [TypeID.Empty]
// first unless the handle is non-empty by construction.
func (id TypeID) Info() *TypeInfo {
	if id.info == nil {
		halt(nil, "TypeID.Info", "empty type id")
	}
	return id.info
}

// MakeAddConst returns the const-qualified TypeID. Empty in, empty out.
func (id TypeID) MakeAddConst() TypeID {
	if id.info == nil {
		return TypeID{}
	}
	return TypeID{id.info.AddConst()}
}

// MakeRemoveConst returns the TypeID without const. Empty in, empty out.
func (id TypeID) MakeRemoveConst() TypeID {
	if id.info == nil {
		return TypeID{}
	}
	return TypeID{id.info.RemoveConst()}
}

// MakeAddVolatile returns the volatile-qualified TypeID. Empty in, empty out.
func (id TypeID) MakeAddVolatile() TypeID {
	if id.info == nil {
		return TypeID{}
	}
	return TypeID{id.info.AddVolatile()}
}

// MakeRemoveVolatile returns the TypeID without volatile. Empty in, empty out.
func (id TypeID) MakeRemoveVolatile() TypeID {
	if id.info == nil {
		return TypeID{}
	}
	return TypeID{id.info.RemoveVolatile()}
}

// MakeRemoveCV returns the unqualified TypeID. Empty in, empty out.
func (id TypeID) MakeRemoveCV() TypeID {
	if id.info == nil {
		return TypeID{}
	}
	return TypeID{id.info.RemoveCV()}
}

// IsConst reports whether id is const-qualified; false when empty.
func (id TypeID) IsConst() bool { return id.info != nil && id.info.IsConst() }

// IsVolatile reports whether id is volatile-qualified; false when empty.
func (id TypeID) IsVolatile() bool { return id.info != nil && id.info.IsVolatile() }

// Name returns the display name of the entry, or "" when empty.
func (id TypeID) Name() string {
	if id.info == nil {
		return ""
	}
	return id.info.name
}

// String implements fmt.Stringer.
func (id TypeID) String() string {
	if id.info == nil {
		return "TypeID(empty)"
	}
	return "TypeID(" + id.info.String() + ")"
}

// registry returns the owning registry, nil when empty.
func (id TypeID) registry() *Registry {
	if id.info == nil {
		return nil
	}
	return id.info.lat.reg
}
