// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package rtti provides runtime type identity and checked pointer casts
// for Go.
//
// The core type [TypeID] is a pointer-sized handle to a registry entry
// ([TypeInfo]). Entries are unique per type and qualifier set, so identity
// is pointer equality. On top of it, type-erased pointer wrappers recover
// typed pointers only through checked casts that honor qualifiers and a
// user-declared base relation between types.
//
// # Design Philosophy
//
// rtti provides:
//   - One eternal entry per (type, qualifier set) per [Registry]
//   - Qualifiers as a 2×2 lattice (const × volatile): transforms are total and pure
//   - Explicit single-parent base relations with an upcast function per edge
//   - Two failure kinds only: soft cast misses (nil) and contract violations (panic)
//
// # Type Identity
//
//   - [Of], [OfIn]: TypeID of T in the default or an explicit registry
//   - [OfConst], [OfQualified]: qualified TypeIDs
//   - [OfValue]: TypeID of the static type of a value
//   - [Assign]: Bind a TypeID variable to T
//   - [TypeID.MakeAddConst], [TypeID.MakeRemoveConst], [TypeID.MakeAddVolatile],
//     [TypeID.MakeRemoveVolatile], [TypeID.MakeRemoveCV]: Qualifier transforms
//   - [TypeID.Info]: The entry (panics on an empty handle)
//
// Registry entries:
//
//   - [Info], [InfoOf], [QualifiedInfoOf]: Per-type accessors, created on first use
//   - [TypeInfo.AddConst], [TypeInfo.RemoveConst], [TypeInfo.RemoveCV]: Sibling entries
//   - [TypeInfo.Base], [TypeInfo.IsBaseType], [TypeInfo.Ancestors]: Base relation queries
//   - [TypeInfo.Upcast]: Walk the base chain converting an address
//
// # Names
//
// Display names are resolved once per entry by a pluggable [NameResolver].
// The default [DecoratedResolver] parses the string form of a generic
// instantiation with [ParseTypeName] and shortens import paths with
// [ShortenPaths]. [NameTable] is an explicit per-type table for hosts that
// want stable names.
//
// # Base Relations
//
// Go has no inheritance; a type is "derived" from the type it embeds, and
// the relation has to be declared:
//
//   - [RegisterBase]: Declare Base <- Derived with an upcast function (checked at compile time)
//   - [RegisterEmbedded]: Declare Base <- Derived from an embedded field (checked by reflection)
//
// Each type registers at most one base. Multi-level chains are walked
// through the registered edges.
//
// # Pointer Wrappers
//
// [AnyPtr] erases any pointer:
//
//   - [NewAnyPtr], [NewConstAnyPtr], [MakeAnyPtr]: Constructors
//   - [TryCast], [TryCastConst]: Checked casts (nil on a miss)
//   - [Cast], [CastConst]: Checked casts (panic on a miss)
//   - [AnyPtr.Convert]: Cast to a TypeID
//
// [AnyBasePtr] is bounded to a base type and remembers the exact type:
//
//   - [NewAnyBasePtr], [NewDerivedPtr]: Constructors
//   - [TryCastAs], [TryCastAsConst], [CastAs], [CastAsConst]: Exact type, bound or ancestors only
//   - [AnyBasePtr.Del]: Release through the exact type
//
// [SafePtr] checks every dereference; [ConstPtr] is the read-only view
// every const cast returns.
//
// Casting rule: the target must carry every qualifier of the stored type
// (const cannot be cast away), and the unqualified types must be equal or
// the target must be a registered ancestor.
//
// # Failure
//
// A cast miss is not an error: the cast returns nil and the caller decides.
// Misuse (a nil dereference through a wrapper, a second base registration,
// [Cast] on a miss, [TypeID.Info] on an empty handle) panics with a
// [*ContractError]. [SetHalt] and [WithHalt] install a hook that observes
// the violation first.
//
// # Concurrency
//
// Registries are safe for concurrent use: entries are published under a
// lock and linked exactly once. Base relations should be registered during
// package initialization. The pointer wrappers are plain values.
//
// # Example
//
//	type Monster struct{ HP int }
//	type Dragon struct {
//		Monster
//		Fire int
//	}
//
//	var _ = rtti.RegisterBase(func(d *Dragon) *Monster { return &d.Monster })
//
//	p := rtti.NewAnyPtr(&Dragon{Monster: Monster{HP: 100}})
//	m := rtti.TryCast[Monster](p)      // &dragon.Monster
//	s := rtti.TryCast[string](p)       // nil
//	c := rtti.NewConstAnyPtr(&Dragon{})
//	_ = rtti.TryCast[Monster](c)       // nil: const cannot be cast away
//	_ = rtti.TryCastConst[Monster](c)  // read-only view
package rtti
