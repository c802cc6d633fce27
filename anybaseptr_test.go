// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package rtti_test

import (
	"errors"
	"slices"
	"testing"
	"unsafe"

	"code.hybscloud.com/rtti"
)

func TestAnyBasePtrExact(t *testing.T) {
	r := newABRegistry()
	var ab AB
	p := rtti.NewAnyBasePtrIn(r, &ab)
	if p.Empty() || p.Get() != &ab || p.Exact() != unsafe.Pointer(&ab) {
		t.Fatal("NewAnyBasePtrIn should keep the pointer")
	}
	if p.Type() != rtti.OfIn[AB](r) {
		t.Fatalf("Type(): got %v", p.Type())
	}
	if rtti.TryCastAs[AB](p) != &ab {
		t.Fatal("TryCastAs to the exact type should succeed")
	}
	if rtti.TryCastAs[A](p) != &ab.A {
		t.Fatal("TryCastAs to the registered base should succeed")
	}
	if rtti.TryCastAs[B](p) != nil {
		t.Fatal("B is not registered as a base of AB")
	}
}

func TestAnyBasePtrDerivedView(t *testing.T) {
	r := newABRegistry()
	ab := AB{VAB: 5}
	pb := rtti.NewDerivedPtrIn(r, &ab, func(d *AB) *B { return &d.B })
	if pb.Get() != &ab.B {
		t.Fatalf("Get(): got %p, want %p", pb.Get(), &ab.B)
	}
	if pb.Exact() != unsafe.Pointer(&ab) || pb.Addr() != unsafe.Pointer(&ab.B) {
		t.Fatal("view and exact addresses should differ for a non-zero offset")
	}
	if pb.Type() != rtti.OfIn[AB](r) {
		t.Fatal("Type() should be the exact type")
	}
	if got := rtti.TryCastAs[AB](pb); got != &ab || got.VAB != 5 {
		t.Fatalf("TryCastAs[AB]: got %p, want %p", got, &ab)
	}
	if rtti.TryCastAs[B](pb) != &ab.B {
		t.Fatal("TryCastAs to the bound type should return the view")
	}
	if rtti.TryCastAs[A](pb) != &ab.A {
		t.Fatal("TryCastAs to a registered base of the exact type should succeed")
	}
	if rtti.TryCastAs[Unrelated](pb) != nil {
		t.Fatal("TryCastAs to an unrelated type should miss")
	}
}

func TestAnyBasePtrNoSiblingCast(t *testing.T) {
	r := newABRegistry()
	var ab AB
	pa := rtti.NewDerivedPtrIn(r, &ab, func(d *AB) *A { return &d.A })
	if rtti.TryCastAs[B](pa) != nil {
		t.Fatal("sibling casts are never attempted")
	}
	e := mustViolate(t, "AnyBasePtr.CastAs", func() { _ = rtti.CastAs[Unrelated](pa) })
	if e.Message != "cannot cast rtti_test.AB to rtti_test.Unrelated" {
		t.Fatalf("message: %q", e.Message)
	}

	// A pointer created from the base alone knows nothing of AB.
	pb := rtti.NewAnyBasePtrIn(r, &ab.B)
	if rtti.TryCastAs[AB](pb) != nil {
		t.Fatal("casts must not move down from the exact type")
	}
}

func TestAnyBasePtrOrdering(t *testing.T) {
	r := newABRegistry()
	var ab AB
	pa := rtti.NewDerivedPtrIn(r, &ab, func(d *AB) *A { return &d.A })
	pb := rtti.NewDerivedPtrIn(r, &ab, func(d *AB) *B { return &d.B })
	if rtti.Same(pa, pb) {
		t.Fatal("views of different bases should differ")
	}
	if rtti.Compare(pa, pb) != -1 || rtti.Compare(pb, pa) != 1 {
		t.Fatal("the A view should order before the B view")
	}
	if !rtti.Same(pa, rtti.NewAnyPtrIn(r, &ab)) {
		t.Fatal("A sits at offset zero of AB")
	}
	if !pb.Equal(rtti.NewAnyBasePtrIn(r, &ab.B)) || pb.Compare(rtti.NewAnyBasePtrIn(r, &ab.B)) != 0 {
		t.Fatal("equality should compare view addresses only")
	}
	var empty rtti.AnyBasePtr[A]
	if empty.Compare(pa) != -1 || pa.Compare(empty) != 1 || empty.Compare(rtti.AnyBasePtr[A]{}) != 0 {
		t.Fatal("empty should order before every non-empty pointer")
	}
	if empty.Equal(pa) || !empty.Equal(rtti.NewAnyBasePtrIn[A](r, nil)) {
		t.Fatal("empty pointers should equal each other only")
	}
}

// Q builds on P2 but registers no base of its own.
type Q struct {
	Pad int
	P2
}

func TestAnyBasePtrBoundAncestors(t *testing.T) {
	r := newChainRegistry()
	var q Q
	p := rtti.NewDerivedPtrIn(r, &q, func(d *Q) *P2 { return &d.P2 })
	if rtti.InfoOf[Q](r).Base() != nil {
		t.Fatal("fixture: Q must have no registered base")
	}
	if got := rtti.TryCastAs[P1](p); got != &q.P2.P1 {
		t.Fatalf("TryCastAs[P1] through the bound type: got %p, want %p", got, &q.P2.P1)
	}
	if !rtti.TryCastAsConst[P1](p.MakeAddConst()).Is(&q.P2.P1) {
		t.Fatal("const cast to an ancestor of the bound type should succeed")
	}
	if rtti.TryCastAs[P1](p.MakeAddConst()) != nil {
		t.Fatal("const record must not yield a mutable ancestor")
	}
	if rtti.TryCastAs[P3](p) != nil || rtti.TryCastAs[B1](p) != nil {
		t.Fatal("only ancestors of the bound type are reachable")
	}
}

func TestAnyBasePtrConst(t *testing.T) {
	r := newABRegistry()
	var ab AB
	c := rtti.NewDerivedPtrIn(r, &ab, func(d *AB) *B { return &d.B }).MakeAddConst()
	if !c.Type().IsConst() {
		t.Fatal("MakeAddConst should qualify the record")
	}
	mustViolate(t, "AnyBasePtr.Get", func() { _ = c.Get() })
	if !c.View().Is(&ab.B) {
		t.Fatal("View should work on a const record")
	}
	if rtti.TryCastAs[AB](c) != nil || rtti.TryCastAs[B](c) != nil {
		t.Fatal("mutable casts out of a const record should miss")
	}
	if !rtti.TryCastAsConst[AB](c).Is(&ab) {
		t.Fatal("const cast to the exact type should succeed")
	}
	if !rtti.TryCastAsConst[B](c).Is(&ab.B) {
		t.Fatal("const cast to the bound type should succeed")
	}
	if !rtti.CastAsConst[A](c).Is(&ab.A) {
		t.Fatal("const cast to a registered base should succeed")
	}
	mustViolate(t, "AnyBasePtr.CastAsConst", func() { _ = rtti.CastAsConst[Unrelated](c) })
}

func TestAnyBasePtrEmpty(t *testing.T) {
	var p rtti.AnyBasePtr[A]
	if !p.Empty() || p.Get() != nil || !p.View().Empty() || p.Exact() != nil {
		t.Fatal("zero AnyBasePtr should be empty")
	}
	if rtti.TryCastAs[A](p) != nil || !rtti.TryCastAsConst[A](p).Empty() {
		t.Fatal("casting an empty AnyBasePtr should miss")
	}
	if !rtti.NewAnyBasePtr[A](nil).Empty() || !rtti.NewDerivedPtr[A, AB](nil, nil).Empty() {
		t.Fatal("nil input should give an empty pointer")
	}
	mustViolate(t, "AnyBasePtr", func() { _ = p.Safe() })
	mustViolate(t, "AnyBasePtr", func() { _ = p.Load() })
	if err := p.Del(); err != nil {
		t.Fatalf("Del on empty: %v", err)
	}
}

func TestAnyBasePtrAssign(t *testing.T) {
	r := newABRegistry()
	var ab AB
	pb := rtti.NewDerivedPtrIn(r, &ab, func(d *AB) *B { return &d.B })
	cp := rtti.MakeAnyBasePtr(pb.Get(), pb.Exact(), pb.Type())
	if !cp.Equal(pb) || cp.Exact() != pb.Exact() || cp.Type() != pb.Type() {
		t.Fatal("MakeAnyBasePtr should rebuild the same pointer")
	}
	if rtti.TryCastAs[AB](cp) != &ab {
		t.Fatal("rebuilt pointer should cast to the exact type")
	}
	cp.Clear()
	if !cp.Empty() || !cp.Type().Empty() || cp.Exact() != nil {
		t.Fatal("Clear should empty every field")
	}
	if !rtti.MakeAnyBasePtr[B](nil, pb.Exact(), pb.Type()).Empty() {
		t.Fatal("nil view should give an empty pointer")
	}
	mustViolate(t, "AnyBasePtr.Assign", func() {
		_ = rtti.MakeAnyBasePtr(&ab.B, nil, pb.Type())
	})
	mustViolate(t, "AnyBasePtr.Assign", func() {
		_ = rtti.MakeAnyBasePtr(&ab.B, unsafe.Pointer(&ab), rtti.TypeID{})
	})
}

func TestAnyBasePtrErase(t *testing.T) {
	r := newABRegistry()
	ab := AB{A: A{VA: 1}}
	e := rtti.NewDerivedPtrIn(r, &ab, func(d *AB) *B { return &d.B }).Erase()
	if e.Get() != unsafe.Pointer(&ab) || e.Type() != rtti.OfIn[AB](r) {
		t.Fatal("Erase should keep the exact address and type")
	}
	if got := rtti.TryCast[A](e); got != &ab.A || got.VA != 1 {
		t.Fatal("erased pointer should cast to the registered base")
	}
	if got := rtti.NewAnyBasePtrIn(r, &ab).Load(); got.VA != 1 {
		t.Fatalf("Load(): got %+v", got)
	}
	if got := rtti.NewAnyBasePtrIn(r, &ab).Safe(); got != &ab {
		t.Fatal("Safe should return the view")
	}
}

func TestAnyBasePtrDelExactType(t *testing.T) {
	r := newABRegistry()
	var log []string
	c := tlsConn{lowConn{log: &log}}

	p := rtti.NewDerivedPtrIn(r, &c, func(d *tlsConn) *lowConn { return &d.lowConn })
	if err := p.Del(); err != nil {
		t.Fatalf("Del: %v", err)
	}
	if !p.Empty() {
		t.Fatal("Del should clear the pointer")
	}

	low := rtti.NewAnyBasePtrIn(r, &c.lowConn)
	if err := low.Del(); err != nil {
		t.Fatalf("Del: %v", err)
	}
	if want := []string{"tls", "low"}; !slices.Equal(log, want) {
		t.Fatalf("close order: got %v, want %v", log, want)
	}

	f := rtti.NewAnyBasePtrIn(r, &failingConn{})
	if err := f.Del(); !errors.Is(err, errBoom) {
		t.Fatalf("Del error: got %v, want %v", err, errBoom)
	}
}
