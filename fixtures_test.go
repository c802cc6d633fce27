// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package rtti_test

import (
	"errors"
	"testing"

	"code.hybscloud.com/rtti"
)

// Three-level chain, every base embedded at offset zero.
type B1 struct{ V1 int }

type B2 struct {
	B1
	V2 int
}

type B3 struct {
	B2
	V3 int
}

// Three-level chain with every base at a non-zero offset.
type P1 struct{ X int }

type P2 struct {
	Pad int
	P1
}

type P3 struct {
	Pad int
	P2
}

// AB embeds two unrelated types. Only A is registered as its base.
type A struct{ VA int }

type B struct{ VB int }

type AB struct {
	A
	B
	VAB int
}

type Unrelated struct{ U int }

// lowConn and tlsConn both implement io.Closer; tlsConn overrides the
// promoted Close.
type lowConn struct{ log *[]string }

func (c *lowConn) Close() error {
	*c.log = append(*c.log, "low")
	return nil
}

type tlsConn struct{ lowConn }

func (c *tlsConn) Close() error {
	*c.log = append(*c.log, "tls")
	return nil
}

var errBoom = errors.New("boom")

type failingConn struct{}

func (failingConn) Close() error { return errBoom }

// newChainRegistry returns a registry with B1 <- B2 <- B3 and P1 <- P2 <- P3.
func newChainRegistry() *rtti.Registry {
	r := rtti.NewRegistry()
	rtti.RegisterEmbeddedIn[B1, B2](r)
	rtti.RegisterBaseIn(r, func(d *B3) *B2 { return &d.B2 })
	rtti.RegisterEmbeddedIn[P1, P2](r)
	rtti.RegisterEmbeddedIn[P2, P3](r)
	return r
}

// newABRegistry returns a registry with A <- AB and lowConn <- tlsConn.
func newABRegistry() *rtti.Registry {
	r := rtti.NewRegistry()
	rtti.RegisterEmbeddedIn[A, AB](r)
	rtti.RegisterEmbeddedIn[lowConn, tlsConn](r)
	return r
}

// mustViolate runs fn and returns the contract violation it panics with.
func mustViolate(t *testing.T, op string, fn func()) (err *rtti.ContractError) {
	t.Helper()
	defer func() {
		r := recover()
		if r == nil {
			t.Fatalf("%s: expected contract violation", op)
		}
		e, ok := r.(*rtti.ContractError)
		if !ok {
			t.Fatalf("%s: panic value %T (%v), want *rtti.ContractError", op, r, r)
		}
		if e.Op != op {
			t.Fatalf("violation op: got %q, want %q (%s)", e.Op, op, e.Message)
		}
		err = e
	}()
	fn()
	return nil
}
