// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package rtti

import (
	"sync"
	"sync/atomic"
	"unsafe"
)

// CreatePolicy selects how a [Holder] constructs its instance.
type CreatePolicy uint8

const (
	// StaticCreate constructs the instance on first access and keeps it
	// for the life of the process. Destroy is a no-op.
	StaticCreate CreatePolicy = iota
	// DynamicCreate constructs the instance only on Create and drops it on
	// Destroy. Instance without a live instance is a contract violation.
	DynamicCreate
)

// Holder keeps a single instance of T by composition: T itself needs no
// singleton support. The instance keeps a stable address for as long as
// it is held.
type Holder[T any] struct {
	policy CreatePolicy
	newFn  func() *T

	mu   sync.Mutex
	inst atomic.Pointer[T]
}

// NewHolder returns a holder constructing instances with newFn.
// A nil newFn constructs with new(T).
func NewHolder[T any](policy CreatePolicy, newFn func() *T) *Holder[T] {
	if newFn == nil {
		newFn = func() *T { return new(T) }
	}
	return &Holder[T]{policy: policy, newFn: newFn}
}

// Instance returns the held instance.
func (h *Holder[T]) Instance() *T {
	if v := h.inst.Load(); v != nil {
		return v
	}
	if h.policy == DynamicCreate {
		halt(nil, "Holder.Instance", "no instance of "+typeString[T]()+"; call Create first")
	}
	return h.Create()
}

// Create constructs the instance if none is held and returns it.
func (h *Holder[T]) Create() *T {
	if v := h.inst.Load(); v != nil {
		return v
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if v := h.inst.Load(); v != nil {
		return v
	}
	v := h.newFn()
	h.inst.Store(v)
	return v
}

// Set installs an instance constructed elsewhere. Installing over a held
// instance is a contract violation.
func (h *Holder[T]) Set(v *T) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.inst.Load() != nil {
		halt(nil, "Holder.Set", "instance of "+typeString[T]()+" already constructed")
	}
	h.inst.Store(v)
}

// Exists reports whether an instance is held.
func (h *Holder[T]) Exists() bool { return h.inst.Load() != nil }

// Destroy drops a dynamically created instance, closing it when *T
// implements io.Closer. It is a no-op under StaticCreate.
func (h *Holder[T]) Destroy() error {
	if h.policy == StaticCreate {
		return nil
	}
	h.mu.Lock()
	v := h.inst.Swap(nil)
	h.mu.Unlock()
	return disposeOf[T](unsafe.Pointer(v))
}
