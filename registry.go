// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package rtti

import (
	"cmp"
	"reflect"
	"slices"
	"sync"
	"unsafe"
)

// Registry owns the type entries. Lookups are safe for concurrent use.
// Entries from different registries never compare equal, and casts only
// follow base relations registered in the registry of the stored type.
type Registry struct {
	mu       sync.RWMutex
	lattices map[reflect.Type]*lattice

	baseMu sync.Mutex

	resolver NameResolver
	halt     HaltFunc
}

// Option configures a [Registry].
type Option func(*Registry)

// WithNameResolver sets the strategy that names new entries.
// The default is [DecoratedResolver].
func WithNameResolver(nr NameResolver) Option {
	return func(r *Registry) { r.resolver = nr }
}

// WithHalt sets the hook observing contract violations detected by
// operations on the registry's entries. It overrides [SetHalt].
func WithHalt(h HaltFunc) Option {
	return func(r *Registry) { r.halt = h }
}

// NewRegistry returns an empty registry.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{lattices: make(map[reflect.Type]*lattice)}
	for _, opt := range opts {
		opt(r)
	}
	if r.resolver == nil {
		r.resolver = DecoratedResolver{}
	}
	return r
}

var defaultRegistry = NewHolder(StaticCreate, func() *Registry { return NewRegistry() })

// Default returns the process-wide registry used by the package-level
// shortcuts such as [Of] and [RegisterBase].
func Default() *Registry { return defaultRegistry.Instance() }

// InfoOf returns the unqualified entry of T in r, creating it on first use.
func InfoOf[T any](r *Registry) *TypeInfo {
	t := reflect.TypeFor[T]()
	if l := r.lookup(t); l != nil {
		return &l.vars[0]
	}
	return &r.latticeOf(t, decoratedName[T], disposeOf[T]).vars[0]
}

// QualifiedInfoOf returns the entry of T carrying the qualifiers q.
func QualifiedInfoOf[T any](r *Registry, q Qualifier) *TypeInfo {
	return InfoOf[T](r).WithQualifiers(q)
}

// Info returns the unqualified entry of T in the default registry.
func Info[T any]() *TypeInfo { return InfoOf[T](Default()) }

// latticeOf returns the lattice of t, constructing it if no other caller
// has. Construction is two-phase: the name is resolved outside the lock,
// the raw lattice is published under the write lock, then linked outside
// it. A racer that loses the insert drops its name. Every caller passes
// through link, which blocks until the first linker finishes.
func (r *Registry) latticeOf(t reflect.Type, decorate func() string, dispose func(unsafe.Pointer) error) *lattice {
	name := r.resolver.ResolveName(t, decorate())
	r.mu.Lock()
	l := r.lattices[t]
	if l == nil {
		l = newLattice(r, t, name, dispose)
		r.lattices[t] = l
	}
	r.mu.Unlock()
	l.link()
	return l
}

// lookup returns the linked lattice of t, or nil if none was created.
func (r *Registry) lookup(t reflect.Type) *lattice {
	r.mu.RLock()
	l := r.lattices[t]
	r.mu.RUnlock()
	if l != nil {
		l.link()
	}
	return l
}

// Lookup returns the unqualified entry of t if it has been created.
func (r *Registry) Lookup(t reflect.Type) (*TypeInfo, bool) {
	l := r.lookup(t)
	if l == nil {
		return nil, false
	}
	return &l.vars[0], true
}

// Count returns the number of registered types. Qualified variants are
// not counted separately.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.lattices)
}

// Entries returns a snapshot of the unqualified entries ordered by name,
// then by Go type string.
func (r *Registry) Entries() []*TypeInfo {
	r.mu.RLock()
	ls := make([]*lattice, 0, len(r.lattices))
	for _, l := range r.lattices {
		ls = append(ls, l)
	}
	r.mu.RUnlock()

	out := make([]*TypeInfo, 0, len(ls))
	for _, l := range ls {
		l.link()
		out = append(out, &l.vars[0])
	}
	slices.SortFunc(out, func(a, b *TypeInfo) int {
		if c := cmp.Compare(a.name, b.name); c != 0 {
			return c
		}
		return cmp.Compare(a.lat.typ.String(), b.lat.typ.String())
	})
	return out
}

// Resolver returns the name resolver of r.
func (r *Registry) Resolver() NameResolver { return r.resolver }

// fail reports a contract violation through the registry's halt hook.
func (r *Registry) fail(op, msg string) {
	var h HaltFunc
	if r != nil {
		h = r.halt
	}
	halt(h, op, msg)
}
