// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package rtti

import (
	"reflect"
	"strings"
	"sync"
)

// tag is instantiated once per registered type. The string form of the
// instantiation, e.g. "rtti.tag[code.hybscloud.com/app.Player]", is the
// decorated string the default resolver parses.
type tag[T any] struct{}

// decoratedName returns the decorated string for T.
// Named generic function produces a static function value per type
// instantiation, so registries can take it without allocating a closure.
func decoratedName[T any]() string {
	return reflect.TypeFor[tag[T]]().String()
}

// ParseTypeName extracts the type argument from a decorated string.
//
// It locates the first '[' and copies the characters up to the matching
// ']' into dst, balancing nested brackets. Quoted runs, such as struct
// tags, are copied verbatim and their brackets are not counted. The copy
// is truncated to cap(dst). The returned slice aliases dst.
//
// When src holds no '[' the result is empty. This is a known limitation,
// not an error.
func ParseTypeName(dst []byte, src string) []byte {
	dst = dst[:0]
	begin := strings.IndexByte(src, '[')
	if begin < 0 {
		return dst
	}
	var q quoteScanner
	depth := 0
	for i := begin + 1; i < len(src); i++ {
		c := src[i]
		if !q.scan(c) {
			switch c {
			case '[':
				depth++
			case ']':
				if depth == 0 {
					return dst
				}
				depth--
			}
		}
		if len(dst) == cap(dst) {
			return dst
		}
		dst = append(dst, c)
	}
	return dst
}

// ShortenPaths strips import path directories from every qualified
// identifier in name: "code.hybscloud.com/app.Player" becomes "app.Player",
// also inside type arguments and composite types. Quoted struct tags are
// left untouched.
func ShortenPaths(name string) string {
	if strings.IndexByte(name, '/') < 0 {
		return name
	}
	var q quoteScanner
	out := make([]byte, 0, len(name))
	start := 0
	for i := 0; i < len(name); i++ {
		c := name[i]
		if q.scan(c) {
			out = append(out, c)
			start = len(out)
			continue
		}
		switch {
		case c == '/':
			out = out[:start]
			continue
		case isPathDelim(c):
			out = append(out, c)
			start = len(out)
			continue
		}
		out = append(out, c)
	}
	return string(out)
}

// quoteScanner tracks Go string literals in a type string: interpreted
// literals with backslash escapes and raw literals.
type quoteScanner struct {
	quote   byte
	escaped bool
}

// scan consumes c and reports whether it belongs to a quoted run,
// delimiters included.
func (q *quoteScanner) scan(c byte) bool {
	switch {
	case q.quote == 0:
		if c == '"' || c == '`' {
			q.quote = c
			return true
		}
		return false
	case q.escaped:
		q.escaped = false
	case c == '\\' && q.quote == '"':
		q.escaped = true
	case c == q.quote:
		q.quote = 0
	}
	return true
}

func isPathDelim(c byte) bool {
	switch c {
	case '[', ']', '*', '(', ')', ',', ' ', ';', '{', '}', ':':
		return true
	}
	return false
}

// NameResolver produces the display name of a registered type.
// t is the unqualified type and decorated the compiler-generated string
// that embeds it. Implementations must be safe for concurrent use.
//
// The registry calls ResolveName without holding its lock, so a resolver
// may look up other types in the same registry, e.g. to name a container
// after its element type. Looking up t itself recurses without end.
type NameResolver interface {
	ResolveName(t reflect.Type, decorated string) string
}

// DecoratedResolver parses the decorated string with [ParseTypeName]
// and shortens import paths. It is the default resolver.
type DecoratedResolver struct {
	// FullPaths keeps import paths in the resolved name.
	FullPaths bool
}

// ResolveName implements [NameResolver].
func (r DecoratedResolver) ResolveName(_ reflect.Type, decorated string) string {
	b := acquireNameBuf(len(decorated))
	*b = ParseTypeName(*b, decorated)
	name := string(*b)
	releaseNameBuf(b)
	if r.FullPaths {
		return name
	}
	return ShortenPaths(name)
}

// NameTable is an explicit per-type name table. Types without an entry
// are resolved by Fallback; with a nil Fallback they resolve to "".
type NameTable struct {
	Fallback NameResolver

	mu    sync.RWMutex
	names map[reflect.Type]string
}

// NewNameTable returns an empty table backed by fallback.
func NewNameTable(fallback NameResolver) *NameTable {
	return &NameTable{Fallback: fallback, names: make(map[reflect.Type]string)}
}

// Set records the display name of t.
// Entries must be set before the type is first registered; names are
// resolved once per registry entry.
func (nt *NameTable) Set(t reflect.Type, name string) {
	nt.mu.Lock()
	if nt.names == nil {
		nt.names = make(map[reflect.Type]string)
	}
	nt.names[t] = name
	nt.mu.Unlock()
}

// SetName records the display name of T in nt.
func SetName[T any](nt *NameTable, name string) {
	nt.Set(reflect.TypeFor[T](), name)
}

// ResolveName implements [NameResolver].
func (nt *NameTable) ResolveName(t reflect.Type, decorated string) string {
	nt.mu.RLock()
	name, ok := nt.names[t]
	nt.mu.RUnlock()
	if ok {
		return name
	}
	if nt.Fallback != nil {
		return nt.Fallback.ResolveName(t, decorated)
	}
	return ""
}

// typeString returns the Go type string of T.
func typeString[T any]() string {
	return reflect.TypeFor[T]().String()
}
