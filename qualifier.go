// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package rtti

// Qualifier is the set of type qualifiers attached to a registry entry.
// Go has no const or volatile; the qualifiers are identity tags that the
// checked casts honor: a qualifier present on the stored type can never
// be dropped by a cast.
type Qualifier uint8

const (
	// Const marks read-only access.
	Const Qualifier = 1 << iota
	// Volatile marks storage observed by another agent.
	Volatile

	// CV is the full qualifier set.
	CV = Const | Volatile
)

// Has reports whether every qualifier in o is present in q.
func (q Qualifier) Has(o Qualifier) bool { return q&o == o }

// String returns the qualifier keywords, e.g. "const volatile".
func (q Qualifier) String() string {
	switch q & CV {
	case Const:
		return "const"
	case Volatile:
		return "volatile"
	case CV:
		return "const volatile"
	default:
		return ""
	}
}

// decorate prefixes name with the qualifier keywords.
func (q Qualifier) decorate(name string) string {
	if q&CV == 0 || name == "" {
		return name
	}
	return q.String() + " " + name
}
