// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package rtti

import (
	"cmp"
	"unsafe"
)

// Addressable is implemented by every pointer wrapper in this package.
// Wrapper equality and ordering compare addresses only; the recorded
// types play no part.
type Addressable interface {
	Addr() unsafe.Pointer
}

// Same reports whether a and b point at the same address.
// Two empty wrappers are the same.
func Same(a, b Addressable) bool {
	return a.Addr() == b.Addr()
}

// Compare orders a and b by address: -1, 0 or +1.
// Empty wrappers order before every non-empty one.
func Compare(a, b Addressable) int {
	return cmp.Compare(uintptr(a.Addr()), uintptr(b.Addr()))
}
