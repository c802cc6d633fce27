// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package rtti

import (
	"fmt"
	"io"
	"unsafe"
)

// Release of pointees held by the wrappers.
// Memory belongs to the garbage collector; releasing a pointee means
// running its own release logic, io.Closer on the pointer type. Release
// always goes through the exact type recorded in the registry, so an
// embedding type's Close wins over the Close of the base it is viewed
// through.

// disposeOf closes the *T at p when *T implements io.Closer.
// Named generic function produces a static function value per type
// instantiation, avoiding a closure per lattice.
func disposeOf[T any](p unsafe.Pointer) error {
	if p == nil {
		return nil
	}
	c, ok := any((*T)(p)).(io.Closer)
	if !ok {
		return nil
	}
	if err := c.Close(); err != nil {
		return fmt.Errorf("rtti: dispose %T: %w", (*T)(p), err)
	}
	return nil
}

// Dispose releases the value at p through the exact type of id.
// It is a no-op for an empty id or a nil p.
func Dispose(p unsafe.Pointer, id TypeID) error {
	if id.Empty() || p == nil {
		return nil
	}
	return id.info.lat.dispose(p)
}
