// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package rtti

import (
	"runtime"
	"strings"
	"sync/atomic"
)

// ContractError describes a violated usage contract: a nil dereference
// through a wrapper, a repeated base registration, a failed [Cast], or
// [TypeID.Info] on an empty handle.
//
// Contract violations are fatal. Every one of them ends in a panic whose
// value is a *ContractError; the package never returns them as errors.
type ContractError struct {
	// Op names the operation that detected the violation, e.g. "AnyPtr.Cast".
	Op string

	// Message describes the violation.
	Message string

	// Caller is the first function outside this package on the stack.
	Caller string
}

// Error implements the error interface.
func (e *ContractError) Error() string {
	return "rtti: " + e.Op + ": " + e.Message
}

// HaltFunc observes a contract violation before the package panics.
// It is the integration point for host logging and crash reporting.
// A HaltFunc may terminate the process itself; if it returns, the
// violation still panics.
type HaltFunc func(err *ContractError)

var haltHook atomic.Pointer[HaltFunc]

// SetHalt installs the process-wide halt hook and returns the previous one.
// Registries created with [WithHalt] use their own hook instead.
// Passing nil removes the hook.
func SetHalt(h HaltFunc) HaltFunc {
	var old *HaltFunc
	if h == nil {
		old = haltHook.Swap(nil)
	} else {
		old = haltHook.Swap(&h)
	}
	if old == nil {
		return nil
	}
	return *old
}

// halt reports a contract violation and never returns.
// Extracted as a noinline function so that the checked accessors
// stay inlineable.
//
//go:noinline
func halt(local HaltFunc, op, msg string) {
	err := &ContractError{Op: op, Message: msg, Caller: outsideCaller()}
	if local != nil {
		local(err)
	} else if h := haltHook.Load(); h != nil {
		(*h)(err)
	}
	panic(err)
}

const pkgPrefix = "code.hybscloud.com/rtti."

// outsideCaller returns the name of the innermost frame that does not
// belong to this package.
func outsideCaller() string {
	var pcs [16]uintptr
	n := runtime.Callers(3, pcs[:])
	frames := runtime.CallersFrames(pcs[:n])
	for {
		f, more := frames.Next()
		if f.Function != "" && !strings.HasPrefix(f.Function, pkgPrefix) {
			return f.Function
		}
		if !more {
			return "unknown"
		}
	}
}
