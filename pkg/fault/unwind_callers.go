// Copyright (c) 2025 The faultguard Authors
//
// SPDX-License-Identifier: Apache-2.0
//

//go:build rawtrace && !nounwind

package fault

import "runtime"

// pcBuf holds the raw return-address array between deliveries, allocated
// up front for the same reason as frameBuf.
var pcBuf [maxFrames]uintptr

// unwind fills buf from the runtime's raw return-address array, resolving
// symbol names best-effort. Stack pointers are not recoverable from raw
// addresses and stay zero.
func unwind(buf []frame) (int, bool) {
	// Skip runtime.Callers itself and this function.
	n := runtime.Callers(2, pcBuf[:len(buf)])

	for i := 0; i < n; i++ {
		name := ""
		if fn := runtime.FuncForPC(pcBuf[i]); fn != nil {
			name = fn.Name()
		}
		buf[i] = frame{ip: pcBuf[i], proc: name}
	}

	return n, true
}
