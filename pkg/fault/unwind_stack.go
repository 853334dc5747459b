// Copyright (c) 2025 The faultguard Authors
//
// SPDX-License-Identifier: Apache-2.0
//

//go:build !rawtrace && !nounwind

package fault

import "github.com/go-stack/stack"

// unwind walks the calling goroutine's frames and fills buf with per-frame
// instruction pointers and resolved procedure names. The Go runtime does
// not expose per-frame stack pointers, so sp stays zero. The second return
// value reports whether an unwinding facility was available at all.
func unwind(buf []frame) (int, bool) {
	trace := stack.Trace().TrimRuntime()

	n := 0
	for _, call := range trace {
		if n == len(buf) {
			break
		}
		fr := call.Frame()
		buf[n] = frame{ip: fr.PC, proc: fr.Function}
		n++
	}

	return n, true
}
