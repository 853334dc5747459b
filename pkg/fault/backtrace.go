// Copyright (c) 2025 The faultguard Authors
//
// SPDX-License-Identifier: Apache-2.0
//

package fault

// maxFrames bounds a single report so a corrupted stack cannot keep the
// handler walking forever.
const maxFrames = 64

// unknownProc is logged for a frame whose symbol cannot be resolved.
const unknownProc = "<unknown>"

// frame is one resolved call frame of a backtrace report.
type frame struct {
	ip   uintptr
	sp   uintptr
	proc string
}

// frameBuf is scratch storage for one report, allocated before any fault
// can arrive so the handler path never grows memory. Reports are
// single-flight in practice; a torn report from concurrent voluntary
// callers is tolerated.
var frameBuf [maxFrames]frame

// Report logs a severe-level panic banner for reason followed by a
// best-effort backtrace of the calling stack, innermost frame first. It is
// also usable as a voluntary diagnostic outside fault handling and never
// fails: a missing unwinding facility degrades to a notice line and an
// unresolved symbol degrades to a placeholder.
func Report(reason string) {
	faultLog.Errorf("PANIC: %s", reason)

	n, ok := unwind(frameBuf[:])
	if !ok {
		faultLog.Error("BACKTRACE: no backtrace facility available")
		return
	}

	faultLog.Errorf("BACKTRACE: %d stack frames:", n)
	for i := 0; i < n; i++ {
		proc := frameBuf[i].proc
		if proc == "" {
			proc = unknownProc
		}
		faultLog.Errorf(" #%d ip = 0x%x, sp = 0x%x, proc = %s",
			i, frameBuf[i].ip, frameBuf[i].sp, proc)
	}
}
