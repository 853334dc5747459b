// Copyright (c) 2025 The faultguard Authors
//
// SPDX-License-Identifier: Apache-2.0
//

package fault

import "syscall"

// fatalSignals is the fixed set of signals treated as fatal faults.
var fatalSignals = []syscall.Signal{
	syscall.SIGSEGV,
	syscall.SIGBUS,
}
