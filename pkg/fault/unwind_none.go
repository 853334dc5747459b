// Copyright (c) 2025 The faultguard Authors
//
// SPDX-License-Identifier: Apache-2.0
//

//go:build nounwind

package fault

// unwind reports that no unwinding facility was compiled in.
func unwind(buf []frame) (int, bool) {
	return 0, false
}
