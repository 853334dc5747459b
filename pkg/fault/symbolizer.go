// Copyright (c) 2025 The faultguard Authors
//
// SPDX-License-Identifier: Apache-2.0
//

//go:build cgosymbolizer

package fault

// Registers a cgo traceback handler so frames from C code symbolize in the
// runtime's own crash output alongside this package's reports.
import _ "github.com/benesch/cgosymbolizer"
