// Copyright (c) 2025 The faultguard Authors
//
// SPDX-License-Identifier: Apache-2.0
//

//go:build !nounwind

package fault

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReportBanner(t *testing.T) {
	assert := assert.New(t)

	buf := captureLog(t)

	Report("it went wrong")

	b := buf.String()
	assert.Contains(b, "level=error")
	assert.Contains(b, "PANIC: it went wrong")
	assert.Contains(b, "BACKTRACE:")
	assert.Contains(b, " #0 ip = 0x")
}

func TestReportResolvesProcNames(t *testing.T) {
	assert := assert.New(t)

	buf := captureLog(t)

	Report("symbol check")

	// The innermost frames belong to this package, so at least one line
	// must carry a resolved procedure name rather than the placeholder.
	b := buf.String()
	assert.Contains(b, "proc = ")
	assert.Contains(b, "faultguard/pkg/fault")
}

// recurse calls f at the bottom of n nested stack frames.
func recurse(n int, f func()) {
	if n == 0 {
		f()
		return
	}
	recurse(n-1, f)
}

func TestReportFrameCap(t *testing.T) {
	assert := assert.New(t)

	buf := captureLog(t)

	recurse(2*maxFrames, func() {
		Report("deep stack")
	})

	frames := strings.Count(buf.String(), "ip = 0x")
	assert.Equal(maxFrames, frames)
}

func TestReportInnermostFirst(t *testing.T) {
	assert := assert.New(t)

	buf := captureLog(t)

	Report("frame order")

	b := buf.String()
	first := strings.Index(b, " #0 ")
	second := strings.Index(b, " #1 ")
	assert.True(first >= 0)
	assert.True(second > first)
}
