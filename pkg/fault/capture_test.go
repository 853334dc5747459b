// Copyright (c) 2025 The faultguard Authors
//
// SPDX-License-Identifier: Apache-2.0
//

package fault

import (
	"bytes"
	"testing"

	"github.com/sirupsen/logrus"
)

// captureLog points the package logger at a fresh buffer for the duration
// of the test and returns the buffer.
func captureLog(t *testing.T) *bytes.Buffer {
	savedLog := faultLog
	t.Cleanup(func() {
		faultLog = savedLog
	})

	buf := &bytes.Buffer{}

	logger := logrus.New()
	logger.Out = buf

	faultLog = logger.WithField("test-logger", true)

	return buf
}
