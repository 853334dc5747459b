// Copyright (c) 2025 The faultguard Authors
//
// SPDX-License-Identifier: Apache-2.0
//

// Package fault is a last-resort crash handler for long-running server
// processes. It intercepts fatal signals, logs a diagnostic backtrace and
// then either hands control to a caller-supplied continuation callback or
// terminates the process with a core dump.
package fault

import (
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"
	"sync/atomic"
	"syscall"

	"github.com/sirupsen/logrus"
	"golang.org/x/sys/unix"
)

var faultLog = logrus.WithField("subsystem", "fault")

// version is included in the fault banner. Embedding applications override
// it via SetVersion.
var version = "unknown"

// ContinueFn is the continuation callback type accepted by Install. It is
// invoked exactly once, after the fault has been reported, to perform
// last-chance cleanup before the default signal disposition is restored.
type ContinueFn func()

// continueFn is the process-wide continuation slot. Written once by Install
// during startup, read by whichever goroutine services a fault.
var continueFn ContinueFn

// faultCount guards against reentrant fault handling. It is incremented
// once per coordinator entry and never reset; a non-zero pre-increment
// value means a fault arrived while one was already being reported. Only
// manipulated with sync/atomic since the faulting thread may hold locks.
var faultCount uint32

const separator = "==============================================================="

// SetLogger sets the logger used for fault banners and backtraces. If not
// called, the package logs through the standard logrus logger.
func SetLogger(logger *logrus.Entry) {
	faultLog = logger
}

// SetVersion sets the build version string included in the fault banner.
func SetVersion(v string) {
	version = v
}

// Signals returns the fatal signals the package intercepts on this
// platform.
func Signals() []syscall.Signal {
	sigs := make([]syscall.Signal, len(fatalSignals))
	copy(sigs, fatalSignals)
	return sigs
}

// Install stores fn as the continuation callback and subscribes the fault
// coordinator to the fatal signal set. A nil fn means abort on fault. Call
// once during process startup, after logging is initialized.
//
// os/signal keeps the subscription active after a delivery, and the
// servicing goroutine handles one signal at a time, so a queued second
// delivery cannot preempt a report in progress. Note that only signals
// delivered asynchronously (e.g. via kill(2)) reach the signal channel; a
// fault raised synchronously by Go code surfaces as a runtime panic and
// should be routed through HandlePanic instead.
func Install(fn ContinueFn) {
	continueFn = fn

	sigCh := make(chan os.Signal, len(fatalSignals))
	for _, sig := range fatalSignals {
		signal.Notify(sigCh, sig)
	}

	go func() {
		for sig := range sigCh {
			nativeSignal, ok := sig.(syscall.Signal)
			if !ok {
				continue
			}
			handleFault(nativeSignal)
		}
	}()
}

// HandlePanic routes a runtime panic through the fault coordinator so that
// faults raised synchronously in Go code get the same report and
// termination policy as an OS-delivered fatal signal. Use it as a deferred
// call at the top of each goroutine that must not die silently:
//
//	defer fault.HandlePanic()
func HandlePanic() {
	r := recover()
	if r == nil {
		return
	}

	if atomic.AddUint32(&faultCount, 1) > 1 {
		abort()
	}

	faultLog.WithField("panic", fmt.Sprintf("%v", r)).Error("fatal error")

	Report("internal error")

	if continueFn != nil {
		continueFn()
	}

	abort()
}

// handleFault is the fault coordinator. On first entry it reports the
// fault and then either hands control to the continuation callback or
// aborts. On any reentrant entry it aborts immediately: the logging and
// unwinding machinery may itself be the source of corruption and must not
// be trusted a second time.
func handleFault(sig syscall.Signal) {
	if atomic.AddUint32(&faultCount, 1) > 1 {
		abort()
	}

	faultLog.Error(separator)
	faultLog.Errorf("INTERNAL ERROR: Signal %d in pid %d (%s)", int(sig), os.Getpid(), version)
	faultLog.Error(separator)

	Report("internal error")

	if continueFn != nil {
		continueFn()

		// Restore the platform default for the whole fatal set, never a
		// pre-install handler. The faulting context cannot be resumed from
		// here, so re-raise against the restored disposition; this should
		// produce a core dump. The runtime keeps its own handler installed
		// for these signals, so crash mode is needed to make it die by
		// signal instead of exiting.
		for _, s := range fatalSignals {
			signal.Reset(s)
		}
		debug.SetTraceback("crash")
		unix.Kill(os.Getpid(), sig)
		return
	}

	abort()
}

// abort terminates the process abnormally. Resetting SIGABRT drops any
// Notify registration, and crash mode makes the runtime die by the signal
// if its own handler is still installed, so the process is killed by
// SIGABRT either way and can produce a core file. Delivery is
// asynchronous; block until it arrives rather than racing it with an
// exit.
func abort() {
	debug.SetTraceback("crash")
	signal.Reset(syscall.SIGABRT)
	unix.Kill(os.Getpid(), syscall.SIGABRT)
	select {}
}
