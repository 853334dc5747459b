// Copyright (c) 2025 The faultguard Authors
//
// SPDX-License-Identifier: Apache-2.0
//

// fault-check is a manual verification harness for the fault package: it
// installs the fault handlers and raises a chosen fatal signal against the
// running process, so the banner, backtrace and termination behavior can
// be observed end to end.
package main

import (
	"fmt"
	"os"
	"strings"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli"
	"golang.org/x/sys/unix"

	"github.com/faultguard/faultguard/pkg/fault"
)

// name of this program.
const name = "fault-check"

// version is populated at link time.
var version = "0.1.0"

// checkLog is the logger used to record all messages.
var checkLog = logrus.WithFields(logrus.Fields{
	"name": name,
	"pid":  os.Getpid(),
})

// handlerGrace bounds how long we wait for the coordinator, which runs on
// its own goroutine, to terminate the process after the raise.
const handlerGrace = 5 * time.Second

// signalFromName maps a user-supplied name ("segv", "SIGBUS", ...) to a
// member of the fatal signal set.
func signalFromName(s string) (syscall.Signal, error) {
	s = strings.ToUpper(s)
	if !strings.HasPrefix(s, "SIG") {
		s = "SIG" + s
	}

	sig := unix.SignalNum(s)
	if sig == 0 {
		return 0, errors.Errorf("unknown signal %q", s)
	}

	for _, fatal := range fault.Signals() {
		if sig == fatal {
			return sig, nil
		}
	}

	return 0, errors.Errorf("%s is not in the fatal signal set", s)
}

func beforeSubcommands(c *cli.Context) error {
	if c.GlobalBool("debug") {
		checkLog.Logger.SetLevel(logrus.DebugLevel)
	}

	fault.SetLogger(checkLog)
	fault.SetVersion(version)

	return nil
}

func raise(c *cli.Context) error {
	sig, err := signalFromName(c.String("signal"))
	if err != nil {
		return err
	}

	var fn fault.ContinueFn
	if c.Bool("continue") {
		fn = func() {
			checkLog.Info("continuation callback invoked")
		}
	}

	fault.Install(fn)

	checkLog.WithField("signal", unix.SignalName(sig)).Info("raising fatal signal")

	if err := unix.Kill(os.Getpid(), sig); err != nil {
		return errors.Wrap(err, "could not raise signal")
	}

	time.Sleep(handlerGrace)

	return errors.New("fault coordinator did not terminate the process")
}

func createApp() *cli.App {
	app := cli.NewApp()
	app.Name = name
	app.Version = version
	app.Usage = "raise a fatal signal against the installed fault handlers"
	app.Writer = os.Stdout
	app.Before = beforeSubcommands

	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "debug",
			Usage: "enable debug output",
		},
		cli.StringFlag{
			Name:  "signal",
			Value: "SIGSEGV",
			Usage: "fatal signal to raise (SIGSEGV or SIGBUS)",
		},
		cli.BoolFlag{
			Name:  "continue",
			Usage: "install a continuation callback before raising",
		},
	}

	app.Action = raise

	return app
}

func main() {
	defer fault.HandlePanic()

	if err := createApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
