// Copyright (c) 2026 FlowerPassword Team
// FlowerPassword - deterministic password derivation
// This source code is licensed under the MIT license found in the LICENSE file.

// Package logging holds the process-wide charmbracelet logger.
package logging

import (
	"fmt"
	"io"
	"os"
	"sync"

	clog "github.com/charmbracelet/log"
)

// L is the package-level logger. It writes to stderr so that command output
// on stdout (a derived password, a history listing) stays pipeable.
var L = clog.NewWithOptions(os.Stderr, clog.Options{Prefix: "flowerpassword"})

var (
	outMu sync.Mutex
	out   io.Writer = os.Stderr
)

// SetDebug switches the package logger between debug and info level.
func SetDebug(enabled bool) {
	if enabled {
		L.SetLevel(clog.DebugLevel)
		return
	}
	L.SetLevel(clog.InfoLevel)
}

// SetOutput redirects the package logger and returns the previous writer.
// The TUI holds log lines while the alternate screen is active.
func SetOutput(w io.Writer) io.Writer {
	outMu.Lock()
	defer outMu.Unlock()
	prev := out
	out = w
	L.SetOutput(w)
	return prev
}

// DebugEnabled reports whether debug output is active.
func DebugEnabled() bool {
	return L.GetLevel() <= clog.DebugLevel
}

// Debugf logs a debug-level formatted message.
func Debugf(format string, v ...any) {
	L.Debug(fmt.Sprintf(format, v...))
}

// Infof logs an info-level formatted message.
func Infof(format string, v ...any) {
	L.Info(fmt.Sprintf(format, v...))
}

// Warnf logs a warning-level formatted message.
func Warnf(format string, v ...any) {
	L.Warn(fmt.Sprintf(format, v...))
}

// Errorf logs an error-level formatted message.
func Errorf(format string, v ...any) {
	L.Error(fmt.Sprintf(format, v...))
}
