// Package iface defines the transport capability the command processors
// drive, plus the console, scripted and websocket implementations of it.
package iface

import "errors"

// ErrClosed marks a broken or closed transport. A processor that sees it (or
// any error wrapping it) during a protected dispatch detaches the interface
// and goes silent instead of crashing the debuggee.
var ErrClosed = errors.New("interface closed")

// Interface is the transport consumed by both command processors.
//
// ReadCommand blocks until a full line is available and returns io.EOF when
// the input stream is exhausted. Print and ErrMsg are best-effort writes.
// The pending command queue (PushCommand/PopCommand) lets an external driver
// inject input; processors drain it before attempting a blocking read.
type Interface interface {
	ReadCommand(prompt string) (string, error)
	Print(format string, args ...any)
	ErrMsg(format string, args ...any)
	Confirm(prompt string) bool
	Close() error

	PushCommand(cmd string)
	PopCommand() (string, bool)
}
