// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package screencap

// State is the lifecycle state of a Display.
type State int32

const (
	StateUninitialized State = iota
	StateInitialized
	StateConfigured
	StateRunning
	StateStopped
	StateShutdown
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateInitialized:
		return "initialized"
	case StateConfigured:
		return "configured"
	case StateRunning:
		return "running"
	case StateStopped:
		return "stopped"
	case StateShutdown:
		return "shutdown"
	default:
		return "unknown"
	}
}

// drawable reports whether GPU resources of the display may be used.
func (s State) drawable() bool {
	return s == StateConfigured || s == StateRunning || s == StateStopped
}
