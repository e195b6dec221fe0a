// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package screencap

import (
	"errors"
	"sync"
	"sync/atomic"
)

// Lock errors.
var (
	// ErrLockNotCreated is returned when locking a lock that was never created
	// or was already destroyed.
	ErrLockNotCreated = errors.New("screencap: lock not created")

	// ErrLockNotHeld is returned when unlocking a lock that is not held.
	ErrLockNotHeld = errors.New("screencap: lock not held")

	// ErrLockBusy is returned when destroying a lock that is still held.
	ErrLockBusy = errors.New("screencap: lock is held")

	// ErrLockExists is returned when creating a lock twice.
	ErrLockExists = errors.New("screencap: lock already created")
)

// Locker guards the staging buffer shared by the capture goroutine and the
// render goroutine. Every method reports failure instead of ignoring it.
//
// Locks are not reentrant: a holder must not call Lock again before Unlock.
type Locker interface {
	Create() error
	Destroy() error
	Lock() error
	Unlock() error
}

// Mutex is the default Locker, backed by the runtime's native mutex.
// The zero value is ready for Create.
type Mutex struct {
	mu      sync.Mutex
	created atomic.Bool
	held    atomic.Bool
}

var _ Locker = (*Mutex)(nil)

// Create makes the lock usable.
func (m *Mutex) Create() error {
	if !m.created.CompareAndSwap(false, true) {
		return ErrLockExists
	}
	return nil
}

// Destroy releases the lock. Destroying a lock that was never created is a
// no-op so that teardown can run unconditionally.
func (m *Mutex) Destroy() error {
	if !m.created.Load() {
		return nil
	}
	if m.held.Load() {
		return ErrLockBusy
	}
	m.created.Store(false)
	return nil
}

// Lock blocks until the lock is acquired.
func (m *Mutex) Lock() error {
	if !m.created.Load() {
		return ErrLockNotCreated
	}
	m.mu.Lock()
	m.held.Store(true)
	return nil
}

// Unlock releases a held lock.
func (m *Mutex) Unlock() error {
	if !m.held.CompareAndSwap(true, false) {
		return ErrLockNotHeld
	}
	m.mu.Unlock()
	return nil
}
