// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package framesync implements the single-slot staging buffer that hands
// captured frames from a producer goroutine to the render goroutine.
//
// The policy is "latest frame only": a write replaces any frame that was
// not drained yet, and a drain with nothing new does nothing. There is no
// queue and no signal back to the producer.
package framesync

import (
	"errors"
	"fmt"
	"sync/atomic"
)

// Errors returned by Buffer.
var (
	// ErrNotAllocated is returned when writing before Resize.
	ErrNotAllocated = errors.New("framesync: staging buffer not allocated")

	// ErrSizeMismatch is returned when a write does not cover the whole buffer.
	ErrSizeMismatch = errors.New("framesync: frame size does not match staging buffer")
)

// Locker is the lock guarding the buffer. Lock and Unlock report failure.
type Locker interface {
	Lock() error
	Unlock() error
}

// Stats is a snapshot of buffer activity.
type Stats struct {
	// Writes counts accepted frames.
	Writes uint64
	// Overwritten counts accepted frames that replaced an undrained one.
	Overwritten uint64
	// Drains counts drains that consumed a frame.
	Drains uint64
}

// Buffer is a staging buffer guarded by an external lock.
// The lock is held for the copy on the write side and for the consumer
// callback on the drain side, and for nothing else.
type Buffer struct {
	lock   Locker
	pixels []byte
	dirty  bool

	writes      atomic.Uint64
	overwritten atomic.Uint64
	drains      atomic.Uint64
}

// New returns an unallocated buffer guarded by lock.
func New(lock Locker) *Buffer {
	return &Buffer{lock: lock}
}

// Resize reallocates the buffer to size zeroed bytes and clears the dirty
// flag. Any undrained frame is discarded.
func (b *Buffer) Resize(size int) error {
	if size < 0 {
		return fmt.Errorf("framesync: negative size %d", size)
	}
	if err := b.lock.Lock(); err != nil {
		return err
	}
	b.pixels = make([]byte, size)
	b.dirty = false
	return b.lock.Unlock()
}

// Release frees the pixel memory and clears the dirty flag.
func (b *Buffer) Release() error {
	if err := b.lock.Lock(); err != nil {
		return err
	}
	b.pixels = nil
	b.dirty = false
	return b.lock.Unlock()
}

// Write copies data into the buffer and marks it dirty.
// data must be exactly as long as the buffer; nothing is copied otherwise.
//
// An error from Unlock is returned after the copy completed: the frame is
// stored, only the lock state is suspect.
func (b *Buffer) Write(data []byte) error {
	if err := b.lock.Lock(); err != nil {
		return err
	}
	switch {
	case b.pixels == nil:
		return errors.Join(ErrNotAllocated, b.lock.Unlock())
	case len(data) != len(b.pixels):
		err := fmt.Errorf("%w: got %d bytes, want %d", ErrSizeMismatch, len(data), len(b.pixels))
		return errors.Join(err, b.lock.Unlock())
	}
	copy(b.pixels, data)
	if b.dirty {
		b.overwritten.Add(1)
	}
	b.dirty = true
	b.writes.Add(1)
	return b.lock.Unlock()
}

// Drain calls fn with the buffer contents if a frame arrived since the last
// successful drain, and clears the dirty flag when fn succeeds. fn runs with
// the lock held and must not retain pixels.
//
// Drain reports whether fn was called.
func (b *Buffer) Drain(fn func(pixels []byte) error) (bool, error) {
	if err := b.lock.Lock(); err != nil {
		return false, err
	}
	if !b.dirty {
		return false, b.lock.Unlock()
	}
	err := fn(b.pixels)
	if err == nil {
		b.dirty = false
		b.drains.Add(1)
	}
	return true, errors.Join(err, b.lock.Unlock())
}

// Dirty reports whether an undrained frame is pending.
func (b *Buffer) Dirty() bool {
	if err := b.lock.Lock(); err != nil {
		return false
	}
	d := b.dirty
	_ = b.lock.Unlock()
	return d
}

// Len returns the allocated size.
func (b *Buffer) Len() int {
	if err := b.lock.Lock(); err != nil {
		return 0
	}
	n := len(b.pixels)
	_ = b.lock.Unlock()
	return n
}

// Stats returns a snapshot of the counters.
func (b *Buffer) Stats() Stats {
	return Stats{
		Writes:      b.writes.Load(),
		Overwritten: b.overwritten.Load(),
		Drains:      b.drains.Load(),
	}
}
