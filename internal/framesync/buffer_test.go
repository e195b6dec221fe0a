// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package framesync

import (
	"bytes"
	"errors"
	"sync"
	"testing"
)

// mutexLocker adapts sync.Mutex to Locker.
type mutexLocker struct{ mu sync.Mutex }

func (l *mutexLocker) Lock() error   { l.mu.Lock(); return nil }
func (l *mutexLocker) Unlock() error { l.mu.Unlock(); return nil }

// failingLocker fails Lock or Unlock on demand.
type failingLocker struct {
	failLock   bool
	failUnlock bool
	locks      int
}

var errLock = errors.New("lock failed")

func (l *failingLocker) Lock() error {
	if l.failLock {
		return errLock
	}
	l.locks++
	return nil
}

func (l *failingLocker) Unlock() error {
	if l.failUnlock {
		return errLock
	}
	return nil
}

func newBuffer(t *testing.T, size int) *Buffer {
	t.Helper()
	b := New(&mutexLocker{})
	if err := b.Resize(size); err != nil {
		t.Fatalf("Resize(%d) = %v", size, err)
	}
	return b
}

func TestResizeZeroes(t *testing.T) {
	b := newBuffer(t, 16)
	if got := b.Len(); got != 16 {
		t.Fatalf("Len() = %d, want 16", got)
	}
	if b.Dirty() {
		t.Error("fresh buffer should not be dirty")
	}

	if err := b.Write(bytes.Repeat([]byte{7}, 16)); err != nil {
		t.Fatalf("Write() = %v", err)
	}
	if err := b.Resize(8); err != nil {
		t.Fatalf("Resize(8) = %v", err)
	}
	if b.Dirty() {
		t.Error("Resize should discard the pending frame")
	}
	_, _ = b.Drain(func(p []byte) error {
		t.Error("drain after resize must not see a frame")
		return nil
	})
}

func TestWriteThenDrain(t *testing.T) {
	b := newBuffer(t, 8)
	frame := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	if err := b.Write(frame); err != nil {
		t.Fatalf("Write() = %v", err)
	}
	frame[0] = 99 // the buffer owns a copy

	var got []byte
	called, err := b.Drain(func(p []byte) error {
		got = append([]byte(nil), p...)
		return nil
	})
	if err != nil || !called {
		t.Fatalf("Drain() = %v, %v; want true, nil", called, err)
	}
	if want := []byte{1, 2, 3, 4, 5, 6, 7, 8}; !bytes.Equal(got, want) {
		t.Errorf("drained %v, want %v", got, want)
	}
	if b.Dirty() {
		t.Error("buffer still dirty after drain")
	}
}

func TestLastWriterWins(t *testing.T) {
	b := newBuffer(t, 4)
	_ = b.Write([]byte{1, 1, 1, 1})
	_ = b.Write([]byte{2, 2, 2, 2})

	var drains int
	var got []byte
	_, _ = b.Drain(func(p []byte) error {
		drains++
		got = append([]byte(nil), p...)
		return nil
	})
	if drains != 1 {
		t.Fatalf("fn called %d times, want 1", drains)
	}
	if !bytes.Equal(got, []byte{2, 2, 2, 2}) {
		t.Errorf("drained %v, want second frame", got)
	}

	st := b.Stats()
	if st.Writes != 2 || st.Overwritten != 1 || st.Drains != 1 {
		t.Errorf("Stats() = %+v, want writes=2 overwritten=1 drains=1", st)
	}
}

func TestDrainWithoutFrameIsNoop(t *testing.T) {
	b := newBuffer(t, 4)
	called, err := b.Drain(func([]byte) error {
		t.Fatal("fn must not run without a new frame")
		return nil
	})
	if called || err != nil {
		t.Errorf("Drain() = %v, %v; want false, nil", called, err)
	}
}

func TestDrainErrorKeepsDirty(t *testing.T) {
	b := newBuffer(t, 4)
	_ = b.Write([]byte{1, 2, 3, 4})

	upload := errors.New("upload failed")
	called, err := b.Drain(func([]byte) error { return upload })
	if !called || !errors.Is(err, upload) {
		t.Fatalf("Drain() = %v, %v; want true, upload error", called, err)
	}
	if !b.Dirty() {
		t.Error("failed drain must keep the frame pending")
	}
}

func TestWriteRejectsPartialFrames(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"short", []byte{1, 2}},
		{"long", []byte{1, 2, 3, 4, 5}},
		{"empty", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newBuffer(t, 4)
			err := b.Write(tt.data)
			if !errors.Is(err, ErrSizeMismatch) {
				t.Fatalf("Write() = %v, want ErrSizeMismatch", err)
			}
			if b.Dirty() {
				t.Error("rejected write marked the buffer dirty")
			}
		})
	}
}

func TestWriteBeforeResize(t *testing.T) {
	b := New(&mutexLocker{})
	if err := b.Write([]byte{1}); !errors.Is(err, ErrNotAllocated) {
		t.Errorf("Write() = %v, want ErrNotAllocated", err)
	}
}

func TestLockFailures(t *testing.T) {
	l := &failingLocker{}
	b := New(l)
	if err := b.Resize(4); err != nil {
		t.Fatalf("Resize() = %v", err)
	}

	l.failLock = true
	if err := b.Write([]byte{1, 2, 3, 4}); !errors.Is(err, errLock) {
		t.Errorf("Write() with failing Lock = %v, want errLock", err)
	}
	if called, err := b.Drain(func([]byte) error { return nil }); called || !errors.Is(err, errLock) {
		t.Errorf("Drain() with failing Lock = %v, %v", called, err)
	}

	l.failLock = false
	l.failUnlock = true
	if err := b.Write([]byte{1, 2, 3, 4}); !errors.Is(err, errLock) {
		t.Errorf("Write() with failing Unlock = %v, want errLock", err)
	}
	if st := b.Stats(); st.Writes != 1 {
		t.Errorf("frame should be stored despite unlock failure, writes = %d", st.Writes)
	}
}

func TestConcurrentWriters(t *testing.T) {
	const size = 64
	b := newBuffer(t, size)

	var wg sync.WaitGroup
	for w := 1; w <= 8; w++ {
		wg.Add(1)
		go func(v byte) {
			defer wg.Done()
			frame := bytes.Repeat([]byte{v}, size)
			for range 200 {
				_ = b.Write(frame)
			}
		}(byte(w))
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	// Every drained frame must be a whole frame from one writer.
	check := func(p []byte) error {
		for _, c := range p {
			if c != p[0] {
				t.Errorf("torn frame: %v", p)
				break
			}
		}
		return nil
	}
	for {
		select {
		case <-done:
			_, _ = b.Drain(check)
			return
		default:
			_, _ = b.Drain(check)
		}
	}
}
