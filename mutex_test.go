// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package screencap

import (
	"errors"
	"sync"
	"testing"
)

func TestMutexLifecycle(t *testing.T) {
	var m Mutex

	if err := m.Lock(); !errors.Is(err, ErrLockNotCreated) {
		t.Fatalf("Lock() before Create = %v, want ErrLockNotCreated", err)
	}
	if err := m.Destroy(); err != nil {
		t.Fatalf("Destroy() before Create = %v, want nil", err)
	}
	if err := m.Create(); err != nil {
		t.Fatalf("Create() = %v", err)
	}
	if err := m.Create(); !errors.Is(err, ErrLockExists) {
		t.Errorf("second Create() = %v, want ErrLockExists", err)
	}

	if err := m.Lock(); err != nil {
		t.Fatalf("Lock() = %v", err)
	}
	if err := m.Destroy(); !errors.Is(err, ErrLockBusy) {
		t.Errorf("Destroy() while held = %v, want ErrLockBusy", err)
	}
	if err := m.Unlock(); err != nil {
		t.Fatalf("Unlock() = %v", err)
	}
	if err := m.Unlock(); !errors.Is(err, ErrLockNotHeld) {
		t.Errorf("second Unlock() = %v, want ErrLockNotHeld", err)
	}

	if err := m.Destroy(); err != nil {
		t.Fatalf("Destroy() = %v", err)
	}
	if err := m.Lock(); !errors.Is(err, ErrLockNotCreated) {
		t.Errorf("Lock() after Destroy = %v, want ErrLockNotCreated", err)
	}
}

func TestMutexExclusive(t *testing.T) {
	var m Mutex
	if err := m.Create(); err != nil {
		t.Fatal(err)
	}

	const workers, rounds = 8, 500
	counter := 0
	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range rounds {
				if err := m.Lock(); err != nil {
					t.Error(err)
					return
				}
				counter++
				if err := m.Unlock(); err != nil {
					t.Error(err)
					return
				}
			}
		}()
	}
	wg.Wait()

	if counter != workers*rounds {
		t.Errorf("counter = %d, want %d", counter, workers*rounds)
	}
}
