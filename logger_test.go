// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package screencap

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"sync"
	"testing"
)

// unconfiguredDisplay returns a display that drops every frame.
func unconfiguredDisplay(t testing.TB, opts ...Option) *Display {
	t.Helper()
	d, err := NewDisplay(&Pipeline{}, nopSource{}, opts...)
	if err != nil {
		t.Fatalf("NewDisplay: %v", err)
	}
	return d
}

func TestNopLoggerDiscards(t *testing.T) {
	l := newNopLogger()
	for _, level := range []slog.Level{slog.LevelDebug, slog.LevelInfo, slog.LevelWarn, slog.LevelError} {
		if l.Enabled(context.Background(), level) {
			t.Errorf("nop logger enabled for %v", level)
		}
	}
	if _, ok := l.With("display", "x").WithGroup("g").Handler().(nopHandler); !ok {
		t.Error("derived nop logger is not silent")
	}
	if err := (nopHandler{}).Handle(context.Background(), slog.Record{}); err != nil {
		t.Errorf("Handle() = %v", err)
	}
}

func TestLibrarySilentByDefault(t *testing.T) {
	if Logger().Enabled(context.Background(), slog.LevelError) {
		t.Error("package logger enabled before SetLogger")
	}
}

func TestSetLoggerRoutesDisplayLogs(t *testing.T) {
	t.Cleanup(func() { SetLogger(nil) })

	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))

	d := unconfiguredDisplay(t)
	d.OnFrame(&Frame{PixelFormat: FormatBGRA})

	out := buf.String()
	if !strings.Contains(out, "frame dropped") {
		t.Fatalf("drop not logged: %q", out)
	}
	if !strings.Contains(out, "level=WARN") || !strings.Contains(out, "display="+d.ID().String()) {
		t.Errorf("drop record lacks level or display ID: %q", out)
	}
	if st := d.Stats(); st.Received != 1 || st.Dropped != 1 {
		t.Errorf("Stats() = %+v, want 1 received, 1 dropped", st)
	}
}

func TestWithLoggerOverridesPackageLogger(t *testing.T) {
	t.Cleanup(func() { SetLogger(nil) })

	var pkg, own bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&pkg, nil)))
	d := unconfiguredDisplay(t, WithLogger(slog.New(slog.NewTextHandler(&own, nil))))
	d.OnFrame(nil)

	if pkg.Len() != 0 {
		t.Errorf("package logger used despite WithLogger: %q", pkg.String())
	}
	if !strings.Contains(own.String(), "frame dropped") {
		t.Errorf("display logger got %q", own.String())
	}
}

func TestSetLoggerNilRestoresSilent(t *testing.T) {
	t.Cleanup(func() { SetLogger(nil) })
	SetLogger(slog.Default())
	SetLogger(nil)
	if l := Logger(); l == nil || l.Enabled(context.Background(), slog.LevelError) {
		t.Error("SetLogger(nil) did not restore the silent logger")
	}
}

func TestSetLoggerWhileFramesDrop(t *testing.T) {
	t.Cleanup(func() { SetLogger(nil) })
	d := unconfiguredDisplay(t)

	var wg sync.WaitGroup
	const producers = 8
	const frames = 200
	for range producers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range frames {
				d.OnFrame(&Frame{})
			}
		}()
	}
	for range 50 {
		SetLogger(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))
		SetLogger(nil)
	}
	wg.Wait()

	if st := d.Stats(); st.Dropped != producers*frames {
		t.Errorf("Dropped = %d, want %d", st.Dropped, producers*frames)
	}
}

func BenchmarkDroppedFrameSilent(b *testing.B) {
	// Hot path of the frame callback with logging disabled.
	d := unconfiguredDisplay(b)
	f := &Frame{PixelFormat: FormatBGRA}
	b.ReportAllocs()
	for b.Loop() {
		d.OnFrame(f)
	}
}
