package watcher_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parrotdev/parrot/internal/watcher"
)

func TestWatchSignalsOnWrite(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	w, err := watcher.New(dir)
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })

	done := make(chan error, 1)
	go func() {
		done <- w.Watch(context.Background())
	}()

	// Give the watch loop a moment to start before triggering the event.
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "main.go"), []byte("package main\n"), 0o644))

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not signal after file write")
	}
}

func TestWatchIgnoresHiddenFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	w, err := watcher.New(dir)
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), 1500*time.Millisecond)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- w.Watch(ctx)
	}()

	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".hidden"), []byte("x"), 0o644))

	// No restart signal is expected: the watch returns only when the
	// context expires.
	err = <-done
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestWatchCancellation(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	w, err := watcher.New(dir)
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		done <- w.Watch(ctx)
	}()

	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop on cancellation")
	}
}

func TestNewFailsOnMissingDirectory(t *testing.T) {
	t.Parallel()

	_, err := watcher.New(filepath.Join(t.TempDir(), "does-not-exist"))
	assert.Error(t, err)
}
