package watcher

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startWatcher(t *testing.T) *FileWatcher {
	t.Helper()
	fw, err := NewFileWatcher(50*time.Millisecond, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	fw.Start(ctx)
	t.Cleanup(func() {
		cancel()
		fw.Close()
	})
	return fw
}

func TestWatchDebouncesWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "route.csv")
	require.NoError(t, os.WriteFile(path, []byte("latitude,longitude\n"), 0o644))

	fw := startWatcher(t)
	changed := make(chan string, 10)
	require.NoError(t, fw.Watch([]string{path}, func(p string) { changed <- p }))

	for i := range 3 {
		data := []byte("latitude,longitude\n37,127\n")
		data = append(data, byte('0'+i))
		require.NoError(t, os.WriteFile(path, data, 0o644))
	}

	select {
	case p := <-changed:
		abs, _ := filepath.Abs(path)
		assert.Equal(t, abs, p)
	case <-time.After(5 * time.Second):
		t.Fatal("no change notification")
	}

	// The burst collapses into a single callback
	select {
	case <-changed:
		t.Fatal("expected a single debounced callback")
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatchIgnoresSiblings(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "route.csv")
	require.NoError(t, os.WriteFile(path, []byte("latitude,longitude\n"), 0o644))

	fw := startWatcher(t)
	changed := make(chan string, 10)
	require.NoError(t, fw.Watch([]string{path}, func(p string) { changed <- p }))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.csv"), []byte("x"), 0o644))

	select {
	case p := <-changed:
		t.Fatalf("unexpected callback for %s", p)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatchTrajectoryReloads(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "route.csv")
	require.NoError(t, os.WriteFile(path, []byte("latitude,longitude\n37,127\n"), 0o644))

	fw := startWatcher(t)
	reloads := make(chan Reload, 10)
	require.NoError(t, fw.WatchTrajectory(path, func(r Reload) { reloads <- r }))

	require.NoError(t, os.WriteFile(path, []byte("latitude,longitude\n37,127\n37.001,127.001\n"), 0o644))

	select {
	case r := <-reloads:
		require.NoError(t, r.Err)
		assert.Equal(t, 2, r.Trajectory.Len())
		assert.NotNil(t, r.Document)
	case <-time.After(5 * time.Second):
		t.Fatal("no reload")
	}
}

func TestWatchTrajectoryReportsLoadErrors(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "route.csv")
	require.NoError(t, os.WriteFile(path, []byte("latitude,longitude\n37,127\n"), 0o644))

	fw := startWatcher(t)
	reloads := make(chan Reload, 10)
	require.NoError(t, fw.WatchTrajectory(path, func(r Reload) { reloads <- r }))

	require.NoError(t, os.WriteFile(path, []byte("lat,lon\n37,127\n"), 0o644))

	select {
	case r := <-reloads:
		assert.Error(t, r.Err)
		assert.Nil(t, r.Trajectory)
	case <-time.After(5 * time.Second):
		t.Fatal("no reload")
	}
}

func TestWatchMissingDirectory(t *testing.T) {
	fw := startWatcher(t)
	err := fw.Watch([]string{filepath.Join(t.TempDir(), "missing", "route.csv")}, func(string) {})
	assert.Error(t, err)
}

func TestRemoveAll(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "route.csv")
	require.NoError(t, os.WriteFile(path, []byte("latitude,longitude\n"), 0o644))

	fw := startWatcher(t)
	changed := make(chan string, 10)
	require.NoError(t, fw.Watch([]string{path}, func(p string) { changed <- p }))
	require.NoError(t, fw.RemoveAll())

	require.NoError(t, os.WriteFile(path, []byte("latitude,longitude\n1,2\n"), 0o644))
	select {
	case <-changed:
		t.Fatal("callback after RemoveAll")
	case <-time.After(300 * time.Millisecond):
	}
}
