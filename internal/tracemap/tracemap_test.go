package tracemap

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func newMapped(t *testing.T, totalFrames, framesPerVolume int64, tracesPerFrame int32) *TraceMap {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, Create(dir, totalFrames))
	tm, err := Open(dir, true, tracesPerFrame, framesPerVolume, totalFrames, false)
	require.NoError(t, err)
	t.Cleanup(func() { _ = tm.Close() })
	return tm
}

func TestUnmappedAlwaysReturnsTracesPerFrame(t *testing.T) {
	dir := t.TempDir()
	tm, err := Open(dir, false, 64, 10, 100, false)
	require.NoError(t, err)

	fold, err := tm.Fold(5)
	require.NoError(t, err)
	require.EqualValues(t, 64, fold)

	require.NoError(t, tm.SetFold(5, 3)) // ignored
	fold, err = tm.Fold(5)
	require.NoError(t, err)
	require.EqualValues(t, 64, fold)
}

func TestFreshMapIsAllZero(t *testing.T) {
	tm := newMapped(t, 40, 10, 64)
	for f := int64(1); f <= 40; f++ {
		fold, err := tm.Fold(f)
		require.NoError(t, err)
		require.Zero(t, fold)
	}
}

func TestSetFoldThenFold(t *testing.T) {
	tm := newMapped(t, 40, 10, 64)
	require.NoError(t, tm.SetFold(5, 3))
	fold, err := tm.Fold(5)
	require.NoError(t, err)
	require.EqualValues(t, 3, fold)
}

func TestVolumePaging(t *testing.T) {
	// scenario 4 of spec.md §8: 12 frames, frames-per-volume 4.
	tm := newMapped(t, 12, 4, 10)
	require.NoError(t, tm.SetFold(1, 7))
	require.NoError(t, tm.SetFold(9, 2))

	// Frame 1 is in volume 1; frame 9 is in volume 3.
	v1, p1 := tm.volumeOf(1)
	require.Equal(t, int64(1), v1)
	require.Equal(t, int64(1), p1)
	v9, p9 := tm.volumeOf(9)
	require.Equal(t, int64(3), v9)
	require.Equal(t, int64(1), p9)

	fold, err := tm.Fold(1)
	require.NoError(t, err)
	require.EqualValues(t, 7, fold)
	require.Equal(t, int64(1), tm.cachedVolume)

	fold, err = tm.Fold(9)
	require.NoError(t, err)
	require.EqualValues(t, 2, fold)
	require.Equal(t, int64(3), tm.cachedVolume)

	// Paging back to frame 1's volume evicts volume 3 again.
	fold, err = tm.Fold(1)
	require.NoError(t, err)
	require.EqualValues(t, 7, fold)
	require.Equal(t, int64(1), tm.cachedVolume)
}

func TestCreateFileSize(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Create(dir, 10))
	fi, err := os.Stat(filepath.Join(dir, FileName))
	require.NoError(t, err)
	require.EqualValues(t, 40, fi.Size())
}
