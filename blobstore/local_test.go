package blobstore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hupe1980/sievego/internal/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStore_Lifecycle(t *testing.T) {
	tmpDir := t.TempDir()
	store := NewLocalStore(tmpDir)
	ctx := t.Context()

	data := []byte("2 3 5 7 11 13")
	require.NoError(t, store.Put(ctx, "runs/r1.bin", data))
	require.NoError(t, store.Put(ctx, "runs/r2.bin", []byte("x")))
	require.NoError(t, store.Put(ctx, "LATEST", []byte("runs/r2")))

	got, err := store.Get(ctx, "runs/r1.bin")
	require.NoError(t, err)
	assert.Equal(t, data, got)

	// Overwrite replaces the content.
	require.NoError(t, store.Put(ctx, "runs/r1.bin", []byte("new")))
	got, err = store.Get(ctx, "runs/r1.bin")
	require.NoError(t, err)
	assert.Equal(t, []byte("new"), got)

	names, err := store.List(ctx, "runs/")
	require.NoError(t, err)
	assert.Equal(t, []string{"runs/r1.bin", "runs/r2.bin"}, names)

	all, err := store.List(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"LATEST", "runs/r1.bin", "runs/r2.bin"}, all)

	require.NoError(t, store.Delete(ctx, "runs/r1.bin"))
	require.NoError(t, store.Delete(ctx, "runs/r1.bin"))

	_, err = store.Get(ctx, "runs/r1.bin")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLocalStore_ListMissingRoot(t *testing.T) {
	store := NewLocalStore(filepath.Join(t.TempDir(), "missing"))
	names, err := store.List(t.Context(), "")
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestLocalStore_FailedPutLeavesNoBlob(t *testing.T) {
	tmpDir := t.TempDir()
	ffs := fs.NewFaultyFS(nil)
	ffs.AddRule("broken", fs.Fault{FailAfterBytes: 2})
	store := NewLocalStoreFS(tmpDir, ffs)
	ctx := t.Context()

	err := store.Put(ctx, "broken.bin", []byte("too long"))
	assert.ErrorIs(t, err, fs.ErrInjected)

	_, err = store.Get(ctx, "broken.bin")
	assert.ErrorIs(t, err, ErrNotFound)

	// The temp file is cleaned up as well.
	_, err = os.Stat(filepath.Join(tmpDir, "broken.bin.tmp"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLocalStore_FailedRenameKeepsOldBlob(t *testing.T) {
	tmpDir := t.TempDir()
	ffs := fs.NewFaultyFS(nil)
	store := NewLocalStoreFS(tmpDir, ffs)
	ctx := t.Context()

	require.NoError(t, store.Put(ctx, "pointer", []byte("v1")))
	ffs.AddRule("pointer", fs.Fault{FailAfterBytes: -1, FailOnRename: true})

	assert.Error(t, store.Put(ctx, "pointer", []byte("v2")))

	got, err := store.Get(ctx, "pointer")
	require.NoError(t, err)
	assert.Equal(t, []byte("v1"), got)
}
