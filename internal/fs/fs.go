package fs

import (
	"io"
	"os"
)

// File is an open blob file. LocalStore reads whole blobs and writes them
// through a synced temporary file, so nothing beyond that is required.
type File interface {
	io.ReadWriteCloser
	Sync() error
}

// FileSystem is the set of operations LocalStore performs on its root.
type FileSystem interface {
	// OpenFile opens a blob or its temporary file.
	OpenFile(name string, flag int, perm os.FileMode) (File, error)
	// Remove deletes a blob or a leftover temporary file.
	Remove(name string) error
	// Rename publishes a synced temporary file under its final blob name.
	Rename(oldpath, newpath string) error
	// MkdirAll creates the directories of slash-separated snapshot names.
	MkdirAll(path string, perm os.FileMode) error
	// ReadDir walks the root when listing snapshots.
	ReadDir(name string) ([]os.DirEntry, error)
}

// LocalFS is the FileSystem backed by the os package.
type LocalFS struct{}

func (LocalFS) OpenFile(name string, flag int, perm os.FileMode) (File, error) {
	return os.OpenFile(name, flag, perm)
}

func (LocalFS) Remove(name string) error                     { return os.Remove(name) }
func (LocalFS) Rename(oldpath, newpath string) error         { return os.Rename(oldpath, newpath) }
func (LocalFS) MkdirAll(path string, perm os.FileMode) error { return os.MkdirAll(path, perm) }
func (LocalFS) ReadDir(name string) ([]os.DirEntry, error)   { return os.ReadDir(name) }

// Default is the FileSystem NewLocalStore uses.
var Default FileSystem = LocalFS{}
