// Package fs is the file system seam under blobstore.LocalStore.
//
// [LocalFS] is the os-backed implementation and fs.Default. [FaultyFS] wraps
// any FileSystem and fails writes, syncs or renames of files whose name
// matches a rule, which is how the local store's temp-file-and-rename path is
// tested for torn snapshot payloads and a LATEST pointer that never lands.
//
// Local file operations cannot be interrupted, so nothing here takes a
// context.Context.
package fs
