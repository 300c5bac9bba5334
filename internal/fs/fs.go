// Package fs provides read-only filesystem access for the directory view.
package fs

import (
	"io/fs"
	"time"
)

// FileInfo holds the metadata of a single filesystem entry.
type FileInfo struct {
	Name    string
	Mode    fs.FileMode
	Size    int64
	UID     uint32
	ModTime time.Time
}

// IsDir reports whether the entry is a directory.
func (fi FileInfo) IsDir() bool {
	return fi.Mode.IsDir()
}

// IsRegular reports whether the entry is a regular file.
func (fi FileInfo) IsRegular() bool {
	return fi.Mode.IsRegular()
}

// Permissions returns the owner/group/other bits as a 3-digit octal string, e.g. "644".
func (fi FileInfo) Permissions() string {
	return FormatPermissions(fi.Mode)
}

// FileSystem abstracts the read operations the resolver needs so tests can
// substitute a fake filesystem.
//
// Paths are full paths (already joined with the root by the caller).
type FileSystem interface {
	// Stat follows symlinks.
	Stat(path string) (FileInfo, error)
	// ReadDir lists the immediate children of a directory using each
	// child's own metadata (symlinks are not followed).
	ReadDir(path string) ([]FileInfo, error)
	ReadFile(path string) ([]byte, error)
}
