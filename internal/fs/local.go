package fs

import (
	"fmt"
	"io/fs"
	"os"
)

// LocalFS implements FileSystem using the local filesystem.
type LocalFS struct{}

// NewLocalFS creates a LocalFS.
func NewLocalFS() *LocalFS {
	return &LocalFS{}
}

// ReadFile reads the contents of the file at path.
func (l *LocalFS) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// Stat returns metadata for the file or directory at path, following symlinks.
func (l *LocalFS) Stat(path string) (FileInfo, error) {
	info, err := os.Stat(path)
	if err != nil {
		return FileInfo{}, err
	}
	return fromOS(info), nil
}

// ReadDir lists the immediate children of the directory at path.
func (l *LocalFS) ReadDir(path string) ([]FileInfo, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}
	result := make([]FileInfo, 0, len(entries))
	for _, e := range entries {
		// DirEntry.Info reports lstat metadata.
		info, err := e.Info()
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", e.Name(), err)
		}
		result = append(result, fromOS(info))
	}
	return result, nil
}

func fromOS(info fs.FileInfo) FileInfo {
	return FileInfo{
		Name:    info.Name(),
		Mode:    info.Mode(),
		Size:    info.Size(),
		UID:     ownerUID(info),
		ModTime: info.ModTime(),
	}
}

// FormatPermissions renders the low nine permission bits of mode as three octal digits.
func FormatPermissions(mode fs.FileMode) string {
	return fmt.Sprintf("%03o", uint32(mode.Perm()))
}
