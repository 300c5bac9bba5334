package fs

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalFS_Stat(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(file, []byte("hello"), 0o644))

	l := NewLocalFS()

	info, err := l.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	info, err = l.Stat(file)
	require.NoError(t, err)
	assert.True(t, info.IsRegular())
	assert.Equal(t, "notes.txt", info.Name)
	assert.EqualValues(t, 5, info.Size)
	assert.Equal(t, uint32(os.Getuid()), info.UID)

	_, err = l.Stat(filepath.Join(dir, "missing"))
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestLocalFS_ReadDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "secret"), []byte("x"), 0o600))
	require.NoError(t, os.Chmod(filepath.Join(dir, "secret"), 0o600))

	entries, err := NewLocalFS().ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	byName := make(map[string]FileInfo)
	for _, e := range entries {
		byName[e.Name] = e
	}
	assert.True(t, byName["sub"].IsDir())
	assert.Equal(t, "600", byName["secret"].Permissions())
}

func TestLocalFS_ReadDir_DoesNotFollowSymlinks(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "target")
	require.NoError(t, os.Mkdir(target, 0o755))
	require.NoError(t, os.Symlink(target, filepath.Join(dir, "link")))

	entries, err := NewLocalFS().ReadDir(dir)
	require.NoError(t, err)

	for _, e := range entries {
		if e.Name == "link" {
			assert.False(t, e.IsDir(), "symlink should be reported as itself")
			assert.NotZero(t, e.Mode&fs.ModeSymlink)
			return
		}
	}
	t.Fatal("link entry not listed")
}

func TestLocalFS_ReadDir_Empty(t *testing.T) {
	entries, err := NewLocalFS().ReadDir(t.TempDir())
	require.NoError(t, err)
	assert.NotNil(t, entries)
	assert.Empty(t, entries)
}

func TestFormatPermissions(t *testing.T) {
	tests := []struct {
		mode fs.FileMode
		want string
	}{
		{0o644, "644"},
		{0o755 | fs.ModeDir, "755"},
		{0o600, "600"},
		{0o007, "007"},
		{0o4755, "755"},
		{fs.ModeSetuid | 0o711, "711"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatPermissions(tt.mode), "mode %v", tt.mode)
	}
}

func TestLookupUser_Current(t *testing.T) {
	name, err := LookupUser(uint32(os.Getuid()))
	if err != nil {
		t.Skipf("no user database entry for the current uid: %v", err)
	}
	assert.NotEmpty(t, name)
}

func TestLookupUser_Unknown(t *testing.T) {
	_, err := LookupUser(4000000001)
	assert.ErrorIs(t, err, ErrUnknownOwner)
}
