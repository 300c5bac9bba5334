//go:build unix

package fs

import (
	"io/fs"
	"syscall"
)

func ownerUID(info fs.FileInfo) uint32 {
	if st, ok := info.Sys().(*syscall.Stat_t); ok {
		return st.Uid
	}
	return 0
}
