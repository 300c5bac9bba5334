//go:build !unix

package fs

import "io/fs"

// Non-unix platforms have no numeric owner; everything maps to uid 0.
func ownerUID(fs.FileInfo) uint32 {
	return 0
}
