package filesystem

import (
	"os"
	"syscall"

	"github.com/hanwen/go-fuse/v2/fuse"
)

// blockSize is the unit of fuse.Attr.Blocks
const blockSize = 512

// fillAttr builds a fuse attribute snapshot for the node. Caller holds fs.mu.
// NOTE: Mode must carry both the file type and permission bits.
func (n *node) fillAttr(mode uint32, size uint64) fuse.Attr {
	ts := uint64(n.created.Unix())
	nsec := uint32(n.created.Nanosecond())
	return fuse.Attr{
		Ino:       n.ino,
		Size:      size,
		Blocks:    (size + blockSize - 1) / blockSize,
		Mode:      mode,
		Nlink:     1,
		Atime:     ts,
		Mtime:     ts,
		Ctime:     ts,
		Atimensec: nsec,
		Mtimensec: nsec,
		Ctimensec: nsec,
		Owner: fuse.Owner{
			Uid: uint32(os.Getuid()),
			Gid: uint32(os.Getgid()),
		},
		Blksize: 4096, // preferred size for fs ops
	}
}

// fileMode converts fuse mode bits to an os.FileMode for display
func fileMode(mode uint32) os.FileMode {
	fm := os.FileMode(mode & 0o777)
	switch SysAttrType(mode & syscall.S_IFMT) {
	case DirAttr:
		fm |= os.ModeDir
	case SymlinkAttr:
		fm |= os.ModeSymlink
	}
	return fm
}
