package filesystem

import "github.com/hanwen/go-fuse/v2/fuse"

// File is a leaf with a fixed declared size
type File struct {
	node
	size uint64
}

// Size returns the declared size. Never cached since it is already O(1).
func (f *File) Size() uint64 {
	return f.size
}

func (f *File) sizeLocked() uint64 {
	return f.size
}

func (f *File) DisplayTree() string {
	return displayTree(f, false)
}

func (f *File) renderSuffix(*treeWriter, int) {}

func (f *File) Attr() fuse.Attr {
	f.fs.mu.Lock()
	defer f.fs.mu.Unlock()
	return f.attrLocked()
}

func (f *File) attrLocked() fuse.Attr {
	return f.fillAttr(uint32(FileAttr)|filePerms, f.size)
}
