package filesystem

import (
	"fmt"
	"strings"
	"time"

	"github.com/hanwen/go-fuse/v2/fuse"
)

// Node is the contract shared by every entry in the tree. The set of
// implementations is closed: *File, *Folder, *Partition and *Shortcut.
//
// Nodes are created only through a Folder's Create* methods (or, for the
// Partition, by NewFS) and never change parent.
type Node interface {
	// Name returns the node's immutable name
	Name() string
	Kind() Kind
	// Parent returns the owning folder; nil for the partition
	Parent() *Folder
	// Size returns the node's size in bytes. Folders aggregate and cache.
	Size() uint64
	// AbsoluteName joins the names from the partition down with "/"
	AbsoluteName() string
	// DisplayTree renders the node (and for folders, its subtree) as text
	DisplayTree() string
	// Handle returns a non-owning reference to the node
	Handle() Handle
	// Attr returns a snapshot of the node's attributes
	Attr() fuse.Attr
	// Removed reports whether the node has been destroyed by its parent
	Removed() bool

	base() *node
	sizeLocked() uint64
	attrLocked() fuse.Attr
	// renderSuffix appends the kind specific part of a tree dump line
	renderSuffix(w *treeWriter, depth int)
}

// node holds the fields common to every variant. All mutable state is
// guarded by fs.mu.
type node struct {
	fs      *FileSystem
	name    string
	kind    Kind
	parent  *Folder // nil only for the partition
	handle  Handle
	ino     uint64
	created time.Time
	removed bool
}

func (n *node) base() *node {
	return n
}

// Name returns the node's immutable Name.
func (n *node) Name() string {
	return n.name
}

func (n *node) Kind() Kind {
	return n.kind
}

func (n *node) Parent() *Folder {
	return n.parent
}

func (n *node) Handle() Handle {
	return n.handle
}

func (n *node) Removed() bool {
	n.fs.mu.Lock()
	defer n.fs.mu.Unlock()
	return n.removed
}

// AbsoluteName returns the path of the node from the partition.
// The partition contributes its own name with no leading separator.
func (n *node) AbsoluteName() string {
	n.fs.mu.Lock()
	defer n.fs.mu.Unlock()
	return n.absoluteNameLocked()
}

func (n *node) absoluteNameLocked() string {
	if n.parent == nil {
		return n.name
	}
	return n.parent.absoluteNameLocked() + separator + n.name
}

// treeWriter accumulates a tree dump
type treeWriter struct {
	sb strings.Builder
	// attrs prefixes every line with the node's inode, mode and blocks
	attrs bool
}

// displayLocked writes "<Kind>: <name>" indented for depth, followed by
// the kind specific suffix
func displayLocked(n Node, depth int, w *treeWriter) {
	b := n.base()
	if w.attrs {
		a := n.attrLocked()
		fmt.Fprintf(&w.sb, "%6d %s %4d ", a.Ino, fileMode(a.Mode), a.Blocks)
	}
	w.sb.WriteString(strings.Repeat(" ", indentWidth*depth))
	w.sb.WriteString(b.kind.String())
	w.sb.WriteString(": ")
	w.sb.WriteString(b.name)
	n.renderSuffix(w, depth)
}

func displayTree(n Node, attrs bool) string {
	fs := n.base().fs
	fs.mu.Lock()
	defer fs.mu.Unlock()
	w := treeWriter{attrs: attrs}
	displayLocked(n, 0, &w)
	return w.sb.String()
}

// DisplayAttrs renders the same dump as n.DisplayTree with every line
// prefixed by the node's inode number, mode and 512 byte block count, in
// the manner of ls -lis.
func DisplayAttrs(n Node) string {
	return displayTree(n, true)
}
