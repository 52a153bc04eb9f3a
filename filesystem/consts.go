package filesystem

import "syscall"

// Kind tags the closed set of node variants
type Kind string

const (
	FileKind      Kind = "File"
	FolderKind    Kind = "Folder"
	PartitionKind Kind = "Partition"
	ShortcutKind  Kind = "Shortcut"
)

func (k Kind) String() string {
	return string(k)
}

// IsContainer reports whether nodes of this kind own children
func (k Kind) IsContainer() bool {
	return k == FolderKind || k == PartitionKind
}

type SysAttrType uint32

const (
	DirAttr     SysAttrType = syscall.S_IFDIR
	FileAttr    SysAttrType = syscall.S_IFREG
	SymlinkAttr SysAttrType = syscall.S_IFLNK
)

// Permission bits reported in node attributes
const (
	dirPerms      = 0o755
	filePerms     = 0o644
	shortcutPerms = 0o777
)

const (
	// indentWidth is the number of spaces added per depth level in tree dumps
	indentWidth = 2
	// danglingTarget is shown for shortcuts whose target no longer exists
	danglingTarget = "inexisting element"
	// separator joins ancestor names in absolute names
	separator = "/"
)
