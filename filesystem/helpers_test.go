package filesystem

import (
	"testing"

	"github.com/brettbedarf/vfstree/config"
	"github.com/brettbedarf/vfstree/internal/diag"
	"github.com/stretchr/testify/require"
)

// newTestFS creates a filesystem named "root" with the given capacity and
// its own diagnostics registry
func newTestFS(t *testing.T, capacity uint64) (*FileSystem, *diag.Registry) {
	t.Helper()
	reg := diag.NewRegistry()
	fs, err := NewFS(&config.Config{
		RootName: "root",
		Capacity: config.ByteSize(capacity),
	}, WithDiagnostics(reg))
	require.NoError(t, err)
	return fs, reg
}

func mustFolder(t *testing.T, parent *Folder, name string) *Folder {
	t.Helper()
	f, err := parent.CreateFolder(name)
	require.NoError(t, err)
	return f
}

func mustFile(t *testing.T, parent *Folder, name string, size uint64) *File {
	t.Helper()
	f, err := parent.CreateFile(name, size)
	require.NoError(t, err)
	return f
}

// sumChildren recomputes a folder's size from scratch without touching caches
func sumChildren(n Node) uint64 {
	switch v := n.(type) {
	case *File:
		return v.size
	case *Shortcut:
		return 0
	case *Partition:
		return sumChildren(&v.Folder)
	case *Folder:
		var total uint64
		for _, child := range v.sortedChildrenLocked() {
			total += sumChildren(child)
		}
		return total
	}
	return 0
}
