package filesystem

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNode_KindIsContainer(t *testing.T) {
	t.Parallel()

	assert.True(t, FolderKind.IsContainer())
	assert.True(t, PartitionKind.IsContainer())
	assert.False(t, FileKind.IsContainer())
	assert.False(t, ShortcutKind.IsContainer())
}

func TestNode_DisplayTree_Leaves(t *testing.T) {
	t.Parallel()

	fs, _ := newTestFS(t, 100)
	root := &fs.Root().Folder
	f := mustFile(t, root, "f1", 10)
	d := mustFolder(t, root, "empty")

	assert.Equal(t, "File: f1", f.DisplayTree())
	assert.Equal(t, "Folder: empty", d.DisplayTree())
}

func TestNode_DisplayTree_Nested(t *testing.T) {
	t.Parallel()

	fs, _ := newTestFS(t, 1000)
	root := &fs.Root().Folder
	docs := mustFolder(t, root, "docs")
	mustFile(t, docs, "b.txt", 2)
	mustFile(t, docs, "A.txt", 1)
	sub := mustFolder(t, docs, "sub")
	_, err := sub.CreateShortcut("back", docs)
	require.NoError(t, err)
	mustFile(t, root, "z", 3)

	want := "Partition: root\n" +
		"  Folder: docs\n" +
		"    File: A.txt\n" +
		"    File: b.txt\n" +
		"    Folder: sub\n" +
		"      Shortcut: back --> root/docs\n" +
		"  File: z"
	assert.Equal(t, want, fs.Root().DisplayTree())

	// indentation is relative to the node being displayed
	wantDocs := "Folder: docs\n" +
		"  File: A.txt\n" +
		"  File: b.txt\n" +
		"  Folder: sub\n" +
		"    Shortcut: back --> root/docs"
	assert.Equal(t, wantDocs, docs.DisplayTree())
}

func TestNode_DisplayTree_ShortcutToAncestorTerminates(t *testing.T) {
	t.Parallel()

	fs, _ := newTestFS(t, 100)
	dir := mustFolder(t, &fs.Root().Folder, "dir")
	_, err := dir.CreateShortcut("loop", dir)
	require.NoError(t, err)

	assert.Equal(t, "Folder: dir\n  Shortcut: loop --> root/dir", dir.DisplayTree())
}

func TestNode_Handle(t *testing.T) {
	t.Parallel()

	fs, _ := newTestFS(t, 100)
	f := mustFile(t, &fs.Root().Folder, "f", 1)

	h := f.Handle()
	assert.False(t, h.IsZero())
	assert.Equal(t, fs.ID(), h.FileSystemID())
	assert.Contains(t, h.String(), fs.ID().String())
	assert.Equal(t, "handle(nil)", Handle{}.String())
}
