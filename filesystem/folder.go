package filesystem

import (
	"sort"

	"github.com/hanwen/go-fuse/v2/fuse"
	"github.com/puzpuzpuz/xsync/v4"
	"github.com/rs/zerolog"
	"golang.org/x/text/cases"
)

// Folder owns a set of children keyed by their case folded name and caches
// the aggregate size of its subtree.
//
// The cache, when valid, equals the sum of the children's current sizes.
// Any change that could alter it clears the cache of this folder and of
// every ancestor up to the partition.
type Folder struct {
	node
	children   *xsync.Map[string, Node] // normalized key -> owned child
	cachedSize uint64
	cacheValid bool
}

// normalizeKey case folds name so names that differ only by case collide
func normalizeKey(name string) string {
	return cases.Fold().String(name)
}

// Size returns the aggregate size of the subtree, filling caches on the
// way down as needed
func (f *Folder) Size() uint64 {
	f.fs.mu.Lock()
	defer f.fs.mu.Unlock()
	return f.sizeLocked()
}

func (f *Folder) sizeLocked() uint64 {
	if f.cacheValid {
		return f.cachedSize
	}
	var total uint64
	f.children.Range(func(_ string, child Node) bool {
		total += child.sizeLocked()
		return true
	})
	f.cachedSize = total
	f.cacheValid = true
	return total
}

// invalidateLocked clears the cached size of f and every ancestor. The walk
// follows parent links only, which form a finite chain ending at the
// partition; shortcut targets are never followed.
func (f *Folder) invalidateLocked() {
	for cur := f; cur != nil; cur = cur.parent {
		cur.cacheValid = false
	}
}

// Len returns the number of direct children
func (f *Folder) Len() int {
	f.fs.mu.Lock()
	defer f.fs.mu.Unlock()
	return f.children.Size()
}

// Child looks up a direct child by name, ignoring case
func (f *Folder) Child(name string) (Node, bool) {
	f.fs.mu.Lock()
	defer f.fs.mu.Unlock()
	return f.children.Load(normalizeKey(name))
}

// Children returns the direct children ordered by normalized name
func (f *Folder) Children() []Node {
	f.fs.mu.Lock()
	defer f.fs.mu.Unlock()
	return f.sortedChildrenLocked()
}

func (f *Folder) sortedChildrenLocked() []Node {
	keys := make([]string, 0, f.children.Size())
	f.children.Range(func(key string, _ Node) bool {
		keys = append(keys, key)
		return true
	})
	sort.Strings(keys)
	out := make([]Node, 0, len(keys))
	for _, key := range keys {
		if child, ok := f.children.Load(key); ok {
			out = append(out, child)
		}
	}
	return out
}

// checkNameAvailabilityLocked validates name against f's children and
// returns the key it would be stored under
func (f *Folder) checkNameAvailabilityLocked(name string) (string, error) {
	if f.removed {
		return "", removedError(f.name)
	}
	if name == "" {
		return "", invalidNameError(f.name)
	}
	key := normalizeKey(name)
	if _, exists := f.children.Load(key); exists {
		return "", duplicateNameError(name, f.name)
	}
	return key, nil
}

// CreateFolder creates an empty child folder.
// Fails with ErrInvalidName or ErrDuplicateName.
func (f *Folder) CreateFolder(name string) (*Folder, error) {
	f.fs.mu.Lock()
	defer f.fs.mu.Unlock()

	key, err := f.checkNameAvailabilityLocked(name)
	if err != nil {
		return nil, err
	}

	child := &Folder{
		node:       f.fs.newNodeLocked(name, FolderKind, f),
		children:   xsync.NewMap[string, Node](),
		cacheValid: true, // empty
	}
	f.linkLocked(key, child)
	// an empty folder adds nothing so the cache stays valid
	f.logCreated(child, 0)
	return child, nil
}

// CreateFile creates a child file of the given size after checking the
// partition has room for it.
// Fails with ErrInvalidName, ErrDuplicateName or ErrCapacityExceeded,
// leaving the tree untouched.
func (f *Folder) CreateFile(name string, size uint64) (*File, error) {
	f.fs.mu.Lock()
	defer f.fs.mu.Unlock()

	key, err := f.checkNameAvailabilityLocked(name)
	if err != nil {
		return nil, err
	}
	if err := f.fs.root.checkRemainingSizeLocked(size); err != nil {
		f.fs.logger.Warn().Err(err).Str("name", name).Uint64("size", size).Msg("Rejected file creation")
		return nil, err
	}

	child := &File{
		node: f.fs.newNodeLocked(name, FileKind, f),
		size: size,
	}
	f.linkLocked(key, child)
	if size != 0 {
		f.invalidateLocked()
	}
	f.logCreated(child, size)
	return child, nil
}

// CreateShortcut creates a child shortcut to target, which may be any live
// node of the same filesystem. No size or capacity impact.
func (f *Folder) CreateShortcut(name string, target Node) (*Shortcut, error) {
	f.fs.mu.Lock()
	defer f.fs.mu.Unlock()

	key, err := f.checkNameAvailabilityLocked(name)
	if err != nil {
		return nil, err
	}
	if target == nil || target.base().fs != f.fs {
		return nil, foreignNodeError(name)
	}
	tb := target.base()
	if tb.removed {
		return nil, removedError(tb.name)
	}

	child := &Shortcut{
		node:   f.fs.newNodeLocked(name, ShortcutKind, f),
		target: tb.handle,
	}
	f.linkLocked(key, child)
	f.logCreated(child, 0)
	return child, nil
}

// RemoveElement destroys the named child and, for folders, its whole
// subtree. Shortcuts elsewhere that pointed into it stop resolving.
// Fails with ErrNotFound.
func (f *Folder) RemoveElement(name string) error {
	f.fs.mu.Lock()
	defer f.fs.mu.Unlock()

	if f.removed {
		return removedError(f.name)
	}
	key := normalizeKey(name)
	child, ok := f.children.Load(key)
	if !ok {
		return notFoundError(name, f.name)
	}

	f.invalidateLocked()
	f.children.Delete(key)
	destroyed := f.fs.destroyLocked(child)

	f.fs.logger.Debug().
		Func(func(e *zerolog.Event) { e.Str("path", f.absoluteNameLocked()+separator+child.Name()) }).
		Int("destroyed", destroyed).
		Msg("Removed element")
	return nil
}

// linkLocked stores child under key and issues its handle.
// Parent links are set at construction.
func (f *Folder) linkLocked(key string, child Node) {
	f.children.Store(key, child)
	f.fs.registerLocked(child)
}

func (f *Folder) logCreated(child Node, size uint64) {
	f.fs.logger.Debug().
		Func(func(e *zerolog.Event) { e.Str("path", child.base().absoluteNameLocked()) }).
		Str("kind", child.Kind().String()).
		Uint64("size", size).
		Msg("Created node")
}

func (f *Folder) DisplayTree() string {
	return displayTree(f, false)
}

// renderSuffix writes one line per child, recursively
func (f *Folder) renderSuffix(w *treeWriter, depth int) {
	for _, child := range f.sortedChildrenLocked() {
		w.sb.WriteByte('\n')
		displayLocked(child, depth+1, w)
	}
}

func (f *Folder) Attr() fuse.Attr {
	f.fs.mu.Lock()
	defer f.fs.mu.Unlock()
	return f.attrLocked()
}

func (f *Folder) attrLocked() fuse.Attr {
	return f.fillAttr(uint32(DirAttr)|dirPerms, f.sizeLocked())
}
