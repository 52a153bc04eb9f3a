package filesystem

import (
	"sync"
	"time"

	"github.com/brettbedarf/vfstree/config"
	"github.com/brettbedarf/vfstree/internal/diag"
	"github.com/brettbedarf/vfstree/internal/util"
	"github.com/google/uuid"
	"github.com/hanwen/go-fuse/v2/fuse"
	"github.com/puzpuzpuz/xsync/v4"
	"github.com/rs/zerolog"
)

// FileSystem is one namespace tree rooted at a Partition.
//
// A single mutex guards every folder's children and size cache, the handle
// arena, and the capacity check together with the link that follows it, so
// concurrent creations can never jointly overcommit the partition.
type FileSystem struct {
	id      uuid.UUID
	cfg     *config.Config
	root    *Partition
	mu      sync.Mutex
	handles arena
	lastIno uint64 // last fuse Attr.Ino assigned; protected by mu
	logger  zerolog.Logger
	diag    *diag.Registry
}

// Option customizes a FileSystem at construction
type Option func(*FileSystem)

// WithLogger routes the filesystem's debug events to logger.
// The default logger discards everything.
func WithLogger(logger zerolog.Logger) Option {
	return func(fs *FileSystem) {
		fs.logger = logger
	}
}

// WithDiagnostics counts live nodes per kind in r instead of [diag.Default]
func WithDiagnostics(r *diag.Registry) Option {
	return func(fs *FileSystem) {
		fs.diag = r
	}
}

// NewFS creates a FileSystem holding an empty partition named and sized
// per cfg. A nil cfg uses the defaults.
func NewFS(cfg *config.Config, opts ...Option) (*FileSystem, error) {
	if cfg == nil {
		cfg = config.NewDefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	fs := &FileSystem{
		id:     uuid.New(),
		cfg:    cfg,
		logger: zerolog.Nop(),
		diag:   diag.Default,
	}
	for _, opt := range opts {
		opt(fs)
	}
	if fs.logger.GetLevel() != zerolog.Disabled {
		fs.logger = fs.logger.Level(util.ZerologLevel(cfg.LogLvl))
	}

	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.lastIno = fuse.FUSE_ROOT_ID - 1
	fs.root = &Partition{
		Folder: Folder{
			node:       fs.newNodeLocked(cfg.RootName, PartitionKind, nil),
			children:   xsync.NewMap[string, Node](),
			cacheValid: true,
		},
		capacity: cfg.Capacity.Bytes(),
	}
	fs.registerLocked(fs.root)

	fs.logger.Debug().
		Str("id", fs.id.String()).
		Str("root", cfg.RootName).
		Uint64("capacity", fs.root.capacity).
		Msg("Created filesystem")
	return fs, nil
}

// ID uniquely identifies the filesystem; handles carry it
func (fs *FileSystem) ID() uuid.UUID {
	return fs.id
}

func (fs *FileSystem) Root() *Partition {
	return fs.root
}

func (fs *FileSystem) Config() *config.Config {
	return fs.cfg
}

// Len returns the number of live nodes, the partition included
func (fs *FileSystem) Len() int {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	return fs.handles.live
}

// Lookup resolves a handle. ok is false if the node was removed or the
// handle was issued by another filesystem.
func (fs *FileSystem) Lookup(h Handle) (Node, bool) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	return fs.lookupLocked(h)
}

func (fs *FileSystem) lookupLocked(h Handle) (Node, bool) {
	if h.fsID != fs.id {
		return nil, false
	}
	return fs.handles.get(h.index, h.gen)
}

// newNodeLocked fills the common fields of a node about to be linked under parent
func (fs *FileSystem) newNodeLocked(name string, kind Kind, parent *Folder) node {
	fs.lastIno++
	return node{
		fs:      fs,
		name:    name,
		kind:    kind,
		parent:  parent,
		ino:     fs.lastIno,
		created: time.Now(),
	}
}

// registerLocked issues n's handle and counts it. Called once n is linked
// or, for the partition, once it exists.
func (fs *FileSystem) registerLocked(n Node) {
	b := n.base()
	index, gen := fs.handles.alloc(n)
	b.handle = Handle{fsID: fs.id, index: index, gen: gen}
	fs.diag.Inc(b.kind.String())
}

// destroyLocked marks n and its whole subtree removed and releases their
// handles. Returns the number of nodes destroyed.
func (fs *FileSystem) destroyLocked(n Node) int {
	count := 0
	if f, ok := n.(*Folder); ok {
		f.children.Range(func(_ string, child Node) bool {
			count += fs.destroyLocked(child)
			return true
		})
		f.children.Clear()
		f.cachedSize, f.cacheValid = 0, true
	}
	b := n.base()
	fs.handles.release(b.handle.index, b.handle.gen)
	b.removed = true
	fs.diag.Dec(b.kind.String())
	return count + 1
}
