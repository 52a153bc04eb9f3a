package requests

import (
	"github.com/brettbedarf/vfstree/filesystem"
	"github.com/google/uuid"
	"github.com/jmgilman/go/errors"
	"github.com/rs/zerolog"
)

// Result reports what Apply created
type Result struct {
	// Nodes maps every linking UUID to the node created for it,
	// the partition included
	Nodes     map[uuid.UUID]filesystem.Node
	Files     int
	Folders   int
	Shortcuts int
}

type pendingShortcut struct {
	parent *filesystem.Folder
	req    *NodeRequest
}

type applyOptions struct {
	logger zerolog.Logger
}

// Option customizes Apply
type Option func(*applyOptions)

// WithLogger routes Apply's progress and failure events to logger.
// The default logger discards everything.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *applyOptions) {
		o.logger = logger
	}
}

// Apply builds the manifest under fs's partition.
//
// Every node, the partition included, must carry its own non-nil linking
// UUID; Unmarshal guarantees that, hand built manifests are checked before
// anything is created. Folders and files are created depth first. Shortcuts
// are created afterwards, repeatedly, so a shortcut may point at a node
// declared later in the manifest or at another shortcut. Apply stops at the
// first domain error; nodes created before it are kept.
func Apply(fs *filesystem.FileSystem, m *Manifest, opts ...Option) (*Result, error) {
	if fs == nil || m == nil {
		return nil, errors.New(errors.CodeInvalidInput, "apply needs both a filesystem and a manifest")
	}
	o := applyOptions{logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(&o)
	}
	logger := o.logger

	if err := validateLinkIDs(m); err != nil {
		logger.Error().Err(err).Msg("Rejected manifest")
		return nil, err
	}

	res := &Result{Nodes: map[uuid.UUID]filesystem.Node{m.UUID: fs.Root()}}
	var pending []pendingShortcut

	var build func(parent *filesystem.Folder, reqs []*NodeRequest) error
	build = func(parent *filesystem.Folder, reqs []*NodeRequest) error {
		for _, req := range reqs {
			switch req.Type {
			case FolderNodeType:
				dir, err := parent.CreateFolder(req.Name)
				if err != nil {
					return errors.WithContext(err, "request", req.Name)
				}
				res.Nodes[req.UUID] = dir
				res.Folders++
				if err := build(dir, req.Children); err != nil {
					return err
				}
			case FileNodeType:
				file, err := parent.CreateFile(req.Name, req.Size)
				if err != nil {
					return errors.WithContext(err, "request", req.Name)
				}
				res.Nodes[req.UUID] = file
				res.Files++
			case ShortcutNodeType:
				pending = append(pending, pendingShortcut{parent: parent, req: req})
			default:
				return errors.WithContext(
					errors.Newf(errors.CodeSchemaFailed, "unknown node type %q", req.Type), "request", req.Name)
			}
		}
		return nil
	}
	if err := build(&fs.Root().Folder, m.Children); err != nil {
		logger.Error().Err(err).Msg("Failed to apply manifest")
		return res, err
	}

	for len(pending) > 0 {
		remaining := pending[:0]
		for _, p := range pending {
			target, ok := res.Nodes[p.req.Target]
			if !ok {
				remaining = append(remaining, p)
				continue
			}
			s, err := p.parent.CreateShortcut(p.req.Name, target)
			if err != nil {
				logger.Error().Err(err).Str("name", p.req.Name).Msg("Failed to create shortcut")
				return res, errors.WithContext(err, "request", p.req.Name)
			}
			res.Nodes[p.req.UUID] = s
			res.Shortcuts++
		}
		if len(remaining) == len(pending) {
			p := remaining[0]
			return res, errors.WithContextMap(
				errors.Newf(errors.CodeNotFound, "shortcut target %s is not declared", p.req.Target),
				map[string]interface{}{"request": p.req.Name, "unresolved": len(remaining)},
			)
		}
		pending = remaining
	}

	logger.Debug().
		Int("folders", res.Folders).
		Int("files", res.Files).
		Int("shortcuts", res.Shortcuts).
		Msg("Applied manifest")
	return res, nil
}
