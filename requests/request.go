package requests

import "github.com/google/uuid"

// NodeType valid types are FileNodeType "file", FolderNodeType "folder"
// and ShortcutNodeType "shortcut"
type NodeType string

const (
	FileNodeType     NodeType = "file"
	FolderNodeType   NodeType = "folder"
	ShortcutNodeType NodeType = "shortcut"
)

// Manifest describes a whole tree to build under a partition
type Manifest struct {
	UUID     uuid.UUID // partition's linking UUID
	Children []*NodeRequest
}

// NodeRequest describes one node to create. It is produced by the
// unmarshaling layer with defaults applied.
type NodeRequest struct {
	Type     NodeType
	Name     string
	UUID     uuid.UUID // linking UUID; generated when not supplied
	Size     uint64    // files only
	Target   uuid.UUID // shortcuts only
	Children []*NodeRequest
}

// Count returns the number of requests of each type in the manifest
func (m *Manifest) Count() map[NodeType]int {
	counts := make(map[NodeType]int, 3)
	var walk func(reqs []*NodeRequest)
	walk = func(reqs []*NodeRequest) {
		for _, req := range reqs {
			counts[req.Type]++
			walk(req.Children)
		}
	}
	walk(m.Children)
	return counts
}
