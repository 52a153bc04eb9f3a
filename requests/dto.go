package requests

import "github.com/brettbedarf/vfstree/config"

// ManifestDTO is the YAML/JSON representation of [Manifest]
type ManifestDTO struct {
	// Optional UUID naming the partition so shortcuts can target it
	UUID     *string          `yaml:"uuid,omitempty" json:"uuid,omitempty"`
	Children []NodeRequestDTO `yaml:"children,omitempty" json:"children,omitempty"`
}

// NodeRequestDTO is the YAML/JSON representation of [NodeRequest]
//
// Fields used depend on the "type" value:
//
//	file:     name, size
//	folder:   name, children
//	shortcut: name, target
type NodeRequestDTO struct {
	Type NodeType `yaml:"type" json:"type"`
	Name string   `yaml:"name" json:"name"`
	// Optional UUID to enable linking shortcuts at request time
	UUID *string `yaml:"uuid,omitempty" json:"uuid,omitempty"`
	// File size; plain integer or humanized ("4 kB")
	Size *config.ByteSize `yaml:"size,omitempty" json:"size,omitempty"`
	// UUID of the node a shortcut points at
	Target   *string          `yaml:"target,omitempty" json:"target,omitempty"`
	Children []NodeRequestDTO `yaml:"children,omitempty" json:"children,omitempty"`
}
