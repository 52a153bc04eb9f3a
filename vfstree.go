// Package vfstree is a small virtual hierarchical namespace: folders,
// sized files, a capacity bounded root partition and shortcuts that may
// outlive their targets.
//
// Most callers construct their own tree with [New]. [Default] and
// [RootInstance] expose a lazily created process-wide tree using the
// default configuration.
package vfstree

import (
	"sync"

	"github.com/brettbedarf/vfstree/config"
	"github.com/brettbedarf/vfstree/filesystem"
)

var (
	defaultOnce sync.Once
	defaultFS   *filesystem.FileSystem
)

// New creates an independent tree given your config.
func New(cfg *config.Config, opts ...filesystem.Option) (*filesystem.FileSystem, error) {
	return filesystem.NewFS(cfg, opts...)
}

// Default returns the process-wide tree, creating it on first use.
// It is never torn down.
func Default() *filesystem.FileSystem {
	defaultOnce.Do(func() {
		fs, err := filesystem.NewFS(config.NewDefaultConfig())
		if err != nil {
			// defaults always validate
			panic(err)
		}
		defaultFS = fs
	})
	return defaultFS
}

// RootInstance returns the partition of the process-wide tree
func RootInstance() *filesystem.Partition {
	return Default().Root()
}
