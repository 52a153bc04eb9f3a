package filesystem

import "github.com/hanwen/go-fuse/v2/fuse"

// Shortcut is a zero sized node holding a non-owning reference to another
// node anywhere in the same tree, including the partition. The target may
// be removed independently; the shortcut then resolves to nothing.
type Shortcut struct {
	node
	target Handle
}

// Size is always 0
func (s *Shortcut) Size() uint64 {
	return 0
}

func (s *Shortcut) sizeLocked() uint64 {
	return 0
}

// Target returns the handle the shortcut was created with
func (s *Shortcut) Target() Handle {
	return s.target
}

// Resolve looks up the target. ok is false once the target was removed.
// Resolution is attempted on every call and never cached.
func (s *Shortcut) Resolve() (target Node, ok bool) {
	s.fs.mu.Lock()
	defer s.fs.mu.Unlock()
	return s.fs.lookupLocked(s.target)
}

// TargetName returns the absolute name of the target, or false if it no
// longer exists
func (s *Shortcut) TargetName() (string, bool) {
	s.fs.mu.Lock()
	defer s.fs.mu.Unlock()
	return s.targetNameLocked()
}

func (s *Shortcut) targetNameLocked() (string, bool) {
	target, ok := s.fs.lookupLocked(s.target)
	if !ok {
		return "", false
	}
	return target.base().absoluteNameLocked(), true
}

func (s *Shortcut) DisplayTree() string {
	return displayTree(s, false)
}

func (s *Shortcut) renderSuffix(w *treeWriter, _ int) {
	w.sb.WriteString(" --> ")
	if name, ok := s.targetNameLocked(); ok {
		w.sb.WriteString(name)
	} else {
		w.sb.WriteString(danglingTarget)
	}
}

func (s *Shortcut) Attr() fuse.Attr {
	s.fs.mu.Lock()
	defer s.fs.mu.Unlock()
	return s.attrLocked()
}

func (s *Shortcut) attrLocked() fuse.Attr {
	return s.fillAttr(uint32(SymlinkAttr)|shortcutPerms, 0)
}
