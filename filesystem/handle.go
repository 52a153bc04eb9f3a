package filesystem

import (
	"fmt"
	"math"

	"github.com/google/uuid"
)

// Handle is a non-owning reference to a node. It stays valid to hold after
// the node is removed; resolving it then reports absence.
//
// The zero Handle never resolves.
type Handle struct {
	fsID  uuid.UUID // owning FileSystem
	index uint32    // slot in the arena
	gen   uint32    // slot generation at allocation time
}

// IsZero reports whether h was never assigned
func (h Handle) IsZero() bool {
	return h.gen == 0
}

// FileSystemID returns the ID of the FileSystem the handle was issued by
func (h Handle) FileSystemID() uuid.UUID {
	return h.fsID
}

func (h Handle) String() string {
	if h.IsZero() {
		return "handle(nil)"
	}
	return fmt.Sprintf("%s#%d.%d", h.fsID, h.index, h.gen)
}

type slot struct {
	node Node
	gen  uint32
}

// arena is a generational slot store. Releasing a slot bumps its
// generation so every outstanding Handle to it stops resolving, and the
// slot index is recycled for later allocations. A slot whose generation is
// exhausted is never reused.
//
// Not safe for concurrent use; FileSystem.mu guards it.
type arena struct {
	slots []slot
	free  []uint32
	live  int
}

func (a *arena) alloc(n Node) (index, gen uint32) {
	if l := len(a.free); l > 0 {
		index = a.free[l-1]
		a.free = a.free[:l-1]
	} else {
		// generations start at 1 so the zero Handle is never valid
		a.slots = append(a.slots, slot{gen: 1})
		index = uint32(len(a.slots) - 1)
	}
	a.slots[index].node = n
	a.live++
	return index, a.slots[index].gen
}

// release frees the slot if gen still matches. Returns false for stale handles.
func (a *arena) release(index, gen uint32) bool {
	if int(index) >= len(a.slots) || a.slots[index].gen != gen || a.slots[index].node == nil {
		return false
	}
	a.slots[index].node = nil
	a.live--
	if a.slots[index].gen == math.MaxUint32 {
		// retired: a wrapped generation would revive stale handles
		return true
	}
	a.slots[index].gen++
	a.free = append(a.free, index)
	return true
}

func (a *arena) get(index, gen uint32) (Node, bool) {
	if gen == 0 || int(index) >= len(a.slots) {
		return nil, false
	}
	s := a.slots[index]
	if s.gen != gen || s.node == nil {
		return nil, false
	}
	return s.node, true
}
