package requests

import (
	"github.com/google/uuid"
	"github.com/jmgilman/go/errors"
)

// linkIDs tracks the linking UUIDs claimed so far in one manifest
type linkIDs map[uuid.UUID]string

// claim records id for the node at where. The nil UUID and ids already
// claimed by another node are rejected.
func (ids linkIDs) claim(id uuid.UUID, where string) error {
	if id == uuid.Nil {
		return errors.WithContext(errors.New(errors.CodeSchemaFailed, "linking uuid must not be nil"), "node", where)
	}
	if prev, dup := ids[id]; dup {
		return errors.Newf(errors.CodeSchemaFailed, "uuid %s used by both %s and %s", id, prev, where)
	}
	ids[id] = where
	return nil
}

// validateLinkIDs checks that every node of m, the partition included,
// carries its own non-nil linking UUID
func validateLinkIDs(m *Manifest) error {
	ids := make(linkIDs)
	if err := ids.claim(m.UUID, "manifest"); err != nil {
		return err
	}
	var walk func(reqs []*NodeRequest, parent string) error
	walk = func(reqs []*NodeRequest, parent string) error {
		for _, req := range reqs {
			if req == nil {
				return errors.WithContext(errors.New(errors.CodeSchemaFailed, "nil node request"), "parent", parent)
			}
			where := parent + "/" + req.Name
			if err := ids.claim(req.UUID, where); err != nil {
				return err
			}
			if err := walk(req.Children, where); err != nil {
				return err
			}
		}
		return nil
	}
	return walk(m.Children, "")
}
