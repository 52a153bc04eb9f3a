package filesystem

import (
	stderrors "errors"

	"github.com/jmgilman/go/errors"
)

// CodeCapacityExceeded indicates a file would not fit in the partition
const CodeCapacityExceeded errors.ErrorCode = "CAPACITY_EXCEEDED"

// Sentinels wrapped by every domain error. Match with errors.Is; the
// wrapping PlatformError carries the code and context metadata.
var (
	ErrInvalidName      = stderrors.New("invalid name")
	ErrDuplicateName    = stderrors.New("duplicate name")
	ErrNotFound         = stderrors.New("element not found")
	ErrCapacityExceeded = stderrors.New("capacity overflow")
	ErrRemoved          = stderrors.New("node was removed")
	ErrForeignNode      = stderrors.New("node belongs to another filesystem")
)

func invalidNameError(parent string) error {
	return errors.WrapWithContext(ErrInvalidName, errors.CodeInvalidInput,
		"name must not be empty", map[string]interface{}{"parent": parent})
}

func duplicateNameError(name, parent string) error {
	return errors.WrapWithContext(ErrDuplicateName, errors.CodeAlreadyExists,
		name+" already exists", map[string]interface{}{"name": name, "parent": parent})
}

func notFoundError(name, parent string) error {
	return errors.WrapWithContext(ErrNotFound, errors.CodeNotFound,
		name+" does not exist", map[string]interface{}{"name": name, "parent": parent})
}

func capacityError(requested, remaining, capacity uint64) error {
	return errors.WrapWithContext(ErrCapacityExceeded, CodeCapacityExceeded,
		"not enough space left in partition", map[string]interface{}{
			"requested": requested,
			"remaining": remaining,
			"capacity":  capacity,
		})
}

func removedError(name string) error {
	return errors.WrapWithContext(ErrRemoved, errors.CodeNotFound,
		name+" is no longer part of the tree", map[string]interface{}{"name": name})
}

func foreignNodeError(name string) error {
	return errors.WrapWithContext(ErrForeignNode, errors.CodeInvalidInput,
		"shortcut target must belong to this filesystem", map[string]interface{}{"name": name})
}
