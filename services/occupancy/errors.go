package occupancy

import (
	"errors"
	"fmt"
	"sort"
)

// StoreError wraps a persistence failure met while reconciling a room.
type StoreError struct {
	Op     string
	RoomID uint
	Err    error
}

func (e *StoreError) Error() string {
	if e.RoomID == 0 {
		return fmt.Sprintf("occupancy: %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("occupancy: %s room %d: %v", e.Op, e.RoomID, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// IsStoreError reports whether err wraps a StoreError.
func IsStoreError(err error) bool {
	var se *StoreError
	return errors.As(err, &se)
}

// RoomFailures holds the per-room errors of a bulk run.
type RoomFailures map[uint]error

func (f RoomFailures) Error() string {
	ids := f.RoomIDs()
	if len(ids) == 0 {
		return "occupancy: no failures"
	}
	return fmt.Sprintf("occupancy: %d room(s) failed to reconcile, first: room %d: %v", len(ids), ids[0], f[ids[0]])
}

// RoomIDs returns the failed room ids in ascending order.
func (f RoomFailures) RoomIDs() []uint {
	ids := make([]uint, 0, len(f))
	for id := range f {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (f RoomFailures) Unwrap() []error {
	errs := make([]error, 0, len(f))
	for _, id := range f.RoomIDs() {
		errs = append(errs, f[id])
	}
	return errs
}
