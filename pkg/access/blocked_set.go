package access

import (
	"encoding/json"
	"slices"

	"github.com/google/uuid"
)

// BlockedSet is the set of resource ids that must be treated as inaccessible.
// Ids are kept in the order the store listed them (newest first).
type BlockedSet struct {
	ids   []uuid.UUID
	index map[uuid.UUID]struct{}
}

func newBlockedSet(ids []uuid.UUID) BlockedSet {
	index := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		index[id] = struct{}{}
	}
	return BlockedSet{ids: ids, index: index}
}

// Contains reports whether id is blocked.
func (b BlockedSet) Contains(id uuid.UUID) bool {
	_, ok := b.index[id]
	return ok
}

func (b BlockedSet) Len() int {
	return len(b.ids)
}

// IDs returns a copy of the blocked ids.
func (b BlockedSet) IDs() []uuid.UUID {
	if len(b.ids) == 0 {
		return []uuid.UUID{}
	}
	return slices.Clone(b.ids)
}

func (b BlockedSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.IDs())
}
